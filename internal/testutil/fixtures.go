package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"kharcha/internal/models"
	"kharcha/internal/tenant"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// NextTenant returns a unique tenant ID for tests that need isolated
// partitions without caring about the exact name.
func NextTenant(t *testing.T) tenant.ID {
	t.Helper()

	id, err := tenant.ParseID(fmt.Sprintf("tester%d", nextID()))
	if err != nil {
		t.Fatalf("failed to build test tenant ID: %v", err)
	}
	return id
}

// CreateTestUser creates a user with a hashed password and unique
// username and email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	n := nextID()
	return CreateTestUserWithName(t, db, fmt.Sprintf("user%d", n), fmt.Sprintf("user%d@test.com", n))
}

// CreateTestUserWithName creates a user with the given username and email.
func CreateTestUserWithName(t *testing.T, db *gorm.DB, username, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hash),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestCategory creates a category with a unique name in the tenant's
// partition.
func CreateTestCategory(t *testing.T, db *gorm.DB) *models.Category {
	t.Helper()
	return CreateTestCategoryWithName(t, db, fmt.Sprintf("Test Category %d", nextID()))
}

// CreateTestCategoryWithName creates a category with the given name.
func CreateTestCategoryWithName(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()

	category := &models.Category{Name: name}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestSubCategory creates a subcategory with a unique name, optionally
// linked to a parent category.
func CreateTestSubCategory(t *testing.T, db *gorm.DB, categoryID *string) *models.SubCategory {
	t.Helper()

	sub := &models.SubCategory{
		Name:       fmt.Sprintf("Test SubCategory %d", nextID()),
		CategoryID: categoryID,
	}
	if err := db.Create(sub).Error; err != nil {
		t.Fatalf("failed to create test subcategory: %v", err)
	}
	return sub
}

// CreateTestExpense creates an expense with the given category, amount, and
// date directly in the tenant's partition.
func CreateTestExpense(t *testing.T, db *gorm.DB, category string, amount float64, date time.Time) *models.Expense {
	t.Helper()

	expense := &models.Expense{
		Title:    fmt.Sprintf("Test Expense %d", nextID()),
		Category: category,
		Amount:   amount,
		Date:     date,
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}
