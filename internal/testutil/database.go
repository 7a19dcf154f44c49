// Package testutil provides test helpers for setting up databases,
// creating fixtures, and making assertions.
package testutil

import (
	"testing"

	"kharcha/internal/database"
	"kharcha/internal/models"
	"kharcha/internal/tenant"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SetupTestDB creates an in-memory SQLite main database with the user model
// migrated. Tenant data never lives here; use SetupTestLocator for that.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// SetupTestLocator creates a tenant locator backed by SQLite files in a
// per-test temp directory. Partitions are removed with the directory when
// the test finishes.
func SetupTestLocator(t *testing.T) *tenant.Locator {
	t.Helper()

	cfg := &database.Config{
		Driver:       database.DriverSQLite,
		DataDir:      t.TempDir(),
		TenantPrefix: "expense_",
	}
	return tenant.NewLocator(cfg, nil)
}

// TeardownTestDB closes the underlying database connection.
func TeardownTestDB(t *testing.T, db *gorm.DB) {
	t.Helper()

	sqlDB, err := db.DB()
	if err != nil {
		t.Errorf("failed to get underlying DB for teardown: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		t.Errorf("failed to close test database: %v", err)
	}
}
