package services

import (
	"time"

	"kharcha/internal/models"
	"kharcha/internal/pagination"
	"kharcha/internal/tenant"
)

// UserServicer defines the contract for user-related business logic.
// Users live in the main database; everything else lives in the tenant
// partition keyed by the username.
type UserServicer interface {
	CreateUser(username tenant.ID, email, password string) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	StoreRefreshTokenHash(username string, tokenHash string) error
}

// CategoryServicer defines the contract for the per-tenant reference data:
// categories and subcategories.
//
// The Ensure methods are the auto-provisioning primitive: get-or-create by
// exact name, idempotent when a concurrent create wins the race. Explicit
// Create methods surface a conflict instead.
type CategoryServicer interface {
	CreateCategory(owner tenant.ID, name string) (*models.Category, error)
	ListCategories(owner tenant.ID) ([]models.Category, error)
	RenameCategory(owner tenant.ID, categoryID, name string) (*models.Category, error)
	DeleteCategory(owner tenant.ID, categoryID string) error
	EnsureCategory(owner tenant.ID, name string) error

	CreateSubCategory(owner tenant.ID, name string, categoryID *string) (*models.SubCategory, error)
	ListSubCategories(owner tenant.ID) ([]models.SubCategory, error)
	RenameSubCategory(owner tenant.ID, subCategoryID, name string, categoryID *string) (*models.SubCategory, error)
	DeleteSubCategory(owner tenant.ID, subCategoryID string) error
	EnsureSubCategory(owner tenant.ID, name string) error
}

// ExpenseFilter holds the optional filter parameters shared by expense
// listing and every analytics view. Blank fields are not applied; date
// bounds are inclusive.
type ExpenseFilter struct {
	Category    string
	SubCategory string
	Start       *time.Time
	End         *time.Time
}

// ExpenseUpdate holds a partial expense update. Nil fields are left
// unchanged; present fields fully replace the prior value.
type ExpenseUpdate struct {
	Title       *string
	Category    *string
	SubCategory *string
	Amount      *float64
	Date        *time.Time
	Comments    *string
}

// ExpenseServicer defines the contract for expense-related business logic.
type ExpenseServicer interface {
	CreateExpense(owner tenant.ID, title, category, subCategory string, amount float64, date time.Time, comments string) (*models.Expense, error)
	ListExpenses(owner tenant.ID, filter ExpenseFilter, page pagination.ListParams) ([]models.Expense, error)
	GetExpense(owner tenant.ID, expenseID string) (*models.Expense, error)
	UpdateExpense(owner tenant.ID, expenseID string, update ExpenseUpdate) (*models.Expense, error)
	DeleteExpense(owner tenant.ID, expenseID string) error
}

// Grouping selects the date bucket granularity for the by-date view.
type Grouping string

// Supported bucket granularities.
const (
	GroupingDay   Grouping = "day"
	GroupingWeek  Grouping = "week"
	GroupingMonth Grouping = "month"
	GroupingYear  Grouping = "year"
)

// Summary holds the three aggregates computed over a filtered expense set.
type Summary struct {
	TotalAmount float64 `json:"total_amount"`
	Count       int64   `json:"count"`
	AvgAmount   float64 `json:"avg_amount"`
}

// CategorySummary is one by-category aggregation row.
type CategorySummary struct {
	Category    string  `json:"category"`
	TotalAmount float64 `json:"total_amount"`
	Count       int64   `json:"count"`
	AvgAmount   float64 `json:"avg_amount"`
}

// SubCategorySummary is one by-(category, subcategory) aggregation row.
type SubCategorySummary struct {
	Category    string  `json:"category"`
	SubCategory string  `json:"sub_category"`
	TotalAmount float64 `json:"total_amount"`
	Count       int64   `json:"count"`
	AvgAmount   float64 `json:"avg_amount"`
}

// DateBucket is one by-date aggregation row. Date is the formatted bucket
// key (zero-padded, year first) so lexicographic order is chronological.
type DateBucket struct {
	Date        string  `json:"date"`
	TotalAmount float64 `json:"total_amount"`
	Count       int64   `json:"count"`
	AvgAmount   float64 `json:"avg_amount"`
}

// AnalyticsServicer defines the contract for the aggregation views.
type AnalyticsServicer interface {
	Summarize(owner tenant.ID, filter ExpenseFilter) (*Summary, error)
	ByCategory(owner tenant.ID, filter ExpenseFilter) ([]CategorySummary, error)
	BySubCategory(owner tenant.ID, filter ExpenseFilter) ([]SubCategorySummary, error)
	ByDate(owner tenant.ID, filter ExpenseFilter, grouping Grouping) ([]DateBucket, error)
}
