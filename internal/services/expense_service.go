package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "kharcha/internal/errors"
	"kharcha/internal/logger"
	"kharcha/internal/models"
	"kharcha/internal/pagination"
	"kharcha/internal/tenant"
)

// expenseService handles expense-related business logic. Writes that name a
// category or subcategory auto-provision the reference record through the
// category service's Ensure methods.
type expenseService struct {
	tenants    *tenant.Locator
	categories CategoryServicer

	// provisionStrict decides whether a failed auto-provisioning aborts the
	// expense write (true) or is logged and tolerated (false).
	provisionStrict bool
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(tenants *tenant.Locator, categories CategoryServicer, provisionStrict bool) ExpenseServicer {
	return &expenseService{tenants: tenants, categories: categories, provisionStrict: provisionStrict}
}

// filterScope compiles an ExpenseFilter into a GORM scope. Expense listing
// and all four analytics views share this single predicate builder.
func filterScope(f ExpenseFilter) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.Category != "" {
			db = db.Where("category = ?", f.Category)
		}
		if f.SubCategory != "" {
			db = db.Where("sub_category = ?", f.SubCategory)
		}
		if f.Start != nil {
			db = db.Where("date >= ?", *f.Start)
		}
		if f.End != nil {
			db = db.Where("date <= ?", *f.End)
		}
		return db
	}
}

// provision auto-creates the referenced category and subcategory. The
// subcategory is only provisioned when non-empty.
func (s *expenseService) provision(owner tenant.ID, category, subCategory string) error {
	if category != "" {
		if err := s.categories.EnsureCategory(owner, category); err != nil {
			if s.provisionStrict {
				return err
			}
			logger.Get().Warnw("category auto-provisioning failed",
				"owner", owner.String(), "category", category, "error", err.Error())
		}
	}
	if subCategory != "" {
		if err := s.categories.EnsureSubCategory(owner, subCategory); err != nil {
			if s.provisionStrict {
				return err
			}
			logger.Get().Warnw("subcategory auto-provisioning failed",
				"owner", owner.String(), "sub_category", subCategory, "error", err.Error())
		}
	}
	return nil
}

// CreateExpense records a new expense; the caller has already applied the
// date parsing policy.
func (s *expenseService) CreateExpense(owner tenant.ID, title, category, subCategory string, amount float64, date time.Time, comments string) (*models.Expense, error) {
	if title == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "title is required")
	}
	if category == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category is required")
	}

	db, err := s.tenants.Partition(owner)
	if err != nil {
		return nil, err
	}

	if err := s.provision(owner, category, subCategory); err != nil {
		return nil, err
	}

	expense := &models.Expense{
		Title:       title,
		Category:    category,
		SubCategory: subCategory,
		Amount:      amount,
		Date:        date,
		Comments:    comments,
	}
	if err := db.Create(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return expense, nil
}

// ListExpenses returns the filtered expenses, newest date first.
func (s *expenseService) ListExpenses(owner tenant.ID, filter ExpenseFilter, page pagination.ListParams) ([]models.Expense, error) {
	db, err := s.tenants.Partition(owner)
	if err != nil {
		return nil, err
	}

	var expenses []models.Expense
	if err := db.Scopes(filterScope(filter), pagination.Scope(page)).
		Order("date desc").
		Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if expenses == nil {
		expenses = []models.Expense{}
	}
	return expenses, nil
}

// GetExpense retrieves one expense by ID.
func (s *expenseService) GetExpense(owner tenant.ID, expenseID string) (*models.Expense, error) {
	db, err := s.tenants.Partition(owner)
	if err != nil {
		return nil, err
	}

	var expense models.Expense
	if err := db.Where("id = ?", expenseID).First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &expense, nil
}

// UpdateExpense applies a partial update. Present fields fully replace the
// prior value; an update with no recognized fields is invalid. A changed
// category or subcategory is auto-provisioned like on create. updated_at is
// always refreshed; created_at is immutable.
func (s *expenseService) UpdateExpense(owner tenant.ID, expenseID string, update ExpenseUpdate) (*models.Expense, error) {
	db, err := s.tenants.Partition(owner)
	if err != nil {
		return nil, err
	}

	var expense models.Expense
	if err := db.Where("id = ?", expenseID).First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	updates := make(map[string]interface{})
	if update.Title != nil {
		updates["title"] = *update.Title
	}
	if update.Category != nil {
		updates["category"] = *update.Category
	}
	if update.SubCategory != nil {
		updates["sub_category"] = *update.SubCategory
	}
	if update.Amount != nil {
		updates["amount"] = *update.Amount
	}
	if update.Date != nil {
		updates["date"] = *update.Date
	}
	if update.Comments != nil {
		updates["comments"] = *update.Comments
	}

	if len(updates) == 0 {
		return nil, apperrors.ErrEmptyUpdate
	}

	var newCategory, newSubCategory string
	if update.Category != nil {
		newCategory = *update.Category
	}
	if update.SubCategory != nil {
		newSubCategory = *update.SubCategory
	}
	if err := s.provision(owner, newCategory, newSubCategory); err != nil {
		return nil, err
	}

	if err := db.Model(&expense).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return &expense, nil
}

// DeleteExpense removes one expense by ID.
func (s *expenseService) DeleteExpense(owner tenant.ID, expenseID string) error {
	db, err := s.tenants.Partition(owner)
	if err != nil {
		return err
	}

	result := db.Where("id = ?", expenseID).Delete(&models.Expense{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrExpenseNotFound
	}
	return nil
}
