package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "kharcha/internal/errors"
	"kharcha/internal/models"
	"kharcha/internal/tenant"
)

// categoryService handles the per-tenant reference data: categories and
// subcategories. Every operation resolves the owner's partition first and
// runs entirely inside it.
type categoryService struct {
	tenants *tenant.Locator
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(tenants *tenant.Locator) CategoryServicer {
	return &categoryService{tenants: tenants}
}

// CreateCategory creates a new category. Names are unique per partition
// (case-sensitive); a duplicate is a conflict.
func (s *categoryService) CreateCategory(owner tenant.ID, name string) (*models.Category, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}

	db, err := s.tenants.Partition(owner)
	if err != nil {
		return nil, err
	}

	var count int64
	if err := db.Model(&models.Category{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrCategoryExists
	}

	category := &models.Category{Name: name}
	if err := db.Create(category).Error; err != nil {
		// A concurrent create can slip between the check and the insert;
		// for an explicit create that is still a conflict.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrCategoryExists
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return category, nil
}

// ListCategories returns all categories in the partition, ordered by name.
func (s *categoryService) ListCategories(owner tenant.ID) ([]models.Category, error) {
	db, err := s.tenants.Partition(owner)
	if err != nil {
		return nil, err
	}

	var categories []models.Category
	if err := db.Order("name asc").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}

// RenameCategory renames a category in place. The new name must not be held
// by a different category; created_at is untouched.
func (s *categoryService) RenameCategory(owner tenant.ID, categoryID, name string) (*models.Category, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}

	db, err := s.tenants.Partition(owner)
	if err != nil {
		return nil, err
	}

	var category models.Category
	if err := db.Where("id = ?", categoryID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var count int64
	if err := db.Model(&models.Category{}).Where("name = ? AND id <> ?", name, categoryID).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrCategoryExists
	}

	if err := db.Model(&category).Update("name", name).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrCategoryExists
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return &category, nil
}

// DeleteCategory removes a category. Expenses referencing the deleted name
// keep it: the reference is a value copy, not a foreign key.
func (s *categoryService) DeleteCategory(owner tenant.ID, categoryID string) error {
	db, err := s.tenants.Partition(owner)
	if err != nil {
		return err
	}

	result := db.Where("id = ?", categoryID).Delete(&models.Category{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrCategoryNotFound
	}
	return nil
}

// EnsureCategory creates a category with the given name unless one already
// exists. Losing the create race to a concurrent provisioner is success:
// the name exists either way.
func (s *categoryService) EnsureCategory(owner tenant.ID, name string) error {
	db, err := s.tenants.Partition(owner)
	if err != nil {
		return err
	}

	var count int64
	if err := db.Model(&models.Category{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil
	}

	if err := db.Create(&models.Category{Name: name}).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// CreateSubCategory creates a new subcategory. The optional categoryID is a
// weak reference: it is stored as-is and never validated against the
// category table.
func (s *categoryService) CreateSubCategory(owner tenant.ID, name string, categoryID *string) (*models.SubCategory, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "subcategory name is required")
	}

	db, err := s.tenants.Partition(owner)
	if err != nil {
		return nil, err
	}

	var count int64
	if err := db.Model(&models.SubCategory{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrSubCategoryExists
	}

	sub := &models.SubCategory{Name: name, CategoryID: categoryID}
	if err := db.Create(sub).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrSubCategoryExists
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return sub, nil
}

// ListSubCategories returns all subcategories in the partition, ordered by name.
func (s *categoryService) ListSubCategories(owner tenant.ID) ([]models.SubCategory, error) {
	db, err := s.tenants.Partition(owner)
	if err != nil {
		return nil, err
	}

	var subs []models.SubCategory
	if err := db.Order("name asc").Find(&subs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return subs, nil
}

// RenameSubCategory renames a subcategory and replaces its parent category
// reference with the provided one (which may be nil to clear it).
func (s *categoryService) RenameSubCategory(owner tenant.ID, subCategoryID, name string, categoryID *string) (*models.SubCategory, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "subcategory name is required")
	}

	db, err := s.tenants.Partition(owner)
	if err != nil {
		return nil, err
	}

	var sub models.SubCategory
	if err := db.Where("id = ?", subCategoryID).First(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSubCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var count int64
	if err := db.Model(&models.SubCategory{}).Where("name = ? AND id <> ?", name, subCategoryID).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrSubCategoryExists
	}

	updates := map[string]interface{}{
		"name":        name,
		"category_id": categoryID,
	}
	if err := db.Model(&sub).Updates(updates).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrSubCategoryExists
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	sub.CategoryID = categoryID

	return &sub, nil
}

// DeleteSubCategory removes a subcategory. Expenses keep the name by value.
func (s *categoryService) DeleteSubCategory(owner tenant.ID, subCategoryID string) error {
	db, err := s.tenants.Partition(owner)
	if err != nil {
		return err
	}

	result := db.Where("id = ?", subCategoryID).Delete(&models.SubCategory{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrSubCategoryNotFound
	}
	return nil
}

// EnsureSubCategory is the subcategory counterpart of EnsureCategory.
func (s *categoryService) EnsureSubCategory(owner tenant.ID, name string) error {
	db, err := s.tenants.Partition(owner)
	if err != nil {
		return err
	}

	var count int64
	if err := db.Model(&models.SubCategory{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil
	}

	if err := db.Create(&models.SubCategory{Name: name}).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
