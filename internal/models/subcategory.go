package models

// SubCategory is a per-tenant expense subcategory. CategoryID is a weak
// reference to a Category: it is optional, not enforced, and may dangle
// after the parent category is deleted.
type SubCategory struct {
	Base
	Name       string  `gorm:"uniqueIndex;not null" json:"name"`
	CategoryID *string `gorm:"type:uuid" json:"category_id,omitempty"`
}
