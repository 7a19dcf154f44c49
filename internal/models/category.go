package models

// Category is a per-tenant expense category. Names are unique within a
// partition (case-sensitive). Expenses reference categories by name, copied
// by value at write time, so deleting a category never touches expenses.
type Category struct {
	Base
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}
