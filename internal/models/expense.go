package models

import "time"

// Expense is a single expense record in a tenant partition.
//
// Category and SubCategory hold the name that existed at write time, not a
// foreign key. They are never retroactively updated when the referenced
// category or subcategory is renamed or deleted.
type Expense struct {
	Base
	Title       string    `gorm:"not null" json:"title"`
	Category    string    `gorm:"not null" json:"category"`
	SubCategory string    `json:"sub_category"`
	Amount      float64   `gorm:"not null" json:"amount"`
	Date        time.Time `gorm:"index" json:"date"`
	Comments    string    `json:"comments"`
	UpdatedAt   time.Time `json:"updated_at"`
}
