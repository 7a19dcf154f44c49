package models

import "time"

// User represents a registered user in the main database. The username
// doubles as the tenant partition key: every other record the user owns
// lives in the partition derived from it, never in the main database.
type User struct {
	Base
	Username         string    `gorm:"uniqueIndex;not null" json:"username"`
	Email            string    `gorm:"uniqueIndex;not null" json:"email"`
	Password         string    `gorm:"not null" json:"-"`
	RefreshTokenHash string    `gorm:"size:64" json:"-"`
	UpdatedAt        time.Time `json:"-"`
}
