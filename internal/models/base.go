package models

import (
	"time"

	"kharcha/internal/uuid"

	"gorm.io/gorm"
)

// Base contains the columns shared by all records: a UUIDv7 primary key and
// an immutable creation timestamp.
type Base struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New()
	}
	return nil
}
