package models

import (
	"fintrack/internal/timeutil"

	"gorm.io/gorm"
)

// Base contains the common columns for all tables. Records are hard
// deleted, so there is no deleted-at column.
type Base struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	CreatedAt timeutil.Time `gorm:"type:timestamp" json:"created_at"`
}

// BeforeCreate stamps the creation time for new records.
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = timeutil.Now()
	}
	return nil
}
