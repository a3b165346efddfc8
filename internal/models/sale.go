package models

import "fintrack/internal/timeutil"

// Sale is a dated sale record. Amounts are stored in cents and must be
// strictly positive.
type Sale struct {
	Base
	Title       string        `gorm:"size:255;not null" json:"title"`
	Amount      int64         `gorm:"not null" json:"amount"`
	SaleDate    timeutil.Date `gorm:"type:date;not null" json:"sale_date"`
	Description string        `json:"description,omitempty"`
	UserID      *uint         `gorm:"index" json:"user_id,omitempty"`
}
