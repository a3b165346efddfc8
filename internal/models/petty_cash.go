package models

import "fintrack/internal/timeutil"

// PettyCash is a petty-cash voucher. The control number is assigned by
// the service exactly once, before first persistence, and is immutable
// afterwards; the unique index backs the retry-on-conflict assignment.
type PettyCash struct {
	Base
	ControlNumber string        `gorm:"size:11;uniqueIndex;not null" json:"control_number"`
	Name          string        `gorm:"size:255;not null" json:"name"`
	Amount        int64         `gorm:"not null" json:"amount"`
	Date          timeutil.Date `gorm:"type:date;not null" json:"date"`
	IsApproved    bool          `json:"is_approved"`
	Description   string        `json:"description,omitempty"`
	UserID        *uint         `gorm:"index" json:"user_id,omitempty"`
}

// TableName keeps the uncountable noun singular.
func (PettyCash) TableName() string { return "petty_cash" }
