package models

import "fintrack/internal/timeutil"

// Bill is a payable with a due date and a paid flag. No cross-field
// rules are enforced beyond types.
type Bill struct {
	Base
	Title       string        `gorm:"size:255;not null" json:"title"`
	Amount      int64         `gorm:"not null" json:"amount"`
	DueDate     timeutil.Date `gorm:"type:date;not null" json:"due_date"`
	IsPaid      bool          `json:"is_paid"`
	Description string        `json:"description,omitempty"`
	UserID      *uint         `gorm:"index" json:"user_id,omitempty"`
}
