package models

import "fintrack/internal/timeutil"

// CalendarEvent is a scheduled event. EndDate must be strictly after
// StartDate.
type CalendarEvent struct {
	Base
	Title       string        `gorm:"size:255;not null" json:"title"`
	StartDate   timeutil.Time `gorm:"type:timestamp;not null" json:"start_date"`
	EndDate     timeutil.Time `gorm:"type:timestamp;not null" json:"end_date"`
	AllDay      bool          `json:"all_day"`
	Description string        `json:"description,omitempty"`
	UserID      *uint         `gorm:"index" json:"user_id,omitempty"`
}
