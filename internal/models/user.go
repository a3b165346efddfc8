package models

// User represents an account that can authenticate and own records.
// Superusers bypass ownership checks on writes.
type User struct {
	Base
	Username    string `gorm:"uniqueIndex;size:150;not null" json:"username"`
	Email       string `gorm:"size:255" json:"email"`
	Password    string `gorm:"not null" json:"-"`
	IsSuperuser bool   `json:"is_superuser"`
	IsStaff     bool   `json:"is_staff"`
	IsActive    bool   `json:"is_active"`
}
