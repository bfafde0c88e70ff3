package models

import "time"

// Admin is an administrative account. Rows are created by the seeding CLI,
// never through the API; only LastLogin mutates (on successful login).
type Admin struct {
	ID           uint       `json:"-" gorm:"primaryKey"`
	Email        string     `json:"email" gorm:"uniqueIndex;not null;size:255"`
	PasswordHash string     `json:"-" gorm:"not null;size:255"`
	CreatedAt    time.Time  `json:"createdAt"`
	LastLogin    *time.Time `json:"lastLogin,omitempty"`
}

func (Admin) TableName() string {
	return "admins"
}
