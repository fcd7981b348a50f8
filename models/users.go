package models

import (
	"time"
)

type User struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	Email    string  `gorm:"uniqueIndex;not null" json:"email"`
	Username *string `gorm:"uniqueIndex" json:"username"` // Pointer so it can be null
	FullName string  `json:"full_name"`
	Avatar   string  `json:"avatar"`
	IsActive bool    `gorm:"default:true" json:"is_active"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// TableName overrides the table name
func (User) TableName() string {
	return "users"
}
