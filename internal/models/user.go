package models

import (
	"time"

	"gorm.io/gorm"
)

// User is a storefront account. Authentication is email OTP based, so
// there is no password column.
type User struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	Email           string         `gorm:"uniqueIndex;not null" json:"email"`
	Name            string         `gorm:"default:''" json:"name"`
	IsAdmin         bool           `gorm:"not null;default:false" json:"is_admin"`
	EmailVerifiedAt *time.Time     `json:"email_verified_at"`
	LastLoginAt     *time.Time     `json:"last_login_at"`
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (User) TableName() string {
	return "users"
}
