package models

import (
	"time"
)

// Otp is a one-time passcode issued for email login. Requesting a new code
// deletes any prior codes for the same email, so at most one live code
// exists per address.
type Otp struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Email     string    `gorm:"index;not null" json:"email"`
	Code      string    `gorm:"not null" json:"-"`
	Purpose   string    `gorm:"index;not null;default:'login'" json:"purpose"`
	ExpiresAt time.Time `gorm:"index" json:"expires_at"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// TableName sets the table name.
func (Otp) TableName() string {
	return "otps"
}
