package models

import (
	"strings"
	"time"

	"github.com/palengke/storefront/internal/logger"
)

// InitDefaultAdmin ensures at least one admin account exists. Login still
// goes through the normal email OTP flow; this only flags the account.
func InitDefaultAdmin(email string) error {
	var count int64
	DB.Model(&User{}).Where("is_admin = ?", true).Count(&count)
	if count > 0 {
		return nil
	}

	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		email = "admin@example.com"
	}

	now := time.Now()
	admin := User{
		Email:           email,
		Name:            "Admin",
		IsAdmin:         true,
		EmailVerifiedAt: &now,
	}
	if err := DB.Where("email = ?", email).FirstOrCreate(&admin).Error; err != nil {
		return err
	}
	if !admin.IsAdmin {
		if err := DB.Model(&admin).Update("is_admin", true).Error; err != nil {
			return err
		}
	}

	logger.Warnw("default_admin_ensured", "email", email)
	return nil
}
