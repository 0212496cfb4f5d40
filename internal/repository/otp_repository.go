package repository

import (
	"errors"

	"github.com/palengke/storefront/internal/models"

	"gorm.io/gorm"
)

// OtpRepository is the one-time passcode data access interface.
type OtpRepository interface {
	Create(otp *models.Otp) error
	GetLatest(email, purpose string) (*models.Otp, error)
	DeleteByEmail(email, purpose string) error
	Delete(id uint) error
}

// GormOtpRepository is the GORM implementation.
type GormOtpRepository struct {
	db *gorm.DB
}

// NewOtpRepository creates an OTP repository.
func NewOtpRepository(db *gorm.DB) *GormOtpRepository {
	return &GormOtpRepository{db: db}
}

// Create inserts a passcode record.
func (r *GormOtpRepository) Create(otp *models.Otp) error {
	return r.db.Create(otp).Error
}

// GetLatest returns the newest passcode for an email and purpose.
func (r *GormOtpRepository) GetLatest(email, purpose string) (*models.Otp, error) {
	var record models.Otp
	if err := r.db.Where("email = ? AND purpose = ?", email, purpose).
		Order("created_at desc, id desc").
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// DeleteByEmail removes all passcodes for an email and purpose. Issuing a
// new code calls this first so stale codes cannot be replayed.
func (r *GormOtpRepository) DeleteByEmail(email, purpose string) error {
	return r.db.Where("email = ? AND purpose = ?", email, purpose).
		Delete(&models.Otp{}).Error
}

// Delete removes a single passcode record.
func (r *GormOtpRepository) Delete(id uint) error {
	return r.db.Delete(&models.Otp{}, id).Error
}
