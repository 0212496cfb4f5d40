package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/palengke/storefront/internal/config"
	"github.com/palengke/storefront/internal/constants"
	"github.com/palengke/storefront/internal/models"
	"github.com/palengke/storefront/internal/repository"

	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type authTestEnv struct {
	db    *gorm.DB
	users repository.UserRepository
	otps  repository.OtpRepository
	auth  *AuthService
}

func newAuthTestEnv(t *testing.T, name string) *authTestEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Otp{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := &config.Config{}
	cfg.JWT.SecretKey = "unit-test-secret-key-0123456789abcdef"
	cfg.JWT.ExpireHours = 24
	cfg.Email.Enabled = false
	cfg.Email.Otp.ExpireMinutes = 10
	cfg.Email.Otp.Length = 6

	users := repository.NewUserRepository(db)
	otps := repository.NewOtpRepository(db)
	auth := NewAuthService(users, otps, NewEmailService(&cfg.Email), nil, cfg)
	return &authTestEnv{db: db, users: users, otps: otps, auth: auth}
}

func (e *authTestEnv) seedOtp(t *testing.T, email, code string, expiresAt time.Time) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash code: %v", err)
	}
	otp := &models.Otp{
		Email:     email,
		Code:      string(hash),
		Purpose:   constants.OtpPurposeLogin,
		ExpiresAt: expiresAt,
	}
	if err := e.db.Create(otp).Error; err != nil {
		t.Fatalf("seed otp: %v", err)
	}
}

func (e *authTestEnv) otpCount(t *testing.T, email string) int64 {
	t.Helper()
	var count int64
	if err := e.db.Model(&models.Otp{}).Where("email = ?", email).Count(&count).Error; err != nil {
		t.Fatalf("count otps: %v", err)
	}
	return count
}

func TestRequestOtpValidation(t *testing.T) {
	env := newAuthTestEnv(t, "auth_request_validation")

	if err := env.auth.RequestOtp("not-an-address"); err != ErrInvalidEmail {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
	if err := env.auth.RequestOtp(""); err != ErrInvalidEmail {
		t.Fatalf("expected ErrInvalidEmail for blank email, got %v", err)
	}
	if got := env.otpCount(t, "not-an-address"); got != 0 {
		t.Fatalf("expected no otp rows, got %d", got)
	}
}

func TestRequestOtpReplacesPriorCodes(t *testing.T) {
	env := newAuthTestEnv(t, "auth_request_replaces")
	email := "juan@example.com"

	// Email delivery is disabled in tests, so the request errors after the
	// code has been stored. The stored code still reflects the latest
	// request only.
	if err := env.auth.RequestOtp(email); err != ErrEmailServiceDisabled {
		t.Fatalf("expected ErrEmailServiceDisabled, got %v", err)
	}
	var first models.Otp
	if err := env.db.Where("email = ?", email).First(&first).Error; err != nil {
		t.Fatalf("load first otp: %v", err)
	}

	if err := env.auth.RequestOtp(email); err != ErrEmailServiceDisabled {
		t.Fatalf("expected ErrEmailServiceDisabled, got %v", err)
	}
	if got := env.otpCount(t, email); got != 1 {
		t.Fatalf("expected 1 live otp after second request, got %d", got)
	}
	var second models.Otp
	if err := env.db.Where("email = ?", email).First(&second).Error; err != nil {
		t.Fatalf("load second otp: %v", err)
	}
	if second.ID == first.ID {
		t.Fatal("expected the prior code to be replaced")
	}
}

func TestVerifyOtpConsumesCode(t *testing.T) {
	env := newAuthTestEnv(t, "auth_verify_consumes")
	email := "maria@example.com"
	env.seedOtp(t, email, "482913", time.Now().Add(10*time.Minute))

	if _, err := env.auth.VerifyOtp(email, "000000"); err != ErrOtpMismatch {
		t.Fatalf("expected ErrOtpMismatch, got %v", err)
	}
	// A mismatch does not burn the code.
	result, err := env.auth.VerifyOtp("  Maria@Example.com ", "482913")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if result.Token == "" {
		t.Fatal("expected a signed token")
	}
	if result.User == nil || result.User.Email != email {
		t.Fatalf("unexpected user: %+v", result.User)
	}
	if result.User.EmailVerifiedAt == nil {
		t.Fatal("expected email to be marked verified on first login")
	}
	if result.User.LastLoginAt == nil {
		t.Fatal("expected last login to be recorded")
	}

	claims, err := env.auth.ParseJWT(result.Token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != result.User.ID || claims.Email != email || claims.IsAdmin {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	// Replay is rejected: the code was deleted on success.
	if _, err := env.auth.VerifyOtp(email, "482913"); err != ErrOtpNotFound {
		t.Fatalf("expected ErrOtpNotFound on replay, got %v", err)
	}
}

func TestVerifyOtpExpired(t *testing.T) {
	env := newAuthTestEnv(t, "auth_verify_expired")
	email := "pedro@example.com"
	env.seedOtp(t, email, "123456", time.Now().Add(-time.Minute))

	if _, err := env.auth.VerifyOtp(email, "123456"); err != ErrOtpExpired {
		t.Fatalf("expected ErrOtpExpired, got %v", err)
	}
	// Expired codes are purged on sight.
	if got := env.otpCount(t, email); got != 0 {
		t.Fatalf("expected expired otp to be deleted, got %d rows", got)
	}
	if _, err := env.auth.VerifyOtp(email, "123456"); err != ErrOtpNotFound {
		t.Fatalf("expected ErrOtpNotFound after purge, got %v", err)
	}
}

func TestVerifyOtpUnknownEmail(t *testing.T) {
	env := newAuthTestEnv(t, "auth_verify_unknown")

	if _, err := env.auth.VerifyOtp("nobody@example.com", "123456"); err != ErrOtpNotFound {
		t.Fatalf("expected ErrOtpNotFound, got %v", err)
	}
	if _, err := env.auth.VerifyOtp("", ""); err != ErrOtpMismatch {
		t.Fatalf("expected ErrOtpMismatch for blank input, got %v", err)
	}
}

func TestVerifyOtpExistingUser(t *testing.T) {
	env := newAuthTestEnv(t, "auth_verify_existing")
	email := "admin@example.com"
	user := &models.User{Email: email, IsAdmin: true}
	if err := env.db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	env.seedOtp(t, email, "654321", time.Now().Add(10*time.Minute))

	result, err := env.auth.VerifyOtp(email, "654321")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if result.User.ID != user.ID {
		t.Fatalf("expected existing user %d, got %d", user.ID, result.User.ID)
	}
	if result.User.EmailVerifiedAt == nil {
		t.Fatal("expected email verification to backfill on login")
	}

	claims, err := env.auth.ParseJWT(result.Token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if !claims.IsAdmin {
		t.Fatal("expected admin claim to carry through")
	}

	var count int64
	if err := env.db.Model(&models.User{}).Count(&count).Error; err != nil {
		t.Fatalf("count users: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected no duplicate user, got %d", count)
	}
}

func TestParseJWTRejectsTampering(t *testing.T) {
	env := newAuthTestEnv(t, "auth_parse_tampering")
	email := "tamper@example.com"
	env.seedOtp(t, email, "111222", time.Now().Add(10*time.Minute))

	result, err := env.auth.VerifyOtp(email, "111222")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if _, err := env.auth.ParseJWT(result.Token + "x"); err != ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
	if _, err := env.auth.ParseJWT("not.a.token"); err != ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
