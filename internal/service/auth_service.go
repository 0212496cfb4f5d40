package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"net/mail"
	"strings"
	"time"

	"github.com/palengke/storefront/internal/config"
	"github.com/palengke/storefront/internal/constants"
	"github.com/palengke/storefront/internal/logger"
	"github.com/palengke/storefront/internal/models"
	"github.com/palengke/storefront/internal/queue"
	"github.com/palengke/storefront/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthService implements passwordless email OTP login.
type AuthService struct {
	userRepo     repository.UserRepository
	otpRepo      repository.OtpRepository
	emailService *EmailService
	queueClient  *queue.Client
	cfg          *config.Config
}

// NewAuthService creates an auth service.
func NewAuthService(userRepo repository.UserRepository, otpRepo repository.OtpRepository, emailService *EmailService, queueClient *queue.Client, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		otpRepo:      otpRepo,
		emailService: emailService,
		queueClient:  queueClient,
		cfg:          cfg,
	}
}

// JWTClaims is the token payload for authenticated users.
type JWTClaims struct {
	UserID  uint   `json:"user_id"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

// AuthResult is returned on successful verification.
type AuthResult struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *models.User `json:"user"`
}

// RequestOtp issues a fresh passcode for an email. Any earlier codes for
// the address are discarded first, so only the newest code can verify.
func (s *AuthService) RequestOtp(email string) error {
	email = normalizeEmail(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return ErrInvalidEmail
	}

	code := randNumeric(s.otpLength())
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.otpRepo.DeleteByEmail(email, constants.OtpPurposeLogin); err != nil {
		return err
	}

	expireMinutes := s.otpExpireMinutes()
	otp := &models.Otp{
		Email:     email,
		Code:      string(hash),
		Purpose:   constants.OtpPurposeLogin,
		ExpiresAt: time.Now().Add(time.Duration(expireMinutes) * time.Minute),
	}
	if err := s.otpRepo.Create(otp); err != nil {
		return err
	}

	// Prefer async delivery; fall back to a direct send when the queue
	// is disabled.
	if s.queueClient.Enabled() {
		err := s.queueClient.EnqueueOtpEmail(queue.OtpEmailPayload{
			Email:         email,
			Code:          code,
			ExpireMinutes: expireMinutes,
		})
		if err == nil {
			return nil
		}
		logger.Warnw("otp_email_enqueue_failed", "error", err, "email", email)
	}
	if err := s.emailService.SendOtp(email, code, expireMinutes); err != nil {
		logger.Errorw("otp_email_send_failed", "error", err, "email", email)
		return err
	}
	return nil
}

// VerifyOtp checks a passcode. On success the code is consumed, the user
// is created on first login, the email is marked verified, and a signed
// token is returned.
func (s *AuthService) VerifyOtp(email, code string) (*AuthResult, error) {
	email = normalizeEmail(email)
	code = strings.TrimSpace(code)
	if email == "" || code == "" {
		return nil, ErrOtpMismatch
	}

	record, err := s.otpRepo.GetLatest(email, constants.OtpPurposeLogin)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrOtpNotFound
	}
	if time.Now().After(record.ExpiresAt) {
		_ = s.otpRepo.Delete(record.ID)
		return nil, ErrOtpExpired
	}
	if err := bcrypt.CompareHashAndPassword([]byte(record.Code), []byte(code)); err != nil {
		return nil, ErrOtpMismatch
	}

	// One shot: a verified code can never be replayed.
	if err := s.otpRepo.Delete(record.ID); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if user == nil {
		user = &models.User{
			Email:           email,
			EmailVerifiedAt: &now,
			LastLoginAt:     &now,
		}
		if err := s.userRepo.Create(user); err != nil {
			return nil, err
		}
	} else {
		if user.EmailVerifiedAt == nil {
			if err := s.userRepo.MarkEmailVerified(user.ID, now); err != nil {
				return nil, err
			}
			user.EmailVerifiedAt = &now
		}
		if err := s.userRepo.TouchLastLogin(user.ID, now); err != nil {
			return nil, err
		}
		user.LastLoginAt = &now
	}

	token, expiresAt, err := s.generateJWT(user)
	if err != nil {
		return nil, err
	}

	logger.Infow("user_logged_in", "user_id", user.ID, "email", user.Email)
	return &AuthResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// ParseJWT validates a token and returns its claims.
func (s *AuthService) ParseJWT(tokenString string) (*JWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &JWTClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWT.SecretKey), nil
	})
	if err != nil {
		return nil, ErrTokenInvalid
	}
	if parsed, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return parsed, nil
	}
	return nil, ErrTokenInvalid
}

func (s *AuthService) generateJWT(user *models.User) (string, time.Time, error) {
	expireHours := s.cfg.JWT.ExpireHours
	if expireHours <= 0 {
		expireHours = 24
	}
	expiresAt := time.Now().Add(time.Duration(expireHours) * time.Hour)
	claims := JWTClaims{
		UserID:  user.ID,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.JWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

func (s *AuthService) otpLength() int {
	if s.cfg != nil && s.cfg.Email.Otp.Length > 0 {
		return s.cfg.Email.Otp.Length
	}
	return constants.OtpLength
}

func (s *AuthService) otpExpireMinutes() int {
	if s.cfg != nil && s.cfg.Email.Otp.ExpireMinutes > 0 {
		return s.cfg.Email.Otp.ExpireMinutes
	}
	return constants.OtpExpireMinutes
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteString("0")
			continue
		}
		b.WriteString(fmt.Sprintf("%d", n.Int64()))
	}
	return b.String()
}
