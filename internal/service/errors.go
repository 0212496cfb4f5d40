package service

import "errors"

// Catalog errors.
var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrInvalidName      = errors.New("name is required")
	ErrCategoryInUse    = errors.New("category has products attached")
	ErrSlugTaken        = errors.New("slug already in use")
	ErrProductNotFound  = errors.New("product not found")
	ErrProductNotActive = errors.New("product not available")
	ErrInvalidPrice     = errors.New("invalid price")
	ErrInvalidDiscount  = errors.New("discount must be between 0 and 100")
	ErrInvalidStock     = errors.New("stock cannot be negative")
)

// Cart and checkout errors.
var (
	ErrInvalidQuantity     = errors.New("quantity must be positive")
	ErrCartItemNotFound    = errors.New("cart item not found")
	ErrCartEmpty           = errors.New("cart is empty")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrInvalidShippingInfo = errors.New("invalid shipping information")
	ErrInvalidPayment      = errors.New("invalid payment method")
)

// Order lifecycle errors.
var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrOrderNotCancelable = errors.New("order can no longer be cancelled")
	ErrInvalidTransition  = errors.New("invalid order status transition")
	ErrUnknownStatus      = errors.New("unknown order status")
)

// Auth errors.
var (
	ErrInvalidEmail = errors.New("invalid email address")
	ErrOtpNotFound  = errors.New("no passcode issued for this email")
	ErrOtpExpired   = errors.New("passcode expired")
	ErrOtpMismatch  = errors.New("passcode does not match")
	ErrUserNotFound = errors.New("user not found")
	ErrTokenInvalid = errors.New("invalid token")
)

// Email delivery errors.
var (
	ErrEmailServiceDisabled      = errors.New("email service disabled")
	ErrEmailServiceNotConfigured = errors.New("email service not configured")
	ErrEmailRecipientRejected    = errors.New("email recipient rejected")
)
