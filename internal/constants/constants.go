package constants

// Order status constants
const (
	OrderStatusPending         = "pending"
	OrderStatusProcessing      = "processing"
	OrderStatusShipped         = "shipped"
	OrderStatusDelivered       = "delivered"
	OrderStatusReturnRequested = "return_requested"
	OrderStatusCompleted       = "completed"
	OrderStatusCancelled       = "cancelled"
)

// Payment method constants
const (
	PaymentMethodCard           = "card"
	PaymentMethodCashOnDelivery = "cod"
)

// Checkout constants
const (
	ShippingFee = 50
)

// OTP purpose constants
const (
	OtpPurposeLogin = "login"
)

// OTP constants
const (
	OtpLength        = 6
	OtpExpireMinutes = 5
)

// Delivered orders auto-complete after this many days
const (
	DeliveredAutoCompleteDays = 3
)

// Queue constants
const (
	QueueDefault    = "default"
	TaskOtpEmail    = "auth:otp_email"
	TaskStatusEmail = "order:status_email"
)

// Cache defaults
const (
	RedisPrefixDefault = "pk"
)
