package queue

import (
	"encoding/json"

	"github.com/palengke/storefront/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOtpEmail delivers a login passcode.
	TaskOtpEmail = constants.TaskOtpEmail
	// TaskOrderStatusEmail notifies a customer about an order status change.
	TaskOrderStatusEmail = constants.TaskStatusEmail
)

// OtpEmailPayload is the login passcode task payload.
type OtpEmailPayload struct {
	Email         string `json:"email"`
	Code          string `json:"code"`
	ExpireMinutes int    `json:"expire_minutes"`
}

// OrderStatusEmailPayload is the order status notification payload.
type OrderStatusEmailPayload struct {
	OrderID uint   `json:"order_id"`
	Status  string `json:"status"`
}

// NewOtpEmailTask creates a passcode delivery task.
func NewOtpEmailTask(payload OtpEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOtpEmail, body), nil
}

// NewOrderStatusEmailTask creates an order status notification task.
func NewOrderStatusEmailTask(payload OrderStatusEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderStatusEmail, body), nil
}
