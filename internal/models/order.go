package models

import (
	"time"

	"gorm.io/gorm"
)

// Order is a placed order with its shipping snapshot and amounts.
type Order struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	OrderNo        string         `gorm:"uniqueIndex;not null" json:"order_no"`
	UserID         uint           `gorm:"index;not null" json:"user_id"`
	Status         string         `gorm:"index;not null" json:"status"`
	SubtotalAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"subtotal_amount"`
	ShippingFee    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"shipping_fee"`
	TotalAmount    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"`
	PaymentMethod  string         `gorm:"type:varchar(20);not null" json:"payment_method"`
	ShippingName   string         `gorm:"type:varchar(100);not null" json:"shipping_name"`
	ShippingPhone  string         `gorm:"type:varchar(40);not null" json:"shipping_phone"`
	ShippingAddr   string         `gorm:"type:varchar(500);not null" json:"shipping_address"`
	CancelledAt    *time.Time     `gorm:"index" json:"cancelled_at"`
	CompletedAt    *time.Time     `gorm:"index" json:"completed_at"`
	DeliveredAt    *time.Time     `gorm:"index" json:"delivered_at"`
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	User  *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName sets the table name.
func (Order) TableName() string {
	return "orders"
}
