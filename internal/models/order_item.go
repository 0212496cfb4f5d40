package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderItem is one line of an order. PriceAtPurchase snapshots the selling
// price at checkout time so later product edits do not rewrite history.
type OrderItem struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	OrderID         uint           `gorm:"index;not null" json:"order_id"`
	ProductID       uint           `gorm:"index;not null" json:"product_id"`
	ProductName     string         `gorm:"not null" json:"product_name"`
	PriceAtPurchase Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price_at_purchase"`
	Quantity        int            `gorm:"not null" json:"quantity"`
	TotalPrice      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_price"`
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// TableName sets the table name.
func (OrderItem) TableName() string {
	return "order_items"
}
