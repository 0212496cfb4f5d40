package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is a catalog item.
type Product struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	CategoryID  uint           `gorm:"not null;index" json:"category_id"`
	Slug        string         `gorm:"uniqueIndex;not null" json:"slug"`
	Name        string         `gorm:"not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Price       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`
	Discount    int            `gorm:"not null;default:0" json:"discount"` // percent, 0-100
	Stock       int            `gorm:"not null;default:0" json:"stock"`
	Image       string         `gorm:"type:varchar(500)" json:"image"`
	IsActive    bool           `gorm:"default:true;index" json:"is_active"`
	SortOrder   int            `gorm:"default:0;index" json:"sort_order"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// TableName sets the table name.
func (Product) TableName() string {
	return "products"
}

// SellingPrice returns the effective unit price after discount. A discount
// outside (0, 100] leaves the list price untouched.
func (p *Product) SellingPrice() Money {
	if p.Discount <= 0 || p.Discount > 100 {
		return NewMoneyFromDecimal(p.Price.Decimal)
	}
	factor := decimal.NewFromInt(1).Sub(
		decimal.NewFromInt(int64(p.Discount)).Div(decimal.NewFromInt(100)))
	return NewMoneyFromDecimal(p.Price.Decimal.Mul(factor))
}
