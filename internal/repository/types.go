package repository

import "time"

// ProductListFilter filters product list queries.
type ProductListFilter struct {
	Page         int
	PageSize     int
	CategoryID   uint
	Search       string
	Sort         string
	OnlyActive   bool
	InStockOnly  bool
	WithCategory bool
}

// CategoryListFilter filters category list queries.
type CategoryListFilter struct {
	Page     int
	PageSize int
	Search   string
}

// OrderListFilter filters order list queries.
type OrderListFilter struct {
	Page        int
	PageSize    int
	UserID      uint
	Status      string
	OrderNo     string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// UserListFilter filters user list queries.
type UserListFilter struct {
	Page        int
	PageSize    int
	Keyword     string
	AdminOnly   bool
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}
