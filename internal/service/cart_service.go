package service

import (
	"github.com/palengke/storefront/internal/models"
	"github.com/palengke/storefront/internal/repository"

	"github.com/shopspring/decimal"
)

// CartItemDetail is a cart line priced for display.
type CartItemDetail struct {
	ProductID uint            `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice models.Money    `json:"unit_price"`
	ListPrice models.Money    `json:"list_price"`
	LineTotal models.Money    `json:"line_total"`
	Product   *models.Product `json:"product"`
}

// CartSummary is the priced cart with its subtotal.
type CartSummary struct {
	Items    []CartItemDetail `json:"items"`
	Subtotal models.Money     `json:"subtotal"`
}

// CartService handles cart reads and mutations.
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService creates a cart service.
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{cartRepo: cartRepo, productRepo: productRepo}
}

// ListByUser returns the priced cart. Lines pointing at removed or
// deactivated products are dropped from the cart as a side effect.
func (s *CartService) ListByUser(userID uint) (*CartSummary, error) {
	items, err := s.cartRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	details := make([]CartItemDetail, 0, len(items))
	subtotal := decimal.Zero
	for _, item := range items {
		product := item.Product
		if product == nil || product.ID == 0 {
			p, err := s.productRepo.GetByID(item.ProductID)
			if err != nil {
				return nil, err
			}
			product = p
		}
		if product == nil || !product.IsActive {
			_ = s.cartRepo.DeleteByUserAndProduct(userID, item.ProductID)
			continue
		}

		unitPrice := product.SellingPrice()
		lineTotal := unitPrice.Decimal.Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(lineTotal)

		details = append(details, CartItemDetail{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: unitPrice,
			ListPrice: product.Price,
			LineTotal: models.NewMoneyFromDecimal(lineTotal),
			Product:   product,
		})
	}
	return &CartSummary{
		Items:    details,
		Subtotal: models.NewMoneyFromDecimal(subtotal),
	}, nil
}

// AddItem puts a product in the cart. Adding a product already present
// merges the quantities into one line.
func (s *CartService) AddItem(userID, productID uint, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil || !product.IsActive {
		return ErrProductNotActive
	}

	existing, err := s.cartRepo.GetByUserAndProduct(userID, productID)
	if err != nil {
		return err
	}
	if existing != nil {
		return s.cartRepo.UpdateQuantity(existing.ID, existing.Quantity+quantity)
	}
	return s.cartRepo.Create(&models.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	})
}

// UpdateQuantity sets the quantity of an existing cart line.
func (s *CartService) UpdateQuantity(userID, productID uint, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	existing, err := s.cartRepo.GetByUserAndProduct(userID, productID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrCartItemNotFound
	}
	return s.cartRepo.UpdateQuantity(existing.ID, quantity)
}

// RemoveItem deletes a cart line.
func (s *CartService) RemoveItem(userID, productID uint) error {
	existing, err := s.cartRepo.GetByUserAndProduct(userID, productID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrCartItemNotFound
	}
	return s.cartRepo.DeleteByUserAndProduct(userID, productID)
}

// Clear empties the user's cart.
func (s *CartService) Clear(userID uint) error {
	return s.cartRepo.ClearByUser(userID)
}
