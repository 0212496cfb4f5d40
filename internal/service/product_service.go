package service

import (
	"strconv"
	"strings"

	"github.com/palengke/storefront/internal/models"
	"github.com/palengke/storefront/internal/repository"

	"github.com/shopspring/decimal"
)

// ProductService handles catalog management and storefront reads.
type ProductService struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductService creates a product service.
func NewProductService(repo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductService {
	return &ProductService{repo: repo, categoryRepo: categoryRepo}
}

// ProductInput is the create/update payload.
type ProductInput struct {
	CategoryID  uint
	Name        string
	Slug        string
	Description string
	Price       decimal.Decimal
	Discount    int
	Stock       int
	Image       string
	IsActive    bool
	SortOrder   int
}

// ProductView is the storefront representation with the effective price.
type ProductView struct {
	models.Product
	SellingPrice models.Money `json:"selling_price"`
}

// ListPublic returns active products for the storefront.
func (s *ProductService) ListPublic(filter repository.ProductListFilter) ([]ProductView, int64, error) {
	filter.OnlyActive = true
	filter.WithCategory = true
	products, total, err := s.repo.List(filter)
	if err != nil {
		return nil, 0, err
	}
	return toProductViews(products), total, nil
}

// GetPublicBySlug returns one active product for the storefront. A numeric
// slug falls back to an id lookup so older links keep working.
func (s *ProductService) GetPublicBySlug(slug string) (*ProductView, error) {
	product, err := s.repo.GetBySlug(slug, true)
	if err != nil {
		return nil, err
	}
	if product == nil {
		if id, convErr := strconv.ParseUint(slug, 10, 64); convErr == nil {
			product, err = s.repo.GetByID(uint(id))
			if err != nil {
				return nil, err
			}
			if product != nil && !product.IsActive {
				product = nil
			}
		}
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	view := toProductView(*product)
	return &view, nil
}

// ListAdmin returns products for the admin panel, inactive included.
func (s *ProductService) ListAdmin(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	filter.WithCategory = true
	return s.repo.List(filter)
}

// Get fetches a product by ID.
func (s *ProductService) Get(id uint) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// Create creates a product.
func (s *ProductService) Create(input ProductInput) (*models.Product, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	slugValue := resolveSlug(input.Slug, input.Name)
	count, err := s.repo.CountBySlug(slugValue, nil)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSlugTaken
	}

	product := models.Product{
		CategoryID:  input.CategoryID,
		Name:        strings.TrimSpace(input.Name),
		Slug:        slugValue,
		Description: input.Description,
		Price:       models.NewMoneyFromDecimal(input.Price),
		Discount:    input.Discount,
		Stock:       input.Stock,
		Image:       input.Image,
		IsActive:    input.IsActive,
		SortOrder:   input.SortOrder,
	}
	if err := s.repo.Create(&product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Update updates a product.
func (s *ProductService) Update(id uint, input ProductInput) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	slugValue := resolveSlug(input.Slug, input.Name)
	count, err := s.repo.CountBySlug(slugValue, &id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSlugTaken
	}

	product.CategoryID = input.CategoryID
	product.Name = strings.TrimSpace(input.Name)
	product.Slug = slugValue
	product.Description = input.Description
	product.Price = models.NewMoneyFromDecimal(input.Price)
	product.Discount = input.Discount
	product.Stock = input.Stock
	product.Image = input.Image
	product.IsActive = input.IsActive
	product.SortOrder = input.SortOrder

	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete removes a product.
func (s *ProductService) Delete(id uint) error {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	return s.repo.Delete(id)
}

func (s *ProductService) validateInput(input ProductInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return ErrInvalidName
	}
	if input.Price.IsNegative() {
		return ErrInvalidPrice
	}
	if input.Discount < 0 || input.Discount > 100 {
		return ErrInvalidDiscount
	}
	if input.Stock < 0 {
		return ErrInvalidStock
	}
	category, err := s.categoryRepo.GetByID(input.CategoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}
	return nil
}

func toProductViews(products []models.Product) []ProductView {
	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, toProductView(p))
	}
	return views
}

func toProductView(p models.Product) ProductView {
	return ProductView{
		Product:      p,
		SellingPrice: p.SellingPrice(),
	}
}
