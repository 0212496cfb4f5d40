package service

import (
	"strings"

	"github.com/palengke/storefront/internal/models"
	"github.com/palengke/storefront/internal/repository"

	goslug "github.com/gosimple/slug"
)

// CategoryService handles category management.
type CategoryService struct {
	repo repository.CategoryRepository
}

// NewCategoryService creates a category service.
func NewCategoryService(repo repository.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

// CategoryInput is the create/update payload.
type CategoryInput struct {
	Name      string
	Slug      string
	SortOrder int
}

// List returns categories matching the filter.
func (s *CategoryService) List(filter repository.CategoryListFilter) ([]models.Category, int64, error) {
	return s.repo.List(filter)
}

// ListAll returns all categories for storefront navigation.
func (s *CategoryService) ListAll() ([]models.Category, error) {
	return s.repo.ListAll()
}

// Get fetches a category by ID.
func (s *CategoryService) Get(id uint) (*models.Category, error) {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

// Create creates a category. An empty slug is derived from the name.
func (s *CategoryService) Create(input CategoryInput) (*models.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidName
	}
	slugValue := resolveSlug(input.Slug, name)

	count, err := s.repo.CountBySlug(slugValue, nil)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSlugTaken
	}

	category := models.Category{
		Name:      name,
		Slug:      slugValue,
		SortOrder: input.SortOrder,
	}
	if err := s.repo.Create(&category); err != nil {
		return nil, err
	}
	return &category, nil
}

// Update updates a category.
func (s *CategoryService) Update(id uint, input CategoryInput) (*models.Category, error) {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = category.Name
	}
	slugValue := resolveSlug(input.Slug, name)

	count, err := s.repo.CountBySlug(slugValue, &id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSlugTaken
	}

	category.Name = name
	category.Slug = slugValue
	category.SortOrder = input.SortOrder

	if err := s.repo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete removes a category that has no products attached.
func (s *CategoryService) Delete(id uint) error {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}

	count, err := s.repo.CountProducts(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryInUse
	}
	return s.repo.Delete(id)
}

func resolveSlug(raw, name string) string {
	raw = strings.TrimSpace(raw)
	if raw != "" {
		return goslug.Make(raw)
	}
	return goslug.Make(name)
}
