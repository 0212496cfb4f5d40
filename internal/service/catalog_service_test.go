package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/palengke/storefront/internal/models"
	"github.com/palengke/storefront/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type catalogTestEnv struct {
	db         *gorm.DB
	categories *CategoryService
	products   *ProductService
}

func newCatalogTestEnv(t *testing.T, name string) *catalogTestEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	return &catalogTestEnv{
		db:         db,
		categories: NewCategoryService(categoryRepo),
		products:   NewProductService(productRepo, categoryRepo),
	}
}

func (e *catalogTestEnv) mustCategory(t *testing.T, name string) *models.Category {
	t.Helper()
	category, err := e.categories.Create(CategoryInput{Name: name})
	if err != nil {
		t.Fatalf("create category %q: %v", name, err)
	}
	return category
}

func price(value string) decimal.Decimal {
	d, err := decimal.NewFromString(value)
	if err != nil {
		panic(err)
	}
	return d
}

func TestCategorySlugDerivation(t *testing.T) {
	env := newCatalogTestEnv(t, "catalog_category_slug")

	category, err := env.categories.Create(CategoryInput{Name: "Rice & Grains"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if category.Slug != "rice-grains" {
		t.Fatalf("expected derived slug rice-grains, got %q", category.Slug)
	}

	explicit, err := env.categories.Create(CategoryInput{Name: "Snacks", Slug: "Merienda Corner"})
	if err != nil {
		t.Fatalf("create with slug: %v", err)
	}
	if explicit.Slug != "merienda-corner" {
		t.Fatalf("expected normalized slug merienda-corner, got %q", explicit.Slug)
	}

	if _, err := env.categories.Create(CategoryInput{Name: "   "}); err != ErrInvalidName {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}
	if _, err := env.categories.Create(CategoryInput{Name: "Rice and Grains", Slug: "rice-grains"}); err != ErrSlugTaken {
		t.Fatalf("expected ErrSlugTaken, got %v", err)
	}
}

func TestCategoryUpdateKeepsOwnSlug(t *testing.T) {
	env := newCatalogTestEnv(t, "catalog_category_update")
	category := env.mustCategory(t, "Vegetables")
	other := env.mustCategory(t, "Fruits")

	// Re-saving under its own slug is not a collision.
	updated, err := env.categories.Update(category.ID, CategoryInput{Name: "Vegetables", SortOrder: 5})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.SortOrder != 5 || updated.Slug != "vegetables" {
		t.Fatalf("unexpected update result: %+v", updated)
	}

	if _, err := env.categories.Update(other.ID, CategoryInput{Name: "Vegetables"}); err != ErrSlugTaken {
		t.Fatalf("expected ErrSlugTaken against sibling, got %v", err)
	}
	if _, err := env.categories.Update(9999, CategoryInput{Name: "Ghost"}); err != ErrCategoryNotFound {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestCategoryDeleteBlockedWhileInUse(t *testing.T) {
	env := newCatalogTestEnv(t, "catalog_category_delete")
	category := env.mustCategory(t, "Meat")

	if _, err := env.products.Create(ProductInput{
		CategoryID: category.ID,
		Name:       "Pork Liempo",
		Price:      price("380.00"),
		Stock:      10,
		IsActive:   true,
	}); err != nil {
		t.Fatalf("create product: %v", err)
	}

	if err := env.categories.Delete(category.ID); err != ErrCategoryInUse {
		t.Fatalf("expected ErrCategoryInUse, got %v", err)
	}

	empty := env.mustCategory(t, "Seasonal")
	if err := env.categories.Delete(empty.ID); err != nil {
		t.Fatalf("delete empty category: %v", err)
	}
	if _, err := env.categories.Get(empty.ID); err != ErrCategoryNotFound {
		t.Fatalf("expected ErrCategoryNotFound after delete, got %v", err)
	}
}

func TestProductValidation(t *testing.T) {
	env := newCatalogTestEnv(t, "catalog_product_validation")
	category := env.mustCategory(t, "Fruits")

	cases := []struct {
		name  string
		input ProductInput
		want  error
	}{
		{"blank name", ProductInput{CategoryID: category.ID, Price: price("10")}, ErrInvalidName},
		{"negative price", ProductInput{CategoryID: category.ID, Name: "Mango", Price: price("-1")}, ErrInvalidPrice},
		{"discount over 100", ProductInput{CategoryID: category.ID, Name: "Mango", Price: price("10"), Discount: 101}, ErrInvalidDiscount},
		{"negative discount", ProductInput{CategoryID: category.ID, Name: "Mango", Price: price("10"), Discount: -1}, ErrInvalidDiscount},
		{"negative stock", ProductInput{CategoryID: category.ID, Name: "Mango", Price: price("10"), Stock: -1}, ErrInvalidStock},
		{"missing category", ProductInput{CategoryID: 9999, Name: "Mango", Price: price("10")}, ErrCategoryNotFound},
	}
	for _, tc := range cases {
		if _, err := env.products.Create(tc.input); err != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestProductSlugUniqueAcrossCatalog(t *testing.T) {
	env := newCatalogTestEnv(t, "catalog_product_slug")
	category := env.mustCategory(t, "Fruits")

	first, err := env.products.Create(ProductInput{
		CategoryID: category.ID,
		Name:       "Carabao Mango",
		Price:      price("180.00"),
		Stock:      20,
		IsActive:   true,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if first.Slug != "carabao-mango" {
		t.Fatalf("expected derived slug carabao-mango, got %q", first.Slug)
	}

	if _, err := env.products.Create(ProductInput{
		CategoryID: category.ID,
		Name:       "Carabao Mango",
		Price:      price("200.00"),
		IsActive:   true,
	}); err != ErrSlugTaken {
		t.Fatalf("expected ErrSlugTaken, got %v", err)
	}

	// Updating without renaming keeps the slug available to itself.
	updated, err := env.products.Update(first.ID, ProductInput{
		CategoryID: category.ID,
		Name:       "Carabao Mango",
		Price:      price("190.00"),
		Stock:      15,
		IsActive:   true,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got := updated.Price.String(); got != "190.00" {
		t.Fatalf("unexpected price after update: %s", got)
	}
}

func TestListPublicHidesInactiveProducts(t *testing.T) {
	env := newCatalogTestEnv(t, "catalog_list_public")
	category := env.mustCategory(t, "Vegetables")

	if _, err := env.products.Create(ProductInput{
		CategoryID: category.ID,
		Name:       "Kangkong Bundle",
		Price:      price("25.00"),
		Stock:      30,
		IsActive:   true,
	}); err != nil {
		t.Fatalf("create active: %v", err)
	}
	if _, err := env.products.Create(ProductInput{
		CategoryID: category.ID,
		Name:       "Off Season Item",
		Price:      price("99.00"),
		Stock:      5,
		IsActive:   false,
	}); err != nil {
		t.Fatalf("create inactive: %v", err)
	}

	views, total, err := env.products.ListPublic(repository.ProductListFilter{Page: 1, PageSize: 20})
	if err != nil {
		t.Fatalf("list public: %v", err)
	}
	if total != 1 || len(views) != 1 {
		t.Fatalf("expected 1 public product, got total=%d len=%d", total, len(views))
	}
	if views[0].Slug != "kangkong-bundle" {
		t.Fatalf("unexpected product: %q", views[0].Slug)
	}
	if views[0].Category == nil || views[0].Category.ID != category.ID {
		t.Fatal("expected category to be preloaded")
	}

	adminItems, adminTotal, err := env.products.ListAdmin(repository.ProductListFilter{Page: 1, PageSize: 20})
	if err != nil {
		t.Fatalf("list admin: %v", err)
	}
	if adminTotal != 2 || len(adminItems) != 2 {
		t.Fatalf("expected admin list to include inactive, got total=%d", adminTotal)
	}
}

func TestGetPublicBySlugAppliesDiscount(t *testing.T) {
	env := newCatalogTestEnv(t, "catalog_public_slug")
	category := env.mustCategory(t, "Fruits")

	if _, err := env.products.Create(ProductInput{
		CategoryID: category.ID,
		Name:       "Saba Banana",
		Price:      price("60.00"),
		Discount:   15,
		Stock:      40,
		IsActive:   true,
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	view, err := env.products.GetPublicBySlug("saba-banana")
	if err != nil {
		t.Fatalf("get by slug: %v", err)
	}
	if got := view.SellingPrice.String(); got != "51.00" {
		t.Fatalf("expected selling price 51.00, got %s", got)
	}

	if _, err := env.products.GetPublicBySlug("no-such-item"); err != ErrProductNotFound {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}

	deactivated, err := env.products.Create(ProductInput{
		CategoryID: category.ID,
		Name:       "Hidden Item",
		Price:      price("10.00"),
		IsActive:   false,
	})
	if err != nil {
		t.Fatalf("create hidden: %v", err)
	}
	if _, err := env.products.GetPublicBySlug(deactivated.Slug); err != ErrProductNotFound {
		t.Fatalf("expected inactive product to be hidden, got %v", err)
	}
}
