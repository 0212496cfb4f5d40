package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/palengke/storefront/internal/models"
	"github.com/palengke/storefront/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newCartTestEnv(t *testing.T, name string) (*gorm.DB, *CartService) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}, &models.CartItem{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return db, NewCartService(repository.NewCartRepository(db), repository.NewProductRepository(db))
}

func createCartProduct(t *testing.T, db *gorm.DB, slug string, price float64, discount int, active bool) *models.Product {
	t.Helper()
	category := models.Category{Name: "Produce", Slug: "cat-" + slug}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	product := models.Product{
		CategoryID: category.ID,
		Name:       slug,
		Slug:       slug,
		Price:      models.NewMoneyFromDecimal(decimal.NewFromFloat(price)),
		Discount:   discount,
		Stock:      100,
		IsActive:   active,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return &product
}

func TestAddItemMergesQuantity(t *testing.T) {
	db, carts := newCartTestEnv(t, "cart_merge")
	product := createCartProduct(t, db, "kangkong", 25, 0, true)

	if err := carts.AddItem(1, product.ID, 2); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	if err := carts.AddItem(1, product.ID, 3); err != nil {
		t.Fatalf("second add failed: %v", err)
	}

	summary, err := carts.ListByUser(1)
	if err != nil {
		t.Fatalf("list cart failed: %v", err)
	}
	if len(summary.Items) != 1 {
		t.Fatalf("merged cart should have 1 line, got %d", len(summary.Items))
	}
	if summary.Items[0].Quantity != 5 {
		t.Fatalf("quantity want 5 got %d", summary.Items[0].Quantity)
	}
}

func TestAddItemRejectsInactiveProduct(t *testing.T) {
	db, carts := newCartTestEnv(t, "cart_inactive")
	product := createCartProduct(t, db, "off-shelf", 40, 0, false)

	if err := carts.AddItem(1, product.ID, 1); !errors.Is(err, ErrProductNotActive) {
		t.Fatalf("want ErrProductNotActive got %v", err)
	}
	if err := carts.AddItem(1, 999, 1); !errors.Is(err, ErrProductNotActive) {
		t.Fatalf("missing product want ErrProductNotActive got %v", err)
	}
	if err := carts.AddItem(1, product.ID, 0); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("want ErrInvalidQuantity got %v", err)
	}
}

func TestListByUserPricesAndSubtotal(t *testing.T) {
	db, carts := newCartTestEnv(t, "cart_pricing")
	discounted := createCartProduct(t, db, "mango", 100, 20, true)
	plain := createCartProduct(t, db, "rice", 320, 0, true)

	if err := carts.AddItem(7, discounted.ID, 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := carts.AddItem(7, plain.ID, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	summary, err := carts.ListByUser(7)
	if err != nil {
		t.Fatalf("list cart failed: %v", err)
	}
	if len(summary.Items) != 2 {
		t.Fatalf("line count want 2 got %d", len(summary.Items))
	}
	if summary.Subtotal.String() != "480.00" {
		t.Fatalf("subtotal want 480.00 got %s", summary.Subtotal.String())
	}
	for _, item := range summary.Items {
		if item.ProductID == discounted.ID {
			if item.UnitPrice.String() != "80.00" {
				t.Fatalf("discounted unit price want 80.00 got %s", item.UnitPrice.String())
			}
			if item.ListPrice.String() != "100.00" {
				t.Fatalf("list price want 100.00 got %s", item.ListPrice.String())
			}
		}
	}
}

func TestListByUserDropsDeactivatedLines(t *testing.T) {
	db, carts := newCartTestEnv(t, "cart_drop")
	product := createCartProduct(t, db, "seasonal", 55, 0, true)

	if err := carts.AddItem(3, product.ID, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := db.Model(&models.Product{}).Where("id = ?", product.ID).
		Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}

	summary, err := carts.ListByUser(3)
	if err != nil {
		t.Fatalf("list cart failed: %v", err)
	}
	if len(summary.Items) != 0 {
		t.Fatalf("deactivated line should be dropped, got %d", len(summary.Items))
	}

	var count int64
	if err := db.Model(&models.CartItem{}).Where("user_id = ?", 3).Count(&count).Error; err != nil {
		t.Fatalf("count cart rows failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("stale cart row should be deleted, got %d", count)
	}
}

func TestUpdateAndRemoveCartLines(t *testing.T) {
	db, carts := newCartTestEnv(t, "cart_update")
	product := createCartProduct(t, db, "bangus", 150, 0, true)

	if err := carts.UpdateQuantity(2, product.ID, 4); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("update missing line want ErrCartItemNotFound got %v", err)
	}
	if err := carts.RemoveItem(2, product.ID); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("remove missing line want ErrCartItemNotFound got %v", err)
	}

	if err := carts.AddItem(2, product.ID, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := carts.UpdateQuantity(2, product.ID, 4); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	summary, err := carts.ListByUser(2)
	if err != nil {
		t.Fatalf("list cart failed: %v", err)
	}
	if summary.Items[0].Quantity != 4 {
		t.Fatalf("quantity want 4 got %d", summary.Items[0].Quantity)
	}

	if err := carts.RemoveItem(2, product.ID); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	summary, err = carts.ListByUser(2)
	if err != nil {
		t.Fatalf("list cart failed: %v", err)
	}
	if len(summary.Items) != 0 {
		t.Fatalf("cart should be empty after remove, got %d", len(summary.Items))
	}
}
