package main

import (
	"github.com/palengke/storefront/internal/config"
	"github.com/palengke/storefront/internal/logger"
	"github.com/palengke/storefront/internal/models"

	"github.com/shopspring/decimal"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	categories := []models.Category{
		{Name: "Vegetables", Slug: "vegetables", SortOrder: 1},
		{Name: "Fruits", Slug: "fruits", SortOrder: 2},
		{Name: "Meat & Seafood", Slug: "meat-seafood", SortOrder: 3},
		{Name: "Rice & Grains", Slug: "rice-grains", SortOrder: 4},
		{Name: "Snacks & Drinks", Slug: "snacks-drinks", SortOrder: 5},
	}

	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("slug = ?", cat.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", cat.Slug, err)
			} else {
				stdLog.Printf("Created category: %s", cat.Slug)
			}
		} else {
			stdLog.Printf("Category already exists: %s", cat.Slug)
		}
	}

	categoryIDs := map[string]uint{}
	var categoryList []models.Category
	if err := models.DB.Find(&categoryList).Error; err != nil {
		stdLog.Printf("Failed to load categories: %v", err)
	}
	for _, cat := range categoryList {
		categoryIDs[cat.Slug] = cat.ID
	}

	products := []models.Product{
		{
			CategoryID:  categoryIDs["vegetables"],
			Name:        "Kangkong Bundle",
			Slug:        "kangkong-bundle",
			Description: "Fresh water spinach, harvested daily. One bundle is good for a family-size serving of adobong kangkong.",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(25)),
			Stock:       120,
			IsActive:    true,
			SortOrder:   1,
		},
		{
			CategoryID:  categoryIDs["vegetables"],
			Name:        "Ampalaya (per kg)",
			Slug:        "ampalaya-per-kg",
			Description: "Bitter gourd, perfect for ginisang ampalaya with egg.",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(90)),
			Discount:    10,
			Stock:       60,
			IsActive:    true,
			SortOrder:   2,
		},
		{
			CategoryID:  categoryIDs["fruits"],
			Name:        "Carabao Mango (per kg)",
			Slug:        "carabao-mango-per-kg",
			Description: "Sweet ripe mangoes from Guimaras.",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(180)),
			Stock:       45,
			IsActive:    true,
			SortOrder:   1,
		},
		{
			CategoryID:  categoryIDs["fruits"],
			Name:        "Saba Banana Bundle",
			Slug:        "saba-banana-bundle",
			Description: "Cooking bananas for turon and minatamis.",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(60)),
			Discount:    15,
			Stock:       80,
			IsActive:    true,
			SortOrder:   2,
		},
		{
			CategoryID:  categoryIDs["meat-seafood"],
			Name:        "Bangus (per piece)",
			Slug:        "bangus-per-piece",
			Description: "Deboned milkfish, ready for daing or sinigang.",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(150)),
			Stock:       35,
			IsActive:    true,
			SortOrder:   1,
		},
		{
			CategoryID:  categoryIDs["meat-seafood"],
			Name:        "Pork Liempo (per kg)",
			Slug:        "pork-liempo-per-kg",
			Description: "Fresh pork belly cut for grilling.",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(380)),
			Discount:    5,
			Stock:       25,
			IsActive:    true,
			SortOrder:   2,
		},
		{
			CategoryID:  categoryIDs["rice-grains"],
			Name:        "Dinorado Rice (5 kg)",
			Slug:        "dinorado-rice-5kg",
			Description: "Premium aromatic rice, 5 kilogram sack.",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(320)),
			Stock:       50,
			IsActive:    true,
			SortOrder:   1,
		},
		{
			CategoryID:  categoryIDs["snacks-drinks"],
			Name:        "Calamansi Juice Concentrate",
			Slug:        "calamansi-juice-concentrate",
			Description: "Home-made concentrate, makes two pitchers.",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(110)),
			Discount:    20,
			Stock:       40,
			IsActive:    true,
			SortOrder:   1,
		},
	}

	for _, product := range products {
		var existing models.Product
		if err := models.DB.Where("slug = ?", product.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&product).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", product.Slug, err)
			} else {
				stdLog.Printf("Created product: %s", product.Slug)
			}
		} else {
			stdLog.Printf("Product already exists: %s", product.Slug)
		}
	}

	stdLog.Printf("Seed finished")
}
