package main

import (
	"fmt"

	"github.com/petpaw-pos/internal/config"
	"github.com/petpaw-pos/internal/constants"
	"github.com/petpaw-pos/internal/logger"
	"github.com/petpaw-pos/internal/models"

	"github.com/shopspring/decimal"
)

func main() {
	// 连接数据库
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

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加分类
	categories := []models.Category{
		{Slug: "pet-food", Name: "宠物主粮", SortOrder: 100},
		{Slug: "pet-snacks", Name: "零食营养", SortOrder: 90},
		{Slug: "pet-toys", Name: "玩具用品", SortOrder: 80},
		{Slug: "pet-grooming", Name: "清洁美容", SortOrder: 70},
		{Slug: "pet-health", Name: "医疗保健", SortOrder: 60},
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

	// 获取分类ID
	categoryIDs := map[string]uint{}
	var categoryList []models.Category
	if err := models.DB.Find(&categoryList).Error; err != nil {
		stdLog.Printf("Failed to load categories: %v", err)
	}
	for _, cat := range categoryList {
		categoryIDs[cat.Slug] = cat.ID
	}

	// 添加商品
	products := []models.Product{
		{
			CategoryID:    categoryIDs["pet-food"],
			SKU:           "FOOD-001",
			Name:          "皇家幼犬粮 2kg",
			Description:   "适合 2-12 月龄幼犬，均衡营养配方",
			PriceAmount:   models.NewMoneyFromDecimal(decimal.NewFromInt(185000)),
			StockQuantity: 24,
			Attributes:    models.JSON{"pet": "dog", "weight": "2kg"},
			IsActive:      true,
			SortOrder:     100,
		},
		{
			CategoryID:    categoryIDs["pet-food"],
			SKU:           "FOOD-002",
			Name:          "成猫全价猫粮 1.5kg",
			Description:   "深海鱼配方，呵护毛发亮泽",
			PriceAmount:   models.NewMoneyFromDecimal(decimal.NewFromInt(132000)),
			StockQuantity: 18,
			Attributes:    models.JSON{"pet": "cat", "weight": "1.5kg"},
			IsActive:      true,
			SortOrder:     95,
		},
		{
			CategoryID:    categoryIDs["pet-snacks"],
			SKU:           "SNACK-001",
			Name:          "鸡肉冻干零食 100g",
			Description:   "无添加纯鸡胸肉冻干，犬猫通用",
			PriceAmount:   models.NewMoneyFromDecimal(decimal.NewFromInt(45000)),
			StockQuantity: 40,
			Attributes:    models.JSON{"pet": "all", "weight": "100g"},
			IsActive:      true,
			SortOrder:     90,
		},
		{
			CategoryID:    categoryIDs["pet-toys"],
			SKU:           "TOY-001",
			Name:          "逗猫棒羽毛款",
			Description:   "天然羽毛，伸缩杆设计",
			PriceAmount:   models.NewMoneyFromDecimal(decimal.NewFromInt(25000)),
			StockQuantity: 8,
			Attributes:    models.JSON{"pet": "cat"},
			IsActive:      true,
			SortOrder:     85,
		},
		{
			CategoryID:    categoryIDs["pet-toys"],
			SKU:           "TOY-002",
			Name:          "耐咬橡胶球",
			Description:   "中大型犬适用，耐咬耐磨",
			PriceAmount:   models.NewMoneyFromDecimal(decimal.NewFromInt(35000)),
			StockQuantity: 0,
			Attributes:    models.JSON{"pet": "dog"},
			IsActive:      true,
			SortOrder:     80,
		},
		{
			CategoryID:    categoryIDs["pet-grooming"],
			SKU:           "GROOM-001",
			Name:          "宠物沐浴露 500ml",
			Description:   "温和无泪配方，犬猫通用",
			PriceAmount:   models.NewMoneyFromDecimal(decimal.NewFromInt(68000)),
			StockQuantity: 15,
			Attributes:    models.JSON{"pet": "all", "volume": "500ml"},
			IsActive:      true,
			SortOrder:     75,
		},
		{
			CategoryID:    categoryIDs["pet-health"],
			SKU:           "HEALTH-001",
			Name:          "体内驱虫片（犬用）",
			Description:   "广谱驱虫，10kg 以下犬只适用",
			PriceAmount:   models.NewMoneyFromDecimal(decimal.NewFromInt(95000)),
			StockQuantity: 6,
			Attributes:    models.JSON{"pet": "dog"},
			IsActive:      true,
			SortOrder:     70,
		},
	}

	for _, prod := range products {
		if prod.CategoryID == 0 {
			stdLog.Printf("Skip product %s: category_id missing", prod.SKU)
			continue
		}
		var existing models.Product
		if err := models.DB.Where("sku = ?", prod.SKU).First(&existing).Error; err != nil {
			if err := models.DB.Create(&prod).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", prod.SKU, err)
			} else {
				stdLog.Printf("Created product: %s", prod.SKU)
			}
		} else {
			existing.CategoryID = prod.CategoryID
			existing.Name = prod.Name
			existing.Description = prod.Description
			existing.PriceAmount = prod.PriceAmount
			existing.StockQuantity = prod.StockQuantity
			existing.Attributes = prod.Attributes
			existing.IsActive = prod.IsActive
			existing.SortOrder = prod.SortOrder
			if err := models.DB.Save(&existing).Error; err != nil {
				stdLog.Printf("Failed to update product %s: %v", prod.SKU, err)
			} else {
				stdLog.Printf("Updated product: %s", prod.SKU)
			}
		}
	}

	// 初始化店铺设置
	settings := map[string]interface{}{
		constants.SettingKeyShopName:          "PetPaw Pet Shop",
		constants.SettingKeyShopAddress:       "Jl. Melati No. 8, Jakarta",
		constants.SettingKeyShopPhone:         "+62 812-0000-0000",
		constants.SettingKeyCurrency:          "IDR",
		constants.SettingKeyReceiptFooter:     "Thank you for shopping with us!",
		constants.SettingKeyLowStockThreshold: 10,
	}

	for key, value := range settings {
		var setting models.Setting
		if err := models.DB.Where("key = ?", key).First(&setting).Error; err != nil {
			setting = models.Setting{
				Key:       key,
				ValueJSON: models.JSON{"value": value},
			}
			if err := models.DB.Create(&setting).Error; err != nil {
				stdLog.Printf("Failed to create setting %s: %v", key, err)
			} else {
				stdLog.Printf("Created setting: %s", key)
			}
		} else {
			setting.ValueJSON = models.JSON{"value": value}
			if err := models.DB.Save(&setting).Error; err != nil {
				stdLog.Printf("Failed to update setting %s: %v", key, err)
			} else {
				stdLog.Printf("Updated setting: %s", key)
			}
		}
	}

	// 初始化默认收银员
	if err := models.InitDefaultCashier("", ""); err != nil {
		stdLog.Printf("Failed to init default cashier: %v", err)
	}

	fmt.Println("\n✅ Seed data created successfully!")
	fmt.Println("Summary:")
	fmt.Println("- 5 Categories")
	fmt.Println("- 7 Products (含低库存与售罄示例)")
	fmt.Println("- 6 Shop settings")
	fmt.Println("- Default cashier account")
}
