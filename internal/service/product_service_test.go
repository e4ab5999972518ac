package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/petpaw-pos/internal/constants"
	"github.com/petpaw-pos/internal/models"
	"github.com/petpaw-pos/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupProductServiceTest(t *testing.T, name string) (*gorm.DB, *ProductService) {
	t.Helper()

	dsn := fmt.Sprintf("file:product_service_%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return db, NewProductService(repository.NewProductRepository(db), nil, 10)
}

func TestStockStatusOf(t *testing.T) {
	_, svc := setupProductServiceTest(t, "badge")

	cases := []struct {
		stock    int
		expected string
	}{
		{0, constants.StockStatusOutOfStock},
		{-1, constants.StockStatusOutOfStock},
		{1, constants.StockStatusLowStock},
		{10, constants.StockStatusLowStock},
		{11, constants.StockStatusInStock},
	}
	for _, tc := range cases {
		got := svc.StockStatusOf(&models.Product{StockQuantity: tc.stock})
		if got != tc.expected {
			t.Fatalf("stock %d: expected %s, got %s", tc.stock, tc.expected, got)
		}
	}
	if svc.StockStatusOf(nil) != constants.StockStatusOutOfStock {
		t.Fatalf("expected nil product to report out_of_stock")
	}
}

func TestStockLevelOf(t *testing.T) {
	_, svc := setupProductServiceTest(t, "level")

	cases := []struct {
		stock    int
		expected string
	}{
		{0, constants.StockLevelLow},
		{9, constants.StockLevelLow},
		{10, constants.StockLevelMedium},
		{29, constants.StockLevelMedium},
		{30, constants.StockLevelHigh},
		{100, constants.StockLevelHigh},
	}
	for _, tc := range cases {
		got := svc.StockLevelOf(&models.Product{StockQuantity: tc.stock})
		if got != tc.expected {
			t.Fatalf("stock %d: expected %s, got %s", tc.stock, tc.expected, got)
		}
	}
}

func TestProductCreateRejectsDuplicateSKU(t *testing.T) {
	_, svc := setupProductServiceTest(t, "sku")

	stock := 5
	_, err := svc.Create(CreateProductInput{
		SKU:           "PSVC-001",
		Name:          "Cat Litter 10L",
		PriceAmount:   decimal.NewFromInt(45000),
		StockQuantity: &stock,
	})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}

	_, err = svc.Create(CreateProductInput{
		SKU:         "PSVC-001",
		Name:        "Another",
		PriceAmount: decimal.NewFromInt(1000),
	})
	if !errors.Is(err, ErrSKUExists) {
		t.Fatalf("expected sku exists, got: %v", err)
	}
}

func TestProductCreateValidatesInput(t *testing.T) {
	_, svc := setupProductServiceTest(t, "validate")

	_, err := svc.Create(CreateProductInput{SKU: "", Name: "No SKU", PriceAmount: decimal.NewFromInt(1000)})
	if !errors.Is(err, ErrProductInvalid) {
		t.Fatalf("expected invalid for empty sku, got: %v", err)
	}
	_, err = svc.Create(CreateProductInput{SKU: "PSVC-002", Name: "", PriceAmount: decimal.NewFromInt(1000)})
	if !errors.Is(err, ErrProductInvalid) {
		t.Fatalf("expected invalid for empty name, got: %v", err)
	}
	_, err = svc.Create(CreateProductInput{SKU: "PSVC-003", Name: "Negative", PriceAmount: decimal.NewFromInt(-1)})
	if !errors.Is(err, ErrProductInvalid) {
		t.Fatalf("expected invalid for negative price, got: %v", err)
	}
}

func TestListCatalogOnlyReturnsActiveProducts(t *testing.T) {
	db, svc := setupProductServiceTest(t, "catalog")

	leash := models.Product{SKU: "PSVC-011", Name: "Dog Leash", PriceAmount: models.NewMoneyFromInt(30000), StockQuantity: 3, IsActive: true}
	hidden := models.Product{SKU: "PSVC-012", Name: "Old Collar", PriceAmount: models.NewMoneyFromInt(10000), StockQuantity: 2, IsActive: false}
	soldOut := models.Product{SKU: "PSVC-013", Name: "Aquarium", PriceAmount: models.NewMoneyFromInt(250000), StockQuantity: 0, IsActive: true}
	for _, p := range []*models.Product{&leash, &hidden, &soldOut} {
		if err := db.Create(p).Error; err != nil {
			t.Fatalf("create product failed: %v", err)
		}
	}

	views, total, err := svc.ListCatalog("", "", "", 1, 20)
	if err != nil {
		t.Fatalf("list catalog error: %v", err)
	}
	if total != 1 {
		t.Fatalf("expected 1 sellable product, got %d", total)
	}
	if views[0].SKU != "PSVC-011" {
		t.Fatalf("expected sellable product, got %s", views[0].SKU)
	}
	if views[0].StockStatus != constants.StockStatusLowStock {
		t.Fatalf("expected low_stock badge, got %s", views[0].StockStatus)
	}
}

func TestListCatalogOrdersByName(t *testing.T) {
	db, svc := setupProductServiceTest(t, "catalog_order")

	names := []string{"Cat Tree", "Bird Cage", "Dog Bowl"}
	for i, name := range names {
		p := models.Product{
			SKU:           fmt.Sprintf("PSVC-03%d", i),
			Name:          name,
			PriceAmount:   models.NewMoneyFromInt(10000),
			StockQuantity: 5,
			IsActive:      true,
			SortOrder:     i,
		}
		if err := db.Create(&p).Error; err != nil {
			t.Fatalf("create product failed: %v", err)
		}
	}

	views, _, err := svc.ListCatalog("", "", "", 1, 20)
	if err != nil {
		t.Fatalf("list catalog error: %v", err)
	}
	got := make([]string, 0, len(views))
	for _, v := range views {
		got = append(got, v.Name)
	}
	expected := []string{"Bird Cage", "Cat Tree", "Dog Bowl"}
	for i := range expected {
		if got[i] != expected[i] {
			t.Fatalf("expected order %v, got %v", expected, got)
		}
	}
}

func TestProductDeleteAndGet(t *testing.T) {
	_, svc := setupProductServiceTest(t, "delete")

	product, err := svc.Create(CreateProductInput{
		SKU:         "PSVC-021",
		Name:        "Bird Seed",
		PriceAmount: decimal.NewFromInt(12000),
	})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}

	if err := svc.Delete(product.ID); err != nil {
		t.Fatalf("delete error: %v", err)
	}
	_, err = svc.Get(product.ID)
	if !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected not found after delete, got: %v", err)
	}
}

func TestLowStockThresholdFollowsSettingUpdates(t *testing.T) {
	db, _ := setupProductServiceTest(t, "threshold")
	if err := db.AutoMigrate(&models.Setting{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	settingService := NewSettingService(repository.NewSettingRepository(db))
	svc := NewProductService(repository.NewProductRepository(db), settingService, 10)

	product := &models.Product{StockQuantity: 15}
	if got := svc.StockStatusOf(product); got != constants.StockStatusInStock {
		t.Fatalf("expected in_stock before threshold change, got %s", got)
	}

	if _, err := settingService.Update(constants.SettingKeyLowStockThreshold, 20); err != nil {
		t.Fatalf("update setting failed: %v", err)
	}

	if got := svc.LowStockThreshold(); got != 20 {
		t.Fatalf("expected threshold 20 after settings update, got %d", got)
	}
	if got := svc.StockStatusOf(product); got != constants.StockStatusLowStock {
		t.Fatalf("expected low_stock after threshold change, got %s", got)
	}
}
