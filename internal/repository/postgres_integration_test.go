//go:build integration
// +build integration

package repository

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/petpaw-pos/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupPostgresIntegrationDB 初始化 PostgreSQL 集成测试数据库。
func setupPostgresIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("skip postgres integration test: TEST_POSTGRES_DSN is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open postgres failed: %v", err)
	}

	cleanupModels := []interface{}{
		&models.TransactionItem{},
		&models.Transaction{},
		&models.CartItem{},
		&models.Product{},
		&models.Category{},
		&models.Cashier{},
	}
	_ = db.Migrator().DropTable(cleanupModels...)

	if err := db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.Cashier{},
		&models.CartItem{},
		&models.Transaction{},
		&models.TransactionItem{},
	); err != nil {
		t.Fatalf("migrate postgres models failed: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Migrator().DropTable(cleanupModels...)
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

func TestPostgresProductSearch(t *testing.T) {
	db := setupPostgresIntegrationDB(t)

	category := &models.Category{Slug: "pg-food", Name: "宠物主粮"}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}

	productRepo := NewProductRepository(db)
	product := &models.Product{
		CategoryID:    category.ID,
		SKU:           "PG-FOOD-001",
		Name:          "皇家幼犬粮 2kg",
		Description:   "幼犬均衡营养配方",
		PriceAmount:   models.NewMoneyFromDecimal(decimal.NewFromInt(185000)),
		StockQuantity: 12,
		IsActive:      true,
	}
	if err := productRepo.Create(product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	rows, total, err := productRepo.List(ProductListFilter{Page: 1, Search: "幼犬"})
	if err != nil {
		t.Fatalf("product list search by name failed: %v", err)
	}
	if total != 1 || len(rows) != 1 {
		t.Fatalf("product list search by name want 1 got total=%d len=%d", total, len(rows))
	}

	// ILIKE 应忽略大小写
	rows, total, err = productRepo.List(ProductListFilter{Page: 1, Search: "pg-food"})
	if err != nil {
		t.Fatalf("product list search by sku failed: %v", err)
	}
	if total != 1 || len(rows) != 1 {
		t.Fatalf("product list search by sku want 1 got total=%d len=%d", total, len(rows))
	}
}

func TestPostgresDashboardQueries(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	repo := NewDashboardRepository(db)
	now := time.Now().UTC().Truncate(time.Second)

	category := &models.Category{Slug: "pg-dashboard", Name: "仪表盘分类"}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}

	product := &models.Product{
		CategoryID:    category.ID,
		SKU:           "PG-DASH-001",
		Name:          "仪表盘商品",
		PriceAmount:   models.NewMoneyFromDecimal(decimal.NewFromInt(50000)),
		StockQuantity: 5,
		IsActive:      true,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	cashier := &models.Cashier{Username: "pg-cashier", PasswordHash: "x", IsActive: true}
	if err := db.Create(cashier).Error; err != nil {
		t.Fatalf("create cashier failed: %v", err)
	}

	trx := &models.Transaction{
		TransactionNo: "TRX-PG-001",
		CashierID:     cashier.ID,
		TotalAmount:   models.NewMoneyFromDecimal(decimal.NewFromInt(100000)),
		PaymentMethod: "cash",
		CashReceived:  models.NewMoneyFromDecimal(decimal.NewFromInt(100000)),
		ChangeAmount:  models.NewMoneyFromDecimal(decimal.Zero),
		ItemCount:     2,
		CreatedAt:     now,
	}
	if err := db.Create(trx).Error; err != nil {
		t.Fatalf("create transaction failed: %v", err)
	}
	item := &models.TransactionItem{
		TransactionID: trx.ID,
		ProductID:     product.ID,
		ProductName:   product.Name,
		ProductSKU:    product.SKU,
		UnitPrice:     models.NewMoneyFromDecimal(decimal.NewFromInt(50000)),
		Quantity:      2,
		LineTotal:     models.NewMoneyFromDecimal(decimal.NewFromInt(100000)),
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("create transaction item failed: %v", err)
	}

	startAt := now.Add(-time.Hour)
	endAt := now.Add(time.Hour)

	overview, err := repo.GetOverview(startAt, endAt)
	if err != nil {
		t.Fatalf("get overview failed: %v", err)
	}
	if overview.TransactionsTotal != 1 || overview.ItemsSold != 2 {
		t.Fatalf("overview mismatch: %+v", overview)
	}

	trends, err := repo.GetSalesTrends(startAt, endAt)
	if err != nil {
		t.Fatalf("get sales trends failed: %v", err)
	}
	if len(trends) == 0 {
		t.Fatalf("sales trends should not be empty")
	}
	if strings.TrimSpace(trends[0].Day) == "" {
		t.Fatalf("trend day should not be empty")
	}

	topProducts, err := repo.GetTopProducts(startAt, endAt, 5)
	if err != nil {
		t.Fatalf("get top products failed: %v", err)
	}
	if len(topProducts) != 1 {
		t.Fatalf("top products len want 1 got %d", len(topProducts))
	}
	if topProducts[0].Name != "仪表盘商品" {
		t.Fatalf("top product name want 仪表盘商品 got %s", topProducts[0].Name)
	}
}
