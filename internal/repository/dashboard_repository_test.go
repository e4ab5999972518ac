package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/petpaw-pos/internal/constants"
	"github.com/petpaw-pos/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupDashboardRepositoryTest(t *testing.T, name string) (*GormDashboardRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:dashboard_repo_%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Cashier{},
		&models.Category{},
		&models.Product{},
		&models.Transaction{},
		&models.TransactionItem{},
	); err != nil {
		t.Fatalf("migrate dashboard models failed: %v", err)
	}
	return NewDashboardRepository(db), db
}

func createDashboardTransaction(t *testing.T, db *gorm.DB, no string, cashierID uint, createdAt time.Time, total int64, itemCount int) *models.Transaction {
	t.Helper()
	trx := &models.Transaction{
		TransactionNo: no,
		CashierID:     cashierID,
		TotalAmount:   models.NewMoneyFromDecimal(decimal.NewFromInt(total)),
		PaymentMethod: constants.PaymentMethodCash,
		CashReceived:  models.NewMoneyFromDecimal(decimal.NewFromInt(total)),
		ItemCount:     itemCount,
	}
	if err := db.Create(trx).Error; err != nil {
		t.Fatalf("create transaction failed: %v", err)
	}
	if err := db.Model(&models.Transaction{}).
		Where("id = ?", trx.ID).
		Update("created_at", createdAt).Error; err != nil {
		t.Fatalf("backdate transaction failed: %v", err)
	}
	return trx
}

func TestDashboardGetOverviewAggregates(t *testing.T) {
	repo, db := setupDashboardRepositoryTest(t, "overview")

	cashier := models.Cashier{Username: "overview-cashier", PasswordHash: "x", IsActive: true}
	if err := db.Create(&cashier).Error; err != nil {
		t.Fatalf("create cashier failed: %v", err)
	}
	for _, p := range []models.Product{
		{CategoryID: 1, SKU: "OV-001", Name: "Active", StockQuantity: 3, IsActive: true},
		{CategoryID: 1, SKU: "OV-002", Name: "Inactive", StockQuantity: 9, IsActive: false},
	} {
		product := p
		if err := db.Create(&product).Error; err != nil {
			t.Fatalf("create product failed: %v", err)
		}
	}

	now := time.Now()
	createDashboardTransaction(t, db, "TRX-OV-001", cashier.ID, now.Add(-time.Hour), 115000, 3)
	createDashboardTransaction(t, db, "TRX-OV-002", cashier.ID, now.Add(-30*time.Minute), 85000, 2)
	// 窗口之外的交易不计入
	createDashboardTransaction(t, db, "TRX-OV-003", cashier.ID, now.Add(-48*time.Hour), 999999, 9)

	overview, err := repo.GetOverview(now.Add(-24*time.Hour), now)
	if err != nil {
		t.Fatalf("get overview failed: %v", err)
	}
	if overview.TransactionsTotal != 2 {
		t.Fatalf("transactions total want 2 got %d", overview.TransactionsTotal)
	}
	if overview.SalesTotal != 200000 {
		t.Fatalf("sales total want 200000 got %f", overview.SalesTotal)
	}
	if overview.ItemsSold != 5 {
		t.Fatalf("items sold want 5 got %d", overview.ItemsSold)
	}
	if overview.ActiveProducts != 1 {
		t.Fatalf("active products want 1 got %d", overview.ActiveProducts)
	}
	if overview.ActiveCashiers != 1 {
		t.Fatalf("active cashiers want 1 got %d", overview.ActiveCashiers)
	}
}

func TestDashboardGetSalesTrendsGroupsByDay(t *testing.T) {
	repo, db := setupDashboardRepositoryTest(t, "trends")

	day1 := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 3, 6, 15, 0, 0, 0, time.UTC)
	createDashboardTransaction(t, db, "TRX-TR-001", 1, day1, 50000, 1)
	createDashboardTransaction(t, db, "TRX-TR-002", 1, day1.Add(2*time.Hour), 30000, 1)
	createDashboardTransaction(t, db, "TRX-TR-003", 1, day2, 70000, 2)

	trends, err := repo.GetSalesTrends(day1.Add(-time.Hour), day2.Add(time.Hour))
	if err != nil {
		t.Fatalf("get sales trends failed: %v", err)
	}
	if len(trends) != 2 {
		t.Fatalf("trend rows want 2 got %d", len(trends))
	}
	if trends[0].Day != "2024-03-05" || trends[0].TransactionsTotal != 2 || trends[0].SalesTotal != 80000 {
		t.Fatalf("day1 trend mismatch: %+v", trends[0])
	}
	if trends[1].Day != "2024-03-06" || trends[1].TransactionsTotal != 1 {
		t.Fatalf("day2 trend mismatch: %+v", trends[1])
	}
}

func TestDashboardGetStockStats(t *testing.T) {
	repo, db := setupDashboardRepositoryTest(t, "stock")

	products := []models.Product{
		{CategoryID: 1, SKU: "ST-001", Name: "OutOfStock", StockQuantity: 0, IsActive: true},
		{CategoryID: 1, SKU: "ST-002", Name: "Low", StockQuantity: 5, IsActive: true},
		{CategoryID: 1, SKU: "ST-003", Name: "Healthy", StockQuantity: 30, IsActive: true},
		{CategoryID: 1, SKU: "ST-004", Name: "InactiveLow", StockQuantity: 2, IsActive: false},
	}
	for _, p := range products {
		product := p
		if err := db.Create(&product).Error; err != nil {
			t.Fatalf("create product failed: %v", err)
		}
	}

	stats, err := repo.GetStockStats(10)
	if err != nil {
		t.Fatalf("get stock stats failed: %v", err)
	}
	if stats.OutOfStockProducts != 1 {
		t.Fatalf("out of stock want 1 got %d", stats.OutOfStockProducts)
	}
	if stats.LowStockProducts != 1 {
		t.Fatalf("low stock want 1 got %d", stats.LowStockProducts)
	}
	if stats.StockUnitsTotal != 35 {
		t.Fatalf("stock units want 35 got %d", stats.StockUnitsTotal)
	}
}

func TestDashboardGetTopProductsOrdersBySales(t *testing.T) {
	repo, db := setupDashboardRepositoryTest(t, "top")

	now := time.Now()
	trx := createDashboardTransaction(t, db, "TRX-TOP-001", 1, now.Add(-time.Hour), 180000, 5)
	items := []models.TransactionItem{
		{TransactionID: trx.ID, ProductID: 1, ProductName: "Dog Food", ProductSKU: "TP-001",
			UnitPrice: models.NewMoneyFromDecimal(decimal.NewFromInt(50000)), Quantity: 3,
			LineTotal: models.NewMoneyFromDecimal(decimal.NewFromInt(150000))},
		{TransactionID: trx.ID, ProductID: 2, ProductName: "Cat Toy", ProductSKU: "TP-002",
			UnitPrice: models.NewMoneyFromDecimal(decimal.NewFromInt(15000)), Quantity: 2,
			LineTotal: models.NewMoneyFromDecimal(decimal.NewFromInt(30000))},
	}
	for _, item := range items {
		row := item
		if err := db.Create(&row).Error; err != nil {
			t.Fatalf("create transaction item failed: %v", err)
		}
	}

	top, err := repo.GetTopProducts(now.Add(-24*time.Hour), now, 5)
	if err != nil {
		t.Fatalf("get top products failed: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("top products want 2 got %d", len(top))
	}
	if top[0].Name != "Dog Food" || top[0].Quantity != 3 {
		t.Fatalf("top product mismatch: %+v", top[0])
	}
	if top[1].Name != "Cat Toy" {
		t.Fatalf("second product want Cat Toy got %s", top[1].Name)
	}
}

func TestDashboardGetRecentTransactionsLimit(t *testing.T) {
	repo, db := setupDashboardRepositoryTest(t, "recent")

	now := time.Now()
	for i := 0; i < 7; i++ {
		createDashboardTransaction(t, db, fmt.Sprintf("TRX-RC-%03d", i), 1, now.Add(-time.Duration(i)*time.Hour), 10000, 1)
	}

	recent, err := repo.GetRecentTransactions(5)
	if err != nil {
		t.Fatalf("get recent transactions failed: %v", err)
	}
	if len(recent) != 5 {
		t.Fatalf("recent want 5 got %d", len(recent))
	}
	if recent[0].TransactionNo != "TRX-RC-000" {
		t.Fatalf("most recent want TRX-RC-000 got %s", recent[0].TransactionNo)
	}
}
