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

func setupTransactionRepositoryTest(t *testing.T) (*GormTransactionRepository, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Cashier{}, &models.Transaction{}, &models.TransactionItem{}); err != nil {
		t.Fatalf("migrate transaction failed: %v", err)
	}
	return NewTransactionRepository(db), db
}

func createTestTransaction(t *testing.T, repo *GormTransactionRepository, no string, createdAt time.Time, total int64) *models.Transaction {
	t.Helper()
	transaction := &models.Transaction{
		TransactionNo: no,
		CashierID:     1,
		TotalAmount:   models.NewMoneyFromDecimal(decimal.NewFromInt(total)),
		PaymentMethod: constants.PaymentMethodCash,
		CashReceived:  models.NewMoneyFromDecimal(decimal.NewFromInt(total)),
		ItemCount:     1,
	}
	items := []models.TransactionItem{
		{
			ProductID:   1,
			ProductName: "Dog Food",
			ProductSKU:  "PF-TRX-001",
			UnitPrice:   models.NewMoneyFromDecimal(decimal.NewFromInt(total)),
			Quantity:    1,
			LineTotal:   models.NewMoneyFromDecimal(decimal.NewFromInt(total)),
		},
	}
	if err := repo.Create(transaction, items); err != nil {
		t.Fatalf("create transaction failed: %v", err)
	}
	if !createdAt.IsZero() {
		if err := repo.db.Model(&models.Transaction{}).
			Where("id = ?", transaction.ID).
			Update("created_at", createdAt).Error; err != nil {
			t.Fatalf("backdate transaction failed: %v", err)
		}
	}
	return transaction
}

func TestCreateAssignsTransactionIDToItems(t *testing.T) {
	repo, db := setupTransactionRepositoryTest(t)
	transaction := createTestTransaction(t, repo, "TRX-CREATE-001", time.Time{}, 115000)

	var items []models.TransactionItem
	if err := db.Where("transaction_id = ?", transaction.ID).Find(&items).Error; err != nil {
		t.Fatalf("load items failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("items want 1 got %d", len(items))
	}
	if items[0].TransactionID != transaction.ID {
		t.Fatalf("item transaction id want %d got %d", transaction.ID, items[0].TransactionID)
	}
}

func TestListFiltersByCreatedRange(t *testing.T) {
	repo, _ := setupTransactionRepositoryTest(t)

	days := []string{"2024-01-04", "2024-01-06", "2024-01-08", "2024-01-12"}
	for i, day := range days {
		createdAt, err := time.Parse("2006-01-02", day)
		if err != nil {
			t.Fatalf("parse day failed: %v", err)
		}
		createTestTransaction(t, repo, fmt.Sprintf("TRX-RANGE-%03d", i), createdAt.Add(10*time.Hour), 50000)
	}

	from, _ := time.Parse("2006-01-02", "2024-01-05")
	to, _ := time.Parse("2006-01-02", "2024-01-10")
	toEnd := to.Add(24*time.Hour - time.Nanosecond)

	transactions, total, err := repo.List(TransactionListFilter{
		Page:        1,
		PageSize:    100,
		CreatedFrom: &from,
		CreatedTo:   &toEnd,
	})
	if err != nil {
		t.Fatalf("list by range failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("range total want 2 got %d", total)
	}
	for _, item := range transactions {
		if item.CreatedAt.Before(from) || item.CreatedAt.After(toEnd) {
			t.Fatalf("transaction %s outside range: %s", item.TransactionNo, item.CreatedAt)
		}
	}
}

func TestListOrdersNewestFirst(t *testing.T) {
	repo, _ := setupTransactionRepositoryTest(t)

	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		createTestTransaction(t, repo, fmt.Sprintf("TRX-ORDER-%03d", i), base.Add(time.Duration(i)*time.Hour), 20000)
	}

	transactions, _, err := repo.List(TransactionListFilter{Page: 1, PageSize: 3})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	for i := 1; i < len(transactions); i++ {
		if transactions[i].CreatedAt.After(transactions[i-1].CreatedAt) {
			t.Fatalf("list not ordered newest first")
		}
	}
}

func TestDeleteRemovesItems(t *testing.T) {
	repo, db := setupTransactionRepositoryTest(t)
	transaction := createTestTransaction(t, repo, "TRX-DEL-001", time.Time{}, 30000)

	if err := repo.Delete(transaction.ID); err != nil {
		t.Fatalf("delete transaction failed: %v", err)
	}

	got, err := repo.GetByID(transaction.ID)
	if err != nil {
		t.Fatalf("get deleted transaction failed: %v", err)
	}
	if got != nil {
		t.Fatalf("deleted transaction should not be found")
	}

	var itemCount int64
	if err := db.Model(&models.TransactionItem{}).
		Where("transaction_id = ?", transaction.ID).
		Count(&itemCount).Error; err != nil {
		t.Fatalf("count items failed: %v", err)
	}
	if itemCount != 0 {
		t.Fatalf("items should be removed, got %d", itemCount)
	}
}

func TestGetByTransactionNo(t *testing.T) {
	repo, _ := setupTransactionRepositoryTest(t)
	createTestTransaction(t, repo, "TRX-NO-001", time.Time{}, 75000)

	got, err := repo.GetByTransactionNo("TRX-NO-001")
	if err != nil {
		t.Fatalf("get by transaction no failed: %v", err)
	}
	if got == nil {
		t.Fatal("transaction should be found")
	}
	if len(got.Items) != 1 {
		t.Fatalf("items want 1 got %d", len(got.Items))
	}

	missing, err := repo.GetByTransactionNo("TRX-NO-MISSING")
	if err != nil {
		t.Fatalf("get missing transaction failed: %v", err)
	}
	if missing != nil {
		t.Fatal("missing transaction should return nil")
	}
}
