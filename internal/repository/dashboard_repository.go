package repository

import (
	"fmt"
	"time"

	"github.com/petpaw-pos/internal/models"

	"gorm.io/gorm"
)

// DashboardRepository 仪表盘聚合查询接口
// 说明：仅聚合统计数据，不承载业务规则。
type DashboardRepository interface {
	GetOverview(startAt, endAt time.Time) (DashboardOverviewRow, error)
	GetSalesTrends(startAt, endAt time.Time) ([]DashboardSalesTrendRow, error)
	GetStockStats(lowStockThreshold int64) (DashboardStockStatsRow, error)
	GetTopProducts(startAt, endAt time.Time, limit int) ([]DashboardProductRankingRow, error)
	GetRecentTransactions(limit int) ([]models.Transaction, error)
}

// DashboardOverviewRow 仪表盘总览原始统计结果
type DashboardOverviewRow struct {
	TransactionsTotal int64
	SalesTotal        float64
	ItemsSold         int64
	ActiveProducts    int64
	ActiveCashiers    int64
}

// DashboardSalesTrendRow 销售趋势统计
type DashboardSalesTrendRow struct {
	Day               string
	TransactionsTotal int64
	SalesTotal        float64
}

// DashboardStockStatsRow 库存统计
type DashboardStockStatsRow struct {
	OutOfStockProducts int64
	LowStockProducts   int64
	StockUnitsTotal    int64
}

// DashboardProductRankingRow 商品排行原始行
type DashboardProductRankingRow struct {
	ProductID  uint
	Name       string
	Quantity   int64
	SalesTotal float64
}

// GormDashboardRepository GORM 仪表盘聚合实现
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository 创建仪表盘仓库
func NewDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

// GetOverview 获取总览统计
func (r *GormDashboardRepository) GetOverview(startAt, endAt time.Time) (DashboardOverviewRow, error) {
	result := DashboardOverviewRow{}

	transactionBase := func() *gorm.DB {
		return r.db.Model(&models.Transaction{}).
			Where("created_at >= ? AND created_at < ?", startAt, endAt)
	}

	if err := transactionBase().Count(&result.TransactionsTotal).Error; err != nil {
		return result, err
	}
	if err := transactionBase().
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&result.SalesTotal).Error; err != nil {
		return result, err
	}
	if err := transactionBase().
		Select("COALESCE(SUM(item_count), 0)").
		Scan(&result.ItemsSold).Error; err != nil {
		return result, err
	}

	if err := r.db.Model(&models.Product{}).
		Where("is_active = ?", true).
		Count(&result.ActiveProducts).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.Cashier{}).
		Where("is_active = ?", true).
		Count(&result.ActiveCashiers).Error; err != nil {
		return result, err
	}

	return result, nil
}

// GetSalesTrends 获取按天的销售趋势
func (r *GormDashboardRepository) GetSalesTrends(startAt, endAt time.Time) ([]DashboardSalesTrendRow, error) {
	type trendRow struct {
		Day   string
		Total int64
		Sales float64
	}

	dayExpr := dayBucketExpr(r.db, "created_at")
	var rows []trendRow
	if err := r.db.Model(&models.Transaction{}).
		Select(fmt.Sprintf("%s as day, COUNT(*) as total, COALESCE(SUM(total_amount), 0) as sales", dayExpr)).
		Where("created_at >= ? AND created_at < ?", startAt, endAt).
		Group(dayExpr).
		Order("day asc").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	result := make([]DashboardSalesTrendRow, 0, len(rows))
	for _, item := range rows {
		result = append(result, DashboardSalesTrendRow{
			Day:               item.Day,
			TransactionsTotal: item.Total,
			SalesTotal:        item.Sales,
		})
	}
	return result, nil
}

// GetStockStats 获取库存总览统计
func (r *GormDashboardRepository) GetStockStats(lowStockThreshold int64) (DashboardStockStatsRow, error) {
	result := DashboardStockStatsRow{}

	base := func() *gorm.DB {
		return r.db.Model(&models.Product{}).Where("is_active = ?", true)
	}

	if err := base().Where("stock_quantity <= ?", 0).Count(&result.OutOfStockProducts).Error; err != nil {
		return result, err
	}
	if err := base().Where("stock_quantity > ? AND stock_quantity <= ?", 0, lowStockThreshold).
		Count(&result.LowStockProducts).Error; err != nil {
		return result, err
	}
	if err := base().
		Select("COALESCE(SUM(stock_quantity), 0)").
		Scan(&result.StockUnitsTotal).Error; err != nil {
		return result, err
	}

	return result, nil
}

// GetTopProducts 获取商品销量排行榜
func (r *GormDashboardRepository) GetTopProducts(startAt, endAt time.Time, limit int) ([]DashboardProductRankingRow, error) {
	if limit <= 0 {
		limit = 5
	}
	rows := make([]DashboardProductRankingRow, 0)
	if err := r.db.Model(&models.TransactionItem{}).
		Select(`
			transaction_items.product_id as product_id,
			transaction_items.product_name as name,
			COALESCE(SUM(transaction_items.quantity), 0) as quantity,
			COALESCE(SUM(transaction_items.line_total), 0) as sales_total
		`).
		Joins("JOIN transactions ON transactions.id = transaction_items.transaction_id").
		Where("transactions.created_at >= ? AND transactions.created_at < ? AND transactions.deleted_at IS NULL", startAt, endAt).
		Group("transaction_items.product_id, transaction_items.product_name").
		Order("sales_total DESC, quantity DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetRecentTransactions 获取最近交易
func (r *GormDashboardRepository) GetRecentTransactions(limit int) ([]models.Transaction, error) {
	if limit <= 0 {
		limit = 5
	}
	var transactions []models.Transaction
	if err := r.db.Preload("Items").Preload("Cashier").
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&transactions).Error; err != nil {
		return nil, err
	}
	return transactions, nil
}
