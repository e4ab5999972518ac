package repository

import "time"

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page         int
	PageSize     int
	CategoryID   string
	Search       string
	StockStatus  string // in_stock / low_stock / out_of_stock
	LowStockMax  int    // 低库存判定阈值（StockStatus 过滤时使用）
	OnlyActive   bool
	InStockOnly  bool
	OrderByName  bool // 收银目录按名称排序，管理列表按权重排序
	WithCategory bool
}

// TransactionListFilter 查询交易列表的过滤条件
type TransactionListFilter struct {
	Page          int
	PageSize      int
	CashierID     uint
	TransactionNo string
	CreatedFrom   *time.Time
	CreatedTo     *time.Time
}

// CategoryListFilter 查询分类列表的过滤条件
type CategoryListFilter struct {
	Page     int
	PageSize int
	Search   string
}
