package constants

// 交易常量
const (
	TransactionNoPrefix = "TRX" // 交易号前缀

	PaymentMethodCash = "cash" // 现金支付
)

// 库存状态常量
const (
	StockStatusInStock    = "in_stock"     // 有库存
	StockStatusLowStock   = "low_stock"    // 低库存
	StockStatusOutOfStock = "out_of_stock" // 无库存
)

// 库存水位标识（管理端商品列表展示用）
const (
	StockLevelLow    = "low"    // 低于阈值
	StockLevelMedium = "medium" // 低于 3 倍阈值
	StockLevelHigh   = "high"   // 充足
)

// 系统设置键常量
const (
	SettingKeyShopName          = "shop_name"
	SettingKeyShopAddress       = "shop_address"
	SettingKeyShopPhone         = "shop_phone"
	SettingKeyCurrency          = "currency"
	SettingKeyReceiptFooter     = "receipt_footer"
	SettingKeyLowStockThreshold = "low_stock_threshold"
)

// 异步任务类型常量
const (
	TaskTypeLowStockAlert = "stock:low_alert" // 低库存告警任务
	TaskTypeLowStockScan  = "stock:low_scan"  // 低库存巡检任务
)

// 队列名称常量
const (
	QueueDefault  = "default"
	QueueCritical = "critical"
)

// 仪表盘时间窗口常量
const (
	DashboardWindowToday  = "today"
	DashboardWindow7Days  = "7d"
	DashboardWindow30Days = "30d"
	DashboardWindowCustom = "custom"
)

// 上下文键常量
const (
	ContextKeyCashierID = "cashier_id"
	ContextKeyUsername  = "username"
	ContextKeyRequestID = "request_id"
)
