package models

import (
	"time"

	"gorm.io/gorm"
)

// Transaction 收银交易主表
type Transaction struct {
	ID            uint           `gorm:"primarykey" json:"id"`                                             // 主键
	TransactionNo string         `gorm:"uniqueIndex;size:32;not null" json:"transaction_no"`               // 交易号
	CashierID     uint           `gorm:"not null;index" json:"cashier_id"`                                 // 收银员ID
	TotalAmount   Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"`        // 应收总额
	PaymentMethod string         `gorm:"type:varchar(20);not null;default:'cash'" json:"payment_method"`   // 支付方式
	CashReceived  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"cash_received"`       // 实收现金
	ChangeAmount  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"change_amount"`       // 找零
	ItemCount     int            `gorm:"not null;default:0" json:"item_count"`                             // 商品件数合计
	Note          string         `gorm:"type:varchar(500)" json:"note"`                                    // 备注
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                                          // 交易时间
	UpdatedAt     time.Time      `json:"updated_at"`                                                       // 更新时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                                                   // 软删除时间

	// 关联
	Cashier *Cashier          `gorm:"foreignKey:CashierID" json:"cashier,omitempty"`   // 收银员信息
	Items   []TransactionItem `gorm:"foreignKey:TransactionID" json:"items,omitempty"` // 交易明细
}

// TableName 指定表名
func (Transaction) TableName() string {
	return "transactions"
}

// TransactionItem 交易明细（下单时快照商品信息）
type TransactionItem struct {
	ID            uint      `gorm:"primarykey" json:"id"`                                   // 主键
	TransactionID uint      `gorm:"not null;index" json:"transaction_id"`                   // 交易ID
	ProductID     uint      `gorm:"not null;index" json:"product_id"`                       // 商品ID
	ProductName   string    `gorm:"type:varchar(200);not null" json:"product_name"`         // 商品名称快照
	ProductSKU    string    `gorm:"type:varchar(64);not null" json:"product_sku"`           // 货号快照
	UnitPrice     Money     `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"`// 成交单价
	Quantity      int       `gorm:"not null" json:"quantity"`                               // 数量
	LineTotal     Money     `gorm:"type:decimal(20,2);not null;default:0" json:"line_total"`// 行小计
	CreatedAt     time.Time `json:"created_at"`                                             // 创建时间
}

// TableName 指定表名
func (TransactionItem) TableName() string {
	return "transaction_items"
}
