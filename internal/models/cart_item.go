package models

import (
	"time"
)

// CartItem 收银台购物车项（按收银员隔离）
// 购物车行是临时状态，结账或移除即物理删除，不做软删除，
// 否则唯一索引会挡住同一商品的再次加购。
type CartItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                            // 主键
	CashierID uint      `gorm:"not null;uniqueIndex:idx_cart_cashier_product" json:"cashier_id"` // 收银员ID
	ProductID uint      `gorm:"not null;uniqueIndex:idx_cart_cashier_product" json:"product_id"` // 商品ID
	Quantity  int       `gorm:"not null" json:"quantity"`                                        // 数量
	CreatedAt time.Time `gorm:"index" json:"created_at"`                                         // 创建时间
	UpdatedAt time.Time `gorm:"index" json:"updated_at"`                                         // 更新时间

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 关联商品
}

// TableName 指定表名
func (CartItem) TableName() string {
	return "cart_items"
}
