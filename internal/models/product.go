package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品表
type Product struct {
	ID            uint           `gorm:"primarykey" json:"id"`                                // 主键
	CategoryID    uint           `gorm:"not null;index" json:"category_id"`                   // 分类ID
	SKU           string         `gorm:"uniqueIndex;size:64;not null" json:"sku"`             // 商品货号
	Name          string         `gorm:"type:varchar(200);not null;index" json:"name"`        // 商品名称
	Description   string         `gorm:"type:text" json:"description"`                        // 商品描述
	PriceAmount   Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`  // 单价
	StockQuantity int            `gorm:"not null;default:0" json:"stock_quantity"`            // 当前库存
	ImageURL      string         `gorm:"type:varchar(500)" json:"image_url"`                  // 主图
	Images        StringArray    `gorm:"type:json" json:"images"`                             // 附加图片数组
	Attributes    JSON           `gorm:"type:json" json:"attributes"`                         // 品类属性（品种、规格等）
	IsActive      bool           `gorm:"default:true;index" json:"is_active"`                 // 是否在售
	SortOrder     int            `gorm:"default:0;index" json:"sort_order"`                   // 排序权重
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                             // 创建时间
	UpdatedAt     time.Time      `json:"updated_at"`                                          // 更新时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                                      // 软删除时间

	// 关联
	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"` // 分类信息
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
