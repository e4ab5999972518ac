package repository

import (
	"errors"

	"github.com/petpaw-pos/internal/models"

	"gorm.io/gorm"
)

// CartRepository 购物车数据访问接口
type CartRepository interface {
	ListByCashier(cashierID uint) ([]models.CartItem, error)
	GetByCashierAndProduct(cashierID, productID uint) (*models.CartItem, error)
	Upsert(item *models.CartItem) error
	DeleteByCashierAndProduct(cashierID, productID uint) error
	ClearByCashier(cashierID uint) error
	WithTx(tx *gorm.DB) *GormCartRepository
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRepository) WithTx(tx *gorm.DB) *GormCartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// ListByCashier 获取收银员购物车项
func (r *GormCartRepository) ListByCashier(cashierID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.Preload("Product").Where("cashier_id = ?", cashierID).Order("updated_at desc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetByCashierAndProduct 获取指定商品的购物车项
func (r *GormCartRepository) GetByCashierAndProduct(cashierID, productID uint) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.Where("cashier_id = ? AND product_id = ?", cashierID, productID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Upsert 添加或更新购物车项
func (r *GormCartRepository) Upsert(item *models.CartItem) error {
	if item == nil {
		return nil
	}
	var existing models.CartItem
	err := r.db.Where("cashier_id = ? AND product_id = ?", item.CashierID, item.ProductID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(item).Error
	}
	if err != nil {
		return err
	}
	updates := map[string]interface{}{
		"quantity":   item.Quantity,
		"updated_at": item.UpdatedAt,
	}
	return r.db.Model(&existing).Updates(updates).Error
}

// DeleteByCashierAndProduct 删除购物车项
func (r *GormCartRepository) DeleteByCashierAndProduct(cashierID, productID uint) error {
	return r.db.Where("cashier_id = ? AND product_id = ?", cashierID, productID).Delete(&models.CartItem{}).Error
}

// ClearByCashier 清空购物车
func (r *GormCartRepository) ClearByCashier(cashierID uint) error {
	return r.db.Where("cashier_id = ?", cashierID).Delete(&models.CartItem{}).Error
}
