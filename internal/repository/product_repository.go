package repository

import (
	"errors"
	"strings"

	"github.com/petpaw-pos/internal/constants"
	"github.com/petpaw-pos/internal/models"

	"gorm.io/gorm"
)

// ProductRepository 商品数据访问接口
type ProductRepository interface {
	List(filter ProductListFilter) ([]models.Product, int64, error)
	GetByID(id uint) (*models.Product, error)
	GetBySKU(sku string) (*models.Product, error)
	ListByIDs(ids []uint) ([]models.Product, error)
	ListLowStock(threshold int) ([]models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id uint) error
	CountBySKU(sku string, excludeID *uint) (int64, error)
	DecrementStock(productID uint, quantity int) (int64, error)
	IncrementStock(productID uint, quantity int) (int64, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) ProductRepository
}

// GormProductRepository GORM 实现
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// WithTx 绑定事务
func (r *GormProductRepository) WithTx(tx *gorm.DB) ProductRepository {
	if tx == nil {
		return r
	}
	return &GormProductRepository{db: tx}
}

// Transaction 执行事务
func (r *GormProductRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// List 商品列表
func (r *GormProductRepository) List(filter ProductListFilter) ([]models.Product, int64, error) {
	var products []models.Product

	query := r.db.Model(&models.Product{})
	if filter.WithCategory {
		query = query.Preload("Category")
	}
	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}
	if filter.InStockOnly {
		query = query.Where("stock_quantity > ?", 0)
	}
	if filter.CategoryID != "" {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		condition, argCount := buildSearchLikeCondition(r.db, []string{"name", "sku"})
		query = query.Where(condition, repeatLikeArgs(like, argCount)...)
	}
	query = applyStockStatusFilter(query, strings.ToLower(strings.TrimSpace(filter.StockStatus)), filter.LowStockMax)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	order := "sort_order DESC, created_at DESC"
	if filter.OrderByName {
		order = "name ASC"
	}
	if err := query.Order(order).Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func applyStockStatusFilter(query *gorm.DB, status string, lowStockMax int) *gorm.DB {
	if query == nil {
		return query
	}
	if lowStockMax <= 0 {
		lowStockMax = 10
	}

	switch status {
	case constants.StockStatusOutOfStock:
		return query.Where("stock_quantity <= ?", 0)
	case constants.StockStatusLowStock:
		return query.Where("stock_quantity > ? AND stock_quantity <= ?", 0, lowStockMax)
	case constants.StockStatusInStock:
		return query.Where("stock_quantity > ?", lowStockMax)
	default:
		return query
	}
}

// GetByID 根据 ID 获取商品
func (r *GormProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.Preload("Category").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// GetBySKU 根据货号获取商品
func (r *GormProductRepository) GetBySKU(sku string) (*models.Product, error) {
	var product models.Product
	if err := r.db.Preload("Category").Where("sku = ?", sku).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// ListByIDs 批量获取商品
func (r *GormProductRepository) ListByIDs(ids []uint) ([]models.Product, error) {
	if len(ids) == 0 {
		return []models.Product{}, nil
	}
	var products []models.Product
	if err := r.db.Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ListLowStock 获取库存不高于阈值的在售商品
func (r *GormProductRepository) ListLowStock(threshold int) ([]models.Product, error) {
	if threshold < 0 {
		threshold = 0
	}
	var products []models.Product
	if err := r.db.Where("is_active = ? AND stock_quantity <= ?", true, threshold).
		Order("stock_quantity ASC, id ASC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Create 创建商品
func (r *GormProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

// Update 更新商品
func (r *GormProductRepository) Update(product *models.Product) error {
	return r.db.Save(product).Error
}

// Delete 删除商品
func (r *GormProductRepository) Delete(id uint) error {
	return r.db.Delete(&models.Product{}, id).Error
}

// CountBySKU 统计货号数量（用于唯一性校验）
func (r *GormProductRepository) CountBySKU(sku string, excludeID *uint) (int64, error) {
	var count int64
	query := r.db.Model(&models.Product{}).Where("sku = ?", sku)
	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// DecrementStock 扣减库存（库存不足时不更新任何行）
func (r *GormProductRepository) DecrementStock(productID uint, quantity int) (int64, error) {
	if productID == 0 || quantity <= 0 {
		return 0, errors.New("invalid stock decrement params")
	}
	result := r.db.Model(&models.Product{}).
		Where("id = ? AND stock_quantity >= ?", productID, quantity).
		Update("stock_quantity", gorm.Expr("stock_quantity - ?", quantity))
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// IncrementStock 回补库存（交易作废时使用）
func (r *GormProductRepository) IncrementStock(productID uint, quantity int) (int64, error) {
	if productID == 0 || quantity <= 0 {
		return 0, errors.New("invalid stock increment params")
	}
	result := r.db.Model(&models.Product{}).
		Where("id = ?", productID).
		Update("stock_quantity", gorm.Expr("stock_quantity + ?", quantity))
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
