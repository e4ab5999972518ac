package repository

import (
	"errors"

	"github.com/petpaw-pos/internal/models"

	"gorm.io/gorm"
)

// CashierRepository 收银员数据访问接口
type CashierRepository interface {
	GetByUsername(username string) (*models.Cashier, error)
	GetByID(id uint) (*models.Cashier, error)
	List() ([]models.Cashier, error)
	Count() (int64, error)
	Create(cashier *models.Cashier) error
	Update(cashier *models.Cashier) error
	Delete(id uint) error
}

// GormCashierRepository GORM 实现
type GormCashierRepository struct {
	db *gorm.DB
}

// NewCashierRepository 创建收银员仓库
func NewCashierRepository(db *gorm.DB) *GormCashierRepository {
	return &GormCashierRepository{db: db}
}

// GetByUsername 根据用户名获取收银员
func (r *GormCashierRepository) GetByUsername(username string) (*models.Cashier, error) {
	var cashier models.Cashier
	if err := r.db.Where("username = ?", username).First(&cashier).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cashier, nil
}

// GetByID 根据 ID 获取收银员
func (r *GormCashierRepository) GetByID(id uint) (*models.Cashier, error) {
	var cashier models.Cashier
	if err := r.db.First(&cashier, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cashier, nil
}

// List 获取收银员列表
func (r *GormCashierRepository) List() ([]models.Cashier, error) {
	cashiers := make([]models.Cashier, 0)
	err := r.db.
		Select("id", "username", "display_name", "is_active", "last_login_at", "created_at").
		Order("id ASC").
		Find(&cashiers).Error
	if err != nil {
		return nil, err
	}
	return cashiers, nil
}

// Count 统计收银员数量
func (r *GormCashierRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Cashier{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create 创建收银员
func (r *GormCashierRepository) Create(cashier *models.Cashier) error {
	return r.db.Create(cashier).Error
}

// Update 更新收银员
func (r *GormCashierRepository) Update(cashier *models.Cashier) error {
	return r.db.Save(cashier).Error
}

// Delete 删除收银员（软删除）
func (r *GormCashierRepository) Delete(id uint) error {
	if id == 0 {
		return nil
	}
	return r.db.Delete(&models.Cashier{}, id).Error
}
