package repository

import (
	"errors"

	"github.com/petpaw-pos/internal/models"

	"gorm.io/gorm"
)

// TransactionRepository 交易数据访问接口
type TransactionRepository interface {
	Create(transaction *models.Transaction, items []models.TransactionItem) error
	GetByID(id uint) (*models.Transaction, error)
	GetByTransactionNo(transactionNo string) (*models.Transaction, error)
	List(filter TransactionListFilter) ([]models.Transaction, int64, error)
	Delete(id uint) error
	WithTx(tx *gorm.DB) *GormTransactionRepository
}

// GormTransactionRepository GORM 实现
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository 创建交易仓库
func NewTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

// WithTx 绑定事务
func (r *GormTransactionRepository) WithTx(tx *gorm.DB) *GormTransactionRepository {
	if tx == nil {
		return r
	}
	return &GormTransactionRepository{db: tx}
}

// Create 创建交易与交易明细
func (r *GormTransactionRepository) Create(transaction *models.Transaction, items []models.TransactionItem) error {
	if err := r.db.Create(transaction).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].TransactionID = transaction.ID
	}
	if len(items) > 0 {
		if err := r.db.Create(&items).Error; err != nil {
			return err
		}
	}
	return nil
}

// GetByID 根据 ID 获取交易
func (r *GormTransactionRepository) GetByID(id uint) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := r.db.Preload("Items").Preload("Cashier").First(&transaction, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &transaction, nil
}

// GetByTransactionNo 根据交易号获取交易
func (r *GormTransactionRepository) GetByTransactionNo(transactionNo string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := r.db.Preload("Items").Preload("Cashier").
		Where("transaction_no = ?", transactionNo).
		First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &transaction, nil
}

// List 交易列表（按交易时间倒序）
func (r *GormTransactionRepository) List(filter TransactionListFilter) ([]models.Transaction, int64, error) {
	var transactions []models.Transaction

	query := r.db.Model(&models.Transaction{})
	if filter.CashierID > 0 {
		query = query.Where("cashier_id = ?", filter.CashierID)
	}
	if filter.TransactionNo != "" {
		query = query.Where("transaction_no = ?", filter.TransactionNo)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Preload("Items").Preload("Cashier").
		Order("created_at DESC, id DESC").
		Find(&transactions).Error; err != nil {
		return nil, 0, err
	}

	return transactions, total, nil
}

// Delete 删除交易与明细
func (r *GormTransactionRepository) Delete(id uint) error {
	if err := r.db.Where("transaction_id = ?", id).Delete(&models.TransactionItem{}).Error; err != nil {
		return err
	}
	return r.db.Delete(&models.Transaction{}, id).Error
}
