package service

import (
	"strings"
	"time"

	"github.com/petpaw-pos/internal/models"
	"github.com/petpaw-pos/internal/repository"

	"gorm.io/gorm"
)

// TransactionListInput 交易历史查询输入
type TransactionListInput struct {
	Page          int
	PageSize      int
	CashierID     uint
	TransactionNo string
	StartDate     string // yyyy-mm-dd，含当天
	EndDate       string // yyyy-mm-dd，含当天
}

// TransactionService 交易历史服务
type TransactionService struct {
	transactionRepo *repository.GormTransactionRepository
	productRepo     repository.ProductRepository
}

// NewTransactionService 创建交易历史服务
func NewTransactionService(transactionRepo *repository.GormTransactionRepository, productRepo repository.ProductRepository) *TransactionService {
	return &TransactionService{transactionRepo: transactionRepo, productRepo: productRepo}
}

// List 查询交易历史（按交易时间倒序，日期区间两端都包含当天）
func (s *TransactionService) List(input TransactionListInput) ([]models.Transaction, int64, error) {
	filter := repository.TransactionListFilter{
		Page:          input.Page,
		PageSize:      input.PageSize,
		CashierID:     input.CashierID,
		TransactionNo: strings.TrimSpace(input.TransactionNo),
	}

	startDate := strings.TrimSpace(input.StartDate)
	endDate := strings.TrimSpace(input.EndDate)
	if startDate != "" {
		from, err := time.ParseInLocation("2006-01-02", startDate, time.Local)
		if err != nil {
			return nil, 0, ErrInvalidDateRange
		}
		filter.CreatedFrom = &from
	}
	if endDate != "" {
		to, err := time.ParseInLocation("2006-01-02", endDate, time.Local)
		if err != nil {
			return nil, 0, ErrInvalidDateRange
		}
		// 终点取当天最后一纳秒，保证当天交易被包含
		toEnd := to.Add(24*time.Hour - time.Nanosecond)
		filter.CreatedTo = &toEnd
	}
	if filter.CreatedFrom != nil && filter.CreatedTo != nil && filter.CreatedTo.Before(*filter.CreatedFrom) {
		return nil, 0, ErrInvalidDateRange
	}

	return s.transactionRepo.List(filter)
}

// Get 获取交易详情
func (s *TransactionService) Get(id uint) (*models.Transaction, error) {
	transaction, err := s.transactionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if transaction == nil {
		return nil, ErrTransactionNotFound
	}
	return transaction, nil
}

// GetByTransactionNo 根据交易号获取交易（小票补打场景）
func (s *TransactionService) GetByTransactionNo(transactionNo string) (*models.Transaction, error) {
	transaction, err := s.transactionRepo.GetByTransactionNo(strings.TrimSpace(transactionNo))
	if err != nil {
		return nil, err
	}
	if transaction == nil {
		return nil, ErrTransactionNotFound
	}
	return transaction, nil
}

// Delete 作废交易记录，回补各商品库存，与删除同一事务
func (s *TransactionService) Delete(id uint) error {
	transaction, err := s.transactionRepo.GetByID(id)
	if err != nil {
		return err
	}
	if transaction == nil {
		return ErrTransactionNotFound
	}

	return models.DB.Transaction(func(tx *gorm.DB) error {
		productRepo := s.productRepo.WithTx(tx)
		for _, item := range transaction.Items {
			// 商品可能已被删除，此时只能放弃回补
			if _, err := productRepo.IncrementStock(item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		return s.transactionRepo.WithTx(tx).Delete(id)
	})
}
