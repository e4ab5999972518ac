package service

import (
	"crypto/rand"
	"math/big"
	"strings"
	"time"

	"github.com/petpaw-pos/internal/constants"
	"github.com/petpaw-pos/internal/logger"
	"github.com/petpaw-pos/internal/models"
	"github.com/petpaw-pos/internal/queue"
	"github.com/petpaw-pos/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CheckoutInput 结账输入
type CheckoutInput struct {
	CashierID     uint
	PaymentMethod string
	CashReceived  decimal.Decimal
	Note          string
}

// ReceiptItem 小票明细行
type ReceiptItem struct {
	ProductName string       `json:"product_name"`
	ProductSKU  string       `json:"product_sku"`
	UnitPrice   models.Money `json:"unit_price"`
	Quantity    int          `json:"quantity"`
	LineTotal   models.Money `json:"line_total"`
}

// Receipt 结账小票
type Receipt struct {
	TransactionNo string        `json:"transaction_no"`
	CashierName   string        `json:"cashier_name"`
	Items         []ReceiptItem `json:"items"`
	ItemCount     int           `json:"item_count"`
	TotalAmount   models.Money  `json:"total_amount"`
	PaymentMethod string        `json:"payment_method"`
	CashReceived  models.Money  `json:"cash_received"`
	ChangeAmount  models.Money  `json:"change_amount"`
	CreatedAt     time.Time     `json:"created_at"`
}

// CheckoutService 结账服务
// 在单个数据库事务内完成交易创建、库存扣减与购物车清空
type CheckoutService struct {
	cartRepo        repository.CartRepository
	productRepo     repository.ProductRepository
	transactionRepo *repository.GormTransactionRepository
	cashierRepo     repository.CashierRepository
	queueClient     *queue.Client
}

// NewCheckoutService 创建结账服务
func NewCheckoutService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	transactionRepo *repository.GormTransactionRepository,
	cashierRepo repository.CashierRepository,
	queueClient *queue.Client,
) *CheckoutService {
	return &CheckoutService{
		cartRepo:        cartRepo,
		productRepo:     productRepo,
		transactionRepo: transactionRepo,
		cashierRepo:     cashierRepo,
		queueClient:     queueClient,
	}
}

// Checkout 现金结账
// 现金不足、库存不足时整单失败，不产生任何副作用
func (s *CheckoutService) Checkout(input CheckoutInput) (*Receipt, error) {
	if input.CashierID == 0 {
		return nil, ErrInvalidQuantity
	}
	paymentMethod := strings.ToLower(strings.TrimSpace(input.PaymentMethod))
	if paymentMethod == "" {
		paymentMethod = constants.PaymentMethodCash
	}
	if paymentMethod != constants.PaymentMethodCash {
		return nil, ErrPaymentUnsupported
	}

	items, err := s.cartRepo.ListByCashier(input.CashierID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrCartEmpty
	}

	// 先按当前价格核算总额，现金不足直接拒绝
	total := decimal.Zero
	itemCount := 0
	transactionItems := make([]models.TransactionItem, 0, len(items))
	productIDs := make([]uint, 0, len(items))
	for _, item := range items {
		product := item.Product
		if product == nil || product.ID == 0 {
			p, err := s.productRepo.GetByID(item.ProductID)
			if err != nil {
				return nil, err
			}
			product = p
		}
		if product == nil || !product.IsActive {
			return nil, ErrProductInactive
		}
		if item.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}

		lineTotal := product.PriceAmount.Decimal.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(lineTotal)
		itemCount += item.Quantity
		productIDs = append(productIDs, product.ID)
		transactionItems = append(transactionItems, models.TransactionItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			ProductSKU:  product.SKU,
			UnitPrice:   product.PriceAmount,
			Quantity:    item.Quantity,
			LineTotal:   models.NewMoneyFromDecimal(lineTotal),
		})
	}

	cashReceived := input.CashReceived.Round(2)
	if cashReceived.LessThan(total) {
		return nil, ErrCashInsufficient
	}
	changeAmount := cashReceived.Sub(total)

	transaction := &models.Transaction{
		TransactionNo: generateTransactionNo(),
		CashierID:     input.CashierID,
		TotalAmount:   models.NewMoneyFromDecimal(total),
		PaymentMethod: paymentMethod,
		CashReceived:  models.NewMoneyFromDecimal(cashReceived),
		ChangeAmount:  models.NewMoneyFromDecimal(changeAmount),
		ItemCount:     itemCount,
		Note:          strings.TrimSpace(input.Note),
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		productRepo := s.productRepo.WithTx(tx)
		cartRepo := s.cartRepo.WithTx(tx)
		transactionRepo := s.transactionRepo.WithTx(tx)

		// 带守卫条件的库存扣减：任何一行扣减失败即整单回滚
		for _, item := range transactionItems {
			affected, err := productRepo.DecrementStock(item.ProductID, item.Quantity)
			if err != nil {
				return err
			}
			if affected == 0 {
				return ErrStockInsufficient
			}
		}

		if err := transactionRepo.Create(transaction, transactionItems); err != nil {
			return err
		}

		return cartRepo.ClearByCashier(input.CashierID)
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("checkout_completed",
		"transaction_no", transaction.TransactionNo,
		"cashier_id", input.CashierID,
		"total_amount", transaction.TotalAmount.String(),
		"item_count", itemCount,
	)

	// 事务提交后异步巡检涉及商品的库存水位
	s.enqueueLowStockScan(productIDs)

	cashierName := ""
	if cashier, err := s.cashierRepo.GetByID(input.CashierID); err == nil && cashier != nil {
		cashierName = cashier.DisplayName
		if cashierName == "" {
			cashierName = cashier.Username
		}
	}

	receiptItems := make([]ReceiptItem, 0, len(transactionItems))
	for _, item := range transactionItems {
		receiptItems = append(receiptItems, ReceiptItem{
			ProductName: item.ProductName,
			ProductSKU:  item.ProductSKU,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			LineTotal:   item.LineTotal,
		})
	}
	return &Receipt{
		TransactionNo: transaction.TransactionNo,
		CashierName:   cashierName,
		Items:         receiptItems,
		ItemCount:     itemCount,
		TotalAmount:   transaction.TotalAmount,
		PaymentMethod: paymentMethod,
		CashReceived:  transaction.CashReceived,
		ChangeAmount:  transaction.ChangeAmount,
		CreatedAt:     transaction.CreatedAt,
	}, nil
}

func (s *CheckoutService) enqueueLowStockScan(productIDs []uint) {
	if s.queueClient == nil || !s.queueClient.Enabled() {
		return
	}
	if err := s.queueClient.EnqueueLowStockScan(queue.LowStockScanPayload{ProductIDs: productIDs}); err != nil {
		logger.Warnw("enqueue_low_stock_scan_failed", "error", err)
	}
}

// generateTransactionNo 生成交易号（TRX + 时间戳 + 6 位随机数字）
func generateTransactionNo() string {
	return constants.TransactionNoPrefix + time.Now().Format("20060102150405") + randNumeric(6)
}

func randNumeric(n int) string {
	digits := make([]byte, n)
	for i := range digits {
		num, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			digits[i] = '0'
			continue
		}
		digits[i] = byte('0' + num.Int64())
	}
	return string(digits)
}
