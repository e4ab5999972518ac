package service

import (
	"time"

	"github.com/petpaw-pos/internal/models"
	"github.com/petpaw-pos/internal/repository"

	"github.com/shopspring/decimal"
)

// CartItemDetail 购物车项详情（用于响应）
type CartItemDetail struct {
	ProductID   uint            `json:"product_id"`
	Quantity    int             `json:"quantity"`
	UnitPrice   models.Money    `json:"unit_price"`
	LineTotal   models.Money    `json:"line_total"`
	StockStatus string          `json:"stock_status"`
	Product     *models.Product `json:"product"`
}

// CartDetail 购物车汇总（用于响应）
type CartDetail struct {
	Items      []CartItemDetail `json:"items"`
	ItemCount  int              `json:"item_count"`
	TotalPrice models.Money     `json:"total_price"`
}

// UpsertCartItemInput 购物车更新输入
type UpsertCartItemInput struct {
	CashierID uint
	ProductID uint
	Quantity  int
}

// CartService 收银台购物车服务
type CartService struct {
	cartRepo       repository.CartRepository
	productRepo    repository.ProductRepository
	productService *ProductService
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository, productService *ProductService) *CartService {
	return &CartService{
		cartRepo:       cartRepo,
		productRepo:    productRepo,
		productService: productService,
	}
}

// GetCart 获取收银员购物车汇总
func (s *CartService) GetCart(cashierID uint) (*CartDetail, error) {
	if cashierID == 0 {
		return nil, ErrInvalidQuantity
	}
	items, err := s.cartRepo.ListByCashier(cashierID)
	if err != nil {
		return nil, err
	}

	detail := &CartDetail{
		Items:      make([]CartItemDetail, 0, len(items)),
		TotalPrice: models.NewMoneyFromDecimal(decimal.Zero),
	}
	total := decimal.Zero
	for _, item := range items {
		product := item.Product
		if product == nil || product.ID == 0 {
			p, err := s.productRepo.GetByID(item.ProductID)
			if err != nil {
				return nil, err
			}
			product = p
		}
		// 已下架或删除的商品直接清出购物车
		if product == nil || !product.IsActive {
			_ = s.cartRepo.DeleteByCashierAndProduct(cashierID, item.ProductID)
			continue
		}

		lineTotal := product.PriceAmount.Decimal.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(lineTotal)
		detail.ItemCount += item.Quantity
		detail.Items = append(detail.Items, CartItemDetail{
			ProductID:   item.ProductID,
			Quantity:    item.Quantity,
			UnitPrice:   product.PriceAmount,
			LineTotal:   models.NewMoneyFromDecimal(lineTotal),
			StockStatus: s.productService.StockStatusOf(product),
			Product:     product,
		})
	}
	detail.TotalPrice = models.NewMoneyFromDecimal(total)
	return detail, nil
}

// UpsertItem 设置购物车项的目标数量
// 数量超出库存时收敛到库存上限，收敛到 0 时移除该行。
func (s *CartService) UpsertItem(input UpsertCartItemInput) error {
	if input.CashierID == 0 || input.ProductID == 0 {
		return ErrInvalidQuantity
	}
	if input.Quantity <= 0 {
		return s.RemoveItem(input.CashierID, input.ProductID)
	}
	product, err := s.productRepo.GetByID(input.ProductID)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	if !product.IsActive {
		return ErrProductInactive
	}

	quantity := input.Quantity
	if quantity > product.StockQuantity {
		quantity = product.StockQuantity
	}
	if quantity <= 0 {
		return s.RemoveItem(input.CashierID, input.ProductID)
	}

	now := time.Now()
	item := &models.CartItem{
		CashierID: input.CashierID,
		ProductID: input.ProductID,
		Quantity:  quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return s.cartRepo.Upsert(item)
}

// AddItem 增量添加购物车项（重复添加时累加数量，封顶到库存）
func (s *CartService) AddItem(input UpsertCartItemInput) error {
	if input.CashierID == 0 || input.ProductID == 0 || input.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	existing, err := s.cartRepo.GetByCashierAndProduct(input.CashierID, input.ProductID)
	if err != nil {
		return err
	}
	if existing != nil {
		// 已达库存上限时保持原数量不变
		input.Quantity += existing.Quantity
	}
	return s.UpsertItem(input)
}

// RemoveItem 删除购物车项
func (s *CartService) RemoveItem(cashierID, productID uint) error {
	if cashierID == 0 || productID == 0 {
		return ErrInvalidQuantity
	}
	return s.cartRepo.DeleteByCashierAndProduct(cashierID, productID)
}

// Clear 清空购物车
func (s *CartService) Clear(cashierID uint) error {
	if cashierID == 0 {
		return ErrInvalidQuantity
	}
	return s.cartRepo.ClearByCashier(cashierID)
}
