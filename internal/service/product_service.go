package service

import (
	"strings"

	"github.com/petpaw-pos/internal/constants"
	"github.com/petpaw-pos/internal/models"
	"github.com/petpaw-pos/internal/repository"

	"github.com/shopspring/decimal"
)

// ProductService 商品业务服务
type ProductService struct {
	repo             repository.ProductRepository
	settingService   *SettingService
	defaultThreshold int
}

// NewProductService 创建商品服务
// settingService 为空时低库存阈值退回配置默认值。
func NewProductService(repo repository.ProductRepository, settingService *SettingService, defaultThreshold int) *ProductService {
	if defaultThreshold <= 0 {
		defaultThreshold = 10
	}
	return &ProductService{
		repo:             repo,
		settingService:   settingService,
		defaultThreshold: defaultThreshold,
	}
}

// LowStockThreshold 当前低库存阈值
// 每次从设置读取，保证阈值修改后目录徽标即时生效。
func (s *ProductService) LowStockThreshold() int {
	if s.settingService == nil {
		return s.defaultThreshold
	}
	threshold, err := s.settingService.GetLowStockThreshold(s.defaultThreshold)
	if err != nil {
		return s.defaultThreshold
	}
	return threshold
}

// CreateProductInput 创建/更新商品输入
type CreateProductInput struct {
	CategoryID    uint
	SKU           string
	Name          string
	Description   string
	PriceAmount   decimal.Decimal
	StockQuantity *int
	ImageURL      string
	Images        []string
	Attributes    map[string]interface{}
	IsActive      *bool
	SortOrder     int
}

// ProductView 带库存状态标识的商品视图
// StockStatus 供收银目录筛选，StockLevel 供管理端徽标展示
type ProductView struct {
	models.Product
	StockStatus string `json:"stock_status"`
	StockLevel  string `json:"stock_level"`
}

// StockStatusOf 计算商品库存状态标识
func (s *ProductService) StockStatusOf(product *models.Product) string {
	return stockStatusWith(product, s.LowStockThreshold())
}

// StockLevelOf 计算管理端库存水位徽标
func (s *ProductService) StockLevelOf(product *models.Product) string {
	return stockLevelWith(product, s.LowStockThreshold())
}

func stockStatusWith(product *models.Product, threshold int) string {
	if product == nil {
		return constants.StockStatusOutOfStock
	}
	switch {
	case product.StockQuantity <= 0:
		return constants.StockStatusOutOfStock
	case product.StockQuantity <= threshold:
		return constants.StockStatusLowStock
	default:
		return constants.StockStatusInStock
	}
}

func stockLevelWith(product *models.Product, threshold int) string {
	if product == nil {
		return constants.StockLevelLow
	}
	switch {
	case product.StockQuantity < threshold:
		return constants.StockLevelLow
	case product.StockQuantity < threshold*3:
		return constants.StockLevelMedium
	default:
		return constants.StockLevelHigh
	}
}

func (s *ProductService) buildViews(products []models.Product) []ProductView {
	// 阈值只读一次，避免按行回查设置
	threshold := s.LowStockThreshold()
	views := make([]ProductView, 0, len(products))
	for i := range products {
		views = append(views, ProductView{
			Product:     products[i],
			StockStatus: stockStatusWith(&products[i], threshold),
			StockLevel:  stockLevelWith(&products[i], threshold),
		})
	}
	return views
}

// ListCatalog 获取收银台商品目录（仅在售商品）
func (s *ProductService) ListCatalog(categoryID, search, stockStatus string, page, pageSize int) ([]ProductView, int64, error) {
	filter := repository.ProductListFilter{
		Page:         page,
		PageSize:     pageSize,
		CategoryID:   categoryID,
		Search:       search,
		StockStatus:  strings.ToLower(strings.TrimSpace(stockStatus)),
		LowStockMax:  s.LowStockThreshold(),
		OnlyActive:   true,
		InStockOnly:  true,
		OrderByName:  true,
		WithCategory: true,
	}
	products, total, err := s.repo.List(filter)
	if err != nil {
		return nil, 0, err
	}
	return s.buildViews(products), total, nil
}

// ListAdmin 获取管理端商品列表（含下架商品）
func (s *ProductService) ListAdmin(categoryID, search, stockStatus string, page, pageSize int) ([]ProductView, int64, error) {
	filter := repository.ProductListFilter{
		Page:         page,
		PageSize:     pageSize,
		CategoryID:   categoryID,
		Search:       search,
		StockStatus:  strings.ToLower(strings.TrimSpace(stockStatus)),
		LowStockMax:  s.LowStockThreshold(),
		OnlyActive:   false,
		WithCategory: true,
	}
	products, total, err := s.repo.List(filter)
	if err != nil {
		return nil, 0, err
	}
	return s.buildViews(products), total, nil
}

// Get 获取商品详情
func (s *ProductService) Get(id uint) (*ProductView, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return &ProductView{Product: *product, StockStatus: s.StockStatusOf(product), StockLevel: s.StockLevelOf(product)}, nil
}

// GetBySKU 根据货号获取商品（扫码录入场景）
func (s *ProductService) GetBySKU(sku string) (*ProductView, error) {
	product, err := s.repo.GetBySKU(strings.TrimSpace(sku))
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return &ProductView{Product: *product, StockStatus: s.StockStatusOf(product), StockLevel: s.StockLevelOf(product)}, nil
}

// Create 创建商品
func (s *ProductService) Create(input CreateProductInput) (*models.Product, error) {
	sku := strings.TrimSpace(input.SKU)
	name := strings.TrimSpace(input.Name)
	priceAmount := input.PriceAmount.Round(2)
	if sku == "" || name == "" || priceAmount.LessThan(decimal.Zero) {
		return nil, ErrProductInvalid
	}
	count, err := s.repo.CountBySKU(sku, nil)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSKUExists
	}

	stockQuantity := 0
	if input.StockQuantity != nil {
		stockQuantity = *input.StockQuantity
	}
	if stockQuantity < 0 {
		return nil, ErrProductInvalid
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	product := models.Product{
		CategoryID:    input.CategoryID,
		SKU:           sku,
		Name:          name,
		Description:   input.Description,
		PriceAmount:   models.NewMoneyFromDecimal(priceAmount),
		StockQuantity: stockQuantity,
		ImageURL:      input.ImageURL,
		Images:        models.StringArray(input.Images),
		Attributes:    models.JSON(input.Attributes),
		IsActive:      isActive,
		SortOrder:     input.SortOrder,
	}
	if err := s.repo.Create(&product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Update 更新商品
func (s *ProductService) Update(id uint, input CreateProductInput) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	sku := strings.TrimSpace(input.SKU)
	name := strings.TrimSpace(input.Name)
	priceAmount := input.PriceAmount.Round(2)
	if sku == "" || name == "" || priceAmount.LessThan(decimal.Zero) {
		return nil, ErrProductInvalid
	}
	count, err := s.repo.CountBySKU(sku, &id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSKUExists
	}

	product.CategoryID = input.CategoryID
	product.SKU = sku
	product.Name = name
	product.Description = input.Description
	product.PriceAmount = models.NewMoneyFromDecimal(priceAmount)
	if input.StockQuantity != nil {
		if *input.StockQuantity < 0 {
			return nil, ErrProductInvalid
		}
		product.StockQuantity = *input.StockQuantity
	}
	product.ImageURL = input.ImageURL
	product.Images = models.StringArray(input.Images)
	product.Attributes = models.JSON(input.Attributes)
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	product.SortOrder = input.SortOrder

	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete 删除商品
func (s *ProductService) Delete(id uint) error {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	return s.repo.Delete(id)
}

// ListLowStock 列出低于阈值的在售商品
func (s *ProductService) ListLowStock() ([]ProductView, error) {
	products, err := s.repo.ListLowStock(s.LowStockThreshold())
	if err != nil {
		return nil, err
	}
	return s.buildViews(products), nil
}
