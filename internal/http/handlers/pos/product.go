package pos

import (
	"errors"
	"strconv"
	"strings"

	handlershared "github.com/petpaw-pos/internal/http/handlers/shared"
	"github.com/petpaw-pos/internal/http/response"
	"github.com/petpaw-pos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func parsePathID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "路径参数不合法", nil)
		return 0, false
	}
	return uint(id), true
}

func listPagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	return handlershared.NormalizePagination(page, pageSize)
}

func buildPagination(page, pageSize int, total int64) response.Pagination {
	return response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
}

// GetCatalog 获取收银台商品目录
func (h *Handler) GetCatalog(c *gin.Context) {
	page, pageSize := listPagination(c)
	categoryID := c.Query("category_id")
	search := c.Query("search")
	stockStatus := c.Query("stock_status")

	products, total, err := h.ProductService.ListCatalog(categoryID, search, stockStatus, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "获取商品目录失败", err)
		return
	}

	response.SuccessWithPage(c, products, buildPagination(page, pageSize, total))
}

// GetProduct 获取商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := parsePathID(c, "id")
	if !ok {
		return
	}

	product, err := h.ProductService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "商品不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "获取商品失败", err)
		return
	}

	response.Success(c, product)
}

// GetProductBySKU 根据货号获取商品（扫码场景）
func (h *Handler) GetProductBySKU(c *gin.Context) {
	sku := strings.TrimSpace(c.Param("sku"))
	if sku == "" {
		respondError(c, response.CodeBadRequest, "路径参数不合法", nil)
		return
	}

	product, err := h.ProductService.GetBySKU(sku)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "商品不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "获取商品失败", err)
		return
	}

	response.Success(c, product)
}

// GetAdminProducts 获取管理端商品列表（含下架商品）
func (h *Handler) GetAdminProducts(c *gin.Context) {
	page, pageSize := listPagination(c)
	categoryID := c.Query("category_id")
	search := c.Query("search")
	stockStatus := c.Query("stock_status")

	products, total, err := h.ProductService.ListAdmin(categoryID, search, stockStatus, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "获取商品列表失败", err)
		return
	}

	response.SuccessWithPage(c, products, buildPagination(page, pageSize, total))
}

// GetLowStockProducts 获取低库存商品列表
func (h *Handler) GetLowStockProducts(c *gin.Context) {
	products, err := h.ProductService.ListLowStock()
	if err != nil {
		respondError(c, response.CodeInternal, "获取低库存商品失败", err)
		return
	}

	response.Success(c, gin.H{
		"threshold": h.ProductService.LowStockThreshold(),
		"items":     products,
	})
}

// ProductRequest 创建/更新商品请求
type ProductRequest struct {
	CategoryID    uint                   `json:"category_id"`
	SKU           string                 `json:"sku" binding:"required"`
	Name          string                 `json:"name" binding:"required"`
	Description   string                 `json:"description"`
	Price         float64                `json:"price"`
	StockQuantity *int                   `json:"stock_quantity"`
	ImageURL      string                 `json:"image_url"`
	Images        []string               `json:"images"`
	Attributes    map[string]interface{} `json:"attributes"`
	IsActive      *bool                  `json:"is_active"`
	SortOrder     int                    `json:"sort_order"`
}

func (r ProductRequest) toServiceInput() service.CreateProductInput {
	return service.CreateProductInput{
		CategoryID:    r.CategoryID,
		SKU:           r.SKU,
		Name:          r.Name,
		Description:   r.Description,
		PriceAmount:   decimal.NewFromFloat(r.Price),
		StockQuantity: r.StockQuantity,
		ImageURL:      r.ImageURL,
		Images:        r.Images,
		Attributes:    r.Attributes,
		IsActive:      r.IsActive,
		SortOrder:     r.SortOrder,
	}
}

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不合法", err)
		return
	}

	product, err := h.ProductService.Create(req.toServiceInput())
	if err != nil {
		respondWithMappedError(c, err, productWriteErrorRules, response.CodeInternal, "保存商品失败")
		return
	}

	requestLog(c).Infow("product_created", "product_id", product.ID, "sku", product.SKU)
	response.Success(c, product)
}

// UpdateProduct 更新商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := parsePathID(c, "id")
	if !ok {
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不合法", err)
		return
	}

	product, err := h.ProductService.Update(id, req.toServiceInput())
	if err != nil {
		respondWithMappedError(c, err, productWriteErrorRules, response.CodeInternal, "保存商品失败")
		return
	}

	response.Success(c, product)
}

// DeleteProduct 删除商品
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := parsePathID(c, "id")
	if !ok {
		return
	}

	if err := h.ProductService.Delete(id); err != nil {
		respondWithMappedError(c, err, productWriteErrorRules, response.CodeInternal, "删除商品失败")
		return
	}

	requestLog(c).Infow("product_deleted", "product_id", id)
	response.Success(c, gin.H{"deleted": true})
}
