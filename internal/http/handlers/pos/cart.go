package pos

import (
	"github.com/petpaw-pos/internal/http/response"
	"github.com/petpaw-pos/internal/service"

	"github.com/gin-gonic/gin"
)

// CartItemRequest 购物车项请求。数量用指针，数量 0 是合法的删除语义，
// required 校验会把零值当缺字段拒掉。
type CartItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  *int `json:"quantity" binding:"required"`
}

// GetCart 获取当前收银员购物车
func (h *Handler) GetCart(c *gin.Context) {
	cashierID, ok := getCashierID(c)
	if !ok {
		return
	}

	cart, err := h.CartService.GetCart(cashierID)
	if err != nil {
		respondCartError(c, err)
		return
	}

	response.Success(c, cart)
}

// AddCartItem 加入购物车（数量累加）
func (h *Handler) AddCartItem(c *gin.Context) {
	cashierID, ok := getCashierID(c)
	if !ok {
		return
	}

	var req CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不合法", err)
		return
	}

	if err := h.CartService.AddItem(service.UpsertCartItemInput{
		CashierID: cashierID,
		ProductID: req.ProductID,
		Quantity:  *req.Quantity,
	}); err != nil {
		respondCartError(c, err)
		return
	}

	response.Success(c, gin.H{"added": true})
}

// UpsertCartItem 设置购物车项数量
func (h *Handler) UpsertCartItem(c *gin.Context) {
	cashierID, ok := getCashierID(c)
	if !ok {
		return
	}

	var req CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不合法", err)
		return
	}

	if *req.Quantity <= 0 {
		if err := h.CartService.RemoveItem(cashierID, req.ProductID); err != nil {
			respondCartError(c, err)
			return
		}
		response.Success(c, gin.H{"updated": true})
		return
	}

	if err := h.CartService.UpsertItem(service.UpsertCartItemInput{
		CashierID: cashierID,
		ProductID: req.ProductID,
		Quantity:  *req.Quantity,
	}); err != nil {
		respondCartError(c, err)
		return
	}

	response.Success(c, gin.H{"updated": true})
}

// DeleteCartItem 删除购物车项
func (h *Handler) DeleteCartItem(c *gin.Context) {
	cashierID, ok := getCashierID(c)
	if !ok {
		return
	}
	productID, ok := parsePathID(c, "product_id")
	if !ok {
		return
	}

	if err := h.CartService.RemoveItem(cashierID, productID); err != nil {
		respondCartError(c, err)
		return
	}

	response.Success(c, gin.H{"deleted": true})
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	cashierID, ok := getCashierID(c)
	if !ok {
		return
	}

	if err := h.CartService.Clear(cashierID); err != nil {
		respondCartError(c, err)
		return
	}

	response.Success(c, gin.H{"cleared": true})
}
