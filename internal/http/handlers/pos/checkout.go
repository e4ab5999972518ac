package pos

import (
	"github.com/petpaw-pos/internal/constants"
	"github.com/petpaw-pos/internal/http/response"
	"github.com/petpaw-pos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CheckoutRequest 结账请求
type CheckoutRequest struct {
	PaymentMethod string  `json:"payment_method"`
	CashReceived  float64 `json:"cash_received" binding:"required"`
	Note          string  `json:"note"`
}

// Checkout 收银结账
func (h *Handler) Checkout(c *gin.Context) {
	cashierID, ok := getCashierID(c)
	if !ok {
		return
	}

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不合法", err)
		return
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = constants.PaymentMethodCash
	}

	receipt, err := h.CheckoutService.Checkout(service.CheckoutInput{
		CashierID:     cashierID,
		PaymentMethod: paymentMethod,
		CashReceived:  decimal.NewFromFloat(req.CashReceived),
		Note:          req.Note,
	})
	if err != nil {
		respondCheckoutError(c, err)
		return
	}

	requestLog(c).Infow("checkout_completed",
		"cashier_id", cashierID,
		"transaction_no", receipt.TransactionNo,
		"total_amount", receipt.TotalAmount.String(),
		"item_count", receipt.ItemCount)
	response.Success(c, receipt)
}
