package pos

import (
	"strconv"

	"github.com/petpaw-pos/internal/http/response"
	"github.com/petpaw-pos/internal/service"

	"github.com/gin-gonic/gin"
)

// GetTransactions 查询交易历史
func (h *Handler) GetTransactions(c *gin.Context) {
	page, pageSize := listPagination(c)

	input := service.TransactionListInput{
		Page:          page,
		PageSize:      pageSize,
		TransactionNo: c.Query("transaction_no"),
		StartDate:     c.Query("start_date"),
		EndDate:       c.Query("end_date"),
	}
	if raw := c.Query("cashier_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(c, response.CodeBadRequest, "收银员参数不合法", err)
			return
		}
		input.CashierID = uint(id)
	}

	transactions, total, err := h.TransactionService.List(input)
	if err != nil {
		respondWithMappedError(c, err, transactionErrorRules, response.CodeInternal, "查询交易历史失败")
		return
	}

	response.SuccessWithPage(c, transactions, buildPagination(page, pageSize, total))
}

// GetTransaction 获取交易详情
func (h *Handler) GetTransaction(c *gin.Context) {
	id, ok := parsePathID(c, "id")
	if !ok {
		return
	}

	trx, err := h.TransactionService.Get(id)
	if err != nil {
		respondWithMappedError(c, err, transactionErrorRules, response.CodeInternal, "获取交易失败")
		return
	}

	response.Success(c, trx)
}

// GetTransactionByNo 按交易号获取交易
func (h *Handler) GetTransactionByNo(c *gin.Context) {
	transactionNo := c.Param("transaction_no")
	if transactionNo == "" {
		respondError(c, response.CodeBadRequest, "交易号不能为空", nil)
		return
	}

	trx, err := h.TransactionService.GetByTransactionNo(transactionNo)
	if err != nil {
		respondWithMappedError(c, err, transactionErrorRules, response.CodeInternal, "获取交易失败")
		return
	}

	response.Success(c, trx)
}

// DeleteTransaction 删除交易记录
func (h *Handler) DeleteTransaction(c *gin.Context) {
	id, ok := parsePathID(c, "id")
	if !ok {
		return
	}

	if err := h.TransactionService.Delete(id); err != nil {
		respondWithMappedError(c, err, transactionErrorRules, response.CodeInternal, "删除交易失败")
		return
	}

	requestLog(c).Infow("transaction_deleted", "transaction_id", id)
	response.Success(c, gin.H{"deleted": true})
}
