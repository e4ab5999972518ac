package pos

import (
	"errors"

	"github.com/petpaw-pos/internal/http/response"
	"github.com/petpaw-pos/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

var cartErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidQuantity, code: response.CodeBadRequest, msg: "数量不合法"},
	{target: service.ErrProductNotFound, code: response.CodeNotFound, msg: "商品不存在"},
	{target: service.ErrProductInactive, code: response.CodeBadRequest, msg: "商品已下架"},
	{target: service.ErrStockInsufficient, code: response.CodeBadRequest, msg: "库存不足"},
}

var checkoutErrorRules = []mappedHandlerError{
	{target: service.ErrCartEmpty, code: response.CodeBadRequest, msg: "购物车为空"},
	{target: service.ErrPaymentUnsupported, code: response.CodeBadRequest, msg: "不支持的支付方式"},
	{target: service.ErrCashInsufficient, code: response.CodeBadRequest, msg: "实收现金不足"},
	{target: service.ErrStockInsufficient, code: response.CodeBadRequest, msg: "库存不足"},
	{target: service.ErrProductInactive, code: response.CodeBadRequest, msg: "商品已下架"},
	{target: service.ErrProductNotFound, code: response.CodeBadRequest, msg: "商品不存在"},
}

var productWriteErrorRules = []mappedHandlerError{
	{target: service.ErrProductNotFound, code: response.CodeNotFound, msg: "商品不存在"},
	{target: service.ErrProductInvalid, code: response.CodeBadRequest, msg: "商品参数不合法"},
	{target: service.ErrSKUExists, code: response.CodeBadRequest, msg: "商品货号已存在"},
}

var categoryWriteErrorRules = []mappedHandlerError{
	{target: service.ErrCategoryNotFound, code: response.CodeNotFound, msg: "分类不存在"},
	{target: service.ErrSlugExists, code: response.CodeBadRequest, msg: "分类标识已存在"},
	{target: service.ErrCategoryHasProduct, code: response.CodeBadRequest, msg: "分类下仍有商品"},
}

var transactionErrorRules = []mappedHandlerError{
	{target: service.ErrTransactionNotFound, code: response.CodeNotFound, msg: "交易不存在"},
	{target: service.ErrInvalidDateRange, code: response.CodeBadRequest, msg: "日期范围不合法"},
}

var settingErrorRules = []mappedHandlerError{
	{target: service.ErrSettingKeyUnknown, code: response.CodeBadRequest, msg: "未知的设置键"},
	{target: service.ErrSettingValueInvalid, code: response.CodeBadRequest, msg: "设置值不合法"},
}

var dashboardErrorRules = []mappedHandlerError{
	{target: service.ErrDashboardRangeInvalid, code: response.CodeBadRequest, msg: "统计时间范围不合法"},
}

func respondCartError(c *gin.Context, err error) {
	respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "购物车操作失败")
}

func respondCheckoutError(c *gin.Context, err error) {
	respondWithMappedError(c, err, checkoutErrorRules, response.CodeInternal, "结账失败")
}
