package service

import "errors"

// 服务层业务错误定义，handler 层据此映射响应码。
var (
	ErrNotFound           = errors.New("记录不存在")
	ErrInvalidCredentials = errors.New("用户名或密码错误")
	ErrInvalidPassword    = errors.New("密码错误")
	ErrWeakPassword       = errors.New("密码强度不足")
	ErrCashierDisabled    = errors.New("收银员已停用")

	ErrCategoryNotFound   = errors.New("分类不存在")
	ErrCategoryHasProduct = errors.New("分类下仍有商品")
	ErrSlugExists         = errors.New("slug 已存在")

	ErrProductNotFound = errors.New("商品不存在")
	ErrProductInactive = errors.New("商品已下架")
	ErrProductInvalid  = errors.New("商品参数不合法")
	ErrSKUExists       = errors.New("商品货号已存在")

	ErrInvalidQuantity    = errors.New("数量不合法")
	ErrCartEmpty          = errors.New("购物车为空")
	ErrStockInsufficient  = errors.New("库存不足")
	ErrCashInsufficient   = errors.New("实收现金不足")
	ErrPaymentUnsupported = errors.New("不支持的支付方式")

	ErrTransactionNotFound = errors.New("交易不存在")
	ErrInvalidDateRange    = errors.New("日期范围不合法")

	ErrCaptchaRequired      = errors.New("需要验证码")
	ErrCaptchaInvalid       = errors.New("验证码错误")
	ErrCaptchaConfigInvalid = errors.New("验证码配置不可用")

	ErrSettingKeyUnknown   = errors.New("未知的设置键")
	ErrSettingValueInvalid = errors.New("设置值不合法")

	ErrDashboardRangeInvalid = errors.New("统计时间范围不合法")
)
