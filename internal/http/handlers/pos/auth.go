package pos

import (
	"errors"
	"time"

	handlershared "github.com/petpaw-pos/internal/http/handlers/shared"
	"github.com/petpaw-pos/internal/http/response"
	"github.com/petpaw-pos/internal/models"
	"github.com/petpaw-pos/internal/service"

	"github.com/gin-gonic/gin"
)

// LoginRequest 登录请求
type LoginRequest struct {
	Username       string                              `json:"username" binding:"required"`
	Password       string                              `json:"password" binding:"required"`
	CaptchaPayload handlershared.CaptchaPayloadRequest `json:"captcha_payload"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Token     string          `json:"token"`
	Cashier   CashierResponse `json:"cashier"`
	ExpiresAt string          `json:"expires_at"`
}

// CashierResponse 收银员摘要
type CashierResponse struct {
	ID          uint   `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	LastLoginAt string `json:"last_login_at,omitempty"`
}

func buildCashierResponse(cashier *models.Cashier) CashierResponse {
	resp := CashierResponse{
		ID:          cashier.ID,
		Username:    cashier.Username,
		DisplayName: cashier.DisplayName,
	}
	if cashier.LastLoginAt != nil {
		resp.LastLoginAt = cashier.LastLoginAt.Format(time.RFC3339)
	}
	return resp
}

// Login 收银员登录
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不合法", err)
		return
	}

	if h.CaptchaService != nil {
		if captchaErr := h.CaptchaService.Verify(req.CaptchaPayload.ToServicePayload()); captchaErr != nil {
			switch {
			case errors.Is(captchaErr, service.ErrCaptchaRequired):
				respondError(c, response.CodeBadRequest, "需要验证码", nil)
			case errors.Is(captchaErr, service.ErrCaptchaInvalid):
				respondError(c, response.CodeBadRequest, "验证码错误", nil)
			default:
				respondError(c, response.CodeInternal, "验证码校验失败", captchaErr)
			}
			return
		}
	}

	cashier, token, expiresAt, err := h.AuthService.Login(req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			respondError(c, response.CodeUnauthorized, "用户名或密码错误", nil)
		case errors.Is(err, service.ErrCashierDisabled):
			respondError(c, response.CodeForbidden, "收银员已停用", nil)
		default:
			respondError(c, response.CodeInternal, "登录失败", err)
		}
		return
	}

	requestLog(c).Infow("cashier_login", "cashier_id", cashier.ID, "username", cashier.Username)
	response.Success(c, LoginResponse{
		Token:     token,
		Cashier:   buildCashierResponse(cashier),
		ExpiresAt: expiresAt.Format(time.RFC3339),
	})
}

// GetProfile 获取当前收银员信息
func (h *Handler) GetProfile(c *gin.Context) {
	id, ok := getCashierID(c)
	if !ok {
		return
	}

	cashier, err := h.AuthService.GetProfile(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "收银员不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "获取收银员信息失败", err)
		return
	}

	response.Success(c, buildCashierResponse(cashier))
}

// UpdatePasswordRequest 修改密码请求
type UpdatePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// UpdatePassword 修改当前收银员密码
func (h *Handler) UpdatePassword(c *gin.Context) {
	id, ok := getCashierID(c)
	if !ok {
		return
	}

	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不合法", err)
		return
	}

	if err := h.AuthService.ChangePassword(id, req.OldPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPassword):
			respondError(c, response.CodeBadRequest, "原密码错误", nil)
		case errors.Is(err, service.ErrWeakPassword):
			respondError(c, response.CodeBadRequest, "新密码强度不足", nil)
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "收银员不存在", nil)
		default:
			respondError(c, response.CodeInternal, "保存失败", err)
		}
		return
	}

	response.Success(c, nil)
}

// Logout 收银员登出，作废当前已签发的全部 token
func (h *Handler) Logout(c *gin.Context) {
	id, ok := getCashierID(c)
	if !ok {
		return
	}

	if err := h.AuthService.InvalidateSessions(id); err != nil {
		respondError(c, response.CodeInternal, "登出失败", err)
		return
	}
	requestLog(c).Infow("cashier_logout", "cashier_id", id)
	response.Success(c, gin.H{"logged_out": true})
}
