package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/petpaw-pos/internal/models"
)

const authStateCacheTTL = 10 * time.Minute

// CashierAuthState 收银员鉴权快照
// token_invalid_before 为 Unix 秒时间戳，0 表示未设置
// 该结构仅用于服务端 Redis 缓存，避免每次请求回查数据库
type CashierAuthState struct {
	CashierID          uint   `json:"cashier_id"`
	Username           string `json:"username"`
	TokenVersion       uint64 `json:"token_version"`
	TokenInvalidBefore int64  `json:"token_invalid_before"`
	IsActive           bool   `json:"is_active"`
	UpdatedAt          int64  `json:"updated_at"`
}

func cashierAuthStateKey(cashierID uint) string {
	return fmt.Sprintf("auth:cashier:%d", cashierID)
}

// BuildCashierAuthState 从收银员模型构建鉴权快照
func BuildCashierAuthState(cashier *models.Cashier) *CashierAuthState {
	if cashier == nil {
		return nil
	}
	state := &CashierAuthState{
		CashierID:    cashier.ID,
		Username:     cashier.Username,
		TokenVersion: cashier.TokenVersion,
		IsActive:     cashier.IsActive,
		UpdatedAt:    time.Now().Unix(),
	}
	if cashier.TokenInvalidBefore != nil {
		state.TokenInvalidBefore = cashier.TokenInvalidBefore.Unix()
	}
	return state
}

// GetCashierAuthState 获取收银员鉴权快照
func GetCashierAuthState(ctx context.Context, cashierID uint) (*CashierAuthState, bool, error) {
	if cashierID == 0 {
		return nil, false, nil
	}
	var state CashierAuthState
	hit, err := GetJSON(ctx, cashierAuthStateKey(cashierID), &state)
	if err != nil || !hit {
		return nil, hit, err
	}
	return &state, true, nil
}

// SetCashierAuthState 写入收银员鉴权快照
func SetCashierAuthState(ctx context.Context, state *CashierAuthState) error {
	if state == nil || state.CashierID == 0 {
		return nil
	}
	return SetJSON(ctx, cashierAuthStateKey(state.CashierID), state, authStateCacheTTL)
}

// DelCashierAuthState 删除收银员鉴权快照，下次请求回源数据库
func DelCashierAuthState(ctx context.Context, cashierID uint) error {
	if cashierID == 0 {
		return nil
	}
	return Del(ctx, cashierAuthStateKey(cashierID))
}
