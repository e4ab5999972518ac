package service

import (
	"context"
	"errors"
	"time"

	"github.com/petpaw-pos/internal/cache"
	"github.com/petpaw-pos/internal/config"
	"github.com/petpaw-pos/internal/models"
	"github.com/petpaw-pos/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthService 收银员认证服务
type AuthService struct {
	cfg         *config.Config
	cashierRepo repository.CashierRepository
}

// NewAuthService 创建认证服务实例
func NewAuthService(cfg *config.Config, cashierRepo repository.CashierRepository) *AuthService {
	return &AuthService{
		cfg:         cfg,
		cashierRepo: cashierRepo,
	}
}

// HashPassword 使用 bcrypt 加密密码
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword 验证密码
func (s *AuthService) VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// ValidatePassword 校验密码是否符合策略
func (s *AuthService) ValidatePassword(password string) error {
	if s == nil || s.cfg == nil {
		return nil
	}
	return validatePassword(s.cfg.Security.PasswordPolicy, password)
}

// JWTClaims JWT 声明
type JWTClaims struct {
	CashierID    uint   `json:"cashier_id"`
	Username     string `json:"username"`
	TokenVersion uint64 `json:"token_version"`
	jwt.RegisteredClaims
}

// GenerateJWT 生成 JWT Token
func (s *AuthService) GenerateJWT(cashier *models.Cashier) (string, time.Time, error) {
	expiresAt := time.Now().Add(time.Duration(s.cfg.JWT.ExpireHours) * time.Hour)

	claims := JWTClaims{
		CashierID:    cashier.ID,
		Username:     cashier.Username,
		TokenVersion: cashier.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.JWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

// ParseJWT 解析 JWT Token
func (s *AuthService) ParseJWT(tokenString string) (*JWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWT.SecretKey), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("无效的 token")
}

// Login 收银员登录
func (s *AuthService) Login(username, password string) (*models.Cashier, string, time.Time, error) {
	// 查找收银员
	cashier, err := s.cashierRepo.GetByUsername(username)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if cashier == nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	// 验证密码
	if err := s.VerifyPassword(cashier.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	if !cashier.IsActive {
		return nil, "", time.Time{}, ErrCashierDisabled
	}

	// 生成 JWT
	token, expiresAt, err := s.GenerateJWT(cashier)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	// 更新最后登录时间
	now := time.Now()
	cashier.LastLoginAt = &now
	if err := s.cashierRepo.Update(cashier); err != nil {
		return nil, "", time.Time{}, err
	}
	_ = cache.SetCashierAuthState(context.Background(), cache.BuildCashierAuthState(cashier))

	return cashier, token, expiresAt, nil
}

// ChangePassword 修改收银员密码
func (s *AuthService) ChangePassword(cashierID uint, oldPassword, newPassword string) error {
	cashier, err := s.cashierRepo.GetByID(cashierID)
	if err != nil {
		return err
	}
	if cashier == nil {
		return ErrNotFound
	}

	if err := s.VerifyPassword(cashier.PasswordHash, oldPassword); err != nil {
		return ErrInvalidPassword
	}

	if err := s.ValidatePassword(newPassword); err != nil {
		return err
	}

	hashedPassword, err := s.HashPassword(newPassword)
	if err != nil {
		return err
	}

	cashier.PasswordHash = hashedPassword
	now := time.Now()
	cashier.TokenVersion++
	cashier.TokenInvalidBefore = &now
	if err := s.cashierRepo.Update(cashier); err != nil {
		return err
	}
	_ = cache.SetCashierAuthState(context.Background(), cache.BuildCashierAuthState(cashier))
	return nil
}

// InvalidateSessions 作废该收银员已签发的全部 token（登出）
func (s *AuthService) InvalidateSessions(cashierID uint) error {
	cashier, err := s.cashierRepo.GetByID(cashierID)
	if err != nil {
		return err
	}
	if cashier == nil {
		return ErrNotFound
	}

	now := time.Now()
	cashier.TokenVersion++
	cashier.TokenInvalidBefore = &now
	if err := s.cashierRepo.Update(cashier); err != nil {
		return err
	}
	_ = cache.DelCashierAuthState(context.Background(), cashier.ID)
	return nil
}

// GetProfile 获取收银员信息
func (s *AuthService) GetProfile(cashierID uint) (*models.Cashier, error) {
	cashier, err := s.cashierRepo.GetByID(cashierID)
	if err != nil {
		return nil, err
	}
	if cashier == nil {
		return nil, ErrNotFound
	}
	return cashier, nil
}
