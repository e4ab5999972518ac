package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/petpaw-pos/internal/config"
	"github.com/petpaw-pos/internal/models"
	"github.com/petpaw-pos/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func authTestConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			SecretKey:   "auth-service-test-secret",
			ExpireHours: 24,
		},
		Security: config.SecurityConfig{
			PasswordPolicy: config.PasswordPolicyConfig{
				MinLength:     8,
				RequireLower:  true,
				RequireNumber: true,
			},
		},
	}
}

func setupAuthServiceTest(t *testing.T, name string) (*gorm.DB, *AuthService) {
	t.Helper()

	dsn := fmt.Sprintf("file:auth_service_%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Cashier{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return db, NewAuthService(authTestConfig(), repository.NewCashierRepository(db))
}

func createAuthCashier(t *testing.T, db *gorm.DB, svc *AuthService, username, password string, active bool) *models.Cashier {
	t.Helper()
	hash, err := svc.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password failed: %v", err)
	}
	cashier := models.Cashier{
		Username:     username,
		PasswordHash: hash,
		DisplayName:  "Test Cashier",
		IsActive:     active,
	}
	if err := db.Create(&cashier).Error; err != nil {
		t.Fatalf("create cashier failed: %v", err)
	}
	return &cashier
}

func TestLoginSuccessReturnsToken(t *testing.T) {
	db, svc := setupAuthServiceTest(t, "login")
	createAuthCashier(t, db, svc, "budi", "paws1234", true)

	cashier, token, expiresAt, err := svc.Login("budi", "paws1234")
	if err != nil {
		t.Fatalf("login error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token")
	}
	if !expiresAt.After(time.Now()) {
		t.Fatalf("expected future expiry, got %v", expiresAt)
	}
	if cashier.LastLoginAt == nil {
		t.Fatalf("expected last login recorded")
	}

	claims, err := svc.ParseJWT(token)
	if err != nil {
		t.Fatalf("parse token error: %v", err)
	}
	if claims.CashierID != cashier.ID || claims.Username != "budi" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	db, svc := setupAuthServiceTest(t, "badcred")
	createAuthCashier(t, db, svc, "sari", "paws1234", true)

	_, _, _, err := svc.Login("sari", "wrong-pass")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got: %v", err)
	}
	_, _, _, err = svc.Login("nobody", "paws1234")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for unknown user, got: %v", err)
	}
}

func TestLoginRejectsDisabledCashier(t *testing.T) {
	db, svc := setupAuthServiceTest(t, "disabled")
	createAuthCashier(t, db, svc, "tono", "paws1234", false)

	_, _, _, err := svc.Login("tono", "paws1234")
	if !errors.Is(err, ErrCashierDisabled) {
		t.Fatalf("expected disabled cashier error, got: %v", err)
	}
}

func TestParseJWTRejectsTamperedToken(t *testing.T) {
	db, svc := setupAuthServiceTest(t, "tamper")
	cashier := createAuthCashier(t, db, svc, "rina", "paws1234", true)

	token, _, err := svc.GenerateJWT(cashier)
	if err != nil {
		t.Fatalf("generate token error: %v", err)
	}
	if _, err := svc.ParseJWT(token + "x"); err == nil {
		t.Fatalf("expected tampered token to be rejected")
	}
}

func TestChangePasswordBumpsTokenVersion(t *testing.T) {
	db, svc := setupAuthServiceTest(t, "changepw")
	cashier := createAuthCashier(t, db, svc, "dewi", "paws1234", true)

	if err := svc.ChangePassword(cashier.ID, "paws1234", "newpaws567"); err != nil {
		t.Fatalf("change password error: %v", err)
	}

	var updated models.Cashier
	if err := db.First(&updated, cashier.ID).Error; err != nil {
		t.Fatalf("load cashier failed: %v", err)
	}
	if updated.TokenVersion != cashier.TokenVersion+1 {
		t.Fatalf("expected token version bump, got %d", updated.TokenVersion)
	}
	if updated.TokenInvalidBefore == nil {
		t.Fatalf("expected token invalidation timestamp")
	}

	if err := svc.ChangePassword(cashier.ID, "paws1234", "anotherpw1"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("expected old password rejected, got: %v", err)
	}
}

func TestInvalidateSessionsBumpsTokenVersion(t *testing.T) {
	db, svc := setupAuthServiceTest(t, "logout")
	cashier := createAuthCashier(t, db, svc, "rina", "paws1234", true)

	if err := svc.InvalidateSessions(cashier.ID); err != nil {
		t.Fatalf("invalidate sessions error: %v", err)
	}

	var updated models.Cashier
	if err := db.First(&updated, cashier.ID).Error; err != nil {
		t.Fatalf("load cashier failed: %v", err)
	}
	if updated.TokenVersion != cashier.TokenVersion+1 {
		t.Fatalf("expected token version bump, got %d", updated.TokenVersion)
	}
	if updated.TokenInvalidBefore == nil {
		t.Fatalf("expected token invalidation timestamp")
	}

	if err := svc.InvalidateSessions(9999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown cashier, got %v", err)
	}
}

func TestValidatePasswordPolicy(t *testing.T) {
	_, svc := setupAuthServiceTest(t, "policy")

	if err := svc.ValidatePassword("paws1234"); err != nil {
		t.Fatalf("expected compliant password, got: %v", err)
	}
	if err := svc.ValidatePassword("short1"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected weak password for short input, got: %v", err)
	}
	if err := svc.ValidatePassword("12345678"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected weak password without letters, got: %v", err)
	}
	if err := svc.ValidatePassword("pawsonly"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected weak password without digits, got: %v", err)
	}
}
