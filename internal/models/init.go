package models

import (
	"github.com/petpaw-pos/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

// InitDefaultCashier 初始化默认收银员账号
func InitDefaultCashier(username, password string) error {
	var count int64
	DB.Model(&Cashier{}).Count(&count)

	// 已有收银员则跳过
	if count > 0 {
		return nil
	}

	if username == "" {
		username = "cashier"
	}
	if password == "" {
		password = "cashier123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	cashier := Cashier{
		Username:     username,
		PasswordHash: string(hash),
		DisplayName:  username,
		IsActive:     true,
	}

	if err := DB.Create(&cashier).Error; err != nil {
		return err
	}

	if password == "cashier123" {
		logger.Warnw("default_cashier_created_with_default_password", "username", username, "password", password)
		logger.Warnw("default_cashier_password_change_required", "username", username)
	} else {
		logger.Warnw("default_cashier_created", "username", username, "password_hidden", true)
	}

	return nil
}
