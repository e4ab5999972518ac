package models

import (
	"time"

	"gorm.io/gorm"
)

// Cashier 收银员账户
type Cashier struct {
	ID                 uint           `gorm:"primarykey" json:"id"`
	Username           string         `gorm:"uniqueIndex;size:64;not null" json:"username"` // 登录用户名
	PasswordHash       string         `gorm:"size:255;not null" json:"-"`                   // bcrypt 哈希
	DisplayName        string         `gorm:"size:64" json:"display_name"`                  // 小票上展示的姓名
	IsActive           bool           `gorm:"default:true" json:"is_active"`
	TokenVersion       uint64         `gorm:"default:0" json:"-"` // 改密后递增，作废旧令牌
	TokenInvalidBefore *time.Time     `json:"-"`                  // 此时间之前签发的令牌一律拒绝
	LastLoginAt        *time.Time     `json:"last_login_at"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName 指定表名
func (Cashier) TableName() string {
	return "cashiers"
}
