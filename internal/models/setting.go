package models

// Setting 门店设置表，按键值对存储（店名、币种、小票抬头等）
type Setting struct {
	Key       string `gorm:"primarykey" json:"key"`  // 设置键
	ValueJSON JSON   `gorm:"type:json" json:"value"` // 设置值，统一包一层 {"value": ...}
}

// TableName 指定表名
func (Setting) TableName() string {
	return "settings"
}
