package service

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/petpaw-pos/internal/constants"
	"github.com/petpaw-pos/internal/models"
	"github.com/petpaw-pos/internal/repository"
)

const settingValueField = "value"

var settingKeyWhitelist = map[string]struct{}{
	constants.SettingKeyShopName:          {},
	constants.SettingKeyShopAddress:       {},
	constants.SettingKeyShopPhone:         {},
	constants.SettingKeyCurrency:          {},
	constants.SettingKeyReceiptFooter:     {},
	constants.SettingKeyLowStockThreshold: {},
}

// SettingService 店铺设置业务服务
type SettingService struct {
	repo repository.SettingRepository
}

// NewSettingService 创建设置服务
func NewSettingService(repo repository.SettingRepository) *SettingService {
	return &SettingService{repo: repo}
}

// DefaultSettingValues 店铺设置默认值
func DefaultSettingValues() map[string]interface{} {
	return map[string]interface{}{
		constants.SettingKeyShopName:          "PetPaw Pet Shop",
		constants.SettingKeyShopAddress:       "",
		constants.SettingKeyShopPhone:         "",
		constants.SettingKeyCurrency:          "IDR",
		constants.SettingKeyReceiptFooter:     "Thank you for shopping with us!",
		constants.SettingKeyLowStockThreshold: 10,
	}
}

// GetAll 获取全部店铺设置（合并默认值）
func (s *SettingService) GetAll() (map[string]interface{}, error) {
	data := DefaultSettingValues()

	keys := make([]string, 0, len(settingKeyWhitelist))
	for key := range settingKeyWhitelist {
		keys = append(keys, key)
	}
	settings, err := s.repo.ListByKeys(keys)
	if err != nil {
		return nil, err
	}
	for _, setting := range settings {
		if value, ok := setting.ValueJSON[settingValueField]; ok {
			data[setting.Key] = value
		}
	}
	return data, nil
}

// Get 获取单个设置值
func (s *SettingService) Get(key string) (interface{}, error) {
	if _, ok := settingKeyWhitelist[key]; !ok {
		return nil, ErrSettingKeyUnknown
	}

	setting, err := s.repo.GetByKey(key)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return DefaultSettingValues()[key], nil
	}
	value, ok := setting.ValueJSON[settingValueField]
	if !ok {
		return DefaultSettingValues()[key], nil
	}
	return value, nil
}

// Update 更新单个设置值
func (s *SettingService) Update(key string, value interface{}) (interface{}, error) {
	if _, ok := settingKeyWhitelist[key]; !ok {
		return nil, ErrSettingKeyUnknown
	}

	normalized, err := normalizeSettingValue(key, value)
	if err != nil {
		return nil, err
	}

	setting, err := s.repo.Upsert(key, models.JSON{settingValueField: normalized})
	if err != nil {
		return nil, err
	}
	return setting.ValueJSON[settingValueField], nil
}

// GetString 获取字符串设置，空值回退默认
func (s *SettingService) GetString(key, defaultValue string) (string, error) {
	value, err := s.Get(key)
	if err != nil {
		return defaultValue, err
	}
	text, ok := value.(string)
	if !ok {
		return defaultValue, nil
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return defaultValue, nil
	}
	return text, nil
}

// GetLowStockThreshold 获取低库存阈值
func (s *SettingService) GetLowStockThreshold(defaultValue int) (int, error) {
	if s == nil {
		return defaultValue, nil
	}
	value, err := s.Get(constants.SettingKeyLowStockThreshold)
	if err != nil {
		return defaultValue, err
	}
	threshold, err := parseSettingInt(value)
	if err != nil {
		return defaultValue, nil
	}
	if threshold < 0 {
		return defaultValue, nil
	}
	return threshold, nil
}

func normalizeSettingValue(key string, value interface{}) (interface{}, error) {
	switch key {
	case constants.SettingKeyLowStockThreshold:
		threshold, err := parseSettingInt(value)
		if err != nil || threshold < 0 {
			return nil, ErrSettingValueInvalid
		}
		return threshold, nil
	case constants.SettingKeyCurrency:
		text, ok := value.(string)
		if !ok {
			return nil, ErrSettingValueInvalid
		}
		text = strings.ToUpper(strings.TrimSpace(text))
		if text == "" {
			return nil, ErrSettingValueInvalid
		}
		return text, nil
	default:
		text, ok := value.(string)
		if !ok {
			return nil, ErrSettingValueInvalid
		}
		return strings.TrimSpace(text), nil
	}
}

func parseSettingInt(value interface{}) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return int(i), nil
		}
		if f, err := v.Float64(); err == nil {
			return int(f), nil
		}
		return 0, fmt.Errorf("invalid json number")
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, fmt.Errorf("empty string")
		}
		parsed, err := strconv.Atoi(trimmed)
		if err != nil {
			return 0, err
		}
		return parsed, nil
	default:
		return 0, fmt.Errorf("unsupported value type")
	}
}
