package queue

import (
	"encoding/json"

	"github.com/petpaw-pos/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskLowStockScan 低库存巡检任务（结账后触发）
	TaskLowStockScan = constants.TaskTypeLowStockScan
	// TaskLowStockAlert 低库存告警任务
	TaskLowStockAlert = constants.TaskTypeLowStockAlert
)

// LowStockScanPayload 低库存巡检任务载荷
// ProductIDs 为空时表示全量巡检
type LowStockScanPayload struct {
	ProductIDs []uint `json:"product_ids"`
}

// LowStockAlertPayload 低库存告警任务载荷
type LowStockAlertPayload struct {
	ProductID     uint   `json:"product_id"`
	ProductName   string `json:"product_name"`
	ProductSKU    string `json:"product_sku"`
	StockQuantity int    `json:"stock_quantity"`
}

// NewLowStockScanTask 创建低库存巡检任务
func NewLowStockScanTask(payload LowStockScanPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLowStockScan, body), nil
}

// NewLowStockAlertTask 创建低库存告警任务
func NewLowStockAlertTask(payload LowStockAlertPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLowStockAlert, body), nil
}
