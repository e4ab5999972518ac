package worker

import (
	"context"
	"encoding/json"

	"github.com/petpaw-pos/internal/logger"
	"github.com/petpaw-pos/internal/models"
	"github.com/petpaw-pos/internal/provider"
	"github.com/petpaw-pos/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskLowStockScan, c.handleLowStockScan)
	mux.HandleFunc(queue.TaskLowStockAlert, c.handleLowStockAlert)
}

func (c *Consumer) handleLowStockScan(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_low_stock_scan_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.LowStockScanPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_low_stock_scan_unmarshal_failed", "error", err)
		return err
	}
	return c.ScanLowStock(payload.ProductIDs)
}

// ScanLowStock 扫描低库存商品并逐个派发告警
// productIDs 为空表示全量扫描。
func (c *Consumer) ScanLowStock(productIDs []uint) error {
	if c == nil || c.ProductRepo == nil {
		return nil
	}

	threshold := c.lowStockThreshold()

	var (
		products []models.Product
		err      error
	)
	if len(productIDs) == 0 {
		products, err = c.ProductRepo.ListLowStock(threshold)
	} else {
		products, err = c.ProductRepo.ListByIDs(productIDs)
	}
	if err != nil {
		logger.Warnw("worker_low_stock_scan_fetch_failed", "error", err)
		return err
	}

	for i := range products {
		product := &products[i]
		if !product.IsActive || product.StockQuantity > threshold {
			continue
		}
		c.dispatchLowStockAlert(product)
	}
	return nil
}

func (c *Consumer) dispatchLowStockAlert(product *models.Product) {
	payload := queue.LowStockAlertPayload{
		ProductID:     product.ID,
		ProductName:   product.Name,
		ProductSKU:    product.SKU,
		StockQuantity: product.StockQuantity,
	}
	if c.QueueClient != nil && c.QueueClient.Enabled() {
		if err := c.QueueClient.EnqueueLowStockAlert(payload); err != nil {
			logger.Warnw("worker_low_stock_alert_enqueue_failed", "product_id", product.ID, "error", err)
		}
		return
	}
	logLowStockAlert(payload)
}

func (c *Consumer) handleLowStockAlert(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_low_stock_alert_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.LowStockAlertPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_low_stock_alert_unmarshal_failed", "error", err)
		return err
	}
	if payload.ProductID == 0 {
		logger.Debugw("worker_low_stock_alert_skip_invalid_payload", "product_id", payload.ProductID)
		return nil
	}
	logLowStockAlert(payload)
	return nil
}

func (c *Consumer) lowStockThreshold() int {
	fallback := 10
	if c.Config != nil && c.Config.POS.LowStockThreshold > 0 {
		fallback = c.Config.POS.LowStockThreshold
	}
	if c.SettingService == nil {
		return fallback
	}
	threshold, err := c.SettingService.GetLowStockThreshold(fallback)
	if err != nil {
		return fallback
	}
	return threshold
}

func logLowStockAlert(payload queue.LowStockAlertPayload) {
	event := "low_stock_alert"
	if payload.StockQuantity <= 0 {
		event = "out_of_stock_alert"
	}
	logger.Warnw(event,
		"product_id", payload.ProductID,
		"product_name", payload.ProductName,
		"product_sku", payload.ProductSKU,
		"stock_quantity", payload.StockQuantity,
	)
}
