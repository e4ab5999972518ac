package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/petpaw-pos/internal/cache"
	"github.com/petpaw-pos/internal/constants"
	"github.com/petpaw-pos/internal/repository"
)

const (
	dashboardCacheTTL        = 45 * time.Second
	dashboardCustomMaxDays   = 90
	dashboardTopProductLimit = 5
	dashboardRecentTrxLimit  = 5
)

// DashboardService 仪表盘服务
// 说明：聚合收银台首页核心经营数据。
type DashboardService struct {
	repo           repository.DashboardRepository
	settingService *SettingService
	defaultLowMax  int
}

// NewDashboardService 创建仪表盘服务
func NewDashboardService(repo repository.DashboardRepository, settingService *SettingService, defaultLowStockThreshold int) *DashboardService {
	if defaultLowStockThreshold <= 0 {
		defaultLowStockThreshold = 10
	}
	return &DashboardService{repo: repo, settingService: settingService, defaultLowMax: defaultLowStockThreshold}
}

// DashboardQueryInput 仪表盘查询输入
type DashboardQueryInput struct {
	Range        string
	From         *time.Time
	To           *time.Time
	Timezone     string
	ForceRefresh bool
}

// DashboardOverviewResponse 仪表盘总览响应
type DashboardOverviewResponse struct {
	Range    string               `json:"range"`
	From     string               `json:"from"`
	To       string               `json:"to"`
	Timezone string               `json:"timezone"`
	Currency string               `json:"currency,omitempty"`
	KPI      DashboardKPI         `json:"kpi"`
	Alerts   []DashboardAlertItem `json:"alerts"`
}

// DashboardKPI 仪表盘核心指标
type DashboardKPI struct {
	TransactionsTotal  int64  `json:"transactions_total"`
	SalesTotal         string `json:"sales_total"`
	ItemsSold          int64  `json:"items_sold"`
	AverageTicket      string `json:"average_ticket"`
	ActiveProducts     int64  `json:"active_products"`
	ActiveCashiers     int64  `json:"active_cashiers"`
	OutOfStockProducts int64  `json:"out_of_stock_products"`
	LowStockProducts   int64  `json:"low_stock_products"`
	StockUnitsTotal    int64  `json:"stock_units_total"`
}

// DashboardAlertItem 仪表盘告警项
type DashboardAlertItem struct {
	Type  string `json:"type"`
	Level string `json:"level"`
	Value int64  `json:"value"`
}

// DashboardTrendResponse 仪表盘趋势响应
type DashboardTrendResponse struct {
	Range    string                `json:"range"`
	From     string                `json:"from"`
	To       string                `json:"to"`
	Timezone string                `json:"timezone"`
	Points   []DashboardTrendPoint `json:"points"`
}

// DashboardTrendPoint 趋势点
type DashboardTrendPoint struct {
	Date              string `json:"date"`
	TransactionsTotal int64  `json:"transactions_total"`
	SalesTotal        string `json:"sales_total"`
}

// DashboardRankingsResponse 仪表盘排行榜响应
type DashboardRankingsResponse struct {
	Range              string                     `json:"range"`
	From               string                     `json:"from"`
	To                 string                     `json:"to"`
	Timezone           string                     `json:"timezone"`
	TopProducts        []DashboardProductRanking  `json:"top_products"`
	RecentTransactions []DashboardRecentTrxSample `json:"recent_transactions"`
}

// DashboardProductRanking 商品排行项
type DashboardProductRanking struct {
	ProductID  uint   `json:"product_id"`
	Name       string `json:"name"`
	Quantity   int64  `json:"quantity"`
	SalesTotal string `json:"sales_total"`
}

// DashboardRecentTrxSample 最近交易摘要
type DashboardRecentTrxSample struct {
	TransactionNo string `json:"transaction_no"`
	CashierName   string `json:"cashier_name"`
	TotalAmount   string `json:"total_amount"`
	ItemCount     int    `json:"item_count"`
	CreatedAt     string `json:"created_at"`
}

type dashboardWindow struct {
	rangeKey string
	startAt  time.Time
	endAt    time.Time
	timezone string
}

// GetOverview 获取仪表盘总览
func (s *DashboardService) GetOverview(ctx context.Context, input DashboardQueryInput) (*DashboardOverviewResponse, error) {
	if s == nil || s.repo == nil {
		return &DashboardOverviewResponse{}, nil
	}

	window, err := resolveDashboardWindow(input, time.Now())
	if err != nil {
		return nil, err
	}

	lowStockThreshold := s.loadLowStockThreshold()

	cacheKey := fmt.Sprintf("dashboard:overview:%s:%d:%d:%s:%d",
		window.rangeKey,
		window.startAt.Unix(),
		window.endAt.Unix(),
		window.timezone,
		lowStockThreshold,
	)
	if !input.ForceRefresh {
		var cached DashboardOverviewResponse
		hit, cacheErr := cache.GetJSON(ctx, cacheKey, &cached)
		if cacheErr == nil && hit {
			return &cached, nil
		}
	}

	overview, err := s.repo.GetOverview(window.startAt, window.endAt)
	if err != nil {
		return nil, err
	}
	stockStats, err := s.repo.GetStockStats(int64(lowStockThreshold))
	if err != nil {
		return nil, err
	}

	averageTicket := 0.0
	if overview.TransactionsTotal > 0 {
		averageTicket = overview.SalesTotal / float64(overview.TransactionsTotal)
	}

	currency := "IDR"
	if s.settingService != nil {
		if value, settingErr := s.settingService.GetString(constants.SettingKeyCurrency, currency); settingErr == nil {
			currency = value
		}
	}

	response := &DashboardOverviewResponse{
		Range:    window.rangeKey,
		From:     window.startAt.Format(time.RFC3339),
		To:       window.endAt.Add(-time.Second).Format(time.RFC3339),
		Timezone: window.timezone,
		Currency: strings.ToUpper(strings.TrimSpace(currency)),
		KPI: DashboardKPI{
			TransactionsTotal:  overview.TransactionsTotal,
			SalesTotal:         formatMoneyValue(overview.SalesTotal),
			ItemsSold:          overview.ItemsSold,
			AverageTicket:      formatMoneyValue(averageTicket),
			ActiveProducts:     overview.ActiveProducts,
			ActiveCashiers:     overview.ActiveCashiers,
			OutOfStockProducts: stockStats.OutOfStockProducts,
			LowStockProducts:   stockStats.LowStockProducts,
			StockUnitsTotal:    stockStats.StockUnitsTotal,
		},
		Alerts: buildDashboardAlerts(stockStats),
	}

	_ = cache.SetJSON(ctx, cacheKey, response, dashboardCacheTTL)
	return response, nil
}

// GetTrends 获取按天销售趋势
func (s *DashboardService) GetTrends(ctx context.Context, input DashboardQueryInput) (*DashboardTrendResponse, error) {
	if s == nil || s.repo == nil {
		return &DashboardTrendResponse{}, nil
	}

	window, err := resolveDashboardWindow(input, time.Now())
	if err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("dashboard:trends:%s:%d:%d:%s", window.rangeKey, window.startAt.Unix(), window.endAt.Unix(), window.timezone)
	if !input.ForceRefresh {
		var cached DashboardTrendResponse
		hit, cacheErr := cache.GetJSON(ctx, cacheKey, &cached)
		if cacheErr == nil && hit {
			return &cached, nil
		}
	}

	rows, err := s.repo.GetSalesTrends(window.startAt, window.endAt)
	if err != nil {
		return nil, err
	}

	rowMap := make(map[string]repository.DashboardSalesTrendRow, len(rows))
	for _, item := range rows {
		rowMap[item.Day] = item
	}

	points := make([]DashboardTrendPoint, 0)
	for cursor := time.Date(window.startAt.Year(), window.startAt.Month(), window.startAt.Day(), 0, 0, 0, 0, window.startAt.Location()); cursor.Before(window.endAt); cursor = cursor.AddDate(0, 0, 1) {
		day := cursor.Format("2006-01-02")
		item := rowMap[day]
		points = append(points, DashboardTrendPoint{
			Date:              day,
			TransactionsTotal: item.TransactionsTotal,
			SalesTotal:        formatMoneyValue(item.SalesTotal),
		})
	}

	response := &DashboardTrendResponse{
		Range:    window.rangeKey,
		From:     window.startAt.Format(time.RFC3339),
		To:       window.endAt.Add(-time.Second).Format(time.RFC3339),
		Timezone: window.timezone,
		Points:   points,
	}

	_ = cache.SetJSON(ctx, cacheKey, response, dashboardCacheTTL)
	return response, nil
}

// GetRankings 获取商品排行与最近交易
func (s *DashboardService) GetRankings(ctx context.Context, input DashboardQueryInput) (*DashboardRankingsResponse, error) {
	if s == nil || s.repo == nil {
		return &DashboardRankingsResponse{}, nil
	}

	window, err := resolveDashboardWindow(input, time.Now())
	if err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("dashboard:rankings:%s:%d:%d:%s", window.rangeKey, window.startAt.Unix(), window.endAt.Unix(), window.timezone)
	if !input.ForceRefresh {
		var cached DashboardRankingsResponse
		hit, cacheErr := cache.GetJSON(ctx, cacheKey, &cached)
		if cacheErr == nil && hit {
			return &cached, nil
		}
	}

	productRows, err := s.repo.GetTopProducts(window.startAt, window.endAt, dashboardTopProductLimit)
	if err != nil {
		return nil, err
	}
	recent, err := s.repo.GetRecentTransactions(dashboardRecentTrxLimit)
	if err != nil {
		return nil, err
	}

	products := make([]DashboardProductRanking, 0, len(productRows))
	for _, item := range productRows {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			name = "-"
		}
		products = append(products, DashboardProductRanking{
			ProductID:  item.ProductID,
			Name:       name,
			Quantity:   item.Quantity,
			SalesTotal: formatMoneyValue(item.SalesTotal),
		})
	}

	samples := make([]DashboardRecentTrxSample, 0, len(recent))
	for _, trx := range recent {
		cashierName := ""
		if trx.Cashier != nil {
			cashierName = trx.Cashier.DisplayName
			if strings.TrimSpace(cashierName) == "" {
				cashierName = trx.Cashier.Username
			}
		}
		samples = append(samples, DashboardRecentTrxSample{
			TransactionNo: trx.TransactionNo,
			CashierName:   cashierName,
			TotalAmount:   trx.TotalAmount.String(),
			ItemCount:     trx.ItemCount,
			CreatedAt:     trx.CreatedAt.Format(time.RFC3339),
		})
	}

	response := &DashboardRankingsResponse{
		Range:              window.rangeKey,
		From:               window.startAt.Format(time.RFC3339),
		To:                 window.endAt.Add(-time.Second).Format(time.RFC3339),
		Timezone:           window.timezone,
		TopProducts:        products,
		RecentTransactions: samples,
	}

	_ = cache.SetJSON(ctx, cacheKey, response, dashboardCacheTTL)
	return response, nil
}

func (s *DashboardService) loadLowStockThreshold() int {
	fallback := s.defaultLowMax
	if s.settingService == nil {
		return fallback
	}
	threshold, err := s.settingService.GetLowStockThreshold(fallback)
	if err != nil {
		return fallback
	}
	return threshold
}

func resolveDashboardWindow(input DashboardQueryInput, now time.Time) (dashboardWindow, error) {
	rangeKey := strings.ToLower(strings.TrimSpace(input.Range))
	if rangeKey == "" {
		rangeKey = constants.DashboardWindow7Days
	}

	timezone := strings.TrimSpace(input.Timezone)
	location := time.Local
	if timezone != "" {
		if parsed, err := time.LoadLocation(timezone); err == nil {
			location = parsed
		} else {
			timezone = ""
		}
	}
	if timezone == "" {
		timezone = location.String()
	}

	localNow := now.In(location)
	todayStart := time.Date(localNow.Year(), localNow.Month(), localNow.Day(), 0, 0, 0, 0, location)
	window := dashboardWindow{rangeKey: rangeKey, timezone: timezone}

	switch rangeKey {
	case constants.DashboardWindowToday:
		window.startAt = todayStart
		window.endAt = todayStart.AddDate(0, 0, 1)
	case constants.DashboardWindow7Days:
		window.startAt = todayStart.AddDate(0, 0, -6)
		window.endAt = todayStart.AddDate(0, 0, 1)
	case constants.DashboardWindow30Days:
		window.startAt = todayStart.AddDate(0, 0, -29)
		window.endAt = todayStart.AddDate(0, 0, 1)
	case constants.DashboardWindowCustom:
		if input.From == nil || input.To == nil {
			return dashboardWindow{}, ErrDashboardRangeInvalid
		}
		startAt := input.From.In(location)
		endAt := input.To.In(location)
		if endAt.Before(startAt) {
			return dashboardWindow{}, ErrDashboardRangeInvalid
		}
		if endAt.Sub(startAt) > time.Hour*24*dashboardCustomMaxDays {
			return dashboardWindow{}, ErrDashboardRangeInvalid
		}
		window.startAt = startAt
		window.endAt = endAt.Add(time.Second)
	default:
		return dashboardWindow{}, ErrDashboardRangeInvalid
	}

	if !window.endAt.After(window.startAt) {
		return dashboardWindow{}, ErrDashboardRangeInvalid
	}
	return window, nil
}

func formatMoneyValue(value float64) string {
	return fmt.Sprintf("%.2f", value)
}

func buildDashboardAlerts(stockStats repository.DashboardStockStatsRow) []DashboardAlertItem {
	alerts := make([]DashboardAlertItem, 0, 2)
	if stockStats.OutOfStockProducts > 0 {
		alerts = append(alerts, DashboardAlertItem{Type: "out_of_stock_products", Level: "error", Value: stockStats.OutOfStockProducts})
	}
	if stockStats.LowStockProducts > 0 {
		alerts = append(alerts, DashboardAlertItem{Type: "low_stock_products", Level: "warning", Value: stockStats.LowStockProducts})
	}
	return alerts
}
