package pos

import (
	"time"

	"github.com/petpaw-pos/internal/http/response"
	"github.com/petpaw-pos/internal/service"

	"github.com/gin-gonic/gin"
)

func parseDashboardTime(raw string) (*time.Time, bool) {
	if raw == "" {
		return nil, true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, true
	}
	if t, err := time.ParseInLocation("2006-01-02", raw, time.Local); err == nil {
		return &t, true
	}
	return nil, false
}

func bindDashboardQuery(c *gin.Context) (service.DashboardQueryInput, bool) {
	input := service.DashboardQueryInput{
		Range:        c.Query("range"),
		Timezone:     c.Query("timezone"),
		ForceRefresh: c.Query("force_refresh") == "true",
	}

	from, ok := parseDashboardTime(c.Query("from"))
	if !ok {
		respondError(c, response.CodeBadRequest, "起始时间格式不合法", nil)
		return input, false
	}
	to, ok := parseDashboardTime(c.Query("to"))
	if !ok {
		respondError(c, response.CodeBadRequest, "结束时间格式不合法", nil)
		return input, false
	}
	input.From = from
	input.To = to
	return input, true
}

// GetDashboardOverview 获取仪表盘概览
func (h *Handler) GetDashboardOverview(c *gin.Context) {
	input, ok := bindDashboardQuery(c)
	if !ok {
		return
	}

	overview, err := h.DashboardService.GetOverview(c.Request.Context(), input)
	if err != nil {
		respondWithMappedError(c, err, dashboardErrorRules, response.CodeInternal, "获取仪表盘概览失败")
		return
	}

	response.Success(c, overview)
}

// GetDashboardTrends 获取销售趋势
func (h *Handler) GetDashboardTrends(c *gin.Context) {
	input, ok := bindDashboardQuery(c)
	if !ok {
		return
	}

	trends, err := h.DashboardService.GetTrends(c.Request.Context(), input)
	if err != nil {
		respondWithMappedError(c, err, dashboardErrorRules, response.CodeInternal, "获取销售趋势失败")
		return
	}

	response.Success(c, trends)
}

// GetDashboardRankings 获取商品排行与最近交易
func (h *Handler) GetDashboardRankings(c *gin.Context) {
	input, ok := bindDashboardQuery(c)
	if !ok {
		return
	}

	rankings, err := h.DashboardService.GetRankings(c.Request.Context(), input)
	if err != nil {
		respondWithMappedError(c, err, dashboardErrorRules, response.CodeInternal, "获取排行数据失败")
		return
	}

	response.Success(c, rankings)
}
