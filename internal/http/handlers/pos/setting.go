package pos

import (
	"github.com/petpaw-pos/internal/http/response"

	"github.com/gin-gonic/gin"
)

// UpdateSettingRequest 更新店铺设置请求
type UpdateSettingRequest struct {
	Key   string      `json:"key" binding:"required"`
	Value interface{} `json:"value"`
}

// GetSettings 获取店铺设置
func (h *Handler) GetSettings(c *gin.Context) {
	settings, err := h.SettingService.GetAll()
	if err != nil {
		respondError(c, response.CodeInternal, "获取店铺设置失败", err)
		return
	}

	response.Success(c, settings)
}

// UpdateSetting 更新单项店铺设置
func (h *Handler) UpdateSetting(c *gin.Context) {
	var req UpdateSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不合法", err)
		return
	}

	value, err := h.SettingService.Update(req.Key, req.Value)
	if err != nil {
		respondWithMappedError(c, err, settingErrorRules, response.CodeInternal, "更新店铺设置失败")
		return
	}

	requestLog(c).Infow("setting_updated", "key", req.Key)
	response.Success(c, gin.H{"key": req.Key, "value": value})
}
