package pos

import (
	"github.com/petpaw-pos/internal/http/response"
	"github.com/petpaw-pos/internal/service"

	"github.com/gin-gonic/gin"
)

// GetCategories 获取分类列表
func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.CategoryService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "获取分类列表失败", err)
		return
	}

	response.Success(c, categories)
}

// CategoryRequest 创建/更新分类请求
type CategoryRequest struct {
	Slug      string `json:"slug" binding:"required"`
	Name      string `json:"name" binding:"required"`
	Icon      string `json:"icon"`
	SortOrder int    `json:"sort_order"`
}

func (r CategoryRequest) toServiceInput() service.CreateCategoryInput {
	return service.CreateCategoryInput{
		Slug:      r.Slug,
		Name:      r.Name,
		Icon:      r.Icon,
		SortOrder: r.SortOrder,
	}
}

// CreateCategory 创建分类
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不合法", err)
		return
	}

	category, err := h.CategoryService.Create(req.toServiceInput())
	if err != nil {
		respondWithMappedError(c, err, categoryWriteErrorRules, response.CodeInternal, "保存分类失败")
		return
	}

	requestLog(c).Infow("category_created", "category_id", category.ID, "slug", category.Slug)
	response.Success(c, category)
}

// UpdateCategory 更新分类
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := parsePathID(c, "id")
	if !ok {
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不合法", err)
		return
	}

	category, err := h.CategoryService.Update(id, req.toServiceInput())
	if err != nil {
		respondWithMappedError(c, err, categoryWriteErrorRules, response.CodeInternal, "保存分类失败")
		return
	}

	response.Success(c, category)
}

// DeleteCategory 删除分类
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := parsePathID(c, "id")
	if !ok {
		return
	}

	if err := h.CategoryService.Delete(id); err != nil {
		respondWithMappedError(c, err, categoryWriteErrorRules, response.CodeInternal, "删除分类失败")
		return
	}

	requestLog(c).Infow("category_deleted", "category_id", id)
	response.Success(c, gin.H{"deleted": true})
}
