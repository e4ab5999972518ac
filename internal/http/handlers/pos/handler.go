package pos

import "github.com/petpaw-pos/internal/provider"

// Handler 收银台接口处理器入口
type Handler struct {
	*provider.Container
}

// New 创建收银台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
