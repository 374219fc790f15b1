package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"roundtable/internal/ai"
)

// ModelsHandler 模型列表处理器
type ModelsHandler struct {
	registry *ai.Registry
}

// NewModelsHandler 创建模型列表处理器
func NewModelsHandler(registry *ai.Registry) *ModelsHandler {
	return &ModelsHandler{registry: registry}
}

// List 已注册的圆桌模型
// @Summary  模型列表
// @Tags     模型
// @Produce  json
// @Success  200  {array}  model.ModelInfo
// @Router   /api/models [get]
func (h *ModelsHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.registry.Infos())
}
