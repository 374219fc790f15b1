package conversation

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"roundtable/internal/handler"
)

// List 最近 20 条对话，按创建时间倒序
// @Summary  对话列表
// @Tags     对话
// @Produce  json
// @Success  200  {array}   model.ConversationSummary
// @Failure  500  {object}  ErrorResponse
// @Router   /api/conversations [get]
func (h *Handler) List(c *gin.Context) {
	list, err := h.conversationService.List(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
