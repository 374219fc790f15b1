package conversation

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"roundtable/internal/handler"
	"roundtable/internal/model"
)

// Get 对话详情，包含全部回复
// @Summary  对话详情
// @Tags     对话
// @Produce  json
// @Param    id   path      string  true  "对话ID"
// @Success  200  {object}  model.Conversation
// @Failure  404  {object}  ErrorResponse
// @Router   /api/conversations/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	conv, err := h.conversationService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handler.Error(c, err)
		return
	}
	if conv.Responses == nil {
		conv.Responses = []*model.Response{}
	}
	c.JSON(http.StatusOK, conv)
}
