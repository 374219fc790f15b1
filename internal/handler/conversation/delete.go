package conversation

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"roundtable/internal/handler"
)

// Delete 删除对话及其回复
// @Summary  删除对话
// @Tags     对话
// @Param    id   path  string  true  "对话ID"
// @Success  204
// @Failure  404  {object}  ErrorResponse
// @Router   /api/conversations/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	if err := h.conversationService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handler.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
