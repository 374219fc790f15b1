package conversation

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"roundtable/internal/handler"
	"roundtable/internal/service"
)

// Export 导出对话
// @Summary      导出对话
// @Description  format=markdown（默认）或 text 返回文本，thread 返回 {posts: []}
// @Tags         对话
// @Produce      plain
// @Produce      json
// @Param        id      path      string  true   "对话ID"
// @Param        format  query     string  false  "markdown | text | thread"
// @Success      200     {string}  string
// @Failure      400     {object}  ErrorResponse
// @Failure      404     {object}  ErrorResponse
// @Router       /api/conversations/{id}/export [get]
func (h *Handler) Export(c *gin.Context) {
	export, err := h.conversationService.Export(c.Request.Context(), c.Param("id"), c.Query("format"))
	if err != nil {
		handler.Error(c, err)
		return
	}

	if export.Format == service.ExportThread {
		c.JSON(http.StatusOK, ExportThreadData{Posts: export.Posts})
		return
	}
	c.Data(http.StatusOK, export.ContentType, []byte(export.Body))
}
