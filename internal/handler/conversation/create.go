package conversation

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"roundtable/internal/handler"
	"roundtable/internal/model"
)

// Create 创建对话
// @Summary      创建对话
// @Description  topicType 缺省为 open_question，framework 缺省为 multiple_angles；包含未注册模型时返回 400
// @Tags         对话
// @Accept       json
// @Produce      json
// @Param        request  body      model.CreateConversationRequest  true  "创建请求"
// @Success      200      {object}  CreateResponseData
// @Failure      400      {object}  ErrorResponse
// @Failure      500      {object}  ErrorResponse
// @Router       /api/conversation [post]
func (h *Handler) Create(c *gin.Context) {
	var req model.CreateConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BadRequest(c, err)
		return
	}

	conv, err := h.conversationService.Create(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, CreateResponseData{ConversationID: conv.ID})
}
