package conversation

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"roundtable/internal/handler"
	"roundtable/internal/model"
)

// Respond 单个模型作答，已有回复时直接返回
// @Summary      单模型作答
// @Description  模型调用失败时仍返回 200，错误信息在 error 字段
// @Tags         圆桌
// @Accept       json
// @Produce      json
// @Param        request  body      model.RespondRequest  true  "作答请求"
// @Success      200      {object}  model.RoundResult
// @Failure      400      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Router       /api/conversation/respond [post]
func (h *Handler) Respond(c *gin.Context) {
	var req model.RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BadRequest(c, err)
		return
	}

	result, err := h.conversationService.Respond(
		c.Request.Context(),
		req.ConversationID,
		req.Model,
		req.Round,
		model.EssayModeOrDefault(req.EssayMode),
	)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
