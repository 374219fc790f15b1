package conversation

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"roundtable/internal/handler"
	"roundtable/internal/model"
)

// Round 整轮广播，等待全部模型完成后返回
// @Summary  整轮广播
// @Tags     圆桌
// @Accept   json
// @Produce  json
// @Param    request  body      model.RoundRequest  true  "广播请求"
// @Success  200      {object}  model.RoundResponse
// @Failure  400      {object}  ErrorResponse
// @Failure  404      {object}  ErrorResponse
// @Router   /api/conversation/round [post]
func (h *Handler) Round(c *gin.Context) {
	var req model.RoundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BadRequest(c, err)
		return
	}

	resp, err := h.conversationService.BroadcastRound(
		c.Request.Context(),
		req.ConversationID,
		req.Round,
		model.EssayModeOrDefault(req.EssayMode),
	)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
