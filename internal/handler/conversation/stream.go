package conversation

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"roundtable/internal/handler"
	"roundtable/internal/model"
	pkghttp "roundtable/internal/pkg/http"
)

// Stream 以 SSE 推送一轮或多轮的 token、回复和完成事件
// @Summary      流式圆桌
// @Description  事件：round_start, token, response, error, round_complete, done
// @Tags         圆桌
// @Accept       json
// @Produce      text/event-stream
// @Param        request  body    model.StreamRequest  true  "流式请求"
// @Success      200      {string}  string
// @Failure      400      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Router       /api/conversation/stream [post]
func (h *Handler) Stream(c *gin.Context) {
	var req model.StreamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BadRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	events, err := h.conversationService.StreamRound(ctx, req.ConversationID, req.Rounds, model.EssayModeOrDefault(req.EssayMode))
	if err != nil {
		handler.Error(c, err)
		return
	}

	pkghttp.SetSSEHeaders(c.Writer)
	c.Status(http.StatusOK)

	c.Stream(func(w io.Writer) bool {
		select {
		case ev, ok := <-events:
			if !ok {
				return false
			}
			if err := pkghttp.WriteSSE(w, ev.Event, ev); err != nil {
				log.Debug().Err(err).Str("conversation_id", req.ConversationID).Msg("sse write failed")
				return false
			}
			return true
		case <-ctx.Done():
			return false
		}
	})
}
