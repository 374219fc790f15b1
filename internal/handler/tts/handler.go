package tts

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"roundtable/internal/handler"
	"roundtable/internal/model"
	pkghttp "roundtable/internal/pkg/http"
	"roundtable/internal/service"
)

// ErrorResponse 错误响应（所有API共用）
type ErrorResponse = pkghttp.ErrorResponse

// Handler 语音合成处理器
type Handler struct {
	ttsService *service.TTSService
}

// NewHandler 创建语音合成处理器
func NewHandler(ttsService *service.TTSService) *Handler {
	return &Handler{ttsService: ttsService}
}

// Speak 朗读一段回复
// @Summary      语音合成
// @Description  带 conversationId 和 round 时按 (对话, 轮次, 模型) 缓存音频
// @Tags         语音
// @Accept       json
// @Produce      audio/mpeg
// @Param        request  body      model.TTSRequest  true  "合成请求"
// @Success      200      {file}    binary
// @Failure      400      {object}  ErrorResponse
// @Failure      500      {object}  ErrorResponse
// @Failure      503      {object}  ErrorResponse
// @Router       /api/tts [post]
func (h *Handler) Speak(c *gin.Context) {
	var req model.TTSRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BadRequest(c, err)
		return
	}

	speech, err := h.ttsService.Speak(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.Header("X-Audio-Cache", cacheStatus(speech.Cached))
	c.Header("Content-Length", strconv.Itoa(len(speech.Audio)))
	c.Data(http.StatusOK, "audio/mpeg", speech.Audio)
}

func cacheStatus(cached bool) string {
	if cached {
		return "hit"
	}
	return "miss"
}
