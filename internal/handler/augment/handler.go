package augment

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"roundtable/internal/handler"
	"roundtable/internal/model"
	pkghttp "roundtable/internal/pkg/http"
	"roundtable/internal/service"
)

// ErrorResponse 错误响应（所有API共用）
type ErrorResponse = pkghttp.ErrorResponse

// Handler 话题增强处理器
type Handler struct {
	augmentService *service.AugmentService
}

// NewHandler 创建话题增强处理器
func NewHandler(augmentService *service.AugmentService) *Handler {
	return &Handler{augmentService: augmentService}
}

// Augment 话题增强
// @Summary      话题增强
// @Description  mode=single（默认）返回一种分类的增强结果，mode=all 返回五种分类并给出推荐
// @Tags         增强
// @Accept       json
// @Produce      json
// @Param        request  body      model.AugmentRequest  true  "增强请求"
// @Success      200      {object}  model.AugmentResponse
// @Failure      400      {object}  ErrorResponse
// @Failure      500      {object}  ErrorResponse
// @Failure      503      {object}  ErrorResponse
// @Router       /api/augment [post]
func (h *Handler) Augment(c *gin.Context) {
	var req model.AugmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BadRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	switch req.Mode {
	case "", service.AugmentModeSingle:
		resp, err := h.augmentService.Augment(ctx, req.RawInput)
		if err != nil {
			handler.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	case service.AugmentModeAll:
		resp, err := h.augmentService.AugmentAll(ctx, req.RawInput)
		if err != nil {
			handler.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	default:
		c.JSON(http.StatusBadRequest, pkghttp.NewErrorResponse(pkghttp.CodeInvalidArgument, "mode must be single or all"))
	}
}
