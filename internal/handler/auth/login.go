package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"roundtable/internal/handler"
	"roundtable/internal/model"
	pkghttp "roundtable/internal/pkg/http"
	"roundtable/internal/service"
)

// Login 密码登录，成功后写入访问 cookie
// @Summary      登录
// @Description  校验共享访问密码，成功后设置 roundtable-auth cookie（30 天）
// @Tags         认证
// @Accept       json
// @Produce      json
// @Param        request  body      model.LoginRequest  true  "登录请求"
// @Success      200      {object}  map[string]bool
// @Failure      400      {object}  ErrorResponse
// @Failure      401      {object}  ErrorResponse
// @Router       /api/auth [post]
func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BadRequest(c, err)
		return
	}
	if req.Password == "" {
		c.JSON(http.StatusBadRequest, pkghttp.NewErrorResponse(pkghttp.CodeInvalidArgument, "password is required"))
		return
	}

	if !h.authService.VerifyPassword(req.Password) {
		log.Warn().Str("client_ip", c.ClientIP()).Msg("login rejected")
		c.JSON(http.StatusUnauthorized, pkghttp.NewErrorResponse(pkghttp.CodeUnauthenticated, "Invalid password"))
		return
	}

	token, err := h.authService.Token()
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(service.AuthCookieName, token, int(service.AuthCookieMaxAge.Seconds()), "/", "", h.secure, true)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
