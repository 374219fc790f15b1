package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"roundtable/internal/service"
)

// Logout 清除访问 cookie
// @Summary  退出登录
// @Tags     认证
// @Produce  json
// @Success  200  {object}  map[string]bool
// @Router   /api/auth/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(service.AuthCookieName, "", -1, "/", "", h.secure, true)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
