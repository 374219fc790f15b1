package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	pkghttp "roundtable/internal/pkg/http"
)

// LoginPath 未登录页面请求的跳转目标
const LoginPath = "/login"

// 无需登录即可访问的路径前缀
var publicPrefixes = []string{LoginPath, "/api/auth", "/health", "/ready", "/swagger", "/favicon.ico"}

// TokenVerifier 校验 cookie 中的访问凭证
type TokenVerifier interface {
	VerifyToken(token string) bool
}

// Auth 访问密码中间件
// API 请求未登录返回 401 JSON，页面请求重定向到登录页
func Auth(verifier TokenVerifier, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if isPublic(path) {
			c.Next()
			return
		}

		token, err := c.Cookie(cookieName)
		if err == nil && verifier.VerifyToken(token) {
			c.Next()
			return
		}

		if strings.HasPrefix(path, "/api/") {
			pkghttp.AbortWithError(c, http.StatusUnauthorized, pkghttp.CodeUnauthenticated, "未授权")
			return
		}
		c.Redirect(http.StatusFound, LoginPath)
		c.Abort()
	}
}

func isPublic(path string) bool {
	for _, p := range publicPrefixes {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}
