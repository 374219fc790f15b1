package auth

import (
	pkghttp "roundtable/internal/pkg/http"
	"roundtable/internal/service"
)

// Handler 访问密码处理器
type Handler struct {
	authService *service.AuthService
	secure      bool // release 模式下 cookie 只走 https
}

// NewHandler 创建认证处理器
func NewHandler(authService *service.AuthService, secure bool) *Handler {
	return &Handler{
		authService: authService,
		secure:      secure,
	}
}

// ErrorResponse 错误响应（所有API共用）
type ErrorResponse = pkghttp.ErrorResponse
