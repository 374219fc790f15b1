package http

import (
	"github.com/gin-gonic/gin"
)

// 错误码：前三位对应 HTTP 状态码
const (
	CodeInvalidRequest  = 40001 // 请求体格式错误
	CodeInvalidArgument = 40002 // 参数校验失败
	CodeUnknownModel    = 40003 // 未注册的模型
	CodeUnauthenticated = 40101 // 未登录或密码错误
	CodeNotFound        = 40401 // 资源不存在
	CodeInternal        = 50001 // 内部错误
	CodeUpstream        = 50002 // 上游模型返回无法解析的内容
	CodeUnavailable     = 50301 // 依赖服务未配置或不可用
)

// ErrorResponse 错误响应（所有API共用）
type ErrorResponse struct {
	Code    int    `json:"code"`             // 错误码（非0表示错误）
	Message string `json:"message"`          // 错误消息
	Detail  string `json:"detail,omitempty"` // 错误详情（可选）
}

// NewErrorResponse 创建错误响应
func NewErrorResponse(code int, message string, detail ...string) *ErrorResponse {
	resp := &ErrorResponse{
		Code:    code,
		Message: message,
	}
	if len(detail) > 0 && detail[0] != "" {
		resp.Detail = detail[0]
	}
	return resp
}

// AbortWithError 写入错误响应并中止后续处理
func AbortWithError(c *gin.Context, status, code int, message string, detail ...string) {
	c.AbortWithStatusJSON(status, NewErrorResponse(code, message, detail...))
}
