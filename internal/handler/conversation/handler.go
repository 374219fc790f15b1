package conversation

import (
	pkghttp "roundtable/internal/pkg/http"
	"roundtable/internal/service"
)

// Handler 对话处理器
type Handler struct {
	conversationService *service.ConversationService
}

// NewHandler 创建对话处理器
func NewHandler(conversationService *service.ConversationService) *Handler {
	return &Handler{conversationService: conversationService}
}

// CreateResponseData 创建对话响应
type CreateResponseData struct {
	ConversationID string `json:"conversationId"`
}

// ExportThreadData thread 导出响应
type ExportThreadData struct {
	Posts []string `json:"posts"`
}

// ErrorResponse 错误响应（所有API共用）
type ErrorResponse = pkghttp.ErrorResponse
