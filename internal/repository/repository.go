package repository

import (
	"context"
	"errors"

	"roundtable/internal/model"
)

var (
	// ErrNotFound 对话或回复不存在
	ErrNotFound = errors.New("repository: not found")
	// ErrResponseExists 同一 (conversation, round, model) 已有回复
	ErrResponseExists = errors.New("repository: response already exists")
)

// DefaultListLimit 对话列表默认条数
const DefaultListLimit = 20

// ConversationRepository 对话仓库接口（供 service 层依赖）
type ConversationRepository interface {
	// CreateConversation 创建对话，CreatedAt 为空时填充当前时间
	CreateConversation(ctx context.Context, conv *model.Conversation) error

	// GetConversation 查询对话及全部回复，回复按轮次、写入顺序排列
	GetConversation(ctx context.Context, id string) (*model.Conversation, error)

	// ListConversations 按创建时间倒序返回最近的对话
	ListConversations(ctx context.Context, limit int) ([]*model.ConversationSummary, error)

	// DeleteConversation 删除对话及其回复
	DeleteConversation(ctx context.Context, id string) error

	// CreateResponse 写入回复，冲突时返回 ErrResponseExists
	CreateResponse(ctx context.Context, resp *model.Response) error

	// FindResponse 查询单条回复
	FindResponse(ctx context.Context, conversationID string, round int, modelKey string) (*model.Response, error)

	// ListResponses 查询某一轮的全部回复
	ListResponses(ctx context.Context, conversationID string, round int) ([]*model.Response, error)

	// Ping 就绪检查
	Ping(ctx context.Context) error
}
