// Package ai 模型能力层：统一封装 Anthropic SDK 与 eino ChatModel，
// 上层只依赖 Provider 接口。
package ai

import (
	"context"
	"errors"

	"roundtable/internal/model"
	"roundtable/internal/pkg/roundtable"
)

// ErrEmptyResponse 模型返回了空文本
var ErrEmptyResponse = errors.New("empty response from chat model")

// Request 单次生成请求
type Request struct {
	System      string // 系统提示词，为空时不发送
	Prompt      string // 用户提示词
	SearchQuery string // 非空时启用联网搜索
	MaxTokens   int    // 0 表示使用模型默认值
}

// Result 生成结果
type Result struct {
	Content string
	Sources []model.Source
}

// TokenFunc 流式输出回调，每个增量文本调用一次
type TokenFunc func(token string)

// Provider 模型提供者
type Provider interface {
	// Generate 一次性生成完整回复
	Generate(ctx context.Context, req *Request) (*Result, error)

	// Stream 流式生成，增量通过 onToken 回调，返回完整结果
	Stream(ctx context.Context, req *Request, onToken TokenFunc) (*Result, error)
}

// Searcher 网页搜索，失败时返回空结果
type Searcher interface {
	Search(ctx context.Context, query string) []roundtable.SearchResult
}
