package component

import (
	"context"
	"fmt"

	arkext "github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
)

// OpenAI 兼容协议的默认地址
const (
	XAIBaseURL    = "https://api.x.ai/v1"
	GoogleBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"
	ArkBaseURL    = "https://ark.cn-beijing.volces.com/api/v3"
)

// ChatModelConfig 创建 ChatModel 所需参数
type ChatModelConfig struct {
	Provider  string // openai, xai, google, ark
	APIKey    string
	BaseURL   string
	ModelID   string
	MaxTokens int
}

// NewChatModel 创建 ChatModel
// openai/xai/google 走 OpenAI 兼容协议，ark 使用 eino-ext 的 ark 模块
func NewChatModel(ctx context.Context, cfg ChatModelConfig) (model.BaseChatModel, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%s api key is required", cfg.Provider)
	}
	if cfg.ModelID == "" {
		return nil, fmt.Errorf("%s model id is required", cfg.Provider)
	}

	switch cfg.Provider {
	case "openai":
		return newOpenAIChatModel(ctx, cfg, "")
	case "xai":
		return newOpenAIChatModel(ctx, cfg, XAIBaseURL)
	case "google":
		return newOpenAIChatModel(ctx, cfg, GoogleBaseURL)
	case "ark":
		return newArkChatModel(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported AI provider: %s", cfg.Provider)
	}
}

func newOpenAIChatModel(ctx context.Context, cfg ChatModelConfig, defaultBaseURL string) (model.BaseChatModel, error) {
	modelCfg := &openai.ChatModelConfig{
		Model:   cfg.ModelID,
		APIKey:  cfg.APIKey,
		BaseURL: defaultBaseURL,
	}
	if cfg.BaseURL != "" {
		modelCfg.BaseURL = cfg.BaseURL
	}
	if cfg.MaxTokens > 0 {
		maxTokens := cfg.MaxTokens
		modelCfg.MaxTokens = &maxTokens
	}

	return openai.NewChatModel(ctx, modelCfg)
}

func newArkChatModel(ctx context.Context, cfg ChatModelConfig) (model.BaseChatModel, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = ArkBaseURL
	}

	modelCfg := &arkext.ChatModelConfig{
		Model:   cfg.ModelID,
		APIKey:  cfg.APIKey,
		BaseURL: baseURL,
	}
	if cfg.MaxTokens > 0 {
		maxTokens := cfg.MaxTokens
		modelCfg.MaxTokens = &maxTokens
	}

	return arkext.NewChatModel(ctx, modelCfg)
}
