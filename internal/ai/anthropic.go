package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"roundtable/internal/model"
)

const (
	defaultAnthropicMaxTokens = 4096
	webSearchMaxUses          = 5
)

// AnthropicProvider Claude 模型，联网搜索使用服务端 web_search 工具
type AnthropicProvider struct {
	client    anthropic.Client
	modelID   string
	maxTokens int
}

// NewAnthropicProvider 创建 Claude 提供者
func NewAnthropicProvider(apiKey, baseURL, modelID string, maxTokens int) (*AnthropicProvider, error) {
	if apiKey == "" {
		return nil, errors.New("anthropic api key is required")
	}
	if modelID == "" {
		return nil, errors.New("anthropic model id is required")
	}
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if maxTokens <= 0 {
		maxTokens = defaultAnthropicMaxTokens
	}
	return &AnthropicProvider{
		client:    anthropic.NewClient(opts...),
		modelID:   modelID,
		maxTokens: maxTokens,
	}, nil
}

func (p *AnthropicProvider) params(req *Request) anthropic.MessageNewParams {
	maxTokens := p.maxTokens
	if req.MaxTokens > 0 {
		maxTokens = req.MaxTokens
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(p.modelID),
		MaxTokens: int64(maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}
	if req.SearchQuery != "" {
		params.Tools = []anthropic.ToolUnionParam{{
			OfWebSearchTool20250305: &anthropic.WebSearchTool20250305Param{
				MaxUses: anthropic.Int(webSearchMaxUses),
			},
		}}
	}
	return params
}

// Generate 一次性生成
func (p *AnthropicProvider) Generate(ctx context.Context, req *Request) (*Result, error) {
	msg, err := p.client.Messages.New(ctx, p.params(req))
	if err != nil {
		return nil, fmt.Errorf("anthropic messages: %w", err)
	}
	return resultFromMessage(msg)
}

// Stream 流式生成，只把文本增量交给 onToken
func (p *AnthropicProvider) Stream(ctx context.Context, req *Request, onToken TokenFunc) (*Result, error) {
	stream := p.client.Messages.NewStreaming(ctx, p.params(req))
	defer stream.Close()

	var msg anthropic.Message
	for stream.Next() {
		event := stream.Current()
		if err := msg.Accumulate(event); err != nil {
			return nil, fmt.Errorf("accumulate stream event: %w", err)
		}

		switch ev := event.AsAny().(type) {
		case anthropic.ContentBlockDeltaEvent:
			if delta, ok := ev.Delta.AsAny().(anthropic.TextDelta); ok && delta.Text != "" && onToken != nil {
				onToken(delta.Text)
			}
		}
	}
	if err := stream.Err(); err != nil {
		return nil, fmt.Errorf("anthropic stream: %w", err)
	}
	return resultFromMessage(&msg)
}

// resultFromMessage 拼接文本块，并从引用中提取来源
func resultFromMessage(msg *anthropic.Message) (*Result, error) {
	var b strings.Builder
	var sources []model.Source
	for _, block := range msg.Content {
		if block.Type != "text" {
			continue
		}
		b.WriteString(block.Text)
		for _, c := range block.Citations {
			if c.URL == "" {
				continue
			}
			sources = append(sources, model.Source{URL: c.URL, Title: c.Title})
		}
	}
	content := strings.TrimSpace(b.String())
	if content == "" {
		return nil, ErrEmptyResponse
	}
	return &Result{
		Content: content,
		Sources: model.DedupeSources(sources),
	}, nil
}
