package ai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	rtmodel "roundtable/internal/model"
	"roundtable/internal/pkg/roundtable"
)

// EinoProvider 基于 eino ChatModel 的提供者（openai/xai/google/ark）
// 没有原生搜索能力，联网时把 Brave 搜索结果注入提示词，结果同时作为来源
type EinoProvider struct {
	chatModel model.BaseChatModel
	searcher  Searcher
}

// NewEinoProvider 创建 eino 提供者，searcher 可为 nil
func NewEinoProvider(chatModel model.BaseChatModel, searcher Searcher) *EinoProvider {
	return &EinoProvider{
		chatModel: chatModel,
		searcher:  searcher,
	}
}

func (p *EinoProvider) prepare(ctx context.Context, req *Request) ([]*schema.Message, []model.Option, []rtmodel.Source) {
	prompt := req.Prompt
	var sources []rtmodel.Source
	if req.SearchQuery != "" && p.searcher != nil {
		results := p.searcher.Search(ctx, req.SearchQuery)
		prompt = roundtable.InjectSearchResults(prompt, results)
		for _, r := range results {
			sources = append(sources, rtmodel.Source{URL: r.URL, Title: r.Title})
		}
	}

	messages := make([]*schema.Message, 0, 2)
	if req.System != "" {
		messages = append(messages, schema.SystemMessage(req.System))
	}
	messages = append(messages, schema.UserMessage(prompt))

	var opts []model.Option
	if req.MaxTokens > 0 {
		opts = append(opts, model.WithMaxTokens(req.MaxTokens))
	}
	return messages, opts, rtmodel.DedupeSources(sources)
}

// Generate 一次性生成
func (p *EinoProvider) Generate(ctx context.Context, req *Request) (*Result, error) {
	messages, opts, sources := p.prepare(ctx, req)

	resp, err := p.chatModel.Generate(ctx, messages, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to generate text: %w", err)
	}
	if strings.TrimSpace(resp.Content) == "" {
		return nil, ErrEmptyResponse
	}

	return &Result{Content: strings.TrimSpace(resp.Content), Sources: sources}, nil
}

// Stream 流式生成
func (p *EinoProvider) Stream(ctx context.Context, req *Request, onToken TokenFunc) (*Result, error) {
	messages, opts, sources := p.prepare(ctx, req)

	reader, err := p.chatModel.Stream(ctx, messages, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to start stream: %w", err)
	}
	defer reader.Close()

	var b strings.Builder
	for {
		chunk, err := reader.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read stream: %w", err)
		}
		if chunk == nil || chunk.Content == "" {
			continue
		}
		b.WriteString(chunk.Content)
		if onToken != nil {
			onToken(chunk.Content)
		}
	}

	content := strings.TrimSpace(b.String())
	if content == "" {
		return nil, ErrEmptyResponse
	}
	return &Result{Content: content, Sources: sources}, nil
}
