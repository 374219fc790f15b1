package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"roundtable/internal/ai"
	"roundtable/internal/model"
	"roundtable/internal/pkg/roundtable"
)

// 增强模式
const (
	AugmentModeSingle = "single"
	AugmentModeAll    = "all"
)

const (
	singleAugmentMaxTokens = 500
	multiAugmentMaxTokens  = 2000
)

// AugmentService 话题增强：一次模型调用 + 一次解析，不重试
type AugmentService struct {
	provider  ai.Provider
	maxTokens int
}

// NewAugmentService 创建增强服务，provider 为 nil 时调用返回 ErrUnavailable。
// maxTokens 为单一分类增强的回复上限，<=0 时使用 500；
// 五种类型同时增强的上限取 2000 与 4 倍 maxTokens 中较大者。
func NewAugmentService(provider ai.Provider, maxTokens int) *AugmentService {
	if maxTokens <= 0 {
		maxTokens = singleAugmentMaxTokens
	}
	return &AugmentService{provider: provider, maxTokens: maxTokens}
}

func (s *AugmentService) multiMaxTokens() int {
	return max(multiAugmentMaxTokens, 4*s.maxTokens)
}

// Augment 单一分类增强
func (s *AugmentService) Augment(ctx context.Context, rawInput string) (*model.AugmentResponse, error) {
	raw, err := s.prepare(rawInput)
	if err != nil {
		return nil, err
	}

	text, err := s.call(ctx, roundtable.BuildAugmenterPrompt(raw), s.maxTokens)
	if err != nil {
		return nil, err
	}

	result, err := roundtable.ParseAugmenterResponse(text)
	if err != nil {
		log.Warn().Err(err).Str("reply", truncateForLog(text)).Msg("augmenter reply rejected")
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	return &model.AugmentResponse{
		RawInput:        raw,
		TopicType:       string(result.TopicType),
		Framework:       result.Framework,
		AugmentedPrompt: result.AugmentedPrompt,
	}, nil
}

// AugmentAll 五种类型同时增强
func (s *AugmentService) AugmentAll(ctx context.Context, rawInput string) (*model.MultiAugmentResponse, error) {
	raw, err := s.prepare(rawInput)
	if err != nil {
		return nil, err
	}

	text, err := s.call(ctx, roundtable.BuildMultiAugmenterPrompt(raw), s.multiMaxTokens())
	if err != nil {
		return nil, err
	}

	result, err := roundtable.ParseMultiAugmenterResponse(text)
	if err != nil {
		log.Warn().Err(err).Str("reply", truncateForLog(text)).Msg("augmenter reply rejected")
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	augmentations := make(map[string]model.AugmentationEntry, len(result.Augmentations))
	for t, entry := range result.Augmentations {
		augmentations[string(t)] = model.AugmentationEntry{
			Framework:       entry.Framework,
			AugmentedPrompt: entry.AugmentedPrompt,
		}
	}
	return &model.MultiAugmentResponse{
		RawInput:      raw,
		Recommended:   string(result.Recommended),
		Augmentations: augmentations,
	}, nil
}

func (s *AugmentService) prepare(rawInput string) (string, error) {
	raw := strings.TrimSpace(rawInput)
	if raw == "" {
		return "", fmt.Errorf("%w: rawInput is required", ErrInvalidArgument)
	}
	if s.provider == nil {
		return "", fmt.Errorf("%w: augmenter model is not configured", ErrUnavailable)
	}
	return raw, nil
}

func (s *AugmentService) call(ctx context.Context, prompt string, maxTokens int) (string, error) {
	res, err := s.provider.Generate(ctx, &ai.Request{Prompt: prompt, MaxTokens: maxTokens})
	if err != nil {
		return "", fmt.Errorf("augmenter call: %w", err)
	}
	return res.Content, nil
}

func truncateForLog(s string) string {
	const max = 200
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}
