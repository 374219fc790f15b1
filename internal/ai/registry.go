package ai

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"roundtable/internal/ai/component"
	"roundtable/internal/config"
	"roundtable/internal/model"
	"roundtable/internal/pkg/roundtable"
)

// ProviderAnthropic 使用 Anthropic SDK 的供应商名
const ProviderAnthropic = "anthropic"

// Participant 圆桌参与模型
type Participant struct {
	ID       string
	Name     string
	Provider string
	ModelID  string
	Backend  Provider
}

// Info 对外展示的模型信息
func (p *Participant) Info() model.ModelInfo {
	return model.ModelInfo{
		ID:       p.ID,
		Name:     p.Name,
		Provider: p.Provider,
		ModelID:  p.ModelID,
	}
}

// Registry 模型注册表，保持配置顺序
type Registry struct {
	participants []*Participant
	byID         map[string]*Participant
	augmenter    Provider
}

// NewRegistry 直接由参与者构造注册表，augmenter 可为 nil
func NewRegistry(participants []*Participant, augmenter Provider) *Registry {
	r := &Registry{
		participants: participants,
		byID:         make(map[string]*Participant, len(participants)),
		augmenter:    augmenter,
	}
	for _, p := range participants {
		r.byID[p.ID] = p
	}
	return r
}

// NewRegistryFromConfig 按配置创建全部模型。缺少凭证的模型会被跳过并记录警告，
// 服务仍可启动，只是该模型不可用。
func NewRegistryFromConfig(ctx context.Context, cfg *config.Config, searcher Searcher) (*Registry, error) {
	var participants []*Participant
	for _, mc := range cfg.ModelList() {
		backend, err := newBackend(ctx, cfg, mc.Provider, mc.ModelID, mc.MaxTokens, searcher)
		if err != nil {
			log.Warn().Err(err).
				Str("model", mc.ID).
				Str("provider", mc.Provider).
				Msg("model disabled")
			continue
		}
		name := mc.Name
		if name == "" {
			name = mc.ID
		}
		participants = append(participants, &Participant{
			ID:       mc.ID,
			Name:     name,
			Provider: mc.Provider,
			ModelID:  mc.ModelID,
			Backend:  backend,
		})
	}

	var augmenter Provider
	if cfg.Augmenter.Provider != "" {
		var err error
		augmenter, err = newBackend(ctx, cfg, cfg.Augmenter.Provider, cfg.Augmenter.ModelID, cfg.Augmenter.MaxTokens, nil)
		if err != nil {
			augmenter = nil
			log.Warn().Err(err).Msg("augmenter disabled")
		}
	}

	log.Info().
		Int("models", len(participants)).
		Bool("augmenter", augmenter != nil).
		Msg("model registry ready")

	return NewRegistry(participants, augmenter), nil
}

func newBackend(ctx context.Context, cfg *config.Config, provider, modelID string, maxTokens int, searcher Searcher) (Provider, error) {
	pc := cfg.Providers[provider]
	if provider == ProviderAnthropic {
		p, err := NewAnthropicProvider(pc.APIKey, pc.BaseURL, modelID, maxTokens)
		if err != nil {
			return nil, err
		}
		return p, nil
	}

	chatModel, err := component.NewChatModel(ctx, component.ChatModelConfig{
		Provider:  provider,
		APIKey:    pc.APIKey,
		BaseURL:   pc.BaseURL,
		ModelID:   modelID,
		MaxTokens: maxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s chat model: %w", provider, err)
	}
	return NewEinoProvider(chatModel, searcher), nil
}

// Get 按 ID 查找模型
func (r *Registry) Get(id string) (*Participant, bool) {
	p, ok := r.byID[id]
	return p, ok
}

// Infos 模型信息列表
func (r *Registry) Infos() []model.ModelInfo {
	out := make([]model.ModelInfo, 0, len(r.participants))
	for _, p := range r.participants {
		out = append(out, p.Info())
	}
	return out
}

// Names 模型展示名称
func (r *Registry) Names() roundtable.DisplayNames {
	names := make(roundtable.DisplayNames, len(r.participants))
	for _, p := range r.participants {
		names[p.ID] = p.Name
	}
	return names
}

// Augmenter 话题增强模型，未配置时为 nil
func (r *Registry) Augmenter() Provider {
	return r.augmenter
}
