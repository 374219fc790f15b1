package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"roundtable/internal/ai"
	"roundtable/internal/model"
	"roundtable/internal/pkg/ctxutil"
	"roundtable/internal/pkg/id"
	"roundtable/internal/pkg/roundtable"
	"roundtable/internal/repository"
)

// streamBuffer 流事件通道缓冲
const streamBuffer = 64

// ConversationService 对话与轮次编排
type ConversationService struct {
	repo     repository.ConversationRepository
	registry *ai.Registry
}

// NewConversationService 创建对话服务
func NewConversationService(repo repository.ConversationRepository, registry *ai.Registry) *ConversationService {
	return &ConversationService{
		repo:     repo,
		registry: registry,
	}
}

// Create 创建对话，模型必须全部已注册
func (s *ConversationService) Create(ctx context.Context, req *model.CreateConversationRequest) (*model.Conversation, error) {
	augmented := strings.TrimSpace(req.AugmentedPrompt)
	if augmented == "" {
		return nil, fmt.Errorf("%w: augmentedPrompt is required", ErrInvalidArgument)
	}
	if len(req.Models) == 0 {
		return nil, fmt.Errorf("%w: models are required", ErrInvalidArgument)
	}

	models := make([]string, 0, len(req.Models))
	seen := make(map[string]bool, len(req.Models))
	for _, m := range req.Models {
		if _, ok := s.registry.Get(m); !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownModel, m)
		}
		if seen[m] {
			continue
		}
		seen[m] = true
		models = append(models, m)
	}

	conv := &model.Conversation{
		ID:              id.New(),
		CreatedAt:       time.Now().UTC(),
		RawInput:        strings.TrimSpace(req.RawInput),
		AugmentedPrompt: augmented,
		TopicType:       req.TopicType,
		Framework:       req.Framework,
		Models:          models,
	}
	if conv.TopicType == "" {
		conv.TopicType = string(roundtable.DefaultTopicType)
	}
	if conv.Framework == "" {
		conv.Framework = roundtable.DefaultFramework
	}

	if err := s.repo.CreateConversation(ctx, conv); err != nil {
		return nil, fmt.Errorf("create conversation: %w", err)
	}

	ctxutil.Logger(ctx).Info().
		Str("conversation_id", conv.ID).
		Str("topic_type", conv.TopicType).
		Strs("models", conv.Models).
		Msg("conversation created")
	return conv, nil
}

// List 最近的对话
func (s *ConversationService) List(ctx context.Context) ([]*model.ConversationSummary, error) {
	return s.repo.ListConversations(ctx, repository.DefaultListLimit)
}

// Get 查询对话详情
func (s *ConversationService) Get(ctx context.Context, conversationID string) (*model.Conversation, error) {
	if strings.TrimSpace(conversationID) == "" {
		return nil, fmt.Errorf("%w: conversationId is required", ErrInvalidArgument)
	}
	if !id.IsValid(conversationID) {
		return nil, fmt.Errorf("%w: conversation %s", ErrNotFound, conversationID)
	}
	conv, err := s.repo.GetConversation(ctx, conversationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: conversation %s", ErrNotFound, conversationID)
		}
		return nil, err
	}
	return conv, nil
}

// Delete 删除对话及其回复
func (s *ConversationService) Delete(ctx context.Context, conversationID string) error {
	if !id.IsValid(conversationID) {
		return fmt.Errorf("%w: conversation %s", ErrNotFound, conversationID)
	}
	if err := s.repo.DeleteConversation(ctx, conversationID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: conversation %s", ErrNotFound, conversationID)
		}
		return err
	}
	log.Info().Str("conversation_id", conversationID).Msg("conversation deleted")
	return nil
}

// Respond 单个模型作答。已有回复时直接返回，不再调用模型；
// 模型调用失败体现在结果的 Error 字段中。
func (s *ConversationService) Respond(ctx context.Context, conversationID, modelKey string, round int, essayMode bool) (*model.RoundResult, error) {
	if err := validateRound(round); err != nil {
		return nil, err
	}
	p, ok := s.registry.Get(modelKey)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownModel, modelKey)
	}
	conv, err := s.Get(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	return s.respond(context.WithoutCancel(ctx), conv, p, round, essayMode, nil), nil
}

// BroadcastRound 并发调用对话中的全部模型，单个模型失败不影响其他模型
func (s *ConversationService) BroadcastRound(ctx context.Context, conversationID string, round int, essayMode bool) (*model.RoundResponse, error) {
	if err := validateRound(round); err != nil {
		return nil, err
	}
	conv, err := s.Get(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	callCtx := context.WithoutCancel(ctx)
	results := make([]*model.RoundResult, len(conv.Models))

	var wg sync.WaitGroup
	for i, modelKey := range conv.Models {
		wg.Add(1)
		go func(i int, modelKey string) {
			defer wg.Done()
			p, ok := s.registry.Get(modelKey)
			if !ok {
				results[i] = unknownModelResult(modelKey, round)
				return
			}
			results[i] = s.respond(callCtx, conv, p, round, essayMode, nil)
		}(i, modelKey)
	}
	wg.Wait()

	return &model.RoundResponse{
		ConversationID: conv.ID,
		Round:          round,
		Results:        results,
	}, nil
}

// StreamRound 以事件流形式执行一轮或多轮。rounds 为空时只跑第一轮，
// 多轮时后一轮在前一轮全部完成后开始。ctx 结束后停止发送事件，
// 已发出的模型调用仍会完成并落库。
func (s *ConversationService) StreamRound(ctx context.Context, conversationID string, rounds []int, essayMode bool) (<-chan model.StreamEvent, error) {
	rounds, err := normalizeRounds(rounds)
	if err != nil {
		return nil, err
	}
	conv, err := s.Get(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	events := make(chan model.StreamEvent, streamBuffer)
	go s.runStream(ctx, conv, rounds, essayMode, events)
	return events, nil
}

func (s *ConversationService) runStream(ctx context.Context, conv *model.Conversation, rounds []int, essayMode bool, events chan<- model.StreamEvent) {
	defer close(events)

	logger := ctxutil.Logger(ctx).With().Str("conversation_id", conv.ID).Logger()
	callCtx := context.WithoutCancel(ctx)

	send := func(ev model.StreamEvent) {
		select {
		case events <- ev:
		case <-ctx.Done():
		}
	}

	for _, round := range rounds {
		send(model.StreamEvent{Event: model.EventRoundStart, Round: round})

		var wg sync.WaitGroup
		for _, modelKey := range conv.Models {
			wg.Add(1)
			go func(modelKey string) {
				defer wg.Done()
				p, ok := s.registry.Get(modelKey)
				if !ok {
					send(model.StreamEvent{Event: model.EventError, Round: round, Model: modelKey, Message: "unknown model"})
					return
				}

				onToken := func(token string) {
					send(model.StreamEvent{Event: model.EventToken, Round: round, Model: p.ID, Content: token})
				}
				res := s.respond(callCtx, conv, p, round, essayMode, onToken)
				if res.Error != "" {
					send(model.StreamEvent{Event: model.EventError, Round: round, Model: p.ID, ModelName: p.Name, Message: res.Error})
					return
				}
				send(model.StreamEvent{
					Event:     model.EventResponse,
					Round:     round,
					Model:     p.ID,
					ModelName: p.Name,
					Content:   res.Content,
					Sources:   res.Sources,
				})
			}(modelKey)
		}
		wg.Wait()

		send(model.StreamEvent{Event: model.EventRoundComplete, Round: round})
		logger.Info().Int("round", round).Msg("round complete")
	}

	send(model.StreamEvent{Event: model.EventDone, ConversationID: conv.ID})
}

// respond 生成并保存单个模型的回复；onToken 非 nil 时使用流式调用
func (s *ConversationService) respond(ctx context.Context, conv *model.Conversation, p *ai.Participant, round int, essayMode bool, onToken ai.TokenFunc) *model.RoundResult {
	result := &model.RoundResult{
		Model:     p.ID,
		ModelName: p.Name,
		Provider:  p.Provider,
		ModelID:   p.ModelID,
		Round:     round,
		Sources:   []model.Source{},
	}
	logger := ctxutil.Logger(ctx).With().
		Str("conversation_id", conv.ID).
		Str("model", p.ID).
		Int("round", round).
		Logger()

	existing, err := s.repo.FindResponse(ctx, conv.ID, round, p.ID)
	if err == nil {
		logger.Debug().Msg("response already exists, skipping provider call")
		if onToken != nil {
			onToken(existing.Content)
		}
		return fillResult(result, existing)
	}
	if !errors.Is(err, repository.ErrNotFound) {
		logger.Error().Err(err).Msg("lookup response failed")
		result.Error = err.Error()
		return result
	}

	req, err := s.buildRequest(ctx, conv, p, round, essayMode)
	if err != nil {
		logger.Error().Err(err).Msg("build request failed")
		result.Error = err.Error()
		return result
	}

	start := time.Now()
	var res *ai.Result
	if onToken != nil {
		res, err = p.Backend.Stream(ctx, req, onToken)
	} else {
		res, err = p.Backend.Generate(ctx, req)
	}
	if err != nil {
		logger.Warn().Err(err).Dur("elapsed", time.Since(start)).Msg("provider call failed")
		result.Error = err.Error()
		return result
	}

	resp := &model.Response{
		ID:             id.New(),
		ConversationID: conv.ID,
		Round:          round,
		Model:          p.ID,
		Content:        res.Content,
		Sources:        model.DedupeSources(res.Sources),
	}
	if err := s.repo.CreateResponse(ctx, resp); err != nil {
		if errors.Is(err, repository.ErrResponseExists) {
			// 并发请求已先写入，以已保存的为准
			if existing, ferr := s.repo.FindResponse(ctx, conv.ID, round, p.ID); ferr == nil {
				return fillResult(result, existing)
			}
		}
		logger.Error().Err(err).Msg("save response failed")
		result.Error = err.Error()
		return result
	}

	logger.Info().
		Dur("elapsed", time.Since(start)).
		Int("sources", len(resp.Sources)).
		Msg("response saved")
	return fillResult(result, resp)
}

// buildRequest 第二轮的同伴回复直接从仓库读取，不经过对话详情缓存
func (s *ConversationService) buildRequest(ctx context.Context, conv *model.Conversation, p *ai.Participant, round int, essayMode bool) (*ai.Request, error) {
	req := &ai.Request{}
	if essayMode {
		req.System = roundtable.BuildSystemPrompt(round)
	}

	if round == model.Round1 {
		req.Prompt = roundtable.BuildRound1Prompt(conv.AugmentedPrompt)
		req.SearchQuery = conv.RawInput
		if req.SearchQuery == "" {
			req.SearchQuery = conv.AugmentedPrompt
		}
		return req, nil
	}

	round1, err := s.repo.ListResponses(ctx, conv.ID, model.Round1)
	if err != nil {
		return nil, fmt.Errorf("list round 1 responses: %w", err)
	}
	names := s.registry.Names()
	peers := make([]roundtable.PeerResponse, 0, len(round1))
	for _, r := range round1 {
		peers = append(peers, roundtable.PeerResponse{
			Model:   r.Model,
			Name:    names.Name(r.Model),
			Content: r.Content,
		})
	}
	req.Prompt = roundtable.BuildRound2Prompt(conv.AugmentedPrompt, p.ID, peers)
	return req, nil
}

func fillResult(result *model.RoundResult, resp *model.Response) *model.RoundResult {
	result.Content = resp.Content
	if len(resp.Sources) > 0 {
		result.Sources = resp.Sources
	}
	return result
}

func unknownModelResult(modelKey string, round int) *model.RoundResult {
	return &model.RoundResult{
		Model:     modelKey,
		ModelName: modelKey,
		Round:     round,
		Sources:   []model.Source{},
		Error:     "unknown model",
	}
}

func validateRound(round int) error {
	if round != model.Round1 && round != model.Round2 {
		return fmt.Errorf("%w: round must be 1 or 2", ErrInvalidArgument)
	}
	return nil
}

func normalizeRounds(rounds []int) ([]int, error) {
	if len(rounds) == 0 {
		return []int{model.Round1}, nil
	}
	seen := make(map[int]bool, len(rounds))
	out := make([]int, 0, len(rounds))
	for _, r := range rounds {
		if err := validateRound(r); err != nil {
			return nil, err
		}
		if !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}
	sort.Ints(out)
	return out, nil
}
