package repository

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"roundtable/internal/model"
	"roundtable/internal/pkg/cache"
)

// Cache 读穿缓存所需的最小接口，由 cache.RedisCache 实现
type Cache interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// CachedConversationRepo 在仓库之上缓存对话详情
// 缓存读写失败只记录日志，不影响主流程
type CachedConversationRepo struct {
	ConversationRepository
	cache Cache
	ttl   time.Duration
}

// NewCachedConversationRepo 包装仓库，ttl 为 0 时使用 cache.DefaultTTL
func NewCachedConversationRepo(inner ConversationRepository, c Cache, ttl time.Duration) *CachedConversationRepo {
	if ttl <= 0 {
		ttl = cache.DefaultTTL
	}
	return &CachedConversationRepo{ConversationRepository: inner, cache: c, ttl: ttl}
}

// GetConversation 先查缓存，未命中时回源并回填
func (r *CachedConversationRepo) GetConversation(ctx context.Context, id string) (*model.Conversation, error) {
	key := cache.ConversationCacheKey(id)

	var cached model.Conversation
	err := r.cache.Get(ctx, key, &cached)
	if err == nil {
		return &cached, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		log.Warn().Err(err).Str("conversation_id", id).Msg("conversation cache read failed")
	}

	conv, err := r.ConversationRepository.GetConversation(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.cache.Set(ctx, key, conv, r.ttl); err != nil {
		log.Warn().Err(err).Str("conversation_id", id).Msg("conversation cache write failed")
		return conv, nil
	}

	// 回源期间发生过写入时，刚回填的快照可能已过期
	var marker int
	if err := r.cache.Get(ctx, cache.ConversationDirtyKey(id), &marker); !errors.Is(err, cache.ErrMiss) {
		r.drop(ctx, id)
	}
	return conv, nil
}

// DeleteConversation 删除后失效缓存
func (r *CachedConversationRepo) DeleteConversation(ctx context.Context, id string) error {
	err := r.ConversationRepository.DeleteConversation(ctx, id)
	r.invalidate(ctx, id)
	return err
}

// CreateResponse 写入后失效缓存
func (r *CachedConversationRepo) CreateResponse(ctx context.Context, resp *model.Response) error {
	err := r.ConversationRepository.CreateResponse(ctx, resp)
	r.invalidate(ctx, resp.ConversationID)
	return err
}

// invalidate 先打脏标记再删除缓存，并发回填会看到标记并放弃结果
func (r *CachedConversationRepo) invalidate(ctx context.Context, id string) {
	if err := r.cache.Set(ctx, cache.ConversationDirtyKey(id), 1, cache.DirtyMarkTTL); err != nil {
		log.Warn().Err(err).Str("conversation_id", id).Msg("conversation cache mark failed")
	}
	r.drop(ctx, id)
}

func (r *CachedConversationRepo) drop(ctx context.Context, id string) {
	if err := r.cache.Delete(ctx, cache.ConversationCacheKey(id)); err != nil {
		log.Warn().Err(err).Str("conversation_id", id).Msg("conversation cache invalidate failed")
	}
}
