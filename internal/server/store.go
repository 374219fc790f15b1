package server

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"roundtable/internal/config"
	"roundtable/internal/pkg/cache"
	"roundtable/internal/pkg/mongodb"
	"roundtable/internal/pkg/sqlite"
	"roundtable/internal/repository"
)

// Store 对话仓库及其底层连接
type Store struct {
	Repo    repository.ConversationRepository
	closers []func(ctx context.Context) error
}

// Close 关闭全部连接
func (s *Store) Close(ctx context.Context) {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](ctx); err != nil {
			log.Error().Err(err).Msg("failed to close store connection")
		}
	}
}

// OpenStore 按 store.driver 打开 sqlite 或 MongoDB；配置了 Redis 时在外层加读缓存，
// Redis 不可用不影响启动
func OpenStore(ctx context.Context, cfg *config.Config) (*Store, error) {
	store := &Store{}

	switch cfg.Store.Driver {
	case "mongo":
		client, err := mongodb.New(ctx, &cfg.Mongo)
		if err != nil {
			return nil, err
		}
		store.closers = append(store.closers, client.Close)
		log.Info().Str("database", cfg.Mongo.Database).Msg("connected to MongoDB")

		if err := mongodb.EnsureIndexes(ctx, client.Database()); err != nil {
			store.Close(ctx)
			return nil, fmt.Errorf("ensure mongo indexes: %w", err)
		}
		store.Repo = repository.NewMongoConversationRepo(client.Database())
	default:
		path := cfg.SQLite.Path
		if path != sqlite.MemoryPath {
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return nil, fmt.Errorf("create sqlite dir: %w", err)
			}
		}
		db, err := sqlite.Open(ctx, path)
		if err != nil {
			return nil, err
		}
		store.closers = append(store.closers, func(context.Context) error { return db.Close() })
		log.Info().Str("path", path).Msg("opened sqlite database")

		store.Repo = repository.NewSQLiteConversationRepo(db)
	}

	if cfg.Redis.Addr != "" {
		rc, err := cache.NewRedisCache(ctx, &cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to Redis, continuing without it")
		} else {
			store.closers = append(store.closers, func(context.Context) error { return rc.Close() })
			store.Repo = repository.NewCachedConversationRepo(store.Repo, rc, cfg.Redis.TTL)
			log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to Redis")
		}
	}

	return store, nil
}
