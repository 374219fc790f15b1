package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "roundtable/docs"
	"roundtable/internal/ai"
	"roundtable/internal/config"
	"roundtable/internal/handler"
	augmentHandler "roundtable/internal/handler/augment"
	authHandler "roundtable/internal/handler/auth"
	conversationHandler "roundtable/internal/handler/conversation"
	ttsHandler "roundtable/internal/handler/tts"
	"roundtable/internal/pkg/search"
	"roundtable/internal/pkg/storage"
	"roundtable/internal/pkg/storagefactory"
	"roundtable/internal/pkg/tts"
	"roundtable/internal/server/middleware"
	"roundtable/internal/service"
)

// Services 路由依赖的服务
type Services struct {
	Auth         *service.AuthService
	Augment      *service.AugmentService
	Conversation *service.ConversationService
	TTS          *service.TTSService
	Registry     *ai.Registry
	Store        handler.Pinger
}

// Server HTTP 服务器
type Server struct {
	cfg    *config.Config
	engine *gin.Engine
	store  *Store
}

// New 创建服务器实例：打开存储、加载模型、组装服务
func New(ctx context.Context, cfg *config.Config) (*Server, error) {
	store, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	brave := search.NewBraveClient(search.Config{
		APIKey:  cfg.Search.BraveAPIKey,
		BaseURL: cfg.Search.BaseURL,
		Count:   cfg.Search.Count,
	})
	var searcher ai.Searcher
	if brave.Enabled() {
		searcher = brave
	} else {
		log.Warn().Msg("Brave API key not configured, web search disabled for non-Anthropic models")
	}

	registry, err := ai.NewRegistryFromConfig(ctx, cfg, searcher)
	if err != nil {
		store.Close(ctx)
		return nil, err
	}

	authSvc := service.NewAuthService(cfg.Auth.AccessPassword)
	if !authSvc.Enabled() {
		log.Warn().Msg("access password not configured, all logins will be rejected")
	}

	svcs := &Services{
		Auth:         authSvc,
		Augment:      service.NewAugmentService(registry.Augmenter(), cfg.Augmenter.MaxTokens),
		Conversation: service.NewConversationService(store.Repo, registry),
		TTS:          newTTSService(ctx, cfg),
		Registry:     registry,
		Store:        store.Repo,
	}

	srv := &Server{
		cfg:    cfg,
		engine: NewEngine(cfg, svcs),
		store:  store,
	}
	return srv, nil
}

func newTTSService(ctx context.Context, cfg *config.Config) *service.TTSService {
	var synth service.Synthesizer
	client, err := tts.NewClient(tts.Config{
		APIKey:       cfg.TTS.APIKey,
		BaseURL:      cfg.TTS.BaseURL,
		Model:        cfg.TTS.Model,
		Instructions: cfg.TTS.Instructions,
	})
	if err != nil {
		log.Warn().Err(err).Msg("text-to-speech disabled")
	} else {
		synth = client
	}

	var audioStore storage.Storage
	st, err := storagefactory.NewStorage(ctx, &cfg.Storage)
	if err != nil {
		log.Warn().Err(err).Msg("audio cache disabled")
	} else {
		audioStore = st
		log.Info().Str("type", st.Type()).Msg("audio cache storage ready")
	}

	return service.NewTTSService(synth, audioStore)
}

// NewEngine 创建 gin 引擎并注册路由
func NewEngine(cfg *config.Config, svcs *Services) *gin.Engine {
	switch cfg.Server.Mode {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// 全局中间件
	engine.Use(middleware.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Logger())
	engine.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	engine.Use(middleware.Auth(svcs.Auth, service.AuthCookieName))

	// 健康检查
	healthHdl := handler.NewHealthHandler(svcs.Store)
	engine.GET("/health", healthHdl.Health)
	engine.GET("/ready", healthHdl.Ready)

	// Swagger 文档
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	authHdl := authHandler.NewHandler(svcs.Auth, cfg.Server.Mode == "release")
	engine.GET(middleware.LoginPath, authHdl.Page)

	api := engine.Group("/api")
	{
		api.POST("/auth", authHdl.Login)
		api.POST("/auth/logout", authHdl.Logout)

		api.GET("/models", handler.NewModelsHandler(svcs.Registry).List)

		augmentHdl := augmentHandler.NewHandler(svcs.Augment)
		api.POST("/augment", augmentHdl.Augment)

		convHdl := conversationHandler.NewHandler(svcs.Conversation)
		api.POST("/conversation", convHdl.Create)
		api.POST("/conversation/respond", convHdl.Respond)
		api.POST("/conversation/round", convHdl.Round)
		api.POST("/conversation/stream", convHdl.Stream)
		api.GET("/conversations", convHdl.List)
		api.GET("/conversations/:id", convHdl.Get)
		api.DELETE("/conversations/:id", convHdl.Delete)
		api.GET("/conversations/:id/export", convHdl.Export)

		ttsHdl := ttsHandler.NewHandler(svcs.TTS)
		api.POST("/tts", ttsHdl.Speak)
	}

	return engine
}

// Run 启动服务器
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:        addr,
		Handler:     s.engine,
		ReadTimeout: s.cfg.Server.ReadTimeout,
		// 流式接口可能持续数分钟，WriteTimeout 为 0 时不限制
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down server...")
		err := srv.Shutdown(context.Background())
		s.store.Close(context.Background())
		return err
	case err := <-errCh:
		s.store.Close(context.Background())
		return err
	}
}

// Engine 获取 Gin 引擎 (用于测试)
func (s *Server) Engine() *gin.Engine {
	return s.engine
}
