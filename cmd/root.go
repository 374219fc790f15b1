package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"roundtable/internal/config"
	"roundtable/internal/pkg/logger"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "roundtable",
	Short: "Roundtable - multi-model AI discussion service",
	Long: `Roundtable poses one topic to several LLMs, lets each answer independently,
then lets each react to the others' answers, and keeps the whole conversation.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ./configs/config.yaml)")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
}

func initConfig() {
	// .env.local 优先，godotenv 不覆盖已存在的变量
	for _, f := range []string{".env.local", ".env"} {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "Failed to load %s: %v\n", f, err)
		}
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath("./configs")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.roundtable")
	}

	// 环境变量设置
	viper.SetEnvPrefix("ROUNDTABLE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	bindProviderEnv()

	// 设置默认值
	setDefaults()

	// 读取配置文件
	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			fmt.Fprintln(os.Stderr, "No config file found, using defaults and environment variables")
		} else {
			fmt.Fprintf(os.Stderr, "Failed to read config: %v\n", err)
			os.Exit(1)
		}
	}

	// 反序列化到结构体
	cfg = &config.Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to unmarshal config: %v\n", err)
		os.Exit(1)
	}

	// 初始化日志
	if err := logger.Init(&cfg.Log); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init logger: %v\n", err)
		os.Exit(1)
	}

	log.Debug().Str("config_file", viper.ConfigFileUsed()).Msg("configuration loaded")
}

// bindProviderEnv 供应商 SDK 惯用的环境变量名作为备选
func bindProviderEnv() {
	_ = viper.BindEnv("providers.anthropic.api_key", "ROUNDTABLE_PROVIDERS_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY")
	_ = viper.BindEnv("providers.openai.api_key", "ROUNDTABLE_PROVIDERS_OPENAI_API_KEY", "OPENAI_API_KEY")
	_ = viper.BindEnv("providers.google.api_key", "ROUNDTABLE_PROVIDERS_GOOGLE_API_KEY", "GOOGLE_GENERATIVE_AI_API_KEY", "GEMINI_API_KEY")
	_ = viper.BindEnv("providers.xai.api_key", "ROUNDTABLE_PROVIDERS_XAI_API_KEY", "XAI_API_KEY")
	_ = viper.BindEnv("providers.ark.api_key", "ROUNDTABLE_PROVIDERS_ARK_API_KEY", "ARK_API_KEY")
	_ = viper.BindEnv("tts.api_key", "ROUNDTABLE_TTS_API_KEY", "OPENAI_API_KEY")
	_ = viper.BindEnv("search.brave_api_key", "ROUNDTABLE_SEARCH_BRAVE_API_KEY", "BRAVE_API_KEY")
	_ = viper.BindEnv("auth.access_password", "ROUNDTABLE_AUTH_ACCESS_PASSWORD", "ACCESS_PASSWORD")
}

func setDefaults() {
	// Server
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "release")
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "0s")
	viper.SetDefault("server.allowed_origins", []string{})

	// Log
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "console")
	viper.SetDefault("log.output", "stdout")
	viper.SetDefault("log.time_format", "RFC3339")

	// Auth
	viper.SetDefault("auth.access_password", "")

	// Store
	viper.SetDefault("store.driver", "sqlite")
	viper.SetDefault("sqlite.path", "./data/roundtable.db")

	// MongoDB
	viper.SetDefault("mongo.uri", "mongodb://localhost:27017")
	viper.SetDefault("mongo.database", "roundtable")
	viper.SetDefault("mongo.max_pool_size", 100)
	viper.SetDefault("mongo.min_pool_size", 10)

	// Redis（为空时不启用缓存）
	viper.SetDefault("redis.addr", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.ttl", "30m")

	// Storage
	viper.SetDefault("storage.type", "local")
	viper.SetDefault("storage.local.base_path", "./data")
	viper.SetDefault("storage.oss.endpoint", "")
	viper.SetDefault("storage.oss.bucket", "")
	viper.SetDefault("storage.oss.access_key_id", "")
	viper.SetDefault("storage.oss.access_key_secret", "")

	// Providers
	for _, p := range []string{"anthropic", "openai", "google", "xai", "ark"} {
		viper.SetDefault("providers."+p+".api_key", "")
		viper.SetDefault("providers."+p+".base_url", "")
	}

	// Augmenter
	viper.SetDefault("augmenter.provider", "anthropic")
	viper.SetDefault("augmenter.model_id", "claude-haiku-4-5-20251001")
	viper.SetDefault("augmenter.max_tokens", 500)

	// Search
	viper.SetDefault("search.brave_api_key", "")
	viper.SetDefault("search.base_url", "")
	viper.SetDefault("search.count", 5)

	// TTS
	viper.SetDefault("tts.api_key", "")
	viper.SetDefault("tts.base_url", "")
	viper.SetDefault("tts.model", "gpt-4o-mini-tts")
	viper.SetDefault("tts.instructions", "")
}

// GetConfig returns the global configuration
func GetConfig() *config.Config {
	return cfg
}
