package config

import (
	"errors"
	"fmt"
	"time"
)

// Config 应用配置根结构
type Config struct {
	Server    ServerConfig              `mapstructure:"server"`
	Log       LogConfig                 `mapstructure:"log"`
	Auth      AuthConfig                `mapstructure:"auth"`
	Store     StoreConfig               `mapstructure:"store"`
	SQLite    SQLiteConfig              `mapstructure:"sqlite"`
	Mongo     MongoConfig               `mapstructure:"mongo"`
	Redis     RedisConfig               `mapstructure:"redis"`
	Storage   StorageConfig             `mapstructure:"storage"`
	Providers map[string]ProviderConfig `mapstructure:"providers"`
	Models    []ModelConfig             `mapstructure:"models"`
	Augmenter AugmenterConfig           `mapstructure:"augmenter"`
	Search    SearchConfig              `mapstructure:"search"`
	TTS       TTSConfig                 `mapstructure:"tts"`
}

// ServerConfig HTTP 服务器配置
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Mode         string        `mapstructure:"mode"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	// AllowedOrigins 允许跨域访问的来源，为空时只接受同源请求
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LogConfig 日志配置 (Zerolog)
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	FilePath   string `mapstructure:"file_path"`
	TimeFormat string `mapstructure:"time_format"`
}

// AuthConfig 访问控制配置
type AuthConfig struct {
	AccessPassword string `mapstructure:"access_password"` // 共享访问密码，为空时所有请求都会被拒绝
}

// StoreConfig 持久化后端选择
type StoreConfig struct {
	Driver string `mapstructure:"driver"` // sqlite, mongo
}

// SQLiteConfig SQLite 配置
type SQLiteConfig struct {
	Path string `mapstructure:"path"` // 数据库文件路径，":memory:" 表示内存库
}

// MongoConfig MongoDB 配置
type MongoConfig struct {
	URI         string `mapstructure:"uri"`
	Database    string `mapstructure:"database"`
	MaxPoolSize uint64 `mapstructure:"max_pool_size"`
	MinPoolSize uint64 `mapstructure:"min_pool_size"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"` // 对话详情缓存时间
}

// StorageConfig 存储配置（音频缓存落盘位置）
type StorageConfig struct {
	Type  string       `mapstructure:"type"` // local, oss
	Local *LocalConfig `mapstructure:"local,omitempty"`
	OSS   *OSSConfig   `mapstructure:"oss,omitempty"`
}

// LocalConfig 本地文件系统配置
type LocalConfig struct {
	BasePath string `mapstructure:"base_path"` // 数据目录，音频缓存位于 <base_path>/audio
}

// OSSConfig 阿里云OSS配置
type OSSConfig struct {
	Endpoint        string `mapstructure:"endpoint"`
	Bucket          string `mapstructure:"bucket"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	AccessKeySecret string `mapstructure:"access_key_secret"`
}

// ProviderConfig 模型供应商凭证
type ProviderConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

// ModelConfig 圆桌参与模型
type ModelConfig struct {
	ID        string `mapstructure:"id"`         // 模型标识，如 claude
	Name      string `mapstructure:"name"`       // 展示名称，如 Claude
	Provider  string `mapstructure:"provider"`   // anthropic, openai, xai, google, ark
	ModelID   string `mapstructure:"model_id"`   // 供应商侧模型名
	MaxTokens int    `mapstructure:"max_tokens"` // 单次回复上限
}

// AugmenterConfig 话题增强使用的模型
type AugmenterConfig struct {
	Provider  string `mapstructure:"provider"`
	ModelID   string `mapstructure:"model_id"`
	MaxTokens int    `mapstructure:"max_tokens"`
}

// SearchConfig Brave 搜索配置
type SearchConfig struct {
	BraveAPIKey string `mapstructure:"brave_api_key"`
	BaseURL     string `mapstructure:"base_url"`
	Count       int    `mapstructure:"count"`
}

// TTSConfig 语音合成配置
type TTSConfig struct {
	APIKey       string `mapstructure:"api_key"`
	BaseURL      string `mapstructure:"base_url"`
	Model        string `mapstructure:"model"`
	Instructions string `mapstructure:"instructions"`
}

// DefaultModels 默认参与圆桌的四个模型
func DefaultModels() []ModelConfig {
	return []ModelConfig{
		{ID: "claude", Name: "Claude", Provider: "anthropic", ModelID: "claude-sonnet-4-6", MaxTokens: 4096},
		{ID: "gpt4", Name: "GPT-4", Provider: "openai", ModelID: "gpt-4o", MaxTokens: 4096},
		{ID: "gemini", Name: "Gemini", Provider: "google", ModelID: "gemini-2.5-pro", MaxTokens: 4096},
		{ID: "grok", Name: "Grok", Provider: "xai", ModelID: "grok-3", MaxTokens: 4096},
	}
}

// Validate 验证配置有效性
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.New("invalid server port")
	}

	validModes := map[string]bool{"debug": true, "release": true, "test": true}
	if !validModes[c.Server.Mode] {
		return errors.New("invalid server mode, must be debug/release/test")
	}

	switch c.Store.Driver {
	case "", "sqlite", "mongo":
	default:
		return fmt.Errorf("invalid store driver %q, must be sqlite/mongo", c.Store.Driver)
	}

	seen := make(map[string]bool, len(c.Models))
	for _, m := range c.Models {
		if m.ID == "" || m.Provider == "" || m.ModelID == "" {
			return fmt.Errorf("model entry %q requires id, provider and model_id", m.ID)
		}
		if seen[m.ID] {
			return fmt.Errorf("duplicate model id %q", m.ID)
		}
		seen[m.ID] = true
	}

	return nil
}

// ModelList 返回配置的模型列表，未配置时使用默认值
func (c *Config) ModelList() []ModelConfig {
	if len(c.Models) == 0 {
		return DefaultModels()
	}
	return c.Models
}
