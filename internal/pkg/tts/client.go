package tts

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"
)

const (
	DefaultModel        = "gpt-4o-mini-tts"
	DefaultInstructions = "Read naturally in a conversational tone."

	// MaxInputLength 单次请求允许的最大输入字符数
	MaxInputLength = 4096
)

// Config TTS 配置
type Config struct {
	APIKey       string // OpenAI API key（必需）
	BaseURL      string // 可选，兼容 OpenAI 协议的服务地址
	Model        string // 默认: gpt-4o-mini-tts
	Instructions string // 朗读风格说明
}

// Client OpenAI 语音合成客户端
type Client struct {
	client       *openai.Client
	model        string
	instructions string
}

// NewClient 创建 TTS 客户端
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("TTS api key is required")
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	instructions := cfg.Instructions
	if instructions == "" {
		instructions = DefaultInstructions
	}

	return &Client{
		client:       openai.NewClientWithConfig(clientCfg),
		model:        model,
		instructions: instructions,
	}, nil
}

// Synthesize 将文本合成为 mp3 音频
func (c *Client) Synthesize(ctx context.Context, text, voice string) ([]byte, error) {
	log.Debug().
		Str("voice", voice).
		Int("chars", len(text)).
		Msg("sending TTS request")

	resp, err := c.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(c.model),
		Input:          text,
		Voice:          openai.SpeechVoice(voice),
		Instructions:   c.instructions,
		ResponseFormat: openai.SpeechResponseFormatMp3,
	})
	if err != nil {
		return nil, fmt.Errorf("create speech: %w", err)
	}
	defer resp.Close()

	audio, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("read speech audio: %w", err)
	}
	return audio, nil
}
