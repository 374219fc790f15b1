package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"

	"roundtable/internal/model"
	"roundtable/internal/pkg/id"
	"roundtable/internal/pkg/roundtable"
	"roundtable/internal/pkg/storage"
	"roundtable/internal/pkg/tts"
)

const audioContentType = "audio/mpeg"

// Synthesizer 语音合成，由 tts.Client 实现
type Synthesizer interface {
	Synthesize(ctx context.Context, text, voice string) ([]byte, error)
}

// Speech 合成结果
type Speech struct {
	Audio  []byte
	Cached bool
}

// TTSService 语音合成与音频缓存
// 带对话 ID 和轮次的请求按 (conversation, round, model) 缓存，写缓存不阻塞响应
type TTSService struct {
	synth Synthesizer
	store storage.Storage
}

// NewTTSService 创建语音服务，store 为 nil 时不缓存
func NewTTSService(synth Synthesizer, store storage.Storage) *TTSService {
	return &TTSService{synth: synth, store: store}
}

// Speak 朗读文本
func (s *TTSService) Speak(ctx context.Context, req *model.TTSRequest) (*Speech, error) {
	if strings.TrimSpace(req.Text) == "" || req.Model == "" {
		return nil, fmt.Errorf("%w: text and model are required", ErrInvalidArgument)
	}
	if req.ConversationID != "" && !id.IsValid(req.ConversationID) {
		return nil, fmt.Errorf("%w: invalid conversationId", ErrInvalidArgument)
	}
	if req.Round != 0 && req.Round != model.Round1 && req.Round != model.Round2 {
		return nil, fmt.Errorf("%w: round must be 1 or 2", ErrInvalidArgument)
	}

	key := ""
	if s.store != nil && req.ConversationID != "" && req.Round > 0 {
		key = roundtable.AudioCacheKey(req.ConversationID, req.Round, req.Model)
		if audio, ok := s.readCache(ctx, key); ok {
			return &Speech{Audio: audio, Cached: true}, nil
		}
	}

	if s.synth == nil {
		return nil, fmt.Errorf("%w: speech synthesis is not configured", ErrUnavailable)
	}

	text := roundtable.StripMarkdown(req.Text)
	if text == "" {
		return nil, fmt.Errorf("%w: nothing to read after removing markup", ErrInvalidArgument)
	}

	audio, err := s.synthesize(ctx, text, roundtable.VoiceForModel(req.Model))
	if err != nil {
		return nil, err
	}

	if key != "" {
		go s.writeCache(key, audio)
	}
	return &Speech{Audio: audio}, nil
}

// synthesize 超过单次输入上限时分段合成，mp3 帧可直接拼接
func (s *TTSService) synthesize(ctx context.Context, text, voice string) ([]byte, error) {
	chunks := roundtable.ChunkText(text, tts.MaxInputLength)
	var buf bytes.Buffer
	for _, chunk := range chunks {
		audio, err := s.synth.Synthesize(ctx, chunk, voice)
		if err != nil {
			return nil, fmt.Errorf("synthesize speech: %w", err)
		}
		buf.Write(audio)
	}
	return buf.Bytes(), nil
}

func (s *TTSService) readCache(ctx context.Context, key string) ([]byte, bool) {
	rc, err := s.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Debug().Err(err).Str("key", key).Msg("audio cache read failed")
		}
		return nil, false
	}
	defer rc.Close()

	audio, err := io.ReadAll(rc)
	if err != nil || len(audio) == 0 {
		log.Debug().Err(err).Str("key", key).Msg("audio cache entry unreadable")
		return nil, false
	}
	return audio, true
}

func (s *TTSService) writeCache(key string, audio []byte) {
	if err := s.store.Put(context.Background(), key, bytes.NewReader(audio), audioContentType); err != nil {
		log.Debug().Err(err).Str("key", key).Msg("audio cache write failed")
		return
	}
	log.Debug().Str("key", key).Int("bytes", len(audio)).Msg("audio cached")
}
