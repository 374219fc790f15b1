package roundtable

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// DefaultVoice 未配置模型使用的声音
const DefaultVoice = "alloy"

var modelVoices = map[string]string{
	"claude": "coral",
	"gpt4":   "nova",
	"gemini": "sage",
	"grok":   "ash",
}

// VoiceForModel 每个模型固定一种声音，便于听众区分
func VoiceForModel(modelKey string) string {
	if v, ok := modelVoices[modelKey]; ok {
		return v
	}
	return DefaultVoice
}

// AudioCacheKey 音频缓存在存储中的 key：audio/<conversation>/<round>-<model>.mp3
func AudioCacheKey(conversationID string, round int, modelKey string) string {
	return fmt.Sprintf("audio/%s/%d-%s.mp3", SanitizeSegment(conversationID), round, SanitizeSegment(modelKey))
}

// SanitizeSegment 只保留 [A-Za-z0-9-]。输入含其他字符（包括 _）或为空时，
// 非法字符替换为 _ 并追加原值 sha256 的前 8 位十六进制。
// 原样输出的结果不含 _，替换后的结果一定含 _，两类结果不会相同。
func SanitizeSegment(s string) string {
	var b strings.Builder
	replaced := s == ""
	if replaced {
		b.WriteByte('_')
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
			replaced = true
		}
	}
	if !replaced {
		return b.String()
	}
	sum := sha256.Sum256([]byte(s))
	return b.String() + "-" + hex.EncodeToString(sum[:])[:8]
}
