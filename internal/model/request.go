package model

// AugmentRequest 话题增强请求
type AugmentRequest struct {
	RawInput string `json:"rawInput"`
	Mode     string `json:"mode,omitempty"` // single（默认）或 all
}

// CreateConversationRequest 创建对话请求
type CreateConversationRequest struct {
	RawInput        string   `json:"rawInput"`
	AugmentedPrompt string   `json:"augmentedPrompt"`
	TopicType       string   `json:"topicType"`
	Framework       string   `json:"framework"`
	Models          []string `json:"models"`
}

// RespondRequest 单个模型作答请求
type RespondRequest struct {
	ConversationID string `json:"conversationId"`
	Model          string `json:"model"`
	Round          int    `json:"round"`
	EssayMode      *bool  `json:"essayMode,omitempty"`
}

// RoundRequest 整轮广播请求
type RoundRequest struct {
	ConversationID string `json:"conversationId"`
	Round          int    `json:"round"`
	EssayMode      *bool  `json:"essayMode,omitempty"`
}

// StreamRequest 流式圆桌请求，rounds 为空时只跑第一轮
type StreamRequest struct {
	ConversationID string `json:"conversationId"`
	Rounds         []int  `json:"rounds,omitempty"`
	EssayMode      *bool  `json:"essayMode,omitempty"`
}

// TTSRequest 语音合成请求
type TTSRequest struct {
	Text           string `json:"text"`
	Model          string `json:"model"`
	ConversationID string `json:"conversationId,omitempty"`
	Round          int    `json:"round,omitempty"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Password string `json:"password"`
}

// EssayModeOrDefault 未显式关闭时默认启用 essay 风格系统提示词
func EssayModeOrDefault(v *bool) bool {
	return v == nil || *v
}
