package model

// AugmentResponse 单一类型增强结果
type AugmentResponse struct {
	RawInput        string `json:"rawInput"`
	TopicType       string `json:"topicType"`
	Framework       string `json:"framework"`
	AugmentedPrompt string `json:"augmentedPrompt"`
}

// AugmentationEntry 某一话题类型的增强结果
type AugmentationEntry struct {
	Framework       string `json:"framework"`
	AugmentedPrompt string `json:"augmentedPrompt"`
}

// MultiAugmentResponse 五种话题类型的增强结果
type MultiAugmentResponse struct {
	RawInput      string                       `json:"rawInput"`
	Recommended   string                       `json:"recommended"`
	Augmentations map[string]AugmentationEntry `json:"augmentations"`
}

// RoundResult 单个模型在某一轮的结果，失败时只填 Error
type RoundResult struct {
	Model     string   `json:"model"`
	ModelName string   `json:"modelName"`
	Provider  string   `json:"provider"`
	ModelID   string   `json:"modelId"`
	Round     int      `json:"round"`
	Content   string   `json:"content,omitempty"`
	Sources   []Source `json:"sources"`
	Error     string   `json:"error,omitempty"`
}

// RoundResponse 整轮广播结果
type RoundResponse struct {
	ConversationID string         `json:"conversationId"`
	Round          int            `json:"round"`
	Results        []*RoundResult `json:"results"`
}

// StreamEvent 推送给客户端的事件，Event 为事件名，其余字段序列化为 data
type StreamEvent struct {
	Event          string   `json:"-"`
	Round          int      `json:"round,omitempty"`
	Model          string   `json:"model,omitempty"`
	ModelName      string   `json:"modelName,omitempty"`
	Content        string   `json:"content,omitempty"`
	Sources        []Source `json:"sources,omitempty"`
	ConversationID string   `json:"conversationId,omitempty"`
	Message        string   `json:"message,omitempty"`
}

// 流事件名称
const (
	EventRoundStart    = "round_start"
	EventToken         = "token"
	EventResponse      = "response"
	EventRoundComplete = "round_complete"
	EventDone          = "done"
	EventError         = "error"
)

// ModelInfo 模型注册表条目
type ModelInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Provider string `json:"provider"`
	ModelID  string `json:"modelId"`
}
