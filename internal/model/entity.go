package model

import (
	"time"
)

// Round 圆桌轮次
const (
	Round1 = 1 // 各模型独立作答
	Round2 = 2 // 各模型阅读其他模型的第一轮回答后回应
)

// Conversation 圆桌对话实体
// 创建后不再修改，只追加 Response
type Conversation struct {
	ID              string      `bson:"id" json:"id"`
	CreatedAt       time.Time   `bson:"created_at" json:"createdAt"`
	RawInput        string      `bson:"raw_input" json:"rawInput"`
	AugmentedPrompt string      `bson:"augmented_prompt" json:"augmentedPrompt"`
	TopicType       string      `bson:"topic_type" json:"topicType"`
	Framework       string      `bson:"framework" json:"framework"`
	Models          []string    `bson:"models" json:"models"`
	Responses       []*Response `bson:"-" json:"responses"`
}

// Response 单个模型在某一轮的回答
// 每个 (conversation_id, round, model) 最多一条
type Response struct {
	ID             string   `bson:"id" json:"id"`
	ConversationID string   `bson:"conversation_id" json:"conversationId"`
	Round          int      `bson:"round" json:"round"`
	Model          string   `bson:"model" json:"model"`
	Content        string   `bson:"content" json:"content"`
	Sources        []Source `bson:"sources,omitempty" json:"sources,omitempty"`
}

// Source 联网搜索引用
type Source struct {
	URL   string `bson:"url" json:"url"`
	Title string `bson:"title" json:"title"`
}

// ConversationSummary 对话列表项
type ConversationSummary struct {
	ID        string    `bson:"id" json:"id"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	RawInput  string    `bson:"raw_input" json:"rawInput"`
	TopicType string    `bson:"topic_type" json:"topicType"`
}

// ResponsesForRound 按轮次筛选回答，保持原有顺序
func (c *Conversation) ResponsesForRound(round int) []*Response {
	var out []*Response
	for _, r := range c.Responses {
		if r.Round == round {
			out = append(out, r)
		}
	}
	return out
}

// DedupeSources 按 URL 去重，保留第一次出现的条目
func DedupeSources(sources []Source) []Source {
	if len(sources) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(sources))
	out := make([]Source, 0, len(sources))
	for _, s := range sources {
		if s.URL == "" || seen[s.URL] {
			continue
		}
		seen[s.URL] = true
		out = append(out, s)
	}
	return out
}
