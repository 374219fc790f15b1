package roundtable

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// AugmenterResult 单一类型增强结果
type AugmenterResult struct {
	TopicType       TopicType
	Framework       string
	AugmentedPrompt string
}

// AugmentationEntry 某一话题类型下的增强结果
type AugmentationEntry struct {
	Framework       string
	AugmentedPrompt string
}

// MultiAugmenterResult 五种话题类型的增强结果
type MultiAugmenterResult struct {
	Recommended   TopicType
	Augmentations map[TopicType]AugmentationEntry
}

// BuildAugmenterPrompt 构建单一分类的增强提示词
func BuildAugmenterPrompt(rawInput string) string {
	var b strings.Builder
	b.WriteString("You are a prompt augmenter. Given a user's raw topic or question, classify it into exactly one topic type and rewrite it using that type's analytical framework.\n\n")
	writeTopicTable(&b)
	b.WriteString("\nAdd at most 1-2 sentences of analytical framing. Add structure and depth, not fluff. Preserve the user's nuance and framing. Don't over-constrain with too many sub-questions.\n\n")
	b.WriteString("Respond with ONLY a JSON object (no markdown, no explanation):\n")
	b.WriteString(`{"topic_type": "one of: prediction, opinion, comparison, trend_analysis, open_question", "framework": "brief framework name", "augmented_prompt": "rewritten prompt"}`)
	b.WriteString("\n\nUser's raw input: \"")
	b.WriteString(rawInput)
	b.WriteString("\"")
	return b.String()
}

// BuildMultiAugmenterPrompt 构建五种类型同时增强的提示词，并要求标记推荐类型
func BuildMultiAugmenterPrompt(rawInput string) string {
	var b strings.Builder
	b.WriteString("You are a prompt augmenter. Given a user's raw topic or question, you must generate an augmented prompt for EACH of the 5 topic types below, using the appropriate analytical framework for each.\n\n")
	writeTopicTable(&b)
	b.WriteString("\nFor each type, rewrite the user's input to fit that analytical framing. Add at most 1-2 sentences of analytical framing per type.\n\n")
	b.WriteString("Principles:\n- Add structure and depth, not fluff\n- Keep each augmented prompt concise\n- Preserve the user's nuance and framing\n- Don't over-constrain with too many sub-questions\n- Some framings may fit the input better than others — do your best for each\n\n")
	b.WriteString("Also pick which topic_type best fits the input as \"recommended\".\n\n")
	b.WriteString("Respond with ONLY a JSON object (no markdown, no explanation):\n{\n")
	b.WriteString(`  "recommended": "one of: prediction, opinion, comparison, trend_analysis, open_question",` + "\n")
	b.WriteString(`  "augmentations": {` + "\n")
	for i, t := range TopicTypes {
		fmt.Fprintf(&b, `    "%s": { "framework": "brief framework name", "augmented_prompt": "rewritten prompt" }`, t)
		if i < len(TopicTypes)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("  }\n}\n\nUser's raw input: \"")
	b.WriteString(rawInput)
	b.WriteString("\"")
	return b.String()
}

func writeTopicTable(b *strings.Builder) {
	b.WriteString("Topic types and their frameworks:\n")
	for _, t := range TopicTypes {
		fmt.Fprintf(b, "- %s → %s\n", t, DefaultFrameworks[t])
	}
}

var fencePattern = regexp.MustCompile("(?s)^```(?:json)?[ \\t]*\\n?(.*?)\\n?```$")

// CleanJSONContent 移除 LLM 返回内容外层的 markdown 代码块标记
func CleanJSONContent(content string) string {
	content = strings.TrimSpace(content)
	if m := fencePattern.FindStringSubmatch(content); len(m) > 1 {
		return strings.TrimSpace(m[1])
	}
	return content
}

type augmentationJSON struct {
	Framework       string `json:"framework"`
	AugmentedPrompt string `json:"augmented_prompt"`
}

type singleAugmenterJSON struct {
	TopicType string `json:"topic_type"`
	augmentationJSON
}

type multiAugmenterJSON struct {
	Recommended   string                      `json:"recommended"`
	Augmentations map[string]augmentationJSON `json:"augmentations"`
}

// ParseAugmenterResponse 解析单一分类结果，JSON 非法或类型未知时返回错误
func ParseAugmenterResponse(text string) (*AugmenterResult, error) {
	var parsed singleAugmenterJSON
	if err := json.Unmarshal([]byte(CleanJSONContent(text)), &parsed); err != nil {
		return nil, fmt.Errorf("invalid augmenter JSON: %w", err)
	}

	topic := TopicType(parsed.TopicType)
	if !topic.IsValid() {
		return nil, fmt.Errorf("unknown topic type %q", parsed.TopicType)
	}
	if strings.TrimSpace(parsed.AugmentedPrompt) == "" {
		return nil, fmt.Errorf("augmented prompt is empty")
	}

	return &AugmenterResult{
		TopicType:       topic,
		Framework:       parsed.Framework,
		AugmentedPrompt: parsed.AugmentedPrompt,
	}, nil
}

// ParseMultiAugmenterResponse 解析五种类型的增强结果，任何一种缺失都视为失败
func ParseMultiAugmenterResponse(text string) (*MultiAugmenterResult, error) {
	var parsed multiAugmenterJSON
	if err := json.Unmarshal([]byte(CleanJSONContent(text)), &parsed); err != nil {
		return nil, fmt.Errorf("invalid augmenter JSON: %w", err)
	}

	recommended := TopicType(parsed.Recommended)
	if !recommended.IsValid() {
		return nil, fmt.Errorf("unknown recommended topic type %q", parsed.Recommended)
	}

	result := &MultiAugmenterResult{
		Recommended:   recommended,
		Augmentations: make(map[TopicType]AugmentationEntry, len(TopicTypes)),
	}
	for _, t := range TopicTypes {
		entry, ok := parsed.Augmentations[string(t)]
		if !ok {
			return nil, fmt.Errorf("missing augmentation for %s", t)
		}
		result.Augmentations[t] = AugmentationEntry{
			Framework:       entry.Framework,
			AugmentedPrompt: entry.AugmentedPrompt,
		}
	}
	return result, nil
}
