package roundtable

import (
	"fmt"
	"strings"
)

const essayPreamble = `You are a participant in a published multi-model conversation. Write in flowing, essay-style prose — the kind you'd find in The Economist or The Atlantic. Develop your argument through connected paragraphs, not bullet points or numbered lists. You may occasionally use a brief structured element (a short comparison, a key enumeration) when it genuinely serves clarity, but the default mode is always discursive prose.

Think deeply and carefully — the questions asked can be complex and nuanced. Draw on the most up-to-date knowledge available to you.`

const (
	round1Length = "Aim for roughly 600–800 words."
	round2Length = "Be direct and substantive — avoid generic praise. Aim for roughly 300–500 words."
)

// NoInitialResponse Round 2 中模型缺少 Round 1 回复时的占位文本
const NoInitialResponse = "(no initial response)"

// PeerResponse 其他模型在 Round 1 的回复
type PeerResponse struct {
	Model   string // 模型标识
	Name    string // 展示名称
	Content string
}

// BuildSystemPrompt 论文风格的系统提示词，按轮次追加字数要求
func BuildSystemPrompt(round int) string {
	if round == 2 {
		return essayPreamble + "\n\n" + round2Length
	}
	return essayPreamble + "\n\n" + round1Length
}

// BuildRound1Prompt Round 1 直接使用增强后的提示词
func BuildRound1Prompt(augmentedPrompt string) string {
	return augmentedPrompt
}

// BuildRound2Prompt 构建 Round 2 提示词。self 为当前模型标识，
// round1 中属于 self 的条目作为"自己的回复"，其余按顺序列出。
func BuildRound2Prompt(augmentedPrompt, self string, round1 []PeerResponse) string {
	own := NoInitialResponse
	others := make([]string, 0, len(round1))
	for _, r := range round1 {
		if r.Model == self {
			own = r.Content
			continue
		}
		others = append(others, fmt.Sprintf("### %s\n%s", r.Name, r.Content))
	}

	var b strings.Builder
	b.WriteString("The original topic was:\n\n")
	b.WriteString(augmentedPrompt)
	b.WriteString("\n\nYour initial response was:\n")
	b.WriteString(own)
	b.WriteString("\n\nHere are the other models' initial responses:\n\n")
	b.WriteString(strings.Join(others, "\n\n"))
	b.WriteString("\n\nNow react to what the others said. You may agree, disagree, build on ideas, or offer new perspectives. ")
	b.WriteString("Be direct and substantive — avoid generic praise. Aim for roughly 300-500 words. ")
	b.WriteString("This is Round 2 of a published conversation.")
	return b.String()
}

// InjectSearchResults 将搜索结果附加到提示词之前，供不具备原生搜索能力的模型使用
func InjectSearchResults(prompt string, results []SearchResult) string {
	if len(results) == 0 {
		return prompt
	}
	var b strings.Builder
	b.WriteString("Here are recent web search results that may be relevant:\n\n")
	for i, r := range results {
		fmt.Fprintf(&b, "[%d] %s\n%s\n", i+1, r.Title, r.URL)
		if r.Description != "" {
			b.WriteString(r.Description)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	b.WriteString("Use them where helpful and cite sources naturally in your prose.\n\n---\n\n")
	b.WriteString(prompt)
	return b.String()
}

// SearchResult 网页搜索结果
type SearchResult struct {
	Title       string
	URL         string
	Description string
}
