package roundtable

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"roundtable/internal/model"
)

// MaxPostLength 单条帖子的字符上限（按 rune 计）
const MaxPostLength = 280

var exportRounds = []int{model.Round1, model.Round2}

// ExportMarkdown 导出为 markdown 文档
func ExportMarkdown(conv *model.Conversation, names DisplayNames) string {
	lines := []string{
		"# " + conv.RawInput,
		"",
		"> " + conv.AugmentedPrompt,
		"",
	}
	for _, round := range exportRounds {
		lines = append(lines, fmt.Sprintf("## Round %d", round), "")
		for _, resp := range conv.ResponsesForRound(round) {
			lines = append(lines, "### "+names.Name(resp.Model), "", resp.Content, "")
		}
	}
	return strings.Join(lines, "\n")
}

// ExportText 导出为纯文本
func ExportText(conv *model.Conversation, names DisplayNames) string {
	lines := []string{conv.RawInput, "", conv.AugmentedPrompt, ""}
	for _, round := range exportRounds {
		lines = append(lines, fmt.Sprintf("--- Round %d ---", round), "")
		for _, resp := range conv.ResponsesForRound(round) {
			lines = append(lines, "["+names.Name(resp.Model)+"]", resp.Content, "")
		}
	}
	return strings.Join(lines, "\n")
}

// ExportThread 导出为帖子串，每条不超过 MaxPostLength
func ExportThread(conv *model.Conversation, names DisplayNames) []string {
	posts := []string{truncateAtWord(conv.RawInput+" — AI Roundtable Discussion (thread)", MaxPostLength)}

	for _, resp := range conv.ResponsesForRound(model.Round1) {
		posts = appendPrefixed(posts, names.Name(resp.Model)+":\n", resp.Content)
	}

	posts = append(posts, "Round 2 — Reactions:")

	for _, resp := range conv.ResponsesForRound(model.Round2) {
		posts = appendPrefixed(posts, names.Name(resp.Model)+" reacts:\n", resp.Content)
	}
	return posts
}

func appendPrefixed(posts []string, prefix, content string) []string {
	budget := MaxPostLength - utf8.RuneCountInString(prefix)
	if budget < 1 {
		prefix = truncateRunes(prefix, MaxPostLength/2)
		budget = MaxPostLength - utf8.RuneCountInString(prefix)
	}
	chunks := ChunkText(content, budget)
	if len(chunks) == 0 {
		// 空回复也保留该模型的一帖
		return append(posts, prefix)
	}
	for _, chunk := range chunks {
		posts = append(posts, prefix+chunk)
	}
	return posts
}

// ChunkText 按句子边界切分文本，单句超长时按词切分，
// 只有单个词超过 maxLen 时才会被硬切。
func ChunkText(text string, maxLen int) []string {
	text = strings.TrimSpace(text)
	if text == "" || maxLen <= 0 {
		return nil
	}
	if utf8.RuneCountInString(text) <= maxLen {
		return []string{text}
	}

	var chunks []string
	var current string
	flush := func() {
		if s := strings.TrimSpace(current); s != "" {
			chunks = append(chunks, s)
		}
		current = ""
	}

	for _, sentence := range splitSentences(text) {
		candidate := current + sentence
		if utf8.RuneCountInString(strings.TrimSpace(candidate)) <= maxLen {
			current = candidate
			continue
		}
		flush()
		if utf8.RuneCountInString(strings.TrimSpace(sentence)) <= maxLen {
			current = sentence
			continue
		}
		// 单句超长，按词切分
		for _, word := range strings.Fields(sentence) {
			candidate := word
			if current != "" {
				candidate = current + " " + word
			}
			if utf8.RuneCountInString(candidate) <= maxLen {
				current = candidate
				continue
			}
			flush()
			for utf8.RuneCountInString(word) > maxLen {
				chunks = append(chunks, truncateRunes(word, maxLen))
				word = string([]rune(word)[maxLen:])
			}
			current = word
		}
		current += " "
	}
	flush()
	return chunks
}

// splitSentences 切分句子并保留句末标点和其后的空白，末尾没有标点的部分也作为一句
func splitSentences(text string) []string {
	var sentences []string
	runes := []rune(text)
	start := 0
	for i := 0; i < len(runes); i++ {
		if !isSentenceEnd(runes[i]) {
			continue
		}
		j := i + 1
		for j < len(runes) && isSentenceEnd(runes[j]) {
			j++
		}
		if j < len(runes) && !unicode.IsSpace(runes[j]) {
			// 句内标点，如 3.14 或 e.g.x
			i = j - 1
			continue
		}
		for j < len(runes) && unicode.IsSpace(runes[j]) {
			j++
		}
		sentences = append(sentences, string(runes[start:j]))
		start = j
		i = j - 1
	}
	if start < len(runes) {
		sentences = append(sentences, string(runes[start:]))
	}
	return sentences
}

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// truncateAtWord 在词边界截断，找不到边界时退化为按字符截断
func truncateAtWord(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	cut := n
	for cut > 0 && !unicode.IsSpace(r[cut]) {
		cut--
	}
	if cut == 0 {
		return string(r[:n])
	}
	return strings.TrimRightFunc(string(r[:cut]), unicode.IsSpace)
}
