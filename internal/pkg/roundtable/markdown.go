package roundtable

import (
	"regexp"
	"strings"
)

type replacement struct {
	re   *regexp.Regexp
	with string
}

// 顺序敏感：先去掉代码块标记和图片，再处理链接和行内标记
var markdownReplacements = []replacement{
	{regexp.MustCompile("```\\w*\\n?"), ""},
	{regexp.MustCompile(`(?m)^[-*]{3,}$`), ""},
	{regexp.MustCompile(`!\[([^\]]*)\]\([^)]*\)`), "$1"},
	{regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`), "$1"},
	{regexp.MustCompile(`(?m)^#{1,6}\s+`), ""},
	{regexp.MustCompile(`\*\*(.+?)\*\*`), "$1"},
	{regexp.MustCompile(`\*(.+?)\*`), "$1"},
	{regexp.MustCompile(`__(.+?)__`), "$1"},
	{regexp.MustCompile(`_(.+?)_`), "$1"},
	{regexp.MustCompile("`([^`]+)`"), "$1"},
	{regexp.MustCompile(`(?m)^>\s+`), ""},
	{regexp.MustCompile(`(?m)^[-*]\s+`), ""},
	{regexp.MustCompile(`(?m)^\d+\.\s+`), ""},
	{regexp.MustCompile(`\n{3,}`), "\n\n"},
}

// StripMarkdown 去除 markdown 标记，得到适合朗读的纯文本
func StripMarkdown(text string) string {
	for _, r := range markdownReplacements {
		text = r.re.ReplaceAllString(text, r.with)
	}
	return strings.TrimSpace(text)
}
