package service

import (
	"context"
	"fmt"
	"strings"

	"roundtable/internal/pkg/roundtable"
)

// 导出格式
const (
	ExportMarkdown = "markdown"
	ExportText     = "text"
	ExportThread   = "thread"
)

// Export 导出结果，thread 格式时 Posts 非空，Body 为以空行分隔的全部帖子
type Export struct {
	Format      string
	ContentType string
	Body        string
	Posts       []string
}

// Export 将对话导出为 markdown、纯文本或帖子串
func (s *ConversationService) Export(ctx context.Context, conversationID, format string) (*Export, error) {
	if format == "" {
		format = ExportMarkdown
	}
	switch format {
	case ExportMarkdown, ExportText, ExportThread:
	default:
		return nil, fmt.Errorf("%w: unsupported export format %q", ErrInvalidArgument, format)
	}

	conv, err := s.Get(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	names := s.registry.Names()

	switch format {
	case ExportText:
		return &Export{Format: format, ContentType: "text/plain; charset=utf-8", Body: roundtable.ExportText(conv, names)}, nil
	case ExportThread:
		posts := roundtable.ExportThread(conv, names)
		return &Export{
			Format:      format,
			ContentType: "application/json; charset=utf-8",
			Body:        strings.Join(posts, "\n\n"),
			Posts:       posts,
		}, nil
	default:
		return &Export{Format: format, ContentType: "text/markdown; charset=utf-8", Body: roundtable.ExportMarkdown(conv, names)}, nil
	}
}
