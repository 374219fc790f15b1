package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"roundtable/internal/ai"
	"roundtable/internal/server"
	"roundtable/internal/service"
)

var (
	exportFormat string
	exportRender bool
	exportWidth  int
)

var exportCmd = &cobra.Command{
	Use:   "export <conversation-id>",
	Short: "Print a stored conversation",
	Long: `Print a stored conversation as markdown, plain text, or a thread of short posts.
With --render, markdown output is rendered for the terminal.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	flags := exportCmd.Flags()
	flags.StringVarP(&exportFormat, "format", "f", service.ExportMarkdown, "export format (markdown/text/thread)")
	flags.BoolVarP(&exportRender, "render", "r", false, "render markdown for the terminal")
	flags.IntVar(&exportWidth, "width", 100, "word wrap width when rendering")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	ctx := context.Background()

	store, err := server.OpenStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close(ctx)

	// 导出只需要展示名称，不创建模型客户端
	var participants []*ai.Participant
	for _, m := range cfg.ModelList() {
		name := m.Name
		if name == "" {
			name = m.ID
		}
		participants = append(participants, &ai.Participant{ID: m.ID, Name: name, Provider: m.Provider, ModelID: m.ModelID})
	}
	svc := service.NewConversationService(store.Repo, ai.NewRegistry(participants, nil))

	export, err := svc.Export(ctx, args[0], exportFormat)
	if err != nil {
		return err
	}

	out := export.Body
	switch {
	case export.Format == service.ExportThread:
		parts := make([]string, len(export.Posts))
		for i, p := range export.Posts {
			parts[i] = fmt.Sprintf("[%d/%d]\n%s", i+1, len(export.Posts), p)
		}
		out = strings.Join(parts, "\n\n") + "\n"
	case exportRender && export.Format == service.ExportMarkdown:
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(exportWidth),
		)
		if err != nil {
			return fmt.Errorf("create renderer: %w", err)
		}
		if out, err = r.Render(out); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
	}

	_, err = fmt.Fprint(os.Stdout, out)
	return err
}
