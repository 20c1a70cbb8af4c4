package main

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/yourusername/fund-report/internal/render"
)

var (
	previewPlain bool
	previewWidth int
	previewReq   requestFlags
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Show a report in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, cleanup, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		doc, _, err := a.reports.BuildDocument(cmd.Context(), previewReq.request())
		if err != nil {
			return err
		}
		md := render.MarkdownRenderer{}.String(doc)
		if previewPlain {
			_, err := fmt.Fprint(cmd.OutOrStdout(), md)
			return err
		}

		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(previewWidth),
		)
		if err != nil {
			return fmt.Errorf("failed to create terminal renderer: %w", err)
		}
		out, err := r.Render(md)
		if err != nil {
			return fmt.Errorf("failed to render markdown: %w", err)
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), out)
		return err
	},
}

func init() {
	previewCmd.Flags().BoolVar(&previewPlain, "plain", false, "Print raw Markdown")
	previewCmd.Flags().IntVar(&previewWidth, "width", 160, "Word wrap width")
	previewReq.bind(previewCmd)
}
