package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/yourusername/fund-report/internal/report"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: "Segoe UI", "Microsoft YaHei", Arial, sans-serif; margin: 2rem; color: #333; }
h1 { color: {{.Style.HeaderRule}}; }
table { border-collapse: collapse; margin-bottom: 1rem; font-size: 0.85rem; }
th { background: {{.Style.HeaderFill}}; color: {{.Style.HeaderText}}; border-bottom: 2px solid {{.Style.HeaderRule}}; padding: 6px 8px; }
td { border: 1px solid {{.Style.Grid}}; padding: 4px 8px; }
tbody tr:nth-child(even) { background: {{.Style.StripeFill}}; }
blockquote { color: #777; font-size: 0.8rem; border: none; margin: 2rem 0 0; }
</style>
</head>
<body>
{{.Body}}
</body>
</html>
`))

type pageStyle struct {
	HeaderFill, HeaderText, HeaderRule, Grid, StripeFill string
}

type pageData struct {
	Title string
	Style pageStyle
	Body  template.HTML
}

// HTMLRenderer writes documents as a standalone HTML page. The body is the
// Markdown rendering with colored spans converted by goldmark.
type HTMLRenderer struct {
	md goldmark.Markdown
}

// NewHTMLRenderer creates an HTML renderer with GFM tables enabled.
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
	}
}

// Render writes doc to w.
func (r *HTMLRenderer) Render(doc report.Document, w io.Writer) error {
	source := MarkdownRenderer{ColorSpans: true}.String(doc)

	var body bytes.Buffer
	if err := r.md.Convert([]byte(source), &body); err != nil {
		return fmt.Errorf("failed to convert markdown: %w", err)
	}

	style := report.DefaultTableStyle
	data := pageData{
		Title: doc.Title,
		Style: pageStyle{
			HeaderFill: style.HeaderFill.Hex(),
			HeaderText: style.HeaderText.Hex(),
			HeaderRule: style.HeaderRule.Hex(),
			Grid:       style.Grid.Hex(),
			StripeFill: style.StripeFill.Hex(),
		},
		Body: template.HTML(body.String()),
	}
	if err := pageTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("failed to write html: %w", err)
	}
	return nil
}
