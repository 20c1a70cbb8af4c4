package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/yourusername/fund-report/internal/report"
)

// MarkdownRenderer writes documents as GitHub-flavored Markdown.
type MarkdownRenderer struct {
	// ColorSpans wraps colored metric cells in inline HTML spans.
	ColorSpans bool
}

// Render writes doc to w.
func (r MarkdownRenderer) Render(doc report.Document, w io.Writer) error {
	if _, err := io.WriteString(w, r.String(doc)); err != nil {
		return fmt.Errorf("failed to write markdown: %w", err)
	}
	return nil
}

// String renders doc to a string.
func (r MarkdownRenderer) String(doc report.Document) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", doc.Title)
	if doc.Subtitle != "" {
		fmt.Fprintf(&b, "_%s_\n\n", doc.Subtitle)
	}

	if doc.TOC != nil {
		fmt.Fprintf(&b, "## %s\n\n", doc.TOC.Title)
		b.WriteString("| Strategy | Funds | Page |\n| :--- | :---: | ---: |\n")
		for _, e := range doc.TOC.Entries {
			fmt.Fprintf(&b, "| %s | %d | %d |\n", escapeCell(e.Group), e.Count, e.Page)
		}
		b.WriteString("\n")
	}

	for _, s := range doc.Sections {
		if s.Title != "" {
			fmt.Fprintf(&b, "## %s\n\n", s.Title)
		}
		r.table(&b, doc.Policy, s.Table)
		if s.Footnote != "" {
			fmt.Fprintf(&b, "_%s_\n\n", s.Footnote)
		}
		if s.PageBreakAfter {
			b.WriteString("---\n\n")
		}
	}

	if doc.Footer.Disclaimer != "" {
		fmt.Fprintf(&b, "> %s\n", doc.Footer.Disclaimer)
	}
	return b.String()
}

func (r MarkdownRenderer) table(b *strings.Builder, policy report.ColorPolicy, t report.Table) {
	if len(t.Header) == 0 {
		return
	}
	cells := make([]string, len(t.Header))
	for i, h := range t.Header {
		cells[i] = escapeCell(h.Text)
	}
	writeRow(b, cells)

	for i, c := range t.Columns {
		cells[i] = alignMarker(c.Align)
	}
	writeRow(b, cells)

	for _, row := range t.Rows {
		for i, c := range row.Cells {
			cells[i] = r.cell(policy, c)
		}
		writeRow(b, cells)
	}
	b.WriteString("\n")
}

func (r MarkdownRenderer) cell(policy report.ColorPolicy, c report.FormattedCell) string {
	text := escapeCell(c.Text)
	if r.ColorSpans && c.Color != report.Neutral {
		text = fmt.Sprintf(`<span style="color:%s">%s</span>`, policy.ColorOf(c.Color).Hex(), text)
	}
	if c.Emphasis && text != "" {
		text = "**" + text + "**"
	}
	return text
}

func writeRow(b *strings.Builder, cells []string) {
	b.WriteString("| ")
	b.WriteString(strings.Join(cells, " | "))
	b.WriteString(" |\n")
}

func alignMarker(a report.Align) string {
	switch a {
	case report.AlignCenter:
		return ":---:"
	case report.AlignRight:
		return "---:"
	}
	return ":---"
}

var cellEscaper = strings.NewReplacer(`\`, `\\`, "|", `\|`, "\r\n", " ", "\n", " ", "<", "&lt;", ">", "&gt;")

func escapeCell(s string) string {
	return cellEscaper.Replace(s)
}
