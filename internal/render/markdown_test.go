package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/fund-report/internal/report"
)

func TestMarkdownGrouped(t *testing.T) {
	doc := testDocument(report.ModeGrouped, sampleRecords()...)
	out := MarkdownRenderer{}.String(doc)

	assert.True(t, strings.HasPrefix(out, "# Equity Long/Short - Fund Performance\n"))
	assert.Contains(t, out, "## Contents")
	assert.Contains(t, out, "| A | 2 | 2 |")
	assert.Contains(t, out, "| B | 1 | 3 |")
	assert.Contains(t, out, "## A\n")
	assert.Contains(t, out, "**9.00%**")
	assert.Contains(t, out, "---\n")
	assert.Contains(t, out, "\n> ")
	assert.NotContains(t, out, "<span")
}

func TestMarkdownColorSpans(t *testing.T) {
	doc := testDocument(report.ModeFlat, sampleRecords()...)
	out := MarkdownRenderer{ColorSpans: true}.String(doc)

	assert.Contains(t, out, `<span style="color:#008000">9.00%</span>`)
	assert.Contains(t, out, `<span style="color:#ff0000">-1.50%</span>`)
	assert.NotContains(t, out, "## Contents")
}

func TestMarkdownRenderWrites(t *testing.T) {
	doc := testDocument(report.ModeFlat, sampleRecords()...)
	var buf bytes.Buffer
	require.NoError(t, MarkdownRenderer{}.Render(doc, &buf))
	assert.Equal(t, MarkdownRenderer{}.String(doc), buf.String())
}

func TestEscapeCell(t *testing.T) {
	assert.Equal(t, `a\|b`, escapeCell("a|b"))
	assert.Equal(t, "one two", escapeCell("one\ntwo"))
	assert.Equal(t, "&lt;b&gt;", escapeCell("<b>"))
	assert.Equal(t, `x\\\|`, escapeCell(`x\|`))
	assert.Equal(t, `C:\\funds`, escapeCell(`C:\funds`))
}
