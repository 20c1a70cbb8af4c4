package render

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/fund-report/internal/report"
)

func TestHTMLRenderer(t *testing.T) {
	doc := testDocument(report.ModeGrouped, sampleRecords()...)

	var buf bytes.Buffer
	require.NoError(t, NewHTMLRenderer().Render(doc, &buf))
	out := buf.String()

	assert.Contains(t, out, "<!DOCTYPE html>")
	assert.Contains(t, out, "<title>Equity Long/Short - Fund Performance</title>")
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, `<span style="color:#008000">9.00%</span>`)
	assert.Contains(t, out, "#667eea")
}
