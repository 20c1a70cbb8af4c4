package render

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/fund-report/internal/models"
	"github.com/yourusername/fund-report/internal/report"
)

func TestChartRangeIncludesZero(t *testing.T) {
	lo, hi := chartRange([]report.ChartPoint{{Value: 2}, {Value: 8}})
	assert.Equal(t, 0.0, lo)
	assert.Greater(t, hi, 8.0)

	lo, hi = chartRange([]report.ChartPoint{{Value: -4}, {Value: -1}})
	assert.Less(t, lo, -4.0)
	assert.Equal(t, 0.0, hi)

	lo, hi = chartRange([]report.ChartPoint{{Value: 0}})
	assert.Equal(t, 0.0, lo)
	assert.Greater(t, hi, 0.0)
}

func TestChartRenderer(t *testing.T) {
	points := report.ChartSeries(sampleRecords(), models.FieldYTD, report.KindReturn)
	require.Len(t, points, 2)

	var buf bytes.Buffer
	err := NewChartRenderer(CoreFonts()).Render(Chart{
		Title:  "YTD (%)",
		Footer: "Generated 2024-03-15 09:30",
		Points: points,
		Policy: report.GainGreen,
	}, &buf)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestChartRendererNoPoints(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewChartRenderer(CoreFonts()).Render(Chart{Title: "Empty"}, &buf))
	assert.NotZero(t, buf.Len())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
	assert.Equal(t, "基金名…", truncate("基金名称很长", 4))
}
