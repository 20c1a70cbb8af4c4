package render

import (
	"fmt"
	"io"
	"math"

	"github.com/yourusername/fund-report/internal/report"
)

// Plot area of the bar chart page, in millimetres.
const (
	plotLeft   = 25.0
	plotTop    = 32.0
	plotWidth  = pageWidth - plotLeft - 15
	plotHeight = 120.0
	gridLines  = 5
	barGap     = 0.25
)

// ChartRenderer draws a one-page bar chart of a metric across funds.
type ChartRenderer struct {
	fonts RenderingConfig
}

// NewChartRenderer creates a chart renderer using the given fonts.
func NewChartRenderer(fonts RenderingConfig) *ChartRenderer {
	return &ChartRenderer{fonts: fonts}
}

// Chart is the input of a chart render.
type Chart struct {
	Title    string
	Subtitle string
	Footer   string
	Points   []report.ChartPoint
	Policy   report.ColorPolicy
}

// Render writes the chart as PDF to w.
func (r *ChartRenderer) Render(c Chart, w io.Writer) error {
	pw, err := newPDFWriter(r.fonts, c.Title)
	if err != nil {
		return err
	}
	pw.pdf.AddPage()

	pw.font("B", titleSize)
	pw.textColor(colorTitle)
	pw.pdf.CellFormat(0, 9, pw.tr(c.Title), "", 1, "C", false, 0, "")
	if c.Subtitle != "" {
		pw.font("", subtitleSize)
		pw.textColor(colorMuted)
		pw.pdf.CellFormat(0, 5, pw.tr(c.Subtitle), "", 1, "C", false, 0, "")
	}

	if len(c.Points) == 0 {
		pw.font("", sectionSize)
		pw.textColor(colorMuted)
		pw.pdf.SetY(plotTop + plotHeight/2)
		pw.pdf.CellFormat(0, 8, report.NoData, "", 1, "C", false, 0, "")
	} else {
		pw.bars(c.Points, c.Policy)
	}

	if c.Footer != "" {
		pw.pdf.SetY(pageHeight - marginBottom)
		pw.font("", footerSize)
		pw.textColor(colorMuted)
		pw.pdf.CellFormat(0, 4, pw.tr(c.Footer), "", 0, "C", false, 0, "")
	}

	if err := pw.pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write chart: %w", err)
	}
	return nil
}

// chartRange returns the value range of the plot. It always includes zero.
func chartRange(points []report.ChartPoint) (lo, hi float64) {
	for _, p := range points {
		lo = math.Min(lo, p.Value)
		hi = math.Max(hi, p.Value)
	}
	if hi-lo == 0 {
		hi = lo + 1
	}
	pad := (hi - lo) * 0.05
	if lo < 0 {
		lo -= pad
	}
	if hi > 0 {
		hi += pad
	}
	return lo, hi
}

func (pw *pdfWriter) bars(points []report.ChartPoint, policy report.ColorPolicy) {
	lo, hi := chartRange(points)
	scale := plotHeight / (hi - lo)
	yOf := func(v float64) float64 { return plotTop + (hi-v)*scale }

	pw.font("", bodySize)
	for i := 0; i <= gridLines; i++ {
		v := lo + (hi-lo)*float64(i)/gridLines
		y := yOf(v)
		pw.drawColor(report.DefaultTableStyle.Grid)
		pw.pdf.SetLineWidth(0.1)
		pw.pdf.Line(plotLeft, y, plotLeft+plotWidth, y)
		pw.textColor(colorMuted)
		pw.pdf.SetXY(plotLeft-20, y-2)
		pw.pdf.CellFormat(18, 4, fmt.Sprintf("%.1f%%", v), "", 0, "R", false, 0, "")
	}

	zero := yOf(0)
	pw.drawColor(colorTitle)
	pw.pdf.SetLineWidth(0.3)
	pw.pdf.Line(plotLeft, zero, plotLeft+plotWidth, zero)

	slot := plotWidth / float64(len(points))
	barW := slot * (1 - barGap)
	for i, p := range points {
		x := plotLeft + float64(i)*slot + (slot-barW)/2
		top, bottom := yOf(math.Max(p.Value, 0)), yOf(math.Min(p.Value, 0))
		pw.fillColor(policy.ColorOf(p.Color))
		pw.pdf.Rect(x, top, barW, math.Max(bottom-top, 0.2), "F")

		pw.textColor(colorTitle)
		labelY := top - 4
		if p.Value < 0 {
			labelY = bottom
		}
		pw.pdf.SetXY(x-slot*barGap, labelY)
		pw.pdf.CellFormat(slot, 4, fmt.Sprintf("%.2f%%", p.Value), "", 0, "C", false, 0, "")

		// Category labels run down and to the right from under each bar.
		lx, ly := x+barW/2, plotTop+plotHeight+3
		pw.pdf.TransformBegin()
		pw.pdf.TransformRotate(-45, lx, ly)
		pw.textColor(colorMuted)
		pw.pdf.Text(lx, ly, pw.tr(truncate(p.Label, 24)))
		pw.pdf.TransformEnd()
	}
}

func truncate(s string, n int) string {
	rs := []rune(s)
	if len(rs) <= n {
		return s
	}
	return string(rs[:n-1]) + "…"
}
