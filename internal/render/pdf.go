package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/yourusername/fund-report/internal/report"
)

// Page geometry in millimetres, landscape A4.
const (
	pageWidth     = 297.0
	pageHeight    = 210.0
	marginSide    = 5.0
	marginTop     = 10.0
	marginBottom  = 10.0
	footerReserve = 8.0
	usableWidth   = pageWidth - 2*marginSide

	titleSize    = 16.0
	subtitleSize = 9.0
	sectionSize  = 12.0
	headerSize   = 8.0
	bodySize     = 7.0
	footerSize   = 7.0

	headerHeight = 8.0
	lineHeight   = 3.6
	cellPadding  = 1.0
	maxCellLines = 3
)

var (
	colorMuted = report.RGB{110, 110, 110}
	colorTitle = report.RGB{0x33, 0x33, 0x33}
)

// PDFRenderer draws documents as paginated landscape tables.
type PDFRenderer struct {
	fonts RenderingConfig
}

// NewPDFRenderer creates a renderer using the given fonts.
func NewPDFRenderer(fonts RenderingConfig) *PDFRenderer {
	return &PDFRenderer{fonts: fonts}
}

// Render writes doc as PDF to w.
func (r *PDFRenderer) Render(doc report.Document, w io.Writer) error {
	pdf, err := r.build(doc)
	if err != nil {
		return err
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}
	return nil
}

func (r *PDFRenderer) build(doc report.Document) (*fpdf.Fpdf, error) {
	pw, err := newPDFWriter(r.fonts, doc.Title)
	if err != nil {
		return nil, err
	}
	pw.policy = doc.Policy
	pw.pdf.SetFooterFunc(func() {
		pw.pdf.SetY(-marginBottom)
		pw.font("", footerSize)
		pw.textColor(colorMuted)
		pw.pdf.CellFormat(0, 4, pw.tr(doc.PageFooter(pw.pdf.PageNo())), "", 0, "C", false, 0, "")
	})

	pw.pdf.AddPage()
	pw.titleBlock(doc)

	if doc.TOC != nil {
		pw.toc(*doc.TOC)
	}

	for i, s := range doc.Sections {
		if doc.Mode == report.ModeGrouped && (i == 0 || doc.Sections[i-1].PageBreakAfter) {
			pw.pdf.AddPage()
		}
		pw.section(s)
	}

	pw.disclaimer(doc.Footer.Disclaimer)

	if err := pw.pdf.Error(); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return pw.pdf, nil
}

// pdfWriter holds the state of one render.
type pdfWriter struct {
	pdf    *fpdf.Fpdf
	family string
	policy report.ColorPolicy
	tr     func(string) string
}

func newPDFWriter(fonts RenderingConfig, title string) (*pdfWriter, error) {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(marginSide, marginTop, marginSide)
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.SetCreator("fund-report", true)

	pw := &pdfWriter{pdf: pdf, family: fonts.Family()}
	if fonts.Unicode() {
		face := fonts.Face()
		pdf.AddUTF8Font(face.Family, "", face.Regular)
		pdf.AddUTF8Font(face.Family, "B", face.Bold)
		if err := pdf.Error(); err != nil {
			return nil, fmt.Errorf("failed to load font %s: %w", face.Regular, err)
		}
		pw.tr = func(s string) string { return s }
	} else {
		pw.tr = pdf.UnicodeTranslatorFromDescriptor("")
	}
	pdf.SetTitle(pw.tr(title), fonts.Unicode())
	return pw, nil
}

func (pw *pdfWriter) font(style string, size float64) {
	pw.pdf.SetFont(pw.family, style, size)
}

func (pw *pdfWriter) textColor(c report.RGB) { pw.pdf.SetTextColor(c[0], c[1], c[2]) }
func (pw *pdfWriter) fillColor(c report.RGB) { pw.pdf.SetFillColor(c[0], c[1], c[2]) }
func (pw *pdfWriter) drawColor(c report.RGB) { pw.pdf.SetDrawColor(c[0], c[1], c[2]) }

func (pw *pdfWriter) titleBlock(doc report.Document) {
	pw.font("B", titleSize)
	pw.textColor(colorTitle)
	pw.pdf.CellFormat(0, 9, pw.tr(doc.Title), "", 1, "C", false, 0, "")
	if doc.Subtitle != "" {
		pw.font("", subtitleSize)
		pw.textColor(colorMuted)
		pw.pdf.CellFormat(0, 5, pw.tr(doc.Subtitle), "", 1, "C", false, 0, "")
	}
	pw.pdf.Ln(4)
}

func (pw *pdfWriter) toc(toc report.TOC) {
	pw.font("B", sectionSize)
	pw.textColor(colorTitle)
	pw.pdf.CellFormat(0, 7, pw.tr(toc.Title), "", 1, "L", false, 0, "")
	pw.pdf.Ln(1)

	style := report.DefaultTableStyle
	const nameW, countW, pageW = 120.0, 25.0, 25.0
	x := marginSide + (usableWidth-nameW-countW-pageW)/2

	pw.drawColor(style.Grid)
	for i, e := range toc.Entries {
		if pw.pdf.GetY()+6 > pageHeight-marginBottom-footerReserve {
			pw.pdf.AddPage()
		}
		fill := style.BodyFill
		if i%2 == 1 {
			fill = style.StripeFill
		}
		pw.fillColor(fill)
		pw.textColor(colorTitle)
		pw.font("", 9)
		pw.pdf.SetX(x)
		pw.pdf.CellFormat(nameW, 6, pw.tr(e.Group), "B", 0, "L", true, 0, "")
		pw.pdf.CellFormat(countW, 6, fmt.Sprintf("%d", e.Count), "B", 0, "C", true, 0, "")
		pw.pdf.CellFormat(pageW, 6, fmt.Sprintf("%d", e.Page), "B", 1, "R", true, 0, "")
	}
}

func (pw *pdfWriter) section(s report.Section) {
	if s.Title != "" {
		pw.font("B", sectionSize)
		pw.textColor(colorTitle)
		pw.pdf.CellFormat(0, 7, pw.tr(s.Title), "", 1, "L", false, 0, "")
		pw.pdf.Ln(1)
	}
	pw.table(s.Table)
	if s.Footnote != "" {
		if pw.pdf.GetY()+6 > pageHeight-marginBottom-footerReserve {
			pw.pdf.AddPage()
		}
		pw.pdf.Ln(1.5)
		pw.font("", bodySize)
		pw.textColor(colorMuted)
		pw.pdf.CellFormat(0, 4, pw.tr(s.Footnote), "", 1, "L", false, 0, "")
	}
}

// columnWidths scales the schema widths down when they exceed the page.
func columnWidths(t report.Table) []float64 {
	widths := make([]float64, len(t.Columns))
	total := t.Width()
	scale := 1.0
	if total > usableWidth {
		scale = usableWidth / total
	}
	for i, c := range t.Columns {
		widths[i] = c.Width * scale
	}
	return widths
}

func sum(xs []float64) float64 {
	var s float64
	for _, x := range xs {
		s += x
	}
	return s
}

func (pw *pdfWriter) table(t report.Table) {
	if len(t.Columns) == 0 {
		return
	}
	widths := columnWidths(t)
	x0 := marginSide + (usableWidth-sum(widths))/2
	bottom := pageHeight - marginBottom - footerReserve

	pw.header(t, widths, x0)
	for _, row := range t.Rows {
		pw.font("", bodySize)
		lines := make([][]string, len(row.Cells))
		n := 1
		for i, cell := range row.Cells {
			lines[i] = clip(pw.wrap(cell.Text, widths[i]))
			if len(lines[i]) > n {
				n = len(lines[i])
			}
		}
		h := float64(n)*lineHeight + 2*cellPadding
		if pw.pdf.GetY()+h > bottom {
			pw.pdf.AddPage()
			pw.header(t, widths, x0)
		}

		y := pw.pdf.GetY()
		x := x0
		for i, cell := range row.Cells {
			fill := t.Style.BodyFill
			if row.Striped {
				fill = t.Style.StripeFill
			}
			style := ""
			if cell.Emphasis {
				fill = t.Style.EmphasisFill
				style = "B"
			}
			pw.cell(x, y, widths[i], h, lines[i], cell.Align, fill, t.Style.Grid, pw.cellColor(cell), style, bodySize)
			x += widths[i]
		}
		pw.pdf.SetXY(x0, y+h)
	}
}

func (pw *pdfWriter) cellColor(cell report.FormattedCell) report.RGB {
	return pw.policy.ColorOf(cell.Color)
}

func (pw *pdfWriter) header(t report.Table, widths []float64, x0 float64) {
	y := pw.pdf.GetY()
	style := ""
	if t.Style.HeaderBold {
		style = "B"
	}
	pw.font(style, headerSize)
	for i, hc := range t.Header {
		pw.cell(x0+sum(widths[:i]), y, widths[i], headerHeight, clip(pw.wrap(hc.Text, widths[i])), hc.Align,
			t.Style.HeaderFill, t.Style.HeaderFill, t.Style.HeaderText, style, headerSize)
	}
	pw.drawColor(t.Style.HeaderRule)
	pw.pdf.SetLineWidth(0.5)
	pw.pdf.Line(x0, y+headerHeight, x0+sum(widths), y+headerHeight)
	pw.pdf.SetLineWidth(0.2)
	pw.pdf.SetXY(x0, y+headerHeight)
}

func (pw *pdfWriter) cell(x, y, w, h float64, lines []string, align report.Align, fill, border, text report.RGB, style string, size float64) {
	pw.fillColor(fill)
	pw.drawColor(border)
	pw.pdf.Rect(x, y, w, h, "FD")

	pw.font(style, size)
	pw.textColor(text)
	top := y + (h-float64(len(lines))*lineHeight)/2
	for i, line := range lines {
		pw.pdf.SetXY(x, top+float64(i)*lineHeight)
		pw.pdf.CellFormat(w, lineHeight, pw.tr(line), "", 0, alignStr(align), false, 0, "")
	}
}

func alignStr(a report.Align) string {
	switch a {
	case report.AlignCenter:
		return "CM"
	case report.AlignRight:
		return "RM"
	}
	return "LM"
}

// wrap breaks text into lines that fit a column of width w with the current
// font, preferring spaces. Text without spaces, such as CJK, breaks anywhere.
func (pw *pdfWriter) wrap(text string, w float64) []string {
	limit := w - 2*cellPadding
	var lines []string
	var line []rune
	for _, r := range text {
		line = append(line, r)
		if len(line) == 1 || pw.pdf.GetStringWidth(pw.tr(string(line))) <= limit {
			continue
		}
		if sp := lastSpace(line); sp > 0 {
			lines = append(lines, strings.TrimRight(string(line[:sp]), " "))
			line = append([]rune(nil), line[sp+1:]...)
		} else {
			lines = append(lines, string(line[:len(line)-1]))
			line = []rune{r}
		}
	}
	return append(lines, string(line))
}

func clip(lines []string) []string {
	if len(lines) > maxCellLines {
		return lines[:maxCellLines]
	}
	return lines
}

func lastSpace(rs []rune) int {
	for i := len(rs) - 1; i >= 0; i-- {
		if rs[i] == ' ' {
			return i
		}
	}
	return -1
}

func (pw *pdfWriter) disclaimer(text string) {
	if text == "" {
		return
	}
	pw.font("", bodySize)
	lines := pw.wrap(text, usableWidth)
	if pw.pdf.GetY()+4+float64(len(lines))*4 > pageHeight-marginBottom-footerReserve {
		pw.pdf.AddPage()
	}
	pw.pdf.Ln(4)
	pw.textColor(colorMuted)
	for _, line := range lines {
		pw.pdf.CellFormat(0, 4, pw.tr(line), "", 1, "C", false, 0, "")
	}
}
