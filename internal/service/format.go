package service

import (
	"fmt"
	"strings"
	"time"
)

// Format is an export output format.
type Format string

const (
	FormatPDF      Format = "pdf"
	FormatXLSX     Format = "xlsx"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatChart    Format = "chart"
)

// Formats lists every supported format.
var Formats = []Format{FormatPDF, FormatXLSX, FormatMarkdown, FormatHTML, FormatChart}

// ParseFormat resolves a format name. "excel" and "md" are accepted aliases.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatPDF, FormatXLSX, FormatMarkdown, FormatHTML, FormatChart:
		return f, nil
	case "excel":
		return FormatXLSX, nil
	case "md":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("unknown export format %q", s)
}

// ContentType is the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	case FormatHTML:
		return "text/html; charset=utf-8"
	}
	return "application/pdf"
}

// Extension is the file extension of the format, without the dot.
func (f Format) Extension() string {
	switch f {
	case FormatXLSX:
		return "xlsx"
	case FormatMarkdown:
		return "md"
	case FormatHTML:
		return "html"
	}
	return "pdf"
}

// Filename returns "<prefix>_YYYYMMDD_HHMMSS.<ext>". Charts get a "_chart"
// suffix on the prefix so they do not collide with the PDF report.
func Filename(prefix string, f Format, t time.Time) string {
	if f == FormatChart {
		prefix += "_chart"
	}
	return fmt.Sprintf("%s_%s.%s", prefix, t.Format("20060102_150405"), f.Extension())
}
