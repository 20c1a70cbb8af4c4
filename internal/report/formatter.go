// Package report turns fund records into a renderer-agnostic, paginated
// document: value formatting and color tagging, grouping, ordering, table
// layout and document assembly.
package report

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/yourusername/fund-report/internal/models"
)

// NoData is displayed for missing values.
const NoData = "-"

// MetricKind selects how a column's values are interpreted.
type MetricKind int

const (
	KindText MetricKind = iota
	KindReturn
	KindDrawdown
)

func (k MetricKind) String() string {
	switch k {
	case KindReturn:
		return "return"
	case KindDrawdown:
		return "drawdown"
	default:
		return "text"
	}
}

// ParseMetricKind resolves "text", "return" or "drawdown".
func ParseMetricKind(s string) (MetricKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "":
		return KindText, nil
	case "return":
		return KindReturn, nil
	case "drawdown":
		return KindDrawdown, nil
	}
	return KindText, fmt.Errorf("unknown metric kind %q", s)
}

// ColorTag is the semantic color of a formatted value.
type ColorTag int

const (
	Neutral ColorTag = iota
	Positive
	Negative
)

func (c ColorTag) String() string {
	switch c {
	case Positive:
		return "positive"
	case Negative:
		return "negative"
	default:
		return "neutral"
	}
}

// Align is a horizontal cell alignment.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// ParseAlign resolves "left", "center" or "right"; anything else is left.
func ParseAlign(s string) Align {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "center", "centre":
		return AlignCenter
	case "right":
		return AlignRight
	}
	return AlignLeft
}

// FormattedCell is a display-ready value.
type FormattedCell struct {
	Text     string
	Color    ColorTag
	Emphasis bool
	Align    Align
}

type parseOutcome int

const (
	parsedValue parseOutcome = iota
	parsedMissing
	parsedMalformed
)

// parseMetric interprets a raw metric. Surrounding whitespace and a single
// trailing "%" are ignored; blanks, "-" and "nan" carry no data.
func parseMetric(v models.MetricValue) (decimal.Decimal, parseOutcome) {
	if v.IsAbsent() {
		return decimal.Zero, parsedMissing
	}
	s := strings.TrimSpace(v.Raw())
	s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	if s == "" || s == NoData || strings.EqualFold(s, "nan") {
		return decimal.Zero, parsedMissing
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, parsedMalformed
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		d = decimal.NewFromFloat(f)
	}
	if exp := d.Exponent(); exp < -exponentLimit || exp > exponentLimit {
		d = boundExponent(d, f)
	}
	return d, parsedValue
}

// exponentLimit bounds the exponent kept from the raw text. Rescaling a
// decimal costs 10^|exp|, so "1e-50000000" must not reach StringFixed or Cmp.
const exponentLimit = 32

// boundExponent swaps d for the float reading of the same text. Values that
// underflow to zero keep their sign as the smallest representable magnitude.
func boundExponent(d decimal.Decimal, f float64) decimal.Decimal {
	bounded := decimal.NewFromFloat(f)
	if bounded.IsZero() && d.Sign() != 0 {
		return decimal.New(int64(d.Sign()), -exponentLimit)
	}
	return bounded
}

// Format renders a raw value for the given kind. It never fails: values that
// cannot be read as numbers are shown verbatim in the neutral color.
func Format(raw models.MetricValue, kind MetricKind) FormattedCell {
	if kind == KindText {
		return FormattedCell{Text: raw.Raw(), Color: Neutral}
	}

	d, outcome := parseMetric(raw)
	switch outcome {
	case parsedMissing:
		return FormattedCell{Text: NoData, Color: Neutral, Align: AlignCenter}
	case parsedMalformed:
		return FormattedCell{Text: raw.Raw(), Color: Neutral, Align: AlignCenter}
	}

	return FormattedCell{
		Text:  d.StringFixed(2) + "%",
		Color: tagFor(d, kind),
		Align: AlignCenter,
	}
}

// tagFor works on the unrounded value. A drawdown at or below zero is good news.
func tagFor(d decimal.Decimal, kind MetricKind) ColorTag {
	sign := d.Sign()
	if kind == KindDrawdown {
		if sign <= 0 {
			return Positive
		}
		return Negative
	}
	switch {
	case sign > 0:
		return Positive
	case sign < 0:
		return Negative
	}
	return Neutral
}

// ValueFormatter formats metric cells. The zero value is ready to use.
type ValueFormatter struct{}

// Format is the method form of the package-level Format.
func (ValueFormatter) Format(raw models.MetricValue, kind MetricKind) FormattedCell {
	return Format(raw, kind)
}

// NumericValue returns the parsed value of a metric and whether it holds one.
func NumericValue(raw models.MetricValue) (decimal.Decimal, bool) {
	d, outcome := parseMetric(raw)
	return d, outcome == parsedValue
}
