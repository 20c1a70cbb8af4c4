package report

import (
	"fmt"
	"strconv"
	"strings"
)

// RGB is a color as red, green and blue components in 0-255.
type RGB [3]int

// Hex returns the color as "#rrggbb".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])
}

// ParseHex reads "#rrggbb" or "rrggbb".
func ParseHex(s string) (RGB, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return RGB{}, fmt.Errorf("invalid color %q", s)
	}
	var c RGB
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseUint(s[i*2:i*2+2], 16, 8)
		if err != nil {
			return RGB{}, fmt.Errorf("invalid color %q: %w", s, err)
		}
		c[i] = int(v)
	}
	return c, nil
}

// Named color policies.
const (
	PolicyGainGreen = "gain_green"
	PolicyGainRed   = "gain_red"
)

var (
	colorGreen = RGB{0, 128, 0}
	colorRed   = RGB{255, 0, 0}
	colorBlack = RGB{0, 0, 0}
)

// ColorPolicy maps color tags to concrete colors.
type ColorPolicy struct {
	Name     string
	Positive RGB
	Negative RGB
	Neutral  RGB
}

// GainGreen shows gains in green and losses in red.
var GainGreen = ColorPolicy{Name: PolicyGainGreen, Positive: colorGreen, Negative: colorRed, Neutral: colorBlack}

// GainRed shows gains in red and losses in green, as on mainland Chinese exchanges.
var GainRed = ColorPolicy{Name: PolicyGainRed, Positive: colorRed, Negative: colorGreen, Neutral: colorBlack}

// ColorPolicyNames lists the policies ColorPolicyByName accepts.
var ColorPolicyNames = []string{PolicyGainGreen, PolicyGainRed}

// ColorPolicyByName returns a named policy.
func ColorPolicyByName(name string) (ColorPolicy, error) {
	switch name {
	case PolicyGainGreen, "":
		return GainGreen, nil
	case PolicyGainRed:
		return GainRed, nil
	}
	return ColorPolicy{}, fmt.Errorf("unknown color policy %q", name)
}

// ColorOf returns the concrete color for a tag.
func (p ColorPolicy) ColorOf(tag ColorTag) RGB {
	switch tag {
	case Positive:
		return p.Positive
	case Negative:
		return p.Negative
	}
	return p.Neutral
}

// TableStyle holds the fixed table decoration.
type TableStyle struct {
	HeaderFill   RGB
	HeaderText   RGB
	HeaderRule   RGB
	Grid         RGB
	BodyFill     RGB
	StripeFill   RGB
	EmphasisFill RGB
	HeaderBold   bool
	HeaderAlign  Align
}

// DefaultTableStyle is the house table look.
var DefaultTableStyle = TableStyle{
	HeaderFill:   RGB{0x66, 0x7e, 0xea},
	HeaderText:   RGB{0xff, 0xff, 0xff},
	HeaderRule:   RGB{0x76, 0x4b, 0xa2},
	Grid:         RGB{0xe0, 0xe0, 0xe0},
	BodyFill:     RGB{0xff, 0xff, 0xff},
	StripeFill:   RGB{0xf8, 0xf9, 0xff},
	EmphasisFill: RGB{0xee, 0xf2, 0xff},
	HeaderBold:   true,
	HeaderAlign:  AlignCenter,
}
