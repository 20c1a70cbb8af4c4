// Package render turns report documents into PDF, Markdown, HTML and
// spreadsheet output.
package render

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/yourusername/fund-report/internal/config"
)

// coreFamily is the built-in PDF font used when no TrueType font is found.
// It only covers Latin-1 text.
const coreFamily = "Arial"

// FontFace is a TrueType family with a regular and a bold file.
type FontFace struct {
	Family  string
	Regular string
	Bold    string
}

// RenderingConfig is the outcome of font discovery. It is fixed once built.
type RenderingConfig struct {
	face    FontFace
	unicode bool
}

// Family returns the font family name to select in documents.
func (c RenderingConfig) Family() string { return c.face.Family }

// Unicode reports whether a TrueType font with full Unicode coverage is used.
func (c RenderingConfig) Unicode() bool { return c.unicode }

// Face returns the discovered font files; empty for the core font.
func (c RenderingConfig) Face() FontFace { return c.face }

// CoreFonts is the fallback configuration using the built-in font.
func CoreFonts() RenderingConfig {
	return RenderingConfig{face: FontFace{Family: coreFamily}}
}

// DefaultFontCandidates lists TrueType fonts with CJK or wide Unicode coverage
// commonly installed on goos. Paths relative to a font directory come first.
func DefaultFontCandidates(goos string) []FontFace {
	candidates := []FontFace{
		{Family: "NotoSansSC", Regular: "NotoSansSC-Regular.ttf", Bold: "NotoSansSC-Bold.ttf"},
		{Family: "SimHei", Regular: "simhei.ttf"},
	}
	switch goos {
	case "windows":
		candidates = append(candidates,
			FontFace{Family: "SimHei", Regular: `C:\Windows\Fonts\simhei.ttf`},
			FontFace{Family: "MicrosoftYaHei", Regular: `C:\Windows\Fonts\msyh.ttf`, Bold: `C:\Windows\Fonts\msyhbd.ttf`},
		)
	case "darwin":
		candidates = append(candidates,
			FontFace{Family: "ArialUnicode", Regular: "/Library/Fonts/Arial Unicode.ttf"},
			FontFace{Family: "ArialUnicode", Regular: "/System/Library/Fonts/Supplemental/Arial Unicode.ttf"},
		)
	default:
		candidates = append(candidates,
			FontFace{Family: "WenQuanYiMicroHei", Regular: "/usr/share/fonts/truetype/wqy/wqy-microhei.ttf"},
			FontFace{Family: "DejaVuSans", Regular: "/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf", Bold: "/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf"},
		)
	}
	return candidates
}

// DiscoverFonts returns the first candidate whose regular file exists.
// Relative paths are tried in each of dirs. A missing bold file falls back to
// the regular one. Without any match the core font is used.
func DiscoverFonts(candidates []FontFace, dirs []string) RenderingConfig {
	for _, c := range candidates {
		if !strings.EqualFold(filepath.Ext(c.Regular), ".ttf") {
			continue
		}
		regular, ok := locate(c.Regular, dirs)
		if !ok {
			continue
		}
		bold, ok := locate(c.Bold, dirs)
		if !ok {
			bold = regular
		}
		family := c.Family
		if family == "" {
			family = strings.TrimSuffix(filepath.Base(regular), filepath.Ext(regular))
		}
		return RenderingConfig{face: FontFace{Family: family, Regular: regular, Bold: bold}, unicode: true}
	}
	return CoreFonts()
}

func locate(path string, dirs []string) (string, bool) {
	if path == "" {
		return "", false
	}
	if filepath.IsAbs(path) {
		return path, isFile(path)
	}
	for _, dir := range dirs {
		p := filepath.Join(dir, path)
		if isFile(p) {
			return p, true
		}
	}
	return path, isFile(path)
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// FontsFromConfig discovers fonts for the running platform, trying an
// explicitly configured face first.
func FontsFromConfig(cfg config.RenderingConfig, goos string) RenderingConfig {
	var candidates []FontFace
	if cfg.FontRegular != "" {
		candidates = append(candidates, FontFace{Family: cfg.FontFamily, Regular: cfg.FontRegular, Bold: cfg.FontBold})
	}
	candidates = append(candidates, DefaultFontCandidates(goos)...)
	return DiscoverFonts(candidates, cfg.FontDirs)
}
