package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/fund-report/internal/config"
)

func TestDiscoverFontsInDirectory(t *testing.T) {
	dir := t.TempDir()
	regular := filepath.Join(dir, "NotoSansSC-Regular.ttf")
	require.NoError(t, os.WriteFile(regular, []byte("ttf"), 0o600))

	fonts := DiscoverFonts(DefaultFontCandidates("linux"), []string{dir})
	assert.True(t, fonts.Unicode())
	assert.Equal(t, "NotoSansSC", fonts.Family())
	assert.Equal(t, regular, fonts.Face().Regular)
	assert.Equal(t, regular, fonts.Face().Bold, "missing bold falls back to regular")
}

func TestDiscoverFontsExplicitPath(t *testing.T) {
	dir := t.TempDir()
	regular := filepath.Join(dir, "custom.ttf")
	bold := filepath.Join(dir, "custom-bold.ttf")
	require.NoError(t, os.WriteFile(regular, []byte("ttf"), 0o600))
	require.NoError(t, os.WriteFile(bold, []byte("ttf"), 0o600))

	fonts := DiscoverFonts([]FontFace{{Regular: regular, Bold: bold}}, nil)
	assert.Equal(t, "custom", fonts.Family())
	assert.Equal(t, bold, fonts.Face().Bold)
}

func TestDiscoverFontsFallsBackToCore(t *testing.T) {
	fonts := DiscoverFonts([]FontFace{{Family: "Missing", Regular: "/nonexistent/missing.ttf"}}, nil)
	assert.False(t, fonts.Unicode())
	assert.Equal(t, "Arial", fonts.Family())

	dir := t.TempDir()
	otf := filepath.Join(dir, "font.otf")
	require.NoError(t, os.WriteFile(otf, []byte("otf"), 0o600))
	assert.False(t, DiscoverFonts([]FontFace{{Regular: otf}}, nil).Unicode(), "only TrueType files are used")
}

func TestDefaultFontCandidatesPerOS(t *testing.T) {
	for _, goos := range []string{"linux", "darwin", "windows"} {
		assert.NotEmpty(t, DefaultFontCandidates(goos), goos)
	}
}

func TestFontsFromConfigPrefersConfiguredFace(t *testing.T) {
	dir := t.TempDir()
	regular := filepath.Join(dir, "house.ttf")
	require.NoError(t, os.WriteFile(regular, []byte("ttf"), 0o600))

	fonts := FontsFromConfig(config.RenderingConfig{FontFamily: "House", FontRegular: "house.ttf", FontDirs: []string{dir}}, "linux")
	assert.Equal(t, "House", fonts.Family())
	assert.Equal(t, regular, fonts.Face().Regular)
}
