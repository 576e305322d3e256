package registry

import (
	"testing"

	"github.com/mx-space/linkpage/internal/models"
	"github.com/mx-space/linkpage/internal/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveFont(t *testing.T) {
	fonts := Fonts()
	require.NotEmpty(t, fonts)
	assert.Equal(t, FontSystem, fonts[0].Source)
	assert.Equal(t, FontWeb, fonts[len(fonts)-1].Source)

	assert.Equal(t, "space-grotesk", ResolveFont("space-grotesk").ID)
	assert.Equal(t, fonts[0], ResolveFont("comic-sans"))
	assert.Equal(t, fonts[0], ResolveFont(""))
}

func TestFontIDsUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, f := range Fonts() {
		assert.False(t, seen[f.ID], f.ID)
		seen[f.ID] = true
	}
}

func TestResolvePattern(t *testing.T) {
	assert.Equal(t, models.PatternGrid, ResolvePattern(models.PatternGrid).ID)
	none := ResolvePattern("stripes")
	assert.Equal(t, models.PatternNone, none.ID)
	assert.Empty(t, none.Kind)
}

func TestResolveIcon(t *testing.T) {
	assert.Equal(t, "github", ResolveIcon("github").Key)
	assert.Equal(t, Icons()[0], ResolveIcon("unknown"))
}

func TestPlatformIconsExist(t *testing.T) {
	for _, p := range Platforms() {
		assert.Equal(t, p.Icon, ResolveIcon(p.Icon).Key, p.Key)
	}
}

func TestSortPlatformKeys(t *testing.T) {
	keys := []string{"zeta", "github", "alpha", "instagram", "x"}
	SortPlatformKeys(keys)
	assert.Equal(t, []string{"instagram", "x", "github", "alpha", "zeta"}, keys)
}

func TestThemePresetsAreValid(t *testing.T) {
	presets := ThemePresets()
	require.NotEmpty(t, presets)

	for _, p := range presets {
		t.Run(p.ID, func(t *testing.T) {
			assert.NoError(t, profile.ValidateAppearance(p.Appearance))
			assert.Equal(t, p.Appearance, profile.NormalizeAppearance(p.Appearance), "preset must be within layout bounds")
			assert.Equal(t, p.ID, p.Appearance.ThemeID)
			assert.NotEmpty(t, p.Appearance.PaletteID)
			assert.GreaterOrEqual(t, len(p.Appearance.BgGradient.Stops), 2)
			assert.Equal(t, p.Appearance.FontPairID, ResolveFont(p.Appearance.FontPairID).ID)
		})
	}
}

func TestThemeLookupReturnsCopies(t *testing.T) {
	p, ok := Theme("aurora")
	require.True(t, ok)
	assert.True(t, p.IsPro)

	p.Appearance.BgGradient.Stops[0].Color = "#000000"
	again, _ := Theme("aurora")
	assert.NotEqual(t, "#000000", again.Appearance.BgGradient.Stops[0].Color)

	_, ok = Theme("nope")
	assert.False(t, ok)
	assert.Equal(t, ThemePresets()[0], ResolveTheme("nope"))
}

func TestParsePresetsRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"unknown field", "themes:\n  - id: a\n    colour: red\n"},
		{"missing id", "themes:\n  - name: A\n"},
		{"duplicate id", "themes:\n  - id: a\n  - id: a\n"},
		{"empty", "themes: []\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parsePresets([]byte(tt.raw))
			assert.Error(t, err)
		})
	}
}

func TestGradientPresetsAreCopies(t *testing.T) {
	g := GradientPresets()
	g[0].Gradient.Stops[0].Color = "#000000"
	assert.NotEqual(t, "#000000", GradientPresets()[0].Gradient.Stops[0].Color)
}
