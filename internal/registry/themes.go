package registry

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"

	"github.com/mx-space/linkpage/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed presets.yaml
var presetsYAML []byte

var (
	themesOnce sync.Once
	themes     []models.ThemePreset
)

type presetFile struct {
	Themes []models.ThemePreset `yaml:"themes"`
}

func parsePresets(raw []byte) ([]models.ThemePreset, error) {
	var f presetFile
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode theme presets: %w", err)
	}
	seen := make(map[string]struct{}, len(f.Themes))
	for i := range f.Themes {
		p := &f.Themes[i]
		if p.ID == "" {
			return nil, fmt.Errorf("theme preset #%d has no id", i)
		}
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("duplicate theme preset %q", p.ID)
		}
		seen[p.ID] = struct{}{}
		p.Appearance.ThemeID = p.ID
		if p.Appearance.PaletteID == "" {
			p.Appearance.PaletteID = p.ID
		}
	}
	if len(f.Themes) == 0 {
		return nil, fmt.Errorf("no theme presets")
	}
	return f.Themes, nil
}

func loadThemes() []models.ThemePreset {
	themesOnce.Do(func() {
		var err error
		themes, err = parsePresets(presetsYAML)
		if err != nil {
			panic(err)
		}
	})
	return themes
}

// ThemePresets returns deep copies of every preset in catalog order.
func ThemePresets() []models.ThemePreset {
	src := loadThemes()
	out := make([]models.ThemePreset, len(src))
	for i, p := range src {
		out[i] = p.Clone()
	}
	return out
}

// Theme looks up a preset by id.
func Theme(id string) (models.ThemePreset, bool) {
	for _, p := range loadThemes() {
		if p.ID == id {
			return p.Clone(), true
		}
	}
	return models.ThemePreset{}, false
}

// ResolveTheme is Theme with a fallback to the first preset.
func ResolveTheme(id string) models.ThemePreset {
	if p, ok := Theme(id); ok {
		return p
	}
	return loadThemes()[0].Clone()
}
