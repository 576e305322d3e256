package registry

import "github.com/mx-space/linkpage/internal/models"

// PatternSpec describes how an overlay is drawn. An empty Kind means no overlay.
type PatternSpec struct {
	ID      models.Pattern `json:"id"`
	Name    string         `json:"name"`
	Kind    string         `json:"kind,omitempty"`
	Size    int            `json:"size,omitempty"`
	Opacity float64        `json:"opacity,omitempty"`
}

var patterns = []PatternSpec{
	{ID: models.PatternNone, Name: "None"},
	{ID: models.PatternDust, Name: "Dust", Kind: "noise", Size: 160, Opacity: 0.08},
	{ID: models.PatternGrid, Name: "Grid", Kind: "lines", Size: 24, Opacity: 0.06},
	{ID: models.PatternConstellation, Name: "Constellation", Kind: "dots", Size: 48, Opacity: 0.12},
}

func Patterns() []PatternSpec {
	out := make([]PatternSpec, len(patterns))
	copy(out, patterns)
	return out
}

// ResolvePattern returns the overlay for id, or "none" for an unknown id.
func ResolvePattern(id models.Pattern) PatternSpec {
	for _, p := range patterns {
		if p.ID == id {
			return p
		}
	}
	return patterns[0]
}
