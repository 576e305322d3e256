package registry

import "github.com/mx-space/linkpage/internal/models"

// GradientPreset is a named gradient offered in the background picker.
type GradientPreset struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Gradient models.Gradient `json:"gradient"`
}

func twoStop(angle float64, from, to string) models.Gradient {
	return models.Gradient{Angle: angle, Stops: []models.GradientStop{
		{Color: from, OffsetPercent: 0},
		{Color: to, OffsetPercent: 100},
	}}
}

var gradientPresets = []GradientPreset{
	{ID: "sunset", Name: "Sunset", Gradient: twoStop(135, "#f97316", "#db2777")},
	{ID: "ocean", Name: "Ocean", Gradient: twoStop(180, "#0ea5e9", "#1e3a8a")},
	{ID: "forest", Name: "Forest", Gradient: twoStop(160, "#22c55e", "#14532d")},
	{ID: "peach", Name: "Peach", Gradient: twoStop(90, "#fed7aa", "#fecdd3")},
	{ID: "aurora", Name: "Aurora", Gradient: models.Gradient{Angle: 120, Stops: []models.GradientStop{
		{Color: "#22d3ee", OffsetPercent: 0},
		{Color: "#a78bfa", OffsetPercent: 50},
		{Color: "#f472b6", OffsetPercent: 100},
	}}},
	{ID: "graphite", Name: "Graphite", Gradient: twoStop(180, "#3f3f46", "#09090b")},
}

// GradientPresets returns deep copies of the gradient presets.
func GradientPresets() []GradientPreset {
	out := make([]GradientPreset, len(gradientPresets))
	for i, g := range gradientPresets {
		g.Gradient = g.Gradient.Clone()
		out[i] = g
	}
	return out
}
