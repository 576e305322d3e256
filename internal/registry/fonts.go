// Package registry holds the static catalogs a profile appearance refers to
// by key: fonts, patterns, gradient presets, icons and theme presets.
// Lookups never fail; unknown keys resolve to the first catalog entry.
package registry

// FontSource tells the presentation layer whether a font needs loading.
type FontSource string

const (
	FontSystem FontSource = "system"
	FontWeb    FontSource = "web"
)

// FontPair is a heading/body font combination.
type FontPair struct {
	ID      string     `json:"id"`
	Name    string     `json:"name"`
	Heading string     `json:"heading"`
	Body    string     `json:"body"`
	Source  FontSource `json:"source"`
}

var systemFonts = []FontPair{
	{ID: "system-sans", Name: "System Sans", Heading: "ui-sans-serif, system-ui, sans-serif", Body: "ui-sans-serif, system-ui, sans-serif", Source: FontSystem},
	{ID: "system-serif", Name: "System Serif", Heading: "ui-serif, Georgia, serif", Body: "ui-serif, Georgia, serif", Source: FontSystem},
	{ID: "system-mono", Name: "System Mono", Heading: "ui-monospace, Menlo, monospace", Body: "ui-monospace, Menlo, monospace", Source: FontSystem},
}

var curatedFonts = []FontPair{
	{ID: "inter", Name: "Inter", Heading: "Inter", Body: "Inter", Source: FontWeb},
	{ID: "space-grotesk", Name: "Space Grotesk", Heading: "Space Grotesk", Body: "Inter", Source: FontWeb},
	{ID: "playfair", Name: "Playfair", Heading: "Playfair Display", Body: "Source Sans 3", Source: FontWeb},
	{ID: "dm-serif", Name: "DM Serif", Heading: "DM Serif Display", Body: "DM Sans", Source: FontWeb},
	{ID: "outfit", Name: "Outfit", Heading: "Outfit", Body: "Outfit", Source: FontWeb},
	{ID: "fraunces", Name: "Fraunces", Heading: "Fraunces", Body: "Work Sans", Source: FontWeb},
	{ID: "jetbrains", Name: "JetBrains Mono", Heading: "JetBrains Mono", Body: "Inter", Source: FontWeb},
	{ID: "syne", Name: "Syne", Heading: "Syne", Body: "Manrope", Source: FontWeb},
}

// Fonts returns the font catalog: system fonts followed by curated web fonts.
func Fonts() []FontPair {
	out := make([]FontPair, 0, len(systemFonts)+len(curatedFonts))
	out = append(out, systemFonts...)
	return append(out, curatedFonts...)
}

// ResolveFont looks up id in the catalog and falls back to the first entry.
func ResolveFont(id string) FontPair {
	fonts := Fonts()
	for _, f := range fonts {
		if f.ID == id {
			return f
		}
	}
	return fonts[0]
}
