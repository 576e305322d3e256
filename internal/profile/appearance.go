package profile

import "github.com/mx-space/linkpage/internal/models"

// AppearancePatch is a shallow patch over Appearance. A non-nil BgGradient,
// Colors or Layout replaces the whole nested object; callers that want to
// change one sub-field read the current value, modify it and send it back.
type AppearancePatch struct {
	BgType       *models.BackgroundType `json:"bgType"`
	BgColor      *string                `json:"bgColor"`
	BgGradient   *models.Gradient       `json:"bgGradient"`
	BgPattern    *models.Pattern        `json:"bgPattern"`
	Colors       *models.Palette        `json:"colors"`
	FontPairID   *string                `json:"fontPairId"`
	ButtonShape  *models.ButtonShape    `json:"buttonShape"`
	ButtonStyle  *models.ButtonStyle    `json:"buttonStyle"`
	ButtonShadow *models.ButtonShadow   `json:"buttonShadow"`
	Layout       *models.Layout         `json:"layout"`
	ThemeID      *string                `json:"themeId"`
	PaletteID    *string                `json:"paletteId"`
}

func (p AppearancePatch) isEmpty() bool {
	return p == AppearancePatch{}
}

func (p AppearancePatch) touchesStyle() bool {
	q := p
	q.ThemeID, q.PaletteID = nil, nil
	return !q.isEmpty()
}

// fields lists the Appearance fields p sets, by Go field name.
func (p AppearancePatch) fields() []string {
	out := make([]string, 0, 12)
	add := func(set bool, name string) {
		if set {
			out = append(out, name)
		}
	}
	add(p.BgType != nil, "BgType")
	add(p.BgColor != nil, "BgColor")
	add(p.BgGradient != nil, "BgGradient")
	add(p.BgPattern != nil, "BgPattern")
	add(p.Colors != nil, "Colors")
	add(p.FontPairID != nil, "FontPairID")
	add(p.ButtonShape != nil, "ButtonShape")
	add(p.ButtonStyle != nil, "ButtonStyle")
	add(p.ButtonShadow != nil, "ButtonShadow")
	add(p.Layout != nil, "Layout")
	add(p.ThemeID != nil, "ThemeID")
	add(p.PaletteID != nil, "PaletteID")
	return out
}

// apply merges p into a. A style change drops the theme provenance unless
// the patch sets it explicitly.
func (p AppearancePatch) apply(a models.Appearance) models.Appearance {
	out := a.Clone()
	if p.BgType != nil {
		out.BgType = *p.BgType
	}
	if p.BgColor != nil {
		out.BgColor = *p.BgColor
	}
	if p.BgGradient != nil {
		out.BgGradient = p.BgGradient.Clone()
	}
	if p.BgPattern != nil {
		out.BgPattern = *p.BgPattern
	}
	if p.Colors != nil {
		out.Colors = *p.Colors
	}
	if p.FontPairID != nil {
		out.FontPairID = *p.FontPairID
	}
	if p.ButtonShape != nil {
		out.ButtonShape = *p.ButtonShape
	}
	if p.ButtonStyle != nil {
		out.ButtonStyle = *p.ButtonStyle
	}
	if p.ButtonShadow != nil {
		out.ButtonShadow = *p.ButtonShadow
	}
	if p.Layout != nil {
		out.Layout = *p.Layout
	}
	if p.touchesStyle() {
		out.ThemeID, out.PaletteID = "", ""
	}
	if p.ThemeID != nil {
		out.ThemeID = *p.ThemeID
	}
	if p.PaletteID != nil {
		out.PaletteID = *p.PaletteID
	}
	return out
}
