package models

// BackgroundType selects how the canvas background is painted.
type BackgroundType string

const (
	BackgroundColor    BackgroundType = "color"
	BackgroundGradient BackgroundType = "gradient"
)

// Pattern is a decorative overlay drawn above the background.
type Pattern string

const (
	PatternNone          Pattern = "none"
	PatternDust          Pattern = "dust"
	PatternGrid          Pattern = "grid"
	PatternConstellation Pattern = "constellation"
)

type ButtonShape string

const (
	ButtonSharp   ButtonShape = "sharp"
	ButtonRounded ButtonShape = "rounded"
	ButtonPill    ButtonShape = "pill"
)

type ButtonStyle string

const (
	ButtonFill    ButtonStyle = "fill"
	ButtonOutline ButtonStyle = "outline"
)

type ButtonShadow string

const (
	ShadowNone ButtonShadow = "none"
	ShadowSoft ButtonShadow = "soft"
	ShadowHard ButtonShadow = "hard"
)

type AvatarShape string

const (
	AvatarCircle  AvatarShape = "circle"
	AvatarRounded AvatarShape = "rounded"
	AvatarSquare  AvatarShape = "square"
)

// SocialPosition controls where the social icon row is rendered.
type SocialPosition string

const (
	SocialTop    SocialPosition = "top"
	SocialBottom SocialPosition = "bottom"
	SocialBoth   SocialPosition = "both"
)

type SocialIconStyle string

const (
	SocialIconMinimal SocialIconStyle = "minimal"
	SocialIconBold    SocialIconStyle = "bold"
	SocialIconGlass   SocialIconStyle = "glass"
)

// Layout bounds, in px.
const (
	MinAvatarBorderWidth = 0
	MaxAvatarBorderWidth = 12
	MinButtonSpacing     = 0
	MaxButtonSpacing     = 48
	MinContainerWidth    = 400
	MaxContainerWidth    = 840
)

// GradientStop is one color stop. Stops are painted in slice order.
type GradientStop struct {
	Color         string  `json:"color"         yaml:"color"         validate:"required"`
	OffsetPercent float64 `json:"offsetPercent" yaml:"offsetPercent"`
}

type Gradient struct {
	Angle float64        `json:"angle" yaml:"angle"`
	Stops []GradientStop `json:"stops" yaml:"stops" validate:"dive"`
}

// Palette holds the independent color slots of an appearance.
type Palette struct {
	Accent      string `json:"accent"      yaml:"accent"`
	BtnFill     string `json:"btnFill"     yaml:"btnFill"`
	BtnText     string `json:"btnText"     yaml:"btnText"`
	BtnBorder   string `json:"btnBorder"   yaml:"btnBorder"`
	ProfileText string `json:"profileText" yaml:"profileText"`
}

type Layout struct {
	AvatarShape       AvatarShape     `json:"avatarShape"       yaml:"avatarShape"       validate:"oneof=circle rounded square"`
	AvatarBorderWidth int             `json:"avatarBorderWidth" yaml:"avatarBorderWidth"`
	AvatarBorderColor string          `json:"avatarBorderColor" yaml:"avatarBorderColor"`
	ButtonSpacing     int             `json:"buttonSpacing"     yaml:"buttonSpacing"`
	ContainerWidth    int             `json:"containerWidth"    yaml:"containerWidth"`
	SocialPosition    SocialPosition  `json:"socialPosition"    yaml:"socialPosition"    validate:"oneof=top bottom both"`
	SocialIconStyle   SocialIconStyle `json:"socialIconStyle"   yaml:"socialIconStyle"   validate:"oneof=minimal bold glass"`
	HideBranding      bool            `json:"hideBranding"      yaml:"hideBranding"`
}

// Appearance is the full visual configuration of a profile.
type Appearance struct {
	BgType       BackgroundType `json:"bgType"       yaml:"bgType"       validate:"oneof=color gradient"`
	BgColor      string         `json:"bgColor"      yaml:"bgColor"`
	BgGradient   Gradient       `json:"bgGradient"   yaml:"bgGradient"`
	BgPattern    Pattern        `json:"bgPattern"    yaml:"bgPattern"    validate:"oneof=none dust grid constellation"`
	Colors       Palette        `json:"colors"       yaml:"colors"`
	FontPairID   string         `json:"fontPairId"   yaml:"fontPairId"`
	ButtonShape  ButtonShape    `json:"buttonShape"  yaml:"buttonShape"  validate:"oneof=sharp rounded pill"`
	ButtonStyle  ButtonStyle    `json:"buttonStyle"  yaml:"buttonStyle"  validate:"oneof=fill outline"`
	ButtonShadow ButtonShadow   `json:"buttonShadow" yaml:"buttonShadow" validate:"oneof=none soft hard"`
	Layout       Layout         `json:"layout"       yaml:"layout"`
	ThemeID      string         `json:"themeId"      yaml:"themeId"`
	PaletteID    string         `json:"paletteId"    yaml:"paletteId"`
}

// Clone returns a deep copy.
func (a Appearance) Clone() Appearance {
	out := a
	out.BgGradient = a.BgGradient.Clone()
	return out
}

func (g Gradient) Clone() Gradient {
	out := g
	if g.Stops != nil {
		out.Stops = make([]GradientStop, len(g.Stops))
		copy(out.Stops, g.Stops)
	}
	return out
}

// DefaultAppearance is the configuration a new profile starts with.
func DefaultAppearance() Appearance {
	return Appearance{
		BgType:  BackgroundColor,
		BgColor: "#f5f5f4",
		BgGradient: Gradient{
			Angle: 135,
			Stops: []GradientStop{
				{Color: "#f5f5f4", OffsetPercent: 0},
				{Color: "#e7e5e4", OffsetPercent: 100},
			},
		},
		BgPattern: PatternNone,
		Colors: Palette{
			Accent:      "#18181b",
			BtnFill:     "#ffffff",
			BtnText:     "#18181b",
			BtnBorder:   "#e4e4e7",
			ProfileText: "#18181b",
		},
		FontPairID:   "system-sans",
		ButtonShape:  ButtonRounded,
		ButtonStyle:  ButtonFill,
		ButtonShadow: ShadowSoft,
		Layout: Layout{
			AvatarShape:       AvatarCircle,
			AvatarBorderWidth: 0,
			AvatarBorderColor: "#ffffff",
			ButtonSpacing:     12,
			ContainerWidth:    580,
			SocialPosition:    SocialTop,
			SocialIconStyle:   SocialIconMinimal,
		},
	}
}
