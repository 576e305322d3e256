package compositor

import (
	"time"

	"github.com/mx-space/linkpage/internal/models"
	"github.com/mx-space/linkpage/internal/registry"
)

// Descriptor is everything a presentation layer needs to draw a profile
// page. It holds resolved values only; no catalog keys are left to look up.
type Descriptor struct {
	At           time.Time            `json:"at"`
	Profile      ProfileText          `json:"profile"`
	Font         registry.FontPair    `json:"font"`
	Background   Background           `json:"background"`
	Pattern      registry.PatternSpec `json:"pattern"`
	Container    Container            `json:"container"`
	Avatar       Avatar               `json:"avatar"`
	TextColor    string               `json:"textColor"`
	AccentColor  string               `json:"accentColor"`
	Links        []RenderedLink       `json:"links"`
	Socials      SocialRows           `json:"socials"`
	ShowBranding bool                 `json:"showBranding"`
	ThemeID      string               `json:"themeId,omitempty"`
}

type ProfileText struct {
	DisplayName string `json:"displayName"`
	Bio         string `json:"bio"`
	AvatarURL   string `json:"avatarUrl"`
}

type BackgroundKind string

const (
	BackgroundFlat     BackgroundKind = "color"
	BackgroundGradient BackgroundKind = "gradient"
)

// Background is either a flat color or a linear gradient. Color is always
// set so a consumer that cannot paint gradients still has a fill.
type Background struct {
	Kind     BackgroundKind `json:"kind"`
	Color    string         `json:"color"`
	Gradient *GradientSpec  `json:"gradient,omitempty"`
}

type GradientSpec struct {
	Angle float64               `json:"angle"`
	Stops []models.GradientStop `json:"stops"`
	CSS   string                `json:"css"`
}

type Container struct {
	Width         int `json:"width"`
	ButtonSpacing int `json:"buttonSpacing"`
}

type Avatar struct {
	Shape       models.AvatarShape `json:"shape"`
	Radius      string             `json:"radius"`
	BorderWidth int                `json:"borderWidth"`
	BorderColor string             `json:"borderColor"`
}

type RenderedLink struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	Subtitle string          `json:"subtitle,omitempty"`
	URL      string          `json:"url"`
	Type     models.LinkType `json:"type"`
	Badge    registry.Icon   `json:"badge"`
	Style    ButtonStyle     `json:"style"`
	Commerce *CommerceView   `json:"commerce,omitempty"`
	Widget   *WidgetView     `json:"widget,omitempty"`
}

type ButtonStyle struct {
	Shape       models.ButtonShape `json:"shape"`
	Radius      int                `json:"radius"`
	Background  string             `json:"background"`
	TextColor   string             `json:"textColor"`
	BorderColor string             `json:"borderColor"`
	BorderWidth int                `json:"borderWidth"`
	Shadow      *Shadow            `json:"shadow,omitempty"`
	Glow        bool               `json:"glow"`
	GlowColor   string             `json:"glowColor,omitempty"`
}

type Shadow struct {
	Kind    models.ButtonShadow `json:"kind"`
	OffsetX int                 `json:"offsetX"`
	OffsetY int                 `json:"offsetY"`
	Blur    int                 `json:"blur"`
	Color   string              `json:"color"`
}

type CommerceView struct {
	PriceLabel string `json:"priceLabel"`
	Provider   string `json:"provider"`
	ButtonText string `json:"buttonText"`
}

type WidgetView struct {
	EmbedURL string `json:"embedUrl"`
}

type SocialIcon struct {
	Platform string        `json:"platform"`
	Label    string        `json:"label"`
	Icon     registry.Icon `json:"icon"`
	Href     string        `json:"href"`
}

// SocialRows are the icon rows above and below the links. A row that is not
// rendered is nil.
type SocialRows struct {
	Style  models.SocialIconStyle `json:"style"`
	Top    []SocialIcon           `json:"top"`
	Bottom []SocialIcon           `json:"bottom"`
}
