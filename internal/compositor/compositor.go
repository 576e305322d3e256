// Package compositor turns a profile's configuration into a render
// descriptor. Compose is a pure function of its input, the time and the
// static registry.
package compositor

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/mx-space/linkpage/internal/models"
	"github.com/mx-space/linkpage/internal/profile"
	"github.com/mx-space/linkpage/internal/registry"
)

const (
	MaxRenderedLinks = 10
	MaxSocialIcons   = 4
)

// Input is the configuration Compose reads.
type Input struct {
	Appearance models.Appearance
	Links      []models.Link
	Socials    models.Socials
	Profile    ProfileText
}

func InputFromDocument(doc models.ProfileDocument) Input {
	return Input{
		Appearance: doc.Appearance,
		Links:      doc.Links,
		Socials:    doc.Socials,
		Profile: ProfileText{
			DisplayName: doc.DisplayName,
			Bio:         doc.Bio,
			AvatarURL:   doc.AvatarURL,
		},
	}
}

func Compose(in Input, now time.Time) Descriptor {
	a := in.Appearance
	return Descriptor{
		At:         now,
		Profile:    in.Profile,
		Font:       registry.ResolveFont(a.FontPairID),
		Background: composeBackground(a),
		Pattern:    registry.ResolvePattern(a.BgPattern),
		Container: Container{
			Width:         a.Layout.ContainerWidth,
			ButtonSpacing: a.Layout.ButtonSpacing,
		},
		Avatar: Avatar{
			Shape:       a.Layout.AvatarShape,
			Radius:      avatarRadius(a.Layout.AvatarShape),
			BorderWidth: a.Layout.AvatarBorderWidth,
			BorderColor: a.Layout.AvatarBorderColor,
		},
		TextColor:    a.Colors.ProfileText,
		AccentColor:  a.Colors.Accent,
		Links:        composeLinks(a, in.Links, now),
		Socials:      composeSocials(a.Layout, in.Socials),
		ShowBranding: !a.Layout.HideBranding,
		ThemeID:      a.ThemeID,
	}
}

func composeBackground(a models.Appearance) Background {
	bg := Background{Kind: BackgroundFlat, Color: a.BgColor}
	if a.BgType != models.BackgroundGradient || len(a.BgGradient.Stops) < 2 {
		return bg
	}
	stops := make([]models.GradientStop, len(a.BgGradient.Stops))
	copy(stops, a.BgGradient.Stops)
	bg.Kind = BackgroundGradient
	bg.Gradient = &GradientSpec{
		Angle: a.BgGradient.Angle,
		Stops: stops,
		CSS:   gradientCSS(a.BgGradient.Angle, stops),
	}
	return bg
}

func gradientCSS(angle float64, stops []models.GradientStop) string {
	var b strings.Builder
	b.WriteString("linear-gradient(")
	b.WriteString(formatNumber(angle))
	b.WriteString("deg")
	for _, s := range stops {
		b.WriteString(", ")
		b.WriteString(s.Color)
		b.WriteByte(' ')
		b.WriteString(formatNumber(s.OffsetPercent))
		b.WriteByte('%')
	}
	b.WriteByte(')')
	return b.String()
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func avatarRadius(shape models.AvatarShape) string {
	switch shape {
	case models.AvatarSquare:
		return "0"
	case models.AvatarRounded:
		return "16px"
	default:
		return "50%"
	}
}

func composeLinks(a models.Appearance, links []models.Link, now time.Time) []RenderedLink {
	visible := profile.VisibleLinks(links, now)
	if len(visible) > MaxRenderedLinks {
		visible = visible[:MaxRenderedLinks]
	}
	out := make([]RenderedLink, 0, len(visible))
	for _, l := range visible {
		out = append(out, renderLink(a, l))
	}
	return out
}

func renderLink(a models.Appearance, l models.Link) RenderedLink {
	r := RenderedLink{
		ID:       l.ID,
		Title:    l.Title,
		Subtitle: l.Subtitle,
		URL:      l.URL,
		Type:     l.Type,
		Badge:    badgeIcon(l),
		Style:    buttonStyle(a, l.Featured),
	}
	switch l.Type {
	case models.LinkCommerce:
		if l.Commerce != nil {
			r.Commerce = &CommerceView{
				PriceLabel: PriceLabel(l.Commerce.Price, l.Commerce.Currency),
				Provider:   l.Commerce.Provider,
				ButtonText: l.Commerce.ButtonText,
			}
		}
	case models.LinkWidget:
		if l.Widget != nil {
			r.Widget = &WidgetView{EmbedURL: l.Widget.EmbedURL}
		}
	}
	return r
}

func badgeIcon(l models.Link) registry.Icon {
	switch l.Type {
	case models.LinkCommerce:
		return registry.ResolveIcon(registry.IconShoppingBag)
	case models.LinkWidget:
		return registry.ResolveIcon(registry.IconPlay)
	default:
		return registry.ResolveIcon(l.Icon)
	}
}

func buttonRadius(shape models.ButtonShape) int {
	switch shape {
	case models.ButtonSharp:
		return 0
	case models.ButtonPill:
		return 9999
	default:
		return 12
	}
}

func buttonStyle(a models.Appearance, featured bool) ButtonStyle {
	s := ButtonStyle{
		Shape:  a.ButtonShape,
		Radius: buttonRadius(a.ButtonShape),
		Shadow: buttonShadow(a),
		Glow:   featured,
	}
	if a.ButtonStyle == models.ButtonOutline {
		s.Background = "transparent"
		s.TextColor = a.Colors.BtnText
		s.BorderColor = a.Colors.BtnBorder
		s.BorderWidth = 2
	} else {
		s.Background = a.Colors.BtnFill
		s.TextColor = a.Colors.BtnText
		s.BorderColor = a.Colors.BtnBorder
		s.BorderWidth = 0
	}
	if featured {
		s.GlowColor = a.Colors.Accent
	}
	return s
}

func buttonShadow(a models.Appearance) *Shadow {
	switch a.ButtonShadow {
	case models.ShadowSoft:
		return &Shadow{Kind: models.ShadowSoft, OffsetY: 4, Blur: 14, Color: "rgba(0, 0, 0, 0.12)"}
	case models.ShadowHard:
		return &Shadow{Kind: models.ShadowHard, OffsetX: 4, OffsetY: 4, Color: a.Colors.BtnBorder}
	default:
		return nil
	}
}

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"CNY": "¥",
}

// PriceLabel formats a price for display, e.g. "$12.50" or "12.50 CHF".
func PriceLabel(price float64, currency string) string {
	code := strings.ToUpper(strings.TrimSpace(currency))
	amount := strconv.FormatFloat(price, 'f', 2, 64)
	if code == "JPY" {
		amount = strconv.FormatFloat(price, 'f', 0, 64)
	}
	if sym, ok := currencySymbols[code]; ok {
		return sym + amount
	}
	if code == "" {
		return amount
	}
	return amount + " " + code
}

func socialPosition(layout models.Layout, socials models.Socials) models.SocialPosition {
	switch pos := models.SocialPosition(strings.ToLower(strings.TrimSpace(socials[models.SocialPositionKey]))); pos {
	case models.SocialTop, models.SocialBottom, models.SocialBoth:
		return pos
	}
	return layout.SocialPosition
}

func composeSocials(layout models.Layout, socials models.Socials) SocialRows {
	rows := SocialRows{Style: layout.SocialIconStyle}
	icons := activeSocials(socials)
	if len(icons) == 0 {
		return rows
	}
	switch socialPosition(layout, socials) {
	case models.SocialBottom:
		rows.Bottom = icons
	case models.SocialBoth:
		rows.Top = icons
		rows.Bottom = append([]SocialIcon(nil), icons...)
	default:
		rows.Top = icons
	}
	return rows
}

func activeSocials(socials models.Socials) []SocialIcon {
	keys := make([]string, 0, len(socials))
	for k, v := range socials {
		if k == models.SocialPositionKey || strings.TrimSpace(v) == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	registry.SortPlatformKeys(keys)
	if len(keys) > MaxSocialIcons {
		keys = keys[:MaxSocialIcons]
	}

	out := make([]SocialIcon, 0, len(keys))
	for _, k := range keys {
		value := strings.TrimSpace(socials[k])
		p, _, known := registry.LookupPlatform(k)
		icon := registry.ResolveIcon(k)
		label := k
		if known {
			icon = registry.ResolveIcon(p.Icon)
			label = p.Label
		}
		out = append(out, SocialIcon{
			Platform: k,
			Label:    label,
			Icon:     icon,
			Href:     socialHref(p, value),
		})
	}
	return out
}

func socialHref(p registry.Platform, value string) string {
	if strings.Contains(value, "://") || strings.HasPrefix(value, "mailto:") {
		return value
	}
	if p.URLTemplate == "" {
		return ""
	}
	handle := strings.TrimPrefix(value, "@")
	// Hosts and addresses are substituted as typed.
	if !strings.HasPrefix(p.URLTemplate, "mailto:") && !strings.HasSuffix(p.URLTemplate, "//%s") {
		handle = url.PathEscape(handle)
	}
	return fmt.Sprintf(p.URLTemplate, handle)
}
