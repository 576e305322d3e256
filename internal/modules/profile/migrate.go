package profile

import (
	"encoding/json"
	"fmt"

	"github.com/mx-space/linkpage/internal/models"
)

// v1 stored the background gradient as a fixed pair of colors.
type gradientV1 struct {
	Angle float64 `json:"angle"`
	From  string  `json:"from"`
	To    string  `json:"to"`
}

type appearanceV1 struct {
	models.Appearance
	BgGradient gradientV1 `json:"bgGradient"`
}

type documentV1 struct {
	Handle      string         `json:"handle"`
	DisplayName string         `json:"displayName"`
	Bio         string         `json:"bio"`
	AvatarURL   string         `json:"avatarUrl"`
	Appearance  appearanceV1   `json:"appearance"`
	Links       []models.Link  `json:"links"`
	Socials     models.Socials `json:"socials"`
}

func (g gradientV1) upgrade() models.Gradient {
	return models.Gradient{
		Angle: g.Angle,
		Stops: []models.GradientStop{
			{Color: g.From, OffsetPercent: 0},
			{Color: g.To, OffsetPercent: 100},
		},
	}
}

// migrateV1 converts a v1 blob into the current document shape. Fields that
// are missing from the blob take their defaults.
func migrateV1(handle string, raw []byte) (models.ProfileDocument, error) {
	v1 := documentV1{Appearance: appearanceV1{Appearance: models.DefaultAppearance()}}
	if err := json.Unmarshal(raw, &v1); err != nil {
		return models.ProfileDocument{}, fmt.Errorf("decode v1 profile %s: %w", handle, err)
	}

	a := v1.Appearance.Appearance
	if v1.Appearance.BgGradient.From != "" || v1.Appearance.BgGradient.To != "" {
		a.BgGradient = v1.Appearance.BgGradient.upgrade()
	}

	return models.ProfileDocument{
		Version:     models.ProfileSchemaVersion,
		Handle:      handle,
		DisplayName: v1.DisplayName,
		Bio:         v1.Bio,
		AvatarURL:   v1.AvatarURL,
		Appearance:  a,
		Links:       v1.Links,
		Socials:     v1.Socials,
	}, nil
}

func decodeDocument(handle string, raw []byte) (models.ProfileDocument, error) {
	doc := models.ProfileDocument{Appearance: models.DefaultAppearance()}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return models.ProfileDocument{}, fmt.Errorf("decode profile %s: %w", handle, err)
	}
	doc.Version = models.ProfileSchemaVersion
	doc.Handle = handle
	return doc, nil
}
