package models

import (
	"regexp"
	"strings"
)

// ProfileSchemaVersion is the version of the persisted profile document.
const ProfileSchemaVersion = 2

// SocialPositionKey is reserved inside Socials and never rendered as a platform.
const SocialPositionKey = "position"

// Socials maps a platform key to a handle or URL. Empty values are inactive.
type Socials map[string]string

func (s Socials) Clone() Socials {
	if s == nil {
		return Socials{}
	}
	out := make(Socials, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// ProfileDocument is the persisted shape of a profile aggregate.
type ProfileDocument struct {
	Version     int        `json:"version"`
	Handle      string     `json:"handle"`
	DisplayName string     `json:"displayName"`
	Bio         string     `json:"bio"`
	AvatarURL   string     `json:"avatarUrl"`
	Appearance  Appearance `json:"appearance"`
	Links       []Link     `json:"links"`
	Socials     Socials    `json:"socials"`
}

// ThemePreset is a curated, complete appearance offered for one-shot application.
type ThemePreset struct {
	ID         string     `json:"id"         yaml:"id"`
	Name       string     `json:"name"       yaml:"name"`
	Category   string     `json:"category"   yaml:"category"`
	IsPro      bool       `json:"isPro"      yaml:"isPro"`
	Appearance Appearance `json:"appearance" yaml:"appearance"`
}

func (p ThemePreset) Clone() ThemePreset {
	out := p
	out.Appearance = p.Appearance.Clone()
	return out
}

var handlePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_.-]{0,63}$`)

// NormalizeHandle lower-cases and trims raw and reports whether the result is
// a usable profile handle.
func NormalizeHandle(raw string) (string, bool) {
	h := strings.ToLower(strings.TrimSpace(raw))
	return h, handlePattern.MatchString(h)
}
