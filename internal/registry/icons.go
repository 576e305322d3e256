package registry

import "sort"

type Icon struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// Platform is a social network known to the socials row. URLTemplate holds
// one %s for the handle.
type Platform struct {
	Key         string `json:"key"`
	Label       string `json:"label"`
	Icon        string `json:"icon"`
	URLTemplate string `json:"urlTemplate"`
}

// Icon keys used by the compositor badges.
const (
	IconLink        = "link"
	IconShoppingBag = "shopping-bag"
	IconPlay        = "play"
)

var icons = []Icon{
	{Key: IconLink, Label: "Link"},
	{Key: IconShoppingBag, Label: "Shopping bag"},
	{Key: IconPlay, Label: "Play"},
	{Key: "globe", Label: "Website"},
	{Key: "mail", Label: "Email"},
	{Key: "calendar", Label: "Calendar"},
	{Key: "music", Label: "Music"},
	{Key: "heart", Label: "Heart"},
	{Key: "star", Label: "Star"},
	{Key: "download", Label: "Download"},
	{Key: "instagram", Label: "Instagram"},
	{Key: "tiktok", Label: "TikTok"},
	{Key: "youtube", Label: "YouTube"},
	{Key: "x", Label: "X"},
	{Key: "github", Label: "GitHub"},
	{Key: "linkedin", Label: "LinkedIn"},
	{Key: "spotify", Label: "Spotify"},
	{Key: "twitch", Label: "Twitch"},
	{Key: "facebook", Label: "Facebook"},
	{Key: "threads", Label: "Threads"},
}

var platforms = []Platform{
	{Key: "instagram", Label: "Instagram", Icon: "instagram", URLTemplate: "https://instagram.com/%s"},
	{Key: "tiktok", Label: "TikTok", Icon: "tiktok", URLTemplate: "https://www.tiktok.com/@%s"},
	{Key: "youtube", Label: "YouTube", Icon: "youtube", URLTemplate: "https://youtube.com/@%s"},
	{Key: "x", Label: "X", Icon: "x", URLTemplate: "https://x.com/%s"},
	{Key: "threads", Label: "Threads", Icon: "threads", URLTemplate: "https://www.threads.net/@%s"},
	{Key: "github", Label: "GitHub", Icon: "github", URLTemplate: "https://github.com/%s"},
	{Key: "linkedin", Label: "LinkedIn", Icon: "linkedin", URLTemplate: "https://www.linkedin.com/in/%s"},
	{Key: "spotify", Label: "Spotify", Icon: "spotify", URLTemplate: "https://open.spotify.com/user/%s"},
	{Key: "twitch", Label: "Twitch", Icon: "twitch", URLTemplate: "https://twitch.tv/%s"},
	{Key: "facebook", Label: "Facebook", Icon: "facebook", URLTemplate: "https://facebook.com/%s"},
	{Key: "email", Label: "Email", Icon: "mail", URLTemplate: "mailto:%s"},
	{Key: "website", Label: "Website", Icon: "globe", URLTemplate: "https://%s"},
}

func Icons() []Icon {
	out := make([]Icon, len(icons))
	copy(out, icons)
	return out
}

// ResolveIcon returns the icon for key, or the first catalog icon.
func ResolveIcon(key string) Icon {
	for _, ic := range icons {
		if ic.Key == key {
			return ic
		}
	}
	return icons[0]
}

func Platforms() []Platform {
	out := make([]Platform, len(platforms))
	copy(out, platforms)
	return out
}

// LookupPlatform reports the platform for key and its position in the catalog.
func LookupPlatform(key string) (Platform, int, bool) {
	for i, p := range platforms {
		if p.Key == key {
			return p, i, true
		}
	}
	return Platform{}, -1, false
}

// SortPlatformKeys orders keys by catalog position. Unknown keys follow,
// alphabetically.
func SortPlatformKeys(keys []string) {
	sort.SliceStable(keys, func(i, j int) bool {
		_, ri, oki := LookupPlatform(keys[i])
		_, rj, okj := LookupPlatform(keys[j])
		switch {
		case oki && okj:
			return ri < rj
		case oki != okj:
			return oki
		default:
			return keys[i] < keys[j]
		}
	})
}
