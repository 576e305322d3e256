package models

type LinkType string

const (
	LinkStandard LinkType = "standard"
	LinkCommerce LinkType = "commerce"
	LinkWidget   LinkType = "widget"
)

// Schedule restricts a link to a time window. Timestamps are kept as the
// caller sent them; unparsable values are handled by the visibility rules.
type Schedule struct {
	Enabled bool   `json:"enabled"`
	StartAt string `json:"startAt,omitempty"`
	EndAt   string `json:"endAt,omitempty"`
}

type Commerce struct {
	Price      float64 `json:"price"`
	Currency   string  `json:"currency"`
	Provider   string  `json:"provider"`
	ButtonText string  `json:"buttonText"`
}

type Widget struct {
	EmbedURL string `json:"embedUrl"`
}

// Link is one entry of a profile page. Display order is the position in the
// owning collection.
type Link struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Subtitle string    `json:"subtitle"`
	URL      string    `json:"url"`
	Icon     string    `json:"icon"`
	Type     LinkType  `json:"type"`
	Featured bool      `json:"featured"`
	Active   bool      `json:"active"`
	Schedule *Schedule `json:"schedule,omitempty"`
	Commerce *Commerce `json:"commerce,omitempty"`
	Widget   *Widget   `json:"widget,omitempty"`
}

// Clone returns a copy that shares no pointers with l.
func (l Link) Clone() Link {
	out := l
	if l.Schedule != nil {
		s := *l.Schedule
		out.Schedule = &s
	}
	if l.Commerce != nil {
		c := *l.Commerce
		out.Commerce = &c
	}
	if l.Widget != nil {
		w := *l.Widget
		out.Widget = &w
	}
	return out
}

func CloneLinks(links []Link) []Link {
	if links == nil {
		return nil
	}
	out := make([]Link, len(links))
	for i, l := range links {
		out[i] = l.Clone()
	}
	return out
}
