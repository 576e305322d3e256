package profile

import (
	"strings"
	"time"

	"github.com/mx-space/linkpage/internal/models"
)

var scheduleLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseScheduleTime parses a schedule timestamp. Layouts without a zone are
// read as UTC.
func ParseScheduleTime(raw string) (time.Time, bool) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return time.Time{}, false
	}
	for _, layout := range scheduleLayouts {
		if t, err := time.ParseInLocation(layout, v, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// IsVisible reports whether link should be shown at now.
//
// An unparsable startAt hides the link; an unparsable endAt is ignored.
func IsVisible(link models.Link, now time.Time) bool {
	if !link.Active {
		return false
	}
	s := link.Schedule
	if s == nil || !s.Enabled {
		return true
	}
	if strings.TrimSpace(s.StartAt) != "" {
		start, ok := ParseScheduleTime(s.StartAt)
		if !ok || start.After(now) {
			return false
		}
	}
	if strings.TrimSpace(s.EndAt) != "" {
		if end, ok := ParseScheduleTime(s.EndAt); ok && end.Before(now) {
			return false
		}
	}
	return true
}

// VisibleLinks filters links through IsVisible and keeps their order.
func VisibleLinks(links []models.Link, now time.Time) []models.Link {
	out := make([]models.Link, 0, len(links))
	for _, l := range links {
		if IsVisible(l, now) {
			out = append(out, l)
		}
	}
	return out
}
