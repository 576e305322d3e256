package profile

import (
	"testing"
	"time"

	"github.com/mx-space/linkpage/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestIsVisible(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		link models.Link
		want bool
	}{
		{
			name: "inactive without schedule",
			link: models.Link{Active: false},
			want: false,
		},
		{
			name: "inactive with open window",
			link: models.Link{Active: false, Schedule: &models.Schedule{Enabled: true, StartAt: "2000-01-01", EndAt: "2099-01-01"}},
			want: false,
		},
		{
			name: "active without schedule",
			link: models.Link{Active: true},
			want: true,
		},
		{
			name: "disabled schedule is ignored",
			link: models.Link{Active: true, Schedule: &models.Schedule{Enabled: false, StartAt: "2099-01-01"}},
			want: true,
		},
		{
			name: "start in the future",
			link: models.Link{Active: true, Schedule: &models.Schedule{Enabled: true, StartAt: "2099-01-01"}},
			want: false,
		},
		{
			name: "end in the past",
			link: models.Link{Active: true, Schedule: &models.Schedule{Enabled: true, EndAt: "2000-01-01"}},
			want: false,
		},
		{
			name: "inside window",
			link: models.Link{Active: true, Schedule: &models.Schedule{Enabled: true, StartAt: "2000-01-01", EndAt: "2099-01-01"}},
			want: true,
		},
		{
			name: "unparsable start hides",
			link: models.Link{Active: true, Schedule: &models.Schedule{Enabled: true, StartAt: "not-a-date"}},
			want: false,
		},
		{
			name: "unparsable end is ignored",
			link: models.Link{Active: true, Schedule: &models.Schedule{Enabled: true, EndAt: "soon"}},
			want: true,
		},
		{
			name: "enabled schedule without bounds",
			link: models.Link{Active: true, Schedule: &models.Schedule{Enabled: true}},
			want: true,
		},
		{
			name: "rfc3339 start exactly now",
			link: models.Link{Active: true, Schedule: &models.Schedule{Enabled: true, StartAt: "2024-01-01T00:00:00Z"}},
			want: true,
		},
		{
			name: "rfc3339 with offset still in the future",
			link: models.Link{Active: true, Schedule: &models.Schedule{Enabled: true, StartAt: "2024-01-01T00:30:00-01:00"}},
			want: false,
		},
		{
			name: "local datetime end one minute ago",
			link: models.Link{Active: true, Schedule: &models.Schedule{Enabled: true, EndAt: "2023-12-31T23:59"}},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsVisible(tt.link, now))
		})
	}
}

func TestIsVisibleInactiveAlwaysHidden(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	schedules := []*models.Schedule{
		nil,
		{},
		{Enabled: true},
		{Enabled: true, StartAt: "garbage"},
		{Enabled: true, StartAt: "2000-01-01"},
		{Enabled: true, EndAt: "2099-12-31"},
		{Enabled: false, StartAt: "2000-01-01", EndAt: "2099-01-01"},
	}
	for _, s := range schedules {
		assert.False(t, IsVisible(models.Link{Active: false, Schedule: s}, now))
	}
}

func TestParseScheduleTime(t *testing.T) {
	got, ok := ParseScheduleTime(" 2024-03-05 ")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), got)

	_, ok = ParseScheduleTime("")
	assert.False(t, ok)

	_, ok = ParseScheduleTime("05/03/2024")
	assert.False(t, ok)
}

func TestVisibleLinksKeepsOrder(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	links := []models.Link{
		{ID: "a", Active: true},
		{ID: "b", Active: false},
		{ID: "c", Active: true, Schedule: &models.Schedule{Enabled: true, StartAt: "2099-01-01"}},
		{ID: "d", Active: true},
	}

	got := VisibleLinks(links, now)
	ids := make([]string, 0, len(got))
	for _, l := range got {
		ids = append(ids, l.ID)
	}
	assert.Equal(t, []string{"a", "d"}, ids)
}
