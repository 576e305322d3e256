package profile

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"testing"

	"github.com/mx-space/linkpage/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkCollectionAddRoundTrip(t *testing.T) {
	c := NewLinkCollection(nil)
	draft := models.Link{
		Title:    "Shop",
		Subtitle: "new drop",
		URL:      "https://shop.example.com",
		Icon:     "bag",
		Type:     models.LinkCommerce,
		Featured: true,
		Active:   true,
		Schedule: &models.Schedule{Enabled: true, StartAt: "2024-01-01"},
		Commerce: &models.Commerce{Price: 19.5, Currency: "USD", Provider: "stripe", ButtonText: "Buy"},
	}

	created := c.Add(draft)
	require.NotEmpty(t, created.ID)

	got, ok := c.Get(created.ID)
	require.True(t, ok)

	want := draft.Clone()
	want.ID = created.ID
	assert.Equal(t, want, got)
}

func TestLinkCollectionAddIgnoresDraftID(t *testing.T) {
	c := NewLinkCollection([]models.Link{{ID: "taken", Title: "existing"}})
	created := c.Add(models.Link{ID: "taken", Title: "new"})
	assert.NotEqual(t, "taken", created.ID)
	assert.Equal(t, 2, c.Len())
}

func TestLinkCollectionAddRetriesOnCollision(t *testing.T) {
	c := NewLinkCollection([]models.Link{{ID: "dup"}})
	ids := []string{"dup", "dup", "fresh"}
	c.newID = func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}

	created := c.Add(models.Link{Title: "x"})
	assert.Equal(t, "fresh", created.ID)
}

func TestLinkCollectionAddKeepsDraftVerbatim(t *testing.T) {
	c := NewLinkCollection(nil)
	draft := models.Link{Title: "untyped"}
	got := c.Add(draft)
	draft.ID = got.ID
	assert.Equal(t, draft, got)
}

func TestLinkCollectionUpdate(t *testing.T) {
	c := NewLinkCollection(nil)
	l := c.Add(models.Link{Title: "old", URL: "https://a.example", Active: true})

	title := "new"
	active := false
	updated, err := c.Update(l.ID, LinkPatch{Title: &title, Active: &active, Widget: &models.Widget{EmbedURL: "https://embed.example"}})
	require.NoError(t, err)
	assert.Equal(t, "new", updated.Title)
	assert.Equal(t, "https://a.example", updated.URL)
	assert.False(t, updated.Active)
	require.NotNil(t, updated.Widget)
	assert.Equal(t, "https://embed.example", updated.Widget.EmbedURL)

	_, err = c.Update("missing", LinkPatch{Title: &title})
	assert.ErrorIs(t, err, ErrLinkNotFound)
}

func TestLinkCollectionDelete(t *testing.T) {
	c := NewLinkCollection(nil)
	a := c.Add(models.Link{Title: "a"})
	b := c.Add(models.Link{Title: "b"})

	require.NoError(t, c.Delete(a.ID))
	assert.Equal(t, []string{b.ID}, c.IDs())

	err := c.Delete(a.ID)
	assert.ErrorIs(t, err, ErrLinkNotFound)
	assert.Equal(t, []string{b.ID}, c.IDs())
}

func TestLinkCollectionReorder(t *testing.T) {
	c := NewLinkCollection(nil)
	a := c.Add(models.Link{Title: "a"})
	b := c.Add(models.Link{Title: "b"})
	d := c.Add(models.Link{Title: "d"})

	require.NoError(t, c.Reorder([]string{d.ID, a.ID, b.ID}))
	assert.Equal(t, []string{d.ID, a.ID, b.ID}, c.IDs())

	tests := []struct {
		name string
		ids  []string
	}{
		{"missing id", []string{d.ID, a.ID}},
		{"extra id", []string{d.ID, a.ID, b.ID, "ghost"}},
		{"duplicate id", []string{d.ID, d.ID, a.ID}},
		{"unknown id", []string{d.ID, a.ID, "ghost"}},
		{"empty", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.Reorder(tt.ids)
			assert.ErrorIs(t, err, ErrInvariantViolation)
			assert.Equal(t, []string{d.ID, a.ID, b.ID}, c.IDs())
		})
	}
}

func TestLinkCollectionReorderKeepsIdentity(t *testing.T) {
	c := NewLinkCollection(nil)
	a := c.Add(models.Link{Title: "a", URL: "https://a.example"})
	b := c.Add(models.Link{Title: "b", URL: "https://b.example"})

	require.NoError(t, c.Reorder([]string{b.ID, a.ID}))
	got, ok := c.Get(a.ID)
	require.True(t, ok)
	assert.Equal(t, a, got)
}

func TestLinkCollectionMembershipUnderRandomOps(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	c := NewLinkCollection(nil)
	expected := map[string]struct{}{}

	for step := 0; step < 500; step++ {
		switch op := rng.IntN(3); {
		case op == 0 || len(expected) == 0:
			l := c.Add(models.Link{Title: fmt.Sprintf("link-%d", step)})
			expected[l.ID] = struct{}{}
		case op == 1:
			ids := c.IDs()
			victim := ids[rng.IntN(len(ids))]
			require.NoError(t, c.Delete(victim))
			delete(expected, victim)
		default:
			ids := c.IDs()
			rng.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
			require.NoError(t, c.Reorder(ids))
			assert.Equal(t, ids, c.IDs())
		}
	}

	got := c.IDs()
	want := make([]string, 0, len(expected))
	for id := range expected {
		want = append(want, id)
	}
	sort.Strings(got)
	sort.Strings(want)
	assert.Equal(t, want, got)
}

func TestLinkCollectionAllIsACopy(t *testing.T) {
	c := NewLinkCollection(nil)
	l := c.Add(models.Link{Title: "a", Schedule: &models.Schedule{Enabled: true}})

	all := c.All()
	all[0].Title = "mutated"
	all[0].Schedule.Enabled = false

	got, _ := c.Get(l.ID)
	assert.Equal(t, "a", got.Title)
	assert.True(t, got.Schedule.Enabled)
}
