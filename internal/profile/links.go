package profile

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/mx-space/linkpage/internal/models"
)

// LinkPatch carries the fields to merge into an existing link. Nil fields are
// left as they are; a non-nil Schedule, Commerce or Widget replaces the whole
// nested value.
type LinkPatch struct {
	Title    *string          `json:"title"`
	Subtitle *string          `json:"subtitle"`
	URL      *string          `json:"url"`
	Icon     *string          `json:"icon"`
	Type     *models.LinkType `json:"type"`
	Featured *bool            `json:"featured"`
	Active   *bool            `json:"active"`
	Schedule *models.Schedule `json:"schedule"`
	Commerce *models.Commerce `json:"commerce"`
	Widget   *models.Widget   `json:"widget"`
}

func (p LinkPatch) apply(l models.Link) models.Link {
	if p.Title != nil {
		l.Title = *p.Title
	}
	if p.Subtitle != nil {
		l.Subtitle = *p.Subtitle
	}
	if p.URL != nil {
		l.URL = *p.URL
	}
	if p.Icon != nil {
		l.Icon = *p.Icon
	}
	if p.Type != nil {
		l.Type = *p.Type
	}
	if p.Featured != nil {
		l.Featured = *p.Featured
	}
	if p.Active != nil {
		l.Active = *p.Active
	}
	if p.Schedule != nil {
		s := *p.Schedule
		l.Schedule = &s
	}
	if p.Commerce != nil {
		c := *p.Commerce
		l.Commerce = &c
	}
	if p.Widget != nil {
		w := *p.Widget
		l.Widget = &w
	}
	return l
}

// LinkCollection is the ordered set of links of one profile. It is not safe
// for concurrent use on its own; Profile serializes access to it.
type LinkCollection struct {
	items []models.Link
	newID func() string
}

func NewLinkCollection(links []models.Link) *LinkCollection {
	return &LinkCollection{items: models.CloneLinks(links), newID: uuid.NewString}
}

func (c *LinkCollection) Len() int { return len(c.items) }

// All returns a copy of the links in display order.
func (c *LinkCollection) All() []models.Link {
	out := models.CloneLinks(c.items)
	if out == nil {
		out = []models.Link{}
	}
	return out
}

func (c *LinkCollection) IDs() []string {
	ids := make([]string, len(c.items))
	for i, l := range c.items {
		ids[i] = l.ID
	}
	return ids
}

func (c *LinkCollection) Get(id string) (models.Link, bool) {
	if i := c.indexOf(id); i >= 0 {
		return c.items[i].Clone(), true
	}
	return models.Link{}, false
}

// Add appends draft under a freshly generated id and returns the stored link.
// Any id on the draft is discarded.
func (c *LinkCollection) Add(draft models.Link) models.Link {
	l := draft.Clone()
	l.ID = c.uniqueID()
	c.items = append(c.items, l)
	return l.Clone()
}

func (c *LinkCollection) Update(id string, patch LinkPatch) (models.Link, error) {
	i := c.indexOf(id)
	if i < 0 {
		return models.Link{}, fmt.Errorf("update %q: %w", id, ErrLinkNotFound)
	}
	c.items[i] = patch.apply(c.items[i])
	return c.items[i].Clone(), nil
}

func (c *LinkCollection) Delete(id string) error {
	i := c.indexOf(id)
	if i < 0 {
		return fmt.Errorf("delete %q: %w", id, ErrLinkNotFound)
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	return nil
}

// Reorder rearranges the collection to follow ids, which must name every
// current link exactly once.
func (c *LinkCollection) Reorder(ids []string) error {
	if len(ids) != len(c.items) {
		return fmt.Errorf("reorder: got %d ids for %d links: %w", len(ids), len(c.items), ErrInvariantViolation)
	}
	byID := make(map[string]models.Link, len(c.items))
	for _, l := range c.items {
		byID[l.ID] = l
	}
	next := make([]models.Link, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return fmt.Errorf("reorder: duplicate id %q: %w", id, ErrInvariantViolation)
		}
		l, ok := byID[id]
		if !ok {
			return fmt.Errorf("reorder: unknown id %q: %w", id, ErrInvariantViolation)
		}
		seen[id] = struct{}{}
		next = append(next, l)
	}
	c.items = next
	return nil
}

func (c *LinkCollection) indexOf(id string) int {
	for i, l := range c.items {
		if l.ID == id {
			return i
		}
	}
	return -1
}

func (c *LinkCollection) uniqueID() string {
	for {
		id := c.newID()
		if c.indexOf(id) < 0 {
			return id
		}
	}
}
