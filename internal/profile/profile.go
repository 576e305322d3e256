package profile

import (
	"strings"
	"sync"
	"time"

	"github.com/mx-space/linkpage/internal/models"
)

// EventKind names the mutation that produced an Event.
type EventKind string

const (
	EventDetailsUpdated    EventKind = "details.updated"
	EventAppearanceUpdated EventKind = "appearance.updated"
	EventThemeApplied      EventKind = "appearance.theme_applied"
	EventAppearanceReset   EventKind = "appearance.reset"
	EventSocialsReplaced   EventKind = "socials.replaced"
	EventLinkAdded         EventKind = "link.added"
	EventLinkUpdated       EventKind = "link.updated"
	EventLinkDeleted       EventKind = "link.deleted"
	EventLinksReordered    EventKind = "links.reordered"
)

// Event is delivered to observers after a mutation has completed.
type Event struct {
	Handle   string                 `json:"handle"`
	Kind     EventKind              `json:"kind"`
	LinkID   string                 `json:"linkId,omitempty"`
	At       time.Time              `json:"at"`
	Document models.ProfileDocument `json:"-"`
}

// Observer receives events synchronously on the mutating goroutine.
type Observer func(Event)

// Details are the free text fields of a profile.
type Details struct {
	DisplayName string `json:"displayName"`
	Bio         string `json:"bio"`
	AvatarURL   string `json:"avatarUrl"`
}

type DetailsPatch struct {
	DisplayName *string `json:"displayName"`
	Bio         *string `json:"bio"`
	AvatarURL   *string `json:"avatarUrl"`
}

// Profile is the aggregate of one profile page: appearance, links, socials
// and text. Every mutation runs to completion under a single lock.
type Profile struct {
	mu         sync.RWMutex
	handle     string
	details    Details
	appearance models.Appearance
	links      *LinkCollection
	socials    models.Socials

	obsMu     sync.Mutex
	observers map[int]Observer
	nextObsID int

	now func() time.Time
}

// New creates a profile with default appearance and no links.
func New(handle string) *Profile {
	return &Profile{
		handle:     handle,
		appearance: models.DefaultAppearance(),
		links:      NewLinkCollection(nil),
		socials:    models.Socials{},
		observers:  map[int]Observer{},
		now:        time.Now,
	}
}

// FromDocument rebuilds a profile from its persisted form. The appearance is
// normalized but not validated, so stored values outside the enums survive a
// round trip.
func FromDocument(doc models.ProfileDocument) *Profile {
	p := New(doc.Handle)
	p.details = Details{DisplayName: doc.DisplayName, Bio: doc.Bio, AvatarURL: doc.AvatarURL}
	p.appearance = NormalizeAppearance(doc.Appearance)
	p.links = NewLinkCollection(doc.Links)
	p.socials = normalizeSocials(doc.Socials)
	return p
}

func (p *Profile) Handle() string { return p.handle }

// Document returns a deep copy of the current state in persisted form.
func (p *Profile) Document() models.ProfileDocument {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.documentLocked()
}

func (p *Profile) documentLocked() models.ProfileDocument {
	return models.ProfileDocument{
		Version:     models.ProfileSchemaVersion,
		Handle:      p.handle,
		DisplayName: p.details.DisplayName,
		Bio:         p.details.Bio,
		AvatarURL:   p.details.AvatarURL,
		Appearance:  p.appearance.Clone(),
		Links:       p.links.All(),
		Socials:     p.socials.Clone(),
	}
}

func (p *Profile) Details() Details {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.details
}

func (p *Profile) Appearance() models.Appearance {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.appearance.Clone()
}

func (p *Profile) Links() []models.Link {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.links.All()
}

func (p *Profile) Link(id string) (models.Link, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.links.Get(id)
}

func (p *Profile) Socials() models.Socials {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.socials.Clone()
}

// Subscribe registers fn and returns a function that removes it.
func (p *Profile) Subscribe(fn Observer) func() {
	p.obsMu.Lock()
	id := p.nextObsID
	p.nextObsID++
	p.observers[id] = fn
	p.obsMu.Unlock()

	return func() {
		p.obsMu.Lock()
		delete(p.observers, id)
		p.obsMu.Unlock()
	}
}

func (p *Profile) UpdateDetails(patch DetailsPatch) Details {
	var out Details
	_ = p.mutate(EventDetailsUpdated, func() (string, error) {
		if patch.DisplayName != nil {
			p.details.DisplayName = strings.TrimSpace(*patch.DisplayName)
		}
		if patch.Bio != nil {
			p.details.Bio = *patch.Bio
		}
		if patch.AvatarURL != nil {
			p.details.AvatarURL = strings.TrimSpace(*patch.AvatarURL)
		}
		out = p.details
		return "", nil
	})
	return out
}

// UpdateAppearance merges patch into the appearance. A patch that sets an
// enum outside its closed set is rejected and nothing changes. Fields the
// patch leaves alone are not re-checked, so a stored value from an older
// build does not block unrelated edits.
func (p *Profile) UpdateAppearance(patch AppearancePatch) (models.Appearance, error) {
	var out models.Appearance
	err := p.mutate(EventAppearanceUpdated, func() (string, error) {
		next := NormalizeAppearance(patch.apply(p.appearance))
		if err := validateAppearanceFields(next, patch.fields()); err != nil {
			return "", err
		}
		p.appearance = next
		out = next.Clone()
		return "", nil
	})
	return out, err
}

func (p *Profile) ReplaceColors(colors models.Palette) (models.Appearance, error) {
	return p.UpdateAppearance(AppearancePatch{Colors: &colors})
}

func (p *Profile) ReplaceLayout(layout models.Layout) (models.Appearance, error) {
	return p.UpdateAppearance(AppearancePatch{Layout: &layout})
}

func (p *Profile) ReplaceGradient(gradient models.Gradient) (models.Appearance, error) {
	return p.UpdateAppearance(AppearancePatch{BgGradient: &gradient})
}

// ApplyTheme replaces the whole appearance with the preset's snapshot,
// discarding every prior edit.
func (p *Profile) ApplyTheme(preset models.ThemePreset) models.Appearance {
	var out models.Appearance
	_ = p.mutate(EventThemeApplied, func() (string, error) {
		p.appearance = preset.Appearance.Clone()
		out = p.appearance.Clone()
		return "", nil
	})
	return out
}

func (p *Profile) ResetAppearance() models.Appearance {
	var out models.Appearance
	_ = p.mutate(EventAppearanceReset, func() (string, error) {
		p.appearance = models.DefaultAppearance()
		out = p.appearance.Clone()
		return "", nil
	})
	return out
}

// ReplaceSocials swaps the whole socials mapping.
func (p *Profile) ReplaceSocials(socials models.Socials) models.Socials {
	var out models.Socials
	_ = p.mutate(EventSocialsReplaced, func() (string, error) {
		p.socials = normalizeSocials(socials)
		out = p.socials.Clone()
		return "", nil
	})
	return out
}

func (p *Profile) AddLink(draft models.Link) models.Link {
	var out models.Link
	_ = p.mutate(EventLinkAdded, func() (string, error) {
		out = p.links.Add(draft)
		return out.ID, nil
	})
	return out
}

func (p *Profile) UpdateLink(id string, patch LinkPatch) (models.Link, error) {
	var out models.Link
	err := p.mutate(EventLinkUpdated, func() (string, error) {
		l, err := p.links.Update(id, patch)
		out = l
		return id, err
	})
	return out, err
}

func (p *Profile) DeleteLink(id string) error {
	return p.mutate(EventLinkDeleted, func() (string, error) {
		return id, p.links.Delete(id)
	})
}

func (p *Profile) ReorderLinks(ids []string) error {
	return p.mutate(EventLinksReordered, func() (string, error) {
		return "", p.links.Reorder(ids)
	})
}

// mutate runs fn under the write lock and, on success, notifies observers
// after the lock is released. fn returns the id of the link it touched, if any.
func (p *Profile) mutate(kind EventKind, fn func() (string, error)) error {
	p.mu.Lock()
	linkID, err := fn()
	if err != nil {
		p.mu.Unlock()
		return err
	}
	doc := p.documentLocked()
	p.mu.Unlock()

	p.notify(Event{Handle: p.handle, Kind: kind, LinkID: linkID, At: p.now(), Document: doc})
	return nil
}

func (p *Profile) notify(ev Event) {
	p.obsMu.Lock()
	observers := make([]Observer, 0, len(p.observers))
	for _, fn := range p.observers {
		observers = append(observers, fn)
	}
	p.obsMu.Unlock()

	for _, fn := range observers {
		fn(ev)
	}
}

func normalizeSocials(in models.Socials) models.Socials {
	out := make(models.Socials, len(in))
	for k, v := range in {
		key := strings.ToLower(strings.TrimSpace(k))
		if key == "" {
			continue
		}
		out[key] = strings.TrimSpace(v)
	}
	return out
}
