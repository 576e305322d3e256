package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mx-space/linkpage/internal/compositor"
	"github.com/mx-space/linkpage/internal/models"
	"github.com/mx-space/linkpage/internal/pkg/metrics"
	coreprofile "github.com/mx-space/linkpage/internal/profile"
	"github.com/mx-space/linkpage/internal/registry"
	"github.com/mx-space/linkpage/internal/store"
	"go.uber.org/zap"
)

var (
	ErrInvalidHandle   = errors.New("invalid handle")
	ErrProfileNotFound = errors.New("profile not found")
	ErrThemeNotFound   = errors.New("theme not found")
	ErrProRequired     = errors.New("pro plan required")
)

// PlanSource reports the plan of a handle.
type PlanSource interface {
	Get(ctx context.Context, handle string) (models.Account, error)
}

// Service owns the live profile aggregates. Each handle is loaded once and
// kept in memory; every successful mutation is written back to the store
// before observers hear about it.
type Service struct {
	store     store.Store
	accounts  PlanSource
	keyPrefix string
	log       *zap.Logger
	metrics   *metrics.Metrics
	now       func() time.Time
	observers []coreprofile.Observer

	mu      sync.Mutex
	entries map[string]*entry
}

type entry struct {
	ready   chan struct{}
	err     error
	writeMu sync.Mutex
	current atomic.Pointer[coreprofile.Profile]
}

func NewService(st store.Store, accounts PlanSource, keyPrefix string, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		store:     st,
		accounts:  accounts,
		keyPrefix: keyPrefix,
		log:       log,
		now:       time.Now,
		entries:   map[string]*entry{},
	}
}

// SetMetrics enables store error and render counters.
func (s *Service) SetMetrics(m *metrics.Metrics) { s.metrics = m }

// Observe registers fn for committed mutations. Call before serving.
func (s *Service) Observe(fn coreprofile.Observer) {
	s.observers = append(s.observers, fn)
}

// get returns the live entry for handle, loading it on first use. With create
// set a handle that has never been stored starts from defaults.
func (s *Service) get(ctx context.Context, raw string, create bool) (*entry, error) {
	handle, ok := models.NormalizeHandle(raw)
	if !ok {
		return nil, ErrInvalidHandle
	}

	for {
		s.mu.Lock()
		e, found := s.entries[handle]
		if !found {
			e = &entry{ready: make(chan struct{})}
			s.entries[handle] = e
			s.mu.Unlock()

			p, err := s.load(ctx, handle, create)
			if err != nil {
				s.mu.Lock()
				delete(s.entries, handle)
				s.mu.Unlock()
				e.err = err
			} else {
				e.current.Store(p)
			}
			close(e.ready)
		} else {
			s.mu.Unlock()
		}

		select {
		case <-e.ready:
		case <-ctx.Done():
			return nil, ctx.Err()
		}

		// A read-only load may have raced an editor that is allowed to create.
		if create && errors.Is(e.err, ErrProfileNotFound) {
			continue
		}
		if e.err != nil {
			return nil, e.err
		}
		return e, nil
	}
}

func (s *Service) load(ctx context.Context, handle string, create bool) (*coreprofile.Profile, error) {
	raw, err := s.store.Load(ctx, store.ProfileKey(s.keyPrefix, handle, models.ProfileSchemaVersion))
	if err == nil {
		doc, err := decodeDocument(handle, raw)
		if err != nil {
			return nil, err
		}
		return coreprofile.FromDocument(doc), nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		s.metrics.RecordStoreError("load")
		return nil, fmt.Errorf("load profile %s: %w", handle, err)
	}

	raw, err = s.store.Load(ctx, store.ProfileKey(s.keyPrefix, handle, 1))
	switch {
	case err == nil:
		doc, err := migrateV1(handle, raw)
		if err != nil {
			return nil, err
		}
		p := coreprofile.FromDocument(doc)
		if err := s.save(ctx, p.Document()); err != nil {
			return nil, err
		}
		s.log.Info("migrated profile", zap.String("handle", handle), zap.Int("from", 1), zap.Int("to", models.ProfileSchemaVersion))
		return p, nil
	case !errors.Is(err, store.ErrNotFound):
		s.metrics.RecordStoreError("load")
		return nil, fmt.Errorf("load profile %s: %w", handle, err)
	case !create:
		return nil, ErrProfileNotFound
	}

	p := coreprofile.New(handle)
	if err := s.save(ctx, p.Document()); err != nil {
		return nil, err
	}
	s.log.Info("created profile", zap.String("handle", handle))
	return p, nil
}

func (s *Service) save(ctx context.Context, doc models.ProfileDocument) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	if err := s.store.Save(ctx, store.ProfileKey(s.keyPrefix, doc.Handle, models.ProfileSchemaVersion), data); err != nil {
		s.metrics.RecordStoreError("save")
		return fmt.Errorf("save profile %s: %w", doc.Handle, err)
	}
	return nil
}

// mutate runs fn against the live aggregate of handle and persists the
// result. If the write fails the aggregate is rolled back to its previous
// state and no events are delivered.
func (s *Service) mutate(ctx context.Context, handle string, fn func(p *coreprofile.Profile) error) error {
	e, err := s.get(ctx, handle, true)
	if err != nil {
		return err
	}

	e.writeMu.Lock()
	defer e.writeMu.Unlock()

	p := e.current.Load()
	before := p.Document()

	var events []coreprofile.Event
	unsubscribe := p.Subscribe(func(ev coreprofile.Event) { events = append(events, ev) })
	err = fn(p)
	unsubscribe()
	if err != nil {
		return err
	}
	if len(events) == 0 {
		return nil
	}

	if err := s.save(ctx, p.Document()); err != nil {
		s.log.Error("persist profile", zap.String("handle", p.Handle()), zap.Error(err))
		e.current.Store(coreprofile.FromDocument(before))
		return err
	}

	for _, ev := range events {
		for _, obs := range s.observers {
			obs(ev)
		}
	}
	return nil
}

func (s *Service) isPro(ctx context.Context, handle string) (bool, error) {
	if s.accounts == nil {
		return false, nil
	}
	acc, err := s.accounts.Get(ctx, handle)
	if err != nil {
		return false, err
	}
	return acc.IsPro(), nil
}

func (s *Service) requirePro(ctx context.Context, handle, feature string) error {
	pro, err := s.isPro(ctx, handle)
	if err != nil {
		return err
	}
	if !pro {
		return fmt.Errorf("%w: %s", ErrProRequired, feature)
	}
	return nil
}

// Snapshot returns the full persisted form of a profile, creating it on first
// access.
func (s *Service) Snapshot(ctx context.Context, handle string) (models.ProfileDocument, error) {
	e, err := s.get(ctx, handle, true)
	if err != nil {
		return models.ProfileDocument{}, err
	}
	return e.current.Load().Document(), nil
}

// Page composes the public page of an existing profile at the current time.
func (s *Service) Page(ctx context.Context, handle string) (compositor.Descriptor, error) {
	return s.render(ctx, handle, s.now(), false, "page")
}

// Preview composes the page as it would look at the given instant.
func (s *Service) Preview(ctx context.Context, handle string, at time.Time) (compositor.Descriptor, error) {
	return s.render(ctx, handle, at, true, "preview")
}

func (s *Service) render(ctx context.Context, handle string, at time.Time, create bool, surface string) (compositor.Descriptor, error) {
	e, err := s.get(ctx, handle, create)
	if err != nil {
		return compositor.Descriptor{}, err
	}
	doc := e.current.Load().Document()

	pro, err := s.isPro(ctx, doc.Handle)
	if err != nil {
		return compositor.Descriptor{}, err
	}

	d := compositor.Compose(compositor.InputFromDocument(doc), at)
	if !pro {
		d.ShowBranding = true
	}
	s.metrics.RecordRender(surface)
	return d, nil
}

func (s *Service) UpdateDetails(ctx context.Context, handle string, patch coreprofile.DetailsPatch) (coreprofile.Details, error) {
	var out coreprofile.Details
	err := s.mutate(ctx, handle, func(p *coreprofile.Profile) error {
		out = p.UpdateDetails(patch)
		return nil
	})
	return out, err
}

func (s *Service) UpdateAppearance(ctx context.Context, handle string, patch coreprofile.AppearancePatch) (models.Appearance, error) {
	if patch.Layout != nil && patch.Layout.HideBranding {
		if err := s.requirePro(ctx, handle, "hide branding"); err != nil {
			return models.Appearance{}, err
		}
	}

	var out models.Appearance
	err := s.mutate(ctx, handle, func(p *coreprofile.Profile) error {
		var err error
		out, err = p.UpdateAppearance(patch)
		return err
	})
	return out, err
}

func (s *Service) ReplaceColors(ctx context.Context, handle string, colors models.Palette) (models.Appearance, error) {
	return s.UpdateAppearance(ctx, handle, coreprofile.AppearancePatch{Colors: &colors})
}

func (s *Service) ReplaceLayout(ctx context.Context, handle string, layout models.Layout) (models.Appearance, error) {
	return s.UpdateAppearance(ctx, handle, coreprofile.AppearancePatch{Layout: &layout})
}

func (s *Service) ReplaceGradient(ctx context.Context, handle string, gradient models.Gradient) (models.Appearance, error) {
	return s.UpdateAppearance(ctx, handle, coreprofile.AppearancePatch{BgGradient: &gradient})
}

// ApplyTheme replaces the appearance with a catalog preset. Pro presets need
// a pro plan.
func (s *Service) ApplyTheme(ctx context.Context, handle, themeID string) (models.Appearance, error) {
	preset, ok := registry.Theme(themeID)
	if !ok {
		return models.Appearance{}, fmt.Errorf("%w: %q", ErrThemeNotFound, themeID)
	}
	if preset.IsPro {
		if err := s.requirePro(ctx, handle, "theme "+preset.ID); err != nil {
			return models.Appearance{}, err
		}
	}

	var out models.Appearance
	err := s.mutate(ctx, handle, func(p *coreprofile.Profile) error {
		out = p.ApplyTheme(preset)
		return nil
	})
	return out, err
}

func (s *Service) ResetAppearance(ctx context.Context, handle string) (models.Appearance, error) {
	var out models.Appearance
	err := s.mutate(ctx, handle, func(p *coreprofile.Profile) error {
		out = p.ResetAppearance()
		return nil
	})
	return out, err
}

func (s *Service) ReplaceSocials(ctx context.Context, handle string, socials models.Socials) (models.Socials, error) {
	var out models.Socials
	err := s.mutate(ctx, handle, func(p *coreprofile.Profile) error {
		out = p.ReplaceSocials(socials)
		return nil
	})
	return out, err
}

func (s *Service) AddLink(ctx context.Context, handle string, draft models.Link) (models.Link, error) {
	var out models.Link
	err := s.mutate(ctx, handle, func(p *coreprofile.Profile) error {
		out = p.AddLink(draft)
		return nil
	})
	return out, err
}

func (s *Service) UpdateLink(ctx context.Context, handle, id string, patch coreprofile.LinkPatch) (models.Link, error) {
	var out models.Link
	err := s.mutate(ctx, handle, func(p *coreprofile.Profile) error {
		var err error
		out, err = p.UpdateLink(id, patch)
		return err
	})
	return out, err
}

func (s *Service) DeleteLink(ctx context.Context, handle, id string) error {
	return s.mutate(ctx, handle, func(p *coreprofile.Profile) error {
		return p.DeleteLink(id)
	})
}

func (s *Service) ReorderLinks(ctx context.Context, handle string, ids []string) ([]models.Link, error) {
	var out []models.Link
	err := s.mutate(ctx, handle, func(p *coreprofile.Profile) error {
		if err := p.ReorderLinks(ids); err != nil {
			return err
		}
		out = p.Links()
		return nil
	})
	return out, err
}
