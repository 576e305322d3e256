package account

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/mx-space/linkpage/internal/models"
	"github.com/mx-space/linkpage/internal/store"
	"go.uber.org/zap"
)

var (
	ErrInvalidHandle = errors.New("invalid handle")
	ErrInvalidPlan   = errors.New("invalid plan")
)

// Service reads and writes per-handle plan state. Accounts are cached after
// the first load; a missing account reads as the free plan.
type Service struct {
	store     store.Store
	keyPrefix string
	log       *zap.Logger

	mu    sync.RWMutex
	cache map[string]models.Account
}

func NewService(st store.Store, keyPrefix string, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: st, keyPrefix: keyPrefix, log: log, cache: map[string]models.Account{}}
}

func (s *Service) Get(ctx context.Context, handle string) (models.Account, error) {
	h, ok := models.NormalizeHandle(handle)
	if !ok {
		return models.Account{}, ErrInvalidHandle
	}

	s.mu.RLock()
	acc, cached := s.cache[h]
	s.mu.RUnlock()
	if cached {
		return acc, nil
	}

	acc, err := s.load(ctx, h)
	if err != nil {
		return models.Account{}, err
	}
	s.mu.Lock()
	s.cache[h] = acc
	s.mu.Unlock()
	return acc, nil
}

func (s *Service) load(ctx context.Context, handle string) (models.Account, error) {
	raw, err := s.store.Load(ctx, store.AccountKey(s.keyPrefix, handle, models.AccountSchemaVersion))
	if err == nil {
		return decodeAccount(handle, raw)
	}
	if !errors.Is(err, store.ErrNotFound) {
		return models.Account{}, fmt.Errorf("load account %s: %w", handle, err)
	}

	// v1 stored the same shape without a version field.
	raw, err = s.store.Load(ctx, store.AccountKey(s.keyPrefix, handle, 1))
	switch {
	case errors.Is(err, store.ErrNotFound):
		return models.Account{Version: models.AccountSchemaVersion, Handle: handle, Plan: models.PlanFree}, nil
	case err != nil:
		return models.Account{}, fmt.Errorf("load account %s: %w", handle, err)
	}

	acc, err := decodeAccount(handle, raw)
	if err != nil {
		return models.Account{}, err
	}
	if err := s.save(ctx, acc); err != nil {
		return models.Account{}, err
	}
	s.log.Info("migrated account", zap.String("handle", handle), zap.String("plan", string(acc.Plan)))
	return acc, nil
}

func decodeAccount(handle string, raw []byte) (models.Account, error) {
	var acc models.Account
	if err := json.Unmarshal(raw, &acc); err != nil {
		return models.Account{}, fmt.Errorf("decode account %s: %w", handle, err)
	}
	acc.Version = models.AccountSchemaVersion
	acc.Handle = handle
	if !acc.Plan.Valid() {
		acc.Plan = models.PlanFree
	}
	return acc, nil
}

func (s *Service) save(ctx context.Context, acc models.Account) error {
	data, err := json.Marshal(acc)
	if err != nil {
		return err
	}
	return s.store.Save(ctx, store.AccountKey(s.keyPrefix, acc.Handle, models.AccountSchemaVersion), data)
}

// SetPlan persists the plan for handle. The cache is only updated once the
// write succeeded.
func (s *Service) SetPlan(ctx context.Context, handle string, plan models.Plan) (models.Account, error) {
	h, ok := models.NormalizeHandle(handle)
	if !ok {
		return models.Account{}, ErrInvalidHandle
	}
	if !plan.Valid() {
		return models.Account{}, fmt.Errorf("%w: %q", ErrInvalidPlan, plan)
	}

	acc := models.Account{Version: models.AccountSchemaVersion, Handle: h, Plan: plan}
	if err := s.save(ctx, acc); err != nil {
		return models.Account{}, fmt.Errorf("save account %s: %w", h, err)
	}
	s.mu.Lock()
	s.cache[h] = acc
	s.mu.Unlock()
	s.log.Info("plan updated", zap.String("handle", h), zap.String("plan", string(plan)))
	return acc, nil
}
