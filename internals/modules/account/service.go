package account

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
)

// Store is the document-store port the reconciler runs on. Every method maps
// to a single atomic statement; the reconciler itself never does a bare
// read-then-write for a mutation.
type Store interface {
	GetByEmail(ctx context.Context, email string) (*Account, error)
	List(ctx context.Context) ([]Account, error)
	MergeExisting(ctx context.Context, email string, patch Patch) (*Account, bool, error)
	InsertIfAbsent(ctx context.Context, email string, patch Patch) (*Account, bool, error)
	Upsert(ctx context.Context, email string, patch Patch) (*Account, error)
}

type Cache interface {
	GetAccount(ctx context.Context, email string) ([]byte, error)
	SetAccount(ctx context.Context, email string, data []byte, ttl time.Duration) error
	DelAccount(ctx context.Context, email string) error
}

type Notifier interface {
	AccountRegistered(ctx context.Context, acct Account) error
	UpgradeRequested(ctx context.Context, acct Account) error
	RoleAssigned(ctx context.Context, acct Account) error
}

type Service struct {
	store    Store
	cache    Cache
	notifier Notifier
	cacheTTL time.Duration
	logger   *zerolog.Logger
}

func NewService(store Store, cache Cache, notifier Notifier, cacheTTL time.Duration, logger *zerolog.Logger) *Service {
	return &Service{
		store:    store,
		cache:    cache,
		notifier: notifier,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// RegisterOrRequest reconciles one self-service write. The call arrives on
// every login, not just the first one, so the default for an existing record
// is a no-op: only a patch carrying status "Requested" may overwrite an
// existing record. A missing record is created with created_at stamped.
func (s *Service) RegisterOrRequest(ctx context.Context, email string, patch Patch) (*Account, error) {

	if patch.IsUpgradeRequest() {
		acct, matched, err := s.store.MergeExisting(ctx, email, patch)
		if err != nil {
			return nil, err
		}
		if matched {
			s.invalidate(ctx, email, patch)
			s.notify(ctx, "upgrade_requested", s.notifier.UpgradeRequested, acct)
			return acct, nil
		}
		// no record yet, fall through to the insert path
	}

	acct, inserted, err := s.store.InsertIfAbsent(ctx, email, patch)
	if err != nil {
		return nil, err
	}
	if inserted {
		s.invalidate(ctx, email, patch)
		s.notify(ctx, "registered", s.notifier.AccountRegistered, acct)
		return acct, nil
	}

	// record exists and nothing sanctioned a write: return it untouched
	return s.store.GetByEmail(ctx, email)
}

// AssignRole is the privileged write path: merge unconditionally, create the
// record when absent, stamp updated_at either way. No status gate.
func (s *Service) AssignRole(ctx context.Context, email string, patch Patch) (*Account, error) {
	acct, err := s.store.Upsert(ctx, email, patch)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, email, patch)
	s.notify(ctx, "role_assigned", s.notifier.RoleAssigned, acct)

	return acct, nil
}

// GetByEmail is the directory read side. A miss returns (nil, nil).
func (s *Service) GetByEmail(ctx context.Context, email string) (*Account, error) {
	if data, err := s.cache.GetAccount(ctx, email); err == nil && data != nil {
		var a Account
		if err := json.Unmarshal(data, &a); err == nil {
			return &a, nil
		}
		// corrupt entry, drop it and fall through to the store
		if err := s.cache.DelAccount(ctx, email); err != nil {
			s.logger.Warn().Err(err).Str("email", email).Msg("failed to drop corrupt cache entry")
		}
	}

	acct, err := s.store.GetByEmail(ctx, email)
	if err != nil || acct == nil {
		return acct, err
	}

	if data, err := json.Marshal(acct); err == nil {
		if err := s.cache.SetAccount(ctx, email, data, s.cacheTTL); err != nil {
			s.logger.Warn().Err(err).Str("email", email).Msg("failed to cache account")
		}
	}

	return acct, nil
}

func (s *Service) List(ctx context.Context) ([]Account, error) {
	return s.store.List(ctx)
}

// invalidate drops cached copies after an accepted write. A patch can rename
// the record's email field, so both keys are cleared.
func (s *Service) invalidate(ctx context.Context, email string, patch Patch) {
	keys := []string{email}
	if patch.Email != nil && *patch.Email != email {
		keys = append(keys, *patch.Email)
	}

	for _, key := range keys {
		if err := s.cache.DelAccount(ctx, key); err != nil {
			s.logger.Warn().Err(err).Str("email", key).Msg("cache invalidation failed")
		}
	}
}

// notify publishes an account lifecycle event. Reconciliation never fails on
// a broker problem; failures are logged and the response proceeds.
func (s *Service) notify(ctx context.Context, event string, publish func(context.Context, Account) error, acct *Account) {
	if acct == nil {
		return
	}
	if err := publish(ctx, *acct); err != nil {
		s.logger.Error().
			Err(err).
			Str("event", event).
			Str("email", acct.Email).
			Msg("failed to publish account event")
	}
}
