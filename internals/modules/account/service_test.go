package account

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore keeps the per-primitive atomicity contract of the real store:
// each method takes the lock once and either completes its mutation or does
// nothing.
type fakeStore struct {
	mu       sync.Mutex
	records  map[string]*Account
	inserts  int
	merges   int
	upserts  int
	reads    int
}

func newFakeStore() *fakeStore {
	return &fakeStore{records: map[string]*Account{}}
}

func clone(a *Account) *Account {
	if a == nil {
		return nil
	}
	cp := *a
	if a.UpdatedAt != nil {
		t := *a.UpdatedAt
		cp.UpdatedAt = &t
	}
	return &cp
}

func applyPatch(a *Account, patch Patch) {
	if patch.Email != nil {
		a.Email = *patch.Email
	}
	if patch.Name != nil {
		a.Name = *patch.Name
	}
	if patch.PhotoURL != nil {
		a.PhotoURL = *patch.PhotoURL
	}
	if patch.Role != nil {
		a.Role = *patch.Role
	}
	if patch.Status != nil {
		a.Status = *patch.Status
	}
}

func (f *fakeStore) GetByEmail(ctx context.Context, email string) (*Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	return clone(f.records[email]), nil
}

func (f *fakeStore) List(ctx context.Context) ([]Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []Account
	for _, a := range f.records {
		out = append(out, *clone(a))
	}
	return out, nil
}

func (f *fakeStore) MergeExisting(ctx context.Context, email string, patch Patch) (*Account, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	a, ok := f.records[email]
	if !ok {
		return nil, false, nil
	}
	f.merges++
	applyPatch(a, patch)
	now := time.Now()
	a.UpdatedAt = &now
	if a.Email != email {
		delete(f.records, email)
		f.records[a.Email] = a
	}
	return clone(a), true, nil
}

// storedEmail mirrors the COALESCE(body, path) insert value of the real
// store: creates keep a body-supplied email as the stored identity.
func storedEmail(email string, patch Patch) string {
	if patch.Email != nil {
		return *patch.Email
	}
	return email
}

func (f *fakeStore) InsertIfAbsent(ctx context.Context, email string, patch Patch) (*Account, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored := storedEmail(email, patch)
	if _, ok := f.records[stored]; ok {
		return nil, false, nil
	}
	f.inserts++
	a := &Account{Email: email, CreatedAt: time.Now()}
	applyPatch(a, patch)
	f.records[a.Email] = a
	return clone(a), true, nil
}

func (f *fakeStore) Upsert(ctx context.Context, email string, patch Patch) (*Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.upserts++
	now := time.Now()
	stored := storedEmail(email, patch)
	a, ok := f.records[stored]
	if !ok {
		a = &Account{Email: stored, CreatedAt: now}
		f.records[stored] = a
	}
	applyPatch(a, patch)
	a.UpdatedAt = &now
	return clone(a), nil
}

func (f *fakeStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.records)
}

type fakeCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	dels    []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]byte{}}
}

func (f *fakeCache) GetAccount(ctx context.Context, email string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.entries[email], nil
}

func (f *fakeCache) SetAccount(ctx context.Context, email string, data []byte, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[email] = data
	return nil
}

func (f *fakeCache) DelAccount(ctx context.Context, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.entries, email)
	f.dels = append(f.dels, email)
	return nil
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []string
}

func (f *fakeNotifier) record(event string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return nil
}

func (f *fakeNotifier) AccountRegistered(ctx context.Context, acct Account) error {
	return f.record("registered:" + acct.Email)
}

func (f *fakeNotifier) UpgradeRequested(ctx context.Context, acct Account) error {
	return f.record("upgrade_requested:" + acct.Email)
}

func (f *fakeNotifier) RoleAssigned(ctx context.Context, acct Account) error {
	return f.record("role_assigned:" + acct.Email)
}

func (f *fakeNotifier) all() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.events...)
}

func strPtr(s string) *string { return &s }

func newTestService() (*Service, *fakeStore, *fakeCache, *fakeNotifier) {
	store := newFakeStore()
	cache := newFakeCache()
	notifier := &fakeNotifier{}
	logger := zerolog.Nop()
	svc := NewService(store, cache, notifier, time.Minute, &logger)
	return svc, store, cache, notifier
}

func TestRegisterFirstTime(t *testing.T) {
	t.Parallel()
	svc, store, _, notifier := newTestService()
	ctx := context.Background()

	acct, err := svc.RegisterOrRequest(ctx, "a@x.com", Patch{
		Email: strPtr("a@x.com"),
		Role:  strPtr("member"),
	})
	require.NoError(t, err)
	require.NotNil(t, acct)

	assert.Equal(t, "a@x.com", acct.Email)
	assert.Equal(t, "member", acct.Role)
	assert.False(t, acct.CreatedAt.IsZero())
	assert.Nil(t, acct.UpdatedAt)
	assert.Equal(t, 1, store.count())
	assert.Equal(t, []string{"registered:a@x.com"}, notifier.all())
}

func TestRegisterIsIdempotentOnRepeat(t *testing.T) {
	t.Parallel()
	svc, store, _, notifier := newTestService()
	ctx := context.Background()

	patch := Patch{Email: strPtr("a@x.com"), Role: strPtr("member")}

	first, err := svc.RegisterOrRequest(ctx, "a@x.com", patch)
	require.NoError(t, err)

	second, err := svc.RegisterOrRequest(ctx, "a@x.com", patch)
	require.NoError(t, err)
	require.NotNil(t, second)

	// the repeat call performs zero writes and returns the stored record as-is
	assert.Equal(t, first.CreatedAt, second.CreatedAt)
	assert.Nil(t, second.UpdatedAt)
	assert.Equal(t, 1, store.inserts)
	assert.Equal(t, 0, store.merges)
	assert.Equal(t, 1, store.count())
	assert.Equal(t, []string{"registered:a@x.com"}, notifier.all())
}

func TestRepeatDoesNotClobberAssignedRole(t *testing.T) {
	t.Parallel()
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.RegisterOrRequest(ctx, "a@x.com", Patch{Role: strPtr("member")})
	require.NoError(t, err)

	_, err = svc.AssignRole(ctx, "a@x.com", Patch{Role: strPtr("admin")})
	require.NoError(t, err)

	// a later plain login must not undo the admin's role assignment
	acct, err := svc.RegisterOrRequest(ctx, "a@x.com", Patch{Role: strPtr("member")})
	require.NoError(t, err)
	require.NotNil(t, acct)
	assert.Equal(t, "admin", acct.Role)
}

func TestUpgradeRequestEscapeHatch(t *testing.T) {
	t.Parallel()
	svc, store, _, notifier := newTestService()
	ctx := context.Background()

	_, err := svc.RegisterOrRequest(ctx, "a@x.com", Patch{
		Name: strPtr("Asha"),
		Role: strPtr("member"),
	})
	require.NoError(t, err)

	acct, err := svc.RegisterOrRequest(ctx, "a@x.com", Patch{
		Role:   strPtr("premium"),
		Status: strPtr(StatusRequested),
	})
	require.NoError(t, err)
	require.NotNil(t, acct)

	assert.Equal(t, "premium", acct.Role)
	assert.Equal(t, StatusRequested, acct.Status)
	assert.NotNil(t, acct.UpdatedAt)
	// unspecified fields survive the merge
	assert.Equal(t, "Asha", acct.Name)
	assert.Equal(t, 1, store.merges)
	assert.Contains(t, notifier.all(), "upgrade_requested:a@x.com")
}

func TestUpgradeRequestOnMissingRecordInserts(t *testing.T) {
	t.Parallel()
	svc, store, _, _ := newTestService()
	ctx := context.Background()

	acct, err := svc.RegisterOrRequest(ctx, "new@x.com", Patch{
		Role:   strPtr("member"),
		Status: strPtr(StatusRequested),
	})
	require.NoError(t, err)
	require.NotNil(t, acct)

	assert.Equal(t, StatusRequested, acct.Status)
	assert.Equal(t, 1, store.inserts)
	assert.Equal(t, 0, store.merges)
}

func TestAssignRoleAlwaysWrites(t *testing.T) {
	t.Parallel()
	svc, store, _, notifier := newTestService()
	ctx := context.Background()

	_, err := svc.RegisterOrRequest(ctx, "a@x.com", Patch{Role: strPtr("member")})
	require.NoError(t, err)

	// no "Requested" status anywhere, the privileged path writes regardless
	acct, err := svc.AssignRole(ctx, "a@x.com", Patch{Role: strPtr("admin")})
	require.NoError(t, err)
	require.NotNil(t, acct)

	assert.Equal(t, "admin", acct.Role)
	assert.NotNil(t, acct.UpdatedAt)
	assert.Equal(t, 1, store.upserts)
	assert.Contains(t, notifier.all(), "role_assigned:a@x.com")
}

func TestAssignRoleCreatesMissingRecord(t *testing.T) {
	t.Parallel()
	svc, store, _, _ := newTestService()
	ctx := context.Background()

	acct, err := svc.AssignRole(ctx, "ghost@x.com", Patch{Role: strPtr("admin")})
	require.NoError(t, err)
	require.NotNil(t, acct)

	assert.Equal(t, "admin", acct.Role)
	assert.False(t, acct.CreatedAt.IsZero())
	assert.NotNil(t, acct.UpdatedAt)
	assert.Equal(t, 1, store.count())
}

func TestConcurrentFirstRegistrationsYieldOneRecord(t *testing.T) {
	t.Parallel()
	svc, store, _, _ := newTestService()
	ctx := context.Background()

	const workers = 25

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_, err := svc.RegisterOrRequest(ctx, "race@x.com", Patch{Role: strPtr("member")})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, store.count())
	assert.Equal(t, 1, store.inserts)
}

func TestDirectoryReadsThroughCache(t *testing.T) {
	t.Parallel()
	svc, store, cache, _ := newTestService()
	ctx := context.Background()

	_, err := svc.RegisterOrRequest(ctx, "a@x.com", Patch{Role: strPtr("member")})
	require.NoError(t, err)

	readsBefore := store.reads
	first, err := svc.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := svc.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.NotNil(t, second)

	// second read is served from the cache
	assert.Equal(t, readsBefore+1, store.reads)
	assert.Equal(t, first.Email, second.Email)

	// an accepted write drops the cached copy
	_, err = svc.AssignRole(ctx, "a@x.com", Patch{Role: strPtr("admin")})
	require.NoError(t, err)
	assert.Contains(t, cache.dels, "a@x.com")

	fresh, err := svc.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.NotNil(t, fresh)
	assert.Equal(t, "admin", fresh.Role)
}

func TestDirectoryMissReturnsNil(t *testing.T) {
	t.Parallel()
	svc, _, _, _ := newTestService()

	acct, err := svc.GetByEmail(context.Background(), "nobody@x.com")
	require.NoError(t, err)
	assert.Nil(t, acct)
}

func TestBodyEmailWrittenVerbatimOnMerge(t *testing.T) {
	t.Parallel()
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.RegisterOrRequest(ctx, "old@x.com", Patch{Role: strPtr("member")})
	require.NoError(t, err)

	// the path selects the record, the body email is just a field value
	acct, err := svc.RegisterOrRequest(ctx, "old@x.com", Patch{
		Email:  strPtr("new@x.com"),
		Status: strPtr(StatusRequested),
	})
	require.NoError(t, err)
	require.NotNil(t, acct)
	assert.Equal(t, "new@x.com", acct.Email)
}

func TestBodyEmailWrittenVerbatimOnFirstInsert(t *testing.T) {
	t.Parallel()
	svc, store, _, _ := newTestService()
	ctx := context.Background()

	// no record yet: the body email is the stored identity, not the path one
	acct, err := svc.RegisterOrRequest(ctx, "path@x.com", Patch{
		Email: strPtr("body@x.com"),
		Role:  strPtr("member"),
	})
	require.NoError(t, err)
	require.NotNil(t, acct)
	assert.Equal(t, "body@x.com", acct.Email)
	assert.Equal(t, 1, store.count())
}

func TestBodyEmailWrittenVerbatimOnAdminCreate(t *testing.T) {
	t.Parallel()
	svc, store, _, _ := newTestService()
	ctx := context.Background()

	acct, err := svc.AssignRole(ctx, "path@x.com", Patch{
		Email: strPtr("body@x.com"),
		Role:  strPtr("admin"),
	})
	require.NoError(t, err)
	require.NotNil(t, acct)
	assert.Equal(t, "body@x.com", acct.Email)
	assert.Equal(t, 1, store.count())
}
