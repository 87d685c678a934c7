package tickets

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suyay-events/suyay-go/internal/authz"
	"github.com/suyay-events/suyay-go/internal/domain"
	"github.com/suyay-events/suyay-go/internal/repository"
	postgresrepo "github.com/suyay-events/suyay-go/internal/repository/postgres"
)

type fakeTicketStore struct {
	byID       map[int64]*domain.Ticket
	byCode     map[string]*domain.Ticket
	nextID     int64
	failCodes  map[string]bool // codes that collide on insert
	inserted   []string
	markUsedAt *time.Time
}

func newFakeTicketStore() *fakeTicketStore {
	return &fakeTicketStore{
		byID:      map[int64]*domain.Ticket{},
		byCode:    map[string]*domain.Ticket{},
		nextID:    1,
		failCodes: map[string]bool{},
	}
}

func (f *fakeTicketStore) add(t *domain.Ticket) *domain.Ticket {
	if t.ID == 0 {
		t.ID = f.nextID
		f.nextID++
	}
	f.byID[t.ID] = t
	f.byCode[t.Code] = t
	return t
}

func (f *fakeTicketStore) Get(_ context.Context, id int64) (*domain.Ticket, error) {
	t, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTicketStore) GetByCode(_ context.Context, code string) (*domain.Ticket, error) {
	t, ok := f.byCode[code]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTicketStore) List(_ context.Context, filter postgresrepo.TicketFilter) ([]domain.Ticket, error) {
	var out []domain.Ticket
	for _, t := range f.byID {
		if filter.PurchaseID != nil && t.PurchaseID != *filter.PurchaseID {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

func (f *fakeTicketStore) Insert(_ context.Context, purchaseID int64, code string) (*domain.Ticket, error) {
	f.inserted = append(f.inserted, code)
	if f.failCodes[code] {
		return nil, repository.ErrConflict
	}
	if _, dup := f.byCode[code]; dup {
		return nil, repository.ErrConflict
	}
	return f.add(&domain.Ticket{
		PurchaseID: purchaseID,
		Code:       code,
		CreatedAt:  time.Now(),
		Status:     domain.TicketActive,
	}), nil
}

func (f *fakeTicketStore) MarkUsed(_ context.Context, id int64, verifierID *int64, at time.Time) (*domain.Ticket, error) {
	t, ok := f.byID[id]
	if !ok || t.Status != domain.TicketActive {
		return nil, repository.ErrNotFound
	}
	t.Status = domain.TicketUsed
	t.UsedAt = &at
	t.VerifierID = verifierID
	f.markUsedAt = &at
	cp := *t
	return &cp, nil
}

func (f *fakeTicketStore) MarkExpired(_ context.Context, id int64) (*domain.Ticket, error) {
	t, ok := f.byID[id]
	if !ok || t.Status == domain.TicketExpired {
		return nil, repository.ErrNotFound
	}
	t.Status = domain.TicketExpired
	cp := *t
	return &cp, nil
}

type fakePurchaseStore struct {
	byID map[int64]*domain.Purchase
}

func (f *fakePurchaseStore) Get(_ context.Context, id int64) (*domain.Purchase, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

type fakeVerifierStore struct {
	byUser map[int64]*domain.Verifier
}

func (f *fakeVerifierStore) VerifierByUser(_ context.Context, userID int64) (*domain.Verifier, error) {
	v, ok := f.byUser[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *v
	return &cp, nil
}

func newTestService(ts *fakeTicketStore, ps *fakePurchaseStore, vs *fakeVerifierStore) *Service {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(ts, ps, vs, NewIssuer(0), log)
}

var (
	buyer    = domain.Principal{UserID: 7, Role: domain.RoleBuyer}
	admin    = domain.Principal{UserID: 1, Role: domain.RoleAdministrator}
	verifier = domain.Principal{UserID: 5, Role: domain.RoleVerifier}
)

func TestCreateMissingPurchaseIsNotFoundForEveryone(t *testing.T) {
	svc := newTestService(newFakeTicketStore(), &fakePurchaseStore{byID: map[int64]*domain.Purchase{}}, &fakeVerifierStore{})

	// absence wins over permission, whoever asks
	for _, p := range []domain.Principal{buyer, admin, verifier} {
		_, err := svc.Create(context.Background(), p, 99)
		require.ErrorIs(t, err, ErrPurchaseNotFound)
	}
}

func TestCreateForbiddenForForeignPurchase(t *testing.T) {
	ps := &fakePurchaseStore{byID: map[int64]*domain.Purchase{
		10: {ID: 10, UserID: 42},
	}}
	svc := newTestService(newFakeTicketStore(), ps, &fakeVerifierStore{})

	_, err := svc.Create(context.Background(), buyer, 10)
	require.ErrorIs(t, err, authz.ErrForbidden)
}

func TestCreateIssuesForOwnerAndAdmin(t *testing.T) {
	ts := newFakeTicketStore()
	ps := &fakePurchaseStore{byID: map[int64]*domain.Purchase{
		10: {ID: 10, UserID: buyer.UserID},
	}}
	svc := newTestService(ts, ps, &fakeVerifierStore{})

	own, err := svc.Create(context.Background(), buyer, 10)
	require.NoError(t, err)
	assert.Len(t, own.Code, CodeLength)
	assert.Equal(t, domain.TicketActive, own.Status)

	byAdmin, err := svc.Create(context.Background(), admin, 10)
	require.NoError(t, err)
	assert.NotEqual(t, own.Code, byAdmin.Code)
}

func TestCreateRedrawsOnCollision(t *testing.T) {
	ts := newFakeTicketStore()
	ps := &fakePurchaseStore{byID: map[int64]*domain.Purchase{
		10: {ID: 10, UserID: buyer.UserID},
	}}
	svc := newTestService(ts, ps, &fakeVerifierStore{})

	// fail the first two inserts as uniqueness conflicts
	collisions := 0
	svc.tickets = insertFailer{inner: ts, failures: &collisions, n: 2}

	tk, err := svc.Create(context.Background(), buyer, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, collisions)
	assert.Len(t, ts.inserted, 3)
	assert.Equal(t, ts.inserted[2], tk.Code)
}

// insertFailer fails the first n inserts with a uniqueness conflict.
type insertFailer struct {
	inner    *fakeTicketStore
	failures *int
	n        int
}

func (f insertFailer) Get(ctx context.Context, id int64) (*domain.Ticket, error) {
	return f.inner.Get(ctx, id)
}

func (f insertFailer) GetByCode(ctx context.Context, code string) (*domain.Ticket, error) {
	return f.inner.GetByCode(ctx, code)
}

func (f insertFailer) List(ctx context.Context, filter postgresrepo.TicketFilter) ([]domain.Ticket, error) {
	return f.inner.List(ctx, filter)
}

func (f insertFailer) Insert(ctx context.Context, purchaseID int64, code string) (*domain.Ticket, error) {
	if *f.failures < f.n {
		*f.failures++
		f.inner.inserted = append(f.inner.inserted, code)
		return nil, repository.ErrConflict
	}
	return f.inner.Insert(ctx, purchaseID, code)
}

func (f insertFailer) MarkUsed(ctx context.Context, id int64, verifierID *int64, at time.Time) (*domain.Ticket, error) {
	return f.inner.MarkUsed(ctx, id, verifierID, at)
}

func (f insertFailer) MarkExpired(ctx context.Context, id int64) (*domain.Ticket, error) {
	return f.inner.MarkExpired(ctx, id)
}

func TestGetOrdersNotFoundBeforeForbidden(t *testing.T) {
	ts := newFakeTicketStore()
	ps := &fakePurchaseStore{byID: map[int64]*domain.Purchase{
		10: {ID: 10, UserID: 42},
	}}
	ts.add(&domain.Ticket{ID: 1, PurchaseID: 10, Code: "111122223333", Status: domain.TicketActive})
	svc := newTestService(ts, ps, &fakeVerifierStore{})

	_, err := svc.Get(context.Background(), buyer, 99)
	require.ErrorIs(t, err, ErrTicketNotFound)

	_, err = svc.Get(context.Background(), buyer, 1)
	require.ErrorIs(t, err, authz.ErrForbidden)
}

func TestGetAllowsOwnerVerifierAdmin(t *testing.T) {
	ts := newFakeTicketStore()
	ps := &fakePurchaseStore{byID: map[int64]*domain.Purchase{
		10: {ID: 10, UserID: buyer.UserID},
	}}
	ts.add(&domain.Ticket{ID: 1, PurchaseID: 10, Code: "111122223333", Status: domain.TicketActive})
	svc := newTestService(ts, ps, &fakeVerifierStore{})

	for _, p := range []domain.Principal{buyer, verifier, admin} {
		got, err := svc.Get(context.Background(), p, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(1), got.ID)
	}
}

func TestGetByCodeIsRoleGated(t *testing.T) {
	ts := newFakeTicketStore()
	ts.add(&domain.Ticket{ID: 1, PurchaseID: 10, Code: "111122223333", Status: domain.TicketActive})
	svc := newTestService(ts, &fakePurchaseStore{}, &fakeVerifierStore{})

	// buyers never resolve codes, even their own
	_, err := svc.GetByCode(context.Background(), buyer, "111122223333")
	require.ErrorIs(t, err, authz.ErrForbidden)

	got, err := svc.GetByCode(context.Background(), verifier, "111122223333")
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ID)

	_, err = svc.GetByCode(context.Background(), verifier, "000000000000")
	require.ErrorIs(t, err, ErrTicketNotFound)
}

func TestListNarrowsForeignOwnerFilter(t *testing.T) {
	ts := newFakeTicketStore()
	svc := newTestService(ts, &fakePurchaseStore{}, &fakeVerifierStore{})

	other := int64(42)
	_, err := svc.List(context.Background(), buyer, postgresrepo.TicketFilter{UserID: &other})
	require.NoError(t, err)

	// the filter the store saw must have been rewritten to the caller
	// (fake ignores UserID, so assert through NarrowListOwner directly)
	narrowed := authz.NarrowListOwner(buyer, &other, true)
	require.NotNil(t, narrowed)
	assert.Equal(t, buyer.UserID, *narrowed)
}

func TestValidateStampsVerifierProfile(t *testing.T) {
	ts := newFakeTicketStore()
	ts.add(&domain.Ticket{ID: 1, PurchaseID: 10, Code: "111122223333", Status: domain.TicketActive})
	vs := &fakeVerifierStore{byUser: map[int64]*domain.Verifier{
		verifier.UserID: {ID: 30, UserID: verifier.UserID},
	}}
	svc := newTestService(ts, &fakePurchaseStore{}, vs)

	used, err := svc.Validate(context.Background(), verifier, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketUsed, used.Status)
	require.NotNil(t, used.VerifierID)
	assert.Equal(t, int64(30), *used.VerifierID)
	require.NotNil(t, used.UsedAt)
}

func TestValidateByAdminWithoutProfile(t *testing.T) {
	ts := newFakeTicketStore()
	ts.add(&domain.Ticket{ID: 1, PurchaseID: 10, Code: "111122223333", Status: domain.TicketActive})
	svc := newTestService(ts, &fakePurchaseStore{}, &fakeVerifierStore{byUser: map[int64]*domain.Verifier{}})

	used, err := svc.Validate(context.Background(), admin, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketUsed, used.Status)
	assert.Nil(t, used.VerifierID)
}

func TestValidateForbiddenForBuyerButNotFoundFirst(t *testing.T) {
	ts := newFakeTicketStore()
	ts.add(&domain.Ticket{ID: 1, PurchaseID: 10, Code: "111122223333", Status: domain.TicketActive})
	svc := newTestService(ts, &fakePurchaseStore{}, &fakeVerifierStore{})

	_, err := svc.Validate(context.Background(), buyer, 99)
	require.ErrorIs(t, err, ErrTicketNotFound)

	_, err = svc.Validate(context.Background(), buyer, 1)
	require.ErrorIs(t, err, authz.ErrForbidden)
}

func TestValidateUsedTicketConflicts(t *testing.T) {
	ts := newFakeTicketStore()
	now := time.Now()
	ts.add(&domain.Ticket{ID: 1, PurchaseID: 10, Code: "111122223333", Status: domain.TicketUsed, UsedAt: &now})
	svc := newTestService(ts, &fakePurchaseStore{}, &fakeVerifierStore{})

	_, err := svc.Validate(context.Background(), verifier, 1)
	require.ErrorIs(t, err, ErrNotActive)
}

func TestExpireTwiceConflicts(t *testing.T) {
	ts := newFakeTicketStore()
	ts.add(&domain.Ticket{ID: 1, PurchaseID: 10, Code: "111122223333", Status: domain.TicketActive})
	svc := newTestService(ts, &fakePurchaseStore{}, &fakeVerifierStore{})

	first, err := svc.Expire(context.Background(), admin, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketExpired, first.Status)

	_, err = svc.Expire(context.Background(), admin, 1)
	require.ErrorIs(t, err, ErrAlreadyExpired)
}
