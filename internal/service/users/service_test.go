package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suyay-events/suyay-go/internal/authz"
	"github.com/suyay-events/suyay-go/internal/domain"
	"github.com/suyay-events/suyay-go/internal/repository"
	postgresrepo "github.com/suyay-events/suyay-go/internal/repository/postgres"
)

type fakeStore struct {
	byID map[int64]*domain.User
}

func (f *fakeStore) Get(_ context.Context, id int64) (*domain.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeStore) List(_ context.Context, _, _ int) ([]domain.User, error) {
	var out []domain.User
	for _, u := range f.byID {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeStore) Update(_ context.Context, id int64, p postgresrepo.UserPatch) (*domain.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if p.FirstNames != nil {
		u.FirstNames = *p.FirstNames
	}
	if p.Phone != nil {
		u.Phone = p.Phone
	}
	cp := *u
	return &cp, nil
}

var (
	buyer = domain.Principal{UserID: 7, Role: domain.RoleBuyer}
	admin = domain.Principal{UserID: 1, Role: domain.RoleAdministrator}
)

func newTestService() *Service {
	return New(&fakeStore{byID: map[int64]*domain.User{
		7:  {ID: 7, Email: "ana@example.com", Role: domain.RoleBuyer},
		42: {ID: 42, Email: "luis@example.com", Role: domain.RoleBuyer},
	}})
}

func TestGetNotFoundBeatsForbidden(t *testing.T) {
	svc := newTestService()

	_, err := svc.Get(context.Background(), buyer, 999)
	require.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.Get(context.Background(), buyer, 42)
	require.ErrorIs(t, err, authz.ErrForbidden)
}

func TestGetSelfAndAdmin(t *testing.T) {
	svc := newTestService()

	u, err := svc.Get(context.Background(), buyer, 7)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", u.Email)

	u, err = svc.Get(context.Background(), admin, 42)
	require.NoError(t, err)
	assert.Equal(t, "luis@example.com", u.Email)
}

func TestListAdminOnly(t *testing.T) {
	svc := newTestService()

	_, err := svc.List(context.Background(), buyer, 50, 0)
	require.ErrorIs(t, err, authz.ErrForbidden)

	out, err := svc.List(context.Background(), admin, 50, 0)
	require.NoError(t, err)
	assert.Len(t, out, 2)
}

func TestUpdateSelfOnly(t *testing.T) {
	svc := newTestService()

	name := "Luisa"
	_, err := svc.Update(context.Background(), buyer, 42, postgresrepo.UserPatch{FirstNames: &name})
	require.ErrorIs(t, err, authz.ErrForbidden)

	u, err := svc.Update(context.Background(), buyer, 7, postgresrepo.UserPatch{FirstNames: &name})
	require.NoError(t, err)
	assert.Equal(t, "Luisa", u.FirstNames)
}
