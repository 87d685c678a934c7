package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/suyay-events/suyay-go/internal/domain"
	"github.com/suyay-events/suyay-go/internal/repository"
)

type fakeUserStore struct {
	byEmail map[string]*domain.User
	nextID  int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: map[string]*domain.User{}, nextID: 1}
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserStore) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	if _, dup := f.byEmail[u.Email]; dup {
		return nil, repository.ErrConflict
	}
	cp := *u
	cp.ID = f.nextID
	f.nextID++
	cp.Role = domain.RoleFromID(cp.RoleID)
	cp.CreatedAt = time.Now()
	f.byEmail[cp.Email] = &cp
	out := cp
	return &out, nil
}

func newTestService(users UserStore) *Service {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(users, Config{
		Secret:     []byte("test-secret"),
		TokenTTL:   time.Hour,
		BcryptCost: bcrypt.MinCost,
	}, log)
}

func TestRegisterDefaultsToBuyer(t *testing.T) {
	svc := newTestService(newFakeUserStore())

	u, err := svc.Register(context.Background(), RegisterInput{
		FirstNames: "Ana",
		LastNames:  "Quispe",
		Email:      "ana@example.com",
		Password:   "s3cret!!",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleBuyer, u.Role)
	assert.NotEqual(t, "s3cret!!", u.PasswordHash, "password must be stored hashed")
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc := newTestService(newFakeUserStore())

	in := RegisterInput{FirstNames: "Ana", LastNames: "Quispe", Email: "ana@example.com", Password: "s3cret!!"}
	_, err := svc.Register(context.Background(), in)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), in)
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	svc := newTestService(newFakeUserStore())

	_, err := svc.Register(context.Background(), RegisterInput{
		Email: "x@example.com", Password: "pw", RoleID: 99,
	})
	require.ErrorIs(t, err, ErrUnknownRole)
}

func TestLoginRoundTrip(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestService(store)

	_, err := svc.Register(context.Background(), RegisterInput{
		Email: "ana@example.com", Password: "s3cret!!",
	})
	require.NoError(t, err)

	token, u, err := svc.Login(context.Background(), "ana@example.com", "s3cret!!")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	resolved, err := svc.Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, resolved.ID)
	assert.Equal(t, "ana@example.com", resolved.Email)
}

func TestLoginHidesWhichFactorFailed(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestService(store)

	_, err := svc.Register(context.Background(), RegisterInput{
		Email: "ana@example.com", Password: "s3cret!!",
	})
	require.NoError(t, err)

	_, _, errWrongPass := svc.Login(context.Background(), "ana@example.com", "nope")
	_, _, errNoUser := svc.Login(context.Background(), "ghost@example.com", "nope")

	require.ErrorIs(t, errWrongPass, ErrInvalidCredentials)
	require.ErrorIs(t, errNoUser, ErrInvalidCredentials)
}

func TestAuthenticateRejectsExpiredToken(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestService(store)

	_, err := svc.Register(context.Background(), RegisterInput{
		Email: "ana@example.com", Password: "s3cret!!",
	})
	require.NoError(t, err)

	past := time.Now().Add(-48 * time.Hour)
	svc.now = func() time.Time { return past }
	token, _, err := svc.Login(context.Background(), "ana@example.com", "s3cret!!")
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.Authenticate(context.Background(), token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthenticateRejectsGarbage(t *testing.T) {
	svc := newTestService(newFakeUserStore())

	_, err := svc.Authenticate(context.Background(), "not-a-token")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthenticateRejectsDeletedAccount(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestService(store)

	_, err := svc.Register(context.Background(), RegisterInput{
		Email: "ana@example.com", Password: "s3cret!!",
	})
	require.NoError(t, err)

	token, _, err := svc.Login(context.Background(), "ana@example.com", "s3cret!!")
	require.NoError(t, err)

	delete(store.byEmail, "ana@example.com")

	_, err = svc.Authenticate(context.Background(), token)
	require.ErrorIs(t, err, ErrInvalidToken)
}
