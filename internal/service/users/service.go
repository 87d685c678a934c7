package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/suyay-events/suyay-go/internal/authz"
	"github.com/suyay-events/suyay-go/internal/domain"
	"github.com/suyay-events/suyay-go/internal/repository"
	postgresrepo "github.com/suyay-events/suyay-go/internal/repository/postgres"
)

var ErrUserNotFound = errors.New("user not found")

// Store is implemented by *postgresrepo.UserRepo.
type Store interface {
	Get(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context, limit, offset int) ([]domain.User, error)
	Update(ctx context.Context, id int64, p postgresrepo.UserPatch) (*domain.User, error)
}

type Service struct {
	users Store
}

func New(users Store) *Service {
	return &Service{users: users}
}

// Get returns a profile readable by its owner or an administrator.
// Existence is resolved first, so an absent id never leaks through a
// permission error.
func (s *Service) Get(ctx context.Context, p domain.Principal, id int64) (*domain.User, error) {
	const op = "users.Service.Get"

	u, err := s.users.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	if err := authz.SelfOrAdmin(p, id); err != nil {
		return nil, err
	}

	return u, nil
}

// List is the admin-only user directory.
func (s *Service) List(ctx context.Context, p domain.Principal, limit, offset int) ([]domain.User, error) {
	const op = "users.Service.List"

	if err := authz.AdminOnly(p); err != nil {
		return nil, err
	}

	out, err := s.users.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

// Update patches profile fields. Email, password and role are immutable
// through this path.
func (s *Service) Update(ctx context.Context, p domain.Principal, id int64, patch postgresrepo.UserPatch) (*domain.User, error) {
	const op = "users.Service.Update"

	if _, err := s.users.Get(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	if err := authz.SelfOrAdmin(p, id); err != nil {
		return nil, err
	}

	u, err := s.users.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return u, nil
}
