package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/suyay-events/suyay-go/internal/domain"
	redisx "github.com/suyay-events/suyay-go/internal/redis"
	postgresrepo "github.com/suyay-events/suyay-go/internal/repository/postgres"
	redisrepo "github.com/suyay-events/suyay-go/internal/repository/redis"
)

const defaultTTL = 12 * time.Hour

// Service serves the public reference data: roles, categories and the
// department/province/district location tree. Everything here is
// world-readable and nearly static, so the small tables are cached
// wholesale in redis.
type Service struct {
	store *postgresrepo.Store
	cache *redisrepo.Cache
	ttl   time.Duration
}

func New(store *postgresrepo.Store, cache *redisrepo.Cache) *Service {
	return &Service{store: store, cache: cache, ttl: defaultTTL}
}

func (s *Service) Roles(ctx context.Context) ([]domain.RoleEntry, error) {
	const op = "catalog.Service.Roles"

	out, err := redisrepo.GetOrSetJSON(ctx, s.cache, redisx.KeyRoles(), s.ttl,
		func(ctx context.Context) ([]domain.RoleEntry, error) {
			return s.store.Catalog().Roles(ctx)
		})
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

func (s *Service) Categories(ctx context.Context) ([]domain.Category, error) {
	const op = "catalog.Service.Categories"

	out, err := redisrepo.GetOrSetJSON(ctx, s.cache, redisx.KeyCategories(), s.ttl,
		func(ctx context.Context) ([]domain.Category, error) {
			return s.store.Catalog().Categories(ctx)
		})
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

func (s *Service) Departments(ctx context.Context) ([]domain.Department, error) {
	const op = "catalog.Service.Departments"

	out, err := redisrepo.GetOrSetJSON(ctx, s.cache, redisx.KeyDepartments(), s.ttl,
		func(ctx context.Context) ([]domain.Department, error) {
			return s.store.Catalog().Departments(ctx)
		})
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

// Provinces and Districts take an optional parent filter, so they skip
// the cache and hit the store directly.
func (s *Service) Provinces(ctx context.Context, departmentID *int64) ([]domain.Province, error) {
	const op = "catalog.Service.Provinces"

	out, err := s.store.Catalog().Provinces(ctx, departmentID)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

func (s *Service) Districts(ctx context.Context, provinceID *int64) ([]domain.District, error) {
	const op = "catalog.Service.Districts"

	out, err := s.store.Catalog().Districts(ctx, provinceID)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}
