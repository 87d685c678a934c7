package engagement

import (
	"context"
	"errors"
	"fmt"

	"github.com/suyay-events/suyay-go/internal/authz"
	"github.com/suyay-events/suyay-go/internal/domain"
	"github.com/suyay-events/suyay-go/internal/repository"
)

// Store is implemented by *postgresrepo.EngagementRepo.
type Store interface {
	Favorite(ctx context.Context, id int64) (*domain.Favorite, error)
	FavoriteByUserEvent(ctx context.Context, userID, eventID int64) (*domain.Favorite, error)
	Favorites(ctx context.Context, userID int64) ([]domain.Favorite, error)
	CreateFavorite(ctx context.Context, userID, eventID int64) (*domain.Favorite, error)
	DeleteFavorite(ctx context.Context, id int64) error

	RatingByUserEvent(ctx context.Context, userID, eventID int64) (*domain.Rating, error)
	Ratings(ctx context.Context, eventID, userID *int64) ([]domain.Rating, error)
	CreateRating(ctx context.Context, rt *domain.Rating) (*domain.Rating, error)

	Report(ctx context.Context, id int64) (*domain.Report, error)
	Reports(ctx context.Context, userID *int64, limit, offset int) ([]domain.Report, error)
	CreateReport(ctx context.Context, rep *domain.Report) (*domain.Report, error)
	UpdateReportStatus(ctx context.Context, id int64, status domain.ModerationStatus) (*domain.Report, error)
}

// EventStore resolves the event referenced by a favorite or rating.
// Implemented by *postgresrepo.EventRepo.
type EventStore interface {
	Get(ctx context.Context, id int64) (*domain.Event, error)
}

// Service covers the per-user engagement records: favorites, ratings and
// problem reports. Favorites and ratings are one-per-user-per-event.
type Service struct {
	store  Store
	events EventStore
}

func New(store Store, events EventStore) *Service {
	return &Service{store: store, events: events}
}

// AddFavorite bookmarks an event for the payload user. The event must
// exist before any permission or duplicate check runs.
func (s *Service) AddFavorite(ctx context.Context, p domain.Principal, userID, eventID int64) (*domain.Favorite, error) {
	const op = "engagement.Service.AddFavorite"

	if err := s.requireEvent(ctx, eventID); err != nil {
		return nil, err
	}

	if err := authz.SelfOrAdmin(p, userID); err != nil {
		return nil, err
	}

	if _, err := s.store.FavoriteByUserEvent(ctx, userID, eventID); err == nil {
		return nil, ErrAlreadyFavorite
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	f, err := s.store.CreateFavorite(ctx, userID, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrAlreadyFavorite
		}
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return f, nil
}

// Favorites lists a user's bookmarks. Unlike the other owner-filtered
// lists this one denies a foreign filter outright instead of narrowing:
// a favorites list is a direct window into someone's tastes.
func (s *Service) Favorites(ctx context.Context, p domain.Principal, userID *int64) ([]domain.Favorite, error) {
	const op = "engagement.Service.Favorites"

	target := p.UserID
	if userID != nil {
		target = *userID
	}
	if target != p.UserID && !p.Role.IsAdmin() {
		return nil, authz.ErrForbidden
	}

	out, err := s.store.Favorites(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

func (s *Service) RemoveFavorite(ctx context.Context, p domain.Principal, id int64) error {
	const op = "engagement.Service.RemoveFavorite"

	f, err := s.store.Favorite(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrFavoriteNotFound
		}
		return fmt.Errorf("%s:%w", op, err)
	}

	if err := authz.SelfOrAdmin(p, f.UserID); err != nil {
		return err
	}

	if err := s.store.DeleteFavorite(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrFavoriteNotFound
		}
		return fmt.Errorf("%s:%w", op, err)
	}

	return nil
}

// Rate scores an event 1 to 5, once per user.
func (s *Service) Rate(ctx context.Context, p domain.Principal, rt *domain.Rating) (*domain.Rating, error) {
	const op = "engagement.Service.Rate"

	if err := s.requireEvent(ctx, rt.EventID); err != nil {
		return nil, err
	}

	if err := authz.SelfOrAdmin(p, rt.UserID); err != nil {
		return nil, err
	}

	if rt.Score < 1 || rt.Score > 5 {
		return nil, ErrInvalidScore
	}

	if _, err := s.store.RatingByUserEvent(ctx, rt.UserID, rt.EventID); err == nil {
		return nil, ErrAlreadyRated
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	created, err := s.store.CreateRating(ctx, rt)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrAlreadyRated
		}
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return created, nil
}

// Ratings is a public listing, filterable by event and user.
func (s *Service) Ratings(ctx context.Context, eventID, userID *int64) ([]domain.Rating, error) {
	const op = "engagement.Service.Ratings"

	out, err := s.store.Ratings(ctx, eventID, userID)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

func (s *Service) CreateReport(ctx context.Context, p domain.Principal, rep *domain.Report) (*domain.Report, error) {
	const op = "engagement.Service.CreateReport"

	if err := authz.SelfOrAdmin(p, rep.UserID); err != nil {
		return nil, err
	}

	created, err := s.store.CreateReport(ctx, rep)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return created, nil
}

func (s *Service) Report(ctx context.Context, p domain.Principal, id int64) (*domain.Report, error) {
	const op = "engagement.Service.Report"

	rep, err := s.store.Report(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	if err := authz.SelfOrAdmin(p, rep.UserID); err != nil {
		return nil, err
	}

	return rep, nil
}

// Reports narrows non-admin queries to the caller's own reports.
func (s *Service) Reports(ctx context.Context, p domain.Principal, userID *int64, limit, offset int) ([]domain.Report, error) {
	const op = "engagement.Service.Reports"

	userID = authz.NarrowListOwner(p, userID, false)

	out, err := s.store.Reports(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

// ModerateReport moves a report through the moderation pipeline. Admin only.
func (s *Service) ModerateReport(ctx context.Context, p domain.Principal, id int64, status domain.ModerationStatus) (*domain.Report, error) {
	const op = "engagement.Service.ModerateReport"

	if _, err := s.store.Report(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	if err := authz.AdminOnly(p); err != nil {
		return nil, err
	}

	rep, err := s.store.UpdateReportStatus(ctx, id, status)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return rep, nil
}

func (s *Service) requireEvent(ctx context.Context, eventID int64) error {
	_, err := s.events.Get(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrEventNotFound
		}
		return err
	}
	return nil
}
