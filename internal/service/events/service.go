package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/suyay-events/suyay-go/internal/authz"
	"github.com/suyay-events/suyay-go/internal/domain"
	redisx "github.com/suyay-events/suyay-go/internal/redis"
	"github.com/suyay-events/suyay-go/internal/repository"
	postgresrepo "github.com/suyay-events/suyay-go/internal/repository/postgres"
	redisrepo "github.com/suyay-events/suyay-go/internal/repository/redis"
	"github.com/suyay-events/suyay-go/internal/uow"
)

const eventCacheTTL = 5 * time.Minute

// Service owns the event lifecycle plus the two satellites that share its
// permission rule: ticket types and gate-verifier assignments. Reads are
// public; every mutation goes through ManageEvent and, on commit,
// invalidates the event cache and broadcasts the change.
type Service struct {
	store  *postgresrepo.Store
	txs    *uow.UoW
	cache  *redisrepo.Cache
	pubsub *redisx.EventsPubSub
	log    *slog.Logger
}

func New(
	store *postgresrepo.Store,
	txs *uow.UoW,
	cache *redisrepo.Cache,
	pubsub *redisx.EventsPubSub,
	log *slog.Logger,
) *Service {
	return &Service{store: store, txs: txs, cache: cache, pubsub: pubsub, log: log}
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Event, error) {
	const op = "events.Service.Get"

	ev, err := redisrepo.GetOrSetJSON(ctx, s.cache, redisx.KeyEventSummary(id), eventCacheTTL,
		func(ctx context.Context) (*domain.Event, error) {
			return s.store.Events().Get(ctx, id)
		})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return ev, nil
}

func (s *Service) List(ctx context.Context, f postgresrepo.EventFilter) ([]domain.Event, error) {
	const op = "events.Service.List"

	out, err := s.store.Events().List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

type CreateInput struct {
	Title               string
	Description         *string
	StartDate           time.Time
	EndDate             time.Time
	DistrictID          int64
	LocationDescription *string
	CategoryID          int64
	OrganizerID         int64
	ImageURL            *string
}

// Create publishes a new event under the declared organizer profile. The
// profile must exist, belong to the caller (unless admin) and be approved.
func (s *Service) Create(ctx context.Context, p domain.Principal, in CreateInput) (*domain.Event, error) {
	const op = "events.Service.Create"

	org, err := s.store.Profiles().Organizer(ctx, in.OrganizerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOrganizerNotFound
		}
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	if err := authz.CreateEvent(p, org, in.OrganizerID); err != nil {
		return nil, err
	}

	if !org.IsApproved && !p.Role.IsAdmin() {
		return nil, ErrOrganizerNotApproved
	}

	created, err := s.store.Events().Create(ctx, &domain.Event{
		Title:               in.Title,
		Description:         in.Description,
		StartDate:           in.StartDate,
		EndDate:             in.EndDate,
		DistrictID:          in.DistrictID,
		LocationDescription: in.LocationDescription,
		CategoryID:          in.CategoryID,
		OrganizerID:         org.ID,
		OrganizerUserID:     org.UserID,
		ImageURL:            in.ImageURL,
	})
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	s.log.InfoContext(ctx, "event created",
		slog.Int64("event_id", created.ID),
		slog.Int64("organizer_id", org.ID),
	)

	return created, nil
}

func (s *Service) Update(ctx context.Context, p domain.Principal, id int64, patch postgresrepo.EventPatch) (*domain.Event, error) {
	const op = "events.Service.Update"

	ev, err := s.requireManaged(ctx, p, id)
	if err != nil {
		return nil, err
	}

	var updated *domain.Event
	err = s.txs.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		var err error
		updated, err = s.store.Events().With(tx).Update(ctx, id, patch)
		if err != nil {
			return err
		}
		after(s.eventChanged(ev.ID))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return updated, nil
}

func (s *Service) Delete(ctx context.Context, p domain.Principal, id int64) error {
	const op = "events.Service.Delete"

	if _, err := s.requireManaged(ctx, p, id); err != nil {
		return err
	}

	err := s.txs.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		if err := s.store.Events().With(tx).Delete(ctx, id); err != nil {
			return err
		}
		after(s.eventChanged(id))
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("%s:%w", op, err)
	}

	return nil
}

// AssignVerifier lets the event's organizer (or an admin) put a verifier
// on the gate for this event.
func (s *Service) AssignVerifier(ctx context.Context, p domain.Principal, eventID, verifierID int64) (*domain.EventVerifier, error) {
	const op = "events.Service.AssignVerifier"

	if _, err := s.requireManaged(ctx, p, eventID); err != nil {
		return nil, err
	}

	if _, err := s.store.Profiles().Verifier(ctx, verifierID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrVerifierNotFound
		}
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	existing, err := s.store.Events().EventVerifiers(ctx, &eventID, &verifierID)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}
	if len(existing) > 0 {
		return nil, ErrVerifierAlreadyAssigned
	}

	ev, err := s.store.Events().AssignVerifier(ctx, verifierID, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrVerifierAlreadyAssigned
		}
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return ev, nil
}

func (s *Service) RemoveVerifier(ctx context.Context, p domain.Principal, assignmentID int64) error {
	const op = "events.Service.RemoveVerifier"

	asg, err := s.store.Events().EventVerifier(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAssignmentNotFound
		}
		return fmt.Errorf("%s:%w", op, err)
	}

	if _, err := s.requireManaged(ctx, p, asg.EventID); err != nil {
		return err
	}

	if err := s.store.Events().RemoveVerifier(ctx, assignmentID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAssignmentNotFound
		}
		return fmt.Errorf("%s:%w", op, err)
	}

	return nil
}

func (s *Service) EventVerifiers(ctx context.Context, p domain.Principal, eventID int64) ([]domain.EventVerifier, error) {
	const op = "events.Service.EventVerifiers"

	if _, err := s.requireManaged(ctx, p, eventID); err != nil {
		return nil, err
	}

	out, err := s.store.Events().EventVerifiers(ctx, &eventID, nil)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

func (s *Service) TicketType(ctx context.Context, id int64) (*domain.TicketType, error) {
	const op = "events.Service.TicketType"

	tt, err := s.store.Events().TicketType(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTicketTypeNotFound
		}
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return tt, nil
}

func (s *Service) TicketTypes(ctx context.Context, eventID *int64) ([]domain.TicketType, error) {
	const op = "events.Service.TicketTypes"

	out, err := s.store.Events().TicketTypes(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

func (s *Service) CreateTicketType(ctx context.Context, p domain.Principal, tt *domain.TicketType) (*domain.TicketType, error) {
	const op = "events.Service.CreateTicketType"

	if _, err := s.requireManaged(ctx, p, tt.EventID); err != nil {
		return nil, err
	}

	var created *domain.TicketType
	err := s.txs.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		var err error
		created, err = s.store.Events().With(tx).CreateTicketType(ctx, tt)
		if err != nil {
			return err
		}
		after(s.eventChanged(tt.EventID))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return created, nil
}

func (s *Service) UpdateTicketType(ctx context.Context, p domain.Principal, id int64, patch postgresrepo.TicketTypePatch) (*domain.TicketType, error) {
	const op = "events.Service.UpdateTicketType"

	tt, err := s.store.Events().TicketType(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTicketTypeNotFound
		}
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	if _, err := s.requireManaged(ctx, p, tt.EventID); err != nil {
		return nil, err
	}

	var updated *domain.TicketType
	err = s.txs.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		var err error
		updated, err = s.store.Events().With(tx).UpdateTicketType(ctx, id, patch)
		if err != nil {
			return err
		}
		after(s.eventChanged(tt.EventID))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return updated, nil
}

func (s *Service) DeleteTicketType(ctx context.Context, p domain.Principal, id int64) error {
	const op = "events.Service.DeleteTicketType"

	tt, err := s.store.Events().TicketType(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTicketTypeNotFound
		}
		return fmt.Errorf("%s:%w", op, err)
	}

	if _, err := s.requireManaged(ctx, p, tt.EventID); err != nil {
		return err
	}

	err = s.txs.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		if err := s.store.Events().With(tx).DeleteTicketType(ctx, id); err != nil {
			return err
		}
		after(s.eventChanged(tt.EventID))
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTicketTypeNotFound
		}
		return fmt.Errorf("%s:%w", op, err)
	}

	return nil
}

// requireManaged resolves the event and applies the manage rule:
// not-found wins over forbidden.
func (s *Service) requireManaged(ctx context.Context, p domain.Principal, eventID int64) (*domain.Event, error) {
	ev, err := s.store.Events().Get(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	if err := authz.ManageEvent(p, ev); err != nil {
		return nil, err
	}

	return ev, nil
}

func (s *Service) eventChanged(eventID int64) uow.AfterCommit {
	return func(ctx context.Context) {
		if err := s.cache.InvalidateEvent(ctx, eventID); err != nil {
			s.log.WarnContext(ctx, "event cache invalidation failed",
				slog.Int64("event_id", eventID),
				slog.String("error", err.Error()),
			)
		}
		if err := s.pubsub.PublishEventChanged(ctx, eventID); err != nil {
			s.log.WarnContext(ctx, "event change publish failed",
				slog.Int64("event_id", eventID),
				slog.String("error", err.Error()),
			)
		}
	}
}
