package tickets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/suyay-events/suyay-go/internal/authz"
	"github.com/suyay-events/suyay-go/internal/domain"
	"github.com/suyay-events/suyay-go/internal/repository"
	postgresrepo "github.com/suyay-events/suyay-go/internal/repository/postgres"
)

// TicketStore is the slice of the ticket repository the service needs.
// Implemented by *postgresrepo.TicketRepo.
type TicketStore interface {
	Get(ctx context.Context, id int64) (*domain.Ticket, error)
	GetByCode(ctx context.Context, code string) (*domain.Ticket, error)
	List(ctx context.Context, f postgresrepo.TicketFilter) ([]domain.Ticket, error)
	Insert(ctx context.Context, purchaseID int64, code string) (*domain.Ticket, error)
	MarkUsed(ctx context.Context, id int64, verifierID *int64, at time.Time) (*domain.Ticket, error)
	MarkExpired(ctx context.Context, id int64) (*domain.Ticket, error)
}

// PurchaseStore resolves ticket ownership. Implemented by *postgresrepo.PurchaseRepo.
type PurchaseStore interface {
	Get(ctx context.Context, id int64) (*domain.Purchase, error)
}

// VerifierStore resolves the verifier profile stamped on validation.
// Implemented by *postgresrepo.ProfileRepo.
type VerifierStore interface {
	VerifierByUser(ctx context.Context, userID int64) (*domain.Verifier, error)
}

type Service struct {
	tickets   TicketStore
	purchases PurchaseStore
	verifiers VerifierStore
	issuer    *Issuer
	log       *slog.Logger
	now       func() time.Time
}

func New(
	tickets TicketStore,
	purchases PurchaseStore,
	verifiers VerifierStore,
	issuer *Issuer,
	log *slog.Logger,
) *Service {
	return &Service{
		tickets:   tickets,
		purchases: purchases,
		verifiers: verifiers,
		issuer:    issuer,
		log:       log,
		now:       time.Now,
	}
}

// Create issues a ticket for the purchase: draw a code, insert, redraw on
// collision. Ownership of the purchase gates the operation; the purchase
// must exist before any permission check so absence reads as not-found.
func (s *Service) Create(ctx context.Context, p domain.Principal, purchaseID int64) (*domain.Ticket, error) {
	const op = "tickets.Service.Create"

	purchase, err := s.purchases.Get(ctx, purchaseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPurchaseNotFound
		}
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	if err := authz.SelfOrAdmin(p, purchase.UserID); err != nil {
		return nil, err
	}

	var created *domain.Ticket
	code, err := s.issuer.Issue(ctx, func(ctx context.Context, code string) error {
		t, err := s.tickets.Insert(ctx, purchaseID, code)
		if err != nil {
			return err
		}
		created = t
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	s.log.InfoContext(ctx, "ticket issued",
		slog.Int64("ticket_id", created.ID),
		slog.Int64("purchase_id", purchaseID),
		slog.String("code_suffix", code[len(code)-4:]),
	)

	return created, nil
}

// Get returns a ticket readable by its purchase owner, a verifier, or an
// administrator.
func (s *Service) Get(ctx context.Context, p domain.Principal, id int64) (*domain.Ticket, error) {
	const op = "tickets.Service.Get"

	t, err := s.tickets.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	owner, err := s.purchaseOwner(ctx, t.PurchaseID)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	if err := authz.ReadTicket(p, owner); err != nil {
		return nil, err
	}

	return t, nil
}

// GetByCode is the gate-scan lookup. It is role gated up front: the code
// itself is the secret, so buyers never resolve other people's codes and
// a wrong code from a verifier reads as not-found.
func (s *Service) GetByCode(ctx context.Context, p domain.Principal, code string) (*domain.Ticket, error) {
	const op = "tickets.Service.GetByCode"

	if err := authz.ValidateTicket(p); err != nil {
		return nil, err
	}

	t, err := s.tickets.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return t, nil
}

// List returns tickets, silently narrowed to the caller's own purchases
// unless the caller is an administrator or verifier.
func (s *Service) List(ctx context.Context, p domain.Principal, f postgresrepo.TicketFilter) ([]domain.Ticket, error) {
	const op = "tickets.Service.List"

	f.UserID = authz.NarrowListOwner(p, f.UserID, true)

	out, err := s.tickets.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

// Validate marks an active ticket used, stamping the validating verifier's
// profile when one exists. A ticket that exists but is no longer active
// yields ErrNotActive, which maps to a conflict at the edge.
func (s *Service) Validate(ctx context.Context, p domain.Principal, id int64) (*domain.Ticket, error) {
	const op = "tickets.Service.Validate"

	t, err := s.tickets.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	if err := authz.ValidateTicket(p); err != nil {
		return nil, err
	}

	if t.Status != domain.TicketActive {
		return nil, ErrNotActive
	}

	var verifierID *int64
	v, err := s.verifiers.VerifierByUser(ctx, p.UserID)
	switch {
	case err == nil:
		verifierID = &v.ID
	case errors.Is(err, repository.ErrNotFound):
		// admins validate without a verifier profile
	default:
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	used, err := s.tickets.MarkUsed(ctx, id, verifierID, s.now())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// lost the race with another validation
			return nil, ErrNotActive
		}
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	s.log.InfoContext(ctx, "ticket validated",
		slog.Int64("ticket_id", used.ID),
		slog.Int64("validated_by", p.UserID),
	)

	return used, nil
}

// Expire force-retires a ticket, used or not.
func (s *Service) Expire(ctx context.Context, p domain.Principal, id int64) (*domain.Ticket, error) {
	const op = "tickets.Service.Expire"

	t, err := s.tickets.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	if err := authz.ValidateTicket(p); err != nil {
		return nil, err
	}

	if t.Status == domain.TicketExpired {
		return nil, ErrAlreadyExpired
	}

	expired, err := s.tickets.MarkExpired(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAlreadyExpired
		}
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return expired, nil
}

func (s *Service) purchaseOwner(ctx context.Context, purchaseID int64) (int64, error) {
	purchase, err := s.purchases.Get(ctx, purchaseID)
	if err != nil {
		return 0, err
	}
	return purchase.UserID, nil
}
