package support

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/suyay-events/suyay-go/internal/authz"
	"github.com/suyay-events/suyay-go/internal/domain"
	"github.com/suyay-events/suyay-go/internal/repository"
	postgresrepo "github.com/suyay-events/suyay-go/internal/repository/postgres"
)

var (
	ErrClaimNotFound   = errors.New("claim not found")
	ErrMessageNotFound = errors.New("contact message not found")
)

// Service handles the anonymous inbox: consumer-protection claims and
// contact-form messages. Submission is open to the world; everything
// after that is back-office, admin only.
type Service struct {
	store *postgresrepo.Store
	log   *slog.Logger
}

func New(store *postgresrepo.Store, log *slog.Logger) *Service {
	return &Service{store: store, log: log}
}

func (s *Service) SubmitClaim(ctx context.Context, c *domain.Claim) (*domain.Claim, error) {
	const op = "support.Service.SubmitClaim"

	created, err := s.store.Support().CreateClaim(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	s.log.InfoContext(ctx, "claim submitted", slog.Int64("claim_id", created.ID))

	return created, nil
}

func (s *Service) Claim(ctx context.Context, p domain.Principal, id int64) (*domain.Claim, error) {
	const op = "support.Service.Claim"

	if err := authz.AdminOnly(p); err != nil {
		return nil, err
	}

	c, err := s.store.Support().Claim(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClaimNotFound
		}
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return c, nil
}

func (s *Service) Claims(ctx context.Context, p domain.Principal, limit, offset int) ([]domain.Claim, error) {
	const op = "support.Service.Claims"

	if err := authz.AdminOnly(p); err != nil {
		return nil, err
	}

	out, err := s.store.Support().Claims(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

func (s *Service) ModerateClaim(ctx context.Context, p domain.Principal, id int64, status domain.ModerationStatus) (*domain.Claim, error) {
	const op = "support.Service.ModerateClaim"

	if err := authz.AdminOnly(p); err != nil {
		return nil, err
	}

	c, err := s.store.Support().UpdateClaimStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClaimNotFound
		}
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return c, nil
}

func (s *Service) SubmitMessage(ctx context.Context, m *domain.ContactMessage) (*domain.ContactMessage, error) {
	const op = "support.Service.SubmitMessage"

	created, err := s.store.Support().CreateContactMessage(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return created, nil
}

func (s *Service) Message(ctx context.Context, p domain.Principal, id int64) (*domain.ContactMessage, error) {
	const op = "support.Service.Message"

	if err := authz.AdminOnly(p); err != nil {
		return nil, err
	}

	m, err := s.store.Support().ContactMessage(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return m, nil
}

func (s *Service) Messages(ctx context.Context, p domain.Principal, limit, offset int) ([]domain.ContactMessage, error) {
	const op = "support.Service.Messages"

	if err := authz.AdminOnly(p); err != nil {
		return nil, err
	}

	out, err := s.store.Support().ContactMessages(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

func (s *Service) ModerateMessage(ctx context.Context, p domain.Principal, id int64, status domain.ModerationStatus) (*domain.ContactMessage, error) {
	const op = "support.Service.ModerateMessage"

	if err := authz.AdminOnly(p); err != nil {
		return nil, err
	}

	m, err := s.store.Support().UpdateContactStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return m, nil
}
