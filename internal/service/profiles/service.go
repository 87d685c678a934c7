package profiles

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

// Service manages the organizer and verifier profiles layered on top of
// user accounts. One profile of each kind per user; the unique constraint
// on user_id backs the pre-read duplicate check.
type Service struct {
	store *postgresrepo.Store
	log   *slog.Logger
}

func New(store *postgresrepo.Store, log *slog.Logger) *Service {
	return &Service{store: store, log: log}
}

type OrganizerInput struct {
	UserID              int64
	DocumentType        string
	DocumentNumber      string
	BusinessName        *string
	TaxID               *string
	WorkCertificateFile *string
}

// CreateOrganizer registers an organizer profile for a user. Callers may
// only enroll themselves; administrators may enroll anyone.
func (s *Service) CreateOrganizer(ctx context.Context, p domain.Principal, in OrganizerInput) (*domain.Organizer, error) {
	const op = "profiles.Service.CreateOrganizer"

	if err := authz.SelfOrAdmin(p, in.UserID); err != nil {
		return nil, err
	}

	if _, err := s.store.Profiles().OrganizerByUser(ctx, in.UserID); err == nil {
		return nil, ErrAlreadyOrganizer
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	o, err := s.store.Profiles().CreateOrganizer(ctx, &domain.Organizer{
		UserID:              in.UserID,
		DocumentType:        in.DocumentType,
		DocumentNumber:      in.DocumentNumber,
		BusinessName:        in.BusinessName,
		TaxID:               in.TaxID,
		WorkCertificateFile: in.WorkCertificateFile,
	})
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrAlreadyOrganizer
		}
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	s.log.InfoContext(ctx, "organizer profile created",
		slog.Int64("organizer_id", o.ID),
		slog.Int64("user_id", o.UserID),
	)

	return o, nil
}

func (s *Service) Organizer(ctx context.Context, p domain.Principal, id int64) (*domain.Organizer, error) {
	const op = "profiles.Service.Organizer"

	o, err := s.store.Profiles().Organizer(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOrganizerNotFound
		}
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	if err := authz.SelfOrAdmin(p, o.UserID); err != nil {
		return nil, err
	}

	return o, nil
}

func (s *Service) Organizers(ctx context.Context, p domain.Principal, limit, offset int) ([]domain.Organizer, error) {
	const op = "profiles.Service.Organizers"

	if err := authz.AdminOnly(p); err != nil {
		return nil, err
	}

	out, err := s.store.Profiles().Organizers(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

// UpdateOrganizer patches an organizer profile. Approval is an
// administrative act; the remaining fields follow the usual
// owner-or-admin rule.
func (s *Service) UpdateOrganizer(ctx context.Context, p domain.Principal, id int64, patch postgresrepo.OrganizerPatch) (*domain.Organizer, error) {
	const op = "profiles.Service.UpdateOrganizer"

	o, err := s.store.Profiles().Organizer(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOrganizerNotFound
		}
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	if patch.IsApproved != nil {
		if err := authz.AdminOnly(p); err != nil {
			return nil, err
		}
	} else if err := authz.SelfOrAdmin(p, o.UserID); err != nil {
		return nil, err
	}

	updated, err := s.store.Profiles().UpdateOrganizer(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	if patch.IsApproved != nil && *patch.IsApproved && !o.IsApproved {
		s.log.InfoContext(ctx, "organizer approved",
			slog.Int64("organizer_id", id),
			slog.Int64("approved_by", p.UserID),
		)
	}

	return updated, nil
}

// CreateVerifier enrolls a user as a gate verifier for an organizer.
// Organizers may only enroll verifiers under their own profile.
func (s *Service) CreateVerifier(ctx context.Context, p domain.Principal, userID, organizerID int64) (*domain.Verifier, error) {
	const op = "profiles.Service.CreateVerifier"

	org, err := s.store.Profiles().Organizer(ctx, organizerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOrganizerNotFound
		}
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	if !p.Role.IsAdmin() && org.UserID != p.UserID {
		return nil, authz.ErrForbidden
	}

	if _, err := s.store.Profiles().VerifierByUser(ctx, userID); err == nil {
		return nil, ErrAlreadyVerifier
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	v, err := s.store.Profiles().CreateVerifier(ctx, &domain.Verifier{
		UserID:      userID,
		OrganizerID: organizerID,
	})
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrAlreadyVerifier
		}
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return v, nil
}

func (s *Service) Verifier(ctx context.Context, p domain.Principal, id int64) (*domain.Verifier, error) {
	const op = "profiles.Service.Verifier"

	v, err := s.store.Profiles().Verifier(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrVerifierNotFound
		}
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	if err := authz.SelfOrAdmin(p, v.UserID); err != nil {
		return nil, err
	}

	return v, nil
}

func (s *Service) Verifiers(ctx context.Context, p domain.Principal, limit, offset int) ([]domain.Verifier, error) {
	const op = "profiles.Service.Verifiers"

	if err := authz.AdminOnly(p); err != nil {
		return nil, err
	}

	out, err := s.store.Profiles().Verifiers(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

// ReassignVerifier moves a verifier to another organizer. Admin only.
func (s *Service) ReassignVerifier(ctx context.Context, p domain.Principal, id int64, organizerID int64) (*domain.Verifier, error) {
	const op = "profiles.Service.ReassignVerifier"

	if _, err := s.store.Profiles().Verifier(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrVerifierNotFound
		}
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	if err := authz.AdminOnly(p); err != nil {
		return nil, err
	}

	if _, err := s.store.Profiles().Organizer(ctx, organizerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOrganizerNotFound
		}
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	v, err := s.store.Profiles().UpdateVerifier(ctx, id, &organizerID)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return v, nil
}
