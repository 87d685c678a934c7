package purchases

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/suyay-events/suyay-go/internal/authz"
	"github.com/suyay-events/suyay-go/internal/domain"
	"github.com/suyay-events/suyay-go/internal/repository"
	postgresrepo "github.com/suyay-events/suyay-go/internal/repository/postgres"
	"github.com/suyay-events/suyay-go/internal/uow"
)

// Service records purchases and their line items. Prices are resolved
// server side from the ticket-type catalog, never trusted from the
// payload, and the purchase plus all details commit in one transaction.
type Service struct {
	store *postgresrepo.Store
	txs   *uow.UoW
	log   *slog.Logger
}

func New(store *postgresrepo.Store, txs *uow.UoW, log *slog.Logger) *Service {
	return &Service{store: store, txs: txs, log: log}
}

type Item struct {
	TicketTypeID int64
	Quantity     int
}

type CreateInput struct {
	EventID int64
	UserID  int64
	Items   []Item
}

type Result struct {
	Purchase domain.Purchase         `json:"purchase"`
	Details  []domain.PurchaseDetail `json:"details"`
}

// Create books a purchase for the payload user. Buyers may only buy for
// themselves; the event and every ticket type must exist and match.
func (s *Service) Create(ctx context.Context, p domain.Principal, in CreateInput) (*Result, error) {
	const op = "purchases.Service.Create"

	ev, err := s.store.Events().Get(ctx, in.EventID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	if err := authz.SelfOrAdmin(p, in.UserID); err != nil {
		return nil, err
	}

	if len(in.Items) == 0 {
		return nil, ErrEmptyPurchase
	}

	total := decimal.Zero
	type priced struct {
		item Item
		unit decimal.Decimal
	}
	lines := make([]priced, 0, len(in.Items))
	for _, item := range in.Items {
		if item.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}

		tt, err := s.store.Events().TicketType(ctx, item.TicketTypeID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrTicketTypeNotFound
			}
			return nil, fmt.Errorf("%s:%w", op, err)
		}
		if tt.EventID != ev.ID {
			return nil, ErrTicketTypeMismatch
		}

		total = total.Add(tt.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		lines = append(lines, priced{item: item, unit: tt.Price})
	}

	var out Result
	err = s.txs.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, _ func(uow.AfterCommit)) error {
		repo := s.store.Purchases().With(tx)

		created, err := repo.Create(ctx, &domain.Purchase{
			EventID:     ev.ID,
			UserID:      in.UserID,
			TotalAmount: total,
		})
		if err != nil {
			return err
		}
		out.Purchase = *created

		for _, ln := range lines {
			qty := decimal.NewFromInt(int64(ln.item.Quantity))
			d, err := repo.CreateDetail(ctx, &domain.PurchaseDetail{
				PurchaseID:   created.ID,
				TicketTypeID: ln.item.TicketTypeID,
				Quantity:     ln.item.Quantity,
				UnitPrice:    ln.unit,
				Subtotal:     ln.unit.Mul(qty),
			})
			if err != nil {
				return err
			}
			out.Details = append(out.Details, *d)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	s.log.InfoContext(ctx, "purchase recorded",
		slog.Int64("purchase_id", out.Purchase.ID),
		slog.Int64("event_id", ev.ID),
		slog.String("total", total.String()),
	)

	return &out, nil
}

func (s *Service) Get(ctx context.Context, p domain.Principal, id int64) (*domain.Purchase, error) {
	const op = "purchases.Service.Get"

	purchase, err := s.store.Purchases().Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPurchaseNotFound
		}
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	if err := authz.SelfOrAdmin(p, purchase.UserID); err != nil {
		return nil, err
	}

	return purchase, nil
}

// List silently narrows non-admin queries to the caller's own purchases.
func (s *Service) List(ctx context.Context, p domain.Principal, f postgresrepo.PurchaseFilter) ([]domain.Purchase, error) {
	const op = "purchases.Service.List"

	f.UserID = authz.NarrowListOwner(p, f.UserID, false)

	out, err := s.store.Purchases().List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

func (s *Service) Details(ctx context.Context, p domain.Principal, purchaseID int64) ([]domain.PurchaseDetail, error) {
	const op = "purchases.Service.Details"

	purchase, err := s.store.Purchases().Get(ctx, purchaseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPurchaseNotFound
		}
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	if err := authz.SelfOrAdmin(p, purchase.UserID); err != nil {
		return nil, err
	}

	out, err := s.store.Purchases().Details(ctx, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}
