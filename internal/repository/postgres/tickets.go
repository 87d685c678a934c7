package postgresrepo

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/suyay-events/suyay-go/internal/domain"
)

type TicketRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *TicketRepo) With(db DB) *TicketRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *TicketRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

const ticketColumns = `id, purchase_id, code, created_at, used_at, status, verifier_id`

func scanTicket(row interface{ Scan(...any) error }) (*domain.Ticket, error) {
	var t domain.Ticket
	err := row.Scan(
		&t.ID,
		&t.PurchaseID,
		&t.Code,
		&t.CreatedAt,
		&t.UsedAt,
		&t.Status,
		&t.VerifierID,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TicketRepo) Get(ctx context.Context, id int64) (*domain.Ticket, error) {
	const op = "postgresrepo.TicketRepo.Get"

	db := r.handle()

	t, err := scanTicket(db.QueryRow(ctx,
		`SELECT `+ticketColumns+` FROM tickets WHERE id = $1`, id))
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return t, nil
}

func (r *TicketRepo) GetByCode(ctx context.Context, code string) (*domain.Ticket, error) {
	const op = "postgresrepo.TicketRepo.GetByCode"

	db := r.handle()

	t, err := scanTicket(db.QueryRow(ctx,
		`SELECT `+ticketColumns+` FROM tickets WHERE code = $1`, code))
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return t, nil
}

type TicketFilter struct {
	PurchaseID *int64
	UserID     *int64
	Limit      int
	Offset     int
}

// List narrows by purchase or, via the purchase join, by the owning user.
func (r *TicketRepo) List(ctx context.Context, f TicketFilter) ([]domain.Ticket, error) {
	const op = "postgresrepo.TicketRepo.List"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT t.id, t.purchase_id, t.code, t.created_at, t.used_at, t.status, t.verifier_id
		 FROM tickets t
		 JOIN purchases p ON p.id = t.purchase_id
		 WHERE ($1::bigint IS NULL OR t.purchase_id = $1)
		   AND ($2::bigint IS NULL OR p.user_id = $2)
		 ORDER BY t.created_at
		 LIMIT $3 OFFSET $4`,
		f.PurchaseID, f.UserID, f.Limit, f.Offset,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	var out []domain.Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, wrapDBErr(op, err)
		}
		out = append(out, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

// Insert persists a freshly issued ticket. The unique constraint on
// tickets.code is the authoritative uniqueness guarantee; a collision
// surfaces as repository.ErrConflict so the issuer can redraw.
func (r *TicketRepo) Insert(ctx context.Context, purchaseID int64, code string) (*domain.Ticket, error) {
	const op = "postgresrepo.TicketRepo.Insert"

	db := r.handle()

	t, err := scanTicket(db.QueryRow(ctx,
		`INSERT INTO tickets(purchase_id, code, status)
		 VALUES ($1, $2, 'active')
		 RETURNING `+ticketColumns,
		purchaseID, code,
	))
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return t, nil
}

// MarkUsed transitions an active ticket to used, stamping the usage time
// and the validating verifier. Returns repository.ErrNotFound when the
// ticket is missing or no longer active.
func (r *TicketRepo) MarkUsed(ctx context.Context, id int64, verifierID *int64, at time.Time) (*domain.Ticket, error) {
	const op = "postgresrepo.TicketRepo.MarkUsed"

	db := r.handle()

	t, err := scanTicket(db.QueryRow(ctx,
		`UPDATE tickets
		 SET status = 'used', used_at = $2, verifier_id = $3
		 WHERE id = $1 AND status = 'active'
		 RETURNING `+ticketColumns,
		id, at, verifierID,
	))
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return t, nil
}

// MarkExpired transitions a ticket to expired from either live state.
func (r *TicketRepo) MarkExpired(ctx context.Context, id int64) (*domain.Ticket, error) {
	const op = "postgresrepo.TicketRepo.MarkExpired"

	db := r.handle()

	t, err := scanTicket(db.QueryRow(ctx,
		`UPDATE tickets
		 SET status = 'expired'
		 WHERE id = $1 AND status IN ('active', 'used')
		 RETURNING `+ticketColumns,
		id,
	))
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return t, nil
}
