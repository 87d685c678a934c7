package postgresrepo

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/suyay-events/suyay-go/internal/domain"
)

type PurchaseRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *PurchaseRepo) With(db DB) *PurchaseRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *PurchaseRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

func (r *PurchaseRepo) Get(ctx context.Context, id int64) (*domain.Purchase, error) {
	const op = "postgresrepo.PurchaseRepo.Get"

	db := r.handle()

	var p domain.Purchase
	err := db.QueryRow(ctx,
		`SELECT id, event_id, user_id, total_amount, purchase_date
		 FROM purchases WHERE id = $1`,
		id,
	).Scan(&p.ID, &p.EventID, &p.UserID, &p.TotalAmount, &p.PurchaseDate)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &p, nil
}

type PurchaseFilter struct {
	UserID  *int64
	EventID *int64
	Limit   int
	Offset  int
}

func (r *PurchaseRepo) List(ctx context.Context, f PurchaseFilter) ([]domain.Purchase, error) {
	const op = "postgresrepo.PurchaseRepo.List"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT id, event_id, user_id, total_amount, purchase_date
		 FROM purchases
		 WHERE ($1::bigint IS NULL OR user_id = $1)
		   AND ($2::bigint IS NULL OR event_id = $2)
		 ORDER BY purchase_date DESC
		 LIMIT $3 OFFSET $4`,
		f.UserID, f.EventID, f.Limit, f.Offset,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	var out []domain.Purchase
	for rows.Next() {
		var p domain.Purchase
		if err := rows.Scan(&p.ID, &p.EventID, &p.UserID, &p.TotalAmount, &p.PurchaseDate); err != nil {
			return nil, wrapDBErr(op, err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

func (r *PurchaseRepo) Create(ctx context.Context, p *domain.Purchase) (*domain.Purchase, error) {
	const op = "postgresrepo.PurchaseRepo.Create"

	db := r.handle()

	var created domain.Purchase
	err := db.QueryRow(ctx,
		`INSERT INTO purchases(event_id, user_id, total_amount)
		 VALUES ($1, $2, $3)
		 RETURNING id, event_id, user_id, total_amount, purchase_date`,
		p.EventID, p.UserID, p.TotalAmount,
	).Scan(&created.ID, &created.EventID, &created.UserID, &created.TotalAmount, &created.PurchaseDate)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &created, nil
}

func (r *PurchaseRepo) Details(ctx context.Context, purchaseID int64) ([]domain.PurchaseDetail, error) {
	const op = "postgresrepo.PurchaseRepo.Details"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT id, purchase_id, ticket_type_id, quantity, unit_price, subtotal
		 FROM purchase_details
		 WHERE purchase_id = $1
		 ORDER BY id`,
		purchaseID,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	var out []domain.PurchaseDetail
	for rows.Next() {
		var d domain.PurchaseDetail
		if err := rows.Scan(&d.ID, &d.PurchaseID, &d.TicketTypeID, &d.Quantity, &d.UnitPrice, &d.Subtotal); err != nil {
			return nil, wrapDBErr(op, err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

func (r *PurchaseRepo) CreateDetail(ctx context.Context, d *domain.PurchaseDetail) (*domain.PurchaseDetail, error) {
	const op = "postgresrepo.PurchaseRepo.CreateDetail"

	db := r.handle()

	var created domain.PurchaseDetail
	err := db.QueryRow(ctx,
		`INSERT INTO purchase_details(purchase_id, ticket_type_id, quantity, unit_price, subtotal)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, purchase_id, ticket_type_id, quantity, unit_price, subtotal`,
		d.PurchaseID, d.TicketTypeID, d.Quantity, d.UnitPrice, d.Subtotal,
	).Scan(&created.ID, &created.PurchaseID, &created.TicketTypeID, &created.Quantity, &created.UnitPrice, &created.Subtotal)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &created, nil
}
