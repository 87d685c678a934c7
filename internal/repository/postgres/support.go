package postgresrepo

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/suyay-events/suyay-go/internal/domain"
)

// SupportRepo persists the public-facing support entities: consumer
// claims and contact messages.
type SupportRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *SupportRepo) With(db DB) *SupportRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *SupportRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

const claimColumns = `id, first_names, last_names, document_type, document_number, address, district_id, home_phone, mobile_phone, email, is_minor, claim_amount, service_type, product_service_description, claim_type, claim_detail, customer_request, created_at, status`

func scanClaim(row interface{ Scan(...any) error }) (*domain.Claim, error) {
	var c domain.Claim
	err := row.Scan(
		&c.ID,
		&c.FirstNames,
		&c.LastNames,
		&c.DocumentType,
		&c.DocumentNumber,
		&c.Address,
		&c.DistrictID,
		&c.HomePhone,
		&c.MobilePhone,
		&c.Email,
		&c.IsMinor,
		&c.ClaimAmount,
		&c.ServiceType,
		&c.ProductDescription,
		&c.ClaimType,
		&c.ClaimDetail,
		&c.CustomerRequest,
		&c.CreatedAt,
		&c.Status,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *SupportRepo) Claim(ctx context.Context, id int64) (*domain.Claim, error) {
	const op = "postgresrepo.SupportRepo.Claim"

	db := r.handle()

	c, err := scanClaim(db.QueryRow(ctx,
		`SELECT `+claimColumns+` FROM claims WHERE id = $1`, id))
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return c, nil
}

func (r *SupportRepo) Claims(ctx context.Context, limit, offset int) ([]domain.Claim, error) {
	const op = "postgresrepo.SupportRepo.Claims"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT `+claimColumns+` FROM claims ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	var out []domain.Claim
	for rows.Next() {
		c, err := scanClaim(rows)
		if err != nil {
			return nil, wrapDBErr(op, err)
		}
		out = append(out, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

func (r *SupportRepo) CreateClaim(ctx context.Context, c *domain.Claim) (*domain.Claim, error) {
	const op = "postgresrepo.SupportRepo.CreateClaim"

	db := r.handle()

	created, err := scanClaim(db.QueryRow(ctx,
		`INSERT INTO claims(first_names, last_names, document_type, document_number, address, district_id, home_phone, mobile_phone, email, is_minor, claim_amount, service_type, product_service_description, claim_type, claim_detail, customer_request)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		 RETURNING `+claimColumns,
		c.FirstNames, c.LastNames, c.DocumentType, c.DocumentNumber, c.Address,
		c.DistrictID, c.HomePhone, c.MobilePhone, c.Email, c.IsMinor, c.ClaimAmount,
		c.ServiceType, c.ProductDescription, c.ClaimType, c.ClaimDetail, c.CustomerRequest,
	))
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return created, nil
}

func (r *SupportRepo) UpdateClaimStatus(ctx context.Context, id int64, status domain.ModerationStatus) (*domain.Claim, error) {
	const op = "postgresrepo.SupportRepo.UpdateClaimStatus"

	db := r.handle()

	c, err := scanClaim(db.QueryRow(ctx,
		`UPDATE claims SET status = $2 WHERE id = $1 RETURNING `+claimColumns,
		id, status,
	))
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return c, nil
}

const contactColumns = `id, first_names, last_names, email, phone, subject, message, created_at, status`

func scanContact(row interface{ Scan(...any) error }) (*domain.ContactMessage, error) {
	var m domain.ContactMessage
	err := row.Scan(
		&m.ID,
		&m.FirstNames,
		&m.LastNames,
		&m.Email,
		&m.Phone,
		&m.Subject,
		&m.Message,
		&m.CreatedAt,
		&m.Status,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *SupportRepo) ContactMessage(ctx context.Context, id int64) (*domain.ContactMessage, error) {
	const op = "postgresrepo.SupportRepo.ContactMessage"

	db := r.handle()

	m, err := scanContact(db.QueryRow(ctx,
		`SELECT `+contactColumns+` FROM contact_messages WHERE id = $1`, id))
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return m, nil
}

func (r *SupportRepo) ContactMessages(ctx context.Context, limit, offset int) ([]domain.ContactMessage, error) {
	const op = "postgresrepo.SupportRepo.ContactMessages"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT `+contactColumns+` FROM contact_messages ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	var out []domain.ContactMessage
	for rows.Next() {
		m, err := scanContact(rows)
		if err != nil {
			return nil, wrapDBErr(op, err)
		}
		out = append(out, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

func (r *SupportRepo) CreateContactMessage(ctx context.Context, m *domain.ContactMessage) (*domain.ContactMessage, error) {
	const op = "postgresrepo.SupportRepo.CreateContactMessage"

	db := r.handle()

	created, err := scanContact(db.QueryRow(ctx,
		`INSERT INTO contact_messages(first_names, last_names, email, phone, subject, message)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+contactColumns,
		m.FirstNames, m.LastNames, m.Email, m.Phone, m.Subject, m.Message,
	))
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return created, nil
}

func (r *SupportRepo) UpdateContactStatus(ctx context.Context, id int64, status domain.ModerationStatus) (*domain.ContactMessage, error) {
	const op = "postgresrepo.SupportRepo.UpdateContactStatus"

	db := r.handle()

	m, err := scanContact(db.QueryRow(ctx,
		`UPDATE contact_messages SET status = $2 WHERE id = $1 RETURNING `+contactColumns,
		id, status,
	))
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return m, nil
}
