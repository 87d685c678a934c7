package postgresrepo

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/suyay-events/suyay-go/internal/domain"
)

// ProfileRepo persists the one-to-one organizer and verifier profiles
// hanging off a user account.
type ProfileRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *ProfileRepo) With(db DB) *ProfileRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *ProfileRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

const organizerColumns = `id, user_id, document_type, document_number, business_name, tax_id, created_at, work_certificate_file, is_approved, approval_date`

func scanOrganizer(row interface{ Scan(...any) error }) (*domain.Organizer, error) {
	var o domain.Organizer
	err := row.Scan(
		&o.ID,
		&o.UserID,
		&o.DocumentType,
		&o.DocumentNumber,
		&o.BusinessName,
		&o.TaxID,
		&o.CreatedAt,
		&o.WorkCertificateFile,
		&o.IsApproved,
		&o.ApprovalDate,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *ProfileRepo) Organizer(ctx context.Context, id int64) (*domain.Organizer, error) {
	const op = "postgresrepo.ProfileRepo.Organizer"

	db := r.handle()

	o, err := scanOrganizer(db.QueryRow(ctx,
		`SELECT `+organizerColumns+` FROM organizers WHERE id = $1`, id))
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return o, nil
}

func (r *ProfileRepo) OrganizerByUser(ctx context.Context, userID int64) (*domain.Organizer, error) {
	const op = "postgresrepo.ProfileRepo.OrganizerByUser"

	db := r.handle()

	o, err := scanOrganizer(db.QueryRow(ctx,
		`SELECT `+organizerColumns+` FROM organizers WHERE user_id = $1`, userID))
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return o, nil
}

func (r *ProfileRepo) Organizers(ctx context.Context, limit, offset int) ([]domain.Organizer, error) {
	const op = "postgresrepo.ProfileRepo.Organizers"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT `+organizerColumns+` FROM organizers ORDER BY id LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	var out []domain.Organizer
	for rows.Next() {
		o, err := scanOrganizer(rows)
		if err != nil {
			return nil, wrapDBErr(op, err)
		}
		out = append(out, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

func (r *ProfileRepo) CreateOrganizer(ctx context.Context, o *domain.Organizer) (*domain.Organizer, error) {
	const op = "postgresrepo.ProfileRepo.CreateOrganizer"

	db := r.handle()

	created, err := scanOrganizer(db.QueryRow(ctx,
		`INSERT INTO organizers(user_id, document_type, document_number, business_name, tax_id, work_certificate_file)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+organizerColumns,
		o.UserID, o.DocumentType, o.DocumentNumber, o.BusinessName, o.TaxID, o.WorkCertificateFile,
	))
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return created, nil
}

type OrganizerPatch struct {
	DocumentType        *string
	DocumentNumber      *string
	BusinessName        *string
	TaxID               *string
	WorkCertificateFile *string
	IsApproved          *bool
}

func (r *ProfileRepo) UpdateOrganizer(ctx context.Context, id int64, p OrganizerPatch) (*domain.Organizer, error) {
	const op = "postgresrepo.ProfileRepo.UpdateOrganizer"

	db := r.handle()

	o, err := scanOrganizer(db.QueryRow(ctx,
		`UPDATE organizers SET
			document_type         = COALESCE($2, document_type),
			document_number       = COALESCE($3, document_number),
			business_name         = COALESCE($4, business_name),
			tax_id                = COALESCE($5, tax_id),
			work_certificate_file = COALESCE($6, work_certificate_file),
			is_approved           = COALESCE($7, is_approved),
			approval_date         = CASE WHEN $7 THEN now() ELSE approval_date END
		 WHERE id = $1
		 RETURNING `+organizerColumns,
		id, p.DocumentType, p.DocumentNumber, p.BusinessName, p.TaxID, p.WorkCertificateFile, p.IsApproved,
	))
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return o, nil
}

func (r *ProfileRepo) Verifier(ctx context.Context, id int64) (*domain.Verifier, error) {
	const op = "postgresrepo.ProfileRepo.Verifier"

	db := r.handle()

	var v domain.Verifier
	err := db.QueryRow(ctx,
		`SELECT id, user_id, organizer_id FROM verifiers WHERE id = $1`, id,
	).Scan(&v.ID, &v.UserID, &v.OrganizerID)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &v, nil
}

func (r *ProfileRepo) VerifierByUser(ctx context.Context, userID int64) (*domain.Verifier, error) {
	const op = "postgresrepo.ProfileRepo.VerifierByUser"

	db := r.handle()

	var v domain.Verifier
	err := db.QueryRow(ctx,
		`SELECT id, user_id, organizer_id FROM verifiers WHERE user_id = $1`, userID,
	).Scan(&v.ID, &v.UserID, &v.OrganizerID)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &v, nil
}

func (r *ProfileRepo) Verifiers(ctx context.Context, limit, offset int) ([]domain.Verifier, error) {
	const op = "postgresrepo.ProfileRepo.Verifiers"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT id, user_id, organizer_id FROM verifiers ORDER BY id LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	var out []domain.Verifier
	for rows.Next() {
		var v domain.Verifier
		if err := rows.Scan(&v.ID, &v.UserID, &v.OrganizerID); err != nil {
			return nil, wrapDBErr(op, err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

func (r *ProfileRepo) CreateVerifier(ctx context.Context, v *domain.Verifier) (*domain.Verifier, error) {
	const op = "postgresrepo.ProfileRepo.CreateVerifier"

	db := r.handle()

	var created domain.Verifier
	err := db.QueryRow(ctx,
		`INSERT INTO verifiers(user_id, organizer_id)
		 VALUES ($1, $2)
		 RETURNING id, user_id, organizer_id`,
		v.UserID, v.OrganizerID,
	).Scan(&created.ID, &created.UserID, &created.OrganizerID)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &created, nil
}

func (r *ProfileRepo) UpdateVerifier(ctx context.Context, id int64, organizerID *int64) (*domain.Verifier, error) {
	const op = "postgresrepo.ProfileRepo.UpdateVerifier"

	db := r.handle()

	var v domain.Verifier
	err := db.QueryRow(ctx,
		`UPDATE verifiers SET organizer_id = COALESCE($2, organizer_id)
		 WHERE id = $1
		 RETURNING id, user_id, organizer_id`,
		id, organizerID,
	).Scan(&v.ID, &v.UserID, &v.OrganizerID)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &v, nil
}
