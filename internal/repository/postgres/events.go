package postgresrepo

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/suyay-events/suyay-go/internal/domain"
)

type EventRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *EventRepo) With(db DB) *EventRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *EventRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

const eventColumns = `id, title, description, start_date, end_date, district_id, location_description, category_id, organizer_id, organizer_user_id, image_url, status`

func scanEvent(row interface{ Scan(...any) error }) (*domain.Event, error) {
	var e domain.Event
	err := row.Scan(
		&e.ID,
		&e.Title,
		&e.Description,
		&e.StartDate,
		&e.EndDate,
		&e.DistrictID,
		&e.LocationDescription,
		&e.CategoryID,
		&e.OrganizerID,
		&e.OrganizerUserID,
		&e.ImageURL,
		&e.Status,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EventRepo) Get(ctx context.Context, id int64) (*domain.Event, error) {
	const op = "postgresrepo.EventRepo.Get"

	db := r.handle()

	e, err := scanEvent(db.QueryRow(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = $1`, id))
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return e, nil
}

// EventFilter narrows the public event listing; nil fields match all rows.
type EventFilter struct {
	CategoryID  *int64
	OrganizerID *int64
	Limit       int
	Offset      int
}

func (r *EventRepo) List(ctx context.Context, f EventFilter) ([]domain.Event, error) {
	const op = "postgresrepo.EventRepo.List"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT `+eventColumns+`
		 FROM events
		 WHERE ($1::bigint IS NULL OR category_id = $1)
		   AND ($2::bigint IS NULL OR organizer_id = $2)
		 ORDER BY start_date
		 LIMIT $3 OFFSET $4`,
		f.CategoryID, f.OrganizerID, f.Limit, f.Offset,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	var out []domain.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, wrapDBErr(op, err)
		}
		out = append(out, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

func (r *EventRepo) Create(ctx context.Context, e *domain.Event) (*domain.Event, error) {
	const op = "postgresrepo.EventRepo.Create"

	db := r.handle()

	created, err := scanEvent(db.QueryRow(ctx,
		`INSERT INTO events(title, description, start_date, end_date, district_id, location_description, category_id, organizer_id, organizer_user_id, image_url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING `+eventColumns,
		e.Title, e.Description, e.StartDate, e.EndDate, e.DistrictID,
		e.LocationDescription, e.CategoryID, e.OrganizerID, e.OrganizerUserID, e.ImageURL,
	))
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return created, nil
}

type EventPatch struct {
	Title               *string
	Description         *string
	StartDate           *string
	EndDate             *string
	DistrictID          *int64
	LocationDescription *string
	CategoryID          *int64
	ImageURL            *string
	Status              *domain.EventStatus
}

func (r *EventRepo) Update(ctx context.Context, id int64, p EventPatch) (*domain.Event, error) {
	const op = "postgresrepo.EventRepo.Update"

	db := r.handle()

	e, err := scanEvent(db.QueryRow(ctx,
		`UPDATE events SET
			title                = COALESCE($2, title),
			description          = COALESCE($3, description),
			start_date           = COALESCE($4::timestamptz, start_date),
			end_date             = COALESCE($5::timestamptz, end_date),
			district_id          = COALESCE($6, district_id),
			location_description = COALESCE($7, location_description),
			category_id          = COALESCE($8, category_id),
			image_url            = COALESCE($9, image_url),
			status               = COALESCE($10, status)
		 WHERE id = $1
		 RETURNING `+eventColumns,
		id, p.Title, p.Description, p.StartDate, p.EndDate, p.DistrictID,
		p.LocationDescription, p.CategoryID, p.ImageURL, p.Status,
	))
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return e, nil
}

func (r *EventRepo) Delete(ctx context.Context, id int64) error {
	const op = "postgresrepo.EventRepo.Delete"

	db := r.handle()

	tag, err := db.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return wrapDBErr(op, err)
	}
	if tag.RowsAffected() == 0 {
		return wrapDBErr(op, errNoRows())
	}

	return nil
}

func (r *EventRepo) EventVerifier(ctx context.Context, id int64) (*domain.EventVerifier, error) {
	const op = "postgresrepo.EventRepo.EventVerifier"

	db := r.handle()

	var ev domain.EventVerifier
	err := db.QueryRow(ctx,
		`SELECT id, verifier_id, event_id FROM event_verifiers WHERE id = $1`, id,
	).Scan(&ev.ID, &ev.VerifierID, &ev.EventID)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &ev, nil
}

func (r *EventRepo) EventVerifiers(ctx context.Context, eventID, verifierID *int64) ([]domain.EventVerifier, error) {
	const op = "postgresrepo.EventRepo.EventVerifiers"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT id, verifier_id, event_id
		 FROM event_verifiers
		 WHERE ($1::bigint IS NULL OR event_id = $1)
		   AND ($2::bigint IS NULL OR verifier_id = $2)
		 ORDER BY id`,
		eventID, verifierID,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	var out []domain.EventVerifier
	for rows.Next() {
		var ev domain.EventVerifier
		if err := rows.Scan(&ev.ID, &ev.VerifierID, &ev.EventID); err != nil {
			return nil, wrapDBErr(op, err)
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

func (r *EventRepo) AssignVerifier(ctx context.Context, verifierID, eventID int64) (*domain.EventVerifier, error) {
	const op = "postgresrepo.EventRepo.AssignVerifier"

	db := r.handle()

	var ev domain.EventVerifier
	err := db.QueryRow(ctx,
		`INSERT INTO event_verifiers(verifier_id, event_id)
		 VALUES ($1, $2)
		 RETURNING id, verifier_id, event_id`,
		verifierID, eventID,
	).Scan(&ev.ID, &ev.VerifierID, &ev.EventID)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &ev, nil
}

func (r *EventRepo) RemoveVerifier(ctx context.Context, id int64) error {
	const op = "postgresrepo.EventRepo.RemoveVerifier"

	db := r.handle()

	tag, err := db.Exec(ctx, `DELETE FROM event_verifiers WHERE id = $1`, id)
	if err != nil {
		return wrapDBErr(op, err)
	}
	if tag.RowsAffected() == 0 {
		return wrapDBErr(op, errNoRows())
	}

	return nil
}

func (r *EventRepo) TicketType(ctx context.Context, id int64) (*domain.TicketType, error) {
	const op = "postgresrepo.EventRepo.TicketType"

	db := r.handle()

	var tt domain.TicketType
	err := db.QueryRow(ctx,
		`SELECT id, event_id, name, price, capacity FROM ticket_types WHERE id = $1`, id,
	).Scan(&tt.ID, &tt.EventID, &tt.Name, &tt.Price, &tt.Capacity)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &tt, nil
}

func (r *EventRepo) TicketTypes(ctx context.Context, eventID *int64) ([]domain.TicketType, error) {
	const op = "postgresrepo.EventRepo.TicketTypes"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT id, event_id, name, price, capacity
		 FROM ticket_types
		 WHERE $1::bigint IS NULL OR event_id = $1
		 ORDER BY id`,
		eventID,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	var out []domain.TicketType
	for rows.Next() {
		var tt domain.TicketType
		if err := rows.Scan(&tt.ID, &tt.EventID, &tt.Name, &tt.Price, &tt.Capacity); err != nil {
			return nil, wrapDBErr(op, err)
		}
		out = append(out, tt)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

func (r *EventRepo) CreateTicketType(ctx context.Context, tt *domain.TicketType) (*domain.TicketType, error) {
	const op = "postgresrepo.EventRepo.CreateTicketType"

	db := r.handle()

	var created domain.TicketType
	err := db.QueryRow(ctx,
		`INSERT INTO ticket_types(event_id, name, price, capacity)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, event_id, name, price, capacity`,
		tt.EventID, tt.Name, tt.Price, tt.Capacity,
	).Scan(&created.ID, &created.EventID, &created.Name, &created.Price, &created.Capacity)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &created, nil
}

type TicketTypePatch struct {
	Name     *string
	Price    *string
	Capacity *int
}

func (r *EventRepo) UpdateTicketType(ctx context.Context, id int64, p TicketTypePatch) (*domain.TicketType, error) {
	const op = "postgresrepo.EventRepo.UpdateTicketType"

	db := r.handle()

	var tt domain.TicketType
	err := db.QueryRow(ctx,
		`UPDATE ticket_types SET
			name     = COALESCE($2, name),
			price    = COALESCE($3::numeric, price),
			capacity = COALESCE($4, capacity)
		 WHERE id = $1
		 RETURNING id, event_id, name, price, capacity`,
		id, p.Name, p.Price, p.Capacity,
	).Scan(&tt.ID, &tt.EventID, &tt.Name, &tt.Price, &tt.Capacity)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &tt, nil
}

func (r *EventRepo) DeleteTicketType(ctx context.Context, id int64) error {
	const op = "postgresrepo.EventRepo.DeleteTicketType"

	db := r.handle()

	tag, err := db.Exec(ctx, `DELETE FROM ticket_types WHERE id = $1`, id)
	if err != nil {
		return wrapDBErr(op, err)
	}
	if tag.RowsAffected() == 0 {
		return wrapDBErr(op, errNoRows())
	}

	return nil
}
