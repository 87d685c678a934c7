package postgresrepo

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/suyay-events/suyay-go/internal/domain"
)

type UserRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *UserRepo) With(db DB) *UserRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *UserRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

const userColumns = `id, first_names, last_names, avatar_url, email, password, phone, role_id, gender, created_at`

func scanUser(row interface{ Scan(...any) error }) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID,
		&u.FirstNames,
		&u.LastNames,
		&u.AvatarURL,
		&u.Email,
		&u.PasswordHash,
		&u.Phone,
		&u.RoleID,
		&u.Gender,
		&u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	u.Role = domain.RoleFromID(u.RoleID)
	return &u, nil
}

func (r *UserRepo) Get(ctx context.Context, id int64) (*domain.User, error) {
	const op = "postgresrepo.UserRepo.Get"

	db := r.handle()

	u, err := scanUser(db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return u, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const op = "postgresrepo.UserRepo.GetByEmail"

	db := r.handle()

	u, err := scanUser(db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return u, nil
}

func (r *UserRepo) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	const op = "postgresrepo.UserRepo.List"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY id LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	var out []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, wrapDBErr(op, err)
		}
		out = append(out, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

func (r *UserRepo) Create(
	ctx context.Context,
	u *domain.User,
) (*domain.User, error) {
	const op = "postgresrepo.UserRepo.Create"

	db := r.handle()

	created, err := scanUser(db.QueryRow(ctx,
		`INSERT INTO users(first_names, last_names, avatar_url, email, password, phone, role_id, gender)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+userColumns,
		u.FirstNames, u.LastNames, u.AvatarURL, u.Email, u.PasswordHash, u.Phone, u.RoleID, u.Gender,
	))
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return created, nil
}

// UserPatch carries the optional fields of a profile update; nil means
// keep the current value.
type UserPatch struct {
	FirstNames *string
	LastNames  *string
	AvatarURL  *string
	Phone      *string
	Gender     *string
}

func (r *UserRepo) Update(ctx context.Context, id int64, p UserPatch) (*domain.User, error) {
	const op = "postgresrepo.UserRepo.Update"

	db := r.handle()

	u, err := scanUser(db.QueryRow(ctx,
		`UPDATE users SET
			first_names = COALESCE($2, first_names),
			last_names  = COALESCE($3, last_names),
			avatar_url  = COALESCE($4, avatar_url),
			phone       = COALESCE($5, phone),
			gender      = COALESCE($6, gender)
		 WHERE id = $1
		 RETURNING `+userColumns,
		id, p.FirstNames, p.LastNames, p.AvatarURL, p.Phone, p.Gender,
	))
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return u, nil
}
