package postgresrepo

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/suyay-events/suyay-go/internal/domain"
)

// CatalogRepo serves the read-only lookup tables: roles, categories and
// the department/province/district location hierarchy.
type CatalogRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *CatalogRepo) With(db DB) *CatalogRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *CatalogRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

func (r *CatalogRepo) Roles(ctx context.Context) ([]domain.RoleEntry, error) {
	const op = "postgresrepo.CatalogRepo.Roles"

	db := r.handle()

	rows, err := db.Query(ctx, `SELECT id, name FROM roles ORDER BY id`)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	var out []domain.RoleEntry
	for rows.Next() {
		var re domain.RoleEntry
		if err := rows.Scan(&re.ID, &re.Name); err != nil {
			return nil, wrapDBErr(op, err)
		}
		out = append(out, re)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

func (r *CatalogRepo) Categories(ctx context.Context) ([]domain.Category, error) {
	const op = "postgresrepo.CatalogRepo.Categories"

	db := r.handle()

	rows, err := db.Query(ctx, `SELECT id, name FROM categories ORDER BY name`)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	var out []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, wrapDBErr(op, err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

func (r *CatalogRepo) Departments(ctx context.Context) ([]domain.Department, error) {
	const op = "postgresrepo.CatalogRepo.Departments"

	db := r.handle()

	rows, err := db.Query(ctx, `SELECT id, name FROM departments ORDER BY name`)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	var out []domain.Department
	for rows.Next() {
		var d domain.Department
		if err := rows.Scan(&d.ID, &d.Name); err != nil {
			return nil, wrapDBErr(op, err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

func (r *CatalogRepo) Provinces(ctx context.Context, departmentID *int64) ([]domain.Province, error) {
	const op = "postgresrepo.CatalogRepo.Provinces"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT id, department_id, name
		 FROM provinces
		 WHERE $1::bigint IS NULL OR department_id = $1
		 ORDER BY name`,
		departmentID,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	var out []domain.Province
	for rows.Next() {
		var p domain.Province
		if err := rows.Scan(&p.ID, &p.DepartmentID, &p.Name); err != nil {
			return nil, wrapDBErr(op, err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

func (r *CatalogRepo) Districts(ctx context.Context, provinceID *int64) ([]domain.District, error) {
	const op = "postgresrepo.CatalogRepo.Districts"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT id, province_id, name
		 FROM districts
		 WHERE $1::bigint IS NULL OR province_id = $1
		 ORDER BY name`,
		provinceID,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	var out []domain.District
	for rows.Next() {
		var d domain.District
		if err := rows.Scan(&d.ID, &d.ProvinceID, &d.Name); err != nil {
			return nil, wrapDBErr(op, err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}
