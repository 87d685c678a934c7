package postgresrepo

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/suyay-events/suyay-go/internal/domain"
)

// EngagementRepo persists the per-user engagement rows: favorites,
// ratings and abuse reports.
type EngagementRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *EngagementRepo) With(db DB) *EngagementRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *EngagementRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

func (r *EngagementRepo) Favorite(ctx context.Context, id int64) (*domain.Favorite, error) {
	const op = "postgresrepo.EngagementRepo.Favorite"

	db := r.handle()

	var f domain.Favorite
	err := db.QueryRow(ctx,
		`SELECT id, user_id, event_id FROM favorites WHERE id = $1`, id,
	).Scan(&f.ID, &f.UserID, &f.EventID)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &f, nil
}

func (r *EngagementRepo) FavoriteByUserEvent(ctx context.Context, userID, eventID int64) (*domain.Favorite, error) {
	const op = "postgresrepo.EngagementRepo.FavoriteByUserEvent"

	db := r.handle()

	var f domain.Favorite
	err := db.QueryRow(ctx,
		`SELECT id, user_id, event_id FROM favorites WHERE user_id = $1 AND event_id = $2`,
		userID, eventID,
	).Scan(&f.ID, &f.UserID, &f.EventID)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &f, nil
}

func (r *EngagementRepo) Favorites(ctx context.Context, userID int64) ([]domain.Favorite, error) {
	const op = "postgresrepo.EngagementRepo.Favorites"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT id, user_id, event_id FROM favorites WHERE user_id = $1 ORDER BY id`,
		userID,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	var out []domain.Favorite
	for rows.Next() {
		var f domain.Favorite
		if err := rows.Scan(&f.ID, &f.UserID, &f.EventID); err != nil {
			return nil, wrapDBErr(op, err)
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

func (r *EngagementRepo) CreateFavorite(ctx context.Context, userID, eventID int64) (*domain.Favorite, error) {
	const op = "postgresrepo.EngagementRepo.CreateFavorite"

	db := r.handle()

	var f domain.Favorite
	err := db.QueryRow(ctx,
		`INSERT INTO favorites(user_id, event_id)
		 VALUES ($1, $2)
		 RETURNING id, user_id, event_id`,
		userID, eventID,
	).Scan(&f.ID, &f.UserID, &f.EventID)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &f, nil
}

func (r *EngagementRepo) DeleteFavorite(ctx context.Context, id int64) error {
	const op = "postgresrepo.EngagementRepo.DeleteFavorite"

	db := r.handle()

	tag, err := db.Exec(ctx, `DELETE FROM favorites WHERE id = $1`, id)
	if err != nil {
		return wrapDBErr(op, err)
	}
	if tag.RowsAffected() == 0 {
		return wrapDBErr(op, errNoRows())
	}

	return nil
}

func (r *EngagementRepo) RatingByUserEvent(ctx context.Context, userID, eventID int64) (*domain.Rating, error) {
	const op = "postgresrepo.EngagementRepo.RatingByUserEvent"

	db := r.handle()

	var rt domain.Rating
	err := db.QueryRow(ctx,
		`SELECT id, user_id, event_id, score, comment
		 FROM ratings WHERE user_id = $1 AND event_id = $2`,
		userID, eventID,
	).Scan(&rt.ID, &rt.UserID, &rt.EventID, &rt.Score, &rt.Comment)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &rt, nil
}

func (r *EngagementRepo) Ratings(ctx context.Context, eventID, userID *int64) ([]domain.Rating, error) {
	const op = "postgresrepo.EngagementRepo.Ratings"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT id, user_id, event_id, score, comment
		 FROM ratings
		 WHERE ($1::bigint IS NULL OR event_id = $1)
		   AND ($2::bigint IS NULL OR user_id = $2)
		 ORDER BY id`,
		eventID, userID,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	var out []domain.Rating
	for rows.Next() {
		var rt domain.Rating
		if err := rows.Scan(&rt.ID, &rt.UserID, &rt.EventID, &rt.Score, &rt.Comment); err != nil {
			return nil, wrapDBErr(op, err)
		}
		out = append(out, rt)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

func (r *EngagementRepo) CreateRating(ctx context.Context, rt *domain.Rating) (*domain.Rating, error) {
	const op = "postgresrepo.EngagementRepo.CreateRating"

	db := r.handle()

	var created domain.Rating
	err := db.QueryRow(ctx,
		`INSERT INTO ratings(user_id, event_id, score, comment)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, user_id, event_id, score, comment`,
		rt.UserID, rt.EventID, rt.Score, rt.Comment,
	).Scan(&created.ID, &created.UserID, &created.EventID, &created.Score, &created.Comment)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &created, nil
}

func (r *EngagementRepo) Report(ctx context.Context, id int64) (*domain.Report, error) {
	const op = "postgresrepo.EngagementRepo.Report"

	db := r.handle()

	var rep domain.Report
	err := db.QueryRow(ctx,
		`SELECT id, user_id, report_type, description, created_at, status
		 FROM reports WHERE id = $1`,
		id,
	).Scan(&rep.ID, &rep.UserID, &rep.ReportType, &rep.Description, &rep.CreatedAt, &rep.Status)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &rep, nil
}

func (r *EngagementRepo) Reports(ctx context.Context, userID *int64, limit, offset int) ([]domain.Report, error) {
	const op = "postgresrepo.EngagementRepo.Reports"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT id, user_id, report_type, description, created_at, status
		 FROM reports
		 WHERE $1::bigint IS NULL OR user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	var out []domain.Report
	for rows.Next() {
		var rep domain.Report
		if err := rows.Scan(&rep.ID, &rep.UserID, &rep.ReportType, &rep.Description, &rep.CreatedAt, &rep.Status); err != nil {
			return nil, wrapDBErr(op, err)
		}
		out = append(out, rep)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

func (r *EngagementRepo) CreateReport(ctx context.Context, rep *domain.Report) (*domain.Report, error) {
	const op = "postgresrepo.EngagementRepo.CreateReport"

	db := r.handle()

	var created domain.Report
	err := db.QueryRow(ctx,
		`INSERT INTO reports(user_id, report_type, description)
		 VALUES ($1, $2, $3)
		 RETURNING id, user_id, report_type, description, created_at, status`,
		rep.UserID, rep.ReportType, rep.Description,
	).Scan(&created.ID, &created.UserID, &created.ReportType, &created.Description, &created.CreatedAt, &created.Status)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &created, nil
}

func (r *EngagementRepo) UpdateReportStatus(ctx context.Context, id int64, status domain.ModerationStatus) (*domain.Report, error) {
	const op = "postgresrepo.EngagementRepo.UpdateReportStatus"

	db := r.handle()

	var rep domain.Report
	err := db.QueryRow(ctx,
		`UPDATE reports SET status = $2
		 WHERE id = $1
		 RETURNING id, user_id, report_type, description, created_at, status`,
		id, status,
	).Scan(&rep.ID, &rep.UserID, &rep.ReportType, &rep.Description, &rep.CreatedAt, &rep.Status)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &rep, nil
}
