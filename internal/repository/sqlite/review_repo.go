package sqlite

import (
	"context"
	"database/sql"

	"wefixit/internal/apperr"
	"wefixit/internal/model"
)

type ReviewRepository struct {
	db *sql.DB
}

func NewReviewRepository(db *sql.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

const reviewColumns = `id, name, email, company, message, rating, project_type, status, created_at, updated_at`

func scanReview(row rowScanner) (*model.Review, error) {
	var r model.Review
	err := row.Scan(
		&r.ID, &r.Name, &r.Email, &r.Company, &r.Message, &r.Rating,
		&r.ProjectType, &r.Status, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *ReviewRepository) Create(ctx context.Context, r *model.Review) error {
	ts := now()
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO reviews (name, email, company, message, rating, project_type, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Name, r.Email, r.Company, r.Message, r.Rating, r.ProjectType, r.Status, ts, ts,
	)
	if err != nil {
		return apperr.Persistence("create review", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return apperr.Persistence("create review", err)
	}
	r.ID = id
	r.CreatedAt, r.UpdatedAt = ts, ts
	return nil
}

func (s *ReviewRepository) Get(ctx context.Context, id int64) (*model.Review, error) {
	r, err := scanReview(s.db.QueryRowContext(ctx, "SELECT "+reviewColumns+" FROM reviews WHERE id = ?", id))
	if err != nil {
		return nil, wrap("get review", "review", id, err)
	}
	return r, nil
}

// List returns reviews newest first. An empty status matches every review.
func (s *ReviewRepository) List(ctx context.Context, f model.ReviewFilter) ([]model.Review, error) {
	query := "SELECT " + reviewColumns + " FROM reviews"
	var args []any
	if f.Status != "" {
		query += " WHERE status = ?"
		args = append(args, f.Status)
	}
	query += " ORDER BY id DESC LIMIT ? OFFSET ?"
	args = append(args, limitArg(f.Limit), f.Offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperr.Persistence("list reviews", err)
	}
	defer rows.Close()

	out := []model.Review{}
	for rows.Next() {
		r, err := scanReview(rows)
		if err != nil {
			return nil, apperr.Persistence("scan review", err)
		}
		out = append(out, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Persistence("list reviews", err)
	}
	return out, nil
}

// SetStatus moves a review to status. Setting the status it already has
// leaves the row untouched.
func (s *ReviewRepository) SetStatus(ctx context.Context, id int64, status model.ReviewStatus) (*model.Review, error) {
	_, err := s.db.ExecContext(ctx,
		"UPDATE reviews SET status = ?, updated_at = ? WHERE id = ? AND status <> ?",
		status, now(), id, status,
	)
	if err != nil {
		return nil, apperr.Persistence("set review status", err)
	}
	return s.Get(ctx, id)
}

func (s *ReviewRepository) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM reviews WHERE id = ?", id)
	if err != nil {
		return apperr.Persistence("delete review", err)
	}
	return checkAffected(res, "delete review", "review", id)
}
