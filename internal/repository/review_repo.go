package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"wefixit/internal/apperr"
	"wefixit/internal/model"
)

type ReviewRepository struct {
	db *pgxpool.Pool
}

func NewReviewRepository(db *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{db: db}
}

const reviewColumns = `id, name, email, company, message, rating, project_type, status, created_at, updated_at`

func scanReview(row pgx.Row) (*model.Review, error) {
	var rv model.Review
	err := row.Scan(
		&rv.ID,
		&rv.Name,
		&rv.Email,
		&rv.Company,
		&rv.Message,
		&rv.Rating,
		&rv.ProjectType,
		&rv.Status,
		&rv.CreatedAt,
		&rv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *ReviewRepository) Create(ctx context.Context, rv *model.Review) error {
	query := `
        INSERT INTO reviews (name, email, company, message, rating, project_type, status, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
        RETURNING id, created_at, updated_at
    `
	err := r.db.QueryRow(ctx, query,
		rv.Name, rv.Email, rv.Company, rv.Message, rv.Rating, rv.ProjectType, string(rv.Status),
	).Scan(&rv.ID, &rv.CreatedAt, &rv.UpdatedAt)
	if err != nil {
		return apperr.Persistence("create review", err)
	}
	return nil
}

func (r *ReviewRepository) Get(ctx context.Context, id int64) (*model.Review, error) {
	rv, err := scanReview(r.db.QueryRow(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE id = $1`, id))
	if err != nil {
		return nil, wrap("get review", "review", id, err)
	}
	return rv, nil
}

// List returns reviews newest first. An empty status matches every review.
func (r *ReviewRepository) List(ctx context.Context, f model.ReviewFilter) ([]model.Review, error) {
	query := `
        SELECT ` + reviewColumns + `
        FROM reviews
        WHERE ($1 = '' OR status = $1)
        ORDER BY created_at DESC, id DESC
        LIMIT $2 OFFSET $3
    `
	rows, err := r.db.Query(ctx, query, string(f.Status), limitArg(f.Limit), f.Offset)
	if err != nil {
		return nil, apperr.Persistence("list reviews", err)
	}
	defer rows.Close()

	out := []model.Review{}
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, apperr.Persistence("scan review", err)
		}
		out = append(out, *rv)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Persistence("list reviews", err)
	}
	return out, nil
}

// SetStatus moves a review to status. Setting the status it already has
// leaves the row untouched.
func (r *ReviewRepository) SetStatus(ctx context.Context, id int64, status model.ReviewStatus) (*model.Review, error) {
	query := `
        UPDATE reviews
        SET status = $1, updated_at = NOW()
        WHERE id = $2 AND status <> $1
    `
	if _, err := r.db.Exec(ctx, query, string(status), id); err != nil {
		return nil, apperr.Persistence("set review status", err)
	}
	return r.Get(ctx, id)
}

func (r *ReviewRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return apperr.Persistence("delete review", err)
	}
	return checkAffected(tag, "review", id)
}
