package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"wefixit/internal/apperr"
	"wefixit/internal/model"
)

type QuoteRepository struct {
	db *pgxpool.Pool
}

func NewQuoteRepository(db *pgxpool.Pool) *QuoteRepository {
	return &QuoteRepository{db: db}
}

const quoteColumns = `id, name, email, phone, company, service_type, project_title, description,
        features, timeline, budget, has_existing_website, preferred_style, target_audience,
        additional_notes, estimate, created_at`

func scanQuote(row pgx.Row) (*model.QuoteRequest, error) {
	var q model.QuoteRequest
	err := row.Scan(
		&q.ID,
		&q.Name,
		&q.Email,
		&q.Phone,
		&q.Company,
		&q.ServiceType,
		&q.ProjectTitle,
		&q.Description,
		&q.Features,
		&q.Timeline,
		&q.Budget,
		&q.HasExistingWebsite,
		&q.PreferredStyle,
		&q.TargetAudience,
		&q.AdditionalNotes,
		&q.Estimate,
		&q.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	q.Features = nonNil(q.Features)
	return &q, nil
}

func (r *QuoteRepository) Create(ctx context.Context, q *model.QuoteRequest) error {
	query := `
        INSERT INTO quote_requests (name, email, phone, company, service_type, project_title,
            description, features, timeline, budget, has_existing_website, preferred_style,
            target_audience, additional_notes, estimate, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, NOW())
        RETURNING id, created_at
    `
	q.Features = nonNil(q.Features)
	err := r.db.QueryRow(ctx, query,
		q.Name, q.Email, q.Phone, q.Company, q.ServiceType, q.ProjectTitle, q.Description,
		q.Features, q.Timeline, q.Budget, q.HasExistingWebsite, q.PreferredStyle,
		q.TargetAudience, q.AdditionalNotes, q.Estimate,
	).Scan(&q.ID, &q.CreatedAt)
	if err != nil {
		return apperr.Persistence("create quote request", err)
	}
	return nil
}

func (r *QuoteRepository) Get(ctx context.Context, id int64) (*model.QuoteRequest, error) {
	q, err := scanQuote(r.db.QueryRow(ctx, `SELECT `+quoteColumns+` FROM quote_requests WHERE id = $1`, id))
	if err != nil {
		return nil, wrap("get quote request", "quote", id, err)
	}
	return q, nil
}

func (r *QuoteRepository) List(ctx context.Context, page model.Page) ([]model.QuoteRequest, error) {
	query := `
        SELECT ` + quoteColumns + `
        FROM quote_requests
        ORDER BY created_at DESC, id DESC
        LIMIT $1 OFFSET $2
    `
	rows, err := r.db.Query(ctx, query, limitArg(page.Limit), page.Offset)
	if err != nil {
		return nil, apperr.Persistence("list quote requests", err)
	}
	defer rows.Close()

	out := []model.QuoteRequest{}
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, apperr.Persistence("scan quote request", err)
		}
		out = append(out, *q)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Persistence("list quote requests", err)
	}
	return out, nil
}
