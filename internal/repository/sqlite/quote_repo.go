package sqlite

import (
	"context"
	"database/sql"

	"wefixit/internal/apperr"
	"wefixit/internal/model"
)

type QuoteRepository struct {
	db *sql.DB
}

func NewQuoteRepository(db *sql.DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

const quoteColumns = `id, name, email, phone, company, service_type, project_title, description,
	features, timeline, budget, has_existing_website, preferred_style, target_audience,
	additional_notes, estimate, created_at`

func scanQuote(row rowScanner) (*model.QuoteRequest, error) {
	var (
		q     model.QuoteRequest
		feats string
	)
	err := row.Scan(
		&q.ID, &q.Name, &q.Email, &q.Phone, &q.Company, &q.ServiceType, &q.ProjectTitle,
		&q.Description, &feats, &q.Timeline, &q.Budget, &q.HasExistingWebsite,
		&q.PreferredStyle, &q.TargetAudience, &q.AdditionalNotes, &q.Estimate, &q.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if q.Features, err = decodeList(feats); err != nil {
		return nil, err
	}
	return &q, nil
}

func (s *QuoteRepository) Create(ctx context.Context, q *model.QuoteRequest) error {
	feats, err := encodeList(q.Features)
	if err != nil {
		return apperr.Persistence("encode features", err)
	}
	ts := now()
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO quote_requests (name, email, phone, company, service_type, project_title,
			description, features, timeline, budget, has_existing_website, preferred_style,
			target_audience, additional_notes, estimate, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		q.Name, q.Email, q.Phone, q.Company, q.ServiceType, q.ProjectTitle, q.Description,
		feats, q.Timeline, q.Budget, q.HasExistingWebsite, q.PreferredStyle, q.TargetAudience,
		q.AdditionalNotes, q.Estimate, ts,
	)
	if err != nil {
		return apperr.Persistence("create quote request", err)
	}
	if q.ID, err = res.LastInsertId(); err != nil {
		return apperr.Persistence("create quote request", err)
	}
	q.CreatedAt = ts
	if q.Features == nil {
		q.Features = []string{}
	}
	return nil
}

func (s *QuoteRepository) Get(ctx context.Context, id int64) (*model.QuoteRequest, error) {
	q, err := scanQuote(s.db.QueryRowContext(ctx, "SELECT "+quoteColumns+" FROM quote_requests WHERE id = ?", id))
	if err != nil {
		return nil, wrap("get quote request", "quote", id, err)
	}
	return q, nil
}

func (s *QuoteRepository) List(ctx context.Context, page model.Page) ([]model.QuoteRequest, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+quoteColumns+" FROM quote_requests ORDER BY id DESC LIMIT ? OFFSET ?",
		limitArg(page.Limit), page.Offset,
	)
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
