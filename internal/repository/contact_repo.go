package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"wefixit/internal/apperr"
	"wefixit/internal/model"
)

type ContactRepository struct {
	db *pgxpool.Pool
}

func NewContactRepository(db *pgxpool.Pool) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) Create(ctx context.Context, m *model.ContactMessage) error {
	query := `
        INSERT INTO contact_messages (first_name, last_name, email, phone, subject, message, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, NOW())
        RETURNING id, created_at
    `
	err := r.db.QueryRow(ctx, query,
		m.FirstName, m.LastName, m.Email, m.Phone, m.Subject, m.Message,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return apperr.Persistence("create contact message", err)
	}
	return nil
}

func (r *ContactRepository) List(ctx context.Context, page model.Page) ([]model.ContactMessage, error) {
	query := `
        SELECT id, first_name, last_name, email, phone, subject, message, created_at
        FROM contact_messages
        ORDER BY created_at DESC, id DESC
        LIMIT $1 OFFSET $2
    `
	rows, err := r.db.Query(ctx, query, limitArg(page.Limit), page.Offset)
	if err != nil {
		return nil, apperr.Persistence("list contact messages", err)
	}
	defer rows.Close()

	out := []model.ContactMessage{}
	for rows.Next() {
		var m model.ContactMessage
		if err := rows.Scan(
			&m.ID, &m.FirstName, &m.LastName, &m.Email, &m.Phone, &m.Subject, &m.Message, &m.CreatedAt,
		); err != nil {
			return nil, apperr.Persistence("scan contact message", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Persistence("list contact messages", err)
	}
	return out, nil
}

func (r *ContactRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM contact_messages WHERE id = $1`, id)
	if err != nil {
		return apperr.Persistence("delete contact message", err)
	}
	return checkAffected(tag, "contact message", id)
}
