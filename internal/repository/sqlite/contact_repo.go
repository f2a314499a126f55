package sqlite

import (
	"context"
	"database/sql"

	"wefixit/internal/apperr"
	"wefixit/internal/model"
)

type ContactRepository struct {
	db *sql.DB
}

func NewContactRepository(db *sql.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

func (s *ContactRepository) Create(ctx context.Context, m *model.ContactMessage) error {
	ts := now()
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO contact_messages (first_name, last_name, email, phone, subject, message, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.FirstName, m.LastName, m.Email, m.Phone, m.Subject, m.Message, ts,
	)
	if err != nil {
		return apperr.Persistence("create contact message", err)
	}
	if m.ID, err = res.LastInsertId(); err != nil {
		return apperr.Persistence("create contact message", err)
	}
	m.CreatedAt = ts
	return nil
}

func (s *ContactRepository) List(ctx context.Context, page model.Page) ([]model.ContactMessage, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, first_name, last_name, email, phone, subject, message, created_at
		FROM contact_messages
		ORDER BY id DESC
		LIMIT ? OFFSET ?`,
		limitArg(page.Limit), page.Offset,
	)
	if err != nil {
		return nil, apperr.Persistence("list contact messages", err)
	}
	defer rows.Close()

	out := []model.ContactMessage{}
	for rows.Next() {
		var m model.ContactMessage
		if err := rows.Scan(&m.ID, &m.FirstName, &m.LastName, &m.Email, &m.Phone, &m.Subject, &m.Message, &m.CreatedAt); err != nil {
			return nil, apperr.Persistence("scan contact message", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Persistence("list contact messages", err)
	}
	return out, nil
}

func (s *ContactRepository) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM contact_messages WHERE id = ?", id)
	if err != nil {
		return apperr.Persistence("delete contact message", err)
	}
	return checkAffected(res, "delete contact message", "contact message", id)
}
