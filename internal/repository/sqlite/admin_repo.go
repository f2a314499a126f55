package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"wefixit/internal/apperr"
	"wefixit/internal/model"
)

type AdminRepository struct {
	db *sql.DB
}

func NewAdminRepository(db *sql.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

// Create inserts a new admin. A taken username is a validation error.
func (s *AdminRepository) Create(ctx context.Context, a *model.Admin) error {
	ts := now()
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO admins (username, password_hash, created_at) VALUES (?, ?, ?)",
		a.Username, a.PasswordHash, ts,
	)
	if isUniqueViolation(err) {
		return apperr.Validation("username already exists", "username", "already taken")
	}
	if err != nil {
		return apperr.Persistence("create admin", err)
	}
	if a.ID, err = res.LastInsertId(); err != nil {
		return apperr.Persistence("create admin", err)
	}
	a.CreatedAt = ts
	return nil
}

// FindByUsername returns the admin or a NotFoundError.
func (s *AdminRepository) FindByUsername(ctx context.Context, username string) (*model.Admin, error) {
	var a model.Admin
	err := s.db.QueryRowContext(ctx,
		"SELECT id, username, password_hash, created_at FROM admins WHERE username = ?", username,
	).Scan(&a.ID, &a.Username, &a.PasswordHash, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("admin", username)
	}
	if err != nil {
		return nil, apperr.Persistence("find admin", err)
	}
	return &a, nil
}
