package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"wefixit/internal/apperr"
	"wefixit/internal/model"
)

type AdminRepository struct {
	db *pgxpool.Pool
}

func NewAdminRepository(db *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{db: db}
}

// Create inserts a new admin. A taken username is a validation error.
func (r *AdminRepository) Create(ctx context.Context, a *model.Admin) error {
	query := `
        INSERT INTO admins (username, password_hash, created_at)
        VALUES ($1, $2, NOW())
        RETURNING id, created_at
    `
	err := r.db.QueryRow(ctx, query, a.Username, a.PasswordHash).Scan(&a.ID, &a.CreatedAt)
	if isUniqueViolation(err) {
		return apperr.Validation("username already exists", "username", "already taken")
	}
	if err != nil {
		return apperr.Persistence("create admin", err)
	}
	return nil
}

// FindByUsername returns the admin or a NotFoundError.
func (r *AdminRepository) FindByUsername(ctx context.Context, username string) (*model.Admin, error) {
	query := `
        SELECT id, username, password_hash, created_at
        FROM admins
        WHERE username = $1
    `
	var a model.Admin
	err := r.db.QueryRow(ctx, query, username).Scan(
		&a.ID, &a.Username, &a.PasswordHash, &a.CreatedAt,
	)
	if err != nil {
		return nil, wrap("find admin", "admin", username, err)
	}
	return &a, nil
}
