package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"wefixit/internal/apperr"
	"wefixit/internal/model"
)

type ProjectRepository struct {
	db *pgxpool.Pool
}

func NewProjectRepository(db *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{db: db}
}

const projectColumns = `id, title, description, category, image, link, technologies, featured, created_at, updated_at`

func scanProject(row pgx.Row) (*model.Project, error) {
	var p model.Project
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&p.Category,
		&p.Image,
		&p.Link,
		&p.Technologies,
		&p.Featured,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Technologies = nonNil(p.Technologies)
	return &p, nil
}

// List returns projects newest first along with the unpaginated total.
func (r *ProjectRepository) List(ctx context.Context, f model.ProjectFilter) ([]model.Project, int, error) {
	var (
		where []string
		args  []any
	)
	if f.Featured != nil {
		args = append(args, *f.Featured)
		where = append(where, fmt.Sprintf("featured = $%d", len(args)))
	}
	if f.Category != "" {
		args = append(args, f.Category)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}
	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM projects"+clause, args...).Scan(&total); err != nil {
		return nil, 0, apperr.Persistence("count projects", err)
	}

	query := fmt.Sprintf(
		"SELECT %s FROM projects%s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d",
		projectColumns, clause, len(args)+1, len(args)+2,
	)
	rows, err := r.db.Query(ctx, query, append(args, limitArg(f.Limit), f.Offset)...)
	if err != nil {
		return nil, 0, apperr.Persistence("list projects", err)
	}
	defer rows.Close()

	items := []model.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, 0, apperr.Persistence("scan project", err)
		}
		items = append(items, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperr.Persistence("list projects", err)
	}
	return items, total, nil
}

func (r *ProjectRepository) Get(ctx context.Context, id int64) (*model.Project, error) {
	query := `
        SELECT ` + projectColumns + `
        FROM projects
        WHERE id = $1
    `
	p, err := scanProject(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, wrap("get project", "project", id, err)
	}
	return p, nil
}

// Create inserts p and fills in its id and timestamps.
func (r *ProjectRepository) Create(ctx context.Context, p *model.Project) error {
	query := `
        INSERT INTO projects (title, description, category, image, link, technologies, featured, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
        RETURNING id, created_at, updated_at
    `
	p.Technologies = nonNil(p.Technologies)
	err := r.db.QueryRow(ctx, query,
		p.Title, p.Description, p.Category, p.Image, p.Link, p.Technologies, p.Featured,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return apperr.Persistence("create project", err)
	}
	return nil
}

// Update writes every mutable field of p and bumps updated_at.
func (r *ProjectRepository) Update(ctx context.Context, p *model.Project) error {
	query := `
        UPDATE projects
        SET title = $1, description = $2, category = $3, image = $4, link = $5,
            technologies = $6, featured = $7, updated_at = NOW()
        WHERE id = $8
        RETURNING updated_at
    `
	err := r.db.QueryRow(ctx, query,
		p.Title, p.Description, p.Category, p.Image, p.Link, nonNil(p.Technologies), p.Featured, p.ID,
	).Scan(&p.UpdatedAt)
	if err != nil {
		return wrap("update project", "project", p.ID, err)
	}
	return nil
}

func (r *ProjectRepository) SetFeatured(ctx context.Context, id int64, featured bool) (*model.Project, error) {
	query := `
        UPDATE projects
        SET featured = $1, updated_at = NOW()
        WHERE id = $2
        RETURNING ` + projectColumns
	p, err := scanProject(r.db.QueryRow(ctx, query, featured, id))
	if err != nil {
		return nil, wrap("set featured", "project", id, err)
	}
	return p, nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return apperr.Persistence("delete project", err)
	}
	return checkAffected(tag, "project", id)
}
