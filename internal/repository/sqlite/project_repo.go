package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"wefixit/internal/apperr"
	"wefixit/internal/model"
)

type ProjectRepository struct {
	db *sql.DB
}

func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

const projectColumns = `id, title, description, category, image, link, technologies, featured, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*model.Project, error) {
	var (
		p    model.Project
		tech string
	)
	if err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.Category, &p.Image, &p.Link,
		&tech, &p.Featured, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	list, err := decodeList(tech)
	if err != nil {
		return nil, err
	}
	p.Technologies = list
	return &p, nil
}

// List returns projects newest first along with the unpaginated total.
func (s *ProjectRepository) List(ctx context.Context, f model.ProjectFilter) ([]model.Project, int, error) {
	var (
		where []string
		args  []any
	)
	if f.Featured != nil {
		where = append(where, "featured = ?")
		args = append(args, *f.Featured)
	}
	if f.Category != "" {
		where = append(where, "category = ?")
		args = append(args, f.Category)
	}
	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM projects"+clause, args...).Scan(&total); err != nil {
		return nil, 0, apperr.Persistence("count projects", err)
	}

	query := "SELECT " + projectColumns + " FROM projects" + clause + " ORDER BY id DESC LIMIT ? OFFSET ?"
	rows, err := s.db.QueryContext(ctx, query, append(args, limitArg(f.Limit), f.Offset)...)
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

func (s *ProjectRepository) Get(ctx context.Context, id int64) (*model.Project, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+projectColumns+" FROM projects WHERE id = ?", id)
	p, err := scanProject(row)
	if err != nil {
		return nil, wrap("get project", "project", id, err)
	}
	return p, nil
}

// Create inserts p and fills in its id and timestamps.
func (s *ProjectRepository) Create(ctx context.Context, p *model.Project) error {
	tech, err := encodeList(p.Technologies)
	if err != nil {
		return apperr.Persistence("encode technologies", err)
	}
	ts := now()
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO projects (title, description, category, image, link, technologies, featured, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Title, p.Description, p.Category, p.Image, p.Link, tech, p.Featured, ts, ts,
	)
	if err != nil {
		return apperr.Persistence("create project", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return apperr.Persistence("create project", err)
	}
	p.ID = id
	p.CreatedAt, p.UpdatedAt = ts, ts
	if p.Technologies == nil {
		p.Technologies = []string{}
	}
	return nil
}

// Update writes every mutable field of p and bumps updated_at.
func (s *ProjectRepository) Update(ctx context.Context, p *model.Project) error {
	tech, err := encodeList(p.Technologies)
	if err != nil {
		return apperr.Persistence("encode technologies", err)
	}
	ts := now()
	res, err := s.db.ExecContext(ctx, `
		UPDATE projects
		SET title = ?, description = ?, category = ?, image = ?, link = ?,
			technologies = ?, featured = ?, updated_at = ?
		WHERE id = ?`,
		p.Title, p.Description, p.Category, p.Image, p.Link, tech, p.Featured, ts, p.ID,
	)
	if err != nil {
		return apperr.Persistence("update project", err)
	}
	if err := checkAffected(res, "update project", "project", p.ID); err != nil {
		return err
	}
	p.UpdatedAt = ts
	return nil
}

func (s *ProjectRepository) SetFeatured(ctx context.Context, id int64, featured bool) (*model.Project, error) {
	res, err := s.db.ExecContext(ctx,
		"UPDATE projects SET featured = ?, updated_at = ? WHERE id = ?", featured, now(), id)
	if err != nil {
		return nil, apperr.Persistence("set featured", err)
	}
	if err := checkAffected(res, "set featured", "project", id); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *ProjectRepository) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id)
	if err != nil {
		return apperr.Persistence("delete project", err)
	}
	return checkAffected(res, "delete project", "project", id)
}
