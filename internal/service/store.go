// Package service holds the business rules. It depends on the store,
// publisher and cache interfaces declared here, never on a concrete driver.
package service

import (
	"context"

	"wefixit/internal/apperr"
	"wefixit/internal/model"
)

type ProjectStore interface {
	List(ctx context.Context, f model.ProjectFilter) ([]model.Project, int, error)
	Get(ctx context.Context, id int64) (*model.Project, error)
	Create(ctx context.Context, p *model.Project) error
	Update(ctx context.Context, p *model.Project) error
	SetFeatured(ctx context.Context, id int64, featured bool) (*model.Project, error)
	Delete(ctx context.Context, id int64) error
}

type ReviewStore interface {
	Create(ctx context.Context, r *model.Review) error
	Get(ctx context.Context, id int64) (*model.Review, error)
	List(ctx context.Context, f model.ReviewFilter) ([]model.Review, error)
	SetStatus(ctx context.Context, id int64, status model.ReviewStatus) (*model.Review, error)
	Delete(ctx context.Context, id int64) error
}

type QuoteStore interface {
	Create(ctx context.Context, q *model.QuoteRequest) error
	Get(ctx context.Context, id int64) (*model.QuoteRequest, error)
	List(ctx context.Context, page model.Page) ([]model.QuoteRequest, error)
}

type ContactStore interface {
	Create(ctx context.Context, m *model.ContactMessage) error
	List(ctx context.Context, page model.Page) ([]model.ContactMessage, error)
	Delete(ctx context.Context, id int64) error
}

type AdminStore interface {
	Create(ctx context.Context, a *model.Admin) error
	FindByUsername(ctx context.Context, username string) (*model.Admin, error)
}

// Deduper remembers keys for a window. A nil Deduper disables dedupe.
type Deduper interface {
	AcquireOnce(ctx context.Context, scope, key string) bool
	Release(ctx context.Context, scope, key string)
}

// ImageStore removes stored upload references that are no longer used.
type ImageStore interface {
	Remove(ref string) error
}

const maxListLimit = 100

// page validates a limit/offset pair, substituting def for a zero limit.
func page(limit, offset, def int) (model.Page, error) {
	verr := apperr.Validation("invalid pagination")
	if limit == 0 {
		limit = def
	}
	if limit < 1 || limit > maxListLimit {
		verr.Add("limit", "must be between 1 and 100")
	}
	if offset < 0 {
		verr.Add("offset", "must not be negative")
	}
	if err := verr.OrNil(); err != nil {
		return model.Page{}, err
	}
	return model.Page{Limit: limit, Offset: offset}, nil
}
