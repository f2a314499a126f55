package sqlite

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"wefixit/internal/apperr"
	"wefixit/internal/model"
	"wefixit/pkg/db"
)

// setupTestDB opens an in-memory database with the schema applied.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()
	conn, err := db.OpenSQLite(ctx, ":memory:", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, Migrate(ctx, conn))
	return conn
}

func boolPtr(b bool) *bool { return &b }

func TestMigrate_Idempotent(t *testing.T) {
	conn := setupTestDB(t)
	assert.NoError(t, Migrate(context.Background(), conn))
}

func TestProjectRepository_CreateGetList(t *testing.T) {
	ctx := context.Background()
	s := NewProjectRepository(setupTestDB(t))

	first := &model.Project{Title: "Bakery", Category: "web", Image: "/uploads/a.png", Technologies: []string{"go", "react"}}
	require.NoError(t, s.Create(ctx, first))
	assert.NotZero(t, first.ID)
	assert.False(t, first.CreatedAt.IsZero())

	second := &model.Project{Title: "Logo", Category: "branding", Image: "/uploads/b.png", Featured: true}
	require.NoError(t, s.Create(ctx, second))

	got, err := s.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bakery", got.Title)
	assert.Equal(t, []string{"go", "react"}, got.Technologies)

	items, total, err := s.List(ctx, model.ProjectFilter{Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, items, 2)
	assert.Equal(t, second.ID, items[0].ID, "newest first")
	assert.Equal(t, []string{}, items[0].Technologies)

	items, total, err = s.List(ctx, model.ProjectFilter{Featured: boolPtr(true)})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "Logo", items[0].Title)

	items, _, err = s.List(ctx, model.ProjectFilter{Category: "web"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, first.ID, items[0].ID)

	items, total, err = s.List(ctx, model.ProjectFilter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, items, 1)
	assert.Equal(t, first.ID, items[0].ID)
}

func TestProjectRepository_UpdateFeaturedDelete(t *testing.T) {
	ctx := context.Background()
	s := NewProjectRepository(setupTestDB(t))

	p := &model.Project{Title: "Site", Image: "/uploads/x.png"}
	require.NoError(t, s.Create(ctx, p))

	p.Title = "Site v2"
	p.Technologies = []string{"svelte"}
	require.NoError(t, s.Update(ctx, p))

	got, err := s.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Site v2", got.Title)
	assert.Equal(t, []string{"svelte"}, got.Technologies)

	got, err = s.SetFeatured(ctx, p.ID, true)
	require.NoError(t, err)
	assert.True(t, got.Featured)
	got, err = s.SetFeatured(ctx, p.ID, true)
	require.NoError(t, err)
	assert.True(t, got.Featured)

	require.NoError(t, s.Delete(ctx, p.ID))
	_, err = s.Get(ctx, p.ID)
	assert.True(t, apperr.IsNotFound(err))
}

func TestProjectRepository_MissingRows(t *testing.T) {
	ctx := context.Background()
	s := NewProjectRepository(setupTestDB(t))

	_, err := s.Get(ctx, 42)
	assert.True(t, apperr.IsNotFound(err))
	assert.True(t, apperr.IsNotFound(s.Delete(ctx, 42)))
	assert.True(t, apperr.IsNotFound(s.Update(ctx, &model.Project{ID: 42, Title: "x", Image: "y"})))
	_, err = s.SetFeatured(ctx, 42, true)
	assert.True(t, apperr.IsNotFound(err))
}

func TestReviewRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewReviewRepository(setupTestDB(t))

	r := &model.Review{Name: "Jo", Email: "jo@example.com", Message: "Great", Rating: 5, Status: model.ReviewPending}
	require.NoError(t, s.Create(ctx, r))
	other := &model.Review{Name: "Al", Email: "al@example.com", Message: "Fine", Rating: 4, Status: model.ReviewPending}
	require.NoError(t, s.Create(ctx, other))

	approved, err := s.List(ctx, model.ReviewFilter{Status: model.ReviewApproved})
	require.NoError(t, err)
	assert.Empty(t, approved)

	got, err := s.SetStatus(ctx, r.ID, model.ReviewApproved)
	require.NoError(t, err)
	assert.Equal(t, model.ReviewApproved, got.Status)

	again, err := s.SetStatus(ctx, r.ID, model.ReviewApproved)
	require.NoError(t, err)
	assert.Equal(t, got.UpdatedAt, again.UpdatedAt)

	approved, err = s.List(ctx, model.ReviewFilter{Status: model.ReviewApproved})
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, r.ID, approved[0].ID)

	all, err := s.List(ctx, model.ReviewFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, other.ID, all[0].ID)

	require.NoError(t, s.Delete(ctx, r.ID))
	assert.True(t, apperr.IsNotFound(s.Delete(ctx, r.ID)))
	_, err = s.SetStatus(ctx, r.ID, model.ReviewApproved)
	assert.True(t, apperr.IsNotFound(err))
}

func TestReviewRepository_RatingConstraint(t *testing.T) {
	s := NewReviewRepository(setupTestDB(t))
	err := s.Create(context.Background(), &model.Review{Name: "x", Email: "x@y.z", Message: "m", Rating: 9, Status: model.ReviewPending})
	require.Error(t, err)
	var pe *apperr.PersistenceError
	assert.ErrorAs(t, err, &pe)
}

func TestQuoteRepository_CreateGetList(t *testing.T) {
	ctx := context.Background()
	s := NewQuoteRepository(setupTestDB(t))

	q := &model.QuoteRequest{
		Name: "Ada", Email: "ada@example.com", ServiceType: "web-dev",
		ProjectTitle: "Shop", Description: "Online shop",
		Features: []string{"seo", "analytics"}, Timeline: "fast", Estimate: 1440,
	}
	require.NoError(t, s.Create(ctx, q))

	got, err := s.Get(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"seo", "analytics"}, got.Features)
	assert.Equal(t, 1440.0, got.Estimate)

	list, err := s.List(ctx, model.Page{})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = s.Get(ctx, q.ID+1)
	assert.True(t, apperr.IsNotFound(err))
}

func TestContactRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewContactRepository(setupTestDB(t))

	m := &model.ContactMessage{FirstName: "Ada", LastName: "L", Email: "ada@example.com", Subject: "Hi", Message: "Hello"}
	require.NoError(t, s.Create(ctx, m))

	list, err := s.List(ctx, model.Page{Limit: 10})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Hello", list[0].Message)

	require.NoError(t, s.Delete(ctx, m.ID))
	assert.True(t, apperr.IsNotFound(s.Delete(ctx, m.ID)))
}

func TestAdminRepository(t *testing.T) {
	ctx := context.Background()
	s := NewAdminRepository(setupTestDB(t))

	_, err := s.FindByUsername(ctx, "root")
	assert.True(t, apperr.IsNotFound(err))

	require.NoError(t, s.Create(ctx, &model.Admin{Username: "root", PasswordHash: "hash"}))
	a, err := s.FindByUsername(ctx, "root")
	require.NoError(t, err)
	assert.Equal(t, "hash", a.PasswordHash)

	err = s.Create(ctx, &model.Admin{Username: "root", PasswordHash: "other"})
	assert.True(t, apperr.IsValidation(err))
}
