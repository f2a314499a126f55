//go:build container
// +build container

package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"wefixit/internal/apperr"
	"wefixit/internal/model"
	"wefixit/pkg/config"
	"wefixit/pkg/db"
)

func setupPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container-based test in short mode")
	}
	ctx := context.Background()

	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "wefixit",
				"POSTGRES_PASSWORD": "wefixit",
				"POSTGRES_DB":       "wefixit",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Warning: failed to terminate postgres container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	pool, err := db.NewConnection(config.DBConfig{
		URL: fmt.Sprintf("postgres://wefixit:wefixit@%s:%s/wefixit?sslmode=disable", host, port.Port()),
	}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, Migrate(ctx, pool))
	// migrations are idempotent
	require.NoError(t, Migrate(ctx, pool))
	return pool
}

func TestPostgres_Repositories(t *testing.T) {
	pool := setupPostgres(t)
	ctx := context.Background()

	t.Run("projects", func(t *testing.T) {
		repo := NewProjectRepository(pool)
		p := &model.Project{Title: "Bakery", Category: "web", Image: "/uploads/a.png", Technologies: []string{"go"}}
		require.NoError(t, repo.Create(ctx, p))
		require.Positive(t, p.ID)

		got, err := repo.SetFeatured(ctx, p.ID, true)
		require.NoError(t, err)
		assert.True(t, got.Featured)
		assert.Equal(t, []string{"go"}, got.Technologies)

		featured := true
		items, total, err := repo.List(ctx, model.ProjectFilter{Featured: &featured})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		assert.Len(t, items, 1)

		require.NoError(t, repo.Delete(ctx, p.ID))
		assert.True(t, apperr.IsNotFound(repo.Delete(ctx, p.ID)))
	})

	t.Run("reviews", func(t *testing.T) {
		repo := NewReviewRepository(pool)
		r := &model.Review{Name: "Ada", Email: "ada@example.com", Message: "Great", Rating: 5, Status: model.ReviewPending}
		require.NoError(t, repo.Create(ctx, r))

		approved, err := repo.List(ctx, model.ReviewFilter{Status: model.ReviewApproved})
		require.NoError(t, err)
		assert.Empty(t, approved)

		for i := 0; i < 2; i++ {
			got, err := repo.SetStatus(ctx, r.ID, model.ReviewApproved)
			require.NoError(t, err)
			assert.Equal(t, model.ReviewApproved, got.Status)
		}

		_, err = repo.SetStatus(ctx, r.ID+1000, model.ReviewApproved)
		assert.True(t, apperr.IsNotFound(err))
	})

	t.Run("quotes", func(t *testing.T) {
		repo := NewQuoteRepository(pool)
		q := &model.QuoteRequest{Name: "Grace", Email: "g@example.com", ServiceType: "web-dev", Features: []string{"seo"}, Timeline: "fast", Estimate: 1080}
		require.NoError(t, repo.Create(ctx, q))

		got, err := repo.Get(ctx, q.ID)
		require.NoError(t, err)
		assert.InDelta(t, 1080.0, got.Estimate, 1e-9)
		assert.Equal(t, []string{"seo"}, got.Features)
	})

	t.Run("admins", func(t *testing.T) {
		repo := NewAdminRepository(pool)
		require.NoError(t, repo.Create(ctx, &model.Admin{Username: "root", PasswordHash: "x"}))
		assert.True(t, apperr.IsValidation(repo.Create(ctx, &model.Admin{Username: "root", PasswordHash: "y"})))

		_, err := repo.FindByUsername(ctx, "nobody")
		assert.True(t, apperr.IsNotFound(err))
	})

	t.Run("contacts", func(t *testing.T) {
		repo := NewContactRepository(pool)
		m := &model.ContactMessage{FirstName: "A", LastName: "B", Email: "a@b.co", Subject: "Hi", Message: "Hello"}
		require.NoError(t, repo.Create(ctx, m))

		items, err := repo.List(ctx, model.Page{})
		require.NoError(t, err)
		assert.Len(t, items, 1)
	})
}
