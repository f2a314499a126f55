// Package app assembles the stores and event plumbing shared by the api
// and worker binaries.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"wefixit/internal/config"
	"wefixit/internal/repository"
	"wefixit/internal/repository/sqlite"
	"wefixit/internal/service"
	"wefixit/pkg/db"
)

// Stores is one storage backend behind the service interfaces.
type Stores struct {
	Projects service.ProjectStore
	Reviews  service.ReviewStore
	Quotes   service.QuoteStore
	Contacts service.ContactStore
	Admins   service.AdminStore
	Pinger   interface {
		Ping(ctx context.Context) error
	}

	close func()
}

// OpenStores connects to the configured driver and migrates its schema.
func OpenStores(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Stores, error) {
	switch cfg.Storage.Driver {
	case "postgres":
		pool, err := db.NewConnection(cfg.DB, logger)
		if err != nil {
			return nil, err
		}
		if err := repository.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrate postgres: %w", err)
		}
		return &Stores{
			Projects: repository.NewProjectRepository(pool),
			Reviews:  repository.NewReviewRepository(pool),
			Quotes:   repository.NewQuoteRepository(pool),
			Contacts: repository.NewContactRepository(pool),
			Admins:   repository.NewAdminRepository(pool),
			Pinger:   repository.NewPinger(pool),
			close:    pool.Close,
		}, nil

	case "sqlite":
		conn, err := db.OpenSQLite(ctx, cfg.Storage.SQLitePath, logger)
		if err != nil {
			return nil, err
		}
		if err := sqlite.Migrate(ctx, conn); err != nil {
			conn.Close()
			return nil, fmt.Errorf("migrate sqlite: %w", err)
		}
		return &Stores{
			Projects: sqlite.NewProjectRepository(conn),
			Reviews:  sqlite.NewReviewRepository(conn),
			Quotes:   sqlite.NewQuoteRepository(conn),
			Contacts: sqlite.NewContactRepository(conn),
			Admins:   sqlite.NewAdminRepository(conn),
			Pinger:   sqlite.NewPinger(conn),
			close: func() {
				if err := conn.Close(); err != nil {
					logger.Error("error closing db", zap.Error(err))
				}
			},
		}, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

func (s *Stores) Close() {
	if s.close != nil {
		s.close()
	}
}
