package sqlite

import (
	"context"
	"database/sql"
)

// Pinger reports database reachability for the readiness probe.
type Pinger struct {
	db *sql.DB
}

func NewPinger(db *sql.DB) Pinger {
	return Pinger{db: db}
}

func (p Pinger) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}
