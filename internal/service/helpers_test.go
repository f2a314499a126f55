package service

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"wefixit/internal/repository/sqlite"
	"wefixit/pkg/db"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()
	conn, err := db.OpenSQLite(ctx, ":memory:", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, sqlite.Migrate(ctx, conn))
	return conn
}

type published struct {
	routingKey string
	payload    any
}

type fakePublisher struct {
	mu     sync.Mutex
	events []published
	err    error
}

func (p *fakePublisher) Publish(_ context.Context, routingKey string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, published{routingKey, payload})
	return nil
}

func (p *fakePublisher) keys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.routingKey)
	}
	return out
}

type fakeDeduper struct {
	seen map[string]bool
}

func newFakeDeduper() *fakeDeduper {
	return &fakeDeduper{seen: map[string]bool{}}
}

func (d *fakeDeduper) AcquireOnce(_ context.Context, scope, key string) bool {
	k := scope + ":" + key
	if d.seen[k] {
		return false
	}
	d.seen[k] = true
	return true
}

func (d *fakeDeduper) Release(_ context.Context, scope, key string) {
	delete(d.seen, scope+":"+key)
}

type fakeImages struct {
	removed []string
}

func (f *fakeImages) Remove(ref string) error {
	f.removed = append(f.removed, ref)
	return nil
}

type fakeLimiter struct {
	counts map[string]int64
	err    error
}

func newFakeLimiter() *fakeLimiter {
	return &fakeLimiter{counts: map[string]int64{}}
}

func (l *fakeLimiter) IncrementAndGet(_ context.Context, key string) (int64, error) {
	if l.err != nil {
		return 0, l.err
	}
	l.counts[key]++
	return l.counts[key], nil
}

func (l *fakeLimiter) Get(_ context.Context, key string) (int64, error) {
	if l.err != nil {
		return 0, l.err
	}
	return l.counts[key], nil
}

func (l *fakeLimiter) Reset(_ context.Context, key string) error {
	delete(l.counts, key)
	return nil
}

var errBrokerDown = errors.New("broker down")
