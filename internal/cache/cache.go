// Package cache persists analysis results keyed by postal code so repeat
// queries inside the TTL window skip the provider pipeline entirely.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/livability-cli/internal/model"
)

// Entry is one stored record: the serialized result envelope plus the write
// timestamp used for TTL checks.
type Entry struct {
	ZIP      string
	Coord    model.Coordinate
	Payload  []byte
	StoredAt time.Time
}

// Store is the persistence backend. Get returns (nil, nil) on a key miss.
type Store interface {
	Get(ctx context.Context, zip string) (*Entry, error)
	Put(ctx context.Context, entry Entry) error
	PurgeExpired(ctx context.Context, before time.Time) (int64, error)
	Migrate(ctx context.Context) error
	Close() error
}

// Cache wraps a Store with TTL semantics. Expiry is enforced at read time,
// so a stale row is a miss even before a purge sweep removes it.
type Cache struct {
	store Store
	ttl   time.Duration
	now   func() time.Time
}

// New wraps a store with the given TTL.
func New(store Store, ttl time.Duration) *Cache {
	return &Cache{store: store, ttl: ttl, now: time.Now}
}

// WithNow overrides the clock for tests.
func (c *Cache) WithNow(now func() time.Time) *Cache {
	c.now = now
	return c
}

// Get returns the cached result for a postal code, or ok=false on a miss.
// Storage errors and corrupt payloads both degrade to a miss.
func (c *Cache) Get(ctx context.Context, zip string) (*model.AnalysisResult, bool) {
	entry, err := c.store.Get(ctx, zip)
	if err != nil {
		zap.L().Warn("cache read failed", zap.String("zip", zip), zap.Error(err))
		return nil, false
	}
	if entry == nil {
		return nil, false
	}
	if c.now().UTC().Sub(entry.StoredAt) > c.ttl {
		return nil, false
	}

	var result model.AnalysisResult
	if err := json.Unmarshal(entry.Payload, &result); err != nil {
		zap.L().Warn("cache payload corrupt, treating as miss", zap.String("zip", zip), zap.Error(err))
		return nil, false
	}
	return &result, true
}

// Put upserts the result for a postal code, overwriting any prior entry.
func (c *Cache) Put(ctx context.Context, zip string, coord model.Coordinate, result *model.AnalysisResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return eris.Wrap(err, "cache: marshal result")
	}
	return c.store.Put(ctx, Entry{
		ZIP:      zip,
		Coord:    coord,
		Payload:  payload,
		StoredAt: c.now().UTC(),
	})
}

// Purge deletes every entry past the TTL and returns the count removed.
func (c *Cache) Purge(ctx context.Context) (int64, error) {
	return c.store.PurgeExpired(ctx, c.now().UTC().Add(-c.ttl))
}
