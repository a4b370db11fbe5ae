package cache

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"
)

// Pool is the subset of pgxpool.Pool the cache uses. pgxmock satisfies it.
type Pool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// PostgresStore implements Store using pgxpool, for multi-process
// deployments where a local SQLite file cannot be shared.
type PostgresStore struct {
	pool Pool
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

// NewPostgresWithPool wraps an existing pool; tests inject pgxmock here.
func NewPostgresWithPool(pool Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS vibe_cache (
	zip       TEXT PRIMARY KEY,
	lat       DOUBLE PRECISION NOT NULL,
	lng       DOUBLE PRECISION NOT NULL,
	payload   JSONB NOT NULL,
	stored_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_vibe_cache_stored_at ON vibe_cache(stored_at);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, zip string) (*Entry, error) {
	var entry Entry
	err := s.pool.QueryRow(ctx,
		`SELECT zip, lat, lng, payload, stored_at FROM vibe_cache WHERE zip = $1`,
		zip,
	).Scan(&entry.ZIP, &entry.Coord.Lat, &entry.Coord.Lng, &entry.Payload, &entry.StoredAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get %s", zip)
	}
	return &entry, nil
}

func (s *PostgresStore) Put(ctx context.Context, entry Entry) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO vibe_cache (zip, lat, lng, payload, stored_at) VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (zip) DO UPDATE SET lat = EXCLUDED.lat, lng = EXCLUDED.lng,
			payload = EXCLUDED.payload, stored_at = EXCLUDED.stored_at`,
		entry.ZIP, entry.Coord.Lat, entry.Coord.Lng, entry.Payload, entry.StoredAt.UTC(),
	)
	return eris.Wrapf(err, "postgres: put %s", entry.ZIP)
}

func (s *PostgresStore) PurgeExpired(ctx context.Context, before time.Time) (int64, error) {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM vibe_cache WHERE stored_at < $1`, before.UTC(),
	)
	if err != nil {
		return 0, eris.Wrap(err, "postgres: purge expired")
	}
	return tag.RowsAffected(), nil
}
