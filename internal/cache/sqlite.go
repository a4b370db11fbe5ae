package cache

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS vibe_cache (
	zip       TEXT PRIMARY KEY,
	lat       REAL NOT NULL,
	lng       REAL NOT NULL,
	payload   TEXT NOT NULL,
	stored_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_vibe_cache_stored_at ON vibe_cache(stored_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Get(ctx context.Context, zip string) (*Entry, error) {
	var entry Entry
	err := s.db.QueryRowContext(ctx,
		`SELECT zip, lat, lng, payload, stored_at FROM vibe_cache WHERE zip = ?`,
		zip,
	).Scan(&entry.ZIP, &entry.Coord.Lat, &entry.Coord.Lng, &entry.Payload, &entry.StoredAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get %s", zip)
	}
	return &entry, nil
}

func (s *SQLiteStore) Put(ctx context.Context, entry Entry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO vibe_cache (zip, lat, lng, payload, stored_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(zip) DO UPDATE SET lat = excluded.lat, lng = excluded.lng,
			payload = excluded.payload, stored_at = excluded.stored_at`,
		entry.ZIP, entry.Coord.Lat, entry.Coord.Lng, entry.Payload, entry.StoredAt.UTC(),
	)
	return eris.Wrapf(err, "sqlite: put %s", entry.ZIP)
}

func (s *SQLiteStore) PurgeExpired(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM vibe_cache WHERE stored_at < ?`, before.UTC(),
	)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: purge expired")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: rows affected")
	}
	return n, nil
}
