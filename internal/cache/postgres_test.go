package cache

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/livability-cli/internal/model"
)

// newMockPostgresStore creates a PostgresStore backed by pgxmock for unit testing.
func newMockPostgresStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	return NewPostgresWithPool(mock), mock
}

func TestPostgresStore_Get(t *testing.T) {
	s, mock := newMockPostgresStore(t)
	storedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT zip, lat, lng, payload, stored_at FROM vibe_cache WHERE zip = \$1`).
		WithArgs("23220").
		WillReturnRows(pgxmock.NewRows([]string{"zip", "lat", "lng", "payload", "stored_at"}).
			AddRow("23220", 37.5407, -77.436, []byte(`{"request_id":"req-1"}`), storedAt))

	entry, err := s.Get(context.Background(), "23220")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "23220", entry.ZIP)
	assert.Equal(t, 37.5407, entry.Coord.Lat)
	assert.Equal(t, storedAt, entry.StoredAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Get_Miss(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT zip, lat, lng, payload, stored_at FROM vibe_cache`).
		WithArgs("99999").
		WillReturnRows(pgxmock.NewRows([]string{"zip", "lat", "lng", "payload", "stored_at"}))

	entry, err := s.Get(context.Background(), "99999")
	require.NoError(t, err)
	assert.Nil(t, entry)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_PutUpserts(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`INSERT INTO vibe_cache .+ ON CONFLICT \(zip\) DO UPDATE`).
		WithArgs("23220", 37.5407, -77.436, []byte(`{}`), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := s.Put(context.Background(), Entry{
		ZIP:      "23220",
		Coord:    model.Coordinate{Lat: 37.5407, Lng: -77.436},
		Payload:  []byte(`{}`),
		StoredAt: time.Now(),
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_PurgeExpired(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`DELETE FROM vibe_cache WHERE stored_at < \$1`).
		WithArgs(pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("DELETE", 3))

	n, err := s.PurgeExpired(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
