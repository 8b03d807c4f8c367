package limiter

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PgStore is the PostgreSQL implementation of Store, for deployments where
// several instances must count against one shared quota. The single upsert
// statement linearizes concurrent increments on the same address row.
type PgStore struct {
	pool *pgxpool.Pool
}

// NewPgStore creates a PgStore backed by the given pool.
func NewPgStore(pool *pgxpool.Pool) *PgStore {
	return &PgStore{pool: pool}
}

var _ Store = (*PgStore)(nil)

// Incr upserts the admission_windows row for key: an elapsed window resets
// to count 1 starting now, otherwise the count increments in place.
func (s *PgStore) Incr(ctx context.Context, key string, d time.Duration) (int, time.Duration, error) {
	var count int
	var resetSecs float64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO admission_windows (addr, count, window_start)
		 VALUES ($1, 1, now())
		 ON CONFLICT (addr) DO UPDATE SET
		   count = CASE
		     WHEN admission_windows.window_start <= now() - make_interval(secs => $2)
		     THEN 1 ELSE admission_windows.count + 1 END,
		   window_start = CASE
		     WHEN admission_windows.window_start <= now() - make_interval(secs => $2)
		     THEN now() ELSE admission_windows.window_start END
		 RETURNING count,
		   EXTRACT(EPOCH FROM (window_start + make_interval(secs => $2) - now()))`,
		key, d.Seconds(),
	).Scan(&count, &resetSecs)
	if err != nil {
		return 0, 0, err
	}
	return count, time.Duration(resetSecs * float64(time.Second)), nil
}

// Ping reports whether the shared store is reachable.
func (s *PgStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}
