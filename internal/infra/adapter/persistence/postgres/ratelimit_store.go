// Package postgres implements the persistence interfaces on PostgreSQL
// using database/sql with the pgx stdlib driver.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"doc-genie/pkg/ratelimit"
)

// RateLimitStore persists rate-limit counters in the rate_limits table.
//
// Expected schema:
//
//	CREATE TABLE rate_limits (
//	    key             TEXT PRIMARY KEY,
//	    count           INTEGER NOT NULL,
//	    reset_time      TIMESTAMPTZ NOT NULL,
//	    last_request_id TEXT NOT NULL
//	);
//	CREATE INDEX rate_limits_reset_time_idx ON rate_limits (reset_time);
//
// Expired rows are removed by the scheduled purge; every query still
// filters by reset_time itself, so enforcement does not depend on the
// purge having run.
type RateLimitStore struct {
	db *sql.DB

	// newToken generates the per-call request token; overridable in tests.
	newToken func() string
}

// NewRateLimitStore creates a Postgres-backed counter store.
func NewRateLimitStore(db *sql.DB) *RateLimitStore {
	return &RateLimitStore{
		db:       db,
		newToken: func() string { return uuid.New().String() },
	}
}

var _ ratelimit.Store = (*RateLimitStore)(nil)

// Get returns the non-expired record for key, or nil.
func (s *RateLimitStore) Get(ctx context.Context, key string, now time.Time) (*ratelimit.Record, error) {
	const query = `
SELECT count, reset_time
FROM rate_limits
WHERE key = $1 AND reset_time > $2
LIMIT 1`

	rec := ratelimit.Record{Key: key}
	err := s.db.QueryRowContext(ctx, query, key, now).Scan(&rec.Count, &rec.ResetAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return &rec, nil
}

// incrementQuery performs the capped increment-or-insert in a single
// statement, so concurrent requests for the same key cannot overrun the
// cap the way a separate read-then-write would.
//
// Branches of the upsert:
//   - expired row (reset_time <= now): restart the counter at 1 with the
//     candidate reset time
//   - live row below the cap: increment
//   - live row at the cap: leave the row untouched (a denied request never
//     mutates the record)
//
// last_request_id is stamped with the caller's token on both allowed
// branches and kept on the denied branch; comparing the returned token
// with the sent one is what distinguishes a denial from an increment that
// landed exactly on the cap.
const incrementQuery = `
INSERT INTO rate_limits AS rl (key, count, reset_time, last_request_id)
VALUES ($1, 1, $2, $5)
ON CONFLICT (key) DO UPDATE SET
    count = CASE
        WHEN rl.reset_time <= $3 THEN 1
        WHEN rl.count < $4 THEN rl.count + 1
        ELSE rl.count
    END,
    reset_time = CASE
        WHEN rl.reset_time <= $3 THEN $2
        ELSE rl.reset_time
    END,
    last_request_id = CASE
        WHEN rl.reset_time <= $3 OR rl.count < $4 THEN $5
        ELSE rl.last_request_id
    END
RETURNING count, reset_time, last_request_id`

// Increment atomically applies the capped increment-or-insert.
func (s *RateLimitStore) Increment(ctx context.Context, key string, now, reset time.Time, max int) (ratelimit.Record, bool, error) {
	token := s.newToken()

	rec := ratelimit.Record{Key: key}
	var gotToken string
	err := s.db.QueryRowContext(ctx, incrementQuery, key, reset, now, max, token).
		Scan(&rec.Count, &rec.ResetAt, &gotToken)
	if err != nil {
		return ratelimit.Record{}, false, fmt.Errorf("Increment: %w", err)
	}

	return rec, gotToken == token, nil
}

// DeleteByPrefix removes every counter whose key starts with prefix.
func (s *RateLimitStore) DeleteByPrefix(ctx context.Context, prefix string) (int64, error) {
	const query = `DELETE FROM rate_limits WHERE starts_with(key, $1)`

	res, err := s.db.ExecContext(ctx, query, prefix)
	if err != nil {
		return 0, fmt.Errorf("DeleteByPrefix: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("DeleteByPrefix: RowsAffected: %w", err)
	}
	return removed, nil
}

// PurgeExpired removes counters whose reset time has passed.
func (s *RateLimitStore) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	const query = `DELETE FROM rate_limits WHERE reset_time <= $1`

	res, err := s.db.ExecContext(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("PurgeExpired: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("PurgeExpired: RowsAffected: %w", err)
	}
	return removed, nil
}
