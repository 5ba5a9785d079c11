package ratelimit

import (
	"context"
	"time"
)

// Record is a persisted rate-limit counter.
//
// Exactly one non-expired record exists per key at any time. A record is
// created with Count=1 on the first request for its key, incremented on each
// subsequent allowed request, and becomes logically dead once ResetAt
// passes. Denied requests never mutate the record.
type Record struct {
	// Key is the composite identifier for the counter scope
	// (see CompositeKey).
	Key string

	// Count is the number of allowed requests consumed in the current
	// window. Always >= 1 for a live record.
	Count int

	// ResetAt is the absolute instant after which the record is expired
	// and ignored. Stores may physically purge expired records lazily;
	// callers must always re-filter by ResetAt themselves.
	ResetAt time.Time
}

// Store defines the interface for persisting rate-limit counters.
//
// All methods must be safe for concurrent use. Increment must be atomic:
// the check-against-cap and the mutation happen as one operation, so
// concurrent requests for the same key cannot overrun the limit.
type Store interface {
	// Get returns the non-expired record for key (ResetAt strictly after
	// now), or nil if no live record exists. Get never mutates state.
	Get(ctx context.Context, key string, now time.Time) (*Record, error)

	// Increment atomically applies the capped increment-or-insert:
	//
	//   - no live record: create one with Count=1 and ResetAt=reset,
	//     return it with allowed=true
	//   - live record with Count < max: increment and return the updated
	//     record with allowed=true
	//   - live record with Count >= max: return the record unchanged with
	//     allowed=false
	//
	// An expired record under the same key is treated as absent and
	// replaced by the fresh one.
	Increment(ctx context.Context, key string, now, reset time.Time, max int) (Record, bool, error)

	// DeleteByPrefix removes every record whose key starts with prefix and
	// returns the number of records removed.
	DeleteByPrefix(ctx context.Context, prefix string) (int64, error)

	// PurgeExpired removes records whose ResetAt is at or before now and
	// returns the number removed. Purging is an optimization only; Get and
	// Increment must behave identically whether or not expired records
	// have been purged.
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}
