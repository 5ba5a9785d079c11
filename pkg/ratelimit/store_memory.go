package ratelimit

import (
	"context"
	"strings"
	"sync"
	"time"
)

// MemoryStore is a thread-safe in-memory implementation of Store.
//
// It serves tests and single-process deployments that run without a
// database. Counters survive only as long as the process; production
// deployments use the Postgres store.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]*Record
}

// NewMemoryStore creates an empty in-memory counter store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]*Record)}
}

// Get returns the non-expired record for key, or nil.
func (s *MemoryStore) Get(ctx context.Context, key string, now time.Time) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[key]
	if !ok || !rec.ResetAt.After(now) {
		return nil, nil
	}

	// Copy so callers cannot mutate the stored record.
	cp := *rec
	return &cp, nil
}

// Increment applies the capped increment-or-insert under a single lock,
// so the check and the mutation are atomic with respect to concurrent
// callers.
func (s *MemoryStore) Increment(ctx context.Context, key string, now, reset time.Time, max int) (Record, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[key]
	if !ok || !rec.ResetAt.After(now) {
		fresh := &Record{Key: key, Count: 1, ResetAt: reset}
		s.records[key] = fresh
		return *fresh, true, nil
	}

	if rec.Count >= max {
		return *rec, false, nil
	}

	rec.Count++
	return *rec, true, nil
}

// DeleteByPrefix removes every record whose key starts with prefix.
func (s *MemoryStore) DeleteByPrefix(ctx context.Context, prefix string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed int64
	for key := range s.records {
		if strings.HasPrefix(key, prefix) {
			delete(s.records, key)
			removed++
		}
	}
	return removed, nil
}

// PurgeExpired removes records whose reset time has passed.
func (s *MemoryStore) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed int64
	for key, rec := range s.records {
		if !rec.ResetAt.After(now) {
			delete(s.records, key)
			removed++
		}
	}
	return removed, nil
}

// Len returns the number of stored records, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
