package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestMemoryStoreIncrement(t *testing.T) {
	store := NewMemoryStore()
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	reset := now.Add(14 * time.Hour)

	rec, allowed, err := store.Increment(context.Background(), "k", now, reset, 2)
	if err != nil {
		t.Fatalf("Increment() error = %v", err)
	}
	if !allowed || rec.Count != 1 {
		t.Errorf("first increment: allowed=%v count=%d, want true/1", allowed, rec.Count)
	}
	if !rec.ResetAt.Equal(reset) {
		t.Errorf("reset = %v, want %v", rec.ResetAt, reset)
	}

	rec, allowed, _ = store.Increment(context.Background(), "k", now, reset.Add(time.Hour), 2)
	if !allowed || rec.Count != 2 {
		t.Errorf("second increment: allowed=%v count=%d, want true/2", allowed, rec.Count)
	}
	// An existing record keeps its own reset time.
	if !rec.ResetAt.Equal(reset) {
		t.Errorf("existing record reset changed to %v", rec.ResetAt)
	}

	rec, allowed, _ = store.Increment(context.Background(), "k", now, reset, 2)
	if allowed {
		t.Error("third increment: expected denial at the cap")
	}
	if rec.Count != 2 {
		t.Errorf("denied increment mutated count to %d", rec.Count)
	}
}

func TestMemoryStoreIncrementExpiredRecord(t *testing.T) {
	store := NewMemoryStore()
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	reset := now.Add(time.Hour)

	store.Increment(context.Background(), "k", now, reset, 1)
	if _, allowed, _ := store.Increment(context.Background(), "k", now, reset, 1); allowed {
		t.Fatal("expected denial at the cap")
	}

	later := reset.Add(time.Minute)
	newReset := later.Add(24 * time.Hour)
	rec, allowed, _ := store.Increment(context.Background(), "k", later, newReset, 1)
	if !allowed || rec.Count != 1 {
		t.Errorf("expired record: allowed=%v count=%d, want true/1", allowed, rec.Count)
	}
	if !rec.ResetAt.Equal(newReset) {
		t.Errorf("expired record reset = %v, want %v", rec.ResetAt, newReset)
	}
}

func TestMemoryStoreGet(t *testing.T) {
	store := NewMemoryStore()
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	reset := now.Add(time.Hour)

	if rec, err := store.Get(context.Background(), "missing", now); err != nil || rec != nil {
		t.Errorf("Get(missing) = %v, %v, want nil, nil", rec, err)
	}

	store.Increment(context.Background(), "k", now, reset, 5)

	rec, err := store.Get(context.Background(), "k", now)
	if err != nil || rec == nil {
		t.Fatalf("Get() = %v, %v", rec, err)
	}

	// The returned record is a copy.
	rec.Count = 99
	again, _ := store.Get(context.Background(), "k", now)
	if again.Count != 1 {
		t.Errorf("mutating the returned record leaked into the store: count=%d", again.Count)
	}

	// Expired records read as missing.
	if rec, _ := store.Get(context.Background(), "k", reset); rec != nil {
		t.Errorf("Get() after expiry = %+v, want nil", rec)
	}
}

func TestMemoryStoreDeleteByPrefix(t *testing.T) {
	store := NewMemoryStore()
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	reset := now.Add(time.Hour)

	keys := []string{
		"203.0.113.7:generate",
		"203.0.113.7:edit:a",
		"203.0.113.7:edit:b",
		"198.51.100.1:generate",
	}
	for _, k := range keys {
		store.Increment(context.Background(), k, now, reset, 5)
	}

	removed, err := store.DeleteByPrefix(context.Background(), "203.0.113.7:edit")
	if err != nil {
		t.Fatalf("DeleteByPrefix() error = %v", err)
	}
	if removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}
	if store.Len() != 2 {
		t.Errorf("Len() = %d, want 2", store.Len())
	}
}

func TestMemoryStorePurgeExpired(t *testing.T) {
	store := NewMemoryStore()
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	store.Increment(context.Background(), "live", now, now.Add(time.Hour), 5)
	store.Increment(context.Background(), "dead", now, now.Add(time.Minute), 5)

	removed, err := store.PurgeExpired(context.Background(), now.Add(30*time.Minute))
	if err != nil {
		t.Fatalf("PurgeExpired() error = %v", err)
	}
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
	if rec, _ := store.Get(context.Background(), "live", now); rec == nil {
		t.Error("live record must survive the purge")
	}
}

func TestMemoryStoreConcurrentIncrement(t *testing.T) {
	store := NewMemoryStore()
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	reset := now.Add(time.Hour)

	const workers = 50
	const max = 10

	var wg sync.WaitGroup
	allowedCount := make(chan bool, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, allowed, err := store.Increment(context.Background(), "k", now, reset, max)
			if err != nil {
				t.Errorf("Increment() error = %v", err)
			}
			allowedCount <- allowed
		}()
	}
	wg.Wait()
	close(allowedCount)

	var allows int
	for a := range allowedCount {
		if a {
			allows++
		}
	}
	if allows != max {
		t.Errorf("allowed %d of %d concurrent increments, want exactly %d", allows, workers, max)
	}
}
