package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStoreIncrWithTTL(t *testing.T) {
	ctx := context.Background()
	current := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	store.now = func() time.Time { return current }

	for want := int64(1); want <= 3; want++ {
		count, err := store.IncrWithTTL(ctx, "rl:key", time.Minute)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if count != want {
			t.Fatalf("expected count %d, got %d", want, count)
		}
	}

	// Separate keys count independently.
	count, err := store.IncrWithTTL(ctx, "rl:other", time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected fresh counter for new key, got %d", count)
	}
}

func TestMemoryStoreWindowReset(t *testing.T) {
	ctx := context.Background()
	current := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	store.now = func() time.Time { return current }

	if _, err := store.IncrWithTTL(ctx, "rl:key", time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := store.IncrWithTTL(ctx, "rl:key", time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	current = current.Add(59 * time.Second)
	count, err := store.IncrWithTTL(ctx, "rl:key", time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 3 {
		t.Fatalf("window should still be open, got count %d", count)
	}

	current = current.Add(2 * time.Second)
	count, err = store.IncrWithTTL(ctx, "rl:key", time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected counter reset after window elapsed, got %d", count)
	}
}

func TestMemoryStoreSweep(t *testing.T) {
	ctx := context.Background()
	current := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	store.now = func() time.Time { return current }

	if _, err := store.IncrWithTTL(ctx, "rl:stale", time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	current = current.Add(30 * time.Second)
	if _, err := store.IncrWithTTL(ctx, "rl:fresh", time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	current = current.Add(31 * time.Second)
	store.Sweep(time.Minute)

	if _, ok := store.entries["rl:stale"]; ok {
		t.Fatal("expected stale entry to be swept")
	}
	if _, ok := store.entries["rl:fresh"]; !ok {
		t.Fatal("fresh entry should survive sweep")
	}
}
