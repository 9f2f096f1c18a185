package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redislib "github.com/redis/go-redis/v9"

	"github.com/questgo/backend/domain"
)

func newTestCache(t *testing.T) (*progressCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redislib.NewClient(&redislib.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewProgressCache(client, time.Minute).(*progressCache), mr
}

func TestProgressCacheRoundTrip(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	view := &domain.ProgressView{
		Percent:        50,
		FilledSegments: 5,
		Completed:      1,
		Total:          2,
		Lines: []domain.ChecklistLine{
			{Title: "Find the gate", Done: true},
			{Title: "Find the library", Done: false},
		},
	}

	if err := cache.Set(ctx, 42, view); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := cache.Get(ctx, 42)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil {
		t.Fatal("Get returned nil after Set")
	}
	if got.Percent != 50 || got.FilledSegments != 5 || len(got.Lines) != 2 {
		t.Errorf("round-trip mismatch: %+v", got)
	}
}

func TestProgressCacheMissReturnsNil(t *testing.T) {
	cache, _ := newTestCache(t)

	got, err := cache.Get(context.Background(), 99)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil on miss, got %+v", got)
	}
}

func TestProgressCacheInvalidate(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	view := &domain.ProgressView{Percent: 100, FilledSegments: 10, Completed: 2, Total: 2}
	if err := cache.Set(ctx, 7, view); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := cache.Invalidate(ctx, 7); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}

	got, err := cache.Get(ctx, 7)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil after Invalidate, got %+v", got)
	}
}

func TestProgressCacheEntriesExpire(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	if err := cache.Set(ctx, 1, &domain.ProgressView{Total: 3}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	got, err := cache.Get(ctx, 1)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != nil {
		t.Errorf("expected entry to expire, got %+v", got)
	}
}
