//go:build integration

package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hyjain/hyjain-api/internal/testutil"
)

func newCacheTestEnv(t *testing.T) (context.Context, *Cache) {
	t.Helper()

	redisURL := testutil.RequireEnv(t, "REDIS_URL")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		t.Fatalf("parse REDIS_URL: %v", err)
	}
	client := redis.NewClient(opt)
	t.Cleanup(func() { _ = client.Close() })

	if err := testutil.FlushRedis(ctx, client); err != nil {
		t.Fatalf("flush redis: %v", err)
	}

	return ctx, NewWithClient(client)
}

func TestIntegrationCache_LocationRoundTrip(t *testing.T) {
	ctx, c := newCacheTestEnv(t)

	if _, err := c.GetLocation(ctx, "198.51.100.4"); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected ErrCacheMiss, got %v", err)
	}

	if err := c.SetLocation(ctx, "198.51.100.4", "Pune, Maharashtra", time.Minute); err != nil {
		t.Fatalf("SetLocation failed: %v", err)
	}

	label, err := c.GetLocation(ctx, "198.51.100.4")
	if err != nil {
		t.Fatalf("GetLocation failed: %v", err)
	}
	if label != "Pune, Maharashtra" {
		t.Errorf("label = %q, want %q", label, "Pune, Maharashtra")
	}

	ttl, err := c.client.TTL(ctx, locationKey("198.51.100.4")).Result()
	if err != nil {
		t.Fatalf("TTL failed: %v", err)
	}
	if ttl <= 0 || ttl > time.Minute {
		t.Errorf("unexpected TTL %s", ttl)
	}
}
