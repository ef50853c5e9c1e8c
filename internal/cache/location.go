package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"
)

const (
	locationKeyPrefix = "geo:"

	// DefaultLocationTTL is how long a resolved location label is kept.
	DefaultLocationTTL = 24 * time.Hour
)

// ErrCacheMiss is returned when a key is not cached.
var ErrCacheMiss = errors.New("cache miss")

// GetLocation returns the cached location label for a public address.
// Returns ErrCacheMiss if not found.
func (c *Cache) GetLocation(ctx context.Context, ip string) (string, error) {
	result, err := c.client.HGetAll(ctx, locationKey(ip)).Result()
	if err != nil {
		return "", fmt.Errorf("redis hgetall failed: %w", err)
	}

	label := result["label"]
	if label == "" {
		return "", ErrCacheMiss
	}
	return label, nil
}

// SetLocation stores a resolved location label.
func (c *Cache) SetLocation(ctx context.Context, ip, label string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultLocationTTL
	}

	key := locationKey(ip)
	pipe := c.client.TxPipeline()
	pipe.HSet(ctx, key, map[string]any{
		"label":       label,
		"resolved_at": time.Now().UTC().Format(time.RFC3339),
	})
	pipe.Expire(ctx, key, ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis set location failed: %w", err)
	}
	return nil
}

func locationKey(ip string) string {
	return locationKeyPrefix + hashIP(ip)
}

// hashIP creates a truncated SHA256 hash of an IP address.
// Raw addresses are never written to Redis.
func hashIP(ip string) string {
	hash := sha256.Sum256([]byte(ip))
	return hex.EncodeToString(hash[:8]) // 16 hex chars
}
