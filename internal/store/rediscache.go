package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/andrea/gig-matcher/internal/types"
)

// DefaultFeedCacheTTL is how long a cached ranked page stays valid.
const DefaultFeedCacheTTL = 10 * time.Minute

// RedisFeedCache implements FeedCache on a Redis client.
type RedisFeedCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisFeedCache parses redisURL, verifies connectivity and returns a
// cache. A non-positive ttl falls back to DefaultFeedCacheTTL.
func NewRedisFeedCache(ctx context.Context, redisURL string, ttl time.Duration) (*RedisFeedCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL(%q): %w", redisURL, err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	if ttl <= 0 {
		ttl = DefaultFeedCacheTTL
	}
	return &RedisFeedCache{client: client, ttl: ttl}, nil
}

// Close releases the underlying client.
func (c *RedisFeedCache) Close() error {
	return c.client.Close()
}

func feedKey(userID string) string {
	return "feed:ranked:" + userID
}

// Get returns the cached ranked page for the user, if any.
func (c *RedisFeedCache) Get(ctx context.Context, userID string) ([]types.ScoredJob, bool, error) {
	payload, err := c.client.Get(ctx, feedKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read feed cache: %w", err)
	}

	var jobs []types.ScoredJob
	if err := json.Unmarshal(payload, &jobs); err != nil {
		// A corrupt entry behaves like a miss; the next Set repairs it.
		return nil, false, nil
	}
	return jobs, true, nil
}

// Set stores the ranked page with the configured TTL.
func (c *RedisFeedCache) Set(ctx context.Context, userID string, jobs []types.ScoredJob) error {
	payload, err := json.Marshal(jobs)
	if err != nil {
		return fmt.Errorf("failed to marshal feed cache entry: %w", err)
	}
	if err := c.client.Set(ctx, feedKey(userID), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write feed cache: %w", err)
	}
	return nil
}

// Invalidate drops the cached page so a rewound job can reappear through
// the normal scoring path on the next full fetch.
func (c *RedisFeedCache) Invalidate(ctx context.Context, userID string) error {
	if err := c.client.Del(ctx, feedKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate feed cache: %w", err)
	}
	return nil
}
