package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// FollowerCountCache keeps follower counts in Redis so the follow-status
// endpoint does not hit Postgres on every profile render. Misses fall
// through to the database; writes invalidate.
type FollowerCountCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewFollowerCountCache connects to Redis and verifies the connection.
func NewFollowerCountCache(addr, password string, ttl time.Duration) (*FollowerCountCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &FollowerCountCache{client: rdb, ttl: ttl}, nil
}

func followerKey(userID string) string {
	return "followers:count:" + userID
}

// Get returns the cached count; found is false on a miss or any Redis error.
func (c *FollowerCountCache) Get(ctx context.Context, userID string) (int64, bool) {
	if c == nil || c.client == nil {
		// No-op for testing/mock mode
		return 0, false
	}
	val, err := c.client.Get(ctx, followerKey(userID)).Result()
	if err != nil {
		return 0, false
	}
	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false
	}
	return count, true
}

func (c *FollowerCountCache) Set(ctx context.Context, userID string, count int64) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Set(ctx, followerKey(userID), count, c.ttl).Err()
}

// Invalidate drops the cached count after a follow/unfollow.
func (c *FollowerCountCache) Invalidate(ctx context.Context, userID string) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Del(ctx, followerKey(userID)).Err()
}

func (c *FollowerCountCache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
