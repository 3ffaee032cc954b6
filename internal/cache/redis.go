package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedis opens a client and checks the connection with a PING.
func NewRedis(ctx context.Context, addr, password string) (*redis.Client, error) {
	if addr == "" {
		return nil, fmt.Errorf("REDIS_HOST not configured")
	}

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return client, nil
}

// RateCounter counts hits per key in fixed windows.
type RateCounter struct {
	client *redis.Client
	prefix string
}

func NewRateCounter(client *redis.Client, prefix string) *RateCounter {
	return &RateCounter{client: client, prefix: prefix}
}

// Increment bumps the counter for key and returns the new count along with
// the time left in the current window. The window starts on the first hit.
func (r *RateCounter) Increment(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	k := r.prefix + key

	pipe := r.client.Pipeline()
	incr := pipe.Incr(ctx, k)
	ttl := pipe.TTL(ctx, k)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, 0, err
	}

	left := ttl.Val()
	if left < 0 {
		if err := r.client.Expire(ctx, k, window).Err(); err != nil {
			return 0, 0, err
		}
		left = window
	}
	return incr.Val(), left, nil
}
