package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"
)

// Options tunes how the client connects.
type Options struct {
	// PingAttempts bounds the startup ping; values below 1 mean one try.
	PingAttempts uint64
	// PingInterval is the initial wait between ping attempts.
	PingInterval time.Duration
}

// NewClient creates a new Redis client and waits for it to answer.
func NewClient(ctx context.Context, redisURL string, opts ...Options) (*redis.Client, error) {
	o := Options{PingAttempts: 1, PingInterval: 200 * time.Millisecond}
	if len(opts) > 0 {
		o = opts[0]
	}

	parsed, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(parsed)

	if err := ping(ctx, client, o); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}

func ping(ctx context.Context, client *redis.Client, o Options) error {
	retries := uint64(0)
	if o.PingAttempts > 1 {
		retries = o.PingAttempts - 1
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = o.PingInterval

	return backoff.Retry(func() error {
		return client.Ping(ctx).Err()
	}, backoff.WithContext(backoff.WithMaxRetries(b, retries), ctx))
}
