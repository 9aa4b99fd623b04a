// Package redis opens the shared client behind the live snapshot relay
// and the rate limiter.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const pingTimeout = 3 * time.Second

// Options holds the connection settings for the shared client
type Options struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

// Connect opens a client and verifies it with a bounded ping. Callers
// treat a nil client as single-instance mode, so a failure here is
// survivable.
func Connect(opts Options) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", opts.Host, opts.Port),
		Password: opts.Password,
		DB:       opts.DB,
		PoolSize: opts.PoolSize,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis 연결 실패: %w", err)
	}
	return client, nil
}
