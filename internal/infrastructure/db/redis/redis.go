// Package redis holds the Redis-backed token revocation store and the
// client constructor it is built on.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultPingTimeout = 5 * time.Second

// Options configures the client behind RevocationStore.
type Options struct {
	Addr     string
	Password string
	DB       int
	// PingTimeout bounds the startup check. Zero means five seconds.
	PingTimeout time.Duration
}

// Connect opens a client and pings it once so a bad address fails at boot
// instead of on the first guarded request. The client is closed on failure.
func Connect(ctx context.Context, opts Options) (*redis.Client, error) {
	wait := opts.PingTimeout
	if wait <= 0 {
		wait = defaultPingTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, wait)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis %s: ping: %w", opts.Addr, err)
	}
	return client, nil
}
