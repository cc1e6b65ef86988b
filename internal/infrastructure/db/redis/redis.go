// Package redis holds the Redis connection and the match result cache.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultTimeout = 5 * time.Second

// Config describes the Redis endpoint. URL, when set, takes precedence over
// Addr, Password and DB and accepts the redis:// and rediss:// schemes.
type Config struct {
	URL      string
	Addr     string
	Password string
	DB       int
	Timeout  time.Duration
}

func (cfg Config) options() (*redis.Options, error) {
	opts := &redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}
	if cfg.URL != "" {
		parsed, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("redis url: %w", err)
		}
		opts = parsed
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	opts.DialTimeout = timeout
	opts.ReadTimeout = timeout
	opts.WriteTimeout = timeout
	return opts, nil
}

// Connect opens a client and pings it once. The client is closed again when
// the ping fails.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	opts, err := cfg.options()
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, opts.DialTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", opts.Addr, err)
	}
	return client, nil
}
