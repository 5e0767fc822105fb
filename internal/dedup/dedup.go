// Package dedup guards against duplicate webhook deliveries. Twilio retries
// a callback it considers failed, so one MessageSid can arrive more than
// once; replaying it would double-advance the form.
package dedup

import (
	"context"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"
)

// Deduper reports whether a delivery key was already processed.
type Deduper interface {
	Seen(ctx context.Context, key string) (bool, error)
}

// Redis implements Deduper with SETNX plus a TTL.
type Redis struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Redis)

// WithTTL sets how long a delivery key stays marked.
func WithTTL(ttl time.Duration) Option {
	return func(r *Redis) {
		r.ttl = ttl
	}
}

// WithPrefix sets the redis key prefix.
func WithPrefix(prefix string) Option {
	return func(r *Redis) {
		r.prefix = prefix
	}
}

// NewRedis creates a deduper from an existing client.
func NewRedis(client *backend.Client, opts ...Option) *Redis {
	r := &Redis{
		client: client,
		prefix: "visitbot:delivery:",
		ttl:    24 * time.Hour,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Seen marks key and reports whether it was already present.
func (r *Redis) Seen(ctx context.Context, key string) (bool, error) {
	set, err := r.client.SetNX(ctx, r.prefix+key, 1, r.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("dedup: setnx: %w", err)
	}
	return !set, nil
}

// Noop never reports a duplicate. Used when no redis address is configured.
type Noop struct{}

// Seen implements Deduper.
func (Noop) Seen(context.Context, string) (bool, error) {
	return false, nil
}
