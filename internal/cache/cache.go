// Package cache provides a keyed, time-boxed response cache. It is a
// latency optimization only; every backend may evict or miss freely
// without affecting correctness.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned on a cache miss.
var ErrNotFound = errors.New("cache: not found")

// Cache stores string payloads under a key for at most the given TTL.
// Entries must never be served past their TTL.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// NoopCache never stores anything. Swapping it in disables caching with no
// call-site changes.
type NoopCache struct{}

var _ Cache = NoopCache{}

func (NoopCache) Get(context.Context, string) (string, error) {
	return "", ErrNotFound
}

func (NoopCache) Set(context.Context, string, string, time.Duration) error {
	return nil
}
