package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
)

const cleanupFactor = 2

// MemoryClient keeps entries in process memory; values are stored as-is.
type MemoryClient[T any] struct {
	store  *gocache.Cache
	logger zerolog.Logger
}

func NewMemoryClient[T any](logger zerolog.Logger, expiration time.Duration) *MemoryClient[T] {
	logger = logger.With().Str("component", "MemoryCache").Logger()
	return &MemoryClient[T]{
		store:  gocache.New(expiration, cleanupFactor*expiration),
		logger: logger,
	}
}

func (c *MemoryClient[T]) Set(ctx context.Context, key string, value T) error {
	c.logger.Debug().
		Ctx(ctx).
		Str("key", key).
		Msg("writing to cache")
	c.store.Set(key, value, gocache.DefaultExpiration)
	return nil
}

//nolint:ireturn
func (c *MemoryClient[T]) Get(ctx context.Context, key string) (T, error) {
	var zero T

	raw, ok := c.store.Get(key)
	if !ok {
		return zero, ErrCacheMiss
	}
	value, ok := raw.(T)
	if !ok {
		c.logger.Error().
			Ctx(ctx).
			Str("key", key).
			Msg("cached value has unexpected type")
		c.store.Delete(key)
		return zero, ErrCacheMiss
	}
	return value, nil
}
