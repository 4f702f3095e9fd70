package ttlcache

import (
	"log/slog"
	"time"
)

const (
	// DefaultMaxSize is the default maximum number of entries.
	DefaultMaxSize = 1000

	// DefaultExpiry is the lifetime of entries stored without an Expiry.
	DefaultExpiry = 60 * time.Second
)

type config[K comparable, V any] struct {
	maxSize       int
	defaultExpiry time.Duration
	cacheNil      bool
	clock         Clock
	logger        *slog.Logger
	onEvict       func(K, V, EvictReason)
	onHit         func(K, V)
	onMiss        func(K)
}

func defaultConfig[K comparable, V any]() config[K, V] {
	return config[K, V]{
		maxSize:       DefaultMaxSize,
		defaultExpiry: DefaultExpiry,
		cacheNil:      true,
		clock:         realClock{},
		logger:        slog.New(slog.DiscardHandler),
	}
}

// Option configures a Cache.
type Option[K comparable, V any] func(*config[K, V])

// WithMaxSize sets the maximum number of entries in the cache.
// Non-positive values are ignored.
func WithMaxSize[K comparable, V any](n int) Option[K, V] {
	return func(c *config[K, V]) {
		if n > 0 {
			c.maxSize = n
		}
	}
}

// WithDefaultExpiry sets the lifetime of entries stored without an explicit
// Expiry. It is truncated to whole seconds.
func WithDefaultExpiry[K comparable, V any](d time.Duration) Option[K, V] {
	return func(c *config[K, V]) {
		if d >= 0 {
			c.defaultExpiry = d
		}
	}
}

// WithCacheNil controls whether Fetch stores nil values returned by a
// fallback. When false the value is returned but not cached. Put always
// stores.
func WithCacheNil[K comparable, V any](b bool) Option[K, V] {
	return func(c *config[K, V]) {
		c.cacheNil = b
	}
}

// WithClock sets a custom clock for time operations.
// Useful for testing TTL behavior.
func WithClock[K comparable, V any](clk Clock) Option[K, V] {
	return func(c *config[K, V]) {
		if clk != nil {
			c.clock = clk
		}
	}
}

// WithLogger sets the logger used for debug output about evictions and
// garbage collection. The cache logs nothing by default.
func WithLogger[K comparable, V any](l *slog.Logger) Option[K, V] {
	return func(c *config[K, V]) {
		if l != nil {
			c.logger = l
		}
	}
}

// OnEvict sets a callback invoked when an entry leaves the cache.
func OnEvict[K comparable, V any](fn func(K, V, EvictReason)) Option[K, V] {
	return func(c *config[K, V]) {
		c.onEvict = fn
	}
}

// OnHit sets a callback invoked when Fetch finds a live entry.
func OnHit[K comparable, V any](fn func(K, V)) Option[K, V] {
	return func(c *config[K, V]) {
		c.onHit = fn
	}
}

// OnMiss sets a callback invoked when Fetch finds no live entry.
func OnMiss[K comparable, V any](fn func(K)) Option[K, V] {
	return func(c *config[K, V]) {
		c.onMiss = fn
	}
}
