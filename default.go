package ttlcache

import "sync"

var (
	defaultMu   sync.Mutex
	defaultOpts []Option[any, any]
	defaultC    *Cache[any, any]
)

// Configure sets the options used to build the process-wide cache returned
// by Default. The current default instance, if any, is discarded.
//
// Prefer constructing a Cache with New and passing it to its users; the
// default instance exists for code that cannot be given one.
func Configure(opts ...Option[any, any]) {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	defaultOpts = append([]Option[any, any](nil), opts...)
	defaultC = nil
}

// Default returns the process-wide cache, building it from the options last
// passed to Configure on first use.
func Default() *Cache[any, any] {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultC == nil {
		defaultC = New[any, any](defaultOpts...)
	}
	return defaultC
}

// SetDefault replaces the process-wide cache and returns the previous one.
// Passing nil makes the next Default call build a fresh instance. Tests use
// it to isolate themselves from each other.
func SetDefault(c *Cache[any, any]) *Cache[any, any] {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	prev := defaultC
	defaultC = c
	return prev
}
