// Package ttlcache provides a generic in-memory memoization cache with
// per-key time-to-live, a bounded entry count and per-key locking.
//
// # Overview
//
// A Cache maps keys to values that expire at an absolute time, measured in
// whole seconds. Callers ask for a value and supply a fallback to compute it
// on a miss; the cache runs the fallback at most once per key per miss, even
// when many goroutines ask at the same time.
//
// # Basic Usage
//
//	cache := ttlcache.New[string, *User](
//		ttlcache.WithMaxSize[string, *User](1000),
//		ttlcache.WithDefaultExpiry[string, *User](5 * time.Minute),
//	)
//
//	user, err := cache.Fetch("user:123", func() (*User, error) {
//		return db.GetUser("123")
//	})
//
//	// Fetch without a fallback only reads.
//	_, err = cache.Fetch("user:456", nil)
//	if errors.Is(err, ttlcache.ErrCacheMiss) {
//		// not cached
//	}
//
// # Expiry
//
// Every write takes at most one Expiry. With none, the default expiry
// applies:
//
//	cache.Set("a", v, ttlcache.ExpireIn(30*time.Second))
//	cache.Set("b", v, ttlcache.ExpireAt(deadline))
//	cache.Set("c", v, ttlcache.Immortal())
//
// Passing more than one returns ErrInvalidArgument. UpdateTTL moves a live
// entry to a new expiry, optionally only when a predicate accepts its
// current value.
//
// # Eviction
//
// Entries sharing an exact expiry timestamp form a bucket. When a write
// pushes the cache past its maximum size, the whole bucket with the soonest
// expiry is evicted, which may include the entry just written. When an
// access finds an expired entry, its whole bucket is evicted too.
//
// Expired entries that are never accessed again stay in memory until GC
// runs. GC waits until no per-key operation is in flight, then removes
// every entry whose expiry is in the past:
//
//	ticker := time.NewTicker(time.Minute)
//	for range ticker.C {
//		cache.GC()
//	}
//
// # Testing
//
// Inject a custom clock to control time in tests:
//
//	type fakeClock struct{ now time.Time }
//	func (c *fakeClock) Now() time.Time { return c.now }
//
//	clock := &fakeClock{now: time.Unix(20, 0)}
//	cache := ttlcache.New[string, int](ttlcache.WithClock[string, int](clock))
//
//	cache.Set("key", 42, ttlcache.ExpireIn(time.Minute))
//	clock.now = clock.now.Add(2 * time.Minute)
//	cache.KeyExists("key") // false
//
// # Thread Safety
//
// All Cache methods are safe for concurrent use. Operations on the same key
// are serialized; operations on different keys proceed in parallel. A
// fallback or producer runs with its key locked. It may use the cache for
// other keys, but must not call it for that same key or call GC.
package ttlcache
