package ttlcache

import (
	"fmt"
	"math"
	"reflect"
	"sync"
	"time"
)

// EvictReason describes why an entry left the cache.
type EvictReason int

const (
	// Expired entries were found past their expiry during an access.
	Expired EvictReason = iota
	// Capacity entries were removed to keep the cache within its maximum size.
	Capacity
	// Explicit entries were removed by Evict.
	Explicit
	// Collected entries were removed by GC.
	Collected
)

func (r EvictReason) String() string {
	switch r {
	case Expired:
		return "expired"
	case Capacity:
		return "capacity"
	case Explicit:
		return "explicit"
	case Collected:
		return "collected"
	default:
		return fmt.Sprintf("EvictReason(%d)", int(r))
	}
}

// maxDurationSecs is the largest whole-second count a time.Duration holds.
const maxDurationSecs = math.MaxInt64 / int64(time.Second)

// Cache is a concurrent TTL cache bounded by entry count.
//
// Operations on one key are serialized; operations on different keys run in
// parallel. Fallbacks and producers run while their key is locked, so they
// must not call back into the cache for the same key.
type Cache[K comparable, V any] struct {
	// mu guards data, index and the lock table. It is never held while a
	// fallback runs.
	mu    sync.Mutex
	data  map[K]*entry[V]
	index *expiryIndex[K]
	locks *lockTable[K]
	cfg   config[K, V]
	stats Stats
}

type removal[K comparable, V any] struct {
	key    K
	value  V
	reason EvictReason
}

// New creates a new Cache with the given options.
func New[K comparable, V any](opts ...Option[K, V]) *Cache[K, V] {
	cfg := defaultConfig[K, V]()
	for _, opt := range opts {
		opt(&cfg)
	}

	c := &Cache[K, V]{
		data:  make(map[K]*entry[V]),
		index: newExpiryIndex[K](),
		cfg:   cfg,
	}
	c.locks = newLockTable[K](&c.mu)
	return c
}

// Fetch returns the live value for key. On a miss it calls fallback, stores
// the result with the given expiry and returns it. Concurrent Fetches of the
// same key run fallback at most once per miss.
//
// If fallback is nil a miss returns ErrCacheMiss. An error from fallback is
// returned unchanged and nothing is stored.
func (c *Cache[K, V]) Fetch(key K, fallback func() (V, error), exp ...Expiry) (V, error) {
	var zero V

	spec, err := resolveExpiry(exp)
	if err != nil {
		return zero, err
	}

	l := c.locks.acquire(key)
	defer c.locks.release(key, l)

	c.mu.Lock()
	ent, gone := c.lookupLocked(key, c.now())
	var v V
	if ent != nil {
		v = ent.value
	}
	c.mu.Unlock()
	c.notify(gone)

	if ent != nil {
		c.stats.hit()
		if c.cfg.onHit != nil {
			c.cfg.onHit(key, v)
		}
		return v, nil
	}

	c.stats.miss()
	if c.cfg.onMiss != nil {
		c.cfg.onMiss(key)
	}

	if fallback == nil {
		return zero, fmt.Errorf("%w: %v", ErrCacheMiss, key)
	}

	v, err = fallback()
	if err != nil {
		return zero, err
	}

	if !c.cfg.cacheNil && isNil(v) {
		return v, nil
	}

	c.store(key, v, spec)
	return v, nil
}

// Put calls producer and stores its result under key, replacing any existing
// entry. A nil producer returns ErrInvalidArgument.
func (c *Cache[K, V]) Put(key K, producer func() (V, error), exp ...Expiry) (V, error) {
	var zero V

	spec, err := resolveExpiry(exp)
	if err != nil {
		return zero, err
	}
	if producer == nil {
		return zero, fmt.Errorf("%w: put requires a producer", ErrInvalidArgument)
	}

	l := c.locks.acquire(key)
	defer c.locks.release(key, l)

	v, err := producer()
	if err != nil {
		return zero, err
	}

	c.store(key, v, spec)
	return v, nil
}

// Set stores value under key, replacing any existing entry.
func (c *Cache[K, V]) Set(key K, value V, exp ...Expiry) error {
	_, err := c.Put(key, func() (V, error) {
		return value, nil
	}, exp...)
	return err
}

// Evict removes key from the cache. Evicting a missing key is a no-op.
func (c *Cache[K, V]) Evict(key K) {
	l := c.locks.acquire(key)
	defer c.locks.release(key, l)

	c.mu.Lock()
	ent, ok := c.data[key]
	if ok {
		c.index.remove(key, ent.expiresAt)
		delete(c.data, key)
	}
	c.mu.Unlock()

	if ok {
		c.notify([]removal[K, V]{{key: key, value: ent.value, reason: Explicit}})
	}
}

// KeyExists reports whether key holds a live entry.
func (c *Cache[K, V]) KeyExists(key K) bool {
	l := c.locks.acquire(key)
	defer c.locks.release(key, l)

	c.mu.Lock()
	ent, gone := c.lookupLocked(key, c.now())
	c.mu.Unlock()
	c.notify(gone)

	return ent != nil
}

// TTLFor returns the time left before key expires, in whole seconds.
// It returns ErrCacheMiss if key has no live entry.
func (c *Cache[K, V]) TTLFor(key K) (time.Duration, error) {
	l := c.locks.acquire(key)
	defer c.locks.release(key, l)

	c.mu.Lock()
	now := c.now()
	ent, gone := c.lookupLocked(key, now)
	var secs int64
	if ent != nil {
		secs = ent.ttl(now)
	}
	c.mu.Unlock()
	c.notify(gone)

	if ent == nil {
		return 0, fmt.Errorf("%w: %v", ErrCacheMiss, key)
	}
	return time.Duration(min(secs, maxDurationSecs)) * time.Second, nil
}

// UpdateTTL gives the live entry for key a new expiry without touching its
// value. If pred is non-nil and returns false for the current value the
// expiry is left as is. It returns ErrCacheMiss if key has no live entry.
func (c *Cache[K, V]) UpdateTTL(key K, pred func(V) bool, exp ...Expiry) error {
	spec, err := resolveExpiry(exp)
	if err != nil {
		return err
	}

	l := c.locks.acquire(key)
	defer c.locks.release(key, l)

	c.mu.Lock()
	ent, gone := c.lookupLocked(key, c.now())
	var v V
	if ent != nil {
		v = ent.value
	}
	c.mu.Unlock()
	c.notify(gone)

	if ent == nil {
		return fmt.Errorf("%w: %v", ErrCacheMiss, key)
	}

	if pred != nil && !pred(v) {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// capacity eviction for another key may have removed it while pred ran
	ent, ok := c.data[key]
	if !ok {
		return fmt.Errorf("%w: %v", ErrCacheMiss, key)
	}

	at := spec.at(c.now(), c.defaultSecs())
	c.index.remove(key, ent.expiresAt)
	ent.expiresAt = at
	c.index.add(key, at)
	return nil
}

// GC removes every entry whose expiry is in the past. It waits until no
// per-key operation is in flight, then sweeps while holding the structural
// lock so operations arriving during the sweep wait for it. GC must not be
// called from inside a fallback or producer.
func (c *Cache[K, V]) GC() {
	c.locks.quiesce()
	now := c.now()
	var gone []removal[K, V]
	for {
		at, ok := c.index.soonest()
		if !ok || at >= now {
			break
		}
		gone = append(gone, c.evictBucketLocked(at, Collected)...)
	}
	c.stats.collected()
	c.locks.resume()

	c.notify(gone)
	c.cfg.logger.Debug("ttlcache: gc sweep",
		"removed", len(gone),
		"at", now,
	)
}

// Size returns the number of entries in the cache.
// May include expired entries that haven't been cleaned up yet.
func (c *Cache[K, V]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.data)
}

// Stats returns a snapshot of cache statistics.
func (c *Cache[K, V]) Stats() Snapshot {
	return c.stats.Snapshot()
}

func (c *Cache[K, V]) now() int64 {
	return unix(c.cfg.clock)
}

func (c *Cache[K, V]) defaultSecs() int64 {
	return int64(c.cfg.defaultExpiry / time.Second)
}

// store writes v under key. The caller must hold key's lock.
func (c *Cache[K, V]) store(key K, v V, spec expirySpec) {
	c.mu.Lock()
	at := spec.at(c.now(), c.defaultSecs())
	gone := c.storeLocked(key, v, at)
	c.mu.Unlock()

	if len(gone) > 0 {
		c.cfg.logger.Debug("ttlcache: capacity eviction",
			"stored", key,
			"evicted", len(gone),
		)
	}
	c.notify(gone)
}

func (c *Cache[K, V]) storeLocked(key K, v V, at int64) []removal[K, V] {
	if ent, ok := c.data[key]; ok {
		c.index.remove(key, ent.expiresAt)
		ent.value = v
		ent.expiresAt = at
	} else {
		c.data[key] = &entry[V]{value: v, expiresAt: at}
	}
	c.index.add(key, at)

	if len(c.data) <= c.cfg.maxSize {
		return nil
	}
	soonest, _ := c.index.soonest()
	return c.evictBucketLocked(soonest, Capacity)
}

// lookupLocked returns key's entry if it is live. An expired entry takes its
// whole expiry bucket with it.
func (c *Cache[K, V]) lookupLocked(key K, now int64) (*entry[V], []removal[K, V]) {
	ent, ok := c.data[key]
	if !ok {
		return nil, nil
	}
	if ent.isLive(now) {
		return ent, nil
	}
	return nil, c.evictBucketLocked(ent.expiresAt, Expired)
}

func (c *Cache[K, V]) evictBucketLocked(at int64, reason EvictReason) []removal[K, V] {
	keys := c.index.take(at)
	gone := make([]removal[K, V], 0, len(keys))
	for _, k := range keys {
		ent, ok := c.data[k]
		if !ok {
			continue
		}
		delete(c.data, k)
		gone = append(gone, removal[K, V]{key: k, value: ent.value, reason: reason})
	}
	return gone
}

func (c *Cache[K, V]) notify(gone []removal[K, V]) {
	for _, r := range gone {
		c.stats.removed(r.reason)
		if c.cfg.onEvict != nil {
			c.cfg.onEvict(r.key, r.value, r.reason)
		}
	}
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return rv.IsNil()
	}
	return false
}
