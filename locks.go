package ttlcache

import "sync"

// keyLock serializes operations on a single key. refs counts goroutines that
// hold or are waiting for mu.
type keyLock struct {
	mu   sync.Mutex
	refs int
}

// lockTable hands out per-key locks. Records exist only while some goroutine
// is inside a locked region for the key, so the table tracks contended keys
// rather than every key ever seen.
//
// The structural mutex is shared with the cache; it is held only briefly to
// register and deregister, never while waiting for a key.
type lockTable[K comparable] struct {
	mu    *sync.Mutex
	idle  *sync.Cond // signalled when a record is deleted
	locks map[K]*keyLock
}

func newLockTable[K comparable](mu *sync.Mutex) *lockTable[K] {
	return &lockTable[K]{
		mu:    mu,
		idle:  sync.NewCond(mu),
		locks: make(map[K]*keyLock),
	}
}

func (t *lockTable[K]) acquire(key K) *keyLock {
	t.mu.Lock()
	l, ok := t.locks[key]
	if !ok {
		l = &keyLock{}
		t.locks[key] = l
	}
	l.refs++
	t.mu.Unlock()

	l.mu.Lock()
	return l
}

func (t *lockTable[K]) release(key K, l *keyLock) {
	l.mu.Unlock()

	t.mu.Lock()
	l.refs--
	if l.refs == 0 {
		delete(t.locks, key)
		t.idle.Broadcast()
	}
	t.mu.Unlock()
}

// quiesce returns with the structural mutex held and no key lock in use.
// Registrations are not gated while it waits: a goroutine already holding a
// key may lock further keys and must be able to finish. New acquisitions
// block on the structural mutex once quiesce returns. The caller must call
// resume when done.
func (t *lockTable[K]) quiesce() {
	t.mu.Lock()
	for len(t.locks) > 0 {
		t.idle.Wait()
	}
}

func (t *lockTable[K]) resume() {
	t.mu.Unlock()
}
