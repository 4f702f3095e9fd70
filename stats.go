package ttlcache

import "sync/atomic"

// Stats holds cache statistics using atomic counters for lock-free updates.
type Stats struct {
	hits        atomic.Int64
	misses      atomic.Int64
	evictions   atomic.Int64
	expirations atomic.Int64
	collections atomic.Int64
}

func (s *Stats) hit() {
	s.hits.Add(1)
}

func (s *Stats) miss() {
	s.misses.Add(1)
}

func (s *Stats) removed(r EvictReason) {
	switch r {
	case Capacity:
		s.evictions.Add(1)
	case Expired, Collected:
		s.expirations.Add(1)
	}
}

func (s *Stats) collected() {
	s.collections.Add(1)
}

// Snapshot is a point-in-time copy of cache statistics.
type Snapshot struct {
	// Hits and Misses count Fetch lookups.
	Hits   int64
	Misses int64

	// Evictions counts entries removed to stay within the maximum size.
	Evictions int64

	// Expirations counts expired entries removed lazily or by GC.
	Expirations int64

	// Collections counts completed GC sweeps.
	Collections int64
}

// HitRate returns the cache hit rate as a value between 0 and 1.
// Returns 0 if there have been no accesses.
func (s Snapshot) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// Snapshot returns a point-in-time copy of the stats.
func (s *Stats) Snapshot() Snapshot {
	return Snapshot{
		Hits:        s.hits.Load(),
		Misses:      s.misses.Load(),
		Evictions:   s.evictions.Load(),
		Expirations: s.expirations.Load(),
		Collections: s.collections.Load(),
	}
}
