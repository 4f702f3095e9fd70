package ttlcache

import "container/heap"

// bucket holds every key sharing one exact expiry timestamp.
type bucket[K comparable] struct {
	at    int64
	keys  map[K]struct{}
	index int // position in bucketHeap
}

// bucketHeap orders buckets by expiry, soonest first.
type bucketHeap[K comparable] []*bucket[K]

// Compile-time interface assertion.
var _ heap.Interface = (*bucketHeap[string])(nil)

func (h bucketHeap[K]) Len() int           { return len(h) }
func (h bucketHeap[K]) Less(i, j int) bool { return h[i].at < h[j].at }

func (h bucketHeap[K]) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *bucketHeap[K]) Push(x any) {
	b := x.(*bucket[K])
	b.index = len(*h)
	*h = append(*h, b)
}

func (h *bucketHeap[K]) Pop() any {
	old := *h
	n := len(old)
	b := old[n-1]
	old[n-1] = nil
	b.index = -1
	*h = old[:n-1]
	return b
}

// expiryIndex maps expiry timestamps to the keys that expire then. Empty
// buckets are dropped immediately, so the heap root is always the soonest
// populated expiry.
type expiryIndex[K comparable] struct {
	buckets map[int64]*bucket[K]
	order   bucketHeap[K]
}

func newExpiryIndex[K comparable]() *expiryIndex[K] {
	return &expiryIndex[K]{
		buckets: make(map[int64]*bucket[K]),
	}
}

func (x *expiryIndex[K]) add(key K, at int64) {
	b, ok := x.buckets[at]
	if !ok {
		b = &bucket[K]{at: at, keys: make(map[K]struct{})}
		x.buckets[at] = b
		heap.Push(&x.order, b)
	}
	b.keys[key] = struct{}{}
}

func (x *expiryIndex[K]) remove(key K, at int64) {
	b, ok := x.buckets[at]
	if !ok {
		return
	}
	delete(b.keys, key)
	if len(b.keys) == 0 {
		x.drop(b)
	}
}

// take removes the bucket for at and returns its keys.
func (x *expiryIndex[K]) take(at int64) []K {
	b, ok := x.buckets[at]
	if !ok {
		return nil
	}
	x.drop(b)

	keys := make([]K, 0, len(b.keys))
	for k := range b.keys {
		keys = append(keys, k)
	}
	return keys
}

// soonest returns the smallest populated expiry.
func (x *expiryIndex[K]) soonest() (int64, bool) {
	if len(x.order) == 0 {
		return 0, false
	}
	return x.order[0].at, true
}

func (x *expiryIndex[K]) drop(b *bucket[K]) {
	delete(x.buckets, b.at)
	if b.index >= 0 {
		heap.Remove(&x.order, b.index)
	}
}

func (x *expiryIndex[K]) len() int {
	return len(x.buckets)
}
