package ttlcache

import (
	"strconv"
	"testing"
	"time"
)

func BenchmarkCache_Fetch(b *testing.B) {
	cache := New[string, int](WithMaxSize[string, int](1000))

	keys := make([]string, 100)
	for i := range keys {
		keys[i] = strconv.Itoa(i)
		cache.Set(keys[i], i, Immortal())
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cache.Fetch(keys[i%100], nil)
	}
}

func BenchmarkCache_Set(b *testing.B) {
	cache := New[string, int](WithMaxSize[string, int](b.N + 1))

	keys := make([]string, b.N)
	for i := range keys {
		keys[i] = strconv.Itoa(i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cache.Set(keys[i], i)
	}
}

func BenchmarkCache_SetWithEviction(b *testing.B) {
	cache := New[string, int](WithMaxSize[string, int](100))

	keys := make([]string, b.N)
	for i := range keys {
		keys[i] = strconv.Itoa(i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cache.Set(keys[i], i, ExpireIn(time.Duration(i%60)*time.Second))
	}
}

func BenchmarkCache_Parallel(b *testing.B) {
	cache := New[string, int](WithMaxSize[string, int](1000))

	keys := make([]string, 100)
	for i := range keys {
		keys[i] = strconv.Itoa(i)
		cache.Set(keys[i], i)
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			key := keys[i%100]
			if i%10 == 0 {
				cache.Set(key, i)
			} else {
				cache.Fetch(key, func() (int, error) { return i, nil })
			}
			i++
		}
	})
}

func BenchmarkCache_GC(b *testing.B) {
	clk := &mockClock{now: time.Unix(0, 0)}
	cache := New[string, int](
		WithMaxSize[string, int](10000),
		WithClock[string, int](clk),
	)

	keys := make([]string, 1000)
	for i := range keys {
		keys[i] = strconv.Itoa(i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		for j, key := range keys {
			cache.Set(key, j, ExpireIn(time.Duration(j%10)*time.Second))
		}
		clk.Advance(time.Minute)
		b.StartTimer()

		cache.GC()
	}
}
