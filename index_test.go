package ttlcache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpiryIndexSoonest(t *testing.T) {
	x := newExpiryIndex[string]()

	_, ok := x.soonest()
	require.False(t, ok)

	x.add("c", 30)
	x.add("a", 10)
	x.add("b", 20)
	x.add("a2", 10)

	at, ok := x.soonest()
	require.True(t, ok)
	assert.Equal(t, int64(10), at)
	assert.Equal(t, 3, x.len())
}

func TestExpiryIndexTake(t *testing.T) {
	x := newExpiryIndex[string]()
	x.add("a", 10)
	x.add("b", 10)
	x.add("c", 20)

	keys := x.take(10)
	assert.ElementsMatch(t, []string{"a", "b"}, keys)

	at, ok := x.soonest()
	require.True(t, ok)
	assert.Equal(t, int64(20), at)

	assert.Nil(t, x.take(10))
}

func TestExpiryIndexRemoveDropsEmptyBucket(t *testing.T) {
	x := newExpiryIndex[string]()
	x.add("a", 10)
	x.add("b", 10)
	x.add("c", 20)

	x.remove("a", 10)
	at, _ := x.soonest()
	assert.Equal(t, int64(10), at, "bucket still holds b")

	x.remove("b", 10)
	at, _ = x.soonest()
	assert.Equal(t, int64(20), at, "empty bucket must not count as soonest")
	assert.Equal(t, 1, x.len())

	// unknown keys and timestamps are ignored
	x.remove("zzz", 20)
	x.remove("c", 99)
	assert.Equal(t, 1, x.len())
}

func TestExpiryIndexHeapOrder(t *testing.T) {
	x := newExpiryIndex[int]()
	for i, at := range []int64{50, 10, 40, 20, 30, 60, 5} {
		x.add(i, at)
	}
	x.remove(2, 40)

	var got []int64
	for {
		at, ok := x.soonest()
		if !ok {
			break
		}
		got = append(got, at)
		x.take(at)
	}
	assert.Equal(t, []int64{5, 10, 20, 30, 50, 60}, got)
}
