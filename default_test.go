package ttlcache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	t.Cleanup(func() {
		Configure()
	})

	clk := &mockClock{now: time.Unix(20, 0)}
	Configure(
		WithMaxSize[any, any](5),
		WithClock[any, any](clk),
	)

	c := Default()
	require.Same(t, c, Default(), "default instance should be built once")
	assert.Equal(t, 5, c.cfg.maxSize)
	assert.Equal(t, DefaultExpiry, c.cfg.defaultExpiry)

	_, err := c.Fetch("k", func() (any, error) {
		return 1, nil
	})
	require.NoError(t, err)

	ttl, err := c.TTLFor("k")
	require.NoError(t, err)
	assert.Equal(t, 60*time.Second, ttl)
}

func TestSetDefault(t *testing.T) {
	t.Cleanup(func() {
		Configure()
	})
	Configure()

	orig := Default()
	require.NoError(t, orig.Set("k", 1))

	isolated := New[any, any]()
	prev := SetDefault(isolated)
	assert.Same(t, orig, prev)
	assert.Same(t, isolated, Default())
	assert.False(t, Default().KeyExists("k"))

	SetDefault(nil)
	fresh := Default()
	assert.NotSame(t, orig, fresh)
	assert.NotSame(t, isolated, fresh)
}

func TestConfigureDiscardsInstance(t *testing.T) {
	t.Cleanup(func() {
		Configure()
	})

	Configure(WithMaxSize[any, any](2))
	first := Default()

	Configure(WithMaxSize[any, any](3))
	second := Default()

	assert.NotSame(t, first, second)
	assert.Equal(t, 3, second.cfg.maxSize)
}
