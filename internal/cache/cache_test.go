package cache

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestCache returns a cache driven by a controllable clock
func newTestCache(t *testing.T, ttl time.Duration) (*Cache[string], *time.Time) {
	t.Helper()
	c := New[string](ttl)
	t.Cleanup(c.Close)

	now := time.Unix(1_700_000_000, 0)
	c.now = func() time.Time { return now }
	return c, &now
}

func TestCache_SetAndGet(t *testing.T) {
	c, _ := newTestCache(t, time.Hour)

	c.Set("key1", "value1")

	val, found := c.Get("key1")
	assert.True(t, found)
	assert.Equal(t, "value1", val)
}

func TestCache_GetMissing(t *testing.T) {
	c, _ := newTestCache(t, time.Hour)

	val, found := c.Get("nonexistent")
	assert.False(t, found)
	assert.Empty(t, val)
}

func TestCache_Expiration(t *testing.T) {
	c, now := newTestCache(t, 2*time.Second)

	c.Set("key", "value")

	val, found := c.Get("key")
	assert.True(t, found)
	assert.Equal(t, "value", val)

	*now = now.Add(3 * time.Second)

	val, found = c.Get("key")
	assert.False(t, found)
	assert.Empty(t, val)
}

func TestCache_SetWithTTL(t *testing.T) {
	c, now := newTestCache(t, time.Hour)

	c.SetWithTTL("short", "value", 50*time.Millisecond)
	c.Set("long", "value")

	_, found := c.Get("short")
	assert.True(t, found)

	*now = now.Add(100 * time.Millisecond)

	_, found = c.Get("short")
	assert.False(t, found)
	_, found = c.Get("long")
	assert.True(t, found)
}

func TestCache_GetOrSet(t *testing.T) {
	c, _ := newTestCache(t, time.Hour)

	callCount := 0
	fn := func() (string, error) {
		callCount++
		return "computed", nil
	}

	val, err := c.GetOrSet("key", fn)
	require.NoError(t, err)
	assert.Equal(t, "computed", val)

	val, err = c.GetOrSet("key", fn)
	require.NoError(t, err)
	assert.Equal(t, "computed", val)
	assert.Equal(t, 1, callCount)
}

func TestCache_GetOrSetError(t *testing.T) {
	c, _ := newTestCache(t, time.Hour)

	_, err := c.GetOrSet("key", func() (string, error) {
		return "", errors.New("sample failed")
	})
	assert.Error(t, err)

	_, found := c.Get("key")
	assert.False(t, found)
}

func TestCache_Sweep(t *testing.T) {
	c, now := newTestCache(t, time.Second)

	c.Set("stale", "a")
	c.SetWithTTL("fresh", "b", time.Hour)
	*now = now.Add(2 * time.Second)

	c.sweep()

	assert.Len(t, c.items, 1)
	_, found := c.Get("fresh")
	assert.True(t, found)
}

func TestCache_CloseIsIdempotent(t *testing.T) {
	c := New[int](time.Second)

	assert.NotPanics(t, func() {
		c.Close()
		c.Close()
	})
}

func TestCache_ConcurrentAccess(t *testing.T) {
	c := New[int](time.Hour)
	defer c.Close()

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			c.Set(KeyTopProcesses, i)
		}
	}()

	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			c.Get(KeyTopProcesses)
		}
	}()

	wg.Wait()
}
