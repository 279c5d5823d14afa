package cache

import (
	"context"
	"testing"

	"github.com/hupe1980/refer/internal/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLRUBlockCache_GetSet(t *testing.T) {
	ctx := context.Background()
	c := NewLRUBlockCache(10, nil)

	key := Key{Path: "refcoco/instances.json", Block: 0}
	_, ok := c.Get(ctx, key)
	assert.False(t, ok)

	c.Set(ctx, key, []byte("abc"))
	got, ok := c.Get(ctx, key)
	require.True(t, ok)
	assert.Equal(t, []byte("abc"), got)

	hits, misses := c.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)
}

func TestLRUBlockCache_Eviction(t *testing.T) {
	ctx := context.Background()
	c := NewLRUBlockCache(6, nil)

	c.Set(ctx, Key{Path: "a"}, []byte("123"))
	c.Set(ctx, Key{Path: "b"}, []byte("456"))

	// Touch a so b becomes least recently used.
	_, ok := c.Get(ctx, Key{Path: "a"})
	require.True(t, ok)

	c.Set(ctx, Key{Path: "c"}, []byte("789"))

	_, ok = c.Get(ctx, Key{Path: "b"})
	assert.False(t, ok)
	_, ok = c.Get(ctx, Key{Path: "a"})
	assert.True(t, ok)
	assert.Equal(t, int64(6), c.Size())
	assert.Equal(t, 2, c.Len())
}

func TestLRUBlockCache_Replace(t *testing.T) {
	ctx := context.Background()
	c := NewLRUBlockCache(10, nil)

	c.Set(ctx, Key{Path: "a"}, []byte("1234"))
	c.Set(ctx, Key{Path: "a"}, []byte("12"))

	got, ok := c.Get(ctx, Key{Path: "a"})
	require.True(t, ok)
	assert.Equal(t, []byte("12"), got)
	assert.Equal(t, int64(2), c.Size())
}

func TestLRUBlockCache_Oversized(t *testing.T) {
	ctx := context.Background()
	c := NewLRUBlockCache(2, nil)

	c.Set(ctx, Key{Path: "a"}, []byte("123"))
	assert.Equal(t, 0, c.Len())
}

func TestLRUBlockCache_Invalidate(t *testing.T) {
	ctx := context.Background()
	c := NewLRUBlockCache(100, nil)

	for i := range 3 {
		c.Set(ctx, Key{Path: "x", Block: uint64(i)}, []byte{byte(i)})
	}
	c.Set(ctx, Key{Path: "y"}, []byte{9})

	c.Invalidate(func(k Key) bool { return k.Path == "x" })

	assert.Equal(t, 1, c.Len())
	_, ok := c.Get(ctx, Key{Path: "y"})
	assert.True(t, ok)
}

func TestLRUBlockCache_ResourceController(t *testing.T) {
	ctx := context.Background()
	rc := resource.NewController(resource.Config{MemoryLimitBytes: 4})
	c := NewLRUBlockCache(100, rc)

	c.Set(ctx, Key{Path: "a"}, []byte("123"))
	assert.Equal(t, int64(3), rc.MemoryUsage())

	// Denied by the controller even though the cache has room.
	c.Set(ctx, Key{Path: "b"}, []byte("45"))
	_, ok := c.Get(ctx, Key{Path: "b"})
	assert.False(t, ok)

	c.Invalidate(func(Key) bool { return true })
	assert.Equal(t, int64(0), rc.MemoryUsage())
}
