package blobstore

import (
	"context"
	"io"
	"sync/atomic"
	"testing"

	"github.com/hupe1980/refer/internal/cache"
	"github.com/hupe1980/refer/internal/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingStore records how many bytes are read from the backend.
type countingStore struct {
	*MemoryStore
	reads     atomic.Int64
	readBytes atomic.Int64
}

func (s *countingStore) Open(ctx context.Context, name string) (Blob, error) {
	b, err := s.MemoryStore.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	return &countingBlob{Blob: b, store: s}, nil
}

type countingBlob struct {
	Blob
	store *countingStore
}

func (b *countingBlob) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	n, err := b.Blob.ReadAt(ctx, p, off)
	b.store.reads.Add(1)
	b.store.readBytes.Add(int64(n))
	return n, err
}

func newCountingStore(t *testing.T, name string, data []byte) *countingStore {
	t.Helper()
	s := &countingStore{MemoryStore: NewMemoryStore()}
	require.NoError(t, s.Put(context.Background(), name, data))
	return s
}

func TestCachingStore_ReadAt(t *testing.T) {
	ctx := context.Background()

	data := make([]byte, 1024)
	for i := range data {
		data[i] = byte(i % 251)
	}
	inner := newCountingStore(t, "instances.json", data)
	store := NewCachingStore(inner, cache.NewLRUBlockCache(1<<20, nil), 256)

	blob, err := store.Open(ctx, "instances.json")
	require.NoError(t, err)
	defer blob.Close()

	buf := make([]byte, 100)
	n, err := blob.ReadAt(ctx, buf, 0)
	require.NoError(t, err)
	assert.Equal(t, 100, n)
	assert.Equal(t, data[:100], buf)
	assert.Equal(t, int64(1), inner.reads.Load())
	assert.Equal(t, int64(256), inner.readBytes.Load())

	// Cached.
	_, err = blob.ReadAt(ctx, buf, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), inner.reads.Load())

	// Spans block 0 (cached) and block 1 (missing).
	n, err = blob.ReadAt(ctx, buf, 200)
	require.NoError(t, err)
	assert.Equal(t, 100, n)
	assert.Equal(t, data[200:300], buf)
	assert.Equal(t, int64(2), inner.reads.Load())
	assert.Equal(t, int64(512), inner.readBytes.Load())
}

func TestCachingStore_ReadAllMatchesInner(t *testing.T) {
	ctx := context.Background()

	data := make([]byte, 10_000)
	for i := range data {
		data[i] = byte(i * 7)
	}
	inner := newCountingStore(t, "refs.json", data)
	store := NewCachingStore(inner, cache.NewLRUBlockCache(1<<20, nil), 1000)

	got, err := ReadAll(ctx, store, "refs.json")
	require.NoError(t, err)
	assert.Equal(t, data, got)

	before := inner.reads.Load()
	got, err = ReadAll(ctx, store, "refs.json")
	require.NoError(t, err)
	assert.Equal(t, data, got)
	assert.Equal(t, before, inner.reads.Load())
}

func TestCachingStore_ShortTail(t *testing.T) {
	ctx := context.Background()
	inner := newCountingStore(t, "small", []byte("hello"))
	store := NewCachingStore(inner, cache.NewLRUBlockCache(1024, nil), 256)

	blob, err := store.Open(ctx, "small")
	require.NoError(t, err)

	buf := make([]byte, 10)
	n, err := blob.ReadAt(ctx, buf, 0)
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, 5, n)
	assert.Equal(t, "hello", string(buf[:n]))
}

func TestCachingStore_PutInvalidates(t *testing.T) {
	ctx := context.Background()
	inner := newCountingStore(t, "a", []byte("old"))
	store := NewCachingStore(inner, cache.NewLRUBlockCache(1024, nil), 256)

	got, err := ReadAll(ctx, store, "a")
	require.NoError(t, err)
	require.Equal(t, "old", string(got))

	require.NoError(t, store.Put(ctx, "a", []byte("new!")))

	got, err = ReadAll(ctx, store, "a")
	require.NoError(t, err)
	assert.Equal(t, "new!", string(got))
}

func TestRateLimitedStore(t *testing.T) {
	ctx := context.Background()
	inner := NewMemoryStore()
	require.NoError(t, inner.Put(ctx, "a", []byte("rate limited payload")))

	rc := resource.NewController(resource.Config{MaxConcurrentReads: 1, ReadBytesPerSec: 1 << 20})
	store := NewRateLimitedStore(inner, rc)

	got, err := ReadAll(ctx, store, "a")
	require.NoError(t, err)
	assert.Equal(t, "rate limited payload", string(got))

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = ReadAll(canceled, store, "a")
	assert.ErrorIs(t, err, context.Canceled)
}
