package blobstore

import (
	"context"
	"io"

	"github.com/hupe1980/refer/internal/resource"
)

// RateLimitedStore bounds concurrent reads and read throughput of the wrapped store.
type RateLimitedStore struct {
	inner BlobStore
	rc    *resource.Controller
}

// NewRateLimitedStore wraps inner. A nil controller imposes no limits.
func NewRateLimitedStore(inner BlobStore, rc *resource.Controller) *RateLimitedStore {
	return &RateLimitedStore{inner: inner, rc: rc}
}

// Open opens name on the wrapped store.
func (s *RateLimitedStore) Open(ctx context.Context, name string) (Blob, error) {
	b, err := s.inner.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	return &rateLimitedBlob{inner: b, rc: s.rc}, nil
}

// Put writes through without limiting.
func (s *RateLimitedStore) Put(ctx context.Context, name string, data []byte) error {
	return s.inner.Put(ctx, name, data)
}

// List delegates to the wrapped store.
func (s *RateLimitedStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.inner.List(ctx, prefix)
}

type rateLimitedBlob struct {
	inner Blob
	rc    *resource.Controller
}

func (b *rateLimitedBlob) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	release, err := b.rc.BeginRead(ctx, len(p))
	if err != nil {
		return 0, err
	}
	defer release()
	return b.inner.ReadAt(ctx, p, off)
}

func (b *rateLimitedBlob) ReadRange(ctx context.Context, off, length int64) (io.ReadCloser, error) {
	return io.NopCloser(&blobReader{ctx: ctx, blob: b, off: off, limit: off + length}), nil
}

func (b *rateLimitedBlob) Size() int64 {
	return b.inner.Size()
}

func (b *rateLimitedBlob) Close() error {
	return b.inner.Close()
}
