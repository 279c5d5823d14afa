package benchmark_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/hupe1980/refer"
	"github.com/hupe1980/refer/blobstore"
	"github.com/hupe1980/refer/compression"
	"github.com/hupe1980/refer/eval"
	"github.com/hupe1980/refer/internal/cache"
	"github.com/hupe1980/refer/internal/resource"
	"github.com/hupe1980/refer/model"
	"github.com/hupe1980/refer/testutil"
)

// LatencyStore wraps a BlobStore and adds artificial latency to every
// Open and read.
type LatencyStore struct {
	base    blobstore.BlobStore
	latency time.Duration
}

func (s *LatencyStore) Open(ctx context.Context, name string) (blobstore.Blob, error) {
	time.Sleep(s.latency / 2) // metadata round trip
	b, err := s.base.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	return &LatencyBlob{base: b, latency: s.latency}, nil
}

func (s *LatencyStore) Put(ctx context.Context, name string, data []byte) error {
	return s.base.Put(ctx, name, data)
}

func (s *LatencyStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.base.List(ctx, prefix)
}

type LatencyBlob struct {
	base    blobstore.Blob
	latency time.Duration
}

func (b *LatencyBlob) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	time.Sleep(b.latency)
	return b.base.ReadAt(ctx, p, off)
}

func (b *LatencyBlob) ReadRange(ctx context.Context, off, length int64) (io.ReadCloser, error) {
	time.Sleep(b.latency)
	return b.base.ReadRange(ctx, off, length)
}

func (b *LatencyBlob) Size() int64  { return b.base.Size() }
func (b *LatencyBlob) Close() error { return b.base.Close() }

// simulate cloud latency (S3 TTFB is typically 10-50ms)
const cloudLatency = 5 * time.Millisecond

func benchData(b *testing.B, images int) *model.RawData {
	b.Helper()
	return testutil.NewRNG(7).Dataset("refcoco", "unc", images)
}

func BenchmarkOpen(b *testing.B) {
	ctx := context.Background()
	data := benchData(b, 500)

	for _, ct := range []compression.Type{compression.None, compression.Gzip, compression.Zstd, compression.LZ4} {
		b.Run(ct.String(), func(b *testing.B) {
			dir := b.TempDir()
			if err := testutil.Publish(ctx, blobstore.NewLocalStore(dir), data, ct); err != nil {
				b.Fatal(err)
			}
			store := blobstore.NewLocalStore(dir)
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := refer.Open(ctx, store, "refcoco", "unc"); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkOpen_Remote(b *testing.B) {
	ctx := context.Background()
	mem := blobstore.NewMemoryStore()
	if err := testutil.Publish(ctx, mem, benchData(b, 200), compression.Zstd); err != nil {
		b.Fatal(err)
	}
	remote := &LatencyStore{base: mem, latency: cloudLatency}

	rc := resource.NewController(resource.Config{MemoryLimitBytes: 1 << 30})
	cached := blobstore.NewCachingStore(remote, cache.NewLRUBlockCache(64<<20, rc), 64<<10)

	b.Run("Direct", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			if _, err := refer.Open(ctx, remote, "refcoco", "unc"); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("Cached", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			if _, err := refer.Open(ctx, cached, "refcoco", "unc"); err != nil {
				b.Fatal(err)
			}
		}
	})
}

func BenchmarkQueries(b *testing.B) {
	r, err := refer.New(benchData(b, 2000))
	if err != nil {
		b.Fatal(err)
	}
	cats := r.CatIDs()
	all, err := r.RefIDs(refer.RefFilter{})
	if err != nil {
		b.Fatal(err)
	}

	b.Run("RefIDs_Split", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			if _, err := r.RefIDs(refer.RefFilter{Split: "testA"}); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("RefIDs_CatSplit", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			f := refer.RefFilter{CatIDs: cats[i%len(cats) : i%len(cats)+1], Split: "train"}
			if _, err := r.RefIDs(f); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("AnnIDs_Refs", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			if _, err := r.AnnIDs(refer.AnnFilter{RefIDs: all}); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("ImgIDs", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			if _, err := r.ImgIDs(all...); err != nil {
				b.Fatal(err)
			}
		}
	})
}

func BenchmarkMask(b *testing.B) {
	r, err := refer.New(benchData(b, 200))
	if err != nil {
		b.Fatal(err)
	}
	ids, err := r.RefIDs(refer.RefFilter{})
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := r.MaskByID(ids[i%len(ids)]); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEvaluate(b *testing.B) {
	ctx := context.Background()
	r, err := refer.New(benchData(b, 300))
	if err != nil {
		b.Fatal(err)
	}
	ids, err := r.RefIDs(refer.RefFilter{})
	if err != nil {
		b.Fatal(err)
	}
	refs, err := r.LoadRefs(ids...)
	if err != nil {
		b.Fatal(err)
	}
	results := make([]eval.Result, 0, len(refs))
	for _, ref := range refs {
		results = append(results, eval.Result{RefID: ref.ID, Sent: ref.Sentences[len(ref.Sentences)-1].Sent})
	}

	for _, scorer := range eval.DefaultScorers() {
		b.Run(scorer.Name(), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := eval.Evaluate(ctx, r, results, eval.WithScorers(scorer)); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
