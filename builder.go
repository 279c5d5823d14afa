package refer

import (
	"context"

	"github.com/hupe1980/refer/blobstore"
	"github.com/hupe1980/refer/codec"
	"github.com/hupe1980/refer/dataset"
)

// Dataset creates a builder for opening the named dataset.
//
// The builder is immutable - each method returns a new builder with the updated configuration.
//
// Example:
//
//	r, err := refer.Dataset("refcoco").
//	    SplitBy("unc").
//	    Local("./data").
//	    Build(ctx)
func Dataset(name string) DatasetBuilder {
	return DatasetBuilder{name: name}
}

// DatasetBuilder is an immutable fluent builder for Open.
type DatasetBuilder struct {
	name     string
	splitBy  string
	store    blobstore.BlobStore
	codec    codec.Codec
	logger   *Logger
	metrics  MetricsCollector
	dataRoot *string
}

// SplitBy sets the split scheme. It defaults to the first scheme the
// registry lists for the dataset.
func (b DatasetBuilder) SplitBy(s string) DatasetBuilder {
	b.splitBy = s
	return b
}

// Store sets the blob store holding the record files.
func (b DatasetBuilder) Store(s blobstore.BlobStore) DatasetBuilder {
	b.store = s
	return b
}

// Local reads record files below dir.
func (b DatasetBuilder) Local(dir string) DatasetBuilder {
	b.store = blobstore.NewLocalStore(dir)
	return b
}

// Codec sets the record file codec.
func (b DatasetBuilder) Codec(c codec.Codec) DatasetBuilder {
	b.codec = c
	return b
}

// Logger sets the logger.
func (b DatasetBuilder) Logger(l *Logger) DatasetBuilder {
	b.logger = l
	return b
}

// Metrics sets the metrics collector.
func (b DatasetBuilder) Metrics(mc MetricsCollector) DatasetBuilder {
	b.metrics = mc
	return b
}

// DataRoot sets the directory image paths are resolved against.
func (b DatasetBuilder) DataRoot(dir string) DatasetBuilder {
	b.dataRoot = &dir
	return b
}

// Build opens the dataset.
func (b DatasetBuilder) Build(ctx context.Context) (*Refer, error) {
	splitBy := b.splitBy
	if splitBy == "" {
		info, err := dataset.Lookup(b.name)
		if err != nil {
			return nil, translateError(b.name, err)
		}
		splitBy = info.SplitBys[0]
	}

	store := b.store
	if store == nil {
		store = blobstore.NewLocalStore(".")
	}

	var opts []Option
	if b.codec != nil {
		opts = append(opts, WithCodec(b.codec))
	}
	if b.logger != nil {
		opts = append(opts, WithLogger(b.logger))
	}
	if b.metrics != nil {
		opts = append(opts, WithMetricsCollector(b.metrics))
	}
	if b.dataRoot != nil {
		opts = append(opts, WithDataRoot(*b.dataRoot))
	}

	return Open(ctx, store, b.name, splitBy, opts...)
}
