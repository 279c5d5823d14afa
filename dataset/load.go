package dataset

import (
	"context"
	"errors"
	"fmt"

	"github.com/hupe1980/refer/blobstore"
	"github.com/hupe1980/refer/codec"
	"github.com/hupe1980/refer/compression"
	"github.com/hupe1980/refer/model"
	"golang.org/x/sync/errgroup"
)

// Source reports which blob a record file was read from.
type Source struct {
	Name        string
	Compression compression.Type
	Bytes       int64
}

// Result is the outcome of Load.
type Result struct {
	Data      *model.RawData
	Refs      Source
	Instances Source
}

// Load fetches and decodes both record files of a dataset concurrently.
// Nothing is returned until both are fully materialized.
func Load(ctx context.Context, store blobstore.BlobStore, name, splitBy string, c codec.Codec) (*Result, error) {
	if _, err := Lookup(name); err != nil {
		return nil, err
	}
	if c == nil {
		c = codec.Default
	}

	var (
		refs      []model.Ref
		instances model.Instances
		res       Result
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		src, err := decodeFile(gctx, store, RefsFile(name, splitBy), c, &refs)
		res.Refs = src
		return err
	})
	g.Go(func() error {
		src, err := decodeFile(gctx, store, InstancesFile(name), c, &instances)
		res.Instances = src
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res.Data = &model.RawData{
		Dataset:   name,
		SplitBy:   splitBy,
		Refs:      refs,
		Instances: instances,
	}
	return &res, nil
}

// Resolve returns the first existing candidate of base: plain, then each
// compressed suffix in compression.Types order.
func Resolve(ctx context.Context, store blobstore.BlobStore, base string) (string, error) {
	for _, t := range compression.Types() {
		name := base + t.Suffix()
		ok, err := blobstore.Exists(ctx, store, name)
		if err != nil {
			return "", fmt.Errorf("resolve %s: %w", name, err)
		}
		if ok {
			return name, nil
		}
	}
	return "", fmt.Errorf("%s: %w", base, blobstore.ErrNotFound)
}

func decodeFile(ctx context.Context, store blobstore.BlobStore, base string, c codec.Codec, v any) (Source, error) {
	name, err := Resolve(ctx, store, base)
	if err != nil {
		return Source{}, err
	}
	t := compression.Detect(name)

	raw, err := blobstore.ReadAll(ctx, store, name)
	if err != nil {
		return Source{}, err
	}
	src := Source{Name: name, Compression: t, Bytes: int64(len(raw))}

	data, err := compression.Decompress(t, raw)
	if err != nil {
		return src, fmt.Errorf("decompress %s: %w", name, err)
	}
	if err := c.Unmarshal(data, v); err != nil {
		return src, fmt.Errorf("decode %s: %w", name, err)
	}
	return src, nil
}

// IsNotFound reports whether err means a record file is missing.
func IsNotFound(err error) bool {
	return errors.Is(err, blobstore.ErrNotFound)
}
