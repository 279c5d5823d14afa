package testutil

import (
	"context"

	"github.com/hupe1980/refer/blobstore"
	"github.com/hupe1980/refer/codec"
	"github.com/hupe1980/refer/compression"
	"github.com/hupe1980/refer/dataset"
	"github.com/hupe1980/refer/model"
)

// Publish writes data to store in the layout dataset.Load reads,
// compressing both record files with t.
func Publish(ctx context.Context, store blobstore.BlobStore, data *model.RawData, t compression.Type) error {
	refs, err := codec.Default.Marshal(data.Refs)
	if err != nil {
		return err
	}
	instances, err := codec.Default.Marshal(data.Instances)
	if err != nil {
		return err
	}

	files := map[string][]byte{
		dataset.RefsFile(data.Dataset, data.SplitBy): refs,
		dataset.InstancesFile(data.Dataset):          instances,
	}
	for name, raw := range files {
		packed, err := compression.Compress(t, raw)
		if err != nil {
			return err
		}
		if err := store.Put(ctx, name+t.Suffix(), packed); err != nil {
			return err
		}
	}
	return nil
}
