// Package testutil provides dataset fixtures for REFER tests and benchmarks.
//
// This package is intended for use in tests and benchmarks only.
//
// # Hand-built fixtures
//
//	data := testutil.NewBuilder("refcoco", "unc").
//	    Image(1, "a.jpg", 100, 100).
//	    Category(1, "person").
//	    Ann(10, 1, 1, testutil.Rect(10, 10, 20, 30)).
//	    Ref(100, 10, "train", "man on the left").
//	    Build()
//
// # Synthetic datasets
//
//	rng := testutil.NewRNG(4711)
//	data := rng.Dataset("refcoco", "unc", 1000)
//
// # Publishing
//
//	store := blobstore.NewMemoryStore()
//	err := testutil.Publish(ctx, store, data, compression.Zstd)
package testutil
