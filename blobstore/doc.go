// Package blobstore provides the record-store abstraction datasets are read from.
//
// A dataset lives under a root as plain files, for example
//
//	refcoco/refs(unc).json
//	refcoco/instances.json.zst
//
// and BlobStore resolves those names against a backend. Implementations must
// be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem
//   - MemoryStore: in-memory, used by tests and fixtures
//   - CachingStore: LRU block cache in front of another store
//   - RateLimitedStore: read throughput limit in front of another store
//   - s3.Store: Amazon S3 with range reads
//   - minio.Store: MinIO and other S3-compatible services
//
// # Custom Implementations
//
//	type BlobStore interface {
//	    Open(ctx, name) (Blob, error)
//	    Put(ctx, name, data) error
//	    List(ctx, prefix) ([]string, error)
//	}
package blobstore
