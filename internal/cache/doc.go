// Package cache provides the byte-bounded LRU used to cache record-store
// blocks, so repeated opens of the same dataset avoid refetching from a
// remote store.
package cache
