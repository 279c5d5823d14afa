// Package resource bounds the memory, read concurrency, and read throughput
// a REFER process spends on its record store.
//
// A nil *Controller is valid and imposes no limits, so callers can pass it
// through unconditionally.
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes:   256 << 20,
//	    MaxConcurrentReads: 4,
//	    ReadBytesPerSec:    50 << 20,
//	})
package resource
