// Package dataset knows where the REFER datasets live and how to load them.
//
// Each dataset consists of two record files below the store root:
//
//	<name>/refs(<splitBy>).json   referring expressions, one object per ref
//	<name>/instances.json         COCO-style images, annotations and categories
//
// Either file may be compressed; ".zst", ".gz" and ".lz4" suffixes are
// recognized and decompressed transparently.
package dataset
