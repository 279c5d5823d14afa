// Package mask implements the COCO segmentation mask codec.
//
// Masks are run-length encoded in column-major order: Counts alternates runs
// of 0 and 1 pixels, always starting with a (possibly empty) run of 0s.
// Polygons are rasterized with the same 5x upsampling and boundary sampling
// the COCO tools use, so areas match the published annotation files.
//
// The compressed string form packs each count (or, from the fourth count on,
// its difference to the count two positions back) into 5-bit groups offset
// by ASCII '0'.
package mask
