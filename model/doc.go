// Package model defines the record types of a referring-expression dataset.
//
// # Identity Types
//
//   - ImageID: identifier of an image record
//   - AnnID: identifier of an annotation (object instance)
//   - CatID: identifier of a category
//   - RefID: identifier of a referring expression ("ref")
//   - SentID: identifier of a sentence owned by a ref
//
// Every id space is globally unique within one loaded dataset.
//
// # Record Types
//
//   - Image: file name and pixel dimensions
//   - Annotation: owning image, category, segmentation, bounding box and area
//   - Category: human-readable name
//   - Ref: target annotation, split label and 1-3 sentences
//   - Sentence: raw text and token list
//
// Records are immutable once loaded. Clone methods return deep copies so that
// callers never share backing arrays with an index.
package model
