// Package refer indexes referring-expression datasets (RefCOCO, RefCOCO+,
// RefCOCOg, RefCLEF) and answers compound queries over them.
//
// # Quick Start
//
//	ctx := context.Background()
//	store := blobstore.NewLocalStore("./data")
//	r, err := refer.Open(ctx, store, "refcoco", "unc")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ids, _ := r.RefIDs(refer.RefFilter{Split: "testA"})
//	refs, _ := r.LoadRefs(ids...)
//	box, _ := r.RefBox(refs[0].ID)
//	m, _ := r.Mask(refs[0])
//
// # Index
//
// Construction reads two record files (refs and COCO instances) fully into
// memory and builds twelve mappings in one forward pass:
//
//	refs, anns, imgs, cats, sents
//	img_to_refs, img_to_anns, cat_to_refs
//	ref_to_ann, ann_to_ref, sent_to_ref, sent_to_tokens
//
// Grouped mappings keep the order records appear in the source files.
//
// # Queries
//
// RefIDs and AnnIDs take a filter whose empty fields impose no constraint.
// Split names are resolved by SplitQuery:
//
//	""                        any split
//	"train", "val"            exact
//	"test"                    any split containing "test"
//	"testA", "testB", "testC" any split containing the final letter
//	"testAB", "testBC", ...   exact
//
// # Concurrency
//
// A *Refer is immutable after construction and every method returns copies,
// so it is safe for concurrent use.
//
// # Errors
//
// Failures are typed (*DatasetNotFoundError, *RecordLookupError,
// *InvalidSplitError, *DuplicateIDError) and match the sentinels
// ErrDatasetNotFound, ErrRecordNotFound, ErrInvalidSplit and ErrDuplicateID
// with errors.Is.
package refer
