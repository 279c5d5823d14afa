package refer

import (
	"context"
	"slices"
	"time"

	"github.com/RoaringBitmap/roaring/v2/roaring64"

	"github.com/hupe1980/refer/model"
)

// RefFilter narrows RefIDs. Empty fields do not constrain.
type RefFilter struct {
	ImageIDs []model.ImageID
	CatIDs   []model.CatID
	RefIDs   []model.RefID
	Split    string
}

// AnnFilter narrows AnnIDs. Empty fields do not constrain.
type AnnFilter struct {
	ImageIDs []model.ImageID
	CatIDs   []model.CatID
	RefIDs   []model.RefID
}

// RefIDs returns the ids of refs matching every constraint of f.
//
// Refs of the given images come in image order, otherwise in load order.
// An unknown image id fails with a *RecordLookupError; a known image
// without refs contributes nothing.
func (r *Refer) RefIDs(f RefFilter) ([]model.RefID, error) {
	start := time.Now()

	ids, err := r.refIDs(f)
	r.observeQuery("ref_ids", len(ids), start, err)
	return ids, err
}

func (r *Refer) refIDs(f RefFilter) ([]model.RefID, error) {
	split, err := ParseSplit(f.Split)
	if err != nil {
		return nil, err
	}

	var candidates []model.RefID
	if len(f.ImageIDs) == 0 {
		candidates = slices.Clone(r.refOrder)
	} else {
		for _, imgID := range f.ImageIDs {
			if _, ok := r.imgs[imgID]; !ok {
				return nil, lookupErr(MappingImgs, imgID)
			}
			candidates = append(candidates, r.imgToRefs[imgID]...)
		}
	}

	if len(f.CatIDs) > 0 {
		cats := toSet(f.CatIDs)
		candidates = slices.DeleteFunc(candidates, func(id model.RefID) bool {
			_, ok := cats[r.refs[id].CategoryID]
			return !ok
		})
	}
	if len(f.RefIDs) > 0 {
		keep := toSet(f.RefIDs)
		candidates = slices.DeleteFunc(candidates, func(id model.RefID) bool {
			_, ok := keep[id]
			return !ok
		})
	}
	if split.Kind() != SplitAny {
		candidates = slices.DeleteFunc(candidates, func(id model.RefID) bool {
			return !split.Matches(r.refs[id].Split)
		})
	}

	if candidates == nil {
		candidates = []model.RefID{}
	}
	return candidates, nil
}

// AnnIDs returns the ids of annotations matching f.
//
// Unknown image ids are skipped. With RefIDs set the result is the
// intersection with the refs' annotations, ascending and deduplicated.
func (r *Refer) AnnIDs(f AnnFilter) ([]model.AnnID, error) {
	start := time.Now()

	ids, err := r.annIDs(f)
	r.observeQuery("ann_ids", len(ids), start, err)
	return ids, err
}

func (r *Refer) annIDs(f AnnFilter) ([]model.AnnID, error) {
	var candidates []model.AnnID
	if len(f.ImageIDs) == 0 {
		candidates = slices.Clone(r.annOrder)
	} else {
		for _, imgID := range f.ImageIDs {
			if anns, ok := r.imgToAnns[imgID]; ok {
				candidates = append(candidates, anns...)
			}
		}
	}

	if len(f.CatIDs) > 0 {
		cats := toSet(f.CatIDs)
		candidates = slices.DeleteFunc(candidates, func(id model.AnnID) bool {
			_, ok := cats[r.anns[id].CategoryID]
			return !ok
		})
	}

	if len(f.RefIDs) > 0 {
		want := roaring64.New()
		for _, refID := range f.RefIDs {
			annID, ok := r.refToAnn[refID]
			if !ok {
				return nil, lookupErr(MappingRefs, refID)
			}
			want.Add(uint64(annID))
		}

		have := roaring64.New()
		for _, id := range candidates {
			have.Add(uint64(id))
		}
		have.And(want)

		out := make([]model.AnnID, 0, have.GetCardinality())
		it := have.Iterator()
		for it.HasNext() {
			out = append(out, model.AnnID(it.Next()))
		}
		return out, nil
	}

	if candidates == nil {
		candidates = []model.AnnID{}
	}
	return candidates, nil
}

// ImgIDs returns the images of the given refs, deduplicated in first-seen
// order. Without refs every image id is returned in load order.
func (r *Refer) ImgIDs(refIDs ...model.RefID) ([]model.ImageID, error) {
	start := time.Now()

	ids, err := r.imgIDs(refIDs)
	r.observeQuery("img_ids", len(ids), start, err)
	return ids, err
}

func (r *Refer) imgIDs(refIDs []model.RefID) ([]model.ImageID, error) {
	if len(refIDs) == 0 {
		return slices.Clone(r.imgOrder), nil
	}

	seen := make(map[model.ImageID]struct{}, len(refIDs))
	out := make([]model.ImageID, 0, len(refIDs))
	for _, id := range refIDs {
		ref, ok := r.refs[id]
		if !ok {
			return nil, lookupErr(MappingRefs, id)
		}
		if _, dup := seen[ref.ImageID]; dup {
			continue
		}
		seen[ref.ImageID] = struct{}{}
		out = append(out, ref.ImageID)
	}
	return out, nil
}

// CatIDs returns every category id in load order.
func (r *Refer) CatIDs() []model.CatID {
	return slices.Clone(r.catOrder)
}

func (r *Refer) observeQuery(op string, results int, start time.Time, err error) {
	r.metrics.RecordQuery(op, results, time.Since(start), err)
	r.logger.LogQuery(context.Background(), op, results, err)
}

func toSet[T comparable](ids []T) map[T]struct{} {
	set := make(map[T]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
