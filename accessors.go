package refer

import (
	"slices"

	"github.com/hupe1980/refer/model"
)

// LoadRefs returns the refs with the given ids in input order.
func (r *Refer) LoadRefs(ids ...model.RefID) ([]model.Ref, error) {
	return load(r.refs, MappingRefs, ids, model.Ref.Clone)
}

// LoadAnns returns the annotations with the given ids in input order.
func (r *Refer) LoadAnns(ids ...model.AnnID) ([]model.Annotation, error) {
	return load(r.anns, MappingAnns, ids, model.Annotation.Clone)
}

// LoadImgs returns the images with the given ids in input order.
func (r *Refer) LoadImgs(ids ...model.ImageID) ([]model.Image, error) {
	return load(r.imgs, MappingImgs, ids, func(img model.Image) model.Image { return img })
}

// LoadCats returns the category names with the given ids in input order.
func (r *Refer) LoadCats(ids ...model.CatID) ([]string, error) {
	return load(r.cats, MappingCats, ids, func(name string) string { return name })
}

func load[K ~int64, V any](m map[K]V, mapping string, ids []K, clone func(V) V) ([]V, error) {
	out := make([]V, 0, len(ids))
	for _, id := range ids {
		v, ok := m[id]
		if !ok {
			return nil, lookupErr(mapping, id)
		}
		out = append(out, clone(v))
	}
	return out, nil
}

func get[K ~int64, V any](m map[K]V, mapping string, id K) (V, error) {
	v, ok := m[id]
	if !ok {
		var zero V
		return zero, lookupErr(mapping, id)
	}
	return v, nil
}

// Ref returns a single ref.
func (r *Refer) Ref(id model.RefID) (model.Ref, error) {
	ref, err := get(r.refs, MappingRefs, id)
	return ref.Clone(), err
}

// Ann returns a single annotation.
func (r *Refer) Ann(id model.AnnID) (model.Annotation, error) {
	ann, err := get(r.anns, MappingAnns, id)
	return ann.Clone(), err
}

// Img returns a single image.
func (r *Refer) Img(id model.ImageID) (model.Image, error) {
	return get(r.imgs, MappingImgs, id)
}

// Cat returns a single category name.
func (r *Refer) Cat(id model.CatID) (string, error) {
	return get(r.cats, MappingCats, id)
}

// Sent returns a single sentence.
func (r *Refer) Sent(id model.SentID) (model.Sentence, error) {
	s, err := get(r.sents, MappingSents, id)
	return s.Clone(), err
}

// SentRef returns the ref owning a sentence.
func (r *Refer) SentRef(id model.SentID) (model.Ref, error) {
	refID, err := get(r.sentToRef, MappingSentToRef, id)
	if err != nil {
		return model.Ref{}, err
	}
	return r.Ref(refID)
}

// SentTokens returns the tokens of a sentence.
func (r *Refer) SentTokens(id model.SentID) ([]string, error) {
	toks, err := get(r.sentToTokens, MappingSentToTokens, id)
	return slices.Clone(toks), err
}

// RefAnn returns the annotation a ref targets.
func (r *Refer) RefAnn(id model.RefID) (model.Annotation, error) {
	annID, err := get(r.refToAnn, MappingRefToAnn, id)
	if err != nil {
		return model.Annotation{}, err
	}
	return r.Ann(annID)
}

// AnnRef returns the ref targeting an annotation. Annotations without a ref
// fail with a lookup error on the ann-to-ref mapping.
func (r *Refer) AnnRef(id model.AnnID) (model.Ref, error) {
	refID, err := get(r.annToRef, MappingAnnToRef, id)
	if err != nil {
		return model.Ref{}, err
	}
	return r.Ref(refID)
}

// ImgRefs returns the refs of an image in load order.
func (r *Refer) ImgRefs(id model.ImageID) ([]model.Ref, error) {
	if _, ok := r.imgs[id]; !ok {
		return nil, lookupErr(MappingImgs, id)
	}
	return r.LoadRefs(r.imgToRefs[id]...)
}

// ImgAnns returns the annotations of an image in load order.
func (r *Refer) ImgAnns(id model.ImageID) ([]model.Annotation, error) {
	if _, ok := r.imgs[id]; !ok {
		return nil, lookupErr(MappingImgs, id)
	}
	return r.LoadAnns(r.imgToAnns[id]...)
}

// CatRefs returns the refs of a category in load order.
func (r *Refer) CatRefs(id model.CatID) ([]model.Ref, error) {
	if _, ok := r.cats[id]; !ok {
		return nil, lookupErr(MappingCats, id)
	}
	return r.LoadRefs(r.catToRefs[id]...)
}
