package refer

import (
	"context"
	"path/filepath"
	"time"

	"github.com/hupe1980/refer/blobstore"
	"github.com/hupe1980/refer/dataset"
	"github.com/hupe1980/refer/model"
)

// Refer is the in-memory index of one dataset under one split scheme.
type Refer struct {
	name     string
	splitBy  string
	dataRoot string
	imageDir string

	refs  map[model.RefID]model.Ref
	anns  map[model.AnnID]model.Annotation
	imgs  map[model.ImageID]model.Image
	cats  map[model.CatID]string
	sents map[model.SentID]model.Sentence

	imgToRefs    map[model.ImageID][]model.RefID
	imgToAnns    map[model.ImageID][]model.AnnID
	refToAnn     map[model.RefID]model.AnnID
	annToRef     map[model.AnnID]model.RefID
	catToRefs    map[model.CatID][]model.RefID
	sentToRef    map[model.SentID]model.RefID
	sentToTokens map[model.SentID][]string

	// Source order of each record family.
	refOrder []model.RefID
	annOrder []model.AnnID
	imgOrder []model.ImageID
	catOrder []model.CatID

	logger  *Logger
	metrics MetricsCollector
}

// Open loads dataset name with split scheme splitBy from store and indexes it.
func Open(ctx context.Context, store blobstore.BlobStore, name, splitBy string, optFns ...Option) (*Refer, error) {
	o := defaultOptions()
	if ls, ok := store.(*blobstore.LocalStore); ok {
		o.dataRoot = ls.Root()
	}
	for _, fn := range optFns {
		fn(&o)
	}

	logger := o.logger.WithDataset(name, splitBy)
	logger.InfoContext(ctx, "loading dataset")

	start := time.Now()
	res, err := dataset.Load(ctx, store, name, splitBy, o.codec)
	if err != nil {
		err = translateError(name, err)
		logger.LogLoad(ctx, Stats{}, time.Since(start), err)
		o.metricsCollector.RecordLoad(name, time.Since(start), err)
		return nil, err
	}
	logger.DebugContext(ctx, "record files loaded",
		"refs_file", res.Refs.Name,
		"refs_bytes", res.Refs.Bytes,
		"instances_file", res.Instances.Name,
		"instances_bytes", res.Instances.Bytes,
	)

	return build(ctx, res.Data, o, start)
}

// New indexes fully materialized records.
func New(data *model.RawData, optFns ...Option) (*Refer, error) {
	o := defaultOptions()
	for _, fn := range optFns {
		fn(&o)
	}
	return build(context.Background(), data, o, time.Now())
}

func build(ctx context.Context, data *model.RawData, o options, start time.Time) (*Refer, error) {
	logger := o.logger.WithDataset(data.Dataset, data.SplitBy)

	r, err := newIndex(data, o)
	if err == nil {
		logger.LogLoad(ctx, r.Stats(), time.Since(start), nil)
	} else {
		logger.LogLoad(ctx, Stats{}, time.Since(start), err)
	}
	o.metricsCollector.RecordLoad(data.Dataset, time.Since(start), err)
	return r, err
}

func newIndex(data *model.RawData, o options) (*Refer, error) {
	info, err := dataset.Lookup(data.Dataset)
	if err != nil {
		return nil, translateError(data.Dataset, err)
	}

	inst := data.Instances
	r := &Refer{
		name:     data.Dataset,
		splitBy:  data.SplitBy,
		dataRoot: o.dataRoot,
		imageDir: info.ImageDir,

		refs:  make(map[model.RefID]model.Ref, len(data.Refs)),
		anns:  make(map[model.AnnID]model.Annotation, len(inst.Annotations)),
		imgs:  make(map[model.ImageID]model.Image, len(inst.Images)),
		cats:  make(map[model.CatID]string, len(inst.Categories)),
		sents: make(map[model.SentID]model.Sentence),

		imgToRefs:    make(map[model.ImageID][]model.RefID),
		imgToAnns:    make(map[model.ImageID][]model.AnnID),
		refToAnn:     make(map[model.RefID]model.AnnID, len(data.Refs)),
		annToRef:     make(map[model.AnnID]model.RefID, len(data.Refs)),
		catToRefs:    make(map[model.CatID][]model.RefID),
		sentToRef:    make(map[model.SentID]model.RefID),
		sentToTokens: make(map[model.SentID][]string),

		refOrder: make([]model.RefID, 0, len(data.Refs)),
		annOrder: make([]model.AnnID, 0, len(inst.Annotations)),
		imgOrder: make([]model.ImageID, 0, len(inst.Images)),
		catOrder: make([]model.CatID, 0, len(inst.Categories)),

		logger:  o.logger.WithDataset(data.Dataset, data.SplitBy),
		metrics: o.metricsCollector,
	}

	for _, ann := range inst.Annotations {
		if _, dup := r.anns[ann.ID]; dup {
			return nil, &DuplicateIDError{Kind: "annotation", ID: int64(ann.ID)}
		}
		r.anns[ann.ID] = ann.Clone()
		r.annOrder = append(r.annOrder, ann.ID)
		r.imgToAnns[ann.ImageID] = append(r.imgToAnns[ann.ImageID], ann.ID)
	}
	for _, img := range inst.Images {
		if _, dup := r.imgs[img.ID]; dup {
			return nil, &DuplicateIDError{Kind: "image", ID: int64(img.ID)}
		}
		r.imgs[img.ID] = img
		r.imgOrder = append(r.imgOrder, img.ID)
	}
	for _, cat := range inst.Categories {
		if _, dup := r.cats[cat.ID]; dup {
			return nil, &DuplicateIDError{Kind: "category", ID: int64(cat.ID)}
		}
		r.cats[cat.ID] = cat.Name
		r.catOrder = append(r.catOrder, cat.ID)
	}

	for _, ref := range data.Refs {
		if _, dup := r.refs[ref.ID]; dup {
			return nil, &DuplicateIDError{Kind: "ref", ID: int64(ref.ID)}
		}
		if _, ok := r.anns[ref.AnnID]; !ok {
			return nil, lookupErr(MappingAnns, ref.AnnID)
		}

		ref = ref.Clone()
		for i := range ref.Sentences {
			sent := &ref.Sentences[i]
			if _, dup := r.sents[sent.ID]; dup {
				return nil, &DuplicateIDError{Kind: "sentence", ID: int64(sent.ID)}
			}
			sent.RefID = ref.ID
			r.sents[sent.ID] = sent.Clone()
			r.sentToRef[sent.ID] = ref.ID
			r.sentToTokens[sent.ID] = sent.Tokens
		}

		r.refs[ref.ID] = ref
		r.refOrder = append(r.refOrder, ref.ID)
		r.imgToRefs[ref.ImageID] = append(r.imgToRefs[ref.ImageID], ref.ID)
		r.catToRefs[ref.CategoryID] = append(r.catToRefs[ref.CategoryID], ref.ID)
		r.refToAnn[ref.ID] = ref.AnnID
		r.annToRef[ref.AnnID] = ref.ID
	}

	return r, nil
}

// Name returns the dataset name.
func (r *Refer) Name() string { return r.name }

// SplitBy returns the split scheme.
func (r *Refer) SplitBy() string { return r.splitBy }

// ImageDir returns the image directory, joined with the data root if one is known.
func (r *Refer) ImageDir() string {
	return filepath.Join(r.dataRoot, filepath.FromSlash(r.imageDir))
}

// ImagePath returns the path of an image file.
func (r *Refer) ImagePath(id model.ImageID) (string, error) {
	img, ok := r.imgs[id]
	if !ok {
		return "", lookupErr(MappingImgs, id)
	}
	return filepath.Join(r.ImageDir(), img.FileName), nil
}

// Stats summarizes the index.
type Stats struct {
	Refs        int
	Annotations int
	Images      int
	Categories  int
	Sentences   int
	// Splits counts refs per stored split value.
	Splits map[string]int
}

// Stats returns record counts.
func (r *Refer) Stats() Stats {
	s := Stats{
		Refs:        len(r.refs),
		Annotations: len(r.anns),
		Images:      len(r.imgs),
		Categories:  len(r.cats),
		Sentences:   len(r.sents),
		Splits:      make(map[string]int),
	}
	for _, ref := range r.refs {
		s.Splits[ref.Split]++
	}
	return s
}
