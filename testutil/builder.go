package testutil

import (
	"fmt"
	"strings"

	"github.com/hupe1980/refer/model"
)

// Builder assembles a model.RawData in insertion order.
type Builder struct {
	data     model.RawData
	nextSent model.SentID
	annIndex map[model.AnnID]int
}

// NewBuilder starts an empty dataset.
func NewBuilder(name, splitBy string) *Builder {
	return &Builder{
		data:     model.RawData{Dataset: name, SplitBy: splitBy},
		nextSent: 1,
		annIndex: make(map[model.AnnID]int),
	}
}

// Image adds an image.
func (b *Builder) Image(id model.ImageID, fileName string, height, width int) *Builder {
	b.data.Instances.Images = append(b.data.Instances.Images, model.Image{
		ID: id, FileName: fileName, Height: height, Width: width,
	})
	return b
}

// Category adds a category.
func (b *Builder) Category(id model.CatID, name string) *Builder {
	b.data.Instances.Categories = append(b.data.Instances.Categories, model.Category{ID: id, Name: name})
	return b
}

// Ann adds a polygon annotation. BBox and area are derived from the polygon.
func (b *Builder) Ann(id model.AnnID, imageID model.ImageID, catID model.CatID, polys ...[]float64) *Builder {
	var seg model.Segmentation
	for _, p := range polys {
		seg.Polygons = append(seg.Polygons, append([]float64(nil), p...))
	}
	box, area := polygonBoxArea(polys)
	return b.addAnn(model.Annotation{
		ID: id, ImageID: imageID, CategoryID: catID,
		Segmentation: seg, BBox: box, Area: area,
	})
}

// RLEAnn adds an annotation with uncompressed RLE geometry.
func (b *Builder) RLEAnn(id model.AnnID, imageID model.ImageID, catID model.CatID, h, w int, counts []uint32, box model.BBox) *Builder {
	var area float64
	for i := 1; i < len(counts); i += 2 {
		area += float64(counts[i])
	}
	return b.addAnn(model.Annotation{
		ID: id, ImageID: imageID, CategoryID: catID,
		Segmentation: model.Segmentation{RLEs: []model.RLE{{Height: h, Width: w, Counts: counts}}},
		BBox:         box,
		Area:         area,
		IsCrowd:      1,
	})
}

func (b *Builder) addAnn(a model.Annotation) *Builder {
	b.annIndex[a.ID] = len(b.data.Instances.Annotations)
	b.data.Instances.Annotations = append(b.data.Instances.Annotations, a)
	return b
}

// Ref adds a ref targeting annID. Image and category are taken from the
// annotation, so Ann must be called first. Each sentence is tokenized on
// whitespace and gets the next free sentence id.
func (b *Builder) Ref(id model.RefID, annID model.AnnID, split string, sentences ...string) *Builder {
	idx, ok := b.annIndex[annID]
	if !ok {
		panic(fmt.Sprintf("testutil: ref %d targets unknown annotation %d", id, annID))
	}
	ann := b.data.Instances.Annotations[idx]
	return b.RawRef(model.Ref{
		ID:         id,
		ImageID:    ann.ImageID,
		AnnID:      annID,
		CategoryID: ann.CategoryID,
		Split:      split,
	}, sentences...)
}

// RawRef adds ref as given, appending sentences built from texts.
// It does not check that the annotation exists.
func (b *Builder) RawRef(ref model.Ref, texts ...string) *Builder {
	for _, text := range texts {
		s := model.Sentence{
			ID:     b.nextSent,
			Sent:   text,
			Raw:    text,
			Tokens: strings.Fields(strings.ToLower(text)),
		}
		b.nextSent++
		ref.Sentences = append(ref.Sentences, s)
		ref.SentIDs = append(ref.SentIDs, s.ID)
	}
	b.data.Refs = append(b.data.Refs, ref)
	return b
}

// Build returns a deep copy of the assembled dataset.
func (b *Builder) Build() *model.RawData {
	out := b.data
	out.Refs = make([]model.Ref, len(b.data.Refs))
	for i, r := range b.data.Refs {
		out.Refs[i] = r.Clone()
	}
	out.Instances.Images = append([]model.Image(nil), b.data.Instances.Images...)
	out.Instances.Categories = append([]model.Category(nil), b.data.Instances.Categories...)
	out.Instances.Annotations = make([]model.Annotation, len(b.data.Instances.Annotations))
	for i, a := range b.data.Instances.Annotations {
		out.Instances.Annotations[i] = a.Clone()
	}
	return &out
}

// Rect returns the closed polygon of an axis-aligned rectangle.
func Rect(x, y, w, h float64) []float64 {
	return []float64{x, y, x + w, y, x + w, y + h, x, y + h}
}

// polygonBoxArea returns the bounding box and the shoelace area of polys.
func polygonBoxArea(polys [][]float64) (model.BBox, float64) {
	if len(polys) == 0 {
		return model.BBox{}, 0
	}
	minX, minY := polys[0][0], polys[0][1]
	maxX, maxY := minX, minY
	var area float64
	for _, p := range polys {
		n := len(p) / 2
		var twice float64
		for i := range n {
			x0, y0 := p[2*i], p[2*i+1]
			x1, y1 := p[2*((i+1)%n)], p[2*((i+1)%n)+1]
			twice += x0*y1 - x1*y0
			minX, maxX = min(minX, x0), max(maxX, x0)
			minY, maxY = min(minY, y0), max(maxY, y0)
		}
		if twice < 0 {
			twice = -twice
		}
		area += twice / 2
	}
	return model.BBox{minX, minY, maxX - minX, maxY - minY}, area
}
