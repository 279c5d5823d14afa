package model

import (
	"fmt"
	"slices"
)

// ImageID identifies an image record.
type ImageID int64

// AnnID identifies an annotation record.
type AnnID int64

// CatID identifies a category record.
type CatID int64

// RefID identifies a referring expression.
type RefID int64

// SentID identifies a sentence.
type SentID int64

// BBox is an axis-aligned box [x, y, w, h] in pixels, origin top-left.
type BBox [4]float64

// X returns the left edge.
func (b BBox) X() float64 { return b[0] }

// Y returns the top edge.
func (b BBox) Y() float64 { return b[1] }

// W returns the width.
func (b BBox) W() float64 { return b[2] }

// H returns the height.
func (b BBox) H() float64 { return b[3] }

// String returns a string representation of the box.
func (b BBox) String() string {
	return fmt.Sprintf("[%g, %g, %g, %g]", b[0], b[1], b[2], b[3])
}

// Image is a single image of the corpus.
type Image struct {
	ID       ImageID `json:"id"`
	FileName string  `json:"file_name"`
	Height   int     `json:"height"`
	Width    int     `json:"width"`
}

// Annotation is a labeled object instance in an image.
type Annotation struct {
	ID           AnnID        `json:"id"`
	ImageID      ImageID      `json:"image_id"`
	CategoryID   CatID        `json:"category_id"`
	Segmentation Segmentation `json:"segmentation"`
	BBox         BBox         `json:"bbox"`
	Area         float64      `json:"area"`
	IsCrowd      int          `json:"iscrowd,omitempty"`
}

// Clone returns a deep copy of the annotation.
func (a Annotation) Clone() Annotation {
	a.Segmentation = a.Segmentation.Clone()
	return a
}

// Category is an object class.
type Category struct {
	ID            CatID  `json:"id"`
	Name          string `json:"name"`
	Supercategory string `json:"supercategory,omitempty"`
}

// Sentence is one natural-language description of a referred object.
type Sentence struct {
	ID     SentID   `json:"sent_id"`
	Sent   string   `json:"sent"`
	Raw    string   `json:"raw,omitempty"`
	Tokens []string `json:"tokens"`
	// RefID is the owning ref. It is set while indexing.
	RefID RefID `json:"-"`
}

// Clone returns a deep copy of the sentence.
func (s Sentence) Clone() Sentence {
	s.Tokens = slices.Clone(s.Tokens)
	return s
}

// Ref is a referring expression: one annotated object plus its descriptions.
type Ref struct {
	ID         RefID      `json:"ref_id"`
	ImageID    ImageID    `json:"image_id"`
	AnnID      AnnID      `json:"ann_id"`
	CategoryID CatID      `json:"category_id"`
	Split      string     `json:"split"`
	Sentences  []Sentence `json:"sentences"`
	SentIDs    []SentID   `json:"sent_ids,omitempty"`
	FileName   string     `json:"file_name,omitempty"`
}

// Clone returns a deep copy of the ref.
func (r Ref) Clone() Ref {
	if r.Sentences != nil {
		sents := make([]Sentence, len(r.Sentences))
		for i, s := range r.Sentences {
			sents[i] = s.Clone()
		}
		r.Sentences = sents
	}
	r.SentIDs = slices.Clone(r.SentIDs)
	return r
}

// Texts returns the raw sentence strings of the ref in order.
func (r Ref) Texts() []string {
	texts := make([]string, len(r.Sentences))
	for i, s := range r.Sentences {
		texts[i] = s.Sent
	}
	return texts
}

// Instances is the decoded instance record source.
type Instances struct {
	Images      []Image      `json:"images"`
	Annotations []Annotation `json:"annotations"`
	Categories  []Category   `json:"categories"`
}

// RawData holds both record sources fully materialized in memory.
type RawData struct {
	Dataset   string
	SplitBy   string
	Refs      []Ref
	Instances Instances
}
