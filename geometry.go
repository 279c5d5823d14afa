package refer

import (
	"fmt"

	"github.com/hupe1980/refer/mask"
	"github.com/hupe1980/refer/model"
)

// MaskResult is the binary mask of a ref's target object.
type MaskResult struct {
	// Mask has the size of the image record with values in {0, 1}.
	Mask *mask.Bitmap
	// Area is the sum of the per-layer RLE areas.
	Area uint64
}

// RefBox returns the bounding box of the annotation a ref targets.
func (r *Refer) RefBox(id model.RefID) (model.BBox, error) {
	annID, ok := r.refToAnn[id]
	if !ok {
		return model.BBox{}, lookupErr(MappingRefToAnn, id)
	}
	return r.anns[annID].BBox, nil
}

// Mask rasterizes the segmentation of the annotation ref targets. RLE
// layers whose stored size differs from the image fail with
// mask.ErrSizeMismatch.
func (r *Refer) Mask(ref model.Ref) (*MaskResult, error) {
	annID, ok := r.refToAnn[ref.ID]
	if !ok {
		return nil, lookupErr(MappingRefToAnn, ref.ID)
	}
	ann := r.anns[annID]

	img, ok := r.imgs[ref.ImageID]
	if !ok {
		return nil, lookupErr(MappingImgs, ref.ImageID)
	}

	if ann.Segmentation.IsEmpty() {
		return &MaskResult{Mask: mask.NewBitmap(img.Height, img.Width)}, nil
	}

	rles, err := mask.FrSegmentation(ann.Segmentation, img.Height, img.Width)
	if err != nil {
		return nil, fmt.Errorf("mask of ref %d: %w", ref.ID, err)
	}
	for _, rle := range rles {
		if rle.Height != img.Height || rle.Width != img.Width {
			return nil, fmt.Errorf("mask of ref %d: %w: rle %dx%d, image %dx%d",
				ref.ID, mask.ErrSizeMismatch, rle.Height, rle.Width, img.Height, img.Width)
		}
	}
	bm, err := mask.Flatten(rles)
	if err != nil {
		return nil, fmt.Errorf("mask of ref %d: %w", ref.ID, err)
	}

	var area uint64
	for _, rle := range rles {
		area += mask.Area(rle)
	}
	return &MaskResult{Mask: bm, Area: area}, nil
}

// MaskByID is Mask for a ref id.
func (r *Refer) MaskByID(id model.RefID) (*MaskResult, error) {
	ref, ok := r.refs[id]
	if !ok {
		return nil, lookupErr(MappingRefs, id)
	}
	return r.Mask(ref)
}
