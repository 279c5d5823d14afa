package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
)

// RLE is a run-length encoded binary mask in column-major order.
//
// Counts holds the uncompressed run lengths. Datasets may instead ship the
// compressed string form, which is kept verbatim in CountsString and decoded
// by the mask package.
type RLE struct {
	Height       int
	Width        int
	Counts       []uint32
	CountsString string
}

// IsCompressed reports whether the counts are in compressed string form.
func (r RLE) IsCompressed() bool {
	return r.CountsString != "" && r.Counts == nil
}

type rleJSON struct {
	Size   [2]int          `json:"size"`
	Counts json.RawMessage `json:"counts"`
}

// UnmarshalJSON accepts counts as either a string or a list of integers.
func (r *RLE) UnmarshalJSON(data []byte) error {
	var raw rleJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("rle: %w", err)
	}
	r.Height, r.Width = raw.Size[0], raw.Size[1]
	r.Counts, r.CountsString = nil, ""

	counts := bytes.TrimSpace(raw.Counts)
	switch {
	case len(counts) == 0 || bytes.Equal(counts, []byte("null")):
		return nil
	case counts[0] == '"':
		return json.Unmarshal(counts, &r.CountsString)
	default:
		return json.Unmarshal(counts, &r.Counts)
	}
}

// MarshalJSON writes the COCO {"size", "counts"} form.
func (r RLE) MarshalJSON() ([]byte, error) {
	out := struct {
		Size   [2]int `json:"size"`
		Counts any    `json:"counts"`
	}{Size: [2]int{r.Height, r.Width}}
	if r.IsCompressed() {
		out.Counts = r.CountsString
	} else {
		out.Counts = r.Counts
	}
	return json.Marshal(out)
}

// Segmentation is the geometry of an annotation: either a list of polygons
// (flat x0,y0,x1,y1,... coordinates) or one or more run-length encoded masks.
type Segmentation struct {
	Polygons [][]float64
	RLEs     []RLE
}

// IsPolygon reports whether the geometry is polygon encoded.
func (s Segmentation) IsPolygon() bool {
	return len(s.Polygons) > 0
}

// IsEmpty reports whether the annotation carries no geometry.
func (s Segmentation) IsEmpty() bool {
	return len(s.Polygons) == 0 && len(s.RLEs) == 0
}

// Clone returns a deep copy of the segmentation.
func (s Segmentation) Clone() Segmentation {
	var out Segmentation
	if s.Polygons != nil {
		out.Polygons = make([][]float64, len(s.Polygons))
		for i, p := range s.Polygons {
			out.Polygons[i] = slices.Clone(p)
		}
	}
	if s.RLEs != nil {
		out.RLEs = make([]RLE, len(s.RLEs))
		for i, r := range s.RLEs {
			r.Counts = slices.Clone(r.Counts)
			out.RLEs[i] = r
		}
	}
	return out
}

var errSegmentationShape = errors.New("segmentation: expected polygon list or rle object")

// UnmarshalJSON accepts a polygon list, a list of RLE objects or a single RLE object.
func (s *Segmentation) UnmarshalJSON(data []byte) error {
	*s = Segmentation{}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	switch data[0] {
	case '{':
		var r RLE
		if err := json.Unmarshal(data, &r); err != nil {
			return err
		}
		s.RLEs = []RLE{r}
		return nil
	case '[':
	default:
		return errSegmentationShape
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("segmentation: %w", err)
	}
	if len(items) == 0 {
		return nil
	}

	first := bytes.TrimSpace(items[0])
	if len(first) == 0 {
		return errSegmentationShape
	}
	switch first[0] {
	case '[':
		return json.Unmarshal(data, &s.Polygons)
	case '{':
		return json.Unmarshal(data, &s.RLEs)
	default:
		// A single flat polygon.
		var poly []float64
		if err := json.Unmarshal(data, &poly); err != nil {
			return fmt.Errorf("segmentation: %w", err)
		}
		s.Polygons = [][]float64{poly}
		return nil
	}
}

// MarshalJSON writes polygons as a nested list and masks as a list of RLE objects.
func (s Segmentation) MarshalJSON() ([]byte, error) {
	switch {
	case s.IsPolygon():
		return json.Marshal(s.Polygons)
	case len(s.RLEs) == 1:
		return json.Marshal(s.RLEs[0])
	case len(s.RLEs) > 1:
		return json.Marshal(s.RLEs)
	default:
		return []byte("[]"), nil
	}
}
