package mask

import (
	"errors"
	"fmt"
	"slices"

	"github.com/hupe1980/refer/model"
)

// ErrSizeMismatch is returned when combining masks of different dimensions.
var ErrSizeMismatch = errors.New("mask: size mismatch")

// RLE is a run-length encoded binary mask of Height x Width pixels.
type RLE struct {
	Height int
	Width  int
	Counts []uint32
}

// Pixels returns Height*Width.
func (r RLE) Pixels() uint64 {
	return uint64(r.Height) * uint64(r.Width)
}

// Validate checks that the runs cover the mask exactly.
func (r RLE) Validate() error {
	var sum uint64
	for _, c := range r.Counts {
		sum += uint64(c)
	}
	if sum != r.Pixels() {
		return fmt.Errorf("mask: runs cover %d pixels, want %d", sum, r.Pixels())
	}
	return nil
}

// FromModel converts a stored RLE, decoding the compressed string form when present.
func FromModel(m model.RLE) (RLE, error) {
	if m.IsCompressed() {
		return FrString(m.CountsString, m.Height, m.Width)
	}
	return RLE{Height: m.Height, Width: m.Width, Counts: slices.Clone(m.Counts)}, nil
}

// Model converts r to its stored form with uncompressed counts.
func (r RLE) Model() model.RLE {
	return model.RLE{Height: r.Height, Width: r.Width, Counts: slices.Clone(r.Counts)}
}

// Area returns the number of foreground pixels.
func Area(r RLE) uint64 {
	var a uint64
	for i := 1; i < len(r.Counts); i += 2 {
		a += uint64(r.Counts[i])
	}
	return a
}

// Encode run-length encodes a bitmap. Any non-zero pixel is foreground.
func Encode(b *Bitmap) RLE {
	h, w := b.Height, b.Width
	var counts []uint32
	var prev uint8
	var run uint32
	for x := range w {
		for y := range h {
			v := b.Pix[y*w+x]
			if v != 0 {
				v = 1
			}
			if v != prev {
				counts = append(counts, run)
				run = 0
				prev = v
			}
			run++
		}
	}
	counts = append(counts, run)
	return RLE{Height: h, Width: w, Counts: counts}
}

// Decode expands r into a bitmap.
func Decode(r RLE) (*Bitmap, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	b := NewBitmap(r.Height, r.Width)
	h := uint64(r.Height)
	var idx uint64
	var v uint8
	for _, c := range r.Counts {
		if v == 1 {
			for i := idx; i < idx+uint64(c); i++ {
				b.Pix[int(i%h)*r.Width+int(i/h)] = 1
			}
		}
		idx += uint64(c)
		v ^= 1
	}
	return b, nil
}

// Merge combines masks of equal size by union, or by intersection when
// intersect is set.
func Merge(rles []RLE, intersect bool) (RLE, error) {
	switch len(rles) {
	case 0:
		return RLE{}, nil
	case 1:
		r := rles[0]
		r.Counts = slices.Clone(r.Counts)
		return r, nil
	}

	h, w := rles[0].Height, rles[0].Width
	cnts := slices.Clone(rles[0].Counts)

	for _, b := range rles[1:] {
		if b.Height != h || b.Width != w {
			return RLE{}, fmt.Errorf("%w: %dx%d vs %dx%d", ErrSizeMismatch, h, w, b.Height, b.Width)
		}
		a := cnts
		if len(a) == 0 || len(b.Counts) == 0 {
			// Empty masks only arise for zero-sized images.
			continue
		}
		out := make([]uint32, 0, len(a)+len(b.Counts))

		ca, cb := a[0], b.Counts[0]
		ai, bi := 1, 1
		var v, va, vb bool
		var cc uint32
		ct := uint32(1)
		for ct > 0 {
			c := min(ca, cb)
			cc += c
			ct = 0

			ca -= c
			if ca == 0 && ai < len(a) {
				ca = a[ai]
				ai++
				va = !va
			}
			ct += ca

			cb -= c
			if cb == 0 && bi < len(b.Counts) {
				cb = b.Counts[bi]
				bi++
				vb = !vb
			}
			ct += cb

			vp := v
			if intersect {
				v = va && vb
			} else {
				v = va || vb
			}
			if v != vp || ct == 0 {
				out = append(out, cc)
				cc = 0
			}
		}
		cnts = out
	}
	return RLE{Height: h, Width: w, Counts: cnts}, nil
}

// ToBBox returns the tight bounding box [x, y, w, h] of the foreground.
func ToBBox(r RLE) model.BBox {
	h := uint32(r.Height)
	m := len(r.Counts) / 2 * 2
	if m == 0 || h == 0 {
		return model.BBox{}
	}

	xs, ys := uint32(r.Width), h
	var xe, ye, xp, cc uint32
	for j := range m {
		cc += r.Counts[j]
		t := cc - uint32(j%2)
		y := t % h
		x := (t - y) / h
		if j%2 == 0 {
			xp = x
		} else if xp < x {
			// The run wraps a column boundary so it spans full height.
			ys, ye = 0, h-1
		}
		xs, xe = min(xs, x), max(xe, x)
		ys, ye = min(ys, y), max(ye, y)
	}
	return model.BBox{float64(xs), float64(ys), float64(xe - xs + 1), float64(ye - ys + 1)}
}
