package mask

// Bitmap is a single-channel binary mask stored row-major.
type Bitmap struct {
	Height int
	Width  int
	Pix    []uint8
}

// NewBitmap allocates an empty h x w bitmap.
func NewBitmap(h, w int) *Bitmap {
	return &Bitmap{Height: h, Width: w, Pix: make([]uint8, h*w)}
}

// At returns the pixel at column x, row y.
func (b *Bitmap) At(x, y int) uint8 {
	return b.Pix[y*b.Width+x]
}

// Set sets the pixel at column x, row y.
func (b *Bitmap) Set(x, y int, v uint8) {
	b.Pix[y*b.Width+x] = v
}

// Count returns the number of non-zero pixels.
func (b *Bitmap) Count() uint64 {
	var n uint64
	for _, p := range b.Pix {
		if p != 0 {
			n++
		}
	}
	return n
}

// Flatten decodes every layer, sums them per pixel and clamps the sum to {0, 1}.
func Flatten(rles []RLE) (*Bitmap, error) {
	if len(rles) == 0 {
		return NewBitmap(0, 0), nil
	}
	h, w := rles[0].Height, rles[0].Width
	out := NewBitmap(h, w)
	for _, r := range rles {
		if r.Height != h || r.Width != w {
			return nil, ErrSizeMismatch
		}
		layer, err := Decode(r)
		if err != nil {
			return nil, err
		}
		for i, p := range layer.Pix {
			out.Pix[i] |= p
		}
	}
	return out, nil
}
