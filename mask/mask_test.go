package mask

import (
	"testing"

	"github.com/hupe1980/refer/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rect(x, y, w, h float64) []float64 {
	return []float64{x, y, x + w, y, x + w, y + h, x, y + h}
}

func TestFrPoly_Rectangle(t *testing.T) {
	tests := []struct {
		name       string
		x, y, w, h float64
		imgH, imgW int
	}{
		{"interior", 10, 10, 20, 30, 100, 120},
		{"origin", 0, 0, 40, 40, 80, 80},
		{"small", 5, 5, 10, 10, 60, 90},
		{"full image", 0, 0, 16, 8, 8, 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := FrPoly(rect(tt.x, tt.y, tt.w, tt.h), tt.imgH, tt.imgW)
			require.NoError(t, r.Validate())
			assert.Equal(t, uint64(tt.w*tt.h), Area(r))
			assert.Equal(t, model.BBox{tt.x, tt.y, tt.w, tt.h}, ToBBox(r))
		})
	}
}

func TestFrPoly_ClockwiseMatchesCounterClockwise(t *testing.T) {
	cw := []float64{10, 10, 30, 10, 30, 40, 10, 40}
	ccw := []float64{10, 10, 10, 40, 30, 40, 30, 10}

	assert.Equal(t, FrPoly(cw, 100, 120).Counts, FrPoly(ccw, 100, 120).Counts)
}

func TestFrPoly_Triangle(t *testing.T) {
	r := FrPoly([]float64{0, 0, 40, 0, 0, 40}, 50, 50)
	require.NoError(t, r.Validate())
	assert.InDelta(t, 800, float64(Area(r)), 40)
}

func TestFrPoly_ClipsToImage(t *testing.T) {
	r := FrPoly(rect(-10, -10, 30, 30), 10, 10)
	require.NoError(t, r.Validate())
	assert.Equal(t, uint64(100), Area(r))
}

func TestFrPoly_Empty(t *testing.T) {
	r := FrPoly(nil, 4, 5)
	assert.Equal(t, []uint32{20}, r.Counts)
	assert.Equal(t, uint64(0), Area(r))
}

func TestFrBBox(t *testing.T) {
	r := FrBBox(model.BBox{2, 3, 4, 5}, 20, 20)
	assert.Equal(t, uint64(20), Area(r))
	assert.Equal(t, model.BBox{2, 3, 4, 5}, ToBBox(r))
}

func TestEncodeDecode(t *testing.T) {
	b := NewBitmap(3, 4)
	b.Set(0, 0, 1)
	b.Set(1, 1, 1)
	b.Set(1, 2, 1)
	b.Set(3, 2, 1)

	r := Encode(b)
	// Column-major: col0 = 1,0,0  col1 = 0,1,1  col2 = 0,0,0  col3 = 0,0,1
	assert.Equal(t, []uint32{0, 1, 3, 2, 5, 1}, r.Counts)
	assert.Equal(t, uint64(4), Area(r))

	got, err := Decode(r)
	require.NoError(t, err)
	assert.Equal(t, b, got)
}

func TestDecode_InvalidRuns(t *testing.T) {
	_, err := Decode(RLE{Height: 2, Width: 2, Counts: []uint32{1, 1}})
	assert.Error(t, err)
}

func TestString(t *testing.T) {
	tests := []struct {
		counts []uint32
		want   string
	}{
		{[]uint32{3, 2, 4}, "324"},
		{[]uint32{5, 40}, "5X1"},
		{[]uint32{1, 2, 3, 1}, "123O"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			r := RLE{Counts: tt.counts}
			assert.Equal(t, tt.want, r.String())

			back, err := FrString(tt.want, 0, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.counts, back.Counts)
		})
	}
}

func TestString_RoundTripPolygon(t *testing.T) {
	r := FrPoly([]float64{3.2, 4.7, 60.1, 8.3, 55.5, 70.9, 12.4, 61.0, 1.0, 30.0}, 80, 64)

	back, err := FrString(r.String(), r.Height, r.Width)
	require.NoError(t, err)
	assert.Equal(t, r, back)
}

func TestFrString_Invalid(t *testing.T) {
	_, err := FrString("1\x01", 1, 1)
	assert.Error(t, err)

	// Continuation bit set on the last byte.
	_, err = FrString("P", 1, 1)
	assert.Error(t, err)
}

func TestMerge(t *testing.T) {
	a := FrPoly(rect(0, 0, 10, 10), 30, 30)
	b := FrPoly(rect(5, 5, 10, 10), 30, 30)

	union, err := Merge([]RLE{a, b}, false)
	require.NoError(t, err)
	assert.Equal(t, uint64(175), Area(union))

	inter, err := Merge([]RLE{a, b}, true)
	require.NoError(t, err)
	assert.Equal(t, uint64(25), Area(inter))
	assert.Equal(t, model.BBox{5, 5, 5, 5}, ToBBox(inter))

	_, err = Merge([]RLE{a, FrPoly(rect(0, 0, 1, 1), 10, 10)}, false)
	assert.ErrorIs(t, err, ErrSizeMismatch)

	empty, err := Merge(nil, false)
	require.NoError(t, err)
	assert.Empty(t, empty.Counts)
}

func TestFlatten(t *testing.T) {
	a := FrPoly(rect(0, 0, 4, 4), 8, 8)
	b := FrPoly(rect(2, 2, 4, 4), 8, 8)

	m, err := Flatten([]RLE{a, b})
	require.NoError(t, err)
	assert.Equal(t, uint64(28), m.Count())
	for _, p := range m.Pix {
		assert.LessOrEqual(t, p, uint8(1))
	}
	assert.Equal(t, uint8(1), m.At(3, 3))
	assert.Equal(t, uint8(0), m.At(7, 0))
}

func TestFrSegmentation(t *testing.T) {
	poly := model.Segmentation{Polygons: [][]float64{rect(0, 0, 2, 2), rect(4, 4, 2, 2)}}
	layers, err := FrSegmentation(poly, 10, 10)
	require.NoError(t, err)
	require.Len(t, layers, 2)

	stored := FrPoly(rect(1, 1, 3, 3), 10, 10)
	compressed := model.Segmentation{RLEs: []model.RLE{{Height: 10, Width: 10, CountsString: stored.String()}}}
	layers, err = FrSegmentation(compressed, 0, 0)
	require.NoError(t, err)
	require.Len(t, layers, 1)
	assert.Equal(t, stored, layers[0])

	plain := model.Segmentation{RLEs: []model.RLE{stored.Model()}}
	layers, err = FrSegmentation(plain, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(9), Area(layers[0]))
}
