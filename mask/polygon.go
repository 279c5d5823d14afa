package mask

import (
	"math"
	"slices"

	"github.com/hupe1980/refer/model"
)

const upsample = 5

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// FrPoly rasterizes one polygon given as flat x0,y0,x1,y1,... coordinates.
func FrPoly(xy []float64, h, w int) RLE {
	k := len(xy) / 2

	// Upsample and walk every edge densely.
	x := make([]int, k+1)
	y := make([]int, k+1)
	for j := range k {
		x[j] = int(upsample*xy[2*j] + .5)
		y[j] = int(upsample*xy[2*j+1] + .5)
	}
	if k > 0 {
		x[k], y[k] = x[0], y[0]
	}

	n := 0
	for j := range k {
		n += max(absInt(x[j]-x[j+1]), absInt(y[j]-y[j+1])) + 1
	}
	u := make([]int, 0, n)
	v := make([]int, 0, n)
	for j := range k {
		xs, xe, ys, ye := x[j], x[j+1], y[j], y[j+1]
		dx, dy := absInt(xe-xs), absInt(ys-ye)
		flip := (dx >= dy && xs > xe) || (dx < dy && ys > ye)
		if flip {
			xs, xe = xe, xs
			ys, ye = ye, ys
		}
		if dx >= dy {
			s := 0.0
			if dx > 0 {
				s = float64(ye-ys) / float64(dx)
			}
			for d := 0; d <= dx; d++ {
				t := d
				if flip {
					t = dx - d
				}
				u = append(u, t+xs)
				v = append(v, int(float64(ys)+s*float64(t)+.5))
			}
		} else {
			s := float64(xe-xs) / float64(dy)
			for d := 0; d <= dy; d++ {
				t := d
				if flip {
					t = dy - d
				}
				v = append(v, t+ys)
				u = append(u, int(float64(xs)+s*float64(t)+.5))
			}
		}
	}

	// Sample the y-boundary at every column crossing, back at full resolution.
	a := make([]uint32, 0, len(u)+1)
	for j := 1; j < len(u); j++ {
		if u[j] == u[j-1] {
			continue
		}
		xd := float64(u[j])
		if u[j] >= u[j-1] {
			xd = float64(u[j] - 1)
		}
		xd = (xd+.5)/upsample - .5
		if math.Floor(xd) != xd || xd < 0 || xd > float64(w-1) {
			continue
		}
		yd := float64(min(v[j], v[j-1]))
		yd = (yd+.5)/upsample - .5
		if yd < 0 {
			yd = 0
		} else if yd > float64(h) {
			yd = float64(h)
		}
		yd = math.Ceil(yd)
		a = append(a, uint32(int(xd)*h+int(yd)))
	}
	a = append(a, uint32(h*w))

	slices.Sort(a)
	var p uint32
	for j := range a {
		t := a[j]
		a[j] -= p
		p = t
	}

	// Fold empty runs into their predecessor.
	b := make([]uint32, 0, len(a))
	b = append(b, a[0])
	for j := 1; j < len(a); {
		if a[j] > 0 {
			b = append(b, a[j])
			j++
			continue
		}
		j++
		if j < len(a) {
			b[len(b)-1] += a[j]
			j++
		}
	}
	return RLE{Height: h, Width: w, Counts: b}
}

// FrPolygons rasterizes each polygon into its own mask layer.
func FrPolygons(polys [][]float64, h, w int) []RLE {
	out := make([]RLE, len(polys))
	for i, p := range polys {
		out[i] = FrPoly(p, h, w)
	}
	return out
}

// FrBBox rasterizes an axis-aligned box.
func FrBBox(bb model.BBox, h, w int) RLE {
	xs, ys := bb[0], bb[1]
	xe, ye := xs+bb[2], ys+bb[3]
	return FrPoly([]float64{xs, ys, xs, ye, xe, ye, xe, ys}, h, w)
}

// FrSegmentation returns the mask layers of an annotation's geometry.
// Polygons are rasterized against h x w; RLE layers are used as stored.
func FrSegmentation(seg model.Segmentation, h, w int) ([]RLE, error) {
	if seg.IsPolygon() {
		return FrPolygons(seg.Polygons, h, w), nil
	}
	out := make([]RLE, 0, len(seg.RLEs))
	for _, m := range seg.RLEs {
		r, err := FromModel(m)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}
