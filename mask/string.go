package mask

import "fmt"

// String returns the compressed COCO string form of the counts.
func (r RLE) String() string {
	buf := make([]byte, 0, len(r.Counts)*2)
	for i, c := range r.Counts {
		x := int64(c)
		if i > 2 {
			x -= int64(r.Counts[i-2])
		}
		for more := true; more; {
			ch := byte(x & 0x1f)
			x >>= 5
			if ch&0x10 != 0 {
				more = x != -1
			} else {
				more = x != 0
			}
			if more {
				ch |= 0x20
			}
			buf = append(buf, ch+48)
		}
	}
	return string(buf)
}

// FrString decodes the compressed COCO string form.
func FrString(s string, h, w int) (RLE, error) {
	counts := make([]uint32, 0, len(s))
	for p := 0; p < len(s); {
		var x int64
		for k := 0; ; k++ {
			if p >= len(s) {
				return RLE{}, fmt.Errorf("mask: truncated rle string at byte %d", p)
			}
			c := int64(s[p]) - 48
			if c < 0 || c > 0x3f {
				return RLE{}, fmt.Errorf("mask: invalid rle byte %q at %d", s[p], p)
			}
			x |= (c & 0x1f) << (5 * k)
			p++
			if c&0x20 == 0 {
				if c&0x10 != 0 {
					x |= -1 << (5 * (k + 1))
				}
				break
			}
		}
		if m := len(counts); m > 2 {
			x += int64(counts[m-2])
		}
		counts = append(counts, uint32(x))
	}
	return RLE{Height: h, Width: w, Counts: counts}, nil
}
