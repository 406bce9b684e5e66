package filter

import (
	"math"

	"github.com/gogpu/fx/internal/image"
	"github.com/gogpu/fx/internal/parallel"
)

// Morphology erodes (per-channel minimum) or dilates (maximum) over a
// rectangle of (2*RadiusX+1) x (2*RadiusY+1) pixels. Pixels beyond the
// surface read as transparent black. Radii are rounded to whole pixels and
// limited to the surface size; an axis with radius 0 is left unchanged.
type Morphology struct {
	Erode   bool
	RadiusX float64
	RadiusY float64
}

// Apply returns the filtered surface. src is not modified.
func (m *Morphology) Apply(src *image.Surface, pool *parallel.WorkerPool) *image.Surface {
	// A window wider than the line reaches the transparent border at both
	// ends for every pixel, so larger radii change nothing.
	w, h := src.Size()
	rx := int(math.Round(min(m.RadiusX, float64(w))))
	ry := int(math.Round(min(m.RadiusY, float64(h))))
	if rx < 0 || ry < 0 || math.IsNaN(m.RadiusX) || math.IsNaN(m.RadiusY) {
		slogger().Warn("filter: negative morphology radius, passing input through",
			"rx", m.RadiusX, "ry", m.RadiusY)
		return src.Clone()
	}
	if rx == 0 && ry == 0 || !src.IsRealized() {
		return src.Clone()
	}

	mid := src.Clone()
	if rx > 0 {
		morphAxis(mid, src, rx, m.Erode, false, pool)
	}
	if ry == 0 {
		return mid
	}
	dst := mid.Similar(0, 0)
	morphAxis(dst, mid, ry, m.Erode, true, pool)
	return dst
}

// morphAxis writes the running min or max of src along one axis into dst.
func morphAxis(dst, src *image.Surface, r int, erode, vertical bool, pool *parallel.WorkerPool) {
	w, h := src.Size()
	n := src.Channels()
	in := src.Pix()
	out := dst.Pix()

	rows, cols := h, w
	lineAt := func(i int) line { return line{base: i * w * n, step: n, count: w, n: n} }
	if vertical {
		rows, cols = w, h
		lineAt = func(i int) line { return line{base: i * n, step: w * n, count: h, n: n} }
	}

	parallel.Rows(pool, rows, cols, 2*(cols+2), func(i, _ int, scratch []float64) {
		morphLine(out, in, lineAt(i), r, erode, scratch)
	})
}

// morphLine runs a monotonic deque over each channel of one line. The deque
// holds (position, value) pairs whose values are strictly increasing (erode)
// or decreasing (dilate), so its front is the extreme of the window.
func morphLine(out, in []float32, l line, r int, erode bool, scratch []float64) {
	size := 2*r + 1
	qlen := l.count + 2
	pos := scratch[:qlen]
	val := scratch[qlen : 2*qlen]
	keeps := func(back, v float64) bool {
		if erode {
			return back < v
		}
		return back > v
	}

	for c := range l.n {
		head, tail := 0, 0
		push := func(p int, v float64) {
			for tail > head && !keeps(val[tail-1], v) {
				tail--
			}
			pos[tail], val[tail] = float64(p), v
			tail++
		}

		// Transparent black before the first pixel.
		push(-1, 0)
		for j := 0; j < l.count+r; j++ {
			if head < tail && int(pos[head])+size <= j {
				head++
			}
			if j < l.count {
				push(j, float64(in[l.at(j, c)]))
			} else if j == l.count {
				push(j, 0)
			}
			if j >= r {
				out[l.at(j-r, c)] = float32(val[head])
			}
		}
	}
}
