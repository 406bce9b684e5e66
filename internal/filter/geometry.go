package filter

import (
	"math"

	"github.com/gogpu/fx/internal/image"
	"github.com/gogpu/fx/internal/parallel"
)

// Offset returns src translated by (dx, dy) pixels. Whole-pixel offsets are
// exact copies; fractional ones are resampled bilinearly. Uncovered pixels
// are transparent.
func Offset(src *image.Surface, dx, dy float64, pool *parallel.WorkerPool) *image.Surface {
	dst := src.Similar(0, 0)
	if !src.IsRealized() {
		return dst
	}
	if dx == math.Trunc(dx) && dy == math.Trunc(dy) {
		dst.Draw(src, int(dx), int(dy))
		return dst
	}
	w, h := src.Size()
	dst.Pix()
	parallel.Rows(pool, h, w, 0, func(y, _ int, _ []float64) {
		for x := range w {
			p := src.Sample(float64(x)-dx, float64(y)-dy, false, image.EdgeZero)
			dst.ColorTo(x, y, p, true)
		}
	})
	return dst
}

// TileRect is a rectangle in pixel coordinates that may have fractional
// edges.
type TileRect struct {
	X0, Y0, X1, Y1 float64
}

// Width returns X1-X0.
func (r TileRect) Width() float64 { return r.X1 - r.X0 }

// Height returns Y1-Y0.
func (r TileRect) Height() float64 { return r.Y1 - r.Y0 }

// Tile returns a surface shaped like src in which every pixel repeats the
// region r of src, with r's top-left corner anchoring the pattern. An empty
// region returns a copy of src.
func Tile(src *image.Surface, r TileRect, pool *parallel.WorkerPool) *image.Surface {
	tw, th := r.Width(), r.Height()
	if !(tw > 0) || !(th > 0) {
		slogger().Warn("filter: empty tile region, passing input through",
			"width", tw, "height", th)
		return src.Clone()
	}
	dst := src.Similar(0, 0)
	if !src.IsRealized() {
		return dst
	}
	w, h := src.Size()
	dst.Pix()
	parallel.Rows(pool, h, w, 0, func(y, _ int, _ []float64) {
		v := r.Y0 + wrapf(float64(y)-r.Y0, th)
		for x := range w {
			u := r.X0 + wrapf(float64(x)-r.X0, tw)
			p := src.ColorAt(int(math.Floor(u)), int(math.Floor(v)), false, image.EdgeZero)
			dst.ColorTo(x, y, p, true)
		}
	})
	return dst
}

// wrapf returns v modulo n in [0, n).
func wrapf(v, n float64) float64 {
	v = math.Mod(v, n)
	if v < 0 {
		v += n
	}
	return v
}
