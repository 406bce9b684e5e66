package filter

import (
	"github.com/gogpu/fx/internal/blend"
	"github.com/gogpu/fx/internal/image"
	"github.com/gogpu/fx/internal/parallel"
)

// Arithmetic holds the coefficients of the arithmetic composite:
// result = K1*i1*i2 + K2*i1 + K3*i2 + K4, per channel on unpremultiplied
// values, clamped to [0,1].
type Arithmetic struct {
	K1, K2, K3, K4 float64
}

// CompositeArithmetic combines in1 and in2 into a new surface shaped like
// in1. in2 must share in1's color space; pixels outside it read as
// transparent.
func CompositeArithmetic(in1, in2 *image.Surface, k Arithmetic, pool *parallel.WorkerPool) *image.Surface {
	dst := in1.Similar(0, 0)
	w, h := in1.Size()
	n := in1.Channels()
	dst.Pix()
	parallel.Rows(pool, h, w, 0, func(y, _ int, _ []float64) {
		for x := range w {
			a := in1.ColorAt(x, y, true, image.EdgeNoCheck)
			b := in2.ColorAt(x, y, true, image.EdgeZero)
			var q image.Pixel
			for c := range n {
				q[c] = clamp01(k.K1*a[c]*b[c] + k.K2*a[c] + k.K3*b[c] + k.K4)
			}
			dst.ColorTo(x, y, q, false)
		}
	})
	return dst
}

// Composite combines in1 (source) with in2 (destination) using a
// Porter-Duff operator. The result is shaped like in1.
func Composite(in1, in2 *image.Surface, op blend.Operator, pool *parallel.WorkerPool) *image.Surface {
	dst := in1.Similar(0, 0)
	w, h := in1.Size()
	nc := in1.Space().Channels()
	dst.Pix()
	parallel.Rows(pool, h, w, 0, func(y, _ int, _ []float64) {
		for x := range w {
			s := blend.Pixel(in1.ColorAt(x, y, false, image.EdgeNoCheck))
			d := blend.Pixel(in2.ColorAt(x, y, false, image.EdgeZero))
			dst.ColorTo(x, y, image.Pixel(op.Composite(&s, &d, nc)), true)
		}
	})
	return dst
}

// Blend mixes in1 (source) over in2 (backdrop) with a blend mode.
// Non-separable modes on non-RGB surfaces fall back to normal.
func Blend(in1, in2 *image.Surface, mode blend.Mode, pool *parallel.WorkerPool) *image.Surface {
	nc := in1.Space().Channels()
	if !mode.IsSeparable() && !in1.Space().IsRGB() {
		slogger().Warn("filter: blend mode needs RGB, using normal",
			"mode", mode.String(), "space", in1.Space().String())
		mode = blend.Normal
	}
	dst := in1.Similar(0, 0)
	w, h := in1.Size()
	dst.Pix()
	parallel.Rows(pool, h, w, 0, func(y, _ int, _ []float64) {
		for x := range w {
			s := blend.Pixel(in1.ColorAt(x, y, false, image.EdgeNoCheck))
			d := blend.Pixel(in2.ColorAt(x, y, false, image.EdgeZero))
			dst.ColorTo(x, y, image.Pixel(mode.Blend(&s, &d, nc)), true)
		}
	})
	return dst
}

// MergeOver composites layers in order, each over the previous ones, into
// dst. Layers in another color space than dst are skipped.
func MergeOver(dst *image.Surface, layers []*image.Surface, pool *parallel.WorkerPool) {
	w, h := dst.Size()
	nc := dst.Space().Channels()
	dst.Pix()
	for _, layer := range layers {
		if layer == nil || !layer.IsRealized() {
			continue
		}
		if layer.Space() != dst.Space() {
			slogger().Warn("filter: merge layer in wrong space, skipped",
				"want", dst.Space().String(), "got", layer.Space().String())
			continue
		}
		parallel.Rows(pool, h, w, 0, func(y, _ int, _ []float64) {
			for x := range w {
				s := blend.Pixel(layer.ColorAt(x, y, false, image.EdgeZero))
				if s[nc] <= 0 {
					continue
				}
				d := blend.Pixel(dst.ColorAt(x, y, false, image.EdgeNoCheck))
				dst.ColorTo(x, y, image.Pixel(blend.Over(&s, &d, nc)), true)
			}
		})
	}
}
