package filter

import (
	"github.com/gogpu/fx/internal/image"
	"github.com/gogpu/fx/internal/parallel"
)

// ConvolveMatrix is a general 2D convolution on unpremultiplied colors.
type ConvolveMatrix struct {
	OrderX, OrderY   int
	TargetX, TargetY int
	// Kernel holds OrderX*OrderY coefficients in row-major order.
	Kernel []float64
	// Divisor scales the sum; zero means the sum of the kernel, or 1 when
	// that sum is zero too.
	Divisor float64
	Bias    float64
	// Edge decides how pixels outside the input are read.
	Edge image.EdgeMode
	// PreserveAlpha convolves only the color channels and copies alpha.
	PreserveAlpha bool
}

// Valid reports whether the order, kernel length and target are consistent.
func (f *ConvolveMatrix) Valid() bool {
	return f.OrderX > 0 && f.OrderY > 0 &&
		len(f.Kernel) == f.OrderX*f.OrderY &&
		f.TargetX >= 0 && f.TargetX < f.OrderX &&
		f.TargetY >= 0 && f.TargetY < f.OrderY
}

// divisor resolves the automatic divisor.
func (f *ConvolveMatrix) divisor() float64 {
	if f.Divisor != 0 {
		return f.Divisor
	}
	sum := 0.0
	for _, k := range f.Kernel {
		sum += k
	}
	if sum == 0 {
		return 1
	}
	return sum
}

// Apply returns src convolved with the kernel. An invalid matrix passes the
// input through.
func (f *ConvolveMatrix) Apply(src *image.Surface, pool *parallel.WorkerPool) *image.Surface {
	if !f.Valid() {
		slogger().Warn("filter: invalid convolve matrix, passing input through",
			"order", [2]int{f.OrderX, f.OrderY}, "target", [2]int{f.TargetX, f.TargetY},
			"kernel", len(f.Kernel))
		return src.Clone()
	}

	// The kernel is applied rotated by 180 degrees.
	div := f.divisor()
	kernel := make([]float64, len(f.Kernel))
	for i, k := range f.Kernel {
		kernel[len(kernel)-1-i] = k / div
	}

	edge := f.Edge
	if edge == image.EdgeNoCheck {
		edge = image.EdgeZero
	}

	dst := src.Similar(0, 0)
	w, h := src.Size()
	nc := src.Space().Channels()
	channels := nc + 1
	if f.PreserveAlpha {
		channels = nc
	}
	dst.Pix()

	parallel.Rows(pool, h, w, 0, func(y, _ int, _ []float64) {
		for x := range w {
			var q image.Pixel
			for c := range channels {
				q[c] = f.Bias
			}
			for j := range f.OrderY {
				for i := range f.OrderX {
					k := kernel[j*f.OrderX+i]
					if k == 0 {
						continue
					}
					p := src.ColorAt(x+i-f.TargetX, y+j-f.TargetY, true, edge)
					for c := range channels {
						q[c] += p[c] * k
					}
				}
			}
			if f.PreserveAlpha {
				q[nc] = src.AlphaAt(x, y, image.EdgeNoCheck)
			}
			for c := 0; c <= nc; c++ {
				q[c] = clamp01(q[c])
			}
			dst.ColorTo(x, y, q, false)
		}
	})
	return dst
}
