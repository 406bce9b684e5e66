package filter

import (
	"math"

	"github.com/gogpu/fx/internal/color"
	"github.com/gogpu/fx/internal/image"
	"github.com/gogpu/fx/internal/parallel"
)

// ColorMatrix applies a 4x5 color transformation matrix to an image.
// The transformation is:
//
//	[R']   [a00 a01 a02 a03 a04]   [R]
//	[G'] = [a10 a11 a12 a13 a14] * [G]
//	[B']   [a20 a21 a22 a23 a24]   [B]
//	[A']   [a30 a31 a32 a33 a34]   [A]
//	                               [1]
//
// Color values are unpremultiplied and in [0,1] during the transformation;
// the fifth column is an offset in the same range. Results are clamped.
type ColorMatrix struct {
	// Matrix holds the rows R, G, B, A in row-major order.
	Matrix [20]float64
}

var identityMatrix = [20]float64{
	1, 0, 0, 0, 0,
	0, 1, 0, 0, 0,
	0, 0, 1, 0, 0,
	0, 0, 0, 1, 0,
}

// NewColorMatrix creates a color matrix from 20 row-major values. Any other
// count yields the identity.
func NewColorMatrix(values []float64) *ColorMatrix {
	if len(values) != 20 {
		if len(values) != 0 {
			slogger().Warn("filter: color matrix needs 20 values, using identity", "got", len(values))
		}
		return NewIdentityColorMatrix()
	}
	f := &ColorMatrix{}
	copy(f.Matrix[:], values)
	return f
}

// NewIdentityColorMatrix creates a color matrix that passes colors through.
func NewIdentityColorMatrix() *ColorMatrix {
	return &ColorMatrix{Matrix: identityMatrix}
}

// NewSaturate creates the saturate matrix; s is clamped to [0,1], where 0 is
// grayscale and 1 is unchanged.
func NewSaturate(s float64) *ColorMatrix {
	s = clamp01(s)
	return &ColorMatrix{
		Matrix: [20]float64{
			0.213 + 0.787*s, 0.715 - 0.715*s, 0.072 - 0.072*s, 0, 0,
			0.213 - 0.213*s, 0.715 + 0.285*s, 0.072 - 0.072*s, 0, 0,
			0.213 - 0.213*s, 0.715 - 0.715*s, 0.072 + 0.928*s, 0, 0,
			0, 0, 0, 1, 0,
		},
	}
}

// NewGrayscale creates a matrix that removes all saturation.
func NewGrayscale() *ColorMatrix {
	return NewSaturate(0)
}

// NewHueRotate creates a matrix rotating hue by degrees.
func NewHueRotate(degrees float64) *ColorMatrix {
	rad := degrees * math.Pi / 180
	c, s := math.Cos(rad), math.Sin(rad)
	return &ColorMatrix{
		Matrix: [20]float64{
			0.213 + c*0.787 - s*0.213, 0.715 - c*0.715 - s*0.715, 0.072 - c*0.072 + s*0.928, 0, 0,
			0.213 - c*0.213 + s*0.143, 0.715 + c*0.285 + s*0.140, 0.072 - c*0.072 - s*0.283, 0, 0,
			0.213 - c*0.213 - s*0.787, 0.715 - c*0.715 + s*0.715, 0.072 + c*0.928 + s*0.072, 0, 0,
			0, 0, 0, 1, 0,
		},
	}
}

// NewSepia creates a sepia tone matrix.
func NewSepia() *ColorMatrix {
	return &ColorMatrix{
		Matrix: [20]float64{
			0.393, 0.769, 0.189, 0, 0,
			0.349, 0.686, 0.168, 0, 0,
			0.272, 0.534, 0.131, 0, 0,
			0, 0, 0, 1, 0,
		},
	}
}

// NewInvert creates a matrix that inverts colors and keeps alpha.
func NewInvert() *ColorMatrix {
	return &ColorMatrix{
		Matrix: [20]float64{
			-1, 0, 0, 0, 1,
			0, -1, 0, 0, 1,
			0, 0, -1, 0, 1,
			0, 0, 0, 1, 0,
		},
	}
}

// Apply returns src transformed by the matrix in a new surface. Surfaces
// outside an RGB space are converted to linear RGB first.
func (f *ColorMatrix) Apply(src *image.Surface, pool *parallel.WorkerPool) *image.Surface {
	if !src.Space().IsRGB() {
		slogger().Warn("filter: color matrix on non-RGB surface, converting", "space", src.Space().String())
		src = src.Convert(color.LinearRGB)
	}
	dst := src.Similar(0, 0)
	w, h := src.Size()
	dst.Pix()
	m := &f.Matrix
	parallel.Rows(pool, h, w, 0, func(y, _ int, _ []float64) {
		for x := range w {
			p := src.ColorAt(x, y, true, image.EdgeNoCheck)
			var q image.Pixel
			for row := range 4 {
				o := row * 5
				q[row] = clamp01(m[o]*p[0] + m[o+1]*p[1] + m[o+2]*p[2] + m[o+3]*p[3] + m[o+4])
			}
			dst.ColorTo(x, y, q, false)
		}
	})
	return dst
}

// Multiply returns a matrix that applies f first, then other.
func (f *ColorMatrix) Multiply(other *ColorMatrix) *ColorMatrix {
	a := &other.Matrix
	b := &f.Matrix
	result := &ColorMatrix{}
	r := &result.Matrix
	for row := range 4 {
		for col := range 4 {
			sum := 0.0
			for k := range 4 {
				sum += a[row*5+k] * b[k*5+col]
			}
			r[row*5+col] = sum
		}
		r[row*5+4] = a[row*5+0]*b[4] + a[row*5+1]*b[9] +
			a[row*5+2]*b[14] + a[row*5+3]*b[19] + a[row*5+4]
	}
	return result
}

// LuminanceToAlpha returns an Alpha-space surface whose alpha is the
// luminance of the unpremultiplied color of src.
func LuminanceToAlpha(src *image.Surface, pool *parallel.WorkerPool) *image.Surface {
	if !src.Space().IsRGB() {
		src = src.Convert(color.LinearRGB)
	}
	dst := src.SimilarIn(0, 0, color.Alpha)
	w, h := src.Size()
	dst.Pix()
	parallel.Rows(pool, h, w, 0, func(y, _ int, _ []float64) {
		for x := range w {
			p := src.ColorAt(x, y, true, image.EdgeNoCheck)
			var q image.Pixel
			q[0] = clamp01(color.Luminance(p[0], p[1], p[2]))
			dst.ColorTo(x, y, q, true)
		}
	})
	return dst
}
