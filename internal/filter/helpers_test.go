package filter

import (
	"math/rand/v2"
	"testing"

	"github.com/gogpu/fx/internal/color"
	"github.com/gogpu/fx/internal/image"
)

// Test helper functions shared across filter tests.

// newSurface creates a realized transparent surface.
func newSurface(t testing.TB, w, h int, space color.Space) *image.Surface {
	t.Helper()
	s, err := image.New(w, h, 1, space)
	if err != nil {
		t.Fatalf("image.New(%d, %d): %v", w, h, err)
	}
	s.Pix()
	return s
}

// filledSurface creates a surface filled with the unpremultiplied color p.
func filledSurface(t testing.TB, w, h int, space color.Space, p image.Pixel) *image.Surface {
	t.Helper()
	s := newSurface(t, w, h, space)
	image.Premultiply(&p, space.Channels())
	s.Fill(s.Bounds(), p)
	return s
}

// randomSurface fills a surface with reproducible random colors. With opaque
// set every alpha is 1.
func randomSurface(t testing.TB, w, h int, space color.Space, opaque bool) *image.Surface {
	t.Helper()
	rng := rand.New(rand.NewPCG(uint64(w), uint64(h)))
	s := newSurface(t, w, h, space)
	nc := space.Channels()
	for y := range h {
		for x := range w {
			var p image.Pixel
			for c := range nc {
				p[c] = rng.Float64()
			}
			p[nc] = 1
			if !opaque {
				p[nc] = rng.Float64()
			}
			s.ColorTo(x, y, p, false)
		}
	}
	return s
}

// rgba builds an unpremultiplied RGB pixel.
func rgba(r, g, b, a float64) image.Pixel { return image.Pixel{r, g, b, a} }

// pixelApproxEqual compares the first n channels of two pixels.
func pixelApproxEqual(a, b image.Pixel, n int, tolerance float64) bool {
	for c := range n {
		if absf(a[c]-b[c]) > tolerance {
			return false
		}
	}
	return true
}

// maxDiff returns the largest sample difference between two surfaces of
// the same shape.
func maxDiff(a, b *image.Surface) float64 {
	pa, pb := a.Pix(), b.Pix()
	d := 0.0
	for i := range pa {
		d = max(d, absf(float64(pa[i])-float64(pb[i])))
	}
	return d
}

// absf returns the absolute value of a float64.
func absf(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// formatFloat formats a float for benchmark names.
func formatFloat(f float64) string {
	if f == float64(int(f)) {
		return formatInt(int(f))
	}
	intPart := int(f)
	fracPart := int((f - float64(intPart)) * 100)
	if fracPart < 0 {
		fracPart = -fracPart
	}
	return formatInt(intPart) + "." + formatInt(fracPart)
}

// formatInt formats an integer without using fmt.
func formatInt(i int) string {
	if i == 0 {
		return "0"
	}
	neg := i < 0
	if neg {
		i = -i
	}
	var digits []byte
	for i > 0 {
		digits = append([]byte{byte('0' + i%10)}, digits...)
		i /= 10
	}
	if neg {
		digits = append([]byte{'-'}, digits...)
	}
	return string(digits)
}
