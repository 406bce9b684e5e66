package filter

import (
	"image"
	"math"

	fximage "github.com/gogpu/fx/internal/image"
	"github.com/gogpu/fx/internal/parallel"
)

// DropShadow draws a blurred, tinted copy of its input's alpha beneath
// the input.
type DropShadow struct {
	// DeviationX and DeviationY are the blur deviations in pixels.
	DeviationX float64
	DeviationY float64

	// OffsetX and OffsetY move the shadow, in pixels.
	OffsetX float64
	OffsetY float64

	// Color is the unpremultiplied shadow color in the color space of the
	// input; its alpha scales the shadow opacity.
	Color fximage.Pixel

	Quality Quality
}

// Apply returns the input with its shadow composited underneath.
// The algorithm:
//  1. Extract the alpha channel of src
//  2. Blur it
//  3. Colorize with the shadow color, sampling at the offset position
//  4. Composite src over the shadow
func (f *DropShadow) Apply(src *fximage.Surface, pool *parallel.WorkerPool) *fximage.Surface {
	blur := &GaussianBlur{DeviationX: f.DeviationX, DeviationY: f.DeviationY, Quality: f.Quality}
	alpha := blur.Apply(src.ExtractAlpha(), pool)

	shadow := src.Similar(0, 0)
	w, h := src.Size()
	nc := src.Space().Channels()
	shadow.Pix()
	parallel.Rows(pool, h, w, 0, func(y, _ int, _ []float64) {
		for x := range w {
			a := alpha.Sample(float64(x)-f.OffsetX, float64(y)-f.OffsetY, false, fximage.EdgeZero)[0]
			if a <= 0 {
				continue
			}
			p := f.Color
			p[nc] = f.Color[nc] * a
			shadow.ColorTo(x, y, p, false)
		}
	})

	MergeOver(shadow, []*fximage.Surface{src}, pool)
	return shadow
}

// ExpandBounds returns input grown by the area the shadow can reach.
func (f *DropShadow) ExpandBounds(input image.Rectangle) image.Rectangle {
	bx := int(math.Ceil(math.Abs(f.DeviationX) * 3))
	by := int(math.Ceil(math.Abs(f.DeviationY) * 3))
	ox := int(math.Ceil(math.Abs(f.OffsetX)))
	oy := int(math.Ceil(math.Abs(f.OffsetY)))
	return image.Rect(
		input.Min.X-bx-ox, input.Min.Y-by-oy,
		input.Max.X+bx+ox, input.Max.Y+by+oy,
	)
}
