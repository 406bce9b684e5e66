package filter

import (
	"github.com/gogpu/fx/internal/image"
	"github.com/gogpu/fx/internal/parallel"
)

// DisplacementMap moves the pixels of a texture by amounts read from a map:
//
//	P'(x,y) = P(x + ScaleX*(M[XChannel](x,y) - 0.5), y + ScaleY*(M[YChannel](x,y) - 0.5))
//
// Map values are unpremultiplied. Channel indices count the map's color
// channels followed by alpha and are clamped to that range.
type DisplacementMap struct {
	XChannel, YChannel int
	ScaleX, ScaleY     float64
}

// Apply returns texture displaced by m. Texture pixels are fetched with
// bilinear filtering; positions outside it read as transparent.
func (f *DisplacementMap) Apply(texture, m *image.Surface, pool *parallel.WorkerPool) *image.Surface {
	dst := texture.Similar(0, 0)
	w, h := texture.Size()
	last := m.Channels() - 1
	xch := clamp(f.XChannel, 0, last)
	ych := clamp(f.YChannel, 0, last)
	dst.Pix()
	parallel.Rows(pool, h, w, 0, func(y, _ int, _ []float64) {
		for x := range w {
			mp := m.ColorAt(x, y, true, image.EdgeZero)
			sx := float64(x) + f.ScaleX*(mp[xch]-0.5)
			sy := float64(y) + f.ScaleY*(mp[ych]-0.5)
			dst.ColorTo(x, y, texture.Sample(sx, sy, false, image.EdgeZero), true)
		}
	})
	return dst
}
