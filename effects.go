package fx

import (
	stdcolor "image/color"
	"math"

	"github.com/gogpu/fx/internal/color"
	"github.com/gogpu/fx/internal/image"
)

// Effect is the operation of a Primitive. The set of effects is closed:
// only the types in this package implement it.
type Effect interface {
	isEffect()
}

func (*GaussianBlur) isEffect()      {}
func (*Offset) isEffect()            {}
func (*Flood) isEffect()             {}
func (*Tile) isEffect()              {}
func (*Merge) isEffect()             {}
func (*Image) isEffect()             {}
func (*DropShadow) isEffect()        {}
func (*Composite) isEffect()         {}
func (*Blend) isEffect()             {}
func (*ColorMatrix) isEffect()       {}
func (*ComponentTransfer) isEffect() {}
func (*Morphology) isEffect()        {}
func (*ConvolveMatrix) isEffect()    {}
func (*DisplacementMap) isEffect()   {}
func (*Lighting) isEffect()          {}
func (*Turbulence) isEffect()        {}

// finite reports whether every value is a finite number.
func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// paint returns c as an unpremultiplied pixel in space.
func paint(c stdcolor.Color, space color.Space) image.Pixel {
	var p image.Pixel
	if c == nil {
		return p
	}
	n := stdcolor.NRGBA64Model.Convert(c).(stdcolor.NRGBA64)
	in := []float64{float64(n.R) / 0xffff, float64(n.G) / 0xffff, float64(n.B) / 0xffff}
	nc := space.Channels()
	color.Convert(color.SRGB, space, p[:nc], in)
	p[nc] = float64(n.A) / 0xffff
	return p
}

// GaussianBlur blurs its input. Deviations are in primitive units.
type GaussianBlur struct {
	devX, devY float64
}

// NewGaussianBlur creates a blur with the given deviations.
func NewGaussianBlur(dx, dy float64) *GaussianBlur {
	b := &GaussianBlur{}
	b.SetDeviation(dx, dy)
	return b
}

// SetDeviation sets both deviations. Negative or NaN values are rejected
// and leave the blur unchanged.
func (b *GaussianBlur) SetDeviation(dx, dy float64) {
	if !(dx >= 0) || !(dy >= 0) || math.IsInf(dx, 0) || math.IsInf(dy, 0) {
		Logger().Warn("fx: invalid blur deviation", "x", dx, "y", dy)
		return
	}
	b.devX, b.devY = dx, dy
}

// Deviation returns the deviations.
func (b *GaussianBlur) Deviation() (float64, float64) { return b.devX, b.devY }

// Offset moves its input by (dx, dy) in primitive units.
type Offset struct {
	dx, dy float64
}

// NewOffset creates an offset.
func NewOffset(dx, dy float64) *Offset {
	o := &Offset{}
	o.SetOffset(dx, dy)
	return o
}

// SetOffset sets the displacement. Non-finite values are rejected.
func (o *Offset) SetOffset(dx, dy float64) {
	if !finite(dx, dy) {
		Logger().Warn("fx: invalid offset", "dx", dx, "dy", dy)
		return
	}
	o.dx, o.dy = dx, dy
}

// Flood fills the primitive subregion with a color.
type Flood struct {
	color stdcolor.Color
}

// NewFlood creates a flood of c, an sRGB color.
func NewFlood(c stdcolor.Color) *Flood { return &Flood{color: c} }

// SetColor sets the flood color.
func (f *Flood) SetColor(c stdcolor.Color) { f.color = c }

// Tile repeats the subregion of its input's producer across its own
// subregion.
type Tile struct{}

// NewTile creates a tile primitive.
func NewTile() *Tile { return &Tile{} }

// Merge composites its inputs over each other in order. Inputs are set on
// the Primitive with SetInputAt.
type Merge struct{}

// NewMerge creates a merge.
func NewMerge() *Merge { return &Merge{} }

// Image places a bitmap into the primitive subregion, stretched to fill it.
type Image struct {
	surface *Surface
}

// NewImage creates an image primitive drawing s.
func NewImage(s *Surface) *Image { return &Image{surface: s} }

// SetImage replaces the bitmap.
func (i *Image) SetImage(s *Surface) { i.surface = s }

// DropShadow draws a blurred, tinted and offset copy of its input's alpha
// beneath the input. Deviations and offsets are in primitive units.
type DropShadow struct {
	devX, devY float64
	dx, dy     float64
	color      stdcolor.Color
}

// NewDropShadow creates a black shadow.
func NewDropShadow(dev, dx, dy float64) *DropShadow {
	d := &DropShadow{color: stdcolor.Black}
	d.SetDeviation(dev, dev)
	d.SetOffset(dx, dy)
	return d
}

// SetDeviation sets the blur deviations. Negative or NaN values are
// rejected.
func (d *DropShadow) SetDeviation(dx, dy float64) {
	if !(dx >= 0) || !(dy >= 0) || math.IsInf(dx, 0) || math.IsInf(dy, 0) {
		Logger().Warn("fx: invalid shadow deviation", "x", dx, "y", dy)
		return
	}
	d.devX, d.devY = dx, dy
}

// SetOffset sets the shadow offset. Non-finite values are rejected.
func (d *DropShadow) SetOffset(dx, dy float64) {
	if !finite(dx, dy) {
		Logger().Warn("fx: invalid shadow offset", "dx", dx, "dy", dy)
		return
	}
	d.dx, d.dy = dx, dy
}

// SetColor sets the shadow color; its alpha is the shadow opacity.
func (d *DropShadow) SetColor(c stdcolor.Color) { d.color = c }
