package fx

import (
	"image"
	"math"
)

// Primitive is one step of a filter chain: an Effect plus the slots it
// reads and writes, its subregion and its color interpolation space.
type Primitive struct {
	effect Effect
	inputs []SlotID
	output SlotID

	x, y, width, height Length

	space ColorSpace
}

// NewPrimitive wraps e with unset inputs and output, the default subregion
// and linearRGB interpolation.
func NewPrimitive(e Effect) *Primitive {
	return &Primitive{effect: e, output: SlotNotSet, space: LinearRGB}
}

// Effect returns the wrapped effect.
func (p *Primitive) Effect() Effect { return p.effect }

// SetInput sets the first input.
func (p *Primitive) SetInput(id SlotID) { p.SetInputAt(0, id) }

// SetInputAt sets input i. Merge reads every input; Composite, Blend and
// DisplacementMap read the first two; the rest read the first.
func (p *Primitive) SetInputAt(i int, id SlotID) {
	if i < 0 {
		return
	}
	for len(p.inputs) <= i {
		p.inputs = append(p.inputs, SlotNotSet)
	}
	p.inputs[i] = id
}

// Input returns input i, or SlotNotSet.
func (p *Primitive) Input(i int) SlotID {
	if i < 0 || i >= len(p.inputs) {
		return SlotNotSet
	}
	return p.inputs[i]
}

// SetOutput sets the output slot.
func (p *Primitive) SetOutput(id SlotID) { p.output = id }

// Output returns the output slot.
func (p *Primitive) Output() SlotID { return p.output }

// SetSubregion sets the primitive subregion in primitive units. Unset
// lengths default to the filter effects region.
func (p *Primitive) SetSubregion(x, y, width, height Length) {
	p.x, p.y, p.width, p.height = x, y, width, height
}

// SetColorInterpolation selects the space the primitive works in. Only
// SRGB and LinearRGB are accepted.
func (p *Primitive) SetColorInterpolation(space ColorSpace) {
	if space != SRGB && space != LinearRGB {
		Logger().Warn("fx: unsupported interpolation space", "space", space.String())
		return
	}
	p.space = space
}

// ColorInterpolation returns the working space.
func (p *Primitive) ColorInterpolation() ColorSpace { return p.space }

// hasSubregion reports whether any subregion length was given.
func (p *Primitive) hasSubregion() bool {
	return p.x.IsSet() || p.y.IsSet() || p.width.IsSet() || p.height.IsSet()
}

// arity returns the number of inputs the effect reads.
func (p *Primitive) arity() int {
	switch p.effect.(type) {
	case *Flood, *Turbulence, *Image:
		return 0
	case *Composite, *Blend, *DisplacementMap:
		return 2
	case *Merge:
		return len(p.inputs)
	default:
		return 1
	}
}

// UsesInput reports whether the primitive reads slot id.
func (p *Primitive) UsesInput(id SlotID) bool {
	for i := range p.arity() {
		if p.Input(i) == id {
			return true
		}
	}
	return false
}

// Area returns the primitive subregion in user space. Unset lengths take
// the filter effects region; set ones are read in primitive units.
func (p *Primitive) Area(u *Units) Rect {
	var fa Rect
	if u.FilterArea != nil {
		fa = *u.FilterArea
	}
	ref := fa
	if u.PrimitiveUnits == ObjectBoundingBox && u.ItemBBox != nil {
		ref = *u.ItemBBox
	}
	pos := func(l Length, origin, extent, def float64) float64 {
		if !l.IsSet() {
			return def
		}
		if u.PrimitiveUnits == UserSpaceOnUse && l.Unit == LengthNumber {
			return l.Value
		}
		return origin + l.fraction()*extent
	}
	size := func(l Length, extent, def float64) float64 {
		if !l.IsSet() {
			return def
		}
		return l.resolve(u.PrimitiveUnits, extent)
	}
	x := pos(p.x, ref.X0, ref.Width(), fa.X0)
	y := pos(p.y, ref.Y0, ref.Height(), fa.Y0)
	w := size(p.width, ref.Width(), fa.Width())
	h := size(p.height, ref.Height(), fa.Height())
	return XYWH(x, y, w, h)
}

// CanHandleAffine reports whether the effect gives correct results in a pb
// space rotated or skewed by m. Per-pixel effects can; effects with a
// spatial extent need an axis-aligned pb space.
func (p *Primitive) CanHandleAffine(m Matrix) bool {
	switch p.effect.(type) {
	case *Flood, *Composite, *Merge, *Blend, *ColorMatrix,
		*ComponentTransfer, *Offset, *Image, *DropShadow:
		return true
	default:
		return m.IsTranslation()
	}
}

// Complexity estimates the cost per pixel relative to a copy under m.
func (p *Primitive) Complexity(m Matrix) float64 {
	switch e := p.effect.(type) {
	case *GaussianBlur:
		ax := math.Ceil(3 * e.devX * m.ExpansionX())
		ay := math.Ceil(3 * e.devY * m.ExpansionY())
		return 2 * ax * ay
	case *DropShadow:
		ax := math.Ceil(3 * e.devX * m.ExpansionX())
		ay := math.Ceil(3 * e.devY * m.ExpansionY())
		return 2*ax*ay + 1.1
	case *Morphology:
		return math.Ceil(e.rx*m.ExpansionX()) * math.Ceil(e.ry*m.ExpansionY())
	case *ConvolveMatrix:
		return float64(len(e.k.Kernel))
	case *Lighting:
		return 9
	case *Turbulence:
		return 5
	case *DisplacementMap:
		return 3
	case *ColorMatrix, *ComponentTransfer:
		return 2
	case *Composite, *Blend, *Image:
		return 1.1
	case *Merge, *Offset:
		return 1.02
	default:
		return 1
	}
}

// AreaEnlarge grows the integer rectangle r, in pb pixels, by the distance
// the effect can move content under m.
func (p *Primitive) AreaEnlarge(r image.Rectangle, m Matrix) image.Rectangle {
	switch e := p.effect.(type) {
	case *GaussianBlur:
		n := blurEnlarge(e.devX, e.devY, m)
		return r.Inset(-n)
	case *DropShadow:
		n := blurEnlarge(e.devX, e.devY, m)
		dx := int(math.Round(e.dx * m.ExpansionX()))
		dy := int(math.Round(e.dy * m.ExpansionY()))
		return r.Union(r.Inset(-n).Add(image.Pt(dx, dy)))
	case *Offset:
		dx := int(math.Ceil(math.Abs(e.dx * m.ExpansionX())))
		dy := int(math.Ceil(math.Abs(e.dy * m.ExpansionY())))
		// Content at r comes from the side opposite to the offset.
		if e.dx > 0 {
			r.Min.X -= dx
		} else {
			r.Max.X += dx
		}
		if e.dy > 0 {
			r.Min.Y -= dy
		} else {
			r.Max.Y += dy
		}
		return r
	case *Morphology:
		nx := int(math.Ceil(e.rx * m.ExpansionX()))
		ny := int(math.Ceil(e.ry * m.ExpansionY()))
		return image.Rect(r.Min.X-nx, r.Min.Y-ny, r.Max.X+nx, r.Max.Y+ny)
	case *ConvolveMatrix:
		k := e.kernel()
		return image.Rect(r.Min.X-k.TargetX, r.Min.Y-k.TargetY,
			r.Max.X+k.OrderX-k.TargetX-1, r.Max.Y+k.OrderY-k.TargetY-1)
	case *DisplacementMap:
		sx := int(math.Ceil(math.Abs(e.scale) / 2 * (math.Abs(m.A) + math.Abs(m.B))))
		sy := int(math.Ceil(math.Abs(e.scale) / 2 * (math.Abs(m.D) + math.Abs(m.E))))
		return image.Rect(r.Min.X-sx, r.Min.Y-sy, r.Max.X+sx, r.Max.Y+sy)
	case *Lighting:
		return r.Inset(-1)
	case *Tile:
		const huge = math.MaxInt32 / 4
		return image.Rect(-huge, -huge, huge, huge)
	default:
		return r
	}
}

// blurEnlarge is the reach of a Gaussian in pb pixels.
func blurEnlarge(devX, devY float64, m Matrix) int {
	ax := math.Ceil(3 * devX * m.ExpansionX())
	ay := math.Ceil(3 * devY * m.ExpansionY())
	return int(max(ax, ay))
}
