package fx

import (
	"github.com/gogpu/fx/internal/filter"
	fximage "github.com/gogpu/fx/internal/image"
)

// renderPrimitive runs one primitive against the slot table and stores its
// output.
func renderPrimitive(p *Primitive, s *Slot) {
	area := p.Area(s.units)

	var out *Surface
	switch e := p.effect.(type) {
	case *GaussianBlur:
		out = renderBlur(e, p, s)
	case *Offset:
		out = renderOffset(e, p, s)
	case *Flood:
		out = renderFlood(e, p, s, area)
	case *Tile:
		out = renderTile(p, s)
	case *Merge:
		out = renderMerge(p, s)
	case *Image:
		out = renderImage(e, p, s, area)
	case *DropShadow:
		out = renderDropShadow(e, p, s)
	case *Composite:
		out = renderComposite(e, p, s)
	case *Blend:
		out = renderBlend(e, p, s)
	case *ColorMatrix:
		out = renderColorMatrix(e, p, s)
	case *ComponentTransfer:
		out = renderComponentTransfer(e, p, s)
	case *Morphology:
		out = renderMorphology(e, p, s)
	case *ConvolveMatrix:
		out = renderConvolve(e, p, s)
	case *DisplacementMap:
		out = renderDisplacement(e, p, s)
	case *Lighting:
		out = renderLighting(e, p, s)
	case *Turbulence:
		out = renderTurbulence(e, p, s, area)
	default:
		Logger().Warn("fx: unknown effect", "type", e)
	}

	if out == nil {
		Logger().Debug("fx: primitive produced no image", "output", p.output)
		out = s.canvas(p.space)
	}
	if p.hasSubregion() {
		if s.holds(out) {
			out = out.Clone()
		}
		out.ClipTo(area.Transform(s.userToPixels()).RoundOut())
	}
	s.Set(p.output, out)
	s.SetPrimitiveArea(p.output, area)
}

// canvas returns an empty surface covering the slot box in space.
func (s *Slot) canvas(space ColorSpace) *Surface {
	if src := s.surfaces[SlotSourceGraphic]; src != nil {
		return src.SimilarIn(0, 0, space)
	}
	w, h := 1, 1
	if sbox, ok := s.units.SlotBox(); ok {
		w = max(int(sbox.Width()*s.opts.DeviceScale), 1)
		h = max(int(sbox.Height()*s.opts.DeviceScale), 1)
	}
	out, _ := fximage.New(w, h, s.opts.DeviceScale, space)
	return out
}

// input returns input i of p in the primitive's space, or nil.
func (s *Slot) input(p *Primitive, i int) *Surface {
	id := p.Input(i)
	in := s.GetIn(id, p.space)
	if in == nil {
		Logger().Debug("fx: missing input", "slot", id)
	}
	return in
}

// inputCopy is input returning a private copy.
func (s *Slot) inputCopy(p *Primitive, i int) *Surface {
	id := p.Input(i)
	in := s.GetCopyIn(id, p.space)
	if in == nil {
		Logger().Debug("fx: missing input", "slot", id)
	}
	return in
}

func renderBlur(e *GaussianBlur, p *Primitive, s *Slot) *Surface {
	m := s.primitiveUnitsToPixels()
	dx, dy := e.devX*m.ExpansionX(), e.devY*m.ExpansionY()
	if dx == 0 && dy == 0 {
		return s.Get(p.Input(0))
	}
	in := s.inputCopy(p, 0)
	if in == nil {
		return nil
	}
	g := filter.GaussianBlur{DeviationX: dx, DeviationY: dy, Quality: s.opts.BlurQuality}
	return g.Apply(in, s.opts.pool())
}

func renderOffset(e *Offset, p *Primitive, s *Slot) *Surface {
	in := s.input(p, 0)
	if in == nil {
		return nil
	}
	v := s.primitiveUnitsToPixels().TransformVector(Pt(e.dx, e.dy))
	return filter.Offset(in, v.X, v.Y, s.opts.pool())
}

func renderFlood(e *Flood, p *Primitive, s *Slot, area Rect) *Surface {
	out := s.canvas(p.space)
	c := paint(e.color, p.space)
	fximage.Premultiply(&c, p.space.Channels())
	out.Fill(area.Transform(s.userToPixels()).RoundOut(), c)
	return out
}

func renderTile(p *Primitive, s *Slot) *Surface {
	in := s.input(p, 0)
	if in == nil {
		return nil
	}
	tile, ok := s.PrimitiveArea(p.Input(0))
	if !ok {
		tile = *s.units.FilterArea
	}
	r := tile.Transform(s.userToPixels())
	return filter.Tile(in, filter.TileRect{X0: r.X0, Y0: r.Y0, X1: r.X1, Y1: r.Y1}, s.opts.pool())
}

func renderMerge(p *Primitive, s *Slot) *Surface {
	layers := make([]*Surface, 0, len(p.inputs))
	for i := range p.inputs {
		if in := s.input(p, i); in != nil {
			layers = append(layers, in)
		}
	}
	out := s.canvas(p.space)
	filter.MergeOver(out, layers, s.opts.pool())
	return out
}

func renderImage(e *Image, p *Primitive, s *Slot, area Rect) *Surface {
	out := s.canvas(p.space)
	if e.surface == nil || area.Empty() {
		return out
	}
	w, h := e.surface.Size()
	m := s.userToPixels().
		Multiply(Translate(area.X0, area.Y0)).
		Multiply(Scale(area.Width()/float64(w), area.Height()/float64(h)))
	e.surface.TransformTo(out, m.Aff3())
	return out
}

func renderDropShadow(e *DropShadow, p *Primitive, s *Slot) *Surface {
	in := s.input(p, 0)
	if in == nil {
		return nil
	}
	m := s.primitiveUnitsToPixels()
	v := m.TransformVector(Pt(e.dx, e.dy))
	d := filter.DropShadow{
		DeviationX: e.devX * m.ExpansionX(),
		DeviationY: e.devY * m.ExpansionY(),
		OffsetX:    v.X,
		OffsetY:    v.Y,
		Color:      paint(e.color, p.space),
		Quality:    s.opts.BlurQuality,
	}
	return d.Apply(in, s.opts.pool())
}

func renderComposite(e *Composite, p *Primitive, s *Slot) *Surface {
	in1, in2 := s.input(p, 0), s.input(p, 1)
	if in1 == nil || in2 == nil {
		return nil
	}
	if e.op == CompositeArithmetic {
		return filter.CompositeArithmetic(in1, in2, e.k, s.opts.pool())
	}
	return filter.Composite(in1, in2, e.op.porterDuff(), s.opts.pool())
}

func renderBlend(e *Blend, p *Primitive, s *Slot) *Surface {
	in1, in2 := s.input(p, 0), s.input(p, 1)
	if in1 == nil || in2 == nil {
		return nil
	}
	return filter.Blend(in1, in2, e.mode, s.opts.pool())
}

func renderColorMatrix(e *ColorMatrix, p *Primitive, s *Slot) *Surface {
	in := s.input(p, 0)
	if in == nil {
		return nil
	}
	if e.kind == ColorMatrixLuminanceToAlpha {
		return filter.LuminanceToAlpha(in, s.opts.pool())
	}
	return e.kernel().Apply(in, s.opts.pool())
}

func renderComponentTransfer(e *ComponentTransfer, p *Primitive, s *Slot) *Surface {
	in := s.input(p, 0)
	if in == nil {
		return nil
	}
	k := filter.ComponentTransfer{Funcs: e.funcs[:]}
	return k.Apply(in, s.opts.pool())
}

func renderMorphology(e *Morphology, p *Primitive, s *Slot) *Surface {
	in := s.input(p, 0)
	if in == nil {
		return nil
	}
	m := s.primitiveUnitsToPixels()
	k := filter.Morphology{Erode: e.erode, RadiusX: e.rx * m.ExpansionX(), RadiusY: e.ry * m.ExpansionY()}
	return k.Apply(in, s.opts.pool())
}

func renderConvolve(e *ConvolveMatrix, p *Primitive, s *Slot) *Surface {
	in := s.input(p, 0)
	if in == nil {
		return nil
	}
	k := e.kernel()
	if !k.Valid() {
		Logger().Warn("fx: malformed convolution kernel, passing input through",
			"order", [2]int{k.OrderX, k.OrderY}, "kernel", len(k.Kernel))
		return in
	}
	return k.Apply(in, s.opts.pool())
}

// channelIndex maps an RGBA channel to its index in a surface of space.
func channelIndex(ch Channel, space ColorSpace) int {
	if ch == ChannelA {
		return space.Channels()
	}
	return int(ch)
}

func renderDisplacement(e *DisplacementMap, p *Primitive, s *Slot) *Surface {
	in, dmap := s.input(p, 0), s.input(p, 1)
	if in == nil || dmap == nil {
		return nil
	}
	m := s.primitiveUnitsToPixels()
	k := filter.DisplacementMap{
		XChannel: channelIndex(e.xCh, dmap.Space()),
		YChannel: channelIndex(e.yCh, dmap.Space()),
		ScaleX:   e.scale * m.ExpansionX(),
		ScaleY:   e.scale * m.ExpansionY(),
	}
	return k.Apply(in, dmap, s.opts.pool())
}

func renderLighting(e *Lighting, p *Primitive, s *Slot) *Surface {
	in := s.input(p, 0)
	if in == nil {
		return nil
	}
	m := s.primitiveUnitsToPixels()
	scale := m.Descrim()
	light := e.light
	if light.Kind != filter.DistantLight {
		light.Position = lightPoint(light.Position, m, scale)
		light.PointsAt = lightPoint(light.PointsAt, m, scale)
	}
	k := filter.Lighting{
		Specular:     e.specular,
		SurfaceScale: e.surfaceScale * s.userToPixels().Descrim(),
		Constant:     e.constant,
		Exponent:     e.exponent,
		Color:        paint(e.color, p.space),
		Light:        light,
	}
	return k.Apply(in, s.opts.pool())
}

// lightPoint maps a light position from primitive units to slot pixels;
// z scales with the mean expansion.
func lightPoint(v filter.Vec3, m Matrix, scale float64) filter.Vec3 {
	q := m.TransformPoint(Pt(v[0], v[1]))
	return filter.Vec3{q.X, q.Y, v[2] * scale}
}

func renderTurbulence(e *Turbulence, p *Primitive, s *Slot, area Rect) *Surface {
	out := s.canvas(p.space)
	tile := area.Transform(s.units.UserToUnits(s.units.PrimitiveUnits))
	t := filter.NewTurbulence(e.params(tile, p.space.Total()))
	toUnits := s.primitiveUnitsToPixels().Invert()
	t.Render(out, 0, 0, toUnits.Aff3(), s.opts.pool())
	return out
}
