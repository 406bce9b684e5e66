package fx

import (
	"errors"
	"image"
	"math"
)

// ErrNilSource is returned by Render when no source surface is given.
var ErrNilSource = errors.New("fx: nil source surface")

// Filter is an ordered chain of primitives plus the geometry of its
// effects region. A Filter is built once and may be rendered many times;
// it must not be modified while a render is running.
type Filter struct {
	primitives []*Primitive

	x, y, width, height Length

	filterUnits    UnitType
	primitiveUnits UnitType

	// Explicit resolution; xPixels <= 0 means automatic.
	xPixels, yPixels float64

	output SlotID
	names  map[string]SlotID
}

// New creates an empty filter with the default region of -10%, -10%,
// 120%, 120% in bounding box units and user space primitive units.
func New(opts ...Option) *Filter {
	f := &Filter{
		x:              Pct(-10),
		y:              Pct(-10),
		width:          Pct(120),
		height:         Pct(120),
		filterUnits:    ObjectBoundingBox,
		primitiveUnits: UserSpaceOnUse,
		xPixels:        -1,
		yPixels:        -1,
		output:         SlotNotSet,
		names:          make(map[string]SlotID),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Add appends p to the chain and returns it.
func (f *Filter) Add(p *Primitive) *Primitive {
	f.primitives = append(f.primitives, p)
	return p
}

// AddEffect wraps e in a default primitive, appends it and returns it.
func (f *Filter) AddEffect(e Effect) *Primitive {
	return f.Add(NewPrimitive(e))
}

// Primitives returns the chain in evaluation order.
func (f *Filter) Primitives() []*Primitive { return f.primitives }

// ClearPrimitives empties the chain.
func (f *Filter) ClearPrimitives() { f.primitives = nil }

// NamedSlot returns the user slot for a result name, allocating the next
// free id on first use.
func (f *Filter) NamedSlot(name string) SlotID {
	if id, ok := f.names[name]; ok {
		return id
	}
	id := SlotID(len(f.names))
	f.names[name] = id
	return id
}

// SetRegion sets the filter effects region. Unset lengths keep their
// current value.
func (f *Filter) SetRegion(x, y, width, height Length) {
	for _, l := range []struct {
		dst *Length
		v   Length
	}{{&f.x, x}, {&f.y, y}, {&f.width, width}, {&f.height, height}} {
		if l.v.IsSet() {
			*l.dst = l.v
		}
	}
}

// SetFilterUnits sets the units of the filter region.
func (f *Filter) SetFilterUnits(u UnitType) { f.filterUnits = u }

// SetPrimitiveUnits sets the units of primitive attributes.
func (f *Filter) SetPrimitiveUnits(u UnitType) { f.primitiveUnits = u }

// SetResolution sets an explicit resolution in pixels. y of zero derives
// the height from the region's aspect ratio. Non-positive x or negative y
// are ignored.
func (f *Filter) SetResolution(x, y float64) {
	if !(x > 0) || !(y >= 0) {
		Logger().Warn("fx: invalid filter resolution", "x", x, "y", y)
		return
	}
	f.xPixels, f.yPixels = x, y
}

// ResetResolution restores the automatic resolution.
func (f *Filter) ResetResolution() { f.xPixels, f.yPixels = -1, -1 }

// SetOutput selects the slot whose content Render returns. SlotNotSet
// returns the last output.
func (f *Filter) SetOutput(id SlotID) { f.output = id }

// EffectArea returns the filter effects region in user space. In bounding
// box units it needs bbox; without one there is no area. In user space
// numbers are absolute and percentages are read against bbox.
func (f *Filter) EffectArea(bbox *Rect) (Rect, bool) {
	var ref Rect
	if bbox != nil {
		ref = *bbox
	} else if f.filterUnits == ObjectBoundingBox {
		return Rect{}, false
	}
	pos := func(l Length, origin, extent float64) float64 {
		if f.filterUnits == UserSpaceOnUse && l.Unit == LengthNumber {
			return l.Value
		}
		return origin + l.fraction()*extent
	}
	area := XYWH(
		pos(f.x, ref.X0, ref.Width()),
		pos(f.y, ref.Y0, ref.Height()),
		f.width.resolve(f.filterUnits, ref.Width()),
		f.height.resolve(f.filterUnits, ref.Height()),
	)
	if area.Empty() || !finite(area.X0, area.Y0, area.X1, area.Y1) {
		return Rect{}, false
	}
	return area, true
}

// resolutionLimit returns the largest automatic resolution of a quality
// tier, or -1 for no limit.
func resolutionLimit(q Quality) float64 {
	switch q {
	case QualityWorst:
		return 32
	case QualityWorse:
		return 64
	case QualityNormal:
		return 256
	case QualityBetter:
		return 1024
	default:
		return -1
	}
}

// Resolution returns the pixel size of the filter effects area under ctm.
// An explicit resolution wins; otherwise the lengths of the transformed
// area edges are used, capped by the quality tier with the aspect ratio
// kept. Positive results are at least one pixel per axis.
func (f *Filter) Resolution(area Rect, ctm Matrix, q Quality) (float64, float64) {
	if f.xPixels > 0 {
		y := f.yPixels
		if !(y > 0) {
			y = f.xPixels * area.Height() / area.Width()
		}
		return f.xPixels, minPixel(y)
	}
	origin := ctm.TransformPoint(area.Min())
	i := ctm.TransformPoint(Pt(area.X1, area.Y0)).Sub(origin)
	j := ctm.TransformPoint(Pt(area.X0, area.Y1)).Sub(origin)
	ilen, jlen := math.Hypot(i.X, i.Y), math.Hypot(j.X, j.Y)
	return capResolution(ilen, jlen, resolutionLimit(q))
}

// capResolution scales (x, y) down so neither exceeds limit, keeping the
// aspect ratio. A non-positive limit leaves them unchanged. The shorter
// axis never drops below one pixel.
func capResolution(x, y, limit float64) (float64, float64) {
	if limit <= 0 || (x <= limit && y <= limit) {
		return minPixel(x), minPixel(y)
	}
	aspect := x / y
	if x > y {
		return limit, minPixel(limit / aspect)
	}
	return minPixel(limit * aspect), limit
}

// minPixel raises a positive sub-pixel resolution to 1. Zero and invalid
// values are kept so degenerate transforms still render nothing.
func minPixel(v float64) float64 {
	if v > 0 && v < 1 {
		return 1
	}
	return v
}

// AreaEnlarge grows r, a display-space pixel rectangle, by the reach of
// every primitive under ctm.
func (f *Filter) AreaEnlarge(r image.Rectangle, ctm Matrix) image.Rectangle {
	for _, p := range f.primitives {
		r = p.AreaEnlarge(r, ctm)
	}
	return r
}

// Complexity estimates the cost per pixel of the chain relative to a copy.
func (f *Filter) Complexity(ctm Matrix) float64 {
	factor := 1.0
	for _, p := range f.primitives {
		factor += p.Complexity(ctm) - 1
	}
	return factor
}

// UsesInput reports whether any primitive reads slot id.
func (f *Filter) UsesInput(id SlotID) bool {
	for _, p := range f.primitives {
		if p.UsesInput(id) {
			return true
		}
	}
	return false
}

// RenderInput is everything one render needs besides the chain.
type RenderInput struct {
	// Source is the rendered item. Its pixels cover RenderArea.
	Source *Surface
	// RenderArea is the display-space rectangle of Source. An empty
	// rectangle means Source's own bounds at the origin.
	RenderArea Rect
	// CTM maps the item's user space to display space.
	CTM Matrix
	// ItemBBox is the item's user-space bounding box, if it has one.
	ItemBBox *Rect

	// Optional inputs, covering RenderArea like Source.
	Background  *Surface
	FillPaint   *Surface
	StrokePaint *Surface

	// Options; nil uses DefaultDrawingOptions.
	Options *DrawingOptions
}

// Render runs the chain over in.Source and returns the filtered image,
// shaped and tagged like the source. A chain that cannot produce output
// (no primitives, no effects area, zero resolution) yields a transparent
// image. The only error is a missing source.
func (f *Filter) Render(in RenderInput) (*Surface, error) {
	if in.Source == nil {
		return nil, ErrNilSource
	}
	opts := DefaultDrawingOptions()
	if in.Options != nil {
		opts = *in.Options
	}
	opts.normalize()
	transparent := in.Source.Similar(0, 0)

	if len(f.primitives) == 0 {
		return transparent, nil
	}
	area, ok := f.EffectArea(in.ItemBBox)
	if !ok {
		Logger().Debug("fx: no filter effects area")
		return transparent, nil
	}
	rx, ry := f.Resolution(area, in.CTM, opts.FilterQuality)
	rx, ry = capResolution(rx, ry, float64(opts.MaxResolution))
	if !(rx > 0 && ry > 0) {
		Logger().Debug("fx: zero filter resolution", "x", rx, "y", ry)
		return transparent, nil
	}
	// A capped automatic resolution renders at reduced scale like an
	// explicit one.
	automatic := f.xPixels <= 0
	if automatic {
		bx, by := f.Resolution(area, in.CTM, QualityBest)
		automatic = rx >= bx && ry >= by
	}

	renderArea := in.RenderArea
	if renderArea.Empty() {
		w, h := in.Source.Size()
		k := in.Source.Scale()
		renderArea = XYWH(0, 0, float64(w)/k, float64(h)/k)
	}
	units := &Units{
		FilterUnits:    f.filterUnits,
		PrimitiveUnits: f.primitiveUnits,
		CTM:            in.CTM,
		ItemBBox:       in.ItemBBox,
		FilterArea:     &area,
		RenderArea:     &renderArea,
		ResolutionX:    rx,
		ResolutionY:    ry,
		Automatic:      automatic,
	}
	d2pb := units.DisplayToPB()
	for _, p := range f.primitives {
		if !p.CanHandleAffine(d2pb) {
			units.Parallel = true
			break
		}
	}
	Logger().Debug("fx: render",
		"primitives", len(f.primitives),
		"resolution", [2]float64{rx, ry},
		"parallel", units.Parallel)

	slot := NewSlot(units, opts)
	slot.Set(SlotSourceGraphic, in.Source)
	if f.UsesInput(SlotSourceAlpha) {
		slot.SetAlpha(SlotSourceGraphic, SlotSourceAlpha)
	}
	if in.Background != nil {
		slot.Set(SlotBackgroundImage, in.Background)
		if f.UsesInput(SlotBackgroundAlpha) {
			slot.SetAlpha(SlotBackgroundImage, SlotBackgroundAlpha)
		}
	}
	if in.FillPaint != nil {
		slot.Set(SlotFillPaint, in.FillPaint)
	}
	if in.StrokePaint != nil {
		slot.Set(SlotStrokePaint, in.StrokePaint)
	}

	for _, p := range f.primitives {
		renderPrimitive(p, slot)
	}

	out := slot.Result(f.output)
	if out == nil {
		return transparent, nil
	}
	if out == in.Source {
		out = out.Clone()
	}
	return out, nil
}
