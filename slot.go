package fx

import (
	"math"
	"strconv"

	"github.com/gogpu/fx/internal/color"
	"github.com/gogpu/fx/internal/image"
)

// SlotID names an intermediate image of a filter. User slots are
// non-negative and allocated by Filter.NamedSlot; the negative values are
// reserved.
type SlotID int

// Reserved slot ids.
const (
	SlotNotSet          SlotID = -1
	SlotSourceGraphic   SlotID = -2
	SlotSourceAlpha     SlotID = -3
	SlotBackgroundImage SlotID = -4
	SlotBackgroundAlpha SlotID = -5
	SlotFillPaint       SlotID = -6
	SlotStrokePaint     SlotID = -7
	// SlotResult holds the caller's untransformed source when the source
	// had to be resampled into pb space.
	SlotResult SlotID = -8
	// SlotUnnamed receives the output of primitives without a result name.
	SlotUnnamed SlotID = -9
)

// String returns the SVG keyword of reserved slots and the number of user
// slots.
func (id SlotID) String() string {
	switch id {
	case SlotNotSet:
		return "unset"
	case SlotSourceGraphic:
		return "SourceGraphic"
	case SlotSourceAlpha:
		return "SourceAlpha"
	case SlotBackgroundImage:
		return "BackgroundImage"
	case SlotBackgroundAlpha:
		return "BackgroundAlpha"
	case SlotFillPaint:
		return "FillPaint"
	case SlotStrokePaint:
		return "StrokePaint"
	case SlotResult:
		return "result"
	case SlotUnnamed:
		return "unnamed"
	default:
		return strconv.Itoa(int(id))
	}
}

// Slot is the table of intermediate surfaces of one render. It also records
// the user-space subregion of each output and the coordinate systems the
// primitives read.
type Slot struct {
	surfaces map[SlotID]*Surface
	areas    map[SlotID]Rect
	lastOut  SlotID

	// source is the caller's source surface, before any resampling or
	// conversion.
	source *Surface

	units *Units
	opts  DrawingOptions
}

// NewSlot creates an empty table. The last output starts as SourceGraphic.
func NewSlot(units *Units, opts DrawingOptions) *Slot {
	opts.normalize()
	return &Slot{
		surfaces: make(map[SlotID]*Surface),
		areas:    make(map[SlotID]Rect),
		lastOut:  SlotSourceGraphic,
		units:    units,
		opts:     opts,
	}
}

// Units returns the coordinate systems of the render.
func (s *Slot) Units() *Units { return s.units }

// Options returns the drawing options of the render.
func (s *Slot) Options() DrawingOptions { return s.opts }

// resolve maps NotSet to the last output.
func (s *Slot) resolve(id SlotID) SlotID {
	if id == SlotNotSet {
		return s.lastOut
	}
	return id
}

// Set stores surface under id. NotSet stores to the unnamed slot. User
// slots and the unnamed slot become the last output. A source or
// background set while pb space is rotated or skewed relative to display
// space is resampled into pb space; the original source is kept under
// SlotResult.
func (s *Slot) Set(id SlotID, surface *Surface) {
	if id == SlotNotSet {
		id = SlotUnnamed
	}
	if id == SlotSourceGraphic {
		s.source = surface
	}
	if surface != nil && (id == SlotSourceGraphic || id == SlotBackgroundImage) {
		if m, ok := s.itemToSlot(); ok {
			sbox, _ := s.units.SlotBox()
			w := int(math.Ceil(sbox.Width() * s.opts.DeviceScale))
			h := int(math.Ceil(sbox.Height() * s.opts.DeviceScale))
			warped := surface.Similar(w, h)
			surface.TransformTo(warped, m.Aff3())
			if id == SlotSourceGraphic {
				s.surfaces[SlotResult] = surface
			}
			surface = warped
		}
	}
	s.surfaces[id] = surface
	if id >= 0 || id == SlotUnnamed {
		s.lastOut = id
	}
}

// Get returns the surface stored under id, or nil. NotSet reads the last
// output.
func (s *Slot) Get(id SlotID) *Surface {
	return s.surfaces[s.resolve(id)]
}

// GetIn is Get converted to space. A surface already in space is returned
// as stored; otherwise a converted copy is returned and the table is left
// unchanged.
func (s *Slot) GetIn(id SlotID, space ColorSpace) *Surface {
	surface := s.Get(id)
	if surface == nil || surface.Space() == space {
		return surface
	}
	return surface.Convert(space)
}

// GetCopy returns a private copy of the surface under id, or nil.
func (s *Slot) GetCopy(id SlotID) *Surface {
	surface := s.Get(id)
	if surface == nil {
		return nil
	}
	return surface.Clone()
}

// GetCopyIn returns a private copy of the surface under id in space.
func (s *Slot) GetCopyIn(id SlotID, space ColorSpace) *Surface {
	surface := s.Get(id)
	if surface == nil {
		return nil
	}
	if surface.Space() == space {
		return surface.Clone()
	}
	return surface.Convert(space)
}

// SetAlpha stores the alpha of the surface under from into to. A missing
// source is logged and leaves to untouched.
func (s *Slot) SetAlpha(from, to SlotID) {
	surface := s.Get(from)
	if surface == nil {
		Logger().Warn("fx: alpha of missing slot", "from", from, "to", to)
		return
	}
	s.surfaces[to] = surface.ExtractAlpha()
}

// SlotCount returns the number of filled slots.
func (s *Slot) SlotCount() int {
	n := 0
	for _, surface := range s.surfaces {
		if surface != nil {
			n++
		}
	}
	return n
}

// SetPrimitiveArea records the user-space subregion of the output under id.
// NotSet records for the unnamed slot.
func (s *Slot) SetPrimitiveArea(id SlotID, r Rect) {
	if id == SlotNotSet {
		id = SlotUnnamed
	}
	s.areas[id] = r
}

// PrimitiveArea returns the subregion recorded for id. NotSet reads the
// last output.
func (s *Slot) PrimitiveArea(id SlotID) (Rect, bool) {
	r, ok := s.areas[s.resolve(id)]
	return r, ok
}

// Result returns the surface under id converted to the source's color
// space and mapped back to display space when the source was resampled.
func (s *Slot) Result(id SlotID) *Surface {
	space := color.SRGB
	if s.source != nil {
		space = s.source.Space()
	}
	result := s.GetIn(id, space)
	if result == nil {
		return nil
	}
	m, ok := s.itemToSlot()
	if !ok || s.source == nil {
		return result
	}
	out := s.source.Similar(0, 0)
	result.TransformTo(out, m.Invert().Aff3())
	return out
}

// holds reports whether surface is stored in any slot.
func (s *Slot) holds(surface *Surface) bool {
	for _, v := range s.surfaces {
		if v == surface {
			return true
		}
	}
	return false
}

// itemToSlot is Units.ItemToFilter in surface pixels.
func (s *Slot) itemToSlot() (Matrix, bool) {
	m, ok := s.units.ItemToFilter()
	if !ok {
		return Matrix{}, false
	}
	k := s.opts.DeviceScale
	return Scale(k, k).Multiply(m).Multiply(Scale(1/k, 1/k)), true
}

// userToPixels maps user space to slot surface pixels.
func (s *Slot) userToPixels() Matrix {
	return s.pbToPixels().Multiply(s.units.UserToPB())
}

// primitiveUnitsToPixels maps primitive units to slot surface pixels.
func (s *Slot) primitiveUnitsToPixels() Matrix {
	return s.pbToPixels().Multiply(s.units.PrimitiveUnitsToPB())
}

// pbToPixels maps pb space to slot surface pixels.
func (s *Slot) pbToPixels() Matrix {
	k := s.opts.DeviceScale
	m := Scale(k, k)
	if sbox, ok := s.units.SlotBox(); ok {
		m = m.Multiply(Translate(-sbox.X0, -sbox.Y0))
	}
	return m
}

// Surface is a premultiplied pixel buffer tagged with a color space.
type Surface = image.Surface

// Pixel holds the channels of one pixel, color first then alpha.
type Pixel = image.Pixel

// ColorSpace identifies the channel layout of a Surface.
type ColorSpace = color.Space

// Color spaces a Surface can hold.
const (
	SRGB      = color.SRGB
	LinearRGB = color.LinearRGB
	CMYK      = color.CMYK
	Alpha     = color.Alpha
)

// NewSurface creates a surface of the given size, device scale and color
// space.
func NewSurface(width, height int, scale float64, space ColorSpace) (*Surface, error) {
	return image.New(width, height, scale, space)
}
