package fx

import "math"

// UnitType selects the coordinate system of filter or primitive
// attributes.
type UnitType uint8

const (
	// ObjectBoundingBox expresses values as fractions of the filtered
	// item's bounding box.
	ObjectBoundingBox UnitType = iota
	// UserSpaceOnUse expresses values in the item's user space.
	UserSpaceOnUse
)

// String returns the SVG attribute value.
func (u UnitType) String() string {
	switch u {
	case ObjectBoundingBox:
		return "objectBoundingBox"
	case UserSpaceOnUse:
		return "userSpaceOnUse"
	default:
		return "unknown"
	}
}

// LengthUnit tells how a Length value is read.
type LengthUnit uint8

const (
	// LengthUnset marks an absent attribute.
	LengthUnset LengthUnit = iota
	// LengthNumber is a plain number.
	LengthNumber
	// LengthPercent is a percentage of a reference extent.
	LengthPercent
)

// Length is a region attribute: a number, a percentage, or unset.
type Length struct {
	Value float64
	Unit  LengthUnit
}

// Num returns a plain number length.
func Num(v float64) Length { return Length{Value: v, Unit: LengthNumber} }

// Pct returns a percentage length; Pct(50) is half the reference extent.
func Pct(v float64) Length { return Length{Value: v, Unit: LengthPercent} }

// IsSet reports whether the length carries a value.
func (l Length) IsSet() bool { return l.Unit != LengthUnset }

// fraction returns the length as a multiple of extent when read as a
// bounding box fraction: percentages divide by 100, numbers are fractions
// already.
func (l Length) fraction() float64 {
	if l.Unit == LengthPercent {
		return l.Value / 100
	}
	return l.Value
}

// resolve returns the length in user space. In bounding box units both
// numbers and percentages scale extent; in user space only percentages do.
func (l Length) resolve(u UnitType, extent float64) float64 {
	if u == ObjectBoundingBox || l.Unit == LengthPercent {
		return l.fraction() * extent
	}
	return l.Value
}

// Units holds the coordinate systems of one render: the user space of the
// filtered item, the filter's pixel block (pb) space, display space and the
// slot surfaces.
type Units struct {
	FilterUnits    UnitType
	PrimitiveUnits UnitType

	// CTM maps user space to display space.
	CTM Matrix

	// ItemBBox is the item's bounding box in user space; nil when the item
	// has none.
	ItemBBox *Rect
	// FilterArea is the filter effects region in user space.
	FilterArea *Rect
	// RenderArea is the display-space rectangle covered by the source.
	RenderArea *Rect

	ResolutionX, ResolutionY float64

	// Parallel forces pb space to stay axis-aligned with user space.
	Parallel bool
	// Automatic is set when no explicit filterRes was given.
	Automatic bool
}

// UserToPB maps user space to pixel block space. With an automatic
// resolution and no parallel requirement pb space is display space.
func (u *Units) UserToPB() Matrix {
	if u.ResolutionX <= 0 || u.ResolutionY <= 0 || u.FilterArea == nil {
		return Identity()
	}
	m := u.CTM
	if u.Parallel || !u.Automatic {
		m.A = u.ResolutionX / u.FilterArea.Width()
		m.B = 0
		m.D = 0
		m.E = u.ResolutionY / u.FilterArea.Height()
	}
	return m
}

// unitsToUser maps the given units to user space.
func (u *Units) unitsToUser(t UnitType) Matrix {
	if t != ObjectBoundingBox || u.ItemBBox == nil {
		return Identity()
	}
	b := u.ItemBBox
	return Translate(b.X0, b.Y0).Multiply(Scale(b.Width(), b.Height()))
}

// UserToUnits maps user space into the given units. Bounding box units map
// the item's box to the unit square.
func (u *Units) UserToUnits(t UnitType) Matrix {
	return u.unitsToUser(t).Invert()
}

// FilterUnitsToPB maps filter units to pb space.
func (u *Units) FilterUnitsToPB() Matrix {
	return u.UserToPB().Multiply(u.unitsToUser(u.FilterUnits))
}

// PrimitiveUnitsToPB maps primitive units to pb space.
func (u *Units) PrimitiveUnitsToPB() Matrix {
	return u.UserToPB().Multiply(u.unitsToUser(u.PrimitiveUnits))
}

// DisplayToPB maps display space to pb space.
func (u *Units) DisplayToPB() Matrix {
	return u.UserToPB().Multiply(u.CTM.Invert())
}

// PBToDisplay maps pb space to display space.
func (u *Units) PBToDisplay() Matrix {
	return u.CTM.Multiply(u.UserToPB().Invert())
}

// SlotBox returns the pb-space rectangle covered by slot surfaces: the
// render area mapped into pb space, with its size rounded up.
func (u *Units) SlotBox() (Rect, bool) {
	if u.RenderArea == nil {
		return Rect{}, false
	}
	r := u.RenderArea.Transform(u.DisplayToPB())
	return XYWH(r.X0, r.Y0, math.Ceil(r.Width()), math.Ceil(r.Height())), true
}

// ItemToFilter maps display coordinates relative to the render area origin
// to pb coordinates relative to the slot box origin. It exists only when pb
// space is not a translation of display space, which is when the source
// must be resampled before filtering.
func (u *Units) ItemToFilter() (Matrix, bool) {
	sbox, ok := u.SlotBox()
	if !ok {
		return Matrix{}, false
	}
	d2pb := u.DisplayToPB()
	if d2pb.IsTranslation() {
		return Matrix{}, false
	}
	return Translate(-sbox.X0, -sbox.Y0).
		Multiply(d2pb).
		Multiply(Translate(u.RenderArea.X0, u.RenderArea.Y0)), true
}
