package fx

import (
	"math"
	"testing"

	"github.com/gogpu/fx/internal/image"
)

func newTestSurface(t testing.TB, w, h int, space ColorSpace) *Surface {
	t.Helper()
	s, err := NewSurface(w, h, 1, space)
	if err != nil {
		t.Fatalf("NewSurface(%d, %d) = %v", w, h, err)
	}
	s.Pix()
	return s
}

// patternSurface returns an sRGB surface with a deterministic pattern of
// 8-bit colors. Opaque surfaces have alpha 1 everywhere.
func patternSurface(t testing.TB, w, h int, opaque bool) *Surface {
	t.Helper()
	s := newTestSurface(t, w, h, SRGB)
	for y := range h {
		for x := range w {
			a := 1.0
			if !opaque {
				a = float64((x*29+y*53)%256) / 255
			}
			p := Pixel{
				float64((x*37+y*11)%256) / 255,
				float64((x*5+y*71)%256) / 255,
				float64((x*97+y*3)%256) / 255,
				a,
			}
			s.ColorTo(x, y, p, false)
		}
	}
	return s
}

func maxSurfaceDiff(t testing.TB, a, b *Surface) float64 {
	t.Helper()
	if a.Width() != b.Width() || a.Height() != b.Height() || a.Space() != b.Space() {
		t.Fatalf("surface shape mismatch: %dx%d %v vs %dx%d %v",
			a.Width(), a.Height(), a.Space(), b.Width(), b.Height(), b.Space())
	}
	d := 0.0
	n := a.Channels()
	for y := range a.Height() {
		for x := range a.Width() {
			pa := a.ColorAt(x, y, false, image.EdgeNoCheck)
			pb := b.ColorAt(x, y, false, image.EdgeNoCheck)
			for c := range n {
				d = max(d, math.Abs(pa[c]-pb[c]))
			}
		}
	}
	return d
}

// bboxInput renders src as an item whose bounding box is exactly the
// source bounds, with an identity CTM.
func bboxInput(src *Surface) RenderInput {
	w, h := src.Size()
	bbox := XYWH(0, 0, float64(w), float64(h))
	return RenderInput{Source: src, CTM: Identity(), ItemBBox: &bbox}
}

// fullRegion covers exactly the item's bounding box.
func fullRegion() Option {
	return WithRegion(Pct(0), Pct(0), Pct(100), Pct(100))
}

// testUnits is an identity setup: user, pb and display space coincide over
// a w x h area.
func testUnits(w, h float64) *Units {
	area := XYWH(0, 0, w, h)
	bbox, render := area, area
	return &Units{
		FilterUnits:    ObjectBoundingBox,
		PrimitiveUnits: UserSpaceOnUse,
		CTM:            Identity(),
		ItemBBox:       &bbox,
		FilterArea:     &area,
		RenderArea:     &render,
		ResolutionX:    w,
		ResolutionY:    h,
		Automatic:      true,
	}
}
