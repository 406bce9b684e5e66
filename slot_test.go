package fx

import (
	"testing"
)

func newTestSlot(t *testing.T) (*Slot, *Surface) {
	t.Helper()
	src := patternSurface(t, 8, 6, false)
	s := NewSlot(testUnits(8, 6), DefaultDrawingOptions())
	s.Set(SlotSourceGraphic, src)
	return s, src
}

func TestSlotLastOut(t *testing.T) {
	s, src := newTestSlot(t)

	if got := s.Get(SlotNotSet); got != src {
		t.Fatal("Get(NotSet) should start at the source graphic")
	}

	a := src.Similar(0, 0)
	s.Set(SlotNotSet, a)
	if got := s.Get(SlotUnnamed); got != a {
		t.Error("Set(NotSet) should store to the unnamed slot")
	}
	if got := s.Get(SlotNotSet); got != a {
		t.Error("unnamed output should become the last output")
	}

	b := src.Similar(0, 0)
	s.Set(3, b)
	if got := s.Get(SlotNotSet); got != b {
		t.Error("user slot should become the last output")
	}

	s.Set(SlotFillPaint, src.Similar(0, 0))
	s.Set(SlotBackgroundImage, src.Similar(0, 0))
	if got := s.Get(SlotNotSet); got != b {
		t.Error("reserved slots must not become the last output")
	}

	if got := s.Get(7); got != nil {
		t.Error("unset slot should read nil")
	}
}

func TestSlotGetIn(t *testing.T) {
	s, src := newTestSlot(t)

	if got := s.GetIn(SlotSourceGraphic, SRGB); got != src {
		t.Error("GetIn in the stored space should return the stored surface")
	}
	lin := s.GetIn(SlotSourceGraphic, LinearRGB)
	if lin == src || lin.Space() != LinearRGB {
		t.Fatalf("GetIn(LinearRGB) = %v space, want a converted surface", lin.Space())
	}
	if stored := s.Get(SlotSourceGraphic); stored != src || stored.Space() != SRGB {
		t.Errorf("GetIn replaced the stored surface (space %v)", stored.Space())
	}
	if again := s.GetIn(SlotSourceGraphic, LinearRGB); again == lin {
		t.Error("a second GetIn returned the earlier copy")
	}
	if got := s.GetIn(42, LinearRGB); got != nil {
		t.Error("GetIn of a missing slot should be nil")
	}
}

func TestSlotGetCopy(t *testing.T) {
	s, src := newTestSlot(t)

	c := s.GetCopy(SlotSourceGraphic)
	if c == src {
		t.Fatal("GetCopy returned the stored surface")
	}
	if d := maxSurfaceDiff(t, c, src); d != 0 {
		t.Errorf("copy differs by %v", d)
	}
	c.Clear()
	if src.AlphaAt(1, 1, EdgeNone) == 0 {
		t.Error("clearing the copy changed the source")
	}

	ci := s.GetCopyIn(SlotSourceGraphic, CMYK)
	if ci.Space() != CMYK {
		t.Errorf("GetCopyIn space = %v, want CMYK", ci.Space())
	}
	if s.Get(SlotSourceGraphic) != src {
		t.Error("GetCopyIn must not replace the stored surface")
	}
	if s.GetCopy(9) != nil || s.GetCopyIn(9, SRGB) != nil {
		t.Error("copies of a missing slot should be nil")
	}
}

func TestSlotSetAlpha(t *testing.T) {
	s, src := newTestSlot(t)
	last := s.Get(SlotNotSet)

	s.SetAlpha(SlotSourceGraphic, SlotSourceAlpha)
	first := s.Get(SlotSourceAlpha)
	s.SetAlpha(SlotSourceGraphic, SlotSourceAlpha)
	second := s.Get(SlotSourceAlpha)

	if first.Space() != Alpha {
		t.Fatalf("alpha slot space = %v, want alpha", first.Space())
	}
	if d := maxSurfaceDiff(t, first, second); d != 0 {
		t.Errorf("repeated SetAlpha differs by %v", d)
	}
	for y := range src.Height() {
		for x := range src.Width() {
			if got, want := first.AlphaAt(x, y, EdgeNone), src.AlphaAt(x, y, EdgeNone); got != want {
				t.Fatalf("alpha(%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
	if s.Get(SlotNotSet) != last {
		t.Error("SetAlpha must not change the last output")
	}

	before := s.SlotCount()
	s.SetAlpha(SlotBackgroundImage, SlotBackgroundAlpha)
	if s.SlotCount() != before || s.Get(SlotBackgroundAlpha) != nil {
		t.Error("SetAlpha of a missing slot should be a no-op")
	}
}

func TestSlotPrimitiveArea(t *testing.T) {
	s, _ := newTestSlot(t)
	r := XYWH(1, 2, 3, 4)

	s.SetPrimitiveArea(SlotNotSet, r)
	if got, ok := s.PrimitiveArea(SlotUnnamed); !ok || got != r {
		t.Errorf("PrimitiveArea(unnamed) = %+v, %v", got, ok)
	}
	if _, ok := s.PrimitiveArea(SlotNotSet); ok {
		t.Error("NotSet should read the last output, which has no area yet")
	}
	s.Set(SlotNotSet, s.Get(SlotSourceGraphic).Similar(0, 0))
	if got, ok := s.PrimitiveArea(SlotNotSet); !ok || got != r {
		t.Errorf("PrimitiveArea(NotSet) = %+v, %v after an unnamed write", got, ok)
	}
}

func TestSlotResultConvertsToSourceSpace(t *testing.T) {
	s, src := newTestSlot(t)
	lin := s.GetCopyIn(SlotSourceGraphic, LinearRGB)
	s.Set(SlotNotSet, lin)

	out := s.Result(SlotNotSet)
	if out.Space() != SRGB {
		t.Errorf("Result space = %v, want sRGB", out.Space())
	}
	if out.Width() != src.Width() || out.Height() != src.Height() {
		t.Errorf("Result size = %dx%d", out.Width(), out.Height())
	}
	if s.Result(11) != nil {
		t.Error("Result of an empty slot should be nil")
	}
}

func TestSlotIDString(t *testing.T) {
	tests := []struct {
		id   SlotID
		want string
	}{
		{SlotSourceGraphic, "SourceGraphic"},
		{SlotSourceAlpha, "SourceAlpha"},
		{SlotBackgroundImage, "BackgroundImage"},
		{SlotUnnamed, "unnamed"},
		{SlotNotSet, "unset"},
		{4, "4"},
	}
	for _, tt := range tests {
		if got := tt.id.String(); got != tt.want {
			t.Errorf("SlotID(%d).String() = %q, want %q", int(tt.id), got, tt.want)
		}
	}
}
