package fx

import (
	"image"
	"math"
	"testing"
)

func matrixApprox(a, b Matrix, eps float64) bool {
	return math.Abs(a.A-b.A) < eps && math.Abs(a.B-b.B) < eps && math.Abs(a.C-b.C) < eps &&
		math.Abs(a.D-b.D) < eps && math.Abs(a.E-b.E) < eps && math.Abs(a.F-b.F) < eps
}

func TestIsTranslation(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
		want bool
	}{
		{"identity", Identity(), true},
		{"pure translation", Translate(10, 20), true},
		{"negative translation", Translate(-5, -3), true},
		{"uniform scale", Scale(2, 2), false},
		{"scale 1,1", Scale(1, 1), true},
		{"rotation 90deg", Rotate(math.Pi / 2), false},
		{"scale + translate", Scale(2, 3).Multiply(Translate(10, 20)), false},
		{"zero matrix", Matrix{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.IsTranslation(); got != tt.want {
				t.Errorf("Matrix%+v.IsTranslation() = %v, want %v", tt.m, got, tt.want)
			}
		})
	}
}

func TestMultiplyOrder(t *testing.T) {
	// Scale(2,2).Multiply(Translate(1,0)) translates first.
	m := Scale(2, 2).Multiply(Translate(1, 0))
	got := m.TransformPoint(Pt(0, 0))
	if got != Pt(2, 0) {
		t.Errorf("TransformPoint = %v, want (2,0)", got)
	}
}

func TestInvert(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
	}{
		{"translate", Translate(3, -4)},
		{"scale", Scale(2, 0.5)},
		{"rotate", Rotate(0.7)},
		{"compound", Translate(5, 6).Multiply(Rotate(1.1)).Multiply(Scale(3, 2))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.Multiply(tt.m.Invert())
			if !matrixApprox(got, Identity(), 1e-12) {
				t.Errorf("m * m^-1 = %+v, want identity", got)
			}
		})
	}

	if got := Scale(0, 1).Invert(); !got.IsIdentity() {
		t.Errorf("singular Invert() = %+v, want identity", got)
	}
}

func TestExpansionAndDescrim(t *testing.T) {
	const eps = 1e-12
	tests := []struct {
		name       string
		m          Matrix
		ex, ey, ds float64
	}{
		{"identity", Identity(), 1, 1, 1},
		{"scale", Scale(3, 2), 3, 2, math.Sqrt(6)},
		{"rotate", Rotate(0.4), 1, 1, 1},
		{"scaled rotation", Rotate(0.4).Multiply(Scale(2, 2)), 2, 2, 2},
		{"translation only", Translate(50, 50), 1, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.ExpansionX(); math.Abs(got-tt.ex) > eps {
				t.Errorf("ExpansionX() = %v, want %v", got, tt.ex)
			}
			if got := tt.m.ExpansionY(); math.Abs(got-tt.ey) > eps {
				t.Errorf("ExpansionY() = %v, want %v", got, tt.ey)
			}
			if got := tt.m.Descrim(); math.Abs(got-tt.ds) > eps {
				t.Errorf("Descrim() = %v, want %v", got, tt.ds)
			}
		})
	}
}

func TestAff3Layout(t *testing.T) {
	m := Matrix{A: 1, B: 2, C: 3, D: 4, E: 5, F: 6}
	a := m.Aff3()
	for i, want := range []float64{1, 2, 3, 4, 5, 6} {
		if a[i] != want {
			t.Errorf("Aff3()[%d] = %v, want %v", i, a[i], want)
		}
	}
}

// =============================================================================
// Rect
// =============================================================================

func TestRectTransform(t *testing.T) {
	r := XYWH(0, 0, 10, 20)
	got := r.Transform(Rotate(math.Pi / 2))
	// (x,y) -> (-y,x): the box becomes [-20,0] x [0,10].
	want := Rect{-20, 0, 0, 10}
	const eps = 1e-9
	if math.Abs(got.X0-want.X0) > eps || math.Abs(got.Y0-want.Y0) > eps ||
		math.Abs(got.X1-want.X1) > eps || math.Abs(got.Y1-want.Y1) > eps {
		t.Errorf("Transform() = %+v, want %+v", got, want)
	}
}

func TestRectSetOps(t *testing.T) {
	a := XYWH(0, 0, 10, 10)
	b := XYWH(5, 5, 10, 10)

	if got := a.Intersect(b); got != (Rect{5, 5, 10, 10}) {
		t.Errorf("Intersect() = %+v", got)
	}
	if got := a.Union(b); got != (Rect{0, 0, 15, 15}) {
		t.Errorf("Union() = %+v", got)
	}
	if !a.Intersect(XYWH(20, 20, 1, 1)).Empty() {
		t.Error("disjoint Intersect() should be empty")
	}
	if got := (Rect{0.2, -0.5, 3.1, 4}).RoundOut(); got != image.Rect(0, -1, 4, 4) {
		t.Errorf("RoundOut() = %v", got)
	}
}
