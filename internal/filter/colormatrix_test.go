package filter

import (
	"testing"

	"github.com/gogpu/fx/internal/color"
	"github.com/gogpu/fx/internal/image"
	"github.com/gogpu/fx/internal/parallel"
)

func TestColorMatrixIdentity(t *testing.T) {
	s := randomSurface(t, 10, 10, color.LinearRGB, false)
	if d := maxDiff(NewIdentityColorMatrix().Apply(s, nil), s); d > 1e-6 {
		t.Errorf("identity changed pixels by %v", d)
	}
}

func TestColorMatrixPresets(t *testing.T) {
	tests := []struct {
		name string
		m    *ColorMatrix
		in   image.Pixel
		want image.Pixel
	}{
		{"grayscale red", NewGrayscale(), rgba(1, 0, 0, 1), rgba(0.213, 0.213, 0.213, 1)},
		{"saturate one", NewSaturate(1), rgba(0.1, 0.5, 0.9, 1), rgba(0.1, 0.5, 0.9, 1)},
		{"saturate clamps", NewSaturate(5), rgba(0.1, 0.5, 0.9, 1), rgba(0.1, 0.5, 0.9, 1)},
		{"invert", NewInvert(), rgba(0.2, 0.4, 0.6, 0.5), rgba(0.8, 0.6, 0.4, 0.5)},
		{"hue rotate zero", NewHueRotate(0), rgba(0.3, 0.6, 0.9, 1), rgba(0.3, 0.6, 0.9, 1)},
		{"hue rotate gray", NewHueRotate(120), rgba(0.5, 0.5, 0.5, 1), rgba(0.5, 0.5, 0.5, 1)},
		{"sepia white", NewSepia(), rgba(1, 1, 1, 1), rgba(1, 1, 0.937, 1)},
		{"wrong length", NewColorMatrix([]float64{1, 2, 3}), rgba(0.3, 0.2, 0.1, 1), rgba(0.3, 0.2, 0.1, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := filledSurface(t, 2, 2, color.LinearRGB, tt.in)
			got := tt.m.Apply(s, nil).ColorAt(0, 0, true, image.EdgeNoCheck)
			if !pixelApproxEqual(got, tt.want, 4, 1e-5) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestColorMatrixOffsetColumn(t *testing.T) {
	values := []float64{
		0, 0, 0, 0, 0.25,
		0, 1, 0, 0, 0,
		0, 0, 1, 0, 0,
		0, 0, 0, 1, 0,
	}
	s := filledSurface(t, 1, 1, color.LinearRGB, rgba(0.9, 0.4, 0.2, 1))
	got := NewColorMatrix(values).Apply(s, nil).ColorAt(0, 0, true, image.EdgeNoCheck)
	if want := rgba(0.25, 0.4, 0.2, 1); !pixelApproxEqual(got, want, 4, 1e-6) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestColorMatrixMultiply(t *testing.T) {
	m := NewInvert().Multiply(NewInvert())
	for i, v := range m.Matrix {
		if absf(v-identityMatrix[i]) > 1e-12 {
			t.Fatalf("invert*invert = %v, want identity", m.Matrix)
		}
	}

	s := randomSurface(t, 6, 6, color.LinearRGB, true)
	a, b := NewSepia(), NewSaturate(0.3)
	chained := b.Apply(a.Apply(s, nil), nil)
	combined := a.Multiply(b).Apply(s, nil)
	// Sepia can clamp between the two steps; compare only pixels that
	// stayed in range.
	for y := range 6 {
		for x := range 6 {
			mid := a.Apply(s, nil).ColorAt(x, y, true, image.EdgeNoCheck)
			if mid[0] >= 1 || mid[1] >= 1 {
				continue
			}
			p, q := chained.ColorAt(x, y, true, image.EdgeNoCheck), combined.ColorAt(x, y, true, image.EdgeNoCheck)
			if !pixelApproxEqual(p, q, 4, 1e-5) {
				t.Fatalf("(%d,%d): chained %v, combined %v", x, y, p, q)
			}
		}
	}
}

func TestColorMatrixConvertsNonRGB(t *testing.T) {
	s := filledSurface(t, 2, 2, color.CMYK, image.Pixel{0, 0, 0, 0, 1})
	out := NewIdentityColorMatrix().Apply(s, nil)
	if out.Space() != color.LinearRGB {
		t.Fatalf("space = %v, want linearRGB", out.Space())
	}
	if got := out.ColorAt(0, 0, true, image.EdgeNoCheck); !pixelApproxEqual(got, rgba(1, 1, 1, 1), 4, 1e-6) {
		t.Errorf("white CMYK became %v", got)
	}
}

func TestLuminanceToAlpha(t *testing.T) {
	s := newSurface(t, 3, 1, color.LinearRGB)
	s.ColorTo(0, 0, rgba(1, 1, 1, 1), false)
	s.ColorTo(1, 0, rgba(1, 0, 0, 1), false)
	s.ColorTo(2, 0, rgba(1, 1, 1, 0.5), false)
	out := LuminanceToAlpha(s, nil)
	if out.Space() != color.Alpha {
		t.Fatalf("space = %v, want alpha", out.Space())
	}
	want := []float64{1, 0.2125, 1}
	for x, w := range want {
		if a := out.AlphaAt(x, 0, image.EdgeNoCheck); absf(a-w) > 1.0/255 {
			t.Errorf("x=%d: alpha %v, want %v", x, a, w)
		}
	}
}

func TestColorMatrixParallel(t *testing.T) {
	pool := parallel.NewWorkerPool(3)
	defer pool.Close()
	s := randomSurface(t, 64, 64, color.SRGB, false)
	m := NewHueRotate(45)
	if d := maxDiff(m.Apply(s, nil), m.Apply(s, pool)); d != 0 {
		t.Errorf("parallel differs by %v", d)
	}
}

func BenchmarkColorMatrix(b *testing.B) {
	s := randomSurface(b, 256, 256, color.LinearRGB, false)
	m := NewSepia()
	for b.Loop() {
		m.Apply(s, nil)
	}
}
