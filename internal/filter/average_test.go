package filter

import (
	"image"
	"testing"

	"github.com/gogpu/fx/internal/color"
	fximage "github.com/gogpu/fx/internal/image"
)

func TestAverageColorUniform(t *testing.T) {
	s := filledSurface(t, 5, 5, color.LinearRGB, rgba(0.2, 0.4, 0.6, 0.8))
	got := AverageColor(s, nil, false)
	if !pixelApproxEqual(got, rgba(0.2, 0.4, 0.6, 0.8), 4, 1e-6) {
		t.Errorf("got %v", got)
	}
}

func TestAverageColorMasked(t *testing.T) {
	s := newSurface(t, 4, 2, color.LinearRGB)
	s.Fill(image.Rect(0, 0, 2, 2), rgba(1, 0, 0, 1))
	s.Fill(image.Rect(2, 0, 4, 2), rgba(0, 0, 1, 1))
	mask := newSurface(t, 4, 2, color.Alpha)
	mask.Fill(image.Rect(0, 0, 2, 2), fximage.Pixel{1})

	if got := AverageColor(s, mask, false); !pixelApproxEqual(got, rgba(1, 0, 0, 1), 4, 1e-9) {
		t.Errorf("masked = %v, want red", got)
	}
	if got := AverageColor(s, mask, true); !pixelApproxEqual(got, rgba(0, 0, 1, 1), 4, 1e-9) {
		t.Errorf("inverted mask = %v, want blue", got)
	}
	if got := AverageColor(s, nil, false); !pixelApproxEqual(got, rgba(0.5, 0, 0.5, 1), 4, 1e-9) {
		t.Errorf("unmasked = %v, want purple", got)
	}
}

func TestAverageColorNoWeight(t *testing.T) {
	s := filledSurface(t, 3, 3, color.LinearRGB, rgba(1, 1, 1, 1))
	mask := newSurface(t, 3, 3, color.Alpha)
	if got := AverageColor(s, mask, false); got != (fximage.Pixel{}) {
		t.Errorf("zero weight = %v, want transparent", got)
	}
}
