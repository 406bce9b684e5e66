package filter

import (
	"math"
	"testing"

	"github.com/gogpu/fx/internal/color"
	"github.com/gogpu/fx/internal/image"
)

func overhead() Light {
	return Light{Kind: DistantLight, Azimuth: 0, Elevation: 90}
}

func TestDiffuseOverheadLight(t *testing.T) {
	src := filledSurface(t, 6, 6, color.LinearRGB, rgba(0, 0, 0, 0.7))
	f := &Lighting{
		SurfaceScale: 3,
		Constant:     1,
		Color:        rgba(1, 0.5, 0.25, 1),
		Light:        overhead(),
	}
	out := f.Apply(src, nil)
	for y := range 6 {
		for x := range 6 {
			got := out.ColorAt(x, y, true, image.EdgeNoCheck)
			if !pixelApproxEqual(got, rgba(1, 0.5, 0.25, 1), 4, 1e-6) {
				t.Fatalf("(%d,%d) = %v", x, y, got)
			}
		}
	}
}

func TestSpecularOverheadLight(t *testing.T) {
	src := filledSurface(t, 4, 4, color.LinearRGB, rgba(0, 0, 0, 1))
	f := &Lighting{
		Specular:     true,
		SurfaceScale: 1,
		Constant:     0.5,
		Exponent:     20,
		Color:        rgba(1, 1, 0, 1),
		Light:        overhead(),
	}
	got := f.Apply(src, nil).ColorAt(1, 1, false, image.EdgeNoCheck)
	// Alpha is the largest channel; colors stay premultiplied by it.
	if want := rgba(0.5, 0.5, 0, 0.5); !pixelApproxEqual(got, want, 4, 1e-6) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDiffuseLowLight(t *testing.T) {
	src := filledSurface(t, 4, 4, color.LinearRGB, rgba(0, 0, 0, 1))
	f := &Lighting{
		Constant: 2,
		Color:    rgba(0.5, 0.5, 0.5, 1),
		Light:    Light{Kind: DistantLight, Elevation: 30},
	}
	got := f.Apply(src, nil).ColorAt(2, 2, true, image.EdgeNoCheck)
	want := 2 * 0.5 * math.Sin(30*math.Pi/180)
	if absf(got[0]-want) > 1e-6 || got[3] != 1 {
		t.Errorf("got %v, want color %v with alpha 1", got, want)
	}
}

func TestSurfaceNormalRamp(t *testing.T) {
	s := newSurface(t, 11, 5, color.LinearRGB)
	for y := range 5 {
		for x := range 11 {
			s.ColorTo(x, y, rgba(0, 0, 0, float64(x)/10), true)
		}
	}
	want := Vec3{-1, 0, 1}.normalize()
	for _, pt := range [][2]int{{5, 2}, {0, 0}, {10, 4}, {0, 2}, {7, 0}} {
		n := surfaceNormal(s, pt[0], pt[1], 5)
		for i := range 3 {
			if absf(n[i]-want[i]) > 1e-5 {
				t.Errorf("normal at %v = %v, want %v", pt, n, want)
				break
			}
		}
	}
}

func TestPointLightFalloff(t *testing.T) {
	src := filledSurface(t, 21, 21, color.LinearRGB, rgba(0, 0, 0, 1))
	f := &Lighting{
		Constant: 1,
		Color:    rgba(1, 1, 1, 1),
		Light:    Light{Kind: PointLight, Position: Vec3{10, 10, 5}},
	}
	out := f.Apply(src, nil)
	center := out.ColorAt(10, 10, true, image.EdgeNoCheck)[0]
	corner := out.ColorAt(0, 0, true, image.EdgeNoCheck)[0]
	if absf(center-1) > 1e-6 {
		t.Errorf("center = %v, want 1", center)
	}
	if !(corner < center) {
		t.Errorf("corner %v not darker than center %v", corner, center)
	}
}

func TestPointLightOrigin(t *testing.T) {
	src := filledSurface(t, 8, 8, color.LinearRGB, rgba(0, 0, 0, 1))
	f := &Lighting{
		Constant: 1,
		Color:    rgba(1, 1, 1, 1),
		Light:    Light{Kind: PointLight, Position: Vec3{13, 12, 4}},
		OriginX:  10, OriginY: 10,
	}
	out := f.Apply(src, nil)
	if v := out.ColorAt(3, 2, true, image.EdgeNoCheck)[0]; absf(v-1) > 1e-6 {
		t.Errorf("pixel under the light = %v, want 1", v)
	}
}

func TestSpotLightCone(t *testing.T) {
	src := filledSurface(t, 21, 21, color.LinearRGB, rgba(0, 0, 0, 1))
	f := &Lighting{
		Constant: 1,
		Color:    rgba(1, 1, 1, 1),
		Light: Light{
			Kind:              SpotLight,
			Position:          Vec3{10, 10, 10},
			PointsAt:          Vec3{10, 10, 0},
			SpotExponent:      1,
			LimitingConeAngle: 20,
		},
	}
	out := f.Apply(src, nil)
	if v := out.ColorAt(10, 10, true, image.EdgeNoCheck)[0]; absf(v-1) > 1e-6 {
		t.Errorf("center = %v, want 1", v)
	}
	// tan(20°)*10 ≈ 3.6 pixels.
	if v := out.ColorAt(16, 10, true, image.EdgeNoCheck)[0]; v != 0 {
		t.Errorf("outside the cone = %v, want 0", v)
	}
	if v := out.ColorAt(12, 10, true, image.EdgeNoCheck)[0]; !(v > 0) {
		t.Errorf("inside the cone = %v, want > 0", v)
	}

	f.Light.LimitingConeAngle = math.NaN()
	if v := f.Apply(src, nil).ColorAt(16, 10, true, image.EdgeNoCheck)[0]; !(v > 0) {
		t.Errorf("unlimited cone = %v, want > 0", v)
	}
}

func TestLightKindString(t *testing.T) {
	if SpotLight.String() != "spot" || LightKind(7).String() != "unknown" {
		t.Error("unexpected light kind names")
	}
}
