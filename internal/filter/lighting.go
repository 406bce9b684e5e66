package filter

import (
	"math"

	"github.com/gogpu/fx/internal/image"
	"github.com/gogpu/fx/internal/parallel"
)

// LightKind selects the light source model.
type LightKind uint8

const (
	// DistantLight shines from infinitely far away in a fixed direction.
	DistantLight LightKind = iota
	// PointLight shines from a position in all directions.
	PointLight
	// SpotLight shines from a position towards a target inside a cone.
	SpotLight
)

// String returns the light kind name.
func (k LightKind) String() string {
	switch k {
	case DistantLight:
		return "distant"
	case PointLight:
		return "point"
	case SpotLight:
		return "spot"
	default:
		return "unknown"
	}
}

// Vec3 is a point or direction in the lighting space: x and y in pixels,
// z up out of the surface.
type Vec3 [3]float64

func (v Vec3) dot(o Vec3) float64 { return v[0]*o[0] + v[1]*o[1] + v[2]*o[2] }

func (v Vec3) normalize() Vec3 {
	n := math.Sqrt(v.dot(v))
	if n == 0 {
		return v
	}
	return Vec3{v[0] / n, v[1] / n, v[2] / n}
}

// Light describes a light source. Positions are in pixels of the surface
// being lit, offset by the Lighting origin.
type Light struct {
	Kind LightKind

	// Distant light angles in degrees.
	Azimuth, Elevation float64

	// Point and spot light position.
	Position Vec3

	// Spot light target, falloff exponent and cone half-angle in degrees.
	// A cone angle of NaN or >= 90 leaves the cone unlimited.
	PointsAt          Vec3
	SpotExponent      float64
	LimitingConeAngle float64
}

// Lighting evaluates the Phong model against a bump map taken from the
// alpha channel of its input:
//
//	diffuse:  C = Constant * (N·L) * color, alpha 1
//	specular: C = Constant * (N·H)^Exponent * color, alpha max(C)
type Lighting struct {
	Specular     bool
	SurfaceScale float64
	Constant     float64
	Exponent     float64
	// Color is the unpremultiplied light color in the output color space.
	Color image.Pixel
	Light Light
	// OriginX and OriginY are the lighting-space coordinates of pixel (0,0).
	OriginX, OriginY float64
}

var eyeVector = Vec3{0, 0, 1}

// Apply returns the lit surface, in the color space of src.
func (f *Lighting) Apply(src *image.Surface, pool *parallel.WorkerPool) *image.Surface {
	dst := src.Similar(0, 0)
	w, h := src.Size()
	nc := src.Space().Channels()
	dst.Pix()

	exp := 1.0
	if f.Specular {
		exp = f.Exponent
	}

	var distant, spotDir Vec3
	cosCone := -1.0
	switch f.Light.Kind {
	case DistantLight:
		az := f.Light.Azimuth * math.Pi / 180
		el := f.Light.Elevation * math.Pi / 180
		distant = Vec3{math.Cos(az) * math.Cos(el), math.Sin(az) * math.Cos(el), math.Sin(el)}
	case SpotLight:
		p, t := f.Light.Position, f.Light.PointsAt
		spotDir = Vec3{t[0] - p[0], t[1] - p[1], t[2] - p[2]}.normalize()
		if a := f.Light.LimitingConeAngle; a < 90 && a > -90 {
			cosCone = math.Cos(a * math.Pi / 180)
		}
	}

	parallel.Rows(pool, h, w, 0, func(y, _ int, _ []float64) {
		for x := range w {
			light := distant
			color := f.Color
			if f.Light.Kind != DistantLight {
				p := f.Light.Position
				z := f.SurfaceScale * src.AlphaAt(x, y, image.EdgeNoCheck)
				light = Vec3{p[0] - (f.OriginX + float64(x)), p[1] - (f.OriginY + float64(y)), p[2] - z}.normalize()
			}
			if f.Light.Kind == SpotLight {
				s := -light.dot(spotDir)
				if s <= cosCone {
					s = 0
				} else {
					s = math.Pow(s, f.Light.SpotExponent)
				}
				for c := range nc {
					color[c] *= s
				}
			}

			if f.Specular {
				light = Vec3{light[0] + eyeVector[0], light[1] + eyeVector[1], light[2] + eyeVector[2]}.normalize()
			}
			normal := surfaceNormal(src, x, y, f.SurfaceScale)
			k := 0.0
			if sp := normal.dot(light); sp > 0 {
				k = f.Constant * math.Pow(sp, exp)
			}

			var out image.Pixel
			if !f.Specular {
				out[nc] = 1
			}
			for c := range nc {
				out[c] = clamp01(k * color[c])
				if f.Specular {
					out[nc] = max(out[nc], out[c])
				}
			}
			if f.Specular {
				dst.ColorTo(x, y, out, true)
			} else {
				dst.ColorTo(x, y, out, false)
			}
		}
	})
	return dst
}

// surfaceNormal returns the unit normal of the alpha height map at (x, y)
// using Sobel differences. Near the border the missing row or column is
// dropped and the weights renormalized, which reproduces the edge kernels
// of feDiffuseLighting.
func surfaceNormal(src *image.Surface, x, y int, scale float64) Vec3 {
	w, h := src.Size()
	xl, xr := max(x-1, 0), min(x+1, w-1)
	yt, yb := max(y-1, 0), min(y+1, h-1)
	a := func(px, py int) float64 { return src.AlphaAt(px, py, image.EdgeNoCheck) }

	var nx, ny float64
	if xr > xl {
		sum, weight := 0.0, 0.0
		for row := yt; row <= yb; row++ {
			k := 1.0
			if row == y {
				k = 2
			}
			sum += k * (a(xr, row) - a(xl, row))
			weight += k
		}
		nx = -scale * 2 / (weight * float64(xr-xl)) * sum
	}
	if yb > yt {
		sum, weight := 0.0, 0.0
		for col := xl; col <= xr; col++ {
			k := 1.0
			if col == x {
				k = 2
			}
			sum += k * (a(col, yb) - a(col, yt))
			weight += k
		}
		ny = -scale * 2 / (weight * float64(yb-yt)) * sum
	}
	return Vec3{nx, ny, 1}.normalize()
}
