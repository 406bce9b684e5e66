package fx

import (
	stdcolor "image/color"
	"math"

	"github.com/gogpu/fx/internal/filter"
	"github.com/gogpu/fx/internal/image"
)

// Morphology erodes or dilates its input. Radii are in primitive units.
type Morphology struct {
	erode  bool
	rx, ry float64
}

// NewErode creates an erode with the given radii.
func NewErode(rx, ry float64) *Morphology {
	m := &Morphology{erode: true}
	m.SetRadius(rx, ry)
	return m
}

// NewDilate creates a dilate with the given radii.
func NewDilate(rx, ry float64) *Morphology {
	m := &Morphology{}
	m.SetRadius(rx, ry)
	return m
}

// SetErode selects erode (true) or dilate (false).
func (m *Morphology) SetErode(erode bool) { m.erode = erode }

// SetRadius sets the radii. Negative or non-finite values disable the
// effect, which then passes its input through.
func (m *Morphology) SetRadius(rx, ry float64) {
	if !(rx >= 0) || !(ry >= 0) || !finite(rx, ry) {
		Logger().Warn("fx: invalid morphology radius", "x", rx, "y", ry)
		rx, ry = 0, 0
	}
	m.rx, m.ry = rx, ry
}

// EdgeMode decides how ConvolveMatrix reads beyond its input.
type EdgeMode = image.EdgeMode

// Convolution edge modes.
const (
	EdgeDuplicate = image.EdgeExtend
	EdgeWrap      = image.EdgeWrap
	EdgeNone      = image.EdgeZero
)

// ConvolveMatrix convolves its input with a kernel in pixels.
type ConvolveMatrix struct {
	k filter.ConvolveMatrix
	// targets are -1 until set, meaning the kernel center.
	targetX, targetY int
}

// NewConvolveMatrix creates a convolution with an orderX by orderY kernel
// in row-major order.
func NewConvolveMatrix(orderX, orderY int, kernel []float64) *ConvolveMatrix {
	c := &ConvolveMatrix{targetX: -1, targetY: -1}
	c.k.Edge = EdgeDuplicate
	c.k.OrderX, c.k.OrderY = orderX, orderY
	c.SetKernelMatrix(kernel)
	return c
}

// SetOrder sets the kernel size.
func (c *ConvolveMatrix) SetOrder(x, y int) { c.k.OrderX, c.k.OrderY = x, y }

// SetKernelMatrix sets the coefficients. A kernel that does not match the
// order leaves the effect passing its input through.
func (c *ConvolveMatrix) SetKernelMatrix(kernel []float64) {
	c.k.Kernel = append([]float64(nil), kernel...)
}

// SetTarget sets the kernel position aligned with each output pixel.
func (c *ConvolveMatrix) SetTarget(x, y int) { c.targetX, c.targetY = x, y }

// SetDivisor sets the divisor; zero means the kernel sum.
func (c *ConvolveMatrix) SetDivisor(d float64) {
	if !finite(d) {
		d = 0
	}
	c.k.Divisor = d
}

// SetBias sets the value added to every result.
func (c *ConvolveMatrix) SetBias(b float64) {
	if !finite(b) {
		b = 0
	}
	c.k.Bias = b
}

// SetEdgeMode sets how pixels outside the input are read.
func (c *ConvolveMatrix) SetEdgeMode(e EdgeMode) { c.k.Edge = e }

// SetPreserveAlpha keeps the input alpha and convolves only color.
func (c *ConvolveMatrix) SetPreserveAlpha(v bool) { c.k.PreserveAlpha = v }

// kernel returns the filter with defaulted targets.
func (c *ConvolveMatrix) kernel() filter.ConvolveMatrix {
	k := c.k
	k.TargetX, k.TargetY = c.targetX, c.targetY
	if k.TargetX < 0 {
		k.TargetX = k.OrderX / 2
	}
	if k.TargetY < 0 {
		k.TargetY = k.OrderY / 2
	}
	return k
}

// DisplacementMap moves the pixels of its first input by the values of its
// second. The scale is in primitive units.
type DisplacementMap struct {
	scale    float64
	xCh, yCh Channel
}

// NewDisplacementMap creates a displacement reading x from xCh and y from
// yCh.
func NewDisplacementMap(scale float64, xCh, yCh Channel) *DisplacementMap {
	d := &DisplacementMap{}
	d.SetScale(scale)
	d.SetChannelSelector(xCh, yCh)
	return d
}

// SetScale sets the displacement scale.
func (d *DisplacementMap) SetScale(s float64) {
	if !finite(s) {
		Logger().Warn("fx: invalid displacement scale", "scale", s)
		s = 0
	}
	d.scale = s
}

// SetChannelSelector selects the map channels driving each axis.
func (d *DisplacementMap) SetChannelSelector(x, y Channel) {
	d.xCh, d.yCh = min(x, ChannelA), min(y, ChannelA)
}

// Lighting lights the alpha bump map of its input with diffuse or specular
// reflection. Light positions are in primitive units.
type Lighting struct {
	specular     bool
	surfaceScale float64
	constant     float64
	exponent     float64
	color        stdcolor.Color
	light        filter.Light
}

// NewDiffuseLighting creates a white diffuse lighting.
func NewDiffuseLighting() *Lighting {
	return &Lighting{surfaceScale: 1, constant: 1, exponent: 1, color: stdcolor.White}
}

// NewSpecularLighting creates a white specular lighting.
func NewSpecularLighting() *Lighting {
	l := NewDiffuseLighting()
	l.specular = true
	return l
}

// SetSurfaceScale sets the height of an opaque pixel.
func (l *Lighting) SetSurfaceScale(s float64) {
	if finite(s) {
		l.surfaceScale = s
	}
}

// SetConstant sets kd for diffuse or ks for specular lighting.
func (l *Lighting) SetConstant(k float64) {
	if !(k >= 0) || !finite(k) {
		Logger().Warn("fx: invalid lighting constant", "k", k)
		return
	}
	l.constant = k
}

// SetSpecularExponent sets the shininess, clamped to [1,128].
func (l *Lighting) SetSpecularExponent(e float64) {
	if !finite(e) {
		return
	}
	l.exponent = min(max(e, 1), 128)
}

// SetLightingColor sets the sRGB light color.
func (l *Lighting) SetLightingColor(c stdcolor.Color) { l.color = c }

// SetDistantLight uses a light at infinity, angles in degrees.
func (l *Lighting) SetDistantLight(azimuth, elevation float64) {
	l.light = filter.Light{Kind: filter.DistantLight, Azimuth: azimuth, Elevation: elevation}
}

// SetPointLight uses a light at (x, y, z).
func (l *Lighting) SetPointLight(x, y, z float64) {
	l.light = filter.Light{Kind: filter.PointLight, Position: filter.Vec3{x, y, z}}
}

// SetSpotLight uses a light at pos pointing at target. A cone angle of NaN
// leaves the cone unlimited.
func (l *Lighting) SetSpotLight(pos, target [3]float64, exponent, coneAngle float64) {
	l.light = filter.Light{
		Kind:              filter.SpotLight,
		Position:          pos,
		PointsAt:          target,
		SpotExponent:      exponent,
		LimitingConeAngle: coneAngle,
	}
}

// TurbulenceType selects turbulence or fractal noise.
type TurbulenceType uint8

const (
	TurbulenceNoise TurbulenceType = iota
	FractalNoise
)

// Turbulence synthesizes Perlin noise. Frequencies are in primitive units.
type Turbulence struct {
	seed         float64
	freqX, freqY float64
	octaves      int
	kind         TurbulenceType
	stitch       bool
}

// NewTurbulence creates a noise generator.
func NewTurbulence(kind TurbulenceType, freqX, freqY float64, octaves int, seed float64) *Turbulence {
	t := &Turbulence{kind: kind, seed: seed}
	t.SetBaseFrequency(freqX, freqY)
	t.SetOctaves(octaves)
	return t
}

// SetBaseFrequency sets the base frequencies. Negative values are rejected.
func (t *Turbulence) SetBaseFrequency(x, y float64) {
	if !(x >= 0) || !(y >= 0) || !finite(x, y) {
		Logger().Warn("fx: invalid turbulence frequency", "x", x, "y", y)
		return
	}
	t.freqX, t.freqY = x, y
}

// SetOctaves sets the number of octaves, limited to filter.MaxOctaves.
func (t *Turbulence) SetOctaves(n int) { t.octaves = min(max(n, 0), filter.MaxOctaves) }

// SetSeed sets the random seed; it is rounded to an integer.
func (t *Turbulence) SetSeed(seed float64) { t.seed = seed }

// SetStitchTiles makes the noise periodic across the primitive subregion.
func (t *Turbulence) SetStitchTiles(v bool) { t.stitch = v }

// SetType selects turbulence or fractal noise.
func (t *Turbulence) SetType(kind TurbulenceType) { t.kind = kind }

// params returns the generator parameters for a stitching tile.
func (t *Turbulence) params(tile Rect, channels int) filter.TurbulenceParams {
	seed := 0.0
	if finite(t.seed) {
		seed = math.Round(min(max(t.seed, math.MinInt32), math.MaxInt32))
	}
	return filter.TurbulenceParams{
		Seed:         int64(seed),
		BaseFreqX:    t.freqX,
		BaseFreqY:    t.freqY,
		Octaves:      t.octaves,
		FractalNoise: t.kind == FractalNoise,
		StitchTiles:  t.stitch,
		Tile:         [4]float64{tile.X0, tile.Y0, tile.Width(), tile.Height()},
		Channels:     channels,
	}
}
