package image

import (
	"math"

	"github.com/gogpu/fx/internal/color"
)

// Pixel holds the channels of one pixel: color channels first, then alpha
// at index Space.Channels(). Unused trailing entries are zero.
type Pixel [color.MaxChannels]float64

// EdgeMode decides what an accessor returns for coordinates outside the
// surface.
type EdgeMode uint8

const (
	// EdgeNoCheck trusts the caller to stay in bounds.
	EdgeNoCheck EdgeMode = iota
	// EdgeExtend repeats the nearest edge pixel.
	EdgeExtend
	// EdgeWrap wraps around to the opposite edge.
	EdgeWrap
	// EdgeZero yields transparent black.
	EdgeZero
)

// String returns the edge mode name.
func (e EdgeMode) String() string {
	switch e {
	case EdgeNoCheck:
		return "NoCheck"
	case EdgeExtend:
		return "Extend"
	case EdgeWrap:
		return "Wrap"
	case EdgeZero:
		return "Zero"
	default:
		return "Unknown"
	}
}

// pos resolves (x, y) under edge. ok is false when the pixel reads as zero.
func (s *Surface) pos(x, y int, edge EdgeMode) (int, bool) {
	switch edge {
	case EdgeExtend:
		x = min(max(x, 0), s.width-1)
		y = min(max(y, 0), s.height-1)
	case EdgeWrap:
		x = wrap(x, s.width)
		y = wrap(y, s.height)
	case EdgeZero:
		if x < 0 || y < 0 || x >= s.width || y >= s.height {
			return 0, false
		}
	case EdgeNoCheck:
	}
	return s.Index(x, y), true
}

func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

// ColorAt returns the pixel at (x, y). With unpremultiply set the color
// channels are divided by alpha.
func (s *Surface) ColorAt(x, y int, unpremultiply bool, edge EdgeMode) Pixel {
	var p Pixel
	off, ok := s.pos(x, y, edge)
	if !ok || s.pix == nil {
		return p
	}
	n := s.space.Total()
	for c := range n {
		p[c] = float64(s.pix[off+c])
	}
	if unpremultiply {
		Unpremultiply(&p, n-1)
	}
	return p
}

// AlphaAt returns the alpha of the pixel at (x, y).
func (s *Surface) AlphaAt(x, y int, edge EdgeMode) float64 {
	off, ok := s.pos(x, y, edge)
	if !ok || s.pix == nil {
		return 0
	}
	return float64(s.pix[off+s.space.Channels()])
}

// ColorTo stores p at (x, y). If premultiplied is false the color channels
// are multiplied by alpha first. Values are clamped so the stored pixel is a
// valid premultiplied color, and quantized for integer spaces.
func (s *Surface) ColorTo(x, y int, p Pixel, premultiplied bool) {
	if !premultiplied {
		Premultiply(&p, s.space.Channels())
	}
	q := s.sanitize(p)
	off := s.Index(x, y)
	pix := s.Pix()
	for c := range s.space.Total() {
		pix[off+c] = float32(q[c])
	}
}

// AlphaTo sets only the alpha channel of (x, y), scaling the color channels
// so the pixel keeps its unpremultiplied color.
func (s *Surface) AlphaTo(x, y int, a float64) {
	p := s.ColorAt(x, y, true, EdgeNoCheck)
	p[s.space.Channels()] = a
	s.ColorTo(x, y, p, false)
}

// Sample returns the bilinear interpolation of the four pixels around the
// fractional position (x, y); integer positions hit pixels exactly.
func (s *Surface) Sample(x, y float64, unpremultiply bool, edge EdgeMode) Pixel {
	fx, fy := math.Floor(x), math.Floor(y)
	wx, wy := x-fx, y-fy
	x0, y0 := int(fx), int(fy)
	x1, y1 := int(math.Ceil(x)), int(math.Ceil(y))

	p00 := s.ColorAt(x0, y0, false, edge)
	p10 := s.ColorAt(x1, y0, false, edge)
	p01 := s.ColorAt(x0, y1, false, edge)
	p11 := s.ColorAt(x1, y1, false, edge)

	var p Pixel
	n := s.space.Total()
	for c := range n {
		top := p00[c] + (p10[c]-p00[c])*wx
		bottom := p01[c] + (p11[c]-p01[c])*wx
		p[c] = top + (bottom-top)*wy
	}
	if unpremultiply {
		Unpremultiply(&p, n-1)
	}
	return p
}

// sanitize clamps alpha to [0,1] and every color channel to [0,alpha],
// mapping NaN to zero, then quantizes for integer spaces.
func (s *Surface) sanitize(p Pixel) Pixel {
	nc := s.space.Channels()
	a := clamp01(p[nc])
	if s.space.IsInteger() {
		a = color.Round8(a)
	}
	p[nc] = a
	for c := range nc {
		v := p[c]
		if !(v > 0) {
			v = 0
		} else if v > a {
			v = a
		}
		if s.space.IsInteger() {
			v = color.Round8(v)
		}
		p[c] = v
	}
	return p
}

// Premultiply multiplies the first nc channels of p by the alpha at index nc.
func Premultiply(p *Pixel, nc int) {
	a := p[nc]
	for c := range nc {
		p[c] *= a
	}
}

// Unpremultiply divides the first nc channels of p by the alpha at index nc.
// Fully transparent pixels unpremultiply to black.
func Unpremultiply(p *Pixel, nc int) {
	a := p[nc]
	if a <= 0 {
		for c := range nc {
			p[c] = 0
		}
		return
	}
	inv := 1 / a
	for c := range nc {
		p[c] = min(p[c]*inv, 1)
	}
}

func clamp01(v float64) float64 {
	if !(v > 0) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
