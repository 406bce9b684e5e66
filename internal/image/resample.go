package image

import (
	"image"
	stdcolor "image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/gogpu/fx/internal/color"
)

// planeView exposes up to three color channels of a Surface plus its alpha
// as a premultiplied RGBA64 image, so x/image/draw can resample surfaces of
// any channel count one plane at a time.
type planeView struct {
	s     *Surface
	first int // first color channel mapped to R
	n     int // color channels mapped, 0 to 3
}

var _ draw.Image = planeView{}

// planes returns the views that together cover every channel of s.
func planes(s *Surface) []planeView {
	nc := s.space.Channels()
	if nc == 0 {
		return []planeView{{s: s}}
	}
	var views []planeView
	for first := 0; first < nc; first += 3 {
		views = append(views, planeView{s: s, first: first, n: min(3, nc-first)})
	}
	return views
}

func (v planeView) ColorModel() stdcolor.Model { return stdcolor.RGBA64Model }

func (v planeView) Bounds() image.Rectangle { return v.s.Bounds() }

func (v planeView) At(x, y int) stdcolor.Color { return v.RGBA64At(x, y) }

func (v planeView) RGBA64At(x, y int) stdcolor.RGBA64 {
	if !(image.Point{x, y}.In(v.s.Bounds())) || v.s.pix == nil {
		return stdcolor.RGBA64{}
	}
	off := v.s.Index(x, y)
	pix := v.s.pix
	var ch [3]uint16
	for i := range v.n {
		ch[i] = to16(pix[off+v.first+i])
	}
	return stdcolor.RGBA64{R: ch[0], G: ch[1], B: ch[2], A: to16(pix[off+v.s.space.Channels()])}
}

func (v planeView) Set(x, y int, c stdcolor.Color) {
	v.SetRGBA64(x, y, stdcolor.RGBA64Model.Convert(c).(stdcolor.RGBA64))
}

func (v planeView) SetRGBA64(x, y int, c stdcolor.RGBA64) {
	if !(image.Point{x, y}.In(v.s.Bounds())) {
		return
	}
	off := v.s.Index(x, y)
	pix := v.s.Pix()
	ch := [3]uint16{c.R, c.G, c.B}
	integer := v.s.space.IsInteger()
	for i := range v.n {
		pix[off+v.first+i] = from16(ch[i], integer)
	}
	pix[off+v.s.space.Channels()] = from16(c.A, integer)
}

func to16(v float32) uint16 {
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return 0xffff
	}
	return uint16(v*0xffff + 0.5)
}

func from16(v uint16, integer bool) float32 {
	f := float64(v) / 0xffff
	if integer {
		f = color.Round8(f)
	}
	return float32(f)
}

// Resize returns a copy of s resampled to width x height with bilinear
// filtering.
func (s *Surface) Resize(width, height int) *Surface {
	dst := s.Similar(width, height)
	if s.pix == nil {
		return dst
	}
	src := planes(s)
	for i, view := range planes(dst) {
		draw.ApproxBiLinear.Scale(view, dst.Bounds(), src[i], s.Bounds(), draw.Src, nil)
	}
	return dst
}

// TransformTo paints s into dst through the affine m, which maps source
// pixel coordinates to destination pixel coordinates. Destination pixels
// outside the transformed source are left untouched. s is converted to
// dst's color space first if needed.
func (s *Surface) TransformTo(dst *Surface, m f64.Aff3) {
	src := s
	if src.space != dst.space {
		src = s.Convert(dst.space)
	}
	if src.pix == nil {
		return
	}
	from := planes(src)
	for i, view := range planes(dst) {
		draw.BiLinear.Transform(view, m, from[i], src.Bounds(), draw.Src, nil)
	}
}
