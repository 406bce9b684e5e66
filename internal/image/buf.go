// Package image provides the pixel buffers filter primitives read and write.
//
// A Surface stores premultiplied samples as one flat float32 array with
// Space().Total() interleaved channels per pixel: the color channels of its
// color space followed by alpha. Storage is allocated lazily on first access.
// Integer color spaces quantize every written value to 8-bit steps so that a
// Surface tagged sRGB behaves like a conventional 8-bit bitmap.
package image

import (
	"errors"
	"image"

	"github.com/gogpu/fx/internal/color"
)

// Common errors for surface operations.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("image: invalid dimensions")

	// ErrInvalidScale is returned when the device scale is not positive.
	ErrInvalidScale = errors.New("image: invalid device scale")

	// ErrInvalidSpace is returned when the color space is not recognized.
	ErrInvalidSpace = errors.New("image: invalid color space")
)

// Surface is a rectangular pixel buffer tagged with a color space.
//
// Thread safety: concurrent writes to disjoint pixels are safe once the
// storage is realized (call Pix first). Realization itself is not
// synchronized.
type Surface struct {
	width  int
	height int
	scale  float64
	space  color.Space
	pix    []float32
}

// New creates a surface without realizing its storage.
func New(width, height int, scale float64, space color.Space) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if !(scale > 0) {
		return nil, ErrInvalidScale
	}
	if !space.IsValid() {
		return nil, ErrInvalidSpace
	}
	return &Surface{width: width, height: height, scale: scale, space: space}, nil
}

// Similar returns an empty surface with the same scale and color space.
// A non-positive width or height keeps the current value.
func (s *Surface) Similar(width, height int) *Surface {
	return s.SimilarIn(width, height, s.space)
}

// SimilarIn is like Similar but tags the new surface with space.
func (s *Surface) SimilarIn(width, height int, space color.Space) *Surface {
	if width <= 0 {
		width = s.width
	}
	if height <= 0 {
		height = s.height
	}
	return &Surface{width: width, height: height, scale: s.scale, space: space}
}

// Width returns the width in pixels.
func (s *Surface) Width() int { return s.width }

// Height returns the height in pixels.
func (s *Surface) Height() int { return s.height }

// Size returns the width and height in pixels.
func (s *Surface) Size() (int, int) { return s.width, s.height }

// Bounds returns the pixel rectangle (0,0)-(w,h).
func (s *Surface) Bounds() image.Rectangle { return image.Rect(0, 0, s.width, s.height) }

// Scale returns the device scale.
func (s *Surface) Scale() float64 { return s.scale }

// Space returns the color space.
func (s *Surface) Space() color.Space { return s.space }

// Channels returns the number of stored channels per pixel, alpha included.
func (s *Surface) Channels() int { return s.space.Total() }

// Stride returns the number of samples per row.
func (s *Surface) Stride() int { return s.width * s.space.Total() }

// IsRealized reports whether backing storage has been allocated.
func (s *Surface) IsRealized() bool { return s.pix != nil }

// Pix returns the backing samples, allocating them on first use.
func (s *Surface) Pix() []float32 {
	if s.pix == nil {
		s.pix = make([]float32, s.width*s.height*s.space.Total())
	}
	return s.pix
}

// Index returns the offset of pixel (x, y) in Pix.
func (s *Surface) Index(x, y int) int {
	return (y*s.width + x) * s.space.Total()
}

// Row returns the samples of row y.
func (s *Surface) Row(y int) []float32 {
	stride := s.Stride()
	return s.Pix()[y*stride : (y+1)*stride]
}

// Clone returns a deep copy. An unrealized surface clones to an unrealized
// surface.
func (s *Surface) Clone() *Surface {
	c := s.Similar(0, 0)
	if s.pix != nil {
		c.pix = make([]float32, len(s.pix))
		copy(c.pix, s.pix)
	}
	return c
}

// Clear makes every pixel transparent.
func (s *Surface) Clear() {
	if s.pix == nil {
		return
	}
	clear(s.pix)
}

// Fill sets every pixel of r (clipped to the surface) to the premultiplied
// pixel p.
func (s *Surface) Fill(r image.Rectangle, p Pixel) {
	r = r.Intersect(s.Bounds())
	if r.Empty() {
		return
	}
	n := s.space.Total()
	var px [color.MaxChannels]float32
	q := s.sanitize(p)
	for c := range n {
		px[c] = float32(q[c])
	}
	pix := s.Pix()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		off := s.Index(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x++ {
			copy(pix[off:off+n], px[:n])
			off += n
		}
	}
}

// Draw copies src into s with src's origin placed at (dx, dy). Pixels of src
// that fall outside s are dropped. Both surfaces must share a color space.
func (s *Surface) Draw(src *Surface, dx, dy int) {
	if src.space != s.space || !src.IsRealized() {
		return
	}
	r := src.Bounds().Add(image.Pt(dx, dy)).Intersect(s.Bounds())
	if r.Empty() {
		return
	}
	n := s.space.Total()
	dst := s.Pix()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		d := s.Index(r.Min.X, y)
		o := src.Index(r.Min.X-dx, y-dy)
		copy(dst[d:d+r.Dx()*n], src.pix[o:o+r.Dx()*n])
	}
}

// ClipTo makes every pixel outside r transparent.
func (s *Surface) ClipTo(r image.Rectangle) {
	if s.pix == nil {
		return
	}
	b := s.Bounds()
	keep := r.Intersect(b)
	n := s.space.Total()
	for y := 0; y < s.height; y++ {
		row := s.Row(y)
		if y < keep.Min.Y || y >= keep.Max.Y || keep.Empty() {
			clear(row)
			continue
		}
		clear(row[:keep.Min.X*n])
		clear(row[keep.Max.X*n:])
	}
}
