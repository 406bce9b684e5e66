package image

import (
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"

	"github.com/gogpu/fx/internal/color"
)

// ErrEmptyImage is returned when a decoded image has no pixels.
var ErrEmptyImage = errors.New("image: empty image")

// FromImage copies img into a new sRGB surface. The image is read as
// non-premultiplied 8-bit color.
func FromImage(img image.Image, scale float64) (*Surface, error) {
	nrgba := imaging.Clone(img)
	b := nrgba.Bounds()
	s, err := New(b.Dx(), b.Dy(), scale, color.SRGB)
	if err != nil {
		if errors.Is(err, ErrInvalidDimensions) {
			return nil, ErrEmptyImage
		}
		return nil, err
	}

	for y := range s.height {
		for x := range s.width {
			i := nrgba.PixOffset(b.Min.X+x, b.Min.Y+y)
			px := nrgba.Pix[i : i+4 : i+4]
			if px[3] == 0 {
				continue
			}
			p := Pixel{
				float64(px[0]) / 255,
				float64(px[1]) / 255,
				float64(px[2]) / 255,
				float64(px[3]) / 255,
			}
			s.ColorTo(x, y, p, false)
		}
	}
	return s, nil
}

// Image returns s as a non-premultiplied 8-bit sRGB image.
func (s *Surface) Image() *image.NRGBA {
	src := s
	if s.space != color.SRGB {
		src = s.Convert(color.SRGB)
	}
	out := image.NewNRGBA(s.Bounds())
	if src.pix == nil {
		return out
	}
	for y := range s.height {
		for x := range s.width {
			p := src.ColorAt(x, y, true, EdgeNoCheck)
			i := out.PixOffset(x, y)
			out.Pix[i+0] = color.Quantize8(p[0])
			out.Pix[i+1] = color.Quantize8(p[1])
			out.Pix[i+2] = color.Quantize8(p[2])
			out.Pix[i+3] = color.Quantize8(p[3])
		}
	}
	return out
}

// Decode reads an encoded image (PNG, JPEG, GIF, TIFF or BMP) into an sRGB
// surface.
func Decode(r io.Reader) (*Surface, error) {
	img, err := imaging.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("image: decode: %w", err)
	}
	return FromImage(img, 1)
}

// Encode writes s in the given format.
func (s *Surface) Encode(w io.Writer, format imaging.Format) error {
	if err := imaging.Encode(w, s.Image(), format); err != nil {
		return fmt.Errorf("image: encode %s: %w", format, err)
	}
	return nil
}

// Load decodes the image file at path.
func Load(path string) (*Surface, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("image: open: %w", err)
	}
	return FromImage(img, 1)
}

// Save encodes s to path, picking the format from the file extension.
func (s *Surface) Save(path string) error {
	if err := imaging.Save(s.Image(), path); err != nil {
		return fmt.Errorf("image: save: %w", err)
	}
	return nil
}
