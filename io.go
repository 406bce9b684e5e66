package fx

import (
	"fmt"
	"io"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/gogpu/fx/internal/filter"
	fximage "github.com/gogpu/fx/internal/image"
)

// Format names an encoded image format.
type Format = imaging.Format

// Encoded image formats.
const (
	PNG  = imaging.PNG
	JPEG = imaging.JPEG
)

// LoadSurface decodes the image file at path into an sRGB surface.
func LoadSurface(path string) (*Surface, error) {
	return fximage.Load(path)
}

// DecodeSurface decodes an image stream into an sRGB surface.
func DecodeSurface(r io.Reader) (*Surface, error) {
	return fximage.Decode(r)
}

// AverageColor returns the mean unpremultiplied color of s.
func AverageColor(s *Surface) Pixel {
	return filter.AverageColor(s, nil, false)
}

// ParseQuality maps a tier name such as "best" or "normal" to its Quality.
func ParseQuality(name string) (Quality, error) {
	for q := QualityWorst; q <= QualityBest; q++ {
		if strings.EqualFold(q.String(), name) {
			return q, nil
		}
	}
	return QualityBest, fmt.Errorf("fx: unknown quality %q", name)
}
