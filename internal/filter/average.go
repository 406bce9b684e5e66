package filter

import "github.com/gogpu/fx/internal/image"

// AverageColor returns the mean unpremultiplied color of src, alpha
// included. A non-nil mask weights each pixel by the mask's alpha (or its
// complement when invert is set). A zero total weight yields transparent
// black.
func AverageColor(src, mask *image.Surface, invert bool) image.Pixel {
	var sum image.Pixel
	total := 0.0
	w, h := src.Size()
	n := src.Channels()
	for y := range h {
		for x := range w {
			amount := 1.0
			if mask != nil {
				amount = mask.AlphaAt(x, y, image.EdgeZero)
				if invert {
					amount = 1 - amount
				}
			}
			if amount == 0 {
				continue
			}
			p := src.ColorAt(x, y, true, image.EdgeNoCheck)
			for c := range n {
				sum[c] += p[c] * amount
			}
			total += amount
		}
	}
	if total == 0 {
		return image.Pixel{}
	}
	for c := range n {
		sum[c] /= total
	}
	return sum
}
