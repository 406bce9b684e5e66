package image

import "github.com/gogpu/fx/internal/color"

// Convert returns a new surface holding s in space. The receiver is never
// modified; converting to the current space returns a copy.
func (s *Surface) Convert(space color.Space) *Surface {
	if space == s.space {
		return s.Clone()
	}
	dst := s.SimilarIn(0, 0, space)
	if s.pix == nil {
		return dst
	}

	snc := s.space.Channels()
	dnc := space.Channels()
	var in, out [color.MaxChannels]float64
	for y := range s.height {
		for x := range s.width {
			p := s.ColorAt(x, y, true, EdgeNoCheck)
			a := p[snc]
			if a <= 0 {
				continue
			}
			copy(in[:snc], p[:snc])
			color.Convert(s.space, space, out[:dnc], in[:snc])
			var q Pixel
			copy(q[:dnc], out[:dnc])
			q[dnc] = a
			dst.ColorTo(x, y, q, false)
		}
	}
	return dst
}

// ExtractAlpha returns an Alpha-space surface holding the alpha channel of s.
func (s *Surface) ExtractAlpha() *Surface {
	if s.space == color.Alpha {
		return s.Clone()
	}
	dst := s.SimilarIn(0, 0, color.Alpha)
	if s.pix == nil {
		return dst
	}
	n := s.space.Total()
	src := s.pix
	out := dst.Pix()
	for i := range out {
		out[i] = float32(color.Round8(float64(src[i*n+n-1])))
	}
	return dst
}
