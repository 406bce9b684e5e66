package blend

// Lum returns the luminance of a color using BT.601 coefficients.
// Formula: Lum(r, g, b) = 0.30*r + 0.59*g + 0.11*b
func Lum(r, g, b float64) float64 {
	return 0.30*r + 0.59*g + 0.11*b
}

// Sat returns the saturation (max - min) of a color.
func Sat(r, g, b float64) float64 {
	return max(r, g, b) - min(r, g, b)
}

// ClipColor clips color components to [0,1] while preserving luminance.
func ClipColor(r, g, b float64) (float64, float64, float64) {
	l := Lum(r, g, b)
	n := min(r, g, b)
	x := max(r, g, b)

	if n < 0 {
		r = l + (r-l)*l/(l-n)
		g = l + (g-l)*l/(l-n)
		b = l + (b-l)*l/(l-n)
	}
	if x > 1 {
		r = l + (r-l)*(1-l)/(x-l)
		g = l + (g-l)*(1-l)/(x-l)
		b = l + (b-l)*(1-l)/(x-l)
	}
	return r, g, b
}

// SetLum shifts a color to luminance l, then clips it.
func SetLum(r, g, b, l float64) (float64, float64, float64) {
	d := l - Lum(r, g, b)
	return ClipColor(r+d, g+d, b+d)
}

// SetSat rescales a color to saturation s keeping the order of its
// components. Gray colors are returned unchanged.
func SetSat(r, g, b, s float64) (float64, float64, float64) {
	lo, mid, hi := sortRGB(&r, &g, &b)
	if *hi > *lo {
		*mid = (*mid - *lo) * s / (*hi - *lo)
		*hi = s
		*lo = 0
	}
	return r, g, b
}

// sortRGB returns pointers to r, g, b ordered by value.
func sortRGB(r, g, b *float64) (lo, mid, hi *float64) {
	switch {
	case *r <= *g && *g <= *b:
		return r, g, b
	case *r <= *b && *b <= *g:
		return r, b, g
	case *b <= *r && *r <= *g:
		return b, r, g
	case *g <= *r && *r <= *b:
		return g, r, b
	case *g <= *b && *b <= *r:
		return g, b, r
	default:
		return b, g, r
	}
}

// nonSeparable applies Hue, Saturation, Color or Luminosity to the
// unpremultiplied source (sr, sg, sb) and backdrop (br, bg, bb).
func nonSeparable(m Mode, sr, sg, sb, br, bg, bb float64) (float64, float64, float64) {
	switch m {
	case Hue:
		r, g, b := SetSat(sr, sg, sb, Sat(br, bg, bb))
		return SetLum(r, g, b, Lum(br, bg, bb))
	case Saturation:
		r, g, b := SetSat(br, bg, bb, Sat(sr, sg, sb))
		return SetLum(r, g, b, Lum(br, bg, bb))
	case Color:
		return SetLum(sr, sg, sb, Lum(br, bg, bb))
	case Luminosity:
		return SetLum(br, bg, bb, Lum(sr, sg, sb))
	default:
		return sr, sg, sb
	}
}
