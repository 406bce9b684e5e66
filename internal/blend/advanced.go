package blend

import "math"

// Mode is a W3C blend mode. Blending mixes the unpremultiplied colors of
// source and backdrop with B(Cs, Cb) and composites the result with
// source-over:
//
//	Co = (1-Sa)*D + (1-Da)*S + Sa*Da*B(Cs, Cb)
//	Ao = Sa + Da - Sa*Da
type Mode uint8

const (
	Normal     Mode = iota // B = Cs
	Multiply               // Cs * Cb
	Screen                 // Cs + Cb - Cs*Cb
	Overlay                // HardLight with swapped layers
	Darken                 // min(Cs, Cb)
	Lighten                // max(Cs, Cb)
	ColorDodge             // Cb / (1 - Cs)
	ColorBurn              // 1 - (1 - Cb) / Cs
	HardLight              // Multiply or Screen depending on source
	SoftLight              // Soft version of HardLight
	Difference             // |Cs - Cb|
	Exclusion              // Cs + Cb - 2*Cs*Cb

	// Non-separable modes, defined on RGB only.
	Hue
	Saturation
	Color
	Luminosity
)

var modeNames = [...]string{
	"normal", "multiply", "screen", "overlay", "darken", "lighten",
	"color-dodge", "color-burn", "hard-light", "soft-light", "difference",
	"exclusion", "hue", "saturation", "color", "luminosity",
}

// String returns the CSS name of the mode.
func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "unknown"
}

// ParseMode returns the mode with the given CSS name.
func ParseMode(name string) (Mode, bool) {
	for i, n := range modeNames {
		if n == name {
			return Mode(i), true
		}
	}
	return Normal, false
}

// IsSeparable reports whether the mode mixes each channel independently.
func (m Mode) IsSeparable() bool { return m < Hue }

// Blend mixes source s over backdrop d. Non-separable modes need nc == 3;
// with any other channel count they fall back to Normal.
func (m Mode) Blend(s, d *Pixel, nc int) Pixel {
	sa, da := s[nc], d[nc]
	if sa <= 0 {
		return *d
	}
	if da <= 0 {
		return *s
	}

	var cs, cb, mixed Pixel
	for c := range nc {
		cs[c] = min(s[c]/sa, 1)
		cb[c] = min(d[c]/da, 1)
	}

	switch {
	case m.IsSeparable():
		fn := separable(m)
		for c := range nc {
			mixed[c] = fn(cs[c], cb[c])
		}
	case nc == 3:
		mixed[0], mixed[1], mixed[2] = nonSeparable(m, cs[0], cs[1], cs[2], cb[0], cb[1], cb[2])
	default:
		copy(mixed[:nc], cs[:nc])
	}

	var out Pixel
	for c := range nc {
		v := (1-sa)*d[c] + (1-da)*s[c] + sa*da*mixed[c]
		out[c] = math.Max(0, math.Min(v, 1))
	}
	out[nc] = sa + da - sa*da
	return out
}

// separable returns B(Cs, Cb) for a separable mode.
func separable(m Mode) func(s, b float64) float64 {
	switch m {
	case Multiply:
		return func(s, b float64) float64 { return s * b }
	case Screen:
		return screen
	case Overlay:
		return func(s, b float64) float64 { return hardLight(b, s) }
	case Darken:
		return math.Min
	case Lighten:
		return math.Max
	case ColorDodge:
		return colorDodge
	case ColorBurn:
		return colorBurn
	case HardLight:
		return hardLight
	case SoftLight:
		return softLight
	case Difference:
		return func(s, b float64) float64 { return math.Abs(s - b) }
	case Exclusion:
		return func(s, b float64) float64 { return s + b - 2*s*b }
	default:
		return func(s, _ float64) float64 { return s }
	}
}

func screen(s, b float64) float64 { return s + b - s*b }

func hardLight(s, b float64) float64 {
	if s <= 0.5 {
		return b * 2 * s
	}
	return screen(2*s-1, b)
}

func colorDodge(s, b float64) float64 {
	switch {
	case b == 0:
		return 0
	case s >= 1:
		return 1
	default:
		return math.Min(1, b/(1-s))
	}
}

func colorBurn(s, b float64) float64 {
	switch {
	case b >= 1:
		return 1
	case s <= 0:
		return 0
	default:
		return 1 - math.Min(1, (1-b)/s)
	}
}

func softLight(s, b float64) float64 {
	if s <= 0.5 {
		return b - (1-2*s)*b*(1-b)
	}
	var d float64
	if b <= 0.25 {
		d = ((16*b-12)*b + 4) * b
	} else {
		d = math.Sqrt(b)
	}
	return b + (2*s-1)*(d-b)
}
