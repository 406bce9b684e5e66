package color

import "math"

// SRGBToLinear converts an sRGB component to linear (EOTF).
// Formula: if s <= 0.04045: s/12.92; else: pow((s+0.055)/1.055, 2.4)
func SRGBToLinear(s float64) float64 {
	if s <= 0.04045 {
		return s / 12.92
	}
	return math.Pow((s+0.055)/1.055, 2.4)
}

// LinearToSRGB converts a linear component to sRGB (OETF).
// Formula: if l <= 0.0031308: l*12.92; else: 1.055*pow(l, 1/2.4)-0.055
func LinearToSRGB(l float64) float64 {
	if l <= 0.0031308 {
		return l * 12.92
	}
	return 1.055*math.Pow(l, 1.0/2.4) - 0.055
}

// RGBToCMYK is the naive device transform from RGB to CMYK.
// It is not colorimetric: black generation takes the full gray component.
func RGBToCMYK(r, g, b float64) (c, m, y, k float64) {
	k = 1 - max(r, g, b)
	if k >= 1 {
		return 0, 0, 0, 1
	}
	inv := 1 / (1 - k)
	return (1 - r - k) * inv, (1 - g - k) * inv, (1 - b - k) * inv, k
}

// CMYKToRGB is the inverse of RGBToCMYK.
func CMYKToRGB(c, m, y, k float64) (r, g, b float64) {
	w := 1 - k
	return (1 - c) * w, (1 - m) * w, (1 - y) * w
}

// Luminance returns the linear-coefficient luminance used by
// luminanceToAlpha and alpha masks.
func Luminance(r, g, b float64) float64 {
	return 0.2125*r + 0.7154*g + 0.0721*b
}

// Convert maps unpremultiplied color channels from one space to another.
// src holds from.Channels() values and dst receives to.Channels() values;
// alpha is never touched. Converting from Alpha yields black.
func Convert(from, to Space, dst, src []float64) {
	if from == to {
		copy(dst[:to.Channels()], src[:from.Channels()])
		return
	}

	// Everything goes through linear-light RGB.
	var r, g, b float64
	switch from {
	case SRGB:
		r, g, b = srgbIn(src[0]), srgbIn(src[1]), srgbIn(src[2])
	case LinearRGB:
		r, g, b = src[0], src[1], src[2]
	case CMYK:
		r, g, b = CMYKToRGB(src[0], src[1], src[2], src[3])
		r, g, b = SRGBToLinear(r), SRGBToLinear(g), SRGBToLinear(b)
	case Alpha:
	}

	switch to {
	case SRGB:
		dst[0], dst[1], dst[2] = srgbOut(r), srgbOut(g), srgbOut(b)
	case LinearRGB:
		dst[0], dst[1], dst[2] = r, g, b
	case CMYK:
		dst[0], dst[1], dst[2], dst[3] = RGBToCMYK(LinearToSRGB(r), LinearToSRGB(g), LinearToSRGB(b))
	case Alpha:
	}
}

// srgbIn decodes an 8-bit sRGB value through the lookup table.
func srgbIn(v float64) float64 {
	return float64(SRGBToLinearFast(Quantize8(v)))
}

// srgbOut encodes a linear value to the nearest 8-bit sRGB step.
func srgbOut(v float64) float64 {
	return float64(LinearToSRGBFast(float32(v))) / 255
}
