package color

import "math"

// sRGBToLinearLUT maps every 8-bit sRGB code to its linear value.
var sRGBToLinearLUT [256]float32

// linearToSRGBLUT maps 12-bit linear values to 8-bit sRGB codes.
// 4096 entries are enough to round-trip every 8-bit code.
var linearToSRGBLUT [4096]uint8

func init() {
	for i := range 256 {
		sRGBToLinearLUT[i] = float32(SRGBToLinear(float64(i) / 255))
	}
	for i := range 4096 {
		s := LinearToSRGB(float64(i) / 4095)
		linearToSRGBLUT[i] = Quantize8(s)
	}
}

// Quantize8 clamps v to [0,1] and rounds it to the nearest 8-bit code.
func Quantize8(v float64) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return 255
	}
	//nolint:gosec // G115: v is in (0,1), result fits in a byte
	return uint8(math.Floor(v*255 + 0.5))
}

// Round8 snaps v to the nearest representable 8-bit step in [0,1].
func Round8(v float64) float64 {
	return float64(Quantize8(v)) / 255
}

// SRGBToLinearFast converts an 8-bit sRGB code to linear using the table.
func SRGBToLinearFast(s uint8) float32 {
	return sRGBToLinearLUT[s]
}

// LinearToSRGBFast converts a linear value to an 8-bit sRGB code using the
// table. Input is clamped to [0,1].
func LinearToSRGBFast(l float32) uint8 {
	if !(l > 0) {
		return 0
	}
	if l > 1 {
		l = 1
	}
	index := int(l*4095.0 + 0.5)
	if index > 4095 {
		index = 4095
	}
	return linearToSRGBLUT[index]
}
