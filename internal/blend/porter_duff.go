// Package blend implements Porter-Duff compositing operators and blend modes.
//
// All operations work on premultiplied pixels of float64 channels in [0,1]:
// the color channels first, then alpha at index nc. The number of color
// channels is a parameter so the same operators serve RGB and CMYK buffers.
//
// References:
//   - Porter-Duff: "Compositing Digital Images" (1984)
//   - W3C Compositing and Blending Level 1: https://www.w3.org/TR/compositing-1/
package blend

import "github.com/gogpu/fx/internal/color"

// Pixel is one premultiplied pixel: nc color channels followed by alpha.
type Pixel = [color.MaxChannels]float64

// Operator represents a Porter-Duff compositing operation. S is the source
// (the upper layer) and D the destination.
type Operator uint8

const (
	Clear           Operator = iota // Result: 0
	Source                          // Result: S
	Destination                     // Result: D
	SourceOver                      // Result: S + D*(1-Sa) [default]
	DestinationOver                 // Result: S*(1-Da) + D
	SourceIn                        // Result: S*Da
	DestinationIn                   // Result: D*Sa
	SourceOut                       // Result: S*(1-Da)
	DestinationOut                  // Result: D*(1-Sa)
	SourceAtop                      // Result: S*Da + D*(1-Sa)
	DestinationAtop                 // Result: S*(1-Da) + D*Sa
	Xor                             // Result: S*(1-Da) + D*(1-Sa)
	Plus                            // Result: S + D (clamped to 1)
)

var operatorNames = [...]string{
	"clear", "source", "destination", "over", "destination-over",
	"in", "destination-in", "out", "destination-out", "atop",
	"destination-atop", "xor", "lighter",
}

// String returns the operator name.
func (op Operator) String() string {
	if int(op) < len(operatorNames) {
		return operatorNames[op]
	}
	return "unknown"
}

// factors returns the weights of S and D for op. Unknown operators
// behave as SourceOver.
func (op Operator) factors(sa, da float64) (fs, fd float64) {
	switch op {
	case Clear:
		return 0, 0
	case Source:
		return 1, 0
	case Destination:
		return 0, 1
	case DestinationOver:
		return 1 - da, 1
	case SourceIn:
		return da, 0
	case DestinationIn:
		return 0, sa
	case SourceOut:
		return 1 - da, 0
	case DestinationOut:
		return 0, 1 - sa
	case SourceAtop:
		return da, 1 - sa
	case DestinationAtop:
		return 1 - da, sa
	case Xor:
		return 1 - da, 1 - sa
	case Plus:
		return 1, 1
	default:
		return 1, 1 - sa
	}
}

// Composite combines s and d with op. Results are clamped to [0,1].
func (op Operator) Composite(s, d *Pixel, nc int) Pixel {
	fs, fd := op.factors(s[nc], d[nc])
	var out Pixel
	for c := 0; c <= nc; c++ {
		out[c] = min(s[c]*fs+d[c]*fd, 1)
	}
	return out
}

// Over composites s over d.
func Over(s, d *Pixel, nc int) Pixel {
	return SourceOver.Composite(s, d, nc)
}
