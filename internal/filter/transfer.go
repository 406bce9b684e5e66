package filter

import (
	"math"

	"github.com/gogpu/fx/internal/image"
	"github.com/gogpu/fx/internal/parallel"
)

// TransferType selects a component transfer function.
type TransferType uint8

const (
	TransferIdentity TransferType = iota
	TransferTable
	TransferDiscrete
	TransferLinear
	TransferGamma
)

// String returns the SVG name of the transfer type.
func (t TransferType) String() string {
	switch t {
	case TransferIdentity:
		return "identity"
	case TransferTable:
		return "table"
	case TransferDiscrete:
		return "discrete"
	case TransferLinear:
		return "linear"
	case TransferGamma:
		return "gamma"
	default:
		return "unknown"
	}
}

// TransferFunc remaps one unpremultiplied channel.
type TransferFunc struct {
	Type TransferType
	// Table values for TransferTable and TransferDiscrete, clamped to [0,1].
	Table []float64
	// Linear: Slope*c + Intercept.
	Slope, Intercept float64
	// Gamma: Amplitude*c^Exponent + Offset.
	Amplitude, Exponent, Offset float64
}

// Eval applies the function to c in [0,1]. The result is clamped.
func (f *TransferFunc) Eval(c float64) float64 {
	switch f.Type {
	case TransferTable:
		n := len(f.Table)
		if n == 0 {
			return c
		}
		if n == 1 || c >= 1 {
			return clamp01(f.Table[n-1])
		}
		pos := c * float64(n-1)
		k := int(pos)
		v0, v1 := clamp01(f.Table[k]), clamp01(f.Table[k+1])
		return v0 + (pos-float64(k))*(v1-v0)
	case TransferDiscrete:
		n := len(f.Table)
		if n == 0 {
			return c
		}
		k := min(int(c*float64(n)), n-1)
		return clamp01(f.Table[k])
	case TransferLinear:
		return clamp01(f.Slope*c + f.Intercept)
	case TransferGamma:
		return clamp01(f.Amplitude*math.Pow(c, f.Exponent) + f.Offset)
	default:
		return c
	}
}

// ComponentTransfer remaps each channel of unpremultiplied pixels. Funcs is
// indexed by channel: the color channels, then alpha. Missing entries are
// identity.
type ComponentTransfer struct {
	Funcs []TransferFunc
}

// Apply returns the remapped surface.
func (f *ComponentTransfer) Apply(src *image.Surface, pool *parallel.WorkerPool) *image.Surface {
	dst := src.Similar(0, 0)
	w, h := src.Size()
	n := src.Channels()
	dst.Pix()
	parallel.Rows(pool, h, w, 0, func(y, _ int, _ []float64) {
		for x := range w {
			p := src.ColorAt(x, y, true, image.EdgeNoCheck)
			for c := range min(n, len(f.Funcs)) {
				p[c] = f.Funcs[c].Eval(p[c])
			}
			dst.ColorTo(x, y, p, false)
		}
	})
	return dst
}
