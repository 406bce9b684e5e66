package fx

import (
	"github.com/gogpu/fx/internal/blend"
	"github.com/gogpu/fx/internal/filter"
)

// CompositeOperator selects how Composite combines its two inputs. The
// first input is the source, the second the destination.
type CompositeOperator uint8

const (
	CompositeOver CompositeOperator = iota
	CompositeIn
	CompositeOut
	CompositeAtop
	CompositeXor
	CompositeLighter
	CompositeArithmetic
)

var compositeNames = [...]string{"over", "in", "out", "atop", "xor", "lighter", "arithmetic"}

// String returns the SVG operator name.
func (op CompositeOperator) String() string {
	if int(op) < len(compositeNames) {
		return compositeNames[op]
	}
	return "unknown"
}

// porterDuff maps the operator to its Porter-Duff equivalent.
func (op CompositeOperator) porterDuff() blend.Operator {
	switch op {
	case CompositeIn:
		return blend.SourceIn
	case CompositeOut:
		return blend.SourceOut
	case CompositeAtop:
		return blend.SourceAtop
	case CompositeXor:
		return blend.Xor
	case CompositeLighter:
		return blend.Plus
	default:
		return blend.SourceOver
	}
}

// Composite combines two inputs with a Porter-Duff operator or the
// arithmetic formula k1*i1*i2 + k2*i1 + k3*i2 + k4.
type Composite struct {
	op CompositeOperator
	k  filter.Arithmetic
}

// NewComposite creates a composite using op.
func NewComposite(op CompositeOperator) *Composite {
	c := &Composite{}
	c.SetOperator(op)
	return c
}

// SetOperator sets the operator. Unknown operators fall back to over.
func (c *Composite) SetOperator(op CompositeOperator) {
	if op > CompositeArithmetic {
		Logger().Warn("fx: unknown composite operator", "op", int(op))
		op = CompositeOver
	}
	c.op = op
}

// SetArithmetic sets the coefficients and selects the arithmetic
// operator. Non-finite coefficients are rejected.
func (c *Composite) SetArithmetic(k1, k2, k3, k4 float64) {
	if !finite(k1, k2, k3, k4) {
		Logger().Warn("fx: invalid arithmetic coefficients", "k1", k1, "k2", k2, "k3", k3, "k4", k4)
		return
	}
	c.op = CompositeArithmetic
	c.k = filter.Arithmetic{K1: k1, K2: k2, K3: k3, K4: k4}
}

// BlendMode selects a W3C compositing blend mode.
type BlendMode = blend.Mode

// Blend modes.
const (
	BlendNormal     = blend.Normal
	BlendMultiply   = blend.Multiply
	BlendScreen     = blend.Screen
	BlendOverlay    = blend.Overlay
	BlendDarken     = blend.Darken
	BlendLighten    = blend.Lighten
	BlendColorDodge = blend.ColorDodge
	BlendColorBurn  = blend.ColorBurn
	BlendHardLight  = blend.HardLight
	BlendSoftLight  = blend.SoftLight
	BlendDifference = blend.Difference
	BlendExclusion  = blend.Exclusion
	BlendHue        = blend.Hue
	BlendSaturation = blend.Saturation
	BlendColor      = blend.Color
	BlendLuminosity = blend.Luminosity
)

// ParseBlendMode returns the mode with the given CSS name.
func ParseBlendMode(name string) (BlendMode, bool) {
	return blend.ParseMode(name)
}

// Blend mixes its first input over its second with a blend mode.
type Blend struct {
	mode BlendMode
}

// NewBlend creates a blend using mode.
func NewBlend(mode BlendMode) *Blend { return &Blend{mode: mode} }

// SetMode sets the blend mode.
func (b *Blend) SetMode(mode BlendMode) { b.mode = mode }

// ColorMatrixType selects how ColorMatrix values are read.
type ColorMatrixType uint8

const (
	ColorMatrixMatrix ColorMatrixType = iota
	ColorMatrixSaturate
	ColorMatrixHueRotate
	ColorMatrixLuminanceToAlpha
)

// ColorMatrix transforms unpremultiplied colors with a 4x5 matrix or one of
// its shorthands.
type ColorMatrix struct {
	kind   ColorMatrixType
	values []float64
	value  float64
}

// NewColorMatrix creates a full matrix transform from 20 row-major values.
func NewColorMatrix(values []float64) *ColorMatrix {
	m := &ColorMatrix{}
	m.SetMatrix(values)
	return m
}

// SetMatrix sets 20 row-major values. Any other length gives the identity.
func (m *ColorMatrix) SetMatrix(values []float64) {
	if len(values) != 20 {
		Logger().Warn("fx: color matrix needs 20 values, using identity", "got", len(values))
		values = nil
	}
	m.kind = ColorMatrixMatrix
	m.values = append([]float64(nil), values...)
}

// SetSaturate selects the saturate shorthand.
func (m *ColorMatrix) SetSaturate(s float64) {
	m.kind, m.value = ColorMatrixSaturate, s
}

// SetHueRotate selects the hue rotation shorthand, in degrees.
func (m *ColorMatrix) SetHueRotate(degrees float64) {
	m.kind, m.value = ColorMatrixHueRotate, degrees
}

// SetLuminanceToAlpha replaces the output with the input's luminance as
// alpha.
func (m *ColorMatrix) SetLuminanceToAlpha() {
	m.kind = ColorMatrixLuminanceToAlpha
}

// kernel returns the filter for the matrix kinds.
func (m *ColorMatrix) kernel() *filter.ColorMatrix {
	switch m.kind {
	case ColorMatrixSaturate:
		return filter.NewSaturate(m.value)
	case ColorMatrixHueRotate:
		return filter.NewHueRotate(m.value)
	default:
		if m.values == nil {
			return filter.NewIdentityColorMatrix()
		}
		return filter.NewColorMatrix(m.values)
	}
}

// TransferFunc remaps one channel.
type TransferFunc = filter.TransferFunc

// TransferType selects a TransferFunc kind.
type TransferType = filter.TransferType

// Transfer function kinds.
const (
	TransferIdentity = filter.TransferIdentity
	TransferTable    = filter.TransferTable
	TransferDiscrete = filter.TransferDiscrete
	TransferLinear   = filter.TransferLinear
	TransferGamma    = filter.TransferGamma
)

// Channel names a color channel of RGBA input.
type Channel uint8

const (
	ChannelR Channel = iota
	ChannelG
	ChannelB
	ChannelA
)

// ComponentTransfer remaps each channel with its own function.
type ComponentTransfer struct {
	funcs [4]TransferFunc
}

// NewComponentTransfer creates an identity transfer.
func NewComponentTransfer() *ComponentTransfer { return &ComponentTransfer{} }

// SetFunc sets the function of channel ch.
func (c *ComponentTransfer) SetFunc(ch Channel, f TransferFunc) {
	if ch > ChannelA {
		Logger().Warn("fx: unknown transfer channel", "channel", int(ch))
		return
	}
	f.Table = append([]float64(nil), f.Table...)
	c.funcs[ch] = f
}
