package filter

import (
	"math"
	"math/cmplx"

	"github.com/gogpu/fx/internal/cache"
)

// FIRThreshold is the deviation above which the recursive filter replaces
// the convolution kernel.
const FIRThreshold = 3.0

// KernelHalfWidth returns ceil(3*deviation), the number of taps on each
// side of a Gaussian kernel.
func KernelHalfWidth(deviation float64) int {
	if !(deviation > 0) {
		return 0
	}
	return int(math.Ceil(math.Abs(deviation) * 3))
}

// GaussianKernel builds the one-sided FIR kernel for deviation: element 0 is
// the center tap and element i weighs the samples i pixels away on both
// sides. The taps are normalized from the outermost inwards and the center
// is assigned 1-2*Σ so the full kernel sums to exactly one.
//
// For deviation <= 0 it returns [1].
func GaussianKernel(deviation float64) []float64 {
	n := KernelHalfWidth(deviation)
	if n == 0 {
		return []float64{1}
	}

	kernel := make([]float64, n+1)
	d2 := 2 * deviation * deviation
	sum := 0.0
	for i := n; i > 0; i-- {
		kernel[i] = math.Exp(-float64(i*i) / d2)
		sum += kernel[i]
	}
	sum = 2*sum + 1

	ksum := 0.0
	kernelsum := 0.0
	for i := n; i > 0; i-- {
		ksum += kernel[i] / sum
		kernel[i] = ksum - kernelsum
		kernelsum += kernel[i]
	}
	kernel[0] = 1 - 2*kernelsum
	return kernel
}

// Kernels and recursive coefficients are keyed by the exact deviation bits;
// a blur of a fixed deviation asks for them once per axis and channel group.
var (
	firKernels = cache.New[uint64, []float64](64)
	iirFilters = cache.New[uint64, IIRCoefficients](64)
)

// CachedGaussianKernel returns a shared GaussianKernel for deviation.
// The result must not be modified.
func CachedGaussianKernel(deviation float64) []float64 {
	return firKernels.GetOrCreate(math.Float64bits(deviation), func() []float64 {
		return GaussianKernel(deviation)
	})
}

// CachedIIRCoefficients returns the shared recursive filter for deviation.
func CachedIIRCoefficients(deviation float64) IIRCoefficients {
	return iirFilters.GetOrCreate(math.Float64bits(deviation), func() IIRCoefficients {
		return NewIIRCoefficients(deviation)
	})
}

// IIRCoefficients are the gain and feedback terms of the third-order
// recursive Gaussian of Young and van Vliet. B[0] is the gain applied to the
// input sample, B[1..3] weigh the three previous outputs.
type IIRCoefficients struct {
	B [4]float64
	// M is the Triggs-Sdika matrix (row-major 3x3) giving the anticausal
	// pass its initial state from the tail of the causal pass.
	M [9]float64
}

// NewIIRCoefficients computes the filter for deviation sigma. The pole scale
// q is found by bisection until the filter variance matches sigma² to within
// sigma/2^30.
func NewIIRCoefficients(sigma float64) IIRCoefficients {
	const d3org = 1.85132
	d1org := complex(1.40098, 1.00236)

	qbeg, qend := 1.0, 2*sigma
	sigmasqr := sigma * sigma
	var d1 complex128
	var d3 float64
	for {
		q := (qbeg + qend) / 2
		d1 = cmplx.Pow(d1org, complex(1/q, 0))
		d3 = math.Pow(d3org, 1/q)
		t := d1 / ((d1 - 1) * (d1 - 1))
		ssqr := 2 * (2*real(t) + d3/((d3-1)*(d3-1)))
		if ssqr < sigmasqr {
			qbeg = q
		} else {
			qend = q
		}
		if !(qend-qbeg > sigma/(1<<30)) {
			break
		}
	}

	absd1sqr := real(d1)*real(d1) + imag(d1)*imag(d1)
	re2d1 := 2 * real(d1)
	bscale := 1 / (absd1sqr * d3)

	// Feedback terms, sign-flipped so each pass adds them.
	a1 := bscale * (absd1sqr + d3*re2d1)
	a2 := -bscale * (d3 + re2d1)
	a3 := bscale

	var c IIRCoefficients
	c.B = [4]float64{1 - (a1 + a2 + a3), a1, a2, a3}
	c.M = triggsSdika(a1, a2, a3)
	return c
}

// triggsSdika returns the boundary matrix for the feedback terms a1..a3.
func triggsSdika(a1, a2, a3 float64) [9]float64 {
	scale := 1 / ((1 + a1 - a2 + a3) * (1 - a1 - a2 - a3) * (1 + a2 + (a1-a3)*a3))
	m := [9]float64{
		1 - a2 - a1*a3 - a3*a3,
		(a1 + a3) * (a2 + a1*a3),
		a3 * (a1 + a2*a3),
		a1 + a2*a3,
		(1 - a2) * (a2 + a1*a3),
		a3 * (1 - a2 - a1*a3 - a3*a3),
		a1*(a1+a3) + a2*(1-a2),
		a1*(a2-a3*a3) + a3*(1+a2*(a2-1)-a3*a3),
		a3 * (a1 + a2*a3),
	}
	for i := range m {
		m[i] *= scale
	}
	return m
}
