package filter

import (
	"math"

	"github.com/gogpu/fx/internal/color"
	"github.com/gogpu/fx/internal/image"
	"github.com/gogpu/fx/internal/parallel"
)

// Quality trades blur accuracy for speed by downsampling before blurring.
type Quality int8

// Blur quality tiers, from fastest to most accurate.
const (
	QualityWorst  Quality = -2
	QualityWorse  Quality = -1
	QualityNormal Quality = 0
	QualityBetter Quality = 1
	QualityBest   Quality = 2
)

// String returns the tier name.
func (q Quality) String() string {
	switch q {
	case QualityWorst:
		return "Worst"
	case QualityWorse:
		return "Worse"
	case QualityNormal:
		return "Normal"
	case QualityBetter:
		return "Better"
	case QualityBest:
		return "Best"
	default:
		return "Unknown"
	}
}

// subsampleStepLog2 returns log2 of the downsampling step for one axis.
func subsampleStepLog2(deviation float64, q Quality) int {
	var div float64
	switch {
	case q <= QualityWorst:
		div = 2
	case q == QualityWorse:
		div = 4
	case q == QualityNormal:
		div = 8
	case q == QualityBetter:
		div = 16
	default:
		return 0
	}
	v := deviation * 3 / div
	if !(v > 1) {
		return 0
	}
	return clamp(int(math.Log2(v)), 0, 12)
}

// DownsampleForQuality returns the working size and deviations of a blur at
// quality q. Axes whose step is above one shrink to ceil(n/step)+1 pixels
// and have their deviation divided by the step.
func DownsampleForQuality(q Quality, w, h int, dx, dy float64) (int, int, float64, float64) {
	if step := 1 << subsampleStepLog2(dx, q); step > 1 {
		w = int(math.Ceil(float64(w)/float64(step))) + 1
		dx /= float64(step)
	}
	if step := 1 << subsampleStepLog2(dy, q); step > 1 {
		h = int(math.Ceil(float64(h)/float64(step))) + 1
		dy /= float64(step)
	}
	return w, h, dx, dy
}

// GaussianBlur blurs a surface along X and then along Y.
//
// Each axis uses the recursive filter when its deviation exceeds
// FIRThreshold and the FIR kernel otherwise. An axis whose kernel half-width
// is zero is skipped. Samples are filtered as stored, premultiplied, which
// averages color weighted by coverage; transparent pixels contribute no
// color and edges do not darken.
type GaussianBlur struct {
	DeviationX float64
	DeviationY float64
	Quality    Quality
}

// NewGaussianBlur creates a blur with the given deviations in pixels.
func NewGaussianBlur(dx, dy float64) *GaussianBlur {
	return &GaussianBlur{DeviationX: dx, DeviationY: dy, Quality: QualityBest}
}

// Apply blurs s and returns the result. Without downsampling s is blurred in
// place and returned; otherwise a new surface of the same size is returned.
func (g *GaussianBlur) Apply(s *image.Surface, pool *parallel.WorkerPool) *image.Surface {
	dx, dy := math.Abs(g.DeviationX), math.Abs(g.DeviationY)
	if !s.IsRealized() || (KernelHalfWidth(dx) == 0 && KernelHalfWidth(dy) == 0) {
		return s
	}

	w, h := s.Size()
	sw, sh, sdx, sdy := DownsampleForQuality(g.Quality, w, h, dx, dy)
	if sw == w && sh == h {
		blurInPlace(s, dx, dy, pool)
		return s
	}

	slogger().Debug("filter: downsampled blur",
		"quality", g.Quality.String(), "from", [2]int{w, h}, "to", [2]int{sw, sh})
	small := s.Resize(sw, sh)
	blurInPlace(small, sdx, sdy, pool)
	return small.Resize(w, h)
}

// blurInPlace runs the X pass to completion, then the Y pass.
func blurInPlace(s *image.Surface, dx, dy float64, pool *parallel.WorkerPool) {
	if KernelHalfWidth(dx) > 0 {
		blurAxis(s, dx, false, pool)
	}
	if KernelHalfWidth(dy) > 0 {
		blurAxis(s, dy, true, pool)
	}
}

// line describes one row (or column) of a surface inside its pixel slice.
type line struct {
	base  int // offset of the first pixel
	step  int // distance between pixels
	count int // pixels in the line
	n     int // channels per pixel
}

func (l line) at(i, c int) int { return l.base + i*l.step + c }

// blurAxis filters every line along one axis. Lines are independent and run
// on the pool; the call returns only after all of them are done.
func blurAxis(s *image.Surface, deviation float64, vertical bool, pool *parallel.WorkerPool) {
	w, h := s.Size()
	n := s.Channels()
	pix := s.Pix()
	integer := s.Space().IsInteger()

	rows, cols := h, w
	lineAt := func(r int) line { return line{base: r * w * n, step: n, count: w, n: n} }
	if vertical {
		rows, cols = w, h
		lineAt = func(r int) line { return line{base: r * n, step: w * n, count: h, n: n} }
	}

	if deviation > FIRThreshold {
		coeffs := CachedIIRCoefficients(deviation)
		parallel.Rows(pool, rows, cols, cols*n, func(r, _ int, scratch []float64) {
			l := lineAt(r)
			iirLine(pix, l, &coeffs, scratch, integer)
			clampToAlpha(pix, l)
		})
		return
	}

	kernel := CachedGaussianKernel(deviation)
	hw := len(kernel) - 1
	parallel.Rows(pool, rows, cols, cols*n+hw+1, func(r, _ int, scratch []float64) {
		l := lineAt(r)
		firLine(pix, l, kernel, scratch, integer)
		clampToAlpha(pix, l)
	})
}

// clampToAlpha limits the color channels of every pixel in l to its alpha,
// the last channel. Channels are filtered independently and the IIR filter
// overshoots near sharp edges.
func clampToAlpha(pix []float32, l line) {
	ai := l.n - 1
	if ai == 0 {
		return
	}
	for i := range l.count {
		a := pix[l.at(i, ai)]
		for c := range ai {
			if j := l.at(i, c); pix[j] > a {
				pix[j] = a
			}
		}
	}
}

// store writes a filtered sample, clamped to [0,1] and quantized for
// integer spaces.
func store(pix []float32, i int, v float64, integer bool) {
	v = clamp01(v)
	if integer {
		v = color.Round8(v)
	}
	pix[i] = float32(v)
}

// firLine convolves one line in place with a symmetric kernel. Past samples
// come from a history so the line can be overwritten as it is read; samples
// beyond the end repeat the last pixel. When the whole window holds one
// value the output equals that value, so runs of it are copied directly.
func firLine(pix []float32, l line, kernel []float64, scratch []float64, integer bool) {
	hw := len(kernel) - 1
	src := scratch[:l.count*l.n]
	hist := scratch[l.count*l.n : l.count*l.n+hw+1]
	for i := range l.count {
		for c := range l.n {
			src[i*l.n+c] = float64(pix[l.at(i, c)])
		}
	}

	for c := range l.n {
		for i := range hist {
			hist[i] = src[c]
		}
		for c1 := 0; c1 < l.count; c1++ {
			copy(hist[1:], hist[:hw])
			hist[0] = src[c1*l.n+c]

			sum := 0.0
			last := -1.0
			different := 0
			for i := 0; i <= hw; i++ {
				v := hist[i]
				if v != last {
					different++
				}
				last = v
				sum += v * kernel[i]
			}
			for i := 1; i <= hw; i++ {
				j := min(c1+i, l.count-1)
				v := src[j*l.n+c]
				if v != last {
					different++
				}
				last = v
				sum += v * kernel[i]
			}
			store(pix, l.at(c1, c), sum, integer)

			if different <= 1 {
				for c1+1+hw < l.count && src[(c1+1+hw)*l.n+c] == last {
					c1++
					store(pix, l.at(c1, c), last, integer)
				}
			}
		}
	}
}

// iirLine runs the causal pass into scratch and the anticausal pass back
// into the line. Both passes start from replicated border pixels; the
// anticausal state comes from the Triggs-Sdika matrix.
func iirLine(pix []float32, l line, k *IIRCoefficients, scratch []float64, integer bool) {
	n := l.n
	tmp := scratch[:l.count*n]
	b := &k.B

	for c := range n {
		imin := float64(pix[l.at(0, c)])
		imax := float64(pix[l.at(l.count-1, c)])

		u0, u1, u2 := imin, imin, imin
		for i := range l.count {
			u0, u1, u2 = float64(pix[l.at(i, c)])*b[0]+u0*b[1]+u1*b[2]+u2*b[3], u0, u1
			tmp[i*n+c] = u0
		}

		d0, d1, d2 := u0-imax, u1-imax, u2-imax
		m := &k.M
		v0 := (d0*m[0]+d1*m[1]+d2*m[2])*b[0] + imax
		v1 := (d0*m[3]+d1*m[4]+d2*m[5])*b[0] + imax
		v2 := (d0*m[6]+d1*m[7]+d2*m[8])*b[0] + imax

		store(pix, l.at(l.count-1, c), v0, integer)
		for i := l.count - 2; i >= 0; i-- {
			v0, v1, v2 = tmp[i*n+c]*b[0]+v0*b[1]+v1*b[2]+v2*b[3], v0, v1
			store(pix, l.at(i, c), v0, integer)
		}
	}
}
