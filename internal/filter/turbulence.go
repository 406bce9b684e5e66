package filter

import (
	"math"

	"golang.org/x/image/math/f64"

	"github.com/gogpu/fx/internal/color"
	"github.com/gogpu/fx/internal/image"
	"github.com/gogpu/fx/internal/parallel"
)

const (
	randM = 2147483647 // 2**31 - 1
	randA = 16807      // 7**5; primitive root of m
	randQ = 127773     // m / a
	randR = 2836       // m % a

	bSize = 0x100
	bMask = 0xff

	perlinOffset = 4096.0
)

// MaxOctaves bounds the octave count. Octave k contributes at most 2^-k,
// which past this point is below float32 precision of the output.
const MaxOctaves = 24

// TurbulenceParams configure the Perlin noise generator of feTurbulence.
type TurbulenceParams struct {
	Seed         int64
	BaseFreqX    float64
	BaseFreqY    float64
	Octaves      int
	FractalNoise bool
	StitchTiles  bool
	// Tile is the user-space stitching rectangle: x, y, width, height.
	Tile [4]float64
	// Channels is the number of output channels, alpha included.
	Channels int
}

// Turbulence generates deterministic noise. The output depends only on the
// parameters, so equal parameters give bit-identical pixels.
type Turbulence struct {
	p        TurbulenceParams
	freqX    float64
	freqY    float64
	lattice  [2*bSize + 2]int
	gradient [2*bSize + 2][2][color.MaxChannels]float64

	wrapX, wrapY, wrapW, wrapH int
}

// parkMiller is the minimal standard generator of Park and Miller.
type parkMiller struct{ seed int64 }

func newParkMiller(seed int64) *parkMiller {
	if seed <= 0 {
		seed = -(seed % (randM - 1)) + 1
	}
	if seed > randM-1 {
		seed = randM - 1
	}
	return &parkMiller{seed: seed}
}

// next returns values in [1, 2**31 - 2].
func (r *parkMiller) next() int64 {
	r.seed = randA*(r.seed%randQ) - randR*(r.seed/randQ)
	if r.seed <= 0 {
		r.seed += randM
	}
	return r.seed
}

// NewTurbulence builds the lattice and gradient tables for p.
func NewTurbulence(p TurbulenceParams) *Turbulence {
	p.Channels = clamp(p.Channels, 1, color.MaxChannels)
	t := &Turbulence{p: p, freqX: p.BaseFreqX, freqY: p.BaseFreqY}
	rnd := newParkMiller(p.Seed)

	var i int
	for k := range p.Channels {
		for i = 0; i < bSize; i++ {
			t.lattice[i] = i
			g := &t.gradient[i]
			for {
				g[0][k] = float64(rnd.next()%(bSize*2)-bSize) / bSize
				g[1][k] = float64(rnd.next()%(bSize*2)-bSize) / bSize
				if g[0][k] != 0 || g[1][k] != 0 {
					break
				}
			}
			s := math.Hypot(g[0][k], g[1][k])
			g[0][k] /= s
			g[1][k] /= s
		}
	}
	for i--; i > 0; i-- {
		j := int(rnd.next() % bSize)
		t.lattice[i], t.lattice[j] = t.lattice[j], t.lattice[i]
	}
	for i = 0; i < bSize+2; i++ {
		t.lattice[bSize+i] = t.lattice[i]
		t.gradient[bSize+i] = t.gradient[i]
	}

	if p.StitchTiles {
		tx, ty, tw, th := p.Tile[0], p.Tile[1], p.Tile[2], p.Tile[3]
		if t.freqX != 0 && tw > 0 {
			lo := math.Floor(tw*t.freqX) / tw
			hi := math.Ceil(tw*t.freqX) / tw
			if t.freqX/lo < hi/t.freqX {
				t.freqX = lo
			} else {
				t.freqX = hi
			}
		}
		if t.freqY != 0 && th > 0 {
			lo := math.Floor(th*t.freqY) / th
			hi := math.Ceil(th*t.freqY) / th
			if t.freqY/lo < hi/t.freqY {
				t.freqY = lo
			} else {
				t.freqY = hi
			}
		}
		t.wrapW = int(tw*t.freqX + 0.5)
		t.wrapH = int(th*t.freqY + 0.5)
		t.wrapX = int(tx*t.freqX + perlinOffset + float64(t.wrapW))
		t.wrapY = int(ty*t.freqY + perlinOffset + float64(t.wrapH))
	}
	return t
}

func scurve(t float64) float64 { return t * t * (3 - 2*t) }

func lerp(t, a, b float64) float64 { return a + t*(b-a) }

// Pixel returns the unpremultiplied noise at user-space point (x, y).
func (t *Turbulence) Pixel(x, y float64) image.Pixel {
	var out image.Pixel
	wrapX, wrapY, wrapW, wrapH := t.wrapX, t.wrapY, t.wrapW, t.wrapH
	x *= t.freqX
	y *= t.freqY
	ratio := 1.0
	n := t.p.Channels

	for range min(t.p.Octaves, MaxOctaves) {
		tx := x + perlinOffset
		bx := math.Floor(tx)
		rx0 := tx - bx
		rx1 := rx0 - 1
		bx0 := int(bx)
		bx1 := bx0 + 1

		ty := y + perlinOffset
		by := math.Floor(ty)
		ry0 := ty - by
		ry1 := ry0 - 1
		by0 := int(by)
		by1 := by0 + 1

		if t.p.StitchTiles {
			if bx0 >= wrapX {
				bx0 -= wrapW
			}
			if bx1 >= wrapX {
				bx1 -= wrapW
			}
			if by0 >= wrapY {
				by0 -= wrapH
			}
			if by1 >= wrapY {
				by1 -= wrapH
			}
		}
		bx0 &= bMask
		bx1 &= bMask
		by0 &= bMask
		by1 &= bMask

		i := t.lattice[bx0]
		j := t.lattice[bx1]
		qxa := &t.gradient[t.lattice[i+by0]]
		qya := &t.gradient[t.lattice[i+by1]]
		qxb := &t.gradient[t.lattice[j+by0]]
		qyb := &t.gradient[t.lattice[j+by1]]

		sx := scurve(rx0)
		sy := scurve(ry0)
		for k := range n {
			a := lerp(sx, rx0*qxa[0][k]+ry0*qxa[1][k], rx1*qxb[0][k]+ry0*qxb[1][k])
			b := lerp(sx, rx0*qya[0][k]+ry1*qya[1][k], rx1*qyb[0][k]+ry1*qyb[1][k])
			r := lerp(sy, a, b)
			if t.p.FractalNoise {
				out[k] += r / ratio
			} else {
				out[k] += math.Abs(r) / ratio
			}
		}

		x *= 2
		y *= 2
		ratio *= 2
		if t.p.StitchTiles {
			wrapW *= 2
			wrapH *= 2
			wrapX = wrapX*2 - perlinOffset
			wrapY = wrapY*2 - perlinOffset
		}
	}

	for k := range n {
		if t.p.FractalNoise {
			out[k] = (out[k] + 1) / 2
		}
		out[k] = clamp01(out[k])
	}
	return out
}

// Render fills dst with noise. Pixel (x, y) of dst samples the user-space
// point m applied to (x+ox, y+oy). Channel counts beyond the generator's
// read as zero.
func (t *Turbulence) Render(dst *image.Surface, ox, oy int, m f64.Aff3, pool *parallel.WorkerPool) {
	w, h := dst.Size()
	dst.Pix()
	parallel.Rows(pool, h, w, 0, func(y, _ int, _ []float64) {
		for x := range w {
			px, py := float64(x+ox), float64(y+oy)
			ux := m[0]*px + m[1]*py + m[2]
			uy := m[3]*px + m[4]*py + m[5]
			dst.ColorTo(x, y, t.Pixel(ux, uy), false)
		}
	})
}
