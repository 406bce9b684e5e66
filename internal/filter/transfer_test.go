package filter

import (
	"testing"

	"github.com/gogpu/fx/internal/color"
	"github.com/gogpu/fx/internal/image"
)

func TestTransferEval(t *testing.T) {
	tests := []struct {
		name string
		f    TransferFunc
		in   float64
		want float64
	}{
		{"identity", TransferFunc{Type: TransferIdentity}, 0.3, 0.3},
		{"table rising", TransferFunc{Type: TransferTable, Table: []float64{0, 1}}, 0.25, 0.25},
		{"table falling", TransferFunc{Type: TransferTable, Table: []float64{1, 0}}, 0.25, 0.75},
		{"table three", TransferFunc{Type: TransferTable, Table: []float64{0, 1, 0}}, 0.75, 0.5},
		{"table at one", TransferFunc{Type: TransferTable, Table: []float64{0.2, 0.4}}, 1, 0.4},
		{"table single", TransferFunc{Type: TransferTable, Table: []float64{0.6}}, 0.1, 0.6},
		{"table empty", TransferFunc{Type: TransferTable}, 0.7, 0.7},
		{"table clamps entries", TransferFunc{Type: TransferTable, Table: []float64{-1, 2}}, 0.5, 0.5},
		{"discrete low", TransferFunc{Type: TransferDiscrete, Table: []float64{0, 0.5, 1}}, 0.2, 0},
		{"discrete mid", TransferFunc{Type: TransferDiscrete, Table: []float64{0, 0.5, 1}}, 0.5, 0.5},
		{"discrete top", TransferFunc{Type: TransferDiscrete, Table: []float64{0, 0.5, 1}}, 1, 1},
		{"discrete empty", TransferFunc{Type: TransferDiscrete}, 0.4, 0.4},
		{"linear", TransferFunc{Type: TransferLinear, Slope: 2, Intercept: -0.5}, 0.5, 0.5},
		{"linear clamps", TransferFunc{Type: TransferLinear, Slope: 2, Intercept: -0.5}, 1, 1},
		{"linear below zero", TransferFunc{Type: TransferLinear, Slope: 1, Intercept: -0.5}, 0.2, 0},
		{"gamma", TransferFunc{Type: TransferGamma, Amplitude: 1, Exponent: 2}, 0.5, 0.25},
		{"gamma offset", TransferFunc{Type: TransferGamma, Amplitude: 2, Exponent: 1, Offset: 0.1}, 0.2, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.f.Eval(tt.in); absf(got-tt.want) > 1e-12 {
				t.Errorf("Eval(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestComponentTransferAlpha(t *testing.T) {
	s := filledSurface(t, 3, 3, color.LinearRGB, rgba(0.2, 0.4, 0.6, 1))
	f := &ComponentTransfer{Funcs: []TransferFunc{
		{}, {}, {},
		{Type: TransferLinear, Slope: 0.5},
	}}
	got := f.Apply(s, nil).ColorAt(1, 1, true, image.EdgeNoCheck)
	if want := rgba(0.2, 0.4, 0.6, 0.5); !pixelApproxEqual(got, want, 4, 1e-6) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestComponentTransferMissingFuncs(t *testing.T) {
	s := randomSurface(t, 5, 5, color.LinearRGB, true)
	f := &ComponentTransfer{Funcs: []TransferFunc{{Type: TransferLinear, Slope: 0, Intercept: 1}}}
	out := f.Apply(s, nil)
	for y := range 5 {
		for x := range 5 {
			got := out.ColorAt(x, y, true, image.EdgeNoCheck)
			want := s.ColorAt(x, y, true, image.EdgeNoCheck)
			want[0] = 1
			if !pixelApproxEqual(got, want, 4, 1e-6) {
				t.Fatalf("(%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestTransferTypeString(t *testing.T) {
	if TransferGamma.String() != "gamma" || TransferType(99).String() != "unknown" {
		t.Error("unexpected transfer type names")
	}
}
