package fx

import (
	"bytes"
	"math"
	"testing"
)

func TestParseQuality(t *testing.T) {
	tests := []struct {
		name    string
		want    Quality
		wantErr bool
	}{
		{"best", QualityBest, false},
		{"Normal", QualityNormal, false},
		{"WORST", QualityWorst, false},
		{"ultra", QualityBest, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseQuality(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseQuality(%q) error = %v", tt.name, err)
			}
			if got != tt.want {
				t.Errorf("ParseQuality(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestDecodeSurfacePNG(t *testing.T) {
	src := patternSurface(t, 9, 5, true)
	var buf bytes.Buffer
	if err := src.Encode(&buf, PNG); err != nil {
		t.Fatalf("Encode() = %v", err)
	}
	got, err := DecodeSurface(&buf)
	if err != nil {
		t.Fatalf("DecodeSurface() = %v", err)
	}
	if d := maxSurfaceDiff(t, got, src); d != 0 {
		t.Errorf("decoded surface differs by %v", d)
	}
}

func TestAverageColor(t *testing.T) {
	s := newTestSurface(t, 4, 4, SRGB)
	s.Fill(s.Bounds(), Pixel{0, 0, 1, 1})
	avg := AverageColor(s)
	want := Pixel{0, 0, 1, 1}
	for c := range 4 {
		if math.Abs(avg[c]-want[c]) > 1e-9 {
			t.Fatalf("AverageColor() = %v, want %v", avg, want)
		}
	}
}
