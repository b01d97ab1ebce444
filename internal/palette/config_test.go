package palette

import (
	"math"
	"testing"
)

func TestClampK(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name string
		k    int
		want int
	}{
		{"below minimum", 1, 2},
		{"at minimum", 2, 2},
		{"mid range", 7, 7},
		{"at maximum", 20, 20},
		{"above maximum", 25, 20},
		{"far above maximum", 1000, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cfg.clampK(tt.k); got != tt.want {
				t.Errorf("clampK(%d) = %d, want %d", tt.k, got, tt.want)
			}
		})
	}
}

func TestLuminance(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
		want    float64
	}{
		{"black", 0, 0, 0, 0},
		{"white", 255, 255, 255, 255},
		{"mid gray", 100, 100, 100, 100},
		{"pure red", 255, 0, 0, 0.2126 * 255},
		{"pure green", 0, 255, 0, 0.7152 * 255},
		{"pure blue", 0, 0, 255, 0.0722 * 255},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := luminance(tt.r, tt.g, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("luminance(%d,%d,%d) = %f, want %f", tt.r, tt.g, tt.b, got, tt.want)
			}
		})
	}
}
