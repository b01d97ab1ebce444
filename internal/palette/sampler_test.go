package palette

import (
	"testing"

	"github.com/palettekit/palette-server/internal/geometry"
)

// newSolidImage creates a width x height buffer filled with one RGBA value.
func newSolidImage(width, height int, r, g, b, a uint8) *Image {
	pix := make([]uint8, 4*width*height)
	for i := 0; i < len(pix); i += 4 {
		pix[i] = r
		pix[i+1] = g
		pix[i+2] = b
		pix[i+3] = a
	}
	return &Image{Width: width, Height: height, Pix: pix}
}

// setPixel overwrites one pixel in place.
func setPixel(img *Image, x, y int, r, g, b, a uint8) {
	i := 4 * (y*img.Width + x)
	img.Pix[i] = r
	img.Pix[i+1] = g
	img.Pix[i+2] = b
	img.Pix[i+3] = a
}

func TestSamplePixels_AlphaThreshold(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name       string
		alpha      uint8
		wantSample bool
	}{
		{"fully transparent", 0, false},
		{"at threshold", 128, false},
		{"just above threshold", 129, true},
		{"fully opaque", 255, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := newSolidImage(2, 2, 100, 100, 100, tt.alpha)
			samples := SamplePixels(img, nil, cfg)
			if tt.wantSample && len(samples) != 4 {
				t.Errorf("got %d samples, want 4", len(samples))
			}
			if !tt.wantSample && len(samples) != 0 {
				t.Errorf("got %d samples, want 0", len(samples))
			}
		})
	}
}

func TestSamplePixels_LuminanceBand(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name       string
		r, g, b    uint8
		wantSample bool
	}{
		{"near black rejected", 10, 10, 10, false},
		{"just below band", 24, 24, 24, false},
		{"lower edge accepted", 25, 25, 25, true},
		{"mid gray accepted", 100, 100, 100, true},
		{"upper edge accepted", 185, 185, 185, true},
		{"just above band", 186, 186, 186, false},
		{"near white rejected", 250, 250, 250, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := newSolidImage(3, 3, tt.r, tt.g, tt.b, 255)
			samples := SamplePixels(img, nil, cfg)
			if tt.wantSample && len(samples) != 9 {
				t.Errorf("got %d samples, want 9", len(samples))
			}
			if !tt.wantSample && len(samples) != 0 {
				t.Errorf("got %d samples, want 0", len(samples))
			}
		})
	}
}

func TestSamplePixels_RegionMask(t *testing.T) {
	cfg := DefaultConfig()

	// Left half gray 100, right half gray 150. Both colors pass the
	// luminance band, so any right-half leak is visible in the sample set.
	img := newSolidImage(10, 10, 100, 100, 100, 255)
	for y := 0; y < 10; y++ {
		for x := 5; x < 10; x++ {
			setPixel(img, x, y, 150, 150, 150, 255)
		}
	}

	leftHalf := []geometry.Polygon{{
		{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 9}, {X: 0, Y: 9},
	}}

	samples := SamplePixels(img, leftHalf, cfg)
	if len(samples) == 0 {
		t.Fatal("expected samples inside the region, got none")
	}
	for _, s := range samples {
		if s.R != 100 || s.G != 100 || s.B != 100 {
			t.Fatalf("sample (%d,%d,%d) came from outside the region", s.R, s.G, s.B)
		}
	}
}

func TestSamplePixels_NoRegionsSamplesEverything(t *testing.T) {
	cfg := DefaultConfig()
	img := newSolidImage(4, 4, 100, 100, 100, 255)

	if got := len(SamplePixels(img, nil, cfg)); got != 16 {
		t.Errorf("nil regions: got %d samples, want 16", got)
	}
	if got := len(SamplePixels(img, []geometry.Polygon{}, cfg)); got != 16 {
		t.Errorf("empty regions: got %d samples, want 16", got)
	}
}

func TestSamplePixels_MixedEligibility(t *testing.T) {
	cfg := DefaultConfig()

	img := newSolidImage(3, 1, 100, 100, 100, 255)
	setPixel(img, 1, 0, 100, 100, 100, 0) // transparent
	setPixel(img, 2, 0, 250, 250, 250, 255)

	samples := SamplePixels(img, nil, cfg)
	if len(samples) != 1 {
		t.Fatalf("got %d samples, want 1", len(samples))
	}
	if samples[0] != (RGB{100, 100, 100}) {
		t.Errorf("got sample %+v, want {100 100 100}", samples[0])
	}
}
