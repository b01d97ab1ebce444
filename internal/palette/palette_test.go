package palette

import (
	"reflect"
	"testing"

	"github.com/palettekit/palette-server/internal/geometry"
)

func TestGenerate_TransparentImage(t *testing.T) {
	img := newSolidImage(16, 16, 100, 100, 100, 0)

	got, err := Generate(img, Options{})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected empty palette, got nil")
	}
	if len(got) != 0 {
		t.Errorf("expected empty palette, got %v", got)
	}
}

func TestGenerate_AllPixelsOutsideLuminanceBand(t *testing.T) {
	img := newSolidImage(16, 16, 255, 255, 255, 255)

	got, err := Generate(img, Options{})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty palette for pure white image, got %v", got)
	}
}

func TestGenerate_SolidColor(t *testing.T) {
	img := newSolidImage(16, 16, 100, 100, 100, 255)

	got, err := Generate(img, Options{})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	want := []string{"#646464"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestGenerate_TwoColorImage(t *testing.T) {
	img := newSolidImage(20, 20, 100, 100, 100, 255)
	for y := 0; y < 20; y++ {
		for x := 10; x < 20; x++ {
			setPixel(img, x, y, 150, 60, 60, 255)
		}
	}

	got, err := Generate(img, Options{})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(got) == 0 {
		t.Fatal("expected a non-empty palette")
	}
	if len(got) > DefaultConfig().DefaultPaletteSize {
		t.Errorf("palette %v exceeds default cap", got)
	}
	for i, h := range got {
		if !hexPattern.MatchString(h) {
			t.Errorf("entry %d = %q is not lowercase #rrggbb", i, h)
		}
		l := hexLuminance(t, h)
		if l < 25 || l > 185 {
			t.Errorf("entry %q has luminance %f outside the band", h, l)
		}
		if i > 0 && l < hexLuminance(t, got[i-1]) {
			t.Errorf("palette %v not sorted dark to bright", got)
		}
	}
}

func TestGenerate_RegionsRestrictSampling(t *testing.T) {
	// Left half in-band gray, right half reddish; a left-half mask must
	// keep the red out of the palette entirely.
	img := newSolidImage(20, 20, 100, 100, 100, 255)
	for y := 0; y < 20; y++ {
		for x := 10; x < 20; x++ {
			setPixel(img, x, y, 150, 60, 60, 255)
		}
	}

	got, err := Generate(img, Options{
		Regions: []geometry.Polygon{
			{{X: 0, Y: 0}, {X: 8, Y: 0}, {X: 8, Y: 19}, {X: 0, Y: 19}},
		},
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	want := []string{"#646464"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestGenerate_RequestedSizeIsUpperBound(t *testing.T) {
	img := newSolidImage(16, 16, 100, 100, 100, 255)

	// One distinct color cannot fill a five-entry palette.
	got, err := Generate(img, Options{K: 5})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("got %v, want a single entry", got)
	}
}

func TestClusterColors_EmptySamples(t *testing.T) {
	centroids, err := clusterColors(nil, 7)
	if err != nil {
		t.Fatalf("clusterColors failed: %v", err)
	}
	if centroids != nil {
		t.Errorf("expected no centroids, got %v", centroids)
	}
}

func TestClusterColors_FewerSamplesThanK(t *testing.T) {
	samples := []RGB{{100, 100, 100}, {150, 60, 60}}

	centroids, err := clusterColors(samples, 7)
	if err != nil {
		t.Fatalf("clusterColors failed: %v", err)
	}
	if len(centroids) == 0 || len(centroids) > 2 {
		t.Errorf("got %d centroids, want 1 or 2", len(centroids))
	}
}
