package palette

import (
	"fmt"

	"github.com/palettekit/palette-server/internal/geometry"
)

// Options control palette generation. K is the requested palette size; zero
// means unset, which clusters with the default k and caps the output at the
// default palette size. Regions, when non-empty, restrict sampling to pixels
// inside at least one polygon.
type Options struct {
	K       int
	Regions []geometry.Polygon
}

// Generate extracts a palette from the image using the default tunables.
func Generate(img *Image, opts Options) ([]string, error) {
	return GenerateWithConfig(img, opts, DefaultConfig())
}

// GenerateWithConfig runs the full pipeline: sample, cluster, refine, format.
//
// The returned palette is sorted darkest to brightest and holds at most
// opts.K entries (clamped to the configured bounds) or cfg.DefaultPaletteSize
// when K is unset. An image with no eligible pixels yields an empty palette;
// the only error condition is a failure in the clustering routine, which is
// returned without a partial result.
func GenerateWithConfig(img *Image, opts Options, cfg Config) ([]string, error) {
	samples := SamplePixels(img, opts.Regions, cfg)
	if len(samples) == 0 {
		return []string{}, nil
	}

	clusterK := cfg.DefaultClusterK
	if opts.K != 0 {
		clusterK = opts.K
	}
	clusterK = cfg.clampK(clusterK)

	centroids, err := clusterColors(samples, clusterK)
	if err != nil {
		return nil, fmt.Errorf("generate palette: %w", err)
	}

	return BuildPalette(centroids, opts.K, cfg), nil
}
