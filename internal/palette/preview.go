package palette

import (
	"image"

	"github.com/cenkalti/dominantcolor"
)

// Preview extracts a quick palette without running k-means: dominant-color
// candidates are pulled in a single pass over the image and pushed through
// the same refinement stage as the clustering path, so the result obeys the
// same luminance band, ordering, and dedup rules as Generate. Intended for
// interactive previews where clustering latency is not worth paying.
func Preview(img image.Image, k int, cfg Config) []string {
	capacity := cfg.DefaultPaletteSize
	if k != 0 {
		capacity = cfg.clampK(k)
	}

	nCandidates := capacity * 4
	if nCandidates < 24 {
		nCandidates = 24
	}
	candidates := dominantcolor.FindWeight(img, nCandidates)

	centroids := make([]Centroid, 0, len(candidates))
	for _, c := range candidates {
		centroids = append(centroids, Centroid{
			R: c.RGBA.R,
			G: c.RGBA.G,
			B: c.RGBA.B,
		})
	}
	return BuildPalette(centroids, k, cfg)
}
