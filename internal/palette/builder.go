package palette

import (
	"sort"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// BuildPalette refines raw centroids into the final hex palette. The stage
// order is part of the contract:
//
//  1. Filter out centroids with luminance outside the configured band.
//  2. Sort survivors ascending by luminance; the sort is stable, so ties keep
//     cluster order.
//  3. Merge: walk the sorted list and drop any candidate whose CIEDE2000
//     distance to an already-kept centroid is below cfg.MergeThreshold; stop
//     accepting once the output cap is reached.
//  4. Format each kept centroid as a lowercase "#rrggbb" string, preserving
//     the luminance-ascending order.
//
// k is the caller-requested palette size; zero means unset, in which case the
// cap is cfg.DefaultPaletteSize. The cap is an upper bound: a scene with few
// distinct colors yields fewer entries, which is expected rather than an
// error.
func BuildPalette(centroids []Centroid, k int, cfg Config) []string {
	capacity := cfg.DefaultPaletteSize
	if k != 0 {
		capacity = cfg.clampK(k)
	}

	filtered := make([]Centroid, 0, len(centroids))
	for _, c := range centroids {
		l := luminance(c.R, c.G, c.B)
		if l < cfg.MinLuminance || l > cfg.MaxLuminance {
			continue
		}
		filtered = append(filtered, c)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return luminance(filtered[i].R, filtered[i].G, filtered[i].B) <
			luminance(filtered[j].R, filtered[j].G, filtered[j].B)
	})

	kept := mergeByDistance(filtered, capacity, cfg.MergeThreshold)

	hexes := make([]string, 0, len(kept))
	for _, c := range kept {
		hexes = append(hexes, centroidColor(c).Hex())
	}
	return hexes
}

// mergeByDistance walks luminance-sorted centroids and keeps each candidate
// whose minimum CIEDE2000 distance to the already-kept set is at least
// threshold, stopping at capacity. Running it over an already-distinct set
// returns that set unchanged.
func mergeByDistance(sorted []Centroid, capacity int, threshold float64) []Centroid {
	kept := make([]Centroid, 0, capacity)
	for _, candidate := range sorted {
		if len(kept) >= capacity {
			break
		}
		duplicate := false
		cc := centroidColor(candidate)
		for _, existing := range kept {
			if deltaE2000(cc, centroidColor(existing)) < threshold {
				duplicate = true
				break
			}
		}
		if !duplicate {
			kept = append(kept, candidate)
		}
	}
	return kept
}

// deltaE2000 is the CIEDE2000 distance between two colors on the standard
// 0-100 scale (black to white is ~100). The library computes the formula on
// L,a,b scaled up by 100 and divides the result back down, so the scale
// factor here recovers the standard value exactly.
func deltaE2000(a, b colorful.Color) float64 {
	return a.DistanceCIEDE2000(b) * 100
}

func centroidColor(c Centroid) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}
