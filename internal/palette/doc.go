// Package palette implements the color-extraction and region-matching
// pipeline: pixel sampling, k-means color clustering, perceptual refinement of
// cluster centroids into a small palette, and per-region nearest-color
// matching.
//
// # Pipeline
//
// Palette generation runs in four stages:
//
//  1. Sampling: every pixel of the decoded image is visited in scan order;
//     transparent pixels, near-black/near-white pixels, and (when regions are
//     given) pixels outside every region are skipped.
//  2. Clustering: the surviving RGB samples are partitioned with k-means over
//     Euclidean RGB distance; each non-empty cluster yields one centroid with
//     channel means rounded to integers.
//  3. Refinement: centroids are luminance-filtered, sorted darkest to
//     brightest, perceptually deduplicated (CIEDE2000), and truncated to the
//     requested palette size.
//  4. Formatting: each kept centroid becomes a lowercase "#rrggbb" string.
//
// Region matching is independent of generation: given a region polygon and a
// finalized palette, it averages the opaque pixels inside the polygon and
// pairs the region with the perceptually nearest palette entry.
//
// # Degenerate inputs
//
// An image with no eligible pixels produces an empty palette; a region with
// no opaque pixels produces a marker with defined fallback values. These are
// expected outcomes of legitimate inputs (a fully transparent or monochrome
// image), not errors. The only hard failure Generate can return is a fault in
// the underlying clustering routine.
//
// # Concurrency
//
// The pipeline holds no cross-call state. Every function here is safe to call
// concurrently from multiple goroutines on independent inputs.
package palette
