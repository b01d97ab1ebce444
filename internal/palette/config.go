package palette

// Config holds the pipeline tunables. It is passed explicitly into the
// sampling and refinement stages rather than living as package state, so
// tests and callers can override individual thresholds.
type Config struct {
	// MinLuminance and MaxLuminance bound the Rec. 709 luminance (computed
	// on 0-255 channel values) a pixel or centroid must fall within.
	// Near-black and near-white values outside the band would otherwise
	// dominate clusters without contributing usable swatches.
	MinLuminance float64
	MaxLuminance float64

	// AlphaThreshold: pixels with alpha at or below this are transparent.
	AlphaThreshold uint8

	// MergeThreshold is the CIEDE2000 distance under which a refined
	// centroid is considered a duplicate of an already-kept one.
	MergeThreshold float64

	// DefaultClusterK is the k-means cluster count when the caller does not
	// request a palette size.
	DefaultClusterK int

	// DefaultPaletteSize caps the output palette when the caller does not
	// request a size. Deliberately smaller than DefaultClusterK: clustering
	// over-segments and refinement trims back.
	DefaultPaletteSize int

	// MinK and MaxK bound a caller-requested palette size. Out-of-range
	// requests are clamped, never rejected.
	MinK int
	MaxK int
}

// DefaultConfig returns the production tunables.
func DefaultConfig() Config {
	return Config{
		MinLuminance:       25,
		MaxLuminance:       185,
		AlphaThreshold:     128,
		MergeThreshold:     5,
		DefaultClusterK:    7,
		DefaultPaletteSize: 5,
		MinK:               2,
		MaxK:               20,
	}
}

// clampK clamps a caller-supplied k to [MinK, MaxK]. A zero k means "unset"
// and is resolved by the caller before clamping.
func (c Config) clampK(k int) int {
	if k < c.MinK {
		return c.MinK
	}
	if k > c.MaxK {
		return c.MaxK
	}
	return k
}

// luminance is the Rec. 709 relative luminance of an 8-bit RGB triple,
// on the 0-255 scale.
func luminance(r, g, b uint8) float64 {
	return 0.2126*float64(r) + 0.7152*float64(g) + 0.0722*float64(b)
}
