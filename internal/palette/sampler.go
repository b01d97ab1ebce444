package palette

import (
	"github.com/palettekit/palette-server/internal/geometry"
)

// RGB is one accepted pixel's color sample.
type RGB struct {
	R uint8
	G uint8
	B uint8
}

// SamplePixels walks the image in scan order (top-left to bottom-right) and
// collects the RGB triples of every eligible pixel. A pixel is skipped when
// it is transparent (alpha at or below cfg.AlphaThreshold), when regions are
// given and it falls outside every region, or when its luminance is outside
// the [cfg.MinLuminance, cfg.MaxLuminance] band.
//
// Sample order carries no meaning downstream but is deterministic for a given
// input, which keeps palette generation reproducible.
func SamplePixels(img *Image, regions []geometry.Polygon, cfg Config) []RGB {
	samples := make([]RGB, 0, img.Width*img.Height/4)
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			r, g, b, a := img.rgba(x, y)
			if a <= cfg.AlphaThreshold {
				continue
			}
			if !geometry.InAny(regions, x, y) {
				continue
			}
			l := luminance(r, g, b)
			if l < cfg.MinLuminance || l > cfg.MaxLuminance {
				continue
			}
			samples = append(samples, RGB{R: r, G: g, B: b})
		}
	}
	return samples
}
