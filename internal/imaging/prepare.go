package imaging

import (
	"image"

	"github.com/disintegration/imaging"
)

// DefaultMaxDimension bounds the longest side of an image entering the
// sampling pipeline. Palettes extracted from a 512px downscale are visually
// indistinguishable from full-resolution ones at a fraction of the scan cost.
const DefaultMaxDimension = 512

// Prepare downscales img with Lanczos resampling so its longest side is at
// most maxDim pixels, preserving aspect ratio. Images already within bounds
// are returned as-is. A maxDim of 0 or less disables downscaling.
func Prepare(img image.Image, maxDim int) image.Image {
	if maxDim <= 0 {
		return img
	}
	bounds := img.Bounds()
	if bounds.Dx() <= maxDim && bounds.Dy() <= maxDim {
		return img
	}
	return imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)
}
