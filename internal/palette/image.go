package palette

import (
	"fmt"
	"image"
	"image/draw"
)

// Image is a decoded pixel buffer: non-premultiplied RGBA bytes in row-major
// order with origin at the top-left, four bytes per pixel starting at
// 4*(y*Width+x). The package never decodes container formats itself; callers
// hand it already-decoded data, typically via FromImage.
type Image struct {
	Width  int
	Height int
	Pix    []uint8
}

// FromImage copies an image.Image of any color model into an Image.
func FromImage(src image.Image) *Image {
	bounds := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), src, bounds.Min, draw.Src)
	return &Image{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Pix:    dst.Pix,
	}
}

// NewImage wraps a raw RGBA buffer, validating its length against the given
// dimensions.
func NewImage(width, height int, pix []uint8) (*Image, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("invalid dimensions %dx%d", width, height)
	}
	if len(pix) != 4*width*height {
		return nil, fmt.Errorf("pixel buffer is %d bytes, want %d for %dx%d RGBA",
			len(pix), 4*width*height, width, height)
	}
	return &Image{Width: width, Height: height, Pix: pix}, nil
}

// rgba returns the channel bytes at (x, y). Coordinates must be in bounds.
func (im *Image) rgba(x, y int) (r, g, b, a uint8) {
	i := 4 * (y*im.Width + x)
	return im.Pix[i], im.Pix[i+1], im.Pix[i+2], im.Pix[i+3]
}
