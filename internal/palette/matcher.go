package palette

import (
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/palettekit/palette-server/internal/geometry"
)

// fallbackRegionColor is reported for regions containing no opaque pixels.
const fallbackRegionColor = "#888888"

// RegionMarker pairs a region with its nearest palette swatch. RegionColor is
// the raw averaged color of the region's opaque pixels, independent of the
// palette; (X, Y) is the region's vertex centroid rounded to integers.
type RegionMarker struct {
	Hex         string `json:"hex"`
	RegionColor string `json:"regionColor"`
	X           int    `json:"x"`
	Y           int    `json:"y"`
}

// RegionColorMarkers computes one marker per region, in region order. For
// each region it averages the opaque pixels inside the polygon and picks the
// palette entry with the smallest CIEDE2000 distance to that average; on a
// distance tie the earlier (darker) entry wins. A region with no opaque
// pixels gets RegionColor "#888888" and the first palette entry.
//
// With an empty palette no nearest match exists; each marker's Hex then falls
// back to its own RegionColor so the caller still gets a displayable value.
func RegionColorMarkers(img *Image, regions []geometry.Polygon, hexes []string, cfg Config) []RegionMarker {
	swatches := parsePalette(hexes)

	markers := make([]RegionMarker, 0, len(regions))
	for _, region := range regions {
		cx, cy := geometry.Centroid(region)
		marker := RegionMarker{
			X: int(math.Round(cx)),
			Y: int(math.Round(cy)),
		}

		avg, ok := averageRegionColor(img, region, cfg)
		if ok {
			marker.RegionColor = fmt.Sprintf("#%02x%02x%02x", avg.R, avg.G, avg.B)
			marker.Hex = nearestSwatch(avg, hexes, swatches, marker.RegionColor)
		} else {
			marker.RegionColor = fallbackRegionColor
			if len(hexes) > 0 {
				marker.Hex = hexes[0]
			} else {
				marker.Hex = fallbackRegionColor
			}
		}
		markers = append(markers, marker)
	}
	return markers
}

// averageRegionColor averages the opaque pixels inside the polygon. The scan
// is restricted to the polygon's bounding box clipped to the image; points
// outside the box can never be inside the polygon.
func averageRegionColor(img *Image, region geometry.Polygon, cfg Config) (RGB, bool) {
	minX, minY, maxX, maxY := regionBounds(img, region)

	var sumR, sumG, sumB, count int64
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			if !geometry.Contains(region, x, y) {
				continue
			}
			r, g, b, a := img.rgba(x, y)
			if a <= cfg.AlphaThreshold {
				continue
			}
			sumR += int64(r)
			sumG += int64(g)
			sumB += int64(b)
			count++
		}
	}
	if count == 0 {
		return RGB{}, false
	}
	return RGB{
		R: uint8((sumR + count/2) / count),
		G: uint8((sumG + count/2) / count),
		B: uint8((sumB + count/2) / count),
	}, true
}

func regionBounds(img *Image, region geometry.Polygon) (minX, minY, maxX, maxY int) {
	minX, minY = img.Width, img.Height
	maxX, maxY = -1, -1
	for _, v := range region {
		if v.X < minX {
			minX = v.X
		}
		if v.X > maxX {
			maxX = v.X
		}
		if v.Y < minY {
			minY = v.Y
		}
		if v.Y > maxY {
			maxY = v.Y
		}
	}
	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX > img.Width-1 {
		maxX = img.Width - 1
	}
	if maxY > img.Height-1 {
		maxY = img.Height - 1
	}
	return minX, minY, maxX, maxY
}

// nearestSwatch returns the palette hex perceptually closest to avg, or
// fallback when the palette is empty.
func nearestSwatch(avg RGB, hexes []string, swatches []colorful.Color, fallback string) string {
	if len(swatches) == 0 {
		return fallback
	}
	target := colorful.Color{
		R: float64(avg.R) / 255.0,
		G: float64(avg.G) / 255.0,
		B: float64(avg.B) / 255.0,
	}
	best := 0
	bestDist := math.MaxFloat64
	for i, sw := range swatches {
		d := deltaE2000(target, sw)
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return hexes[best]
}

// parsePalette converts hex strings to colors, skipping unparseable entries
// by substituting black so indices stay aligned with the input.
func parsePalette(hexes []string) []colorful.Color {
	if len(hexes) == 0 {
		return nil
	}
	swatches := make([]colorful.Color, len(hexes))
	for i, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			c = colorful.Color{}
		}
		swatches[i] = c
	}
	return swatches
}
