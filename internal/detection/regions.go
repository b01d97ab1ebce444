package detection

import (
	"image"
	"sort"

	"github.com/anthonynsimon/bild/blur"

	"github.com/palettekit/palette-server/internal/geometry"
)

// RegionOptions tune region detection.
type RegionOptions struct {
	// MinArea is the smallest bounding-box area (in square pixels) a contour
	// may cover and still produce a region. Filters out speckle contours.
	MinArea int

	// BlurRadius is the Gaussian pre-blur radius. Zero skips the blur.
	BlurRadius float64

	// GradientThreshold is the grayscale gradient (0-255) above which a
	// pixel counts as an edge.
	GradientThreshold float64

	// MaxRegions caps the number of returned polygons. Zero means no cap.
	MaxRegions int
}

// DefaultRegionOptions returns tuning that works for typical photos and
// flat-color artwork alike.
func DefaultRegionOptions() RegionOptions {
	return RegionOptions{
		MinArea:           100,
		BlurRadius:        1.5,
		GradientThreshold: 30,
		MaxRegions:        32,
	}
}

// Regions detects candidate region polygons, largest first. Each polygon is
// the bounding quadrilateral of one connected edge contour.
func Regions(img image.Image, opts RegionOptions) []geometry.Polygon {
	src := img
	if opts.BlurRadius > 0 {
		src = blur.Gaussian(img, opts.BlurRadius)
	}

	bounds := src.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width < 3 || height < 3 {
		return nil
	}

	edges := edgeMask(src, width, height, opts.GradientThreshold)
	contours := findContours(edges, width, height)

	type candidate struct {
		polygon geometry.Polygon
		area    int
	}
	candidates := make([]candidate, 0, len(contours))
	for _, contour := range contours {
		minX, minY := width, height
		maxX, maxY := 0, 0
		for _, p := range contour {
			if p.X < minX {
				minX = p.X
			}
			if p.X > maxX {
				maxX = p.X
			}
			if p.Y < minY {
				minY = p.Y
			}
			if p.Y > maxY {
				maxY = p.Y
			}
		}
		area := (maxX - minX) * (maxY - minY)
		if area < opts.MinArea {
			continue
		}
		candidates = append(candidates, candidate{
			polygon: geometry.Polygon{
				{X: minX, Y: minY},
				{X: maxX, Y: minY},
				{X: maxX, Y: maxY},
				{X: minX, Y: maxY},
			},
			area: area,
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].area > candidates[j].area
	})
	if opts.MaxRegions > 0 && len(candidates) > opts.MaxRegions {
		candidates = candidates[:opts.MaxRegions]
	}

	polygons := make([]geometry.Polygon, len(candidates))
	for i, c := range candidates {
		polygons[i] = c.polygon
	}
	return polygons
}

// edgeMask marks pixels whose horizontal or vertical grayscale gradient
// exceeds the threshold. Border pixels are never edges.
func edgeMask(img image.Image, width, height int, threshold float64) [][]bool {
	bounds := img.Bounds()
	edges := make([][]bool, height)
	for y := 0; y < height; y++ {
		edges[y] = make([]bool, width)
		for x := 0; x < width; x++ {
			if x == 0 || y == 0 || x == width-1 || y == height-1 {
				continue
			}
			c := grayValue(img, x+bounds.Min.X, y+bounds.Min.Y)
			cx := grayValue(img, x+1+bounds.Min.X, y+bounds.Min.Y)
			cy := grayValue(img, x+bounds.Min.X, y+1+bounds.Min.Y)

			dx := float64(c) - float64(cx)
			if dx < 0 {
				dx = -dx
			}
			dy := float64(c) - float64(cy)
			if dy < 0 {
				dy = -dy
			}
			if dx > threshold || dy > threshold {
				edges[y][x] = true
			}
		}
	}
	return edges
}

// findContours groups connected edge pixels into contours with 8-connected
// flood fill. Contours smaller than 10 pixels are discarded as noise.
func findContours(edges [][]bool, width, height int) [][]geometry.Point {
	visited := make([][]bool, height)
	for y := 0; y < height; y++ {
		visited[y] = make([]bool, width)
	}

	var contours [][]geometry.Point
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if edges[y][x] && !visited[y][x] {
				contour := floodFill(edges, visited, x, y, width, height)
				if len(contour) >= 10 {
					contours = append(contours, contour)
				}
			}
		}
	}
	return contours
}

// floodFill collects the connected component containing (startX, startY).
// Stack-based rather than recursive so large contours cannot overflow.
func floodFill(edges, visited [][]bool, startX, startY, width, height int) []geometry.Point {
	var contour []geometry.Point
	stack := []geometry.Point{{X: startX, Y: startY}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.X < 0 || p.X >= width || p.Y < 0 || p.Y >= height {
			continue
		}
		if visited[p.Y][p.X] || !edges[p.Y][p.X] {
			continue
		}

		visited[p.Y][p.X] = true
		contour = append(contour, p)

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				stack = append(stack, geometry.Point{X: p.X + dx, Y: p.Y + dy})
			}
		}
	}
	return contour
}

// grayValue converts a pixel to grayscale using ITU-R BT.601 weights.
func grayValue(img image.Image, x, y int) uint8 {
	r, g, b, _ := img.At(x, y).RGBA()
	return uint8(float64(r>>8)*0.299 + float64(g>>8)*0.587 + float64(b>>8)*0.114)
}
