// Package geometry provides the polygon primitives shared by pixel sampling,
// region matching, and overlay rendering. Keeping a single copy here means the
// sampling side and any rendering side always agree on the same centroid and
// containment definitions.
package geometry

import (
	"encoding/json"
	"fmt"
	"math"
)

// Point is a 2D coordinate in image pixel space (origin top-left).
//
// On the wire a point is a two-element array [x, y], matching the region
// format produced by the detection subsystem and accepted by the API layer.
type Point struct {
	X int
	Y int
}

// MarshalJSON encodes the point as [x, y].
func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{p.X, p.Y})
}

// UnmarshalJSON decodes a [x, y] pair.
func (p *Point) UnmarshalJSON(data []byte) error {
	var pair [2]int
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("point must be an [x, y] pair: %w", err)
	}
	p.X = pair[0]
	p.Y = pair[1]
	return nil
}

// Polygon is an ordered sequence of vertices describing a simple, possibly
// non-convex polygon. A polygon with fewer than 2 vertices is degenerate and
// is passed through unchanged by the operations below.
type Polygon []Point

// Centroid returns the arithmetic mean of the polygon's vertices. This is the
// unweighted vertex centroid, not the area centroid. An empty polygon yields
// (0, 0); a single point yields that point.
func Centroid(polygon Polygon) (float64, float64) {
	if len(polygon) == 0 {
		return 0, 0
	}
	var sumX, sumY float64
	for _, v := range polygon {
		sumX += float64(v.X)
		sumY += float64(v.Y)
	}
	n := float64(len(polygon))
	return sumX / n, sumY / n
}

// Contains tests whether (x, y) lies inside the polygon using the standard
// ray-casting parity test. Boundary behavior is not specially handled, but
// repeated queries against the same polygon always agree.
func Contains(polygon Polygon, x, y int) bool {
	if len(polygon) < 3 {
		return false
	}
	px := float64(x)
	py := float64(y)
	inside := false
	n := len(polygon)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		vi := polygon[i]
		vj := polygon[j]
		yi := float64(vi.Y)
		yj := float64(vj.Y)
		if (yi > py) != (yj > py) &&
			px < (float64(vj.X)-float64(vi.X))*(py-yi)/(yj-yi)+float64(vi.X) {
			inside = !inside
		}
	}
	return inside
}

// InAny reports whether (x, y) falls inside at least one of the regions.
// An empty or nil region list means "no mask": every point is accepted.
func InAny(regions []Polygon, x, y int) bool {
	if len(regions) == 0 {
		return true
	}
	for _, region := range regions {
		if Contains(region, x, y) {
			return true
		}
	}
	return false
}

// Shrink moves every vertex toward the vertex centroid by distance pixels,
// clamped so no vertex crosses the centroid. Polygons with fewer than 2
// vertices are returned unchanged. Used for overlay rendering; it shares the
// Centroid definition with sampling so overlays line up with marker positions.
func Shrink(polygon Polygon, distance float64) Polygon {
	if len(polygon) < 2 {
		return polygon
	}
	cx, cy := Centroid(polygon)
	out := make(Polygon, len(polygon))
	for i, v := range polygon {
		dx := cx - float64(v.X)
		dy := cy - float64(v.Y)
		length := math.Hypot(dx, dy)
		if length == 0 {
			out[i] = v
			continue
		}
		frac := distance / length
		if frac > 1 {
			frac = 1
		}
		out[i] = Point{
			X: int(math.Round(float64(v.X) + dx*frac)),
			Y: int(math.Round(float64(v.Y) + dy*frac)),
		}
	}
	return out
}
