// Package detection finds candidate region polygons in an image.
//
// The palette core consumes region polygons without caring where they came
// from; this package is one producer of them. It groups connected edge pixels
// into contours and emits a bounding quadrilateral per contour, which is
// enough to let a user start from auto-suggested regions instead of drawing
// every polygon by hand.
//
// # Algorithm
//
//  1. Gaussian pre-blur to suppress texture noise.
//  2. Grayscale gradient threshold to mark edge pixels.
//  3. 8-connected flood fill to group edge pixels into contours.
//  4. One polygon per contour whose bounding box clears the area floor,
//     largest first.
//
// Detected polygons use the same geometry types the sampling core masks
// with, so they can be fed straight into palette generation.
package detection
