// Package imaging handles decoded-image plumbing for the palette service:
// loading and caching decoded images, and downscaling large uploads before
// they reach the sampling pipeline.
//
// The package is the system's image-decode collaborator: it turns files into
// image.Image values and nothing more. Pixel-level semantics (transparency
// handling, luminance gates, clustering) live in the palette package, which
// consumes already-decoded data.
//
// # Thread Safety
//
// Cache is safe for concurrent use. Prepare is a pure function.
package imaging
