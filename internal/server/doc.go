// Package server exposes the palette pipeline as a JSON-over-HTTP service.
//
// The server owns the integration concerns the core deliberately excludes:
// upload handling and on-disk image storage, image decoding (through the
// imaging cache), and persistence of per-image records in the metadata store.
// Each handler decodes its arguments, calls into the collaborator or core
// function that does the real work, and encodes the result; no pixel-level
// logic lives here.
//
// # Endpoints
//
//	POST /images                 multipart upload, returns the new image id
//	GET  /images                 all stored records
//	GET  /images/{id}            one record
//	POST /images/{id}/palette    generate a palette (optional k, regions)
//	POST /images/{id}/markers    region markers for given regions + palette
//	GET  /images/{id}/regions    auto-detected region polygons
//	GET  /images/{id}/preview    quick palette without clustering
//
// Errors are returned as {"error": {"code": <status>, "message": "..."}} with
// a matching HTTP status code.
package server
