package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/palettekit/palette-server/internal/imaging"
	"github.com/palettekit/palette-server/internal/store"
)

// Config holds the service settings resolved by the entrypoint.
type Config struct {
	// DataDir is where uploaded images and the metadata store live.
	DataDir string

	// MaxDimension bounds the longest side of images entering palette
	// sampling. Zero falls back to imaging.DefaultMaxDimension; a negative
	// value disables downscaling.
	MaxDimension int
}

// Server wires the HTTP surface to the decode cache, the metadata store, and
// the palette core.
type Server struct {
	cache   *imaging.Cache
	records *store.Store
	dataDir string
	maxDim  int
}

// New creates a server rooted at cfg.DataDir, creating the directory and
// opening the metadata store.
func New(cfg Config) (*Server, error) {
	if cfg.DataDir == "" {
		return nil, fmt.Errorf("data directory must be set")
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	records, err := store.New(filepath.Join(cfg.DataDir, "images.jsonl"))
	if err != nil {
		return nil, err
	}

	maxDim := cfg.MaxDimension
	if maxDim == 0 {
		maxDim = imaging.DefaultMaxDimension
	}

	return &Server{
		cache:   imaging.NewCache(),
		records: records,
		dataDir: cfg.DataDir,
		maxDim:  maxDim,
	}, nil
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /images", s.handleUpload)
	mux.HandleFunc("GET /images", s.handleList)
	mux.HandleFunc("GET /images/{id}", s.handleGet)
	mux.HandleFunc("POST /images/{id}/palette", s.handlePalette)
	mux.HandleFunc("POST /images/{id}/markers", s.handleMarkers)
	mux.HandleFunc("GET /images/{id}/regions", s.handleRegions)
	mux.HandleFunc("GET /images/{id}/preview", s.handlePreview)
	return mux
}

// errorBody is the JSON error payload.
type errorBody struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// writeError sends an error payload with the given status code.
func writeError(w http.ResponseWriter, code int, message string) {
	var body errorBody
	body.Error.Code = code
	body.Error.Message = message
	writeJSON(w, code, body)
}

// writeJSON encodes v with the given status code.
func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}
