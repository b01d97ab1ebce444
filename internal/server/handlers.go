package server

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/palettekit/palette-server/internal/detection"
	"github.com/palettekit/palette-server/internal/geometry"
	"github.com/palettekit/palette-server/internal/imaging"
	"github.com/palettekit/palette-server/internal/palette"
	"github.com/palettekit/palette-server/internal/store"
)

// maxUploadBytes caps a single multipart upload.
const maxUploadBytes = 32 << 20

// === Upload and record handlers ===

type uploadResult struct {
	ID     string `json:"id"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Format string `json:"format"`
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("missing image field: %v", err))
		return
	}
	defer file.Close()

	id, err := newID()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	path := filepath.Join(s.dataDir, id+uploadExt(header.Filename))
	dst, err := os.Create(path)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("store upload: %v", err))
		return
	}
	if _, err := io.Copy(dst, file); err != nil {
		dst.Close()
		os.Remove(path)
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("store upload: %v", err))
		return
	}
	if err := dst.Close(); err != nil {
		os.Remove(path)
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("store upload: %v", err))
		return
	}

	info, err := imaging.LoadInfo(s.cache, path)
	if err != nil {
		os.Remove(path)
		writeError(w, http.StatusBadRequest, fmt.Sprintf("not a decodable image: %v", err))
		return
	}

	rec := store.Record{
		ID:        id,
		Path:      path,
		Width:     info.Width,
		Height:    info.Height,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.records.Append(rec); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, uploadResult{
		ID:     id,
		Width:  info.Width,
		Height: info.Height,
		Format: info.Format,
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	records, err := s.records.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if records == nil {
		records = []store.Record{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.loadRecord(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// === Palette handlers ===

type paletteArgs struct {
	K       int                `json:"k"`
	Regions []geometry.Polygon `json:"regions"`
}

type paletteResult struct {
	Palette []string `json:"palette"`
}

func (s *Server) handlePalette(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.loadRecord(w, r)
	if !ok {
		return
	}

	var args paletteArgs
	if !decodeArgs(w, r, &args) {
		return
	}

	img, err := s.cache.Load(rec.Path)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// Region coordinates are full-resolution pixel space, so downscaling is
	// only safe when no mask is given.
	if len(args.Regions) == 0 {
		img = imaging.Prepare(img, s.maxDim)
	}

	hexes, err := palette.Generate(palette.FromImage(img), palette.Options{
		K:       args.K,
		Regions: args.Regions,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	_, found, err := s.records.Update(rec.ID, func(r *store.Record) {
		r.Palette = hexes
		r.Regions = args.Regions
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown image: %s", rec.ID))
		return
	}

	writeJSON(w, http.StatusOK, paletteResult{Palette: hexes})
}

type markersArgs struct {
	Regions []geometry.Polygon `json:"regions"`
	Palette []string           `json:"palette"`
}

type markersResult struct {
	Markers []palette.RegionMarker `json:"markers"`
}

func (s *Server) handleMarkers(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.loadRecord(w, r)
	if !ok {
		return
	}

	var args markersArgs
	if !decodeArgs(w, r, &args) {
		return
	}
	// A request without a palette uses the one stored for the image.
	if len(args.Palette) == 0 {
		args.Palette = rec.Palette
	}

	img, err := s.cache.Load(rec.Path)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	markers := palette.RegionColorMarkers(
		palette.FromImage(img), args.Regions, args.Palette, palette.DefaultConfig())

	_, found, err := s.records.Update(rec.ID, func(r *store.Record) {
		r.Regions = args.Regions
		r.Markers = markers
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown image: %s", rec.ID))
		return
	}

	writeJSON(w, http.StatusOK, markersResult{Markers: markers})
}

// === Detection and preview handlers ===

type regionsResult struct {
	Regions []geometry.Polygon `json:"regions"`
}

func (s *Server) handleRegions(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.loadRecord(w, r)
	if !ok {
		return
	}

	img, err := s.cache.Load(rec.Path)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// Detection runs at full resolution so polygon coordinates line up with
	// the stored image.
	regions := detection.Regions(img, detection.DefaultRegionOptions())
	if regions == nil {
		regions = []geometry.Polygon{}
	}
	writeJSON(w, http.StatusOK, regionsResult{Regions: regions})
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.loadRecord(w, r)
	if !ok {
		return
	}

	k := 0
	if raw := r.URL.Query().Get("k"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid k: %v", err))
			return
		}
		k = parsed
	}

	img, err := s.cache.Load(rec.Path)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	img = imaging.Prepare(img, s.maxDim)

	hexes := palette.Preview(img, k, palette.DefaultConfig())
	writeJSON(w, http.StatusOK, paletteResult{Palette: hexes})
}

// === Shared helpers ===

// loadRecord resolves the {id} path value; a miss writes the 404 payload.
func (s *Server) loadRecord(w http.ResponseWriter, r *http.Request) (store.Record, bool) {
	id := r.PathValue("id")
	rec, ok, err := s.records.Get(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return store.Record{}, false
	}
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown image: %s", id))
		return store.Record{}, false
	}
	return rec, true
}

// decodeArgs decodes a JSON body into args. An empty body is allowed and
// leaves args at its zero value.
func decodeArgs(w http.ResponseWriter, r *http.Request, args interface{}) bool {
	if r.Body == nil {
		return true
	}
	err := json.NewDecoder(r.Body).Decode(args)
	if err == io.EOF {
		return true
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return false
	}
	return true
}

// newID returns a random 16-hex-character image id.
func newID() (string, error) {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return hex.EncodeToString(buf[:]), nil
}

// uploadExt sanitizes the uploaded filename's extension; anything outside
// the decodable set is stored extensionless.
func uploadExt(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":
		return ".png"
	case ".jpg", ".jpeg":
		return ".jpg"
	case ".gif":
		return ".gif"
	}
	return ""
}
