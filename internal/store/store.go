// Package store persists per-image records as line-delimited JSON. Each line
// is one self-contained record; new images append, updates rewrite the file
// with the changed record swapped in place. The format stays trivially
// greppable and needs no migration tooling.
package store

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/palettekit/palette-server/internal/geometry"
	"github.com/palettekit/palette-server/internal/palette"
)

// Record is everything the service remembers about one uploaded image.
type Record struct {
	ID        string                 `json:"id"`
	Path      string                 `json:"path"`
	Width     int                    `json:"width"`
	Height    int                    `json:"height"`
	Palette   []string               `json:"palette,omitempty"`
	Regions   []geometry.Polygon     `json:"regions,omitempty"`
	Markers   []palette.RegionMarker `json:"markers,omitempty"`
	CreatedAt time.Time              `json:"createdAt"`
}

// Store reads and writes the record file. All methods are safe for
// concurrent use; writers serialize on an internal mutex.
type Store struct {
	mu   sync.Mutex
	path string
}

// New opens a store backed by the JSONL file at path, creating parent
// directories as needed. The file itself is created lazily on first append.
func New(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}
	return &Store{path: path}, nil
}

// Append adds one record to the end of the file.
func (s *Store) Append(rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer f.Close()

	line, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("append record: %w", err)
	}
	return nil
}

// Put replaces the record with the same ID, keeping every other record and
// the file order intact. A record with an unknown ID is appended. The rewrite
// goes through a temp file and rename so a crash never leaves a half-written
// store behind.
func (s *Store) Put(rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readAll()
	if err != nil {
		return err
	}

	replaced := false
	for i := range records {
		if records[i].ID == rec.ID {
			records[i] = rec
			replaced = true
			break
		}
	}
	if !replaced {
		records = append(records, rec)
	}
	return s.writeAll(records)
}

// Update applies fn to the record with the given ID and rewrites the file,
// all in one critical section. Concurrent updates to the same record each see
// the other's result instead of overwriting it with a stale copy, which a
// Get-modify-Put sequence cannot guarantee. Returns the updated record, or
// false when the ID is unknown.
func (s *Store) Update(id string, fn func(*Record)) (Record, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readAll()
	if err != nil {
		return Record{}, false, err
	}
	for i := range records {
		if records[i].ID == id {
			fn(&records[i])
			if err := s.writeAll(records); err != nil {
				return Record{}, false, err
			}
			return records[i], true, nil
		}
	}
	return Record{}, false, nil
}

// writeAll rewrites the whole file. Callers hold the mutex.
func (s *Store) writeAll(records []Record) error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".store-*")
	if err != nil {
		return fmt.Errorf("create temp store: %w", err)
	}
	tmpName := tmp.Name()

	w := bufio.NewWriter(tmp)
	for _, r := range records {
		line, err := json.Marshal(r)
		if err != nil {
			tmp.Close()
			os.Remove(tmpName)
			return fmt.Errorf("encode record: %w", err)
		}
		if _, err := w.Write(append(line, '\n')); err != nil {
			tmp.Close()
			os.Remove(tmpName)
			return fmt.Errorf("write record: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("flush store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp store: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace store: %w", err)
	}
	return nil
}

// Get returns the record with the given ID, or false when absent.
func (s *Store) Get(id string) (Record, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readAll()
	if err != nil {
		return Record{}, false, err
	}
	for _, r := range records {
		if r.ID == id {
			return r, true, nil
		}
	}
	return Record{}, false, nil
}

// List returns all records in file order.
func (s *Store) List() ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readAll()
}

// readAll scans the file line by line. Callers hold the mutex. A missing
// file is an empty store, not an error.
func (s *Store) readAll() ([]Record, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open store: %w", err)
	}
	defer f.Close()

	var records []Record
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec Record
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("decode record: %w", err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan store: %w", err)
	}
	return records, nil
}
