package imaging

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// writeTestPNG encodes a solid-color PNG into dir and returns its path.
func writeTestPNG(t *testing.T, dir, name string, width, height int, c color.Color) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
	return path
}

func TestCacheLoad(t *testing.T) {
	cache := NewCache()
	path := writeTestPNG(t, t.TempDir(), "test.png", 10, 8, color.RGBA{100, 100, 100, 255})

	img, err := cache.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if img.Bounds().Dx() != 10 || img.Bounds().Dy() != 8 {
		t.Errorf("got %v, want 10x8", img.Bounds())
	}

	// Second load serves the cached decode.
	again, err := cache.Load(path)
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	if again != img {
		t.Error("second load did not return the cached image")
	}
}

func TestCacheLoad_Errors(t *testing.T) {
	cache := NewCache()
	dir := t.TempDir()

	if _, err := cache.Load(filepath.Join(dir, "missing.png")); err == nil {
		t.Error("expected error for missing file")
	}

	garbage := filepath.Join(dir, "garbage.png")
	if err := os.WriteFile(garbage, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("write garbage file: %v", err)
	}
	if _, err := cache.Load(garbage); err == nil {
		t.Error("expected error for undecodable file")
	}
}

func TestCacheEvict(t *testing.T) {
	cache := NewCache()
	path := writeTestPNG(t, t.TempDir(), "test.png", 4, 4, color.RGBA{50, 50, 50, 255})

	first, err := cache.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	cache.Evict(path)
	second, err := cache.Load(path)
	if err != nil {
		t.Fatalf("Load after evict failed: %v", err)
	}
	if first == second {
		t.Error("evicted entry was still served from cache")
	}
}

func TestLoadInfo(t *testing.T) {
	cache := NewCache()
	path := writeTestPNG(t, t.TempDir(), "info.png", 12, 6, color.RGBA{80, 80, 80, 255})

	info, err := LoadInfo(cache, path)
	if err != nil {
		t.Fatalf("LoadInfo failed: %v", err)
	}
	if info.Width != 12 || info.Height != 6 {
		t.Errorf("got %dx%d, want 12x6", info.Width, info.Height)
	}
	if info.Format != "png" {
		t.Errorf("format: got %s, want png", info.Format)
	}
	if info.FileSizeBytes <= 0 {
		t.Errorf("file size: got %d, want > 0", info.FileSizeBytes)
	}
}
