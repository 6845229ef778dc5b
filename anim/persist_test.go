package anim

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func solidImage(shade uint8, w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{shade, shade, shade, 255})
		}
	}
	return img
}

func TestPersist(t *testing.T) {
	dir := t.TempDir()
	p := NewPersister(dir)

	path, err := p.Persist(7, solidImage(100, 16, 16))
	if err != nil {
		t.Fatalf("Persist: %v", err)
	}
	if want := filepath.Join(dir, "7.png"); path != want {
		t.Errorf("path = %q, want %q", path, want)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decoding persisted frame: %v", err)
	}
	if img.Bounds().Dx() != 16 || img.Bounds().Dy() != 16 {
		t.Errorf("bounds = %v", img.Bounds())
	}
}

func TestPersistWriteError(t *testing.T) {
	p := NewPersister(filepath.Join(t.TempDir(), "does", "not", "exist"))
	if _, err := p.Persist(0, solidImage(0, 4, 4)); !errors.Is(err, ErrWrite) {
		t.Errorf("err = %v, want ErrWrite", err)
	}
}
