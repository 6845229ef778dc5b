package anim

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
)

// Persister writes rendered frames into a job's scratch directory as
// <index>.png. Index uniqueness within a job makes the naming
// collision-free; two jobs must not share a scratch directory.
type Persister struct {
	dir string
}

// NewPersister creates a Persister over the given scratch directory.
func NewPersister(dir string) *Persister {
	p := new(Persister)
	p.dir = dir
	return p
}

// Persist writes img as <dir>/<index>.png and returns the path. A
// filesystem failure surfaces as ErrWrite and is not retried.
func (p *Persister) Persist(index int, img image.Image) (string, error) {
	data, err := encodePNG(img)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrWrite, err)
	}

	path := filepath.Join(p.dir, strconv.Itoa(index)+".png")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return path, nil
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
