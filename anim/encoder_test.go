package anim

import (
	"errors"
	"image/gif"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFrames(t *testing.T, dir string, shades ...uint8) []string {
	t.Helper()
	p := NewPersister(dir)
	paths := make([]string, len(shades))
	for i, shade := range shades {
		path, err := p.Persist(i, solidImage(shade, 24, 24))
		if err != nil {
			t.Fatal(err)
		}
		paths[i] = path
	}
	return paths
}

func decodeGIF(t *testing.T, path string) *gif.GIF {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	g, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatalf("decoding gif: %v", err)
	}
	return g
}

// meanRed averages the red channel of a paletted frame, which survives
// quantization dithering well enough to identify a solid grey frame.
func meanRed(g *gif.GIF, frame int) float64 {
	img := g.Image[frame]
	sum := 0.0
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, _, _, _ := img.At(x, y).RGBA()
			sum += float64(r >> 8)
			n++
		}
	}
	return sum / float64(n)
}

func TestEncode(t *testing.T) {
	dir := t.TempDir()
	paths := writeFrames(t, dir, 0, 80, 160, 240)
	dst := filepath.Join(dir, "out.gif")

	enc := &Encoder{}
	if err := enc.Encode(paths, dst); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	g := decodeGIF(t, dst)
	if len(g.Image) != 4 {
		t.Fatalf("frame count = %d, want 4", len(g.Image))
	}
	if g.LoopCount != 0 {
		t.Errorf("LoopCount = %d, want 0 (loop forever)", g.LoopCount)
	}
	for i, d := range g.Delay {
		if d != 10 {
			t.Errorf("Delay[%d] = %d, want 10 centiseconds", i, d)
		}
	}
	for i, want := range []float64{0, 80, 160, 240} {
		if got := meanRed(g, i); got < want-20 || got > want+20 {
			t.Errorf("frame %d mean = %.1f, want ~%.0f: frame order broken", i, got, want)
		}
	}
}

func TestEncodeCustomDelay(t *testing.T) {
	dir := t.TempDir()
	paths := writeFrames(t, dir, 128)
	dst := filepath.Join(dir, "out.gif")

	enc := &Encoder{FrameDelay: 250 * time.Millisecond}
	if err := enc.Encode(paths, dst); err != nil {
		t.Fatal(err)
	}
	if g := decodeGIF(t, dst); g.Delay[0] != 25 {
		t.Errorf("Delay = %d, want 25", g.Delay[0])
	}
}

func TestEncodeEmpty(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "out.gif")
	enc := &Encoder{}

	if err := enc.Encode(nil, dst); !errors.Is(err, ErrEmptyAnimation) {
		t.Fatalf("err = %v, want ErrEmptyAnimation", err)
	}
	if _, err := os.Stat(dst); !os.IsNotExist(err) {
		t.Error("empty animation must not write an output file")
	}
}

func TestEncodeMissingFrame(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "out.gif")
	enc := &Encoder{}

	err := enc.Encode([]string{filepath.Join(dir, "0.png")}, dst)
	if !errors.Is(err, ErrEncode) {
		t.Errorf("err = %v, want ErrEncode", err)
	}
}

func TestEncodeNormalizesBounds(t *testing.T) {
	dir := t.TempDir()
	p := NewPersister(dir)
	a, err := p.Persist(0, solidImage(40, 24, 24))
	if err != nil {
		t.Fatal(err)
	}
	b, err := p.Persist(1, solidImage(200, 48, 12))
	if err != nil {
		t.Fatal(err)
	}
	dst := filepath.Join(dir, "out.gif")

	enc := &Encoder{}
	if err := enc.Encode([]string{a, b}, dst); err != nil {
		t.Fatal(err)
	}
	g := decodeGIF(t, dst)
	for i, img := range g.Image {
		if img.Bounds().Dx() != 24 || img.Bounds().Dy() != 24 {
			t.Errorf("frame %d bounds = %v, want 24x24", i, img.Bounds())
		}
	}
}
