package anim

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"os"
	"time"

	_ "image/png" // frame decoding

	xdraw "golang.org/x/image/draw"
)

// DefaultFrameDelay is how long each frame of an animation is displayed.
const DefaultFrameDelay = 100 * time.Millisecond

// Encoder assembles an ordered list of persisted frames into one looping
// GIF. Frames whose bounds differ from the first frame are rescaled to
// match, since a GIF plays all frames on one canvas.
type Encoder struct {
	// FrameDelay is the per-frame display time; DefaultFrameDelay when
	// zero. GIF stores delays in centiseconds, so it is rounded down.
	FrameDelay time.Duration
	// LoopCount as in gif.GIF: 0 loops forever.
	LoopCount int
}

// Encode writes the frames at framePaths, in order, to dst. It fails
// with ErrEmptyAnimation for zero frames (writing nothing) and ErrEncode
// on any decode or write failure, removing a partial dst.
func (e *Encoder) Encode(framePaths []string, dst string) error {
	if len(framePaths) == 0 {
		return ErrEmptyAnimation
	}

	delay := e.FrameDelay
	if delay == 0 {
		delay = DefaultFrameDelay
	}
	delayCS := int(delay / (10 * time.Millisecond))

	out := &gif.GIF{
		Image:     make([]*image.Paletted, 0, len(framePaths)),
		Delay:     make([]int, 0, len(framePaths)),
		LoopCount: e.LoopCount,
	}

	var canvas image.Rectangle
	for i, path := range framePaths {
		img, err := loadFrame(path)
		if err != nil {
			return fmt.Errorf("%w: frame %d: %v", ErrEncode, i, err)
		}
		if i == 0 {
			canvas = image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy())
		}

		rgba := image.NewRGBA(canvas)
		if img.Bounds().Dx() == canvas.Dx() && img.Bounds().Dy() == canvas.Dy() {
			draw.Draw(rgba, canvas, img, img.Bounds().Min, draw.Src)
		} else {
			xdraw.ApproxBiLinear.Scale(rgba, canvas, img, img.Bounds(), xdraw.Src, nil)
		}

		pimg := image.NewPaletted(canvas, palette.Plan9)
		draw.FloydSteinberg.Draw(pimg, canvas, rgba, image.Point{})

		out.Image = append(out.Image, pimg)
		out.Delay = append(out.Delay, delayCS)
	}

	f, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}
	if err := gif.EncodeAll(f, out); err != nil {
		f.Close()
		os.Remove(dst)
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(dst)
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return nil
}

func loadFrame(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	return img, err
}
