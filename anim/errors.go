// Package anim is the temporal frame-animation pipeline: it walks a
// dataset along one axis, renders one image per index, persists each as
// a numbered PNG in a scratch directory and encodes the lot into a
// single looping GIF.
package anim

import (
	"errors"
	"fmt"
)

// Pipeline errors. Every failure aborts the whole job; a gap in the
// frame sequence would break playback, so there is no skip-and-continue.
var (
	ErrInvalidName    = errors.New("animation name is nothing but a file extension")
	ErrWrite          = errors.New("frame write failed")
	ErrEmptyAnimation = errors.New("no frames to encode")
	ErrEncode         = errors.New("animation encode failed")
)

// FrameError reports which axis index a render or persist failure
// happened at. It unwraps to the underlying cause.
type FrameError struct {
	Index int
	Err   error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("frame %d: %v", e.Index, e.Err)
}

func (e *FrameError) Unwrap() error { return e.Err }
