// Package render holds the built-in frame renderers: two globe plots,
// a directed network plot and three heatmaps. Each is a thin strategy
// over the shared drawing primitives and validates its own required
// options; the pipeline passes options through untouched.
package render

import "errors"

// Renderer errors
var (
	ErrMissingAxis = errors.New("slice is missing a required axis")
	ErrComponents  = errors.New("exactly two components are required")
	ErrNoCoords    = errors.New("no station coordinates supplied")
	ErrBadWeight   = errors.New(`cca weight must be "a" or "b"`)
)
