// Package dataset provides a small labeled n-dimensional array: named
// axes with ordered labels over a row-major float64 store. It covers the
// slicing the animation pipeline needs and nothing more.
package dataset

import "errors"

// Common errors
var (
	ErrAxisNotFound  = errors.New("axis not found in dataset")
	ErrNoAxes        = errors.New("dataset needs at least one axis")
	ErrEmptyAxis     = errors.New("axis has no labels")
	ErrDupAxis       = errors.New("duplicate axis name")
	ErrLabelNotFound = errors.New("label not found on axis")
	ErrIndexRange    = errors.New("axis index out of range")
	ErrBadRecord     = errors.New("malformed dataset record")
)
