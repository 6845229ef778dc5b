package anim

import (
	"image"

	"github.com/gpdwatkins/RSG-Space-Weather/dataset"
	"github.com/gpdwatkins/RSG-Space-Weather/geo"
)

// A Renderer turns one dataset slice into an image. Renderer-specific
// required fields are validated by the renderer itself, not the
// pipeline.
type Renderer interface {
	Render(slice *dataset.Dataset, opts Options) (image.Image, error)
}

// RendererFunc adapts a plain function to the Renderer interface.
type RendererFunc func(slice *dataset.Dataset, opts Options) (image.Image, error)

func (f RendererFunc) Render(slice *dataset.Dataset, opts Options) (image.Image, error) {
	return f(slice, opts)
}

// Options is the configuration bag forwarded to renderers. The pipeline
// fills Stations and Ortho with defaults when they are empty (all
// stations on the dataset; the view over their mean position) and passes
// everything else through untouched.
type Options struct {
	// Stations to include on the plot.
	Stations []string
	// Components to include, e.g. N and E for vector plots.
	Components []string
	// Ortho is the globe viewing orientation; nil means derive it from
	// the included stations.
	Ortho *geo.Ortho
	// Coords supplies station positions for globe plots and the default
	// orientation.
	Coords geo.Catalog
	// DayNight draws a night-time shadow on globe plots.
	DayNight bool
	// Colour colours data vectors instead of drawing them black.
	Colour bool
	// Extra carries renderer-specific settings, unvalidated.
	Extra map[string]any
}

// DefaultOptions returns the option defaults: day/night shadow on,
// colouring off.
func DefaultOptions() Options {
	return Options{DayNight: true}
}
