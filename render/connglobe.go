package render

import (
	"image"
	"image/color"
	"math"

	"github.com/gpdwatkins/RSG-Space-Weather/anim"
	"github.com/gpdwatkins/RSG-Space-Weather/dataset"
)

// A ConnectionsGlobe renders the station network on an orthographic
// globe: a chord between every station pair whose adjacency value
// reaches the threshold.
type ConnectionsGlobe struct {
	Size int
	// Threshold an adjacency value must reach for its chord to be drawn.
	Threshold float64
}

// NewConnectionsGlobe creates a ConnectionsGlobe with the default size
// and a threshold suiting 0/1 adjacency matrices.
func NewConnectionsGlobe() *ConnectionsGlobe {
	r := new(ConnectionsGlobe)
	r.Size = 640
	r.Threshold = 0.5
	return r
}

var connectionStroke = color.RGBA{178, 34, 34, 255}

func (r *ConnectionsGlobe) Render(slice *dataset.Dataset, opts anim.Options) (image.Image, error) {
	if len(opts.Coords) == 0 {
		return nil, ErrNoCoords
	}

	m, err := reduce2D(slice, "first_st", "second_st")
	if err != nil {
		return nil, err
	}

	g, err := newGlobe(r.Size, viewFor(opts))
	if err != nil {
		return nil, err
	}
	if t, ok := frameTime(fixedLabels(m, "win_start", "time")...); ok && opts.DayNight {
		g.shadeNight(t)
	}
	g.drawBase()
	g.title(frameTitle(m, "win_start", "time"))

	first, err := m.Labels("first_st")
	if err != nil {
		return nil, err
	}
	second, err := m.Labels("second_st")
	if err != nil {
		return nil, err
	}

	for i, a := range first {
		for j, b := range second {
			if a == b {
				continue
			}
			v, err := m.Value(map[string]int{"first_st": i, "second_st": j})
			if err != nil {
				return nil, err
			}
			if math.IsNaN(v) || v < r.Threshold {
				continue
			}
			pa, oka := opts.Coords[a]
			pb, okb := opts.Coords[b]
			if !oka || !okb {
				continue
			}
			g.chord(pa, pb, connectionStroke, 1)
		}
	}

	for _, st := range opts.Stations {
		if p, ok := opts.Coords[st]; ok {
			g.marker(p, color.Black, 3)
		}
	}

	return g.img, nil
}
