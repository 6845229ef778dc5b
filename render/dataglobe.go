package render

import (
	"image"
	"image/color"
	"math"

	"github.com/gpdwatkins/RSG-Space-Weather/anim"
	"github.com/gpdwatkins/RSG-Space-Weather/dataset"
	"github.com/gpdwatkins/RSG-Space-Weather/geo"
)

// A DataGlobe renders station measurement vectors on an orthographic
// globe, one arrow per station from two vector components.
type DataGlobe struct {
	// Size is the square output in pixels.
	Size int
	// MaxArrow is the arrow length in pixels the largest vector maps to.
	MaxArrow float64
}

// NewDataGlobe creates a DataGlobe with the default size.
func NewDataGlobe() *DataGlobe {
	r := new(DataGlobe)
	r.Size = 640
	r.MaxArrow = 48
	return r
}

func (r *DataGlobe) Render(slice *dataset.Dataset, opts anim.Options) (image.Image, error) {
	comps := opts.Components
	if len(comps) == 0 {
		comps = []string{"N", "E"}
	}
	if len(comps) != 2 {
		return nil, ErrComponents
	}
	if len(opts.Coords) == 0 {
		return nil, ErrNoCoords
	}

	m, err := reduce2D(slice, "station", "component")
	if err != nil {
		return nil, err
	}

	g, err := newGlobe(r.Size, viewFor(opts))
	if err != nil {
		return nil, err
	}
	if t, ok := frameTime(fixedLabels(m, "time")...); ok && opts.DayNight {
		g.shadeNight(t)
	}
	g.drawBase()
	g.title(frameTitle(m, "time"))

	// Scale arrows against the largest magnitude in this frame.
	type vec struct {
		p      geo.Point
		dn, de float64
	}
	var vecs []vec
	maxMag := 0.0
	for _, st := range opts.Stations {
		p, ok := opts.Coords[st]
		if !ok {
			continue
		}
		si, err := m.LabelIndex("station", st)
		if err != nil {
			continue
		}
		dn, err := componentValue(m, si, comps[0])
		if err != nil {
			return nil, err
		}
		de, err := componentValue(m, si, comps[1])
		if err != nil {
			return nil, err
		}
		if math.IsNaN(dn) || math.IsNaN(de) {
			continue
		}
		if mag := math.Hypot(dn, de); mag > maxMag {
			maxMag = mag
		}
		vecs = append(vecs, vec{p: p, dn: dn, de: de})
	}

	scale := 0.0
	if maxMag > 0 {
		scale = r.MaxArrow / maxMag
	}

	for _, v := range vecs {
		col := color.Color(color.Black)
		if opts.Colour {
			bearing := math.Atan2(v.de, v.dn) // clockwise from north
			t := math.Mod(bearing/(2*math.Pi)+1, 1)
			col = Bearing.GetColor(t, 0.9, 0.45)
		}
		g.marker(v.p, col, 3)
		g.vector(v.p, v.de*scale, v.dn*scale, col, 1.5)
	}

	return g.img, nil
}

func componentValue(m *dataset.Dataset, stationIndex int, comp string) (float64, error) {
	ci, err := m.LabelIndex("component", comp)
	if err != nil {
		return 0, err
	}
	return m.Value(map[string]int{"station": stationIndex, "component": ci})
}

// viewFor picks the resolved orientation, falling back to the centroid
// of whatever coordinates are available.
func viewFor(opts anim.Options) geo.Ortho {
	if opts.Ortho != nil {
		return *opts.Ortho
	}
	return geo.AutoOrtho(opts.Coords.Points(opts.Stations))
}

// fixedLabels collects the fixed labels a slice carries for the given
// axes, in order.
func fixedLabels(m *dataset.Dataset, axes ...string) []string {
	var out []string
	for _, ax := range axes {
		if l, ok := m.FixedLabel(ax); ok {
			out = append(out, l)
		}
	}
	return out
}
