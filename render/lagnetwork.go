package render

import (
	"image"
	"image/color"
	"math"

	"github.com/gpdwatkins/RSG-Space-Weather/anim"
	"github.com/gpdwatkins/RSG-Space-Weather/dataset"
)

// A LagNetwork renders the directed station network on a globe: an
// arrow from first to second station for every finite lag, coloured by
// the lag on a symmetric scale so lead and lag read as opposite ends of
// the colormap.
type LagNetwork struct {
	Size int
}

// NewLagNetwork creates a LagNetwork with the default size.
func NewLagNetwork() *LagNetwork {
	r := new(LagNetwork)
	r.Size = 640
	return r
}

func (r *LagNetwork) Render(slice *dataset.Dataset, opts anim.Options) (image.Image, error) {
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

	vmin, vmax, ok := m.Range()
	span := math.Max(math.Abs(vmin), math.Abs(vmax))
	if !ok || span == 0 {
		span = 1
	}

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
			if math.IsNaN(v) {
				continue
			}
			pa, oka := opts.Coords[a]
			pb, okb := opts.Coords[b]
			if !oka || !okb {
				continue
			}
			t := (v + span) / (2 * span)
			g.arrowChord(pa, pb, Thermal.GetColor(t, 0.9, 0.5), 1)
		}
	}

	for _, st := range opts.Stations {
		if p, ok := opts.Coords[st]; ok {
			g.marker(p, color.Black, 3)
		}
	}

	return g.img, nil
}
