package render

import (
	"image"

	"github.com/gpdwatkins/RSG-Space-Weather/anim"
	"github.com/gpdwatkins/RSG-Space-Weather/dataset"
)

// A LagMatrix renders the station-pair lag matrix for one window as a
// heatmap. The zero-lag plane is shown when the slice still carries a
// lag axis.
type LagMatrix struct {
	Size int
}

// NewLagMatrix creates a LagMatrix with the default size.
func NewLagMatrix() *LagMatrix {
	r := new(LagMatrix)
	r.Size = 560
	return r
}

func (r *LagMatrix) Render(slice *dataset.Dataset, opts anim.Options) (image.Image, error) {
	m, err := alignedWindow(slice)
	if err != nil {
		return nil, err
	}
	m, err = reduce2D(m, "first_st", "second_st")
	if err != nil {
		return nil, err
	}
	return drawHeatmap(m, heatmapSpec{
		title:   frameTitle(m, "time_win", "win_start", "time"),
		rowAxis: "first_st",
		colAxis: "second_st",
		cmap:    Thermal,
	}, r.Size)
}

// A CorrThresh renders the correlation-threshold matrix for one window
// as a heatmap on a fixed 0..1 scale.
type CorrThresh struct {
	Size int
}

// NewCorrThresh creates a CorrThresh with the default size.
func NewCorrThresh() *CorrThresh {
	r := new(CorrThresh)
	r.Size = 560
	return r
}

func (r *CorrThresh) Render(slice *dataset.Dataset, opts anim.Options) (image.Image, error) {
	m, err := reduce2D(slice, "first_st", "second_st")
	if err != nil {
		return nil, err
	}
	return drawHeatmap(m, heatmapSpec{
		title:   frameTitle(m, "win_start", "time"),
		rowAxis: "first_st",
		colAxis: "second_st",
		cmap:    Thermal,
		vmin:    0,
		vmax:    1,
	}, r.Size)
}

// A CCAAngle renders the CCA weight-angle matrix for one time as a
// heatmap on a fixed 0..90 degree scale, for the weight chosen at
// construction.
type CCAAngle struct {
	Size   int
	weight string
}

// NewCCAAngle creates a CCAAngle for weight "a" or "b".
func NewCCAAngle(weight string) (*CCAAngle, error) {
	if weight != "a" && weight != "b" {
		return nil, ErrBadWeight
	}
	r := new(CCAAngle)
	r.Size = 560
	r.weight = weight
	return r, nil
}

func (r *CCAAngle) Render(slice *dataset.Dataset, opts anim.Options) (image.Image, error) {
	m := slice
	if m.HasAxis("a_b") {
		i, err := m.LabelIndex("a_b", r.weight)
		if err != nil {
			return nil, err
		}
		m, err = m.Isel("a_b", i)
		if err != nil {
			return nil, err
		}
	}
	m, err := reduce2D(m, "first_st", "second_st")
	if err != nil {
		return nil, err
	}
	return drawHeatmap(m, heatmapSpec{
		title:   "weight " + r.weight + "  " + frameTitle(m, "time", "win_start"),
		rowAxis: "first_st",
		colAxis: "second_st",
		cmap:    Thermal,
		vmin:    0,
		vmax:    90,
	}, r.Size)
}
