package render

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/gpdwatkins/RSG-Space-Weather/dataset"
)

// heatmapSpec describes one station-pair heatmap.
type heatmapSpec struct {
	title   string
	rowAxis string
	colAxis string
	cmap    GradientTable
	// vmin/vmax clamp the colour scale; equal values mean autoscale.
	vmin, vmax float64
}

const (
	hmLeft   = 80
	hmTop    = 36
	hmRight  = 56
	hmBottom = 40
)

var missingCell = color.RGBA{235, 235, 235, 255}

// drawHeatmap renders a rowAxis × colAxis matrix with tick labels and a
// colour bar. NaN cells are painted light grey.
func drawHeatmap(slice *dataset.Dataset, spec heatmapSpec, size int) (image.Image, error) {
	rows, err := slice.Labels(spec.rowAxis)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrMissingAxis, spec.rowAxis)
	}
	cols, err := slice.Labels(spec.colAxis)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrMissingAxis, spec.colAxis)
	}

	vmin, vmax := spec.vmin, spec.vmax
	if vmin == vmax {
		var ok bool
		vmin, vmax, ok = slice.Range()
		if !ok {
			vmin, vmax = 0, 1
		} else if vmin == vmax {
			vmin, vmax = vmin-1, vmax+1
		}
	}

	c, err := newCanvas(size, size)
	if err != nil {
		return nil, err
	}
	c.title(spec.title)

	plotW := size - hmLeft - hmRight
	plotH := size - hmTop - hmBottom
	cellW := float64(plotW) / float64(len(cols))
	cellH := float64(plotH) / float64(len(rows))

	for i := range rows {
		for j := range cols {
			v, err := slice.Value(map[string]int{spec.rowAxis: i, spec.colAxis: j})
			if err != nil {
				return nil, err
			}
			cell := image.Rect(
				hmLeft+int(float64(j)*cellW),
				hmTop+int(float64(i)*cellH),
				hmLeft+int(float64(j+1)*cellW),
				hmTop+int(float64(i+1)*cellH),
			)
			if math.IsNaN(v) {
				c.fillRect(cell, missingCell)
				continue
			}
			t := (v - vmin) / (vmax - vmin)
			c.fillRect(cell, spec.cmap.GetColor(t, 0.9, 0.6))
		}
	}

	// Tick labels: rows on the left, columns along the bottom.
	for i, row := range rows {
		y := hmTop + int((float64(i)+0.5)*cellH) + 4
		c.label(clipLabel(row), 6, y, color.Black)
	}
	for j, col := range cols {
		x := hmLeft + int((float64(j)+0.5)*cellW) - 7
		c.label(clipLabel(col), x, size-hmBottom+16, color.Black)
	}

	drawColorbar(c, spec.cmap, vmin, vmax, size)

	return c.img, nil
}

func drawColorbar(c *canvas, cmap GradientTable, vmin, vmax float64, size int) {
	x0 := size - hmRight + 16
	barW := 14
	for y := hmTop; y < size-hmBottom; y++ {
		t := 1 - float64(y-hmTop)/float64(size-hmTop-hmBottom)
		col := cmap.GetColor(t, 0.9, 0.6)
		c.fillRect(image.Rect(x0, y, x0+barW, y+1), col)
	}
	c.label(fmt.Sprintf("%.2g", vmax), x0-4, hmTop-6, color.Black)
	c.label(fmt.Sprintf("%.2g", vmin), x0-4, size-hmBottom+14, color.Black)
}

func clipLabel(s string) string {
	const max = 10
	if len(s) > max {
		return s[:max]
	}
	return s
}
