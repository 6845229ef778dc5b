package render

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// GradientTable stores a look-up table of colours interpolated by hue.
// Pos runs 0..1 and must be ascending.
type GradientTable []struct {
	Hue float64
	Pos float64
}

// GetColor gets a colour at the specified point on the look-up table.
func (g GradientTable) GetColor(t, s, l float64) colorful.Color {
	if math.IsNaN(t) || t <= g[0].Pos {
		return colorful.Hcl(g[0].Hue, s, l)
	}
	for i := 0; i < len(g)-1; i++ {
		c1 := g[i]
		c2 := g[i+1]
		if c1.Pos <= t && t <= c2.Pos {
			// We are in between c1 and c2. Go blend them!
			h := (((t - c1.Pos) / (c2.Pos - c1.Pos)) * (c2.Hue - c1.Hue)) + c1.Hue
			return colorful.Hcl(h, s, l)
		}
	}

	return colorful.Hcl(g[len(g)-1].Hue, s, l)
}

// Built-in colormaps. Hues are picked so low values read cold and high
// values read hot.
var (
	// Thermal runs blue through green and yellow to red.
	Thermal = GradientTable{
		{250.0, 0.0},  // Blue
		{180.0, 0.33}, // Turquoise
		{98.0, 0.66},  // Yellow
		{10.0, 1.0},   // Red
	}

	// Bearing wraps the full hue circle, for colouring by direction.
	Bearing = GradientTable{
		{0.0, 0.0},
		{90.0, 0.25},
		{180.0, 0.5},
		{270.0, 0.75},
		{360.0, 1.0},
	}
)
