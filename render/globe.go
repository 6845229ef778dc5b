package render

import (
	"image/color"
	"math"
	"time"

	"github.com/gpdwatkins/RSG-Space-Weather/geo"
)

// globe draws the orthographic base map the globe renderers share: a
// disc with a graticule, markers, chords and vectors, all positioned by
// projecting lat/lon through the view orientation.
type globe struct {
	*canvas
	view geo.Ortho
	cx   float64
	cy   float64
	r    float64
}

func newGlobe(size int, view geo.Ortho) (*globe, error) {
	c, err := newCanvas(size, size)
	if err != nil {
		return nil, err
	}
	g := new(globe)
	g.canvas = c
	g.view = view
	g.cx = float64(size) / 2
	g.cy = float64(size)/2 + 10 // leave headroom for the title
	g.r = float64(size)/2 - 30
	return g, nil
}

// pixel projects p into canvas coordinates. ok is false on the far
// hemisphere.
func (g *globe) pixel(p geo.Point) (float64, float64, bool) {
	x, y, visible := geo.Project(g.view, p)
	return g.cx + x*g.r, g.cy - y*g.r, visible
}

var (
	discEdge  = color.RGBA{60, 60, 60, 255}
	graticule = color.RGBA{200, 200, 200, 255}
)

func (g *globe) drawBase() {
	g.gc.SetStrokeColor(discEdge)
	g.gc.SetLineWidth(1.5)
	g.gc.ArcTo(g.cx, g.cy, g.r, g.r, 0, 2*math.Pi)
	g.gc.Stroke()

	// Graticule every 30 degrees, drawn as short visible segments.
	for lon := -180.0; lon < 180.0; lon += 30 {
		g.polyline(meridian(lon), graticule, 0.5)
	}
	for lat := -60.0; lat <= 60.0; lat += 30 {
		g.polyline(parallel(lat), graticule, 0.5)
	}
}

func meridian(lon float64) []geo.Point {
	pts := make([]geo.Point, 0, 37)
	for lat := -90.0; lat <= 90.0; lat += 5 {
		pts = append(pts, geo.Point{Lat: lat, Lon: lon})
	}
	return pts
}

func parallel(lat float64) []geo.Point {
	pts := make([]geo.Point, 0, 73)
	for lon := -180.0; lon <= 180.0; lon += 5 {
		pts = append(pts, geo.Point{Lat: lat, Lon: lon})
	}
	return pts
}

// polyline strokes the visible runs of a sequence of points.
func (g *globe) polyline(pts []geo.Point, col color.Color, width float64) {
	g.gc.SetStrokeColor(col)
	g.gc.SetLineWidth(width)
	pen := false
	for _, p := range pts {
		x, y, visible := g.pixel(p)
		if !visible {
			if pen {
				g.gc.Stroke()
				pen = false
			}
			continue
		}
		if !pen {
			g.gc.MoveTo(x, y)
			pen = true
		} else {
			g.gc.LineTo(x, y)
		}
	}
	if pen {
		g.gc.Stroke()
	}
}

// marker fills a dot at p when visible.
func (g *globe) marker(p geo.Point, col color.Color, radius float64) {
	x, y, visible := g.pixel(p)
	if !visible {
		return
	}
	g.gc.SetFillColor(col)
	g.gc.ArcTo(x, y, radius, radius, 0, 2*math.Pi)
	g.gc.Fill()
}

// chord strokes a straight segment between two stations when both are
// visible. It reports whether anything was drawn.
func (g *globe) chord(a, b geo.Point, col color.Color, width float64) bool {
	x1, y1, v1 := g.pixel(a)
	x2, y2, v2 := g.pixel(b)
	if !v1 || !v2 {
		return false
	}
	g.line(x1, y1, x2, y2, col, width)
	return true
}

// arrowChord is chord with an arrowhead at b.
func (g *globe) arrowChord(a, b geo.Point, col color.Color, width float64) bool {
	x1, y1, v1 := g.pixel(a)
	x2, y2, v2 := g.pixel(b)
	if !v1 || !v2 {
		return false
	}
	g.line(x1, y1, x2, y2, col, width)
	g.arrowhead(x1, y1, x2, y2, col)
	return true
}

// vector draws an arrow at p from east/north components in pixels.
func (g *globe) vector(p geo.Point, de, dn float64, col color.Color, width float64) {
	x, y, visible := g.pixel(p)
	if !visible {
		return
	}
	x2, y2 := x+de, y-dn
	g.line(x, y, x2, y2, col, width)
	g.arrowhead(x, y, x2, y2, col)
}

func (g *globe) arrowhead(x1, y1, x2, y2 float64, col color.Color) {
	ang := math.Atan2(y2-y1, x2-x1)
	const headLen = 6.0
	const headAng = 0.45
	g.gc.SetFillColor(col)
	g.gc.MoveTo(x2, y2)
	g.gc.LineTo(x2-headLen*math.Cos(ang-headAng), y2-headLen*math.Sin(ang-headAng))
	g.gc.LineTo(x2-headLen*math.Cos(ang+headAng), y2-headLen*math.Sin(ang+headAng))
	g.gc.Close()
	g.gc.Fill()
}

// shadeNight darkens the part of the disc where the sun is below the
// horizon at t, with an eased twilight band. Drawn before markers so
// data stays on top.
func (g *globe) shadeNight(t time.Time) {
	sun := geo.SubSolar(t)
	b := g.img.Bounds()
	for py := b.Min.Y; py < b.Max.Y; py++ {
		for px := b.Min.X; px < b.Max.X; px++ {
			ux := (float64(px) - g.cx) / g.r
			uy := (g.cy - float64(py)) / g.r
			p, ok := geo.Unproject(g.view, ux, uy)
			if !ok {
				continue
			}
			shade := geo.NightShade(sun, p)
			if shade == 0 {
				continue
			}
			f := 1 - 0.45*shade
			c := g.img.RGBAAt(px, py)
			c.R = uint8(float64(c.R) * f)
			c.G = uint8(float64(c.G) * f)
			c.B = uint8(float64(c.B) * f)
			g.img.SetRGBA(px, py, c)
		}
	}
}

// frameTime parses the frame's fixed label on any of the given axes as
// an RFC 3339 timestamp. Shading is skipped when no label parses.
func frameTime(labels ...string) (time.Time, bool) {
	for _, l := range labels {
		if t, err := time.Parse(time.RFC3339, l); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
