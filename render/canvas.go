package render

import (
	"image"
	"image/color"
	"image/draw"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// canvas is a white raster with an antialiased drawing context on top.
type canvas struct {
	img *image.RGBA
	gc  *drawing.RasterGraphicContext
}

func newCanvas(w, h int) (*canvas, error) {
	c := new(canvas)
	c.img = image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	gc, err := drawing.NewRasterGraphicContext(c.img)
	if err != nil {
		return nil, err
	}
	c.gc = gc
	c.gc.SetDPI(chart.DefaultDPI)
	return c, nil
}

// title draws a heading across the top of the canvas using the chart
// default font.
func (c *canvas) title(s string) {
	f, err := chart.GetDefaultFont()
	if err != nil {
		// No embedded font; fall back to the bitmap face.
		c.label(s, 10, 18, color.Black)
		return
	}
	c.gc.SetFont(f)
	c.gc.SetFontSize(12)
	c.gc.SetFillColor(color.Black)
	c.gc.CreateStringPath(s, 10, 20)
	c.gc.Fill()
}

// label draws small fixed-width text, used for axis tick labels.
func (c *canvas) label(s string, x, y int, col color.Color) {
	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// line strokes a straight segment.
func (c *canvas) line(x1, y1, x2, y2 float64, col color.Color, width float64) {
	c.gc.SetStrokeColor(col)
	c.gc.SetLineWidth(width)
	c.gc.MoveTo(x1, y1)
	c.gc.LineTo(x2, y2)
	c.gc.Stroke()
}

// fillRect paints an axis-aligned rectangle without antialiasing, which
// keeps heatmap cell edges crisp.
func (c *canvas) fillRect(r image.Rectangle, col color.Color) {
	draw.Draw(c.img, r, image.NewUniform(col), image.Point{}, draw.Src)
}
