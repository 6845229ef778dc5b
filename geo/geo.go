// Package geo holds the little geometry the globe renderers need:
// station coordinates, the default viewing orientation, orthographic
// projection and day/night shading.
package geo

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// Point is a location on the globe in degrees.
type Point struct {
	Lat float64
	Lon float64
}

// Ortho is a globe viewing orientation: the point directly under the
// viewer of an orthographic projection.
type Ortho struct {
	Lat float64
	Lon float64
}

// Catalog maps station names to their coordinates.
type Catalog map[string]Point

var ErrBadCatalog = errors.New("malformed station catalog")

// LoadCatalog reads a station catalog from CSV rows of name,lat,lon.
// A header row is skipped when its coordinate fields do not parse.
func LoadCatalog(r io.Reader) (Catalog, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadCatalog, err)
	}

	c := make(Catalog, len(rows))
	for i, row := range rows {
		if len(row) != 3 {
			return nil, fmt.Errorf("%w: want 3 fields, got %d", ErrBadCatalog, len(row))
		}
		lat, latErr := strconv.ParseFloat(row[1], 64)
		lon, lonErr := strconv.ParseFloat(row[2], 64)
		if latErr != nil || lonErr != nil {
			if i == 0 {
				continue // header
			}
			return nil, fmt.Errorf("%w: bad coordinates for %q", ErrBadCatalog, row[0])
		}
		c[row[0]] = Point{Lat: lat, Lon: lon}
	}
	return c, nil
}

// Points returns the coordinates of the named stations, skipping any the
// catalog does not know.
func (c Catalog) Points(names []string) []Point {
	out := make([]Point, 0, len(names))
	for _, n := range names {
		if p, ok := c[n]; ok {
			out = append(out, p)
		}
	}
	return out
}

// AutoOrtho returns the viewing orientation over the mean position of
// the given points. With no points it looks down on 0°N 0°E.
func AutoOrtho(points []Point) Ortho {
	if len(points) == 0 {
		return Ortho{}
	}
	var lat, lon float64
	for _, p := range points {
		lat += p.Lat
		lon += p.Lon
	}
	n := float64(len(points))
	return Ortho{Lat: lat / n, Lon: lon / n}
}
