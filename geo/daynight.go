package geo

import (
	"math"
	"time"

	"github.com/fogleman/ease"
)

// twilightBand is the cosine-of-zenith half-width over which the night
// shadow fades in, so the terminator is a soft band rather than a hard
// edge.
const twilightBand = 0.1

// SubSolar approximates the point where the sun is overhead at t.
// Declination comes from the usual cosine fit; longitude from the UTC
// fraction of day. Accuracy is a degree or two, plenty for a shadow.
func SubSolar(t time.Time) Point {
	u := t.UTC()
	doy := float64(u.YearDay())
	decl := -23.44 * math.Cos(rad(360.0/365.0*(doy+10)))

	h := float64(u.Hour()) + float64(u.Minute())/60 + float64(u.Second())/3600
	lon := 180 - 15*h
	for lon < -180 {
		lon += 360
	}

	return Point{Lat: decl, Lon: lon}
}

// NightShade returns how deep into night p is for the given sub-solar
// point: 0 in daylight, 1 in full night, eased in between.
func NightShade(sun, p Point) float64 {
	latS, lonS := rad(sun.Lat), rad(sun.Lon)
	lat, lon := rad(p.Lat), rad(p.Lon)
	cosz := math.Sin(latS)*math.Sin(lat) + math.Cos(latS)*math.Cos(lat)*math.Cos(lon-lonS)

	switch {
	case cosz >= twilightBand:
		return 0
	case cosz <= -twilightBand:
		return 1
	default:
		return ease.InOutQuad((twilightBand - cosz) / (2 * twilightBand))
	}
}
