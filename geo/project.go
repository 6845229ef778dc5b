package geo

import "math"

func rad(deg float64) float64 { return deg * math.Pi / 180 }
func deg(rad float64) float64 { return rad * 180 / math.Pi }

// Project maps p onto an orthographic view centred on view. The result
// is in unit-disc coordinates, x east and y north, each in [-1, 1].
// visible is false for points on the far hemisphere.
func Project(view Ortho, p Point) (x, y float64, visible bool) {
	lat0, lon0 := rad(view.Lat), rad(view.Lon)
	lat, lon := rad(p.Lat), rad(p.Lon)

	cosc := math.Sin(lat0)*math.Sin(lat) + math.Cos(lat0)*math.Cos(lat)*math.Cos(lon-lon0)
	x = math.Cos(lat) * math.Sin(lon-lon0)
	y = math.Cos(lat0)*math.Sin(lat) - math.Sin(lat0)*math.Cos(lat)*math.Cos(lon-lon0)
	return x, y, cosc >= 0
}

// Unproject inverts Project: it maps unit-disc coordinates back to the
// globe. ok is false outside the disc.
func Unproject(view Ortho, x, y float64) (Point, bool) {
	rho := math.Hypot(x, y)
	if rho > 1 {
		return Point{}, false
	}
	if rho == 0 {
		return Point{Lat: view.Lat, Lon: view.Lon}, true
	}

	lat0, lon0 := rad(view.Lat), rad(view.Lon)
	c := math.Asin(rho)
	sinc, cosc := math.Sin(c), math.Cos(c)

	lat := math.Asin(cosc*math.Sin(lat0) + y*sinc*math.Cos(lat0)/rho)
	lon := lon0 + math.Atan2(x*sinc, rho*math.Cos(lat0)*cosc-y*math.Sin(lat0)*sinc)

	return Point{Lat: deg(lat), Lon: deg(lon)}, true
}
