package domain

import "math"

// Mean Earth radius in kilometers.
const earthRadiusKm = 6371.0

// Geographic point (WGS84 degrees). Used as a value type by warehouses,
// customers and route stops; never persisted on its own.
type Location struct {
	Lat float64
	Lon float64
}

// Valid reports whether the coordinates are real numbers inside the
// latitude/longitude ranges. Matrix construction requires valid input.
func (l Location) Valid() bool {
	if math.IsNaN(l.Lat) || math.IsNaN(l.Lon) {
		return false
	}
	return l.Lat >= -90 && l.Lat <= 90 && l.Lon >= -180 && l.Lon <= 180
}

// DistanceKm returns the great-circle distance to other in kilometers
// using the haversine formula.
func (l Location) DistanceKm(other Location) float64 {
	lat1 := l.Lat * math.Pi / 180
	lat2 := other.Lat * math.Pi / 180
	dLat := (other.Lat - l.Lat) * math.Pi / 180
	dLon := (other.Lon - l.Lon) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}
