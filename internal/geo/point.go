// Package geo holds the point type shared by ambulances and hospitals and
// the geodesic math used when the datastore cannot measure distance itself.
package geo

import (
	"fmt"
	"math"
)

const (
	// Mean earth radius in meters, matching the sphere PostGIS uses for
	// geography distances closely enough for dispatch purposes.
	earthRadiusM = 6371000.0

	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0
)

// Point is a WGS84 coordinate pair. Latitude always comes first in Go code;
// PostGIS points are built as (longitude, latitude) in one place only, the
// postgres store.
type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// NewPoint validates the coordinate ranges and returns a Point.
func NewPoint(latitude, longitude float64) (Point, error) {
	if latitude < MinLatitude || latitude > MaxLatitude {
		return Point{}, fmt.Errorf("latitude %v out of range [%v, %v]", latitude, MinLatitude, MaxLatitude)
	}
	if longitude < MinLongitude || longitude > MaxLongitude {
		return Point{}, fmt.Errorf("longitude %v out of range [%v, %v]", longitude, MinLongitude, MaxLongitude)
	}
	return Point{Latitude: latitude, Longitude: longitude}, nil
}

// Coordinates returns the pair in (latitude, longitude) order.
func (p Point) Coordinates() (latitude, longitude float64) {
	return p.Latitude, p.Longitude
}

// Valid reports whether the point lies inside the WGS84 coordinate ranges.
func (p Point) Valid() bool {
	_, err := NewPoint(p.Latitude, p.Longitude)
	return err == nil
}

// Distance returns the great-circle distance between two points in meters,
// computed with the haversine formula.
func Distance(a, b Point) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusM * c
}

// Round2 rounds a distance in meters to 2 decimal places.
func Round2(meters float64) float64 {
	return math.Round(meters*100) / 100
}
