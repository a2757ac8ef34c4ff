package shared

import "math"

const (
	// EarthRadiusKm is the mean Earth radius used for great-circle distance
	EarthRadiusKm = 6371.0

	// DefaultDistanceKm is assumed when either endpoint lacks coordinates.
	// Missing geocoding must not abort planning.
	DefaultDistanceKm = 500.0
)

// Point is a geographic position with optional coordinates
type Point struct {
	Latitude  *float64
	Longitude *float64
}

// NewPoint creates a Point from concrete coordinates
func NewPoint(lat, lon float64) Point {
	return Point{Latitude: &lat, Longitude: &lon}
}

// HasCoordinates reports whether both latitude and longitude are set
func (p Point) HasCoordinates() bool {
	return p.Latitude != nil && p.Longitude != nil
}

// DistanceKm returns the haversine great-circle distance in kilometres between
// two points, or DefaultDistanceKm when either point is not geocoded.
func DistanceKm(origin, destination Point) float64 {
	if !origin.HasCoordinates() || !destination.HasCoordinates() {
		return DefaultDistanceKm
	}

	lat1 := degToRad(*origin.Latitude)
	lon1 := degToRad(*origin.Longitude)
	lat2 := degToRad(*destination.Latitude)
	lon2 := degToRad(*destination.Longitude)

	dlat := lat2 - lat1
	dlon := lon2 - lon1

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dlon/2)*math.Sin(dlon/2)
	c := 2 * math.Asin(math.Sqrt(a))

	return c * EarthRadiusKm
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}
