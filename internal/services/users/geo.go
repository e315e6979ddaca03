package users

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// EarthRadiusMeters is the mean radius of the spherical earth model.
const EarthRadiusMeters = 6371000.0

// Point is a latitude/longitude pair in degrees.
type Point struct {
	Latitude  float64
	Longitude float64
}

// Haversine returns the great-circle distance between a and b in meters.
func Haversine(a, b Point) float64 {
	lat1 := radians(a.Latitude)
	lat2 := radians(b.Latitude)
	dLat := radians(b.Latitude - a.Latitude)
	dLon := radians(b.Longitude - a.Longitude)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon

	// rounding can push h a hair past 1 for antipodal points
	h = math.Min(1, math.Max(0, h))

	return 2 * EarthRadiusMeters * math.Asin(math.Sqrt(h))
}

// FormatKilometers renders meters as kilometers with two decimals, e.g. "12.34 km".
func FormatKilometers(meters float64) string {
	return fmt.Sprintf("%.2f km", meters/1000)
}

// ParseDestination parses the raw destination query values. Both must be
// present and both must be finite numbers.
func ParseDestination(rawLat, rawLon string) (Point, error) {
	if rawLat == "" || rawLon == "" {
		return Point{}, ErrDestinationMissing
	}

	lat, err := parseFinite(rawLat)
	if err != nil {
		return Point{}, err
	}
	lon, err := parseFinite(rawLon)
	if err != nil {
		return Point{}, err
	}

	return Point{Latitude: lat, Longitude: lon}, nil
}

func parseFinite(raw string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, ErrDestinationInvalid
	}
	return f, nil
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
