package users

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHaversine(t *testing.T) {
	tests := []struct {
		name   string
		a, b   Point
		wantKm float64
		delta  float64
	}{
		{"identical points", Point{40.7128, -74.0060}, Point{40.7128, -74.0060}, 0, 1e-9},
		{"one degree along equator", Point{0, 0}, Point{0, 1}, 111.195, 0.001},
		{"new york to london", Point{40.7128, -74.0060}, Point{51.5074, -0.1278}, 5570.2, 1},
		{"antipodal", Point{0, 0}, Point{0, 180}, math.Pi * EarthRadiusMeters / 1000, 0.001},
		{"pole to pole", Point{90, 0}, Point{-90, 0}, math.Pi * EarthRadiusMeters / 1000, 0.001},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Haversine(tt.a, tt.b) / 1000
			assert.InDelta(t, tt.wantKm, got, tt.delta)
			assert.InDelta(t, got, Haversine(tt.b, tt.a)/1000, 1e-9, "distance must be symmetric")
		})
	}
}

func TestFormatKilometers(t *testing.T) {
	assert.Equal(t, "0.00 km", FormatKilometers(0))
	assert.Equal(t, "12.34 km", FormatKilometers(12340))
	assert.Equal(t, "1.00 km", FormatKilometers(999.999))
	assert.Equal(t, "5570.22 km", FormatKilometers(5570222))
}

func TestParseDestination(t *testing.T) {
	tests := []struct {
		name    string
		lat     string
		lon     string
		want    Point
		wantErr error
	}{
		{"valid", "12.5", "-77.25", Point{12.5, -77.25}, nil},
		{"integers", "0", "0", Point{0, 0}, nil},
		{"surrounding spaces", " 1.5 ", "2", Point{1.5, 2}, nil},
		{"missing latitude", "", "10", Point{}, ErrDestinationMissing},
		{"missing longitude", "10", "", Point{}, ErrDestinationMissing},
		{"missing both", "", "", Point{}, ErrDestinationMissing},
		{"non numeric latitude", "abc", "10", Point{}, ErrDestinationInvalid},
		{"non numeric longitude", "10", "abc", Point{}, ErrDestinationInvalid},
		{"trailing garbage", "12abc", "10", Point{}, ErrDestinationInvalid},
		{"infinity", "Inf", "10", Point{}, ErrDestinationInvalid},
		{"nan", "10", "NaN", Point{}, ErrDestinationInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDestination(tt.lat, tt.lon)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
