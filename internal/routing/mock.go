package routing

import (
	"context"
	"fmt"
	"math"

	"github.com/ychsieh/travel-planner/internal/domain"
)

// MockProvider computes legs from straight-line distance at a fixed speed per
// travel mode. It backs local development when no routing API key is
// configured, and tests that need deterministic leg values.
type MockProvider struct{}

// NewMockProvider returns a MockProvider.
func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

// Route returns one synthetic leg per consecutive point pair.
func (m *MockProvider) Route(_ context.Context, points []domain.LatLng, mode domain.TravelMode) ([]domain.Leg, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("routing: need at least 2 points")
	}

	speedKmh := 40.0 // rough urban driving average
	if mode == domain.TravelModeWalking {
		speedKmh = 5.0
	}

	legs := make([]domain.Leg, len(points)-1)
	for i := range legs {
		meters := haversineMeters(points[i], points[i+1])
		seconds := int(meters / (speedKmh * 1000 / 3600))
		legs[i] = domain.Leg{
			DurationText:    formatDuration(seconds),
			DurationSeconds: seconds,
			DistanceMeters:  int(meters),
		}
	}
	return legs, nil
}

// haversineMeters returns the great-circle distance between two points.
func haversineMeters(a, b domain.LatLng) float64 {
	const earthRadius = 6371000.0
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadius * math.Asin(math.Sqrt(h))
}

// formatDuration renders seconds the way the Directions API does ("5 mins",
// "1 hour 12 mins"), which is what the leg indicators display verbatim.
func formatDuration(seconds int) string {
	mins := (seconds + 30) / 60
	if mins < 1 {
		mins = 1
	}
	hours := mins / 60
	mins = mins % 60
	switch {
	case hours == 0:
		return pluralize(mins, "min")
	case mins == 0:
		return pluralize(hours, "hour")
	default:
		return pluralize(hours, "hour") + " " + pluralize(mins, "min")
	}
}

func pluralize(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
