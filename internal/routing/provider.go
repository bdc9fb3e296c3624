// Package routing adapts external travel-time providers to the route model.
// The rest of the application depends only on the Provider interface; the
// concrete Google Directions adapter and the offline mock both satisfy it.
package routing

import (
	"context"
	"fmt"

	"github.com/ychsieh/travel-planner/internal/domain"
)

// Provider computes travel legs for an ordered point sequence: one leg per
// consecutive pair, in input order.
//
// Callers must never invoke Route with fewer than 2 points — the day
// sequencer short-circuits that case to an empty legs result before the
// adapter is reached.
type Provider interface {
	Route(ctx context.Context, points []domain.LatLng, mode domain.TravelMode) ([]domain.Leg, error)
}

// StatusError is returned when the provider answered but reported a non-success
// routing status (e.g. Google's ZERO_RESULTS or REQUEST_DENIED).
type StatusError struct {
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("routing status %s", e.Status)
}
