package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ychsieh/travel-planner/internal/domain"
	"github.com/ychsieh/travel-planner/internal/repo"
)

// RouteRefresher is the slice of the route service the planner depends on:
// after a day mutation is saved, the touched day's legs are recomputed in the
// background. Defined here, in the consumer package, so planner tests can
// inject a recording stub.
type RouteRefresher interface {
	RefreshAsync(trip domain.Trip, dayLabel string)
}

// PlaceSelection is a resolved place handed over by the place-resolution
// collaborator (autocomplete, map click, or direct entry). The planner is
// agnostic to how the resolution happened.
type PlaceSelection struct {
	Name     string
	Address  string
	Lat      float64
	Lng      float64
	PlaceRef string
	Meal     domain.MealType
}

// PlannerService applies single-day mutations to a trip's itinerary: add day,
// set anchors, add/remove/reorder stops. Each mutation loads the document,
// applies one pure itinerary operation, saves the result (last-write-wins),
// and triggers a background leg recompute for the touched day.
type PlannerService struct {
	trips  repo.TripRepo
	routes RouteRefresher
}

// NewPlannerService constructs a PlannerService. routes may be nil in tests
// that do not observe recomputes.
func NewPlannerService(trips repo.TripRepo, routes RouteRefresher) *PlannerService {
	return &PlannerService{trips: trips, routes: routes}
}

// AddDay appends a new empty day and returns the saved trip and the new label.
func (s *PlannerService) AddDay(ctx context.Context, tripID uuid.UUID) (domain.Trip, string, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.Trip{}, "", fmt.Errorf("service.PlannerService.AddDay: %w", err)
	}

	it, label := trip.Itinerary.AddDay()
	trip.Itinerary = it

	saved, err := s.trips.Update(ctx, trip)
	if err != nil {
		return domain.Trip{}, "", fmt.Errorf("service.PlannerService.AddDay: %w", err)
	}
	return saved, label, nil
}

// SetLodging replaces the named day's lodging anchor and saves.
// An anchor with an empty name and no coordinates clears the lodging.
func (s *PlannerService) SetLodging(ctx context.Context, tripID uuid.UUID, dayLabel string, anchor domain.Anchor) (domain.Trip, error) {
	return s.mutateDay(ctx, tripID, dayLabel, "SetLodging", func(it domain.Itinerary) domain.Itinerary {
		return it.SetLodging(dayLabel, anchor)
	})
}

// SetAirport replaces the named day's airport anchor and saves. The airport is
// stored on any day but only consulted by the sequencer on the first and last.
func (s *PlannerService) SetAirport(ctx context.Context, tripID uuid.UUID, dayLabel string, anchor domain.Anchor) (domain.Trip, error) {
	return s.mutateDay(ctx, tripID, dayLabel, "SetAirport", func(it domain.Itinerary) domain.Itinerary {
		return it.SetAirport(dayLabel, anchor)
	})
}

// AddStop creates a stop from a resolved place and appends it to the named
// day. The stop id is generated here and is unique across the itinerary's
// lifetime. Returns domain.ErrValidation when the place has no name — an
// unresolved selection must never become a stop.
func (s *PlannerService) AddStop(ctx context.Context, tripID uuid.UUID, dayLabel string, place PlaceSelection) (domain.Trip, domain.Stop, error) {
	if strings.TrimSpace(place.Name) == "" {
		return domain.Trip{}, domain.Stop{}, fmt.Errorf("%w: place name is required", domain.ErrValidation)
	}
	if _, ok := domain.ParseMealType(string(place.Meal)); !ok {
		return domain.Trip{}, domain.Stop{}, fmt.Errorf("%w: unknown meal type %q", domain.ErrValidation, place.Meal)
	}

	lat, lng := place.Lat, place.Lng
	stop := domain.Stop{
		ID:       uuid.NewString(),
		Name:     place.Name,
		Address:  place.Address,
		Lat:      &lat,
		Lng:      &lng,
		PlaceRef: place.PlaceRef,
		Meal:     place.Meal,
	}
	if place.Meal == "" {
		stop.Meal = domain.MealNone
	}

	trip, err := s.mutateDay(ctx, tripID, dayLabel, "AddStop", func(it domain.Itinerary) domain.Itinerary {
		return it.AddStop(dayLabel, stop)
	})
	if err != nil {
		return domain.Trip{}, domain.Stop{}, err
	}
	return trip, stop, nil
}

// RemoveStop removes the stop with the given id from the named day. An id not
// present in the day is a no-op: the document is returned unchanged and no
// recompute fires.
func (s *PlannerService) RemoveStop(ctx context.Context, tripID uuid.UUID, dayLabel, stopID string) (domain.Trip, error) {
	return s.mutateDay(ctx, tripID, dayLabel, "RemoveStop", func(it domain.Itinerary) domain.Itinerary {
		return it.RemoveStop(dayLabel, stopID)
	})
}

// ReorderStops moves the dragged stop to the drop target's position within the
// named day. Invalid ids are a no-op, never an error.
func (s *PlannerService) ReorderStops(ctx context.Context, tripID uuid.UUID, dayLabel, fromID, toID string) (domain.Trip, error) {
	return s.mutateDay(ctx, tripID, dayLabel, "ReorderStops", func(it domain.Itinerary) domain.Itinerary {
		return it.ReorderStops(dayLabel, fromID, toID)
	})
}

// mutateDay is the shared load → apply → save → refresh cycle.
// Returns domain.ErrNotFound when the trip or the day label is unknown.
// A mutation that leaves the day untouched skips both the save and the
// recompute, so collaborators never observe a phantom write.
func (s *PlannerService) mutateDay(ctx context.Context, tripID uuid.UUID, dayLabel, op string, fn func(domain.Itinerary) domain.Itinerary) (domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.PlannerService.%s: %w", op, err)
	}

	before, ok := trip.Itinerary.Day(dayLabel)
	if !ok {
		return domain.Trip{}, fmt.Errorf("service.PlannerService.%s: day %q: %w", op, dayLabel, domain.ErrNotFound)
	}

	trip.Itinerary = fn(trip.Itinerary)

	after, _ := trip.Itinerary.Day(dayLabel)
	if dayUnchanged(before, after) {
		return trip, nil
	}

	saved, err := s.trips.Update(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.PlannerService.%s: %w", op, err)
	}

	if s.routes != nil {
		s.routes.RefreshAsync(saved, dayLabel)
	}
	return saved, nil
}

// dayUnchanged reports whether a mutation left the day's routable state as it
// was: same stop order, same anchors.
func dayUnchanged(a, b domain.Day) bool {
	if len(a.Stops) != len(b.Stops) {
		return false
	}
	for i := range a.Stops {
		if a.Stops[i].ID != b.Stops[i].ID {
			return false
		}
	}
	return anchorEqual(a.Lodging, b.Lodging) && airportEqual(a.Airport, b.Airport)
}

func anchorEqual(a, b domain.Anchor) bool {
	return a.Name == b.Name && floatPtrEqual(a.Lat, b.Lat) && floatPtrEqual(a.Lng, b.Lng)
}

func airportEqual(a, b *domain.Anchor) bool {
	if a == nil || b == nil {
		return a == b
	}
	return anchorEqual(*a, *b)
}

func floatPtrEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
