package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ychsieh/travel-planner/internal/domain"
	"github.com/ychsieh/travel-planner/internal/routing"
)

// DayRoute is the routed view of one day: the point sequence handed to the
// routing collaborator, the slot list mapping legs back onto rendered
// positions, and the legs themselves. Legs is empty — never nil — when the
// day is not routable or the provider failed.
type DayRoute struct {
	TripID   uuid.UUID         `json:"trip_id"`
	DayLabel string            `json:"day_label"`
	Mode     domain.TravelMode `json:"mode"`
	Points   []domain.LatLng   `json:"points"`
	Slots    []domain.Slot     `json:"slots"`
	Legs     []domain.Leg      `json:"legs"`
}

// RouteService computes travel legs for a day of a trip.
//
// Synchronous reads go through ComputeDayRoute. Mutations trigger RefreshAsync
// instead: the recompute runs in the background and its result is only kept if
// no newer recompute for the same day superseded it, so out-of-order provider
// completions can never publish stale legs.
//
// Provider failures are absorbed, not surfaced: the day's legs become empty
// and every rendered leg indicator degrades to "no time shown".
type RouteService struct {
	provider routing.Provider
	tracker  *routing.Tracker
	log      *slog.Logger
	timeout  time.Duration

	mu    sync.RWMutex
	cache map[routing.Key]DayRoute
}

// NewRouteService constructs a RouteService on top of the given provider.
func NewRouteService(provider routing.Provider, log *slog.Logger) *RouteService {
	if log == nil {
		log = slog.Default()
	}
	return &RouteService{
		provider: provider,
		tracker:  routing.NewTracker(),
		log:      log,
		timeout:  30 * time.Second,
		cache:    make(map[routing.Key]DayRoute),
	}
}

// ComputeDayRoute builds the day's route plan and fetches its legs.
// Returns domain.ErrNotFound for an unknown day label. Routing failures are
// logged and degrade to empty legs; they are never an error to the caller.
func (s *RouteService) ComputeDayRoute(ctx context.Context, trip domain.Trip, dayLabel string, mode domain.TravelMode) (DayRoute, error) {
	day, ok := trip.Itinerary.Day(dayLabel)
	if !ok {
		return DayRoute{}, fmt.Errorf("service.RouteService.ComputeDayRoute: day %q: %w", dayLabel, domain.ErrNotFound)
	}
	isFirst, isLast, _ := trip.Itinerary.RoleOf(dayLabel)

	plan := domain.BuildRoutePlan(day, isFirst, isLast)
	key := routing.Key{TripID: trip.ID, DayLabel: dayLabel, Mode: mode}
	token := s.tracker.Begin(key, plan.Points)

	route := DayRoute{
		TripID:   trip.ID,
		DayLabel: dayLabel,
		Mode:     mode,
		Points:   plan.Points,
		Slots:    plan.Slots,
		Legs:     s.fetchLegs(ctx, plan, mode, key),
	}

	if s.tracker.Commit(token) {
		s.store(key, route)
	}
	return route, nil
}

// RefreshAsync recomputes the named day's legs in the background using the
// trip's stored travel mode. The result is cached only if this refresh is
// still the newest one for the day when the provider answers.
func (s *RouteService) RefreshAsync(trip domain.Trip, dayLabel string) {
	day, ok := trip.Itinerary.Day(dayLabel)
	if !ok {
		return
	}
	isFirst, isLast, _ := trip.Itinerary.RoleOf(dayLabel)
	plan := domain.BuildRoutePlan(day, isFirst, isLast)
	mode := trip.TravelMode
	key := routing.Key{TripID: trip.ID, DayLabel: dayLabel, Mode: mode}
	token := s.tracker.Begin(key, plan.Points)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		legs := s.fetchLegs(ctx, plan, mode, key)
		if !s.tracker.Commit(token) {
			return // a newer edit superseded this recompute
		}
		s.store(key, DayRoute{
			TripID:   trip.ID,
			DayLabel: dayLabel,
			Mode:     mode,
			Points:   plan.Points,
			Slots:    plan.Slots,
			Legs:     legs,
		})
	}()
}

// Cached returns the most recently committed route for the day, if any.
func (s *RouteService) Cached(tripID uuid.UUID, dayLabel string, mode domain.TravelMode) (DayRoute, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.cache[routing.Key{TripID: tripID, DayLabel: dayLabel, Mode: mode}]
	return r, ok
}

// fetchLegs calls the provider for a routable plan and absorbs every failure
// into an empty legs slice. Plans with fewer than 2 points never reach the
// provider at all.
func (s *RouteService) fetchLegs(ctx context.Context, plan domain.RoutePlan, mode domain.TravelMode, key routing.Key) []domain.Leg {
	if !plan.Routable() {
		return []domain.Leg{}
	}

	legs, err := s.provider.Route(ctx, plan.Points, mode)
	if err != nil {
		s.log.Warn("route computation failed, degrading to empty legs",
			"trip_id", key.TripID,
			"day", key.DayLabel,
			"mode", string(mode),
			"error", err,
		)
		return []domain.Leg{}
	}
	if legs == nil {
		legs = []domain.Leg{}
	}
	return legs
}

func (s *RouteService) store(key routing.Key, route DayRoute) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache[key] = route
}
