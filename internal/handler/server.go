// Package handler implements the HTTP handlers for the Travel Planner API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (trip.go, planner.go, route.go, …) but all share the same Server
// struct so they can access its dependencies.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ychsieh/travel-planner/internal/domain"
	"github.com/ychsieh/travel-planner/internal/service"
)

// TripServicer defines the trip-document operations the handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PlannerServicer defines the single-day itinerary mutations.
type PlannerServicer interface {
	AddDay(ctx context.Context, tripID uuid.UUID) (domain.Trip, string, error)
	SetLodging(ctx context.Context, tripID uuid.UUID, dayLabel string, anchor domain.Anchor) (domain.Trip, error)
	SetAirport(ctx context.Context, tripID uuid.UUID, dayLabel string, anchor domain.Anchor) (domain.Trip, error)
	AddStop(ctx context.Context, tripID uuid.UUID, dayLabel string, place service.PlaceSelection) (domain.Trip, domain.Stop, error)
	RemoveStop(ctx context.Context, tripID uuid.UUID, dayLabel, stopID string) (domain.Trip, error)
	ReorderStops(ctx context.Context, tripID uuid.UUID, dayLabel, fromID, toID string) (domain.Trip, error)
}

// RouteServicer computes the routed view of one day.
type RouteServicer interface {
	ComputeDayRoute(ctx context.Context, trip domain.Trip, dayLabel string, mode domain.TravelMode) (service.DayRoute, error)
}

// Server holds the handler dependencies for all API endpoints.
type Server struct {
	trips   TripServicer
	planner PlannerServicer
	routes  RouteServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer, planner PlannerServicer, routes RouteServicer) *Server {
	return &Server{trips: trips, planner: planner, routes: routes}
}

// Routes returns the chi router for the full API surface.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.handleHealth)
	r.Get("/openapi.yaml", s.handleOpenAPI)
	r.Get("/docs", s.handleDocs)

	r.Route("/trips", func(r chi.Router) {
		r.Post("/", s.handleCreateTrip)
		r.Get("/", s.handleListTrips)

		r.Route("/{tripID}", func(r chi.Router) {
			r.Get("/", s.handleGetTrip)
			r.Put("/", s.handleUpdateTrip)
			r.Delete("/", s.handleDeleteTrip)

			r.Post("/days", s.handleAddDay)
			r.Route("/days/{dayLabel}", func(r chi.Router) {
				r.Put("/lodging", s.handleSetLodging)
				r.Put("/airport", s.handleSetAirport)
				r.Post("/stops", s.handleAddStop)
				r.Delete("/stops/{stopID}", s.handleRemoveStop)
				r.Post("/stops/reorder", s.handleReorderStops)
				r.Get("/route", s.handleDayRoute)
			})
		})
	})

	return r
}

// tripIDParam parses the {tripID} path parameter.
func tripIDParam(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "tripID"))
	return id, err == nil
}
