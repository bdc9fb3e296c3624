package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/ychsieh/travel-planner/internal/domain"
	"github.com/ychsieh/travel-planner/internal/handler"
	"github.com/ychsieh/travel-planner/internal/service"
)

// mockTripServicer implements handler.TripServicer with per-method function
// fields, so each test wires up exactly the behaviour it needs.
// Calling an unset method panics, which surfaces unexpected interactions.
type mockTripServicer struct {
	create    func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID   func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	listPaged func(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)
	update    func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete    func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTripServicer) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}

func (m *mockTripServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}

func (m *mockTripServicer) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.listPaged(ctx, p)
}

func (m *mockTripServicer) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.update(ctx, trip)
}

func (m *mockTripServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ handler.TripServicer = (*mockTripServicer)(nil)

// mockPlannerServicer implements handler.PlannerServicer the same way.
type mockPlannerServicer struct {
	addDay       func(ctx context.Context, tripID uuid.UUID) (domain.Trip, string, error)
	setLodging   func(ctx context.Context, tripID uuid.UUID, dayLabel string, anchor domain.Anchor) (domain.Trip, error)
	setAirport   func(ctx context.Context, tripID uuid.UUID, dayLabel string, anchor domain.Anchor) (domain.Trip, error)
	addStop      func(ctx context.Context, tripID uuid.UUID, dayLabel string, place service.PlaceSelection) (domain.Trip, domain.Stop, error)
	removeStop   func(ctx context.Context, tripID uuid.UUID, dayLabel, stopID string) (domain.Trip, error)
	reorderStops func(ctx context.Context, tripID uuid.UUID, dayLabel, fromID, toID string) (domain.Trip, error)
}

func (m *mockPlannerServicer) AddDay(ctx context.Context, tripID uuid.UUID) (domain.Trip, string, error) {
	return m.addDay(ctx, tripID)
}

func (m *mockPlannerServicer) SetLodging(ctx context.Context, tripID uuid.UUID, dayLabel string, anchor domain.Anchor) (domain.Trip, error) {
	return m.setLodging(ctx, tripID, dayLabel, anchor)
}

func (m *mockPlannerServicer) SetAirport(ctx context.Context, tripID uuid.UUID, dayLabel string, anchor domain.Anchor) (domain.Trip, error) {
	return m.setAirport(ctx, tripID, dayLabel, anchor)
}

func (m *mockPlannerServicer) AddStop(ctx context.Context, tripID uuid.UUID, dayLabel string, place service.PlaceSelection) (domain.Trip, domain.Stop, error) {
	return m.addStop(ctx, tripID, dayLabel, place)
}

func (m *mockPlannerServicer) RemoveStop(ctx context.Context, tripID uuid.UUID, dayLabel, stopID string) (domain.Trip, error) {
	return m.removeStop(ctx, tripID, dayLabel, stopID)
}

func (m *mockPlannerServicer) ReorderStops(ctx context.Context, tripID uuid.UUID, dayLabel, fromID, toID string) (domain.Trip, error) {
	return m.reorderStops(ctx, tripID, dayLabel, fromID, toID)
}

var _ handler.PlannerServicer = (*mockPlannerServicer)(nil)

// mockRouteServicer implements handler.RouteServicer.
type mockRouteServicer struct {
	computeDayRoute func(ctx context.Context, trip domain.Trip, dayLabel string, mode domain.TravelMode) (service.DayRoute, error)
}

func (m *mockRouteServicer) ComputeDayRoute(ctx context.Context, trip domain.Trip, dayLabel string, mode domain.TravelMode) (service.DayRoute, error) {
	return m.computeDayRoute(ctx, trip, dayLabel, mode)
}

var _ handler.RouteServicer = (*mockRouteServicer)(nil)

// newTestServer builds an http.Handler over the given mocks.
// Nil mocks are allowed for endpoints a test does not touch.
func newTestServer(trips handler.TripServicer, planner handler.PlannerServicer, routes handler.RouteServicer) http.Handler {
	return handler.NewServer(trips, planner, routes).Routes()
}

// doJSON performs a request with an optional JSON body against h and returns
// the recorder. body may be any JSON-marshalable value or nil.
func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, strings.ReplaceAll(path, " ", "%20"), reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// decodeBody unmarshals the recorded response body into out.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

// sampleTrip returns a two-day trip document used across handler tests.
func sampleTrip() domain.Trip {
	lat, lng := 35.6895, 139.6917
	it := domain.NewItinerary()
	it, _ = it.AddDay()
	it = it.SetLodging("Day 1", domain.Anchor{Name: "Shinjuku Hotel", Lat: &lat, Lng: &lng})
	it = it.AddStop("Day 1", domain.Stop{ID: "stop-1", Name: "Meiji Shrine", Lat: &lat, Lng: &lng})
	return domain.Trip{
		ID:         uuid.New(),
		Name:       "Tokyo Spring",
		TravelMode: domain.TravelModeDriving,
		Itinerary:  it,
	}
}
