package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ychsieh/travel-planner/internal/domain"
)

func TestCreateTrip_Created(t *testing.T) {
	trip := sampleTrip()
	trips := &mockTripServicer{
		create: func(ctx context.Context, in domain.Trip) (domain.Trip, error) {
			assert.Equal(t, "Tokyo Spring", in.Name)
			return trip, nil
		},
	}
	h := newTestServer(trips, nil, nil)

	rec := doJSON(t, h, http.MethodPost, "/trips", map[string]any{"name": "Tokyo Spring"})

	require.Equal(t, http.StatusCreated, rec.Code)
	var body map[string]any
	decodeBody(t, rec, &body)
	assert.Equal(t, trip.ID.String(), body["id"])
	assert.Equal(t, "driving", body["travel_mode"])

	// The response carries both the itinerary document and the derived day list.
	days, ok := body["days"].([]any)
	require.True(t, ok)
	require.Len(t, days, 2)
	first, ok := days[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Day 1", first["label"])
}

func TestCreateTrip_ValidationError(t *testing.T) {
	trips := &mockTripServicer{
		create: func(ctx context.Context, in domain.Trip) (domain.Trip, error) {
			return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w: name is required", domain.ErrValidation)
		},
	}
	h := newTestServer(trips, nil, nil)

	rec := doJSON(t, h, http.MethodPost, "/trips", map[string]any{"name": "  "})

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	decodeBody(t, rec, &body)
	assert.Equal(t, "validation_error", body.Error.Code)
	assert.Equal(t, "name is required", body.Error.Message)
}

func TestCreateTrip_MalformedBody(t *testing.T) {
	h := newTestServer(&mockTripServicer{}, nil, nil)

	rec := doJSON(t, h, http.MethodPost, "/trips", nil)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestListTrips_PassesPagination(t *testing.T) {
	var got domain.PaginationParams
	trips := &mockTripServicer{
		listPaged: func(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
			got = p
			return []domain.Trip{sampleTrip()}, 42, nil
		},
	}
	h := newTestServer(trips, nil, nil)

	rec := doJSON(t, h, http.MethodGet, "/trips?page=3&limit=5", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.PaginationParams{Page: 3, Limit: 5}, got)

	var body struct {
		Data       []map[string]any `json:"data"`
		Pagination struct {
			Page  int   `json:"page"`
			Limit int   `json:"limit"`
			Total int64 `json:"total"`
		} `json:"pagination"`
	}
	decodeBody(t, rec, &body)
	assert.Len(t, body.Data, 1)
	assert.Equal(t, 3, body.Pagination.Page)
	assert.Equal(t, int64(42), body.Pagination.Total)
}

func TestListTrips_DefaultsOnGarbageParams(t *testing.T) {
	trips := &mockTripServicer{
		listPaged: func(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
			assert.Equal(t, domain.PaginationParams{Page: 1, Limit: 20}, p)
			return nil, 0, nil
		},
	}
	h := newTestServer(trips, nil, nil)

	rec := doJSON(t, h, http.MethodGet, "/trips?page=abc&limit=", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetTrip_OK(t *testing.T) {
	trip := sampleTrip()
	trips := &mockTripServicer{
		getByID: func(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
			assert.Equal(t, trip.ID, id)
			return trip, nil
		},
	}
	h := newTestServer(trips, nil, nil)

	rec := doJSON(t, h, http.MethodGet, "/trips/"+trip.ID.String(), nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	decodeBody(t, rec, &body)
	assert.Equal(t, "Tokyo Spring", body["name"])
}

func TestGetTrip_NotFound(t *testing.T) {
	trips := &mockTripServicer{
		getByID: func(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
			return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", domain.ErrNotFound)
		},
	}
	h := newTestServer(trips, nil, nil)

	rec := doJSON(t, h, http.MethodGet, "/trips/"+uuid.NewString(), nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetTrip_BadUUID(t *testing.T) {
	// The service must never be reached with an unparsable id.
	h := newTestServer(&mockTripServicer{}, nil, nil)

	rec := doJSON(t, h, http.MethodGet, "/trips/not-a-uuid", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateTrip_UsesPathID(t *testing.T) {
	trip := sampleTrip()
	trips := &mockTripServicer{
		update: func(ctx context.Context, in domain.Trip) (domain.Trip, error) {
			// The path id wins over anything in the body.
			assert.Equal(t, trip.ID, in.ID)
			return trip, nil
		},
	}
	h := newTestServer(trips, nil, nil)

	rec := doJSON(t, h, http.MethodPut, "/trips/"+trip.ID.String(), map[string]any{"name": "Tokyo Spring"})

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUpdateTrip_NotFound(t *testing.T) {
	trips := &mockTripServicer{
		update: func(ctx context.Context, in domain.Trip) (domain.Trip, error) {
			return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", domain.ErrNotFound)
		},
	}
	h := newTestServer(trips, nil, nil)

	rec := doJSON(t, h, http.MethodPut, "/trips/"+uuid.NewString(), map[string]any{"name": "X"})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteTrip_NoContent(t *testing.T) {
	id := uuid.New()
	trips := &mockTripServicer{
		delete: func(ctx context.Context, got uuid.UUID) error {
			assert.Equal(t, id, got)
			return nil
		},
	}
	h := newTestServer(trips, nil, nil)

	rec := doJSON(t, h, http.MethodDelete, "/trips/"+id.String(), nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestDeleteTrip_NotFound(t *testing.T) {
	trips := &mockTripServicer{
		delete: func(ctx context.Context, id uuid.UUID) error {
			return fmt.Errorf("service.TripService.Delete: %w", domain.ErrNotFound)
		},
	}
	h := newTestServer(trips, nil, nil)

	rec := doJSON(t, h, http.MethodDelete, "/trips/"+uuid.NewString(), nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
