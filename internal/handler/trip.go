package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/ychsieh/travel-planner/internal/domain"
)

// tripRequest is the JSON body for POST /trips and PUT /trips/{id}.
// Itinerary is optional on create; an absent or empty itinerary is seeded
// with "Day 1" by the service.
type tripRequest struct {
	Name       string              `json:"name"`
	StartDate  *openapi_types.Date `json:"start_date,omitempty"`
	TravelMode string              `json:"travel_mode,omitempty"`
	Itinerary  *domain.Itinerary   `json:"itinerary,omitempty"`
}

// tripResponse is the JSON shape for a trip document.
// Days carries the calendar label per day, derived from start_date.
type tripResponse struct {
	ID         uuid.UUID           `json:"id"`
	Name       string              `json:"name"`
	StartDate  *openapi_types.Date `json:"start_date,omitempty"`
	TravelMode string              `json:"travel_mode"`
	Itinerary  domain.Itinerary    `json:"itinerary"`
	Days       []dayInfo           `json:"days"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

// dayInfo pairs a day label with its calendar date ("" without a start date).
type dayInfo struct {
	Label string `json:"label"`
	Date  string `json:"date,omitempty"`
}

type tripListResponse struct {
	Data       []tripResponse `json:"data"`
	Pagination pagination     `json:"pagination"`
}

type pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// handleCreateTrip handles POST /trips.
func (s *Server) handleCreateTrip(w http.ResponseWriter, r *http.Request) {
	trip, ok := decodeTrip(w, r)
	if !ok {
		return
	}

	created, err := s.trips.Create(r.Context(), trip)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			writeValidation(w, r, err)
			return
		}
		writeInternal(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, tripToResponse(created))
}

// handleListTrips handles GET /trips.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) handleListTrips(w http.ResponseWriter, r *http.Request) {
	params := domain.NewPaginationParams(
		queryInt(r, "page"),
		queryInt(r, "limit"),
	)

	trips, total, err := s.trips.ListPaged(r.Context(), params)
	if err != nil {
		writeInternal(w, r, err)
		return
	}

	data := make([]tripResponse, len(trips))
	for i, t := range trips {
		data[i] = tripToResponse(t)
	}
	writeJSON(w, r, http.StatusOK, tripListResponse{
		Data:       data,
		Pagination: pagination{Page: params.Page, Limit: params.Limit, Total: total},
	})
}

// handleGetTrip handles GET /trips/{tripID}.
func (s *Server) handleGetTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := tripIDParam(r)
	if !ok {
		writeNotFound(w, r, "trip not found")
		return
	}

	trip, err := s.trips.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeNotFound(w, r, "trip not found")
			return
		}
		writeInternal(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, tripToResponse(trip))
}

// handleUpdateTrip handles PUT /trips/{tripID}.
// The stored document is replaced wholesale (last-write-wins).
func (s *Server) handleUpdateTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := tripIDParam(r)
	if !ok {
		writeNotFound(w, r, "trip not found")
		return
	}
	trip, ok := decodeTrip(w, r)
	if !ok {
		return
	}
	trip.ID = id

	updated, err := s.trips.Update(r.Context(), trip)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeNotFound(w, r, "trip not found")
		case errors.Is(err, domain.ErrValidation):
			writeValidation(w, r, err)
		default:
			writeInternal(w, r, err)
		}
		return
	}

	writeJSON(w, r, http.StatusOK, tripToResponse(updated))
}

// handleDeleteTrip handles DELETE /trips/{tripID}.
func (s *Server) handleDeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := tripIDParam(r)
	if !ok {
		writeNotFound(w, r, "trip not found")
		return
	}

	if err := s.trips.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeNotFound(w, r, "trip not found")
			return
		}
		writeInternal(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// --- mapping helpers --------------------------------------------------------

// decodeTrip parses a tripRequest body into a domain.Trip, responding 422
// itself when the body is missing or malformed.
func decodeTrip(w http.ResponseWriter, r *http.Request) (domain.Trip, bool) {
	var body tripRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeBadRequest(w, r, "request body is required")
		return domain.Trip{}, false
	}

	t := domain.Trip{
		Name:       body.Name,
		TravelMode: domain.TravelMode(body.TravelMode),
	}
	if body.StartDate != nil {
		sd := body.StartDate.Time
		t.StartDate = &sd
	}
	if body.Itinerary != nil {
		t.Itinerary = *body.Itinerary
	}
	return t, true
}

// tripToResponse converts a domain.Trip into its JSON shape.
func tripToResponse(t domain.Trip) tripResponse {
	resp := tripResponse{
		ID:         t.ID,
		Name:       t.Name,
		TravelMode: string(t.TravelMode),
		Itinerary:  t.Itinerary,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
	if t.StartDate != nil {
		sd := openapi_types.Date{Time: *t.StartDate}
		resp.StartDate = &sd
	}
	days := t.Itinerary.Days()
	resp.Days = make([]dayInfo, len(days))
	for i, d := range days {
		resp.Days[i] = dayInfo{Label: d.Label, Date: t.DayDate(i)}
	}
	return resp
}

// queryInt parses an integer query parameter, returning nil when absent or
// malformed so pagination falls back to defaults.
func queryInt(r *http.Request, key string) *int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}
