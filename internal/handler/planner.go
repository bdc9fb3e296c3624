package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ychsieh/travel-planner/internal/domain"
	"github.com/ychsieh/travel-planner/internal/service"
)

// anchorRequest is the JSON body for the lodging and airport setters.
// An empty name with no coordinates clears the anchor; a name without
// coordinates is a mid-edit value that is stored but never routed.
type anchorRequest struct {
	Name string   `json:"name"`
	Lat  *float64 `json:"lat,omitempty"`
	Lng  *float64 `json:"lng,omitempty"`
}

// stopRequest is the JSON body for adding a resolved place as a stop.
type stopRequest struct {
	Name     string   `json:"name"`
	Address  string   `json:"address,omitempty"`
	Lat      *float64 `json:"lat"`
	Lng      *float64 `json:"lng"`
	PlaceRef string   `json:"place_ref,omitempty"`
	Meal     string   `json:"meal,omitempty"`
}

// reorderRequest is the JSON body for the drag-reorder endpoint.
type reorderRequest struct {
	FromID string `json:"from_id"`
	ToID   string `json:"to_id"`
}

// addDayResponse returns the saved trip plus the label of the appended day.
type addDayResponse struct {
	Trip     tripResponse `json:"trip"`
	DayLabel string       `json:"day_label"`
}

// addStopResponse returns the saved trip plus the created stop (with its
// generated id, which the client needs for drag and removal operations).
type addStopResponse struct {
	Trip tripResponse `json:"trip"`
	Stop domain.Stop  `json:"stop"`
}

// handleAddDay handles POST /trips/{tripID}/days.
func (s *Server) handleAddDay(w http.ResponseWriter, r *http.Request) {
	id, ok := tripIDParam(r)
	if !ok {
		writeNotFound(w, r, "trip not found")
		return
	}

	trip, label, err := s.planner.AddDay(r.Context(), id)
	if err != nil {
		s.writePlannerError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, addDayResponse{Trip: tripToResponse(trip), DayLabel: label})
}

// handleSetLodging handles PUT /trips/{tripID}/days/{dayLabel}/lodging.
func (s *Server) handleSetLodging(w http.ResponseWriter, r *http.Request) {
	s.handleSetAnchor(w, r, s.planner.SetLodging)
}

// handleSetAirport handles PUT /trips/{tripID}/days/{dayLabel}/airport.
func (s *Server) handleSetAirport(w http.ResponseWriter, r *http.Request) {
	s.handleSetAnchor(w, r, s.planner.SetAirport)
}

// handleSetAnchor is the shared body of the two anchor setters.
func (s *Server) handleSetAnchor(w http.ResponseWriter, r *http.Request, set func(ctx context.Context, tripID uuid.UUID, dayLabel string, anchor domain.Anchor) (domain.Trip, error)) {
	id, ok := tripIDParam(r)
	if !ok {
		writeNotFound(w, r, "trip not found")
		return
	}

	var body anchorRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeBadRequest(w, r, "request body is required")
		return
	}

	trip, err := set(r.Context(), id, chi.URLParam(r, "dayLabel"), domain.Anchor{
		Name: body.Name,
		Lat:  body.Lat,
		Lng:  body.Lng,
	})
	if err != nil {
		s.writePlannerError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, tripToResponse(trip))
}

// handleAddStop handles POST /trips/{tripID}/days/{dayLabel}/stops.
func (s *Server) handleAddStop(w http.ResponseWriter, r *http.Request) {
	id, ok := tripIDParam(r)
	if !ok {
		writeNotFound(w, r, "trip not found")
		return
	}

	var body stopRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeBadRequest(w, r, "request body is required")
		return
	}
	if body.Lat == nil || body.Lng == nil {
		// A stop must arrive resolved: a coordless stop could never be routed.
		writeBadRequest(w, r, "lat and lng are required")
		return
	}

	trip, stop, err := s.planner.AddStop(r.Context(), id, chi.URLParam(r, "dayLabel"), service.PlaceSelection{
		Name:     body.Name,
		Address:  body.Address,
		Lat:      *body.Lat,
		Lng:      *body.Lng,
		PlaceRef: body.PlaceRef,
		Meal:     domain.MealType(body.Meal),
	})
	if err != nil {
		s.writePlannerError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, addStopResponse{Trip: tripToResponse(trip), Stop: stop})
}

// handleRemoveStop handles DELETE /trips/{tripID}/days/{dayLabel}/stops/{stopID}.
// An unknown stop id is a no-op and still answers 200 with the document.
func (s *Server) handleRemoveStop(w http.ResponseWriter, r *http.Request) {
	id, ok := tripIDParam(r)
	if !ok {
		writeNotFound(w, r, "trip not found")
		return
	}

	trip, err := s.planner.RemoveStop(r.Context(), id, chi.URLParam(r, "dayLabel"), chi.URLParam(r, "stopID"))
	if err != nil {
		s.writePlannerError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, tripToResponse(trip))
}

// handleReorderStops handles POST /trips/{tripID}/days/{dayLabel}/stops/reorder.
// Invalid ids are a no-op, not an error: the document comes back unchanged.
func (s *Server) handleReorderStops(w http.ResponseWriter, r *http.Request) {
	id, ok := tripIDParam(r)
	if !ok {
		writeNotFound(w, r, "trip not found")
		return
	}

	var body reorderRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeBadRequest(w, r, "request body is required")
		return
	}

	trip, err := s.planner.ReorderStops(r.Context(), id, chi.URLParam(r, "dayLabel"), body.FromID, body.ToID)
	if err != nil {
		s.writePlannerError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, tripToResponse(trip))
}

// writePlannerError maps planner service errors onto HTTP responses.
func (s *Server) writePlannerError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeNotFound(w, r, "trip or day not found")
	case errors.Is(err, domain.ErrValidation):
		writeValidation(w, r, err)
	default:
		writeInternal(w, r, err)
	}
}
