package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ychsieh/travel-planner/internal/domain"
)

// handleDayRoute handles GET /trips/{tripID}/days/{dayLabel}/route.
// An optional ?mode= query parameter overrides the trip's travel mode for
// this computation only; the stored document is not touched.
func (s *Server) handleDayRoute(w http.ResponseWriter, r *http.Request) {
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

	mode := trip.TravelMode
	if raw := r.URL.Query().Get("mode"); raw != "" {
		m, ok := domain.ParseTravelMode(raw)
		if !ok {
			writeBadRequest(w, r, "mode must be one of: driving, walking")
			return
		}
		mode = m
	}

	route, err := s.routes.ComputeDayRoute(r.Context(), trip, chi.URLParam(r, "dayLabel"), mode)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeNotFound(w, r, "day not found")
			return
		}
		writeInternal(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, route)
}
