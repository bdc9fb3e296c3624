// Package domain contains the core data types and route-model logic for the
// Travel Planner application. This package has zero SQL and zero HTTP — it is
// imported by every other internal package (repo, service, handler, routing).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// TravelMode selects how travel times between consecutive points are computed.
type TravelMode string

const (
	TravelModeDriving TravelMode = "driving"
	TravelModeWalking TravelMode = "walking"
)

// ParseTravelMode validates a user-supplied travel mode string.
// The empty string maps to driving, the default mode.
func ParseTravelMode(s string) (TravelMode, bool) {
	switch TravelMode(s) {
	case "":
		return TravelModeDriving, true
	case TravelModeDriving, TravelModeWalking:
		return TravelMode(s), true
	}
	return "", false
}

// Trip is the top-level persisted document: a named multi-day itinerary.
// StartDate is optional and only affects calendar labels, never routing.
type Trip struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	StartDate  *time.Time `json:"start_date,omitempty"`
	TravelMode TravelMode `json:"travel_mode"`
	Itinerary  Itinerary  `json:"itinerary"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// DayDate returns the calendar date ("2006-01-02") for the day at the given
// zero-based index, or "" when the trip has no start date.
func (t Trip) DayDate(index int) string {
	if t.StartDate == nil {
		return ""
	}
	return t.StartDate.AddDate(0, 0, index).Format("2006-01-02")
}
