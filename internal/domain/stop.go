package domain

// MealType tags a stop as a meal, for itinerary display.
type MealType string

const (
	MealNone   MealType = "none"
	MealLunch  MealType = "lunch"
	MealDinner MealType = "dinner"
)

// ParseMealType validates a user-supplied meal tag.
// The empty string maps to MealNone.
func ParseMealType(s string) (MealType, bool) {
	switch MealType(s) {
	case "":
		return MealNone, true
	case MealNone, MealLunch, MealDinner:
		return MealType(s), true
	}
	return "", false
}

// LatLng is a geographic coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Stop is a visitable place within a day. Identity is ID, generated once at
// creation and stable across reorders. Lat/Lng are nil until the place has
// been geocoded; a coordless stop must never enter a day's point sequence.
type Stop struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Address  string   `json:"address,omitempty"`
	Lat      *float64 `json:"lat,omitempty"`
	Lng      *float64 `json:"lng,omitempty"`
	PlaceRef string   `json:"place_ref,omitempty"` // opaque external place identifier
	Meal     MealType `json:"meal,omitempty"`
}

// HasCoords reports whether the stop has been geocoded.
func (s Stop) HasCoords() bool {
	return s.Lat != nil && s.Lng != nil
}

// Point returns the stop's coordinates. Only valid when HasCoords is true.
func (s Stop) Point() LatLng {
	return LatLng{Lat: *s.Lat, Lng: *s.Lng}
}

// Anchor is a named geographic point with optional coordinates, used for both
// lodging and airports. An anchor without coordinates is "unset": its name may
// be mid-edit text, and it contributes nothing to routing or rendering.
type Anchor struct {
	Name string   `json:"name"`
	Lat  *float64 `json:"lat,omitempty"`
	Lng  *float64 `json:"lng,omitempty"`
}

// HasCoords reports whether the anchor resolves to a routable point.
func (a Anchor) HasCoords() bool {
	return a.Lat != nil && a.Lng != nil
}

// Point returns the anchor's coordinates. Only valid when HasCoords is true.
func (a Anchor) Point() LatLng {
	return LatLng{Lat: *a.Lat, Lng: *a.Lng}
}

// Day is one day of a trip: an ordered stop sequence (the visit order), a
// lodging anchor, and an optional airport anchor. Only the first and last day
// are expected to carry a meaningful airport; other days may still hold one,
// which is stored but never consulted by the sequencer.
type Day struct {
	Stops   []Stop  `json:"stops"`
	Lodging Anchor  `json:"lodging"`
	Airport *Anchor `json:"airport,omitempty"`
}

// Leg is the travel-time segment between two consecutive points in a day's
// routed sequence. DurationText is what the rendering layer displays; the
// numeric fields ride along when the routing provider supplies them.
type Leg struct {
	DurationText    string `json:"duration_text"`
	DurationSeconds int    `json:"duration_seconds,omitempty"`
	DistanceMeters  int    `json:"distance_meters,omitempty"`
}
