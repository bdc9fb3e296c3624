package domain

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// DayEntry pairs a day label ("Day 1", "Day 2", …) with its data.
type DayEntry struct {
	Label string
	Day   Day
}

// Itinerary is the ordered list of a trip's days.
//
// The persisted JSON form is an object keyed by day label, but iteration
// order of a decoded map is not trip-day order, so the in-memory form is an
// explicit slice kept sorted by the numeric suffix of each label. All
// mutations are copy-on-write at the granularity of the touched day: every
// day not named in a call keeps its exact prior value, so collaborators can
// detect which day changed by shallow comparison.
//
// Mutations with an unknown day label return the itinerary unchanged rather
// than failing; callers that need a hard error check Day(label) first.
type Itinerary struct {
	days []DayEntry
}

// NewItinerary returns an itinerary seeded with an empty "Day 1",
// matching the document shape a freshly created trip starts with.
func NewItinerary() Itinerary {
	return Itinerary{days: []DayEntry{{Label: "Day 1", Day: Day{Stops: []Stop{}}}}}
}

// Days returns the day entries in trip-day order.
// The returned slice is shared; callers must not modify it.
func (it Itinerary) Days() []DayEntry {
	return it.days
}

// Len returns the number of days.
func (it Itinerary) Len() int {
	return len(it.days)
}

// Day returns the data for the named day.
func (it Itinerary) Day(label string) (Day, bool) {
	for _, e := range it.days {
		if e.Label == label {
			return e.Day, true
		}
	}
	return Day{}, false
}

// RoleOf reports whether the named day is the first and/or last day of the
// trip. A single-day trip is both. ok is false for unknown labels.
func (it Itinerary) RoleOf(label string) (isFirst, isLast, ok bool) {
	for i, e := range it.days {
		if e.Label == label {
			return i == 0, i == len(it.days)-1, true
		}
	}
	return false, false, false
}

// ContainsStopID reports whether any day holds a stop with the given id.
// Stop ids are unique across the whole itinerary, not just within a day.
func (it Itinerary) ContainsStopID(id string) bool {
	for _, e := range it.days {
		for _, s := range e.Day.Stops {
			if s.ID == id {
				return true
			}
		}
	}
	return false
}

// AddDay appends a new empty day and returns the new itinerary along with the
// added day's label. The label number is one past the current maximum day
// number — not the day count — so labels stay unique even if earlier days
// were removed by an external editor.
func (it Itinerary) AddDay() (Itinerary, string) {
	max := 0
	for _, e := range it.days {
		if n, ok := DayNumber(e.Label); ok && n > max {
			max = n
		}
	}
	label := fmt.Sprintf("Day %d", max+1)
	days := make([]DayEntry, len(it.days), len(it.days)+1)
	copy(days, it.days)
	days = append(days, DayEntry{Label: label, Day: Day{Stops: []Stop{}}})
	sortDayEntries(days)
	return Itinerary{days: days}, label
}

// SetLodging replaces the named day's lodging anchor wholesale.
// An anchor with an empty name and no coordinates clears the lodging.
func (it Itinerary) SetLodging(label string, a Anchor) Itinerary {
	return it.replaceDay(label, func(d Day) Day {
		d.Lodging = a
		return d
	})
}

// SetAirport replaces the named day's airport anchor wholesale.
// An anchor with an empty name and no coordinates clears the airport.
// The store accepts an airport on any day; the sequencer only consults it on
// the first and last day.
func (it Itinerary) SetAirport(label string, a Anchor) Itinerary {
	return it.replaceDay(label, func(d Day) Day {
		if a.Name == "" && !a.HasCoords() {
			d.Airport = nil
			return d
		}
		cp := a
		d.Airport = &cp
		return d
	})
}

// AddStop appends a stop to the named day. No-op when the label is unknown or
// a stop with the same id already exists anywhere in the itinerary (ids are
// generated at creation, so a duplicate means a caller bug, not user input).
func (it Itinerary) AddStop(label string, s Stop) Itinerary {
	if it.ContainsStopID(s.ID) {
		return it
	}
	return it.replaceDay(label, func(d Day) Day {
		stops := make([]Stop, len(d.Stops), len(d.Stops)+1)
		copy(stops, d.Stops)
		d.Stops = append(stops, s)
		return d
	})
}

// RemoveStop removes the stop with the given id from the named day.
// No-op when the label or stop id is unknown. Removal is the only path that
// destroys a stop; reorders and anchor edits never do.
func (it Itinerary) RemoveStop(label, stopID string) Itinerary {
	day, ok := it.Day(label)
	if !ok {
		return it
	}
	idx := -1
	for i, s := range day.Stops {
		if s.ID == stopID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return it
	}
	return it.replaceDay(label, func(d Day) Day {
		stops := make([]Stop, 0, len(d.Stops)-1)
		stops = append(stops, d.Stops[:idx]...)
		stops = append(stops, d.Stops[idx+1:]...)
		d.Stops = stops
		return d
	})
}

// ReorderStops applies a drag-reorder to the named day's stops.
// No-op when the label is unknown or the reorder itself is a no-op.
func (it Itinerary) ReorderStops(label, fromID, toID string) Itinerary {
	day, ok := it.Day(label)
	if !ok {
		return it
	}
	reordered := Reorder(day.Stops, fromID, toID)
	if sameOrder(day.Stops, reordered) {
		return it
	}
	return it.replaceDay(label, func(d Day) Day {
		d.Stops = reordered
		return d
	})
}

// replaceDay returns a new itinerary with the named day replaced by fn(day).
// Unknown labels return the itinerary unchanged. All other entries keep their
// prior values.
func (it Itinerary) replaceDay(label string, fn func(Day) Day) Itinerary {
	for i, e := range it.days {
		if e.Label != label {
			continue
		}
		days := make([]DayEntry, len(it.days))
		copy(days, it.days)
		days[i].Day = fn(e.Day)
		return Itinerary{days: days}
	}
	return it
}

// DayNumber extracts the trailing integer from a day label ("Day 12" → 12).
func DayNumber(label string) (int, bool) {
	end := len(label)
	start := end
	for start > 0 && label[start-1] >= '0' && label[start-1] <= '9' {
		start--
	}
	if start == end {
		return 0, false
	}
	n, err := strconv.Atoi(label[start:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// sortDayEntries orders entries by the numeric suffix of their label.
// Labels without a number sort after numbered ones, alphabetically, so a
// malformed document still loads deterministically.
func sortDayEntries(days []DayEntry) {
	sort.SliceStable(days, func(i, j int) bool {
		ni, oki := DayNumber(days[i].Label)
		nj, okj := DayNumber(days[j].Label)
		switch {
		case oki && okj:
			if ni != nj {
				return ni < nj
			}
			return days[i].Label < days[j].Label
		case oki:
			return true
		case okj:
			return false
		default:
			return days[i].Label < days[j].Label
		}
	})
}

// sameOrder reports whether two stop slices hold the same ids in the same order.
func sameOrder(a, b []Stop) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the itinerary as an object keyed by day label, the
// shape the persistence collaborator stores.
func (it Itinerary) MarshalJSON() ([]byte, error) {
	m := make(map[string]Day, len(it.days))
	for _, e := range it.days {
		m[e.Label] = e.Day
	}
	return json.Marshal(m)
}

// UnmarshalJSON decodes the label-keyed object form and re-derives trip-day
// order by numeric sort of the labels. Days with a null stops array are
// normalized to an empty slice so callers can always range over Stops.
func (it *Itinerary) UnmarshalJSON(data []byte) error {
	var m map[string]Day
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	days := make([]DayEntry, 0, len(m))
	for label, d := range m {
		if d.Stops == nil {
			d.Stops = []Stop{}
		}
		days = append(days, DayEntry{Label: label, Day: d})
	}
	sortDayEntries(days)
	it.days = days
	return nil
}
