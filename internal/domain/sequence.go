package domain

// PointKind identifies what a point in a day's routed sequence refers to.
type PointKind string

const (
	PointAirport PointKind = "airport"
	PointLodging PointKind = "lodging"
	PointStop    PointKind = "stop"
)

// PointRef names the origin of one point in a route plan.
// StopIndex is the stop's position in the day's visit order, or -1 for anchors.
type PointRef struct {
	Kind      PointKind `json:"kind"`
	StopIndex int       `json:"stop_index"`
}

// Slot describes one leg position in the rendered sequence: the travel
// segment between two consecutive rendered items. Slot i corresponds to
// legs[i] returned by the routing collaborator for the same point sequence.
type Slot struct {
	From PointRef `json:"from"`
	To   PointRef `json:"to"`
}

// RoutePlan is the derived routing view of a single day: the ordered point
// sequence to hand to the routing collaborator, and the slot list that maps
// leg indices back onto rendered positions. Points and Slots are built in one
// pass from the same refs, so the two can never disagree — there is no
// separate index formula to drift out of sync.
type RoutePlan struct {
	Points []LatLng
	Slots  []Slot

	refs []PointRef
}

// BuildPointSequence derives the ordered list of routable points for a day.
//
// First day:  airport (if set) → lodging (if set) → stops in order.
// Last day:   lodging (if set) → stops in order → airport (if set).
// Middle day: lodging (if set) → stops in order → lodging again, only when
// the day has at least one stop (a stopless day must not produce a degenerate
// lodging-to-itself route).
//
// A single-day trip resolves with first-day rules. Anchors and stops without
// coordinates contribute nothing — no placeholder points. Pure function of
// its inputs.
func BuildPointSequence(day Day, isFirst, isLast bool) []LatLng {
	return BuildRoutePlan(day, isFirst, isLast).Points
}

// BuildRoutePlan builds the point sequence together with its slot list.
func BuildRoutePlan(day Day, isFirst, isLast bool) RoutePlan {
	var refs []PointRef
	var points []LatLng

	push := func(ref PointRef, p LatLng) {
		refs = append(refs, ref)
		points = append(points, p)
	}
	pushAirport := func() {
		if day.Airport != nil && day.Airport.HasCoords() {
			push(PointRef{Kind: PointAirport, StopIndex: -1}, day.Airport.Point())
		}
	}
	pushLodging := func() {
		if day.Lodging.HasCoords() {
			push(PointRef{Kind: PointLodging, StopIndex: -1}, day.Lodging.Point())
		}
	}
	pushStops := func() {
		for i, s := range day.Stops {
			if !s.HasCoords() {
				continue // defensive: the store should never have admitted one
			}
			push(PointRef{Kind: PointStop, StopIndex: i}, s.Point())
		}
	}

	switch {
	case isFirst:
		pushAirport()
		pushLodging()
		pushStops()
	case isLast:
		pushLodging()
		pushStops()
		pushAirport()
	default:
		pushLodging()
		pushStops()
		if day.Lodging.HasCoords() && len(day.Stops) > 0 {
			push(PointRef{Kind: PointLodging, StopIndex: -1}, day.Lodging.Point())
		}
	}

	plan := RoutePlan{Points: points, refs: refs}
	if len(points) >= 2 {
		plan.Slots = make([]Slot, len(points)-1)
		for i := range plan.Slots {
			plan.Slots[i] = Slot{From: refs[i], To: refs[i+1]}
		}
	}
	return plan
}

// NumLegs returns the number of legs the routing collaborator is expected to
// return for this plan: one per consecutive point pair, zero when the
// sequence is too short to route.
func (p RoutePlan) NumLegs() int {
	if len(p.Points) < 2 {
		return 0
	}
	return len(p.Points) - 1
}

// Routable reports whether the plan has enough points to be worth routing.
// Plans with fewer than 2 points must never reach the routing collaborator.
func (p RoutePlan) Routable() bool {
	return len(p.Points) >= 2
}

// LegIndexBeforeStop returns the index of the leg that arrives at the stop at
// the given position in the day's visit order. ok is false when no leg
// precedes that stop — the stop is the first point of the sequence, or it has
// no coordinates and was filtered out.
func (p RoutePlan) LegIndexBeforeStop(stopIdx int) (int, bool) {
	for i, s := range p.Slots {
		if s.To.Kind == PointStop && s.To.StopIndex == stopIdx {
			return i, true
		}
	}
	return 0, false
}

// LegBeforeStop returns the leg arriving at the given stop position from the
// collaborator's legs slice, when one exists.
func (p RoutePlan) LegBeforeStop(legs []Leg, stopIdx int) (Leg, bool) {
	i, ok := p.LegIndexBeforeStop(stopIdx)
	if !ok || i >= len(legs) {
		return Leg{}, false
	}
	return legs[i], true
}

// TrailingLeg returns the final leg of the sequence — the segment onto the
// trailing anchor (last-day airport departure or middle-day lodging return).
// It is addressed from the end of the legs slice because trailing-anchor
// insertion is conditional. ok is false when the plan does not end on an
// anchor or the legs slice is empty.
func (p RoutePlan) TrailingLeg(legs []Leg) (Leg, bool) {
	if len(legs) == 0 || len(p.refs) < 2 {
		return Leg{}, false
	}
	if p.refs[len(p.refs)-1].Kind == PointStop {
		return Leg{}, false
	}
	return legs[len(legs)-1], true
}

// LegAt looks up the leg for a rendered slot index. Rendered items appear in
// the same order as Points, so slot i maps positionally onto legs[i].
// Out-of-range slots return ok=false, never panic — a short or empty legs
// slice (routing failure, stale result) degrades to "no time shown".
func (p RoutePlan) LegAt(legs []Leg, slot int) (Leg, bool) {
	if slot < 0 || slot >= len(p.Slots) || slot >= len(legs) {
		return Leg{}, false
	}
	return legs[slot], true
}
