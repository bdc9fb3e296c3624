package domain

// Reorder moves the stop identified by fromID to the position currently held
// by the stop identified by toID, shifting the stops in between by one slot
// (remove-and-reinsert, not a swap). It returns a new slice and never mutates
// the input or any Stop value.
//
// No-op cases return the input slice unchanged: fromID equals toID, or either
// id is absent from the sequence. Invalid drags must never corrupt the order.
func Reorder(stops []Stop, fromID, toID string) []Stop {
	if fromID == toID {
		return stops
	}
	from, to := -1, -1
	for i, s := range stops {
		switch s.ID {
		case fromID:
			from = i
		case toID:
			to = i
		}
	}
	if from < 0 || to < 0 {
		return stops
	}

	out := make([]Stop, 0, len(stops))
	out = append(out, stops[:from]...)
	out = append(out, stops[from+1:]...)

	// Insert the dragged stop at the target's position in the new order.
	out = append(out, Stop{})
	copy(out[to+1:], out[to:])
	out[to] = stops[from]
	return out
}
