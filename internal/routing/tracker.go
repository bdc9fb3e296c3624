package routing

import (
	"strconv"
	"sync"

	"github.com/google/uuid"

	"github.com/ychsieh/travel-planner/internal/domain"
)

// Key identifies one routed view: a day of a trip under a travel mode.
type Key struct {
	TripID   uuid.UUID
	DayLabel string
	Mode     domain.TravelMode
}

// Token represents one in-flight route computation. A token is authoritative
// only while it is the newest issued for its key; results carried by an older
// token must be discarded.
type Token struct {
	key         Key
	seq         uint64
	fingerprint string
}

// Fingerprint returns the structural identity of the point sequence the
// computation was requested for.
func (t Token) Fingerprint() string { return t.fingerprint }

// Tracker serializes interest in asynchronous route computations. Routing
// calls complete on an unspecified schedule; the tracker makes only the most
// recently requested computation per key authoritative, so a slow stale
// response can never overwrite the result for a newer point sequence
// (out-of-order completions would otherwise flicker old travel times in).
type Tracker struct {
	mu     sync.Mutex
	seq    uint64
	latest map[Key]uint64
}

// NewTracker returns an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{latest: make(map[Key]uint64)}
}

// Begin registers a new computation for the key, superseding any in-flight
// one, and returns its token.
func (tr *Tracker) Begin(key Key, points []domain.LatLng) Token {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.seq++
	tr.latest[key] = tr.seq
	return Token{key: key, seq: tr.seq, fingerprint: Fingerprint(points)}
}

// Commit reports whether the computation carrying the token is still the
// authoritative one for its key. A false return means the result must be
// dropped, not stored.
func (tr *Tracker) Commit(t Token) bool {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return tr.latest[t.key] == t.seq
}

// Cancel withdraws interest in the key entirely, e.g. when the user navigates
// to a different day. In-flight computations are not aborted; their commits
// simply fail.
func (tr *Tracker) Cancel(key Key) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	delete(tr.latest, key)
}

// Fingerprint derives a structural identity for a point sequence. Two
// sequences fingerprint equal iff they hold the same coordinates in the same
// order.
func Fingerprint(points []domain.LatLng) string {
	var b []byte
	for _, p := range points {
		b = strconv.AppendFloat(b, p.Lat, 'f', 6, 64)
		b = append(b, ',')
		b = strconv.AppendFloat(b, p.Lng, 'f', 6, 64)
		b = append(b, ';')
	}
	return string(b)
}
