package routing_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ychsieh/travel-planner/internal/domain"
	"github.com/ychsieh/travel-planner/internal/routing"
)

func trackerKey(label string) routing.Key {
	return routing.Key{TripID: uuid.New(), DayLabel: label, Mode: domain.TravelModeDriving}
}

func TestTracker_LatestTokenCommits(t *testing.T) {
	tr := routing.NewTracker()
	key := trackerKey("Day 1")

	tok := tr.Begin(key, points(3))

	assert.True(t, tr.Commit(tok))
}

func TestTracker_SupersededTokenIsDiscarded(t *testing.T) {
	tr := routing.NewTracker()
	key := trackerKey("Day 1")

	stale := tr.Begin(key, points(3))
	fresh := tr.Begin(key, points(4)) // user edited the day before the first call returned

	assert.False(t, tr.Commit(stale), "out-of-order completion must be dropped")
	assert.True(t, tr.Commit(fresh))
}

func TestTracker_KeysAreIndependent(t *testing.T) {
	tr := routing.NewTracker()
	day1 := trackerKey("Day 1")
	day2 := trackerKey("Day 2")

	tok1 := tr.Begin(day1, points(2))
	tok2 := tr.Begin(day2, points(2))

	assert.True(t, tr.Commit(tok1), "a request for another day must not supersede this one")
	assert.True(t, tr.Commit(tok2))
}

func TestTracker_CancelWithdrawsInterest(t *testing.T) {
	tr := routing.NewTracker()
	key := trackerKey("Day 1")

	tok := tr.Begin(key, points(3))
	tr.Cancel(key) // user navigated to a different day

	assert.False(t, tr.Commit(tok))
}

func TestFingerprint_StructuralEquality(t *testing.T) {
	a := points(3)
	b := points(3)
	require.Equal(t, routing.Fingerprint(a), routing.Fingerprint(b))

	b[1].Lat += 0.001
	assert.NotEqual(t, routing.Fingerprint(a), routing.Fingerprint(b))

	reordered := []domain.LatLng{a[1], a[0], a[2]}
	assert.NotEqual(t, routing.Fingerprint(a), routing.Fingerprint(reordered), "order matters")
}

func TestMockProvider_DeterministicLegs(t *testing.T) {
	m := routing.NewMockProvider()

	legs, err := m.Route(context.Background(), points(3), domain.TravelModeDriving)
	require.NoError(t, err)
	require.Len(t, legs, 2)
	assert.NotEmpty(t, legs[0].DurationText)
	assert.Positive(t, legs[0].DurationSeconds)

	walking, err := m.Route(context.Background(), points(3), domain.TravelModeWalking)
	require.NoError(t, err)
	assert.Greater(t, walking[0].DurationSeconds, legs[0].DurationSeconds, "walking is slower than driving")
}
