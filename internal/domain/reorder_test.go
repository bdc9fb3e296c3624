package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ychsieh/travel-planner/internal/domain"
)

func stops(ids ...string) []domain.Stop {
	out := make([]domain.Stop, len(ids))
	for i, id := range ids {
		out[i] = stopAt(id, 35.0+float64(i)/10)
	}
	return out
}

func orderOf(s []domain.Stop) []string {
	ids := make([]string, len(s))
	for i := range s {
		ids[i] = s[i].ID
	}
	return ids
}

func TestReorder_MoveForward(t *testing.T) {
	in := stops("a", "b", "c", "d")

	out := domain.Reorder(in, "a", "c")

	assert.Equal(t, []string{"b", "c", "a", "d"}, orderOf(out))
	assert.Equal(t, []string{"a", "b", "c", "d"}, orderOf(in), "input must not be mutated")
}

func TestReorder_MoveBackward(t *testing.T) {
	in := stops("a", "b", "c", "d")

	out := domain.Reorder(in, "d", "b")

	assert.Equal(t, []string{"a", "d", "b", "c"}, orderOf(out))
}

func TestReorder_AdjacentSwapEitherDirection(t *testing.T) {
	assert.Equal(t, []string{"b", "a", "c"}, orderOf(domain.Reorder(stops("a", "b", "c"), "a", "b")))
	assert.Equal(t, []string{"b", "a", "c"}, orderOf(domain.Reorder(stops("a", "b", "c"), "b", "a")))
}

func TestReorder_DraggedLandsOnTargetPosition(t *testing.T) {
	in := stops("a", "b", "c", "d", "e")
	targetPos := 3 // index of "d"

	out := domain.Reorder(in, "b", "d")

	require.Len(t, out, len(in))
	assert.Equal(t, "b", out[targetPos].ID, "dragged stop takes the target's old position")
	assert.ElementsMatch(t, orderOf(in), orderOf(out), "reorder is a permutation")
}

func TestReorder_NoOpSameID(t *testing.T) {
	in := stops("a", "b", "c")

	out := domain.Reorder(in, "b", "b")

	assert.Equal(t, orderOf(in), orderOf(out))
}

func TestReorder_NoOpUnknownIDs(t *testing.T) {
	in := stops("a", "b", "c")

	assert.Equal(t, orderOf(in), orderOf(domain.Reorder(in, "ghost", "b")))
	assert.Equal(t, orderOf(in), orderOf(domain.Reorder(in, "a", "ghost")))
	assert.Equal(t, orderOf(in), orderOf(domain.Reorder(in, "ghost", "phantom")))
}

func TestReorder_PreservesStopValues(t *testing.T) {
	in := stops("a", "b", "c")
	in[0].Meal = domain.MealLunch
	in[0].PlaceRef = "ref-a"

	out := domain.Reorder(in, "a", "c")

	require.Equal(t, "a", out[2].ID)
	assert.Equal(t, in[0], out[2], "reorder moves references, never edits stops")
}

func TestReorder_EmptyAndSingle(t *testing.T) {
	assert.Empty(t, domain.Reorder(nil, "a", "b"))
	single := stops("a")
	assert.Equal(t, orderOf(single), orderOf(domain.Reorder(single, "a", "a")))
}
