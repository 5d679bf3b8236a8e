package duration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func prov(controllerID string, turn int, source string) Provenance {
	return Provenance{ControllerID: controllerID, TurnApplied: turn, SourceName: source}
}

func TestTakeEndOfTurnRemovesOnlyEndOfTurnRecords(t *testing.T) {
	l := NewList()
	eot := NewPTDelta("perm-1", 2, 2, UntilEndOfTurn, prov("alice", 3, "Giant Growth"))
	uynt := NewGrantAbility("perm-1", "flying", UntilYourNextTurn, prov("alice", 3, "Wings of Hubris"))
	l.Add(eot)
	l.Add(uynt)

	taken := l.TakeEndOfTurn()
	require.Len(t, taken, 1)
	assert.Equal(t, eot.ID, taken[0].ID)

	require.Equal(t, 1, l.Len())
	remaining, ok := l.Get(uynt.ID)
	require.True(t, ok)
	assert.Equal(t, UntilYourNextTurn, remaining.Expiry)
}

func TestTakeEndOfTurnIncludesStaleRecords(t *testing.T) {
	l := NewList()
	l.Add(NewPTDelta("perm-1", 1, 1, UntilEndOfTurn, prov("alice", 2, "Stale Grant")))
	l.Add(NewPTDelta("perm-2", 3, 3, UntilEndOfTurn, prov("bob", 5, "Fresh Grant")))

	// The sweep for turn 5 must also clear the leftover from turn 2.
	taken := l.TakeEndOfTurn()
	assert.Len(t, taken, 2)
	assert.Equal(t, 0, l.Len())
}

func TestTakeStartOfTurnMatchesGrantingController(t *testing.T) {
	l := NewList()
	aliceGrant := NewGrantAbility("perm-1", "flying", UntilYourNextTurn, prov("alice", 3, "Sudden Gift"))
	bobGrant := NewGrantAbility("perm-2", "haste", UntilYourNextTurn, prov("bob", 3, "Urgent Rush"))
	l.Add(aliceGrant)
	l.Add(bobGrant)

	// Bob's turn starts: only bob's grant expires, alice's survives.
	taken := l.TakeStartOfTurn("bob")
	require.Len(t, taken, 1)
	assert.Equal(t, bobGrant.ID, taken[0].ID)

	remaining := l.Records()
	require.Len(t, remaining, 1)
	assert.Equal(t, aliceGrant.ID, remaining[0].ID)
}

func TestTakeEndStepDueHonorsFireTurn(t *testing.T) {
	l := NewList()
	due := NewOneShot("perm-1", ActionSacrifice, 4, prov("alice", 4, "Sneak Attack"))
	deferred := NewOneShot("perm-2", ActionExile, 5, prov("alice", 4, "Fiery Emancipation"))
	l.Add(due)
	l.Add(deferred)

	taken := l.TakeEndStepDue(4)
	require.Len(t, taken, 1)
	assert.Equal(t, due.ID, taken[0].ID)
	assert.Equal(t, ActionSacrifice, taken[0].Payload.Action)

	// Next turn's end step picks up the deferred record.
	taken = l.TakeEndStepDue(5)
	require.Len(t, taken, 1)
	assert.Equal(t, deferred.ID, taken[0].ID)
	assert.Equal(t, 0, l.Len())
}

func TestTakeEndStepDueIncludesOverdueRecords(t *testing.T) {
	l := NewList()
	l.Add(NewOneShot("perm-1", ActionReturnToHand, 3, prov("alice", 3, "Glimmerpoint")))

	taken := l.TakeEndStepDue(7)
	assert.Len(t, taken, 1)
}

func TestFireTurnFor(t *testing.T) {
	assert.Equal(t, 4, FireTurnFor(4, false))
	assert.Equal(t, 5, FireTurnFor(4, true))
}

func TestRemoveByHandle(t *testing.T) {
	l := NewList()
	rec := NewControlChange("perm-1", "alice", "bob", UntilEndOfTurn, prov("alice", 2, "Act of Treason"))
	l.Add(rec)

	assert.True(t, l.Remove(rec.ID))
	assert.False(t, l.Remove(rec.ID))
	assert.Equal(t, 0, l.Len())
}

func TestByPermanentAndDrop(t *testing.T) {
	l := NewList()
	l.Add(NewPTDelta("perm-1", 1, 1, UntilEndOfTurn, prov("alice", 2, "A")))
	l.Add(NewGrantAbility("perm-1", "trample", UntilYourNextTurn, prov("alice", 2, "B")))
	l.Add(NewPTDelta("perm-2", 2, 0, UntilEndOfTurn, prov("alice", 2, "C")))

	assert.Len(t, l.ByPermanent("perm-1"), 2)

	dropped := l.DropByPermanent("perm-1")
	assert.Equal(t, 2, dropped)
	assert.Equal(t, 1, l.Len())
	assert.Empty(t, l.ByPermanent("perm-1"))
}

func TestRecordProvenance(t *testing.T) {
	rec := NewPTDelta("perm-1", 2, 2, UntilEndOfTurn, prov("alice", 6, "Giant Growth"))
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, "alice", rec.ControllerID)
	assert.Equal(t, 6, rec.TurnApplied)
	assert.Equal(t, "Giant Growth", rec.SourceName)
}
