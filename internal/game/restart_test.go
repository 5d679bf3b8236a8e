package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const karnText = "Restart the game, leaving in exile all non-Aura permanent cards exiled with Karn Liberated. " +
	"Then put those cards onto the battlefield under your control."

func TestRestartRebuildsEverySeat(t *testing.T) {
	h := newResolveHarness(t)

	// Rough the game up first so the rebuild has something to undo.
	h.addPermanent(creatureSpec{Name: "Runeclaw Bear", Power: 2, Toughness: 2, Controller: alice})
	require.True(t, h.resolve("Draw two cards.", alice, "Divination", TriggerItem{}))
	require.True(t, h.resolve("You mill three cards.", bob, "Stitcher's Supplier", TriggerItem{}))
	require.True(t, h.resolve("You lose 5 life.", bob, "Flame Rift", TriggerItem{}))
	require.True(t, h.resolve("Add {R}{R}.", alice, "Mountain", TriggerItem{}))

	ok := h.resolve(karnText, alice, "Karn Liberated", TriggerItem{})
	require.True(t, ok)

	assert.Equal(t, 1, h.state.RestartCount)
	assert.Empty(t, h.state.Battlefield)
	for _, id := range []string{alice, bob} {
		player := h.player(id)
		assert.Equal(t, h.state.StartingLife, player.Life, "player %s life", id)
		assert.Equal(t, h.state.OpeningHand, player.Zones.Hand.Count, "player %s hand", id)
		assert.Zero(t, player.Zones.Graveyard.Count, "player %s graveyard", id)
		assert.Zero(t, player.Zones.Exile.Count, "player %s exile", id)
		assert.Zero(t, player.Mana.Total(), "player %s mana pool", id)
	}
	// The marred permanent came from outside the deck, so alice owns one
	// extra card.
	assert.Equal(t, 31-h.state.OpeningHand, h.player(alice).Zones.Library.Count)
	assert.Equal(t, 30-h.state.OpeningHand, h.player(bob).Zones.Library.Count)
	h.zoneCountsConsistent()

	// Play resumes with the restarting player taking the first turn.
	assert.Equal(t, 0, h.state.Turn.TurnNumber())
	h.state.Turn.NextTurn()
	assert.Equal(t, alice, h.state.Turn.ActivePlayer())
	assert.Equal(t, 1, h.state.Turn.TurnNumber())
}

// Cards the restarting source exiled ride out the restart and come back
// under the restarter's control.
func TestRestartPreservesProvenanceExiles(t *testing.T) {
	h := newResolveHarness(t)
	bear := h.addPermanent(creatureSpec{Name: "Runeclaw Bear", Power: 2, Toughness: 2, Controller: bob})

	ok := h.resolve("Exile target permanent.", alice, "Karn Liberated",
		TriggerItem{TargetIDs: []string{bear.ID}})
	require.True(t, ok)
	require.Equal(t, 1, h.player(bob).Zones.Exile.Count)

	ok = h.resolve(karnText, alice, "Karn Liberated", TriggerItem{})
	require.True(t, ok)

	require.Len(t, h.state.Battlefield, 1)
	returned := h.state.Battlefield[0]
	assert.Equal(t, "Runeclaw Bear", returned.Name)
	assert.Equal(t, alice, returned.ControllerID, "preserved cards enter under the restarter")
	assert.Equal(t, bob, returned.Card.OwnerID, "ownership never changes")
	assert.Empty(t, returned.Card.ExiledWith)
	assert.Zero(t, h.player(bob).Zones.Exile.Count)
	h.zoneCountsConsistent()
}

// Exiles from other sources, and Auras from any source, shuffle back in.
func TestRestartLeavesOtherExilesAlone(t *testing.T) {
	h := newResolveHarness(t)
	bear := h.addPermanent(creatureSpec{Name: "Runeclaw Bear", Power: 2, Toughness: 2, Controller: bob})
	aura := h.addPermanent(creatureSpec{
		Name: "Pacifism", Controller: bob,
		Types: []string{"Enchantment"}, Subtypes: []string{"Aura"},
	})

	ok := h.resolve("Exile target creature.", alice, "Swords to Plowshares",
		TriggerItem{TargetIDs: []string{bear.ID}})
	require.True(t, ok)
	ok = h.resolve("Exile target enchantment.", alice, "Karn Liberated",
		TriggerItem{TargetIDs: []string{aura.ID}})
	require.True(t, ok)
	require.Equal(t, 2, h.player(bob).Zones.Exile.Count)

	ok = h.resolve(karnText, alice, "Karn Liberated", TriggerItem{})
	require.True(t, ok)

	assert.Empty(t, h.state.Battlefield, "neither exile may survive the restart")
	assert.Equal(t, 32-h.state.OpeningHand, h.player(bob).Zones.Library.Count)
	h.zoneCountsConsistent()
}

func TestRestartSendsCommanderToCommandZone(t *testing.T) {
	h := newResolveHarness(t)
	commander := h.addPermanent(creatureSpec{Name: "Karn Liberated", Controller: alice, Types: []string{"Planeswalker"}, Loyalty: 6})
	commander.Card.IsCommander = true
	player := h.player(alice)
	player.Commanders = append(player.Commanders, commander.Card.ID)
	player.CommanderTax[commander.Card.ID] = 2

	ok := h.resolve(karnText, alice, "Karn Liberated", TriggerItem{})
	require.True(t, ok)

	assert.True(t, player.Zones.Command.Contains(commander.Card.ID))
	assert.Zero(t, player.CommanderTax[commander.Card.ID], "restart resets the commander tax")
	assert.Equal(t, 30-h.state.OpeningHand, player.Zones.Library.Count, "the commander must not shuffle in")
	h.zoneCountsConsistent()
}

// A replayed restart is a no-op; the live game already moved past it.
func TestRestartSkippedDuringReplay(t *testing.T) {
	h := newResolveHarness(t)
	handBefore := h.player(alice).Zones.Hand.Count

	ok := h.resolve(karnText, alice, "Karn Liberated", TriggerItem{Replaying: true})
	require.True(t, ok)
	assert.Zero(t, h.state.RestartCount)
	assert.Equal(t, handBefore, h.player(alice).Zones.Hand.Count)
}

func TestRestartClearsScheduledEffects(t *testing.T) {
	h := newResolveHarness(t)
	bear := h.addPermanent(creatureSpec{Name: "Runeclaw Bear", Power: 2, Toughness: 2, Controller: bob})

	ok := h.resolve("Gain control of target creature until end of turn.", alice, "Ray of Command",
		TriggerItem{TargetIDs: []string{bear.ID}})
	require.True(t, ok)
	require.Equal(t, 1, h.state.Scheduled.Len())

	ok = h.resolve(karnText, alice, "Karn Liberated", TriggerItem{})
	require.True(t, ok)
	assert.Zero(t, h.state.Scheduled.Len())
}
