package game

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planarforge/oracle-server-go/internal/game/counters"
	"github.com/planarforge/oracle-server-go/internal/game/queue"
)

func TestResolveDrawCards(t *testing.T) {
	h := newResolveHarness(t)
	player := h.player(alice)
	handBefore := player.Zones.Hand.Count
	libraryBefore := player.Zones.Library.Count

	ok := h.resolve("Draw two cards.", alice, "Divination", TriggerItem{})
	require.True(t, ok)
	assert.Equal(t, handBefore+2, player.Zones.Hand.Count)
	assert.Equal(t, libraryBefore-2, player.Zones.Library.Count)
	h.zoneCountsConsistent()
}

func TestResolveSelfNameBecomesTilde(t *testing.T) {
	h := newResolveHarness(t)
	source := h.addPermanent(creatureSpec{Name: "Prodigal Pyromancer", Power: 1, Toughness: 1, Controller: alice})
	bobLife := h.player(bob).Life

	ok := h.resolve("Prodigal Pyromancer deals 1 damage to any target.", alice,
		"Prodigal Pyromancer", TriggerItem{SourceID: source.ID, TargetIDs: []string{bob}})
	require.True(t, ok)
	assert.Equal(t, bobLife-1, h.player(bob).Life)
}

// The drawn card is the only card in hand, so the discard resolves without
// queuing a selection step.
func TestResolveDrawThenDiscardEmptyHand(t *testing.T) {
	h := newResolveHarness(t)
	player := h.player(alice)
	for _, card := range player.Zones.Hand.TakeAll() {
		player.Zones.Library.AddBottom(card)
	}
	libraryBefore := player.Zones.Library.Count

	ok := h.resolve("Draw a card, then discard a card.", alice, "Careful Study", TriggerItem{})
	require.True(t, ok)
	assert.Equal(t, 0, player.Zones.Hand.Count)
	assert.Equal(t, libraryBefore-1, player.Zones.Library.Count)
	assert.Equal(t, 1, player.Zones.Graveyard.Count)
	assert.Empty(t, h.pending())
	h.zoneCountsConsistent()
}

func TestResolveDrawThenDiscardQueuesSelection(t *testing.T) {
	h := newResolveHarness(t)
	player := h.player(alice)

	ok := h.resolve("Draw two cards, then discard two cards.", alice, "Tolarian Winds", TriggerItem{})
	require.True(t, ok)

	steps := h.pending()
	require.Len(t, steps, 1)
	assert.Equal(t, queue.StepDiscardSelection, steps[0].Type)
	assert.Equal(t, alice, steps[0].PlayerID)
	assert.Equal(t, 2, steps[0].Min)
	assert.Equal(t, 2, steps[0].Max)
	assert.Len(t, steps[0].CandidateIDs, player.Zones.Hand.Count)
}

// Two-sentence texts resolve clause by clause.
func TestResolveTokenThenMillScenario(t *testing.T) {
	h := newResolveHarness(t)
	player := h.player(alice)
	h.setLibrary(alice,
		&Card{Name: "Top 1", Types: []string{"Creature"}},
		&Card{Name: "Top 2", Types: []string{"Creature"}},
		&Card{Name: "Top 3", Types: []string{"Creature"}},
		&Card{Name: "Top 4", Types: []string{"Creature"}},
		&Card{Name: "Top 5", Types: []string{"Creature"}},
	)

	ok := h.resolve("Create a 2/2 black Zombie token. Mill two cards.", alice, "Gravebreaker", TriggerItem{})
	require.True(t, ok)

	var zombie *Permanent
	for _, perm := range h.state.Battlefield {
		if perm.Name == "Zombie" {
			zombie = perm
		}
	}
	require.NotNil(t, zombie, "zombie token should be on the battlefield")
	assert.True(t, zombie.Token)
	assert.Equal(t, alice, zombie.ControllerID)
	assert.Equal(t, 2, zombie.Power())
	assert.Equal(t, 2, zombie.Toughness())

	assert.Equal(t, 3, player.Zones.Library.Count)
	assert.Equal(t, 2, player.Zones.Graveyard.Count)
	h.zoneCountsConsistent()
}

// Legal "up to one, none chosen" case: success with zero mutation.
func TestResolveUpToOneTargetNoneChosen(t *testing.T) {
	h := newResolveHarness(t)
	before := len(h.state.Battlefield)

	ok := h.resolve("Put a +1/+1 counter on up to one target creature.", alice, "Travel Preparations", TriggerItem{})
	require.True(t, ok)
	assert.Equal(t, before, len(h.state.Battlefield))
	assert.Empty(t, h.pending())
}

func TestResolvePutCountersOnTarget(t *testing.T) {
	h := newResolveHarness(t)
	bear := h.addPermanent(creatureSpec{Name: "Runeclaw Bear", Power: 2, Toughness: 2, Controller: alice})

	ok := h.resolve("Put two +1/+1 counters on target creature.", alice, "Burst of Strength",
		TriggerItem{TargetIDs: []string{bear.ID}})
	require.True(t, ok)
	assert.Equal(t, 2, bear.Counters.Count(counters.KindPlusOne))
	assert.Equal(t, 4, bear.Power())
	assert.Equal(t, 4, bear.Toughness())
}

// A dangling target fizzles: recognized, no mutation, no error.
func TestResolveTargetLeftBattlefield(t *testing.T) {
	h := newResolveHarness(t)
	bear := h.addPermanent(creatureSpec{Name: "Runeclaw Bear", Power: 2, Toughness: 2, Controller: bob})
	h.state.RemovePermanent(bear.ID, ZoneGraveyard)
	bobLife := h.player(bob).Life

	ok := h.resolve("Destroy target creature.", alice, "Doom Blade",
		TriggerItem{TargetIDs: []string{bear.ID}})
	require.True(t, ok)
	assert.Equal(t, bobLife, h.player(bob).Life)
	h.zoneCountsConsistent()
}

// Unrecognized text degrades to a single manual-resolution step.
func TestResolveUnknownTextFallsBackToManual(t *testing.T) {
	h := newResolveHarness(t)

	ok := h.resolve("Exchange control of target artifact and target land.", alice, "Juxtapose", TriggerItem{})
	require.True(t, ok)

	steps := h.pending()
	require.Len(t, steps, 1)
	assert.Equal(t, queue.StepOptionChoice, steps[0].Type)
	assert.Equal(t, "manual_resolution", steps[0].Continuation.Tag)
	assert.Contains(t, steps[0].Description, "Resolve manually")
	assert.Equal(t, []string{"Done"}, steps[0].Options)
}

// A recognized clause plus an unknown one: the known clause applies and the
// unknown clause gets its own manual step.
func TestResolveMixedKnownAndUnknownClauses(t *testing.T) {
	h := newResolveHarness(t)
	player := h.player(alice)
	handBefore := player.Zones.Hand.Count

	ok := h.resolve("Draw a card. Shuffle target card from a graveyard into its owner's library.",
		alice, "Cremation Ritual", TriggerItem{})
	require.True(t, ok)
	assert.Equal(t, handBefore+1, player.Zones.Hand.Count)

	steps := h.pending()
	require.Len(t, steps, 1)
	assert.Equal(t, "manual_resolution", steps[0].Continuation.Tag)
}

func TestResolveUnknownGame(t *testing.T) {
	h := newResolveHarness(t)
	ok := h.engine.Resolve(context.Background(), "no-such-game", "Draw a card.", TriggerItem{}, alice, "Source")
	assert.False(t, ok)
}

// Replayed resolutions must not double non-idempotent mutations.
func TestResolveReplayIdempotence(t *testing.T) {
	h := newResolveHarness(t)
	player := h.player(alice)

	ok := h.resolve("You gain 3 life.", alice, "Healing Salve", TriggerItem{})
	require.True(t, ok)
	lifeAfterFirst := player.Life
	assert.Equal(t, h.state.StartingLife+3, lifeAfterFirst)

	ok = h.resolve("You gain 3 life.", alice, "Healing Salve", TriggerItem{Replaying: true})
	require.True(t, ok)
	assert.Equal(t, lifeAfterFirst, player.Life)

	handBefore := player.Zones.Hand.Count
	ok = h.resolve("Draw two cards.", alice, "Divination", TriggerItem{Replaying: true})
	require.True(t, ok)
	assert.Equal(t, handBefore, player.Zones.Hand.Count)

	permsBefore := len(h.state.Battlefield)
	ok = h.resolve("Create two Treasure tokens.", alice, "Strike It Rich", TriggerItem{Replaying: true})
	require.True(t, ok)
	assert.Equal(t, permsBefore, len(h.state.Battlefield))
}

// Replays never enqueue: the step from the first resolution is pending.
func TestResolveReplayDoesNotEnqueue(t *testing.T) {
	h := newResolveHarness(t)

	ok := h.resolve("Scry 2.", alice, "Preordain", TriggerItem{Replaying: true})
	require.True(t, ok)
	assert.Empty(t, h.pending())
}

func TestResolveDamageEachCreature(t *testing.T) {
	h := newResolveHarness(t)
	ground := h.addPermanent(creatureSpec{Name: "Runeclaw Bear", Power: 2, Toughness: 2, Controller: alice})
	flyer := h.addPermanent(creatureSpec{Name: "Wind Drake", Power: 2, Toughness: 2, Controller: bob, Abilities: []string{"Flying"}})

	ok := h.resolve("Earthquake deals 1 damage to each creature without flying.", alice, "Earthquake", TriggerItem{})
	require.True(t, ok)
	assert.Equal(t, 1, ground.Damage)
	assert.Equal(t, 0, flyer.Damage)
}

func TestResolveModalChoiceQueuesStep(t *testing.T) {
	h := newResolveHarness(t)

	ok := h.resolve("Choose one —\n• Draw two cards.\n• Each opponent loses 2 life.", alice, "Profane Command", TriggerItem{})
	require.True(t, ok)

	steps := h.pending()
	require.Len(t, steps, 1)
	assert.Equal(t, queue.StepModalChoice, steps[0].Type)
	require.Len(t, steps[0].Options, 2)

	bobLife := h.player(bob).Life
	require.NoError(t, h.complete(steps[0].ID, queue.Answer{OptionIndex: 1}))
	assert.Equal(t, bobLife-2, h.player(bob).Life)
	assert.Empty(t, h.pending())
}
