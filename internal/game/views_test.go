package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planarforge/oracle-server-go/internal/game/counters"
	"github.com/planarforge/oracle-server-go/internal/game/duration"
	"github.com/planarforge/oracle-server-go/internal/game/mana"
)

func playerView(t *testing.T, view *GameView, playerID string) PlayerView {
	t.Helper()
	for _, pv := range view.Players {
		if pv.PlayerID == playerID {
			return pv
		}
	}
	t.Fatalf("player %s missing from view", playerID)
	return PlayerView{}
}

func TestBuildGameViewHidesOpponentHands(t *testing.T) {
	h := newResolveHarness(t)

	view := BuildGameView(h.state, alice)

	own := playerView(t, view, alice)
	require.Len(t, own.Hand, own.HandCount)
	for _, cv := range own.Hand {
		assert.False(t, cv.FaceDown)
		assert.NotEmpty(t, cv.Name, "requesting player sees full hand contents")
	}

	theirs := playerView(t, view, bob)
	require.Len(t, theirs.Hand, theirs.HandCount)
	for _, cv := range theirs.Hand {
		assert.True(t, cv.FaceDown)
		assert.NotEmpty(t, cv.ID)
		assert.Empty(t, cv.Name, "opponent hand cards are id-only stubs")
	}
}

func TestBuildGameViewShowsPublicZones(t *testing.T) {
	h := newResolveHarness(t)
	require.NotEmpty(t, h.state.Mill(bob, 2))

	view := BuildGameView(h.state, alice)

	theirs := playerView(t, view, bob)
	require.Len(t, theirs.Graveyard, 2)
	for _, cv := range theirs.Graveyard {
		assert.NotEmpty(t, cv.Name, "graveyards are public")
	}
	assert.Equal(t, h.player(bob).Zones.Library.Count, theirs.LibraryCount)
}

func TestBuildGameViewComputesEffectiveStats(t *testing.T) {
	h := newResolveHarness(t)
	bear := h.addPermanent(creatureSpec{
		Name: "Runeclaw Bear", Power: 2, Toughness: 2, Controller: alice,
		Abilities: []string{"Vigilance"},
	})
	bear.Counters.Add(counters.KindPlusOne, 2)
	prov := duration.Provenance{ControllerID: alice, TurnApplied: h.state.Turn.TurnNumber(), SourceName: "test"}
	bear.Grants.Add(duration.NewPTDelta(bear.ID, 1, 0, duration.UntilEndOfTurn, prov))
	bear.Grants.Add(duration.NewGrantAbility(bear.ID, "Haste", duration.UntilEndOfTurn, prov))
	bear.Damage = 3

	view := BuildGameView(h.state, alice)

	require.Len(t, view.Battlefield, 1)
	pv := view.Battlefield[0]
	assert.Equal(t, bear.ID, pv.ID)
	assert.Equal(t, 5, pv.Power)
	assert.Equal(t, 4, pv.Toughness)
	assert.ElementsMatch(t, []string{"Vigilance", "Haste"}, pv.Abilities)
	assert.Contains(t, pv.Counters, CounterView{Kind: "+1/+1", Count: 2})
	assert.Equal(t, 3, pv.Damage)
}

func TestBuildGameViewFoldsRestrictedMana(t *testing.T) {
	h := newResolveHarness(t)
	pool := h.player(alice).Mana
	pool.Add(mana.Red, 1)
	pool.AddRestricted(mana.Green, 2, mana.Restriction{
		Description: "Spend this mana only to cast creature spells.",
		SourceName:  "Nykthos Devotee",
	})

	view := BuildGameView(h.state, alice)

	own := playerView(t, view, alice)
	assert.Equal(t, 1, own.Mana.Red)
	assert.Equal(t, 2, own.Mana.Green, "restricted units fold into the color totals")
	assert.Zero(t, own.Mana.Blue)
}

func TestBuildGameViewCarriesMatchFacts(t *testing.T) {
	h := newResolveHarness(t)

	view := BuildGameView(h.state, bob)

	assert.Equal(t, h.gameID, view.GameID)
	assert.Equal(t, StatusInProgress, view.Status)
	assert.Equal(t, h.state.Turn.TurnNumber(), view.Turn)
	assert.Equal(t, h.state.Turn.ActivePlayer(), view.ActivePlayerID)
	assert.NotEmpty(t, view.Phase)
	assert.NotEmpty(t, view.Step)
	assert.False(t, view.StartedAt.IsZero())
	assert.Equal(t, []string{alice, bob}, []string{view.Players[0].PlayerID, view.Players[1].PlayerID}, "players come back in turn order")
}
