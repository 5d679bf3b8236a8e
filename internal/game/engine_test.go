package game

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/planarforge/oracle-server-go/internal/game/queue"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return NewEngine(zaptest.NewLogger(t), queue.NewMemoryStore())
}

func TestStartMatchValidation(t *testing.T) {
	setups := []PlayerSetup{
		{ID: alice, Name: "Alice", Deck: testDeck(30)},
		{ID: bob, Name: "Bob", Deck: testDeck(30)},
	}

	t.Run("missing game id", func(t *testing.T) {
		err := newTestEngine(t).StartMatch("", setups, MatchOptions{})
		require.ErrorContains(t, err, "gameID is required")
	})

	t.Run("too few players", func(t *testing.T) {
		err := newTestEngine(t).StartMatch("g", setups[:1], MatchOptions{})
		require.ErrorContains(t, err, "at least 2 players required")
	})

	t.Run("missing player id", func(t *testing.T) {
		bad := []PlayerSetup{{ID: alice, Deck: testDeck(4)}, {ID: "", Deck: testDeck(4)}}
		err := newTestEngine(t).StartMatch("g", bad, MatchOptions{})
		require.ErrorContains(t, err, "player id is required")
	})

	t.Run("duplicate player id", func(t *testing.T) {
		bad := []PlayerSetup{{ID: alice, Deck: testDeck(4)}, {ID: alice, Deck: testDeck(4)}}
		err := newTestEngine(t).StartMatch("g", bad, MatchOptions{})
		require.ErrorContains(t, err, "duplicate player id")
	})

	t.Run("duplicate game id", func(t *testing.T) {
		engine := newTestEngine(t)
		require.NoError(t, engine.StartMatch("g", setups, MatchOptions{Seed: 1}))
		err := engine.StartMatch("g", setups, MatchOptions{Seed: 1})
		require.ErrorContains(t, err, "already exists")
	})
}

func TestStartMatchDealsOpeningHands(t *testing.T) {
	h := newResolveHarness(t)

	for _, id := range []string{alice, bob} {
		player := h.player(id)
		assert.Equal(t, defaultStartingLife, player.Life)
		assert.Equal(t, defaultOpeningHand, player.Zones.Hand.Count)
		assert.Equal(t, 30-defaultOpeningHand, player.Zones.Library.Count)
	}
	assert.Equal(t, 1, h.state.Turn.TurnNumber())
	assert.Equal(t, alice, h.state.Turn.ActivePlayer())
	h.zoneCountsConsistent()
}

func TestStartMatchHonorsOptions(t *testing.T) {
	engine := newTestEngine(t)
	setups := []PlayerSetup{
		{ID: alice, Deck: testDeck(40)},
		{ID: bob, Deck: testDeck(40)},
	}
	require.NoError(t, engine.StartMatch("custom", setups, MatchOptions{
		Seed:         3,
		StartingLife: 40,
		OpeningHand:  5,
	}))

	state, ok := engine.Game("custom")
	require.True(t, ok)
	for _, id := range state.PlayerOrder {
		assert.Equal(t, 40, state.Player(id).Life)
		assert.Equal(t, 5, state.Player(id).Zones.Hand.Count)
	}
	assert.Equal(t, 40, state.StartingLife)
	assert.Equal(t, 5, state.OpeningHand)
}

func TestStartMatchSeedIsDeterministic(t *testing.T) {
	libraryNames := func(gameID string) []string {
		engine := newTestEngine(t)
		setups := []PlayerSetup{
			{ID: alice, Deck: testDeck(30)},
			{ID: bob, Deck: testDeck(30)},
		}
		require.NoError(t, engine.StartMatch(gameID, setups, MatchOptions{Seed: 7}))
		state, ok := engine.Game(gameID)
		require.True(t, ok)
		names := make([]string, 0, state.Player(alice).Zones.Library.Count)
		for _, card := range state.Player(alice).Zones.Library.Cards {
			names = append(names, card.Name)
		}
		return names
	}

	assert.Equal(t, libraryNames("first"), libraryNames("second"))
}

func TestStartMatchPlacesCommandersInCommandZone(t *testing.T) {
	engine := newTestEngine(t)
	commander := &Card{
		Name:  "Thraximundar",
		Types: []string{"Creature"}, Subtypes: []string{"Zombie", "Assassin"},
		Supertypes: []string{"Legendary"},
		Power:      "6", Toughness: "6",
	}
	setups := []PlayerSetup{
		{ID: alice, Deck: append(testDeck(30), commander), Commanders: []string{"Thraximundar"}},
		{ID: bob, Deck: testDeck(30)},
	}
	require.NoError(t, engine.StartMatch("cmdr", setups, MatchOptions{Seed: 1}))

	state, ok := engine.Game("cmdr")
	require.True(t, ok)
	player := state.Player(alice)
	require.Len(t, player.Commanders, 1)
	assert.True(t, commander.IsCommander)
	assert.True(t, player.Zones.Command.Contains(commander.ID))
	assert.False(t, player.Zones.Library.Contains(commander.ID), "commanders start outside the library")
	assert.Equal(t, 30-defaultOpeningHand, player.Zones.Library.Count)
}

func TestCleanupGameDropsStateAndSteps(t *testing.T) {
	h := newResolveHarness(t)
	require.True(t, h.resolve("Scry 2.", alice, "Preordain", TriggerItem{}))
	require.NotEmpty(t, h.pending())

	require.NoError(t, h.engine.CleanupGame(context.Background(), h.gameID))

	_, ok := h.engine.Game(h.gameID)
	assert.False(t, ok)
	steps, err := h.steps.Pending(context.Background(), h.gameID)
	require.NoError(t, err)
	assert.Empty(t, steps)

	err = h.engine.CleanupGame(context.Background(), h.gameID)
	require.ErrorContains(t, err, "not found")
}
