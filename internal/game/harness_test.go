package game

import (
	"context"
	"fmt"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/planarforge/oracle-server-go/internal/game/queue"
)

// resolveHarness wires an engine, a memory step store and a two-player
// match for handler tests.
type resolveHarness struct {
	t      *testing.T
	engine *Engine
	steps  *queue.MemoryStore
	gameID string
	state  *GameState
}

const (
	alice = "alice"
	bob   = "bob"
)

func newResolveHarness(t *testing.T) *resolveHarness {
	t.Helper()
	steps := queue.NewMemoryStore()
	engine := NewEngine(zaptest.NewLogger(t), steps)

	gameID := "game-" + t.Name()
	setups := []PlayerSetup{
		{ID: alice, Name: "Alice", Deck: testDeck(30)},
		{ID: bob, Name: "Bob", Deck: testDeck(30)},
	}
	if err := engine.StartMatch(gameID, setups, MatchOptions{Seed: 1}); err != nil {
		t.Fatalf("failed to start match: %v", err)
	}

	state, ok := engine.Game(gameID)
	if !ok {
		t.Fatalf("game %s not registered", gameID)
	}
	return &resolveHarness{t: t, engine: engine, steps: steps, gameID: gameID, state: state}
}

// testDeck builds n vanilla cards, half Forests and half Bears.
func testDeck(n int) []*Card {
	deck := make([]*Card, 0, n)
	for i := 0; i < n; i++ {
		if i%2 == 0 {
			deck = append(deck, &Card{
				Name:  fmt.Sprintf("Forest %d", i),
				Types: []string{"Land"}, Subtypes: []string{"Forest"},
				Supertypes: []string{"Basic"},
			})
			continue
		}
		deck = append(deck, &Card{
			Name:     fmt.Sprintf("Bear %d", i),
			ManaCost: "{1}{G}", ManaValue: 2,
			Types: []string{"Creature"}, Subtypes: []string{"Bear"},
			Power: "2", Toughness: "2",
		})
	}
	return deck
}

// creatureSpec describes a battlefield permanent a test needs in place.
type creatureSpec struct {
	Name       string
	Power      int
	Toughness  int
	Controller string
	Types      []string
	Subtypes   []string
	Abilities  []string
	Loyalty    int
	Tapped     bool
}

// addPermanent registers a fresh card and puts it straight onto the
// battlefield.
func (h *resolveHarness) addPermanent(spec creatureSpec) *Permanent {
	h.t.Helper()
	types := spec.Types
	if len(types) == 0 {
		types = []string{"Creature"}
	}
	card := &Card{
		ID:        fmt.Sprintf("card-%s-%d", spec.Name, len(h.state.Cards)),
		Name:      spec.Name,
		Types:     types,
		Subtypes:  spec.Subtypes,
		Keywords:  spec.Abilities,
		Power:     fmt.Sprintf("%d", spec.Power),
		Toughness: fmt.Sprintf("%d", spec.Toughness),
		OwnerID:   spec.Controller,
	}
	if spec.Loyalty > 0 {
		card.Loyalty = fmt.Sprintf("%d", spec.Loyalty)
		card.Power, card.Toughness = "", ""
	}
	h.state.Cards[card.ID] = card
	perm := h.state.EnterBattlefield(card, spec.Controller)
	perm.Tapped = spec.Tapped
	return perm
}

// resolve runs one ability text through the engine for the given controller.
func (h *resolveHarness) resolve(text, controllerID, sourceName string, trig TriggerItem) bool {
	h.t.Helper()
	return h.engine.Resolve(context.Background(), h.gameID, text, trig, controllerID, sourceName)
}

// pending returns the match's queued steps.
func (h *resolveHarness) pending() []queue.Step {
	h.t.Helper()
	steps, err := h.engine.PendingSteps(context.Background(), h.gameID)
	if err != nil {
		h.t.Fatalf("failed to list pending steps: %v", err)
	}
	return steps
}

// complete answers one queued step.
func (h *resolveHarness) complete(stepID string, answer queue.Answer) error {
	h.t.Helper()
	return h.engine.CompleteStep(context.Background(), h.gameID, stepID, answer)
}

// player is a shorthand accessor that fails the test on an unknown id.
func (h *resolveHarness) player(id string) *Player {
	h.t.Helper()
	p := h.state.Player(id)
	if p == nil {
		h.t.Fatalf("unknown player %s", id)
	}
	return p
}

// setLibrary replaces a player's library with exactly the given cards, top
// first.
func (h *resolveHarness) setLibrary(playerID string, cards ...*Card) {
	h.t.Helper()
	player := h.player(playerID)
	for _, card := range player.Zones.Library.TakeAll() {
		delete(h.state.Cards, card.ID)
	}
	for _, card := range cards {
		if card.ID == "" {
			card.ID = fmt.Sprintf("lib-%s-%d", playerID, len(h.state.Cards))
		}
		card.OwnerID = playerID
		h.state.Cards[card.ID] = card
		player.Zones.Library.AddBottom(card)
	}
}

// zoneCountsConsistent asserts the redundant zone count fields match their
// sequence lengths for every player.
func (h *resolveHarness) zoneCountsConsistent() {
	h.t.Helper()
	for id, player := range h.state.Players {
		for _, name := range []ZoneName{ZoneLibrary, ZoneHand, ZoneGraveyard, ZoneExile, ZoneCommand} {
			zone := player.Zones.Zone(name)
			if zone.Count != len(zone.Cards) {
				h.t.Fatalf("player %s zone %s: count %d != len %d", id, name, zone.Count, len(zone.Cards))
			}
		}
	}
}
