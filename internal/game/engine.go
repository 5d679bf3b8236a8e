package game

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/planarforge/oracle-server-go/internal/game/duration"
	"github.com/planarforge/oracle-server-go/internal/game/events"
	"github.com/planarforge/oracle-server-go/internal/game/mana"
	"github.com/planarforge/oracle-server-go/internal/game/oracle"
	"github.com/planarforge/oracle-server-go/internal/game/queue"
	"github.com/planarforge/oracle-server-go/internal/game/turn"
)

const (
	defaultStartingLife = 20
	defaultOpeningHand  = 7
)

// Engine owns the match registry and the effect handler table. The registry
// map is guarded by the engine's mutex; each GameState inside it is
// single-writer and carries no locking of its own.
type Engine struct {
	logger   *zap.Logger
	mu       sync.RWMutex
	games    map[string]*GameState
	steps    queue.Store
	handlers map[oracle.Kind]handlerFunc
}

// handlerFunc applies one recognized effect shape. True means the shape was
// recognized and resolved (legitimate no-ops included); false sends the
// dispatcher on to the next candidate.
type handlerFunc func(rc *resolutionContext, params interface{}) bool

// NewEngine creates an engine backed by the given step store.
func NewEngine(logger *zap.Logger, steps queue.Store) *Engine {
	e := &Engine{
		logger: logger,
		games:  make(map[string]*GameState),
		steps:  steps,
	}
	e.handlers = e.buildHandlerTable()
	return e
}

// PlayerSetup is one seat's starting configuration.
type PlayerSetup struct {
	ID         string
	Name       string
	Deck       []*Card
	Commanders []string
}

// MatchOptions tune a match at creation time. Zero values take defaults.
type MatchOptions struct {
	Seed         int64
	StartingLife int
	OpeningHand  int
}

// StartMatch creates a match, builds each player's zones from their deck,
// shuffles with the seeded source and draws opening hands.
func (e *Engine) StartMatch(gameID string, setups []PlayerSetup, opts MatchOptions) error {
	if gameID == "" {
		return fmt.Errorf("gameID is required")
	}
	if len(setups) < 2 {
		return fmt.Errorf("at least 2 players required")
	}

	startingLife := opts.StartingLife
	if startingLife == 0 {
		startingLife = defaultStartingLife
	}
	openingHand := opts.OpeningHand
	if openingHand == 0 {
		openingHand = defaultOpeningHand
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if _, exists := e.games[gameID]; exists {
		return fmt.Errorf("game %s already exists", gameID)
	}

	state := &GameState{
		GameID:       gameID,
		Status:       StatusInProgress,
		Players:      make(map[string]*Player),
		PlayerOrder:  make([]string, 0, len(setups)),
		Cards:        make(map[string]*Card),
		Battlefield:  make([]*Permanent, 0),
		Emblems:      make([]*Emblem, 0),
		Scheduled:    duration.NewList(),
		Bus:          events.NewBus(),
		Rand:         rand.New(rand.NewSource(seed)),
		Messages:     make([]Message, 0),
		StartingLife: startingLife,
		OpeningHand:  openingHand,
		startedAt:    time.Now(),
	}

	for _, setup := range setups {
		if setup.ID == "" {
			return fmt.Errorf("player id is required")
		}
		if _, dup := state.Players[setup.ID]; dup {
			return fmt.Errorf("duplicate player id %s", setup.ID)
		}
		name := setup.Name
		if name == "" {
			name = setup.ID
		}
		player := &Player{
			ID:           setup.ID,
			Name:         name,
			Life:         startingLife,
			Zones:        NewZoneSet(),
			Mana:         mana.NewPool(),
			CommanderTax: make(map[string]int),
		}
		state.Players[setup.ID] = player
		state.PlayerOrder = append(state.PlayerOrder, setup.ID)

		commanderNames := make(map[string]bool, len(setup.Commanders))
		for _, n := range setup.Commanders {
			commanderNames[n] = true
		}
		for _, card := range setup.Deck {
			if card.ID == "" {
				card.ID = uuid.NewString()
			}
			card.OwnerID = setup.ID
			state.Cards[card.ID] = card
			if commanderNames[card.Name] && !card.IsCommander {
				card.IsCommander = true
				player.Commanders = append(player.Commanders, card.ID)
				player.Zones.Command.AddBottom(card)
				continue
			}
			player.Zones.Library.AddBottom(card)
		}
	}

	ctrl, err := turn.NewController(state.PlayerOrder, turn.Hooks{
		OnTurnStart: func(playerID string, turnNumber int) {
			state.BeginTurn(playerID, turnNumber)
		},
		OnEndStep: func(turnNumber int) {
			state.FireEndStep(turnNumber)
		},
		OnCleanup: func(turnNumber int) {
			state.SweepEndOfTurn(turnNumber)
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create turn controller: %w", err)
	}
	state.Turn = ctrl
	state.Delegate = ctrl

	for _, id := range state.PlayerOrder {
		state.ShuffleLibrary(id)
		state.DrawCards(id, openingHand)
	}

	state.AddMessage("Game started", "action")
	state.publish(events.New(events.EventGameStarted, gameID, ""))
	e.games[gameID] = state

	e.logger.Info("match started",
		zap.String("game_id", gameID),
		zap.Int("players", len(setups)),
		zap.Int64("seed", seed),
	)
	return nil
}

// Game returns a match's state. The caller owns serialization of access.
func (e *Engine) Game(gameID string) (*GameState, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	state, ok := e.games[gameID]
	return state, ok
}

// CleanupGame drops a finished match and its pending steps.
func (e *Engine) CleanupGame(ctx context.Context, gameID string) error {
	e.mu.Lock()
	_, ok := e.games[gameID]
	delete(e.games, gameID)
	e.mu.Unlock()
	if !ok {
		return fmt.Errorf("game %s not found", gameID)
	}
	if err := e.steps.Clear(ctx, gameID); err != nil {
		return fmt.Errorf("failed to clear pending steps: %w", err)
	}
	e.logger.Info("match cleaned up", zap.String("game_id", gameID))
	return nil
}

// PendingSteps lists a match's unanswered interactive steps in order.
func (e *Engine) PendingSteps(ctx context.Context, gameID string) ([]queue.Step, error) {
	return e.steps.Pending(ctx, gameID)
}
