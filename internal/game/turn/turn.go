// Package turn tracks turn order, phases and steps for a match, and tells
// the effect engine when its cleanup hooks are due. Extra turns and
// temporary land-play bonuses granted by resolved effects are owned here.
package turn

import (
	"fmt"
)

// Phase represents the broad phases of a turn.
type Phase int

const (
	PhaseBeginning Phase = iota
	PhasePrecombatMain
	PhaseCombat
	PhasePostcombatMain
	PhaseEnding
)

var phaseNames = map[Phase]string{
	PhaseBeginning:      "BEGINNING",
	PhasePrecombatMain:  "PRECOMBAT_MAIN",
	PhaseCombat:         "COMBAT",
	PhasePostcombatMain: "POSTCOMBAT_MAIN",
	PhaseEnding:         "ENDING",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("PHASE_%d", int(p))
}

// Step represents the individual steps that comprise a turn.
type Step int

const (
	StepUntap Step = iota
	StepUpkeep
	StepDraw
	StepMain1
	StepBeginCombat
	StepDeclareAttackers
	StepDeclareBlockers
	StepCombatDamage
	StepEndCombat
	StepMain2
	StepEnd
	StepCleanup
)

var stepNames = map[Step]string{
	StepUntap:            "UNTAP",
	StepUpkeep:           "UPKEEP",
	StepDraw:             "DRAW",
	StepMain1:            "MAIN1",
	StepBeginCombat:      "BEGIN_COMBAT",
	StepDeclareAttackers: "DECLARE_ATTACKERS",
	StepDeclareBlockers:  "DECLARE_BLOCKERS",
	StepCombatDamage:     "COMBAT_DAMAGE",
	StepEndCombat:        "END_COMBAT",
	StepMain2:            "MAIN2",
	StepEnd:              "END",
	StepCleanup:          "CLEANUP",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return fmt.Sprintf("STEP_%d", int(s))
}

type turnEntry struct {
	phase Phase
	step  Step
}

var turnSequence = []turnEntry{
	{PhaseBeginning, StepUntap},
	{PhaseBeginning, StepUpkeep},
	{PhaseBeginning, StepDraw},
	{PhasePrecombatMain, StepMain1},
	{PhaseCombat, StepBeginCombat},
	{PhaseCombat, StepDeclareAttackers},
	{PhaseCombat, StepDeclareBlockers},
	{PhaseCombat, StepCombatDamage},
	{PhaseCombat, StepEndCombat},
	{PhasePostcombatMain, StepMain2},
	{PhaseEnding, StepEnd},
	{PhaseEnding, StepCleanup},
}

// Hooks are invoked by the controller at the boundaries the effect engine
// cares about. Nil hooks are skipped.
type Hooks struct {
	// OnTurnStart fires after the active player rotates, before the untap
	// step. The effect engine clears until-your-next-turn effects whose
	// controller is the new active player here.
	OnTurnStart func(playerID string, turnNumber int)
	// OnEndStep fires when the end step begins. Delayed one-shot actions
	// scheduled for this turn fire here.
	OnEndStep func(turnNumber int)
	// OnCleanup fires when the cleanup step begins. Until-end-of-turn
	// effects are swept here.
	OnCleanup func(turnNumber int)
}

type extraTurn struct {
	playerID   string
	sourceName string
}

// Controller drives turn progression for one match. It is part of the
// single-writer match session and carries no internal locking.
type Controller struct {
	order          []string
	orderIndex     int
	turnNumber     int
	seqIndex       int
	activePlayer   string
	priorityPlayer string
	hooks          Hooks

	// Extra turns are taken most-recently-added first.
	extraTurns []extraTurn

	landBonus   map[string]int
	landsPlayed map[string]int
}

// NewController creates a controller for the given turn order, starting at
// turn 1 with the first player's untap step.
func NewController(order []string, hooks Hooks) (*Controller, error) {
	if len(order) == 0 {
		return nil, fmt.Errorf("turn order must name at least one player")
	}
	players := make([]string, len(order))
	copy(players, order)
	return &Controller{
		order:          players,
		orderIndex:     0,
		turnNumber:     1,
		seqIndex:       0,
		activePlayer:   players[0],
		priorityPlayer: players[0],
		hooks:          hooks,
		landBonus:      make(map[string]int),
		landsPlayed:    make(map[string]int),
	}, nil
}

// CurrentPhase returns the phase currently in progress.
func (c *Controller) CurrentPhase() Phase { return turnSequence[c.seqIndex].phase }

// CurrentStep returns the step currently in progress.
func (c *Controller) CurrentStep() Step { return turnSequence[c.seqIndex].step }

// InEndingPhase reports whether the turn is inside its ending phase. The
// effect engine uses this to decide whether a "at the beginning of the next
// end step" action belongs to this turn or the following one.
func (c *Controller) InEndingPhase() bool { return c.CurrentPhase() == PhaseEnding }

// TurnNumber returns the current turn number. Zero means the match has been
// reset and the first turn has not begun.
func (c *Controller) TurnNumber() int { return c.turnNumber }

// ActivePlayer returns the player whose turn it is.
func (c *Controller) ActivePlayer() string { return c.activePlayer }

// PriorityPlayer returns the player currently holding priority.
func (c *Controller) PriorityPlayer() string { return c.priorityPlayer }

// Order returns the match's turn order.
func (c *Controller) Order() []string {
	order := make([]string, len(c.order))
	copy(order, c.order)
	return order
}

// PrecedingPlayer returns the player immediately before playerID in turn
// order, wrapping around. With a single player it returns that player.
func (c *Controller) PrecedingPlayer(playerID string) string {
	for i, p := range c.order {
		if p == playerID {
			return c.order[(i-1+len(c.order))%len(c.order)]
		}
	}
	return playerID
}

// AdvanceStep moves to the next step, wrapping into the next turn after
// cleanup. Hook callbacks fire as the relevant steps begin.
func (c *Controller) AdvanceStep() (Phase, Step) {
	c.seqIndex++
	if c.seqIndex >= len(turnSequence) {
		c.NextTurn()
		return c.CurrentPhase(), c.CurrentStep()
	}

	c.priorityPlayer = c.activePlayer
	switch c.CurrentStep() {
	case StepEnd:
		if c.hooks.OnEndStep != nil {
			c.hooks.OnEndStep(c.turnNumber)
		}
	case StepCleanup:
		if c.hooks.OnCleanup != nil {
			c.hooks.OnCleanup(c.turnNumber)
		}
	}
	return c.CurrentPhase(), c.CurrentStep()
}

// NextTurn rotates to the next turn: a pending extra turn if any, otherwise
// the next player in order. Per-turn land tracking resets, then the turn
// start hook fires.
func (c *Controller) NextTurn() {
	if n := len(c.extraTurns); n > 0 {
		extra := c.extraTurns[n-1]
		c.extraTurns = c.extraTurns[:n-1]
		c.activePlayer = extra.playerID
	} else {
		c.orderIndex = c.indexOf(c.activePlayer)
		c.orderIndex = (c.orderIndex + 1) % len(c.order)
		c.activePlayer = c.order[c.orderIndex]
	}

	c.turnNumber++
	c.seqIndex = 0
	c.priorityPlayer = c.activePlayer
	c.landBonus = make(map[string]int)
	c.landsPlayed = make(map[string]int)

	if c.hooks.OnTurnStart != nil {
		c.hooks.OnTurnStart(c.activePlayer, c.turnNumber)
	}
}

func (c *Controller) indexOf(playerID string) int {
	for i, p := range c.order {
		if p == playerID {
			return i
		}
	}
	return c.orderIndex
}

// AddExtraTurn schedules an extra turn for the given player. Extra turns
// stack and the most recently added is taken first.
func (c *Controller) AddExtraTurn(playerID, sourceName string) {
	c.extraTurns = append(c.extraTurns, extraTurn{playerID: playerID, sourceName: sourceName})
}

// PendingExtraTurns returns how many extra turns are queued.
func (c *Controller) PendingExtraTurns() int { return len(c.extraTurns) }

// ApplyTemporaryLandBonus grants the player n additional land plays for the
// current turn. The bonus is discarded when the turn ends.
func (c *Controller) ApplyTemporaryLandBonus(playerID string, n int) {
	if n <= 0 {
		return
	}
	c.landBonus[playerID] += n
}

// LandPlaysRemaining returns how many lands the player may still play this
// turn. Only the active player has a base land play.
func (c *Controller) LandPlaysRemaining(playerID string) int {
	allowed := c.landBonus[playerID]
	if playerID == c.activePlayer {
		allowed++
	}
	remaining := allowed - c.landsPlayed[playerID]
	if remaining < 0 {
		return 0
	}
	return remaining
}

// NoteLandPlayed records that the player used up one land play.
func (c *Controller) NoteLandPlayed(playerID string) {
	c.landsPlayed[playerID]++
}

// InitializeBeginningPhase enters the beginning phase at the untap step and
// hands priority to the active player. The restart path calls this after a
// full-state reset.
func (c *Controller) InitializeBeginningPhase() error {
	if len(c.order) == 0 || c.activePlayer == "" {
		return fmt.Errorf("cannot initialize beginning phase without an active player")
	}
	c.seqIndex = 0
	c.priorityPlayer = c.activePlayer
	return nil
}

// Reset rewinds the controller after a full-state reset: the turn counter
// is set to turnNumber and the turn is handed to activePlayer. Extra turns
// and land bonuses are cleared.
func (c *Controller) Reset(activePlayer string, turnNumber int) {
	c.activePlayer = activePlayer
	c.priorityPlayer = activePlayer
	c.orderIndex = c.indexOf(activePlayer)
	c.turnNumber = turnNumber
	c.seqIndex = 0
	c.extraTurns = nil
	c.landBonus = make(map[string]int)
	c.landsPlayed = make(map[string]int)
}

// ForceState pins the controller to the given phase and step without firing
// hooks. Used as the fallback when beginning-phase initialization fails.
func (c *Controller) ForceState(phase Phase, step Step) {
	for i, entry := range turnSequence {
		if entry.phase == phase && entry.step == step {
			c.seqIndex = i
			c.priorityPlayer = c.activePlayer
			return
		}
	}
}
