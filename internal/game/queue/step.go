// Package queue defines the resolution queue contract: interactive steps
// the effect engine enqueues for a player decision, answered later by the
// queue consumer. The engine never blocks on a step; a pending step may sit
// unanswered indefinitely.
package queue

import (
	"time"

	"github.com/google/uuid"
)

// StepType identifies the kind of player decision a step asks for.
type StepType string

const (
	StepOptionChoice     StepType = "OPTION_CHOICE"
	StepModalChoice      StepType = "MODAL_CHOICE"
	StepTargetSelection  StepType = "TARGET_SELECTION"
	StepDiscardSelection StepType = "DISCARD_SELECTION"
	StepLibrarySearch    StepType = "LIBRARY_SEARCH"
	StepScry             StepType = "SCRY"
	StepSurveil          StepType = "SURVEIL"
	StepTwoPileSplit     StepType = "TWO_PILE_SPLIT"
	StepUpkeepSacrifice  StepType = "UPKEEP_SACRIFICE"
)

// Continuation carries what the completion entry point needs to finish the
// effect once the player answers. Tag selects the completion routine.
type Continuation struct {
	Tag          string            `json:"tag"`
	SourceID     string            `json:"source_id,omitempty"`
	SourceName   string            `json:"source_name,omitempty"`
	ControllerID string            `json:"controller_id,omitempty"`
	CardIDs      []string          `json:"card_ids,omitempty"`
	Amount       int               `json:"amount,omitempty"`
	Data         map[string]string `json:"data,omitempty"`
}

// Step is one pending interactive decision.
type Step struct {
	ID          string   `json:"id"`
	GameID      string   `json:"game_id"`
	PlayerID    string   `json:"player_id"`
	Type        StepType `json:"type"`
	Description string   `json:"description"`
	Mandatory   bool     `json:"mandatory"`

	// Options for option/modal choices; CandidateIDs for card or target
	// selections. Min/Max bound how many the player must pick.
	Options      []string `json:"options,omitempty"`
	CandidateIDs []string `json:"candidate_ids,omitempty"`
	Min          int      `json:"min,omitempty"`
	Max          int      `json:"max,omitempty"`

	Continuation Continuation `json:"continuation"`
	CreatedAt    time.Time    `json:"created_at"`
}

// NewStep builds a step with a fresh ID and timestamp.
func NewStep(gameID, playerID string, stepType StepType) Step {
	return Step{
		ID:        uuid.NewString(),
		GameID:    gameID,
		PlayerID:  playerID,
		Type:      stepType,
		CreatedAt: time.Now(),
	}
}

// Answer is the player's response to a step, written back by the queue
// consumer. Which fields matter depends on the step type.
type Answer struct {
	StepID   string `json:"step_id"`
	PlayerID string `json:"player_id"`

	// OptionIndex selects from Options for option/modal choices.
	OptionIndex int `json:"option_index,omitempty"`
	// CardIDs are the chosen cards/targets for selections and searches.
	CardIDs []string `json:"card_ids,omitempty"`
	// Amount answers pay-any-amount style prompts.
	Amount int `json:"amount,omitempty"`
	// PileOne holds the first pile of a two-pile split; the rest of the
	// candidates form the second pile.
	PileOne []string `json:"pile_one,omitempty"`
	// ToBottom lists cards sent to the bottom for scry; ToGraveyard lists
	// cards binned for surveil. Unlisted candidates stay on top in order.
	ToBottom    []string `json:"to_bottom,omitempty"`
	ToGraveyard []string `json:"to_graveyard,omitempty"`
	// Declined marks an optional step the player refused.
	Declined bool `json:"declined,omitempty"`
}
