// Package duration tracks temporary effects: what was granted, by whom,
// and when it leaves. Records are held in per-permanent lists (stat and
// ability grants) and a state-scoped list (delayed one-shot actions); the
// turn engine's cleanup hooks drain them by expiry class.
package duration

import (
	"github.com/google/uuid"
)

// Expiry is the rule governing when a temporary effect is removed.
type Expiry string

const (
	// UntilEndOfTurn effects are cleared by the cleanup sweep of the turn
	// they were applied in.
	UntilEndOfTurn Expiry = "UNTIL_END_OF_TURN"
	// UntilYourNextTurn effects are cleared at the start of the granting
	// controller's next turn, surviving every other player's turn.
	UntilYourNextTurn Expiry = "UNTIL_YOUR_NEXT_TURN"
	// AtNextEndStep marks a one-shot action that fires once at the end step
	// of its fire turn.
	AtNextEndStep Expiry = "AT_NEXT_END_STEP"
)

// PayloadKind discriminates what a record does.
type PayloadKind string

const (
	PayloadPTDelta           PayloadKind = "PT_DELTA"
	PayloadGrantAbility      PayloadKind = "GRANT_ABILITY"
	PayloadRemoveAllAbilities PayloadKind = "REMOVE_ALL_ABILITIES"
	PayloadControlChange     PayloadKind = "CONTROL_CHANGE"
	PayloadOneShot           PayloadKind = "ONE_SHOT"
)

// OneShotAction is the delayed state transition a PayloadOneShot performs.
type OneShotAction string

const (
	ActionSacrifice          OneShotAction = "SACRIFICE"
	ActionExile              OneShotAction = "EXILE"
	ActionReturnToHand       OneShotAction = "RETURN_TO_HAND"
	ActionReturnToBattlefield OneShotAction = "RETURN_TO_BATTLEFIELD"
)

// Payload carries the kind-specific data of a record.
type Payload struct {
	Kind PayloadKind

	// PayloadPTDelta
	Power     int
	Toughness int

	// PayloadGrantAbility
	Ability string

	// PayloadControlChange
	NewControllerID      string
	PreviousControllerID string

	// PayloadOneShot
	Action OneShotAction
}

// Record is one temporary effect. The ID is a stable handle: removal always
// goes through it, never through ability-name matching.
type Record struct {
	ID      string
	Expiry  Expiry
	Payload Payload

	// PermanentID is the battlefield object the record applies to. Empty
	// for records scoped to a player or the whole state.
	PermanentID string

	// Provenance. ControllerID drives until-your-next-turn expiry;
	// TurnApplied lets a sweep tell this turn's grants from stale ones.
	ControllerID string
	TurnApplied  int
	SourceName   string

	// FireTurn is the turn whose end step consumes an AtNextEndStep record.
	FireTurn int
}

// FireTurnFor computes which turn's end step a freshly scheduled one-shot
// belongs to. Scheduling from inside the ending phase defers to the next
// turn's end step.
func FireTurnFor(currentTurn int, inEndingPhase bool) int {
	if inEndingPhase {
		return currentTurn + 1
	}
	return currentTurn
}

// Provenance bundles the fields every record carries about its origin.
type Provenance struct {
	ControllerID string
	TurnApplied  int
	SourceName   string
}

// NewPTDelta builds a power/toughness modification record.
func NewPTDelta(permanentID string, power, toughness int, expiry Expiry, prov Provenance) Record {
	return Record{
		ID:     uuid.NewString(),
		Expiry: expiry,
		Payload: Payload{
			Kind:      PayloadPTDelta,
			Power:     power,
			Toughness: toughness,
		},
		PermanentID:  permanentID,
		ControllerID: prov.ControllerID,
		TurnApplied:  prov.TurnApplied,
		SourceName:   prov.SourceName,
	}
}

// NewGrantAbility builds an ability grant record.
func NewGrantAbility(permanentID, ability string, expiry Expiry, prov Provenance) Record {
	return Record{
		ID:     uuid.NewString(),
		Expiry: expiry,
		Payload: Payload{
			Kind:    PayloadGrantAbility,
			Ability: ability,
		},
		PermanentID:  permanentID,
		ControllerID: prov.ControllerID,
		TurnApplied:  prov.TurnApplied,
		SourceName:   prov.SourceName,
	}
}

// NewRemoveAllAbilities builds a record that suppresses every ability of a
// permanent while active.
func NewRemoveAllAbilities(permanentID string, expiry Expiry, prov Provenance) Record {
	return Record{
		ID:           uuid.NewString(),
		Expiry:       expiry,
		Payload:      Payload{Kind: PayloadRemoveAllAbilities},
		PermanentID:  permanentID,
		ControllerID: prov.ControllerID,
		TurnApplied:  prov.TurnApplied,
		SourceName:   prov.SourceName,
	}
}

// NewControlChange builds a temporary control change record. The previous
// controller is kept so expiry can restore it.
func NewControlChange(permanentID, newControllerID, previousControllerID string, expiry Expiry, prov Provenance) Record {
	return Record{
		ID:     uuid.NewString(),
		Expiry: expiry,
		Payload: Payload{
			Kind:                 PayloadControlChange,
			NewControllerID:      newControllerID,
			PreviousControllerID: previousControllerID,
		},
		PermanentID:  permanentID,
		ControllerID: prov.ControllerID,
		TurnApplied:  prov.TurnApplied,
		SourceName:   prov.SourceName,
	}
}

// NewOneShot builds a delayed one-shot action record that fires at the end
// step of fireTurn.
func NewOneShot(permanentID string, action OneShotAction, fireTurn int, prov Provenance) Record {
	return Record{
		ID:           uuid.NewString(),
		Expiry:       AtNextEndStep,
		Payload:      Payload{Kind: PayloadOneShot, Action: action},
		PermanentID:  permanentID,
		ControllerID: prov.ControllerID,
		TurnApplied:  prov.TurnApplied,
		SourceName:   prov.SourceName,
		FireTurn:     fireTurn,
	}
}
