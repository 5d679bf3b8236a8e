package game

import (
	"fmt"

	"github.com/planarforge/oracle-server-go/internal/game/duration"
	"github.com/planarforge/oracle-server-go/internal/game/events"
)

// BeginTurn runs the start-of-turn bookkeeping for the new active player:
// until-your-next-turn effects whose controller is now active expire, then
// that player's permanents untap.
func (g *GameState) BeginTurn(playerID string, turnNumber int) {
	for _, rec := range g.Scheduled.TakeStartOfTurn(playerID) {
		g.expireRecord(rec)
	}
	for _, perm := range g.Battlefield {
		for _, rec := range perm.Grants.TakeStartOfTurn(playerID) {
			g.expireRecord(rec)
		}
	}

	for _, perm := range g.PermanentsControlledBy(playerID) {
		if perm.NoUntapNextUntap {
			perm.NoUntapNextUntap = false
			continue
		}
		perm.Tapped = false
	}

	ev := events.New(events.EventTurnStarted, g.GameID, playerID)
	ev.Data = map[string]string{"turn": fmt.Sprintf("%d", turnNumber)}
	g.publish(ev)
	if player := g.Player(playerID); player != nil {
		g.AddMessage(fmt.Sprintf("Turn %d: %s", turnNumber, player.Name), "action")
	}
}

// FireEndStep fires delayed one-shot actions scheduled for this turn's end
// step. Records scheduled for a later turn stay put.
func (g *GameState) FireEndStep(turnNumber int) {
	for _, rec := range g.Scheduled.TakeEndStepDue(turnNumber) {
		g.fireOneShot(rec)
	}
}

// SweepEndOfTurn clears until-end-of-turn effects and per-turn combat
// residue at cleanup. Stale records from skipped cleanups go with them.
func (g *GameState) SweepEndOfTurn(turnNumber int) {
	for _, rec := range g.Scheduled.TakeEndOfTurn() {
		g.expireRecord(rec)
	}
	for _, perm := range g.Battlefield {
		for _, rec := range perm.Grants.TakeEndOfTurn() {
			g.expireRecord(rec)
		}
		perm.Damage = 0
		perm.DamageSources = nil
		perm.ExcessDamage = false
		perm.CantBlockThisTurn = false
		perm.RegenerationShields = 0
	}
}

// expireRecord undoes whatever a taken record was holding open. Grant and
// delta records need no undo: removal from the list already changed the
// effective values.
func (g *GameState) expireRecord(rec duration.Record) {
	if rec.Payload.Kind == duration.PayloadControlChange {
		if perm := g.FindPermanent(rec.PermanentID); perm != nil {
			perm.ControllerID = rec.Payload.PreviousControllerID
			ev := events.New(events.EventControlChanged, g.GameID, perm.ControllerID)
			ev.TargetID = perm.ID
			ev.Description = perm.Name
			g.publish(ev)
		}
	}
	ev := events.New(events.EventEffectExpired, g.GameID, rec.ControllerID)
	ev.TargetID = rec.PermanentID
	ev.SourceName = rec.SourceName
	g.publish(ev)
}

func (g *GameState) fireOneShot(rec duration.Record) {
	ev := events.New(events.EventDelayedFired, g.GameID, rec.ControllerID)
	ev.TargetID = rec.PermanentID
	ev.SourceName = rec.SourceName
	ev.Data = map[string]string{"action": string(rec.Payload.Action)}
	g.publish(ev)

	switch rec.Payload.Action {
	case duration.ActionSacrifice:
		g.SacrificePermanent(rec.PermanentID)
	case duration.ActionExile:
		g.ExilePermanent(rec.PermanentID, rec.SourceName)
	case duration.ActionReturnToHand:
		g.RemovePermanent(rec.PermanentID, ZoneHand)
	case duration.ActionReturnToBattlefield:
		// The record points at a card waiting in exile.
		if card := g.Cards[rec.PermanentID]; card != nil {
			g.MoveCardToZone(card, ZoneBattlefield)
		}
	}
}
