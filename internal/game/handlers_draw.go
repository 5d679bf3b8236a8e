package game

import (
	"fmt"

	"github.com/planarforge/oracle-server-go/internal/game/oracle"
	"github.com/planarforge/oracle-server-go/internal/game/queue"
)

func handleDrawCards(rc *resolutionContext, params interface{}) bool {
	p, ok := params.(oracle.AmountParams)
	if !ok {
		return false
	}
	if rc.replaying() {
		return true
	}
	rc.state.DrawCards(rc.controllerID, p.Amount.Resolve(rc.trig.XValue))
	return true
}

func handleTargetPlayerDraws(rc *resolutionContext, params interface{}) bool {
	p, ok := params.(oracle.AmountParams)
	if !ok {
		return false
	}
	target := rc.targetPlayer()
	if target == nil {
		return true
	}
	if rc.replaying() {
		return true
	}
	rc.state.DrawCards(target.ID, p.Amount.Resolve(rc.trig.XValue))
	return true
}

func handleEachPlayerDraws(rc *resolutionContext, params interface{}) bool {
	p, ok := params.(oracle.AmountParams)
	if !ok {
		return false
	}
	if rc.replaying() {
		return true
	}
	n := p.Amount.Resolve(rc.trig.XValue)
	for _, id := range rc.state.PlayerOrder {
		rc.state.DrawCards(id, n)
	}
	return true
}

func handleEachOpponentDraws(rc *resolutionContext, params interface{}) bool {
	p, ok := params.(oracle.AmountParams)
	if !ok {
		return false
	}
	if rc.replaying() {
		return true
	}
	n := p.Amount.Resolve(rc.trig.XValue)
	for _, id := range rc.state.Opponents(rc.controllerID) {
		rc.state.DrawCards(id, n)
	}
	return true
}

// handleDrawThenDiscard draws fully before the discard is queued; an empty
// hand after the draw means there is nothing to discard and no step.
func handleDrawThenDiscard(rc *resolutionContext, params interface{}) bool {
	p, ok := params.(oracle.DrawDiscardParams)
	if !ok {
		return false
	}
	if rc.replaying() {
		return true
	}
	rc.state.DrawCards(rc.controllerID, p.Draw.Resolve(rc.trig.XValue))
	queueDiscard(rc, rc.controllerID, p.Discard.Resolve(rc.trig.XValue))
	return true
}

func handleDrawForEach(rc *resolutionContext, params interface{}) bool {
	p, ok := params.(oracle.ForEachParams)
	if !ok {
		return false
	}
	if rc.replaying() {
		return true
	}
	n := p.Amount.Resolve(rc.trig.XValue) * rc.evaluateQuantity(p.Quantity)
	rc.state.DrawCards(rc.controllerID, n)
	return true
}

// queueDiscard asks a player to pick n cards to discard. With n or fewer
// cards in hand there is no choice to make and the discard happens at once.
func queueDiscard(rc *resolutionContext, playerID string, n int) {
	player := rc.state.Player(playerID)
	if player == nil || n <= 0 {
		return
	}
	hand := player.Zones.Hand
	if hand.Count == 0 {
		return
	}
	if hand.Count <= n {
		for _, card := range append([]*Card(nil), hand.Cards...) {
			rc.state.Discard(playerID, card.ID)
		}
		return
	}
	step := rc.newStep(playerID, queue.StepDiscardSelection, "discard_selection")
	step.Description = fmt.Sprintf("Discard %d card(s)", n)
	step.Mandatory = true
	step.Min = n
	step.Max = n
	for _, card := range hand.Cards {
		step.CandidateIDs = append(step.CandidateIDs, card.ID)
	}
	rc.enqueue(step)
}

func handleDiscardCards(rc *resolutionContext, params interface{}) bool {
	p, ok := params.(oracle.AmountParams)
	if !ok {
		return false
	}
	if rc.replaying() {
		return true
	}
	queueDiscard(rc, rc.controllerID, p.Amount.Resolve(rc.trig.XValue))
	return true
}

func handleTargetPlayerDiscards(rc *resolutionContext, params interface{}) bool {
	p, ok := params.(oracle.AmountParams)
	if !ok {
		return false
	}
	target := rc.targetPlayer()
	if target == nil {
		return true
	}
	if rc.replaying() {
		return true
	}
	queueDiscard(rc, target.ID, p.Amount.Resolve(rc.trig.XValue))
	return true
}

func handleEachOpponentDiscards(rc *resolutionContext, params interface{}) bool {
	p, ok := params.(oracle.AmountParams)
	if !ok {
		return false
	}
	if rc.replaying() {
		return true
	}
	n := p.Amount.Resolve(rc.trig.XValue)
	for _, id := range rc.state.Opponents(rc.controllerID) {
		queueDiscard(rc, id, n)
	}
	return true
}

func handleDiscardHand(rc *resolutionContext, params interface{}) bool {
	if rc.replaying() {
		return true
	}
	discardWholeHand(rc.state, rc.controllerID)
	return true
}

func handleWheel(rc *resolutionContext, params interface{}) bool {
	if rc.replaying() {
		return true
	}
	for _, id := range rc.state.PlayerOrder {
		discardWholeHand(rc.state, id)
	}
	for _, id := range rc.state.PlayerOrder {
		rc.state.DrawCards(id, 7)
	}
	return true
}

func discardWholeHand(state *GameState, playerID string) {
	player := state.Player(playerID)
	if player == nil {
		return
	}
	for _, card := range append([]*Card(nil), player.Zones.Hand.Cards...) {
		state.Discard(playerID, card.ID)
	}
}
