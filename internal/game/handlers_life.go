package game

import (
	"github.com/planarforge/oracle-server-go/internal/game/oracle"
	"github.com/planarforge/oracle-server-go/internal/game/queue"
)

func handleGainLife(rc *resolutionContext, params interface{}) bool {
	p, ok := params.(oracle.AmountParams)
	if !ok {
		return false
	}
	if rc.replaying() {
		return true
	}
	rc.state.ModifyLife(rc.controllerID, p.Amount.Resolve(rc.trig.XValue), rc.sourceName)
	return true
}

func handleLoseLife(rc *resolutionContext, params interface{}) bool {
	p, ok := params.(oracle.AmountParams)
	if !ok {
		return false
	}
	if rc.replaying() {
		return true
	}
	rc.state.ModifyLife(rc.controllerID, -p.Amount.Resolve(rc.trig.XValue), rc.sourceName)
	return true
}

func handleOpponentsLoseLife(rc *resolutionContext, params interface{}) bool {
	p, ok := params.(oracle.AmountParams)
	if !ok {
		return false
	}
	if rc.replaying() {
		return true
	}
	n := p.Amount.Resolve(rc.trig.XValue)
	for _, id := range rc.state.Opponents(rc.controllerID) {
		rc.state.ModifyLife(id, -n, rc.sourceName)
	}
	return true
}

// handleDrainOpponents drains each opponent and gains the total actually
// lost.
func handleDrainOpponents(rc *resolutionContext, params interface{}) bool {
	p, ok := params.(oracle.AmountParams)
	if !ok {
		return false
	}
	if rc.replaying() {
		return true
	}
	n := p.Amount.Resolve(rc.trig.XValue)
	drained := 0
	for _, id := range rc.state.Opponents(rc.controllerID) {
		if _, applied := rc.state.ModifyLife(id, -n, rc.sourceName); applied {
			drained += n
		}
	}
	rc.state.ModifyLife(rc.controllerID, drained, rc.sourceName)
	return true
}

func handleGainLifeEqualTo(rc *resolutionContext, params interface{}) bool {
	p, ok := params.(oracle.ForEachParams)
	if !ok {
		return false
	}
	if rc.replaying() {
		return true
	}
	n := p.Amount.Resolve(rc.trig.XValue) * rc.evaluateQuantity(p.Quantity)
	rc.state.ModifyLife(rc.controllerID, n, rc.sourceName)
	return true
}

func handleSetLife(rc *resolutionContext, params interface{}) bool {
	p, ok := params.(oracle.SetLifeParams)
	if !ok {
		return false
	}
	player := rc.controller()
	if player == nil {
		return true
	}
	if rc.replaying() {
		return true
	}
	total := p.Amount.Resolve(rc.trig.XValue)
	rc.state.ModifyLife(rc.controllerID, total-player.Life, rc.sourceName)
	return true
}

// handlePayAnyLife asks the controller how much life to pay. The payment
// itself lands in the completion path.
func handlePayAnyLife(rc *resolutionContext, params interface{}) bool {
	player := rc.controller()
	if player == nil {
		return true
	}
	step := rc.newStep(rc.controllerID, queue.StepOptionChoice, "pay_any_amount")
	step.Description = "Pay any amount of life"
	step.Mandatory = true
	step.Max = player.Life
	rc.enqueue(step)
	return true
}
