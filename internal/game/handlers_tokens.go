package game

import (
	"github.com/planarforge/oracle-server-go/internal/game/oracle"
)

func handleCreateTokens(rc *resolutionContext, params interface{}) bool {
	p, ok := params.(oracle.TokenParams)
	if !ok {
		return false
	}
	if rc.replaying() {
		return true
	}
	d := p.Descriptor
	spec := TokenSpec{
		Name:      d.Name,
		Power:     d.Power,
		Toughness: d.Toughness,
		Colors:    d.Colors,
		Types:     append([]string{"Creature"}, d.ExtraTypes...),
		Subtypes:  d.Subtypes,
		Abilities: d.Abilities,
		Tapped:    d.Tapped,
	}
	rc.state.CreateTokens(rc.controllerID, p.Count.Resolve(rc.trig.XValue), spec)
	return true
}

func handleCreateTreasure(rc *resolutionContext, params interface{}) bool {
	p, ok := params.(oracle.AmountParams)
	if !ok {
		return false
	}
	if rc.replaying() {
		return true
	}
	rc.state.CreateTokens(rc.controllerID, p.Amount.Resolve(rc.trig.XValue), TreasureSpec())
	return true
}

func handleCreateFood(rc *resolutionContext, params interface{}) bool {
	p, ok := params.(oracle.AmountParams)
	if !ok {
		return false
	}
	if rc.replaying() {
		return true
	}
	rc.state.CreateTokens(rc.controllerID, p.Amount.Resolve(rc.trig.XValue), FoodSpec())
	return true
}

// handleInvestigate creates the Clue; drawing from it later goes through the
// Clue's own sacrifice ability.
func handleInvestigate(rc *resolutionContext, params interface{}) bool {
	if rc.replaying() {
		return true
	}
	rc.state.CreateTokens(rc.controllerID, 1, ClueSpec())
	return true
}

func handleEmblem(rc *resolutionContext, params interface{}) bool {
	p, ok := params.(oracle.EmblemParams)
	if !ok {
		return false
	}
	if rc.replaying() {
		return true
	}
	rc.state.CreateEmblem(rc.controllerID, rc.sourceName, p.Abilities)
	return true
}
