package game

import (
	"github.com/planarforge/oracle-server-go/internal/game/events"
	"github.com/planarforge/oracle-server-go/internal/game/mana"
	"github.com/planarforge/oracle-server-go/internal/game/oracle"
	"github.com/planarforge/oracle-server-go/internal/game/queue"
)

func (rc *resolutionContext) publishManaAdded(playerID string, colors []mana.Color) {
	ev := events.New(events.EventManaAdded, rc.state.GameID, playerID)
	ev.SourceID = rc.trig.SourceID
	ev.SourceName = rc.sourceName
	ev.Description = mana.SymbolString(colors)
	rc.state.publish(ev)
}

func handleAddManaSymbols(rc *resolutionContext, params interface{}) bool {
	p, ok := params.(oracle.ManaParams)
	if !ok {
		return false
	}
	colors, err := mana.ParseSymbols(p.Symbols)
	if err != nil {
		return false
	}
	player := rc.controller()
	if player == nil {
		return true
	}
	if rc.replaying() {
		return true
	}
	for _, c := range colors {
		player.Mana.Add(c, 1)
	}
	rc.publishManaAdded(player.ID, colors)
	return true
}

func handleAddRestrictedMana(rc *resolutionContext, params interface{}) bool {
	p, ok := params.(oracle.RestrictedManaParams)
	if !ok {
		return false
	}
	colors, err := mana.ParseSymbols(p.Symbols)
	if err != nil {
		return false
	}
	player := rc.controller()
	if player == nil {
		return true
	}
	if rc.replaying() {
		return true
	}
	r := mana.Restriction{
		Description: p.Restriction,
		SourceID:    rc.trig.SourceID,
		SourceName:  rc.sourceName,
	}
	for _, c := range colors {
		player.Mana.AddRestricted(c, 1, r)
	}
	rc.publishManaAdded(player.ID, colors)
	return true
}

// handleAddManaAnyColor asks for one color and adds the whole amount in it.
// "in any combination of colors" texts get the same single-color step.
func handleAddManaAnyColor(rc *resolutionContext, params interface{}) bool {
	p, ok := params.(oracle.AnyColorManaParams)
	if !ok {
		return false
	}
	n := p.Amount.Resolve(rc.trig.XValue)
	if n <= 0 {
		return true
	}
	step := rc.newStep(rc.controllerID, queue.StepOptionChoice, "mana_color_choice")
	step.Description = "Choose a color of mana to add"
	step.Mandatory = true
	for _, c := range mana.Colors {
		if c == mana.Colorless {
			continue
		}
		step.Options = append(step.Options, c.Name())
	}
	step.Continuation.Amount = n
	rc.enqueue(step)
	return true
}
