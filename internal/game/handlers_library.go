package game

import (
	"fmt"

	"github.com/planarforge/oracle-server-go/internal/game/oracle"
	"github.com/planarforge/oracle-server-go/internal/game/queue"
)

// topOfLibrary returns up to n top cards without moving them. The step
// completion moves them once the order is known.
func topOfLibrary(player *Player, n int) []*Card {
	if n > player.Zones.Library.Count {
		n = player.Zones.Library.Count
	}
	return player.Zones.Library.Cards[:n]
}

func handleScry(rc *resolutionContext, params interface{}) bool {
	p, ok := params.(oracle.AmountParams)
	if !ok {
		return false
	}
	player := rc.controller()
	if player == nil {
		return true
	}
	n := p.Amount.Resolve(rc.trig.XValue)
	top := topOfLibrary(player, n)
	if len(top) == 0 {
		return true
	}
	step := rc.newStep(rc.controllerID, queue.StepScry, "scry")
	step.Description = fmt.Sprintf("Scry %d", n)
	step.Mandatory = true
	for _, card := range top {
		step.CandidateIDs = append(step.CandidateIDs, card.ID)
	}
	rc.enqueue(step)
	return true
}

func handleSurveil(rc *resolutionContext, params interface{}) bool {
	p, ok := params.(oracle.AmountParams)
	if !ok {
		return false
	}
	player := rc.controller()
	if player == nil {
		return true
	}
	n := p.Amount.Resolve(rc.trig.XValue)
	top := topOfLibrary(player, n)
	if len(top) == 0 {
		return true
	}
	step := rc.newStep(rc.controllerID, queue.StepSurveil, "surveil")
	step.Description = fmt.Sprintf("Surveil %d", n)
	step.Mandatory = true
	for _, card := range top {
		step.CandidateIDs = append(step.CandidateIDs, card.ID)
	}
	rc.enqueue(step)
	return true
}

// handleLookTopTake reveals the top cards and keeps a fixed number; the
// rest go to the bottom of the library.
func handleLookTopTake(rc *resolutionContext, params interface{}) bool {
	p, ok := params.(oracle.LookTakeParams)
	if !ok {
		return false
	}
	player := rc.controller()
	if player == nil {
		return true
	}
	top := topOfLibrary(player, p.Look.Resolve(rc.trig.XValue))
	if len(top) == 0 {
		return true
	}
	take := p.Take.Resolve(rc.trig.XValue)
	if take > len(top) {
		take = len(top)
	}
	step := rc.newStep(rc.controllerID, queue.StepLibrarySearch, "look_top_take")
	step.Description = fmt.Sprintf("Look at the top %d cards and put %d into your hand", len(top), take)
	step.Mandatory = true
	step.Min = take
	step.Max = take
	step.Continuation.Data = map[string]string{"bottom_rest": "true"}
	for _, card := range top {
		step.CandidateIDs = append(step.CandidateIDs, card.ID)
	}
	rc.enqueue(step)
	return true
}
