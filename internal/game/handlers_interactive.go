package game

import (
	"strings"

	"github.com/planarforge/oracle-server-go/internal/game/events"
	"github.com/planarforge/oracle-server-go/internal/game/oracle"
	"github.com/planarforge/oracle-server-go/internal/game/queue"
)

func handleModalChoice(rc *resolutionContext, params interface{}) bool {
	p, ok := params.(oracle.ModalParams)
	if !ok {
		return false
	}
	step := rc.newStep(rc.controllerID, queue.StepModalChoice, "modal_choice")
	step.Description = "Choose one"
	step.Mandatory = true
	step.Options = p.Options
	rc.enqueue(step)
	return true
}

// handleTwoPileSplit asks the resolving player to build the piles; the
// completion then hands the pile choice to the affected player.
func handleTwoPileSplit(rc *resolutionContext, params interface{}) bool {
	p, ok := params.(oracle.PileSplitParams)
	if !ok {
		return false
	}
	target := rc.targetPlayer()
	if target == nil {
		return true
	}
	tw := strings.TrimSuffix(p.TypeWord, " target player controls")
	tw = strings.TrimSuffix(tw, " that player controls")
	var candidates []string
	for _, perm := range rc.state.PermanentsControlledBy(target.ID) {
		if rc.matchesTypeWord(perm, tw) {
			candidates = append(candidates, perm.ID)
		}
	}
	if len(candidates) == 0 {
		return true
	}
	step := rc.newStep(rc.controllerID, queue.StepTwoPileSplit, "two_pile_split")
	step.Description = p.Description
	step.Mandatory = true
	step.CandidateIDs = candidates
	step.Continuation.Data = map[string]string{"target_player": target.ID}
	rc.enqueue(step)
	return true
}

func handleUpkeepSacrifice(rc *resolutionContext, params interface{}) bool {
	p, ok := params.(oracle.UpkeepSacrificeParams)
	if !ok {
		return false
	}
	source := rc.state.FindPermanent(rc.trig.SourceID)
	if source == nil {
		return true
	}
	step := rc.newStep(source.ControllerID, queue.StepUpkeepSacrifice, "upkeep_sacrifice")
	step.Description = "Sacrifice " + source.Name + " unless you pay " + p.Cost
	step.Options = []string{"Pay " + p.Cost, "Sacrifice"}
	step.Continuation.SourceID = source.ID
	rc.enqueue(step)
	return true
}

// handleManualResolution is the catalog terminal: every text lands here
// eventually, so it always succeeds. The raw pre-normalization text goes to
// the adjudicating player untouched.
func handleManualResolution(rc *resolutionContext, params interface{}) bool {
	p, ok := params.(oracle.RawTextParams)
	if !ok {
		return false
	}
	step := rc.newStep(rc.controllerID, queue.StepOptionChoice, "manual_resolution")
	step.Description = "Resolve manually: " + p.Text
	step.Mandatory = true
	step.Options = []string{"Done"}
	rc.enqueue(step)

	ev := events.New(events.EventManualResolution, rc.state.GameID, rc.controllerID)
	ev.SourceID = rc.trig.SourceID
	ev.SourceName = rc.sourceName
	ev.Description = p.Text
	rc.state.publish(ev)
	rc.state.AddMessage(rc.sourceName+" requires manual resolution", "action")
	return true
}
