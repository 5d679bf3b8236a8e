package game

import (
	"github.com/planarforge/oracle-server-go/internal/game/duration"
	"github.com/planarforge/oracle-server-go/internal/game/events"
	"github.com/planarforge/oracle-server-go/internal/game/oracle"
)

// takeControl hands the permanent to newController. With a temporary grab
// the previous controller is recorded state-side so the revert survives the
// permanent's own grant list being emptied.
func (rc *resolutionContext) takeControl(perm *Permanent, newController string, temporary bool) {
	prev := perm.ControllerID
	if prev == newController {
		return
	}
	perm.ControllerID = newController
	if temporary {
		rc.state.Scheduled.Add(duration.NewControlChange(perm.ID, newController, prev, duration.UntilEndOfTurn, rc.provenance()))
	}
	ev := events.New(events.EventControlChanged, rc.state.GameID, newController)
	ev.TargetID = perm.ID
	ev.Description = perm.Name
	rc.state.publish(ev)
	rc.state.AddMessage(perm.Name+" changes control", "action")
}

func handleThreaten(rc *resolutionContext, params interface{}) bool {
	if rc.firstTarget() == "" {
		return true
	}
	perm := rc.targetPermanent()
	if perm == nil {
		return true
	}
	if !perm.IsCreature() {
		return false
	}
	if rc.replaying() {
		return true
	}
	perm.Tapped = false
	rc.takeControl(perm, rc.controllerID, true)
	rc.addAbilityGrants(perm, []string{"haste"}, oracle.UntilEndOfTurn)
	return true
}

func handleGainControlTemp(rc *resolutionContext, params interface{}) bool {
	p, ok := params.(oracle.ZoneParams)
	if !ok {
		return false
	}
	if rc.firstTarget() == "" {
		return true
	}
	perm := rc.targetPermanent()
	if perm == nil {
		return true
	}
	if !rc.matchesTypeWord(perm, p.TypeWord) {
		return false
	}
	if rc.replaying() {
		return true
	}
	rc.takeControl(perm, rc.controllerID, true)
	return true
}

func handleGainControl(rc *resolutionContext, params interface{}) bool {
	p, ok := params.(oracle.ZoneParams)
	if !ok {
		return false
	}
	if rc.firstTarget() == "" {
		return true
	}
	perm := rc.targetPermanent()
	if perm == nil {
		return true
	}
	if !rc.matchesTypeWord(perm, p.TypeWord) {
		return false
	}
	if rc.replaying() {
		return true
	}
	rc.takeControl(perm, rc.controllerID, false)
	return true
}
