package game

import (
	"github.com/planarforge/oracle-server-go/internal/game/events"
)

func handleExtraTurn(rc *resolutionContext, params interface{}) bool {
	if rc.replaying() {
		return true
	}
	rc.state.Delegate.AddExtraTurn(rc.controllerID, rc.sourceName)
	ev := events.New(events.EventExtraTurn, rc.state.GameID, rc.controllerID)
	ev.SourceName = rc.sourceName
	rc.state.publish(ev)
	rc.state.AddMessage(rc.sourceName+" grants an extra turn", "action")
	return true
}

func handleExtraLand(rc *resolutionContext, params interface{}) bool {
	if rc.replaying() {
		return true
	}
	rc.state.Delegate.ApplyTemporaryLandBonus(rc.controllerID, 1)
	ev := events.New(events.EventLandBonus, rc.state.GameID, rc.controllerID)
	ev.SourceName = rc.sourceName
	rc.state.publish(ev)
	return true
}
