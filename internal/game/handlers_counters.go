package game

import (
	"github.com/planarforge/oracle-server-go/internal/game/counters"
	"github.com/planarforge/oracle-server-go/internal/game/events"
	"github.com/planarforge/oracle-server-go/internal/game/oracle"
)

func handlePutCountersOnSelf(rc *resolutionContext, params interface{}) bool {
	p, ok := params.(oracle.CounterPlacementParams)
	if !ok {
		return false
	}
	source := rc.state.FindPermanent(rc.trig.SourceID)
	if source == nil {
		return true
	}
	if rc.replaying() {
		return true
	}
	rc.state.UpdateCounters(source.ID, map[counters.Kind]int{
		counters.Kind(p.CounterKind): p.Count.Resolve(rc.trig.XValue),
	})
	return true
}

func handlePutCountersOnTarget(rc *resolutionContext, params interface{}) bool {
	p, ok := params.(oracle.CounterPlacementParams)
	if !ok {
		return false
	}
	if rc.firstTarget() == "" {
		// "Up to one" with none chosen resolves with nothing to do.
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
	rc.state.UpdateCounters(perm.ID, map[counters.Kind]int{
		counters.Kind(p.CounterKind): p.Count.Resolve(rc.trig.XValue),
	})
	return true
}

func handlePutCountersOnEach(rc *resolutionContext, params interface{}) bool {
	p, ok := params.(oracle.CounterPlacementParams)
	if !ok {
		return false
	}
	if rc.replaying() {
		return true
	}
	n := p.Count.Resolve(rc.trig.XValue)
	for _, perm := range append([]*Permanent(nil), rc.state.Battlefield...) {
		if rc.matchesTypeWord(perm, p.TypeWord) {
			rc.state.UpdateCounters(perm.ID, map[counters.Kind]int{
				counters.Kind(p.CounterKind): n,
			})
		}
	}
	return true
}

func handleRemoveCountersTarget(rc *resolutionContext, params interface{}) bool {
	p, ok := params.(oracle.CounterPlacementParams)
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
	rc.state.UpdateCounters(perm.ID, map[counters.Kind]int{
		counters.Kind(p.CounterKind): -p.Count.Resolve(rc.trig.XValue),
	})
	return true
}

// handleProliferate adds one counter of each kind already present, on every
// permanent with counters and every player with poison. Choosing a subset
// is legal in paper; resolving for everything is the engine's best effort.
func handleProliferate(rc *resolutionContext, params interface{}) bool {
	if rc.replaying() {
		return true
	}
	for _, perm := range append([]*Permanent(nil), rc.state.Battlefield...) {
		kinds := perm.Counters.Kinds()
		if len(kinds) == 0 {
			continue
		}
		deltas := make(map[counters.Kind]int, len(kinds))
		for _, k := range kinds {
			deltas[k] = 1
		}
		rc.state.UpdateCounters(perm.ID, deltas)
	}
	for _, id := range rc.state.PlayerOrder {
		player := rc.state.Players[id]
		if player.Poison > 0 {
			player.Poison++
		}
	}
	return true
}

func handlePoisonCounters(rc *resolutionContext, params interface{}) bool {
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
	target.Poison += p.Amount.Resolve(rc.trig.XValue)
	ev := events.New(events.EventCountersChanged, rc.state.GameID, target.ID)
	ev.Amount = target.Poison
	ev.Data = map[string]string{"kind": string(counters.KindPoison)}
	rc.state.publish(ev)
	return true
}

func handleGetEnergy(rc *resolutionContext, params interface{}) bool {
	p, ok := params.(oracle.AmountParams)
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
	player.Energy += p.Amount.Resolve(rc.trig.XValue)
	ev := events.New(events.EventEnergyChanged, rc.state.GameID, player.ID)
	ev.Amount = player.Energy
	rc.state.publish(ev)
	return true
}
