package game

import (
	"strings"

	"github.com/planarforge/oracle-server-go/internal/game/oracle"
)

// dealDamage routes one damage instance by what the target id resolves to.
func (rc *resolutionContext) dealDamage(targetID string, amount int) {
	if amount <= 0 {
		return
	}
	if player := rc.state.Player(targetID); player != nil {
		rc.state.DealDamageToPlayer(targetID, amount, rc.trig.SourceID, rc.sourceName)
		return
	}
	if perm := rc.state.FindPermanent(targetID); perm != nil {
		rc.state.DealDamageToPermanent(perm, amount, rc.trig.SourceID, rc.sourceName)
	}
}

func handleDamageAnyTarget(rc *resolutionContext, params interface{}) bool {
	p, ok := params.(oracle.DamageParams)
	if !ok {
		return false
	}
	target := rc.firstTarget()
	if target == "" {
		return true
	}
	if rc.replaying() {
		return true
	}
	rc.dealDamage(target, p.Amount.Resolve(rc.trig.XValue))
	return true
}

func handleDamageTargetCreature(rc *resolutionContext, params interface{}) bool {
	p, ok := params.(oracle.DamageParams)
	if !ok {
		return false
	}
	if rc.firstTarget() == "" {
		return true
	}
	perm := rc.targetPermanent()
	if perm == nil {
		// Target left the battlefield: the effect fizzles.
		return true
	}
	if !rc.matchesTypeWord(perm, p.TypeWord) {
		return false
	}
	if rc.replaying() {
		return true
	}
	rc.state.DealDamageToPermanent(perm, p.Amount.Resolve(rc.trig.XValue), rc.trig.SourceID, rc.sourceName)
	return true
}

func handleDamageTargetPlayer(rc *resolutionContext, params interface{}) bool {
	p, ok := params.(oracle.DamageParams)
	if !ok {
		return false
	}
	targetID := rc.firstTarget()
	if targetID == "" {
		return true
	}
	if rc.state.Player(targetID) == nil {
		perm := rc.state.FindPermanent(targetID)
		if perm == nil {
			return true
		}
		// "target player or planeswalker" may point at a permanent.
		if !strings.Contains(p.TypeWord, "planeswalker") || !perm.HasType("Planeswalker") {
			return false
		}
	}
	if rc.replaying() {
		return true
	}
	rc.dealDamage(targetID, p.Amount.Resolve(rc.trig.XValue))
	return true
}

func handleDamageEachCreature(rc *resolutionContext, params interface{}) bool {
	p, ok := params.(oracle.DamageParams)
	if !ok {
		return false
	}
	if rc.replaying() {
		return true
	}
	amount := p.Amount.Resolve(rc.trig.XValue)
	for _, perm := range append([]*Permanent(nil), rc.state.Battlefield...) {
		if perm.IsCreature() && rc.matchesTypeWord(perm, p.TypeWord) {
			rc.state.DealDamageToPermanent(perm, amount, rc.trig.SourceID, rc.sourceName)
		}
	}
	return true
}

func handleDamageEachOpponent(rc *resolutionContext, params interface{}) bool {
	p, ok := params.(oracle.DamageParams)
	if !ok {
		return false
	}
	if rc.replaying() {
		return true
	}
	amount := p.Amount.Resolve(rc.trig.XValue)
	for _, id := range rc.state.Opponents(rc.controllerID) {
		rc.state.DealDamageToPlayer(id, amount, rc.trig.SourceID, rc.sourceName)
	}
	return true
}

func handleDamageEverything(rc *resolutionContext, params interface{}) bool {
	p, ok := params.(oracle.DamageParams)
	if !ok {
		return false
	}
	if rc.replaying() {
		return true
	}
	amount := p.Amount.Resolve(rc.trig.XValue)
	for _, perm := range append([]*Permanent(nil), rc.state.Battlefield...) {
		if perm.IsCreature() {
			rc.state.DealDamageToPermanent(perm, amount, rc.trig.SourceID, rc.sourceName)
		}
	}
	for _, id := range rc.state.PlayerOrder {
		rc.state.DealDamageToPlayer(id, amount, rc.trig.SourceID, rc.sourceName)
	}
	return true
}

func handleDamageEqualToPower(rc *resolutionContext, params interface{}) bool {
	if _, ok := params.(oracle.DamageParams); !ok {
		return false
	}
	source := rc.state.FindPermanent(rc.trig.SourceID)
	if source == nil {
		return true
	}
	target := rc.firstTarget()
	if target == "" {
		return true
	}
	if rc.replaying() {
		return true
	}
	rc.dealDamage(target, source.Power())
	return true
}

// handleFight has both creatures deal damage equal to their power to each
// other simultaneously. Either fighter gone means no fight.
func handleFight(rc *resolutionContext, params interface{}) bool {
	first := rc.state.FindPermanent(rc.target(0))
	second := rc.state.FindPermanent(rc.target(1))
	if first == nil || second == nil || !first.IsCreature() || !second.IsCreature() {
		return true
	}
	if rc.replaying() {
		return true
	}
	firstPower := first.Power()
	secondPower := second.Power()
	rc.state.DealDamageToPermanent(second, firstPower, first.ID, first.Name)
	rc.state.DealDamageToPermanent(first, secondPower, second.ID, second.Name)
	return true
}
