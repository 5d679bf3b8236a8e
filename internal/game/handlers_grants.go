package game

import (
	"github.com/planarforge/oracle-server-go/internal/game/duration"
	"github.com/planarforge/oracle-server-go/internal/game/oracle"
)

// addBoost appends a tracked P/T delta. The delta lives on the permanent's
// own grant list so it leaves play together with the permanent.
func (rc *resolutionContext) addBoost(perm *Permanent, power, toughness int, expiry oracle.Until) {
	perm.Grants.Add(duration.NewPTDelta(perm.ID, power, toughness, durationExpiry(expiry), rc.provenance()))
}

func (rc *resolutionContext) addAbilityGrants(perm *Permanent, abilities []string, expiry oracle.Until) {
	for _, ability := range abilities {
		perm.Grants.Add(duration.NewGrantAbility(perm.ID, ability, durationExpiry(expiry), rc.provenance()))
	}
}

func handleBoostTarget(rc *resolutionContext, params interface{}) bool {
	p, ok := params.(oracle.PTBoostParams)
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
	rc.addBoost(perm, p.Power, p.Toughness, p.Expiry)
	return true
}

func handleBoostSelf(rc *resolutionContext, params interface{}) bool {
	p, ok := params.(oracle.PTBoostParams)
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
	rc.addBoost(source, p.Power, p.Toughness, p.Expiry)
	return true
}

func handleBoostEach(rc *resolutionContext, params interface{}) bool {
	p, ok := params.(oracle.PTBoostParams)
	if !ok {
		return false
	}
	if rc.replaying() {
		return true
	}
	for _, perm := range rc.state.Battlefield {
		if rc.matchesTypeWord(perm, p.TypeWord) {
			rc.addBoost(perm, p.Power, p.Toughness, p.Expiry)
		}
	}
	return true
}

func handleBoostAndGrantTarget(rc *resolutionContext, params interface{}) bool {
	p, ok := params.(oracle.BoostGrantParams)
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
	rc.addBoost(perm, p.Power, p.Toughness, p.Expiry)
	rc.addAbilityGrants(perm, p.Abilities, p.Expiry)
	return true
}

func handleBoostAndGrantSelf(rc *resolutionContext, params interface{}) bool {
	p, ok := params.(oracle.BoostGrantParams)
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
	rc.addBoost(source, p.Power, p.Toughness, p.Expiry)
	rc.addAbilityGrants(source, p.Abilities, p.Expiry)
	return true
}

func handleGrantAbilityTarget(rc *resolutionContext, params interface{}) bool {
	p, ok := params.(oracle.GrantParams)
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
	rc.addAbilityGrants(perm, p.Abilities, p.Expiry)
	return true
}

func handleGrantAbilitySelf(rc *resolutionContext, params interface{}) bool {
	p, ok := params.(oracle.GrantParams)
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
	rc.addAbilityGrants(source, p.Abilities, p.Expiry)
	return true
}

func handleGrantAbilityEach(rc *resolutionContext, params interface{}) bool {
	p, ok := params.(oracle.GrantParams)
	if !ok {
		return false
	}
	if rc.replaying() {
		return true
	}
	for _, perm := range rc.state.Battlefield {
		if rc.matchesTypeWord(perm, p.TypeWord) {
			rc.addAbilityGrants(perm, p.Abilities, p.Expiry)
		}
	}
	return true
}

// handleLosesAllAbilities wipes the ability list with a tracked record so
// later grants in the same turn still apply on top of the wipe.
func handleLosesAllAbilities(rc *resolutionContext, params interface{}) bool {
	p, ok := params.(oracle.GrantParams)
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
	perm.Grants.Add(duration.NewRemoveAllAbilities(perm.ID, durationExpiry(p.Expiry), rc.provenance()))
	return true
}

func handleCantBlock(rc *resolutionContext, params interface{}) bool {
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
	perm.CantBlockThisTurn = true
	return true
}

func handleRegenerate(rc *resolutionContext, params interface{}) bool {
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
	perm.RegenerationShields++
	return true
}
