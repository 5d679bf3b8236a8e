package game

import (
	"fmt"
	"strings"

	"github.com/planarforge/oracle-server-go/internal/game/duration"
	"github.com/planarforge/oracle-server-go/internal/game/events"
	"github.com/planarforge/oracle-server-go/internal/game/oracle"
	"github.com/planarforge/oracle-server-go/internal/game/queue"
)

func tapPermanent(rc *resolutionContext, perm *Permanent) {
	if perm.Tapped {
		return
	}
	perm.Tapped = true
	ev := events.New(events.EventPermanentTapped, rc.state.GameID, perm.ControllerID)
	ev.TargetID = perm.ID
	ev.Description = perm.Name
	rc.state.publish(ev)
}

func handleTapTarget(rc *resolutionContext, params interface{}) bool {
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
	tapPermanent(rc, perm)
	return true
}

func handleTapTargetNoUntap(rc *resolutionContext, params interface{}) bool {
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
	tapPermanent(rc, perm)
	perm.NoUntapNextUntap = true
	return true
}

func handleUntapTarget(rc *resolutionContext, params interface{}) bool {
	p, ok := params.(oracle.UntapParams)
	if !ok {
		return false
	}
	limit := p.Count.Resolve(rc.trig.XValue)
	untapped := 0
	for _, perm := range rc.targetPermanents() {
		if untapped >= limit {
			break
		}
		if !rc.matchesTypeWord(perm, p.TypeWord) {
			continue
		}
		perm.Tapped = false
		untapped++
	}
	return true
}

func handleUntapSelf(rc *resolutionContext, params interface{}) bool {
	if source := rc.state.FindPermanent(rc.trig.SourceID); source != nil {
		source.Tapped = false
	}
	return true
}

func handleDestroyTarget(rc *resolutionContext, params interface{}) bool {
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
	rc.state.DestroyPermanent(perm.ID, !p.NoRegeneration)
	return true
}

func handleDestroyAll(rc *resolutionContext, params interface{}) bool {
	p, ok := params.(oracle.ZoneParams)
	if !ok {
		return false
	}
	var doomed []string
	for _, perm := range rc.state.Battlefield {
		if rc.matchesTypeWord(perm, p.TypeWord) {
			doomed = append(doomed, perm.ID)
		}
	}
	for _, id := range doomed {
		rc.state.DestroyPermanent(id, true)
	}
	return true
}

func handleExileTarget(rc *resolutionContext, params interface{}) bool {
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
	rc.state.ExilePermanent(perm.ID, rc.sourceName)
	return true
}

func handleReturnTargetToHand(rc *resolutionContext, params interface{}) bool {
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
	rc.state.RemovePermanent(perm.ID, ZoneHand)
	return true
}

// graveyardCard finds the target card in the controller's graveyard.
func (rc *resolutionContext) graveyardCard() *Card {
	player := rc.controller()
	if player == nil {
		return nil
	}
	id := rc.firstTarget()
	for _, card := range player.Zones.Graveyard.Cards {
		if card.ID == id {
			return card
		}
	}
	return nil
}

func cardMatchesTypeWord(card *Card, tw string) bool {
	if tw == "" {
		return true
	}
	return card.HasType(tw) || card.HasSubtype(tw)
}

func handleReturnFromGraveyardToHand(rc *resolutionContext, params interface{}) bool {
	p, ok := params.(oracle.ZoneParams)
	if !ok {
		return false
	}
	if rc.firstTarget() == "" {
		return true
	}
	card := rc.graveyardCard()
	if card == nil {
		return true
	}
	if !cardMatchesTypeWord(card, p.TypeWord) {
		return false
	}
	rc.state.MoveCardToZone(card, ZoneHand)
	return true
}

func handleReturnFromGraveyardToPlay(rc *resolutionContext, params interface{}) bool {
	p, ok := params.(oracle.ZoneParams)
	if !ok {
		return false
	}
	if rc.firstTarget() == "" {
		return true
	}
	card := rc.graveyardCard()
	if card == nil {
		return true
	}
	if !cardMatchesTypeWord(card, p.TypeWord) {
		return false
	}
	if rc.replaying() {
		return true
	}
	rc.state.MoveCardToZone(card, ZoneBattlefield)
	if perm := rc.state.FindPermanent(card.ID); perm != nil && p.Tapped {
		perm.Tapped = true
	}
	return true
}

func handleSacrificeSelf(rc *resolutionContext, params interface{}) bool {
	rc.state.SacrificePermanent(rc.trig.SourceID)
	return true
}

// handleYouSacrifice lets the controller pick which matching permanents to
// give up. With no surplus there is no choice and the sacrifice resolves
// immediately.
func handleYouSacrifice(rc *resolutionContext, params interface{}) bool {
	p, ok := params.(oracle.SacrificeParams)
	if !ok {
		return false
	}
	queueSacrifice(rc, rc.controllerID, p.Count.Resolve(rc.trig.XValue), p.TypeWord)
	return true
}

func handleTargetPlayerSacrifices(rc *resolutionContext, params interface{}) bool {
	p, ok := params.(oracle.SacrificeParams)
	if !ok {
		return false
	}
	target := rc.targetPlayer()
	if target == nil {
		return true
	}
	queueSacrifice(rc, target.ID, p.Count.Resolve(rc.trig.XValue), p.TypeWord)
	return true
}

func queueSacrifice(rc *resolutionContext, playerID string, n int, typeWord string) {
	if n <= 0 {
		return
	}
	saved := rc.controllerID
	rc.controllerID = playerID
	var candidates []*Permanent
	for _, perm := range rc.state.PermanentsControlledBy(playerID) {
		if rc.matchesTypeWord(perm, typeWord) {
			candidates = append(candidates, perm)
		}
	}
	rc.controllerID = saved

	if len(candidates) == 0 {
		return
	}
	if len(candidates) <= n {
		for _, perm := range candidates {
			rc.state.SacrificePermanent(perm.ID)
		}
		return
	}
	step := rc.newStep(playerID, queue.StepTargetSelection, "sacrifice_selection")
	step.Description = fmt.Sprintf("Sacrifice %d %s(s)", n, typeWord)
	step.Mandatory = true
	step.Min = n
	step.Max = n
	for _, perm := range candidates {
		step.CandidateIDs = append(step.CandidateIDs, perm.ID)
	}
	rc.enqueue(step)
}

func handleMill(rc *resolutionContext, params interface{}) bool {
	p, ok := params.(oracle.AmountParams)
	if !ok {
		return false
	}
	if rc.replaying() {
		return true
	}
	rc.state.Mill(rc.controllerID, p.Amount.Resolve(rc.trig.XValue))
	return true
}

func handleTargetPlayerMills(rc *resolutionContext, params interface{}) bool {
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
	rc.state.Mill(target.ID, p.Amount.Resolve(rc.trig.XValue))
	return true
}

func handleEachOpponentMills(rc *resolutionContext, params interface{}) bool {
	p, ok := params.(oracle.AmountParams)
	if !ok {
		return false
	}
	if rc.replaying() {
		return true
	}
	n := p.Amount.Resolve(rc.trig.XValue)
	for _, id := range rc.state.Opponents(rc.controllerID) {
		rc.state.Mill(id, n)
	}
	return true
}

func handleExileTopOfLibrary(rc *resolutionContext, params interface{}) bool {
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
	n := p.Amount.Resolve(rc.trig.XValue)
	for i := 0; i < n; i++ {
		card := player.Zones.Library.TakeTop()
		if card == nil {
			break
		}
		player.Zones.Exile.AddBottom(card)
		card.ExiledWith = rc.sourceName
		rc.state.publishZoneChange(card, ZoneLibrary, ZoneExile)
	}
	return true
}

func handleShuffleGraveyardIntoLibrary(rc *resolutionContext, params interface{}) bool {
	player := rc.controller()
	if player == nil {
		return true
	}
	if rc.replaying() {
		return true
	}
	for _, card := range player.Zones.Graveyard.TakeAll() {
		player.Zones.Library.AddBottom(card)
	}
	rc.state.ShuffleLibrary(player.ID)
	return true
}

// handleSearchLibrary queues every search: picking from a library is always
// a player decision, never auto-resolved.
func handleSearchLibrary(rc *resolutionContext, params interface{}) bool {
	p, ok := params.(oracle.SearchParams)
	if !ok {
		return false
	}
	player := rc.controller()
	if player == nil {
		return true
	}
	destination := ZoneHand
	if p.ToBattlefield {
		destination = ZoneBattlefield
	}
	step := rc.newStep(rc.controllerID, queue.StepLibrarySearch, "library_search")
	step.Description = fmt.Sprintf("Search your library for a %s card", p.Criteria)
	step.Max = 1
	step.Continuation.Data = map[string]string{
		"destination": string(destination),
	}
	if p.Tapped {
		step.Continuation.Data["tapped"] = "true"
	}
	for _, card := range player.Zones.Library.Cards {
		if cardMatchesSearchCriteria(card, p.Criteria) {
			step.CandidateIDs = append(step.CandidateIDs, card.ID)
		}
	}
	rc.enqueue(step)
	return true
}

// cardMatchesSearchCriteria checks a card against a search phrase like
// "basic land", "creature", "zombie card".
func cardMatchesSearchCriteria(card *Card, criteria string) bool {
	if criteria == "" {
		return true
	}
	for _, word := range strings.Fields(strings.ToLower(criteria)) {
		if word == "card" || word == "cards" {
			continue
		}
		word = strings.TrimSuffix(word, "s")
		if !card.HasType(word) && !card.HasSubtype(word) && !cardHasSupertype(card, word) {
			return false
		}
	}
	return true
}

func cardHasSupertype(card *Card, s string) bool {
	for _, st := range card.Supertypes {
		if strings.EqualFold(st, s) {
			return true
		}
	}
	return false
}

func handleFlickerNow(rc *resolutionContext, params interface{}) bool {
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
	card := rc.state.RemovePermanent(perm.ID, ZoneExile)
	if card == nil {
		// Token: exiling it already removed it for good.
		return true
	}
	rc.state.MoveCardToZone(card, ZoneBattlefield)
	return true
}

func handleFlickerAtEndStep(rc *resolutionContext, params interface{}) bool {
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
	card := rc.state.ExilePermanent(perm.ID, rc.sourceName)
	if card == nil {
		return true
	}
	fireTurn := duration.FireTurnFor(rc.state.Turn.TurnNumber(), rc.state.Turn.InEndingPhase())
	rc.state.Scheduled.Add(duration.NewOneShot(card.ID, duration.ActionReturnToBattlefield, fireTurn, rc.provenance()))
	return true
}

func scheduleSelfOneShot(rc *resolutionContext, action duration.OneShotAction) {
	source := rc.state.FindPermanent(rc.trig.SourceID)
	if source == nil {
		return
	}
	fireTurn := duration.FireTurnFor(rc.state.Turn.TurnNumber(), rc.state.Turn.InEndingPhase())
	rc.state.Scheduled.Add(duration.NewOneShot(source.ID, action, fireTurn, rc.provenance()))
}

func handleSacrificeAtEndStep(rc *resolutionContext, params interface{}) bool {
	if rc.replaying() {
		return true
	}
	scheduleSelfOneShot(rc, duration.ActionSacrifice)
	return true
}

func handleExileAtEndStep(rc *resolutionContext, params interface{}) bool {
	if rc.replaying() {
		return true
	}
	scheduleSelfOneShot(rc, duration.ActionExile)
	return true
}
