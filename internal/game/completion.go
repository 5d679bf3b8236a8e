package game

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/planarforge/oracle-server-go/internal/game/events"
	"github.com/planarforge/oracle-server-go/internal/game/mana"
	"github.com/planarforge/oracle-server-go/internal/game/queue"
)

// CompleteStep finishes an effect suspended on a resolution step. The queue
// consumer calls it with the player's answer; the continuation tag embedded
// in the step selects how the answer is applied.
func (e *Engine) CompleteStep(ctx context.Context, gameID, stepID string, answer queue.Answer) error {
	state, ok := e.Game(gameID)
	if !ok {
		return fmt.Errorf("game %s not found", gameID)
	}
	step, err := e.steps.Get(ctx, gameID, stepID)
	if err != nil {
		return fmt.Errorf("failed to load resolution step: %w", err)
	}

	rc := &resolutionContext{
		ctx:          ctx,
		engine:       e,
		state:        state,
		trig:         TriggerItem{SourceID: step.Continuation.SourceID},
		controllerID: step.Continuation.ControllerID,
		sourceName:   step.Continuation.SourceName,
		logger:       e.logger,
	}

	switch step.Continuation.Tag {
	case "manual_resolution":
		// Acknowledged by the adjudicating player.
	case "discard_selection":
		completeDiscardSelection(rc, step, answer)
	case "sacrifice_selection":
		completeSacrificeSelection(rc, step, answer)
	case "library_search":
		completeLibrarySearch(rc, step, answer)
	case "look_top_take":
		completeLookTopTake(rc, step, answer)
	case "scry":
		completeScry(rc, step, answer)
	case "surveil":
		completeSurveil(rc, step, answer)
	case "two_pile_split":
		completeTwoPileSplit(rc, step, answer)
	case "two_pile_choice":
		completeTwoPileChoice(rc, step, answer)
	case "pay_any_amount":
		completePayAnyAmount(rc, step, answer)
	case "modal_choice":
		completeModalChoice(rc, step, answer)
	case "mana_color_choice":
		completeManaColorChoice(rc, step, answer)
	case "upkeep_sacrifice":
		completeUpkeepSacrifice(rc, step, answer)
	default:
		return fmt.Errorf("unknown continuation tag %q", step.Continuation.Tag)
	}

	if err := e.steps.Remove(ctx, gameID, stepID); err != nil {
		return fmt.Errorf("failed to remove resolution step: %w", err)
	}
	ev := events.New(events.EventStepCompleted, gameID, step.PlayerID)
	ev.Description = step.Description
	ev.Data = map[string]string{"step_id": step.ID, "step_type": string(step.Type)}
	state.publish(ev)
	e.logger.Debug("resolution step completed",
		zap.String("game_id", gameID),
		zap.String("step_id", step.ID),
		zap.String("tag", step.Continuation.Tag),
	)
	return nil
}

func stepOffers(step queue.Step, id string) bool {
	for _, c := range step.CandidateIDs {
		if c == id {
			return true
		}
	}
	return false
}

func completeDiscardSelection(rc *resolutionContext, step queue.Step, answer queue.Answer) {
	for _, id := range answer.CardIDs {
		if stepOffers(step, id) {
			rc.state.Discard(step.PlayerID, id)
		}
	}
}

func completeSacrificeSelection(rc *resolutionContext, step queue.Step, answer queue.Answer) {
	for _, id := range answer.CardIDs {
		if stepOffers(step, id) {
			rc.state.SacrificePermanent(id)
		}
	}
}

func completeLibrarySearch(rc *resolutionContext, step queue.Step, answer queue.Answer) {
	destination := ZoneName(step.Continuation.Data["destination"])
	if destination == "" {
		destination = ZoneHand
	}
	for _, id := range answer.CardIDs {
		if !stepOffers(step, id) {
			continue
		}
		card := rc.state.Cards[id]
		if card == nil {
			continue
		}
		rc.state.MoveCardToZone(card, destination)
		if destination == ZoneBattlefield && step.Continuation.Data["tapped"] == "true" {
			if perm := rc.state.FindPermanent(card.ID); perm != nil {
				perm.Tapped = true
			}
		}
	}
	rc.state.ShuffleLibrary(step.PlayerID)
	ev := events.New(events.EventSearchedLibrary, rc.state.GameID, step.PlayerID)
	ev.SourceName = step.Continuation.SourceName
	rc.state.publish(ev)
}

func completeLookTopTake(rc *resolutionContext, step queue.Step, answer queue.Answer) {
	taken := make(map[string]bool, len(answer.CardIDs))
	for _, id := range answer.CardIDs {
		if !stepOffers(step, id) {
			continue
		}
		card := rc.state.Cards[id]
		if card == nil {
			continue
		}
		rc.state.MoveCardToZone(card, ZoneHand)
		taken[id] = true
	}
	if step.Continuation.Data["bottom_rest"] != "true" {
		return
	}
	player := rc.state.Player(step.PlayerID)
	if player == nil {
		return
	}
	for _, id := range step.CandidateIDs {
		if taken[id] {
			continue
		}
		if card := player.Zones.Library.Remove(id); card != nil {
			player.Zones.Library.AddBottom(card)
		}
	}
}

func completeScry(rc *resolutionContext, step queue.Step, answer queue.Answer) {
	player := rc.state.Player(step.PlayerID)
	if player == nil {
		return
	}
	for _, id := range answer.ToBottom {
		if !stepOffers(step, id) {
			continue
		}
		if card := player.Zones.Library.Remove(id); card != nil {
			player.Zones.Library.AddBottom(card)
		}
	}
}

func completeSurveil(rc *resolutionContext, step queue.Step, answer queue.Answer) {
	for _, id := range answer.ToGraveyard {
		if !stepOffers(step, id) {
			continue
		}
		if card := rc.state.Cards[id]; card != nil {
			rc.state.MoveCardToZone(card, ZoneGraveyard)
		}
	}
}

// completeTwoPileSplit hands the pile choice to the affected player. The
// unpicked candidates form the second pile.
func completeTwoPileSplit(rc *resolutionContext, step queue.Step, answer queue.Answer) {
	inPileOne := make(map[string]bool, len(answer.PileOne))
	var pileOne, pileTwo []string
	for _, id := range answer.PileOne {
		if stepOffers(step, id) {
			inPileOne[id] = true
			pileOne = append(pileOne, id)
		}
	}
	for _, id := range step.CandidateIDs {
		if !inPileOne[id] {
			pileTwo = append(pileTwo, id)
		}
	}

	chooser := step.Continuation.Data["target_player"]
	if chooser == "" {
		chooser = step.PlayerID
	}
	next := rc.newStep(chooser, queue.StepOptionChoice, "two_pile_choice")
	next.Description = step.Description
	next.Mandatory = true
	next.Options = []string{
		fmt.Sprintf("First pile (%d)", len(pileOne)),
		fmt.Sprintf("Second pile (%d)", len(pileTwo)),
	}
	next.Continuation.CardIDs = pileOne
	next.Continuation.Data = map[string]string{"pile_two": strings.Join(pileTwo, ",")}
	rc.enqueue(next)
}

func completeTwoPileChoice(rc *resolutionContext, step queue.Step, answer queue.Answer) {
	chosen := step.Continuation.CardIDs
	if answer.OptionIndex == 1 {
		chosen = nil
		if joined := step.Continuation.Data["pile_two"]; joined != "" {
			chosen = strings.Split(joined, ",")
		}
	}
	for _, id := range chosen {
		rc.state.DestroyPermanent(id, false)
	}
}

func completePayAnyAmount(rc *resolutionContext, step queue.Step, answer queue.Answer) {
	n := answer.Amount
	if n < 0 {
		n = 0
	}
	if step.Max > 0 && n > step.Max {
		n = step.Max
	}
	if n == 0 {
		return
	}
	rc.state.ModifyLife(step.PlayerID, -n, step.Continuation.SourceName)
}

// completeModalChoice resolves the chosen mode as its own ability text.
func completeModalChoice(rc *resolutionContext, step queue.Step, answer queue.Answer) {
	if answer.OptionIndex < 0 || answer.OptionIndex >= len(step.Options) {
		return
	}
	rc.resolveText(step.Options[answer.OptionIndex])
}

func completeManaColorChoice(rc *resolutionContext, step queue.Step, answer queue.Answer) {
	if answer.OptionIndex < 0 || answer.OptionIndex >= len(step.Options) {
		return
	}
	color, ok := mana.FromWord(step.Options[answer.OptionIndex])
	if !ok {
		return
	}
	player := rc.state.Player(step.PlayerID)
	if player == nil {
		return
	}
	amount := step.Continuation.Amount
	if amount <= 0 {
		amount = 1
	}
	player.Mana.Add(color, amount)
	colors := make([]mana.Color, amount)
	for i := range colors {
		colors[i] = color
	}
	rc.publishManaAdded(player.ID, colors)
}

func completeUpkeepSacrifice(rc *resolutionContext, step queue.Step, answer queue.Answer) {
	if answer.Declined || answer.OptionIndex == 1 {
		rc.state.SacrificePermanent(step.Continuation.SourceID)
	}
}
