package game

import (
	"strings"

	"github.com/planarforge/oracle-server-go/internal/game/duration"
	"github.com/planarforge/oracle-server-go/internal/game/oracle"
)

// buildHandlerTable binds every catalog kind to its handler. A kind without
// a binding is skipped by the dispatcher, so the table is the single source
// of what the engine can actually do.
func (e *Engine) buildHandlerTable() map[oracle.Kind]handlerFunc {
	return map[oracle.Kind]handlerFunc{
		// Draw and discard
		oracle.KindDrawCards:            handleDrawCards,
		oracle.KindTargetPlayerDraws:    handleTargetPlayerDraws,
		oracle.KindEachPlayerDraws:      handleEachPlayerDraws,
		oracle.KindEachOpponentDraws:    handleEachOpponentDraws,
		oracle.KindDrawThenDiscard:      handleDrawThenDiscard,
		oracle.KindDrawForEach:          handleDrawForEach,
		oracle.KindDiscardCards:         handleDiscardCards,
		oracle.KindTargetPlayerDiscards: handleTargetPlayerDiscards,
		oracle.KindEachOpponentDiscards: handleEachOpponentDiscards,
		oracle.KindDiscardHand:          handleDiscardHand,
		oracle.KindWheel:                handleWheel,

		// Damage
		oracle.KindDamageAnyTarget:      handleDamageAnyTarget,
		oracle.KindDamageTargetCreature: handleDamageTargetCreature,
		oracle.KindDamageTargetPlayer:   handleDamageTargetPlayer,
		oracle.KindDamageEachCreature:   handleDamageEachCreature,
		oracle.KindDamageEachOpponent:   handleDamageEachOpponent,
		oracle.KindDamageEverything:     handleDamageEverything,
		oracle.KindDamageEqualToPower:   handleDamageEqualToPower,
		oracle.KindFight:                handleFight,

		// Life
		oracle.KindGainLife:        handleGainLife,
		oracle.KindLoseLife:        handleLoseLife,
		oracle.KindOpponentsLose:   handleOpponentsLoseLife,
		oracle.KindDrainOpponents:  handleDrainOpponents,
		oracle.KindGainLifeEqualTo: handleGainLifeEqualTo,
		oracle.KindSetLife:         handleSetLife,
		oracle.KindPayAnyLife:      handlePayAnyLife,

		// Counters
		oracle.KindPutCountersOnSelf:    handlePutCountersOnSelf,
		oracle.KindPutCountersOnTarget:  handlePutCountersOnTarget,
		oracle.KindPutCountersOnEach:    handlePutCountersOnEach,
		oracle.KindRemoveCountersTarget: handleRemoveCountersTarget,
		oracle.KindProliferate:          handleProliferate,
		oracle.KindPoisonCounters:       handlePoisonCounters,
		oracle.KindGetEnergy:            handleGetEnergy,

		// Tap and untap
		oracle.KindTapTarget:        handleTapTarget,
		oracle.KindTapTargetNoUntap: handleTapTargetNoUntap,
		oracle.KindUntapTarget:      handleUntapTarget,
		oracle.KindUntapSelf:        handleUntapSelf,

		// Zone transitions
		oracle.KindDestroyTarget:               handleDestroyTarget,
		oracle.KindDestroyAll:                  handleDestroyAll,
		oracle.KindExileTarget:                 handleExileTarget,
		oracle.KindReturnTargetToHand:          handleReturnTargetToHand,
		oracle.KindReturnFromGraveyardToHand:   handleReturnFromGraveyardToHand,
		oracle.KindReturnFromGraveyardToPlay:   handleReturnFromGraveyardToPlay,
		oracle.KindSacrificeSelf:               handleSacrificeSelf,
		oracle.KindYouSacrifice:                handleYouSacrifice,
		oracle.KindTargetPlayerSacrifices:      handleTargetPlayerSacrifices,
		oracle.KindMill:                        handleMill,
		oracle.KindTargetPlayerMills:           handleTargetPlayerMills,
		oracle.KindEachOpponentMills:           handleEachOpponentMills,
		oracle.KindExileTopOfLibrary:           handleExileTopOfLibrary,
		oracle.KindShuffleGraveyardIntoLibrary: handleShuffleGraveyardIntoLibrary,
		oracle.KindSearchLibraryToHand:         handleSearchLibrary,
		oracle.KindSearchLibraryToBattlefield:  handleSearchLibrary,
		oracle.KindFlickerNow:                  handleFlickerNow,
		oracle.KindFlickerAtEndStep:            handleFlickerAtEndStep,
		oracle.KindSacrificeAtEndStep:          handleSacrificeAtEndStep,
		oracle.KindExileAtEndStep:              handleExileAtEndStep,

		// Temporary grants
		oracle.KindBoostTarget:         handleBoostTarget,
		oracle.KindBoostSelf:           handleBoostSelf,
		oracle.KindBoostEach:           handleBoostEach,
		oracle.KindBoostAndGrantTarget: handleBoostAndGrantTarget,
		oracle.KindBoostAndGrantSelf:   handleBoostAndGrantSelf,
		oracle.KindGrantAbilityTarget:  handleGrantAbilityTarget,
		oracle.KindGrantAbilitySelf:    handleGrantAbilitySelf,
		oracle.KindGrantAbilityEach:    handleGrantAbilityEach,
		oracle.KindLosesAllAbilities:   handleLosesAllAbilities,
		oracle.KindCantBlock:           handleCantBlock,
		oracle.KindRegenerate:          handleRegenerate,

		// Control
		oracle.KindThreaten:        handleThreaten,
		oracle.KindGainControlTemp: handleGainControlTemp,
		oracle.KindGainControl:     handleGainControl,

		// Tokens and emblems
		oracle.KindCreateTokens:   handleCreateTokens,
		oracle.KindCreateTreasure: handleCreateTreasure,
		oracle.KindCreateFood:     handleCreateFood,
		oracle.KindInvestigate:    handleInvestigate,
		oracle.KindEmblem:         handleEmblem,

		// Mana
		oracle.KindAddManaSymbols:    handleAddManaSymbols,
		oracle.KindAddRestrictedMana: handleAddRestrictedMana,
		oracle.KindAddManaAnyColor:   handleAddManaAnyColor,

		// Library manipulation
		oracle.KindScry:        handleScry,
		oracle.KindSurveil:     handleSurveil,
		oracle.KindLookTopTake: handleLookTopTake,

		// Turn structure
		oracle.KindExtraTurn: handleExtraTurn,
		oracle.KindExtraLand: handleExtraLand,

		// Interactive
		oracle.KindModalChoice:     handleModalChoice,
		oracle.KindTwoPileSplit:    handleTwoPileSplit,
		oracle.KindUpkeepSacrifice: handleUpkeepSacrifice,

		// Game-scale
		oracle.KindRestartGame: handleRestartGame,
		oracle.KindWinGame:     handleWinGame,
		oracle.KindLoseGame:    handleLoseGame,

		// Terminal
		oracle.KindManualResolution: handleManualResolution,
	}
}

// provenance stamps a duration record with who applied it and when.
func (rc *resolutionContext) provenance() duration.Provenance {
	return duration.Provenance{
		ControllerID: rc.controllerID,
		TurnApplied:  rc.state.Turn.TurnNumber(),
		SourceName:   rc.sourceName,
	}
}

// durationExpiry maps catalog durations onto registry expiry classes.
func durationExpiry(u oracle.Until) duration.Expiry {
	if u == oracle.UntilYourNextTurn {
		return duration.UntilYourNextTurn
	}
	return duration.UntilEndOfTurn
}

// evaluateQuantity computes a dynamic amount against the current state,
// once, at resolution time.
func (rc *resolutionContext) evaluateQuantity(q oracle.Quantity) int {
	player := rc.controller()
	if player == nil {
		return 0
	}
	switch q {
	case oracle.QuantityCardsInHand:
		return player.Zones.Hand.Count
	case oracle.QuantityCardsInGraveyard:
		return player.Zones.Graveyard.Count
	case oracle.QuantityCreaturesYouControl:
		n := 0
		for _, p := range rc.state.PermanentsControlledBy(player.ID) {
			if p.IsCreature() {
				n++
			}
		}
		return n
	case oracle.QuantityLandsYouControl:
		n := 0
		for _, p := range rc.state.PermanentsControlledBy(player.ID) {
			if p.HasType("Land") {
				n++
			}
		}
		return n
	case oracle.QuantityTargetPower:
		if p := rc.targetPermanent(); p != nil {
			return p.Power()
		}
		return 0
	case oracle.QuantityTargetToughness:
		if p := rc.targetPermanent(); p != nil {
			return p.Toughness()
		}
		return 0
	default:
		return 0
	}
}

// matchesTypeWord checks a permanent against a catalog type word:
// "creature", "artifact or creature", "creature you control",
// "nonland permanent", "creature without flying", subtype words.
func (rc *resolutionContext) matchesTypeWord(perm *Permanent, tw string) bool {
	tw = strings.TrimSpace(strings.ToLower(tw))
	if tw == "" {
		return true
	}
	if rest, ok := strings.CutPrefix(tw, "all "); ok {
		return rc.matchesTypeWord(perm, rest)
	}
	if rest, ok := strings.CutSuffix(tw, " you control"); ok {
		return perm.ControllerID == rc.controllerID && rc.matchesTypeWord(perm, rest)
	}
	if rest, ok := strings.CutSuffix(tw, " you don't control"); ok {
		return perm.ControllerID != rc.controllerID && rc.matchesTypeWord(perm, rest)
	}
	if rest, ok := strings.CutSuffix(tw, " an opponent controls"); ok {
		return perm.ControllerID != rc.controllerID && rc.matchesTypeWord(perm, rest)
	}
	if rest, ok := strings.CutSuffix(tw, " without flying"); ok {
		return !perm.HasAbility("Flying") && rc.matchesTypeWord(perm, rest)
	}
	for _, alt := range strings.Split(tw, " or ") {
		if matchesTypePhrase(perm, strings.TrimSpace(alt)) {
			return true
		}
	}
	return false
}

// matchesTypePhrase requires every word of the phrase to hold: "artifact
// creature" means artifact AND creature; "non" prefixes negate one word.
func matchesTypePhrase(perm *Permanent, phrase string) bool {
	if phrase == "" {
		return false
	}
	for _, word := range strings.Fields(phrase) {
		negate := false
		if rest, ok := strings.CutPrefix(word, "non"); ok && rest != "" {
			negate = true
			word = rest
		}
		ok := matchesTypeName(perm, word)
		if negate {
			ok = !ok
		}
		if !ok {
			return false
		}
	}
	return true
}

func matchesTypeName(perm *Permanent, word string) bool {
	word = strings.TrimSuffix(word, "s")
	if word == "permanent" {
		return true
	}
	return perm.HasType(word) || perm.HasSubtype(word)
}
