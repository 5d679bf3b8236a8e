// Package oracle classifies ability text against a priority-ordered catalog
// of recognized effect shapes and extracts typed parameters for the effect
// handlers. Unrecognized text is never an error: the catalog ends with a
// manual-resolution terminal that surfaces the raw text to a human
// adjudicator.
package oracle

import (
	"strings"
)

// Kind names one recognized effect shape. Every kind is bound to exactly
// one handler in the effect engine.
type Kind string

const (
	// Draw and discard
	KindDrawCards            Kind = "draw_cards"
	KindTargetPlayerDraws    Kind = "target_player_draws"
	KindEachPlayerDraws      Kind = "each_player_draws"
	KindEachOpponentDraws    Kind = "each_opponent_draws"
	KindDrawThenDiscard      Kind = "draw_then_discard"
	KindDrawForEach          Kind = "draw_for_each"
	KindDiscardCards         Kind = "discard_cards"
	KindTargetPlayerDiscards Kind = "target_player_discards"
	KindEachOpponentDiscards Kind = "each_opponent_discards"
	KindDiscardHand          Kind = "discard_hand"
	KindWheel                Kind = "wheel"

	// Damage
	KindDamageAnyTarget        Kind = "damage_any_target"
	KindDamageTargetCreature   Kind = "damage_target_creature"
	KindDamageTargetPlayer     Kind = "damage_target_player"
	KindDamageEachCreature     Kind = "damage_each_creature"
	KindDamageEachOpponent     Kind = "damage_each_opponent"
	KindDamageEverything       Kind = "damage_everything"
	KindDamageEqualToPower     Kind = "damage_equal_to_power"
	KindFight                  Kind = "fight"

	// Life
	KindGainLife        Kind = "gain_life"
	KindLoseLife        Kind = "lose_life"
	KindOpponentsLose   Kind = "each_opponent_loses_life"
	KindDrainOpponents  Kind = "drain_each_opponent"
	KindGainLifeEqualTo Kind = "gain_life_equal_to"
	KindSetLife         Kind = "set_life"
	KindPayAnyLife      Kind = "pay_any_amount_of_life"

	// Counters
	KindPutCountersOnSelf      Kind = "put_counters_on_self"
	KindPutCountersOnTarget    Kind = "put_counters_on_target"
	KindPutCountersOnEach      Kind = "put_counters_on_each"
	KindRemoveCountersTarget   Kind = "remove_counters_from_target"
	KindProliferate            Kind = "proliferate"
	KindPoisonCounters         Kind = "poison_counters"
	KindGetEnergy              Kind = "get_energy"

	// Tap and untap
	KindTapTarget            Kind = "tap_target"
	KindTapTargetNoUntap     Kind = "tap_target_no_untap"
	KindUntapTarget          Kind = "untap_target"
	KindUntapSelf            Kind = "untap_self"

	// Zone transitions
	KindDestroyTarget              Kind = "destroy_target"
	KindDestroyAll                 Kind = "destroy_all"
	KindExileTarget                Kind = "exile_target"
	KindReturnTargetToHand         Kind = "return_target_to_hand"
	KindReturnFromGraveyardToHand  Kind = "return_from_graveyard_to_hand"
	KindReturnFromGraveyardToPlay  Kind = "return_from_graveyard_to_battlefield"
	KindSacrificeSelf              Kind = "sacrifice_self"
	KindYouSacrifice               Kind = "you_sacrifice"
	KindTargetPlayerSacrifices     Kind = "target_player_sacrifices"
	KindMill                       Kind = "mill"
	KindTargetPlayerMills          Kind = "target_player_mills"
	KindEachOpponentMills          Kind = "each_opponent_mills"
	KindExileTopOfLibrary          Kind = "exile_top_of_library"
	KindShuffleGraveyardIntoLibrary Kind = "shuffle_graveyard_into_library"
	KindSearchLibraryToHand        Kind = "search_library_to_hand"
	KindSearchLibraryToBattlefield Kind = "search_library_to_battlefield"
	KindFlickerNow                 Kind = "flicker_now"
	KindFlickerAtEndStep           Kind = "flicker_at_end_step"
	KindSacrificeAtEndStep         Kind = "sacrifice_at_end_step"
	KindExileAtEndStep             Kind = "exile_at_end_step"

	// Temporary grants
	KindBoostTarget         Kind = "boost_target"
	KindBoostSelf           Kind = "boost_self"
	KindBoostEach           Kind = "boost_each"
	KindBoostAndGrantTarget Kind = "boost_and_grant_target"
	KindBoostAndGrantSelf   Kind = "boost_and_grant_self"
	KindGrantAbilityTarget  Kind = "grant_ability_target"
	KindGrantAbilitySelf    Kind = "grant_ability_self"
	KindGrantAbilityEach    Kind = "grant_ability_each"
	KindLosesAllAbilities   Kind = "loses_all_abilities"
	KindCantBlock           Kind = "cant_block"
	KindRegenerate          Kind = "regenerate"

	// Control
	KindThreaten        Kind = "threaten"
	KindGainControlTemp Kind = "gain_control_until_end_of_turn"
	KindGainControl     Kind = "gain_control"

	// Tokens and emblems
	KindCreateTokens   Kind = "create_tokens"
	KindCreateTreasure Kind = "create_treasure"
	KindCreateFood     Kind = "create_food"
	KindInvestigate    Kind = "investigate"
	KindEmblem         Kind = "emblem"

	// Mana
	KindAddManaSymbols    Kind = "add_mana_symbols"
	KindAddRestrictedMana Kind = "add_restricted_mana"
	KindAddManaAnyColor   Kind = "add_mana_any_color"

	// Library manipulation
	KindScry       Kind = "scry"
	KindSurveil    Kind = "surveil"
	KindLookTopTake Kind = "look_top_take"

	// Turn structure
	KindExtraTurn Kind = "extra_turn"
	KindExtraLand Kind = "extra_land"

	// Interactive piles, modes and upkeep
	KindModalChoice     Kind = "modal_choice"
	KindTwoPileSplit    Kind = "two_pile_split"
	KindUpkeepSacrifice Kind = "upkeep_sacrifice_unless_pay"

	// Game-scale
	KindRestartGame Kind = "restart_game"
	KindWinGame     Kind = "win_game"
	KindLoseGame    Kind = "lose_game"

	// Terminal: surfaced to a human adjudicator.
	KindManualResolution Kind = "manual_resolution"
)

// Template is one classified reading of an ability text: the matched kind
// plus its extracted parameters. Handlers type-assert Params by kind.
type Template struct {
	Kind   Kind
	Params interface{}
}

// Normalize produces the canonical matching form of ability text:
// lower-cased, whitespace-collapsed, trailing punctuation dropped.
func Normalize(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))
	text = strings.Join(strings.Fields(text), " ")
	return strings.TrimRight(text, ". ")
}

// Candidates returns every catalog reading of the text in priority order,
// always ending with the manual-resolution terminal. The effect engine
// tries each in turn until a handler accepts one.
func Candidates(text string) []Template {
	normalized := Normalize(text)
	var out []Template
	for _, entry := range catalog {
		m := entry.pattern.FindStringSubmatch(normalized)
		if m == nil {
			continue
		}
		params, ok := entry.extract(m)
		if !ok {
			continue
		}
		out = append(out, Template{Kind: entry.kind, Params: params})
	}
	out = append(out, Template{Kind: KindManualResolution, Params: RawTextParams{Text: text}})
	return out
}

// Match returns the highest-priority reading of the text.
func Match(text string) Template {
	return Candidates(text)[0]
}
