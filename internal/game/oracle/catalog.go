package oracle

import (
	"regexp"
	"strings"
)

// entry binds one text shape to a kind. Extraction may reject a match
// (unparseable descriptor, unknown quantity), in which case the entry is
// skipped and matching falls through to later entries.
type entry struct {
	kind    Kind
	pattern *regexp.Regexp
	extract func(m []string) (interface{}, bool)
}

// The catalog is consulted in order: specific shapes must precede the
// generic shapes that would otherwise shadow them. The manual-resolution
// terminal is appended by Candidates, not listed here.
var catalog = buildCatalog()

const (
	cnt       = countAlternatives
	typeWord  = `([a-z][a-z' -]*?)`
	selfWord  = `(?:~|this creature|this permanent|this artifact|this land|it)`
	untilTail = `(end of turn|your next turn)`
)

func buildCatalog() []entry {
	var entries []entry
	add := func(kind Kind, pattern string, extract func(m []string) (interface{}, bool)) {
		entries = append(entries, entry{
			kind:    kind,
			pattern: regexp.MustCompile(pattern),
			extract: extract,
		})
	}

	noParams := func([]string) (interface{}, bool) { return EmptyParams{}, true }
	oneCount := func(m []string) (interface{}, bool) {
		c, ok := ParseCount(m[1])
		if !ok {
			return nil, false
		}
		return AmountParams{Amount: c}, true
	}

	// Game-scale effects.
	add(KindRestartGame, `^restart the game\b.*$`, noParams)
	add(KindWinGame, `^you win the game$`, noParams)
	add(KindLoseGame, `^you lose the game$`, noParams)

	// Wheels and compound draw/discard come before the simple forms.
	add(KindWheel, `^each player discards (?:their|his or her) hand, then draws seven cards$`, noParams)
	add(KindDrawThenDiscard, `^(?:you )?draw `+cnt+` cards?, then discard `+cnt+` cards?$`,
		func(m []string) (interface{}, bool) {
			draw, ok1 := ParseCount(m[1])
			discard, ok2 := ParseCount(m[2])
			if !ok1 || !ok2 {
				return nil, false
			}
			return DrawDiscardParams{Draw: draw, Discard: discard}, true
		})
	add(KindDrawForEach, `^(?:you )?draw a card for each (.+)$`,
		func(m []string) (interface{}, bool) {
			q, ok := parseQuantity(m[1])
			if !ok {
				return nil, false
			}
			return ForEachParams{Amount: FixedCount(1), Quantity: q}, true
		})
	add(KindEachOpponentDraws, `^each opponent draws `+cnt+` cards?$`, oneCount)
	add(KindEachPlayerDraws, `^each player draws `+cnt+` cards?$`, oneCount)
	add(KindTargetPlayerDraws, `^target player draws `+cnt+` cards?$`, oneCount)
	add(KindDrawCards, `^(?:you )?draw `+cnt+` cards?$`, oneCount)

	// Discards.
	add(KindDiscardHand, `^discard your hand$`, noParams)
	add(KindEachOpponentDiscards, `^each opponent discards `+cnt+` cards?$`, oneCount)
	add(KindTargetPlayerDiscards, `^target player discards `+cnt+` cards?$`, oneCount)
	add(KindDiscardCards, `^(?:you )?discard `+cnt+` cards?$`, oneCount)

	// Damage: dynamic and each-of shapes precede the plain target forms.
	add(KindDamageEqualToPower, `^`+selfWord+` deals damage equal to its power to (any target|target creature(?: or planeswalker)?|target player(?: or planeswalker)?)$`,
		func(m []string) (interface{}, bool) {
			return DamageParams{TypeWord: m[1]}, true
		})
	add(KindDamageEverything, `^`+selfWord+` deals `+cnt+` damage to each creature and each player$`,
		damageAmount(""))
	add(KindDamageEachCreature, `^`+selfWord+` deals `+cnt+` damage to each creature( without flying)?$`,
		func(m []string) (interface{}, bool) {
			c, ok := ParseCount(m[1])
			if !ok {
				return nil, false
			}
			return DamageParams{Amount: c, TypeWord: strings.TrimSpace("creature" + m[2])}, true
		})
	add(KindDamageEachOpponent, `^`+selfWord+` deals `+cnt+` damage to each opponent$`,
		damageAmount(""))
	add(KindDamageAnyTarget, `^`+selfWord+` deals `+cnt+` damage to any target$`,
		damageAmount(""))
	add(KindDamageTargetCreature, `^`+selfWord+` deals `+cnt+` damage to target creature( or planeswalker)?$`,
		func(m []string) (interface{}, bool) {
			c, ok := ParseCount(m[1])
			if !ok {
				return nil, false
			}
			return DamageParams{Amount: c, TypeWord: strings.TrimSpace("creature" + m[2])}, true
		})
	add(KindDamageTargetPlayer, `^`+selfWord+` deals `+cnt+` damage to target player( or planeswalker)?$`,
		func(m []string) (interface{}, bool) {
			c, ok := ParseCount(m[1])
			if !ok {
				return nil, false
			}
			return DamageParams{Amount: c, TypeWord: strings.TrimSpace("player" + m[2])}, true
		})
	add(KindFight, `^target creature you control fights target creature(?: you don't control)?$`, noParams)

	// Life: drains and dynamic gains precede the plain forms.
	add(KindDrainOpponents, `^each opponent loses `+cnt+` life and you gain (?:that much life|life equal to the life lost this way)$`, oneCount)
	add(KindOpponentsLose, `^each opponent loses `+cnt+` life$`, oneCount)
	add(KindGainLifeEqualTo, `^(?:you )?gain life equal to (?:the number of )?(.+)$`,
		func(m []string) (interface{}, bool) {
			q, ok := parseQuantity(m[1])
			if !ok {
				return nil, false
			}
			return ForEachParams{Amount: FixedCount(1), Quantity: q}, true
		})
	add(KindSetLife, `^your life total becomes `+cnt+`$`,
		func(m []string) (interface{}, bool) {
			c, ok := ParseCount(m[1])
			if !ok {
				return nil, false
			}
			return SetLifeParams{Amount: c}, true
		})
	add(KindPayAnyLife, `^(?:you may )?pay any amount of life$`, noParams)
	add(KindGainLife, `^(?:you )?gain `+cnt+` life$`, oneCount)
	add(KindLoseLife, `^(?:you )?lose `+cnt+` life$`, oneCount)

	// Counters.
	add(KindProliferate, `^proliferate$`, noParams)
	add(KindPoisonCounters, `^target player gets `+cnt+` poison counters?$`, oneCount)
	add(KindGetEnergy, `^you get ((?:\{e\})+)$`,
		func(m []string) (interface{}, bool) {
			return AmountParams{Amount: FixedCount(strings.Count(m[1], "{e}"))}, true
		})
	add(KindPutCountersOnEach, `^put `+cnt+` ([+-]\d+/[+-]\d+|[a-z]+) counters? on each `+typeWord+`$`,
		counterPlacement(false))
	add(KindPutCountersOnSelf, `^put `+cnt+` ([+-]\d+/[+-]\d+|[a-z]+) counters? on `+selfWord+`$`,
		func(m []string) (interface{}, bool) {
			c, ok := ParseCount(m[1])
			if !ok {
				return nil, false
			}
			return CounterPlacementParams{Count: c, CounterKind: m[2]}, true
		})
	add(KindPutCountersOnTarget, `^put `+cnt+` ([+-]\d+/[+-]\d+|[a-z]+) counters? on (up to `+cnt+` )?target `+typeWord+`$`,
		func(m []string) (interface{}, bool) {
			c, ok := ParseCount(m[1])
			if !ok {
				return nil, false
			}
			return CounterPlacementParams{
				Count:       c,
				CounterKind: m[2],
				UpTo:        m[3] != "",
				TypeWord:    m[5],
			}, true
		})
	add(KindRemoveCountersTarget, `^remove `+cnt+` ([+-]\d+/[+-]\d+|[a-z]+) counters? from target `+typeWord+`$`,
		counterPlacement(false))

	// Tap and untap. The no-untap rider is a separate, earlier shape.
	add(KindTapTargetNoUntap, `^tap target `+typeWord+`\. (?:it|that [a-z]+) doesn't untap during its controller's next untap step$`,
		func(m []string) (interface{}, bool) {
			return ZoneParams{TypeWord: m[1]}, true
		})
	add(KindTapTarget, `^tap target `+typeWord+`$`,
		func(m []string) (interface{}, bool) {
			return ZoneParams{TypeWord: m[1]}, true
		})
	add(KindUntapSelf, `^untap `+selfWord+`$`, noParams)
	add(KindUntapTarget, `^untap (?:up to `+cnt+` )?target `+typeWord+`s?$`,
		func(m []string) (interface{}, bool) {
			c := FixedCount(1)
			if m[1] != "" {
				parsed, ok := ParseCount(m[1])
				if !ok {
					return nil, false
				}
				c = parsed
			}
			return UntapParams{Count: c, TypeWord: m[2]}, true
		})

	// Zone transitions: flicker and delayed shapes precede plain exile.
	add(KindFlickerAtEndStep, `^exile target `+typeWord+`(?:,| and) (?:then )?return (?:it|that card) to the battlefield under its owner's control at the beginning of the next end step$`,
		zoneType(1))
	add(KindFlickerNow, `^exile target `+typeWord+`, then return (?:it|that card) to the battlefield under its owner's control$`,
		zoneType(1))
	add(KindSacrificeAtEndStep, `^(?:at the beginning of the next end step, sacrifice `+selfWord+`|sacrifice `+selfWord+` at the beginning of the next end step)$`, noParams)
	add(KindExileAtEndStep, `^(?:at the beginning of the next end step, exile `+selfWord+`|exile `+selfWord+` at the beginning of the next end step)$`, noParams)
	add(KindDestroyAll, `^destroy all `+typeWord+`$`, zoneType(1))
	add(KindDestroyTarget, `^destroy target `+typeWord+`(\. (?:it|that [a-z]+) can't be regenerated)?$`,
		func(m []string) (interface{}, bool) {
			return ZoneParams{TypeWord: m[1], NoRegeneration: m[2] != ""}, true
		})
	add(KindExileTarget, `^exile target `+typeWord+`$`, zoneType(1))
	add(KindReturnFromGraveyardToPlay, `^return target `+typeWord+` card from your graveyard to the battlefield( tapped)?$`,
		func(m []string) (interface{}, bool) {
			return ZoneParams{TypeWord: m[1], Tapped: m[2] != ""}, true
		})
	add(KindReturnFromGraveyardToHand, `^return target `+typeWord+` card from your graveyard to your hand$`, zoneType(1))
	add(KindReturnTargetToHand, `^return target `+typeWord+` to its owner's hand$`, zoneType(1))
	add(KindSacrificeSelf, `^sacrifice `+selfWord+`$`, noParams)
	add(KindTargetPlayerSacrifices, `^target player sacrifices `+cnt+` `+typeWord+`s?$`,
		sacrificeParams())
	add(KindYouSacrifice, `^sacrifice `+cnt+` `+typeWord+`s?$`, sacrificeParams())
	add(KindEachOpponentMills, `^each opponent mills `+cnt+` cards?$`, oneCount)
	add(KindTargetPlayerMills, `^target player mills `+cnt+` cards?$`, oneCount)
	add(KindMill, `^(?:you )?mill `+cnt+` cards?$`, oneCount)
	add(KindExileTopOfLibrary, `^exile the top (?:`+cnt+` )?cards? of your library$`,
		func(m []string) (interface{}, bool) {
			c := FixedCount(1)
			if m[1] != "" {
				parsed, ok := ParseCount(m[1])
				if !ok {
					return nil, false
				}
				c = parsed
			}
			return AmountParams{Amount: c}, true
		})
	add(KindShuffleGraveyardIntoLibrary, `^shuffle your graveyard into your library$`, noParams)
	add(KindSearchLibraryToBattlefield, `^search your library for (?:a|an|up to [a-z]+) (.+?) cards?(?:,| and) put (?:it|that card|them) onto the battlefield( tapped)?,? then shuffle(?: your library)?$`,
		func(m []string) (interface{}, bool) {
			return SearchParams{Criteria: m[1], ToBattlefield: true, Tapped: m[2] != ""}, true
		})
	add(KindSearchLibraryToHand, `^search your library for (?:a|an) (.+?) card(?:, reveal it,?)?(?: and)? put (?:it|that card) into your hand,? then shuffle(?: your library)?$`,
		func(m []string) (interface{}, bool) {
			return SearchParams{Criteria: m[1]}, true
		})

	// Temporary grants. The compound threaten shape and boost+grant shapes
	// precede the single-purpose boosts and grants.
	add(KindThreaten, `^untap target creature and gain control of it until end of turn\. it gains haste until end of turn$`, noParams)
	add(KindBoostAndGrantTarget, `^target `+typeWord+` gets ([+-]\d+)/([+-]\d+) and gains (.+?) until `+untilTail+`$`,
		boostGrant(true))
	add(KindBoostAndGrantSelf, `^`+selfWord+` gets ([+-]\d+)/([+-]\d+) and gains (.+?) until `+untilTail+`$`,
		boostGrant(false))
	add(KindBoostEach, `^(creatures you control|all creatures) get ([+-]\d+)/([+-]\d+) until `+untilTail+`$`,
		func(m []string) (interface{}, bool) {
			p, ok1 := parseSigned(m[2])
			t, ok2 := parseSigned(m[3])
			if !ok1 || !ok2 {
				return nil, false
			}
			return PTBoostParams{Power: p, Toughness: t, TypeWord: m[1], Expiry: parseUntil(m[4])}, true
		})
	add(KindBoostTarget, `^target `+typeWord+` gets ([+-]\d+)/([+-]\d+) until `+untilTail+`$`,
		func(m []string) (interface{}, bool) {
			p, ok1 := parseSigned(m[2])
			t, ok2 := parseSigned(m[3])
			if !ok1 || !ok2 {
				return nil, false
			}
			return PTBoostParams{Power: p, Toughness: t, TypeWord: m[1], Expiry: parseUntil(m[4])}, true
		})
	add(KindBoostSelf, `^`+selfWord+` gets ([+-]\d+)/([+-]\d+) until `+untilTail+`$`,
		func(m []string) (interface{}, bool) {
			p, ok1 := parseSigned(m[1])
			t, ok2 := parseSigned(m[2])
			if !ok1 || !ok2 {
				return nil, false
			}
			return PTBoostParams{Power: p, Toughness: t, Expiry: parseUntil(m[3])}, true
		})
	add(KindLosesAllAbilities, `^target `+typeWord+` loses all abilities until `+untilTail+`$`,
		func(m []string) (interface{}, bool) {
			return GrantParams{TypeWord: m[1], Expiry: parseUntil(m[2])}, true
		})
	add(KindGrantAbilityEach, `^(creatures you control|all creatures) gain (.+?) until `+untilTail+`$`,
		func(m []string) (interface{}, bool) {
			return GrantParams{Abilities: splitAbilityList(m[2]), TypeWord: m[1], Expiry: parseUntil(m[3])}, true
		})
	add(KindGrantAbilityTarget, `^target `+typeWord+` gains (.+?) until `+untilTail+`$`,
		func(m []string) (interface{}, bool) {
			return GrantParams{Abilities: splitAbilityList(m[2]), TypeWord: m[1], Expiry: parseUntil(m[3])}, true
		})
	add(KindGrantAbilitySelf, `^`+selfWord+` gains (.+?) until `+untilTail+`$`,
		func(m []string) (interface{}, bool) {
			return GrantParams{Abilities: splitAbilityList(m[1]), Expiry: parseUntil(m[2])}, true
		})
	add(KindCantBlock, `^target creature can't block this turn$`, noParams)
	add(KindRegenerate, `^regenerate target `+typeWord+`$`, zoneType(1))

	// Control changes: temporary before permanent.
	add(KindGainControlTemp, `^(?:you )?gain control of target `+typeWord+` until end of turn$`, zoneType(1))
	add(KindGainControl, `^(?:you )?gain control of target `+typeWord+`$`, zoneType(1))

	// Tokens: the predefined artifact tokens precede the generic descriptor.
	add(KindInvestigate, `^investigate$`, noParams)
	add(KindCreateTreasure, `^create `+cnt+` treasure tokens?$`, oneCount)
	add(KindCreateFood, `^create `+cnt+` food tokens?$`, oneCount)
	add(KindCreateTokens, `^create `+cnt+` (tapped )?(.+?) tokens?(?: with (.+?))?$`,
		func(m []string) (interface{}, bool) {
			c, ok := ParseCount(m[1])
			if !ok {
				return nil, false
			}
			descriptor, ok := parseTokenDescriptor(m[3], m[4], m[2] != "")
			if !ok {
				return nil, false
			}
			return TokenParams{Count: c, Descriptor: descriptor}, true
		})

	// Mana: the restricted shape precedes the plain symbol shape.
	add(KindAddRestrictedMana, `^add ((?:\{[wubrgc]\})+)\. spend this mana only (.+)$`,
		func(m []string) (interface{}, bool) {
			return RestrictedManaParams{
				Symbols:     m[1],
				Restriction: "Spend this mana only " + strings.TrimSuffix(m[2], ".") + ".",
			}, true
		})
	add(KindAddManaAnyColor, `^add `+cnt+` mana of any (one )?color$`,
		func(m []string) (interface{}, bool) {
			c, ok := ParseCount(m[1])
			if !ok {
				return nil, false
			}
			return AnyColorManaParams{Amount: c, SingleColor: m[2] != ""}, true
		})
	add(KindAddManaSymbols, `^add ((?:\{[wubrgc]\})+)$`,
		func(m []string) (interface{}, bool) {
			return ManaParams{Symbols: m[1]}, true
		})

	// Library manipulation.
	add(KindScry, `^scry `+cnt+`$`, oneCount)
	add(KindSurveil, `^surveil `+cnt+`$`, oneCount)
	add(KindLookTopTake, `^look at the top `+cnt+` cards? of your library\. put `+cnt+` of (?:it|them) into your hand and the rest on the bottom of your library(?: in any order)?$`,
		func(m []string) (interface{}, bool) {
			look, ok1 := ParseCount(m[1])
			take, ok2 := ParseCount(m[2])
			if !ok1 || !ok2 {
				return nil, false
			}
			return LookTakeParams{Look: look, Take: take}, true
		})

	// Turn structure.
	add(KindExtraTurn, `^(?:you )?take an extra turn after this one$`, noParams)
	add(KindExtraLand, `^you may play an additional land this turn$`, noParams)

	// Modal texts, interactive piles and upkeep keeps. Modes are split on
	// their bullets and the chosen mode resolves as its own text.
	add(KindModalChoice, `^choose one [—–-]+ (.+)$`,
		func(m []string) (interface{}, bool) {
			modes := splitModes(m[1])
			if len(modes) < 2 {
				return nil, false
			}
			return ModalParams{Options: modes}, true
		})
	add(KindTwoPileSplit, `^separate all (.+?) into two piles\. (.+)$`,
		func(m []string) (interface{}, bool) {
			return PileSplitParams{
				TypeWord:    m[1],
				Description: "Separate all " + m[1] + " into two piles. " + m[2],
			}, true
		})
	add(KindUpkeepSacrifice, `^(?:at the beginning of your upkeep, )?sacrifice `+selfWord+` unless you pay (.+)$`,
		func(m []string) (interface{}, bool) {
			return UpkeepSacrificeParams{Cost: m[1]}, true
		})

	// Emblems quote their granted abilities verbatim.
	add(KindEmblem, `^you get an emblem with (.+)$`,
		func(m []string) (interface{}, bool) {
			abilities := extractQuoted(m[1])
			if len(abilities) == 0 {
				return nil, false
			}
			return EmblemParams{Abilities: abilities}, true
		})

	return entries
}

func damageAmount(tw string) func(m []string) (interface{}, bool) {
	return func(m []string) (interface{}, bool) {
		c, ok := ParseCount(m[1])
		if !ok {
			return nil, false
		}
		return DamageParams{Amount: c, TypeWord: tw}, true
	}
}

func counterPlacement(upTo bool) func(m []string) (interface{}, bool) {
	return func(m []string) (interface{}, bool) {
		c, ok := ParseCount(m[1])
		if !ok {
			return nil, false
		}
		return CounterPlacementParams{Count: c, CounterKind: m[2], TypeWord: m[3], UpTo: upTo}, true
	}
}

func zoneType(idx int) func(m []string) (interface{}, bool) {
	return func(m []string) (interface{}, bool) {
		return ZoneParams{TypeWord: m[idx]}, true
	}
}

func sacrificeParams() func(m []string) (interface{}, bool) {
	return func(m []string) (interface{}, bool) {
		c, ok := ParseCount(m[1])
		if !ok {
			return nil, false
		}
		return SacrificeParams{Count: c, TypeWord: m[2]}, true
	}
}

func boostGrant(hasTypeWord bool) func(m []string) (interface{}, bool) {
	return func(m []string) (interface{}, bool) {
		offset := 0
		tw := ""
		if hasTypeWord {
			tw = m[1]
			offset = 1
		}
		p, ok1 := parseSigned(m[offset+1])
		t, ok2 := parseSigned(m[offset+2])
		if !ok1 || !ok2 {
			return nil, false
		}
		return BoostGrantParams{
			Power:     p,
			Toughness: t,
			Abilities: splitAbilityList(m[offset+3]),
			TypeWord:  tw,
			Expiry:    parseUntil(m[offset+4]),
		}, true
	}
}

func parseUntil(s string) Until {
	if s == "your next turn" {
		return UntilYourNextTurn
	}
	return UntilEndOfTurn
}

func splitModes(s string) []string {
	var modes []string
	for _, part := range strings.Split(s, "•") {
		part = strings.Trim(part, " .;")
		if part != "" {
			modes = append(modes, part)
		}
	}
	return modes
}

var quotedPattern = regexp.MustCompile(`"([^"]+)"`)

// extractQuoted pulls the quoted ability texts out of an emblem clause,
// preserving them verbatim.
func extractQuoted(s string) []string {
	var out []string
	for _, m := range quotedPattern.FindAllStringSubmatch(s, -1) {
		out = append(out, m[1])
	}
	return out
}
