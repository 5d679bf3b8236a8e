package oracle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// matchKind asserts the highest-priority reading and hands back its params.
func matchKind(t *testing.T, text string, kind Kind) interface{} {
	t.Helper()
	m := Match(text)
	require.Equal(t, kind, m.Kind, "text %q", text)
	return m.Params
}

func TestCatalogDrawAndDiscardShapes(t *testing.T) {
	p := matchKind(t, "Draw three cards.", KindDrawCards).(AmountParams)
	assert.Equal(t, 3, p.Amount.Resolve(0))

	p = matchKind(t, "Target player draws two cards.", KindTargetPlayerDraws).(AmountParams)
	assert.Equal(t, 2, p.Amount.Resolve(0))

	matchKind(t, "Each player draws a card.", KindEachPlayerDraws)
	matchKind(t, "Each opponent draws a card.", KindEachOpponentDraws)
	matchKind(t, "Discard your hand.", KindDiscardHand)
	matchKind(t, "Each player discards their hand, then draws seven cards.", KindWheel)

	fe := matchKind(t, "Draw a card for each creature you control.", KindDrawForEach).(ForEachParams)
	assert.Equal(t, QuantityCreaturesYouControl, fe.Quantity)

	p = matchKind(t, "Each opponent discards a card.", KindEachOpponentDiscards).(AmountParams)
	assert.Equal(t, 1, p.Amount.Resolve(0))
}

func TestCatalogDamageShapes(t *testing.T) {
	p := matchKind(t, "~ deals 3 damage to any target.", KindDamageAnyTarget).(DamageParams)
	assert.Equal(t, 3, p.Amount.Resolve(0))

	p = matchKind(t, "~ deals X damage to target creature.", KindDamageTargetCreature).(DamageParams)
	assert.True(t, p.Amount.IsX)
	assert.Equal(t, "creature", p.TypeWord)

	p = matchKind(t, "~ deals 2 damage to target creature or planeswalker.", KindDamageTargetCreature).(DamageParams)
	assert.Equal(t, "creature or planeswalker", p.TypeWord)

	p = matchKind(t, "~ deals 1 damage to each creature without flying.", KindDamageEachCreature).(DamageParams)
	assert.Equal(t, "creature without flying", p.TypeWord)

	matchKind(t, "~ deals 2 damage to each opponent.", KindDamageEachOpponent)
	matchKind(t, "~ deals X damage to each creature and each player.", KindDamageEverything)
	matchKind(t, "~ deals damage equal to its power to any target.", KindDamageEqualToPower)
	matchKind(t, "Target creature you control fights target creature you don't control.", KindFight)
}

func TestCatalogLifeShapes(t *testing.T) {
	p := matchKind(t, "You gain 4 life.", KindGainLife).(AmountParams)
	assert.Equal(t, 4, p.Amount.Resolve(0))

	matchKind(t, "You lose 2 life.", KindLoseLife)
	matchKind(t, "Each opponent loses 2 life.", KindOpponentsLose)

	p = matchKind(t, "Each opponent loses 3 life and you gain that much life.", KindDrainOpponents).(AmountParams)
	assert.Equal(t, 3, p.Amount.Resolve(0))

	fe := matchKind(t, "You gain life equal to the number of lands you control.", KindGainLifeEqualTo).(ForEachParams)
	assert.Equal(t, QuantityLandsYouControl, fe.Quantity)

	sl := matchKind(t, "Your life total becomes 10.", KindSetLife).(SetLifeParams)
	assert.Equal(t, 10, sl.Amount.Resolve(0))

	matchKind(t, "Pay any amount of life.", KindPayAnyLife)
}

func TestCatalogCounterShapes(t *testing.T) {
	p := matchKind(t, "Put two +1/+1 counters on target creature.", KindPutCountersOnTarget).(CounterPlacementParams)
	assert.Equal(t, 2, p.Count.Resolve(0))
	assert.Equal(t, "+1/+1", p.CounterKind)
	assert.Equal(t, "creature", p.TypeWord)
	assert.False(t, p.UpTo)

	p = matchKind(t, "Put a +1/+1 counter on up to one target creature.", KindPutCountersOnTarget).(CounterPlacementParams)
	assert.True(t, p.UpTo)

	p = matchKind(t, "Put a -1/-1 counter on each creature.", KindPutCountersOnEach).(CounterPlacementParams)
	assert.Equal(t, "-1/-1", p.CounterKind)
	assert.Equal(t, "creature", p.TypeWord)

	p = matchKind(t, "Put a charge counter on ~.", KindPutCountersOnSelf).(CounterPlacementParams)
	assert.Equal(t, "charge", p.CounterKind)

	p = matchKind(t, "Remove a charge counter from target artifact.", KindRemoveCountersTarget).(CounterPlacementParams)
	assert.Equal(t, "artifact", p.TypeWord)

	matchKind(t, "Proliferate.", KindProliferate)

	pp := matchKind(t, "Target player gets two poison counters.", KindPoisonCounters).(AmountParams)
	assert.Equal(t, 2, pp.Amount.Resolve(0))

	e := matchKind(t, "You get {E}{E}.", KindGetEnergy).(AmountParams)
	assert.Equal(t, 2, e.Amount.Resolve(0))
}

func TestCatalogTapUntapShapes(t *testing.T) {
	z := matchKind(t, "Tap target creature.", KindTapTarget).(ZoneParams)
	assert.Equal(t, "creature", z.TypeWord)

	matchKind(t, "Untap ~.", KindUntapSelf)

	u := matchKind(t, "Untap up to two target lands.", KindUntapTarget).(UntapParams)
	assert.Equal(t, 2, u.Count.Resolve(0))
	assert.Equal(t, "land", u.TypeWord)

	u = matchKind(t, "Untap target creature.", KindUntapTarget).(UntapParams)
	assert.Equal(t, 1, u.Count.Resolve(0))
}

func TestCatalogZoneShapes(t *testing.T) {
	z := matchKind(t, "Destroy target creature. It can't be regenerated.", KindDestroyTarget).(ZoneParams)
	assert.Equal(t, "creature", z.TypeWord)
	assert.True(t, z.NoRegeneration)

	z = matchKind(t, "Destroy target artifact.", KindDestroyTarget).(ZoneParams)
	assert.False(t, z.NoRegeneration)

	matchKind(t, "Destroy all creatures.", KindDestroyAll)
	matchKind(t, "Exile target enchantment.", KindExileTarget)
	matchKind(t, "Return target creature to its owner's hand.", KindReturnTargetToHand)
	matchKind(t, "Return target creature card from your graveyard to your hand.", KindReturnFromGraveyardToHand)

	z = matchKind(t, "Return target creature card from your graveyard to the battlefield tapped.", KindReturnFromGraveyardToPlay).(ZoneParams)
	assert.True(t, z.Tapped)

	matchKind(t, "Sacrifice ~.", KindSacrificeSelf)

	s := matchKind(t, "Target player sacrifices a creature.", KindTargetPlayerSacrifices).(SacrificeParams)
	assert.Equal(t, 1, s.Count.Resolve(0))
	assert.Equal(t, "creature", s.TypeWord)

	s = matchKind(t, "Sacrifice two lands.", KindYouSacrifice).(SacrificeParams)
	assert.Equal(t, 2, s.Count.Resolve(0))
	assert.Equal(t, "land", s.TypeWord)

	matchKind(t, "Each opponent mills three cards.", KindEachOpponentMills)
	matchKind(t, "Target player mills two cards.", KindTargetPlayerMills)
	matchKind(t, "Mill three cards.", KindMill)
	matchKind(t, "Exile the top card of your library.", KindExileTopOfLibrary)
	matchKind(t, "Shuffle your graveyard into your library.", KindShuffleGraveyardIntoLibrary)
}

func TestCatalogDelayedZoneShapes(t *testing.T) {
	matchKind(t, "Exile target creature, then return it to the battlefield under its owner's control.", KindFlickerNow)
	matchKind(t, "Exile target creature, then return it to the battlefield under its owner's control at the beginning of the next end step.", KindFlickerAtEndStep)
	matchKind(t, "At the beginning of the next end step, sacrifice ~.", KindSacrificeAtEndStep)
	matchKind(t, "Exile ~ at the beginning of the next end step.", KindExileAtEndStep)
}

func TestCatalogSearchShapes(t *testing.T) {
	s := matchKind(t, "Search your library for a basic land card, put it onto the battlefield tapped, then shuffle.", KindSearchLibraryToBattlefield).(SearchParams)
	assert.Equal(t, "basic land", s.Criteria)
	assert.True(t, s.ToBattlefield)
	assert.True(t, s.Tapped)

	s = matchKind(t, "Search your library for a creature card, reveal it, put it into your hand, then shuffle.", KindSearchLibraryToHand).(SearchParams)
	assert.Equal(t, "creature", s.Criteria)
	assert.False(t, s.ToBattlefield)
}

func TestCatalogGrantShapes(t *testing.T) {
	b := matchKind(t, "Target creature gets +3/+3 until end of turn.", KindBoostTarget).(PTBoostParams)
	assert.Equal(t, 3, b.Power)
	assert.Equal(t, 3, b.Toughness)
	assert.Equal(t, UntilEndOfTurn, b.Expiry)

	b = matchKind(t, "~ gets +0/+2 until your next turn.", KindBoostSelf).(PTBoostParams)
	assert.Equal(t, 0, b.Power)
	assert.Equal(t, 2, b.Toughness)
	assert.Equal(t, UntilYourNextTurn, b.Expiry)

	b = matchKind(t, "Creatures you control get +1/+1 until end of turn.", KindBoostEach).(PTBoostParams)
	assert.Equal(t, "creatures you control", b.TypeWord)

	bg := matchKind(t, "Target creature gets +2/+0 and gains first strike until end of turn.", KindBoostAndGrantTarget).(BoostGrantParams)
	assert.Equal(t, 2, bg.Power)
	assert.Equal(t, []string{"first strike"}, bg.Abilities)

	g := matchKind(t, "Target creature gains flying until end of turn.", KindGrantAbilityTarget).(GrantParams)
	assert.Equal(t, []string{"flying"}, g.Abilities)

	g = matchKind(t, "~ gains flying, trample, and haste until end of turn.", KindGrantAbilitySelf).(GrantParams)
	assert.Equal(t, []string{"flying", "trample", "haste"}, g.Abilities)

	g = matchKind(t, "Target creature loses all abilities until end of turn.", KindLosesAllAbilities).(GrantParams)
	assert.Equal(t, "creature", g.TypeWord)

	matchKind(t, "Target creature can't block this turn.", KindCantBlock)
	matchKind(t, "Regenerate target creature.", KindRegenerate)
}

func TestCatalogTokenShapes(t *testing.T) {
	p := matchKind(t, "Create two 1/1 white Soldier creature tokens.", KindCreateTokens).(TokenParams)
	assert.Equal(t, 2, p.Count.Resolve(0))
	assert.Equal(t, 1, p.Descriptor.Power)
	assert.Equal(t, 1, p.Descriptor.Toughness)
	assert.Equal(t, []string{"white"}, p.Descriptor.Colors)
	assert.Equal(t, []string{"soldier"}, p.Descriptor.Subtypes)

	p = matchKind(t, "Create a 1/1 colorless Thopter artifact creature token with flying.", KindCreateTokens).(TokenParams)
	assert.Equal(t, []string{"flying"}, p.Descriptor.Abilities)
	assert.Equal(t, []string{"artifact"}, p.Descriptor.ExtraTypes)

	p = matchKind(t, "Create three tapped 1/1 white Soldier creature tokens.", KindCreateTokens).(TokenParams)
	assert.True(t, p.Descriptor.Tapped)

	matchKind(t, "Create a Treasure token.", KindCreateTreasure)
	matchKind(t, "Create two Food tokens.", KindCreateFood)
	matchKind(t, "Investigate.", KindInvestigate)

	e := matchKind(t, `You get an emblem with "Creatures you control get +1/+1."`, KindEmblem).(EmblemParams)
	require.Len(t, e.Abilities, 1)
	assert.Equal(t, "creatures you control get +1/+1.", e.Abilities[0])
}

func TestCatalogManaShapes(t *testing.T) {
	m := matchKind(t, "Add {G}{G}.", KindAddManaSymbols).(ManaParams)
	assert.Equal(t, "{g}{g}", m.Symbols)

	a := matchKind(t, "Add two mana of any one color.", KindAddManaAnyColor).(AnyColorManaParams)
	assert.Equal(t, 2, a.Amount.Resolve(0))
	assert.True(t, a.SingleColor)

	a = matchKind(t, "Add three mana of any color.", KindAddManaAnyColor).(AnyColorManaParams)
	assert.False(t, a.SingleColor)

	r := matchKind(t, "Add {C}{C}. Spend this mana only to activate abilities.", KindAddRestrictedMana).(RestrictedManaParams)
	assert.Equal(t, "{c}{c}", r.Symbols)
	assert.Equal(t, "Spend this mana only to activate abilities.", r.Restriction)
}

func TestCatalogLibraryShapes(t *testing.T) {
	p := matchKind(t, "Scry 2.", KindScry).(AmountParams)
	assert.Equal(t, 2, p.Amount.Resolve(0))

	matchKind(t, "Surveil 1.", KindSurveil)

	lt := matchKind(t, "Look at the top three cards of your library. Put one of them into your hand and the rest on the bottom of your library in any order.", KindLookTopTake).(LookTakeParams)
	assert.Equal(t, 3, lt.Look.Resolve(0))
	assert.Equal(t, 1, lt.Take.Resolve(0))
}

func TestCatalogTurnAndGameShapes(t *testing.T) {
	matchKind(t, "Take an extra turn after this one.", KindExtraTurn)
	matchKind(t, "You may play an additional land this turn.", KindExtraLand)
	matchKind(t, "Restart the game, leaving in exile all non-Aura permanent cards exiled with ~. Then put those cards onto the battlefield under your control.", KindRestartGame)
	matchKind(t, "You win the game.", KindWinGame)
	matchKind(t, "You lose the game.", KindLoseGame)
}

func TestCatalogInteractiveShapes(t *testing.T) {
	ps := matchKind(t, "Separate all permanents target player controls into two piles. That player sacrifices all permanents in the pile of their choice.", KindTwoPileSplit).(PileSplitParams)
	assert.Contains(t, ps.Description, "two piles")

	us := matchKind(t, "Sacrifice ~ unless you pay {1}.", KindUpkeepSacrifice).(UpkeepSacrificeParams)
	assert.Equal(t, "{1}", us.Cost)

	mp := matchKind(t, "Choose one —\n• Draw two cards.\n• Each opponent loses 2 life.", KindModalChoice).(ModalParams)
	require.Len(t, mp.Options, 2)
	assert.Equal(t, "draw two cards", mp.Options[0])
	assert.Equal(t, "each opponent loses 2 life", mp.Options[1])

	// A lone mode is not a choice; the text falls through to manual review.
	m := Match("Choose one — draw a card.")
	assert.Equal(t, KindManualResolution, m.Kind)
}

func TestCatalogControlShapes(t *testing.T) {
	z := matchKind(t, "Gain control of target creature.", KindGainControl).(ZoneParams)
	assert.Equal(t, "creature", z.TypeWord)

	matchKind(t, "Gain control of target creature until end of turn.", KindGainControlTemp)
}
