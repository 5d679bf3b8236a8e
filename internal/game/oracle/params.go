package oracle

// Until says when a duration-qualified grant wears off.
type Until string

const (
	UntilEndOfTurn   Until = "end_of_turn"
	UntilYourNextTurn Until = "your_next_turn"
	UntilForever     Until = "forever"
)

// Quantity is a dynamic amount computed against game state at apply time.
type Quantity string

const (
	QuantityCardsInHand        Quantity = "cards_in_hand"
	QuantityCreaturesYouControl Quantity = "creatures_you_control"
	QuantityLandsYouControl    Quantity = "lands_you_control"
	QuantityCardsInGraveyard   Quantity = "cards_in_your_graveyard"
	QuantityTargetPower        Quantity = "target_power"
	QuantityTargetToughness    Quantity = "target_toughness"
)

var quantityPhrases = map[string]Quantity{
	"cards in your hand":             QuantityCardsInHand,
	"card in your hand":              QuantityCardsInHand,
	"creatures you control":          QuantityCreaturesYouControl,
	"creature you control":           QuantityCreaturesYouControl,
	"lands you control":              QuantityLandsYouControl,
	"land you control":               QuantityLandsYouControl,
	"cards in your graveyard":        QuantityCardsInGraveyard,
	"card in your graveyard":         QuantityCardsInGraveyard,
	"its power":                      QuantityTargetPower,
	"that creature's power":          QuantityTargetPower,
	"its toughness":                  QuantityTargetToughness,
	"that creature's toughness":      QuantityTargetToughness,
}

func parseQuantity(phrase string) (Quantity, bool) {
	q, ok := quantityPhrases[phrase]
	return q, ok
}

// AmountParams carries a single count: draws, mills, life deltas, scry
// depths and the like.
type AmountParams struct {
	Amount Count
}

// DrawDiscardParams carries a draw count followed by a discard count.
type DrawDiscardParams struct {
	Draw    Count
	Discard Count
}

// ForEachParams carries a per-unit amount and the quantity it scales by.
type ForEachParams struct {
	Amount   Count
	Quantity Quantity
}

// DamageParams carries a damage amount. TypeWord narrows permanent damage
// ("creature", "creature or planeswalker"); empty means the kind decides.
type DamageParams struct {
	Amount   Count
	TypeWord string
}

// SetLifeParams sets a life total.
type SetLifeParams struct {
	Amount Count
}

// CounterPlacementParams places or removes counters.
type CounterPlacementParams struct {
	Count       Count
	CounterKind string
	TypeWord    string
	UpTo        bool
}

// PTBoostParams is a temporary power/toughness delta.
type PTBoostParams struct {
	Power     int
	Toughness int
	TypeWord  string
	Expiry    Until
}

// GrantParams grants one or more abilities for a duration.
type GrantParams struct {
	Abilities []string
	TypeWord  string
	Expiry    Until
}

// BoostGrantParams combines a PT delta with ability grants.
type BoostGrantParams struct {
	Power     int
	Toughness int
	Abilities []string
	TypeWord  string
	Expiry    Until
}

// UntapParams untaps targets, possibly "up to" a count of them.
type UntapParams struct {
	Count    Count
	TypeWord string
}

// ZoneParams carries the permanent/card type word of a zone transition and
// its side flags.
type ZoneParams struct {
	TypeWord       string
	NoRegeneration bool
	Tapped         bool
}

// SacrificeParams asks a player to sacrifice permanents of a type.
type SacrificeParams struct {
	Count    Count
	TypeWord string
}

// LookTakeParams looks at the top of the library and keeps a subset.
type LookTakeParams struct {
	Look Count
	Take Count
}

// SearchParams describes a library search.
type SearchParams struct {
	Criteria      string
	ToBattlefield bool
	Tapped        bool
}

// TokenParams creates tokens from a parsed descriptor.
type TokenParams struct {
	Count      Count
	Descriptor TokenDescriptor
}

// ManaParams adds mana described by explicit symbols.
type ManaParams struct {
	Symbols string
}

// RestrictedManaParams adds mana that carries a spending restriction.
type RestrictedManaParams struct {
	Symbols     string
	Restriction string
}

// AnyColorManaParams adds mana of a color the player picks.
type AnyColorManaParams struct {
	Amount      Count
	SingleColor bool
}

// EmblemParams carries the verbatim quoted ability text of an emblem.
type EmblemParams struct {
	Abilities []string
}

// ModalParams lists the modes of a "choose one" ability. The chosen mode's
// text is resolved as its own ability text.
type ModalParams struct {
	Options []string
}

// PileSplitParams describes a two-pile split decision. TypeWord names the
// permanents being separated.
type PileSplitParams struct {
	TypeWord    string
	Description string
}

// UpkeepSacrificeParams carries the alternative cost of an upkeep
// sacrifice.
type UpkeepSacrificeParams struct {
	Cost string
}

// RawTextParams carries unclassified text to the manual-resolution
// terminal.
type RawTextParams struct {
	Text string
}

// EmptyParams marks kinds with nothing to extract.
type EmptyParams struct{}
