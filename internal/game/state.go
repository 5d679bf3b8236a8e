package game

import (
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/planarforge/oracle-server-go/internal/game/counters"
	"github.com/planarforge/oracle-server-go/internal/game/duration"
	"github.com/planarforge/oracle-server-go/internal/game/events"
	"github.com/planarforge/oracle-server-go/internal/game/mana"
	"github.com/planarforge/oracle-server-go/internal/game/turn"
)

// ZoneName identifies one card zone.
type ZoneName string

const (
	ZoneLibrary     ZoneName = "library"
	ZoneHand        ZoneName = "hand"
	ZoneGraveyard   ZoneName = "graveyard"
	ZoneExile       ZoneName = "exile"
	ZoneCommand     ZoneName = "command"
	ZoneBattlefield ZoneName = "battlefield"
)

// Card is the zone-agnostic representation of a game object. It is owned by
// exactly one player for the whole match, no matter which zone it sits in or
// who controls the permanent wrapping it.
type Card struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	ManaCost   string   `json:"mana_cost,omitempty"`
	ManaValue  int      `json:"mana_value,omitempty"`
	Types      []string `json:"types,omitempty"`
	Subtypes   []string `json:"subtypes,omitempty"`
	Supertypes []string `json:"supertypes,omitempty"`
	Colors     []string `json:"colors,omitempty"`

	// Printed characteristics. Kept as strings: "*" and "X" appear on real
	// cards and battlefield math parses them when a permanent enters.
	Power     string `json:"power,omitempty"`
	Toughness string `json:"toughness,omitempty"`
	Loyalty   string `json:"loyalty,omitempty"`

	Keywords  []string `json:"keywords,omitempty"`
	RulesText string   `json:"rules_text,omitempty"`
	OwnerID   string   `json:"owner_id"`

	// ExiledWith names the source that exiled this card. A restart scans it
	// to decide which exiled cards are preserved.
	ExiledWith string `json:"exiled_with,omitempty"`

	IsCommander bool `json:"is_commander,omitempty"`

	// Token cards cease to exist when they leave the battlefield.
	Token bool `json:"token,omitempty"`
}

// HasType reports whether the card's type line carries the given type.
func (c *Card) HasType(t string) bool {
	for _, ct := range c.Types {
		if strings.EqualFold(ct, t) {
			return true
		}
	}
	return false
}

// HasSubtype reports whether the card's type line carries the given subtype.
func (c *Card) HasSubtype(s string) bool {
	for _, cs := range c.Subtypes {
		if strings.EqualFold(cs, s) {
			return true
		}
	}
	return false
}

// Zone is an ordered card sequence plus a redundant count. The count must
// equal len(Cards) after every operation; for libraries the top is index 0.
type Zone struct {
	Cards []*Card `json:"cards"`
	Count int     `json:"count"`
}

// NewZone creates an empty zone.
func NewZone() *Zone {
	return &Zone{Cards: make([]*Card, 0)}
}

// AddTop puts a card on top of the zone.
func (z *Zone) AddTop(c *Card) {
	z.Cards = append([]*Card{c}, z.Cards...)
	z.Count = len(z.Cards)
}

// AddBottom puts a card on the bottom of the zone.
func (z *Zone) AddBottom(c *Card) {
	z.Cards = append(z.Cards, c)
	z.Count = len(z.Cards)
}

// TakeTop removes and returns the top card, or nil if the zone is empty.
func (z *Zone) TakeTop() *Card {
	if len(z.Cards) == 0 {
		return nil
	}
	c := z.Cards[0]
	z.Cards = z.Cards[1:]
	z.Count = len(z.Cards)
	return c
}

// Remove takes the card with the given id out of the zone, or returns nil
// if it is not there.
func (z *Zone) Remove(cardID string) *Card {
	for i, c := range z.Cards {
		if c.ID == cardID {
			z.Cards = append(z.Cards[:i], z.Cards[i+1:]...)
			z.Count = len(z.Cards)
			return c
		}
	}
	return nil
}

// Contains reports whether the card with the given id is in the zone.
func (z *Zone) Contains(cardID string) bool {
	for _, c := range z.Cards {
		if c.ID == cardID {
			return true
		}
	}
	return false
}

// TakeAll empties the zone and returns what it held.
func (z *Zone) TakeAll() []*Card {
	out := z.Cards
	z.Cards = make([]*Card, 0)
	z.Count = 0
	return out
}

// ZoneSet holds one player's card zones.
type ZoneSet struct {
	Hand      *Zone `json:"hand"`
	Library   *Zone `json:"library"`
	Graveyard *Zone `json:"graveyard"`
	Exile     *Zone `json:"exile"`
	Command   *Zone `json:"command"`
}

// NewZoneSet creates an empty zone set.
func NewZoneSet() *ZoneSet {
	return &ZoneSet{
		Hand:      NewZone(),
		Library:   NewZone(),
		Graveyard: NewZone(),
		Exile:     NewZone(),
		Command:   NewZone(),
	}
}

// Zone returns the named zone, or nil for the battlefield (permanents are
// state-scoped, not player-scoped).
func (zs *ZoneSet) Zone(name ZoneName) *Zone {
	switch name {
	case ZoneHand:
		return zs.Hand
	case ZoneLibrary:
		return zs.Library
	case ZoneGraveyard:
		return zs.Graveyard
	case ZoneExile:
		return zs.Exile
	case ZoneCommand:
		return zs.Command
	default:
		return nil
	}
}

// Player is one seat in the match.
type Player struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Life         int            `json:"life"`
	Poison       int            `json:"poison"`
	Energy       int            `json:"energy"`
	Experience   int            `json:"experience"`
	Zones        *ZoneSet       `json:"zones"`
	Mana         *mana.Pool     `json:"-"`
	Commanders   []string       `json:"commanders,omitempty"`
	CommanderTax map[string]int `json:"commander_tax,omitempty"`
	Lost         bool           `json:"lost"`
	Won          bool           `json:"won"`
}

// Permanent is a battlefield object. Its identity is distinct from the card
// wrapping it: a card that leaves and re-enters the battlefield comes back
// as a brand-new Permanent.
type Permanent struct {
	ID           string `json:"id"`
	Card         *Card  `json:"card"`
	Name         string `json:"name"`
	ControllerID string `json:"controller_id"`
	Tapped       bool   `json:"tapped"`

	// Base characteristics, parsed from the printed values on entry.
	// Control-change and animation effects overwrite these directly.
	BasePower     int      `json:"base_power"`
	BaseToughness int      `json:"base_toughness"`
	Types         []string `json:"types,omitempty"`
	Subtypes      []string `json:"subtypes,omitempty"`
	Abilities     []string `json:"abilities,omitempty"`

	Counters *counters.Map  `json:"-"`
	Grants   *duration.List `json:"-"`

	AttachedTo  string   `json:"attached_to,omitempty"`
	Attachments []string `json:"attachments,omitempty"`
	Token       bool     `json:"token,omitempty"`
	EnteredTurn int      `json:"entered_turn"`

	// Damage marked this turn.
	Damage        int            `json:"damage"`
	DamageSources map[string]int `json:"-"`
	// ExcessDamage is set when one damage instance exceeds the remaining
	// toughness; combat subsystems read it, the cleanup sweep clears it.
	ExcessDamage bool `json:"excess_damage,omitempty"`

	NoUntapNextUntap    bool `json:"-"`
	CantBlockThisTurn   bool `json:"-"`
	RegenerationShields int  `json:"-"`
}

// Power is the effective power: base, plus boost counters, plus every
// active temporary delta.
func (p *Permanent) Power() int {
	power := p.BasePower
	cp, _ := p.Counters.BoostTotals()
	power += cp
	for _, rec := range p.Grants.Records() {
		if rec.Payload.Kind == duration.PayloadPTDelta {
			power += rec.Payload.Power
		}
	}
	return power
}

// Toughness is the effective toughness, mirror of Power.
func (p *Permanent) Toughness() int {
	toughness := p.BaseToughness
	_, ct := p.Counters.BoostTotals()
	toughness += ct
	for _, rec := range p.Grants.Records() {
		if rec.Payload.Kind == duration.PayloadPTDelta {
			toughness += rec.Payload.Toughness
		}
	}
	return toughness
}

// EffectiveAbilities folds the grant list over the base ability list in
// application order: a remove-all wipes everything granted so far, later
// grants add on top. Single-layer best effort, not a layer system.
func (p *Permanent) EffectiveAbilities() []string {
	out := append([]string(nil), p.Abilities...)
	for _, rec := range p.Grants.Records() {
		switch rec.Payload.Kind {
		case duration.PayloadRemoveAllAbilities:
			out = out[:0]
		case duration.PayloadGrantAbility:
			out = append(out, rec.Payload.Ability)
		}
	}
	return out
}

// HasAbility reports whether the effective ability list carries the named
// ability.
func (p *Permanent) HasAbility(name string) bool {
	for _, a := range p.EffectiveAbilities() {
		if strings.EqualFold(a, name) {
			return true
		}
	}
	return false
}

// HasType reports whether the permanent's (possibly overwritten) type line
// carries the given type.
func (p *Permanent) HasType(t string) bool {
	for _, pt := range p.Types {
		if strings.EqualFold(pt, t) {
			return true
		}
	}
	return false
}

// HasSubtype reports whether the permanent's subtype list carries the given
// subtype.
func (p *Permanent) HasSubtype(s string) bool {
	for _, ps := range p.Subtypes {
		if strings.EqualFold(ps, s) {
			return true
		}
	}
	return false
}

// IsCreature is the most common type check in the handler set.
func (p *Permanent) IsCreature() bool { return p.HasType("Creature") }

// Emblem is a player-scoped ability holder. Emblems are never removed.
type Emblem struct {
	ID           string   `json:"id"`
	ControllerID string   `json:"controller_id"`
	SourceName   string   `json:"source_name"`
	Abilities    []string `json:"abilities"`
}

// Message is one game log entry.
type Message struct {
	Text string    `json:"text"`
	Kind string    `json:"kind"`
	Time time.Time `json:"time"`
}

// Status tracks the match lifecycle.
type Status string

const (
	StatusInProgress Status = "IN_PROGRESS"
	StatusFinished   Status = "FINISHED"
)

// TurnDelegate is the slice of the turn engine the effect handlers consume.
// *turn.Controller implements it; a restart swaps in nothing but tests may.
type TurnDelegate interface {
	NextTurn()
	AddExtraTurn(playerID, sourceName string)
	ApplyTemporaryLandBonus(playerID string, n int)
	InitializeBeginningPhase() error
}

// GameState is the shared mutable record one match resolves against. It is
// single-writer: the surrounding session serializes access, so no field
// carries locking.
type GameState struct {
	GameID      string
	Status      Status
	Players     map[string]*Player
	PlayerOrder []string
	Cards       map[string]*Card
	Battlefield []*Permanent
	Emblems     []*Emblem

	Turn     *turn.Controller
	Delegate TurnDelegate

	// Scheduled holds state-scoped duration records: delayed one-shots and
	// control reverts. Per-permanent grants live on the permanents.
	Scheduled *duration.List

	Bus  *events.Bus
	Rand *rand.Rand

	Messages     []Message
	WinnerID     string
	RestartCount int
	StartingLife int
	OpeningHand  int

	startedAt time.Time
}

// StartedAt is when the match was created.
func (g *GameState) StartedAt() time.Time { return g.startedAt }

// Player returns the player with the given id, or nil.
func (g *GameState) Player(id string) *Player {
	return g.Players[id]
}

// Opponents returns every other player's id in turn order.
func (g *GameState) Opponents(of string) []string {
	out := make([]string, 0, len(g.PlayerOrder))
	for _, id := range g.PlayerOrder {
		if id != of {
			out = append(out, id)
		}
	}
	return out
}

// FindPermanent returns the battlefield permanent with the given id, or nil.
// It also resolves the id of the wrapped card, so handlers can take either.
func (g *GameState) FindPermanent(id string) *Permanent {
	for _, p := range g.Battlefield {
		if p.ID == id || p.Card.ID == id {
			return p
		}
	}
	return nil
}

// PermanentsControlledBy returns the permanents the player controls, in
// battlefield order.
func (g *GameState) PermanentsControlledBy(playerID string) []*Permanent {
	var out []*Permanent
	for _, p := range g.Battlefield {
		if p.ControllerID == playerID {
			out = append(out, p)
		}
	}
	return out
}

// AddMessage appends one entry to the game log.
func (g *GameState) AddMessage(text, kind string) {
	g.Messages = append(g.Messages, Message{Text: text, Kind: kind, Time: time.Now()})
}

// publish stamps the game id onto the event and hands it to the bus.
func (g *GameState) publish(ev events.Event) {
	ev.GameID = g.GameID
	g.Bus.Publish(ev)
}

// EnterBattlefield wraps a card into a brand-new permanent under the given
// controller. Loyalty is recomputed from the printed value every time.
func (g *GameState) EnterBattlefield(card *Card, controllerID string) *Permanent {
	perm := &Permanent{
		ID:            uuid.NewString(),
		Card:          card,
		Name:          card.Name,
		ControllerID:  controllerID,
		BasePower:     parsePrinted(card.Power),
		BaseToughness: parsePrinted(card.Toughness),
		Types:         append([]string(nil), card.Types...),
		Subtypes:      append([]string(nil), card.Subtypes...),
		Abilities:     append([]string(nil), card.Keywords...),
		Counters:      counters.NewMap(),
		Grants:        duration.NewList(),
		Token:         card.Token,
		DamageSources: make(map[string]int),
	}
	if g.Turn != nil {
		perm.EnteredTurn = g.Turn.TurnNumber()
	}
	if loyalty := parsePrinted(card.Loyalty); loyalty > 0 {
		perm.Counters.Set(counters.KindLoyalty, loyalty)
	}
	g.Battlefield = append(g.Battlefield, perm)
	return perm
}

// parsePrinted turns a printed power/toughness/loyalty value into a number.
// Variable values ("*", "X", "1+*") count as zero.
func parsePrinted(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
