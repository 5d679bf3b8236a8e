// Package mana models per-player mana pools, including restricted mana
// units that may only be spent on what their granting source allows.
package mana

import (
	"sort"
)

// Color is one of the five colors plus colorless.
type Color string

const (
	White     Color = "W"
	Blue      Color = "U"
	Black     Color = "B"
	Red       Color = "R"
	Green     Color = "G"
	Colorless Color = "C"
)

// Colors lists every color in WUBRG+C order.
var Colors = []Color{White, Blue, Black, Red, Green, Colorless}

var colorNames = map[Color]string{
	White:     "white",
	Blue:      "blue",
	Black:     "black",
	Red:       "red",
	Green:     "green",
	Colorless: "colorless",
}

func (c Color) Name() string {
	if n, ok := colorNames[c]; ok {
		return n
	}
	return string(c)
}

// FromWord maps a color word ("red", "white", ...) to its Color.
func FromWord(word string) (Color, bool) {
	for c, n := range colorNames {
		if n == word {
			return c, true
		}
	}
	return "", false
}

// Restriction describes what a restricted mana unit may be spent on,
// together with the provenance of the grant. Units from different sources
// never merge even when the restriction text matches.
type Restriction struct {
	Description string // e.g. "Spend this mana only to cast creature spells."
	SourceID    string
	SourceName  string
}

// RestrictedUnit is a single point of mana carrying a spending restriction.
type RestrictedUnit struct {
	Color       Color
	Restriction Restriction
}

// Pool is a player's mana pool. It lives inside the single-writer game
// state and carries no internal locking.
type Pool struct {
	counts     map[Color]int
	restricted []RestrictedUnit
}

// NewPool creates an empty mana pool.
func NewPool() *Pool {
	return &Pool{counts: make(map[Color]int)}
}

// Add puts amount unrestricted mana of the given color into the pool.
func (p *Pool) Add(color Color, amount int) {
	if amount <= 0 {
		return
	}
	p.counts[color] += amount
}

// AddRestricted puts amount restricted mana units of the given color into
// the pool, each tagged with the same restriction.
func (p *Pool) AddRestricted(color Color, amount int, r Restriction) {
	for i := 0; i < amount; i++ {
		p.restricted = append(p.restricted, RestrictedUnit{Color: color, Restriction: r})
	}
}

// Count returns the unrestricted amount of the given color.
func (p *Pool) Count(color Color) int { return p.counts[color] }

// RestrictedCount returns the number of restricted units of the given color.
func (p *Pool) RestrictedCount(color Color) int {
	n := 0
	for _, u := range p.restricted {
		if u.Color == color {
			n++
		}
	}
	return n
}

// RestrictedUnits returns a copy of the restricted unit list.
func (p *Pool) RestrictedUnits() []RestrictedUnit {
	units := make([]RestrictedUnit, len(p.restricted))
	copy(units, p.restricted)
	return units
}

// RestrictedGroup aggregates restricted units that share one restriction
// from one source.
type RestrictedGroup struct {
	Restriction Restriction
	Counts      map[Color]int
	Total       int
}

// RestrictedGroups aggregates units by (source, restriction) pair. Groups
// are ordered by source id then description for stable output.
func (p *Pool) RestrictedGroups() []RestrictedGroup {
	type key struct {
		sourceID    string
		description string
	}
	byKey := make(map[key]*RestrictedGroup)
	var order []key
	for _, u := range p.restricted {
		k := key{u.Restriction.SourceID, u.Restriction.Description}
		g, ok := byKey[k]
		if !ok {
			g = &RestrictedGroup{Restriction: u.Restriction, Counts: make(map[Color]int)}
			byKey[k] = g
			order = append(order, k)
		}
		g.Counts[u.Color]++
		g.Total++
	}
	sort.Slice(order, func(i, j int) bool {
		if order[i].sourceID != order[j].sourceID {
			return order[i].sourceID < order[j].sourceID
		}
		return order[i].description < order[j].description
	})
	groups := make([]RestrictedGroup, 0, len(order))
	for _, k := range order {
		groups = append(groups, *byKey[k])
	}
	return groups
}

// Total returns all mana in the pool, restricted units included.
func (p *Pool) Total() int {
	total := len(p.restricted)
	for _, n := range p.counts {
		total += n
	}
	return total
}

// Spend removes amount unrestricted mana of the given color. Returns false
// without mutating when the pool holds less than amount.
func (p *Pool) Spend(color Color, amount int) bool {
	if amount <= 0 {
		return true
	}
	if p.counts[color] < amount {
		return false
	}
	p.counts[color] -= amount
	return true
}

// Empty clears the pool, restricted units included. The turn engine calls
// this at phase boundaries that empty mana pools.
func (p *Pool) Empty() {
	p.counts = make(map[Color]int)
	p.restricted = nil
}

// Copy returns a deep copy of the pool.
func (p *Pool) Copy() *Pool {
	dup := NewPool()
	for c, n := range p.counts {
		dup.counts[c] = n
	}
	dup.restricted = append(dup.restricted, p.restricted...)
	return dup
}
