// Package counters tracks named counters on permanents and players.
package counters

import (
	"sort"
	"strconv"
	"strings"
)

// Kind identifies a counter variety by its printed name.
type Kind string

const (
	KindLoyalty    Kind = "loyalty"
	KindPlusOne    Kind = "+1/+1"
	KindMinusOne   Kind = "-1/-1"
	KindStun       Kind = "stun"
	KindShield     Kind = "shield"
	KindCharge     Kind = "charge"
	KindOil        Kind = "oil"
	KindQuest      Kind = "quest"
	KindLore       Kind = "lore"
	KindTime       Kind = "time"
	KindPoison     Kind = "poison"
	KindEnergy     Kind = "energy"
	KindExperience Kind = "experience"
)

func (k Kind) String() string { return string(k) }

// Map is a collection of counters keyed by kind. Counts never go negative:
// removal clamps at zero, which is also how loyalty is kept from dropping
// below the representable floor.
type Map struct {
	counts map[Kind]int
}

// NewMap returns an empty counter collection.
func NewMap() *Map {
	return &Map{counts: make(map[Kind]int)}
}

// Add places amount counters of the given kind. Non-positive amounts are
// ignored.
func (m *Map) Add(kind Kind, amount int) {
	if amount <= 0 {
		return
	}
	m.counts[kind] += amount
}

// Remove takes up to amount counters of the given kind, clamping at zero.
// It reports how many counters were actually removed.
func (m *Map) Remove(kind Kind, amount int) int {
	if amount <= 0 {
		return 0
	}
	have := m.counts[kind]
	if have == 0 {
		return 0
	}
	removed := amount
	if removed > have {
		removed = have
	}
	if removed == have {
		delete(m.counts, kind)
	} else {
		m.counts[kind] -= removed
	}
	return removed
}

// Set overwrites the count for a kind. A non-positive value clears it.
func (m *Map) Set(kind Kind, count int) {
	if count <= 0 {
		delete(m.counts, kind)
		return
	}
	m.counts[kind] = count
}

// Count returns the number of counters of the given kind.
func (m *Map) Count(kind Kind) int { return m.counts[kind] }

// Has reports whether at least one counter of the given kind is present.
func (m *Map) Has(kind Kind) bool { return m.counts[kind] > 0 }

// Total returns the number of counters across all kinds.
func (m *Map) Total() int {
	total := 0
	for _, c := range m.counts {
		total += c
	}
	return total
}

// Kinds returns the kinds present, sorted by name for stable iteration.
func (m *Map) Kinds() []Kind {
	kinds := make([]Kind, 0, len(m.counts))
	for k := range m.counts {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// BoostTotals sums the power/toughness contribution of every boost-style
// counter (+1/+1, -1/-1 and friends) currently in the collection.
func (m *Map) BoostTotals() (power, toughness int) {
	for kind, count := range m.counts {
		p, t, ok := ParseBoostKind(string(kind))
		if !ok {
			continue
		}
		power += p * count
		toughness += t * count
	}
	return power, toughness
}

// Copy returns a deep copy of the collection.
func (m *Map) Copy() *Map {
	dup := NewMap()
	for k, c := range m.counts {
		dup.counts[k] = c
	}
	return dup
}

// ParseBoostKind parses a boost counter name such as "+1/+1" or "-2/-2"
// into its power and toughness deltas.
func ParseBoostKind(name string) (power, toughness int, ok bool) {
	left, right, found := strings.Cut(name, "/")
	if !found {
		return 0, 0, false
	}
	power, ok = parseSignedValue(left)
	if !ok {
		return 0, 0, false
	}
	toughness, ok = parseSignedValue(right)
	if !ok {
		return 0, 0, false
	}
	return power, toughness, true
}

// BoostKind builds the counter kind for a power/toughness delta, e.g.
// BoostKind(1, 1) == KindPlusOne.
func BoostKind(power, toughness int) Kind {
	return Kind(formatSigned(power) + "/" + formatSigned(toughness))
}

func parseSignedValue(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if s[0] == '+' {
		s = s[1:]
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return v, true
}

func formatSigned(v int) string {
	if v >= 0 {
		return "+" + strconv.Itoa(v)
	}
	return strconv.Itoa(v)
}
