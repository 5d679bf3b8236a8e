package counters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddAndRemove(t *testing.T) {
	m := NewMap()

	m.Add(KindLoyalty, 3)
	assert.Equal(t, 3, m.Count(KindLoyalty))

	m.Add(KindLoyalty, 2)
	assert.Equal(t, 5, m.Count(KindLoyalty))

	removed := m.Remove(KindLoyalty, 2)
	assert.Equal(t, 2, removed)
	assert.Equal(t, 3, m.Count(KindLoyalty))
}

func TestRemoveClampsAtZero(t *testing.T) {
	m := NewMap()
	m.Add(KindLoyalty, 2)

	// Removing more than present clamps rather than going negative.
	removed := m.Remove(KindLoyalty, 7)
	assert.Equal(t, 2, removed)
	assert.Equal(t, 0, m.Count(KindLoyalty))
	assert.False(t, m.Has(KindLoyalty))

	// Removing from an absent kind is a no-op.
	assert.Equal(t, 0, m.Remove(KindStun, 1))
}

func TestIgnoresNonPositiveAmounts(t *testing.T) {
	m := NewMap()
	m.Add(KindPlusOne, 0)
	m.Add(KindPlusOne, -3)
	assert.Equal(t, 0, m.Count(KindPlusOne))

	m.Add(KindPlusOne, 1)
	assert.Equal(t, 0, m.Remove(KindPlusOne, -1))
	assert.Equal(t, 1, m.Count(KindPlusOne))
}

func TestBoostTotals(t *testing.T) {
	m := NewMap()
	m.Add(KindPlusOne, 3)
	m.Add(KindMinusOne, 1)
	m.Add(KindStun, 2) // not a boost counter

	p, tough := m.BoostTotals()
	assert.Equal(t, 2, p)
	assert.Equal(t, 2, tough)
}

func TestParseBoostKind(t *testing.T) {
	tests := []struct {
		name      string
		power     int
		toughness int
		ok        bool
	}{
		{"+1/+1", 1, 1, true},
		{"-1/-1", -1, -1, true},
		{"+2/+0", 2, 0, true},
		{"+0/-1", 0, -1, true},
		{"loyalty", 0, 0, false},
		{"stun", 0, 0, false},
		{"", 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, tough, ok := ParseBoostKind(tt.name)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.power, p)
				assert.Equal(t, tt.toughness, tough)
			}
		})
	}
}

func TestBoostKindRoundTrip(t *testing.T) {
	kind := BoostKind(2, 2)
	assert.Equal(t, Kind("+2/+2"), kind)

	p, tough, ok := ParseBoostKind(string(kind))
	require.True(t, ok)
	assert.Equal(t, 2, p)
	assert.Equal(t, 2, tough)

	assert.Equal(t, Kind("-1/-1"), BoostKind(-1, -1))
}

func TestCopyIsIndependent(t *testing.T) {
	m := NewMap()
	m.Add(KindCharge, 4)

	dup := m.Copy()
	dup.Remove(KindCharge, 4)

	assert.Equal(t, 4, m.Count(KindCharge))
	assert.Equal(t, 0, dup.Count(KindCharge))
}

func TestKindsSorted(t *testing.T) {
	m := NewMap()
	m.Add(KindStun, 1)
	m.Add(KindLoyalty, 1)
	m.Add(KindCharge, 1)

	kinds := m.Kinds()
	require.Len(t, kinds, 3)
	assert.Equal(t, []Kind{KindCharge, KindLoyalty, KindStun}, kinds)
}
