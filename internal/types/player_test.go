package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPositionSet_JSONRoundTripIsSorted(t *testing.T) {
	s := NewPositionSet("STC", "AMR", "AML")

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `["AML","AMR","STC"]`, string(data))

	var back PositionSet
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.Has("AMR"))
	assert.Len(t, back, 3)
}

func TestPositionSet_Intersects(t *testing.T) {
	s := NewPositionSet("DC", "DM")
	assert.True(t, s.Intersects([]string{"GK", "DM"}))
	assert.False(t, s.Intersects([]string{"STC"}))
	assert.False(t, s.Intersects(nil))
}

func TestPlayer_Value(t *testing.T) {
	p := Player{
		Age:           24,
		Salary:        12000,
		TransferValue: 1750000,
		Apps:          25,
		Stats:         map[string]float64{"Gls/90": 0.4, ColDefensiveActions: 7.5},
		Roles:         map[string]float64{"Finisher": 88.5},
	}

	tests := []struct {
		column string
		want   float64
		ok     bool
	}{
		{ColAge, 24, true},
		{ColSalary, 12000, true},
		{ColTransferValue, 1750000, true},
		{ColApps, 25, true},
		{"Gls/90", 0.4, true},
		{ColDefensiveActions, 7.5, true},
		{"Finisher", 88.5, true},
		{"Tck/90", 0, true},
		{ColName, 0, false},
		{ColPosition, 0, false},
		{"Not A Column", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.column, func(t *testing.T) {
			got, ok := p.Value(tt.column)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPlayer_CloneIsDeep(t *testing.T) {
	p := Player{
		Name:     "A",
		Position: NewPositionSet("GK"),
		Stats:    map[string]float64{"Saves/90": 3},
		Roles:    map[string]float64{"Goalkeeper": 50},
	}
	c := p.Clone()
	c.Position["DC"] = struct{}{}
	c.Stats["Saves/90"] = 9
	c.Roles["Goalkeeper"] = 1

	assert.False(t, p.Position.Has("DC"))
	assert.Equal(t, 3.0, p.Stats["Saves/90"])
	assert.Equal(t, 50.0, p.Roles["Goalkeeper"])
}

func TestTable_Find(t *testing.T) {
	tbl := &Table{Players: []Player{{Name: "A"}, {Name: "B"}, {Name: "A"}}}
	assert.Equal(t, []int{0, 2}, tbl.Find("A"))
	assert.Empty(t, tbl.Find("C"))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindIdentity, KindOf(ColName))
	assert.Equal(t, KindStat, KindOf("Tck/90"))
	assert.Equal(t, KindDerived, KindOf(ColCreatingActions))
	assert.Equal(t, KindRole, KindOf("Reader"))
	assert.Equal(t, KindUnknown, KindOf("bogus"))
	assert.True(t, KindOf(ColAge).Numeric())
	assert.False(t, KindOf(ColExpires).Numeric())
}

func TestIsSigned(t *testing.T) {
	assert.True(t, IsSigned("xG-OP"))
	assert.False(t, IsSigned("Tck/90"))
	for _, c := range SignedStats {
		assert.Equal(t, KindStat, KindOf(c), c)
	}
}

func TestRequiredRawColumns_NoDuplicates(t *testing.T) {
	seen := map[string]bool{}
	for _, c := range RequiredRawColumns() {
		assert.False(t, seen[c], "duplicate column %q", c)
		seen[c] = true
	}
}
