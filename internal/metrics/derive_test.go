package metrics

import (
	"testing"

	"github.com/jonathan/fm-scout/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func player(name string, stats map[string]float64) types.Player {
	return types.Player{Name: name, Position: types.NewPositionSet("MC"), Stats: stats}
}

func TestPercentileRanks(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected []float64
	}{
		{"distinct", []float64{1, 2, 3, 4}, []float64{25, 50, 75, 100}},
		{"unordered", []float64{3, 1, 4, 2}, []float64{75, 25, 100, 50}},
		{"ties averaged", []float64{1, 1, 2}, []float64{50, 50, 100}},
		{"single value", []float64{7}, []float64{100}},
		{"all equal", []float64{5, 5}, []float64{75, 75}},
		{"empty", []float64{}, []float64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PercentileRanks(tt.values)
			require.Len(t, got, len(tt.expected))
			for i := range got {
				assert.InDelta(t, tt.expected[i], got[i], 1e-9)
			}
		})
	}
}

func TestPercentileRanks_DoesNotReorderInput(t *testing.T) {
	values := []float64{3, 1, 2}
	PercentileRanks(values)
	assert.Equal(t, []float64{3, 1, 2}, values)
}

func TestDerive_CumulativeColumns(t *testing.T) {
	table := &types.Table{Players: []types.Player{player("Alan", map[string]float64{
		"Tck/90": 1, "K Tck/90": 0.5, "Int/90": 2, "Clr/90": 3, "Blk/90": 0.25, "K Hdrs/90": 0.75,
		"NP-xG/90": 0.4, "ShT/90": 1.1,
		"xA/90": 0.2, "Ch C/90": 0.3, "OP-Crs C/90": 0.1, "Pr passes/90": 4, "K Ps/90": 1,
		"xGP/90": 0.6, "Saves/90": 2.4,
	})}}

	out := Derive(table)
	stats := out.Players[0].Stats

	assert.InDelta(t, 1+0.5+2+3+3+0.25+0.75, stats[types.ColDefensiveActions], 1e-9)
	assert.InDelta(t, 0.4+1.1+0.75, stats[types.ColAttackingActions], 1e-9)
	assert.InDelta(t, 0.2+0.3+0.1+4+1, stats[types.ColCreatingActions], 1e-9)
	assert.InDelta(t, 3.0, stats[types.ColGoalkeepingActions], 1e-9)
}

func TestDerive_RolesArePercentilesOfTheTable(t *testing.T) {
	table := &types.Table{Players: []types.Player{
		player("Low", map[string]float64{"Asts/90": 0.1}),
		player("Mid", map[string]float64{"Asts/90": 0.2}),
		player("High", map[string]float64{"Asts/90": 0.4}),
		player("Top", map[string]float64{"Asts/90": 0.8}),
	}}

	out := Derive(table)

	assert.Equal(t, 25.0, out.Players[0].Roles["Assister"])
	assert.Equal(t, 50.0, out.Players[1].Roles["Assister"])
	assert.Equal(t, 75.0, out.Players[2].Roles["Assister"])
	assert.Equal(t, 100.0, out.Players[3].Roles["Assister"])

	for _, p := range out.Players {
		assert.Len(t, p.Roles, len(types.RoleColumns))
		for role, score := range p.Roles {
			assert.GreaterOrEqual(t, score, 0.0, role)
			assert.LessOrEqual(t, score, 100.0, role)
		}
	}
}

func TestDerive_DoesNotMutateInput(t *testing.T) {
	table := &types.Table{Players: []types.Player{player("Solo", map[string]float64{"Tck/90": 2})}}

	out := Derive(table)

	assert.NotContains(t, table.Players[0].Stats, types.ColDefensiveActions)
	assert.Nil(t, table.Players[0].Roles)
	assert.Equal(t, 2.0, out.Players[0].Stats[types.ColDefensiveActions])
}

func TestDerive_SubsetRescores(t *testing.T) {
	full := Derive(&types.Table{Players: []types.Player{
		player("A", map[string]float64{"Svh": 1}),
		player("B", map[string]float64{"Svh": 2}),
		player("C", map[string]float64{"Svh": 3}),
	}})
	assert.InDelta(t, 66.67, full.Players[1].Roles["Goalkeeper"], 1e-9)

	subset := Derive(full.Derive(full.Players[:2]))
	assert.Equal(t, 100.0, subset.Players[1].Roles["Goalkeeper"])
}

func TestRoles(t *testing.T) {
	defs := Roles()
	require.Len(t, defs, len(types.RoleColumns))

	for i, r := range defs {
		assert.Equal(t, types.RoleColumns[i], r.Name)
		for _, sw := range r.Weights {
			assert.True(t, types.KindOf(sw.Stat).Numeric(), "%s uses unknown column %s", r.Name, sw.Stat)
			assert.Greater(t, sw.Weight, 0.0)
		}
	}

	defs[0].Weights[0].Weight = 99
	assert.Equal(t, 0.3, Roles()[0].Weights[0].Weight)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 66.67, Round2(200.0/3))
	assert.Equal(t, 12.0, Round2(12))
}
