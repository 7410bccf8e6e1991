package squad

import (
	"fmt"
	"testing"

	"github.com/jonathan/fm-scout/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func squadTable() *types.Table {
	mk := func(name string, age int, salary, value int64, pos ...string) types.Player {
		return types.Player{Name: name, Age: age, Salary: salary, TransferValue: value, Position: types.NewPositionSet(pos...)}
	}
	return &types.Table{Origin: types.OriginSquad, Players: []types.Player{
		mk("Keeper", 31, 20000, 2_000_000, "GK"),
		mk("Stopper", 24, 15000, 9_000_000, "DC"),
		mk("Fullback", 22, 8000, 4_000_000, "DL", "WBL", "ML"),
		mk("Anchor", 28, 15000, 6_000_000, "DM", "MC"),
		mk("Ten", 26, 30000, 25_000_000, "AMC", "MC"),
		mk("Winger", 20, 6000, 8_000_000, "AML", "AMR"),
		mk("Nine", 29, 25000, 1_000_000_000, "STC"),
	}}
}

func TestSummarize(t *testing.T) {
	s := Summarize(squadTable(), 3)

	assert.Equal(t, 7, s.TotalPlayers)
	assert.Equal(t, 25.7, s.AverageAge)
	assert.Equal(t, int64(119000), s.TotalSalary)

	require.Len(t, s.TopSalaries, 3)
	assert.Equal(t, "Ten", s.TopSalaries[0].Name)
	assert.Equal(t, int64(30000), s.TopSalaries[0].Value)
	assert.Equal(t, "Nine", s.TopSalaries[1].Name)
	assert.Equal(t, "Keeper", s.TopSalaries[2].Name)

	require.Len(t, s.TopTransferValues, 3)
	assert.Equal(t, []string{"Nine", "Ten", "Stopper"},
		[]string{s.TopTransferValues[0].Name, s.TopTransferValues[1].Name, s.TopTransferValues[2].Name})
}

func TestSummarize_TiesKeepSquadOrder(t *testing.T) {
	s := Summarize(squadTable(), 5)
	assert.Equal(t, "Stopper", s.TopSalaries[3].Name)
	assert.Equal(t, "Anchor", s.TopSalaries[4].Name)
}

func TestSummarize_DefaultTopN(t *testing.T) {
	s := Summarize(squadTable(), 0)
	assert.Len(t, s.TopSalaries, DefaultTopN)
}

func TestSummarize_EmptySquad(t *testing.T) {
	s := Summarize(&types.Table{}, 5)
	assert.Equal(t, 0, s.TotalPlayers)
	assert.Equal(t, 0.0, s.AverageAge)
	assert.Empty(t, s.TopSalaries)
	assert.Len(t, s.Depth, len(PitchPositions))
}

func TestDepth(t *testing.T) {
	depth := Depth(squadTable())
	require.Len(t, depth, 14)

	got := make(map[string]int, len(depth))
	for _, d := range depth {
		got[d.Position] = d.Depth
	}

	expected := map[string]int{
		"GK": 1, "DC": 1, "DL": 1, "DR": 0, "WBL": 1, "DM": 1, "WBR": 0,
		"MC": 2, "ML": 1, "MR": 0, "AML": 1, "AMR": 1, "AMC": 1, "STC": 1,
	}
	for pos, want := range expected {
		assert.Equal(t, want, got[pos], fmt.Sprintf("depth at %s", pos))
	}
	assert.Equal(t, "GK", depth[0].Position)
}
