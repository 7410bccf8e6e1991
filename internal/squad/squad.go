// Package squad summarises the user's own squad.
package squad

import (
	"math"
	"sort"

	"github.com/jonathan/fm-scout/internal/types"
)

// DefaultTopN is the number of players listed in each top list.
const DefaultTopN = 5

// PitchPositions are the positions counted for squad depth, goalkeeper first.
var PitchPositions = []string{
	"GK", "DC", "DL", "DR", "WBL", "DM", "WBR", "MC", "ML", "MR", "AML", "AMR", "AMC", "STC",
}

// Summarize reports squad size, average age, wage bill, the topN earners and most
// valuable players, and how many players can cover each pitch position.
func Summarize(table *types.Table, topN int) *types.SquadSummary {
	if topN <= 0 {
		topN = DefaultTopN
	}

	s := &types.SquadSummary{
		TotalPlayers:      table.Len(),
		TopSalaries:       top(table, topN, func(p *types.Player) int64 { return p.Salary }),
		TopTransferValues: top(table, topN, func(p *types.Player) int64 { return p.TransferValue }),
		Depth:             Depth(table),
	}

	ages := 0
	for i := range table.Players {
		ages += table.Players[i].Age
		s.TotalSalary += table.Players[i].Salary
	}
	if s.TotalPlayers > 0 {
		s.AverageAge = math.Round(float64(ages)/float64(s.TotalPlayers)*10) / 10
	}

	return s
}

// Depth counts the players able to play each pitch position.
func Depth(table *types.Table) []types.PositionDepth {
	out := make([]types.PositionDepth, len(PitchPositions))
	for i, pos := range PitchPositions {
		out[i].Position = pos
		for j := range table.Players {
			if table.Players[j].Position.Has(pos) {
				out[i].Depth++
			}
		}
	}
	return out
}

func top(table *types.Table, n int, value func(p *types.Player) int64) []types.StatEntry {
	entries := make([]types.StatEntry, 0, table.Len())
	for i := range table.Players {
		p := &table.Players[i]
		entries = append(entries, types.StatEntry{
			Name:     p.Name,
			Position: p.Position,
			Value:    value(p),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Value > entries[j].Value
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
