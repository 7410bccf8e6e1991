// Package metrics derives cumulative action columns and role percentile scores.
package metrics

import (
	"math"
	"sort"

	"github.com/jonathan/fm-scout/internal/types"
)

// Derive returns a copy of table with the cumulative action columns and role
// scores recomputed against that table's own distribution.
func Derive(table *types.Table) *types.Table {
	out := table.Clone()
	for i := range out.Players {
		addCumulative(&out.Players[i])
	}

	n := len(out.Players)
	raw := make([]float64, n)
	for _, role := range roles {
		for i := range out.Players {
			raw[i] = Score(&out.Players[i], role.Weights)
		}
		for i, pct := range PercentileRanks(raw) {
			p := &out.Players[i]
			if p.Roles == nil {
				p.Roles = make(map[string]float64, len(roles))
			}
			p.Roles[role.Name] = Round2(pct)
		}
	}
	return out
}

func addCumulative(p *types.Player) {
	if p.Stats == nil {
		p.Stats = make(map[string]float64, len(cumulativeColumns))
	}
	for _, c := range cumulativeColumns {
		total := 0.0
		for _, t := range c.terms {
			total += t.coef * p.Stats[t.column]
		}
		p.Stats[c.column] = total
	}
}

// Score is the dot product of a player's column values with weights.
func Score(p *types.Player, weights types.Weights) float64 {
	total := 0.0
	for _, sw := range weights {
		v, _ := p.Value(sw.Stat)
		total += v * sw.Weight
	}
	return total
}

// PercentileRanks returns, for every value, its percentile rank within values.
// Ties are averaged: a value's rank is the mean of the share strictly below it
// and the share at or below it, with the value itself counted once.
func PercentileRanks(values []float64) []float64 {
	n := len(values)
	out := make([]float64, n)
	if n == 0 {
		return out
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	for i, x := range values {
		left := sort.SearchFloat64s(sorted, x)
		right := sort.Search(n, func(j int) bool { return sorted[j] > x })
		plus1 := 0
		if left < right {
			plus1 = 1
		}
		out[i] = float64(left+right+plus1) * 50 / float64(n)
	}
	return out
}

// Round2 rounds x to two decimal places.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}
