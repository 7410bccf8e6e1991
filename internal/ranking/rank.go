// Package ranking rates players by a weighted combination of their stats.
package ranking

import (
	"math"
	"sort"

	"github.com/jonathan/fm-scout/internal/metrics"
	"github.com/jonathan/fm-scout/internal/types"
)

// ConstantRating is given to every player when all raw ratings are equal,
// since min-max scaling has no range to spread them over.
const ConstantRating = 0.0

// Rank rates every player of table by weights and returns them best first.
// Raw ratings are the weighted mean of each player's stats, with inverse stats
// negated, rescaled so the best player gets 100 and the worst 0.
// The table is not modified.
func Rank(table *types.Table, weights types.Weights) (*types.RankedTable, error) {
	if err := Validate(weights); err != nil {
		return nil, err
	}

	out := &types.RankedTable{
		SourceID: table.ID,
		Weights:  append(types.Weights(nil), weights...),
		Stats:    weights.Stats(),
		Rows:     []types.RankedPlayer{},
	}
	if table.Len() == 0 {
		return out, nil
	}

	total := weights.Total()
	raw := make([]float64, table.Len())
	for i := range table.Players {
		p := &table.Players[i]
		sum := 0.0
		for _, sw := range weights {
			v, _ := p.Value(sw.Stat)
			if IsInverse(sw.Stat) {
				v = -v
			}
			sum += v * sw.Weight
		}
		raw[i] = sum / total * 100
	}

	ratings := minMaxScale(raw)
	for i := range table.Players {
		p := &table.Players[i]
		row := types.RankedPlayer{
			Name:     p.Name,
			Club:     p.Club,
			Age:      p.Age,
			Position: clonePositions(p.Position),
			Rating:   ratings[i],
			Stats:    make(map[string]float64, len(weights)),
		}
		for _, sw := range weights {
			row.Stats[sw.Stat], _ = p.Value(sw.Stat)
		}
		out.Rows = append(out.Rows, row)
	}

	sort.SliceStable(out.Rows, func(i, j int) bool {
		return out.Rows[i].Rating > out.Rows[j].Rating
	})

	return out, nil
}

// Validate checks a weight mapping against the table schema.
func Validate(weights types.Weights) error {
	if len(weights) == 0 {
		return &ValidationError{Err: ErrNoWeights}
	}

	seen := make(map[string]bool, len(weights))
	for _, sw := range weights {
		if seen[sw.Stat] {
			return &ValidationError{Stat: sw.Stat, Weight: sw.Weight, Err: ErrDuplicateStat}
		}
		seen[sw.Stat] = true

		kind := types.KindOf(sw.Stat)
		if kind == types.KindUnknown {
			return &ValidationError{Stat: sw.Stat, Weight: sw.Weight, Err: ErrUnknownStat}
		}
		if !kind.Numeric() {
			return &ValidationError{Stat: sw.Stat, Weight: sw.Weight, Err: ErrNonNumericStat}
		}
		if !(sw.Weight > 0) || math.IsInf(sw.Weight, 0) {
			return &ValidationError{Stat: sw.Stat, Weight: sw.Weight, Err: ErrNonPositiveWeight}
		}
	}
	return nil
}

// minMaxScale maps values linearly onto [0, 100], rounded to two decimals.
func minMaxScale(values []float64) []float64 {
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	out := make([]float64, len(values))
	span := hi - lo
	for i, v := range values {
		if span == 0 {
			out[i] = ConstantRating
			continue
		}
		out[i] = metrics.Round2((v - lo) / span * 100)
	}
	return out
}

func clonePositions(s types.PositionSet) types.PositionSet {
	c := make(types.PositionSet, len(s))
	for k := range s {
		c[k] = struct{}{}
	}
	return c
}
