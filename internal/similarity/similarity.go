// Package similarity compares players by the cosine similarity of their stat vectors.
package similarity

import (
	"math"
	"sort"

	"github.com/jonathan/fm-scout/internal/types"
)

// Similar ranks every candidate by how closely its values over stats point in
// the same direction as the named reference player's. Scores lie in [-1, 1];
// a zero vector on either side scores 0.
func Similar(candidates, reference *types.Table, name string, stats []string) (*types.SimilarityTable, error) {
	if err := Validate(stats); err != nil {
		return nil, err
	}

	matches := reference.Find(name)
	switch len(matches) {
	case 0:
		return nil, &NotFoundError{Name: name}
	case 1:
	default:
		return nil, &AmbiguousError{Name: name, Matches: len(matches)}
	}

	ref := Vector(&reference.Players[matches[0]], stats)

	out := &types.SimilarityTable{
		Reference: name,
		Stats:     append([]string(nil), stats...),
		Rows:      make([]types.SimilarPlayer, 0, candidates.Len()),
	}
	for i := range candidates.Players {
		p := &candidates.Players[i]
		out.Rows = append(out.Rows, types.SimilarPlayer{
			Name:       p.Name,
			Club:       p.Club,
			Similarity: Cosine(ref, Vector(p, stats)),
		})
	}

	sort.SliceStable(out.Rows, func(i, j int) bool {
		return out.Rows[i].Similarity > out.Rows[j].Similarity
	})

	return out, nil
}

// Validate checks that stats is a non-empty list of distinct numeric columns.
func Validate(stats []string) error {
	if len(stats) == 0 {
		return &ValidationError{Err: ErrNoStats}
	}
	seen := make(map[string]bool, len(stats))
	for _, s := range stats {
		if seen[s] {
			return &ValidationError{Stat: s, Err: ErrDuplicateStat}
		}
		seen[s] = true

		kind := types.KindOf(s)
		if kind == types.KindUnknown {
			return &ValidationError{Stat: s, Err: ErrUnknownStat}
		}
		if !kind.Numeric() {
			return &ValidationError{Stat: s, Err: ErrNonNumericStat}
		}
	}
	return nil
}

// Vector returns the player's values over stats, in order.
func Vector(p *types.Player, stats []string) []float64 {
	v := make([]float64, len(stats))
	for i, s := range stats {
		v[i], _ = p.Value(s)
	}
	return v
}

// Cosine returns the cosine similarity of two equal-length vectors.
func Cosine(a, b []float64) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	c := dot / (math.Sqrt(na) * math.Sqrt(nb))
	// Rounding can push parallel vectors just past the bounds.
	return math.Max(-1, math.Min(1, c))
}
