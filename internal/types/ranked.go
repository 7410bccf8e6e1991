package types

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// StatWeight is one entry of a caller-supplied weighting.
type StatWeight struct {
	Stat   string  `json:"stat"`
	Weight float64 `json:"weight"`
}

// Weights is an ordered stat -> weight mapping; order determines output column order.
type Weights []StatWeight

// Stats returns the stat names in order.
func (w Weights) Stats() []string {
	out := make([]string, len(w))
	for i, sw := range w {
		out[i] = sw.Stat
	}
	return out
}

// Total returns the sum of all weights.
func (w Weights) Total() float64 {
	total := 0.0
	for _, sw := range w {
		total += sw.Weight
	}
	return total
}

// ParseWeights parses "stat=weight" pairs separated by semicolons,
// e.g. "Gls/90=0.5;Tck/90=0.5". Stat names may contain commas and spaces.
func ParseWeights(s string) (Weights, error) {
	var out Weights
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		i := strings.LastIndex(part, "=")
		if i <= 0 {
			return nil, fmt.Errorf("invalid weight %q: expected stat=weight", part)
		}
		w, err := strconv.ParseFloat(strings.TrimSpace(part[i+1:]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid weight %q: %w", part, err)
		}
		out = append(out, StatWeight{Stat: strings.TrimSpace(part[:i]), Weight: w})
	}
	return out, nil
}

// RankedPlayer is one row of a ranking result.
type RankedPlayer struct {
	Name     string             `json:"name"`
	Club     string             `json:"club"`
	Age      int                `json:"age"`
	Position PositionSet        `json:"position"`
	Rating   float64            `json:"rating"`
	Stats    map[string]float64 `json:"stats"`
}

// RankedTable is the output of a ranking call. Ratings are only meaningful
// for the source table and weights recorded here.
type RankedTable struct {
	SourceID uuid.UUID      `json:"source_id"`
	Weights  Weights        `json:"weights"`
	Stats    []string       `json:"stats"`
	Rows     []RankedPlayer `json:"rows"`
}

// SimilarPlayer is one row of a similarity result.
type SimilarPlayer struct {
	Name       string  `json:"name"`
	Club       string  `json:"club,omitempty"`
	Similarity float64 `json:"similarity"`
}

// SimilarityTable is the output of a similarity call.
type SimilarityTable struct {
	Reference string          `json:"reference"`
	Stats     []string        `json:"stats"`
	Rows      []SimilarPlayer `json:"rows"`
}
