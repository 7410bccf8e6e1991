package ranking

import (
	"github.com/jonathan/fm-scout/internal/filter"
	"github.com/jonathan/fm-scout/internal/metrics"
	"github.com/jonathan/fm-scout/internal/types"
)

// Query is a ranking over a filtered view of a table.
type Query struct {
	// Weights to rank by. When empty the preset's weights are used.
	Weights types.Weights `json:"weights,omitempty"`
	// Preset names a recommended weighting. Its positions restrict the players
	// ranked unless Criteria already lists positions.
	Preset   string          `json:"preset,omitempty"`
	Criteria *types.Criteria `json:"criteria,omitempty"`
	// Rescore recomputes role percentiles against the filtered players.
	Rescore bool `json:"rescore,omitempty"`
	// Limit keeps only the best Limit rows. Zero keeps all.
	Limit int `json:"limit,omitempty"`
}

// Run applies q to table. The table is not modified.
func Run(table *types.Table, q Query) (*types.RankedTable, error) {
	weights := q.Weights
	var criteria types.Criteria
	if q.Criteria != nil {
		criteria = *q.Criteria
	}

	if q.Preset != "" {
		preset, ok := LookupPreset(q.Preset)
		if !ok {
			return nil, &ValidationError{Stat: q.Preset, Err: ErrUnknownPreset}
		}
		if len(weights) == 0 {
			weights = preset.Weights
		}
		if len(criteria.Positions) == 0 {
			criteria.Positions = preset.Positions
		}
	}

	view, err := filter.Apply(table, criteria)
	if err != nil {
		return nil, err
	}
	if q.Rescore {
		view = metrics.Derive(view)
	}

	ranked, err := Rank(view, weights)
	if err != nil {
		return nil, err
	}
	if q.Limit > 0 && len(ranked.Rows) > q.Limit {
		ranked.Rows = ranked.Rows[:q.Limit]
	}
	return ranked, nil
}
