// Package filter selects subsets of a player table.
package filter

import (
	"fmt"
	"sort"

	"github.com/jonathan/fm-scout/internal/types"
)

// Predicate decides whether a player is kept.
type Predicate func(p *types.Player) bool

// Where returns a copy of table holding the players pred keeps, in table order.
// Kept players are deep copies; role scores still refer to the source table.
func Where(table *types.Table, pred Predicate) *types.Table {
	kept := make([]types.Player, 0, table.Len())
	for i := range table.Players {
		if pred(&table.Players[i]) {
			kept = append(kept, table.Players[i].Clone())
		}
	}
	return table.Derive(kept)
}

// DefaultCriteria matches every player in the default age window.
func DefaultCriteria() types.Criteria {
	return types.Criteria{MinAge: types.DefaultMinAge, MaxAge: types.DefaultMaxAge}
}

// Apply validates c and filters table by it.
func Apply(table *types.Table, c types.Criteria) (*types.Table, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid filter criteria: %w", err)
	}
	return Where(table, Match(c)), nil
}

// Match builds the predicate for c. Empty lists and zero upper bounds match anything.
func Match(c types.Criteria) Predicate {
	nats := toSet(c.Nationalities)
	divs := toSet(c.Divisions)

	return func(p *types.Player) bool {
		if len(nats) > 0 && !nats[p.Nationality] {
			return false
		}
		if len(divs) > 0 && !divs[p.Division] {
			return false
		}
		if len(c.Positions) > 0 && !p.Position.Intersects(c.Positions) {
			return false
		}
		if p.Age < c.MinAge || (c.MaxAge > 0 && p.Age > c.MaxAge) {
			return false
		}
		if p.Salary < c.MinSalary || (c.MaxSalary > 0 && p.Salary > c.MaxSalary) {
			return false
		}
		if p.Apps < c.MinApps {
			return false
		}
		return p.Stats[types.ColMinutes] >= c.MinMinutes
	}
}

func toSet(values []string) map[string]bool {
	s := make(map[string]bool, len(values))
	for _, v := range values {
		s[v] = true
	}
	return s
}

// Facets summarises the values a dashboard offers as filter choices.
type Facets struct {
	Nationalities  []string `json:"nationalities"`
	Divisions      []string `json:"divisions"`
	MinSalary      int64    `json:"min_salary"`
	MaxSalary      int64    `json:"max_salary"`
	AverageMinutes float64  `json:"average_minutes"`
}

// FacetsOf collects the distinct nationalities and divisions of table, its salary
// range and the mean minutes played.
func FacetsOf(table *types.Table) Facets {
	f := Facets{Nationalities: []string{}, Divisions: []string{}}
	if table.Len() == 0 {
		return f
	}

	nats := make(map[string]bool)
	divs := make(map[string]bool)
	f.MinSalary = table.Players[0].Salary
	f.MaxSalary = table.Players[0].Salary
	minutes := 0.0

	for i := range table.Players {
		p := &table.Players[i]
		if p.Nationality != "" && !nats[p.Nationality] {
			nats[p.Nationality] = true
			f.Nationalities = append(f.Nationalities, p.Nationality)
		}
		if p.Division != "" && !divs[p.Division] {
			divs[p.Division] = true
			f.Divisions = append(f.Divisions, p.Division)
		}
		f.MinSalary = min(f.MinSalary, p.Salary)
		f.MaxSalary = max(f.MaxSalary, p.Salary)
		minutes += p.Stats[types.ColMinutes]
	}

	sort.Strings(f.Nationalities)
	sort.Strings(f.Divisions)
	f.AverageMinutes = minutes / float64(table.Len())
	return f
}
