package types

import "github.com/go-playground/validator/v10"

// Default age bounds used by the dashboard filter.
const (
	DefaultMinAge = 14
	DefaultMaxAge = 55
)

// Criteria selects players for the filtered view. Empty lists and zero bounds mean "any".
type Criteria struct {
	Nationalities []string `json:"nationalities,omitempty"`
	Divisions     []string `json:"divisions,omitempty"`
	Positions     []string `json:"positions,omitempty" validate:"dive,required"`
	MinAge        int      `json:"min_age,omitempty" validate:"gte=0"`
	MaxAge        int      `json:"max_age,omitempty" validate:"omitempty,gtefield=MinAge"`
	MinSalary     int64    `json:"min_salary,omitempty" validate:"gte=0"`
	MaxSalary     int64    `json:"max_salary,omitempty" validate:"omitempty,gtefield=MinSalary"`
	MinApps       int      `json:"min_apps,omitempty" validate:"gte=0"`
	MinMinutes    float64  `json:"min_minutes,omitempty" validate:"gte=0"`
}

// Validate validates the Criteria using the validator.
func (c *Criteria) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// StatEntry is a name/value pair used in squad summaries.
type StatEntry struct {
	Name     string      `json:"name"`
	Position PositionSet `json:"position"`
	Value    int64       `json:"value"`
}

// PositionDepth is the number of squad players able to play a pitch position.
type PositionDepth struct {
	Position string `json:"position"`
	Depth    int    `json:"depth"`
}

// SquadSummary is the squad analyzer's overview.
type SquadSummary struct {
	TotalPlayers      int             `json:"total_players"`
	AverageAge        float64         `json:"average_age"`
	TotalSalary       int64           `json:"total_salary"`
	TopSalaries       []StatEntry     `json:"top_salaries"`
	TopTransferValues []StatEntry     `json:"top_transfer_values"`
	Depth             []PositionDepth `json:"depth"`
}
