package metrics

import "github.com/jonathan/fm-scout/internal/types"

// Role is a named weighting of stat and derived columns used to score a playing style.
type Role struct {
	Name    string        `json:"name"`
	Weights types.Weights `json:"weights"`
}

type term struct {
	column string
	coef   float64
}

type cumulativeColumn struct {
	column string
	terms  []term
}

// Clearances count twice towards defensive actions.
var cumulativeColumns = []cumulativeColumn{
	{types.ColDefensiveActions, []term{
		{"Tck/90", 1}, {"K Tck/90", 1}, {"Int/90", 1}, {"Clr/90", 2}, {"Blk/90", 1}, {"K Hdrs/90", 1},
	}},
	{types.ColAttackingActions, []term{
		{"NP-xG/90", 1}, {"ShT/90", 1}, {"K Hdrs/90", 1},
	}},
	{types.ColCreatingActions, []term{
		{"xA/90", 1}, {"Ch C/90", 1}, {"OP-Crs C/90", 1}, {"Pr passes/90", 1}, {"K Ps/90", 1},
	}},
	{types.ColGoalkeepingActions, []term{
		{"xGP/90", 1}, {"Saves/90", 1},
	}},
}

func w(stat string, weight float64) types.StatWeight {
	return types.StatWeight{Stat: stat, Weight: weight}
}

var roles = []Role{
	{"Assister", types.Weights{w("Asts/90", 0.3), w("xA/90", 0.1), w("Ch C/90", 0.1)}},
	{"Reader", types.Weights{w("Poss Won/90", 0.15), w("Poss Lost/90", 0.15), w("Int/90", 0.25), w(types.ColDefensiveActions, 0.25)}},
	{"Aerial_Threat", types.Weights{w("Hdrs W/90", 0.3), w("K Hdrs/90", 0.5), w("Aer A/90", 0.2), w("NP-xG/90", 0.5)}},
	{"Finisher", types.Weights{w("NP-xG/90", 0.3), w("ShT/90", 0.3), w("Conv %", 0.1), w("xG-OP", 0.1)}},
	{"Attacking_Forward", types.Weights{
		w("Gls/90", 0.5), w("NP-xG/90", 0.5), w("ShT/90", 0.5), w("Shot %", 0.5),
		w("Asts/90", 0.3), w("xA/90", 0.3), w("Pr passes/90", 0.3), w("K Ps/90", 0.3),
	}},
	{"Creating_Forward", types.Weights{
		w("Gls/90", 0.5), w("NP-xG/90", 0.5), w("Asts/90", 0.5), w("xA/90", 0.5),
		w("Conv %", 0.5), w("Pr passes/90", 0.5), w("K Ps/90", 0.5), w("Drb/90", 0.5),
	}},
	{"Attacking_Winger", types.Weights{
		w("Gls/90", 0.5), w("NP-xG/90", 0.5), w("Asts/90", 0.5), w("K Ps/90", 0.5),
		w("Pr passes/90", 0.5), w("Shot %", 0.5), w("xA/90", 0.5), w("Drb/90", 0.5),
	}},
	{"Creating_Winger", types.Weights{
		w("Gls/90", 0.5), w("NP-xG/90", 0.5), w("Asts/90", 0.5), w("xA/90", 0.5), w("Pr passes/90", 0.5),
		w("K Pas", 0.5), w("Drb/90", 0.5), w("Ps C/90", 0.5), w("OP-Crs C/90", 0.5),
	}},
	{"Attacking_Midfielder", types.Weights{
		w("Gls/90", 0.5), w("NP-xG/90", 0.5), w("Asts/90", 0.5), w("xA/90", 0.5),
		w("Shot %", 0.5), w("ShT/90", 0.5), w("Pr passes/90", 0.5), w("Ps C/90", 0.5),
	}},
	{"Creative_Midfielder", types.Weights{
		w("Asts/90", 0.5), w("xA/90", 0.5), w("K Ps/90", 0.5), w("Pr passes/90", 0.5), w("Ps C/90", 0.5), w("Ch C/90", 0.5),
	}},
	{"Attacking_Defender", types.Weights{
		w("NP-xG/90", 0.2), w("Drb/90", 0.2), w("OP-Crs C/90", 0.6), w("xA/90", 0.6),
		w("Pr passes/90", 0.6), w(types.ColDefensiveActions, 0.8),
	}},
	{"Creative_Defender", types.Weights{
		w("Asts/90", 0.5), w("K Ps/90", 0.5), w("Int/90", 0.5), w("Pas %", 0.5), w("Cr C/90", 0.5),
	}},
	{"Defensive_Defender", types.Weights{
		w("Pas %", 0.5), w("Tck/90", 0.5), w("K Tck/90", 0.5), w("Int/90", 0.5),
		w("Blk/90", 0.5), w("Clr/90", 0.5), w("Hdrs W/90", 0.5),
	}},
	{"Goalkeeper", types.Weights{w(types.ColGoalkeepingActions, 0.5), w("Svh", 0.5), w("Svp", 0.3), w("Svt", 0.5)}},
}

// Roles returns a copy of the role definitions in scoring order.
func Roles() []Role {
	out := make([]Role, len(roles))
	for i, r := range roles {
		out[i] = Role{Name: r.Name, Weights: append(types.Weights(nil), r.Weights...)}
	}
	return out
}
