package ranking

import (
	"strings"

	"github.com/jonathan/fm-scout/internal/types"
)

// Preset is a recommended stat weighting for one position group.
type Preset struct {
	Name      string        `json:"name"`
	Label     string        `json:"label"`
	Positions []string      `json:"positions"`
	Weights   types.Weights `json:"weights"`
}

func sw(stat string, weight float64) types.StatWeight {
	return types.StatWeight{Stat: stat, Weight: weight}
}

var presets = []Preset{
	{"goalkeeper", "Goalkeeper (GK)", []string{"GK"}, types.Weights{
		sw("Sv %", 0.95), sw("Saves/90", 0.85), sw("Cln/90", 0.75), sw("Pens Saved", 0.70),
		sw("xGP", 0.60), sw("All/90", 0.50), sw("Shutouts", 0.65),
	}},
	{"centre-back", "Centre Back (CB)", []string{"DC"}, types.Weights{
		sw("Hdr %", 0.90), sw("Clr/90", 0.85), sw("Tck/90", 0.80), sw("Int/90", 0.75),
		sw("Blk/90", 0.70), sw("Hdrs W/90", 0.65), sw("Yel", 0.30),
	}},
	{"fullback", "Fullback (FB/WB)", []string{"DL", "DR", "WBL", "WBR"}, types.Weights{
		sw("Crs A/90", 0.85), sw("Drb/90", 0.75), sw("Tck/90", 0.70), sw("Int/90", 0.65),
		sw("OP-KP/90", 0.60), sw("Ps C/90", 0.55), sw("Pas %", 0.50),
	}},
	{"defensive-mid", "Defensive Mid (DM)", []string{"DM"}, types.Weights{
		sw("Tck/90", 0.90), sw("Int/90", 0.85), sw("Pr passes/90", 0.70), sw("Pas %", 0.65),
		sw("Blk/90", 0.60), sw("K Tck/90", 0.55), sw("Fls", 0.40),
	}},
	{"centre-mid", "Centre Mid (CM)", []string{"MC"}, types.Weights{
		sw("xA/90", 0.80), sw("Pr passes/90", 0.75), sw("Int/90", 0.70), sw("Ps C/90", 0.65),
		sw("K Ps/90", 0.60), sw("Tck/90", 0.55), sw("Drb/90", 0.50),
	}},
	{"attacking-mid", "Attacking Mid (AM)", []string{"AMC"}, types.Weights{
		sw("xA/90", 0.90), sw("OP-KP/90", 0.85), sw("Ch C/90", 0.75), sw("Drb/90", 0.70),
		sw("Gls/90", 0.65), sw("xG/90", 0.60), sw("Pas %", 0.50),
	}},
	{"winger", "Winger (LW/RW)", []string{"AML", "AMR", "ML", "MR"}, types.Weights{
		sw("Crs A/90", 0.90), sw("xA/90", 0.85), sw("Drb/90", 0.80), sw("OP-KP/90", 0.75),
		sw("Gls/90", 0.60), sw("Shot %", 0.50), sw("Tck/90", 0.45),
	}},
	{"striker", "Striker (ST)", []string{"STC"}, types.Weights{
		sw("xG/90", 1.00), sw("Gls/90", 0.95), sw("Conv %", 0.85), sw("xG/shot", 0.80),
		sw("ShT/90", 0.75), sw("Asts/90", 0.60), sw("Shot %", 0.55),
	}},
}

// Presets returns the recommended weightings in pitch order.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	for i, p := range presets {
		out[i] = copyPreset(p)
	}
	return out
}

// LookupPreset finds a preset by name, case-insensitively.
func LookupPreset(name string) (Preset, bool) {
	for _, p := range presets {
		if strings.EqualFold(p.Name, strings.TrimSpace(name)) {
			return copyPreset(p), true
		}
	}
	return Preset{}, false
}

func copyPreset(p Preset) Preset {
	p.Positions = append([]string(nil), p.Positions...)
	p.Weights = append(types.Weights(nil), p.Weights...)
	return p
}
