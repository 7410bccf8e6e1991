// Package types provides type definitions for the player tables that flow through the scouting pipeline.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "slices"

// ColumnKind is the semantic type of a table column.
type ColumnKind int

// Column kinds, in the order the normalizer handles them.
const (
	KindUnknown ColumnKind = iota
	KindIdentity
	KindText
	KindPosition
	KindInt
	KindHeight
	KindWeight
	KindDate
	KindSalary
	KindMoney
	KindApps
	KindStat
	KindDerived
	KindRole
)

// String returns a short name for the kind.
func (k ColumnKind) String() string {
	switch k {
	case KindIdentity:
		return "identity"
	case KindText:
		return "text"
	case KindPosition:
		return "position"
	case KindInt:
		return "int"
	case KindHeight:
		return "height"
	case KindWeight:
		return "weight"
	case KindDate:
		return "date"
	case KindSalary:
		return "salary"
	case KindMoney:
		return "money"
	case KindApps:
		return "apps"
	case KindStat:
		return "stat"
	case KindDerived:
		return "derived"
	case KindRole:
		return "role"
	default:
		return "unknown"
	}
}

// Numeric reports whether values of this kind can be weighted or compared as vectors.
func (k ColumnKind) Numeric() bool {
	switch k {
	case KindInt, KindHeight, KindWeight, KindSalary, KindMoney, KindApps, KindStat, KindDerived, KindRole:
		return true
	default:
		return false
	}
}

// Raw column names with bespoke handling.
const (
	ColName          = "Name"
	ColStyle         = "Style"
	ColNationality   = "Nat"
	ColPersonality   = "Personality"
	ColClub          = "Club"
	ColDivision      = "Division"
	ColPosition      = "Position"
	ColAge           = "Age"
	ColHeight        = "Height"
	ColWeight        = "Weight"
	ColPreferredFoot = "Preferred Foot"
	ColExpires       = "Expires"
	ColSalary        = "Salary"
	ColTransferValue = "Transfer Value"
	ColApps          = "Apps"
	ColMinutes       = "Mins"
)

// Cumulative per-90 columns appended by the metric deriver.
const (
	ColDefensiveActions   = "Defensive Actions/90"
	ColAttackingActions   = "Attacking Actions/90"
	ColCreatingActions    = "Creating Actions/90"
	ColGoalkeepingActions = "Goalkeeping Actions/90"
)

// SquadOnlyColumns appear only in squad exports and are dropped before normalization.
var SquadOnlyColumns = []string{"Inf", "Rec"}

// IdentityColumns form the identity group joined back onto the stats group by Name.
var IdentityColumns = []string{ColName, ColStyle, ColNationality, ColPersonality, ColClub, ColDivision}

// StatColumns lists every numeric performance statistic in export order.
var StatColumns = []string{
	"Mins", "Mins/Gm", "Av Rat", "PoM", "Distance", "Dist/90", "Poss Won/90", "Poss Lost/90",
	"Gwin", "Pts/Gm", "Tgls/90", "Tcon/90", "Gls", "Gls/90", "Conv %", "Mins/Gl", "Last Gl",
	"xG", "xG/90", "xG-OP", "NP-xG", "NP-xG/90", "Shots", "Shot/90", "xG/shot", "ShT", "ShT/90",
	"Shot %", "Shots Outside Box/90", "Goals Outside Box", "Pens", "Pens S", "Pen/R", "Ast",
	"Asts/90", "xA", "xA/90", "Pas A", "Ps A/90", "Ps C", "Ps C/90", "Pas %", "Pr Passes",
	"Pr passes/90", "K Pas", "K Ps/90", "OP-KP", "OP-KP/90", "CCC", "Ch C/90", "Cr A", "Crs A/90",
	"Cr C", "Cr C/90", "Cr C/A", "OP-Crs A", "OP-Crs A/90", "OP-Crs C", "OP-Crs C/90", "OP-Cr %",
	"Drb", "Drb/90", "FA", "Off", "Sprints/90", "Tck A", "Tck/90", "Tck C", "Tck R", "K Tck",
	"K Tck/90", "Itc", "Int/90", "Blk", "Blk/90", "Shts Blckd", "Shts Blckd/90", "Clear", "Clr/90",
	"Fls", "Yel", "Red", "Gl Mst", "Hdrs A", "Aer A/90", "Hdrs", "Hdrs W/90", "Hdrs L/90", "Hdr %",
	"K Hdrs/90", "Pres A", "Pres A/90", "Pres C", "Pres C/90", "Shutouts", "Cln/90", "Conc",
	"All/90", "Last C", "xGP", "xGP/90", "Svh", "Svp", "Svt", "Saves/90", "Sv %", "xSv %",
	"Pens Faced", "Pens Saved", "Pens Saved Ratio",
}

// SignedStats may hold negative values: xG-OP is goals scored minus expected goals.
// Every other stat is clamped at zero during normalization.
var SignedStats = []string{"xG-OP"}

// IsSigned reports whether column is one of SignedStats.
func IsSigned(column string) bool {
	return slices.Contains(SignedStats, column)
}

// DerivedColumns are the cumulative action columns.
var DerivedColumns = []string{ColDefensiveActions, ColAttackingActions, ColCreatingActions, ColGoalkeepingActions}

// RoleColumns are the role percentile columns, one per named role.
var RoleColumns = []string{
	"Assister", "Reader", "Aerial_Threat", "Finisher", "Attacking_Forward", "Creating_Forward",
	"Attacking_Winger", "Creating_Winger", "Attacking_Midfielder", "Creative_Midfielder",
	"Attacking_Defender", "Creative_Defender", "Defensive_Defender", "Goalkeeper",
}

var schema = buildSchema()

func buildSchema() map[string]ColumnKind {
	s := map[string]ColumnKind{
		ColName:          KindIdentity,
		ColStyle:         KindIdentity,
		ColNationality:   KindIdentity,
		ColPersonality:   KindIdentity,
		ColClub:          KindIdentity,
		ColDivision:      KindIdentity,
		ColPosition:      KindPosition,
		ColAge:           KindInt,
		ColHeight:        KindHeight,
		ColWeight:        KindWeight,
		ColPreferredFoot: KindText,
		ColExpires:       KindDate,
		ColSalary:        KindSalary,
		ColTransferValue: KindMoney,
		ColApps:          KindApps,
	}
	for _, c := range StatColumns {
		s[c] = KindStat
	}
	for _, c := range DerivedColumns {
		s[c] = KindDerived
	}
	for _, c := range RoleColumns {
		s[c] = KindRole
	}
	return s
}

// KindOf returns the semantic kind of a column, or KindUnknown when the schema does not declare it.
func KindOf(column string) ColumnKind {
	return schema[column]
}

// RequiredRawColumns returns every column an export must carry, in the order they are checked.
func RequiredRawColumns() []string {
	cols := make([]string, 0, len(IdentityColumns)+10+len(StatColumns))
	cols = append(cols, IdentityColumns...)
	cols = append(cols, ColPosition, ColAge, ColHeight, ColWeight, ColPreferredFoot,
		ColExpires, ColSalary, ColTransferValue, ColApps)
	cols = append(cols, StatColumns...)
	return cols
}

// NumericColumns returns every column that ranking and similarity accept.
func NumericColumns() []string {
	cols := []string{ColAge, ColHeight, ColWeight, ColSalary, ColTransferValue, ColApps}
	cols = append(cols, StatColumns...)
	cols = append(cols, DerivedColumns...)
	cols = append(cols, RoleColumns...)
	return cols
}
