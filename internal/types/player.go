package types

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Origin identifies which kind of export a table was loaded from.
type Origin string

const (
	// OriginScouting is a scouting-report export of prospective players.
	OriginScouting Origin = "scouting"
	// OriginSquad is an export of the user's own squad.
	OriginSquad Origin = "squad"
)

// PositionSet is the set of role codes a player can occupy.
type PositionSet map[string]struct{}

// NewPositionSet builds a set from role codes.
func NewPositionSet(codes ...string) PositionSet {
	s := make(PositionSet, len(codes))
	for _, c := range codes {
		s[c] = struct{}{}
	}
	return s
}

// Has reports whether the set contains code.
func (s PositionSet) Has(code string) bool {
	_, ok := s[code]
	return ok
}

// Intersects reports whether any of codes is in the set.
func (s PositionSet) Intersects(codes []string) bool {
	for _, c := range codes {
		if s.Has(c) {
			return true
		}
	}
	return false
}

// Sorted returns the role codes in lexical order.
func (s PositionSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// MarshalJSON encodes the set as a sorted array.
func (s PositionSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

// UnmarshalJSON decodes an array of role codes.
func (s *PositionSet) UnmarshalJSON(data []byte) error {
	var codes []string
	if err := json.Unmarshal(data, &codes); err != nil {
		return err
	}
	*s = NewPositionSet(codes...)
	return nil
}

// Player is one normalized row of an export.
type Player struct {
	Name          string      `json:"name"`
	Style         string      `json:"style,omitempty"`
	Nationality   string      `json:"nationality,omitempty"`
	Personality   string      `json:"personality,omitempty"`
	Club          string      `json:"club,omitempty"`
	Division      string      `json:"division,omitempty"`
	PreferredFoot string      `json:"preferred_foot,omitempty"`
	Position      PositionSet `json:"position"`
	Age           int         `json:"age"`
	Height        float64     `json:"height"` // metres
	Weight        float64     `json:"weight"` // kilograms
	Salary        int64       `json:"salary"`
	TransferValue int64       `json:"transfer_value"`
	Apps          int         `json:"apps"`
	Expires       time.Time   `json:"expires"`
	// Stats holds raw performance statistics and the cumulative action columns, keyed by column name.
	Stats map[string]float64 `json:"stats"`
	// Roles holds role percentile scores (0-100) relative to the table they were derived on.
	Roles map[string]float64 `json:"roles,omitempty"`
}

// Value returns the numeric value of a column for this player.
// The second result is false when the column is unknown or not numeric.
func (p *Player) Value(column string) (float64, bool) {
	switch KindOf(column) {
	case KindInt:
		return float64(p.Age), true
	case KindHeight:
		return p.Height, true
	case KindWeight:
		return p.Weight, true
	case KindSalary:
		return float64(p.Salary), true
	case KindMoney:
		return float64(p.TransferValue), true
	case KindApps:
		return float64(p.Apps), true
	case KindStat, KindDerived:
		return p.Stats[column], true
	case KindRole:
		return p.Roles[column], true
	default:
		return 0, false
	}
}

// Clone returns a deep copy of the player.
func (p *Player) Clone() Player {
	c := *p
	c.Position = make(PositionSet, len(p.Position))
	for k := range p.Position {
		c.Position[k] = struct{}{}
	}
	c.Stats = make(map[string]float64, len(p.Stats))
	for k, v := range p.Stats {
		c.Stats[k] = v
	}
	if p.Roles != nil {
		c.Roles = make(map[string]float64, len(p.Roles))
		for k, v := range p.Roles {
			c.Roles[k] = v
		}
	}
	return c
}

// Issue records a cell that could not be parsed and was replaced by a fallback value.
type Issue struct {
	Row     int    `json:"row"`
	Player  string `json:"player,omitempty"`
	Column  string `json:"column"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

// Table is an ordered collection of players loaded from a single export.
type Table struct {
	ID       uuid.UUID `json:"id"`
	Origin   Origin    `json:"origin"`
	Source   string    `json:"source,omitempty"`
	LoadedAt time.Time `json:"loaded_at"`
	Players  []Player  `json:"players"`
	Issues   []Issue   `json:"issues,omitempty"`
}

// Len returns the number of players.
func (t *Table) Len() int {
	return len(t.Players)
}

// Find returns the indexes of all players with the given name.
func (t *Table) Find(name string) []int {
	var idx []int
	for i := range t.Players {
		if t.Players[i].Name == name {
			idx = append(idx, i)
		}
	}
	return idx
}

// Derive returns a copy of the table sharing its identity and holding the given players.
func (t *Table) Derive(players []Player) *Table {
	return &Table{
		ID:       t.ID,
		Origin:   t.Origin,
		Source:   t.Source,
		LoadedAt: t.LoadedAt,
		Players:  players,
		Issues:   t.Issues,
	}
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	players := make([]Player, len(t.Players))
	for i := range t.Players {
		players[i] = t.Players[i].Clone()
	}
	c := t.Derive(players)
	c.Issues = append([]Issue(nil), t.Issues...)
	return c
}

// RawTable is the string-typed table extracted from an export's markup.
type RawTable struct {
	Columns []string
	Rows    [][]string
}

// Index returns the position of column, or -1.
func (r *RawTable) Index(column string) int {
	for i, c := range r.Columns {
		if c == column {
			return i
		}
	}
	return -1
}

// Cell returns the value at row/column, or "" when the row is short.
func (r *RawTable) Cell(row, col int) string {
	if col < 0 || col >= len(r.Rows[row]) {
		return ""
	}
	return r.Rows[row][col]
}
