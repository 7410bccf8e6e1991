// Package normalize turns raw export tables into typed player tables.
package normalize

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/fm-scout/internal/ingestion"
	"github.com/jonathan/fm-scout/internal/metrics"
	"github.com/jonathan/fm-scout/internal/parsing"
	"github.com/jonathan/fm-scout/internal/types"
	"github.com/sirupsen/logrus"
)

// DateLayout is the day/month/year layout of the Expires column.
const DateLayout = "2/1/2006"

// DefaultFreeAgentDate is the contract expiry given to players without a club.
var DefaultFreeAgentDate = time.Date(2026, time.June, 30, 0, 0, 0, 0, time.UTC)

const placeholder = "-"

// Division names carry a sponsor prefix in some exports.
var divisionRewrites = strings.NewReplacer("cinch", "Scottish")

// Options configures a normalization pass.
type Options struct {
	// Squad marks an export of the user's own squad, which carries extra columns.
	Squad bool
	// FreeAgentDate replaces the Expires placeholder. Zero means DefaultFreeAgentDate.
	FreeAgentDate time.Time
	// Source is recorded on the resulting table.
	Source string
	Logger *logrus.Entry
}

type normalizer struct {
	opts   Options
	raw    *types.RawTable
	col    map[string]int
	logger *logrus.Entry
	issues []types.Issue
}

// identity holds the categorical fields joined back onto each stats row by name.
type identity struct {
	style, nationality, personality, club, division string
}

// Normalize converts raw into a typed table with cumulative and role columns derived.
// Cells that cannot be parsed are replaced by a fallback value and reported as issues
// on the table. A raw table missing any expected column fails with *ingestion.SchemaError.
func Normalize(raw *types.RawTable, opts Options) (*types.Table, error) {
	if opts.FreeAgentDate.IsZero() {
		opts.FreeAgentDate = DefaultFreeAgentDate
	}
	if opts.Logger == nil {
		opts.Logger = logrus.WithField("component", "normalizer")
	}

	origin := types.OriginScouting
	if opts.Squad {
		origin = types.OriginSquad
		raw = dropColumns(raw, types.SquadOnlyColumns)
	}

	if err := ingestion.ValidateColumns(raw); err != nil {
		return nil, err
	}

	n := &normalizer{opts: opts, raw: raw, logger: opts.Logger, col: make(map[string]int, len(raw.Columns))}
	for i, c := range raw.Columns {
		if _, dup := n.col[c]; !dup {
			n.col[c] = i
		}
	}

	players := n.players()

	table := &types.Table{
		ID:       uuid.New(),
		Origin:   origin,
		Source:   opts.Source,
		LoadedAt: time.Now().UTC(),
		Players:  players,
		Issues:   n.issues,
	}

	n.logger.WithFields(logrus.Fields{
		"origin":  origin,
		"players": len(players),
		"issues":  len(n.issues),
	}).Debug("Normalized export")

	return metrics.Derive(table), nil
}

func (n *normalizer) players() []types.Player {
	identities := n.identities()

	players := make([]types.Player, 0, len(n.raw.Rows))
	rows := make([]int, 0, len(n.raw.Rows))
	transferValues := make([]float64, 0, len(n.raw.Rows))
	seen := make(map[string]bool, len(n.raw.Rows))

	for row := range n.raw.Rows {
		name := n.text(row, types.ColName)
		if name == "" {
			n.warn(row, "", types.ColName, "", "row has no player name; dropped")
			continue
		}
		if seen[name] {
			n.warn(row, name, types.ColName, name, "duplicate player name; row dropped")
			continue
		}
		seen[name] = true

		p := n.player(row, name)
		if id, ok := identities[name]; ok {
			p.Style = id.style
			p.Nationality = id.nationality
			p.Personality = id.personality
			p.Club = id.club
			p.Division = id.division
		}

		players = append(players, p)
		rows = append(rows, row)
		transferValues = append(transferValues, parsing.ParseMoney(n.text(row, types.ColTransferValue)))
	}

	n.backfillTransferValues(players, rows, transferValues)
	return players
}

// identities builds the identity group keyed by name, first occurrence wins.
func (n *normalizer) identities() map[string]identity {
	out := make(map[string]identity, len(n.raw.Rows))
	for row := range n.raw.Rows {
		name := n.text(row, types.ColName)
		if _, ok := out[name]; ok || name == "" {
			continue
		}
		out[name] = identity{
			style:       n.text(row, types.ColStyle),
			nationality: n.text(row, types.ColNationality),
			personality: n.text(row, types.ColPersonality),
			club:        n.text(row, types.ColClub),
			division:    divisionRewrites.Replace(n.text(row, types.ColDivision)),
		}
	}
	return out
}

func (n *normalizer) player(row int, name string) types.Player {
	p := types.Player{
		Name:          name,
		PreferredFoot: n.text(row, types.ColPreferredFoot),
		Stats:         make(map[string]float64, len(types.StatColumns)+len(types.DerivedColumns)),
	}

	if v := n.text(row, types.ColSalary); v != "" {
		salary, err := parsing.ParseSalary(v)
		if err != nil {
			n.warn(row, name, types.ColSalary, v, err.Error())
		}
		p.Salary = salary
	}

	apps := n.stat(row, types.ColApps)
	if a, err := parsing.ParseAppearances(apps); err != nil {
		n.warn(row, name, types.ColApps, apps, err.Error())
	} else {
		p.Apps = a
	}

	for _, c := range types.StatColumns {
		v := n.stat(row, c)
		if v == "" {
			continue
		}
		f, err := parsing.ParseNumber(v)
		if err != nil {
			n.warn(row, name, c, v, err.Error())
			continue
		}
		if f < 0 && !types.IsSigned(c) {
			n.warn(row, name, c, v, "negative value clamped to 0")
			f = 0
		}
		p.Stats[c] = f
	}

	if v := n.text(row, types.ColAge); v != "" {
		age, err := parsing.ParseNumber(v)
		if err != nil {
			n.warn(row, name, types.ColAge, v, err.Error())
		}
		p.Age = int(age)
	}

	p.Height = n.float(row, name, types.ColHeight, parsing.ParseHeight)
	p.Weight = n.float(row, name, types.ColWeight, parsing.ParseNumber)
	p.Expires = n.expires(row, name)

	pos := n.text(row, types.ColPosition)
	set, skipped := parsing.ParsePositions(pos)
	for _, token := range skipped {
		n.warn(row, name, types.ColPosition, token, "unrecognised position skipped")
	}
	if len(set) == 0 {
		n.warn(row, name, types.ColPosition, pos, "player has no recognised position")
	}
	p.Position = set

	return p
}

func (n *normalizer) float(row int, name, column string, parse func(string) (float64, error)) float64 {
	v := n.text(row, column)
	if v == "" {
		return 0
	}
	f, err := parse(v)
	if err != nil {
		n.warn(row, name, column, v, err.Error())
		return 0
	}
	return f
}

func (n *normalizer) expires(row int, name string) time.Time {
	v := n.text(row, types.ColExpires)
	if v == "" || v == placeholder {
		return n.opts.FreeAgentDate
	}
	t, err := time.Parse(DateLayout, v)
	if err != nil {
		n.warn(row, name, types.ColExpires, v, "not a day/month/year date; using free agent date")
		return n.opts.FreeAgentDate
	}
	return t
}

// backfillTransferValues replaces unknown transfer values with the mean of the known ones.
func (n *normalizer) backfillTransferValues(players []types.Player, rows []int, values []float64) {
	sum, known := 0.0, 0
	for _, v := range values {
		if !math.IsNaN(v) {
			sum += v
			known++
		}
	}
	mean := 0.0
	if known > 0 {
		mean = sum / float64(known)
	}

	for i, v := range values {
		if math.IsNaN(v) {
			raw := n.text(rows[i], types.ColTransferValue)
			n.warn(rows[i], players[i].Name, types.ColTransferValue, raw,
				fmt.Sprintf("unknown transfer value; using table mean %.0f", mean))
			v = mean
		}
		players[i].TransferValue = int64(v)
	}
}

// text returns the trimmed cell value.
func (n *normalizer) text(row int, column string) string {
	return strings.TrimSpace(n.raw.Cell(row, n.col[column]))
}

// stat returns the trimmed cell value with the missing-value placeholder replaced by zero.
func (n *normalizer) stat(row int, column string) string {
	v := n.text(row, column)
	if v == placeholder {
		return "0"
	}
	return v
}

func (n *normalizer) warn(row int, player, column, value, message string) {
	issue := types.Issue{Row: row, Player: player, Column: column, Value: value, Message: message}
	n.issues = append(n.issues, issue)
	n.logger.WithFields(logrus.Fields{
		"row":    row,
		"player": player,
		"column": column,
		"value":  value,
	}).Warn(message)
}

func dropColumns(raw *types.RawTable, drop []string) *types.RawTable {
	dropped := make(map[string]bool, len(drop))
	for _, c := range drop {
		dropped[c] = true
	}

	keep := make([]int, 0, len(raw.Columns))
	out := &types.RawTable{Rows: make([][]string, len(raw.Rows))}
	for i, c := range raw.Columns {
		if !dropped[c] {
			keep = append(keep, i)
			out.Columns = append(out.Columns, c)
		}
	}
	for r := range raw.Rows {
		row := make([]string, len(keep))
		for j, i := range keep {
			row[j] = raw.Cell(r, i)
		}
		out.Rows[r] = row
	}
	return out
}
