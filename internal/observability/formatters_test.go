package observability

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/jonathan/fm-scout/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	table := &types.Table{
		Origin:  types.OriginScouting,
		Source:  "scouting.html",
		Players: make([]types.Player, 3),
		Issues: []types.Issue{
			{Row: 2, Column: "Gls/90", Message: "not a number"},
		},
	}

	p.PrintTable(table)
	output := buf.String()

	assert.Contains(t, output, "LOADED TABLE")
	assert.Contains(t, output, "scouting.html")
	assert.Contains(t, output, "Players:  3")
	assert.Contains(t, output, "row 2 Gls/90: not a number")
}

func TestPrintTable_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintTable(nil)
	assert.Empty(t, buf.String())
}

func TestPrintRanked(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	ranked := &types.RankedTable{Stats: []string{"Gls/90", "xA/90"}}
	for i := 0; i < 7; i++ {
		ranked.Rows = append(ranked.Rows, types.RankedPlayer{
			Name:     "Player",
			Club:     "Rovers",
			Age:      20 + i,
			Position: types.NewPositionSet("STC", "AMC"),
			Rating:   100 - float64(i*10),
		})
	}

	p.PrintRanked(ranked)
	output := buf.String()

	assert.Contains(t, output, "TOP RATED PLAYERS")
	assert.Contains(t, output, "Gls/90, xA/90")
	assert.Contains(t, output, "Player (AMC/STC, 20)")
	assert.Contains(t, output, "Rating: 100.00")
	assert.Contains(t, output, "... and 2 more players")
	assert.NotContains(t, output, "#6")
}

func TestPrintRanked_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintRanked(&types.RankedTable{})
	assert.Empty(t, buf.String())
}

func TestPrintSimilar(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSimilar(&types.SimilarityTable{
		Reference: "Ada",
		Stats:     []string{"Gls/90"},
		Rows:      []types.SimilarPlayer{{Name: "Ada", Similarity: 1}, {Name: "Bo", Similarity: 0.5}},
	})
	output := buf.String()

	assert.Contains(t, output, "Reference: Ada")
	assert.Contains(t, output, "1.000")
	assert.Contains(t, output, "0.500")
}

func TestPrintSquadSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSquadSummary(&types.SquadSummary{
		TotalPlayers: 2,
		AverageAge:   25.5,
		TotalSalary:  14000,
		TopSalaries:  []types.StatEntry{{Name: "Striker", Value: 9000}},
		Depth: []types.PositionDepth{
			{Position: "GK", Depth: 1},
			{Position: "STC", Depth: 3},
		},
	})
	output := buf.String()

	assert.Contains(t, output, "SQUAD SUMMARY")
	assert.Contains(t, output, "Average age:  25.5")
	assert.Contains(t, output, "Striker (9000)")
	assert.Contains(t, output, "Thin cover: GK:1")
	assert.NotContains(t, output, "STC:3")
}

func TestPrintIssues(t *testing.T) {
	tests := []struct {
		name     string
		issues   []types.Issue
		contains []string
	}{
		{
			name:     "none",
			contains: []string{"NO PARSE ISSUES"},
		},
		{
			name: "named and unnamed rows",
			issues: []types.Issue{
				{Row: 1, Player: "Ada", Column: "Apps", Value: "ten", Message: "not an appearance count"},
				{Row: 4, Column: "Name", Message: "row has no player name; dropped"},
			},
			contains: []string{"Found 2 issues", `Ada [Apps] "ten"`, "row 4 [Name]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewPrinter(&buf).PrintIssues(tt.issues)
			for _, s := range tt.contains {
				assert.Contains(t, buf.String(), s)
			}
		})
	}
}

func TestPrintBox_AlignsMultibyteText(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", "Jérôme Boateng\n"+strings.Repeat("é", 80))

	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		assert.Equal(t, boxWidth, utf8.RuneCountInString(line), line)
	}
	assert.Contains(t, buf.String(), "...")
}
