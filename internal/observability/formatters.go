// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/fm-scout/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
}

// pad right-pads s with spaces to n runes.
func pad(s string, n int) string {
	if c := utf8.RuneCountInString(s); c < n {
		return s + strings.Repeat(" ", n-c)
	}
	return s
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	inner := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(title, inner), inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, inner), inner))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

func positions(set types.PositionSet) string {
	return strings.Join(set.Sorted(), "/")
}

// PrintTable outputs a summary of a loaded table and its first parse issues.
func (p *Printer) PrintTable(table *types.Table) {
	if table == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Origin:   %s\n", table.Origin))
	if table.Source != "" {
		sb.WriteString(fmt.Sprintf("Source:   %s\n", table.Source))
	}
	sb.WriteString(fmt.Sprintf("Players:  %d\n", table.Len()))
	sb.WriteString(fmt.Sprintf("Issues:   %d\n", len(table.Issues)))

	if len(table.Issues) > 0 {
		sb.WriteString("\n")
		count := min(len(table.Issues), maxItemsToShow)
		for i := 0; i < count; i++ {
			issue := table.Issues[i]
			sb.WriteString(fmt.Sprintf("⚠ row %d %s: %s\n", issue.Row, issue.Column, issue.Message))
		}
		if len(table.Issues) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(table.Issues)-maxItemsToShow))
		}
	}

	p.printBox(fmt.Sprintf("LOADED TABLE %s", table.ID), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRanked outputs the top rated players with the requested stats.
func (p *Printer) PrintRanked(ranked *types.RankedTable) {
	if ranked == nil || len(ranked.Rows) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Ranked %d players on %s\n\n", len(ranked.Rows), strings.Join(ranked.Stats, ", ")))

	count := min(len(ranked.Rows), maxItemsToShow)
	for i := 0; i < count; i++ {
		row := ranked.Rows[i]
		sb.WriteString(fmt.Sprintf("#%d  %s (%s, %d)\n", i+1, row.Name, positions(row.Position), row.Age))
		sb.WriteString(fmt.Sprintf("    Rating: %.2f", row.Rating))
		if row.Club != "" {
			sb.WriteString(fmt.Sprintf("  Club: %s", row.Club))
		}
		sb.WriteString("\n")
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(ranked.Rows) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more players", len(ranked.Rows)-maxItemsToShow))
	}

	p.printBox("TOP RATED PLAYERS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSimilar outputs the candidates closest to the reference player.
func (p *Printer) PrintSimilar(result *types.SimilarityTable) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Reference: %s\n", result.Reference))
	sb.WriteString(fmt.Sprintf("Stats:     %s\n\n", strings.Join(result.Stats, ", ")))

	count := min(len(result.Rows), maxItemsToShow)
	for i := 0; i < count; i++ {
		row := result.Rows[i]
		sb.WriteString(fmt.Sprintf("#%d  %-30s %6.3f\n", i+1, truncate(row.Name, 30), row.Similarity))
	}
	if len(result.Rows) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more players\n", len(result.Rows)-maxItemsToShow))
	}

	p.printBox("MOST SIMILAR PLAYERS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSquadSummary outputs the squad overview and thin positions.
func (p *Printer) PrintSquadSummary(summary *types.SquadSummary) {
	if summary == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Players:      %d\n", summary.TotalPlayers))
	sb.WriteString(fmt.Sprintf("Average age:  %.1f\n", summary.AverageAge))
	sb.WriteString(fmt.Sprintf("Wage bill:    %d\n", summary.TotalSalary))

	if len(summary.TopSalaries) > 0 {
		sb.WriteString("\nTop salaries:\n")
		for _, e := range summary.TopSalaries {
			sb.WriteString(fmt.Sprintf("  • %s (%d)\n", e.Name, e.Value))
		}
	}
	if len(summary.TopTransferValues) > 0 {
		sb.WriteString("\nTop transfer values:\n")
		for _, e := range summary.TopTransferValues {
			sb.WriteString(fmt.Sprintf("  • %s (%d)\n", e.Name, e.Value))
		}
	}

	var thin []string
	for _, d := range summary.Depth {
		if d.Depth < 2 {
			thin = append(thin, fmt.Sprintf("%s:%d", d.Position, d.Depth))
		}
	}
	if len(thin) > 0 {
		sb.WriteString(fmt.Sprintf("\nThin cover: %s\n", strings.Join(thin, " ")))
	}

	p.printBox("SQUAD SUMMARY", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintIssues outputs every parse issue of a table.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintIssues(issues []types.Issue) {
	if len(issues) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %s │\n", pad("✅ NO PARSE ISSUES", boxWidth-4))
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d issues:\n\n", len(issues)))

	for i, issue := range issues {
		who := issue.Player
		if who == "" {
			who = fmt.Sprintf("row %d", issue.Row)
		}
		sb.WriteString(fmt.Sprintf("⚠ %s [%s] %q\n", who, issue.Column, issue.Value))
		sb.WriteString(fmt.Sprintf("  %s\n", issue.Message))
		if i < len(issues)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("PARSE ISSUES", strings.TrimSuffix(sb.String(), "\n"))
}
