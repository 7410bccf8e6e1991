package main

import (
	"fmt"

	"github.com/jonathan/fm-scout/internal/filter"
	"github.com/jonathan/fm-scout/internal/metrics"
	"github.com/jonathan/fm-scout/internal/observability"
	"github.com/jonathan/fm-scout/internal/schemas"
	"github.com/spf13/cobra"
)

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Filter an export by nationality, division, position, age, salary and playing time",
	Long: `Selects the players of an export matching the given criteria. With --rescore the role
columns are recomputed as percentiles of the filtered players only.`,
	RunE: runFilter,
}

var (
	filterTable    string
	filterRescore  bool
	filterOutput   string
	filterCriteria criteriaFlags
)

func init() {
	filterCmd.Flags().StringVarP(&filterTable, "table", "t", "scouting", "Which export to filter: scouting or squad")
	filterCmd.Flags().BoolVar(&filterRescore, "rescore", false, "Recompute role percentiles against the filtered players")
	filterCmd.Flags().StringVarP(&filterOutput, "out", "o", "", "Path to output PlayerTable JSON file")
	filterCriteria.register(filterCmd)
	rootCmd.AddCommand(filterCmd)
}

func runFilter(cmd *cobra.Command, _ []string) error {
	table, err := tableFor(cmd.Context(), filterTable)
	if err != nil {
		return err
	}

	view, err := filter.Apply(table, filterCriteria.criteria())
	if err != nil {
		return err
	}
	if filterRescore {
		view = metrics.Derive(view)
	}

	if filterOutput != "" {
		if err := writeJSON(cmd, filterOutput, view, schemas.PlayerTableSchema); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Kept %d of %d players to %s\n", view.Len(), table.Len(), filterOutput)
		return nil
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintTable(view)
	return nil
}
