package main

import (
	"fmt"

	"github.com/jonathan/fm-scout/internal/observability"
	"github.com/jonathan/fm-scout/internal/schemas"
	"github.com/spf13/cobra"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load and normalize an export",
	Long: `Parses a Football Manager HTML export into a typed player table with cumulative and
role columns derived, reporting any cells that had to be replaced by a fallback value.`,
	RunE: runLoad,
}

var (
	loadTable  string
	loadOutput string
)

func init() {
	loadCmd.Flags().StringVarP(&loadTable, "table", "t", "scouting", "Which export to load: scouting or squad")
	loadCmd.Flags().StringVarP(&loadOutput, "out", "o", "", "Path to output PlayerTable JSON file (default stdout summary)")
	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, _ []string) error {
	table, err := tableFor(cmd.Context(), loadTable)
	if err != nil {
		return err
	}

	if loadOutput != "" {
		if err := writeJSON(cmd, loadOutput, table, schemas.PlayerTableSchema); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Loaded %d players (%d issues) to %s\n", table.Len(), len(table.Issues), loadOutput)
		return nil
	}

	printer := observability.NewPrinter(cmd.OutOrStdout())
	printer.PrintTable(table)
	printer.PrintIssues(table.Issues)
	return nil
}
