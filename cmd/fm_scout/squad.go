package main

import (
	"fmt"

	"github.com/jonathan/fm-scout/internal/observability"
	"github.com/jonathan/fm-scout/internal/schemas"
	"github.com/jonathan/fm-scout/internal/squad"
	"github.com/spf13/cobra"
)

var squadCmd = &cobra.Command{
	Use:   "squad",
	Short: "Summarise the own-squad export",
	Long:  "Prints squad size, average age, wage bill, the top salaries and transfer values, and how many players cover each pitch position.",
	RunE:  runSquad,
}

var (
	squadTop    int
	squadOutput string
)

func init() {
	squadCmd.Flags().IntVar(&squadTop, "top", 0, "Length of the top salary and transfer value lists (default from config, else 5)")
	squadCmd.Flags().StringVarP(&squadOutput, "out", "o", "", "Path to output SquadSummary JSON file")
	rootCmd.AddCommand(squadCmd)
}

func runSquad(cmd *cobra.Command, _ []string) error {
	topN := squadTop
	if topN == 0 {
		topN = cfg.TopN
	}
	if topN < 1 {
		return fmt.Errorf("--top must be positive")
	}

	table, err := loadExport(cmd.Context(), cfg.Squad, true)
	if err != nil {
		return err
	}

	summary := squad.Summarize(table, topN)
	if squadOutput != "" {
		return writeJSON(cmd, squadOutput, summary, schemas.SquadSummarySchema)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintSquadSummary(summary)
	return nil
}
