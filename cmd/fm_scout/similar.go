package main

import (
	"fmt"

	"github.com/jonathan/fm-scout/internal/observability"
	"github.com/jonathan/fm-scout/internal/schemas"
	"github.com/jonathan/fm-scout/internal/similarity"
	"github.com/jonathan/fm-scout/internal/types"
	"github.com/spf13/cobra"
)

var similarCmd = &cobra.Command{
	Use:   "similar",
	Short: "Find the scouted players most similar to a reference player",
	Long: `Ranks every scouted player by the cosine similarity of their stat vector to the
reference player's. The reference is looked up in the squad export with
--reference-table squad, so a departing player can be replaced like for like.`,
	RunE: runSimilar,
}

var (
	similarPlayer    string
	similarStats     []string
	similarReference string
	similarLimit     int
	similarOutput    string
)

func init() {
	similarCmd.Flags().StringVar(&similarPlayer, "player", "", "Reference player name (required)")
	similarCmd.Flags().StringArrayVarP(&similarStats, "stat", "s", nil, "Stat to compare on (repeat for each stat, required)")
	similarCmd.Flags().StringVar(&similarReference, "reference-table", "scouting", "Table holding the reference player: scouting or squad")
	similarCmd.Flags().IntVarP(&similarLimit, "limit", "n", 10, "Show only the n most similar players (0 shows all)")
	similarCmd.Flags().StringVarP(&similarOutput, "out", "o", "", "Path to output SimilarityTable JSON file")

	if err := similarCmd.MarkFlagRequired("player"); err != nil {
		panic(fmt.Sprintf("failed to mark player flag as required: %v", err))
	}
	if err := similarCmd.MarkFlagRequired("stat"); err != nil {
		panic(fmt.Sprintf("failed to mark stat flag as required: %v", err))
	}

	rootCmd.AddCommand(similarCmd)
}

func runSimilar(cmd *cobra.Command, _ []string) error {
	fromSquad := false
	switch types.Origin(similarReference) {
	case types.OriginScouting:
	case types.OriginSquad:
		fromSquad = true
	default:
		return fmt.Errorf("invalid --reference-table %q: expected scouting or squad", similarReference)
	}

	// Validate before loading so a typo does not cost a download
	if err := similarity.Validate(similarStats); err != nil {
		return err
	}

	scout, squad, err := loadBoth(cmd.Context(), true, fromSquad)
	if err != nil {
		return err
	}
	reference := scout
	if fromSquad {
		reference = squad
	}

	result, err := similarity.Similar(scout, reference, similarPlayer, similarStats)
	if err != nil {
		return err
	}
	if similarLimit > 0 && len(result.Rows) > similarLimit {
		result.Rows = result.Rows[:similarLimit]
	}

	if similarOutput != "" {
		return writeJSON(cmd, similarOutput, result, schemas.SimilarityTableSchema)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintSimilar(result)
	return nil
}
