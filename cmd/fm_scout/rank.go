package main

import (
	"fmt"

	"github.com/jonathan/fm-scout/internal/observability"
	"github.com/jonathan/fm-scout/internal/ranking"
	"github.com/jonathan/fm-scout/internal/schemas"
	"github.com/jonathan/fm-scout/internal/types"
	"github.com/spf13/cobra"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rate players by a weighted combination of stats",
	Long: `Rates every player of the filtered export on a 0-100 scale from a weighted mean of the
chosen stats. Stats where lower is better count against the player. Weights come from
--weights ("Gls/90=0.5;xG/90=0.5") or from a recommended --preset (see "fm_scout presets").`,
	RunE: runRank,
}

var (
	rankTable    string
	rankWeights  string
	rankPreset   string
	rankLimit    int
	rankRescore  bool
	rankOutput   string
	rankCriteria criteriaFlags
)

func init() {
	rankCmd.Flags().StringVarP(&rankTable, "table", "t", "scouting", "Which export to rank: scouting or squad")
	rankCmd.Flags().StringVarP(&rankWeights, "weights", "w", "", `Stat weights as "stat=weight" pairs separated by semicolons`)
	rankCmd.Flags().StringVarP(&rankPreset, "preset", "p", "", "Recommended weighting by position group")
	rankCmd.Flags().IntVarP(&rankLimit, "limit", "n", 0, "Show only the best n players (0 shows all)")
	rankCmd.Flags().BoolVar(&rankRescore, "rescore", false, "Recompute role percentiles against the filtered players")
	rankCmd.Flags().StringVarP(&rankOutput, "out", "o", "", "Path to output RankedTable JSON file")
	rankCriteria.register(rankCmd)
	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, _ []string) error {
	if rankWeights == "" && rankPreset == "" {
		return fmt.Errorf("either --weights or --preset is required")
	}
	if rankLimit < 0 {
		return fmt.Errorf("--limit must not be negative")
	}

	weights, err := types.ParseWeights(rankWeights)
	if err != nil {
		return err
	}

	table, err := tableFor(cmd.Context(), rankTable)
	if err != nil {
		return err
	}

	criteria := rankCriteria.criteria()
	ranked, err := ranking.Run(table, ranking.Query{
		Weights:  weights,
		Preset:   rankPreset,
		Criteria: &criteria,
		Rescore:  rankRescore,
		Limit:    rankLimit,
	})
	if err != nil {
		return fmt.Errorf("failed to rank players: %w", err)
	}

	if rankOutput != "" {
		if err := writeJSON(cmd, rankOutput, ranked, schemas.RankedTableSchema); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Successfully ranked %d players to %s\n", len(ranked.Rows), rankOutput)
		return nil
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintRanked(ranked)
	return nil
}
