package main

import (
	"fmt"

	"github.com/jonathan/fm-scout/internal/fetch"
	"github.com/jonathan/fm-scout/internal/llm"
	"github.com/jonathan/fm-scout/internal/pipeline"
	"github.com/jonathan/fm-scout/internal/pipeline/steps"
	"github.com/jonathan/fm-scout/internal/report"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Run the full scouting report into an output directory",
	Long: `Loads the scouting and squad exports in parallel, ranks the scouted players by each
recommended preset, summarises the squad and, when GEMINI_API_KEY is set, asks the AI
analyst for a squad review. Every result is written as a JSON artifact to --out-dir
together with a manifest.json describing the run.`,
	RunE: runReport,
}

var (
	reportOutDir   string
	reportPresets  []string
	reportLimit    int
	reportNoReview bool
)

func init() {
	reportCmd.Flags().StringVarP(&reportOutDir, "out-dir", "o", "", "Directory for report artifacts (required)")
	reportCmd.Flags().StringSliceVar(&reportPresets, "preset", nil, "Presets to rank by (default all)")
	reportCmd.Flags().IntVarP(&reportLimit, "limit", "n", 25, "Rows kept per ranking (0 keeps all)")
	reportCmd.Flags().BoolVar(&reportNoReview, "no-review", false, "Skip the AI squad review")

	if err := reportCmd.MarkFlagRequired("out-dir"); err != nil {
		panic(fmt.Sprintf("failed to mark out-dir flag as required: %v", err))
	}

	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, _ []string) error {
	if reportLimit < 0 {
		return fmt.Errorf("--limit must not be negative")
	}

	opts := pipeline.RunOptions{
		ScoutSource:   cfg.Scout,
		SquadSource:   cfg.Squad,
		OutDir:        reportOutDir,
		Presets:       reportPresets,
		Limit:         reportLimit,
		TopN:          cfg.TopN,
		Club:          cfg.Club,
		FreeAgentDate: cfg.FreeAgent(),
		FetchOptions:  fetch.DefaultOptions(),
		Verbose:       cfg.Verbose,
		Out:           cmd.OutOrStdout(),
	}

	if cfg.APIKey != "" && !reportNoReview {
		client, err := llm.NewClient(cmd.Context(), llm.DefaultConfig(), cfg.APIKey)
		if err != nil {
			return fmt.Errorf("failed to create LLM client: %w", err)
		}
		defer func() { _ = client.Close() }()
		opts.Reviewer = report.NewReviewer(client)
	}

	manifest, err := pipeline.Run(cmd.Context(), opts)
	if err != nil {
		return err
	}

	written := 0
	for _, s := range manifest.Steps {
		if s.Status == steps.StatusCompleted {
			written += len(s.Artifacts)
		}
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Done! Run %s wrote %d artifacts to %s\n", manifest.RunID, written, reportOutDir)
	return nil
}
