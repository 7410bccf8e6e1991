package main

import (
	"fmt"
	"os"

	"github.com/jonathan/fm-scout/internal/llm"
	"github.com/jonathan/fm-scout/internal/report"
	"github.com/jonathan/fm-scout/internal/schemas"
	"github.com/spf13/cobra"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Ask the AI analyst to review the own squad",
	Long: `Sends the squad summary and player stats to Gemini and prints the analyst's review:
overall performance, strengths, weaknesses, standout players, recommendations and
transfer targets. Requires GEMINI_API_KEY.`,
	RunE: runReview,
}

var (
	reviewFormat string
	reviewTier   string
	reviewOutput string
)

func init() {
	reviewCmd.Flags().StringVarP(&reviewFormat, "format", "f", "markdown", "Output format: markdown, json or text")
	reviewCmd.Flags().StringVar(&reviewTier, "tier", string(llm.TierStandard), "Model tier: lite, standard or advanced")
	reviewCmd.Flags().StringVarP(&reviewOutput, "out", "o", "", "Path to output file (default stdout)")
	rootCmd.AddCommand(reviewCmd)
}

func runReview(cmd *cobra.Command, _ []string) error {
	switch reviewFormat {
	case "markdown", "json", "text":
	default:
		return fmt.Errorf("invalid --format %q: expected markdown, json or text", reviewFormat)
	}
	tier := llm.ModelTier(reviewTier)
	switch tier {
	case llm.TierLite, llm.TierStandard, llm.TierAdvanced:
	default:
		return fmt.Errorf("invalid --tier %q: expected lite, standard or advanced", reviewTier)
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	table, err := loadExport(cmd.Context(), cfg.Squad, true)
	if err != nil {
		return err
	}

	client, err := llm.NewClient(cmd.Context(), llm.DefaultConfig(), cfg.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	reviewer := report.NewReviewer(client).WithTier(tier)
	club := cfg.Club

	if reviewFormat == "text" {
		text, err := reviewer.ReviewText(cmd.Context(), club, table)
		if err != nil {
			return err
		}
		return writeText(cmd, reviewOutput, text)
	}

	review, err := reviewer.Review(cmd.Context(), club, table)
	if err != nil {
		return err
	}
	if reviewFormat == "json" {
		return writeJSON(cmd, reviewOutput, review, schemas.SquadReviewSchema)
	}
	return writeText(cmd, reviewOutput, review.Markdown(club))
}

// writeText writes text to path, or to stdout when path is empty.
func writeText(cmd *cobra.Command, path, text string) error {
	if path == "" {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), text)
		return err
	}
	if err := os.WriteFile(path, []byte(text+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}
	return nil
}
