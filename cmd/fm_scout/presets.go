package main

import (
	"fmt"
	"strings"

	"github.com/jonathan/fm-scout/internal/ranking"
	"github.com/spf13/cobra"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the recommended stat weightings per position group",
	RunE:  runPresets,
}

var presetsJSON bool

func init() {
	presetsCmd.Flags().BoolVar(&presetsJSON, "json", false, "Print presets as JSON")
	rootCmd.AddCommand(presetsCmd)
}

func runPresets(cmd *cobra.Command, _ []string) error {
	presets := ranking.Presets()
	if presetsJSON {
		return writeJSON(cmd, "", presets, "")
	}

	out := cmd.OutOrStdout()
	for _, p := range presets {
		pairs := make([]string, len(p.Weights))
		for i, sw := range p.Weights {
			pairs[i] = fmt.Sprintf("%s=%.2f", sw.Stat, sw.Weight)
		}
		_, _ = fmt.Fprintf(out, "%-14s %-22s %s\n", p.Name, p.Label, strings.Join(p.Positions, ","))
		_, _ = fmt.Fprintf(out, "  --weights %q\n", strings.Join(pairs, ";"))
	}
	return nil
}
