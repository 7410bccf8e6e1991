// Package main provides the fm_scout CLI for exploring Football Manager player exports.
package main

import (
	"fmt"
	"os"

	"github.com/jonathan/fm-scout/internal/config"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	configPath string
	flagConfig config.Config

	// cfg is the resolved configuration, set before any subcommand runs.
	cfg *config.Config

	// stderr wraps the command's error stream for logs and verbose summaries.
	stderr *stderrWriter
)

var rootCmd = &cobra.Command{
	Use:   "fm_scout",
	Short: "Football Manager scouting and squad analysis",
	Long: `fm_scout loads Football Manager HTML player exports, normalizes them into typed tables
and rates, compares and summarises players. Exports may be local files or http(s) URLs.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Path to a JSON config file")
	flags.StringVar(&flagConfig.Scout, "scout", "", "Scouting export (file path or URL)")
	flags.StringVar(&flagConfig.Squad, "squad", "", "Own-squad export (file path or URL)")
	flags.StringVar(&flagConfig.Club, "club", "", "Club name used in squad reviews")
	flags.StringVar(&flagConfig.FreeAgentDate, "free-agent-date", "", "Contract expiry given to players without a club (d/m/yyyy)")
	flags.BoolVarP(&flagConfig.Verbose, "verbose", "v", false, "Print debug logs and load summaries")
	flags.BoolVar(&flagConfig.SchemaCheck, "schema-check", false, "Validate JSON outputs against schemas/")
}

// setup resolves the layered configuration and configures logging.
func setup(cmd *cobra.Command, _ []string) error {
	resolved, err := flagConfig.Resolve(configPath)
	if err != nil {
		return err
	}
	cfg = resolved

	stderr = &stderrWriter{w: cmd.ErrOrStderr()}
	logrus.SetOutput(stderr)
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	logrus.SetLevel(logrus.WarnLevel)
	if cfg.Verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
