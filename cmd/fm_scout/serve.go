package main

import (
	"fmt"

	"github.com/jonathan/fm-scout/internal/llm"
	"github.com/jonathan/fm-scout/internal/report"
	"github.com/jonathan/fm-scout/internal/server"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard JSON API",
	Long: `Loads the configured exports and serves them over a local HTTP API for the dashboard:
filtering, ranking, similarity search, squad summary and AI squad review.`,
	RunE: runServe,
}

var (
	servePort        int
	serveCORSOrigins []string
)

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config, else 8080)")
	serveCmd.Flags().StringSliceVar(&serveCORSOrigins, "cors-origin", nil, "Allowed browser origins (default any)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if cfg.Scout == "" && cfg.Squad == "" {
		return fmt.Errorf("nothing to serve: pass --scout and/or --squad")
	}

	scout, squad, err := loadBoth(cmd.Context(), cfg.Scout != "", cfg.Squad != "")
	if err != nil {
		return err
	}

	port := servePort
	if port == 0 {
		port = cfg.Port
	}
	origins := serveCORSOrigins
	if len(origins) == 0 {
		origins = cfg.CORSOrigins
	}

	serverCfg := server.Config{
		Port:          port,
		CORSOrigins:   origins,
		Club:          cfg.Club,
		TopN:          cfg.TopN,
		FreeAgentDate: cfg.FreeAgent(),
	}

	if cfg.APIKey != "" {
		client, err := llm.NewClient(cmd.Context(), llm.DefaultConfig(), cfg.APIKey)
		if err != nil {
			return fmt.Errorf("failed to create LLM client: %w", err)
		}
		defer func() { _ = client.Close() }()
		serverCfg.Reviewer = report.NewReviewer(client)
	} else {
		logrus.WithField("component", "server").Warn("GEMINI_API_KEY not set; squad review disabled")
	}

	if !logrus.IsLevelEnabled(logrus.InfoLevel) {
		logrus.SetLevel(logrus.InfoLevel)
	}

	srv := server.New(serverCfg, server.NewSession(scout, squad))
	defer srv.Close()

	return srv.Start(cmd.Context())
}
