package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/jonathan/fm-scout/internal/fetch"
	"github.com/jonathan/fm-scout/internal/filter"
	"github.com/jonathan/fm-scout/internal/normalize"
	"github.com/jonathan/fm-scout/internal/observability"
	"github.com/jonathan/fm-scout/internal/schemas"
	"github.com/jonathan/fm-scout/internal/types"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// stderrWriter serializes the command's error stream. Log lines go through Write;
// verbose summaries hold the lock for a whole set of boxes so parallel loads
// print one table at a time.
type stderrWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *stderrWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

func (s *stderrWriter) locked(fn func(w io.Writer)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.w)
}

// loadExport reads and normalizes one export. Verbose mode prints the table and its issues.
func loadExport(ctx context.Context, source string, squad bool) (*types.Table, error) {
	origin := types.OriginScouting
	if squad {
		origin = types.OriginSquad
	}
	if source == "" {
		flag := "--scout"
		if squad {
			flag = "--squad"
		}
		return nil, fmt.Errorf("no %s export given: pass %s or set it in the config file", origin, flag)
	}

	logger := logrus.WithFields(logrus.Fields{"component": "loader", "origin": origin})
	table, meta, err := normalize.Load(ctx, source, fetch.DefaultOptions(), normalize.Options{
		Squad:         squad,
		FreeAgentDate: cfg.FreeAgent(),
		Logger:        logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load %s export %s: %w", origin, source, err)
	}

	logger.WithFields(logrus.Fields{
		"hash":    meta.Hash,
		"bytes":   meta.Bytes,
		"rows":    meta.Rows,
		"players": table.Len(),
		"table":   table.ID,
	}).Debug("Loaded export")

	if cfg.Verbose {
		stderr.locked(func(w io.Writer) {
			printer := observability.NewPrinter(w)
			printer.PrintTable(table)
			printer.PrintIssues(table.Issues)
		})
	}
	return table, nil
}

// loadBoth loads the scouting and squad exports in parallel. A table whose
// want flag is false is skipped and returned as nil.
func loadBoth(ctx context.Context, wantScout, wantSquad bool) (scout, squad *types.Table, err error) {
	g, gctx := errgroup.WithContext(ctx)
	if wantScout {
		g.Go(func() error {
			var err error
			scout, err = loadExport(gctx, cfg.Scout, false)
			return err
		})
	}
	if wantSquad {
		g.Go(func() error {
			var err error
			squad, err = loadExport(gctx, cfg.Squad, true)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return scout, squad, nil
}

// writeJSON writes v as indented JSON to path, or to stdout when path is empty.
// With schema checking enabled the output is validated against schemaName;
// a validation failure is reported but does not fail the command.
func writeJSON(cmd *cobra.Command, path string, v any, schemaName string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output to JSON: %w", err)
	}

	if cfg.SchemaCheck && schemaName != "" {
		if schemaPath := schemas.ResolveSchemaPath(schemaName); schemaPath != "" {
			if err := schemas.ValidateBytes(schemaPath, data); err != nil {
				_, _ = fmt.Fprintf(stderr, "Warning: Output validation failed: %v\n", err)
			}
		}
	}

	if path == "" {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}

	// Ensure output directory exists
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}
	return nil
}

// criteriaFlags binds the filter criteria to command flags.
type criteriaFlags struct {
	c types.Criteria
}

func (f *criteriaFlags) register(cmd *cobra.Command) {
	f.c = filter.DefaultCriteria()
	flags := cmd.Flags()
	flags.StringSliceVar(&f.c.Nationalities, "nationality", nil, "Keep these nationalities (repeat or comma separate)")
	flags.StringSliceVar(&f.c.Divisions, "division", nil, "Keep these divisions")
	flags.StringSliceVar(&f.c.Positions, "position", nil, "Keep players able to play any of these positions (e.g. STC,AML)")
	flags.IntVar(&f.c.MinAge, "min-age", f.c.MinAge, "Minimum age")
	flags.IntVar(&f.c.MaxAge, "max-age", f.c.MaxAge, "Maximum age")
	flags.Int64Var(&f.c.MinSalary, "min-salary", 0, "Minimum salary")
	flags.Int64Var(&f.c.MaxSalary, "max-salary", 0, "Maximum salary (0 means no limit)")
	flags.IntVar(&f.c.MinApps, "min-apps", 0, "Minimum appearances")
	flags.Float64Var(&f.c.MinMinutes, "min-minutes", 0, "Minimum minutes played")
}

// criteria returns a copy of the bound criteria.
func (f *criteriaFlags) criteria() types.Criteria {
	c := f.c
	c.Nationalities = append([]string(nil), f.c.Nationalities...)
	c.Divisions = append([]string(nil), f.c.Divisions...)
	c.Positions = append([]string(nil), f.c.Positions...)
	return c
}

// tableFor picks the scouting or squad export by name.
func tableFor(ctx context.Context, name string) (*types.Table, error) {
	switch types.Origin(name) {
	case types.OriginScouting, "":
		return loadExport(ctx, cfg.Scout, false)
	case types.OriginSquad:
		return loadExport(ctx, cfg.Squad, true)
	default:
		return nil, fmt.Errorf("invalid table %q: expected scouting or squad", name)
	}
}
