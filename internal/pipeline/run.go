// Package pipeline runs the full scouting report: both exports are loaded in
// parallel branches, analysed and written to an output directory as JSON artifacts.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/fm-scout/internal/fetch"
	"github.com/jonathan/fm-scout/internal/normalize"
	"github.com/jonathan/fm-scout/internal/observability"
	"github.com/jonathan/fm-scout/internal/pipeline/steps"
	"github.com/jonathan/fm-scout/internal/ranking"
	"github.com/jonathan/fm-scout/internal/report"
	"github.com/jonathan/fm-scout/internal/squad"
	"github.com/jonathan/fm-scout/internal/types"
)

// ManifestFile is the name of the run summary written last to the output directory.
const ManifestFile = "manifest.json"

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
	RunID    string `json:"run_id,omitempty"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// Reviewer produces the AI squad review.
type Reviewer interface {
	Review(ctx context.Context, club string, table *types.Table) (*report.Review, error)
}

// RunOptions holds configuration for running the pipeline
type RunOptions struct {
	ScoutSource string
	SquadSource string
	OutDir      string
	// Presets to rank the scouting export by. Empty means every preset.
	Presets []string
	// Limit keeps the best Limit rows of each ranking. Zero keeps all.
	Limit         int
	TopN          int
	Club          string
	FreeAgentDate time.Time
	FetchOptions  *fetch.Options
	// Reviewer nil skips the AI review.
	Reviewer   Reviewer
	Verbose    bool
	Out        io.Writer
	Logger     *logrus.Entry
	OnProgress ProgressCallback
}

// Manifest records what a run did and which artifacts it wrote.
type Manifest struct {
	RunID      uuid.UUID          `json:"run_id"`
	StartedAt  time.Time          `json:"started_at"`
	FinishedAt time.Time          `json:"finished_at"`
	Steps      []steps.StepResult `json:"steps"`
}

// Step returns the recorded result of a step, or nil if it never ran.
func (m *Manifest) Step(name string) *steps.StepResult {
	for i := range m.Steps {
		if m.Steps[i].Step == name {
			return &m.Steps[i]
		}
	}
	return nil
}

// logPrefix is used to distinguish concurrent log output
type logPrefix string

const (
	prefixScouting logPrefix = "[Scouting] "
	prefixSquad    logPrefix = "[Squad]    "
)

type runner struct {
	opts     RunOptions
	printer  *observability.Printer
	logger   *logrus.Entry
	mu       sync.Mutex
	done     map[string]bool
	manifest *Manifest
}

// Run orchestrates the full scouting report. The manifest is returned, and
// written to the output directory, even when a step fails.
func Run(ctx context.Context, opts RunOptions) (*Manifest, error) {
	if opts.OutDir == "" {
		return nil, fmt.Errorf("output directory is required")
	}
	if opts.ScoutSource == "" && opts.SquadSource == "" {
		return nil, fmt.Errorf("at least one of the scouting and squad exports is required")
	}
	if len(opts.Presets) == 0 {
		for _, p := range ranking.Presets() {
			opts.Presets = append(opts.Presets, p.Name)
		}
	}
	for _, name := range opts.Presets {
		if _, ok := ranking.LookupPreset(name); !ok {
			return nil, &ranking.ValidationError{Stat: name, Err: ranking.ErrUnknownPreset}
		}
	}
	if opts.TopN <= 0 {
		opts.TopN = 5
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Logger == nil {
		opts.Logger = logrus.WithField("component", "pipeline")
	}
	if err := os.MkdirAll(opts.OutDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", opts.OutDir, err)
	}

	r := &runner{
		opts:    opts,
		printer: observability.NewPrinter(opts.Out),
		done:    make(map[string]bool),
		manifest: &Manifest{
			RunID:     uuid.New(),
			StartedAt: time.Now().UTC(),
		},
	}
	r.logger = opts.Logger.WithField("run_id", r.manifest.RunID)

	err := r.run(ctx)

	r.manifest.FinishedAt = time.Now().UTC()
	if _, werr := r.writeArtifact(ManifestFile, r.manifest); werr != nil && err == nil {
		err = werr
	}
	return r.manifest, err
}

func (r *runner) run(ctx context.Context) error {
	// =========================================================================
	// PARALLEL EXECUTION: Scouting Branch + Squad Branch
	// =========================================================================
	r.printf("", "🚀 Starting parallel execution of Scouting and Squad branches...\n\n")

	g, gCtx := errgroup.WithContext(ctx)
	var squadTable *types.Table

	g.Go(func() error {
		if err := r.runScoutingBranch(gCtx); err != nil {
			return fmt.Errorf("scouting branch failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		table, err := r.runSquadBranch(gCtx)
		if err != nil {
			return fmt.Errorf("squad branch failed: %w", err)
		}
		squadTable = table
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	r.printf("", "\n✅ Both branches completed.\n\n")
	// =========================================================================

	if r.opts.Reviewer == nil || squadTable == nil {
		r.skip(steps.ReviewSquad, "no reviewer or no squad export")
		return nil
	}

	r.printf("", "Step 5/5: Reviewing squad with the AI analyst...\n")
	return r.step(steps.ReviewSquad, func() ([]string, error) {
		review, err := r.opts.Reviewer.Review(ctx, r.opts.Club, squadTable)
		if err != nil {
			return nil, err
		}
		jsonPath, err := r.writeArtifact("squad_review.json", review)
		if err != nil {
			return nil, err
		}
		mdPath, err := r.writeText("squad_review.md", review.Markdown(r.opts.Club))
		if err != nil {
			return nil, err
		}
		r.emit(steps.ReviewSquad, "Reviewed squad", review)
		return []string{jsonPath, mdPath}, nil
	})
}

// runScoutingBranch executes Steps 1 and 3: loading the scouting export and ranking it by each preset.
func (r *runner) runScoutingBranch(ctx context.Context) error {
	prefix := prefixScouting
	if r.opts.ScoutSource == "" {
		r.skip(steps.LoadScouting, "no scouting export")
		r.skip(steps.RankPresets, "no scouting export")
		return nil
	}

	r.printf(prefix, "Step 1/5: Loading scouting export from %s...\n", r.opts.ScoutSource)
	var table *types.Table
	err := r.step(steps.LoadScouting, func() ([]string, error) {
		var err error
		table, err = r.load(ctx, r.opts.ScoutSource, false)
		if err != nil {
			return nil, err
		}
		path, err := r.writeArtifact("scouting_table.json", table)
		if err != nil {
			return nil, err
		}
		r.emit(steps.LoadScouting, fmt.Sprintf("Loaded %d scouted players (%d issues)", table.Len(), len(table.Issues)), nil)
		return []string{path}, nil
	})
	if err != nil {
		return err
	}

	r.printf(prefix, "Step 3/5: Ranking by %d presets...\n", len(r.opts.Presets))
	return r.step(steps.RankPresets, func() ([]string, error) {
		var artifacts []string
		for _, name := range r.opts.Presets {
			ranked, err := ranking.Run(table, ranking.Query{Preset: name, Limit: r.opts.Limit})
			if err != nil {
				return artifacts, fmt.Errorf("preset %s: %w", name, err)
			}
			if r.opts.Verbose {
				r.mu.Lock()
				r.printer.PrintRanked(ranked)
				r.mu.Unlock()
			}
			path, err := r.writeArtifact(fmt.Sprintf("ranked_%s.json", name), ranked)
			if err != nil {
				return artifacts, err
			}
			artifacts = append(artifacts, path)
		}
		r.emit(steps.RankPresets, fmt.Sprintf("Ranked scouted players by %d presets", len(artifacts)), nil)
		return artifacts, nil
	})
}

// runSquadBranch executes Steps 2 and 4: loading the squad export and summarising it.
func (r *runner) runSquadBranch(ctx context.Context) (*types.Table, error) {
	prefix := prefixSquad
	if r.opts.SquadSource == "" {
		r.skip(steps.LoadSquad, "no squad export")
		r.skip(steps.SummarizeSquad, "no squad export")
		return nil, nil
	}

	r.printf(prefix, "Step 2/5: Loading squad export from %s...\n", r.opts.SquadSource)
	var table *types.Table
	err := r.step(steps.LoadSquad, func() ([]string, error) {
		var err error
		table, err = r.load(ctx, r.opts.SquadSource, true)
		if err != nil {
			return nil, err
		}
		path, err := r.writeArtifact("squad_table.json", table)
		if err != nil {
			return nil, err
		}
		r.emit(steps.LoadSquad, fmt.Sprintf("Loaded %d squad players (%d issues)", table.Len(), len(table.Issues)), nil)
		return []string{path}, nil
	})
	if err != nil {
		return nil, err
	}

	r.printf(prefix, "Step 4/5: Summarising squad...\n")
	err = r.step(steps.SummarizeSquad, func() ([]string, error) {
		summary := squad.Summarize(table, r.opts.TopN)
		if r.opts.Verbose {
			r.mu.Lock()
			r.printer.PrintSquadSummary(summary)
			r.mu.Unlock()
		}
		path, err := r.writeArtifact("squad_summary.json", summary)
		if err != nil {
			return nil, err
		}
		r.emit(steps.SummarizeSquad, fmt.Sprintf("Summarised %d squad players", summary.TotalPlayers), summary)
		return []string{path}, nil
	})
	if err != nil {
		return nil, err
	}
	return table, nil
}

func (r *runner) load(ctx context.Context, source string, isSquad bool) (*types.Table, error) {
	table, _, err := normalize.Load(ctx, source, r.opts.FetchOptions, normalize.Options{
		Squad:         isSquad,
		FreeAgentDate: r.opts.FreeAgentDate,
		Logger:        r.logger.WithField("source", source),
	})
	return table, err
}

// step runs fn once the dependencies of name have completed and records the result.
func (r *runner) step(name string, fn func() ([]string, error)) error {
	r.mu.Lock()
	err := steps.ValidateDependencies(r.done, name)
	r.mu.Unlock()
	if err != nil {
		r.record(steps.StepResult{Step: name, Status: steps.StatusFailed, Error: err.Error()})
		return err
	}

	start := time.Now()
	artifacts, err := fn()
	result := steps.StepResult{
		Step:      name,
		Status:    steps.StatusCompleted,
		Duration:  time.Since(start).Milliseconds(),
		Artifacts: artifacts,
	}
	if err != nil {
		result.Status = steps.StatusFailed
		result.Error = err.Error()
	}
	r.record(result)

	r.logger.WithFields(logrus.Fields{
		"step":     name,
		"status":   result.Status,
		"duration": result.Duration,
	}).Debug("Step finished")
	return err
}

func (r *runner) skip(name, reason string) {
	r.record(steps.StepResult{Step: name, Status: steps.StatusSkipped, Error: reason})
}

func (r *runner) record(result steps.StepResult) {
	result.Category = steps.StepRegistry[result.Step].Category
	r.mu.Lock()
	defer r.mu.Unlock()
	r.manifest.Steps = append(r.manifest.Steps, result)
	if result.Status == steps.StatusCompleted {
		r.done[result.Step] = true
	}
}

// emit calls the progress callback if configured
func (r *runner) emit(step, message string, content any) {
	if r.opts.OnProgress == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.opts.OnProgress(ProgressEvent{
		Step:     step,
		Category: steps.StepRegistry[step].Category,
		Message:  message,
		RunID:    r.manifest.RunID.String(),
		Content:  content,
	})
}

func (r *runner) printf(prefix logPrefix, format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = fmt.Fprintf(r.opts.Out, string(prefix)+format, args...)
}

func (r *runner) writeArtifact(name string, v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal %s: %w", name, err)
	}
	return r.writeText(name, string(data))
}

func (r *runner) writeText(name, content string) (string, error) {
	path := filepath.Join(r.opts.OutDir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
