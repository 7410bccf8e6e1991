// Package steps provides step definitions and dependency validation for the
// scouting report pipeline.
package steps

import (
	"fmt"
	"sort"
)

// Step names.
const (
	LoadScouting   = "load_scouting"
	LoadSquad      = "load_squad"
	RankPresets    = "rank_presets"
	SummarizeSquad = "summarize_squad"
	ReviewSquad    = "review_squad"
)

// Step categories.
const (
	CategoryIngestion = "ingestion"
	CategoryAnalysis  = "analysis"
	CategoryReview    = "review"
)

// Step statuses.
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusSkipped   = "skipped"
)

// StepDefinition defines metadata for a pipeline step
type StepDefinition struct {
	Name         string
	Category     string
	Dependencies []string
}

// StepResult represents the result of executing a step
type StepResult struct {
	Step      string   `json:"step"`
	Category  string   `json:"category"`
	Status    string   `json:"status"`
	Duration  int64    `json:"duration_ms"`
	Artifacts []string `json:"artifacts,omitempty"`
	Error     string   `json:"error,omitempty"`
}

// StepRegistry holds all step definitions
var StepRegistry = map[string]StepDefinition{
	LoadScouting: {
		Name:         LoadScouting,
		Category:     CategoryIngestion,
		Dependencies: []string{},
	},
	LoadSquad: {
		Name:         LoadSquad,
		Category:     CategoryIngestion,
		Dependencies: []string{},
	},
	RankPresets: {
		Name:         RankPresets,
		Category:     CategoryAnalysis,
		Dependencies: []string{LoadScouting},
	},
	SummarizeSquad: {
		Name:         SummarizeSquad,
		Category:     CategoryAnalysis,
		Dependencies: []string{LoadSquad},
	},
	ReviewSquad: {
		Name:         ReviewSquad,
		Category:     CategoryReview,
		Dependencies: []string{LoadSquad, SummarizeSquad},
	},
}

// DependencyError represents a dependency validation error
type DependencyError struct {
	Step                string
	MissingDependencies []string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("step %s has missing dependencies: %v", e.Step, e.MissingDependencies)
}

// ValidateDependencies checks that every dependency of stepName has completed.
func ValidateDependencies(completed map[string]bool, stepName string) error {
	def, ok := StepRegistry[stepName]
	if !ok {
		return fmt.Errorf("unknown step: %s", stepName)
	}

	var missing []string
	for _, dep := range def.Dependencies {
		if !completed[dep] {
			missing = append(missing, dep)
		}
	}

	if len(missing) > 0 {
		return &DependencyError{
			Step:                stepName,
			MissingDependencies: missing,
		}
	}
	return nil
}

// AvailableSteps returns the steps not yet completed whose dependencies are met, sorted by name.
func AvailableSteps(completed map[string]bool) []string {
	var available []string
	for name := range StepRegistry {
		if completed[name] {
			continue
		}
		if ValidateDependencies(completed, name) == nil {
			available = append(available, name)
		}
	}
	sort.Strings(available)
	return available
}

// BlockedSteps returns the steps whose dependencies are not met, sorted by name.
func BlockedSteps(completed map[string]bool) []string {
	var blocked []string
	for name := range StepRegistry {
		if completed[name] {
			continue
		}
		if ValidateDependencies(completed, name) != nil {
			blocked = append(blocked, name)
		}
	}
	sort.Strings(blocked)
	return blocked
}
