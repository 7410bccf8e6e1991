// Package report produces the AI analyst's review of a squad.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/fm-scout/internal/llm"
	"github.com/jonathan/fm-scout/internal/prompts"
	"github.com/jonathan/fm-scout/internal/schemas"
	"github.com/jonathan/fm-scout/internal/squad"
	"github.com/jonathan/fm-scout/internal/types"
	"github.com/sirupsen/logrus"
)

const promptFile = "review.json"

// Review is the structured squad review returned by the model.
type Review struct {
	OverallPerformance string           `json:"overall_performance"`
	Strengths          []string         `json:"strengths"`
	Weaknesses         []string         `json:"weaknesses"`
	StandoutPlayers    []StandoutPlayer `json:"standout_players"`
	Recommendations    []string         `json:"recommendations"`
	TransferTargets    []TransferTarget `json:"transfer_targets,omitempty"`
}

// StandoutPlayer is a squad member the analyst singles out.
type StandoutPlayer struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// TransferTarget is a position to strengthen and the stats to scout it on.
type TransferTarget struct {
	Position string   `json:"position"`
	KeyStats []string `json:"key_stats"`
	Reason   string   `json:"reason,omitempty"`
}

// Reviewer asks an LLM for a scouting-report style review of a squad.
type Reviewer struct {
	client llm.Client
	tier   llm.ModelTier
	logger *logrus.Entry

	// SchemaPath locates squad_review.schema.json. Empty means resolve it from the
	// working directory; if it cannot be found the structured review is not validated.
	SchemaPath string
}

// NewReviewer creates a reviewer using the standard model tier.
func NewReviewer(client llm.Client) *Reviewer {
	return &Reviewer{
		client: client,
		tier:   llm.TierStandard,
		logger: logrus.WithField("component", "reviewer"),
	}
}

// WithTier returns a copy of the reviewer that calls the given tier.
func (r *Reviewer) WithTier(tier llm.ModelTier) *Reviewer {
	c := *r
	c.tier = tier
	return &c
}

// WithLogger returns a copy of the reviewer logging to logger.
func (r *Reviewer) WithLogger(logger *logrus.Entry) *Reviewer {
	c := *r
	c.logger = logger
	return &c
}

// Prompt renders the prompt stored under key for the given squad.
func Prompt(key, club string, table *types.Table) (string, error) {
	summary, err := json.MarshalIndent(squad.Summarize(table, squad.DefaultTopN), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal squad summary: %w", err)
	}
	players, err := json.Marshal(table.Players)
	if err != nil {
		return "", fmt.Errorf("failed to marshal squad players: %w", err)
	}
	if strings.TrimSpace(club) == "" {
		club = "the club"
	}

	return prompts.Render(promptFile, key, map[string]string{
		"Club":    club,
		"Summary": string(summary),
		"Squad":   string(players),
	})
}

// ReviewText returns a free-text review with section headings.
func (r *Reviewer) ReviewText(ctx context.Context, club string, table *types.Table) (string, error) {
	prompt, err := Prompt("squad-review", club, table)
	if err != nil {
		return "", err
	}

	r.logger.WithFields(logrus.Fields{
		"model":   r.client.GetModel(r.tier),
		"players": table.Len(),
	}).Debug("Requesting squad review")

	text, err := r.client.GenerateContent(ctx, prompt, r.tier)
	if err != nil {
		return "", &APICallError{Message: "failed to generate squad review", Cause: err}
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", &ParseError{Message: "model returned an empty review"}
	}
	return text, nil
}

// Review returns a structured review. The response is checked against the
// squad review schema when the schema file can be found.
func (r *Reviewer) Review(ctx context.Context, club string, table *types.Table) (*Review, error) {
	prompt, err := Prompt("squad-review-json", club, table)
	if err != nil {
		return nil, err
	}

	r.logger.WithFields(logrus.Fields{
		"model":   r.client.GetModel(r.tier),
		"players": table.Len(),
	}).Debug("Requesting structured squad review")

	responseText, err := r.client.GenerateJSON(ctx, prompt, r.tier)
	if err != nil {
		return nil, &APICallError{Message: "failed to generate squad review", Cause: err}
	}

	cleaned := llm.CleanJSONBlock(responseText)
	var review Review
	if err := json.Unmarshal([]byte(cleaned), &review); err != nil {
		return nil, &ParseError{Message: "failed to unmarshal review JSON", Cause: err}
	}

	if path := r.schemaPath(); path != "" {
		if err := schemas.ValidateValue(path, &review); err != nil {
			return nil, &ParseError{Message: "review does not match schema", Cause: err}
		}
	} else {
		r.logger.Debug("Squad review schema not found; skipping validation")
	}

	r.warnUnknownPlayers(&review, table)
	return &review, nil
}

func (r *Reviewer) schemaPath() string {
	if r.SchemaPath != "" {
		return r.SchemaPath
	}
	return schemas.ResolveSchemaPath(schemas.SquadReviewSchema)
}

// warnUnknownPlayers logs standout players that are not in the squad.
func (r *Reviewer) warnUnknownPlayers(review *Review, table *types.Table) {
	for _, sp := range review.StandoutPlayers {
		if len(table.Find(sp.Name)) == 0 {
			r.logger.WithField("player", sp.Name).Warn("Review names a player outside the squad")
		}
	}
}

// Markdown renders the review with one section per heading.
func (rv *Review) Markdown(club string) string {
	var sb strings.Builder
	if club != "" {
		sb.WriteString(fmt.Sprintf("# Squad review: %s\n\n", club))
	} else {
		sb.WriteString("# Squad review\n\n")
	}

	sb.WriteString("## Overall performance\n\n")
	sb.WriteString(strings.TrimSpace(rv.OverallPerformance))
	sb.WriteString("\n\n")

	writeList(&sb, "Strengths", rv.Strengths)
	writeList(&sb, "Weaknesses", rv.Weaknesses)

	if len(rv.StandoutPlayers) > 0 {
		sb.WriteString("## Standout players\n\n")
		for _, sp := range rv.StandoutPlayers {
			sb.WriteString(fmt.Sprintf("- **%s**: %s\n", sp.Name, sp.Reason))
		}
		sb.WriteString("\n")
	}

	writeList(&sb, "Recommendations", rv.Recommendations)

	if len(rv.TransferTargets) > 0 {
		sb.WriteString("## Transfer targets\n\n")
		for _, tt := range rv.TransferTargets {
			sb.WriteString(fmt.Sprintf("- **%s** (%s)", tt.Position, strings.Join(tt.KeyStats, ", ")))
			if tt.Reason != "" {
				sb.WriteString(": " + tt.Reason)
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	return strings.TrimRight(sb.String(), "\n") + "\n"
}

func writeList(sb *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString("## " + heading + "\n\n")
	for _, item := range items {
		sb.WriteString("- " + item + "\n")
	}
	sb.WriteString("\n")
}
