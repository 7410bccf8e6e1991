package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jonathan/fm-scout/internal/filter"
	"github.com/jonathan/fm-scout/internal/metrics"
	"github.com/jonathan/fm-scout/internal/ranking"
	"github.com/jonathan/fm-scout/internal/similarity"
	"github.com/jonathan/fm-scout/internal/squad"
	"github.com/jonathan/fm-scout/internal/types"
)

type filterRequest struct {
	Table    string         `json:"table,omitempty"`
	Criteria types.Criteria `json:"criteria"`
	Rescore  bool           `json:"rescore,omitempty"`
}

type rankRequest struct {
	Table string `json:"table,omitempty"`
	ranking.Query
}

type similarRequest struct {
	Name       string   `json:"name" validate:"required"`
	Stats      []string `json:"stats" validate:"required,min=1"`
	Reference  string   `json:"reference,omitempty"`
	Candidates string   `json:"candidates,omitempty"`
	Limit      int      `json:"limit,omitempty" validate:"gte=0"`
}

type reviewRequest struct {
	Club   string `json:"club,omitempty"`
	Format string `json:"format,omitempty" validate:"omitempty,oneof=json text"`
}

type reviewTextResponse struct {
	Club   string `json:"club"`
	Review string `json:"review"`
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status": "ok",
		"scout":  s.session.Scout() != nil,
		"squad":  s.session.Squad() != nil,
	})
}

// handleListPlayers filters a table by query parameters.
func (s *Server) handleListPlayers(w http.ResponseWriter, r *http.Request) {
	table, err := s.session.Table(r.URL.Query().Get("table"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	criteria, err := criteriaFromQuery(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.respondFiltered(w, r, table, criteria, r.URL.Query().Get("rescore") == "true")
}

// handleFilterPlayers filters a table by a JSON criteria body.
func (s *Server) handleFilterPlayers(w http.ResponseWriter, r *http.Request) {
	req := filterRequest{Criteria: filter.DefaultCriteria()}
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	table, err := s.session.Table(req.Table)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.respondFiltered(w, r, table, req.Criteria, req.Rescore)
}

func (s *Server) respondFiltered(w http.ResponseWriter, r *http.Request, table *types.Table, criteria types.Criteria, rescore bool) {
	view, err := filter.Apply(table, criteria)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if rescore {
		view = metrics.Derive(view)
	}
	s.jsonResponse(w, http.StatusOK, view)
}

// handleGetPlayer returns every row with the given name.
func (s *Server) handleGetPlayer(w http.ResponseWriter, r *http.Request) {
	table, err := s.session.Table(r.URL.Query().Get("table"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	name := chi.URLParam(r, "name")
	idx := table.Find(name)
	if len(idx) == 0 {
		s.writeError(w, r, &ErrNotFound{Kind: "player", Name: name})
		return
	}

	players := make([]types.Player, 0, len(idx))
	for _, i := range idx {
		players = append(players, table.Players[i])
	}
	s.jsonResponse(w, http.StatusOK, players)
}

// handleFacets returns the filter choices of a table.
func (s *Server) handleFacets(w http.ResponseWriter, r *http.Request) {
	table, err := s.session.Table(r.URL.Query().Get("table"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, filter.FacetsOf(table))
}

// handlePresets lists the recommended weightings.
func (s *Server) handlePresets(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, ranking.Presets())
}

// handleRoles lists the role definitions behind the role percentile columns.
func (s *Server) handleRoles(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, metrics.Roles())
}

// handleRank rates players by weights or a preset.
func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	var req rankRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Limit < 0 {
		s.writeError(w, r, &ErrValidation{Field: "limit", Message: "must not be negative"})
		return
	}

	table, err := s.session.Table(req.Table)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	ranked, err := ranking.Run(table, req.Query)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, ranked)
}

// handleSimilar ranks candidates by cosine similarity to a reference player.
func (s *Server) handleSimilar(w http.ResponseWriter, r *http.Request) {
	var req similarRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.writeError(w, r, err)
		return
	}

	reference, err := s.session.Table(req.Reference)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	candidates, err := s.session.Table(req.Candidates)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := similarity.Similar(candidates, reference, req.Name, req.Stats)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Limit > 0 && len(result.Rows) > req.Limit {
		result.Rows = result.Rows[:req.Limit]
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleSquadSummary summarises the loaded squad.
func (s *Server) handleSquadSummary(w http.ResponseWriter, r *http.Request) {
	table, err := s.session.Table(string(types.OriginSquad))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	topN := s.topN
	if v := r.URL.Query().Get("top"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			s.writeError(w, r, &ErrValidation{Field: "top", Message: "must be a positive integer"})
			return
		}
		topN = n
	}

	s.jsonResponse(w, http.StatusOK, squad.Summarize(table, topN))
}

// handleSquadReview asks the AI analyst to review the loaded squad.
func (s *Server) handleSquadReview(w http.ResponseWriter, r *http.Request) {
	if s.reviewer == nil {
		s.writeError(w, r, &ErrUnavailable{Message: "squad review needs a Gemini API key"})
		return
	}

	var req reviewRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.writeError(w, r, err)
		return
	}

	table, err := s.session.Table(string(types.OriginSquad))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	club := req.Club
	if club == "" {
		club = s.club
	}

	if req.Format == "text" {
		text, err := s.reviewer.ReviewText(r.Context(), club, table)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.jsonResponse(w, http.StatusOK, reviewTextResponse{Club: club, Review: text})
		return
	}

	review, err := s.reviewer.Review(r.Context(), club, table)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, review)
}

// criteriaFromQuery builds filter criteria from query parameters. List
// parameters may repeat or be comma separated.
func criteriaFromQuery(r *http.Request) (types.Criteria, error) {
	q := r.URL.Query()
	c := filter.DefaultCriteria()

	c.Nationalities = listParam(q["nationality"])
	c.Divisions = listParam(q["division"])
	c.Positions = listParam(q["position"])

	ints := []struct {
		name string
		dst  *int
	}{
		{"min_age", &c.MinAge},
		{"max_age", &c.MaxAge},
		{"min_apps", &c.MinApps},
	}
	for _, p := range ints {
		if v := q.Get(p.name); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return c, &ErrValidation{Field: p.name, Message: "must be an integer"}
			}
			*p.dst = n
		}
	}

	salaries := []struct {
		name string
		dst  *int64
	}{
		{"min_salary", &c.MinSalary},
		{"max_salary", &c.MaxSalary},
	}
	for _, p := range salaries {
		if v := q.Get(p.name); v != "" {
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return c, &ErrValidation{Field: p.name, Message: "must be an integer"}
			}
			*p.dst = n
		}
	}

	if v := q.Get("min_minutes"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return c, &ErrValidation{Field: "min_minutes", Message: "must be a number"}
		}
		c.MinMinutes = f
	}

	return c, nil
}

func listParam(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
