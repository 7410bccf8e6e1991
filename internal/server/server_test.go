package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/fm-scout/internal/ingestion"
	"github.com/jonathan/fm-scout/internal/report"
	"github.com/jonathan/fm-scout/internal/server/ratelimit"
	"github.com/jonathan/fm-scout/internal/types"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReviewer struct {
	club string
	err  error
}

func (f *fakeReviewer) Review(_ context.Context, club string, _ *types.Table) (*report.Review, error) {
	f.club = club
	if f.err != nil {
		return nil, f.err
	}
	return &report.Review{OverallPerformance: "Solid", Strengths: []string{"Depth"}}, nil
}

func (f *fakeReviewer) ReviewText(_ context.Context, club string, _ *types.Table) (string, error) {
	f.club = club
	return "## Overall\nSolid", f.err
}

func player(name, nat string, age int, salary int64, gls float64, pos ...string) types.Player {
	return types.Player{
		Name:        name,
		Nationality: nat,
		Division:    "Premier Division",
		Club:        "Rovers",
		Age:         age,
		Salary:      salary,
		Position:    types.NewPositionSet(pos...),
		Stats:       map[string]float64{"Gls/90": gls, "Tck/90": 1 - gls, types.ColMinutes: 900},
		Roles:       map[string]float64{"Finisher": gls * 100},
	}
}

func testSession() *Session {
	scout := &types.Table{ID: uuid.New(), Origin: types.OriginScouting, Players: []types.Player{
		player("Ada Striker", "ENG", 22, 10000, 0.8, "STC"),
		player("Bo Winger", "FRA", 27, 20000, 0.4, "AML", "AMR"),
		player("Cy Back", "ENG", 31, 5000, 0.1, "DL"),
	}}
	squadTable := &types.Table{ID: uuid.New(), Origin: types.OriginSquad, Players: []types.Player{
		player("Own Keeper", "ENG", 29, 8000, 0, "GK"),
		player("Own Striker", "ESP", 24, 12000, 0.7, "STC"),
	}}
	return NewSession(scout, squadTable)
}

func newTestServer(t *testing.T, session *Session, reviewer SquadReviewer) (*Server, *test.Hook) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	s := New(Config{
		Club:      "Rovers",
		TopN:      1,
		RateLimit: &ratelimit.Config{Enabled: false},
		Reviewer:  reviewer,
		Logger:    logrus.NewEntry(logger),
	}, session)
	t.Cleanup(s.Close)
	return s, hook
}

func do(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if str, ok := body.(string); ok {
			buf.WriteString(str)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	return decode[ErrorResponse](t, rec).Error.Code
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t, NewSession(nil, nil), nil)

	rec := do(t, s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string]any](t, rec)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, false, body["scout"])
}

func TestListPlayers(t *testing.T) {
	s, _ := newTestServer(t, testSession(), nil)

	tests := []struct {
		name  string
		path  string
		names []string
	}{
		{"all", "/players", []string{"Ada Striker", "Bo Winger", "Cy Back"}},
		{"nationality", "/players?nationality=ENG", []string{"Ada Striker", "Cy Back"}},
		{"comma list", "/players?position=STC,AML", []string{"Ada Striker", "Bo Winger"}},
		{"age range", "/players?min_age=25&max_age=30", []string{"Bo Winger"}},
		{"salary", "/players?max_salary=9000", []string{"Cy Back"}},
		{"squad table", "/players?table=squad&position=GK", []string{"Own Keeper"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodGet, tt.path, nil)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			table := decode[types.Table](t, rec)
			var names []string
			for _, p := range table.Players {
				names = append(names, p.Name)
			}
			assert.Equal(t, tt.names, names)
		})
	}
}

func TestListPlayers_Errors(t *testing.T) {
	s, _ := newTestServer(t, testSession(), nil)

	tests := []struct {
		name   string
		path   string
		status int
		code   string
	}{
		{"bad integer", "/players?min_age=old", http.StatusBadRequest, "BAD_REQUEST"},
		{"bad table", "/players?table=reserves", http.StatusBadRequest, "BAD_REQUEST"},
		{"inverted ages", "/players?min_age=30&max_age=20", http.StatusUnprocessableEntity, "VALIDATION_FAILED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodGet, tt.path, nil)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.code, errorCode(t, rec))
		})
	}
}

func TestListPlayers_NotLoaded(t *testing.T) {
	s, _ := newTestServer(t, NewSession(nil, nil), nil)

	rec := do(t, s, http.MethodGet, "/players", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "no scouting table loaded")
}

func TestFilterPlayers_Rescore(t *testing.T) {
	s, _ := newTestServer(t, testSession(), nil)

	rec := do(t, s, http.MethodPost, "/players/filter", map[string]any{
		"criteria": map[string]any{"nationalities": []string{"ENG"}},
		"rescore":  true,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	table := decode[types.Table](t, rec)
	require.Len(t, table.Players, 2)
	assert.Len(t, table.Players[0].Roles, len(types.RoleColumns), "roles recomputed for the subset")

	rec = do(t, s, http.MethodPost, "/players/filter", `{"criteria": {}, "colour": "red"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetPlayer(t *testing.T) {
	s, _ := newTestServer(t, testSession(), nil)

	rec := do(t, s, http.MethodGet, "/players/Ada%20Striker", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	players := decode[[]types.Player](t, rec)
	require.Len(t, players, 1)
	assert.Equal(t, 22, players[0].Age)

	rec = do(t, s, http.MethodGet, "/players/Nobody", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFacets(t *testing.T) {
	s, _ := newTestServer(t, testSession(), nil)

	rec := do(t, s, http.MethodGet, "/facets", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string]any](t, rec)
	assert.Equal(t, []any{"ENG", "FRA"}, body["nationalities"])
	assert.Equal(t, float64(20000), body["max_salary"])
}

func TestPresetsAndRoles(t *testing.T) {
	s, _ := newTestServer(t, testSession(), nil)

	rec := do(t, s, http.MethodGet, "/presets", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	presets := decode[[]map[string]any](t, rec)
	assert.Len(t, presets, 8)
	assert.Equal(t, "goalkeeper", presets[0]["name"])

	rec = do(t, s, http.MethodGet, "/roles", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]map[string]any](t, rec), len(types.RoleColumns))
}

func TestRank(t *testing.T) {
	s, _ := newTestServer(t, testSession(), nil)

	rec := do(t, s, http.MethodPost, "/rank", map[string]any{
		"weights": []map[string]any{{"stat": "Gls/90", "weight": 1}},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	ranked := decode[types.RankedTable](t, rec)
	require.Len(t, ranked.Rows, 3)
	assert.Equal(t, "Ada Striker", ranked.Rows[0].Name)
	assert.Equal(t, 100.0, ranked.Rows[0].Rating)
	assert.Equal(t, 0.0, ranked.Rows[2].Rating)
	assert.Equal(t, s.session.Scout().ID, ranked.SourceID)
}

func TestRank_PresetAndLimit(t *testing.T) {
	s, _ := newTestServer(t, testSession(), nil)

	rec := do(t, s, http.MethodPost, "/rank", map[string]any{
		"table":   "squad",
		"preset":  "striker",
		"weights": []map[string]any{{"stat": "Gls/90", "weight": 1}},
		"limit":   1,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	ranked := decode[types.RankedTable](t, rec)
	require.Len(t, ranked.Rows, 1)
	assert.Equal(t, "Own Striker", ranked.Rows[0].Name)
}

func TestRank_Errors(t *testing.T) {
	s, _ := newTestServer(t, testSession(), nil)

	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"unknown stat", map[string]any{"weights": []map[string]any{{"stat": "Shoe Size", "weight": 1}}}, http.StatusUnprocessableEntity},
		{"zero weight", map[string]any{"weights": []map[string]any{{"stat": "Gls/90", "weight": 0}}}, http.StatusUnprocessableEntity},
		{"no weights", map[string]any{}, http.StatusUnprocessableEntity},
		{"unknown preset", map[string]any{"preset": "sweeper"}, http.StatusUnprocessableEntity},
		{"negative limit", map[string]any{"preset": "striker", "limit": -1}, http.StatusBadRequest},
		{"malformed", "{", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/rank", tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
		})
	}
}

func TestSimilar(t *testing.T) {
	s, _ := newTestServer(t, testSession(), nil)

	rec := do(t, s, http.MethodPost, "/similar", map[string]any{
		"name":      "Own Striker",
		"reference": "squad",
		"stats":     []string{"Gls/90", "Tck/90"},
		"limit":     2,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	result := decode[types.SimilarityTable](t, rec)
	assert.Equal(t, "Own Striker", result.Reference)
	require.Len(t, result.Rows, 2)
	assert.Equal(t, "Ada Striker", result.Rows[0].Name)
}

func TestSimilar_Errors(t *testing.T) {
	session := testSession()
	dup := session.Scout()
	dup.Players = append(dup.Players, player("Ada Striker", "ENG", 30, 1, 0.2, "STC"))
	s, _ := newTestServer(t, session, nil)

	tests := []struct {
		name   string
		body   map[string]any
		status int
	}{
		{"missing name", map[string]any{"stats": []string{"Gls/90"}}, http.StatusUnprocessableEntity},
		{"unknown player", map[string]any{"name": "Nobody", "stats": []string{"Gls/90"}}, http.StatusNotFound},
		{"ambiguous", map[string]any{"name": "Ada Striker", "stats": []string{"Gls/90"}}, http.StatusUnprocessableEntity},
		{"text stat", map[string]any{"name": "Bo Winger", "stats": []string{"Club"}}, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/similar", tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
		})
	}
}

func TestSquadSummary(t *testing.T) {
	s, _ := newTestServer(t, testSession(), nil)

	rec := do(t, s, http.MethodGet, "/squad/summary", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	summary := decode[types.SquadSummary](t, rec)
	assert.Equal(t, 2, summary.TotalPlayers)
	assert.Equal(t, 26.5, summary.AverageAge)
	require.Len(t, summary.TopSalaries, 1, "server default top n")
	assert.Equal(t, "Own Striker", summary.TopSalaries[0].Name)

	rec = do(t, s, http.MethodGet, "/squad/summary?top=5", nil)
	assert.Len(t, decode[types.SquadSummary](t, rec).TopSalaries, 2)

	rec = do(t, s, http.MethodGet, "/squad/summary?top=0", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSquadReview(t *testing.T) {
	reviewer := &fakeReviewer{}
	s, _ := newTestServer(t, testSession(), reviewer)

	rec := do(t, s, http.MethodPost, "/squad/review", map[string]any{})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Rovers", reviewer.club, "server default club")
	assert.Equal(t, "Solid", decode[report.Review](t, rec).OverallPerformance)

	rec = do(t, s, http.MethodPost, "/squad/review", map[string]any{"club": "United", "format": "text"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "United", decode[reviewTextResponse](t, rec).Club)

	rec = do(t, s, http.MethodPost, "/squad/review", map[string]any{"format": "pdf"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestSquadReview_Errors(t *testing.T) {
	s, _ := newTestServer(t, testSession(), nil)
	rec := do(t, s, http.MethodPost, "/squad/review", map[string]any{})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	failing := &fakeReviewer{err: &report.APICallError{Message: "quota", Cause: errors.New("429")}}
	s, hook := newTestServer(t, testSession(), failing)
	rec = do(t, s, http.MethodPost, "/squad/review", map[string]any{})
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "UPSTREAM_FAILED", errorCode(t, rec))
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)

	s, _ = newTestServer(t, NewSession(testSession().Scout(), nil), &fakeReviewer{})
	rec = do(t, s, http.MethodPost, "/squad/review", map[string]any{})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRateLimit(t *testing.T) {
	logger, _ := test.NewNullLogger()
	s := New(Config{
		RateLimit: &ratelimit.Config{
			Enabled:         true,
			DefaultLimit:    2,
			DefaultWindow:   time.Hour,
			EndpointConfigs: ratelimit.DefaultEndpointConfigs(),
		},
		Logger: logrus.NewEntry(logger),
	}, testSession())
	defer s.Close()

	for i := 0; i < 2; i++ {
		rec := do(t, s, http.MethodGet, "/presets", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, fmt.Sprint(1-i), rec.Header().Get("X-RateLimit-Remaining"))
	}

	rec := do(t, s, http.MethodGet, "/presets", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "RATE_LIMITED", errorCode(t, rec))
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	// Health is never limited
	assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/health", nil).Code)
}

func TestCORS(t *testing.T) {
	logger, _ := test.NewNullLogger()
	s := New(Config{
		CORSOrigins: []string{"http://localhost:5173"},
		RateLimit:   &ratelimit.Config{Enabled: false},
		Logger:      logrus.NewEntry(logger),
	}, testSession())
	defer s.Close()

	req := httptest.NewRequest(http.MethodOptions, "/rank", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://evil.test")
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{&ErrValidation{Field: "x"}, http.StatusBadRequest},
		{&ErrNotLoaded{Origin: "squad"}, http.StatusNotFound},
		{fmt.Errorf("wrapped: %w", &ErrNotFound{Kind: "player"}), http.StatusNotFound},
		{&report.ParseError{Message: "bad"}, http.StatusBadGateway},
		{&ingestion.SchemaError{Message: "no table"}, http.StatusUnprocessableEntity},
		{&ErrUnavailable{Message: "off"}, http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			status, _ := HTTPStatus(tt.err)
			assert.Equal(t, tt.status, status)
		})
	}
}
