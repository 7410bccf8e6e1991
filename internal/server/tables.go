package server

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jonathan/fm-scout/internal/ingestion"
	"github.com/jonathan/fm-scout/internal/normalize"
	"github.com/jonathan/fm-scout/internal/types"
	"github.com/sirupsen/logrus"
)

// maxUploadBytes caps the size of an uploaded export.
const maxUploadBytes = 32 << 20

type uploadResponse struct {
	ID      uuid.UUID     `json:"id"`
	Origin  types.Origin  `json:"origin"`
	Players int           `json:"players"`
	Issues  []types.Issue `json:"issues"`
}

// handleUploadTable replaces a session table with an uploaded HTML export.
func (s *Server) handleUploadTable(w http.ResponseWriter, r *http.Request) {
	origin := types.Origin(chi.URLParam(r, "table"))
	if origin != types.OriginScouting && origin != types.OriginSquad {
		s.writeError(w, r, &ErrValidation{Field: "table", Message: "must be scouting or squad"})
		return
	}

	raw, err := ingestion.ReadHTML(http.MaxBytesReader(w, r.Body, maxUploadBytes))
	if err != nil {
		var schemaErr *ingestion.SchemaError
		if !errors.As(err, &schemaErr) {
			err = &ErrValidation{Field: "body", Message: err.Error()}
		}
		s.writeError(w, r, err)
		return
	}

	table, err := normalize.Normalize(raw, normalize.Options{
		Squad:         origin == types.OriginSquad,
		FreeAgentDate: s.freeAgent,
		Source:        "upload",
		Logger:        s.logger.WithField("table", origin),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if origin == types.OriginSquad {
		s.session.SetSquad(table)
	} else {
		s.session.SetScout(table)
	}

	s.logger.WithFields(logrus.Fields{
		"table":   origin,
		"id":      table.ID,
		"players": table.Len(),
		"issues":  len(table.Issues),
	}).Info("Table replaced")

	issues := table.Issues
	if issues == nil {
		issues = []types.Issue{}
	}
	s.jsonResponse(w, http.StatusOK, uploadResponse{
		ID:      table.ID,
		Origin:  origin,
		Players: table.Len(),
		Issues:  issues,
	})
}
