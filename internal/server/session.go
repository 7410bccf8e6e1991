package server

import (
	"sync"

	"github.com/jonathan/fm-scout/internal/types"
)

// Session holds the tables the dashboard works on. The tool is single-user,
// so one session serves every request.
type Session struct {
	mu    sync.RWMutex
	scout *types.Table
	squad *types.Table
}

// NewSession creates a session. Either table may be nil until loaded.
func NewSession(scout, squad *types.Table) *Session {
	return &Session{scout: scout, squad: squad}
}

// Scout returns the scouting table, or nil.
func (s *Session) Scout() *types.Table {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scout
}

// Squad returns the squad table, or nil.
func (s *Session) Squad() *types.Table {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.squad
}

// SetScout replaces the scouting table.
func (s *Session) SetScout(t *types.Table) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scout = t
}

// SetSquad replaces the squad table.
func (s *Session) SetSquad(t *types.Table) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.squad = t
}

// Table returns the table for origin; empty origin means the scouting table.
func (s *Session) Table(origin string) (*types.Table, error) {
	var t *types.Table
	switch types.Origin(origin) {
	case "", types.OriginScouting:
		origin = string(types.OriginScouting)
		t = s.Scout()
	case types.OriginSquad:
		t = s.Squad()
	default:
		return nil, &ErrValidation{Field: "table", Message: "must be scouting or squad"}
	}
	if t == nil {
		return nil, &ErrNotLoaded{Origin: origin}
	}
	return t, nil
}
