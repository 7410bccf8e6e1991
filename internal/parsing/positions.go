package parsing

import (
	"strings"

	"github.com/jonathan/fm-scout/internal/types"
)

// KnownPositions is the enumeration of role codes a position string may expand to.
var KnownPositions = types.NewPositionSet(
	"GK",
	"DC", "DL", "DR",
	"WBL", "WBR",
	"DM",
	"MC", "ML", "MR",
	"AMC", "AML", "AMR",
	"STC",
)

// ParsePositions expands a position string such as "D/WB/M (RL), ST (C)" into the set of
// role codes it denotes. A malformed token is skipped whole. A well-formed token expands
// to every role+side pair, and pairs outside KnownPositions are dropped one by one. Both
// are returned in skipped so the caller can report them.
func ParsePositions(value string) (types.PositionSet, []string) {
	set := types.NewPositionSet()
	var skipped []string

	for _, token := range strings.Split(value, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		pairs, ok := expandPositionToken(token)
		if !ok {
			skipped = append(skipped, token)
			continue
		}
		for _, p := range pairs {
			code, known := p.code()
			if !known {
				skipped = append(skipped, p.role+p.side)
				continue
			}
			set[code] = struct{}{}
		}
	}

	return set, skipped
}

type rolePair struct {
	role, side string
}

// code resolves the pair against KnownPositions. Roles without sided variants
// (GK, DM) accept a centre side, so "DM (C)" is DM.
func (p rolePair) code() (string, bool) {
	if c := p.role + p.side; KnownPositions.Has(c) {
		return c, true
	}
	if p.side == "C" && KnownPositions.Has(p.role) {
		return p.role, true
	}
	return "", false
}

// expandPositionToken splits one comma-separated token into role/side pairs.
// It fails only on broken structure.
func expandPositionToken(token string) ([]rolePair, bool) {
	open := strings.IndexByte(token, '(')
	closing := strings.IndexByte(token, ')')

	if open < 0 && closing < 0 {
		roles, ok := splitRoles(token)
		if !ok {
			return nil, false
		}
		pairs := make([]rolePair, len(roles))
		for i, r := range roles {
			pairs[i] = rolePair{role: r}
		}
		return pairs, true
	}

	// Exactly one "(...)" group, at the end of the token, preceded by roles.
	if open <= 0 || closing != len(token)-1 || strings.Count(token, "(") != 1 || strings.Count(token, ")") != 1 {
		return nil, false
	}

	roles, ok := splitRoles(token[:open])
	if !ok {
		return nil, false
	}
	sides := strings.TrimSpace(token[open+1 : closing])
	if sides == "" {
		return nil, false
	}
	for _, side := range sides {
		if side < 'A' || side > 'Z' {
			return nil, false
		}
	}

	pairs := make([]rolePair, 0, len(roles)*len(sides))
	for _, role := range roles {
		for _, side := range sides {
			pairs = append(pairs, rolePair{role: role, side: string(side)})
		}
	}
	return pairs, true
}

func splitRoles(s string) ([]string, bool) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	roles := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			return nil, false
		}
		roles = append(roles, p)
	}
	return roles, true
}
