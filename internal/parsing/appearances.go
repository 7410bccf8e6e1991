// Package parsing provides parsers for the irregular text fields found in player exports.
package parsing

import (
	"strconv"
	"strings"
)

// ParseAppearances parses "N" or "N (M)" into N+M, where M counts substitute appearances.
func ParseAppearances(value string) (int, error) {
	s := strings.TrimSpace(value)

	head, tail := s, ""
	if i := strings.IndexByte(s, '('); i >= 0 {
		head, tail = strings.TrimSpace(s[:i]), s[i:]
	}

	starts, err := strconv.Atoi(head)
	if err != nil {
		return 0, &ParseError{Value: value, Message: "appearance count is not an integer", Cause: err}
	}
	if starts < 0 {
		return 0, &ParseError{Value: value, Message: "appearance count is negative"}
	}

	if tail == "" {
		return starts, nil
	}

	if !strings.HasSuffix(tail, ")") {
		return 0, &ParseError{Value: value, Message: "unterminated substitute count"}
	}
	subs, err := strconv.Atoi(strings.TrimSpace(tail[1 : len(tail)-1]))
	if err != nil {
		return 0, &ParseError{Value: value, Message: "substitute count is not an integer", Cause: err}
	}
	if subs < 0 {
		return 0, &ParseError{Value: value, Message: "substitute count is negative"}
	}

	return starts + subs, nil
}
