package similarity

import (
	"errors"
	"fmt"
)

// Stat selection failures, wrapped in a *ValidationError.
var (
	ErrNoStats            = errors.New("no stats given")
	ErrDuplicateStat      = errors.New("stat listed more than once")
	ErrUnknownStat        = errors.New("stat is not a column of the table")
	ErrNonNumericStat     = errors.New("stat is not numeric")
	ErrAmbiguousReference = errors.New("reference name matches more than one player")
)

// ValidationError reports a stat list the similarity engine cannot use.
type ValidationError struct {
	Stat string
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Stat == "" {
		return fmt.Sprintf("validation error: %v", e.Err)
	}
	return fmt.Sprintf("validation error for stat %q: %v", e.Stat, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NotFoundError means the reference player is not in the reference table.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("player %q not found", e.Name)
}

// AmbiguousError means more than one reference row carries the requested name.
type AmbiguousError struct {
	Name    string
	Matches int
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("player %q matches %d rows", e.Name, e.Matches)
}

func (e *AmbiguousError) Unwrap() error {
	return ErrAmbiguousReference
}
