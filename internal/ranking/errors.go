package ranking

import (
	"errors"
	"fmt"
)

// Weight validation failures. Each is reported wrapped in a *ValidationError.
var (
	ErrNoWeights         = errors.New("no stat weights given")
	ErrDuplicateStat     = errors.New("stat weighted more than once")
	ErrUnknownStat       = errors.New("stat is not a column of the table")
	ErrNonNumericStat    = errors.New("stat is not numeric")
	ErrNonPositiveWeight = errors.New("weight must be a finite number greater than zero")
	ErrUnknownPreset     = errors.New("no such preset")
)

// ValidationError reports a weight mapping the ranking engine cannot use.
type ValidationError struct {
	Stat   string
	Weight float64
	Err    error
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
