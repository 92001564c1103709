package genome

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidFormat      = errors.New("invalid interval format")
	ErrInvalidChromosome  = errors.New("invalid chromosome")
	ErrInvalidRange       = errors.New("invalid interval range")
	ErrDegenerateInterval = errors.New("interval size must be positive")
	ErrMissingBlockData   = errors.New("no syntenic block data")
	ErrMissingGeneData    = errors.New("no gene data")
)

// ValidationError carries the message shown to the user. Kind is one of
// the sentinels above.
type ValidationError struct {
	Kind error
	Msg  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}
