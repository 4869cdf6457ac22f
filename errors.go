package sinkscan

import (
	"errors"
	"fmt"
)

var (
	// ErrNilNetwork is returned when Scan is given a nil network.
	ErrNilNetwork = errors.New("network must not be nil")
)

// ErrInvalidConfig indicates a configuration value that failed validation.
// Configuration errors are fatal: a scan never starts with a half-valid
// setup.
//
// The underlying error (if any) can be accessed via errors.Unwrap.
type ErrInvalidConfig struct {
	Option string
	cause  error
}

func (e *ErrInvalidConfig) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("invalid configuration %q: %v", e.Option, e.cause)
	}
	return fmt.Sprintf("invalid configuration %q", e.Option)
}

func (e *ErrInvalidConfig) Unwrap() error { return e.cause }
