package orbit

import (
	"errors"
	"fmt"
)

// Domain errors for body construction and position computation.
var (
	// ErrConfiguration is the root of every static configuration failure.
	ErrConfiguration = errors.New("orbit: invalid configuration")

	// ErrInvalidPeriod indicates a body with a non-positive orbital period.
	ErrInvalidPeriod = fmt.Errorf("%w: period must be positive", ErrConfiguration)

	// ErrDuplicateName indicates two bodies sharing a name.
	ErrDuplicateName = fmt.Errorf("%w: duplicate body name", ErrConfiguration)

	// ErrNoBodies indicates an empty body set.
	ErrNoBodies = fmt.Errorf("%w: no bodies defined", ErrConfiguration)

	// ErrDivisionByZero indicates a zero effective period reached the
	// position formula. Construction-time validation normally rules it out.
	ErrDivisionByZero = fmt.Errorf("%w: division by zero", ErrConfiguration)

	// ErrInvalidTime indicates a NaN or infinite time argument.
	ErrInvalidTime = errors.New("orbit: time must be finite")
)

// ConfigurationError wraps an error with the body and field it refers to.
type ConfigurationError struct {
	Body    string
	Field   string
	Wrapped error
}

func (e *ConfigurationError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: %v", e.Field, e.Wrapped)
	}
	return fmt.Sprintf("body %q: %s: %v", e.Body, e.Field, e.Wrapped)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Wrapped
}
