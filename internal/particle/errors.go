package particle

import "errors"

// Domain errors for the particle network.
var (
	// ErrNoContainer indicates there is no surface to attach to. Callers
	// treat it as "animation disabled" rather than a failure.
	ErrNoContainer = errors.New("particle: no container surface")

	// ErrParameterBounds indicates an option value is outside valid range.
	ErrParameterBounds = errors.New("particle: option out of valid bounds")

	// ErrUnknownMotion indicates an unrecognized motion model name.
	ErrUnknownMotion = errors.New("particle: unknown motion model")

	// ErrUnknownSpawn indicates an unrecognized spawn policy name.
	ErrUnknownSpawn = errors.New("particle: unknown spawn policy")
)

// OptionError wraps a bounds failure with the offending option name.
type OptionError struct {
	Option  string
	Value   float64
	Wrapped error
}

func (e *OptionError) Error() string {
	return e.Option + ": " + e.Wrapped.Error()
}

func (e *OptionError) Unwrap() error {
	return e.Wrapped
}
