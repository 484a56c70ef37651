package dynamo

import "errors"

// Domain errors for simulation operations.
var (
	// ErrInvalidConfig indicates a configuration value outside its valid range.
	ErrInvalidConfig = errors.New("dynamo: invalid configuration")

	// ErrContextCanceled indicates the run was interrupted between ticks.
	ErrContextCanceled = errors.New("dynamo: simulation canceled by context")

	// ErrUnknownPreset indicates a preset name that is not registered.
	ErrUnknownPreset = errors.New("dynamo: unknown preset")

	// ErrEmptyRun indicates a stored run without recorded frames.
	ErrEmptyRun = errors.New("dynamo: run has no frames")
)

// SimulationError wraps an error with simulation context.
type SimulationError struct {
	Tick    int
	Time    float64
	Wrapped error
}

func (e *SimulationError) Error() string {
	return e.Wrapped.Error()
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
