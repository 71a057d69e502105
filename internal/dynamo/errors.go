package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidRadius indicates a spawn with a radius that is not strictly positive.
	ErrInvalidRadius = errors.New("dynamo: invalid radius (must be > 0)")

	// ErrInvalidPosition indicates a spawn at a NaN or infinite position.
	ErrInvalidPosition = errors.New("dynamo: invalid position (NaN or Inf)")

	// ErrInvalidState indicates a body whose position became NaN or Inf.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrContextCanceled indicates the run was interrupted.
	ErrContextCanceled = errors.New("dynamo: simulation canceled by context")
)

// SimulationError wraps an error with the frame it happened on.
type SimulationError struct {
	Frame   int
	Time    float64
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("frame %d (t=%.4f): %v", e.Frame, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
