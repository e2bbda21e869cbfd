package sim

import "errors"

// Domain errors for simulation operations.
var (
	// ErrDimensionMismatch indicates a state, derivative or control vector
	// whose length does not match what the operation requires.
	ErrDimensionMismatch = errors.New("sim: dimension mismatch")

	// ErrInvalidState indicates a state vector containing NaN or Inf.
	ErrInvalidState = errors.New("sim: invalid state (NaN or Inf detected)")

	// ErrParameterBounds indicates a parameter value outside its valid range.
	ErrParameterBounds = errors.New("sim: parameter out of valid bounds")
)
