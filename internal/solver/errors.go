package solver

import (
	"errors"
	"fmt"
)

// Domain errors of the integrator.
var (
	// ErrInconsistentInitialConditions indicates that the model's
	// initial state violates its own constraints at position, velocity
	// or acceleration level.
	ErrInconsistentInitialConditions = errors.New("solver: inconsistent initial conditions")

	// ErrActiveSetOscillation indicates the contact active set kept
	// changing for the whole Newton iteration budget of a step.
	ErrActiveSetOscillation = errors.New("solver: contact active set failed to stabilize")
)

// ConvergenceError reports a Newton iteration that exhausted its
// iteration budget. It aborts the whole solve; no retry or step-size
// reduction is attempted.
type ConvergenceError struct {
	Time       float64
	Step       int
	Iterations int
	Residual   float64
	Reason     error // optional underlying cause, e.g. ErrActiveSetOscillation
}

func (e *ConvergenceError) Error() string {
	msg := fmt.Sprintf("solver: newton not converged at t=%.6e (step %d) after %d iterations, residual %.3e",
		e.Time, e.Step, e.Iterations, e.Residual)
	if e.Reason != nil {
		msg += ": " + e.Reason.Error()
	}
	return msg
}

func (e *ConvergenceError) Unwrap() error { return e.Reason }

// InitialConditionError wraps ErrInconsistentInitialConditions with the
// violated quantity.
type InitialConditionError struct {
	Quantity string  // "g", "g_dot", "g_ddot", "gamma", "gamma_dot" or "g_N"
	Norm     float64 // max-abs violation (signed minimum gap for "g_N")
}

func (e *InitialConditionError) Error() string {
	return fmt.Sprintf("%v: %s violated by %.3e", ErrInconsistentInitialConditions, e.Quantity, e.Norm)
}

func (e *InitialConditionError) Unwrap() error { return ErrInconsistentInitialConditions }
