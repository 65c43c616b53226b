package solver

import (
	"fmt"
	"log/slog"
)

// DAEIndex selects the derivative level of the holonomic bilateral
// constraints enforced by the residual. Index 3 keeps the position
// level g = 0, index 2 the velocity level ġ = 0, index 1 the
// acceleration level g̈ = 0.
type DAEIndex int

const (
	Index1 DAEIndex = 1
	Index2 DAEIndex = 2
	Index3 DAEIndex = 3
)

// Options configures a GenAlpha engine.
type Options struct {
	// RhoInf is the spectral radius at infinite frequency in [0, 1].
	// 1 means no numerical damping, 0 maximal damping.
	RhoInf float64

	// Atol is the convergence threshold on the max-abs of the residual.
	// Callers needing different physical units must pre-scale.
	Atol float64

	// MaxIter bounds the Newton iterations per step. Exceeding it is a
	// fatal ConvergenceError.
	MaxIter int

	// DAEIndex selects the bilateral constraint level (see DAEIndex).
	DAEIndex DAEIndex

	// GGL enables Gear-Gupta-Leimkuhler stabilization: the position
	// level g = 0 is enforced alongside the DAEIndex level and the
	// constraint directions are projected onto the kinematic equation.
	// Requires DAEIndex 1 or 2.
	GGL bool

	// Jacobian computes ∂R/∂x. Nil selects two-point finite
	// differences, the robust default; analytic providers are a
	// performance optimization only.
	Jacobian JacobianProvider

	// Logger receives per-step debug output. Nil selects slog.Default.
	Logger *slog.Logger
}

// DefaultOptions mirrors the reference solver defaults: no numerical
// damping, index-2 GGL formulation, finite-difference Jacobian.
func DefaultOptions() Options {
	return Options{
		RhoInf:   1.0,
		Atol:     1e-8,
		MaxIter:  40,
		DAEIndex: Index2,
		GGL:      true,
	}
}

func (o Options) validate() error {
	if o.RhoInf < 0 || o.RhoInf > 1 {
		return fmt.Errorf("solver: rho_inf must be in [0,1], got %g", o.RhoInf)
	}
	if o.Atol <= 0 {
		return fmt.Errorf("solver: atol must be positive, got %g", o.Atol)
	}
	if o.MaxIter <= 0 {
		return fmt.Errorf("solver: max_iter must be positive, got %d", o.MaxIter)
	}
	if o.DAEIndex < Index1 || o.DAEIndex > Index3 {
		return fmt.Errorf("solver: DAE index must be 1, 2 or 3, got %d", o.DAEIndex)
	}
	if o.GGL && o.DAEIndex == Index3 {
		return fmt.Errorf("solver: GGL stabilization requires DAE index 1 or 2 (index 3 would enforce the position level twice)")
	}
	return nil
}
