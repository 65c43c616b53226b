package solver

import (
	"gonum.org/v1/gonum/mat"

	"github.com/mweb/condyn/internal/la"
)

// ResidualFunc evaluates the step residual at an unknown vector. The
// active-set masks are frozen inside a single ResidualFunc.
type ResidualFunc func(x []float64) []float64

// JacobianProvider computes ∂R/∂x for the step residual. The matrix is
// rebuilt from scratch every Newton iteration: active-set changes can
// alter its nonzero pattern, so no factorization reuse is assumed safe.
//
// The default is finite differences over the full unknown vector;
// analytic providers are a performance optimization and should be
// verified against the finite-difference path.
type JacobianProvider interface {
	Jacobian(t float64, x []float64, r ResidualFunc) (*mat.Dense, error)
}

// FDJacobian approximates the Jacobian by finite differences.
type FDJacobian struct {
	Method la.FDMethod
	Eps    float64 // base perturbation; 0 selects la.DefaultFDEps
}

func (f FDJacobian) Jacobian(_ float64, x []float64, r ResidualFunc) (*mat.Dense, error) {
	return la.NumJacobian(func(y []float64) []float64 { return r(y) }, x, f.Method, f.Eps), nil
}

// newtonStep solves R(x) = 0 at time t, warm-started from x. The
// contact active set is recomputed after every Newton update until it
// repeats once, then frozen for the rest of the step; residual
// evaluations inside the Jacobian always use the frozen masks.
//
// Returns the converged unknown vector, its trial state, the final
// masks, the iteration count and the final residual error.
func (s *GenAlpha) newtonStep(step int, t float64, x []float64) ([]float64, trial, ActiveSet, int, float64, error) {
	hasContacts := s.dims.NlaN > 0

	tr := s.evalTrial(t, x)
	var as ActiveSet
	if hasContacts {
		as = s.classify(tr)
	}
	frozen := !hasContacts

	r := s.residual(tr, as)
	errVal := la.MaxAbs(r)
	if errVal <= s.opts.Atol {
		return x, tr, as, 0, errVal, nil
	}

	for it := 1; it <= s.opts.MaxIter; it++ {
		frozenRes := func(y []float64) []float64 {
			return s.residual(s.evalTrial(t, y), as)
		}
		j, err := s.jac.Jacobian(t, x, frozenRes)
		if err != nil {
			return x, tr, as, it, errVal, err
		}

		dx, err := la.SolveDense(j, r)
		if err != nil {
			return x, tr, as, it, errVal, err
		}
		for i := range x {
			x[i] -= dx[i]
		}

		tr = s.evalTrial(t, x)
		if !frozen {
			next := s.classify(tr)
			if next.Equal(as) {
				frozen = true
			} else {
				as = next
			}
		}

		r = s.residual(tr, as)
		errVal = la.MaxAbs(r)
		if errVal <= s.opts.Atol {
			return x, tr, as, it, errVal, nil
		}
	}

	// Non-stabilizing masks are indistinguishable from non-convergence,
	// but worth naming in the report.
	var reason error
	if !frozen {
		reason = ErrActiveSetOscillation
	}
	return x, tr, as, s.opts.MaxIter, errVal, &ConvergenceError{
		Time: t, Step: step, Iterations: s.opts.MaxIter, Residual: errVal, Reason: reason,
	}
}
