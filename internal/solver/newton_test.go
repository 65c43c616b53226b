package solver

import (
	"context"
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/mweb/condyn/internal/la"
	"github.com/mweb/condyn/internal/models"
)

func TestFDJacobianMatchesAnalytic(t *testing.T) {
	// The rotor residual is affine in the unknowns, so its Jacobian is
	// known in closed form through the alpha update chain rule.
	r := models.NewRotor()
	eng, err := New(r, 1.0, 1e-2, DefaultOptions())
	if err != nil {
		t.Fatalf("engine construction failed: %v", err)
	}

	tNext := eng.t0 + eng.dt
	x := la.Clone(eng.hist.x)
	res := func(y []float64) []float64 {
		return eng.residual(eng.evalTrial(tNext, y), nil)
	}

	gp := eng.dt * eng.par.gamma * (1 - eng.par.alphaF) / (1 - eng.par.alphaM)
	want := [2][2]float64{
		{1, -gp},
		{0, r.Inertia + r.Damping*gp},
	}

	for _, method := range []la.FDMethod{la.Forward, la.Central} {
		j := la.NumJacobian(res, x, method, 0)
		for i := 0; i < 2; i++ {
			for k := 0; k < 2; k++ {
				if math.Abs(j.At(i, k)-want[i][k]) > 1e-5 {
					t.Errorf("method %d: J[%d][%d] = %g, want %g", method, i, k, j.At(i, k), want[i][k])
				}
			}
		}
	}
}

// rotorJacobian is the closed-form Jacobian of the rotor step residual.
type rotorJacobian struct {
	inertia, damping, gp float64
}

func (r rotorJacobian) Jacobian(_ float64, _ []float64, _ ResidualFunc) (*mat.Dense, error) {
	j := mat.NewDense(2, 2, nil)
	j.Set(0, 0, 1)
	j.Set(0, 1, -r.gp)
	j.Set(1, 1, r.inertia+r.damping*r.gp)
	return j, nil
}

func TestAnalyticJacobianMatchesFDSolve(t *testing.T) {
	run := func(opts Options) Snapshot {
		eng, err := New(models.NewRotor(), 1.0, 1e-2, opts)
		if err != nil {
			t.Fatalf("engine construction failed: %v", err)
		}
		sol, err := eng.Solve(context.Background())
		if err != nil {
			t.Fatalf("solve failed: %v", err)
		}
		return sol.Last()
	}

	fd := run(DefaultOptions())

	p := newAlphaParams(1.0)
	r := models.NewRotor()
	opts := DefaultOptions()
	opts.Jacobian = rotorJacobian{
		inertia: r.Inertia,
		damping: r.Damping,
		gp:      1e-2 * p.gamma * (1 - p.alphaF) / (1 - p.alphaM),
	}
	an := run(opts)

	if math.Abs(fd.Q[0]-an.Q[0]) > 1e-9 || math.Abs(fd.U[0]-an.U[0]) > 1e-9 {
		t.Errorf("analytic vs finite-difference trajectories diverge: q %g vs %g, u %g vs %g",
			fd.Q[0], an.Q[0], fd.U[0], an.U[0])
	}
}

func TestNewtonEarlyExitAtSteadyState(t *testing.T) {
	// At the torque/damping equilibrium the warm start already solves
	// the step, so Newton must accept it without iterating.
	r := models.NewRotor()
	r.Omega0 = r.Torque / r.Damping

	eng, err := New(r, 0.5, 1e-2, DefaultOptions())
	if err != nil {
		t.Fatalf("engine construction failed: %v", err)
	}
	sol, err := eng.Solve(context.Background())
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}

	for i := 0; i < sol.Len(); i++ {
		if math.Abs(sol.At(i).U[0]-r.Omega0) > 1e-10 {
			t.Fatalf("step %d left the equilibrium: omega = %g", i, sol.At(i).U[0])
		}
	}
}

func TestNewtonConvergenceError(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxIter = 2
	opts.Atol = 1e-12

	// One huge step of a strongly nonlinear system cannot reach 1e-12
	// in two iterations.
	eng, err := New(models.NewPendulum(), 1.0, 0.5, opts)
	if err != nil {
		t.Fatalf("engine construction failed: %v", err)
	}

	sol, err := eng.Solve(context.Background())
	if err == nil {
		t.Fatal("expected a convergence error")
	}

	var ce *ConvergenceError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *ConvergenceError, got %T: %v", err, err)
	}
	if ce.Iterations != opts.MaxIter {
		t.Errorf("reported %d iterations, want %d", ce.Iterations, opts.MaxIter)
	}
	if ce.Residual <= opts.Atol {
		t.Errorf("reported residual %g not above tolerance", ce.Residual)
	}
	if sol.Len() < 1 {
		t.Error("partial trajectory missing the initial snapshot")
	}
}
