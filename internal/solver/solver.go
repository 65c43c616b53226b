package solver

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/mweb/condyn/internal/la"
	"github.com/mweb/condyn/internal/model"
)

// Observer is notified after every accepted step.
type Observer interface {
	OnStep(sn Snapshot)
}

// GenAlpha is the generalized-alpha DAE integrator. A GenAlpha is not
// safe for concurrent use; each step depends on the committed history
// of the previous one.
type GenAlpha struct {
	model  model.Model
	dims   model.Dims
	layout Layout
	opts   Options
	par    alphaParams
	jac    JacobianProvider
	log    *slog.Logger

	t0, t1, dt float64
	proxRN     []float64

	hist      history
	observers []Observer
}

// New constructs an engine for the given model and time grid, solving
// for consistent initial conditions at t0. It fails before any stepping
// if the initial state violates the model's constraints.
func New(m model.Model, t1, dt float64, opts Options) (*GenAlpha, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if dt <= 0 {
		return nil, fmt.Errorf("solver: dt must be positive, got %g", dt)
	}
	if t1 <= m.T0() {
		return nil, fmt.Errorf("solver: t1=%g must be larger than initial time t0=%g", t1, m.T0())
	}

	d := m.Dims()
	// GGL and contact stabilization project constraint directions onto
	// the position rates, so W matrices must act in coordinate space.
	if (opts.GGL && d.NlaG > 0) || d.NlaN > 0 {
		if d.Nq != d.Nu {
			return nil, fmt.Errorf("solver: constraint projection onto the kinematic equation requires nq == nu, got nq=%d nu=%d", d.Nq, d.Nu)
		}
	}
	s := &GenAlpha{
		model:  m,
		dims:   d,
		layout: NewLayout(d, opts.GGL),
		opts:   opts,
		par:    newAlphaParams(opts.RhoInf),
		jac:    opts.Jacobian,
		log:    opts.Logger,
		t0:     m.T0(),
		t1:     t1,
		dt:     dt,
	}
	if s.jac == nil {
		s.jac = FDJacobian{Method: la.Forward}
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	if d.NlaN > 0 {
		s.proxRN = la.Clone(m.ProxRN())
		if len(s.proxRN) != d.NlaN {
			return nil, fmt.Errorf("solver: model supplies %d prox parameters for %d contacts", len(s.proxRN), d.NlaN)
		}
		for i, r := range s.proxRN {
			if r <= 0 {
				return nil, fmt.Errorf("solver: prox parameter r_N[%d] = %g must be positive", i, r)
			}
		}
	}

	uDot0, laG0, laGamma0, err := consistentInitialConditions(m, opts.Atol)
	if err != nil {
		return nil, err
	}

	t0, q0, u0 := m.T0(), la.Clone(m.Q0()), la.Clone(m.U0())
	qDot0 := m.QDot(t0, q0, u0)

	laN0 := la.Clone(m.LaN0())
	if laN0 == nil {
		laN0 = make([]float64, d.NlaN)
	}

	y0 := make([]float64, d.Nq+d.Nu)
	copy(y0, q0)
	copy(y0[d.Nq:], u0)
	yDot0 := make([]float64, d.Nq+d.Nu)
	copy(yDot0, qDot0)
	copy(yDot0[d.Nq:], uDot0)

	unk0 := Unknowns{
		QDot:     qDot0,
		UDot:     uDot0,
		LaG:      laG0,
		LaGamma:  laGamma0,
		KappaN:   make([]float64, d.NlaN),
		ImpulseN: make([]float64, d.NlaN),
		LaN:      laN0,
	}
	if opts.GGL {
		unk0.KappaG = make([]float64, d.NlaG)
	}

	s.hist = history{
		t:      t0,
		y:      y0,
		yDot:   yDot0,
		v:      la.Clone(yDot0),
		laN:    la.Clone(laN0),
		laNBar: la.Clone(laN0),
		x:      s.layout.Pack(unk0),
	}

	return s, nil
}

// AddObserver registers an observer notified after each accepted step.
func (s *GenAlpha) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Layout exposes the unknown-vector layout, mainly for tests and
// analytic Jacobian providers.
func (s *GenAlpha) Layout() Layout { return s.layout }

// Solve advances the system from t0 to t1 in fixed steps of dt. On a
// Newton failure the solve aborts and returns the trajectory up to the
// last committed step together with the error. The context is checked
// between steps only.
func (s *GenAlpha) Solve(ctx context.Context) (*Solution, error) {
	sol := &Solution{}

	// initial snapshot from the consistent initial conditions
	unk0 := s.layout.Unpack(s.hist.x)
	sol.append(cloneSnapshot(s.hist.t, s.hist.y[:s.dims.Nq], s.hist.y[s.dims.Nq:], unk0.QDot, unk0.UDot, unk0))

	steps := int(math.Round((s.t1 - s.t0) / s.dt))
	for k := 0; k < steps; k++ {
		select {
		case <-ctx.Done():
			return sol, ctx.Err()
		default:
		}

		t1 := s.t0 + float64(k+1)*s.dt

		x := la.Clone(s.hist.x)
		x, tr, _, iters, resid, err := s.newtonStep(k, t1, x)
		if err != nil {
			return sol, err
		}
		s.log.Debug("step accepted",
			"t", t1, "newton_iterations", iters, "residual", resid)

		sn := s.commit(t1, x, tr)
		sol.append(sn)

		for _, o := range s.observers {
			o.OnStep(sn)
		}
	}

	return sol, nil
}

// commit folds a converged step into the carried history: alpha update
// with store=true, impulse velocity jump, contact filter memory, model
// step callback (whose result replaces the carried coordinates) and
// warm-start vector.
func (s *GenAlpha) commit(t float64, x []float64, tr trial) Snapshot {
	d := s.dims
	ny := d.Nq + d.Nu
	unk := s.layout.Unpack(x)

	q1, u1 := s.update(x[:ny], true)

	if d.NlaN > 0 {
		// u1 aliases the carried state, so the impulse velocity jump
		// persists into the next step.
		du := s.impulseJump(t, q1, unk.ImpulseN)
		for i := range u1 {
			u1[i] += du[i]
		}
		s.hist.laNBar = tr.laNBar
		s.hist.laN = la.Clone(unk.LaN)
	}

	qc, uc := s.model.StepCallback(t, q1, u1)
	copy(s.hist.y[:d.Nq], qc)
	copy(s.hist.y[d.Nq:], uc)

	s.hist.t = t
	s.hist.x = la.Clone(x)

	return cloneSnapshot(t, qc, uc, unk.QDot, unk.UDot, unk)
}
