package solver

import (
	"math"
	"testing"

	"github.com/mweb/condyn/internal/model"
)

func TestAlphaParams(t *testing.T) {
	// rho_inf = 1: no numerical damping, trapezoidal coefficients.
	p := newAlphaParams(1.0)
	if math.Abs(p.alphaM-0.5) > 1e-15 || math.Abs(p.alphaF-0.5) > 1e-15 {
		t.Errorf("rho=1: alpha_m=%f alpha_f=%f, want 0.5 0.5", p.alphaM, p.alphaF)
	}
	if math.Abs(p.gamma-0.5) > 1e-15 || math.Abs(p.beta-0.25) > 1e-15 {
		t.Errorf("rho=1: gamma=%f beta=%f, want 0.5 0.25", p.gamma, p.beta)
	}

	// rho_inf = 0: maximal damping.
	p = newAlphaParams(0.0)
	if math.Abs(p.alphaM+1.0) > 1e-15 || math.Abs(p.alphaF) > 1e-15 {
		t.Errorf("rho=0: alpha_m=%f alpha_f=%f, want -1 0", p.alphaM, p.alphaF)
	}
	if math.Abs(p.gamma-1.5) > 1e-15 || math.Abs(p.beta-1.0) > 1e-15 {
		t.Errorf("rho=0: gamma=%f beta=%f, want 1.5 1.0", p.gamma, p.beta)
	}
}

func alphaTestEngine(rhoInf, dt float64) *GenAlpha {
	return &GenAlpha{
		dims: model.Dims{Nq: 1, Nu: 1},
		par:  newAlphaParams(rhoInf),
		dt:   dt,
		hist: history{
			y:    []float64{0, 0},
			yDot: []float64{2, 1},
			v:    []float64{2, 1},
		},
	}
}

func TestUpdateTrapezoidal(t *testing.T) {
	// With rho_inf = 1 and v0 = ẏ0 the recurrence degenerates to the
	// trapezoidal rule: y1 = y0 + dt (ẏ0 + ẏ1)/2.
	s := alphaTestEngine(1.0, 0.1)
	q1, u1 := s.update([]float64{4, 3}, false)
	if math.Abs(q1[0]-0.3) > 1e-14 {
		t.Errorf("q1 = %f, want 0.3", q1[0])
	}
	if math.Abs(u1[0]-0.2) > 1e-14 {
		t.Errorf("u1 = %f, want 0.2", u1[0])
	}
}

func TestUpdateWithoutStoreIsPure(t *testing.T) {
	s := alphaTestEngine(0.8, 0.1)

	q1, u1 := s.update([]float64{4, 3}, false)
	q2, u2 := s.update([]float64{4, 3}, false)
	if q1[0] != q2[0] || u1[0] != u2[0] {
		t.Error("repeated evaluation with store=false changed the result")
	}
	if s.hist.y[0] != 0 || s.hist.yDot[0] != 2 || s.hist.v[0] != 2 {
		t.Error("store=false mutated the history")
	}
}

func TestUpdateStoreCommits(t *testing.T) {
	s := alphaTestEngine(0.8, 0.1)

	q1, u1 := s.update([]float64{4, 3}, true)
	if s.hist.y[0] != q1[0] || s.hist.y[1] != u1[0] {
		t.Error("store=true did not commit y")
	}
	if s.hist.yDot[0] != 4 || s.hist.yDot[1] != 3 {
		t.Errorf("store=true did not commit yDot: %v", s.hist.yDot)
	}

	// After a commit the same derivative maps to a different state.
	q2, _ := s.update([]float64{4, 3}, false)
	if q2[0] == q1[0] {
		t.Error("committed history had no effect on the next evaluation")
	}
}

func TestFilterLaN(t *testing.T) {
	s := &GenAlpha{
		dims: model.Dims{Nq: 1, Nu: 1, NlaN: 1},
		par:  newAlphaParams(1.0),
		dt:   0.1,
		hist: history{
			laN:    []float64{1},
			laNBar: []float64{1},
		},
	}

	laNBar, pN, kappaHat := s.filterLaN([]float64{3}, []float64{0.5}, []float64{2})
	if math.Abs(laNBar[0]-3) > 1e-14 {
		t.Errorf("laNBar = %f, want 3", laNBar[0])
	}
	if math.Abs(pN[0]-2.2) > 1e-14 {
		t.Errorf("P_N = %f, want 2.2", pN[0])
	}
	if math.Abs(kappaHat[0]-0.51) > 1e-14 {
		t.Errorf("kappaHat = %f, want 0.51", kappaHat[0])
	}
}
