package models

import (
	"math"
	"testing"
)

func TestPendulumInitialStateConsistent(t *testing.T) {
	for _, theta := range []float64{0, math.Pi / 4, math.Pi / 2, 2.0} {
		p := NewPendulum()
		p.Theta0 = theta
		p.Omega0 = 1.5

		q, u := p.Q0(), p.U0()
		if g := p.G(0, q); math.Abs(g[0]) > 1e-12 {
			t.Errorf("theta=%g: g(q0) = %g", theta, g[0])
		}
		if gd := p.GDot(0, q, u); math.Abs(gd[0]) > 1e-12 {
			t.Errorf("theta=%g: g_dot(q0,u0) = %g", theta, gd[0])
		}
	}
}

func TestPendulumConstraintGradient(t *testing.T) {
	p := NewPendulum()
	q := []float64{0.6, -0.8}

	w := p.WG(0, q).Dense()
	if math.Abs(w.At(0, 0)-1.2) > 1e-12 || math.Abs(w.At(1, 0)+1.6) > 1e-12 {
		t.Errorf("W_g = [%f %f], want [1.2 -1.6]", w.At(0, 0), w.At(1, 0))
	}
}

func TestPendulumSecondDerivative(t *testing.T) {
	p := NewPendulum()
	q := []float64{1, 0}
	u := []float64{0, 2}
	uDot := []float64{-4, 0}

	// g̈ = 2(u·u) + 2(q·u̇) = 2·4 + 2·(-4) = 0: circular motion.
	gdd := p.GDDot(0, q, u, uDot)
	if math.Abs(gdd[0]) > 1e-12 {
		t.Errorf("g_ddot = %g, want 0", gdd[0])
	}
}

func TestPendulumEnergyAtRest(t *testing.T) {
	p := NewPendulum()
	p.Theta0 = 0 // hanging down

	e := p.Energy(p.Q0(), p.U0())
	if math.Abs(e+p.Mass*p.Gravity*p.Length) > 1e-12 {
		t.Errorf("energy = %f, want %f", e, -p.Mass*p.Gravity*p.Length)
	}
}
