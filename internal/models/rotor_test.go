package models

import (
	"math"
	"testing"
)

func TestRotorAngleRewrap(t *testing.T) {
	r := NewRotor()

	cases := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi, math.Pi},
		{3 * math.Pi / 2, -math.Pi / 2},
		{-3 * math.Pi / 2, math.Pi / 2},
		{5 * math.Pi, math.Pi},
	}
	for _, tc := range cases {
		q, _ := r.StepCallback(0, []float64{tc.in}, []float64{1})
		if math.Abs(q[0]-tc.want) > 1e-12 {
			t.Errorf("wrap(%g) = %g, want %g", tc.in, q[0], tc.want)
		}
	}
}

func TestRotorCallbackKeepsVelocity(t *testing.T) {
	r := NewRotor()
	_, u := r.StepCallback(0, []float64{7}, []float64{2.5})
	if u[0] != 2.5 {
		t.Errorf("callback changed velocity: %f", u[0])
	}
}

func TestRotorTorqueBalance(t *testing.T) {
	r := NewRotor()
	// At omega = tau/c the generalized force vanishes.
	h := r.H(0, nil, []float64{r.Torque / r.Damping})
	if math.Abs(h[0]) > 1e-12 {
		t.Errorf("h = %g at equilibrium, want 0", h[0])
	}
}
