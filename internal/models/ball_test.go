package models

import (
	"math"
	"testing"
)

func TestBallDimensions(t *testing.T) {
	b := NewBall()
	d := b.Dims()
	if d.Nq != 1 || d.Nu != 1 || d.NlaN != 1 {
		t.Errorf("unexpected dimensions %+v", d)
	}
	if d.NlaG != 0 || d.NlaGamma != 0 {
		t.Errorf("ball should have no bilateral constraints, got %+v", d)
	}
}

func TestBallGap(t *testing.T) {
	b := NewBall()
	g := b.GN(0, []float64{0.7})
	if g[0] != 0.7 {
		t.Errorf("gap = %f, want 0.7", g[0])
	}
}

func TestBallRestitutionVelocity(t *testing.T) {
	b := NewBall()
	b.Restitution = 0.5

	// xi_N = u + e u_prev vanishes when the rebound velocity is -e
	// times the approach velocity.
	xi := b.XiN(0, nil, []float64{-2}, []float64{1})
	if math.Abs(xi[0]) > 1e-15 {
		t.Errorf("xi_N = %g, want 0", xi[0])
	}
}

func TestBallEnergy(t *testing.T) {
	b := NewBall()
	e := b.Energy([]float64{1}, []float64{0})
	if math.Abs(e-b.Gravity) > 1e-12 {
		t.Errorf("energy = %f, want %f", e, b.Gravity)
	}
}

func TestBallForceBalance(t *testing.T) {
	b := NewBall()
	h := b.H(0, nil, nil)
	if math.Abs(h[0]+b.Mass*b.Gravity) > 1e-12 {
		t.Errorf("h = %f, want %f", h[0], -b.Mass*b.Gravity)
	}
}
