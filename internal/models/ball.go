// Package models provides built-in mechanical systems implementing the
// model interface consumed by the integrator: a bouncing point mass, a
// rigid pendulum, a kinematic chain and a free rotor.
package models

import (
	"github.com/mweb/condyn/internal/la"
	"github.com/mweb/condyn/internal/model"
)

// Ball is a point mass falling under gravity onto a rigid ground plane
// at y = 0, modeled as a single unilateral contact g_N = y.
type Ball struct {
	model.HolonomicFree
	model.NonholonomicFree

	Mass        float64
	Gravity     float64
	Y0          float64
	VY0         float64
	ProxR       float64 // proximal-point regularization r_N
	Restitution float64 // normal restitution coefficient e_N
}

func NewBall() *Ball {
	return &Ball{
		Mass:    1.0,
		Gravity: 9.81,
		Y0:      1.0,
		ProxR:   1e3,
	}
}

func (b *Ball) Dims() model.Dims { return model.Dims{Nq: 1, Nu: 1, NlaN: 1} }

func (b *Ball) T0() float64     { return 0 }
func (b *Ball) Q0() []float64   { return []float64{b.Y0} }
func (b *Ball) U0() []float64   { return []float64{b.VY0} }
func (b *Ball) LaN0() []float64 { return []float64{0} }

func (b *Ball) QDot(_ float64, _, u []float64) []float64 { return []float64{u[0]} }

func (b *Ball) M(_ float64, _ []float64) *la.Sparse {
	m := la.NewSparse(1, 1)
	m.Set(0, 0, b.Mass)
	return m
}

func (b *Ball) H(_ float64, _, _ []float64) []float64 {
	return []float64{-b.Mass * b.Gravity}
}

func (b *Ball) GN(_ float64, q []float64) []float64 { return []float64{q[0]} }

func (b *Ball) XiN(_ float64, _, uPrev, u []float64) []float64 {
	return []float64{u[0] + b.Restitution*uPrev[0]}
}

func (b *Ball) GNDDot(_ float64, _, _, uDot []float64) []float64 {
	return []float64{uDot[0]}
}

func (b *Ball) WN(_ float64, _ []float64) *la.Sparse {
	w := la.NewSparse(1, 1)
	w.Set(0, 0, 1)
	return w
}

func (b *Ball) ProxRN() []float64 { return []float64{b.ProxR} }

func (b *Ball) StepCallback(t float64, q, u []float64) ([]float64, []float64) {
	return model.IdentityCallback(t, q, u)
}

// Energy is kinetic plus gravitational potential energy.
func (b *Ball) Energy(q, u []float64) float64 {
	return 0.5*b.Mass*u[0]*u[0] + b.Mass*b.Gravity*q[0]
}
