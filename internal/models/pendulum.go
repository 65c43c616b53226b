package models

import (
	"math"

	"github.com/mweb/condyn/internal/la"
	"github.com/mweb/condyn/internal/model"
)

// Pendulum is a planar rigid pendulum in cartesian coordinates with the
// holonomic length constraint g = x² + y² − L². Theta0 is measured from
// the downward vertical.
type Pendulum struct {
	model.ContactFree
	model.NonholonomicFree

	Mass    float64
	Length  float64
	Gravity float64
	Theta0  float64
	Omega0  float64
}

func NewPendulum() *Pendulum {
	return &Pendulum{
		Mass:    1.0,
		Length:  1.0,
		Gravity: 9.81,
		Theta0:  math.Pi / 2,
	}
}

func (p *Pendulum) Dims() model.Dims { return model.Dims{Nq: 2, Nu: 2, NlaG: 1} }

func (p *Pendulum) T0() float64 { return 0 }

func (p *Pendulum) Q0() []float64 {
	return []float64{p.Length * math.Sin(p.Theta0), -p.Length * math.Cos(p.Theta0)}
}

func (p *Pendulum) U0() []float64 {
	return []float64{
		p.Length * math.Cos(p.Theta0) * p.Omega0,
		p.Length * math.Sin(p.Theta0) * p.Omega0,
	}
}

func (p *Pendulum) LaG0() []float64 { return []float64{0} }

func (p *Pendulum) QDot(_ float64, _, u []float64) []float64 {
	return []float64{u[0], u[1]}
}

func (p *Pendulum) M(_ float64, _ []float64) *la.Sparse {
	m := la.NewSparse(2, 2)
	m.Set(0, 0, p.Mass)
	m.Set(1, 1, p.Mass)
	return m
}

func (p *Pendulum) H(_ float64, _, _ []float64) []float64 {
	return []float64{0, -p.Mass * p.Gravity}
}

func (p *Pendulum) G(_ float64, q []float64) []float64 {
	return []float64{q[0]*q[0] + q[1]*q[1] - p.Length*p.Length}
}

func (p *Pendulum) GDot(_ float64, q, u []float64) []float64 {
	return []float64{2 * (q[0]*u[0] + q[1]*u[1])}
}

func (p *Pendulum) GDDot(_ float64, q, u, uDot []float64) []float64 {
	return []float64{2*(u[0]*u[0]+u[1]*u[1]) + 2*(q[0]*uDot[0]+q[1]*uDot[1])}
}

func (p *Pendulum) WG(_ float64, q []float64) *la.Sparse {
	w := la.NewSparse(2, 1)
	w.Set(0, 0, 2*q[0])
	w.Set(1, 0, 2*q[1])
	return w
}

func (p *Pendulum) StepCallback(t float64, q, u []float64) ([]float64, []float64) {
	return model.IdentityCallback(t, q, u)
}

// Energy is kinetic plus gravitational potential energy.
func (p *Pendulum) Energy(q, u []float64) float64 {
	return 0.5*p.Mass*(u[0]*u[0]+u[1]*u[1]) + p.Mass*p.Gravity*q[1]
}
