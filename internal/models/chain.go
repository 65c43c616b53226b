package models

import (
	"github.com/mweb/condyn/internal/la"
	"github.com/mweb/condyn/internal/model"
)

// Chain is a planar kinematic chain of point masses connected by rigid
// distance constraints, the first link anchored at the origin. It has
// no contacts, exercising the pure bilateral path of the integrator.
type Chain struct {
	model.ContactFree
	model.NonholonomicFree

	Links   int
	Mass    float64 // per point mass
	Length  float64 // per link
	Gravity float64
}

func NewChain(links int) *Chain {
	return &Chain{
		Links:   links,
		Mass:    1.0,
		Length:  0.5,
		Gravity: 9.81,
	}
}

func (c *Chain) Dims() model.Dims {
	return model.Dims{Nq: 2 * c.Links, Nu: 2 * c.Links, NlaG: c.Links}
}

func (c *Chain) T0() float64 { return 0 }

// Q0 lays the chain out horizontally, fully stretched.
func (c *Chain) Q0() []float64 {
	q := make([]float64, 2*c.Links)
	for i := 0; i < c.Links; i++ {
		q[2*i] = float64(i+1) * c.Length
	}
	return q
}

func (c *Chain) U0() []float64 { return make([]float64, 2*c.Links) }

func (c *Chain) LaG0() []float64 { return make([]float64, c.Links) }

func (c *Chain) QDot(_ float64, _, u []float64) []float64 {
	return la.Clone(u)
}

func (c *Chain) M(_ float64, _ []float64) *la.Sparse {
	m := la.NewSparse(2*c.Links, 2*c.Links)
	for i := 0; i < 2*c.Links; i++ {
		m.Set(i, i, c.Mass)
	}
	return m
}

func (c *Chain) H(_ float64, _, _ []float64) []float64 {
	h := make([]float64, 2*c.Links)
	for i := 0; i < c.Links; i++ {
		h[2*i+1] = -c.Mass * c.Gravity
	}
	return h
}

// link returns the difference vector of constraint j and the index of
// the previous mass (-1 for the anchor).
func (c *Chain) link(q []float64, j int) (dx, dy float64, prev int) {
	x, y := q[2*j], q[2*j+1]
	if j == 0 {
		return x, y, -1
	}
	return x - q[2*(j-1)], y - q[2*(j-1)+1], j - 1
}

func (c *Chain) G(_ float64, q []float64) []float64 {
	g := make([]float64, c.Links)
	for j := 0; j < c.Links; j++ {
		dx, dy, _ := c.link(q, j)
		g[j] = dx*dx + dy*dy - c.Length*c.Length
	}
	return g
}

func (c *Chain) GDot(_ float64, q, u []float64) []float64 {
	g := make([]float64, c.Links)
	for j := 0; j < c.Links; j++ {
		dx, dy, prev := c.link(q, j)
		dvx, dvy := u[2*j], u[2*j+1]
		if prev >= 0 {
			dvx -= u[2*prev]
			dvy -= u[2*prev+1]
		}
		g[j] = 2 * (dx*dvx + dy*dvy)
	}
	return g
}

func (c *Chain) GDDot(_ float64, q, u, uDot []float64) []float64 {
	g := make([]float64, c.Links)
	for j := 0; j < c.Links; j++ {
		dx, dy, prev := c.link(q, j)
		dvx, dvy := u[2*j], u[2*j+1]
		dax, day := uDot[2*j], uDot[2*j+1]
		if prev >= 0 {
			dvx -= u[2*prev]
			dvy -= u[2*prev+1]
			dax -= uDot[2*prev]
			day -= uDot[2*prev+1]
		}
		g[j] = 2*(dvx*dvx+dvy*dvy) + 2*(dx*dax+dy*day)
	}
	return g
}

func (c *Chain) WG(_ float64, q []float64) *la.Sparse {
	w := la.NewSparse(2*c.Links, c.Links)
	for j := 0; j < c.Links; j++ {
		dx, dy, prev := c.link(q, j)
		w.Set(2*j, j, 2*dx)
		w.Set(2*j+1, j, 2*dy)
		if prev >= 0 {
			w.Set(2*prev, j, -2*dx)
			w.Set(2*prev+1, j, -2*dy)
		}
	}
	return w
}

func (c *Chain) StepCallback(t float64, q, u []float64) ([]float64, []float64) {
	return model.IdentityCallback(t, q, u)
}

// Energy is kinetic plus gravitational potential energy over all
// masses.
func (c *Chain) Energy(q, u []float64) float64 {
	e := 0.0
	for i := 0; i < c.Links; i++ {
		e += 0.5*c.Mass*(u[2*i]*u[2*i]+u[2*i+1]*u[2*i+1]) + c.Mass*c.Gravity*q[2*i+1]
	}
	return e
}
