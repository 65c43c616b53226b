package models

import (
	"math"

	"github.com/mweb/condyn/internal/la"
	"github.com/mweb/condyn/internal/model"
)

// Rotor is a single unconstrained angle coordinate driven by a constant
// torque against viscous damping. Its step callback rewraps the angle
// into (−π, π], exercising the coordinate-rewrap hook.
type Rotor struct {
	model.ContactFree
	model.HolonomicFree
	model.NonholonomicFree

	Inertia float64
	Torque  float64
	Damping float64
	Omega0  float64
}

func NewRotor() *Rotor {
	return &Rotor{
		Inertia: 1.0,
		Torque:  1.0,
		Damping: 0.1,
	}
}

func (r *Rotor) Dims() model.Dims { return model.Dims{Nq: 1, Nu: 1} }

func (r *Rotor) T0() float64   { return 0 }
func (r *Rotor) Q0() []float64 { return []float64{0} }
func (r *Rotor) U0() []float64 { return []float64{r.Omega0} }

func (r *Rotor) QDot(_ float64, _, u []float64) []float64 { return []float64{u[0]} }

func (r *Rotor) M(_ float64, _ []float64) *la.Sparse {
	m := la.NewSparse(1, 1)
	m.Set(0, 0, r.Inertia)
	return m
}

func (r *Rotor) H(_ float64, _, u []float64) []float64 {
	return []float64{r.Torque - r.Damping*u[0]}
}

// StepCallback wraps the committed angle into (−π, π].
func (r *Rotor) StepCallback(_ float64, q, u []float64) ([]float64, []float64) {
	phi := math.Mod(q[0], 2*math.Pi)
	if phi > math.Pi {
		phi -= 2 * math.Pi
	} else if phi <= -math.Pi {
		phi += 2 * math.Pi
	}
	return []float64{phi}, u
}
