package solver

import (
	"gonum.org/v1/gonum/mat"

	"github.com/mweb/condyn/internal/la"
	"github.com/mweb/condyn/internal/model"
)

// consistentInitialConditions computes u̇₀ and the bilateral multipliers
// at t₀ from the saddle-point system
//
//	[ M   -W_g  -W_γ ] [ u̇    ]   [ h + W_N·λ_N0 ]
//	[ W_gᵀ  0     0  ] [ λ_g  ] = [ -ζ_g          ]
//	[ W_γᵀ  0     0  ] [ λ_γ  ]   [ -ζ_γ          ]
//
// where ζ is the constraint second derivative with u̇ = 0, and then
// verifies that the initial state satisfies all constraint levels. Any
// violation is fatal before stepping begins.
func consistentInitialConditions(m model.Model, atol float64) (uDot0, laG0, laGamma0 []float64, err error) {
	d := m.Dims()
	t0, q0, u0 := m.T0(), m.Q0(), m.U0()

	h := m.H(t0, q0, u0)
	rhsU := la.Clone(h)
	if d.NlaN > 0 {
		wn := m.WN(t0, q0).MulVec(m.LaN0())
		for i := range rhsU {
			rhsU[i] += wn[i]
		}
	}

	if d.NlaG+d.NlaGamma == 0 {
		uDot0, err = la.Solve(m.M(t0, q0), rhsU)
		if err != nil {
			return nil, nil, nil, err
		}
	} else {
		zero := make([]float64, d.Nu)
		n := d.Nu + d.NlaG + d.NlaGamma
		a := mat.NewDense(n, n, nil)

		for _, e := range m.M(t0, q0).Entries() {
			a.Set(e.Row, e.Col, a.At(e.Row, e.Col)+e.Val)
		}
		if d.NlaG > 0 {
			for _, e := range m.WG(t0, q0).Entries() {
				a.Set(e.Row, d.Nu+e.Col, a.At(e.Row, d.Nu+e.Col)-e.Val)
				a.Set(d.Nu+e.Col, e.Row, a.At(d.Nu+e.Col, e.Row)+e.Val)
			}
		}
		if d.NlaGamma > 0 {
			off := d.Nu + d.NlaG
			for _, e := range m.WGamma(t0, q0).Entries() {
				a.Set(e.Row, off+e.Col, a.At(e.Row, off+e.Col)-e.Val)
				a.Set(off+e.Col, e.Row, a.At(off+e.Col, e.Row)+e.Val)
			}
		}

		b := make([]float64, n)
		copy(b, rhsU)
		if d.NlaG > 0 {
			zetaG := m.GDDot(t0, q0, u0, zero)
			for i, z := range zetaG {
				b[d.Nu+i] = -z
			}
		}
		if d.NlaGamma > 0 {
			zetaGamma := m.GammaDot(t0, q0, u0, zero)
			for i, z := range zetaGamma {
				b[d.Nu+d.NlaG+i] = -z
			}
		}

		sol, err := la.SolveDense(a, b)
		if err != nil {
			return nil, nil, nil, err
		}
		uDot0 = sol[:d.Nu]
		laG0 = la.Clone(sol[d.Nu : d.Nu+d.NlaG])
		laGamma0 = la.Clone(sol[d.Nu+d.NlaG:])
	}

	if laG0 == nil {
		laG0 = make([]float64, d.NlaG)
	}
	if laGamma0 == nil {
		laGamma0 = make([]float64, d.NlaGamma)
	}

	// feasibility at every constraint level
	checks := []struct {
		name string
		vals []float64
	}{
		{"g", m.G(t0, q0)},
		{"g_dot", m.GDot(t0, q0, u0)},
		{"g_ddot", m.GDDot(t0, q0, u0, uDot0)},
		{"gamma", m.Gamma(t0, q0, u0)},
		{"gamma_dot", m.GammaDot(t0, q0, u0, uDot0)},
	}
	for _, c := range checks {
		if v := la.MaxAbs(c.vals); v > atol {
			return nil, nil, nil, &InitialConditionError{Quantity: c.name, Norm: v}
		}
	}
	if d.NlaN > 0 {
		for _, g := range m.GN(t0, q0) {
			if g < -atol {
				return nil, nil, nil, &InitialConditionError{Quantity: "g_N", Norm: g}
			}
		}
	}

	return uDot0, laG0, laGamma0, nil
}
