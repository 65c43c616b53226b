package solver

import (
	"fmt"

	"github.com/mweb/condyn/internal/model"
)

// Unknowns names the segments of the flat unknown vector x solved for
// at every step. The contact triad per index i is (KappaN, ImpulseN,
// LaN): a position-level stabilization impulse, an accumulated normal
// impulse and an instantaneous normal force.
type Unknowns struct {
	QDot     []float64
	UDot     []float64
	KappaG   []float64 // GGL kinematic stabilization multipliers; nil unless GGL
	LaG      []float64 // holonomic constraint forces
	LaGamma  []float64 // nonholonomic constraint forces
	KappaN   []float64
	ImpulseN []float64
	LaN      []float64
}

// Layout is the bijection between Unknowns and the flat vector x:
//
//	[ q̇ | u̇ | (κ_g) | λ_g | λ_γ | κ_N | Λ_N | λ_N ]
//
// Block order is fixed; segment sizes follow the model dimensions and
// the GGL flag.
type Layout struct {
	dims model.Dims
	ggl  bool

	offUDot     int
	offKappaG   int // == offLaG unless GGL
	offLaG      int
	offLaGamma  int
	offKappaN   int
	offImpulseN int
	offLaN      int
	nx          int
}

func NewLayout(d model.Dims, ggl bool) Layout {
	l := Layout{dims: d, ggl: ggl}
	l.offUDot = d.Nq
	l.offKappaG = d.Nq + d.Nu
	l.offLaG = l.offKappaG
	if ggl {
		l.offLaG += d.NlaG
	}
	l.offLaGamma = l.offLaG + d.NlaG
	l.offKappaN = l.offLaGamma + d.NlaGamma
	l.offImpulseN = l.offKappaN + d.NlaN
	l.offLaN = l.offImpulseN + d.NlaN
	l.nx = l.offLaN + d.NlaN
	return l
}

// NX is the total number of unknowns (and residual rows).
func (l Layout) NX() int { return l.nx }

// GGL reports whether the layout carries the kappa_g segment.
func (l Layout) GGL() bool { return l.ggl }

// Pack writes the named quantities into a fresh flat vector. Nil
// segments of size zero are allowed.
func (l Layout) Pack(u Unknowns) []float64 {
	x := make([]float64, l.nx)
	copySeg := func(off int, n int, src []float64, name string) {
		if len(src) != n {
			panic(fmt.Sprintf("solver: pack segment %s has length %d, want %d", name, len(src), n))
		}
		copy(x[off:off+n], src)
	}
	copySeg(0, l.dims.Nq, u.QDot, "q_dot")
	copySeg(l.offUDot, l.dims.Nu, u.UDot, "u_dot")
	if l.ggl {
		copySeg(l.offKappaG, l.dims.NlaG, u.KappaG, "kappa_g")
	}
	copySeg(l.offLaG, l.dims.NlaG, u.LaG, "la_g")
	copySeg(l.offLaGamma, l.dims.NlaGamma, u.LaGamma, "la_gamma")
	copySeg(l.offKappaN, l.dims.NlaN, u.KappaN, "kappa_N")
	copySeg(l.offImpulseN, l.dims.NlaN, u.ImpulseN, "La_N")
	copySeg(l.offLaN, l.dims.NlaN, u.LaN, "la_N")
	return x
}

// Unpack returns views into x; callers must treat the segments as
// read-only. Segments of size zero come back as empty slices.
func (l Layout) Unpack(x []float64) Unknowns {
	if len(x) != l.nx {
		panic(fmt.Sprintf("solver: unpack vector has length %d, want %d", len(x), l.nx))
	}
	u := Unknowns{
		QDot:     x[0:l.offUDot],
		UDot:     x[l.offUDot : l.offUDot+l.dims.Nu],
		LaG:      x[l.offLaG : l.offLaG+l.dims.NlaG],
		LaGamma:  x[l.offLaGamma : l.offLaGamma+l.dims.NlaGamma],
		KappaN:   x[l.offKappaN : l.offKappaN+l.dims.NlaN],
		ImpulseN: x[l.offImpulseN : l.offImpulseN+l.dims.NlaN],
		LaN:      x[l.offLaN : l.offLaN+l.dims.NlaN],
	}
	if l.ggl {
		u.KappaG = x[l.offKappaG : l.offKappaG+l.dims.NlaG]
	}
	return u
}
