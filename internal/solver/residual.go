package solver

import (
	"fmt"

	"github.com/mweb/condyn/internal/la"
)

// trial bundles everything derived from one unknown vector at one time
// instant: the alpha-updated state, the unpacked multipliers and the
// contact kinematics evaluated on them.
type trial struct {
	t float64

	q, u []float64
	unk  Unknowns

	// contact quantities; empty when nla_N == 0
	laNBar   []float64
	pN       []float64
	kappaHat []float64
	gN       []float64
	xiN      []float64
	gNDDot   []float64
}

// impulseJump is the velocity jump M⁻¹ W_N Λ_N carried by the
// accumulated normal impulse. The trial velocity is always the alpha
// update plus this jump, so Λ_N keeps a column in the velocity-level
// rows no matter which contact rows the masks select. A singular mass
// matrix is a model defect.
func (s *GenAlpha) impulseJump(t float64, q, impulseN []float64) []float64 {
	w := s.model.WN(t, q).MulVec(impulseN)
	du, err := la.Solve(s.model.M(t, q), w)
	if err != nil {
		panic(fmt.Sprintf("solver: mass matrix is singular: %v", err))
	}
	return du
}

// evalTrial evaluates the trial state for the unknown vector x at time
// t without mutating any carried history.
func (s *GenAlpha) evalTrial(t float64, x []float64) trial {
	ny := s.dims.Nq + s.dims.Nu
	unk := s.layout.Unpack(x)

	q1, u1 := s.update(x[:ny], false)
	if s.dims.NlaN > 0 {
		du := s.impulseJump(t, q1, unk.ImpulseN)
		for i := range u1 {
			u1[i] += du[i]
		}
	}

	tr := trial{t: t, q: q1, u: u1, unk: unk}

	if s.dims.NlaN > 0 {
		tr.laNBar, tr.pN, tr.kappaHat = s.filterLaN(unk.LaN, unk.KappaN, unk.ImpulseN)
		// committed velocity of the previous step, the pre-impact side
		// of the restitution law
		uPrev := s.hist.y[s.dims.Nq:]
		tr.gN = s.model.GN(t, q1)
		tr.xiN = s.model.XiN(t, q1, uPrev, u1)
		tr.gNDDot = s.model.GNDDot(t, q1, u1, unk.UDot)
	}

	return tr
}

// classify computes the contact active set for a trial state. Must not
// be called for contact-free systems.
func (s *GenAlpha) classify(tr trial) ActiveSet {
	return classifyContacts(s.proxRN, tr.gN, tr.kappaHat, tr.xiN, tr.pN, tr.gNDDot, tr.unk.LaN)
}

// residual assembles R(x) for a trial state under frozen active-set
// masks. Block order: kinematic equation, dynamics, bilateral
// constraints, nonholonomic constraints, contact complementarity.
// It is a pure function: identical inputs yield identical output.
func (s *GenAlpha) residual(tr trial, as ActiveSet) []float64 {
	d := s.dims
	m := s.model
	r := make([]float64, s.layout.NX())

	// kinematic differential equation, optionally GGL-stabilized by
	// projecting constraint directions onto the position rates
	qDotModel := m.QDot(tr.t, tr.q, tr.u)
	for i := 0; i < d.Nq; i++ {
		r[i] = tr.unk.QDot[i] - qDotModel[i]
	}
	if s.opts.GGL && d.NlaG > 0 {
		wg := m.WG(tr.t, tr.q).MulVec(tr.unk.KappaG)
		for i := range wg {
			r[i] -= wg[i]
		}
	}
	if d.NlaN > 0 {
		wn := m.WN(tr.t, tr.q).MulVec(tr.unk.KappaN)
		for i := range wn {
			r[i] -= wn[i]
		}
	}

	// equations of motion
	mu := m.M(tr.t, tr.q).MulVec(tr.unk.UDot)
	h := m.H(tr.t, tr.q, tr.u)
	for i := 0; i < d.Nu; i++ {
		r[d.Nq+i] = mu[i] - h[i]
	}
	if d.NlaG > 0 {
		f := m.WG(tr.t, tr.q).MulVec(tr.unk.LaG)
		for i := range f {
			r[d.Nq+i] -= f[i]
		}
	}
	if d.NlaGamma > 0 {
		f := m.WGamma(tr.t, tr.q).MulVec(tr.unk.LaGamma)
		for i := range f {
			r[d.Nq+i] -= f[i]
		}
	}
	if d.NlaN > 0 {
		f := m.WN(tr.t, tr.q).MulVec(tr.unk.LaN)
		for i := range f {
			r[d.Nq+i] -= f[i]
		}
	}

	// bilateral constraint blocks selected by GGL flag and DAE index
	off := d.Nq + d.Nu
	if d.NlaG > 0 {
		if s.opts.GGL {
			copy(r[off:off+d.NlaG], m.G(tr.t, tr.q))
			off += d.NlaG
		}
		var lvl []float64
		switch s.opts.DAEIndex {
		case Index3:
			lvl = m.G(tr.t, tr.q)
		case Index2:
			lvl = m.GDot(tr.t, tr.q, tr.u)
		case Index1:
			lvl = m.GDDot(tr.t, tr.q, tr.u, tr.unk.UDot)
		}
		copy(r[off:off+d.NlaG], lvl)
		off += d.NlaG
	}

	// nonholonomic constraints
	if d.NlaGamma > 0 {
		copy(r[off:off+d.NlaGamma], m.Gamma(tr.t, tr.q, tr.u))
		off += d.NlaGamma
	}

	// contact complementarity, three levels per contact partitioned by
	// the active-set masks
	for i := 0; i < d.NlaN; i++ {
		if as.InA(i) {
			r[off+i] = tr.gN[i]
		} else {
			r[off+i] = tr.kappaHat[i]
		}
		if as.InB(i) {
			r[off+d.NlaN+i] = tr.xiN[i]
		} else {
			r[off+d.NlaN+i] = tr.pN[i]
		}
		if as.InC(i) {
			r[off+2*d.NlaN+i] = tr.gNDDot[i]
		} else {
			r[off+2*d.NlaN+i] = tr.unk.LaN[i]
		}
	}

	return r
}
