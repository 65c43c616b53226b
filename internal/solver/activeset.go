package solver

// ContactMode is the discrete per-contact state deciding which
// complementarity conditions enter the residual. Modes are strictly
// nested: Smooth implies Persistent implies Candidate.
type ContactMode uint8

const (
	// ContactInactive: no active constraint; all three multiplier
	// conditions force the multipliers to zero.
	ContactInactive ContactMode = iota
	// ContactCandidate: position-level prox inequality holds; the gap
	// is forced to zero.
	ContactCandidate
	// ContactPersistent: additionally the velocity-level inequality
	// holds; the relative normal velocity is forced to zero.
	ContactPersistent
	// ContactSmooth: additionally the acceleration-level inequality
	// holds; the relative normal acceleration is forced to zero.
	ContactSmooth
)

func (m ContactMode) String() string {
	switch m {
	case ContactInactive:
		return "inactive"
	case ContactCandidate:
		return "candidate"
	case ContactPersistent:
		return "persistent"
	case ContactSmooth:
		return "smooth"
	}
	return "unknown"
}

// ActiveSet holds the contact mode per contact index. It is a pure
// function of the current trial state, recomputed from scratch and
// never mutated incrementally.
type ActiveSet []ContactMode

// InA reports membership in the outer (position-level) index set.
func (a ActiveSet) InA(i int) bool { return a[i] >= ContactCandidate }

// InB reports membership in the middle (velocity-level) index set.
func (a ActiveSet) InB(i int) bool { return a[i] >= ContactPersistent }

// InC reports membership in the inner (acceleration-level) index set.
func (a ActiveSet) InC(i int) bool { return a[i] >= ContactSmooth }

func (a ActiveSet) Equal(b ActiveSet) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// classifyContacts evaluates the nested proximal-point inequalities
//
//	A: r_N·g_N − κ̂_N ≤ 0
//	B: A ∧ r_N·ξ_N − P_N ≤ 0
//	C: B ∧ r_N·g̈_N − λ_N ≤ 0
//
// The nesting C ⇒ B ⇒ A holds by construction.
func classifyContacts(rN, gN, kappaHat, xiN, pN, gNDDot, laN []float64) ActiveSet {
	as := make(ActiveSet, len(gN))
	for i := range gN {
		if rN[i]*gN[i]-kappaHat[i] > 0 {
			continue
		}
		as[i] = ContactCandidate
		if rN[i]*xiN[i]-pN[i] > 0 {
			continue
		}
		as[i] = ContactPersistent
		if rN[i]*gNDDot[i]-laN[i] > 0 {
			continue
		}
		as[i] = ContactSmooth
	}
	return as
}
