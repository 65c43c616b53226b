package solver

import "testing"

func TestClassifyContacts(t *testing.T) {
	rN := []float64{1, 1, 1, 1}
	gN := []float64{0.5, -0.1, -0.1, -0.1}
	kappaHat := []float64{0, 0, 0, 0}
	xiN := []float64{0, 1, -0.2, -0.2}
	pN := []float64{0, 0, 0, 0}
	gNDDot := []float64{0, 0, 1, -0.5}
	laN := []float64{0, 0, 0, 0}

	as := classifyContacts(rN, gN, kappaHat, xiN, pN, gNDDot, laN)

	want := ActiveSet{ContactInactive, ContactCandidate, ContactPersistent, ContactSmooth}
	if !as.Equal(want) {
		t.Errorf("expected %v, got %v", want, as)
	}
}

func TestActiveSetNesting(t *testing.T) {
	// Sweep sign combinations; membership must always nest C ⊆ B ⊆ A.
	vals := []float64{-1, 1}
	for _, g := range vals {
		for _, xi := range vals {
			for _, a := range vals {
				as := classifyContacts(
					[]float64{1}, []float64{g}, []float64{0},
					[]float64{xi}, []float64{0},
					[]float64{a}, []float64{0})
				if as.InC(0) && !as.InB(0) {
					t.Errorf("g=%g xi=%g a=%g: C without B", g, xi, a)
				}
				if as.InB(0) && !as.InA(0) {
					t.Errorf("g=%g xi=%g a=%g: B without A", g, xi, a)
				}
			}
		}
	}
}

func TestActiveSetEqual(t *testing.T) {
	a := ActiveSet{ContactInactive, ContactSmooth}
	b := ActiveSet{ContactInactive, ContactSmooth}
	c := ActiveSet{ContactInactive, ContactPersistent}

	if !a.Equal(b) {
		t.Error("identical sets reported unequal")
	}
	if a.Equal(c) {
		t.Error("different sets reported equal")
	}
	if a.Equal(a[:1]) {
		t.Error("sets of different length reported equal")
	}
}

func TestContactModeString(t *testing.T) {
	cases := map[ContactMode]string{
		ContactInactive:   "inactive",
		ContactCandidate:  "candidate",
		ContactPersistent: "persistent",
		ContactSmooth:     "smooth",
	}
	for mode, want := range cases {
		if mode.String() != want {
			t.Errorf("mode %d: %q, want %q", mode, mode.String(), want)
		}
	}
}
