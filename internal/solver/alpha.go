package solver

// alphaParams are the generalized-alpha coefficients derived from the
// spectral radius at infinite frequency (Arnold/Brüls parameterization).
type alphaParams struct {
	alphaM float64
	alphaF float64
	gamma  float64
	beta   float64
}

func newAlphaParams(rhoInf float64) alphaParams {
	am := (2.0*rhoInf - 1.0) / (rhoInf + 1.0)
	af := rhoInf / (rhoInf + 1.0)
	g := 0.5 + af - am
	return alphaParams{
		alphaM: am,
		alphaF: af,
		gamma:  g,
		beta:   0.25 * (g + 0.5) * (g + 0.5),
	}
}

// history is the state carried from one accepted step to the next. It
// is owned by the driver and mutated only at accepted-step boundaries;
// Newton iterations operate on copies.
type history struct {
	t    float64
	y    []float64 // packed (q, u); u includes the committed impulse jump
	yDot []float64 // packed (q̇, u̇)
	v    []float64 // auxiliary alpha-filtered derivative; never reset

	laN    []float64 // committed instantaneous contact forces
	laNBar []float64 // committed alpha-filtered contact forces

	x []float64 // accepted unknown vector, warm start for the next step
}

// update maps a trial derivative vector ẏ₁ to the trial state y₁ via
// the alpha recurrence. With store=false this is a pure evaluation;
// store=true commits v, y and ẏ into the history. The separation is
// mandatory: residual evaluations during Newton iterations must not
// corrupt the carried filter state.
func (s *GenAlpha) update(yDot1 []float64, store bool) (q1, u1 []float64) {
	nq := s.dims.Nq
	p := s.par
	h := &s.hist

	v1 := make([]float64, len(yDot1))
	y1 := make([]float64, len(yDot1))
	for i := range yDot1 {
		v1[i] = (p.alphaF*h.yDot[i] + (1.0-p.alphaF)*yDot1[i] - p.alphaM*h.v[i]) / (1.0 - p.alphaM)
		y1[i] = h.y[i] + s.dt*((1.0-p.gamma)*h.v[i]+p.gamma*v1[i])
	}

	if store {
		h.v = v1
		h.y = y1
		h.yDot = append(h.yDot[:0:0], yDot1...)
	}

	return y1[:nq], y1[nq:]
}

// filterLaN applies the alpha blend to the instantaneous contact forces
// and derives the accumulated impulse P_N and the position-level
// stabilization term κ̂_N used by the contact residual.
func (s *GenAlpha) filterLaN(laN1, kappaN1, impulseN1 []float64) (laNBar1, pN1, kappaHat1 []float64) {
	p := s.par
	h := &s.hist
	n := len(laN1)
	laNBar1 = make([]float64, n)
	pN1 = make([]float64, n)
	kappaHat1 = make([]float64, n)
	dt2 := s.dt * s.dt
	for i := 0; i < n; i++ {
		laNBar1[i] = (p.alphaF*h.laN[i] + (1.0-p.alphaF)*laN1[i] - p.alphaM*h.laNBar[i]) / (1.0 - p.alphaM)
		pN1[i] = impulseN1[i] + s.dt*((1.0-p.gamma)*h.laNBar[i]+p.gamma*laNBar1[i])
		kappaHat1[i] = kappaN1[i] + dt2*((0.5-p.beta)*h.laNBar[i]+p.beta*laNBar1[i])
	}
	return laNBar1, pN1, kappaHat1
}
