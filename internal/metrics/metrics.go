// Package metrics provides streaming trajectory metrics. Each metric
// implements the solver Observer interface and accumulates over the
// accepted steps of a solve.
package metrics

import (
	"math"

	"github.com/mweb/condyn/internal/model"
	"github.com/mweb/condyn/internal/solver"
)

// Metric is a named accumulating observation over a trajectory.
type Metric interface {
	solver.Observer
	Name() string
	Value() float64
	Reset()
}

// EnergyDrift tracks the maximum relative drift of total mechanical
// energy against the first observed snapshot.
type EnergyDrift struct {
	rep      model.EnergyReporter
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift(rep model.EnergyReporter) *EnergyDrift {
	return &EnergyDrift{rep: rep}
}

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) OnStep(sn solver.Snapshot) {
	energy := e.rep.Energy(sn.Q, sn.U)
	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++
	if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}

// ConstraintViolation tracks the maximum bilateral constraint violation
// max(|g|, |ġ|, |γ|) over the trajectory.
type ConstraintViolation struct {
	m   model.Model
	max float64
}

func NewConstraintViolation(m model.Model) *ConstraintViolation {
	return &ConstraintViolation{m: m}
}

func (c *ConstraintViolation) Name() string { return "constraint_violation" }

func (c *ConstraintViolation) OnStep(sn solver.Snapshot) {
	for _, v := range c.m.G(sn.T, sn.Q) {
		c.max = math.Max(c.max, math.Abs(v))
	}
	for _, v := range c.m.GDot(sn.T, sn.Q, sn.U) {
		c.max = math.Max(c.max, math.Abs(v))
	}
	for _, v := range c.m.Gamma(sn.T, sn.Q, sn.U) {
		c.max = math.Max(c.max, math.Abs(v))
	}
}

func (c *ConstraintViolation) Value() float64 { return c.max }

func (c *ConstraintViolation) Reset() { c.max = 0 }

// Penetration tracks the most negative contact gap over the trajectory;
// zero for trajectories that never penetrate.
type Penetration struct {
	m   model.Model
	min float64
}

func NewPenetration(m model.Model) *Penetration {
	return &Penetration{m: m}
}

func (p *Penetration) Name() string { return "penetration" }

func (p *Penetration) OnStep(sn solver.Snapshot) {
	for _, g := range p.m.GN(sn.T, sn.Q) {
		p.min = math.Min(p.min, g)
	}
}

func (p *Penetration) Value() float64 { return p.min }

func (p *Penetration) Reset() { p.min = 0 }
