// Package model defines the interface between the integrator and the
// mechanical system it advances. A Model supplies all physics: mass
// matrix, generalized forces, constraint functions with their time
// derivatives, constraint Jacobians and contact kinematics. The
// integrator treats a Model as a deterministic, pure-function provider;
// it never mutates one except through the explicit StepCallback hook.
package model

import "github.com/mweb/condyn/internal/la"

// Dims holds the problem dimensions: generalized coordinates,
// velocities, holonomic and nonholonomic bilateral constraints, and
// unilateral (normal contact) constraints.
type Dims struct {
	Nq       int // position-like coordinates
	Nu       int // velocity-like coordinates
	NlaG     int // holonomic bilateral constraints
	NlaGamma int // nonholonomic bilateral constraints
	NlaN     int // unilateral contacts
}

// Model is the physics surface the integrator consumes. All matrix
// outputs are in triplet form so the solver can assemble them without
// knowing their sparsity. Slice-returning methods with a zero dimension
// may return nil.
type Model interface {
	Dims() Dims

	// Initial conditions.
	T0() float64
	Q0() []float64
	U0() []float64
	LaG0() []float64
	LaGamma0() []float64
	LaN0() []float64

	// Kinematic equation and dynamics.
	QDot(t float64, q, u []float64) []float64
	M(t float64, q []float64) *la.Sparse
	H(t float64, q, u []float64) []float64

	// Holonomic bilateral constraints g(t,q) = 0 and derivatives.
	G(t float64, q []float64) []float64
	GDot(t float64, q, u []float64) []float64
	GDDot(t float64, q, u, uDot []float64) []float64
	WG(t float64, q []float64) *la.Sparse // nu x nla_g generalized force directions

	// Nonholonomic bilateral constraints gamma(t,q,u) = 0.
	Gamma(t float64, q, u []float64) []float64
	GammaDot(t float64, q, u, uDot []float64) []float64
	WGamma(t float64, q []float64) *la.Sparse // nu x nla_gamma

	// Unilateral normal contacts.
	GN(t float64, q []float64) []float64                 // gap functions
	XiN(t float64, q, uPrev, u []float64) []float64      // relative normal velocity measure
	GNDDot(t float64, q, u, uDot []float64) []float64    // gap second derivatives
	WN(t float64, q []float64) *la.Sparse                // nu x nla_N
	ProxRN() []float64                                   // proximal-point parameters r_N > 0

	// StepCallback lets the model adjust committed coordinates at step
	// boundaries, e.g. rewrapping angles into a canonical branch. The
	// returned q, u replace the carried state.
	StepCallback(t float64, q, u []float64) ([]float64, []float64)
}

// EnergyReporter is implemented by models that can report total
// mechanical energy; used by metrics and tests.
type EnergyReporter interface {
	Energy(q, u []float64) float64
}

// ContactFree provides the contact part of Model for systems without
// unilateral constraints. Embed it to satisfy the interface.
type ContactFree struct{}

func (ContactFree) GN(float64, []float64) []float64                        { return nil }
func (ContactFree) XiN(float64, []float64, []float64, []float64) []float64 { return nil }
func (ContactFree) GNDDot(float64, []float64, []float64, []float64) []float64 {
	return nil
}
func (ContactFree) WN(float64, []float64) *la.Sparse { return nil }
func (ContactFree) ProxRN() []float64                { return nil }
func (ContactFree) LaN0() []float64                  { return nil }

// HolonomicFree provides the holonomic constraint part of Model for
// systems without bilateral position-level constraints.
type HolonomicFree struct{}

func (HolonomicFree) G(float64, []float64) []float64                          { return nil }
func (HolonomicFree) GDot(float64, []float64, []float64) []float64            { return nil }
func (HolonomicFree) GDDot(float64, []float64, []float64, []float64) []float64 { return nil }
func (HolonomicFree) WG(float64, []float64) *la.Sparse                        { return nil }
func (HolonomicFree) LaG0() []float64                                         { return nil }

// NonholonomicFree provides the nonholonomic constraint part of Model
// for systems without velocity-level constraints.
type NonholonomicFree struct{}

func (NonholonomicFree) Gamma(float64, []float64, []float64) []float64 { return nil }
func (NonholonomicFree) GammaDot(float64, []float64, []float64, []float64) []float64 {
	return nil
}
func (NonholonomicFree) WGamma(float64, []float64) *la.Sparse { return nil }
func (NonholonomicFree) LaGamma0() []float64                  { return nil }

// IdentityCallback is the no-op step callback shared by models whose
// coordinates need no rewrapping.
func IdentityCallback(_ float64, q, u []float64) ([]float64, []float64) { return q, u }
