package solver

import "github.com/mweb/condyn/internal/la"

// Snapshot is the committed state of one accepted step. All slices are
// copies owned by the snapshot.
type Snapshot struct {
	T    float64
	Q    []float64
	U    []float64
	QDot []float64
	UDot []float64

	KappaG  []float64 // GGL stabilization multipliers; nil unless GGL
	LaG     []float64 // holonomic constraint forces
	LaGamma []float64 // nonholonomic constraint forces

	KappaN   []float64 // contact position-stabilization impulses
	ImpulseN []float64 // accumulated normal impulses Λ_N
	LaN      []float64 // instantaneous normal forces λ_N
}

// Solution is the ordered trajectory produced by a solve. Snapshots are
// appended by the driver and read-only afterwards.
type Solution struct {
	snaps []Snapshot
}

// NewSolution builds a trajectory from existing snapshots, mainly for
// tools and tests; a solve produces its own.
func NewSolution(snaps ...Snapshot) *Solution {
	return &Solution{snaps: snaps}
}

func (s *Solution) Len() int { return len(s.snaps) }

// At returns the i-th snapshot.
func (s *Solution) At(i int) Snapshot { return s.snaps[i] }

// Last returns the most recent snapshot; zero value when empty.
func (s *Solution) Last() Snapshot {
	if len(s.snaps) == 0 {
		return Snapshot{}
	}
	return s.snaps[len(s.snaps)-1]
}

// Times returns the accepted time instants.
func (s *Solution) Times() []float64 {
	ts := make([]float64, len(s.snaps))
	for i, sn := range s.snaps {
		ts[i] = sn.T
	}
	return ts
}

func (s *Solution) append(sn Snapshot) {
	s.snaps = append(s.snaps, sn)
}

func cloneSnapshot(t float64, q, u, qDot, uDot []float64, unk Unknowns) Snapshot {
	sn := Snapshot{
		T:        t,
		Q:        la.Clone(q),
		U:        la.Clone(u),
		QDot:     la.Clone(qDot),
		UDot:     la.Clone(uDot),
		LaG:      la.Clone(unk.LaG),
		LaGamma:  la.Clone(unk.LaGamma),
		KappaN:   la.Clone(unk.KappaN),
		ImpulseN: la.Clone(unk.ImpulseN),
		LaN:      la.Clone(unk.LaN),
	}
	if unk.KappaG != nil {
		sn.KappaG = la.Clone(unk.KappaG)
	}
	return sn
}
