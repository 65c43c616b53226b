package solver

import (
	"testing"

	"github.com/mweb/condyn/internal/model"
)

var layoutDims = model.Dims{Nq: 2, Nu: 2, NlaG: 1, NlaGamma: 1, NlaN: 2}

func TestLayoutRoundTrip(t *testing.T) {
	l := NewLayout(layoutDims, true)
	if l.NX() != 13 {
		t.Fatalf("expected 13 unknowns, got %d", l.NX())
	}

	in := Unknowns{
		QDot:     []float64{1, 2},
		UDot:     []float64{3, 4},
		KappaG:   []float64{5},
		LaG:      []float64{6},
		LaGamma:  []float64{7},
		KappaN:   []float64{8, 9},
		ImpulseN: []float64{10, 11},
		LaN:      []float64{12, 13},
	}
	out := l.Unpack(l.Pack(in))

	for i, seg := range [][2][]float64{
		{in.QDot, out.QDot}, {in.UDot, out.UDot},
		{in.KappaG, out.KappaG}, {in.LaG, out.LaG},
		{in.LaGamma, out.LaGamma}, {in.KappaN, out.KappaN},
		{in.ImpulseN, out.ImpulseN}, {in.LaN, out.LaN},
	} {
		if len(seg[0]) != len(seg[1]) {
			t.Fatalf("segment %d: length %d != %d", i, len(seg[0]), len(seg[1]))
		}
		for k := range seg[0] {
			if seg[0][k] != seg[1][k] {
				t.Errorf("segment %d, component %d: %f != %f", i, k, seg[0][k], seg[1][k])
			}
		}
	}
}

func TestLayoutWithoutGGL(t *testing.T) {
	l := NewLayout(layoutDims, false)
	if l.NX() != 12 {
		t.Fatalf("expected 12 unknowns, got %d", l.NX())
	}
	if l.GGL() {
		t.Error("layout reports GGL")
	}

	in := Unknowns{
		QDot:     []float64{1, 2},
		UDot:     []float64{3, 4},
		LaG:      []float64{6},
		LaGamma:  []float64{7},
		KappaN:   []float64{8, 9},
		ImpulseN: []float64{10, 11},
		LaN:      []float64{12, 13},
	}
	out := l.Unpack(l.Pack(in))
	if out.KappaG != nil {
		t.Error("expected nil kappa_g segment without GGL")
	}
	if out.LaG[0] != 6 {
		t.Errorf("la_g = %f, want 6", out.LaG[0])
	}
}

func TestLayoutPackPanicsOnBadSegment(t *testing.T) {
	l := NewLayout(layoutDims, true)
	defer func() {
		if recover() == nil {
			t.Error("expected panic for wrong segment length")
		}
	}()
	l.Pack(Unknowns{QDot: []float64{1}})
}

func TestLayoutUnpackPanicsOnBadVector(t *testing.T) {
	l := NewLayout(layoutDims, true)
	defer func() {
		if recover() == nil {
			t.Error("expected panic for wrong vector length")
		}
	}()
	l.Unpack(make([]float64, 5))
}
