package la

import (
	"math"
	"testing"
)

func TestSparseMulVec(t *testing.T) {
	a := NewSparse(2, 2)
	a.Set(0, 0, 1)
	a.Set(0, 0, 1) // duplicates accumulate
	a.Set(0, 1, 1)
	a.Set(1, 0, 1)
	a.Set(1, 1, 3)

	y := a.MulVec([]float64{1, 1})
	if y[0] != 3 || y[1] != 4 {
		t.Errorf("expected [3 4], got %v", y)
	}

	yt := a.MulVecT([]float64{1, 1})
	if yt[0] != 3 || yt[1] != 4 {
		t.Errorf("expected [3 4], got %v", yt)
	}
}

func TestSparseDense(t *testing.T) {
	a := NewSparse(2, 2)
	a.Set(0, 0, 1)
	a.Set(0, 0, 1)
	a.Set(1, 1, 3)

	d := a.Dense()
	if d.At(0, 0) != 2 {
		t.Errorf("expected accumulated entry 2, got %f", d.At(0, 0))
	}
	if d.At(0, 1) != 0 {
		t.Errorf("expected zero fill, got %f", d.At(0, 1))
	}
	if d.At(1, 1) != 3 {
		t.Errorf("expected 3, got %f", d.At(1, 1))
	}
}

func TestSparseSetOutOfRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for out-of-range entry")
		}
	}()
	NewSparse(2, 2).Set(5, 0, 1)
}

func TestSolve(t *testing.T) {
	a := NewSparse(2, 2)
	a.Set(0, 0, 2)
	a.Set(0, 1, 1)
	a.Set(1, 0, 1)
	a.Set(1, 1, 3)

	x, err := Solve(a, []float64{5, 10})
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	if math.Abs(x[0]-1) > 1e-12 || math.Abs(x[1]-3) > 1e-12 {
		t.Errorf("expected [1 3], got %v", x)
	}
}

func TestSolveDenseNonSquare(t *testing.T) {
	a := NewSparse(2, 3)
	if _, err := Solve(a, []float64{1, 2}); err == nil {
		t.Error("expected error for non-square system")
	}
}

func TestIdentity(t *testing.T) {
	x := []float64{1, 2, 3}
	y := Identity(3).MulVec(x)
	for i := range x {
		if y[i] != x[i] {
			t.Errorf("identity changed component %d: %f", i, y[i])
		}
	}
}

func TestMaxAbs(t *testing.T) {
	if v := MaxAbs([]float64{-2, 1, 0.5}); v != 2 {
		t.Errorf("expected 2, got %f", v)
	}
	if v := MaxAbs(nil); v != 0 {
		t.Errorf("expected 0 for empty vector, got %f", v)
	}
}

func TestClone(t *testing.T) {
	v := []float64{1, 2}
	c := Clone(v)
	c[0] = 9
	if v[0] != 1 {
		t.Error("clone aliases the source")
	}
}
