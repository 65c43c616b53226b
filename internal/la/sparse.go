// Package la provides the small linear-algebra layer the integrator is
// built on: coordinate-list (triplet) sparse matrices as the assembly
// format for model Jacobians, a dense LU solve backed by gonum, and a
// finite-difference Jacobian helper.
package la

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Triplet is a single (row, col, value) entry of a sparse matrix.
type Triplet struct {
	Row, Col int
	Val      float64
}

// Sparse is a matrix in coordinate-list form. Duplicate entries are
// additive, matching the usual finite-element assembly convention.
type Sparse struct {
	rows, cols int
	entries    []Triplet
}

func NewSparse(rows, cols int) *Sparse {
	return &Sparse{rows: rows, cols: cols}
}

func (s *Sparse) Dims() (rows, cols int) { return s.rows, s.cols }

// Set appends an entry. Entries with the same (i, j) accumulate.
func (s *Sparse) Set(i, j int, v float64) {
	if i < 0 || i >= s.rows || j < 0 || j >= s.cols {
		panic(fmt.Sprintf("la: entry (%d,%d) outside %dx%d matrix", i, j, s.rows, s.cols))
	}
	s.entries = append(s.entries, Triplet{Row: i, Col: j, Val: v})
}

// Entries returns the raw triplet list.
func (s *Sparse) Entries() []Triplet { return s.entries }

// MulVec computes y = A*x.
func (s *Sparse) MulVec(x []float64) []float64 {
	if len(x) != s.cols {
		panic(fmt.Sprintf("la: MulVec dimension mismatch: %d columns, %d vector", s.cols, len(x)))
	}
	y := make([]float64, s.rows)
	for _, e := range s.entries {
		y[e.Row] += e.Val * x[e.Col]
	}
	return y
}

// MulVecT computes y = Aᵀ*x.
func (s *Sparse) MulVecT(x []float64) []float64 {
	if len(x) != s.rows {
		panic(fmt.Sprintf("la: MulVecT dimension mismatch: %d rows, %d vector", s.rows, len(x)))
	}
	y := make([]float64, s.cols)
	for _, e := range s.entries {
		y[e.Col] += e.Val * x[e.Row]
	}
	return y
}

// Dense accumulates the triplets into a gonum dense matrix.
func (s *Sparse) Dense() *mat.Dense {
	d := mat.NewDense(s.rows, s.cols, nil)
	for _, e := range s.entries {
		d.Set(e.Row, e.Col, d.At(e.Row, e.Col)+e.Val)
	}
	return d
}

// Identity returns the n x n identity in triplet form.
func Identity(n int) *Sparse {
	s := NewSparse(n, n)
	for i := 0; i < n; i++ {
		s.Set(i, i, 1)
	}
	return s
}

// SolveDense solves A x = b using an LU decomposition. The matrix is
// treated as a black box rebuilt by the caller for every solve; no
// factorization is cached.
func SolveDense(a *mat.Dense, b []float64) ([]float64, error) {
	r, c := a.Dims()
	if r != c {
		return nil, fmt.Errorf("la: cannot solve %dx%d system: matrix is not square", r, c)
	}
	if len(b) != r {
		return nil, fmt.Errorf("la: right-hand side has %d rows, matrix has %d", len(b), r)
	}
	var lu mat.LU
	lu.Factorize(a)
	x := mat.NewVecDense(r, nil)
	if err := lu.SolveVecTo(x, false, mat.NewVecDense(r, append([]float64(nil), b...))); err != nil {
		return nil, fmt.Errorf("la: linear solve failed: %w", err)
	}
	out := make([]float64, r)
	copy(out, x.RawVector().Data)
	return out, nil
}

// Solve assembles the sparse matrix densely and solves A x = b.
func Solve(a *Sparse, b []float64) ([]float64, error) {
	return SolveDense(a.Dense(), b)
}

// MaxAbs returns the maximum absolute value of v; zero for empty v.
func MaxAbs(v []float64) float64 {
	m := 0.0
	for _, x := range v {
		if x < 0 {
			x = -x
		}
		if x > m {
			m = x
		}
	}
	return m
}

// Clone returns a copy of v.
func Clone(v []float64) []float64 {
	c := make([]float64, len(v))
	copy(c, v)
	return c
}
