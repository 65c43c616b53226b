package la

import "gonum.org/v1/gonum/mat"

// FDMethod selects the finite-difference stencil used to approximate
// Jacobians.
type FDMethod int

const (
	// Forward uses a two-point forward difference. One extra residual
	// evaluation per column.
	Forward FDMethod = iota
	// Central uses a three-point central difference. Twice the cost,
	// one order more accurate.
	Central
)

// DefaultFDEps is the base perturbation for finite differences; it is
// scaled by the magnitude of each component.
const DefaultFDEps = 1e-8

// NumJacobian approximates J = ∂f/∂x by finite differences, column by
// column. f must not retain or modify its argument.
func NumJacobian(f func([]float64) []float64, x []float64, method FDMethod, eps float64) *mat.Dense {
	if eps <= 0 {
		eps = DefaultFDEps
	}
	n := len(x)
	xp := Clone(x)

	var f0 []float64
	if method == Forward {
		f0 = f(xp)
	}

	var j *mat.Dense
	for col := 0; col < n; col++ {
		h := eps
		if ax := x[col]; ax > 1 || ax < -1 {
			if ax < 0 {
				ax = -ax
			}
			h = eps * ax
		}

		var df []float64
		switch method {
		case Central:
			xp[col] = x[col] + h
			fp := f(xp)
			xp[col] = x[col] - h
			fm := f(xp)
			xp[col] = x[col]
			df = make([]float64, len(fp))
			for i := range fp {
				df[i] = (fp[i] - fm[i]) / (2 * h)
			}
		default:
			xp[col] = x[col] + h
			fp := f(xp)
			xp[col] = x[col]
			df = make([]float64, len(fp))
			for i := range fp {
				df[i] = (fp[i] - f0[i]) / h
			}
		}

		if j == nil {
			j = mat.NewDense(len(df), n, nil)
		}
		for i, v := range df {
			j.Set(i, col, v)
		}
	}
	return j
}
