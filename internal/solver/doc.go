// Package solver implements an implicit generalized-alpha time
// integrator for constrained multibody systems whose equations of
// motion form a differential-algebraic equation: second/first-order
// dynamics coupled with bilateral constraints (joints) and unilateral
// normal contacts (non-penetration complementarity).
//
// The engine is a single configurable integrator:
//
//   - [DAEIndex] selects which derivative level of the holonomic
//     constraints enters the residual (index 3: g, index 2: ġ,
//     index 1: g̈).
//   - GGL stabilization additionally enforces the position level and
//     projects the constraint directions onto the kinematic equation,
//     killing constraint drift.
//   - Unilateral contacts are handled by a nested three-level active
//     set (impact, persistence, smooth contact) resolved inside the
//     Newton iteration of every step.
//
// A solve is strictly sequential: each step depends on the committed
// history of the previous one. The only cancellation point is the
// context checked between steps.
//
//	eng, err := solver.New(m, t1, dt, solver.DefaultOptions())
//	sol, err := eng.Solve(ctx)
package solver
