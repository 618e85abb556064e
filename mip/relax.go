// Package mip - LP relaxation of one branch-and-bound node.
//
// A node fixes some binaries to 0 or 1. buildRelaxation substitutes those
// values, shifts every remaining variable to y = x − Lower so that y ≥ 0, and
// emits the constraint rows of the node LP. solve then hands the rows to the
// bounded tableau simplex in simplex.go.
//
// Row form:
//   - Ranged constraints lo ≤ a·x ≤ hi become one ≤ row per finite side.
//   - Equalities (lo == hi) stay a single equality row. Splitting them into a
//     ≤/≥ pair doubles the degenerate vertices of set-partition models.
//   - Upper bounds are emitted as y_k ≤ Upper − Lower unless a row with
//     nonnegative coefficients and right-hand side already implies them.
//
// Contracts:
//   - fixed has one entry per model variable; NaN marks a free variable.
//   - Variables whose bounds collapse (Upper − Lower ≤ tol) are fixed in place.
//
// Complexity:
//   - buildRelaxation: O(constraints · (terms + free)) time and space for the
//     dense rows.
//   - solve: see simplex.go; pivots are O(rows · (free + rows)).
package mip

import (
	"context"
	"math"
	"time"
)

// lpStatus is the outcome of one relaxation.
type lpStatus int

const (
	lpSolved lpStatus = iota
	lpInfeasible
	lpFailed
	lpTimeout
)

// relaxation is the LP of one search node over the shifted free variables
// y_j = x_j − Lower_j ≥ 0:
//
//	minimize cᵀy  s.t.  rows[i]·y ≤ rhs[i]  (= when eq[i])
type relaxation struct {
	model  *Model
	fixed  []float64 // value per model variable; NaN when free
	free   []int     // model variable of each structural column
	rows   [][]float64
	rhs    []float64
	eq     []bool
	offset float64 // model objective contributed by fixed values and lower bounds
}

// buildRelaxation substitutes fixed values and emits the rows of the node LP.
// It reports false when a constraint without free terms is already violated.
func buildRelaxation(m *Model, fixed []float64, tol float64) (*relaxation, bool) {
	r := &relaxation{model: m, fixed: fixed}

	col := make([]int, len(m.vars))
	for j, v := range m.vars {
		col[j] = -1
		if !math.IsNaN(fixed[j]) {
			r.offset += m.obj[j] * fixed[j]
			continue
		}
		if v.Upper-v.Lower <= tol {
			fixed[j] = v.Lower
			r.offset += m.obj[j] * v.Lower
			continue
		}
		col[j] = len(r.free)
		r.free = append(r.free, j)
		r.offset += m.obj[j] * v.Lower
	}

	nFree := len(r.free)
	implied := make([]bool, nFree)

	// addRow appends coef·y ≤ bound (= bound when eq) and records the upper
	// bounds it implies.
	addRow := func(coef []float64, bound float64, eq bool) {
		nonneg := bound >= 0
		for _, a := range coef {
			if a < 0 {
				nonneg = false
				break
			}
		}
		if nonneg {
			for k, a := range coef {
				if a > 0 {
					j := r.free[k]
					span := m.vars[j].Upper - m.vars[j].Lower
					if bound/a <= span+tol {
						implied[k] = true
					}
				}
			}
		}
		r.rows = append(r.rows, coef)
		r.rhs = append(r.rhs, bound)
		r.eq = append(r.eq, eq)
	}

	for _, c := range m.cons {
		var (
			constant float64
			coef     = make([]float64, nFree)
			nonzero  bool
		)
		for _, t := range c.Terms {
			j := t.Var
			if k := col[j]; k >= 0 {
				coef[k] += t.Coef
				constant += t.Coef * m.vars[j].Lower
			} else {
				constant += t.Coef * fixed[j]
			}
		}
		for _, a := range coef {
			if a != 0 {
				nonzero = true
				break
			}
		}
		if !nonzero {
			if constant < c.Lo-tol || constant > c.Hi+tol {
				return nil, false
			}
			continue
		}
		if c.Lo == c.Hi {
			addRow(coef, c.Hi-constant, true)
			continue
		}
		if !math.IsInf(c.Hi, 1) {
			addRow(coef, c.Hi-constant, false)
		}
		if !math.IsInf(c.Lo, -1) {
			neg := make([]float64, nFree)
			for k, a := range coef {
				neg[k] = -a
			}
			addRow(neg, constant-c.Lo, false)
		}
	}

	for k, j := range r.free {
		if implied[k] {
			continue
		}
		coef := make([]float64, nFree)
		coef[k] = 1
		r.rows = append(r.rows, coef)
		r.rhs = append(r.rhs, m.vars[j].Upper-m.vars[j].Lower)
		r.eq = append(r.eq, false)
	}

	return r, true
}

// solve runs the simplex method and returns the model objective and a full
// assignment of the model variables. A zero deadline means no deadline.
//
// Errors: ctx.Err() when ctx is cancelled mid-solve.
func (r *relaxation) solve(ctx context.Context, tol float64, deadline time.Time) (lpStatus, float64, []float64, error) {
	m := r.model
	values := make([]float64, len(m.vars))
	copy(values, r.fixed)

	nFree := len(r.free)
	if nFree == 0 {
		return lpSolved, r.offset, values, nil
	}

	c := make([]float64, nFree)
	for k, j := range r.free {
		c[k] = m.obj[j]
		if m.sense == Maximize {
			c[k] = -c[k]
		}
	}

	tb := newTableau(r.rows, r.rhs, r.eq, c)
	status, y, err := tb.run(lpLimits{ctx: ctx, deadline: deadline}, tol)
	if status != lpSolved || err != nil {
		return status, 0, nil, err
	}

	f := r.offset
	for k, j := range r.free {
		values[j] = m.vars[j].Lower + y[k]
		f += m.obj[j] * y[k]
	}

	return lpSolved, f, values, nil
}
