// Package mip - bounded two-phase tableau simplex for node relaxations.
//
// The tableau is a dense gonum matrix with one row per constraint, one
// reduced-cost row for the node objective and one for the phase-1 objective.
// Row operations go through gonum/floats on the raw row views.
//
// Goals:
//   - Termination: Dantzig pricing, switching to Bland's rule after a run of
//     degenerate pivots and back after the first strict improvement. Bland's
//     rule cannot cycle, so every solve ends.
//   - Boundedness: a pivot cap proportional to the tableau size turns a
//     numerically stuck solve into lpFailed, which the search treats as
//     "branch without a bound".
//   - Responsiveness: the context and the solver deadline are checked every
//     few pivots, not only between search nodes.
//
// Column layout:
//
//	[ structural y | one slack per ≤ row | one artificial per row needing it | rhs ]
//
// A ≤ row with a nonnegative right-hand side starts with its slack basic.
// Equality rows and ≤ rows with a negative right-hand side are negated to a
// nonnegative right-hand side and start with an artificial basic. Phase 1
// minimizes the artificial sum; phase 2 never lets an artificial re-enter.
//
// Concurrency:
//   - A tableau is owned by one solve call. Nothing is shared.
//
// Complexity:
//   - O(rows · cols) per pivot; the pivot count is capped at
//     pivotCapFactor·(rows + cols) + pivotCapBase.
package mip

import (
	"context"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const (
	pivotTol       = 1e-9 // smallest usable pivot element
	feasTol        = 1e-7 // phase-1 residual treated as feasible
	minCostTol     = 1e-9 // floor for the reduced-cost tolerance
	blandAfter     = 32   // degenerate pivots before switching to Bland's rule
	checkEvery     = 16   // pivots between context and deadline checks
	pivotCapFactor = 50
	pivotCapBase   = 1000
)

// lpLimits carries the interruption sources of one solve.
type lpLimits struct {
	ctx      context.Context
	deadline time.Time
}

// expired reports a cancelled context as an error and a passed deadline as
// true.
func (l lpLimits) expired() (bool, error) {
	if err := l.ctx.Err(); err != nil {
		return false, err
	}

	return !l.deadline.IsZero() && time.Now().After(l.deadline), nil
}

type tableau struct {
	t        *mat.Dense
	m        int // constraint rows
	nStruct  int
	rhsCol   int
	basis    []int // basic column of each constraint row
	inBasis  []bool
	blocked  []bool // columns that may not enter
	artStart int
	pivots   int
	maxPivot int
}

// Row indices of the two objective rows.
func (tb *tableau) costRow() int { return tb.m }
func (tb *tableau) phaseRow() int { return tb.m + 1 }

// newTableau lays out rows[i]·y ≤ rhs[i] (= when eq[i]) with cost c.
func newTableau(rows [][]float64, rhs []float64, eq []bool, c []float64) *tableau {
	var (
		m       = len(rows)
		n       = len(c)
		nSlack  int
		nArt    int
		needArt = make([]bool, m)
	)
	for i := range rows {
		if !eq[i] {
			nSlack++
		}
		if eq[i] || rhs[i] < 0 {
			needArt[i] = true
			nArt++
		}
	}

	cols := n + nSlack + nArt
	tb := &tableau{
		t:        mat.NewDense(m+2, cols+1, nil),
		m:        m,
		nStruct:  n,
		rhsCol:   cols,
		basis:    make([]int, m),
		inBasis:  make([]bool, cols),
		blocked:  make([]bool, cols),
		artStart: n + nSlack,
		maxPivot: pivotCapFactor*(m+cols) + pivotCapBase,
	}

	slack, art := n, n+nSlack
	for i, coef := range rows {
		sign := 1.0
		if rhs[i] < 0 {
			sign = -1
		}
		row := tb.t.RawRowView(i)
		for k, a := range coef {
			row[k] = sign * a
		}
		row[cols] = sign * rhs[i]
		if !eq[i] {
			row[slack] = sign
			if !needArt[i] {
				tb.basis[i] = slack
			}
			slack++
		}
		if needArt[i] {
			row[art] = 1
			tb.basis[i] = art
			art++
		}
		tb.inBasis[tb.basis[i]] = true
	}

	copy(tb.t.RawRowView(tb.costRow()), c)

	phase := tb.t.RawRowView(tb.phaseRow())
	for j := tb.artStart; j < cols; j++ {
		phase[j] = 1
	}
	for i := 0; i < m; i++ {
		if needArt[i] {
			floats.AddScaled(phase, -1, tb.t.RawRowView(i))
		}
	}

	return tb
}

// run solves the LP and returns the structural values.
func (tb *tableau) run(lim lpLimits, tol float64) (lpStatus, []float64, error) {
	tol = math.Max(tol, minCostTol)

	if tb.artStart < tb.rhsCol {
		status, err := tb.iterate(tb.phaseRow(), lim, tol)
		if status != lpSolved || err != nil {
			return status, nil, err
		}
		scale := 1.0
		for i := 0; i < tb.m; i++ {
			scale += tb.t.At(i, tb.rhsCol)
		}
		if -tb.t.At(tb.phaseRow(), tb.rhsCol) > feasTol*scale {
			return lpInfeasible, nil, nil
		}
		tb.dropArtificials()
	}

	status, err := tb.iterate(tb.costRow(), lim, tol)
	if status != lpSolved || err != nil {
		return status, nil, err
	}

	y := make([]float64, tb.nStruct)
	for i, j := range tb.basis {
		if j < tb.nStruct {
			y[j] = math.Max(0, tb.t.At(i, tb.rhsCol))
		}
	}

	return lpSolved, y, nil
}

// dropArtificials pivots zero-valued artificials out of the basis where a
// non-artificial column allows it and blocks every artificial column. Rows
// that keep an artificial are redundant.
func (tb *tableau) dropArtificials() {
	for i, b := range tb.basis {
		if b < tb.artStart {
			continue
		}
		row := tb.t.RawRowView(i)
		for j := 0; j < tb.artStart; j++ {
			if !tb.inBasis[j] && math.Abs(row[j]) > pivotTol {
				tb.pivot(i, j)
				break
			}
		}
	}
	for j := tb.artStart; j < tb.rhsCol; j++ {
		tb.blocked[j] = true
	}
}

// iterate pivots on objective row obj until no reduced cost is below −tol.
// Unbounded rays report lpFailed: every relaxation column is bounded, so a
// ray means numerical trouble.
func (tb *tableau) iterate(obj int, lim lpLimits, tol float64) (lpStatus, error) {
	degenerate := 0
	for {
		if tb.pivots >= tb.maxPivot {
			return lpFailed, nil
		}
		if tb.pivots%checkEvery == 0 {
			timedOut, err := lim.expired()
			if err != nil {
				return lpFailed, err
			}
			if timedOut {
				return lpTimeout, nil
			}
		}

		bland := degenerate >= blandAfter
		col := tb.entering(obj, tol, bland)
		if col < 0 {
			return lpSolved, nil
		}
		row := tb.leaving(col, bland)
		if row < 0 {
			return lpFailed, nil
		}

		if tb.t.At(row, tb.rhsCol) <= pivotTol {
			degenerate++
		} else {
			degenerate = 0
		}
		tb.pivot(row, col)
		tb.pivots++
	}
}

// entering picks the most negative reduced cost, or the lowest-index negative
// one under Bland's rule. It returns −1 at optimality.
func (tb *tableau) entering(obj int, tol float64, bland bool) int {
	d := tb.t.RawRowView(obj)
	best, bestVal := -1, -tol
	for j := 0; j < tb.rhsCol; j++ {
		if tb.inBasis[j] || tb.blocked[j] || d[j] >= bestVal {
			continue
		}
		if bland {
			return j
		}
		best, bestVal = j, d[j]
	}

	return best
}

// leaving runs the ratio test on column col. Ties go to the lowest basic
// column under Bland's rule and to the larger pivot element otherwise.
func (tb *tableau) leaving(col int, bland bool) int {
	best := -1
	var bestRatio, bestPiv float64
	for i := 0; i < tb.m; i++ {
		a := tb.t.At(i, col)
		if a <= pivotTol {
			continue
		}
		ratio := math.Max(0, tb.t.At(i, tb.rhsCol)) / a
		switch {
		case best < 0, ratio < bestRatio-pivotTol:
		case ratio > bestRatio+pivotTol:
			continue
		case bland && tb.basis[i] < tb.basis[best]:
		case !bland && a > bestPiv:
		default:
			continue
		}
		best, bestRatio, bestPiv = i, ratio, a
	}

	return best
}

// pivot makes column col basic in row row.
func (tb *tableau) pivot(row, col int) {
	pr := tb.t.RawRowView(row)
	floats.Scale(1/pr[col], pr)
	pr[col] = 1

	rows, _ := tb.t.Dims()
	for i := 0; i < rows; i++ {
		if i == row {
			continue
		}
		r := tb.t.RawRowView(i)
		if f := r[col]; f != 0 {
			floats.AddScaled(r, -f, pr)
			r[col] = 0
		}
	}

	tb.inBasis[tb.basis[row]] = false
	tb.basis[row] = col
	tb.inBasis[col] = true
}
