package mip

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBuildRelaxation_ImpliedBounds(t *testing.T) {
	m := NewModel(Maximize)
	a, b, c := m.AddBinary("a"), m.AddBinary("b"), m.AddBinary("c")
	m.AddLessEqual("cap", 9, Term{Var: a, Coef: 4}, Term{Var: b, Coef: 6}, Term{Var: c, Coef: 3})

	rel, ok := buildRelaxation(m, nanSlice(3), 1e-9)
	require.True(t, ok)
	require.Len(t, rel.free, 3)
	require.Len(t, rel.rows, 4, "capacity row plus three explicit bounds")

	fixed := nanSlice(3)
	fixed[a] = 1
	rel, ok = buildRelaxation(m, fixed, 1e-9)
	require.True(t, ok)
	require.Equal(t, []int{b, c}, rel.free)
	require.Equal(t, []float64{5}, rel.rhs[:1])
	require.Len(t, rel.rows, 2, "6b ≤ 5 implies b ≤ 1; c needs its own bound")
}

func TestBuildRelaxation_EqualityRows(t *testing.T) {
	m := NewModel(Maximize)
	x, y := m.AddBinary("x"), m.AddBinary("y")
	m.AddEquality("one", 1, Term{Var: x, Coef: 1}, Term{Var: y, Coef: 1})

	rel, ok := buildRelaxation(m, nanSlice(2), 1e-9)
	require.True(t, ok)
	require.Len(t, rel.rows, 1, "one equality row, bounds implied")
	require.Equal(t, []float64{1}, rel.rhs)
	require.Equal(t, []bool{true}, rel.eq)

	status, obj, values, err := rel.solve(context.Background(), 1e-10, time.Time{})
	require.NoError(t, err)
	require.Equal(t, lpSolved, status)
	require.Zero(t, obj)
	require.InDelta(t, 1.0, values[x]+values[y], 1e-9)
}

func TestBuildRelaxation_FixedViolation(t *testing.T) {
	m := NewModel(Maximize)
	x := m.AddBinary("x")
	m.AddLessEqual("none", 0, Term{Var: x, Coef: 1})

	fixed := []float64{1}
	_, ok := buildRelaxation(m, fixed, 1e-9)
	require.False(t, ok)

	fixed = []float64{0}
	rel, ok := buildRelaxation(m, fixed, 1e-9)
	require.True(t, ok)
	status, _, values, err := rel.solve(context.Background(), 1e-10, time.Time{})
	require.NoError(t, err)
	require.Equal(t, lpSolved, status)
	require.Equal(t, []float64{0}, values)
}

func TestMostFractional(t *testing.T) {
	m := NewModel(Maximize)
	m.AddBinary("a")
	m.AddBinary("b")
	m.AddBinary("c")
	fixed := nanSlice(3)

	require.Equal(t, 1, mostFractional(m, fixed, []float64{0.1, 0.45, 1}, 1e-6))
	require.Equal(t, -1, mostFractional(m, fixed, []float64{0, 1, 1e-9}, 1e-6))

	fixed[1] = 0
	require.Equal(t, 0, mostFractional(m, fixed, []float64{0.1, 0.45, 1}, 1e-6))
	require.True(t, math.IsNaN(nanSlice(1)[0]))
}
