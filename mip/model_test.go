package mip_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/VenkataKoppada/CEPAlgorithms-MealsCount/mip"
)

func TestModel_Validate(t *testing.T) {
	require.ErrorIs(t, mip.NewModel(mip.Maximize).Validate(), mip.ErrEmptyModel)

	m := mip.NewModel(mip.Maximize)
	m.AddContinuous("z", 0, math.Inf(1))
	require.ErrorIs(t, m.Validate(), mip.ErrBadBounds)

	m = mip.NewModel(mip.Maximize)
	m.AddContinuous("z", 2, 1)
	require.ErrorIs(t, m.Validate(), mip.ErrBadBounds)

	m = mip.NewModel(mip.Maximize)
	x := m.AddBinary("x")
	m.AddConstraint("bad", 3, 1, mip.Term{Var: x, Coef: 1})
	require.ErrorIs(t, m.Validate(), mip.ErrBadBounds)

	m = mip.NewModel(mip.Maximize)
	x = m.AddBinary("x")
	m.AddLessEqual("c", 1, mip.Term{Var: x + 1, Coef: 1})
	require.ErrorIs(t, m.Validate(), mip.ErrUnknownVar)
}

func TestModel_FeasibleAndEvaluate(t *testing.T) {
	m := mip.NewModel(mip.Maximize)
	x := m.AddBinary("x")
	y := m.AddBinary("y")
	m.SetObjective(x, 2)
	m.SetObjective(y, 3)
	m.AddLessEqual("cap", 1, mip.Term{Var: x, Coef: 1}, mip.Term{Var: y, Coef: 1})

	require.True(t, m.Feasible([]float64{0, 1}, 1e-9))
	require.False(t, m.Feasible([]float64{1, 1}, 1e-9))
	require.False(t, m.Feasible([]float64{0.5, 0}, 1e-9), "binary must be integral")
	require.False(t, m.Feasible([]float64{1}, 1e-9), "length mismatch")
	require.Equal(t, 3.0, m.Evaluate([]float64{0, 1}))
	require.Equal(t, 2, m.NumVars())
	require.Equal(t, 1, m.NumConstraints())
	require.Equal(t, "maximize", m.Sense().String())
}
