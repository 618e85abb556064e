package cep_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/VenkataKoppada/CEPAlgorithms-MealsCount/cep"
)

func TestParams_LenientConversion(t *testing.T) {
	p := cep.Params{
		"a": 50,
		"b": "50",
		"c": 50.0,
		"d": "true",
		"e": "None",
		"f": nil,
		"g": "0.02",
	}
	for _, k := range []string{"a", "b", "c"} {
		v, err := p.Int(k, 0)
		require.NoError(t, err)
		require.Equal(t, 50, v, k)
	}

	b, err := p.Bool("d", false)
	require.NoError(t, err)
	require.True(t, b)

	v, err := p.Int("e", 7)
	require.NoError(t, err)
	require.Equal(t, 7, v, "None means unset")
	require.False(t, p.Has("f"))

	f, err := p.Float("g", 0)
	require.NoError(t, err)
	require.Equal(t, 0.02, f)
}

func TestParams_BadValue(t *testing.T) {
	p := cep.Params{"n": "lots"}
	_, err := p.Int("n", 1)
	require.ErrorIs(t, err, cep.ErrBadParam)
}

func TestParams_Objective(t *testing.T) {
	p := cep.Params{"evaluate_by": " Coverage "}
	o, err := p.Objective("evaluate_by", cep.ObjectiveReimbursement)
	require.NoError(t, err)
	require.Equal(t, cep.ObjectiveCoverage, o)

	o, err = cep.Params{}.Objective("evaluate_by", cep.ObjectiveSchoolsFree)
	require.NoError(t, err)
	require.Equal(t, cep.ObjectiveSchoolsFree, o)

	_, err = cep.Params{"evaluate_by": "profit"}.Objective("evaluate_by", cep.ObjectiveReimbursement)
	require.ErrorIs(t, err, cep.ErrUnknownObjective)
}
