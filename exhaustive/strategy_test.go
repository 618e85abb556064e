package exhaustive_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/VenkataKoppada/CEPAlgorithms-MealsCount/cep"
	"github.com/VenkataKoppada/CEPAlgorithms-MealsCount/exhaustive"
)

func TestStrategy_CoversRoster(t *testing.T) {
	sp := sponsorOf([]int{100, 200, 150, 80}, []int{10, 150, 40, 70}, true)
	st, err := exhaustive.NewStrategy(cep.Params{"evaluate_by": "coverage"})
	require.NoError(t, err)

	require.NoError(t, st.CreateGroups(context.Background(), sp))
	require.True(t, st.Created())
	require.NoError(t, cep.ValidateCoverage(sp.Sites, st.Groups(), true))
	require.Equal(t, exhaustive.Name, st.Name())
}

func TestStrategy_TooManySitesYieldsEmptyGrouping(t *testing.T) {
	sp := cep.NewSponsor("Valley District", "VD", true)
	for i, e := range []int{10, 15, 20, 25, 30, 35, 40, 45, 50, 55, 11, 16} {
		sp.AddSite(cep.NewSite(fmt.Sprintf("S%d", i+1), 100, e))
	}
	st, err := exhaustive.NewStrategy(nil)
	require.NoError(t, err)

	require.NoError(t, st.CreateGroups(context.Background(), sp))
	require.True(t, st.Created())
	require.Empty(t, st.Groups())
	require.Zero(t, st.Reimbursement())
}

func TestNewStrategy_RejectsSchoolsObjective(t *testing.T) {
	_, err := exhaustive.NewStrategy(cep.Params{"evaluate_by": "schools"})
	require.ErrorIs(t, err, cep.ErrUnknownObjective)
}
