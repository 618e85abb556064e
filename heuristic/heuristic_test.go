package heuristic_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/VenkataKoppada/CEPAlgorithms-MealsCount/cep"
	"github.com/VenkataKoppada/CEPAlgorithms-MealsCount/heuristic"
)

type layout struct {
	Name  string
	Sites []string
}

func layoutOf(groups []*cep.Group) []layout {
	out := make([]layout, 0, len(groups))
	for _, g := range groups {
		l := layout{Name: g.Name}
		for _, s := range g.Sites {
			l.Sites = append(l.Sites, s.Code())
		}
		out = append(out, l)
	}

	return out
}

func sponsorOf(codes []string, enrolled, eligible []int) *cep.Sponsor {
	sp := cep.NewSponsor("T", "T", false)
	for i, c := range codes {
		sp.AddSite(cep.NewSite(c, enrolled[i], eligible[i]))
	}

	return sp
}

func valleySponsor() *cep.Sponsor {
	eligible := []int{10, 15, 20, 25, 30, 35, 40, 45, 50, 55, 11, 16}
	codes := make([]string, len(eligible))
	enrolled := make([]int, len(eligible))
	for i := range eligible {
		codes[i] = fmt.Sprintf("S%d", i+1)
		enrolled[i] = 100
	}

	return sponsorOf(codes, enrolled, eligible)
}

func create(t *testing.T, s cep.Strategy, sp *cep.Sponsor) []layout {
	t.Helper()
	require.NoError(t, s.CreateGroups(context.Background(), sp))
	require.True(t, s.Created())

	return layoutOf(s.Groups())
}

func diff(t *testing.T, want, got []layout) {
	t.Helper()
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("grouping mismatch (-want +got):\n%s", d)
	}
}

func TestOneGroup(t *testing.T) {
	sp := sponsorOf([]string{"A", "B"}, []int{100, 50}, []int{10, 40})
	s := heuristic.NewOneGroup(nil)
	assert.Equal(t, heuristic.OneGroupName, s.Name())
	diff(t, []layout{{"G1", []string{"A", "B"}}}, create(t, s, sp))

	assert.Empty(t, create(t, heuristic.NewOneGroup(nil), cep.NewSponsor("E", "E", false)))
}

func TestOneToOne(t *testing.T) {
	sp := sponsorOf([]string{"A", "B"}, []int{100, 50}, []int{10, 40})
	diff(t, []layout{{"A", []string{"A"}}, {"B", []string{"B"}}}, create(t, heuristic.NewOneToOne(nil), sp))
}

func TestPairs(t *testing.T) {
	t.Run("threshold pass", func(t *testing.T) {
		sp := sponsorOf([]string{"A", "B", "C", "D"}, []int{100, 200, 50, 100}, []int{80, 40, 30, 0})
		diff(t, []layout{
			{"Group-of-A", []string{"A", "C"}},
			{"Not CEP Eligible", []string{"B", "D"}},
		}, create(t, heuristic.NewPairs(nil), sp))
	})

	t.Run("minimum pass", func(t *testing.T) {
		diff(t, []layout{
			{"Group-of-S10", []string{"S10", "S4"}},
			{"Group-of-S9", []string{"S9", "S3"}},
			{"Group-of-S8", []string{"S8", "S12"}},
			{"Group-of-S7", []string{"S7", "S2"}},
			{"Singleton-Group-of-S6", []string{"S6"}},
			{"Singleton-Group-of-S5", []string{"S5"}},
			{"Not CEP Eligible", []string{"S11", "S1"}},
		}, create(t, heuristic.NewPairs(nil), valleySponsor()))
	})
}

func TestSpread(t *testing.T) {
	sp := sponsorOf([]string{"A", "B", "C", "D"}, []int{100, 100, 100, 100}, []int{90, 50, 40, 10})
	diff(t, []layout{
		{"Group-of-A", []string{"A", "B"}},
		{"Remainder", []string{"C", "D"}},
	}, create(t, heuristic.NewSpread(nil), sp))

	got := create(t, heuristic.NewSpread(nil), valleySponsor())
	require.Len(t, got, 1)
	assert.Equal(t, "Remainder", got[0].Name)
	assert.Len(t, got[0].Sites, 12)
}

func TestBinning(t *testing.T) {
	sp := sponsorOf([]string{"A", "B", "C", "D"}, []int{100, 100, 100, 100}, []int{90, 50, 40, 10})
	s, err := heuristic.NewBinning(nil)
	require.NoError(t, err)
	assert.Equal(t, heuristic.DefaultISPWidth, s.Width())
	diff(t, []layout{
		{"High-ISP", []string{"A", "B", "C"}},
		{"ISP-0.08_to_0.10", []string{"D"}},
	}, create(t, s, sp))

	got := create(t, s, valleySponsor())
	assert.Equal(t, "High-ISP", got[0].Name)
	for _, l := range got[1:] {
		assert.True(t, strings.HasPrefix(l.Name, "ISP-") || l.Name == "The-Rest-Low-ISP", l.Name)
	}

	assert.Empty(t, create(t, s, cep.NewSponsor("E", "E", false)))

	_, err = heuristic.NewBinning(cep.Params{"isp_width": 0})
	require.ErrorIs(t, err, cep.ErrBadParam)
	_, err = heuristic.NewBinning(cep.Params{"isp_width": "wide"})
	require.ErrorIs(t, err, cep.ErrBadParam)
}

func TestHeuristicsCoverRoster(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 15).Draw(t, "n")
		sp := cep.NewSponsor("R", "R", false)
		for i := 0; i < n; i++ {
			enrolled := rapid.IntRange(0, 500).Draw(t, fmt.Sprintf("enrolled%d", i))
			eligible := rapid.IntRange(0, enrolled).Draw(t, fmt.Sprintf("eligible%d", i))
			sp.AddSite(cep.NewSite(fmt.Sprintf("S%d", i), enrolled, eligible))
		}
		binning, err := heuristic.NewBinning(cep.Params{"isp_width": rapid.Float64Range(0.01, 0.2).Draw(t, "width")})
		require.NoError(t, err)

		for _, s := range []cep.Strategy{
			heuristic.NewOneGroup(nil),
			heuristic.NewOneToOne(nil),
			heuristic.NewPairs(nil),
			heuristic.NewSpread(nil),
			binning,
		} {
			require.NoError(t, s.CreateGroups(context.Background(), sp), s.Name())
			require.NoError(t, cep.ValidateCoverage(sp.Sites, s.Groups(), true), s.Name())
			for _, g := range s.Groups() {
				require.NotZero(t, g.Len(), "%s: empty group %q", s.Name(), g.Name)
			}
		}
	})
}
