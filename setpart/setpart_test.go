package setpart_test

import (
	"context"
	"fmt"
	"math"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/VenkataKoppada/CEPAlgorithms-MealsCount/cep"
	"github.com/VenkataKoppada/CEPAlgorithms-MealsCount/mip"
	"github.com/VenkataKoppada/CEPAlgorithms-MealsCount/setpart"
)

func sponsorOf(enrolled, eligible []int) *cep.Sponsor {
	sp := cep.NewSponsor("T", "T", false)
	for i := range enrolled {
		sp.AddSite(cep.NewSite(fmt.Sprintf("S%d", i+1), enrolled[i], eligible[i]))
	}

	return sp
}

func valleySponsor() *cep.Sponsor {
	return valleyPrefix(12)
}

// valleyPrefix returns the first n sites of the Valley roster.
func valleyPrefix(n int) *cep.Sponsor {
	eligible := []int{10, 15, 20, 25, 30, 35, 40, 45, 50, 55, 11, 16}[:n]
	enrolled := make([]int, len(eligible))
	for i := range enrolled {
		enrolled[i] = 100
	}

	return sponsorOf(enrolled, eligible)
}

// bandedOptimum enumerates partitions whose blocks all lie in the ISP band
// and returns the best summed estimate.
func bandedOptimum(sp *cep.Sponsor) (float64, bool) {
	var (
		best   float64
		found  bool
		blocks [][]*cep.Site
		rec    func(i int)
	)
	inBand := func(b []*cep.Site) bool {
		var e, n int
		for _, s := range b {
			e += s.Eligible()
			n += s.Enrolled()
		}
		isp := float64(e) / float64(n)
		return isp >= cep.MinimumISP && isp <= cep.ThresholdISP
	}
	rec = func(i int) {
		if i == len(sp.Sites) {
			var total float64
			for _, b := range blocks {
				if !inBand(b) {
					return
				}
				total += cep.NewGroup(sp, "", b).EstimateReimbursement()
			}
			if !found || total > best {
				best, found = total, true
			}
			return
		}
		site := sp.Sites[i]
		for b := range blocks {
			blocks[b] = append(blocks[b], site)
			rec(i + 1)
			blocks[b] = blocks[b][:len(blocks[b])-1]
		}
		blocks = append(blocks, []*cep.Site{site})
		rec(i + 1)
		blocks = blocks[:len(blocks)-1]
	}
	rec(0)

	return best, found
}

func codes(groups []*cep.Group) []string {
	var out []string
	for _, g := range groups {
		for _, s := range g.Sites {
			out = append(out, s.Code())
		}
	}
	sort.Strings(out)

	return out
}

func TestSetPartitionMatchesBruteForce(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 6).Draw(t, "n")
		enrolled := make([]int, n)
		eligible := make([]int, n)
		for i := range enrolled {
			enrolled[i] = rapid.IntRange(1, 300).Draw(t, fmt.Sprintf("enrolled%d", i))
			eligible[i] = rapid.IntRange(0, enrolled[i]).Draw(t, fmt.Sprintf("eligible%d", i))
		}
		sp := sponsorOf(enrolled, eligible)

		res, err := setpart.SetPartition(context.Background(), sp, mip.NewBranchAndBound())
		require.NoError(t, err)

		want, found := bandedOptimum(sp)
		require.Equal(t, found, res.Solved)
		if !found {
			require.Empty(t, res.Groups)
			require.Len(t, res.Unassigned, n)
			return
		}
		require.InDelta(t, want, res.Objective, 1e-6*math.Max(1, want))
		require.InDelta(t, res.Objective, cep.TotalReimbursement(res.Groups), 1e-6*math.Max(1, want))
		require.Empty(t, res.Unassigned)
		require.NoError(t, cep.ValidateCoverage(sp.Sites, res.Groups, true))
		for _, g := range res.Groups {
			isp := float64(g.TotalEligible()) / float64(g.TotalEnrolled())
			require.GreaterOrEqual(t, isp, cep.MinimumISP)
			require.LessOrEqual(t, isp, cep.ThresholdISP)
		}
	})
}

func requireBandedCover(t *testing.T, sp *cep.Sponsor, res setpart.Result) {
	t.Helper()
	require.Empty(t, res.Unassigned)
	require.NoError(t, cep.ValidateCoverage(sp.Sites, res.Groups, true))
	require.InDelta(t, res.Objective, cep.TotalReimbursement(res.Groups), 1e-6*math.Max(1, res.Objective))
	for _, g := range res.Groups {
		isp := float64(g.TotalEligible()) / float64(g.TotalEnrolled())
		require.GreaterOrEqual(t, isp, cep.MinimumISP)
		require.LessOrEqual(t, isp, cep.ThresholdISP)
	}
}

func TestSetPartitionTenSites(t *testing.T) {
	sp := valleyPrefix(10)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	res, err := setpart.SetPartition(ctx, sp, mip.NewBranchAndBound(mip.WithTimeLimit(45*time.Second)))
	require.NoError(t, err)
	require.True(t, res.Solved)
	requireBandedCover(t, sp, res)

	want, found := bandedOptimum(sp)
	require.True(t, found)
	require.InDelta(t, want, res.Objective, 1e-6*want)
}

// The full Valley roster with default subset limits yields thousands of
// columns whose relaxations are highly degenerate.
func TestSetPartitionValleyDefaults(t *testing.T) {
	sp := valleySponsor()
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	start := time.Now()
	res, err := setpart.SetPartition(ctx, sp, mip.NewBranchAndBound(mip.WithTimeLimit(30*time.Second)))
	require.NoError(t, err)
	require.Less(t, time.Since(start), 90*time.Second)

	if !res.Solved {
		require.Empty(t, res.Groups)
		require.Len(t, res.Unassigned, 12)
		return
	}
	requireBandedCover(t, sp, res)
}

func TestSetPartitionValleySmallSubsets(t *testing.T) {
	sp := valleySponsor()
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	res, err := setpart.SetPartition(ctx, sp, mip.NewBranchAndBound(mip.WithTimeLimit(45*time.Second)),
		setpart.WithMaxSubsetSize(3))
	require.NoError(t, err)
	require.True(t, res.Solved)
	requireBandedCover(t, sp, res)
}

func TestSetPartitionNames(t *testing.T) {
	sp := sponsorOf([]int{100, 100, 100}, []int{40, 10, 60})
	res, err := setpart.SetPartition(context.Background(), sp, mip.NewBranchAndBound())
	require.NoError(t, err)
	require.True(t, res.Solved)
	for i, g := range res.Groups {
		assert.Equal(t, fmt.Sprintf("Group %d", i), g.Name)
	}
	assert.Equal(t, []string{"S1", "S2", "S3"}, codes(res.Groups))
}

func TestSetPartitionInfeasible(t *testing.T) {
	// Every subset sits above the band.
	sp := sponsorOf([]int{100, 100}, []int{90, 95})
	res, err := setpart.SetPartition(context.Background(), sp, mip.NewBranchAndBound())
	require.NoError(t, err)
	assert.False(t, res.Solved)
	assert.Len(t, res.Unassigned, 2)

	// S2 fits no subset: alone 1.0, paired 0.70.
	sp = sponsorOf([]int{100, 100}, []int{40, 100})
	res, err = setpart.SetPartition(context.Background(), sp, mip.NewBranchAndBound())
	require.NoError(t, err)
	assert.False(t, res.Solved)
	assert.Len(t, res.Unassigned, 2)

	// S2 alone is above the band; the pair (50/110) is the only cover.
	sp = sponsorOf([]int{100, 10}, []int{40, 10})
	res, err = setpart.SetPartition(context.Background(), sp, mip.NewBranchAndBound())
	require.NoError(t, err)
	require.True(t, res.Solved)
	require.Len(t, res.Groups, 1)
	assert.Equal(t, 2, res.Groups[0].Len())
}

func TestSetPartitionFiltersRoster(t *testing.T) {
	sp := sponsorOf([]int{100, 0, 100}, []int{40, 0, 30})
	sp.AddSite(cep.NewSite("S1", 100, 100))
	res, err := setpart.SetPartition(context.Background(), sp, mip.NewBranchAndBound())
	require.NoError(t, err)
	require.True(t, res.Solved)
	assert.Equal(t, []string{"S1", "S3"}, codes(res.Groups))
}

func TestSetPartitionEmpty(t *testing.T) {
	res, err := setpart.SetPartition(context.Background(), cep.NewSponsor("E", "E", false), mip.NewBranchAndBound())
	require.NoError(t, err)
	assert.False(t, res.Solved)
	assert.Empty(t, res.Groups)
	assert.Empty(t, res.Unassigned)
}

func TestSetPartitionTooManySubsets(t *testing.T) {
	_, err := setpart.SetPartition(context.Background(), valleySponsor(), mip.NewBranchAndBound(), setpart.WithMaxSubsets(5))
	require.ErrorIs(t, err, setpart.ErrTooManySubsets)
}

func TestSetPartitionNodeLimit(t *testing.T) {
	sp := sponsorOf([]int{100, 100, 100, 100}, []int{10, 40, 20, 50})
	res, err := setpart.SetPartition(context.Background(), sp, mip.NewBranchAndBound(mip.WithMaxNodes(1)))
	require.NoError(t, err)
	if !res.Solved {
		assert.Len(t, res.Unassigned, 4)
		assert.Empty(t, res.Groups)
	}
}

func TestBinGreedy(t *testing.T) {
	sp := valleySponsor()
	res, err := setpart.BinGreedy(context.Background(), sp, mip.NewBranchAndBound())
	require.NoError(t, err)
	require.True(t, res.Solved)
	require.NotEmpty(t, res.Groups)

	assert.InDelta(t, cep.TotalReimbursement(res.Groups), res.Objective, 1e-9)
	all := append([]*cep.Group(nil), res.Groups...)
	all = append(all, cep.NewGroup(sp, "rest", res.Unassigned))
	require.NoError(t, cep.ValidateCoverage(sp.Sites, all, true))

	for i, g := range res.Groups {
		assert.Equal(t, fmt.Sprintf("Group-%d", i+1), g.Name)
		isp := float64(g.TotalEligible()) / float64(g.TotalEnrolled())
		assert.GreaterOrEqual(t, isp, cep.MinimumISP)
		assert.LessOrEqual(t, isp, cep.ThresholdISP)
	}
}

func TestBinGreedyNoBin(t *testing.T) {
	sp := sponsorOf([]int{100, 100, 100}, []int{90, 95, 99})
	res, err := setpart.BinGreedy(context.Background(), sp, mip.NewBranchAndBound())
	require.NoError(t, err)
	assert.False(t, res.Solved)
	assert.Len(t, res.Unassigned, 3)

	// A single site never forms a bin.
	res, err = setpart.BinGreedy(context.Background(), sponsorOf([]int{100}, []int{40}), mip.NewBranchAndBound())
	require.NoError(t, err)
	assert.False(t, res.Solved)
}

func TestBinGreedyCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := setpart.BinGreedy(ctx, valleySponsor(), mip.NewBranchAndBound())
	require.ErrorIs(t, err, context.Canceled)
}

func TestStrategies(t *testing.T) {
	ctx := context.Background()

	t.Run("set partition fallback", func(t *testing.T) {
		s, err := setpart.NewSetPartitionStrategy(nil, nil)
		require.NoError(t, err)
		assert.Equal(t, setpart.SetPartitionName, s.Name())

		sp := sponsorOf([]int{100, 100}, []int{90, 95})
		require.NoError(t, s.CreateGroups(ctx, sp))
		require.Len(t, s.Groups(), 1)
		assert.Equal(t, setpart.FallbackGroup, s.Groups()[0].Name)
		assert.Equal(t, 2, s.Groups()[0].Len())
	})

	t.Run("set partition too many subsets", func(t *testing.T) {
		s, err := setpart.NewSetPartitionStrategy(cep.Params{"max_subsets": 3}, nil)
		require.NoError(t, err)
		sp := valleySponsor()
		require.NoError(t, s.CreateGroups(ctx, sp))
		require.Len(t, s.Groups(), 1)
		assert.Equal(t, 12, s.Groups()[0].Len())
	})

	t.Run("set partition solved", func(t *testing.T) {
		s, err := setpart.NewSetPartitionStrategy(nil, mip.NewBranchAndBound())
		require.NoError(t, err)
		sp := sponsorOf([]int{100, 100, 100}, []int{40, 10, 60})
		require.NoError(t, s.CreateGroups(ctx, sp))
		require.True(t, s.Created())
		require.NoError(t, cep.ValidateCoverage(sp.Sites, s.Groups(), true))
	})

	t.Run("bin greedy leftovers", func(t *testing.T) {
		s, err := setpart.NewBinGreedyStrategy(nil, nil)
		require.NoError(t, err)
		assert.Equal(t, setpart.BinGreedyName, s.Name())

		sp := valleySponsor()
		require.NoError(t, s.CreateGroups(ctx, sp))
		require.NoError(t, cep.ValidateCoverage(sp.Sites, s.Groups(), true))
		for _, g := range s.Groups()[:len(s.Groups())-1] {
			assert.NotEqual(t, setpart.NotSelectedGroup, g.Name)
		}
	})

	t.Run("bin greedy fallback", func(t *testing.T) {
		s, err := setpart.NewBinGreedyStrategy(nil, nil)
		require.NoError(t, err)
		sp := sponsorOf([]int{100, 100}, []int{90, 95})
		require.NoError(t, s.CreateGroups(ctx, sp))
		require.Len(t, s.Groups(), 1)
		assert.Equal(t, setpart.SingletonGroup, s.Groups()[0].Name)
	})

	t.Run("empty roster", func(t *testing.T) {
		s, err := setpart.NewBinGreedyStrategy(nil, nil)
		require.NoError(t, err)
		require.NoError(t, s.CreateGroups(ctx, cep.NewSponsor("E", "E", false)))
		assert.True(t, s.Created())
		assert.Empty(t, s.Groups())
	})

	t.Run("bad params", func(t *testing.T) {
		_, err := setpart.NewSetPartitionStrategy(cep.Params{"min_isp": "x"}, nil)
		require.ErrorIs(t, err, cep.ErrBadParam)
		_, err = setpart.NewBinGreedyStrategy(cep.Params{"time_limit": -1}, nil)
		require.ErrorIs(t, err, cep.ErrBadParam)
	})
}
