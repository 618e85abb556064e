package exhaustive

import (
	"context"
	"fmt"

	"github.com/VenkataKoppada/CEPAlgorithms-MealsCount/cep"
	"github.com/VenkataKoppada/CEPAlgorithms-MealsCount/internal/logging"
)

// ctxCheckEvery is the number of partitions evaluated between context checks.
const ctxCheckEvery = 1 << 12

// subsetScores holds the pre-computed metrics of every subset, indexed by mask.
type subsetScores struct {
	reimbursement []float64
	covered       []int
}

// scoreSubsets evaluates every non-empty subset of sites with the shared group
// estimator.
//
// Complexity: O(2ⁿ·n).
func scoreSubsets(sponsor *cep.Sponsor, sites []*cep.Site) subsetScores {
	var (
		n       = len(sites)
		full    = 1 << n
		sc      = subsetScores{reimbursement: make([]float64, full), covered: make([]int, full)}
		members = make([]*cep.Site, 0, n)
		mask    int
		i       int
	)
	for mask = 1; mask < full; mask++ {
		members = members[:0]
		for i = 0; i < n; i++ {
			if mask&(1<<i) != 0 {
				members = append(members, sites[i])
			}
		}
		g := cep.NewGroup(sponsor, "", members)
		sc.reimbursement[mask] = g.EstimateReimbursement()
		sc.covered[mask] = g.CoveredStudents()
	}

	return sc
}

// better reports whether (r, c) beats the incumbent (bestR, bestC) under objective.
func better(objective cep.Objective, r float64, c int, bestR float64, bestC int) bool {
	if objective == cep.ObjectiveCoverage {
		if c != bestC {
			return c > bestC
		}
	}

	return r > bestR
}

// Partition returns the best grouping of sponsor's roster over all set
// partitions.
//
// Errors:
//   - cep.ErrNilSponsor if sponsor is nil.
//   - ErrEmptyRoster if the roster is empty.
//   - ErrTooManySites if the roster holds more than MaxSites sites.
//   - ctx.Err() if ctx is canceled during enumeration.
func Partition(ctx context.Context, sponsor *cep.Sponsor, opts ...Option) (Result, error) {
	if sponsor == nil {
		return Result{}, cep.ErrNilSponsor
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	sites := sponsor.Sites
	n := len(sites)
	switch {
	case n == 0:
		return Result{}, ErrEmptyRoster
	case n > MaxSites:
		return Result{}, fmt.Errorf("%w: %d > %d", ErrTooManySites, n, MaxSites)
	}

	log := logging.FromContext(ctx).WithValues("sponsor", sponsor.Code, "sites", n, "objective", o.Objective)
	sc := scoreSubsets(sponsor, sites)

	var (
		rgs    = make([]int, n) // restricted-growth string
		maxPfx = make([]int, n) // maxPfx[i] = max(rgs[0..i])
		blocks = make([]int, n) // block masks of the current partition
		best   = make([]int, n)
		bestR  float64
		bestC  int
		count  int
		seeded bool
		i, j   int
	)

	for {
		// Score the current partition.
		k := maxPfx[n-1] + 1
		for j = 0; j < k; j++ {
			blocks[j] = 0
		}
		for i = 0; i < n; i++ {
			blocks[rgs[i]] |= 1 << i
		}
		var (
			r float64
			c int
		)
		for j = 0; j < k; j++ {
			r += sc.reimbursement[blocks[j]]
			c += sc.covered[blocks[j]]
		}
		count++

		if !seeded || better(o.Objective, r, c, bestR, bestC) {
			copy(best, rgs)
			bestR, bestC = r, c
			seeded = true
			log.V(logging.TRACE).Info("new incumbent", "partition", count, "reimbursement", r, "covered", c)
		}

		if count%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return Result{}, err
			}
		}

		// Advance to the next restricted-growth string.
		i = n - 1
		for i > 0 && rgs[i] == maxPfx[i-1]+1 {
			i--
		}
		if i == 0 {
			break
		}
		rgs[i]++
		maxPfx[i] = max(maxPfx[i-1], rgs[i])
		for j = i + 1; j < n; j++ {
			rgs[j] = 0
			maxPfx[j] = maxPfx[i]
		}
	}

	res := Result{
		Groups:        groupsFromRGS(sponsor, sites, best),
		Reimbursement: bestR,
		Covered:       bestC,
		Partitions:    count,
	}
	log.V(logging.DEBUG).Info("exhaustive search finished",
		"partitions", count, "groups", len(res.Groups), "reimbursement", bestR, "covered", bestC)

	return res, nil
}

// groupsFromRGS materializes the blocks of a restricted-growth string.
func groupsFromRGS(sponsor *cep.Sponsor, sites []*cep.Site, rgs []int) []*cep.Group {
	k := 0
	for _, b := range rgs {
		k = max(k, b+1)
	}
	groups := make([]*cep.Group, k)
	for b := range groups {
		groups[b] = cep.NewGroup(sponsor, fmt.Sprintf("Group %d", b+1), nil)
	}
	for i, b := range rgs {
		groups[b].Sites = append(groups[b].Sites, sites[i])
	}

	return groups
}
