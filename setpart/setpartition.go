package setpart

import (
	"context"
	"fmt"

	"github.com/VenkataKoppada/CEPAlgorithms-MealsCount/cep"
	"github.com/VenkataKoppada/CEPAlgorithms-MealsCount/internal/logging"
	"github.com/VenkataKoppada/CEPAlgorithms-MealsCount/mip"
)

// Result is the outcome of SetPartition or BinGreedy.
type Result struct {
	// Groups are the selected groups, in selection order.
	Groups []*cep.Group

	// Unassigned are filtered sites not placed in any group. When Solved is
	// false this is the whole filtered roster.
	Unassigned []*cep.Site

	// Objective is the summed estimate of Groups.
	Objective float64

	// Solved reports whether an optimal solution (exact mode) or at least
	// one improving bin (bin mode) was found.
	Solved bool
}

// unsolved returns the "no solution" result for sites.
func unsolved(sites []*cep.Site) Result {
	return Result{Unassigned: sites}
}

// SetPartition chooses an exact cover of the filtered roster by feasible
// subsets maximizing total estimated reimbursement.
//
// Only an Optimal solver status counts as solved; infeasibility and limits
// yield Result.Solved == false with every filtered site unassigned.
//
// Errors: ErrTooManySubsets, solver errors, ctx.Err().
func SetPartition(ctx context.Context, sponsor *cep.Sponsor, solver mip.Solver, opts ...Option) (Result, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	log := logging.FromContext(ctx)
	sites := FilterSites(sponsor.Sites)
	if len(sites) == 0 {
		return Result{}, nil
	}

	subsets, err := FeasibleSubsets(ctx, sites, o)
	if err != nil {
		return Result{}, err
	}
	log.V(logging.DEBUG).Info("feasible subsets enumerated", "sites", len(sites), "subsets", len(subsets))
	if len(subsets) == 0 {
		return unsolved(sites), nil
	}

	m := mip.NewModel(mip.Maximize)
	groups := make([]*cep.Group, len(subsets))
	cover := make([][]mip.Term, len(sites))
	for j, members := range subsets {
		g := cep.NewGroup(sponsor, "", pick(sites, members))
		groups[j] = g

		v := m.AddBinary(fmt.Sprintf("subset_%d", j))
		m.SetObjective(v, g.EstimateReimbursement())
		for _, i := range members {
			cover[i] = append(cover[i], mip.Term{Var: v, Coef: 1})
		}
	}
	for i, terms := range cover {
		if len(terms) == 0 {
			// A site no feasible subset holds makes the cover infeasible.
			log.V(logging.DEBUG).Info("site not coverable", "site", sites[i].Code())
			return unsolved(sites), nil
		}
		m.AddEquality("cover_"+sites[i].Code(), 1, terms...)
	}

	sol, err := solver.Solve(ctx, m)
	if err != nil {
		return Result{}, err
	}
	if sol.Status != mip.Optimal {
		log.V(logging.DEBUG).Info("set partition not solved", "status", sol.Status.String())
		return unsolved(sites), nil
	}

	res := Result{Solved: true}
	used := make([]bool, len(sites))
	for j, v := range sol.Values {
		if v <= 0.5 {
			continue
		}
		g := groups[j]
		g.Name = fmt.Sprintf("Group %d", len(res.Groups))
		res.Groups = append(res.Groups, g)
		res.Objective += g.EstimateReimbursement()
		for _, i := range subsets[j] {
			used[i] = true
		}
	}
	for i, s := range sites {
		if !used[i] {
			res.Unassigned = append(res.Unassigned, s)
		}
	}

	return res, nil
}

func pick(sites []*cep.Site, idx []int) []*cep.Site {
	out := make([]*cep.Site, len(idx))
	for k, i := range idx {
		out[k] = sites[i]
	}

	return out
}
