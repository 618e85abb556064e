package setpart

import (
	"context"
	"fmt"

	"github.com/VenkataKoppada/CEPAlgorithms-MealsCount/cep"
	"github.com/VenkataKoppada/CEPAlgorithms-MealsCount/internal/logging"
	"github.com/VenkataKoppada/CEPAlgorithms-MealsCount/mip"
)

// BinGreedy sweeps BinSizes and, for each size, greedily extracts bins of at
// most that many sites from the unassigned roster. The sweep with the
// strictly greatest total estimate wins; ties keep the smaller size.
//
// Errors: solver errors, ctx.Err().
func BinGreedy(ctx context.Context, sponsor *cep.Sponsor, solver mip.Solver, opts ...Option) (Result, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	log := logging.FromContext(ctx)
	sites := FilterSites(sponsor.Sites)
	if len(sites) == 0 {
		return Result{}, nil
	}

	best := unsolved(sites)
	for _, size := range BinSizes(len(sites)) {
		groups, rest, err := sweep(ctx, sponsor, solver, sites, size, o)
		if err != nil {
			return Result{}, err
		}
		if len(groups) == 0 {
			continue
		}
		total := cep.TotalReimbursement(groups)
		log.V(logging.TRACE).Info("bin sweep", "size", size, "bins", len(groups), "total", total)
		if !best.Solved || total > best.Objective {
			best = Result{Groups: groups, Unassigned: rest, Objective: total, Solved: true}
		}
	}
	log.V(logging.DEBUG).Info("bin greedy finished", "solved", best.Solved, "bins", len(best.Groups), "objective", best.Objective)

	return best, nil
}

// sweep extracts bins of capacity size until fewer than two sites remain or
// no bin improves the objective.
func sweep(ctx context.Context, sponsor *cep.Sponsor, solver mip.Solver, sites []*cep.Site, size int, o Options) ([]*cep.Group, []*cep.Site, error) {
	var (
		remaining = append([]*cep.Site(nil), sites...)
		groups    []*cep.Group
	)
	for len(remaining) > 1 {
		chosen, ok, err := solveBin(ctx, solver, remaining, size, o)
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			break
		}

		members := make([]*cep.Site, 0, len(chosen))
		rest := remaining[:0:0]
		for i, s := range remaining {
			if chosen[i] {
				members = append(members, s)
			} else {
				rest = append(rest, s)
			}
		}
		groups = append(groups, cep.NewGroup(sponsor, fmt.Sprintf("Group-%d", len(groups)+1), members))
		remaining = rest
	}

	return groups, remaining, nil
}

// solveBin selects one bin from sites. ok is false when the solve is not
// optimal or its objective is zero.
func solveBin(ctx context.Context, solver mip.Solver, sites []*cep.Site, size int, o Options) ([]bool, bool, error) {
	m := mip.NewModel(mip.Maximize)
	var (
		lower = make([]mip.Term, len(sites))
		upper = make([]mip.Term, len(sites))
		count = make([]mip.Term, len(sites))
	)
	for i, s := range sites {
		v := m.AddBinary(s.Code())
		m.SetObjective(v, s.Isp())
		e, n := float64(s.Eligible()), float64(s.Enrolled())
		lower[i] = mip.Term{Var: v, Coef: e - o.MinISP*n}
		upper[i] = mip.Term{Var: v, Coef: e - o.TargetISP*n}
		count[i] = mip.Term{Var: v, Coef: 1}
	}
	m.AddGreaterEqual("isp_min", 0, lower...)
	m.AddLessEqual("isp_target", 0, upper...)
	m.AddLessEqual("capacity", float64(size), count...)

	sol, err := solver.Solve(ctx, m)
	if err != nil {
		return nil, false, err
	}
	if sol.Status != mip.Optimal || sol.Objective == 0 {
		return nil, false, nil
	}

	chosen := make([]bool, len(sites))
	picked := 0
	for i, v := range sol.Values {
		if v > 0.5 {
			chosen[i] = true
			picked++
		}
	}

	return chosen, picked > 0, nil
}
