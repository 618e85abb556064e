package anneal

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"slices"

	"github.com/go-logr/logr"

	"github.com/VenkataKoppada/CEPAlgorithms-MealsCount/cep"
	"github.com/VenkataKoppada/CEPAlgorithms-MealsCount/exhaustive"
	"github.com/VenkataKoppada/CEPAlgorithms-MealsCount/internal/logging"
	"github.com/VenkataKoppada/CEPAlgorithms-MealsCount/metrics"
)

// Method names the path Optimize took.
type Method string

const (
	// MethodAnneal is the simulated-annealing search.
	MethodAnneal Method = "anneal"

	// MethodExhaustive delegates small rosters to the exhaustive optimizer.
	MethodExhaustive Method = "exhaustive"

	// MethodOneGroup returns the single group for small rosters under the
	// schools objectives.
	MethodOneGroup Method = "one_group"
)

// baselineStart marks the single-group baseline in Result.BestStart.
const baselineStart = -1

// zeroBeforeDelta is the relative change used when the pair had no
// reimbursement before the move.
const zeroBeforeDelta = -0.01

// freeRateTolerance decides whether a group claims at the full free rate.
const freeRateTolerance = 0.001

// StartStats summarizes one fresh start.
type StartStats struct {
	Groups        int     // initial non-empty group count
	Trials        int     // relocation trials performed
	Accepted      int     // moves that improved the objective
	Annealed      int     // rejected moves kept by the annealing draw
	Exhausted     bool    // trials stopped early: fewer than two non-empty groups
	Reimbursement float64 // final total reimbursement
}

// Result holds the outcome of Optimize.
type Result struct {
	// Groups is the best grouping; empty groups are removed.
	Groups []*cep.Group

	// Reimbursement is the unrounded total reimbursement of Groups.
	Reimbursement float64

	// Baseline is the single-group reimbursement.
	Baseline float64

	// BestStart is the index of the winning start, or -1 when the baseline won.
	BestStart int

	// Method is the path taken.
	Method Method

	// Starts holds per-start statistics (annealing path only).
	Starts []StartStats
}

// pairMetric measures two groups together.
type pairMetric struct {
	reimbursement float64
	covered       int
	eligible      int
	free          int
}

func measurePair(a, b *cep.Group) pairMetric {
	m := pairMetric{
		reimbursement: math.RoundToEven(a.EstimateReimbursement() + b.EstimateReimbursement()),
		covered:       a.CoveredStudents() + b.CoveredStudents(),
	}
	for _, g := range [2]*cep.Group{a, b} {
		rate := g.FreeRate()
		if rate > 0 {
			m.eligible++
		}
		if math.Abs(rate-cep.MaxClaimingPercentage) < freeRateTolerance {
			m.free++
		}
	}

	return m
}

// improves reports whether after strictly beats before under objective.
func improves(objective cep.Objective, before, after pairMetric) bool {
	switch objective {
	case cep.ObjectiveCoverage:
		if after.covered != before.covered {
			return after.covered > before.covered
		}
	case cep.ObjectiveSchools:
		if after.eligible != before.eligible {
			return after.eligible > before.eligible
		}
	case cep.ObjectiveSchoolsFree:
		if after.free != before.free {
			return after.free > before.free
		}
	}

	return after.reimbursement > before.reimbursement
}

// Optimize searches for the grouping of sponsor's roster with the greatest
// total reimbursement.
//
// Errors:
//   - cep.ErrNilSponsor if sponsor is nil.
//   - an option validation error (ErrBadFreshStarts, ...).
//   - ctx.Err() if ctx is canceled.
//
// Complexity: O(FreshStarts · ⌈1/DeltaT⌉ · Iterations · m) where m is the
// size of the two groups touched by a trial.
func Optimize(ctx context.Context, sponsor *cep.Sponsor, opts ...Option) (Result, error) {
	if sponsor == nil {
		return Result{}, cep.ErrNilSponsor
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(); err != nil {
		return Result{}, err
	}

	sites := sponsor.Sites
	log := logging.FromContext(ctx).WithValues("sponsor", sponsor.Code, "sites", len(sites), "objective", o.Objective)

	o.Metrics = metrics.OrNop(o.Metrics)

	baseline := cep.NewGroup(sponsor, "OneGroup", slices.Clone(sites))
	res := Result{
		Groups:        []*cep.Group{baseline},
		Reimbursement: baseline.EstimateReimbursement(),
		BestStart:     baselineStart,
		Method:        MethodOneGroup,
	}
	res.Baseline = res.Reimbursement

	if len(sites) == 0 {
		res.Groups = []*cep.Group{}
		return res, nil
	}

	if len(sites) <= SmallRosterLimit {
		if !o.Objective.Comparable() {
			log.V(logging.DEBUG).Info("small roster, single group")
			return res, nil
		}
		ex, err := exhaustive.Partition(ctx, sponsor, exhaustive.WithObjective(o.Objective))
		if err != nil {
			return Result{}, err
		}
		log.V(logging.DEBUG).Info("small roster, exhaustive search", "partitions", ex.Partitions)

		return Result{
			Groups:        ex.Groups,
			Reimbursement: ex.Reimbursement,
			Baseline:      res.Baseline,
			BestStart:     baselineStart,
			Method:        MethodExhaustive,
		}, nil
	}

	if o.Regroup {
		log.Info("regroup is reserved and has no effect")
	}

	res.Method = MethodAnneal
	res.Starts = make([]StartStats, 0, o.FreshStarts)
	r := runner{opts: o, sponsor: sponsor, log: log}

	for start := 0; start < o.FreshStarts; start++ {
		groups, stats, err := r.run(ctx, start)
		if err != nil {
			return Result{}, err
		}
		res.Starts = append(res.Starts, stats)
		o.Metrics.RestartFinished(string(o.Objective), stats.Reimbursement)
		log.V(logging.DEBUG).Info("fresh start finished",
			"start", start,
			"groups", stats.Groups,
			"trials", stats.Trials,
			"accepted", stats.Accepted,
			"exhausted", stats.Exhausted,
			"reimbursement", stats.Reimbursement)

		if stats.Reimbursement > res.Reimbursement {
			res.Groups = renumber(cep.NonEmpty(groups))
			res.Reimbursement = stats.Reimbursement
			res.BestStart = start
		}
	}

	return res, nil
}

// renumber names groups "Group 1" … "Group k" in order, closing the gaps
// left by groups that emptied during the search.
func renumber(groups []*cep.Group) []*cep.Group {
	for i, g := range groups {
		g.Name = fmt.Sprintf("Group %d", i+1)
	}

	return groups
}

// runner carries the immutable state shared by the fresh starts of one run.
type runner struct {
	opts    Options
	sponsor *cep.Sponsor
	log     logr.Logger
}

// randomStart places every site into one of k random groups, k drawn from
// [2, n) or [2, MaxGroups], and drops the empty groups.
func (r *runner) randomStart(rng *rand.Rand) []*cep.Group {
	sites := r.sponsor.Sites
	var k int
	if r.opts.MaxGroups > 0 {
		k = 2 + rng.Intn(r.opts.MaxGroups-1)
	} else {
		k = 2 + rng.Intn(len(sites)-2)
	}

	groups := make([]*cep.Group, k)
	for i := range groups {
		groups[i] = cep.NewGroup(r.sponsor, fmt.Sprintf("Group %d", i+1), nil)
	}
	for _, s := range sites {
		g := groups[rng.Intn(k)]
		g.Sites = append(g.Sites, s)
	}

	return cep.NonEmpty(groups)
}

// run performs one fresh start.
func (r *runner) run(ctx context.Context, start int) ([]*cep.Group, StartStats, error) {
	var (
		rng     = startRNG(r.opts.Seed, start)
		groups  = r.randomStart(rng)
		stats   = StartStats{Groups: len(groups)}
		scratch = make([]int, 0, len(groups))
		trace   = r.opts.StepDebug && r.log.V(logging.TRACE).Enabled()
	)

schedule:
	for step := 0; ; step++ {
		temp := 1 - float64(step)*r.opts.DeltaT
		if temp <= 1e-9 {
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, stats, err
		}
		for i := 0; i < r.opts.Iterations; i++ {
			moved, ok := r.trial(groups, temp, rng, &stats, &scratch)
			if !ok {
				stats.Exhausted = true
				break schedule
			}
			if moved && r.opts.ClearGroups {
				groups = cep.NonEmpty(groups)
			}
			if trace {
				r.log.V(logging.TRACE).Info("trial",
					"start", start, "temperature", temp, "iteration", i, "moved", moved,
					"reimbursement", math.RoundToEven(cep.TotalReimbursement(groups)))
			}
		}
	}
	stats.Reimbursement = cep.TotalReimbursement(groups)

	return groups, stats, nil
}

// trial relocates one random site between two random non-empty groups and
// keeps or undoes the move. ok is false when fewer than two non-empty groups
// remain.
func (r *runner) trial(groups []*cep.Group, temp float64, rng *rand.Rand, stats *StartStats, scratch *[]int) (moved, ok bool) {
	nonEmpty := (*scratch)[:0]
	for i, g := range groups {
		if len(g.Sites) > 0 {
			nonEmpty = append(nonEmpty, i)
		}
	}
	*scratch = nonEmpty
	if len(nonEmpty) < 2 {
		return false, false
	}
	stats.Trials++

	a, b := pickTwo(len(nonEmpty), rng)
	from, to := groups[nonEmpty[a]], groups[nonEmpty[b]]

	before := measurePair(from, to)
	idx := rng.Intn(len(from.Sites))
	site := from.Sites[idx]
	from.Sites = slices.Delete(from.Sites, idx, idx+1)
	to.Sites = append(to.Sites, site)
	after := measurePair(from, to)

	if improves(r.opts.Objective, before, after) {
		stats.Accepted++
		return true, true
	}
	if r.opts.Annealing {
		delta := zeroBeforeDelta * r.opts.TFactor
		if before.reimbursement > 0 {
			delta = (after.reimbursement - before.reimbursement) / before.reimbursement * r.opts.TFactor
		}
		if rng.Float64() < math.Exp(delta/temp) {
			stats.Annealed++
			return true, true
		}
	}

	to.Sites = to.Sites[:len(to.Sites)-1]
	from.Sites = slices.Insert(from.Sites, idx, site)

	return false, true
}
