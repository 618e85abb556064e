package mip

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/VenkataKoppada/CEPAlgorithms-MealsCount/internal/logging"
	"github.com/VenkataKoppada/CEPAlgorithms-MealsCount/metrics"
)

// Defaults of BBOptions.
const (
	DefaultMaxNodes = 200_000
	DefaultIntTol   = 1e-6
	DefaultLPTol    = 1e-10
)

// pruneEps is the relative margin a node bound must beat the incumbent by.
const pruneEps = 1e-9

// BBOptions configures BranchAndBound.
type BBOptions struct {
	MaxNodes  int           // node budget; 0 means unlimited
	TimeLimit time.Duration // soft deadline; 0 means none
	IntTol    float64       // integrality tolerance of binary variables
	LPTol     float64       // reduced-cost tolerance handed to the simplex method
	Metrics   metrics.Collector
}

// BBOption mutates BBOptions.
type BBOption func(*BBOptions)

// DefaultBBOptions returns the default search limits and tolerances.
func DefaultBBOptions() BBOptions {
	return BBOptions{
		MaxNodes: DefaultMaxNodes,
		IntTol:   DefaultIntTol,
		LPTol:    DefaultLPTol,
		Metrics:  metrics.NewNop(),
	}
}

// WithMaxNodes sets the node budget. Panics if n < 0.
func WithMaxNodes(n int) BBOption {
	if n < 0 {
		panic(fmt.Sprintf("mip: WithMaxNodes(%d): must be non-negative", n))
	}

	return func(o *BBOptions) { o.MaxNodes = n }
}

// WithTimeLimit sets the soft deadline. Panics if d < 0.
func WithTimeLimit(d time.Duration) BBOption {
	if d < 0 {
		panic(fmt.Sprintf("mip: WithTimeLimit(%v): must be non-negative", d))
	}

	return func(o *BBOptions) { o.TimeLimit = d }
}

// WithIntegralityTolerance sets IntTol. Panics unless 0 < tol < 0.5.
func WithIntegralityTolerance(tol float64) BBOption {
	if tol <= 0 || tol >= 0.5 {
		panic(fmt.Sprintf("mip: WithIntegralityTolerance(%v): must lie in (0, 0.5)", tol))
	}

	return func(o *BBOptions) { o.IntTol = tol }
}

// WithSolverMetrics sets the collector notified after every solve.
func WithSolverMetrics(c metrics.Collector) BBOption {
	return func(o *BBOptions) { o.Metrics = metrics.OrNop(c) }
}

// BranchAndBound solves models by LP-based branch and bound.
// It is stateless between calls and safe for concurrent use.
type BranchAndBound struct {
	opts BBOptions
}

// Compile-time assertion that *BranchAndBound implements Solver.
var _ Solver = (*BranchAndBound)(nil)

// NewBranchAndBound returns a solver configured by opts.
func NewBranchAndBound(opts ...BBOption) *BranchAndBound {
	o := DefaultBBOptions()
	for _, opt := range opts {
		opt(&o)
	}
	o.Metrics = metrics.OrNop(o.Metrics)

	return &BranchAndBound{opts: o}
}

// Options returns the solver configuration.
func (s *BranchAndBound) Options() BBOptions { return s.opts }

// node is one subproblem: fixed[j] holds the branched value of binary j,
// NaN when free.
type node struct {
	fixed []float64
}

// Solve implements Solver.
//
// Errors: model validation errors and ctx.Err(). Infeasibility and limits are
// reported through Solution.Status.
func (s *BranchAndBound) Solve(ctx context.Context, m *Model) (Solution, error) {
	if err := m.Validate(); err != nil {
		return Solution{}, err
	}

	var (
		start     = time.Now()
		log       = logging.FromContext(ctx)
		useDL     = s.opts.TimeLimit > 0
		deadline  = start.Add(s.opts.TimeLimit)
		stack     = []node{{fixed: nanSlice(m.NumVars())}}
		incumbent []float64
		incScore  float64
		nodes     int
		failed    bool
		stopped   Status = Optimal
	)

	// score maps the model objective to a quantity to maximize.
	score := func(obj float64) float64 {
		if m.sense == Minimize {
			return -obj
		}
		return obj
	}

	var lpDeadline time.Time
	if useDL {
		lpDeadline = deadline
	}

search:
	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return Solution{}, err
		}
		if s.opts.MaxNodes > 0 && nodes >= s.opts.MaxNodes {
			stopped = NodeLimit
			break
		}
		if useDL && time.Now().After(deadline) {
			stopped = TimeLimit
			break
		}

		nd := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		nodes++

		rel, ok := buildRelaxation(m, nd.fixed, s.opts.IntTol)
		if !ok {
			continue
		}
		status, obj, x, err := rel.solve(ctx, s.opts.LPTol, lpDeadline)
		if err != nil {
			return Solution{}, err
		}
		switch status {
		case lpTimeout:
			stopped = TimeLimit
			break search
		case lpInfeasible:
			continue
		case lpFailed:
			j := firstFreeBinary(m, nd.fixed)
			if j < 0 {
				failed = true
				continue
			}
			stack = append(stack, child(nd, j, 1), child(nd, j, 0))
			continue
		}

		bound := score(obj)
		if incumbent != nil && bound <= incScore+pruneEps*math.Max(1, math.Abs(incScore)) {
			continue
		}

		j := mostFractional(m, nd.fixed, x, s.opts.IntTol)
		if j < 0 {
			sol := roundSolution(m, x)
			if !m.Feasible(sol, 1e-6) {
				failed = true
				continue
			}
			incumbent, incScore = sol, score(m.Evaluate(sol))
			log.V(logging.TRACE).Info("new incumbent", "node", nodes, "objective", m.Evaluate(sol))
			continue
		}

		// Explore the child nearest to the relaxed value first.
		if x[j] >= 0.5 {
			stack = append(stack, child(nd, j, 0), child(nd, j, 1))
		} else {
			stack = append(stack, child(nd, j, 1), child(nd, j, 0))
		}
	}

	sol := Solution{Status: stopped, Nodes: nodes, Values: incumbent}
	if stopped == Optimal {
		switch {
		case failed:
			sol.Status = Failed
		case incumbent == nil:
			sol.Status = Infeasible
		}
	}
	if incumbent != nil {
		sol.Objective = m.Evaluate(incumbent)
	}

	elapsed := time.Since(start)
	s.opts.Metrics.SolverFinished(sol.Status.String(), nodes, elapsed)
	log.V(logging.DEBUG).Info("branch and bound finished",
		"status", sol.Status.String(),
		"nodes", nodes,
		"vars", m.NumVars(),
		"constraints", m.NumConstraints(),
		"objective", sol.Objective,
		"elapsed", elapsed)

	return sol, nil
}

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}

	return out
}

// child copies parent and fixes binary j to v.
func child(parent node, j int, v float64) node {
	fixed := make([]float64, len(parent.fixed))
	copy(fixed, parent.fixed)
	fixed[j] = v

	return node{fixed: fixed}
}

func firstFreeBinary(m *Model, fixed []float64) int {
	for j, v := range m.vars {
		if v.Kind == Binary && math.IsNaN(fixed[j]) {
			return j
		}
	}

	return -1
}

// mostFractional returns the free binary whose relaxed value is farthest from
// an integer, or -1 when all are integral within tol. Ties pick the lowest index.
func mostFractional(m *Model, fixed, x []float64, tol float64) int {
	best, bestFrac := -1, tol
	for j, v := range m.vars {
		if v.Kind != Binary || !math.IsNaN(fixed[j]) {
			continue
		}
		if frac := math.Abs(x[j] - math.Round(x[j])); frac > bestFrac {
			best, bestFrac = j, frac
		}
	}

	return best
}

// roundSolution snaps binaries to {0,1} and clamps continuous values to their bounds.
func roundSolution(m *Model, x []float64) []float64 {
	out := make([]float64, len(x))
	for j, v := range m.vars {
		switch v.Kind {
		case Binary:
			out[j] = math.Max(0, math.Min(1, math.Round(x[j])))
		default:
			out[j] = math.Max(v.Lower, math.Min(v.Upper, x[j]))
		}
	}

	return out
}
