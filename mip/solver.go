package mip

import "context"

// Status is the outcome of a solve.
type Status int

const (
	// Optimal means Values hold a proven optimum.
	Optimal Status = iota
	// Infeasible means no assignment satisfies the model.
	Infeasible
	// NodeLimit means the node budget ran out before optimality was proven.
	NodeLimit
	// TimeLimit means the deadline passed before optimality was proven.
	TimeLimit
	// Failed means a relaxation could not be solved numerically.
	Failed
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case Optimal:
		return "optimal"
	case Infeasible:
		return "infeasible"
	case NodeLimit:
		return "node_limit"
	case TimeLimit:
		return "time_limit"
	default:
		return "failed"
	}
}

// Solution is the result of Solver.Solve.
type Solution struct {
	// Status is the outcome.
	Status Status

	// Objective is the model objective at Values (0 when Values is nil).
	Objective float64

	// Values holds one value per model variable: the optimum when Status is
	// Optimal, the best incumbent (possibly nil) otherwise.
	Values []float64

	// Nodes is the number of search nodes processed.
	Nodes int
}

// Solver solves models. Implementations must not retain the model.
type Solver interface {
	Solve(ctx context.Context, m *Model) (Solution, error)
}
