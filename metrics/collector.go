package metrics

import "time"

// Collector receives optimizer events.
//
// Implementations must be safe for concurrent use: strategies may be
// evaluated in parallel.
type Collector interface {
	// StrategyCompleted records a strategy that produced its groups.
	StrategyCompleted(strategy string, elapsed time.Duration, reimbursement float64, covered int)

	// StrategyFailed records a strategy whose grouping operation returned an error.
	StrategyFailed(strategy string)

	// SolverFinished records one integer-program solve.
	SolverFinished(status string, nodes int, elapsed time.Duration)

	// RestartFinished records the end of one annealing fresh start.
	RestartFinished(objective string, reimbursement float64)
}

// Nop discards every event.
type Nop struct{}

// Compile-time assertion that Nop implements Collector.
var _ Collector = (*Nop)(nil)

// NewNop returns a collector that discards every event.
func NewNop() *Nop { return &Nop{} }

// StrategyCompleted implements Collector.
func (*Nop) StrategyCompleted(string, time.Duration, float64, int) {}

// StrategyFailed implements Collector.
func (*Nop) StrategyFailed(string) {}

// SolverFinished implements Collector.
func (*Nop) SolverFinished(string, int, time.Duration) {}

// RestartFinished implements Collector.
func (*Nop) RestartFinished(string, float64) {}

// OrNop returns c, or a Nop collector when c is nil.
func OrNop(c Collector) Collector {
	if c == nil {
		return NewNop()
	}

	return c
}
