package cep

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/VenkataKoppada/CEPAlgorithms-MealsCount/internal/logging"
	"github.com/VenkataKoppada/CEPAlgorithms-MealsCount/metrics"
)

// EvalOptions configures EvaluateStrategies.
type EvalOptions struct {
	// Concurrency bounds the number of strategies run in parallel.
	// Values <= 1 run strategies sequentially in registration order.
	Concurrency int

	// Metrics receives one event per strategy run.
	Metrics metrics.Collector
}

// EvalOption mutates EvalOptions.
type EvalOption func(*EvalOptions)

// DefaultEvalOptions runs sequentially without instrumentation.
func DefaultEvalOptions() EvalOptions {
	return EvalOptions{Concurrency: 1, Metrics: metrics.NewNop()}
}

// WithConcurrency runs up to n strategies at once. Strategies own their
// state and sites are immutable, so parallel runs do not interfere.
func WithConcurrency(n int) EvalOption {
	return func(o *EvalOptions) { o.Concurrency = n }
}

// WithMetrics sets the collector notified after every strategy run.
func WithMetrics(c metrics.Collector) EvalOption {
	return func(o *EvalOptions) { o.Metrics = metrics.OrNop(c) }
}

// EvaluateStrategies runs every registered strategy's CreateGroups and
// retains the one maximizing objective. Ties keep the earliest registered.
//
// Errors:
//   - ErrUnknownObjective if objective is neither reimbursement nor coverage
//     (checked before any strategy runs).
//   - ErrNoStrategies if no strategy is registered.
//   - the first strategy error, wrapped with the strategy name.
//   - ErrGroupsNotCreated if a strategy returned without producing groups.
func (s *Sponsor) EvaluateStrategies(ctx context.Context, objective Objective, opts ...EvalOption) error {
	if !objective.Comparable() {
		return fmt.Errorf("%w: %q", ErrUnknownObjective, objective)
	}
	if len(s.strategies) == 0 {
		return ErrNoStrategies
	}

	o := DefaultEvalOptions()
	for _, opt := range opts {
		opt(&o)
	}

	log := logging.FromContext(ctx).WithValues("sponsor", s.Code, "objective", objective)

	if err := s.runStrategies(ctx, o); err != nil {
		return err
	}

	var best Strategy
	for _, st := range s.strategies {
		if !st.Created() {
			return fmt.Errorf("%w: %s", ErrGroupsNotCreated, st.Name())
		}
		if best == nil || objectiveValue(st, objective) > objectiveValue(best, objective) {
			best = st
		}
	}
	s.best = best

	log.V(logging.DEBUG).Info("selected best strategy",
		"strategy", best.Name(),
		"reimbursement", best.Reimbursement(),
		"covered", best.StudentsCovered())

	return nil
}

func (s *Sponsor) runStrategies(ctx context.Context, o EvalOptions) error {
	log := logging.FromContext(ctx)

	run := func(ctx context.Context, st Strategy) error {
		start := time.Now()
		if err := st.CreateGroups(ctx, s); err != nil {
			o.Metrics.StrategyFailed(st.Name())
			return fmt.Errorf("strategy %s: %w", st.Name(), err)
		}
		elapsed := time.Since(start)
		o.Metrics.StrategyCompleted(st.Name(), elapsed, st.Reimbursement(), st.StudentsCovered())
		log.V(logging.DEBUG).Info("strategy finished",
			"strategy", st.Name(),
			"groups", len(st.Groups()),
			"reimbursement", st.Reimbursement(),
			"elapsed", elapsed)

		return nil
	}

	if o.Concurrency <= 1 {
		for _, st := range s.strategies {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := run(ctx, st); err != nil {
				return err
			}
		}

		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.Concurrency)
	for _, st := range s.strategies {
		st := st
		g.Go(func() error { return run(gctx, st) })
	}

	return g.Wait()
}

func objectiveValue(st Strategy, objective Objective) float64 {
	if objective == ObjectiveCoverage {
		return float64(st.StudentsCovered())
	}

	return st.Reimbursement()
}
