package anneal

import (
	"errors"
	"fmt"

	"github.com/VenkataKoppada/CEPAlgorithms-MealsCount/cep"
	"github.com/VenkataKoppada/CEPAlgorithms-MealsCount/metrics"
)

// SmallRosterLimit is the largest roster handled without annealing.
const SmallRosterLimit = 10

// Defaults.
const (
	DefaultSeed        int64 = 42
	DefaultFreshStarts       = 50
	DefaultIterations        = 1000
	DefaultDeltaT            = 0.01
	DefaultTFactor           = 1_000_000.0
)

// Sentinel errors for option validation.
var (
	// ErrBadFreshStarts indicates FreshStarts < 1.
	ErrBadFreshStarts = errors.New("anneal: fresh starts must be at least 1")

	// ErrBadIterations indicates Iterations < 0.
	ErrBadIterations = errors.New("anneal: iterations must be non-negative")

	// ErrBadDeltaT indicates DeltaT outside (0, 1].
	ErrBadDeltaT = errors.New("anneal: delta_t must lie in (0, 1]")

	// ErrBadTFactor indicates TFactor ≤ 0.
	ErrBadTFactor = errors.New("anneal: tfactor must be positive")

	// ErrBadMaxGroups indicates a group-count cap below 2.
	ErrBadMaxGroups = errors.New("anneal: ngroups must be at least 2")
)

// Options configures Optimize.
type Options struct {
	Seed        int64         // base seed of the per-start streams
	FreshStarts int           // independent restarts
	Iterations  int           // relocation trials per temperature
	DeltaT      float64       // temperature decrement
	TFactor     float64       // scale of the relative reimbursement change
	Annealing   bool          // keep rejected moves with probability min(1, exp(Δ/T))
	MaxGroups   int           // cap on the random group count; 0 means n−1
	Objective   cep.Objective // move acceptance measure
	ClearGroups bool          // drop empty groups after every accepted move
	Regroup     bool          // reserved; logged only
	StepDebug   bool          // per-trial trace logging
	Metrics     metrics.Collector
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		Seed:        DefaultSeed,
		FreshStarts: DefaultFreshStarts,
		Iterations:  DefaultIterations,
		DeltaT:      DefaultDeltaT,
		TFactor:     DefaultTFactor,
		Objective:   cep.ObjectiveReimbursement,
		Metrics:     metrics.NewNop(),
	}
}

// WithSeed sets the base seed.
func WithSeed(seed int64) Option {
	return func(o *Options) { o.Seed = seed }
}

// WithFreshStarts sets the number of restarts. Panics if n < 1.
func WithFreshStarts(n int) Option {
	if n < 1 {
		panic(fmt.Sprintf("anneal: WithFreshStarts(%d): %v", n, ErrBadFreshStarts))
	}

	return func(o *Options) { o.FreshStarts = n }
}

// WithIterations sets the trials per temperature. Panics if n < 0.
func WithIterations(n int) Option {
	if n < 0 {
		panic(fmt.Sprintf("anneal: WithIterations(%d): %v", n, ErrBadIterations))
	}

	return func(o *Options) { o.Iterations = n }
}

// WithDeltaT sets the temperature decrement. Panics unless 0 < dt ≤ 1.
func WithDeltaT(dt float64) Option {
	if dt <= 0 || dt > 1 {
		panic(fmt.Sprintf("anneal: WithDeltaT(%v): %v", dt, ErrBadDeltaT))
	}

	return func(o *Options) { o.DeltaT = dt }
}

// WithTFactor sets the temperature scaling factor. Panics if f ≤ 0.
func WithTFactor(f float64) Option {
	if f <= 0 {
		panic(fmt.Sprintf("anneal: WithTFactor(%v): %v", f, ErrBadTFactor))
	}

	return func(o *Options) { o.TFactor = f }
}

// WithAnnealing enables probabilistic acceptance of rejected moves.
func WithAnnealing(on bool) Option {
	return func(o *Options) { o.Annealing = on }
}

// WithMaxGroups caps the random group count. Panics if k < 2.
func WithMaxGroups(k int) Option {
	if k < 2 {
		panic(fmt.Sprintf("anneal: WithMaxGroups(%d): %v", k, ErrBadMaxGroups))
	}

	return func(o *Options) { o.MaxGroups = k }
}

// WithObjective sets the acceptance measure. Panics on an unknown objective.
func WithObjective(obj cep.Objective) Option {
	if _, err := cep.ParseObjective(string(obj)); err != nil {
		panic(fmt.Sprintf("anneal: WithObjective(%q): %v", obj, err))
	}

	return func(o *Options) { o.Objective = obj }
}

// WithClearGroups drops empty groups after accepted moves.
func WithClearGroups(on bool) Option {
	return func(o *Options) { o.ClearGroups = on }
}

// WithStepDebug enables per-trial trace logging.
func WithStepDebug(on bool) Option {
	return func(o *Options) { o.StepDebug = on }
}

// WithMetrics sets the collector notified after each fresh start.
func WithMetrics(c metrics.Collector) Option {
	return func(o *Options) { o.Metrics = metrics.OrNop(c) }
}

// validate reports the first invalid field.
func (o Options) validate() error {
	switch {
	case o.FreshStarts < 1:
		return ErrBadFreshStarts
	case o.Iterations < 0:
		return ErrBadIterations
	case o.DeltaT <= 0 || o.DeltaT > 1:
		return ErrBadDeltaT
	case o.TFactor <= 0:
		return ErrBadTFactor
	case o.MaxGroups != 0 && o.MaxGroups < 2:
		return ErrBadMaxGroups
	}
	if _, err := cep.ParseObjective(string(o.Objective)); err != nil {
		return err
	}

	return nil
}

// OptionsFromParams reads the configuration mapping. Recognized keys:
// seed, fresh_starts, iterations, delta_t, tfactor, annealing, ngroups,
// evaluate_by, clear_groups, regroup, step_debug. Unset keys keep defaults.
func OptionsFromParams(p cep.Params) (Options, error) {
	var (
		o   = DefaultOptions()
		err error
	)
	if o.Seed, err = p.Int64("seed", o.Seed); err != nil {
		return o, err
	}
	if o.FreshStarts, err = p.Int("fresh_starts", o.FreshStarts); err != nil {
		return o, err
	}
	if o.Iterations, err = p.Int("iterations", o.Iterations); err != nil {
		return o, err
	}
	if o.DeltaT, err = p.Float("delta_t", o.DeltaT); err != nil {
		return o, err
	}
	if o.TFactor, err = p.Float("tfactor", o.TFactor); err != nil {
		return o, err
	}
	if o.Annealing, err = p.Bool("annealing", o.Annealing); err != nil {
		return o, err
	}
	if o.MaxGroups, err = p.Int("ngroups", o.MaxGroups); err != nil {
		return o, err
	}
	if o.Objective, err = p.Objective("evaluate_by", o.Objective); err != nil {
		return o, err
	}
	if o.ClearGroups, err = p.Bool("clear_groups", o.ClearGroups); err != nil {
		return o, err
	}
	if o.Regroup, err = p.Bool("regroup", o.Regroup); err != nil {
		return o, err
	}
	if o.StepDebug, err = p.Bool("step_debug", o.StepDebug); err != nil {
		return o, err
	}
	if err = o.validate(); err != nil {
		return o, fmt.Errorf("%w: %w", cep.ErrBadParam, err)
	}

	return o, nil
}
