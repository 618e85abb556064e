package setpart

import (
	"errors"
	"fmt"
	"time"

	"github.com/VenkataKoppada/CEPAlgorithms-MealsCount/cep"
	"github.com/VenkataKoppada/CEPAlgorithms-MealsCount/mip"
)

// Defaults.
const (
	DefaultMaxSubsetSize = 15
	DefaultMaxSubsets    = 20_000
	BinSamples           = 100
	LargeRoster          = 1000
	MinLargeBin          = 20
)

// ErrTooManySubsets indicates more feasible subsets than Options.MaxSubsets.
var ErrTooManySubsets = errors.New("setpart: too many feasible subsets")

// Options configures SetPartition and BinGreedy.
type Options struct {
	MinISP        float64 // lower edge of the ISP band
	TargetISP     float64 // upper edge of the ISP band
	MaxSubsetSize int     // exact mode: largest subset considered
	MaxSubsets    int     // exact mode: cap on feasible subsets (model size)
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns the program band [MinimumISP, ThresholdISP].
func DefaultOptions() Options {
	return Options{
		MinISP:        cep.MinimumISP,
		TargetISP:     cep.ThresholdISP,
		MaxSubsetSize: DefaultMaxSubsetSize,
		MaxSubsets:    DefaultMaxSubsets,
	}
}

// WithISPBand sets the feasible ISP band. Panics unless 0 ≤ lo ≤ hi ≤ 1.
func WithISPBand(lo, hi float64) Option {
	if lo < 0 || lo > hi || hi > 1 {
		panic(fmt.Sprintf("setpart: WithISPBand(%v, %v): need 0 ≤ lo ≤ hi ≤ 1", lo, hi))
	}

	return func(o *Options) { o.MinISP, o.TargetISP = lo, hi }
}

// WithMaxSubsetSize sets the largest subset considered. Panics if k < 1.
func WithMaxSubsetSize(k int) Option {
	if k < 1 {
		panic(fmt.Sprintf("setpart: WithMaxSubsetSize(%d): must be positive", k))
	}

	return func(o *Options) { o.MaxSubsetSize = k }
}

// WithMaxSubsets caps the number of feasible subsets. Panics if n < 1.
func WithMaxSubsets(n int) Option {
	if n < 1 {
		panic(fmt.Sprintf("setpart: WithMaxSubsets(%d): must be positive", n))
	}

	return func(o *Options) { o.MaxSubsets = n }
}

// OptionsFromParams reads min_isp, target_isp, max_subset_size and max_subsets.
func OptionsFromParams(p cep.Params) (Options, error) {
	var (
		o   = DefaultOptions()
		err error
	)
	if o.MinISP, err = p.Float("min_isp", o.MinISP); err != nil {
		return o, err
	}
	if o.TargetISP, err = p.Float("target_isp", o.TargetISP); err != nil {
		return o, err
	}
	if o.MaxSubsetSize, err = p.Int("max_subset_size", o.MaxSubsetSize); err != nil {
		return o, err
	}
	if o.MaxSubsets, err = p.Int("max_subsets", o.MaxSubsets); err != nil {
		return o, err
	}
	if o.MinISP < 0 || o.MinISP > o.TargetISP || o.TargetISP > 1 || o.MaxSubsetSize < 1 || o.MaxSubsets < 1 {
		return o, fmt.Errorf("%w: isp band [%v, %v], max_subset_size %d, max_subsets %d",
			cep.ErrBadParam, o.MinISP, o.TargetISP, o.MaxSubsetSize, o.MaxSubsets)
	}

	return o, nil
}

// SolverFromParams builds the default branch-and-bound solver from
// max_nodes and time_limit (seconds).
func SolverFromParams(p cep.Params, extra ...mip.BBOption) (mip.Solver, error) {
	nodes, err := p.Int("max_nodes", mip.DefaultMaxNodes)
	if err != nil {
		return nil, err
	}
	seconds, err := p.Float("time_limit", 0)
	if err != nil {
		return nil, err
	}
	if nodes < 0 || seconds < 0 {
		return nil, fmt.Errorf("%w: max_nodes %d, time_limit %v", cep.ErrBadParam, nodes, seconds)
	}
	opts := []mip.BBOption{
		mip.WithMaxNodes(nodes),
		mip.WithTimeLimit(time.Duration(seconds * float64(time.Second))),
	}

	return mip.NewBranchAndBound(append(opts, extra...)...), nil
}
