package anneal

import (
	"context"

	"github.com/VenkataKoppada/CEPAlgorithms-MealsCount/cep"
)

// Name is the report name of the annealing strategy.
const Name = "SimulatedAnnealing"

// Strategy adapts Optimize to the cep.Strategy contract.
type Strategy struct {
	cep.Base
	opts Options
}

// Compile-time assertion that *Strategy implements cep.Strategy.
var _ cep.Strategy = (*Strategy)(nil)

// NewStrategy builds the strategy from a configuration mapping; extra
// options are applied after the mapping.
func NewStrategy(params cep.Params, extra ...Option) (*Strategy, error) {
	opts, err := OptionsFromParams(params)
	if err != nil {
		return nil, err
	}
	for _, opt := range extra {
		opt(&opts)
	}

	return &Strategy{Base: cep.NewBase(Name, params), opts: opts}, nil
}

// Options returns the resolved options.
func (s *Strategy) Options() Options { return s.opts }

// CreateGroups implements cep.Strategy.
func (s *Strategy) CreateGroups(ctx context.Context, sponsor *cep.Sponsor) error {
	res, err := Optimize(ctx, sponsor, func(o *Options) { *o = s.opts })
	if err != nil {
		return err
	}
	s.SetGroups(res.Groups)

	return nil
}
