package exhaustive

import (
	"context"
	"errors"

	"github.com/VenkataKoppada/CEPAlgorithms-MealsCount/cep"
	"github.com/VenkataKoppada/CEPAlgorithms-MealsCount/internal/logging"
)

// Name is the report name of the exhaustive strategy.
const Name = "Exhaustive"

// Strategy adapts Partition to the cep.Strategy contract.
//
// Rosters above MaxSites, or empty rosters, produce an empty group list
// rather than an error.
type Strategy struct {
	cep.Base
	opts Options
}

// Compile-time assertion that *Strategy implements cep.Strategy.
var _ cep.Strategy = (*Strategy)(nil)

// NewStrategy builds the strategy from a configuration mapping ("evaluate_by").
func NewStrategy(params cep.Params) (*Strategy, error) {
	opts, err := OptionsFromParams(params)
	if err != nil {
		return nil, err
	}

	return &Strategy{Base: cep.NewBase(Name, params), opts: opts}, nil
}

// CreateGroups implements cep.Strategy.
func (s *Strategy) CreateGroups(ctx context.Context, sponsor *cep.Sponsor) error {
	res, err := Partition(ctx, sponsor, WithObjective(s.opts.Objective))
	switch {
	case errors.Is(err, ErrTooManySites), errors.Is(err, ErrEmptyRoster):
		logging.FromContext(ctx).V(logging.DEBUG).Info("exhaustive search skipped", "reason", err.Error())
		s.SetGroups(nil)

		return nil
	case err != nil:
		return err
	}
	s.SetGroups(res.Groups)

	return nil
}
