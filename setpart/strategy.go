package setpart

import (
	"context"
	"errors"
	"fmt"

	"github.com/VenkataKoppada/CEPAlgorithms-MealsCount/cep"
	"github.com/VenkataKoppada/CEPAlgorithms-MealsCount/internal/logging"
	"github.com/VenkataKoppada/CEPAlgorithms-MealsCount/mip"
)

// Report names of the two strategies.
const (
	SetPartitionName = "MixedIntegerLP"
	BinGreedyName    = "MixedIntegerLPBins"
)

// Catch-all group names.
const (
	FallbackGroup    = "Group 0"
	NotSelectedGroup = "Not Selected"
	SingletonGroup   = "Singleton-Group"
)

// SetPartitionStrategy adapts SetPartition to cep.Strategy. Unassigned
// sites go to a trailing "Group N"; without a solution every filtered site
// goes to FallbackGroup.
type SetPartitionStrategy struct {
	cep.Base
	solver mip.Solver
	opts   Options
}

// BinGreedyStrategy adapts BinGreedy to cep.Strategy. Unassigned sites go to
// NotSelectedGroup; without a solution every filtered site goes to
// SingletonGroup.
type BinGreedyStrategy struct {
	cep.Base
	solver mip.Solver
	opts   Options
}

var (
	_ cep.Strategy = (*SetPartitionStrategy)(nil)
	_ cep.Strategy = (*BinGreedyStrategy)(nil)
)

// newParts reads options and, when solver is nil, builds one from params.
func newParts(params cep.Params, solver mip.Solver) (Options, mip.Solver, error) {
	opts, err := OptionsFromParams(params)
	if err != nil {
		return opts, nil, err
	}
	if solver == nil {
		if solver, err = SolverFromParams(params); err != nil {
			return opts, nil, err
		}
	}

	return opts, solver, nil
}

// NewSetPartitionStrategy builds the exact-cover strategy. A nil solver
// selects mip.BranchAndBound configured from params.
func NewSetPartitionStrategy(params cep.Params, solver mip.Solver) (*SetPartitionStrategy, error) {
	opts, solver, err := newParts(params, solver)
	if err != nil {
		return nil, err
	}

	return &SetPartitionStrategy{Base: cep.NewBase(SetPartitionName, params), solver: solver, opts: opts}, nil
}

// NewBinGreedyStrategy builds the bin-capacity strategy. A nil solver
// selects mip.BranchAndBound configured from params.
func NewBinGreedyStrategy(params cep.Params, solver mip.Solver) (*BinGreedyStrategy, error) {
	opts, solver, err := newParts(params, solver)
	if err != nil {
		return nil, err
	}

	return &BinGreedyStrategy{Base: cep.NewBase(BinGreedyName, params), solver: solver, opts: opts}, nil
}

func (o Options) asOptions() []Option {
	return []Option{func(dst *Options) { *dst = o }}
}

// CreateGroups implements cep.Strategy.
func (s *SetPartitionStrategy) CreateGroups(ctx context.Context, sponsor *cep.Sponsor) error {
	res, err := SetPartition(ctx, sponsor, s.solver, s.opts.asOptions()...)
	if errors.Is(err, ErrTooManySubsets) {
		logging.FromContext(ctx).V(logging.DEBUG).Info("set partition skipped", "reason", err.Error())
		res, err = unsolved(FilterSites(sponsor.Sites)), nil
	}
	if err != nil {
		return err
	}
	s.SetGroups(assemble(sponsor, res, fmt.Sprintf("Group %d", len(res.Groups)), FallbackGroup))

	return nil
}

// CreateGroups implements cep.Strategy.
func (s *BinGreedyStrategy) CreateGroups(ctx context.Context, sponsor *cep.Sponsor) error {
	res, err := BinGreedy(ctx, sponsor, s.solver, s.opts.asOptions()...)
	if err != nil {
		return err
	}
	s.SetGroups(assemble(sponsor, res, NotSelectedGroup, SingletonGroup))

	return nil
}

// assemble appends the catch-all group for unassigned sites.
func assemble(sponsor *cep.Sponsor, res Result, leftover, fallback string) []*cep.Group {
	groups := res.Groups
	if len(res.Unassigned) == 0 {
		if groups == nil {
			groups = []*cep.Group{}
		}
		return groups
	}
	name := leftover
	if !res.Solved {
		name = fallback
	}

	return append(groups, cep.NewGroup(sponsor, name, res.Unassigned))
}
