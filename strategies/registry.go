// Package strategies maps strategy identifiers to constructors.
//
// The registry is explicit: nothing registers itself at init time. Default
// returns a registry holding every strategy of this module under its
// configuration identifier.
package strategies

import (
	"errors"
	"fmt"

	"github.com/VenkataKoppada/CEPAlgorithms-MealsCount/anneal"
	"github.com/VenkataKoppada/CEPAlgorithms-MealsCount/cep"
	"github.com/VenkataKoppada/CEPAlgorithms-MealsCount/exhaustive"
	"github.com/VenkataKoppada/CEPAlgorithms-MealsCount/heuristic"
	"github.com/VenkataKoppada/CEPAlgorithms-MealsCount/metrics"
	"github.com/VenkataKoppada/CEPAlgorithms-MealsCount/mip"
	"github.com/VenkataKoppada/CEPAlgorithms-MealsCount/setpart"
)

// Strategy identifiers registered by Default.
const (
	Exhaustive         = "exhaustive"
	OneGroup           = "one_group"
	OneToOne           = "one_to_one"
	Pairs              = "pairs"
	Spread             = "spread"
	Binning            = "binning"
	SimulatedAnnealing = "simulated_annealing"
	MIPSetPartition    = "mip_set_partition"
	MIPBinGreedy       = "mip_bin_greedy"
)

// ErrUnknownStrategy is returned by New for an unregistered identifier.
var ErrUnknownStrategy = errors.New("strategies: unknown strategy")

// Constructor builds a strategy from its configuration mapping.
type Constructor func(params cep.Params) (cep.Strategy, error)

// Entry names one strategy to build and its parameters.
type Entry struct {
	ID     string
	Params cep.Params
}

// Registry is an ordered identifier → Constructor table. It is not safe for
// concurrent Register calls.
type Registry struct {
	ids   []string
	ctors map[string]Constructor
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{ctors: make(map[string]Constructor)}
}

// Register adds ctor under id. It panics on an empty id, a nil constructor or
// a duplicate id.
func (r *Registry) Register(id string, ctor Constructor) {
	if id == "" || ctor == nil {
		panic("strategies: Register with empty id or nil constructor")
	}
	if _, dup := r.ctors[id]; dup {
		panic(fmt.Sprintf("strategies: Register called twice for %q", id))
	}
	r.ids = append(r.ids, id)
	r.ctors[id] = ctor
}

// IDs returns the registered identifiers in registration order.
func (r *Registry) IDs() []string {
	return append([]string(nil), r.ids...)
}

// New builds the strategy registered under id.
//
// Errors: ErrUnknownStrategy, constructor errors wrapped with the id.
func (r *Registry) New(id string, params cep.Params) (cep.Strategy, error) {
	ctor, ok := r.ctors[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, id)
	}
	s, err := ctor(params)
	if err != nil {
		return nil, fmt.Errorf("strategy %s: %w", id, err)
	}

	return s, nil
}

// NewAll builds entries in order, stopping at the first error.
func (r *Registry) NewAll(entries []Entry) ([]cep.Strategy, error) {
	out := make([]cep.Strategy, 0, len(entries))
	for _, entry := range entries {
		s, err := r.New(entry.ID, entry.Params)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}

	return out, nil
}

// DefaultEntries returns one Entry per Default identifier with empty parameters.
func DefaultEntries() []Entry {
	ids := Default(nil).IDs()
	entries := make([]Entry, len(ids))
	for i, id := range ids {
		entries[i] = Entry{ID: id}
	}

	return entries
}

// Default returns a registry holding every strategy of this module. c
// receives annealing restart and solver metrics; nil means metrics.Nop.
func Default(c metrics.Collector) *Registry {
	c = metrics.OrNop(c)
	r := NewRegistry()

	r.Register(Exhaustive, func(p cep.Params) (cep.Strategy, error) {
		return exhaustive.NewStrategy(p)
	})
	r.Register(OneGroup, func(p cep.Params) (cep.Strategy, error) {
		return heuristic.NewOneGroup(p), nil
	})
	r.Register(OneToOne, func(p cep.Params) (cep.Strategy, error) {
		return heuristic.NewOneToOne(p), nil
	})
	r.Register(Pairs, func(p cep.Params) (cep.Strategy, error) {
		return heuristic.NewPairs(p), nil
	})
	r.Register(Spread, func(p cep.Params) (cep.Strategy, error) {
		return heuristic.NewSpread(p), nil
	})
	r.Register(Binning, func(p cep.Params) (cep.Strategy, error) {
		return heuristic.NewBinning(p)
	})
	r.Register(SimulatedAnnealing, func(p cep.Params) (cep.Strategy, error) {
		return anneal.NewStrategy(p, anneal.WithMetrics(c))
	})
	r.Register(MIPSetPartition, func(p cep.Params) (cep.Strategy, error) {
		solver, err := setpart.SolverFromParams(p, mip.WithSolverMetrics(c))
		if err != nil {
			return nil, err
		}
		return setpart.NewSetPartitionStrategy(p, solver)
	})
	r.Register(MIPBinGreedy, func(p cep.Params) (cep.Strategy, error) {
		solver, err := setpart.SolverFromParams(p, mip.WithSolverMetrics(c))
		if err != nil {
			return nil, err
		}
		return setpart.NewBinGreedyStrategy(p, solver)
	})

	return r
}
