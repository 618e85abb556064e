package exhaustive

import (
	"errors"
	"fmt"

	"github.com/VenkataKoppada/CEPAlgorithms-MealsCount/cep"
)

// MaxSites is the largest roster Partition accepts.
const MaxSites = 11

// Sentinel errors returned by Partition.
var (
	// ErrTooManySites indicates a roster larger than MaxSites.
	ErrTooManySites = errors.New("exhaustive: roster exceeds the exhaustive search limit")

	// ErrEmptyRoster indicates a sponsor without sites.
	ErrEmptyRoster = errors.New("exhaustive: roster is empty")
)

// Options configures Partition.
type Options struct {
	// Objective selects the comparison: reimbursement or coverage.
	Objective cep.Objective
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions maximizes reimbursement.
func DefaultOptions() Options {
	return Options{Objective: cep.ObjectiveReimbursement}
}

// WithObjective sets the comparison objective.
// Panics if o is neither reimbursement nor coverage.
func WithObjective(o cep.Objective) Option {
	if !o.Comparable() {
		panic(fmt.Sprintf("exhaustive: WithObjective(%q): only reimbursement and coverage are supported", o))
	}

	return func(opts *Options) { opts.Objective = o }
}

// OptionsFromParams reads "evaluate_by" from p.
func OptionsFromParams(p cep.Params) (Options, error) {
	o := DefaultOptions()
	obj, err := p.Objective("evaluate_by", o.Objective)
	if err != nil {
		return o, err
	}
	if !obj.Comparable() {
		return o, fmt.Errorf("%w: %q", cep.ErrUnknownObjective, obj)
	}
	o.Objective = obj

	return o, nil
}

// Result holds the best partition found.
type Result struct {
	// Groups are the blocks of the best partition, named "Group 1", "Group 2", ...
	Groups []*cep.Group

	// Reimbursement is the unrounded total reimbursement of Groups.
	Reimbursement float64

	// Covered is the total covered-student count of Groups.
	Covered int

	// Partitions is the number of partitions evaluated.
	Partitions int
}
