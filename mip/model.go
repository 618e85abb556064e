package mip

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors for malformed models.
var (
	// ErrEmptyModel indicates a model without variables.
	ErrEmptyModel = errors.New("mip: model has no variables")

	// ErrBadBounds indicates lo > hi, a NaN bound, or an infinite variable bound.
	ErrBadBounds = errors.New("mip: invalid bounds")

	// ErrUnknownVar indicates a term referencing a variable outside the model.
	ErrUnknownVar = errors.New("mip: unknown variable")
)

// Sense is the optimization direction.
type Sense int

const (
	// Maximize the objective.
	Maximize Sense = iota
	// Minimize the objective.
	Minimize
)

// String implements fmt.Stringer.
func (s Sense) String() string {
	if s == Minimize {
		return "minimize"
	}

	return "maximize"
}

// Kind is the domain of a variable.
type Kind int

const (
	// Binary variables take the values 0 or 1.
	Binary Kind = iota
	// Continuous variables take any value within their bounds.
	Continuous
)

// Var is a decision variable.
type Var struct {
	Name  string
	Kind  Kind
	Lower float64
	Upper float64
}

// Term is one coefficient of a linear expression.
type Term struct {
	Var  int
	Coef float64
}

// Constraint is Lo ≤ Σ Coef·x[Var] ≤ Hi. Use math.Inf for a one-sided row.
type Constraint struct {
	Name  string
	Terms []Term
	Lo    float64
	Hi    float64
}

// Model is a linear program with optional binary variables.
type Model struct {
	vars  []Var
	cons  []Constraint
	obj   []float64
	sense Sense
}

// NewModel returns an empty model with the given direction.
func NewModel(sense Sense) *Model {
	return &Model{sense: sense}
}

// Sense returns the optimization direction.
func (m *Model) Sense() Sense { return m.sense }

// NumVars returns the number of variables.
func (m *Model) NumVars() int { return len(m.vars) }

// NumConstraints returns the number of constraints.
func (m *Model) NumConstraints() int { return len(m.cons) }

// Var returns variable i.
func (m *Model) Var(i int) Var { return m.vars[i] }

// Constraints returns the constraint list (not a copy).
func (m *Model) Constraints() []Constraint { return m.cons }

// Objective returns the objective coefficient of variable i.
func (m *Model) Objective(i int) float64 { return m.obj[i] }

// AddBinary adds a 0/1 variable and returns its index.
func (m *Model) AddBinary(name string) int {
	m.vars = append(m.vars, Var{Name: name, Kind: Binary, Lower: 0, Upper: 1})
	m.obj = append(m.obj, 0)

	return len(m.vars) - 1
}

// AddContinuous adds a variable with finite bounds lo ≤ x ≤ hi and returns
// its index. Bounds are checked by Validate.
func (m *Model) AddContinuous(name string, lo, hi float64) int {
	m.vars = append(m.vars, Var{Name: name, Kind: Continuous, Lower: lo, Upper: hi})
	m.obj = append(m.obj, 0)

	return len(m.vars) - 1
}

// SetObjective sets the objective coefficient of variable v.
func (m *Model) SetObjective(v int, coef float64) {
	m.obj[v] = coef
}

// AddConstraint appends lo ≤ Σ terms ≤ hi and returns its index.
// Terms are checked by Validate.
func (m *Model) AddConstraint(name string, lo, hi float64, terms ...Term) int {
	m.cons = append(m.cons, Constraint{Name: name, Terms: terms, Lo: lo, Hi: hi})

	return len(m.cons) - 1
}

// AddEquality appends Σ terms = rhs.
func (m *Model) AddEquality(name string, rhs float64, terms ...Term) int {
	return m.AddConstraint(name, rhs, rhs, terms...)
}

// AddLessEqual appends Σ terms ≤ rhs.
func (m *Model) AddLessEqual(name string, rhs float64, terms ...Term) int {
	return m.AddConstraint(name, math.Inf(-1), rhs, terms...)
}

// AddGreaterEqual appends Σ terms ≥ rhs.
func (m *Model) AddGreaterEqual(name string, rhs float64, terms ...Term) int {
	return m.AddConstraint(name, rhs, math.Inf(1), terms...)
}

// Validate checks the model shape.
//
// Errors: ErrEmptyModel, ErrBadBounds, ErrUnknownVar.
func (m *Model) Validate() error {
	if len(m.vars) == 0 {
		return ErrEmptyModel
	}
	for i, v := range m.vars {
		if math.IsNaN(v.Lower) || math.IsNaN(v.Upper) || math.IsInf(v.Lower, 0) || math.IsInf(v.Upper, 0) || v.Lower > v.Upper {
			return fmt.Errorf("%w: variable %d (%s) [%v, %v]", ErrBadBounds, i, v.Name, v.Lower, v.Upper)
		}
	}
	for i, c := range m.cons {
		if math.IsNaN(c.Lo) || math.IsNaN(c.Hi) || c.Lo > c.Hi {
			return fmt.Errorf("%w: constraint %d (%s) [%v, %v]", ErrBadBounds, i, c.Name, c.Lo, c.Hi)
		}
		for _, t := range c.Terms {
			if t.Var < 0 || t.Var >= len(m.vars) {
				return fmt.Errorf("%w: constraint %d (%s) references %d", ErrUnknownVar, i, c.Name, t.Var)
			}
		}
	}

	return nil
}

// Evaluate returns the objective value at x.
func (m *Model) Evaluate(x []float64) float64 {
	var total float64
	for i, c := range m.obj {
		total += c * x[i]
	}

	return total
}

// Feasible reports whether x satisfies every bound and constraint within tol.
func (m *Model) Feasible(x []float64, tol float64) bool {
	if len(x) != len(m.vars) {
		return false
	}
	for i, v := range m.vars {
		if x[i] < v.Lower-tol || x[i] > v.Upper+tol {
			return false
		}
		if v.Kind == Binary && math.Abs(x[i]-math.Round(x[i])) > tol {
			return false
		}
	}
	for _, c := range m.cons {
		var lhs float64
		for _, t := range c.Terms {
			lhs += t.Coef * x[t.Var]
		}
		if lhs < c.Lo-tol || lhs > c.Hi+tol {
			return false
		}
	}

	return true
}
