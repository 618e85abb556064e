package cep

import (
	"fmt"
	"strings"
)

// Objective names the quantity a strategy or evaluation maximizes.
type Objective string

const (
	// ObjectiveReimbursement maximizes total reimbursement.
	ObjectiveReimbursement Objective = "reimbursement"

	// ObjectiveCoverage maximizes covered students, ties broken by reimbursement.
	ObjectiveCoverage Objective = "coverage"

	// ObjectiveSchools maximizes the number of CEP-eligible groups.
	ObjectiveSchools Objective = "schools"

	// ObjectiveSchoolsFree maximizes the number of groups at the full free rate.
	ObjectiveSchoolsFree Objective = "schools_free"
)

// ParseObjective normalizes s and returns the matching Objective.
func ParseObjective(s string) (Objective, error) {
	o := Objective(strings.ToLower(strings.TrimSpace(s)))
	switch o {
	case ObjectiveReimbursement, ObjectiveCoverage, ObjectiveSchools, ObjectiveSchoolsFree:
		return o, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownObjective, s)
	}
}

// Comparable reports whether strategies can be ranked by o
// (reimbursement or coverage).
func (o Objective) Comparable() bool {
	return o == ObjectiveReimbursement || o == ObjectiveCoverage
}

// String implements fmt.Stringer.
func (o Objective) String() string { return string(o) }
