package cep

import (
	"context"
	"math"
)

// Strategy produces a grouping of a sponsor's sites and exposes metrics over
// the groups it produced.
//
// Contract:
//   - CreateGroups replaces the strategy's group list; it must call SetGroups
//     (through Base) on success, even when the list is empty.
//   - Groups must partition, or for documented strategies sub-cover, the
//     sponsor's roster: no site code appears in more than one group.
//   - Metric methods are pure functions of the current group list.
type Strategy interface {
	// Name identifies the strategy in reports.
	Name() string

	// CreateGroups builds the grouping for sponsor.
	CreateGroups(ctx context.Context, sponsor *Sponsor) error

	// Groups returns the produced groups (nil before CreateGroups).
	Groups() []*Group

	// Created reports whether CreateGroups produced a group list.
	Created() bool

	// StudentsCovered sums covered students over the groups.
	StudentsCovered() int

	// TotalEnrolled sums enrollment over the groups.
	TotalEnrolled() int

	// ISP is round(StudentsCovered/TotalEnrolled, 4).
	ISP() float64

	// FreeRate is ISP × ClaimingPercMultiplier.
	FreeRate() float64

	// Reimbursement is the whole-dollar sum of group reimbursement estimates.
	Reimbursement() float64
}

// Base carries the state every strategy shares: name, configuration mapping
// and produced groups. Concrete strategies embed Base and implement
// CreateGroups.
type Base struct {
	name    string
	params  Params
	groups  []*Group
	created bool
}

// NewBase returns a Base with the given name and parameters (nil params are
// replaced by an empty mapping).
func NewBase(name string, params Params) Base {
	if params == nil {
		params = Params{}
	}

	return Base{name: name, params: params}
}

// Name returns the strategy name.
func (b *Base) Name() string { return b.name }

// Params returns the configuration mapping.
func (b *Base) Params() Params { return b.params }

// Groups returns the produced groups.
func (b *Base) Groups() []*Group { return b.groups }

// Created reports whether SetGroups has been called.
func (b *Base) Created() bool { return b.created }

// SetGroups records the produced groups and marks the strategy as created.
// A nil slice is stored as an empty list.
func (b *Base) SetGroups(groups []*Group) {
	if groups == nil {
		groups = []*Group{}
	}
	b.groups = groups
	b.created = true
}

// StudentsCovered sums CoveredStudents over the groups.
func (b *Base) StudentsCovered() int {
	var (
		total int
		g     *Group
	)
	for _, g = range b.groups {
		total += g.CoveredStudents()
	}

	return total
}

// TotalEnrolled sums TotalEnrolled over the groups.
func (b *Base) TotalEnrolled() int {
	var (
		total int
		g     *Group
	)
	for _, g = range b.groups {
		total += g.TotalEnrolled()
	}

	return total
}

// ISP returns the aggregate ratio of covered to enrolled students.
func (b *Base) ISP() float64 {
	return Ratio(b.StudentsCovered(), b.TotalEnrolled())
}

// FreeRate returns ISP × ClaimingPercMultiplier (unclamped).
func (b *Base) FreeRate() float64 {
	return b.ISP() * ClaimingPercMultiplier
}

// Reimbursement returns the sum of group estimates rounded to whole dollars.
func (b *Base) Reimbursement() float64 {
	return math.RoundToEven(TotalReimbursement(b.groups))
}

// TotalReimbursement sums EstimateReimbursement over groups without rounding.
//
// Complexity: O(total members).
func TotalReimbursement(groups []*Group) float64 {
	var (
		total float64
		g     *Group
	)
	for _, g = range groups {
		total += g.EstimateReimbursement()
	}

	return total
}

// TotalCovered sums CoveredStudents over groups.
func TotalCovered(groups []*Group) int {
	var (
		total int
		g     *Group
	)
	for _, g = range groups {
		total += g.CoveredStudents()
	}

	return total
}

// NonEmpty returns the groups holding at least one site, preserving order.
func NonEmpty(groups []*Group) []*Group {
	out := make([]*Group, 0, len(groups))
	var g *Group
	for _, g = range groups {
		if len(g.Sites) > 0 {
			out = append(out, g)
		}
	}

	return out
}
