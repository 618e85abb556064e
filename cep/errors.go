package cep

import "errors"

var (
	// ErrUnknownObjective is returned when an objective name is not supported
	// by the operation it was passed to.
	ErrUnknownObjective = errors.New("cep: unknown evaluation objective")

	// ErrNoStrategies is returned when EvaluateStrategies runs on a sponsor
	// without registered strategies.
	ErrNoStrategies = errors.New("cep: no strategies registered")

	// ErrGroupsNotCreated is returned when a strategy finished without producing
	// a group list.
	ErrGroupsNotCreated = errors.New("cep: strategy groups have not been created")

	// ErrNilSponsor is returned when a nil *Sponsor is passed to a strategy.
	ErrNilSponsor = errors.New("cep: sponsor is nil")

	// ErrDuplicateSite indicates that a site code appears in more than one group.
	ErrDuplicateSite = errors.New("cep: site appears in more than one group")

	// ErrUnknownSite indicates that a group holds a site absent from the roster.
	ErrUnknownSite = errors.New("cep: group holds a site outside the roster")

	// ErrIncompleteCoverage indicates that groups do not cover the full roster.
	ErrIncompleteCoverage = errors.New("cep: groups do not cover the full roster")

	// ErrBadParam is returned when a configuration value cannot be converted
	// to the type its key requires.
	ErrBadParam = errors.New("cep: invalid parameter value")
)
