// Package cepalgorithms groups school sites for the Community Eligibility
// Provision (CEP) so that a sponsor's annual meal reimbursement, or the number
// of students served free, is as large as possible.
//
// The module is organized as flat packages, one concern each:
//
//	cep/           sites, groups, sponsors, program constants, the strategy
//	                contract, strategy evaluation and reports
//	exhaustive/    exact search over every set partition (≤ 11 sites)
//	anneal/        simulated annealing with seeded restarts
//	mip/           integer-program model and branch-and-bound solver
//	setpart/       set-partitioning and bin-capacity programs on mip
//	heuristic/     one group, one-to-one, pairs, spread, binning
//	strategies/    identifier → constructor registry
//	config/        run configuration (viper) and rosters (yaml.v3)
//	metrics/       Collector interface, no-op and Prometheus collectors
//	cmd/cepgroup/  command-line driver
//
// Quick start:
//
//	sponsor := cep.NewSponsor("Valley District", "498", true)
//	sponsor.AddSite(cep.NewSite("S1", 100, 10), cep.NewSite("S2", 100, 55))
//	s, _ := strategies.Default(nil).New(strategies.Exhaustive, nil)
//	sponsor.AddStrategy(s)
//	if err := sponsor.EvaluateStrategies(ctx, cep.ObjectiveReimbursement); err != nil {
//		log.Fatal(err)
//	}
//	fmt.Print(cep.Report(sponsor.Best()))
package cepalgorithms
