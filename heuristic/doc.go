// Package heuristic holds the simple deterministic grouping strategies:
// OneGroup, OneToOne, Pairs, Spread and Binning.
//
// None of them search; each makes one greedy pass over the roster ordered by
// ISP. They are cheap baselines for the optimizers and always cover every
// roster site.
package heuristic
