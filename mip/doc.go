// Package mip is a small mathematical-programming engine for the integer
// programs built by the grouping optimizers.
//
// A Model holds bounded variables (binary or continuous), ranged linear
// constraints lo ≤ a·x ≤ hi and a linear objective with a direction. A Solver
// turns a Model into a Solution carrying a Status and per-variable values.
// Optimizers depend on the Solver interface only.
//
// BranchAndBound is the default Solver:
//
//   - LP relaxations are solved by a bounded two-phase tableau simplex built
//     on gonum's mat and floats packages. Equality constraints stay single
//     rows. Pricing is Dantzig's rule, falling back to Bland's rule after a
//     run of degenerate pivots, so degenerate set-partition relaxations cannot
//     cycle. A pivot cap turns a stuck relaxation into a branching decision.
//   - The context and the soft deadline are checked inside each relaxation,
//     so cancellation and TimeLimit take effect mid-LP.
//   - Binary variables fixed by branching are substituted out of the
//     relaxation; upper bounds already implied by a nonnegative ≤ row are not
//     emitted as separate rows.
//   - Search is depth-first with most-fractional branching, exploring the
//     child nearest to the relaxed value first, and prunes nodes whose bound
//     does not beat the incumbent.
//   - A node budget and a soft deadline stop the search early; the Status
//     then reports NodeLimit or TimeLimit and Values hold the incumbent, if any.
//
// Infeasibility is a Status, never an error. Errors are reserved for
// malformed models and context cancellation.
package mip
