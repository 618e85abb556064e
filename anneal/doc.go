// Package anneal implements a simulated-annealing search over site groupings.
//
// A run performs a number of independent fresh starts. Each start:
//
//  1. Draws a group count k (uniform in [2, n) or [2, MaxGroups]) and places
//     every site into one of k groups uniformly at random; empty groups are
//     dropped.
//  2. Walks a temperature schedule T = 1, 1−Δt, 1−2Δt, ... while T > 0. At each
//     temperature it performs Iterations relocation trials: pick two distinct
//     non-empty groups, move one random site from the first to the second and
//     compare the pair's metrics before and after the move.
//  3. Accepts the move when the configured objective strictly improves
//     (ties on the primary measure fall back to reimbursement). A rejected move
//     is kept anyway with probability min(1, exp(Δ/T)) when Annealing is set,
//     where Δ = (after−before)/before × TFactor (−0.01 × TFactor when before is 0).
//     Otherwise the move is undone.
//
// The run returns the start with the greatest total reimbursement. The
// single-group grouping seeds the comparison, so the result is never worse than
// that baseline; ties keep the earliest candidate.
//
// Rosters of at most SmallRosterLimit sites are not annealed: reimbursement and
// coverage runs delegate to the exhaustive optimizer, the schools objectives
// return the single group.
//
// Determinism:
//   - Every start draws from its own math/rand stream derived from (Seed, start)
//     with a SplitMix64 mix. Same roster + same Options ⇒ same groups.
//   - A run owns its streams; concurrent runs never share state.
package anneal
