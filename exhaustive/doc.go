// Package exhaustive finds the optimal grouping of a small site roster by
// enumerating every set partition.
//
// Algorithm:
//
//  1. Score every non-empty subset of the roster once. A subset is keyed by a
//     bitmask over roster positions, so the key does not depend on the order
//     in which members are listed.
//  2. Enumerate every set partition as a restricted-growth string
//     a[0..n-1] (a[0] = 0, a[i] ≤ 1 + max(a[0..i-1])), iteratively in
//     lexicographic order. Each string maps sites to blocks.
//  3. Sum the pre-scored blocks and keep the best partition:
//     – reimbursement: strictly greater total reimbursement;
//     – coverage: strictly greater covered students, then greater reimbursement.
//     The first partition reaching a value is kept.
//
// The number of partitions is the Bell number B(n) (B(11) = 678570), so input
// is capped at MaxSites. Larger rosters return ErrTooManySites; the Strategy
// adapter turns that into an empty grouping so that evaluation falls back to
// the other strategies.
//
// Complexity:
//   - Time:  O(2ⁿ·n + B(n)·n).
//   - Space: O(2ⁿ).
package exhaustive
