// Package setpart - candidate subsets and bin sizes.
//
// The exact set-partition model has one binary column per site subset whose
// pooled ISP lies in the band [MinISP, TargetISP]. This file enumerates those
// subsets and the bin sizes used by the bin-greedy variant.
//
// Goals:
//   - Determinism: subsets come out by size, then in lexicographic index
//     order, so column order and tie-breaking are stable across runs.
//   - Bounded work: enumeration stops with ErrTooManySubsets once MaxSubsets
//     columns exist, and MaxSubsetSize caps k. The band is checked on the raw
//     ratio, so a subset at exactly 0.25 or 0.625 qualifies.
//   - Cancellation: ctx is polled every ctxCheckEvery combinations.
//
// Complexity:
//   - FeasibleSubsets: O(Σ_k C(n,k)·k) time for k ≤ MaxSubsetSize; output
//     space is O(MaxSubsets·MaxSubsetSize).
//   - BinSizes: O(BinSamples·log BinSamples).
package setpart

import (
	"context"
	"fmt"
	"slices"

	"github.com/VenkataKoppada/CEPAlgorithms-MealsCount/cep"
)

// ctxCheckEvery is the number of combinations examined between context checks.
const ctxCheckEvery = 1 << 14

// FilterSites keeps the first site of each code and drops sites with zero
// enrollment, preserving order.
func FilterSites(sites []*cep.Site) []*cep.Site {
	seen := make(map[string]struct{}, len(sites))
	out := make([]*cep.Site, 0, len(sites))
	for _, s := range sites {
		if s.Enrolled() == 0 {
			continue
		}
		if _, dup := seen[s.Code()]; dup {
			continue
		}
		seen[s.Code()] = struct{}{}
		out = append(out, s)
	}

	return out
}

// inBand reports whether eligible/enrolled lies in [lo, hi] (unrounded).
func inBand(eligible, enrolled int, lo, hi float64) bool {
	if enrolled == 0 {
		return false
	}
	isp := float64(eligible) / float64(enrolled)

	return isp >= lo && isp <= hi
}

// FeasibleSubsets returns the index lists of every subset of sites with at
// most MaxSubsetSize members whose pooled ISP lies in the band, ordered by
// size and then lexicographically.
//
// Errors: ErrTooManySubsets, ctx.Err().
//
// Complexity: O(Σ_k C(n,k)·k) for k ≤ MaxSubsetSize.
func FeasibleSubsets(ctx context.Context, sites []*cep.Site, opts Options) ([][]int, error) {
	var (
		n        = len(sites)
		maxK     = min(n, opts.MaxSubsetSize)
		out      [][]int
		examined int
	)
	for k := 1; k <= maxK; k++ {
		idx := make([]int, k)
		for i := range idx {
			idx[i] = i
		}
		for {
			var eligible, enrolled int
			for _, i := range idx {
				eligible += sites[i].Eligible()
				enrolled += sites[i].Enrolled()
			}
			if inBand(eligible, enrolled, opts.MinISP, opts.TargetISP) {
				if len(out) == opts.MaxSubsets {
					return nil, fmt.Errorf("%w: more than %d", ErrTooManySubsets, opts.MaxSubsets)
				}
				out = append(out, append([]int(nil), idx...))
			}

			examined++
			if examined%ctxCheckEvery == 0 {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
			}

			// Next k-combination in lexicographic order.
			i := k - 1
			for i >= 0 && idx[i] == n-k+i {
				i--
			}
			if i < 0 {
				break
			}
			idx[i]++
			for j := i + 1; j < k; j++ {
				idx[j] = idx[j-1] + 1
			}
		}
	}

	return out, nil
}

// BinSizes returns the candidate bin sizes for n sites:
// int(2 + x·(n−2)/99) for x = 0..99, deduplicated and ascending; when
// n > LargeRoster only sizes above MinLargeBin are kept.
func BinSizes(n int) []int {
	seen := make(map[int]struct{}, BinSamples)
	out := make([]int, 0, BinSamples)
	for x := 0; x < BinSamples; x++ {
		size := int(2 + float64(x)*float64(n-2)/float64(BinSamples-1))
		if _, dup := seen[size]; dup {
			continue
		}
		seen[size] = struct{}{}
		out = append(out, size)
	}
	slices.Sort(out)

	if n > LargeRoster {
		kept := out[:0]
		for _, s := range out {
			if s > MinLargeBin {
				kept = append(kept, s)
			}
		}
		out = kept
	}

	return out
}
