// Package anneal - deterministic random streams for the restart loop.
//
// Every fresh start of the annealer draws from its own *rand.Rand, seeded
// from the run seed and the start number. Results therefore depend only on
// (seed, starts), never on scheduling or on how many starts ran before.
//
// Goals:
//   - Determinism: the same seed and start number give the same stream on
//     every platform.
//   - Independence: consecutive start numbers must not give correlated
//     streams. math/rand seeds that differ in a few low bits produce related
//     early outputs, so the start number is spread over all 64 bits first.
//
// Concurrency:
//   - *rand.Rand is not goroutine-safe. Each start owns its stream and no
//     stream is shared.
package anneal

import "math/rand"

// golden is 2⁶⁴/φ rounded to odd; multiplying by it is a bijection on
// uint64 that spreads consecutive integers across the whole range.
const golden uint64 = 0x9e3779b97f4a7c15

// streamSeed maps (seed, stream) to the seed of one start's generator.
// The stream is spread by the golden multiplier, offset by the run seed and
// finished with the MurmurHash3 fmix64 avalanche. Every step is a bijection,
// so distinct streams of one seed never collide.
//
// Complexity: O(1).
func streamSeed(seed int64, stream uint64) int64 {
	x := uint64(seed) + stream*golden
	x ^= x >> 33
	x *= 0xff51afd7ed558ccd
	x ^= x >> 33
	x *= 0xc4ceb9fe1a85ec53
	x ^= x >> 33

	return int64(x)
}

// startRNG returns the deterministic stream of fresh start number start.
// A *rand.Rand is not goroutine-safe; each start owns its stream.
func startRNG(seed int64, start int) *rand.Rand {
	return rand.New(rand.NewSource(streamSeed(seed, uint64(start))))
}

// pickTwo returns two distinct indices in [0, n). Requires n ≥ 2.
//
// Complexity: O(1).
func pickTwo(n int, rng *rand.Rand) (int, int) {
	i := rng.Intn(n)
	j := rng.Intn(n - 1)
	if j >= i {
		j++
	}

	return i, j
}
