package sim

import (
	"math/rand"

	"gostop/domain/stopping"
)

// RunTrial simulates one sequential search under the look-then-leap rule.
// It draws a uniform random permutation of ranks 1..n from the supplied
// stream, benchmarks against the first skip items, then selects the first
// later item that beats the benchmark. The searcher must end with a
// selection, so an exhausted scan falls back to the last item.
//
// The returned value is the rank of the selected item, in [1, n]. The trial
// is a pure function of its stream; it never touches shared state.
func RunTrial(params stopping.Params, rng *rand.Rand) (int, error) {
	if err := params.Validate(); err != nil {
		return 0, err
	}

	perm := drawPermutation(params.N, rng)

	// Benchmark is the best rank seen during the look phase. With skip == 0
	// there is no benchmark and nothing can block the first item.
	benchmark := 0
	for i := 0; i < params.Skip; i++ {
		if perm[i] > benchmark {
			benchmark = perm[i]
		}
	}

	// Leap phase: first item beating the benchmark wins; later items are
	// never inspected.
	for i := params.Skip; i < params.N; i++ {
		if perm[i] > benchmark {
			return perm[i], nil
		}
	}

	// Nothing qualified (the best item was in the look phase, or the scan
	// range was empty). Forced fallback: take the last item as-is.
	return perm[params.N-1], nil
}

// drawPermutation returns a uniformly random ordering of ranks 1..n
// (Fisher-Yates over the identity arrangement).
func drawPermutation(n int, rng *rand.Rand) []int {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i + 1
	}
	for i := n - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		perm[i], perm[j] = perm[j], perm[i]
	}
	return perm
}
