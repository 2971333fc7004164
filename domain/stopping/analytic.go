package stopping

import (
	"math"
)

// AnalyticSuccessProbability evaluates the closed-form probability that the
// look-then-leap rule with the given skip selects the single best item out
// of n. For 1 <= skip < n this is (skip/n) * sum_{j=skip}^{n-1} 1/j, the
// classical secretary-problem formula. The harmonic tail is summed directly
// in ascending j so repeated calls are bit-identical.
//
// The boundary skips both degenerate to a uniformly random selection:
// skip == n forces the last-item fallback, and skip == 0 is defined here as
// 1/n as well (the limit formula would yield 0, which contradicts the rule
// actually selecting the first item with probability 1/n of it being best).
func AnalyticSuccessProbability(n, skip int) (float64, error) {
	if err := (Params{N: n, Skip: skip}).Validate(); err != nil {
		return 0, err
	}
	if skip == 0 || skip == n {
		return 1 / float64(n), nil
	}

	tail := 0.0
	for j := skip; j < n; j++ {
		tail += 1 / float64(j)
	}
	return float64(skip) / float64(n) * tail, nil
}

// TheoreticalOptimalSkip returns floor(n/e), the asymptotically optimal
// sampling size. Computed directly from n, not from any sweep.
func TheoreticalOptimalSkip(n int) int {
	return int(math.Floor(float64(n) / math.E))
}
