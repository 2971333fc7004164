package stopping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gostop/domain/core"
)

func TestAnalyticSuccessProbability_KnownValues(t *testing.T) {
	tests := []struct {
		name     string
		n        int
		skip     int
		expected float64
		epsilon  float64
	}{
		{"n=100 near-optimal skip", 100, 37, 0.3710, 0.001},
		{"n=10 skip=3", 10, 3, 0.3987, 0.001},
		{"n=2 skip=1", 2, 1, 0.5, 1e-12},
		{"n=3 skip=1", 3, 1, 0.5, 1e-12},
		{"n=1 degenerate", 1, 0, 1.0, 1e-12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := AnalyticSuccessProbability(tt.n, tt.skip)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, p, tt.epsilon)
		})
	}
}

func TestAnalyticSuccessProbability_Boundaries(t *testing.T) {
	// Both degenerate skips collapse to a uniformly random pick.
	for _, n := range []int{1, 5, 37, 100} {
		p0, err := AnalyticSuccessProbability(n, 0)
		require.NoError(t, err)
		assert.InDelta(t, 1/float64(n), p0, 1e-15, "skip=0, n=%d", n)

		pn, err := AnalyticSuccessProbability(n, n)
		require.NoError(t, err)
		assert.InDelta(t, 1/float64(n), pn, 1e-15, "skip=n, n=%d", n)
	}
}

func TestAnalyticSuccessProbability_Bounds(t *testing.T) {
	for n := 1; n <= 50; n++ {
		for skip := 0; skip <= n; skip++ {
			p, err := AnalyticSuccessProbability(n, skip)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, p, 0.0, "n=%d skip=%d", n, skip)
			assert.LessOrEqual(t, p, 1.0, "n=%d skip=%d", n, skip)
		}
	}
}

func TestAnalyticSuccessProbability_Deterministic(t *testing.T) {
	first, err := AnalyticSuccessProbability(1000, 368)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := AnalyticSuccessProbability(1000, 368)
		require.NoError(t, err)
		assert.Equal(t, first, again, "repeated calls must be bit-identical")
	}
}

func TestAnalyticSuccessProbability_InvalidParams(t *testing.T) {
	cases := []struct {
		name string
		n    int
		skip int
	}{
		{"zero horizon", 0, 0},
		{"negative horizon", -5, 0},
		{"negative skip", 10, -1},
		{"skip beyond horizon", 10, 11},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := AnalyticSuccessProbability(tt.n, tt.skip)
			require.Error(t, err)
			assert.True(t, core.IsParameterError(err))
		})
	}
}

func TestTheoreticalOptimalSkip(t *testing.T) {
	assert.Equal(t, 36, TheoreticalOptimalSkip(100))
	assert.Equal(t, 367, TheoreticalOptimalSkip(1000))
	assert.Equal(t, 3, TheoreticalOptimalSkip(10))
	assert.Equal(t, 0, TheoreticalOptimalSkip(1))
}

func TestTheoreticalSkipTracksAnalyticPeak(t *testing.T) {
	// The analytic arg-max should sit within one step of floor(n/e).
	for _, n := range []int{50, 100, 250, 500} {
		var curve Curve
		for skip := 0; skip <= n; skip++ {
			p, err := AnalyticSuccessProbability(n, skip)
			require.NoError(t, err)
			curve = append(curve, SweepPoint{Skip: skip, Probability: p})
		}
		opt, err := FindOptimum(curve)
		require.NoError(t, err)
		assert.InDelta(t, TheoreticalOptimalSkip(n), opt.Skip, 2, "n=%d", n)
		assert.Greater(t, opt.Probability, 0.36, "n=%d peak should be near 1/e", n)
	}
}
