package sim

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gostop/adapters/rng"
	"gostop/domain/core"
	"gostop/domain/stopping"
)

func TestEstimateSuccessRate_SeededReproducibility(t *testing.T) {
	ctx := context.Background()
	estimator := NewEstimator(rng.NewAdapter())
	params := stopping.Params{N: 50, Skip: 18}

	first, err := estimator.EstimateSuccessRate(ctx, params, 5000, 42)
	require.NoError(t, err)
	second, err := estimator.EstimateSuccessRate(ctx, params, 5000, 42)
	require.NoError(t, err)

	assert.Equal(t, first, second, "identical inputs must reproduce bit-for-bit")
}

func TestEstimateSuccessRate_SeedChangesOutcome(t *testing.T) {
	ctx := context.Background()
	estimator := NewEstimator(rng.NewAdapter())
	params := stopping.Params{N: 50, Skip: 18}

	a, err := estimator.EstimateSuccessRate(ctx, params, 5000, 1)
	require.NoError(t, err)
	b, err := estimator.EstimateSuccessRate(ctx, params, 5000, 2)
	require.NoError(t, err)
	c, err := estimator.EstimateSuccessRate(ctx, params, 5000, 3)
	require.NoError(t, err)

	allEqual := a.Successes == b.Successes && b.Successes == c.Successes
	assert.False(t, allEqual, "different seeds should draw different trials")
}

func TestEstimateSuccessRate_ConvergesToAnalytic(t *testing.T) {
	ctx := context.Background()
	estimator := NewEstimator(rng.NewAdapter())

	tests := []struct {
		name    string
		n       int
		skip    int
		trials  int
		epsilon float64
	}{
		{"n=10 skip=3", 10, 3, 20000, 0.03},
		{"n=100 skip=37", 100, 37, 100000, 0.02},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analytic, err := stopping.AnalyticSuccessProbability(tt.n, tt.skip)
			require.NoError(t, err)

			est, err := estimator.EstimateSuccessRate(ctx, stopping.Params{N: tt.n, Skip: tt.skip}, tt.trials, 42)
			require.NoError(t, err)
			assert.InDelta(t, analytic, est.Probability, tt.epsilon)
		})
	}
}

func TestEstimateSuccessRate_DegenerateSkips(t *testing.T) {
	ctx := context.Background()
	estimator := NewEstimator(rng.NewAdapter())

	// Both boundary skips collapse to a uniformly random pick: 1/n.
	for _, skip := range []int{0, 20} {
		est, err := estimator.EstimateSuccessRate(ctx, stopping.Params{N: 20, Skip: skip}, 20000, 7)
		require.NoError(t, err)
		assert.InDelta(t, 0.05, est.Probability, 0.01, "skip=%d", skip)
	}
}

func TestEstimateSuccessRate_EstimateShape(t *testing.T) {
	ctx := context.Background()
	estimator := NewEstimator(rng.NewAdapter())

	est, err := estimator.EstimateSuccessRate(ctx, stopping.Params{N: 30, Skip: 11}, 4000, 13)
	require.NoError(t, err)

	assert.Equal(t, 4000, est.Trials)
	assert.Equal(t, est.Probability, float64(est.Successes)/4000)
	assert.GreaterOrEqual(t, est.Probability, 0.0)
	assert.LessOrEqual(t, est.Probability, 1.0)
	assert.LessOrEqual(t, est.CILower, est.Probability)
	assert.GreaterOrEqual(t, est.CIUpper, est.Probability)
	assert.GreaterOrEqual(t, est.CILower, 0.0)
	assert.LessOrEqual(t, est.CIUpper, 1.0)
	assert.Greater(t, est.StdError, 0.0)
}

func TestEstimateSuccessRate_InvalidInputs(t *testing.T) {
	ctx := context.Background()
	estimator := NewEstimator(rng.NewAdapter())

	_, err := estimator.EstimateSuccessRate(ctx, stopping.Params{N: 10, Skip: 3}, 0, 42)
	require.Error(t, err)
	assert.True(t, core.IsParameterError(err))

	_, err = estimator.EstimateSuccessRate(ctx, stopping.Params{N: 0, Skip: 0}, 100, 42)
	require.Error(t, err)
	assert.True(t, core.IsParameterError(err))
}

func TestEstimateSuccessRate_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	estimator := NewEstimator(rng.NewAdapter())
	_, err := estimator.EstimateSuccessRate(ctx, stopping.Params{N: 100, Skip: 37}, 50000, 42)
	assert.ErrorIs(t, err, context.Canceled)
}
