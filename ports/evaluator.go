package ports

import (
	"context"

	"gostop/domain/stopping"
)

// EstimatorPort produces Monte Carlo success-rate estimates for one skip value
type EstimatorPort interface {
	// EstimateSuccessRate runs the full trial count for the given rule and
	// reports the observed success fraction. The result is a pure function
	// of (params, trials, seed): every entry surface sharing those inputs
	// sees the same estimate.
	EstimateSuccessRate(ctx context.Context, params stopping.Params, trials int, seed int64) (stopping.Estimate, error)
}
