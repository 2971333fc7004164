package sim

import (
	"context"
	"fmt"
	"math"
	"sync"

	"gonum.org/v1/gonum/stat/distuv"

	"gostop/domain/core"
	"gostop/domain/stopping"
	"gostop/ports"
)

// defaultWorkers balances CPU use against the cost of extra RNG streams.
// Worker count is part of the reproducibility contract (it fixes how trials
// chunk onto streams), so it does not track GOMAXPROCS.
const defaultWorkers = 4

// streamStage names the RNG streams for trial batches. It is a constant so
// identical (params, trials, seed) inputs reproduce the same estimate no
// matter which surface (sweep, CLI, HTTP) asked.
const streamStage = "estimate"

// Estimator produces Monte Carlo success-rate estimates for the
// look-then-leap rule
type Estimator struct {
	rngPort ports.RNGPort
	workers int
}

// NewEstimator creates an estimator drawing from the given RNG port
func NewEstimator(rngPort ports.RNGPort) *Estimator {
	return &Estimator{rngPort: rngPort, workers: defaultWorkers}
}

var _ ports.EstimatorPort = (*Estimator)(nil)

// EstimateSuccessRate runs the trial evaluator the full requested number of
// times and reports the fraction that selected the true best item. Every
// call performs every trial; there is no early stopping. The estimate is
// deterministic for fixed (params, trials, seed).
func (e *Estimator) EstimateSuccessRate(ctx context.Context, params stopping.Params, trials int, seed int64) (stopping.Estimate, error) {
	if err := params.Validate(); err != nil {
		return stopping.Estimate{}, err
	}
	if trials < 1 {
		return stopping.Estimate{}, core.NewParameterError("trials", trials, "must be at least 1")
	}

	workers := e.workers
	if trials < 100 {
		workers = 1
	}

	// Contiguous chunks per worker, each on its own derived stream. Success
	// counts sum commutatively, so scheduling order cannot change the result.
	counts := make([]int, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		chunk := trials / workers
		if w < trials%workers {
			chunk++
		}
		wg.Add(1)
		go func(w, chunk int) {
			defer wg.Done()
			counts[w], errs[w] = e.runChunk(ctx, params, chunk, w, seed)
		}(w, chunk)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return stopping.Estimate{}, err
		}
	}

	successes := 0
	for _, c := range counts {
		successes += c
	}
	return newEstimate(successes, trials), nil
}

// runChunk executes one worker's share of trials on an isolated stream
func (e *Estimator) runChunk(ctx context.Context, params stopping.Params, chunk, worker int, seed int64) (int, error) {
	rng, err := e.rngPort.Stream(ctx, streamStage, params.Skip, worker, seed)
	if err != nil {
		return 0, fmt.Errorf("derive stream for worker %d: %w", worker, err)
	}

	successes := 0
	for i := 0; i < chunk; i++ {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
		}
		rank, err := RunTrial(params, rng)
		if err != nil {
			return 0, err
		}
		if rank == params.N {
			successes++
		}
	}
	return successes, nil
}

// newEstimate attaches the Wald interval to a raw success count. The
// interval is advisory; nothing downstream gates on it.
func newEstimate(successes, trials int) stopping.Estimate {
	p := float64(successes) / float64(trials)
	se := math.Sqrt(p * (1 - p) / float64(trials))
	z := distuv.Normal{Mu: 0, Sigma: 1}.Quantile(0.975)

	lower := p - z*se
	if lower < 0 {
		lower = 0
	}
	upper := p + z*se
	if upper > 1 {
		upper = 1
	}

	return stopping.Estimate{
		Probability: p,
		Trials:      trials,
		Successes:   successes,
		StdError:    se,
		CILower:     lower,
		CIUpper:     upper,
	}
}
