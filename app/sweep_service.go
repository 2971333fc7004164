package app

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/semaphore"

	"gostop/domain/core"
	"gostop/domain/stopping"
	"gostop/ports"
)

// maxParallelSkips bounds the Monte Carlo fan-out across skip values. Each
// skip already runs its trials on a small worker pool, so this stays modest.
const maxParallelSkips = 4

// SweepService evaluates the look-then-leap rule at every skip value in
// 0..n and locates the empirical optimum
type SweepService struct {
	estimator ports.EstimatorPort
	repo      ports.SweepRepository // optional; nil disables persistence
}

// SweepRequest defines the inputs for a deterministic sweep
type SweepRequest struct {
	N       int
	Mode    stopping.Mode
	Trials  int // Monte Carlo mode only
	Seed    int64
	SweepID core.SweepID // optional, generated if empty
}

// SweepResult contains the complete output of a sweep
type SweepResult struct {
	SweepID         core.SweepID     `json:"sweep_id"`
	N               int              `json:"n"`
	Mode            stopping.Mode    `json:"mode"`
	Trials          int              `json:"trials,omitempty"`
	Seed            int64            `json:"seed"`
	Curve           stopping.Curve   `json:"curve"`
	Optimum         stopping.Optimum `json:"optimum"`
	TheoreticalSkip int              `json:"theoretical_skip"`
	RuntimeMs       int64            `json:"runtime_ms"`
}

// NewSweepService creates a sweep service. repo may be nil when results are
// not being persisted.
func NewSweepService(estimator ports.EstimatorPort, repo ports.SweepRepository) *SweepService {
	return &SweepService{estimator: estimator, repo: repo}
}

// Run evaluates success probability for every skip in 0..n and returns the
// full curve with its arg-max and the floor(n/e) reference point. The result
// is deterministic for fixed (n, mode, trials, seed).
func (s *SweepService) Run(ctx context.Context, req SweepRequest) (*SweepResult, error) {
	startTime := time.Now()

	if req.N < 1 {
		return nil, core.NewParameterError("n", req.N, "horizon must be at least 1")
	}
	if _, err := stopping.ParseMode(string(req.Mode)); err != nil {
		return nil, err
	}
	if req.Mode == stopping.ModeMonteCarlo && req.Trials < 1 {
		return nil, core.NewParameterError("trials", req.Trials, "must be at least 1")
	}

	sweepID := req.SweepID
	if sweepID == "" {
		sweepID = core.SweepID(core.NewID())
	}

	var curve stopping.Curve
	var err error
	switch req.Mode {
	case stopping.ModeAnalytic:
		curve, err = s.analyticCurve(req.N)
	case stopping.ModeMonteCarlo:
		curve, err = s.simulatedCurve(ctx, req)
	}
	if err != nil {
		return nil, fmt.Errorf("sweep %s failed: %w", sweepID, err)
	}

	optimum, err := stopping.FindOptimum(curve)
	if err != nil {
		return nil, err
	}

	result := &SweepResult{
		SweepID:         sweepID,
		N:               req.N,
		Mode:            req.Mode,
		Trials:          req.Trials,
		Seed:            req.Seed,
		Curve:           curve,
		Optimum:         optimum,
		TheoreticalSkip: stopping.TheoreticalOptimalSkip(req.N),
		RuntimeMs:       time.Since(startTime).Milliseconds(),
	}

	if s.repo != nil {
		if err := s.repo.SaveSweep(ctx, resultToRecord(result)); err != nil {
			return nil, fmt.Errorf("persist sweep %s: %w", sweepID, err)
		}
	}

	return result, nil
}

// analyticCurve evaluates the closed form at every skip. No sampling noise,
// so it doubles as the cross-validation reference for Monte Carlo output.
func (s *SweepService) analyticCurve(n int) (stopping.Curve, error) {
	curve := make(stopping.Curve, 0, n+1)
	for skip := 0; skip <= n; skip++ {
		p, err := stopping.AnalyticSuccessProbability(n, skip)
		if err != nil {
			return nil, err
		}
		curve = append(curve, stopping.SweepPoint{Skip: skip, Probability: p})
	}
	return curve, nil
}

// simulatedCurve estimates every skip from seeded trials, fanning out across
// skip values under a weighted semaphore. Points land at their own index, so
// completion order never reorders the curve. Streams derive from the request
// alone — the sweep ID stays a persistence key and never reaches the RNG, so
// a fixed seed reproduces the curve even when the ID is freshly generated.
func (s *SweepService) simulatedCurve(ctx context.Context, req SweepRequest) (stopping.Curve, error) {
	curve := make(stopping.Curve, req.N+1)
	errs := make([]error, req.N+1)

	sem := semaphore.NewWeighted(maxParallelSkips)
	for skip := 0; skip <= req.N; skip++ {
		if err := sem.Acquire(ctx, 1); err != nil {
			return nil, err
		}
		go func(skip int) {
			defer sem.Release(1)
			est, err := s.estimator.EstimateSuccessRate(ctx, stopping.Params{N: req.N, Skip: skip}, req.Trials, req.Seed)
			if err != nil {
				errs[skip] = err
				return
			}
			curve[skip] = stopping.SweepPoint{Skip: skip, Probability: est.Probability}
		}(skip)
	}
	if err := sem.Acquire(ctx, maxParallelSkips); err != nil {
		return nil, err
	}

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return curve, nil
}

func resultToRecord(result *SweepResult) *ports.SweepRecord {
	return &ports.SweepRecord{
		SweepID:         result.SweepID,
		N:               result.N,
		Mode:            result.Mode,
		Trials:          result.Trials,
		Seed:            result.Seed,
		Curve:           result.Curve,
		BestSkip:        result.Optimum.Skip,
		BestProbability: result.Optimum.Probability,
		TheoreticalSkip: result.TheoreticalSkip,
		RuntimeMs:       result.RuntimeMs,
		CreatedAt:       core.Now(),
	}
}
