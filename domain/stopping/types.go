package stopping

import (
	"gostop/domain/core"
)

// Params defines one look-then-leap decision rule: a search horizon of N
// items and a Skip-sized sampling phase used only to build a benchmark.
type Params struct {
	N    int `json:"n"`
	Skip int `json:"skip"`
}

// Validate checks the horizon and skip constraints. Violations are never
// clamped; they surface as parameter errors.
func (p Params) Validate() error {
	if p.N < 1 {
		return core.NewParameterError("n", p.N, "horizon must be at least 1")
	}
	if p.Skip < 0 {
		return core.NewParameterError("skip", p.Skip, "skip cannot be negative")
	}
	if p.Skip > p.N {
		return core.NewParameterError("skip", p.Skip, "skip cannot exceed n")
	}
	return nil
}

// Mode selects how a sweep computes success probabilities
type Mode string

const (
	// ModeMonteCarlo estimates each probability from repeated simulated trials
	ModeMonteCarlo Mode = "monte_carlo"
	// ModeAnalytic evaluates the closed-form success probability directly
	ModeAnalytic Mode = "analytic"
)

// ParseMode converts a string into a Mode
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeMonteCarlo, ModeAnalytic:
		return Mode(s), nil
	default:
		return "", core.NewParameterError("mode", 0, "must be monte_carlo or analytic")
	}
}

// SweepPoint is one row of a sweep curve: the success probability of the
// rule at a single skip value.
type SweepPoint struct {
	Skip        int     `json:"skip"`
	Probability float64 `json:"probability"`
}

// Curve is a sweep result ordered by increasing skip
type Curve []SweepPoint

// Optimum is the arg-max of a curve
type Optimum struct {
	Skip        int     `json:"skip"`
	Probability float64 `json:"probability"`
}

// FindOptimum returns the point with the highest probability. Ties break
// toward the smallest skip, so the result is stable for a given curve.
func FindOptimum(curve Curve) (Optimum, error) {
	if len(curve) == 0 {
		return Optimum{}, core.ErrEmptyCurve
	}
	best := curve[0]
	for _, pt := range curve[1:] {
		if pt.Probability > best.Probability {
			best = pt
		}
	}
	return Optimum{Skip: best.Skip, Probability: best.Probability}, nil
}

// Estimate is a Monte Carlo success-rate estimate with its sampling
// uncertainty. The interval is advisory only; estimation never stops early.
type Estimate struct {
	Probability float64 `json:"probability"`
	Trials      int     `json:"trials"`
	Successes   int     `json:"successes"`
	StdError    float64 `json:"std_error"`
	CILower     float64 `json:"ci_lower"`
	CIUpper     float64 `json:"ci_upper"`
}
