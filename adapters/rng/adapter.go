package rng

import (
	"context"
	"fmt"
	"math/rand"

	"gostop/ports"
)

// Adapter implements ports.RNGPort with deterministic derived seeds
type Adapter struct{}

var _ ports.RNGPort = (*Adapter)(nil)

// NewAdapter creates a new RNG adapter
func NewAdapter() *Adapter {
	return &Adapter{}
}

// SeededStream creates a deterministic random number generator for a named operation
func (a *Adapter) SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error) {
	derived := seed
	if name != "" {
		derived += int64(hashString(name))
	}
	return rand.New(rand.NewSource(derived)), nil
}

// Stream creates a deterministic RNG stream for a stage/skip/worker combination.
// The derived seed folds in every coordinate so distinct workers never share
// generator state and identical coordinates always reproduce the same stream.
func (a *Adapter) Stream(ctx context.Context, stage string, skip, worker int, baseSeed int64) (*rand.Rand, error) {
	derived := baseSeed
	if stage != "" {
		derived += int64(hashString(stage))
	}
	derived += int64(hashString(fmt.Sprintf("skip-%d", skip)))
	derived += int64(hashString(fmt.Sprintf("worker-%d", worker)))
	return rand.New(rand.NewSource(derived)), nil
}

// hashString creates a simple hash for deterministic seeding (djb2)
func hashString(s string) uint32 {
	var hash uint32 = 5381
	for _, c := range s {
		hash = ((hash << 5) + hash) + uint32(c)
	}
	return hash
}
