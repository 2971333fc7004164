package ports

import (
	"context"
	"math/rand"
)

// RNGPort provides seeded random number generation for deterministic operations
type RNGPort interface {
	// SeededStream creates a deterministic random number generator for a named operation
	SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error)

	// Stream creates a deterministic RNG stream for a specific stage/skip/worker
	// combination. Identical coordinates always yield an identical stream, so
	// parallel trial batches reproduce bit-for-bit regardless of scheduling.
	Stream(ctx context.Context, stage string, skip, worker int, baseSeed int64) (*rand.Rand, error)
}
