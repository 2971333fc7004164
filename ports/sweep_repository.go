package ports

import (
	"context"

	"gostop/domain/core"
	"gostop/domain/stopping"
)

// SweepRecord is the persisted form of a completed sweep
type SweepRecord struct {
	SweepID         core.SweepID   `json:"sweep_id" db:"sweep_id"`
	N               int            `json:"n" db:"n"`
	Mode            stopping.Mode  `json:"mode" db:"mode"`
	Trials          int            `json:"trials" db:"trials"`
	Seed            int64          `json:"seed" db:"seed"`
	Curve           stopping.Curve `json:"curve"`
	BestSkip        int            `json:"best_skip" db:"best_skip"`
	BestProbability float64        `json:"best_probability" db:"best_probability"`
	TheoreticalSkip int            `json:"theoretical_skip" db:"theoretical_skip"`
	RuntimeMs       int64          `json:"runtime_ms" db:"runtime_ms"`
	CreatedAt       core.Timestamp `json:"created_at"`
}

// SweepRepository persists sweep results for later comparison and reporting
type SweepRepository interface {
	SaveSweep(ctx context.Context, record *SweepRecord) error
	GetSweep(ctx context.Context, id core.SweepID) (*SweepRecord, error)
	ListSweeps(ctx context.Context, limit, offset int) ([]*SweepRecord, error)
}
