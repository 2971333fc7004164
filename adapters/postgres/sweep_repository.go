package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"gostop/domain/core"
	"gostop/domain/stopping"
	"gostop/ports"
)

// SweepRepositoryImpl implements SweepRepository for PostgreSQL
type SweepRepositoryImpl struct {
	db *sqlx.DB
}

// NewSweepRepository creates a new PostgreSQL sweep repository
func NewSweepRepository(db *sqlx.DB) ports.SweepRepository {
	return &SweepRepositoryImpl{db: db}
}

// EnsureSchema creates the sweeps table if it does not exist
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS sweeps (
			sweep_id TEXT PRIMARY KEY,
			n INTEGER NOT NULL,
			mode TEXT NOT NULL,
			trials INTEGER NOT NULL DEFAULT 0,
			seed BIGINT NOT NULL DEFAULT 0,
			curve JSONB NOT NULL,
			best_skip INTEGER NOT NULL,
			best_probability DOUBLE PRECISION NOT NULL,
			theoretical_skip INTEGER NOT NULL,
			runtime_ms BIGINT NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		return fmt.Errorf("failed to create sweeps table: %w", err)
	}
	return nil
}

// SaveSweep upserts a completed sweep
func (r *SweepRepositoryImpl) SaveSweep(ctx context.Context, record *ports.SweepRecord) error {
	curveJSON, err := json.Marshal(record.Curve)
	if err != nil {
		return fmt.Errorf("marshal curve: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO sweeps (
			sweep_id, n, mode, trials, seed, curve,
			best_skip, best_probability, theoretical_skip, runtime_ms, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (sweep_id) DO UPDATE SET
			n = EXCLUDED.n,
			mode = EXCLUDED.mode,
			trials = EXCLUDED.trials,
			seed = EXCLUDED.seed,
			curve = EXCLUDED.curve,
			best_skip = EXCLUDED.best_skip,
			best_probability = EXCLUDED.best_probability,
			theoretical_skip = EXCLUDED.theoretical_skip,
			runtime_ms = EXCLUDED.runtime_ms`,
		record.SweepID.String(), record.N, string(record.Mode), record.Trials,
		record.Seed, curveJSON, record.BestSkip, record.BestProbability,
		record.TheoreticalSkip, record.RuntimeMs, record.CreatedAt.Time())

	return err
}

// GetSweep retrieves a sweep by ID
func (r *SweepRepositoryImpl) GetSweep(ctx context.Context, id core.SweepID) (*ports.SweepRecord, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT sweep_id, n, mode, trials, seed, curve,
			   best_skip, best_probability, theoretical_skip, runtime_ms, created_at
		FROM sweeps WHERE sweep_id = $1`, id.String())

	record, err := scanSweep(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.NewNotFoundError("sweep", id.String())
		}
		return nil, err
	}
	return record, nil
}

// ListSweeps retrieves recent sweeps ordered by creation time
func (r *SweepRepositoryImpl) ListSweeps(ctx context.Context, limit, offset int) ([]*ports.SweepRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT sweep_id, n, mode, trials, seed, curve,
			   best_skip, best_probability, theoretical_skip, runtime_ms, created_at
		FROM sweeps ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*ports.SweepRecord
	for rows.Next() {
		record, err := scanSweep(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSweep(row rowScanner) (*ports.SweepRecord, error) {
	var record ports.SweepRecord
	var sweepID, mode string
	var curveJSON []byte
	var createdAt time.Time

	err := row.Scan(&sweepID, &record.N, &mode, &record.Trials, &record.Seed,
		&curveJSON, &record.BestSkip, &record.BestProbability,
		&record.TheoreticalSkip, &record.RuntimeMs, &createdAt)
	if err != nil {
		return nil, err
	}

	record.SweepID = core.SweepID(sweepID)
	record.Mode = stopping.Mode(mode)
	record.CreatedAt = core.NewTimestamp(createdAt)
	if err := json.Unmarshal(curveJSON, &record.Curve); err != nil {
		return nil, fmt.Errorf("unmarshal curve: %w", err)
	}
	return &record, nil
}
