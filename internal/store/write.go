package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ethche/BayesLP/internal/persuasion"
	"github.com/ethche/BayesLP/internal/solver"
)

// Run is one recorded solve.
type Run struct {
	ID        string              `json:"id"`
	Problem   string              `json:"problem"`
	GridSize  int                 `json:"grid_size"`
	Interval  persuasion.Interval `json:"interval"`
	Value     float64             `json:"value"`
	Mechanism [][]float64         `json:"mechanism"`
	Prior     []float64           `json:"prior"`
	CreatedAt time.Time           `json:"created_at"`
}

// NewRun builds a Run from a solve result with a fresh UUID.
// CreatedAt is assigned by the database on insert.
func NewRun(problem string, interval persuasion.Interval, rec *solver.SolutionRecord) Run {
	return Run{
		ID:        uuid.NewString(),
		Problem:   problem,
		GridSize:  len(rec.Grid),
		Interval:  interval,
		Value:     rec.Value,
		Mechanism: rec.Mechanism,
		Prior:     rec.Prior,
	}
}

// WriteRun inserts a run record.
// Uses ON CONFLICT(id) DO NOTHING for idempotency: duplicate IDs are
// silently ignored; other constraint violations still return errors.
//
// Mechanism and prior are serialized to canonical JSON so stored bytes
// are deterministic for a given solve.
func (s *Store) WriteRun(ctx context.Context, run Run) error {
	mechJSON, err := persuasion.MarshalCanonical(run.Mechanism)
	if err != nil {
		return fmt.Errorf("write run: mechanism: %w", err)
	}
	priorJSON, err := persuasion.MarshalCanonical(run.Prior)
	if err != nil {
		return fmt.Errorf("write run: prior: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs
		(id, problem, grid_size, interval_lo, interval_hi, value, mechanism, prior)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		run.ID,
		run.Problem,
		run.GridSize,
		run.Interval.Lo,
		run.Interval.Hi,
		run.Value,
		string(mechJSON),
		string(priorJSON),
	)
	if err != nil {
		return fmt.Errorf("write run: %w", err)
	}

	return nil
}
