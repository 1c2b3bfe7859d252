package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrRunNotFound is returned by GetRun for an unknown run ID.
var ErrRunNotFound = errors.New("run not found")

// GetRun fetches a single run by ID.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, problem, grid_size, interval_lo, interval_hi, value, mechanism, prior, created_at
		FROM runs
		WHERE id = ?
	`, id)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	return run, nil
}

// ListRuns returns up to limit runs, newest first. limit <= 0 means no
// limit.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `
		SELECT id, problem, grid_size, interval_lo, interval_hi, value, mechanism, prior, created_at
		FROM runs
		ORDER BY created_at DESC, id
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("list runs: %w", err)
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (*Run, error) {
	var (
		run       Run
		mechJSON  string
		priorJSON string
		createdAt string
	)
	err := sc.Scan(
		&run.ID,
		&run.Problem,
		&run.GridSize,
		&run.Interval.Lo,
		&run.Interval.Hi,
		&run.Value,
		&mechJSON,
		&priorJSON,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(mechJSON), &run.Mechanism); err != nil {
		return nil, fmt.Errorf("decoding mechanism: %w", err)
	}
	if err := json.Unmarshal([]byte(priorJSON), &run.Prior); err != nil {
		return nil, fmt.Errorf("decoding prior: %w", err)
	}

	run.CreatedAt, err = time.Parse("2006-01-02T15:04:05.000Z", createdAt)
	if err != nil {
		// Fall back to RFC 3339 for rows written by other tools.
		run.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("decoding created_at %q: %w", createdAt, err)
		}
	}

	return &run, nil
}
