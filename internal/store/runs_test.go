package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ethche/BayesLP/internal/persuasion"
	"github.com/ethche/BayesLP/internal/solver"
	"github.com/ethche/BayesLP/internal/testutil"
)

func solveQuadratic(t *testing.T) *solver.SolutionRecord {
	t.Helper()
	rec, err := solver.Solve(testutil.Quadratic(3))
	require.NoError(t, err)
	return rec
}

func TestWriteRun_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	rec := solveQuadratic(t)

	run := NewRun("quadratic", persuasion.Interval{Lo: 0, Hi: 1}, rec)
	require.NotEmpty(t, run.ID)
	require.NoError(t, s.WriteRun(ctx, run))

	got, err := s.GetRun(ctx, run.ID)
	require.NoError(t, err)

	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, "quadratic", got.Problem)
	assert.Equal(t, 3, got.GridSize)
	assert.Equal(t, persuasion.Interval{Lo: 0, Hi: 1}, got.Interval)
	assert.InDelta(t, rec.Value, got.Value, 1e-12)
	assert.False(t, got.CreatedAt.IsZero())

	require.Len(t, got.Mechanism, 3)
	for i := range rec.Mechanism {
		for j := range rec.Mechanism[i] {
			assert.InDelta(t, rec.Mechanism[i][j], got.Mechanism[i][j], 1e-12,
				"mechanism[%d][%d]", i, j)
		}
	}
	require.Len(t, got.Prior, 3)
	for i := range rec.Prior {
		assert.InDelta(t, rec.Prior[i], got.Prior[i], 1e-12, "prior[%d]", i)
	}
}

func TestWriteRun_DuplicateIDIgnored(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	rec := solveQuadratic(t)

	run := NewRun("quadratic", persuasion.Interval{Lo: 0, Hi: 1}, rec)
	require.NoError(t, s.WriteRun(ctx, run))

	// Second insert with the same ID is a silent no-op.
	run.Problem = "changed"
	require.NoError(t, s.WriteRun(ctx, run))

	got, err := s.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, "quadratic", got.Problem)
}

func TestGetRun_NotFound(t *testing.T) {
	s := openTestStore(t)

	_, err := s.GetRun(context.Background(), "no-such-run")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestListRuns(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	rec := solveQuadratic(t)

	first := NewRun("quadratic", persuasion.Interval{Lo: 0, Hi: 1}, rec)
	second := NewRun("quadratic", persuasion.Interval{Lo: 0, Hi: 1}, rec)
	require.NoError(t, s.WriteRun(ctx, first))
	require.NoError(t, s.WriteRun(ctx, second))

	runs, err := s.ListRuns(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, runs, 2)

	limited, err := s.ListRuns(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestListRuns_Empty(t *testing.T) {
	s := openTestStore(t)

	runs, err := s.ListRuns(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, runs)
}
