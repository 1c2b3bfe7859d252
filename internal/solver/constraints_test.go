package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ethche/BayesLP/internal/persuasion"
	"github.com/ethche/BayesLP/internal/testutil"
)

func TestBuildConstraints_Shape(t *testing.T) {
	spec := testutil.Quadratic(3)
	a, err := buildConstraints(spec, spec.Grid())
	require.NoError(t, err)

	rows, cols := a.Dims()
	assert.Equal(t, 6, rows, "2n constraint rows")
	assert.Equal(t, 9, cols, "n² mechanism variables")
}

func TestBuildConstraints_MarginalBlock(t *testing.T) {
	spec := testutil.Quadratic(3)
	a, err := buildConstraints(spec, spec.Grid())
	require.NoError(t, err)

	// Row i selects exactly the columns of state i with unit weight.
	for i := 0; i < 3; i++ {
		for col := 0; col < 9; col++ {
			want := 0.0
			if col/3 == i {
				want = 1.0
			}
			assert.Equal(t, want, a.At(i, col), "row %d col %d", i, col)
		}
	}
}

func TestBuildConstraints_IncentiveBlock(t *testing.T) {
	spec := testutil.Quadratic(3)
	grid := spec.Grid()
	a, err := buildConstraints(spec, grid)
	require.NoError(t, err)

	// Row n+k carries u(s_i, m_k)·g(s_i, m_k) at column i·n+k for every
	// state i and zero everywhere else: the rows are indexed by
	// message, the stacked diagonals by state.
	for k := 0; k < 3; k++ {
		for col := 0; col < 9; col++ {
			want := 0.0
			if col%3 == k {
				i := col / 3
				want = grid[i] - grid[k]
			}
			assert.InDelta(t, want, a.At(3+k, col), 1e-15, "row %d col %d", 3+k, col)
		}
	}
}

func TestBuildConstraints_NonFiniteWeight(t *testing.T) {
	spec := testutil.Quadratic(2)
	spec.ReceiverConditionalDensity = func(s, r float64) float64 { return 1 / (s + r) }

	_, err := buildConstraints(spec, spec.Grid())
	require.Error(t, err)

	var ee *persuasion.EvalError
	require.ErrorAs(t, err, &ee)
}
