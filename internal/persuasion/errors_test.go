package persuasion

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSolverError_Predicates(t *testing.T) {
	infeasible := &SolverError{Status: StatusInfeasible}
	unbounded := &SolverError{Status: StatusUnbounded}

	assert.True(t, IsInfeasible(infeasible))
	assert.False(t, IsInfeasible(unbounded))
	assert.True(t, IsUnbounded(unbounded))

	// Predicates see through wrapping.
	wrapped := fmt.Errorf("solving problem %q: %w", "quadratic", infeasible)
	assert.True(t, IsInfeasible(wrapped))
}

func TestIsDegenerate(t *testing.T) {
	err := &DegenerateDistributionError{GridSize: 3, Interval: Interval{Lo: 0, Hi: 1}}
	assert.True(t, IsDegenerate(err))
	assert.False(t, IsDegenerate(&SolverError{Status: StatusInfeasible}))
	assert.Contains(t, err.Error(), "3 grid points")
}

func TestIsConfig(t *testing.T) {
	err := &ConfigError{Field: "grid", Message: "grid size must be at least 1"}
	assert.True(t, IsConfig(err))
	assert.Contains(t, err.Error(), "grid")
	assert.False(t, IsConfig(fmt.Errorf("plain")))
}

func TestEvalError_Message(t *testing.T) {
	err := &EvalError{Fn: "sender.utility", Point: []float64{0.5, 1}, Value: 0}
	assert.Contains(t, err.Error(), "sender.utility(0.5, 1)")
}

func TestSolverError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("simplex breakdown")
	err := &SolverError{Status: StatusNumericalFailure, Err: inner}
	assert.ErrorIs(t, err, inner)
}
